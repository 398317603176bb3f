package handlers

import (
	"github.com/promptlab/promptlab/internal/ai"
	"github.com/promptlab/promptlab/internal/auth"
	"github.com/promptlab/promptlab/internal/config"
	"github.com/promptlab/promptlab/internal/logger"
	"github.com/promptlab/promptlab/internal/run"
	"github.com/promptlab/promptlab/internal/thread"
	"github.com/promptlab/promptlab/internal/workspace"
)

// Handler bundles the services the HTTP layer dispatches into. Everything is
// injected; there are no package-level singletons.
type Handler struct {
	Cfg       config.Config
	Log       *logger.Logger
	Auth      *auth.Service
	Workspace *workspace.Service
	Threads   *thread.Store
	Registry  *ai.Registry
	Runs      *run.Service // nil when the run queue is not configured
}

func NewHandler(
	cfg config.Config,
	log *logger.Logger,
	authSvc *auth.Service,
	ws *workspace.Service,
	threads *thread.Store,
	registry *ai.Registry,
	runs *run.Service,
) *Handler {
	return &Handler{
		Cfg:       cfg,
		Log:       log,
		Auth:      authSvc,
		Workspace: ws,
		Threads:   threads,
		Registry:  registry,
		Runs:      runs,
	}
}
