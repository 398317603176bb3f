package main

import (
	"context"
	"strings"

	"github.com/promptlab/promptlab/internal/ai"
	"github.com/promptlab/promptlab/internal/auth"
	"github.com/promptlab/promptlab/internal/config"
	"github.com/promptlab/promptlab/internal/db"
	"github.com/promptlab/promptlab/internal/httpapi"
	"github.com/promptlab/promptlab/internal/httpapi/handlers"
	"github.com/promptlab/promptlab/internal/httpapi/middleware"
	"github.com/promptlab/promptlab/internal/logger"
	"github.com/promptlab/promptlab/internal/run"
	"github.com/promptlab/promptlab/internal/store/rabbitmq"
	"github.com/promptlab/promptlab/internal/store/redisstore"
	"github.com/promptlab/promptlab/internal/thread"
	"github.com/promptlab/promptlab/internal/workspace"
)

func newRegistry(cfg config.Config) *ai.Registry {
	reg := ai.NewRegistry()
	reg.Register("openrouter", func(ctx context.Context, model string) (ai.Provider, error) {
		_ = ctx
		m := strings.TrimSpace(model)
		if m == "" {
			m = cfg.OpenRouterModel
		}
		return ai.NewOpenRouterProvider(
			cfg.OpenRouterBaseURL, cfg.OpenRouterAPIKey, m,
			cfg.OpenRouterSiteURL, cfg.OpenRouterAppName,
		), nil
	})
	reg.Register("ollama", func(ctx context.Context, model string) (ai.Provider, error) {
		_ = ctx
		m := strings.TrimSpace(model)
		if m == "" {
			m = cfg.OllamaModel
		}
		return ai.NewOllamaProvider(cfg.OllamaBaseURL, m), nil
	})
	return reg
}

func main() {
	cfg := config.Load()

	mode := "dev"
	if !cfg.DevMode {
		mode = "prod"
	}
	log, err := logger.New(mode)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	var sessions auth.Store
	if strings.EqualFold(cfg.SessionStore, "redis") {
		rs := redisstore.NewSessionStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := rs.Ping(context.Background()); err != nil {
			log.Fatal("redis session store unreachable", "addr", cfg.RedisAddr, "err", err)
		}
		defer rs.Close()
		sessions = rs
	} else {
		sessions = auth.NewMemoryStore()
	}

	authSvc := auth.NewService(
		sessions, cfg.SessionSecret, cfg.Password, cfg.PasswordHash,
		cfg.SessionTTL, cfg.DisableAuth,
	)
	if cfg.DisableAuth {
		log.Warn("authentication is disabled")
	}

	ws := workspace.NewService(cfg.WorkspaceRoot, cfg.ProjectWhitelist, log)
	threads := thread.NewStore(cfg.WorkspaceRoot, log)
	registry := newRegistry(cfg)

	// The run queue is optional; the rest of the app works without it.
	var runSvc *run.Service
	if pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue); err != nil {
		log.Warn("run queue disabled", "err", err)
	} else {
		defer pub.Close()
		gdb, err := db.Open(cfg.RunDBPath)
		if err != nil {
			log.Fatal("open run db", "path", cfg.RunDBPath, "err", err)
		}
		runSvc = run.NewService(run.NewRepo(gdb), threads, registry, pub)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimitMax, cfg.RateLimitWindow)
	defer limiter.Stop()

	h := handlers.NewHandler(cfg, log, authSvc, ws, threads, registry, runSvc)
	r := httpapi.NewRouter(h, limiter)

	log.Info("server listening",
		"port", cfg.Port,
		"workspace", cfg.WorkspaceRoot,
		"projects", len(cfg.ProjectWhitelist),
	)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server exited", "err", err)
	}
}
