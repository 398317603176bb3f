package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/promptlab/promptlab/internal/common"
)

func (h *Handler) Health(c *gin.Context) {
	common.OK(c, gin.H{
		"status":    "ok",
		"workspace": h.Cfg.WorkspaceRoot,
		"timestamp": time.Now().UTC(),
	})
}
