package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/promptlab/promptlab/internal/common"
	"github.com/promptlab/promptlab/internal/run"
)

func (h *Handler) CreateRun(c *gin.Context) {
	if h.Runs == nil {
		common.Fail(c, http.StatusServiceUnavailable, 50301, "run queue not configured")
		return
	}
	project, ok := h.projectOr404(c)
	if !ok {
		return
	}

	var in run.EnqueueInput
	if err := c.ShouldBindJSON(&in); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if in.Model == "" || in.Prompt == "" {
		common.Fail(c, http.StatusBadRequest, 10009, "model and prompt required")
		return
	}

	j, err := h.Runs.Enqueue(c.Request.Context(), project, c.Param("id"), in)
	if err != nil {
		if errors.Is(err, run.ErrThreadNotFound) {
			common.Fail(c, http.StatusNotFound, 40403, "thread not found")
			return
		}
		h.Log.Error("enqueue run failed", "project", project, "thread", c.Param("id"), "err", err)
		common.Fail(c, http.StatusInternalServerError, 50008, "failed to enqueue run")
		return
	}
	common.Created(c, gin.H{"run": j})
}

func (h *Handler) GetRun(c *gin.Context) {
	if h.Runs == nil {
		common.Fail(c, http.StatusServiceUnavailable, 50301, "run queue not configured")
		return
	}

	j, err := h.Runs.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			common.Fail(c, http.StatusNotFound, 40404, "run not found")
			return
		}
		h.Log.Error("get run failed", "id", c.Param("id"), "err", err)
		common.Fail(c, http.StatusInternalServerError, 50009, "internal error")
		return
	}
	common.OK(c, gin.H{"run": j})
}
