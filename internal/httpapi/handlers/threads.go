package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptlab/promptlab/internal/common"
	"github.com/promptlab/promptlab/internal/thread"
)

// projectOr404 re-checks the whitelist for thread routes; the thread store
// itself trusts its callers with project names.
func (h *Handler) projectOr404(c *gin.Context) (string, bool) {
	project := c.Param("project")
	tree := h.Workspace.Tree(project)
	if tree == nil {
		common.Fail(c, http.StatusNotFound, 40401, "project not found")
		return "", false
	}
	return project, true
}

func (h *Handler) ListThreads(c *gin.Context) {
	project, ok := h.projectOr404(c)
	if !ok {
		return
	}
	summaries, err := h.Threads.List(project)
	if err != nil {
		h.Log.Error("list threads failed", "project", project, "err", err)
		common.Fail(c, http.StatusInternalServerError, 50002, "failed to list threads")
		return
	}
	common.OK(c, gin.H{"project": project, "threads": summaries})
}

func (h *Handler) GetThread(c *gin.Context) {
	project, ok := h.projectOr404(c)
	if !ok {
		return
	}
	t, err := h.Threads.Get(project, c.Param("id"))
	if err != nil {
		h.Log.Error("get thread failed", "project", project, "id", c.Param("id"), "err", err)
		common.Fail(c, http.StatusInternalServerError, 50003, "failed to read thread")
		return
	}
	if t == nil {
		common.Fail(c, http.StatusNotFound, 40403, "thread not found")
		return
	}
	common.OK(c, gin.H{"thread": t})
}

func (h *Handler) CreateThread(c *gin.Context) {
	project, ok := h.projectOr404(c)
	if !ok {
		return
	}

	var in thread.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}
	if in.Title == "" {
		common.Fail(c, http.StatusBadRequest, 10004, "title required")
		return
	}

	t, err := h.Threads.Create(project, in)
	if err != nil {
		h.Log.Error("create thread failed", "project", project, "err", err)
		common.Fail(c, http.StatusInternalServerError, 50004, "failed to create thread")
		return
	}
	common.Created(c, gin.H{"thread": t})
}

func (h *Handler) UpdateThread(c *gin.Context) {
	project, ok := h.projectOr404(c)
	if !ok {
		return
	}

	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	t, err := h.Threads.Update(project, c.Param("id"), fields)
	if err != nil {
		if errors.Is(err, thread.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40403, "thread not found")
			return
		}
		h.Log.Error("update thread failed", "project", project, "id", c.Param("id"), "err", err)
		common.Fail(c, http.StatusInternalServerError, 50005, "failed to update thread")
		return
	}
	common.OK(c, gin.H{"thread": t})
}

func (h *Handler) DeleteThread(c *gin.Context) {
	project, ok := h.projectOr404(c)
	if !ok {
		return
	}

	if err := h.Threads.Delete(project, c.Param("id")); err != nil {
		if errors.Is(err, thread.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40403, "thread not found")
			return
		}
		h.Log.Error("delete thread failed", "project", project, "id", c.Param("id"), "err", err)
		common.Fail(c, http.StatusInternalServerError, 50006, "failed to delete thread")
		return
	}
	common.OK(c, gin.H{"deleted": true})
}

func (h *Handler) AddIteration(c *gin.Context) {
	project, ok := h.projectOr404(c)
	if !ok {
		return
	}

	var payload thread.Iteration
	if err := c.ShouldBindJSON(&payload); err != nil {
		common.Fail(c, http.StatusBadRequest, 10001, "invalid json")
		return
	}

	it, err := h.Threads.AddIteration(project, c.Param("id"), payload)
	if err != nil {
		if errors.Is(err, thread.ErrNotFound) {
			common.Fail(c, http.StatusNotFound, 40403, "thread not found")
			return
		}
		h.Log.Error("add iteration failed", "project", project, "id", c.Param("id"), "err", err)
		common.Fail(c, http.StatusInternalServerError, 50007, "failed to add iteration")
		return
	}
	common.Created(c, gin.H{"iteration": it})
}
