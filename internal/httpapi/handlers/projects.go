package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptlab/promptlab/internal/common"
)

func (h *Handler) ListProjects(c *gin.Context) {
	common.OK(c, gin.H{"projects": h.Workspace.ListProjects()})
}

func (h *Handler) ProjectTree(c *gin.Context) {
	project := c.Param("project")
	tree := h.Workspace.Tree(project)
	if tree == nil {
		common.Fail(c, http.StatusNotFound, 40401, "project not found")
		return
	}
	common.OK(c, gin.H{"tree": tree, "path": project})
}

func (h *Handler) ProjectFile(c *gin.Context) {
	project := c.Param("project")
	path := c.Query("path")
	if path == "" {
		common.Fail(c, http.StatusBadRequest, 10002, "path required")
		return
	}

	content, ok := h.Workspace.ReadFile(project, path)
	if !ok {
		common.Fail(c, http.StatusNotFound, 40402, "file not found")
		return
	}
	common.OK(c, gin.H{"content": content})
}

func (h *Handler) ProjectSearch(c *gin.Context) {
	project := c.Param("project")
	q := c.Query("q")
	if q == "" {
		common.Fail(c, http.StatusBadRequest, 10003, "q required")
		return
	}
	common.OK(c, gin.H{"results": h.Workspace.Search(project, q)})
}
