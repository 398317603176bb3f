package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/promptlab/promptlab/internal/common"
	"github.com/promptlab/promptlab/internal/persona"
)

func (h *Handler) ListPersonas(c *gin.Context) {
	common.OK(c, gin.H{"personas": persona.All()})
}

func (h *Handler) ListTemplates(c *gin.Context) {
	common.OK(c, gin.H{"templates": persona.AllTemplates()})
}

type analyzeReq struct {
	Query string `json:"query" binding:"required"`
}

func (h *Handler) AnalyzeQuery(c *gin.Context) {
	var req analyzeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10005, "query required")
		return
	}
	common.OK(c, gin.H{"analysis": persona.AnalyzeQuery(req.Query)})
}

type estimateReq struct {
	ModelIDs         []string `json:"modelIds" binding:"required"`
	Query            string   `json:"query" binding:"required"`
	IncludeSynthesis bool     `json:"includeSynthesis"`
}

func (h *Handler) EstimateCost(c *gin.Context) {
	var req estimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		common.Fail(c, http.StatusBadRequest, 10006, "modelIds and query required")
		return
	}
	common.OK(c, gin.H{"estimate": persona.EstimateWorkshopCost(req.ModelIDs, req.Query, req.IncludeSynthesis)})
}
