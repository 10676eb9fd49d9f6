package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sam-zarila/essa-admin/internal/app/middleware"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
	"github.com/sam-zarila/essa-admin/internal/pkg/services"
)

type ProposalHandler struct {
	service   services.ProposalServiceInterface
	dashboard services.DashboardServiceInterface
}

func NewProposalHandler(service services.ProposalServiceInterface, dashboard services.DashboardServiceInterface) *ProposalHandler {
	return &ProposalHandler{service: service, dashboard: dashboard}
}

func (h *ProposalHandler) List(c *gin.Context) {
	proposals, err := h.service.List(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": proposals})
}

func (h *ProposalHandler) Decision(c *gin.Context) {
	var body models.ProposalApproveRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	proposal, err := h.service.Decide(c, c.Param("id"), body, middleware.ActorFromRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if h.dashboard != nil {
		h.dashboard.Invalidate(c)
	}
	c.JSON(http.StatusOK, proposal)
}
