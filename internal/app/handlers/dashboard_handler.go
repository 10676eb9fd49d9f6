package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sam-zarila/essa-admin/internal/pkg/services"
)

type DashboardHandler struct {
	service services.DashboardServiceInterface
}

func NewDashboardHandler(service services.DashboardServiceInterface) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Dashboard(c *gin.Context) {
	envelope, err := h.service.Dashboard(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope)
}

// Refresh forces a re-classification, bypassing the cached snapshot.
func (h *DashboardHandler) Refresh(c *gin.Context) {
	envelope, err := h.service.Rebuild(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, envelope)
}
