package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sam-zarila/essa-admin/internal/pkg/services"
)

type CollateralHandler struct {
	service services.CollateralServiceInterface
}

func NewCollateralHandler(service services.CollateralServiceInterface) *CollateralHandler {
	return &CollateralHandler{service: service}
}

func (h *CollateralHandler) List(c *gin.Context) {
	views, err := h.service.List(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"collateral": views})
}
