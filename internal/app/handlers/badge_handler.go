package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sam-zarila/essa-admin/internal/pkg/models"
	"github.com/sam-zarila/essa-admin/internal/pkg/services"
)

type BadgeHandler struct {
	service services.BadgeServiceInterface
}

func NewBadgeHandler(service services.BadgeServiceInterface) *BadgeHandler {
	return &BadgeHandler{service: service}
}

func (h *BadgeHandler) Counts(c *gin.Context) {
	counts, err := h.service.Counts(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, counts)
}

func (h *BadgeHandler) Seen(c *gin.Context) {
	var body models.BadgeSeenRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.service.MarkSeen(c, body.Section); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"section": body.Section})
}
