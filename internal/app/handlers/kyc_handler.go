package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sam-zarila/essa-admin/internal/pkg/services"
)

type KycHandler struct {
	service services.KycServiceInterface
}

func NewKycHandler(service services.KycServiceInterface) *KycHandler {
	return &KycHandler{service: service}
}

// Pending lists identity records not yet linked to any loan.
func (h *KycHandler) Pending(c *gin.Context) {
	records, err := h.service.Pending(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"kyc": records})
}
