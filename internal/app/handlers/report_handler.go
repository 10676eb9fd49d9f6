package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sam-zarila/essa-admin/internal/pkg/services"
)

type ReportHandler struct {
	service services.ReportServiceInterface
}

func NewReportHandler(service services.ReportServiceInterface) *ReportHandler {
	return &ReportHandler{service: service}
}

// Portfolio exports the loan book as CSV and returns the object path.
func (h *ReportHandler) Portfolio(c *gin.Context) {
	objectPath, err := h.service.PortfolioReport(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"report": objectPath})
}
