package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sam-zarila/essa-admin/internal/app/middleware"
	"github.com/sam-zarila/essa-admin/internal/pkg/consts"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
	"github.com/sam-zarila/essa-admin/internal/pkg/services"
)

type LoanHandler struct {
	service   services.LoanAdminServiceInterface
	dashboard services.DashboardServiceInterface
}

func NewLoanHandler(service services.LoanAdminServiceInterface, dashboard services.DashboardServiceInterface) *LoanHandler {
	return &LoanHandler{service: service, dashboard: dashboard}
}

func (h *LoanHandler) List(c *gin.Context) {
	views, err := h.service.List(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"loans": views})
}

// loanID rejects blank path ids before they reach the service layer.
func loanID(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondError(c, consts.ErrorInvalidLoanID)
		return "", false
	}
	return id, true
}

func (h *LoanHandler) ByID(c *gin.Context) {
	id, ok := loanID(c)
	if !ok {
		return
	}
	view, err := h.service.ByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *LoanHandler) Decision(c *gin.Context) {
	id, ok := loanID(c)
	if !ok {
		return
	}
	var body models.DecisionRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	processed, err := h.service.Decide(c, id, body.Action, middleware.ActorFromRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidateDashboard(c)
	c.JSON(http.StatusOK, processed)
}

func (h *LoanHandler) Payment(c *gin.Context) {
	id, ok := loanID(c)
	if !ok {
		return
	}
	var body models.PaymentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.service.Payment(c, id, body.Amount, middleware.ActorFromRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidateDashboard(c)
	c.JSON(http.StatusOK, view)
}

func (h *LoanHandler) Close(c *gin.Context) {
	id, ok := loanID(c)
	if !ok {
		return
	}
	view, err := h.service.Close(c, id, middleware.ActorFromRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidateDashboard(c)
	c.JSON(http.StatusOK, view)
}

// Consider restores a decided application into the active set.
func (h *LoanHandler) Consider(c *gin.Context) {
	id, ok := loanID(c)
	if !ok {
		return
	}
	view, err := h.service.Consider(c, id, middleware.ActorFromRequest(c))
	if err != nil {
		respondError(c, err)
		return
	}
	h.invalidateDashboard(c)
	c.JSON(http.StatusOK, view)
}

func (h *LoanHandler) Processed(c *gin.Context) {
	processed, err := h.service.Processed(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"processed": processed})
}

func (h *LoanHandler) AuditTrail(c *gin.Context) {
	id, ok := loanID(c)
	if !ok {
		return
	}
	entries, err := h.service.AuditTrail(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"audit": entries})
}

func (h *LoanHandler) invalidateDashboard(c *gin.Context) {
	if h.dashboard != nil {
		h.dashboard.Invalidate(c)
	}
}
