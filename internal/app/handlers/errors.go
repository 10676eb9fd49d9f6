package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sam-zarila/essa-admin/internal/pkg/consts"
	"github.com/sam-zarila/essa-admin/internal/pkg/utils"
)

func statusFor(err error) int {
	switch {
	case errors.Is(err, consts.ErrorLoanNotFound),
		errors.Is(err, consts.ErrorProcessedLoanNotFound),
		errors.Is(err, consts.ErrorProposalNotFound):
		return http.StatusNotFound
	case errors.Is(err, consts.ErrorInvalidDecisionAction),
		errors.Is(err, consts.ErrorInvalidLoanID):
		return http.StatusBadRequest
	case errors.Is(err, consts.ErrorProposalAlreadyDecided),
		errors.Is(err, consts.ErrorPaymentOnFinishedLoan):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(statusFor(err), gin.H{
		"code":    utils.GetErrorCode(err),
		"message": err.Error(),
	})
}
