package consts

import "github.com/sam-zarila/essa-admin/internal/pkg/models"

var (
	ErrorLoanNotFound = &models.CustomError{
		Code:    "ESSA_ADMIN_LOAN_NOT_FOUND",
		Message: "Loan record not found",
	}
	ErrorProcessedLoanNotFound = &models.CustomError{
		Code:    "ESSA_ADMIN_PROCESSED_LOAN_NOT_FOUND",
		Message: "Processed loan record not found",
	}
	ErrorProposalNotFound = &models.CustomError{
		Code:    "ESSA_ADMIN_PROPOSAL_NOT_FOUND",
		Message: "Calculator proposal not found",
	}
	ErrorProposalAlreadyDecided = &models.CustomError{
		Code:    "ESSA_ADMIN_PROPOSAL_ALREADY_DECIDED",
		Message: "Calculator proposal has already been decided",
	}
	ErrorInvalidLoanID = &models.CustomError{
		Code:    "ESSA_ADMIN_VALIDATION_LOAN_ID_INVALID",
		Message: "Loan id is not a valid document id",
	}
	ErrorInvalidDecisionAction = &models.CustomError{
		Code:    "ESSA_ADMIN_VALIDATION_DECISION_ACTION_INVALID",
		Message: "Decision action must be approve or decline",
	}
	ErrorPaymentOnFinishedLoan = &models.CustomError{
		Code:    "ESSA_ADMIN_VALIDATION_PAYMENT_ON_FINISHED_LOAN",
		Message: "Cannot record a payment against a finished loan",
	}
	ErrorRoleClaimMissing = &models.CustomError{
		Code:    "ESSA_ADMIN_AUTH_ROLE_CLAIM_MISSING",
		Message: "Request is missing the required role claim",
	}
	ErrorReportUploadFailed = &models.CustomError{
		Code:    "ESSA_ADMIN_REPORT_UPLOAD_FAILED",
		Message: "Portfolio report upload failed",
	}
)
