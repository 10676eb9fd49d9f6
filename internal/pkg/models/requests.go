package models

// DecisionRequest is the body of a loan or proposal decision action.
type DecisionRequest struct {
	Action string `json:"action" binding:"required,oneof=approve decline"`
	Note   string `json:"note"`
}

// PaymentRequest records a repayment against an active loan.
type PaymentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"method"`
}

// ProposalApproveRequest optionally overrides proposal fields when an
// approval materializes the loan record.
type ProposalApproveRequest struct {
	Action           string  `json:"action" binding:"required,oneof=approve decline"`
	LoanAmount       float64 `json:"loanAmount" binding:"omitempty,gt=0"`
	LoanPeriod       int     `json:"loanPeriod" binding:"omitempty,gt=0"`
	PaymentFrequency string  `json:"paymentFrequency" binding:"omitempty,frequency"`
}

// BadgeSeenRequest marks a console section as seen for the calling admin.
type BadgeSeenRequest struct {
	Section string `json:"section" binding:"required,oneof=loans kyc proposals"`
}
