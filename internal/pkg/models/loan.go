package models

import "time"

// RawDoc is a loan, KYC or proposal document exactly as it was fetched from
// MongoDB, before any field normalization. Documents in these collections
// have drifted across intake revisions, so the same logical attribute can
// live under several different field names and timestamp encodings.
type RawDoc = map[string]interface{}

// Loan is the normalized projection of a loan application document.
type Loan struct {
	ID               string           `json:"id"`
	ApplicantName    string           `json:"applicantName"`
	FirstName        string           `json:"firstName"`
	LastName         string           `json:"lastName"`
	Title            string           `json:"title,omitempty"`
	Mobile           string           `json:"mobile"`
	Email            string           `json:"email"`
	Area             string           `json:"area"`
	LoanAmount       float64          `json:"loanAmount"`
	CurrentBalance   float64          `json:"currentBalance"`
	LoanPeriod       int              `json:"loanPeriod"`
	PaymentFrequency string           `json:"paymentFrequency"`
	Status           string           `json:"status"`
	LoanType         string           `json:"loanType"`
	StartAt          *time.Time       `json:"startAt,omitempty"`
	EndAt            *time.Time       `json:"endAt,omitempty"`
	Collateral       []CollateralItem `json:"collateral,omitempty"`
}

// CollateralItem is a normalized collateral descriptor attached to a loan.
type CollateralItem struct {
	Label          string   `json:"label"`
	EstimatedValue *float64 `json:"estimatedValue,omitempty"`
	ImageRef       string   `json:"imageRef,omitempty"`
}

// LoanView decorates a normalized loan with the values derived at
// classification time.
type LoanView struct {
	Loan
	OverdueDays int     `json:"overdueDays"`
	LateFee     float64 `json:"lateFee"`
}

// CollateralView is one row of the collateral-at-risk review list: a single
// collateral item flattened together with its parent loan's context.
type CollateralView struct {
	Label          string     `json:"label"`
	EstimatedValue *float64   `json:"estimatedValue,omitempty"`
	ImageRef       string     `json:"imageRef,omitempty"`
	LoanID         string     `json:"loanId"`
	Borrower       string     `json:"borrower"`
	Mobile         string     `json:"mobile"`
	Area           string     `json:"area"`
	StartAt        *time.Time `json:"startAt,omitempty"`
	EndAt          *time.Time `json:"endAt,omitempty"`
	CurrentBalance float64    `json:"currentBalance"`
	OverdueDays    int        `json:"overdueDays"`
	LateFee        float64    `json:"lateFee"`
}
