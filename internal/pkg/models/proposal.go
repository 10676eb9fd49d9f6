package models

import "time"

// Proposal is the normalized projection of a calculator proposal document:
// a loan sketch a prospective borrower built in the public calculator,
// waiting for an admin to approve or decline it.
type Proposal struct {
	ID               string     `json:"id"`
	ApplicantName    string     `json:"applicantName"`
	Mobile           string     `json:"mobile"`
	Email            string     `json:"email"`
	Area             string     `json:"area"`
	LoanAmount       float64    `json:"loanAmount"`
	LoanPeriod       int        `json:"loanPeriod"`
	PaymentFrequency string     `json:"paymentFrequency"`
	LoanType         string     `json:"loanType"`
	Status           string     `json:"status"`
	CreatedAt        *time.Time `json:"createdAt,omitempty"`
}
