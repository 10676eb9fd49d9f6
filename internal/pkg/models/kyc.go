package models

import "time"

// KycRecord is the normalized projection of a KYC profile document. It is
// only read to backfill missing applicant fields on a loan.
type KycRecord struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Mobile    string     `json:"mobile"`
	Area      string     `json:"area"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
}

// FullName joins the name parts, skipping whichever is empty.
func (k KycRecord) FullName() string {
	if k.FirstName == "" {
		return k.LastName
	}
	if k.LastName == "" {
		return k.FirstName
	}
	return k.FirstName + " " + k.LastName
}
