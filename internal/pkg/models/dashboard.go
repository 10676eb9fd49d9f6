package models

import "time"

// Totals are computed over the unbounded outstanding and finished sets, not
// the capped display slices.
type Totals struct {
	OutstandingCount    int     `json:"outstandingCount"`
	OutstandingBalance  float64 `json:"outstandingBalance"`
	CollateralItemCount int     `json:"collateralItemCount"`
	FinishedCount       int     `json:"finishedCount"`
	OverdueCount        int     `json:"overdueCount"`
}

// Breakdown holds frequency tables over the normalized status, loan type and
// payment frequency of every loan in the snapshot.
type Breakdown struct {
	Status    map[string]int `json:"status"`
	LoanType  map[string]int `json:"loanType"`
	Frequency map[string]int `json:"frequency"`
}

// DashboardEnvelope is the response shape served to the admin console.
type DashboardEnvelope struct {
	Totals                Totals     `json:"totals"`
	OutstandingTop        []LoanView `json:"outstandingTop"`
	DeadlinesUpcoming     []LoanView `json:"deadlinesUpcoming"`
	OverdueWithCollateral []LoanView `json:"overdueWithCollateral"`
	Finished              []LoanView `json:"finished"`
	RecentApplicants      []LoanView `json:"recentApplicants"`
	KycPending            int        `json:"kycPending"`
	Breakdown             Breakdown  `json:"breakdown"`
	UpdatedAt             time.Time  `json:"updatedAt"`
}

// BadgeCounts are the per-section "new since last seen" counters shown next
// to the console navigation items.
type BadgeCounts struct {
	Loans     int `json:"loans"`
	Kyc       int `json:"kyc"`
	Proposals int `json:"proposals"`
}
