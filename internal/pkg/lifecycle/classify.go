package lifecycle

import (
	"sort"
	"time"

	"github.com/sam-zarila/essa-admin/internal/pkg/consts"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// Options parameterize a classification run. Classify never reads the wall
// clock; Now is always injected so runs are deterministic and testable.
type Options struct {
	Now              time.Time
	DeadlineHorizon  time.Duration
	LateFeeDailyRate float64
	ViewCap          int
	OutstandingTop   int
}

// DefaultOptions returns the production tuning around an anchor time.
func DefaultOptions(now time.Time) Options {
	return Options{
		Now:              now,
		DeadlineHorizon:  14 * 24 * time.Hour,
		LateFeeDailyRate: DefaultLateFeeDailyRate,
		ViewCap:          8,
		OutstandingTop:   6,
	}
}

func (o Options) normalized() Options {
	if o.DeadlineHorizon <= 0 {
		o.DeadlineHorizon = 14 * 24 * time.Hour
	}
	if o.LateFeeDailyRate <= 0 {
		o.LateFeeDailyRate = DefaultLateFeeDailyRate
	}
	if o.ViewCap <= 0 {
		o.ViewCap = 8
	}
	if o.OutstandingTop <= 0 {
		o.OutstandingTop = 6
	}
	return o
}

// Classify partitions a snapshot of normalized loans into the dashboard
// views and aggregates. It is a pure projection: the input slice is read,
// never mutated, and no I/O happens here. Sorts are stable so equal keys
// keep the snapshot's own ordering, which is assumed newest-first.
func Classify(loans []models.Loan, kyc []models.KycRecord, opts Options) models.DashboardEnvelope {
	opts = opts.normalized()
	now := opts.Now

	var (
		outstanding []models.LoanView
		deadlines   []models.LoanView
		overdue     []models.LoanView
		finished    []models.LoanView
		recent      []models.LoanView
	)
	totals := models.Totals{}
	breakdown := models.Breakdown{
		Status:    map[string]int{},
		LoanType:  map[string]int{},
		Frequency: map[string]int{},
	}

	horizonEnd := now.Add(opts.DeadlineHorizon)
	for _, loan := range loans {
		view := newLoanView(loan, now, opts.LateFeeDailyRate)

		breakdown.Status[loan.Status]++
		breakdown.LoanType[loan.LoanType]++
		breakdown.Frequency[loan.PaymentFrequency]++
		totals.CollateralItemCount += len(loan.Collateral)

		recent = append(recent, view)

		if isFinished(loan) {
			finished = append(finished, view)
			totals.FinishedCount++
			continue
		}

		pastDue := loan.EndAt != nil && loan.EndAt.Before(now)
		if pastDue && loan.CurrentBalance > 0 {
			// Overdue counts every past-due loan with money owed, whatever
			// its stored status; the collateral view is the stricter subset
			// reviewed for repossession.
			totals.OverdueCount++
			if len(loan.Collateral) > 0 {
				overdue = append(overdue, view)
			}
		}

		if !isOutstanding(loan) {
			continue
		}

		outstanding = append(outstanding, view)
		totals.OutstandingCount++
		totals.OutstandingBalance += loan.CurrentBalance

		if loan.EndAt != nil && !pastDue && !loan.EndAt.After(horizonEnd) {
			deadlines = append(deadlines, view)
		}
	}

	sort.SliceStable(outstanding, func(i, j int) bool {
		return outstanding[i].CurrentBalance > outstanding[j].CurrentBalance
	})
	sort.SliceStable(deadlines, func(i, j int) bool {
		return deadlines[i].EndAt.Before(*deadlines[j].EndAt)
	})
	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].EndAt.Before(*overdue[j].EndAt)
	})

	return models.DashboardEnvelope{
		Totals:                totals,
		OutstandingTop:        capViews(outstanding, opts.OutstandingTop),
		DeadlinesUpcoming:     capViews(deadlines, opts.ViewCap),
		OverdueWithCollateral: capViews(overdue, opts.ViewCap),
		Finished:              capViews(finished, opts.ViewCap),
		RecentApplicants:      capViews(recent, opts.ViewCap),
		KycPending:            countKycPending(loans, kyc),
		Breakdown:             breakdown,
		UpdatedAt:             now,
	}
}

// ClassifyRaw normalizes raw documents, backfills from KYC, and classifies.
// This is the entry point the dashboard service calls with a fresh snapshot.
func ClassifyRaw(rawLoans, rawKyc []models.RawDoc, opts Options) models.DashboardEnvelope {
	loans := make([]models.Loan, 0, len(rawLoans))
	for _, raw := range rawLoans {
		loans = append(loans, NormalizeLoan(raw))
	}
	kyc := make([]models.KycRecord, 0, len(rawKyc))
	for _, raw := range rawKyc {
		kyc = append(kyc, NormalizeKyc(raw))
	}
	BackfillFromKyc(loans, kyc)
	return Classify(loans, kyc, opts)
}

func newLoanView(loan models.Loan, now time.Time, dailyRate float64) models.LoanView {
	days := OverdueDays(loan.EndAt, now)
	return models.LoanView{
		Loan:        loan,
		OverdueDays: days,
		LateFee:     LateFee(loan.CurrentBalance, days, dailyRate),
	}
}

// isFinished: a zero balance ends a loan no matter what the stored status
// still says.
func isFinished(loan models.Loan) bool {
	return loan.CurrentBalance <= 0 || loan.Status == consts.StatusClosed
}

func isOutstanding(loan models.Loan) bool {
	if loan.CurrentBalance <= 0 {
		return false
	}
	return loan.Status == consts.StatusApproved || loan.Status == consts.StatusActive
}

func capViews(views []models.LoanView, limit int) []models.LoanView {
	if views == nil {
		return []models.LoanView{}
	}
	if limit > 0 && len(views) > limit {
		return views[:limit]
	}
	return views
}

// countKycPending counts KYC records not yet linked to any loan by phone
// digits; these are the profiles still waiting in the review queue.
func countKycPending(loans []models.Loan, kyc []models.KycRecord) int {
	seen := make(map[string]struct{}, len(loans))
	for _, loan := range loans {
		if digits := PhoneDigits(loan.Mobile); digits != "" {
			seen[digits] = struct{}{}
		}
	}
	pending := 0
	for _, record := range kyc {
		digits := PhoneDigits(record.Mobile)
		if digits == "" {
			pending++
			continue
		}
		if _, linked := seen[digits]; !linked {
			pending++
		}
	}
	return pending
}
