package lifecycle

import (
	"sort"
	"time"

	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// AggregateCollateral flattens every loan's collateral items into the
// review list, each row carrying the parent loan's borrower context and its
// late-fee estimate. Rows are sorted by loan start time descending; loans
// without a resolvable start sort last. No mutation happens here.
func AggregateCollateral(loans []models.Loan, now time.Time, dailyRate float64) []models.CollateralView {
	if dailyRate <= 0 {
		dailyRate = DefaultLateFeeDailyRate
	}
	var rows []models.CollateralView
	for _, loan := range loans {
		if len(loan.Collateral) == 0 {
			continue
		}
		days := OverdueDays(loan.EndAt, now)
		fee := LateFee(loan.CurrentBalance, days, dailyRate)
		for _, item := range loan.Collateral {
			rows = append(rows, models.CollateralView{
				Label:          item.Label,
				EstimatedValue: item.EstimatedValue,
				ImageRef:       item.ImageRef,
				LoanID:         loan.ID,
				Borrower:       loan.ApplicantName,
				Mobile:         loan.Mobile,
				Area:           loan.Area,
				StartAt:        loan.StartAt,
				EndAt:          loan.EndAt,
				CurrentBalance: loan.CurrentBalance,
				OverdueDays:    days,
				LateFee:        fee,
			})
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i].StartAt, rows[j].StartAt
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.After(*b)
	})
	if rows == nil {
		rows = []models.CollateralView{}
	}
	return rows
}
