package lifecycle

import (
	"math"
	"time"
)

const millisPerDay = 86_400_000

// DefaultLateFeeDailyRate is 0.1% of the outstanding balance per overdue day.
const DefaultLateFeeDailyRate = 0.001

// OverdueDays counts whole days past the maturity date, rounding any partial
// day up. Zero when the maturity date is unresolvable or not yet reached.
func OverdueDays(endAt *time.Time, now time.Time) int {
	if endAt == nil {
		return 0
	}
	delta := now.UnixMilli() - endAt.UnixMilli()
	if delta <= 0 {
		return 0
	}
	return int(math.Ceil(float64(delta) / millisPerDay))
}

// LateFee accrues simple interest per overdue day on the current balance.
// No compounding.
func LateFee(currentBalance float64, overdueDays int, dailyRate float64) float64 {
	if overdueDays <= 0 || currentBalance <= 0 {
		return 0
	}
	if dailyRate <= 0 {
		dailyRate = DefaultLateFeeDailyRate
	}
	return currentBalance * dailyRate * float64(overdueDays)
}
