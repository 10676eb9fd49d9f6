package lifecycle

import (
	"time"

	"github.com/sam-zarila/essa-admin/internal/pkg/consts"
)

// ComputeEndDate derives a loan's maturity date from its start instant, its
// period count and its payment frequency: period*7 calendar days for weekly
// loans, period calendar months otherwise. Month arithmetic uses AddDate, so
// day-of-month overflow rolls into the next month (Jan 31 + 1 month =
// Mar 2/3); that rollover is the accepted behavior. Returns nil when the
// start cannot be resolved or the period is not positive.
func ComputeEndDate(start interface{}, period int, frequency string) *time.Time {
	if period <= 0 {
		return nil
	}
	startAt := ToTime(start)
	if startAt == nil {
		return nil
	}
	var end time.Time
	if NormalizeFrequency(frequency) == consts.FrequencyWeekly {
		end = startAt.AddDate(0, 0, period*7)
	} else {
		end = startAt.AddDate(0, period, 0)
	}
	return &end
}
