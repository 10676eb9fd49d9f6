package lifecycle

import (
	"strings"

	"github.com/sam-zarila/essa-admin/internal/pkg/consts"
)

// NormalizeStatus lower-cases a raw status string and collapses the finished
// synonyms to "closed". Unrecognized values pass through unchanged; documents
// predating the status cleanup still carry free-form values and the console
// displays them as-is rather than rejecting the record.
func NormalizeStatus(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return consts.StatusPending
	}
	switch s {
	case "finished", "complete", "completed":
		return consts.StatusClosed
	}
	return s
}

// NormalizeFrequency lower-cases a raw payment frequency, defaulting to
// monthly when absent.
func NormalizeFrequency(raw string) string {
	f := strings.ToLower(strings.TrimSpace(raw))
	if f == "" {
		return consts.FrequencyMonthly
	}
	return f
}

// NormalizeLoanType lower-cases a raw loan type, defaulting to "unknown".
func NormalizeLoanType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	if t == "" {
		return consts.LoanTypeUnknown
	}
	return t
}
