package consts

// Canonical loan statuses. Raw documents carry free-form strings; the
// lifecycle normalizer lower-cases them and collapses the finished synonyms
// to StatusClosed. Unrecognized values pass through unchanged.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusActive   = "active"
	StatusOverdue  = "overdue"
	StatusClosed   = "closed"
	StatusDeclined = "declined"
)

const (
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
)

const LoanTypeUnknown = "unknown"

const (
	DecisionApprove = "approve"
	DecisionDecline = "decline"
)
