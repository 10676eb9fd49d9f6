package consts

// Loan event names published to Kafka and used as notification events.
const (
	LoanEventApproved   = "LoanApproved"
	LoanEventDeclined   = "LoanDeclined"
	LoanEventConsidered = "LoanConsidered"
	LoanEventPayment    = "LoanPaymentRecorded"
	LoanEventClosed     = "LoanClosed"
	ProposalApproved    = "ProposalApproved"
	ProposalDeclined    = "ProposalDeclined"
)

// Badge sections tracked per admin in the KV store.
const (
	BadgeSectionLoans     = "loans"
	BadgeSectionKyc       = "kyc"
	BadgeSectionProposals = "proposals"
)

// Request header keys masked before request details are logged.
var SensitiveKeys = []string{"Authorization", "Cookie", "X-Api-Key"}
