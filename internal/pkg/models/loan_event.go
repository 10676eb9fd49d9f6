package models

import "time"

// LoanEvent is published to Kafka on every loan mutation so dashboard
// consumers can trigger a re-classification without polling.
type LoanEvent struct {
	EventID   string    `json:"eventId"`
	Event     string    `json:"event"`
	LoanID    string    `json:"loanId"`
	Actor     string    `json:"actor,omitempty"`
	Amount    float64   `json:"amount,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
