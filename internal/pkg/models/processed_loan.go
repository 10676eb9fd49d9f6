package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProcessedLoan is a loan moved out of the active set by an admin decision.
// Original keeps the source document verbatim so a "consider" action can
// restore it exactly; Summary is the normalized projection kept for listing
// and for best-effort reconstruction when Original is missing.
type ProcessedLoan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	LoanID    string             `bson:"loanId" json:"loanId"`
	Decision  string             `bson:"decision" json:"decision"`
	DecidedBy string             `bson:"decidedBy" json:"decidedBy"`
	DecidedAt time.Time          `bson:"decidedAt" json:"decidedAt"`
	Summary   Loan               `bson:"summary" json:"summary"`
	Original  bson.M             `bson:"original,omitempty" json:"-"`
}

// DecisionAudit is one audit trail entry per admin action. The collection
// carries a TTL index on createdAt.
type DecisionAudit struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	LoanID    string             `bson:"loanId"`
	Action    string             `bson:"action"`
	Actor     string             `bson:"actor"`
	Detail    string             `bson:"detail,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
}
