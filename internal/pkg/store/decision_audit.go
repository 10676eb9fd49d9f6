package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sam-zarila/essa-admin/configs"
	"github.com/sam-zarila/essa-admin/internal/pkg/db"
	"github.com/sam-zarila/essa-admin/internal/pkg/logger"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// DecisionAuditRepository appends one entry per admin action. Entries age
// out through the TTL index on createdAt.
type DecisionAuditRepository struct {
	repo *MongoRepository[models.DecisionAudit]
}

func NewDecisionAuditRepository() *DecisionAuditRepository {
	collection := db.MDB.Database.Collection(configs.DECISION_AUDIT_COLLECTION)
	mrepo := NewMongoRepository[models.DecisionAudit](collection)
	return &DecisionAuditRepository{repo: mrepo}
}

func (r *DecisionAuditRepository) Record(ctx context.Context, entry models.DecisionAudit) {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if _, err := r.repo.Create(entry); err != nil {
		// Audit writes never fail the admin action itself.
		logger.Error(ctx, "decision audit : Error while inserting %v", err.Error())
	}
}

func (r *DecisionAuditRepository) ByLoanID(ctx context.Context, loanID string) ([]models.DecisionAudit, error) {
	return r.repo.FindAllSorted(bson.M{"loanId": loanID}, bson.D{{Key: "createdAt", Value: -1}})
}
