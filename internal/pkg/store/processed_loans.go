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

// ProcessedLoanRepository holds applications an admin has already decided
// on. The original document travels along verbatim so a "consider" can put
// it back exactly as it was.
type ProcessedLoanRepository struct {
	repo *MongoRepository[models.ProcessedLoan]
}

func NewProcessedLoanRepository() *ProcessedLoanRepository {
	collection := db.MDB.Database.Collection(configs.PROCESSED_LOAN_COLLECTION)
	mrepo := NewMongoRepository[models.ProcessedLoan](collection)
	return &ProcessedLoanRepository{repo: mrepo}
}

func (r *ProcessedLoanRepository) Insert(ctx context.Context, processed models.ProcessedLoan) error {
	if processed.DecidedAt.IsZero() {
		processed.DecidedAt = time.Now().UTC()
	}
	_, err := r.repo.Create(processed)
	if err != nil {
		logger.Error(ctx, "processed loans : Error while inserting %v", err.Error())
	}
	return err
}

func (r *ProcessedLoanRepository) ByLoanID(ctx context.Context, loanID string) (models.ProcessedLoan, error) {
	return r.repo.Read(bson.M{"loanId": loanID})
}

func (r *ProcessedLoanRepository) DeleteByLoanID(ctx context.Context, loanID string) error {
	return r.repo.Delete(bson.M{"loanId": loanID})
}

func (r *ProcessedLoanRepository) FindAll(ctx context.Context) ([]models.ProcessedLoan, error) {
	return r.repo.FindAllSorted(bson.M{}, bson.D{{Key: "decidedAt", Value: -1}})
}
