package services

import (
	"context"
	"time"

	"github.com/sam-zarila/essa-admin/internal/pkg/lifecycle"
	"github.com/sam-zarila/essa-admin/internal/pkg/logger"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// CollateralService flattens the collateral held against all loans into one
// reviewable list, newest pledge first.
type CollateralService struct {
	loanRepo LoanRawRepo
	kycRepo  KycRawRepo
}

func NewCollateralService(loanRepo LoanRawRepo, kycRepo KycRawRepo) *CollateralService {
	return &CollateralService{loanRepo: loanRepo, kycRepo: kycRepo}
}

func (s *CollateralService) List(ctx context.Context) ([]models.CollateralView, error) {
	rawLoans, err := s.loanRepo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	loans := make([]models.Loan, 0, len(rawLoans))
	for _, raw := range rawLoans {
		loans = append(loans, lifecycle.NormalizeLoan(raw))
	}

	if rawKyc, err := s.kycRepo.Snapshot(ctx); err == nil {
		records := make([]models.KycRecord, 0, len(rawKyc))
		for _, raw := range rawKyc {
			records = append(records, lifecycle.NormalizeKyc(raw))
		}
		lifecycle.BackfillFromKyc(loans, records)
	} else {
		logger.Warn(ctx, "collateral : kyc snapshot failed: %v", err)
	}

	now := time.Now().UTC()
	return lifecycle.AggregateCollateral(loans, now, ClassifierOptions(now).LateFeeDailyRate), nil
}
