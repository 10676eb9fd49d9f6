package services

import (
	"context"

	"github.com/sam-zarila/essa-admin/internal/pkg/lifecycle"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// KycService surfaces identity records that are not yet linked to any loan,
// the review queue for onboarding.
type KycService struct {
	kycRepo  KycRawRepo
	loanRepo LoanRawRepo
}

func NewKycService(kycRepo KycRawRepo, loanRepo LoanRawRepo) *KycService {
	return &KycService{kycRepo: kycRepo, loanRepo: loanRepo}
}

// Pending returns KYC records with no matching loan by phone digits.
func (s *KycService) Pending(ctx context.Context) ([]models.KycRecord, error) {
	rawKyc, err := s.kycRepo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rawLoans, err := s.loanRepo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	linked := make(map[string]struct{}, len(rawLoans))
	for _, raw := range rawLoans {
		loan := lifecycle.NormalizeLoan(raw)
		if digits := lifecycle.PhoneDigits(loan.Mobile); digits != "" {
			linked[digits] = struct{}{}
		}
	}

	pending := []models.KycRecord{}
	for _, raw := range rawKyc {
		record := lifecycle.NormalizeKyc(raw)
		digits := lifecycle.PhoneDigits(record.Mobile)
		if digits == "" {
			pending = append(pending, record)
			continue
		}
		if _, ok := linked[digits]; !ok {
			pending = append(pending, record)
		}
	}
	return pending, nil
}
