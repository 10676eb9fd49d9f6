package lifecycle

import (
	"strings"

	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// BackfillFromKyc fills missing applicant fields on each loan from the KYC
// snapshot. A loan matches a KYC record by normalized phone digits first,
// then by exact (case-insensitive) full name. The loan slice is modified in
// place; existing loan values are never overwritten.
func BackfillFromKyc(loans []models.Loan, kyc []models.KycRecord) {
	if len(kyc) == 0 {
		return
	}
	byPhone := make(map[string]models.KycRecord, len(kyc))
	byName := make(map[string]models.KycRecord, len(kyc))
	for _, record := range kyc {
		if digits := PhoneDigits(record.Mobile); digits != "" {
			if _, exists := byPhone[digits]; !exists {
				byPhone[digits] = record
			}
		}
		if name := strings.ToLower(strings.TrimSpace(record.FullName())); name != "" {
			if _, exists := byName[name]; !exists {
				byName[name] = record
			}
		}
	}

	for i := range loans {
		loan := &loans[i]
		if loan.ApplicantName != "" && loan.Area != "" && loan.Mobile != "" {
			continue
		}
		record, found := matchKyc(loan, byPhone, byName)
		if !found {
			continue
		}
		if loan.ApplicantName == "" {
			loan.FirstName = record.FirstName
			loan.LastName = record.LastName
			loan.ApplicantName = record.FullName()
		}
		if loan.Area == "" {
			loan.Area = record.Area
		}
		if loan.Mobile == "" {
			loan.Mobile = record.Mobile
		}
	}
}

func matchKyc(loan *models.Loan, byPhone, byName map[string]models.KycRecord) (models.KycRecord, bool) {
	if digits := PhoneDigits(loan.Mobile); digits != "" {
		if record, ok := byPhone[digits]; ok {
			return record, true
		}
	}
	if name := strings.ToLower(strings.TrimSpace(loan.ApplicantName)); name != "" {
		if record, ok := byName[name]; ok {
			return record, true
		}
	}
	return models.KycRecord{}, false
}

// PhoneDigits strips everything but digits and keeps the trailing 9, which
// is enough to match local numbers written with or without a country code.
func PhoneDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) > 9 {
		digits = digits[len(digits)-9:]
	}
	return digits
}
