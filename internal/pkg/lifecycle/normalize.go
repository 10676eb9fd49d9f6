package lifecycle

import (
	"strings"

	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// NormalizeLoan projects a raw loan document onto the canonical Loan shape.
// Every field degrades to a safe default on malformed input; this function
// never fails.
func NormalizeLoan(raw models.RawDoc) models.Loan {
	first, last := ResolveName(raw)
	loan := models.Loan{
		ID:               ResolveID(raw),
		FirstName:        first,
		LastName:         last,
		Title:            ResolveString(raw, TitleAliases),
		Mobile:           ResolveString(raw, MobileAliases),
		Email:            ResolveString(raw, EmailAliases),
		Area:             ResolveString(raw, AreaAliases),
		LoanAmount:       ResolveNumber(raw, AmountAliases),
		LoanPeriod:       ResolveInt(raw, PeriodAliases),
		PaymentFrequency: NormalizeFrequency(ResolveString(raw, FrequencyAliases)),
		Status:           NormalizeStatus(ResolveString(raw, StatusAliases)),
		LoanType:         NormalizeLoanType(ResolveString(raw, LoanTypeAliases)),
		StartAt:          ResolveTime(raw, StartAliases),
		Collateral:       normalizeCollateral(ResolveField(raw, CollateralAliases)),
	}
	loan.ApplicantName = joinName(loan.Title, first, last)

	// Balance falls back to the principal: legacy applications were written
	// before any repayment tracking existed.
	if balanceField := ResolveField(raw, BalanceAliases); balanceField != nil {
		loan.CurrentBalance = ResolveNumber(raw, BalanceAliases)
	} else {
		loan.CurrentBalance = loan.LoanAmount
	}

	// An explicit maturity date wins over the computed one.
	if explicit := ResolveTime(raw, EndAliases); explicit != nil {
		loan.EndAt = explicit
	} else {
		loan.EndAt = ComputeEndDate(ResolveField(raw, StartAliases), loan.LoanPeriod, loan.PaymentFrequency)
	}
	return loan
}

// NormalizeKyc projects a raw KYC document onto the canonical KycRecord.
func NormalizeKyc(raw models.RawDoc) models.KycRecord {
	first, last := ResolveName(raw)
	return models.KycRecord{
		ID:        ResolveID(raw),
		FirstName: first,
		LastName:  last,
		Mobile:    ResolveString(raw, MobileAliases),
		Area:      ResolveString(raw, AreaAliases),
		CreatedAt: ResolveTime(raw, StartAliases),
	}
}

// NormalizeProposal projects a raw calculator proposal document.
func NormalizeProposal(raw models.RawDoc) models.Proposal {
	first, last := ResolveName(raw)
	return models.Proposal{
		ID:               ResolveID(raw),
		ApplicantName:    joinName("", first, last),
		Mobile:           ResolveString(raw, MobileAliases),
		Email:            ResolveString(raw, EmailAliases),
		Area:             ResolveString(raw, AreaAliases),
		LoanAmount:       ResolveNumber(raw, AmountAliases),
		LoanPeriod:       ResolveInt(raw, PeriodAliases),
		PaymentFrequency: NormalizeFrequency(ResolveString(raw, FrequencyAliases)),
		LoanType:         NormalizeLoanType(ResolveString(raw, LoanTypeAliases)),
		Status:           NormalizeStatus(ResolveString(raw, StatusAliases)),
		CreatedAt:        ResolveTime(raw, StartAliases),
	}
}

func normalizeCollateral(v interface{}) []models.CollateralItem {
	items, ok := asSlice(v)
	if !ok {
		return nil
	}
	out := make([]models.CollateralItem, 0, len(items))
	for _, item := range items {
		doc, isMap := asMap(item)
		if !isMap {
			// A bare string entry is a label with nothing else attached.
			if s, isStr := item.(string); isStr && strings.TrimSpace(s) != "" {
				out = append(out, models.CollateralItem{Label: s})
			}
			continue
		}
		out = append(out, models.CollateralItem{
			Label:          resolveCollateralLabel(doc),
			EstimatedValue: resolveCollateralValue(doc),
			ImageRef:       resolveCollateralImage(doc),
		})
	}
	return out
}

func resolveCollateralLabel(doc models.RawDoc) string {
	if label := ResolveString(doc, CollateralLabelAliases); label != "" {
		return label
	}
	make_ := ResolveString(doc, []string{"make", "brand"})
	model := ResolveString(doc, []string{"model"})
	combined := strings.TrimSpace(make_ + " " + model)
	if combined != "" {
		return combined
	}
	return "Item"
}

func resolveCollateralValue(doc models.RawDoc) *float64 {
	v := ResolveField(doc, CollateralValueAliases)
	if v == nil {
		return nil
	}
	n, ok := toFloat(v)
	if !ok {
		return nil
	}
	return &n
}

// resolveCollateralImage finds a displayable image reference: a direct URL
// string, a bare base64 payload (prefixed into a data URI), or the first
// resolvable entry of a nested image descriptor array.
func resolveCollateralImage(doc models.RawDoc) string {
	if ref := imageRefFromValue(ResolveField(doc, CollateralImageAliases)); ref != "" {
		return ref
	}
	for _, key := range CollateralImageArrays {
		entries, ok := asSlice(doc[key])
		if !ok {
			continue
		}
		for _, entry := range entries {
			if ref := imageRefFromValue(entry); ref != "" {
				return ref
			}
			if nested, isMap := asMap(entry); isMap {
				if ref := imageRefFromValue(ResolveField(nested, []string{"url", "uri", "src", "data"})); ref != "" {
					return ref
				}
			}
		}
	}
	return ""
}

func imageRefFromValue(v interface{}) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "gs://") || strings.HasPrefix(s, "data:") {
		return s
	}
	// Anything else long enough is assumed to be a raw base64 payload.
	if len(s) > 64 {
		return "data:image/jpeg;base64," + s
	}
	return ""
}

func joinName(title, first, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{title, first, last} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, " ")
}
