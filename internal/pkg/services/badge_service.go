package services

import (
	"context"
	"strconv"

	"github.com/sam-zarila/essa-admin/internal/pkg/consts"
	"github.com/sam-zarila/essa-admin/internal/pkg/lifecycle"
	"github.com/sam-zarila/essa-admin/internal/pkg/logger"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
	storeModel "github.com/sam-zarila/essa-admin/internal/pkg/store/models"
)

// BadgeService computes the "new items" counters on the console's nav.
// A badge is the number of pending items beyond the high-water mark the
// admin last acknowledged; the mark lives in the KV store.
type BadgeService struct {
	loanRepo     LoanRawRepo
	kycService   *KycService
	proposalRepo ProposalRawRepo
	kv           RedisStoreOperations
	keys         *storeModel.RedisKeyBuilder
}

func NewBadgeService(loanRepo LoanRawRepo, kycService *KycService, proposalRepo ProposalRawRepo, kv RedisStoreOperations) *BadgeService {
	return &BadgeService{
		loanRepo:     loanRepo,
		kycService:   kycService,
		proposalRepo: proposalRepo,
		kv:           kv,
		keys:         storeModel.NewRedisKeyBuilder(),
	}
}

func (s *BadgeService) Counts(ctx context.Context) (models.BadgeCounts, error) {
	counts := models.BadgeCounts{}

	loans, err := s.pendingLoans(ctx)
	if err != nil {
		return counts, err
	}
	kyc, err := s.pendingKyc(ctx)
	if err != nil {
		return counts, err
	}
	proposals, err := s.pendingProposals(ctx)
	if err != nil {
		return counts, err
	}

	counts.Loans = badge(loans, s.lastSeen(ctx, consts.BadgeSectionLoans))
	counts.Kyc = badge(kyc, s.lastSeen(ctx, consts.BadgeSectionKyc))
	counts.Proposals = badge(proposals, s.lastSeen(ctx, consts.BadgeSectionProposals))
	return counts, nil
}

// MarkSeen records the current pending count as the acknowledged mark for
// one section.
func (s *BadgeService) MarkSeen(ctx context.Context, section string) error {
	var current int
	var err error
	switch section {
	case consts.BadgeSectionLoans:
		current, err = s.pendingLoans(ctx)
	case consts.BadgeSectionKyc:
		current, err = s.pendingKyc(ctx)
	case consts.BadgeSectionProposals:
		current, err = s.pendingProposals(ctx)
	}
	if err != nil {
		return err
	}
	if s.kv == nil {
		return nil
	}
	return s.kv.Set(ctx, s.keys.BadgeSeenKey(section), strconv.Itoa(current), 0)
}

func (s *BadgeService) pendingLoans(ctx context.Context) (int, error) {
	raw, err := s.loanRepo.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, doc := range raw {
		if lifecycle.NormalizeLoan(doc).Status == consts.StatusPending {
			count++
		}
	}
	return count, nil
}

func (s *BadgeService) pendingKyc(ctx context.Context) (int, error) {
	records, err := s.kycService.Pending(ctx)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

func (s *BadgeService) pendingProposals(ctx context.Context) (int, error) {
	raw, err := s.proposalRepo.Snapshot(ctx)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, doc := range raw {
		if lifecycle.NormalizeProposal(doc).Status == consts.StatusPending {
			count++
		}
	}
	return count, nil
}

func (s *BadgeService) lastSeen(ctx context.Context, section string) int {
	if s.kv == nil {
		return 0
	}
	value, err := s.kv.Get(ctx, s.keys.BadgeSeenKey(section))
	if err != nil {
		return 0
	}
	payload, ok := value.([]byte)
	if !ok {
		return 0
	}
	seen, err := strconv.Atoi(string(payload))
	if err != nil {
		logger.Warn(ctx, "badges : unreadable mark for %s: %v", section, err)
		return 0
	}
	return seen
}

func badge(current, seen int) int {
	if current <= seen {
		return 0
	}
	return current - seen
}
