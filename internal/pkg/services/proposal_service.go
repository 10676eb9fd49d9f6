package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sam-zarila/essa-admin/internal/pkg/common"
	"github.com/sam-zarila/essa-admin/internal/pkg/consts"
	"github.com/sam-zarila/essa-admin/internal/pkg/lifecycle"
	"github.com/sam-zarila/essa-admin/internal/pkg/logger"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// ProposalService reviews calculator proposals. Approving one materializes
// a real loan application; the proposal itself only changes status so the
// borrower's submission history stays intact.
type ProposalService struct {
	proposalRepo ProposalRawRepo
	loanRepo     LoanRawRepo
	auditRepo    AuditRecorder
	notifier     BorrowerNotifier
	events       LoanEventPublisher
}

func NewProposalService(
	proposalRepo ProposalRawRepo,
	loanRepo LoanRawRepo,
	auditRepo AuditRecorder,
	notifier BorrowerNotifier,
	events LoanEventPublisher,
) *ProposalService {
	return &ProposalService{
		proposalRepo: proposalRepo,
		loanRepo:     loanRepo,
		auditRepo:    auditRepo,
		notifier:     notifier,
		events:       events,
	}
}

func (s *ProposalService) List(ctx context.Context) ([]models.Proposal, error) {
	raw, err := s.proposalRepo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	proposals := make([]models.Proposal, 0, len(raw))
	for _, doc := range raw {
		proposals = append(proposals, lifecycle.NormalizeProposal(doc))
	}
	return proposals, nil
}

// Decide approves or declines a pending proposal. Approval writes a new
// loan application carrying the proposal's terms, with any overrides the
// admin supplied.
func (s *ProposalService) Decide(ctx context.Context, proposalID string, request models.ProposalApproveRequest, actor string) (models.Proposal, error) {
	raw, err := s.proposalRepo.RawByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.Proposal{}, consts.ErrorProposalNotFound
		}
		return models.Proposal{}, err
	}

	proposal := lifecycle.NormalizeProposal(raw)
	if proposal.Status != consts.StatusPending {
		return models.Proposal{}, consts.ErrorProposalAlreadyDecided
	}

	if request.Action == consts.DecisionDecline {
		if err := s.proposalRepo.UpdateByID(ctx, proposalID, bson.M{"status": consts.StatusDeclined}); err != nil {
			return models.Proposal{}, err
		}
		proposal.Status = consts.StatusDeclined

		s.auditRepo.Record(ctx, models.DecisionAudit{LoanID: proposal.ID, Action: "proposal_decline", Actor: actor})
		s.publishEvent(ctx, consts.ProposalDeclined, proposal.ID, actor, proposal.LoanAmount)
		s.notifier.NotifyBorrowerAsync(ctx, proposal.Mobile, consts.ProposalDeclined, map[string]string{
			"name": proposal.ApplicantName,
		})
		return proposal, nil
	}

	// Admin overrides win over the borrower's sketch.
	if request.LoanAmount > 0 {
		proposal.LoanAmount = request.LoanAmount
	}
	if request.LoanPeriod > 0 {
		proposal.LoanPeriod = request.LoanPeriod
	}
	if request.PaymentFrequency != "" {
		proposal.PaymentFrequency = lifecycle.NormalizeFrequency(request.PaymentFrequency)
	}

	if err := s.loanRepo.InsertRaw(ctx, loanDocFromProposal(proposal)); err != nil {
		return models.Proposal{}, err
	}
	if err := s.proposalRepo.UpdateByID(ctx, proposalID, bson.M{"status": consts.StatusApproved}); err != nil {
		logger.Error(ctx, "proposals : loan created but proposal %s not marked approved: %v", proposalID, err)
	}
	proposal.Status = consts.StatusApproved

	s.auditRepo.Record(ctx, models.DecisionAudit{
		LoanID: proposal.ID,
		Action: "proposal_approve",
		Actor:  actor,
		Detail: common.FormatAmount(proposal.LoanAmount),
	})
	s.publishEvent(ctx, consts.ProposalApproved, proposal.ID, actor, proposal.LoanAmount)
	s.notifier.NotifyBorrowerAsync(ctx, proposal.Mobile, consts.ProposalApproved, map[string]string{
		"name":   proposal.ApplicantName,
		"amount": common.FormatAmount(proposal.LoanAmount),
	})

	return proposal, nil
}

func (s *ProposalService) publishEvent(ctx context.Context, event string, proposalID string, actor string, amount float64) {
	if s.events == nil {
		return
	}
	err := s.events.PublishLoanEvent(ctx, models.LoanEvent{
		EventID:   uuid.New().String(),
		Event:     event,
		LoanID:    proposalID,
		Actor:     actor,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		logger.Error(ctx, "proposals : event %s for proposal %s not published: %v", event, proposalID, err)
	}
}

func loanDocFromProposal(proposal models.Proposal) models.RawDoc {
	now := time.Now().UTC()
	doc := models.RawDoc{
		"_id":              primitive.NewObjectID(),
		"applicantName":    proposal.ApplicantName,
		"mobile":           proposal.Mobile,
		"email":            proposal.Email,
		"area":             proposal.Area,
		"loanAmount":       proposal.LoanAmount,
		"currentBalance":   proposal.LoanAmount,
		"loanPeriod":       proposal.LoanPeriod,
		"paymentFrequency": proposal.PaymentFrequency,
		"status":           consts.StatusApproved,
		"loanType":         proposal.LoanType,
		"proposalId":       proposal.ID,
		"createdAt":        primitive.NewDateTimeFromTime(now),
	}
	if end := lifecycle.ComputeEndDate(now, proposal.LoanPeriod, proposal.PaymentFrequency); end != nil {
		doc["endDate"] = primitive.NewDateTimeFromTime(*end)
	}
	return doc
}
