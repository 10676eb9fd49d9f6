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

// LoanAdminService carries the admin actions on loan applications: the
// approve/decline decision, restoring a processed application, recording
// repayments and closing a loan. Every mutation writes an audit entry,
// publishes a loan event, and queues a borrower notification.
type LoanAdminService struct {
	loanRepo      LoanRawRepo
	kycRepo       KycRawRepo
	processedRepo ProcessedLoanRepo
	auditRepo     AuditRecorder
	notifier      BorrowerNotifier
	events        LoanEventPublisher
}

func NewLoanAdminService(
	loanRepo LoanRawRepo,
	kycRepo KycRawRepo,
	processedRepo ProcessedLoanRepo,
	auditRepo AuditRecorder,
	notifier BorrowerNotifier,
	events LoanEventPublisher,
) *LoanAdminService {
	return &LoanAdminService{
		loanRepo:      loanRepo,
		kycRepo:       kycRepo,
		processedRepo: processedRepo,
		auditRepo:     auditRepo,
		notifier:      notifier,
		events:        events,
	}
}

// List returns every loan application as a normalized view, newest first,
// with missing contact details backfilled from KYC.
func (s *LoanAdminService) List(ctx context.Context) ([]models.LoanView, error) {
	rawLoans, err := s.loanRepo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	loans := make([]models.Loan, 0, len(rawLoans))
	for _, raw := range rawLoans {
		loans = append(loans, lifecycle.NormalizeLoan(raw))
	}
	lifecycle.BackfillFromKyc(loans, s.kycSnapshot(ctx))

	now := time.Now().UTC()
	rate := ClassifierOptions(now).LateFeeDailyRate
	views := make([]models.LoanView, 0, len(loans))
	for _, loan := range loans {
		views = append(views, loanView(loan, now, rate))
	}
	return views, nil
}

// ByID returns the normalized view of a single application.
func (s *LoanAdminService) ByID(ctx context.Context, loanID string) (models.LoanView, error) {
	raw, err := s.loanRepo.RawByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.LoanView{}, consts.ErrorLoanNotFound
		}
		return models.LoanView{}, err
	}

	loan := lifecycle.NormalizeLoan(raw)
	loans := []models.Loan{loan}
	lifecycle.BackfillFromKyc(loans, s.kycSnapshot(ctx))

	now := time.Now().UTC()
	return loanView(loans[0], now, ClassifierOptions(now).LateFeeDailyRate), nil
}

// Decide moves an application out of the active set. The raw document is
// preserved verbatim on the processed record so the decision is reversible.
func (s *LoanAdminService) Decide(ctx context.Context, loanID string, action string, actor string) (models.ProcessedLoan, error) {
	if action != consts.DecisionApprove && action != consts.DecisionDecline {
		return models.ProcessedLoan{}, consts.ErrorInvalidDecisionAction
	}

	raw, err := s.loanRepo.RawByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.ProcessedLoan{}, consts.ErrorLoanNotFound
		}
		return models.ProcessedLoan{}, err
	}

	loan := lifecycle.NormalizeLoan(raw)
	event := consts.LoanEventApproved
	if action == consts.DecisionApprove {
		loan.Status = consts.StatusApproved
	} else {
		loan.Status = consts.StatusDeclined
		event = consts.LoanEventDeclined
	}

	processed := models.ProcessedLoan{
		LoanID:    loan.ID,
		Decision:  action,
		DecidedBy: actor,
		DecidedAt: time.Now().UTC(),
		Summary:   loan,
		Original:  bson.M(raw),
	}
	if err := s.processedRepo.Insert(ctx, processed); err != nil {
		return models.ProcessedLoan{}, err
	}
	if err := s.loanRepo.DeleteByID(ctx, loanID); err != nil {
		logger.Error(ctx, "loan admin : decided loan %s not removed from active set: %v", loanID, err)
	}

	s.auditRepo.Record(ctx, models.DecisionAudit{LoanID: loan.ID, Action: action, Actor: actor})
	s.publishEvent(ctx, event, loan.ID, actor, loan.LoanAmount)
	s.notifier.NotifyBorrowerAsync(ctx, loan.Mobile, event, map[string]string{
		"name":   loan.ApplicantName,
		"amount": common.FormatAmount(loan.LoanAmount),
	})

	return processed, nil
}

// Consider puts a processed application back into the active set, verbatim
// when the original document was kept, reconstructed from the summary
// otherwise.
func (s *LoanAdminService) Consider(ctx context.Context, loanID string, actor string) (models.LoanView, error) {
	processed, err := s.processedRepo.ByLoanID(ctx, loanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.LoanView{}, consts.ErrorProcessedLoanNotFound
		}
		return models.LoanView{}, err
	}

	doc := models.RawDoc(processed.Original)
	if len(doc) == 0 {
		doc = rebuildLoanDoc(processed.Summary)
	}
	if err := s.loanRepo.InsertRaw(ctx, doc); err != nil {
		return models.LoanView{}, err
	}
	if err := s.processedRepo.DeleteByLoanID(ctx, loanID); err != nil {
		logger.Error(ctx, "loan admin : considered loan %s still in processed set: %v", loanID, err)
	}

	s.auditRepo.Record(ctx, models.DecisionAudit{LoanID: loanID, Action: "consider", Actor: actor})
	s.publishEvent(ctx, consts.LoanEventConsidered, loanID, actor, processed.Summary.LoanAmount)

	now := time.Now().UTC()
	return loanView(lifecycle.NormalizeLoan(doc), now, ClassifierOptions(now).LateFeeDailyRate), nil
}

// Payment records a repayment. Paying the balance down to zero finishes the
// loan regardless of its stored status.
func (s *LoanAdminService) Payment(ctx context.Context, loanID string, amount float64, actor string) (models.LoanView, error) {
	raw, err := s.loanRepo.RawByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.LoanView{}, consts.ErrorLoanNotFound
		}
		return models.LoanView{}, err
	}

	loan := lifecycle.NormalizeLoan(raw)
	if loan.CurrentBalance <= 0 || loan.Status == consts.StatusClosed {
		return models.LoanView{}, consts.ErrorPaymentOnFinishedLoan
	}

	newBalance := loan.CurrentBalance - amount
	if newBalance < 0 {
		newBalance = 0
	}
	fields := bson.M{"currentBalance": newBalance}
	if newBalance == 0 {
		fields["status"] = consts.StatusClosed
	}
	if err := s.loanRepo.UpdateByID(ctx, loanID, fields); err != nil {
		return models.LoanView{}, err
	}

	s.auditRepo.Record(ctx, models.DecisionAudit{
		LoanID: loan.ID,
		Action: "payment",
		Actor:  actor,
		Detail: common.FormatAmount(amount),
	})
	s.publishEvent(ctx, consts.LoanEventPayment, loan.ID, actor, amount)
	s.notifier.NotifyBorrowerAsync(ctx, loan.Mobile, consts.LoanEventPayment, map[string]string{
		"amount":  common.FormatAmount(amount),
		"balance": common.FormatAmount(newBalance),
	})

	loan.CurrentBalance = newBalance
	if newBalance == 0 {
		loan.Status = consts.StatusClosed
	}
	now := time.Now().UTC()
	return loanView(loan, now, ClassifierOptions(now).LateFeeDailyRate), nil
}

// Close settles a loan administratively: zero balance, closed status.
func (s *LoanAdminService) Close(ctx context.Context, loanID string, actor string) (models.LoanView, error) {
	raw, err := s.loanRepo.RawByID(ctx, loanID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.LoanView{}, consts.ErrorLoanNotFound
		}
		return models.LoanView{}, err
	}

	loan := lifecycle.NormalizeLoan(raw)
	fields := bson.M{"currentBalance": 0.0, "status": consts.StatusClosed}
	if err := s.loanRepo.UpdateByID(ctx, loanID, fields); err != nil {
		return models.LoanView{}, err
	}

	s.auditRepo.Record(ctx, models.DecisionAudit{LoanID: loan.ID, Action: "close", Actor: actor})
	s.publishEvent(ctx, consts.LoanEventClosed, loan.ID, actor, loan.CurrentBalance)
	s.notifier.NotifyBorrowerAsync(ctx, loan.Mobile, consts.LoanEventClosed, map[string]string{
		"name": loan.ApplicantName,
	})

	loan.CurrentBalance = 0
	loan.Status = consts.StatusClosed
	return loanView(loan, time.Now().UTC(), 0), nil
}

// Processed lists decided applications, most recent decision first.
func (s *LoanAdminService) Processed(ctx context.Context) ([]models.ProcessedLoan, error) {
	return s.processedRepo.FindAll(ctx)
}

// AuditTrail returns the recorded admin actions for one loan.
func (s *LoanAdminService) AuditTrail(ctx context.Context, loanID string) ([]models.DecisionAudit, error) {
	return s.auditRepo.ByLoanID(ctx, loanID)
}

func (s *LoanAdminService) kycSnapshot(ctx context.Context) []models.KycRecord {
	rawKyc, err := s.kycRepo.Snapshot(ctx)
	if err != nil {
		logger.Warn(ctx, "loan admin : kyc snapshot failed: %v", err)
		return nil
	}
	records := make([]models.KycRecord, 0, len(rawKyc))
	for _, raw := range rawKyc {
		records = append(records, lifecycle.NormalizeKyc(raw))
	}
	return records
}

func (s *LoanAdminService) publishEvent(ctx context.Context, event string, loanID string, actor string, amount float64) {
	if s.events == nil {
		return
	}
	err := s.events.PublishLoanEvent(ctx, models.LoanEvent{
		EventID:   uuid.New().String(),
		Event:     event,
		LoanID:    loanID,
		Actor:     actor,
		Amount:    amount,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		// The admin action already committed; the event stream catches up
		// on the next snapshot rebuild.
		logger.Error(ctx, "loan admin : event %s for loan %s not published: %v", event, loanID, err)
	}
}

func loanView(loan models.Loan, now time.Time, dailyRate float64) models.LoanView {
	days := lifecycle.OverdueDays(loan.EndAt, now)
	return models.LoanView{
		Loan:        loan,
		OverdueDays: days,
		LateFee:     lifecycle.LateFee(loan.CurrentBalance, days, dailyRate),
	}
}

// rebuildLoanDoc reconstructs a storable document from the normalized
// summary when a processed record predates verbatim retention.
func rebuildLoanDoc(loan models.Loan) models.RawDoc {
	doc := models.RawDoc{
		"applicantName":    loan.ApplicantName,
		"mobile":           loan.Mobile,
		"email":            loan.Email,
		"area":             loan.Area,
		"loanAmount":       loan.LoanAmount,
		"currentBalance":   loan.CurrentBalance,
		"loanPeriod":       loan.LoanPeriod,
		"paymentFrequency": loan.PaymentFrequency,
		"status":           consts.StatusPending,
		"loanType":         loan.LoanType,
	}
	if oid, err := primitive.ObjectIDFromHex(loan.ID); err == nil {
		doc["_id"] = oid
	} else if loan.ID != "" {
		doc["_id"] = loan.ID
	}
	if loan.StartAt != nil {
		doc["createdAt"] = primitive.NewDateTimeFromTime(*loan.StartAt)
	}
	if loan.EndAt != nil {
		doc["endDate"] = primitive.NewDateTimeFromTime(*loan.EndAt)
	}
	return doc
}
