package tests

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sam-zarila/essa-admin/internal/pkg/consts"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
	"github.com/sam-zarila/essa-admin/internal/pkg/services"
)

func newLoanAdminService(loans *MockLoanRepo, kyc *MockKycRepo, processed *MockProcessedRepo, audit *MockAuditRecorder, notifier *MockNotifier, events *MockEventPublisher) *services.LoanAdminService {
	return services.NewLoanAdminService(loans, kyc, processed, audit, notifier, events)
}

func TestDecideApprove(t *testing.T) {
	mockLoans := new(MockLoanRepo)
	mockKyc := new(MockKycRepo)
	mockProcessed := new(MockProcessedRepo)
	mockAudit := new(MockAuditRecorder)
	mockNotifier := new(MockNotifier)
	mockEvents := new(MockEventPublisher)

	raw := models.RawDoc{
		"_id":        "loan-1",
		"name":       "Grace Banda",
		"mobile":     "0991112223",
		"loanAmount": 50000.0,
		"status":     "pending",
	}
	mockLoans.On("RawByID", mock.Anything, "loan-1").Return(raw, nil)
	mockLoans.On("DeleteByID", mock.Anything, "loan-1").Return(nil)
	mockProcessed.On("Insert", mock.Anything, mock.MatchedBy(func(p models.ProcessedLoan) bool {
		return p.LoanID == "loan-1" &&
			p.Decision == consts.DecisionApprove &&
			p.DecidedBy == "ops@essa" &&
			p.Summary.Status == consts.StatusApproved &&
			p.Original != nil
	})).Return(nil)
	mockAudit.On("Record", mock.Anything, mock.MatchedBy(func(e models.DecisionAudit) bool {
		return e.LoanID == "loan-1" && e.Action == "approve" && e.Actor == "ops@essa"
	})).Return()
	mockEvents.On("PublishLoanEvent", mock.Anything, mock.MatchedBy(func(e models.LoanEvent) bool {
		return e.Event == consts.LoanEventApproved && e.LoanID == "loan-1" && e.EventID != ""
	})).Return(nil)
	mockNotifier.On("NotifyBorrowerAsync", mock.Anything, "0991112223", consts.LoanEventApproved, mock.Anything).Return()

	service := newLoanAdminService(mockLoans, mockKyc, mockProcessed, mockAudit, mockNotifier, mockEvents)
	processed, err := service.Decide(context.Background(), "loan-1", "approve", "ops@essa")

	require.NoError(t, err)
	assert.Equal(t, "loan-1", processed.LoanID)
	assert.Equal(t, consts.StatusApproved, processed.Summary.Status)
	mockLoans.AssertExpectations(t)
	mockProcessed.AssertExpectations(t)
	mockAudit.AssertExpectations(t)
	mockEvents.AssertExpectations(t)
	mockNotifier.AssertExpectations(t)
}

func TestDecideDecline(t *testing.T) {
	mockLoans := new(MockLoanRepo)
	mockProcessed := new(MockProcessedRepo)
	mockAudit := new(MockAuditRecorder)
	mockNotifier := new(MockNotifier)
	mockEvents := new(MockEventPublisher)

	raw := models.RawDoc{"_id": "loan-2", "mobile": "0888", "status": "pending"}
	mockLoans.On("RawByID", mock.Anything, "loan-2").Return(raw, nil)
	mockLoans.On("DeleteByID", mock.Anything, "loan-2").Return(nil)
	mockProcessed.On("Insert", mock.Anything, mock.MatchedBy(func(p models.ProcessedLoan) bool {
		return p.Decision == consts.DecisionDecline && p.Summary.Status == consts.StatusDeclined
	})).Return(nil)
	mockAudit.On("Record", mock.Anything, mock.Anything).Return()
	mockEvents.On("PublishLoanEvent", mock.Anything, mock.MatchedBy(func(e models.LoanEvent) bool {
		return e.Event == consts.LoanEventDeclined
	})).Return(nil)
	mockNotifier.On("NotifyBorrowerAsync", mock.Anything, "0888", consts.LoanEventDeclined, mock.Anything).Return()

	service := newLoanAdminService(mockLoans, new(MockKycRepo), mockProcessed, mockAudit, mockNotifier, mockEvents)
	_, err := service.Decide(context.Background(), "loan-2", "decline", "ops@essa")
	require.NoError(t, err)
	mockProcessed.AssertExpectations(t)
}

func TestDecideInvalidAction(t *testing.T) {
	service := newLoanAdminService(new(MockLoanRepo), new(MockKycRepo), new(MockProcessedRepo), new(MockAuditRecorder), new(MockNotifier), new(MockEventPublisher))
	_, err := service.Decide(context.Background(), "loan-1", "escalate", "ops@essa")
	assert.Equal(t, consts.ErrorInvalidDecisionAction, err)
}

func TestDecideLoanNotFound(t *testing.T) {
	mockLoans := new(MockLoanRepo)
	mockLoans.On("RawByID", mock.Anything, "missing").Return(nil, mongo.ErrNoDocuments)

	service := newLoanAdminService(mockLoans, new(MockKycRepo), new(MockProcessedRepo), new(MockAuditRecorder), new(MockNotifier), new(MockEventPublisher))
	_, err := service.Decide(context.Background(), "missing", "approve", "ops@essa")
	assert.Equal(t, consts.ErrorLoanNotFound, err)
}

func TestConsiderRestoresOriginal(t *testing.T) {
	mockLoans := new(MockLoanRepo)
	mockProcessed := new(MockProcessedRepo)
	mockAudit := new(MockAuditRecorder)
	mockEvents := new(MockEventPublisher)

	original := bson.M{"_id": "loan-3", "customerName": "John Phiri", "amountDue": 12000.0, "loanStatus": "pending"}
	mockProcessed.On("ByLoanID", mock.Anything, "loan-3").Return(models.ProcessedLoan{
		LoanID:   "loan-3",
		Decision: consts.DecisionDecline,
		Original: original,
	}, nil)
	// The original document comes back untouched, odd field names included.
	mockLoans.On("InsertRaw", mock.Anything, models.RawDoc(original)).Return(nil)
	mockProcessed.On("DeleteByLoanID", mock.Anything, "loan-3").Return(nil)
	mockAudit.On("Record", mock.Anything, mock.MatchedBy(func(e models.DecisionAudit) bool {
		return e.Action == "consider"
	})).Return()
	mockEvents.On("PublishLoanEvent", mock.Anything, mock.MatchedBy(func(e models.LoanEvent) bool {
		return e.Event == consts.LoanEventConsidered
	})).Return(nil)

	service := newLoanAdminService(mockLoans, new(MockKycRepo), mockProcessed, mockAudit, new(MockNotifier), mockEvents)
	view, err := service.Consider(context.Background(), "loan-3", "ops@essa")

	require.NoError(t, err)
	assert.Equal(t, "John Phiri", view.ApplicantName)
	assert.Equal(t, 12000.0, view.CurrentBalance)
	mockLoans.AssertExpectations(t)
	mockProcessed.AssertExpectations(t)
}

func TestConsiderRebuildsWhenOriginalMissing(t *testing.T) {
	mockLoans := new(MockLoanRepo)
	mockProcessed := new(MockProcessedRepo)
	mockAudit := new(MockAuditRecorder)
	mockEvents := new(MockEventPublisher)

	mockProcessed.On("ByLoanID", mock.Anything, "loan-4").Return(models.ProcessedLoan{
		LoanID: "loan-4",
		Summary: models.Loan{
			ID:             "loan-4",
			ApplicantName:  "Alice Kunda",
			CurrentBalance: 8000,
			LoanAmount:     10000,
		},
	}, nil)
	mockLoans.On("InsertRaw", mock.Anything, mock.MatchedBy(func(doc models.RawDoc) bool {
		return doc["applicantName"] == "Alice Kunda" && doc["status"] == consts.StatusPending
	})).Return(nil)
	mockProcessed.On("DeleteByLoanID", mock.Anything, "loan-4").Return(nil)
	mockAudit.On("Record", mock.Anything, mock.Anything).Return()
	mockEvents.On("PublishLoanEvent", mock.Anything, mock.Anything).Return(nil)

	service := newLoanAdminService(mockLoans, new(MockKycRepo), mockProcessed, mockAudit, new(MockNotifier), mockEvents)
	view, err := service.Consider(context.Background(), "loan-4", "ops@essa")

	require.NoError(t, err)
	assert.Equal(t, consts.StatusPending, view.Status)
	mockLoans.AssertExpectations(t)
}

func TestConsiderNotFound(t *testing.T) {
	mockProcessed := new(MockProcessedRepo)
	mockProcessed.On("ByLoanID", mock.Anything, "missing").Return(models.ProcessedLoan{}, mongo.ErrNoDocuments)

	service := newLoanAdminService(new(MockLoanRepo), new(MockKycRepo), mockProcessed, new(MockAuditRecorder), new(MockNotifier), new(MockEventPublisher))
	_, err := service.Consider(context.Background(), "missing", "ops@essa")
	assert.Equal(t, consts.ErrorProcessedLoanNotFound, err)
}

func TestPayment(t *testing.T) {
	mockLoans := new(MockLoanRepo)
	mockAudit := new(MockAuditRecorder)
	mockNotifier := new(MockNotifier)
	mockEvents := new(MockEventPublisher)

	raw := models.RawDoc{"_id": "loan-5", "mobile": "0999", "currentBalance": 10000.0, "status": "active"}
	mockLoans.On("RawByID", mock.Anything, "loan-5").Return(raw, nil)
	mockLoans.On("UpdateByID", mock.Anything, "loan-5", bson.M{"currentBalance": 4000.0}).Return(nil)
	mockAudit.On("Record", mock.Anything, mock.MatchedBy(func(e models.DecisionAudit) bool {
		return e.Action == "payment" && e.Detail == "6000.00"
	})).Return()
	mockEvents.On("PublishLoanEvent", mock.Anything, mock.MatchedBy(func(e models.LoanEvent) bool {
		return e.Event == consts.LoanEventPayment && e.Amount == 6000.0
	})).Return(nil)
	mockNotifier.On("NotifyBorrowerAsync", mock.Anything, "0999", consts.LoanEventPayment, mock.Anything).Return()

	service := newLoanAdminService(mockLoans, new(MockKycRepo), new(MockProcessedRepo), mockAudit, mockNotifier, mockEvents)
	view, err := service.Payment(context.Background(), "loan-5", 6000, "ops@essa")

	require.NoError(t, err)
	assert.Equal(t, 4000.0, view.CurrentBalance)
	assert.Equal(t, "active", view.Status)
	mockLoans.AssertExpectations(t)
}

func TestPaymentFinishesLoan(t *testing.T) {
	mockLoans := new(MockLoanRepo)
	mockAudit := new(MockAuditRecorder)
	mockNotifier := new(MockNotifier)
	mockEvents := new(MockEventPublisher)

	raw := models.RawDoc{"_id": "loan-6", "currentBalance": 5000.0, "status": "active"}
	mockLoans.On("RawByID", mock.Anything, "loan-6").Return(raw, nil)
	// Overpayment clamps to zero and closes the loan.
	mockLoans.On("UpdateByID", mock.Anything, "loan-6", bson.M{"currentBalance": 0.0, "status": consts.StatusClosed}).Return(nil)
	mockAudit.On("Record", mock.Anything, mock.Anything).Return()
	mockEvents.On("PublishLoanEvent", mock.Anything, mock.Anything).Return(nil)
	mockNotifier.On("NotifyBorrowerAsync", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	service := newLoanAdminService(mockLoans, new(MockKycRepo), new(MockProcessedRepo), mockAudit, mockNotifier, mockEvents)
	view, err := service.Payment(context.Background(), "loan-6", 7000, "ops@essa")

	require.NoError(t, err)
	assert.Equal(t, 0.0, view.CurrentBalance)
	assert.Equal(t, consts.StatusClosed, view.Status)
	mockLoans.AssertExpectations(t)
}

func TestPaymentOnFinishedLoan(t *testing.T) {
	mockLoans := new(MockLoanRepo)
	raw := models.RawDoc{"_id": "loan-7", "currentBalance": 0.0, "status": "closed"}
	mockLoans.On("RawByID", mock.Anything, "loan-7").Return(raw, nil)

	service := newLoanAdminService(mockLoans, new(MockKycRepo), new(MockProcessedRepo), new(MockAuditRecorder), new(MockNotifier), new(MockEventPublisher))
	_, err := service.Payment(context.Background(), "loan-7", 1000, "ops@essa")
	assert.Equal(t, consts.ErrorPaymentOnFinishedLoan, err)
}

func TestCloseLoan(t *testing.T) {
	mockLoans := new(MockLoanRepo)
	mockAudit := new(MockAuditRecorder)
	mockNotifier := new(MockNotifier)
	mockEvents := new(MockEventPublisher)

	raw := models.RawDoc{"_id": "loan-8", "mobile": "0991", "currentBalance": 3000.0, "status": "active"}
	mockLoans.On("RawByID", mock.Anything, "loan-8").Return(raw, nil)
	mockLoans.On("UpdateByID", mock.Anything, "loan-8", bson.M{"currentBalance": 0.0, "status": consts.StatusClosed}).Return(nil)
	mockAudit.On("Record", mock.Anything, mock.MatchedBy(func(e models.DecisionAudit) bool {
		return e.Action == "close"
	})).Return()
	mockEvents.On("PublishLoanEvent", mock.Anything, mock.MatchedBy(func(e models.LoanEvent) bool {
		return e.Event == consts.LoanEventClosed
	})).Return(nil)
	mockNotifier.On("NotifyBorrowerAsync", mock.Anything, "0991", consts.LoanEventClosed, mock.Anything).Return()

	service := newLoanAdminService(mockLoans, new(MockKycRepo), new(MockProcessedRepo), mockAudit, mockNotifier, mockEvents)
	view, err := service.Close(context.Background(), "loan-8", "ops@essa")

	require.NoError(t, err)
	assert.Equal(t, 0.0, view.CurrentBalance)
	assert.Equal(t, consts.StatusClosed, view.Status)
	mockLoans.AssertExpectations(t)
}

func TestListBackfillsFromKyc(t *testing.T) {
	mockLoans := new(MockLoanRepo)
	mockKyc := new(MockKycRepo)

	mockLoans.On("Snapshot", mock.Anything).Return([]models.RawDoc{
		{"_id": "loan-9", "mobile": "0991112223", "currentBalance": 1000.0, "status": "active"},
	}, nil)
	mockKyc.On("Snapshot", mock.Anything).Return([]models.RawDoc{
		{"firstName": "Grace", "lastName": "Banda", "mobile": "+265991112223", "area": "Zomba"},
	}, nil)

	service := newLoanAdminService(mockLoans, mockKyc, new(MockProcessedRepo), new(MockAuditRecorder), new(MockNotifier), new(MockEventPublisher))
	views, err := service.List(context.Background())

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Grace Banda", views[0].ApplicantName)
	assert.Equal(t, "Zomba", views[0].Area)
}
