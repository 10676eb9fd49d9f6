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

func pendingProposalDoc() models.RawDoc {
	return models.RawDoc{
		"_id":              "prop-1",
		"applicantName":    "Mary Phiri",
		"mobile":           "0999111222",
		"area":             "Area 25",
		"loanAmount":       80000.0,
		"loanPeriod":       3,
		"paymentFrequency": "monthly",
		"status":           "pending",
	}
}

func newProposalFixture() (*services.ProposalService, *MockProposalRepo, *MockLoanRepo, *MockAuditRecorder, *MockNotifier, *MockEventPublisher) {
	proposals := new(MockProposalRepo)
	loans := new(MockLoanRepo)
	audit := new(MockAuditRecorder)
	notifier := new(MockNotifier)
	events := new(MockEventPublisher)
	service := services.NewProposalService(proposals, loans, audit, notifier, events)
	return service, proposals, loans, audit, notifier, events
}

func TestProposalApproveMaterializesLoan(t *testing.T) {
	service, proposals, loans, audit, notifier, events := newProposalFixture()

	proposals.On("RawByID", mock.Anything, "prop-1").Return(pendingProposalDoc(), nil)

	var loanDoc models.RawDoc
	loans.On("InsertRaw", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			loanDoc = args.Get(1).(models.RawDoc)
		}).
		Return(nil)
	proposals.On("UpdateByID", mock.Anything, "prop-1", bson.M{"status": consts.StatusApproved}).Return(nil)
	audit.On("Record", mock.Anything, mock.MatchedBy(func(entry models.DecisionAudit) bool {
		return entry.Action == "proposal_approve" && entry.Actor == "admin" && entry.Detail == "80000.00"
	})).Return()
	events.On("PublishLoanEvent", mock.Anything, mock.MatchedBy(func(event models.LoanEvent) bool {
		return event.Event == consts.ProposalApproved && event.LoanID == "prop-1" && event.Amount == 80000.0
	})).Return(nil)
	notifier.On("NotifyBorrowerAsync", mock.Anything, "0999111222", consts.ProposalApproved, mock.Anything).Return()

	decided, err := service.Decide(context.Background(), "prop-1", models.ProposalApproveRequest{Action: consts.DecisionApprove}, "admin")

	require.NoError(t, err)
	assert.Equal(t, consts.StatusApproved, decided.Status)

	require.NotNil(t, loanDoc)
	assert.Equal(t, consts.StatusApproved, loanDoc["status"])
	assert.Equal(t, 80000.0, loanDoc["loanAmount"])
	// A freshly approved loan starts with the full amount outstanding.
	assert.Equal(t, 80000.0, loanDoc["currentBalance"])
	assert.Equal(t, "prop-1", loanDoc["proposalId"])
	assert.Equal(t, 3, loanDoc["loanPeriod"])
	assert.Contains(t, loanDoc, "endDate")
	proposals.AssertExpectations(t)
	audit.AssertExpectations(t)
	events.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestProposalApproveWithOverrides(t *testing.T) {
	service, proposals, loans, audit, notifier, events := newProposalFixture()

	proposals.On("RawByID", mock.Anything, "prop-1").Return(pendingProposalDoc(), nil)

	var loanDoc models.RawDoc
	loans.On("InsertRaw", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			loanDoc = args.Get(1).(models.RawDoc)
		}).
		Return(nil)
	proposals.On("UpdateByID", mock.Anything, "prop-1", mock.Anything).Return(nil)
	audit.On("Record", mock.Anything, mock.Anything).Return()
	events.On("PublishLoanEvent", mock.Anything, mock.Anything).Return(nil)
	notifier.On("NotifyBorrowerAsync", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	request := models.ProposalApproveRequest{
		Action:           consts.DecisionApprove,
		LoanAmount:       50000,
		LoanPeriod:       8,
		PaymentFrequency: "Weekly",
	}
	decided, err := service.Decide(context.Background(), "prop-1", request, "admin")

	require.NoError(t, err)
	assert.Equal(t, 50000.0, decided.LoanAmount)
	assert.Equal(t, 8, decided.LoanPeriod)
	assert.Equal(t, "weekly", decided.PaymentFrequency)
	require.NotNil(t, loanDoc)
	assert.Equal(t, 50000.0, loanDoc["loanAmount"])
	assert.Equal(t, 50000.0, loanDoc["currentBalance"])
	assert.Equal(t, 8, loanDoc["loanPeriod"])
	assert.Equal(t, "weekly", loanDoc["paymentFrequency"])
}

func TestProposalDecline(t *testing.T) {
	service, proposals, loans, audit, notifier, events := newProposalFixture()

	proposals.On("RawByID", mock.Anything, "prop-1").Return(pendingProposalDoc(), nil)
	proposals.On("UpdateByID", mock.Anything, "prop-1", bson.M{"status": consts.StatusDeclined}).Return(nil)
	audit.On("Record", mock.Anything, mock.MatchedBy(func(entry models.DecisionAudit) bool {
		return entry.Action == "proposal_decline" && entry.LoanID == "prop-1"
	})).Return()
	events.On("PublishLoanEvent", mock.Anything, mock.MatchedBy(func(event models.LoanEvent) bool {
		return event.Event == consts.ProposalDeclined
	})).Return(nil)
	notifier.On("NotifyBorrowerAsync", mock.Anything, "0999111222", consts.ProposalDeclined, mock.Anything).Return()

	decided, err := service.Decide(context.Background(), "prop-1", models.ProposalApproveRequest{Action: consts.DecisionDecline}, "admin")

	require.NoError(t, err)
	assert.Equal(t, consts.StatusDeclined, decided.Status)
	// Declining never creates a loan.
	loans.AssertNotCalled(t, "InsertRaw", mock.Anything, mock.Anything)
}

func TestProposalAlreadyDecided(t *testing.T) {
	service, proposals, _, _, _, _ := newProposalFixture()

	doc := pendingProposalDoc()
	doc["status"] = "approved"
	proposals.On("RawByID", mock.Anything, "prop-1").Return(doc, nil)

	_, err := service.Decide(context.Background(), "prop-1", models.ProposalApproveRequest{Action: consts.DecisionApprove}, "admin")
	assert.ErrorIs(t, err, consts.ErrorProposalAlreadyDecided)
}

func TestProposalNotFound(t *testing.T) {
	service, proposals, _, _, _, _ := newProposalFixture()

	proposals.On("RawByID", mock.Anything, "missing").Return(nil, mongo.ErrNoDocuments)

	_, err := service.Decide(context.Background(), "missing", models.ProposalApproveRequest{Action: consts.DecisionApprove}, "admin")
	assert.ErrorIs(t, err, consts.ErrorProposalNotFound)
}

func TestProposalList(t *testing.T) {
	service, proposals, _, _, _, _ := newProposalFixture()

	proposals.On("Snapshot", mock.Anything).Return([]models.RawDoc{pendingProposalDoc()}, nil)

	listed, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Mary Phiri", listed[0].ApplicantName)
	assert.Equal(t, consts.StatusPending, listed[0].Status)
}
