package handlers

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

type MockLoanAdminService struct {
	mock.Mock
}

func (m *MockLoanAdminService) List(ctx context.Context) ([]models.LoanView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LoanView), args.Error(1)
}

func (m *MockLoanAdminService) ByID(ctx context.Context, loanID string) (models.LoanView, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(models.LoanView), args.Error(1)
}

func (m *MockLoanAdminService) Decide(ctx context.Context, loanID string, action string, actor string) (models.ProcessedLoan, error) {
	args := m.Called(ctx, loanID, action, actor)
	return args.Get(0).(models.ProcessedLoan), args.Error(1)
}

func (m *MockLoanAdminService) Consider(ctx context.Context, loanID string, actor string) (models.LoanView, error) {
	args := m.Called(ctx, loanID, actor)
	return args.Get(0).(models.LoanView), args.Error(1)
}

func (m *MockLoanAdminService) Payment(ctx context.Context, loanID string, amount float64, actor string) (models.LoanView, error) {
	args := m.Called(ctx, loanID, amount, actor)
	return args.Get(0).(models.LoanView), args.Error(1)
}

func (m *MockLoanAdminService) Close(ctx context.Context, loanID string, actor string) (models.LoanView, error) {
	args := m.Called(ctx, loanID, actor)
	return args.Get(0).(models.LoanView), args.Error(1)
}

func (m *MockLoanAdminService) Processed(ctx context.Context) ([]models.ProcessedLoan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProcessedLoan), args.Error(1)
}

func (m *MockLoanAdminService) AuditTrail(ctx context.Context, loanID string) ([]models.DecisionAudit, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DecisionAudit), args.Error(1)
}

type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) Dashboard(ctx context.Context) (models.DashboardEnvelope, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.DashboardEnvelope), args.Error(1)
}

func (m *MockDashboardService) Rebuild(ctx context.Context) (models.DashboardEnvelope, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.DashboardEnvelope), args.Error(1)
}

func (m *MockDashboardService) Invalidate(ctx context.Context) {
	m.Called(ctx)
}

type MockProposalService struct {
	mock.Mock
}

func (m *MockProposalService) List(ctx context.Context) ([]models.Proposal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Proposal), args.Error(1)
}

func (m *MockProposalService) Decide(ctx context.Context, proposalID string, request models.ProposalApproveRequest, actor string) (models.Proposal, error) {
	args := m.Called(ctx, proposalID, request, actor)
	return args.Get(0).(models.Proposal), args.Error(1)
}

type MockBadgeService struct {
	mock.Mock
}

func (m *MockBadgeService) Counts(ctx context.Context) (models.BadgeCounts, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.BadgeCounts), args.Error(1)
}

func (m *MockBadgeService) MarkSeen(ctx context.Context, section string) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) PortfolioReport(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}
