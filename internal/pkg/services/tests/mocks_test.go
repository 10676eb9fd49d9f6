package tests

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

type MockLoanRepo struct {
	mock.Mock
}

func (m *MockLoanRepo) Snapshot(ctx context.Context) ([]models.RawDoc, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawDoc), args.Error(1)
}

func (m *MockLoanRepo) RawByID(ctx context.Context, id string) (models.RawDoc, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.RawDoc), args.Error(1)
}

func (m *MockLoanRepo) UpdateByID(ctx context.Context, id string, fields bson.M) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockLoanRepo) InsertRaw(ctx context.Context, doc models.RawDoc) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockLoanRepo) DeleteByID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockKycRepo struct {
	mock.Mock
}

func (m *MockKycRepo) Snapshot(ctx context.Context) ([]models.RawDoc, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawDoc), args.Error(1)
}

type MockProposalRepo struct {
	mock.Mock
}

func (m *MockProposalRepo) Snapshot(ctx context.Context) ([]models.RawDoc, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.RawDoc), args.Error(1)
}

func (m *MockProposalRepo) RawByID(ctx context.Context, id string) (models.RawDoc, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.RawDoc), args.Error(1)
}

func (m *MockProposalRepo) UpdateByID(ctx context.Context, id string, fields bson.M) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

type MockProcessedRepo struct {
	mock.Mock
}

func (m *MockProcessedRepo) Insert(ctx context.Context, processed models.ProcessedLoan) error {
	args := m.Called(ctx, processed)
	return args.Error(0)
}

func (m *MockProcessedRepo) ByLoanID(ctx context.Context, loanID string) (models.ProcessedLoan, error) {
	args := m.Called(ctx, loanID)
	return args.Get(0).(models.ProcessedLoan), args.Error(1)
}

func (m *MockProcessedRepo) DeleteByLoanID(ctx context.Context, loanID string) error {
	args := m.Called(ctx, loanID)
	return args.Error(0)
}

func (m *MockProcessedRepo) FindAll(ctx context.Context) ([]models.ProcessedLoan, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProcessedLoan), args.Error(1)
}

type MockAuditRecorder struct {
	mock.Mock
}

func (m *MockAuditRecorder) Record(ctx context.Context, entry models.DecisionAudit) {
	m.Called(ctx, entry)
}

func (m *MockAuditRecorder) ByLoanID(ctx context.Context, loanID string) ([]models.DecisionAudit, error) {
	args := m.Called(ctx, loanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.DecisionAudit), args.Error(1)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBorrowerAsync(ctx context.Context, mobile string, event string, parameters map[string]string) {
	m.Called(ctx, mobile, event, parameters)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) PublishLoanEvent(ctx context.Context, event models.LoanEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockKV struct {
	mock.Mock
}

func (m *MockKV) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockKV) Get(ctx context.Context, key string) (interface{}, error) {
	args := m.Called(ctx, key)
	return args.Get(0), args.Error(1)
}

func (m *MockKV) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockKV) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockKV) Expire(ctx context.Context, key string, expiration time.Duration) (bool, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.Error(1)
}

func (m *MockKV) TTL(ctx context.Context, key string) (time.Duration, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(time.Duration), args.Error(1)
}
