package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

type SFTPClientInterface interface {
	UploadFileToSFTP(localFilePath, remoteFilePath string) error
	DeleteLocalFile(filePath string) error
}

// LoanRawRepo is the loan application collection seen as raw documents.
type LoanRawRepo interface {
	Snapshot(ctx context.Context) ([]models.RawDoc, error)
	RawByID(ctx context.Context, id string) (models.RawDoc, error)
	UpdateByID(ctx context.Context, id string, fields bson.M) error
	InsertRaw(ctx context.Context, doc models.RawDoc) error
	DeleteByID(ctx context.Context, id string) error
}

type KycRawRepo interface {
	Snapshot(ctx context.Context) ([]models.RawDoc, error)
}

type ProposalRawRepo interface {
	Snapshot(ctx context.Context) ([]models.RawDoc, error)
	RawByID(ctx context.Context, id string) (models.RawDoc, error)
	UpdateByID(ctx context.Context, id string, fields bson.M) error
}

type ProcessedLoanRepo interface {
	Insert(ctx context.Context, processed models.ProcessedLoan) error
	ByLoanID(ctx context.Context, loanID string) (models.ProcessedLoan, error)
	DeleteByLoanID(ctx context.Context, loanID string) error
	FindAll(ctx context.Context) ([]models.ProcessedLoan, error)
}

type AuditRecorder interface {
	Record(ctx context.Context, entry models.DecisionAudit)
	ByLoanID(ctx context.Context, loanID string) ([]models.DecisionAudit, error)
}

type BorrowerNotifier interface {
	NotifyBorrowerAsync(ctx context.Context, mobile string, event string, parameters map[string]string)
}

type LoanEventPublisher interface {
	PublishLoanEvent(ctx context.Context, event models.LoanEvent) error
}

// Handler-facing contracts.

type DashboardServiceInterface interface {
	Dashboard(ctx context.Context) (models.DashboardEnvelope, error)
	Rebuild(ctx context.Context) (models.DashboardEnvelope, error)
	Invalidate(ctx context.Context)
}

type LoanAdminServiceInterface interface {
	List(ctx context.Context) ([]models.LoanView, error)
	ByID(ctx context.Context, loanID string) (models.LoanView, error)
	Decide(ctx context.Context, loanID string, action string, actor string) (models.ProcessedLoan, error)
	Consider(ctx context.Context, loanID string, actor string) (models.LoanView, error)
	Payment(ctx context.Context, loanID string, amount float64, actor string) (models.LoanView, error)
	Close(ctx context.Context, loanID string, actor string) (models.LoanView, error)
	Processed(ctx context.Context) ([]models.ProcessedLoan, error)
	AuditTrail(ctx context.Context, loanID string) ([]models.DecisionAudit, error)
}

type ProposalServiceInterface interface {
	List(ctx context.Context) ([]models.Proposal, error)
	Decide(ctx context.Context, proposalID string, request models.ProposalApproveRequest, actor string) (models.Proposal, error)
}

type CollateralServiceInterface interface {
	List(ctx context.Context) ([]models.CollateralView, error)
}

type KycServiceInterface interface {
	Pending(ctx context.Context) ([]models.KycRecord, error)
}

type BadgeServiceInterface interface {
	Counts(ctx context.Context) (models.BadgeCounts, error)
	MarkSeen(ctx context.Context, section string) error
}

type ReportServiceInterface interface {
	PortfolioReport(ctx context.Context) (string, error)
}

type RedisStoreOperations interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Get(ctx context.Context, key string) (interface{}, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)

	// Time-based operations
	Expire(ctx context.Context, key string, expiration time.Duration) (bool, error)
	TTL(ctx context.Context, key string) (time.Duration, error)
}
