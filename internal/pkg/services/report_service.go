package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"cloud.google.com/go/storage"

	"github.com/sam-zarila/essa-admin/configs"
	"github.com/sam-zarila/essa-admin/internal/pkg/common"
	"github.com/sam-zarila/essa-admin/internal/pkg/consts"
	"github.com/sam-zarila/essa-admin/internal/pkg/lifecycle"
	"github.com/sam-zarila/essa-admin/internal/pkg/logger"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
)

// ReportService exports the full portfolio as CSV to Cloud Storage, with an
// optional mirror to the partner SFTP drop.
type ReportService struct {
	gcsClient  *storage.Client
	bucketName string
	loanRepo   LoanRawRepo
	kycRepo    KycRawRepo
	sftp       SFTPClientInterface
}

func NewReportService(gcsClient *storage.Client, bucketName string, loanRepo LoanRawRepo, kycRepo KycRawRepo, sftp SFTPClientInterface) *ReportService {
	return &ReportService{
		gcsClient:  gcsClient,
		bucketName: bucketName,
		loanRepo:   loanRepo,
		kycRepo:    kycRepo,
		sftp:       sftp,
	}
}

// PortfolioReport writes the CSV, uploads it, and returns the object path.
func (s *ReportService) PortfolioReport(ctx context.Context) (string, error) {
	if s.gcsClient == nil {
		logger.Error(ctx, "reports : storage client not configured")
		return "", consts.ErrorReportUploadFailed
	}

	records, err := s.buildRecords(ctx)
	if err != nil {
		return "", err
	}

	filename := fmt.Sprintf("portfolio_report_%s.csv", time.Now().UTC().Format("20060102_150405"))
	localPath := filepath.Join(os.TempDir(), filename)

	if err := common.WriteCSVFile(localPath, records); err != nil {
		logger.Error(ctx, "reports : failed writing %s: %v", localPath, err)
		return "", err
	}
	logger.Info(ctx, "Report data written to %s", localPath)

	objectPath, err := s.uploadToGCS(ctx, localPath, filename)
	if err != nil {
		return "", consts.ErrorReportUploadFailed
	}

	if configs.SFTP_ENABLED && s.sftp != nil {
		remotePath := filepath.Join(configs.SFTP_REMOTE_FILE_PATH, filename)
		if err := s.sftp.UploadFileToSFTP(localPath, remotePath); err != nil {
			// The GCS copy is canonical, the SFTP mirror best effort.
			logger.Error(ctx, "reports : SFTP mirror failed for %s: %v", filename, err)
		}
	}

	if err := os.Remove(localPath); err != nil {
		logger.Warn(ctx, "reports : local file %s not removed: %v", localPath, err)
	}

	return objectPath, nil
}

func (s *ReportService) buildRecords(ctx context.Context) ([][]string, error) {
	rawLoans, err := s.loanRepo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	loans := make([]models.Loan, 0, len(rawLoans))
	for _, raw := range rawLoans {
		loans = append(loans, lifecycle.NormalizeLoan(raw))
	}

	if rawKyc, err := s.kycRepo.Snapshot(ctx); err == nil {
		records := make([]models.KycRecord, 0, len(rawKyc))
		for _, raw := range rawKyc {
			records = append(records, lifecycle.NormalizeKyc(raw))
		}
		lifecycle.BackfillFromKyc(loans, records)
	} else {
		logger.Warn(ctx, "reports : kyc snapshot failed: %v", err)
	}

	now := time.Now().UTC()
	rate := ClassifierOptions(now).LateFeeDailyRate

	records := [][]string{{
		"LoanId", "Borrower", "Mobile", "Area", "LoanAmount", "CurrentBalance",
		"Status", "LoanType", "PaymentFrequency", "StartDate", "EndDate",
		"OverdueDays", "LateFee", "CollateralItems",
	}}
	for _, loan := range loans {
		days := lifecycle.OverdueDays(loan.EndAt, now)
		records = append(records, []string{
			loan.ID,
			loan.ApplicantName,
			loan.Mobile,
			loan.Area,
			common.FormatAmount(loan.LoanAmount),
			common.FormatAmount(loan.CurrentBalance),
			loan.Status,
			loan.LoanType,
			loan.PaymentFrequency,
			common.FormatReportTime(loan.StartAt),
			common.FormatReportTime(loan.EndAt),
			strconv.Itoa(days),
			common.FormatAmount(lifecycle.LateFee(loan.CurrentBalance, days, rate)),
			strconv.Itoa(len(loan.Collateral)),
		})
	}
	return records, nil
}

func (s *ReportService) uploadToGCS(ctx context.Context, localPath, filename string) (string, error) {
	file, err := os.Open(localPath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	bucket := s.gcsClient.Bucket(s.bucketName)
	objectPath := filepath.Join(configs.REPORT_DESTINATION_FOLDER, filename)
	object := bucket.Object(objectPath)
	writer := object.NewWriter(ctx)

	if _, err := io.Copy(writer, file); err != nil {
		logger.Error(ctx, "reports : failed at io.Copy > %v", err.Error())
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}

	if err := writer.Close(); err != nil {
		logger.Error(ctx, "reports : failed at writer.Close > %v", err.Error())
		return "", fmt.Errorf("failed to close GCS writer: %v", err)
	}

	logger.Info(ctx, "File %s successfully uploaded to Google Cloud Storage bucket %s", filename, s.bucketName)
	return objectPath, nil
}
