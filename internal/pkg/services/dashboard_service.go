package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/sam-zarila/essa-admin/configs"
	"github.com/sam-zarila/essa-admin/internal/pkg/lifecycle"
	"github.com/sam-zarila/essa-admin/internal/pkg/logger"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
	storeModel "github.com/sam-zarila/essa-admin/internal/pkg/store/models"
)

// DashboardService builds the classified dashboard snapshot and keeps a
// short-lived copy in Redis so the console's polling does not hammer Mongo.
type DashboardService struct {
	loanRepo LoanRawRepo
	kycRepo  KycRawRepo
	kv       RedisStoreOperations
	keys     *storeModel.RedisKeyBuilder
}

func NewDashboardService(loanRepo LoanRawRepo, kycRepo KycRawRepo, kv RedisStoreOperations) *DashboardService {
	return &DashboardService{
		loanRepo: loanRepo,
		kycRepo:  kycRepo,
		kv:       kv,
		keys:     storeModel.NewRedisKeyBuilder(),
	}
}

// ClassifierOptions maps the configured tunables onto a classification run.
func ClassifierOptions(now time.Time) lifecycle.Options {
	opts := lifecycle.DefaultOptions(now)
	if configs.DEADLINE_HORIZON_DAYS > 0 {
		opts.DeadlineHorizon = time.Duration(configs.DEADLINE_HORIZON_DAYS) * 24 * time.Hour
	}
	if configs.LATE_FEE_DAILY_RATE > 0 {
		opts.LateFeeDailyRate = configs.LATE_FEE_DAILY_RATE
	}
	if viewCap := configs.GetClassifierConfig().ViewCap; viewCap > 0 {
		opts.ViewCap = viewCap
	}
	return opts
}

// Dashboard returns the cached snapshot when fresh, rebuilding otherwise.
func (s *DashboardService) Dashboard(ctx context.Context) (models.DashboardEnvelope, error) {
	if s.kv != nil {
		if cached, err := s.kv.Get(ctx, s.keys.DashboardKey()); err == nil {
			if payload, ok := cached.([]byte); ok {
				var envelope models.DashboardEnvelope
				if err := json.Unmarshal(payload, &envelope); err == nil {
					return envelope, nil
				} else {
					logger.Warn(ctx, "dashboard : dropping unreadable cached snapshot: %v", err)
				}
			}
		}
	}
	return s.Rebuild(ctx)
}

// Rebuild classifies a fresh snapshot and refreshes the cache.
func (s *DashboardService) Rebuild(ctx context.Context) (models.DashboardEnvelope, error) {
	rawLoans, err := s.loanRepo.Snapshot(ctx)
	if err != nil {
		return models.DashboardEnvelope{}, err
	}
	rawKyc, err := s.kycRepo.Snapshot(ctx)
	if err != nil {
		// A broken KYC read degrades the pending counter, not the dashboard.
		logger.Warn(ctx, "dashboard : kyc snapshot failed: %v", err)
		rawKyc = nil
	}

	envelope := lifecycle.ClassifyRaw(rawLoans, rawKyc, ClassifierOptions(time.Now().UTC()))

	if s.kv != nil {
		payload, err := json.Marshal(envelope)
		if err == nil {
			ttl := time.Duration(configs.DASHBOARD_CACHE_TTL_SECONDS) * time.Second
			if err := s.kv.Set(ctx, s.keys.DashboardKey(), payload, ttl); err != nil {
				logger.Warn(ctx, "dashboard : cache write failed: %v", err)
			}
		}
	}

	return envelope, nil
}

// Invalidate drops the cached snapshot after a loan mutation.
func (s *DashboardService) Invalidate(ctx context.Context) {
	if s.kv == nil {
		return
	}
	if err := s.kv.Delete(ctx, s.keys.DashboardKey()); err != nil {
		logger.Warn(ctx, "dashboard : cache invalidation failed: %v", err)
	}
}

// StartRefresher schedules a periodic rebuild so the cached snapshot stays
// warm between admin page loads.
func (s *DashboardService) StartRefresher(c *cron.Cron) (cron.EntryID, error) {
	spec := fmt.Sprintf("@every %ds", configs.REFRESH_INTERVAL_SECONDS)
	return c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(configs.TIMEOUT_IN_SECONDS)*time.Second)
		defer cancel()
		if _, err := s.Rebuild(ctx); err != nil {
			logger.Error(ctx, "dashboard : scheduled rebuild failed: %v", err)
		}
	})
}
