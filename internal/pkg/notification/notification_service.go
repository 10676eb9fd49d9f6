package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sam-zarila/essa-admin/configs"
	"github.com/sam-zarila/essa-admin/internal/pkg/logger"
	"github.com/sam-zarila/essa-admin/internal/pkg/models"
	"github.com/sam-zarila/essa-admin/internal/pkg/pubsub"
	"github.com/sam-zarila/essa-admin/internal/pkg/utils"
	"github.com/sam-zarila/essa-admin/internal/pkg/utils/worker"
)

// NotificationService pushes borrower-facing SMS requests onto the
// notification topic. Delivery itself is owned by the SMS gateway consumer;
// this service only formats and publishes.
type NotificationService struct {
	pubsubPublisher pubsub.PubSubPublisherInterface
	pool            *worker.WorkerPool
}

func NewNotificationService(pubsubPublisher pubsub.PubSubPublisherInterface, pool *worker.WorkerPool) *NotificationService {
	return &NotificationService{
		pubsubPublisher: pubsubPublisher,
		pool:            pool,
	}
}

// NotifyBorrower publishes one SMS notification request for the given event.
func (h *NotificationService) NotifyBorrower(ctx context.Context, mobile string, event string, parameters map[string]string) error {
	if h.pubsubPublisher == nil {
		logger.Debug(ctx, "Notifications disabled, dropping %s for %s", event, mobile)
		return nil
	}
	if !utils.IsValidPhone(mobile) {
		logger.Warn(ctx, "NotifyBorrower: no usable mobile on record for event %s", event)
		return nil
	}

	smsRequest := models.SmsNotificationRequest{
		// The gateway wants bare digits, not the formatted number on file.
		Mobile:     utils.CleanPhone(mobile),
		Event:      event,
		Parameters: parameters,
	}

	payloadBytes, err := json.Marshal(smsRequest)
	if err != nil {
		logger.Error(ctx, "Failed to marshal SMS notification request: %v", err)
		return fmt.Errorf("failed to marshal SMS request: %w", err)
	}

	topicName := configs.PUBSUB_TOPIC

	// Separate timeout context so a cancelled request context does not
	// abort an already-committed admin action's notification.
	pubsubCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	messageID, err := h.pubsubPublisher.Publish(pubsubCtx, topicName, payloadBytes, map[string]string{"event": event})
	if err != nil {
		logger.Error(ctx, "Failed to publish SMS notification to PubSub topic %s: %v", topicName, err)
		return fmt.Errorf("failed to publish to pubsub: %w", err)
	}

	logger.Info(ctx, "Published SMS notification %s to topic %s with message ID: %s", event, topicName, messageID)
	return nil
}

// NotifyBorrowerAsync queues the publish on the worker pool so the admin
// request does not wait on Pub/Sub. Failures are logged, never surfaced.
func (h *NotificationService) NotifyBorrowerAsync(ctx context.Context, mobile string, event string, parameters map[string]string) {
	if h.pool == nil {
		_ = h.NotifyBorrower(ctx, mobile, event, parameters)
		return
	}
	h.pool.Submit(func() {
		if err := h.NotifyBorrower(context.Background(), mobile, event, parameters); err != nil {
			logger.Error(ctx, "Async notification %s failed: %v", event, err)
		}
	})
}
