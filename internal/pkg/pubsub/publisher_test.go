package pubsub

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sam-zarila/essa-admin/internal/service/interfaces"
)

type MockPubSubClient struct {
	mock.Mock
}

func (m *MockPubSubClient) Publisher(topicName string) interfaces.TopicPublisherInterface {
	args := m.Called(topicName)
	return args.Get(0).(interfaces.TopicPublisherInterface)
}

func (m *MockPubSubClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

type MockTopicPublisher struct {
	mock.Mock
}

func (m *MockTopicPublisher) Publish(ctx context.Context, data []byte, attributes map[string]string) (string, error) {
	args := m.Called(ctx, data, attributes)
	return args.String(0), args.Error(1)
}

type MockFactory struct {
	mock.Mock
}

func (m *MockFactory) NewPublisher(ctx context.Context, projectID string) (interfaces.PublisherInterface, error) {
	args := m.Called(ctx, projectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(interfaces.PublisherInterface), args.Error(1)
}

func TestNewPubSubPublisherWithFactory(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		mockFactory := new(MockFactory)
		mockClient := new(MockPubSubClient)

		mockFactory.On("NewPublisher", mock.Anything, "test-project").Return(mockClient, nil)

		ctx := context.Background()
		publisher, err := NewPubSubPublisherWithFactory(ctx, "test-project", mockFactory)

		assert.NoError(t, err)
		assert.NotNil(t, publisher)

		mockFactory.AssertExpectations(t)
	})

	t.Run("factory error", func(t *testing.T) {
		mockFactory := new(MockFactory)
		mockFactory.On("NewPublisher", mock.Anything, "test-project").Return(nil, errors.New("factory error"))

		ctx := context.Background()
		publisher, err := NewPubSubPublisherWithFactory(ctx, "test-project", mockFactory)

		assert.Error(t, err)
		assert.Nil(t, publisher)
		mockFactory.AssertExpectations(t)
	})
}

func TestPubSubPublisher_Publish(t *testing.T) {
	mockFactory := new(MockFactory)
	mockClient := new(MockPubSubClient)
	mockTopicPublisher := new(MockTopicPublisher)

	mockFactory.On("NewPublisher", mock.Anything, "test-project").Return(mockClient, nil)

	ctx := context.Background()
	publisher, err := NewPubSubPublisherWithFactory(ctx, "test-project", mockFactory)
	assert.NoError(t, err)

	t.Run("successful publish", func(t *testing.T) {
		mockClient.On("Publisher", "sms-topic").Return(mockTopicPublisher).Once()
		mockTopicPublisher.On("Publish", mock.Anything, []byte("payload"), map[string]string{"event": "loan_approved"}).Return("msg-1", nil).Once()

		messageID, err := publisher.Publish(ctx, "sms-topic", []byte("payload"), map[string]string{"event": "loan_approved"})

		assert.NoError(t, err)
		assert.Equal(t, "msg-1", messageID)
		mockClient.AssertExpectations(t)
		mockTopicPublisher.AssertExpectations(t)
	})

	t.Run("publish error", func(t *testing.T) {
		mockClient.On("Publisher", "sms-topic").Return(mockTopicPublisher).Once()
		mockTopicPublisher.On("Publish", mock.Anything, []byte("payload"), map[string]string(nil)).Return("", errors.New("publish failed")).Once()

		messageID, err := publisher.Publish(ctx, "sms-topic", []byte("payload"), nil)

		assert.Error(t, err)
		assert.Empty(t, messageID)
		mockClient.AssertExpectations(t)
		mockTopicPublisher.AssertExpectations(t)
	})
}

func TestPubSubPublisher_Close(t *testing.T) {
	mockFactory := new(MockFactory)
	mockClient := new(MockPubSubClient)

	mockFactory.On("NewPublisher", mock.Anything, "test-project").Return(mockClient, nil)
	mockClient.On("Close").Return(nil)

	publisher, err := NewPubSubPublisherWithFactory(context.Background(), "test-project", mockFactory)
	assert.NoError(t, err)

	assert.NoError(t, publisher.Close())
	mockClient.AssertExpectations(t)
}
