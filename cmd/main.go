package main

import (
	"context"
	"strconv"

	"cloud.google.com/go/storage"
	"github.com/robfig/cron/v3"
	"google.golang.org/api/option"

	"github.com/sam-zarila/essa-admin/configs"
	"github.com/sam-zarila/essa-admin/internal/app/router"
	"github.com/sam-zarila/essa-admin/internal/pkg/db"
	"github.com/sam-zarila/essa-admin/internal/pkg/kafka/producer"
	"github.com/sam-zarila/essa-admin/internal/pkg/logger"
	"github.com/sam-zarila/essa-admin/internal/pkg/otel"
	"github.com/sam-zarila/essa-admin/internal/pkg/pubsub"
	"github.com/sam-zarila/essa-admin/internal/pkg/redis"
	"github.com/sam-zarila/essa-admin/internal/pkg/utils/worker"
)

func main() {

	// Load Environment Variables
	err := configs.LoadEnv()
	if err != nil {
		logger.Debug("Error loading .env file: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	//setup otel collector
	_, err = otel.Setup(ctx, configs.SERVICE_NAME, configs.OTEL_URL)
	if err != nil {
		logger.Error(ctx, "Error setting up OTLP: %v", err)
	}

	// DB Connection
	mdb, dbErr := db.NewMongoDB()
	if dbErr != nil {
		logger.Error(ctx, "Error connecting to MongoDB: %v", dbErr)
	}
	db.MDB = mdb
	defer mdb.Close()

	db.CreateDbTtlIfNotExists()

	deps := router.Dependencies{}

	if configs.KAFKA_SERVER != "" {
		kafkaProducer, err := producer.NewKafkaProducer(configs.KAFKA_LOAN_EVENTS_TOPIC)
		if err != nil {
			logger.Error(ctx, "failed to create Kafka Producer error: %v", err)
		} else {
			logger.Info(ctx, "Kafka Producer Created")
			producer.KafkaProducer = kafkaProducer
			deps.KafkaProducer = kafkaProducer
			defer kafkaProducer.Close()
		}
	}

	if configs.PUBSUB_ENABLED {
		pubsubPublisher, err := pubsub.NewPubSubPublisher(ctx, configs.PROJECT_ID)
		if err != nil {
			logger.Error(ctx, "Failed to create Pub/Sub Publisher: %v", err)
		} else {
			logger.Info(ctx, "Pub/Sub Publisher Created")
			deps.PubSubPublisher = pubsubPublisher
			defer pubsubPublisher.Close()
		}
	}

	if configs.BUCKET_NAME != "" {
		var opts []option.ClientOption
		if configs.GCP_CREDENTIALS_FILE != "" {
			opts = append(opts, option.WithCredentialsFile(configs.GCP_CREDENTIALS_FILE))
		}
		gcsClient, err := storage.NewClient(ctx, opts...)
		if err != nil {
			logger.Error(ctx, "Failed to create Cloud Storage client: %v", err)
		} else {
			deps.GCSClient = gcsClient
			defer gcsClient.Close()
		}
	}

	redisClient, err := redis.ConnectToRedis(ctx, configs.GetRedisConfig(), nil)
	if err != nil {
		// Dashboard caching and badge marks degrade without Redis.
		logger.Error(ctx, "Failed to connect to Redis: %v", err)
	} else {
		deps.RedisClient = redisClient.Client
		defer redis.Disconnect(redisClient.Client)
	}

	numberOfWorkers, er := strconv.Atoi(configs.WORKER_POOL)
	if er != nil {
		logger.Error(ctx, er)
	}
	workerPool := worker.NewWorkerPool(numberOfWorkers)
	defer workerPool.Stop()
	deps.WorkerPool = workerPool

	r, dashboardService := router.SetupRouter(deps)

	scheduler := cron.New()
	if _, err := dashboardService.StartRefresher(scheduler); err != nil {
		logger.Error(ctx, "Failed to schedule dashboard refresh: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	port := configs.SERVER_PORT

	if err := r.Run(":" + port); err != nil {
		logger.Error(ctx, "Failed to run server: %v", err)
	}
}
