package router

import (
	"net/http"

	"cloud.google.com/go/storage"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"

	"github.com/sam-zarila/essa-admin/configs"
	"github.com/sam-zarila/essa-admin/internal/app/handlers"
	"github.com/sam-zarila/essa-admin/internal/app/middleware"
	"github.com/sam-zarila/essa-admin/internal/pkg/kafka/producer"
	"github.com/sam-zarila/essa-admin/internal/pkg/notification"
	"github.com/sam-zarila/essa-admin/internal/pkg/pubsub"
	"github.com/sam-zarila/essa-admin/internal/pkg/services"
	"github.com/sam-zarila/essa-admin/internal/pkg/store"
	"github.com/sam-zarila/essa-admin/internal/pkg/store/repository"
	"github.com/sam-zarila/essa-admin/internal/pkg/utils"
	"github.com/sam-zarila/essa-admin/internal/pkg/utils/worker"
)

// Dependencies carries the process-level clients main wires up. Any of them
// may be nil; the affected feature degrades instead of failing the boot.
type Dependencies struct {
	WorkerPool      *worker.WorkerPool
	RedisClient     *redis.Client
	PubSubPublisher *pubsub.PubSubPublisher
	KafkaProducer   *producer.Producer
	GCSClient       *storage.Client
}

// SetupRouter builds the service graph and binds the admin API routes.
func SetupRouter(deps Dependencies) (*gin.Engine, *services.DashboardService) {
	r := gin.Default()
	meter := otel.Meter(configs.SERVICE_NAME)
	r.Use(otelgin.Middleware(configs.SERVICE_NAME))
	r.Use(middleware.NewMetricMiddleware(meter))
	r.Use(middleware.AttachRequestDetails())

	registerValidators()

	var kv services.RedisStoreOperations
	if deps.RedisClient != nil {
		kv = repository.NewRedisStoreAdapter(deps.RedisClient)
	}
	var events services.LoanEventPublisher
	if deps.KafkaProducer != nil {
		events = deps.KafkaProducer
	}
	var publisher pubsub.PubSubPublisherInterface
	if deps.PubSubPublisher != nil {
		publisher = deps.PubSubPublisher
	}

	loanRepo := store.NewLoanRepository()
	kycRepo := store.NewKycRepository()
	proposalRepo := store.NewProposalRepository()
	processedRepo := store.NewProcessedLoanRepository()
	auditRepo := store.NewDecisionAuditRepository()

	notifier := notification.NewNotificationService(publisher, deps.WorkerPool)

	dashboardService := services.NewDashboardService(loanRepo, kycRepo, kv)
	loanService := services.NewLoanAdminService(loanRepo, kycRepo, processedRepo, auditRepo, notifier, events)
	proposalService := services.NewProposalService(proposalRepo, loanRepo, auditRepo, notifier, events)
	collateralService := services.NewCollateralService(loanRepo, kycRepo)
	kycService := services.NewKycService(kycRepo, loanRepo)
	badgeService := services.NewBadgeService(loanRepo, kycService, proposalRepo, kv)
	reportService := services.NewReportService(deps.GCSClient, configs.BUCKET_NAME, loanRepo, kycRepo, services.NewSftpService())

	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	loanHandler := handlers.NewLoanHandler(loanService, dashboardService)
	proposalHandler := handlers.NewProposalHandler(proposalService, dashboardService)
	collateralHandler := handlers.NewCollateralHandler(collateralService)
	kycHandler := handlers.NewKycHandler(kycService)
	badgeHandler := handlers.NewBadgeHandler(badgeService)
	reportHandler := handlers.NewReportHandler(reportService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": configs.SERVICE_NAME})
	})

	api := r.Group("/api")
	api.GET("/dashboard", dashboardHandler.Dashboard)
	api.GET("/loans", loanHandler.List)
	api.GET("/loans/:id", loanHandler.ByID)
	api.GET("/loans/:id/audit", loanHandler.AuditTrail)
	api.GET("/processed", loanHandler.Processed)
	api.GET("/collateral", collateralHandler.List)
	api.GET("/proposals", proposalHandler.List)
	api.GET("/kyc/pending", kycHandler.Pending)
	api.GET("/badges", badgeHandler.Counts)

	admin := api.Group("", middleware.RequireRole(configs.ADMIN_ROLE_VALUE))
	admin.POST("/dashboard/refresh", dashboardHandler.Refresh)
	admin.POST("/loans/:id/decision", loanHandler.Decision)
	admin.POST("/loans/:id/payment", loanHandler.Payment)
	admin.POST("/loans/:id/close", loanHandler.Close)
	admin.POST("/processed/:id/consider", loanHandler.Consider)
	admin.POST("/proposals/:id/decision", proposalHandler.Decision)
	admin.POST("/badges/seen", badgeHandler.Seen)
	admin.POST("/reports/portfolio", reportHandler.Portfolio)

	return r, dashboardService
}

func registerValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("frequency", func(fl validator.FieldLevel) bool {
			return utils.IsValidFrequency(fl.Field().String())
		})
	}
}
