package configs

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

var (
	SERVER_PORT                   string
	WORKER_POOL                   string
	DB_URI                        string
	DB_NAME                       string
	DB_MAXPOOLSIZE                uint64
	DB_MINPOOLSIZE                uint64
	DB_MAXIDLETIME_INMINUTES      int
	LOAN_COLLECTION               string
	PROCESSED_LOAN_COLLECTION     string
	KYC_COLLECTION                string
	PROPOSAL_COLLECTION           string
	DECISION_AUDIT_COLLECTION     string
	DECISION_AUDIT_TTL_IN_HOURS   int
	REFRESH_INTERVAL_SECONDS      int
	DEADLINE_HORIZON_DAYS         int
	LATE_FEE_DAILY_RATE           float64
	DASHBOARD_CACHE_TTL_SECONDS   int
	ADMIN_ROLE_HEADER             string
	ADMIN_ROLE_VALUE              string
	ADMIN_USER_HEADER             string
	KAFKA_SERVER                  string
	KAFKA_SECURITY_PROTOCOL       string
	KAFKA_SASL_MECHANISM          string
	KAFKA_SASL_USERNAME           string
	KAFKA_SASL_PASSWORD           string
	KAFKA_SESSION_TIMEOUT_MS      int
	KAFKA_CLIENT_ID               string
	KAFKA_LOAN_EVENTS_TOPIC       string
	PROJECT_ID                    string
	PUBSUB_TOPIC                  string
	PUBSUB_ENABLED                bool
	BUCKET_NAME                   string
	REPORT_DESTINATION_FOLDER     string
	GCP_CREDENTIALS_FILE          string
	SFTP_USER                     string
	SFTP_PASSWORD                 string
	SFTP_HOST                     string
	SFTP_PORT                     string
	SFTP_REMOTE_FILE_PATH         string
	SFTP_ENABLED                  bool
	REDIS_ADDR                    string
	REDIS_PASSWORD                string
	REDIS_DB                      int
	REDIS_ENABLE_TLS              bool
	REDIS_CONNECT_TIMEOUT_SECONDS int
	REDIS_CERT_CONTENT            string
	TIMEOUT_IN_SECONDS            int
	SERVICE_NAME                  string
	OTEL_URL                      string
	LOG_LEVEL                     string
)

type RedisConfig struct {
	Addr           string        `yaml:"addr"`
	Password       string        `yaml:"password"`
	DB             int           `yaml:"db"`
	EnableTLS      bool          `yaml:"enable_tls"`
	ConnectTimeout time.Duration `yaml:"connect_timeout_seconds"`
	CertContent    string        `yaml:"cert_content"`
}

// ClassifierConfig holds the tunables of a dashboard classification run.
// Values come from classifier.yaml when present; env vars override.
type ClassifierConfig struct {
	DeadlineHorizonDays int     `yaml:"deadline_horizon_days"`
	LateFeeDailyRate    float64 `yaml:"late_fee_daily_rate"`
	ViewCap             int     `yaml:"view_cap"`
}

// PubSubConfig represents the Pub/Sub configuration
type PubSubConfig struct {
	ProjectID string `yaml:"project_id"`
	Topic     string `yaml:"topic"`
	Enabled   bool   `yaml:"enabled"`
}

var classifierConfig = ClassifierConfig{
	DeadlineHorizonDays: 14,
	LateFeeDailyRate:    0.001,
	ViewCap:             8,
}

// LoadEnv loads the environment variables from a .env file
func LoadEnv() error {
	err := godotenv.Load("./../.env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}

	LoadEnvValues()

	return nil
}

func LoadEnvValues() {
	SERVER_PORT = GetEnv("SERVER_PORT", "8080")
	WORKER_POOL = GetEnv("WORKER_POOL", "5")
	DB_URI = GetEnv("DB_URI", "mongodb://localhost:27017")
	DB_NAME = GetEnv("DB_NAME", "EssaAdmin")
	DB_MAXPOOLSIZE_Str := GetEnv("DB_MAXPOOLSIZE", "100")
	DB_MINPOOLSIZE_Str := GetEnv("DB_MINPOOLSIZE", "10")
	DB_MAXIDLETIME_INMINUTES_Str := GetEnv("DB_MAXIDLETIME_INMINUTES", "5")
	DB_MAXPOOLSIZE, _ = strconv.ParseUint(DB_MAXPOOLSIZE_Str, 10, 64)
	DB_MINPOOLSIZE, _ = strconv.ParseUint(DB_MINPOOLSIZE_Str, 10, 64)
	DB_MAXIDLETIME_INMINUTES, _ = strconv.Atoi(DB_MAXIDLETIME_INMINUTES_Str)

	LOAN_COLLECTION = GetEnv("LOAN_COLLECTION", "LoanApplications")
	PROCESSED_LOAN_COLLECTION = GetEnv("PROCESSED_LOAN_COLLECTION", "ProcessedLoans")
	KYC_COLLECTION = GetEnv("KYC_COLLECTION", "KycRecords")
	PROPOSAL_COLLECTION = GetEnv("PROPOSAL_COLLECTION", "CalculatorProposals")
	DECISION_AUDIT_COLLECTION = GetEnv("DECISION_AUDIT_COLLECTION", "DecisionAudit")
	DECISION_AUDIT_TTL_IN_HOURS, _ = strconv.Atoi(GetEnv("DECISION_AUDIT_TTL_IN_HOURS", "720"))

	LoadClassifierConfig(GetEnv("CLASSIFIER_CONFIG_PATH", "./configs/classifier.yaml"))
	REFRESH_INTERVAL_SECONDS, _ = strconv.Atoi(GetEnv("REFRESH_INTERVAL_SECONDS", "15"))
	DEADLINE_HORIZON_DAYS, _ = strconv.Atoi(GetEnv("DEADLINE_HORIZON_DAYS", strconv.Itoa(classifierConfig.DeadlineHorizonDays)))
	LATE_FEE_DAILY_RATE, _ = strconv.ParseFloat(GetEnv("LATE_FEE_DAILY_RATE", strconv.FormatFloat(classifierConfig.LateFeeDailyRate, 'f', -1, 64)), 64)
	DASHBOARD_CACHE_TTL_SECONDS, _ = strconv.Atoi(GetEnv("DASHBOARD_CACHE_TTL_SECONDS", "30"))

	ADMIN_ROLE_HEADER = GetEnv("ADMIN_ROLE_HEADER", "X-Role-Claims")
	ADMIN_ROLE_VALUE = GetEnv("ADMIN_ROLE_VALUE", "admin")
	ADMIN_USER_HEADER = GetEnv("ADMIN_USER_HEADER", "X-Admin-User")

	KAFKA_SERVER = GetEnv("KAFKA_SERVER", "")
	KAFKA_SECURITY_PROTOCOL = GetEnv("KAFKA_SECURITY_PROTOCOL", "")
	KAFKA_SASL_MECHANISM = GetEnv("KAFKA_SASL_MECHANISM", "")
	KAFKA_SASL_USERNAME = GetEnv("KAFKA_SASL_USERNAME", "")
	KAFKA_SASL_PASSWORD = GetEnv("KAFKA_SASL_PASSWORD", "")
	KAFKA_SESSION_TIMEOUT_MS, _ = strconv.Atoi(GetEnv("KAFKA_SESSION_TIMEOUT_MS", "45000"))
	KAFKA_CLIENT_ID = GetEnv("KAFKA_CLIENT_ID", "essa-admin")
	KAFKA_LOAN_EVENTS_TOPIC = GetEnv("KAFKA_LOAN_EVENTS_TOPIC", "essa-loan-events")

	PROJECT_ID = GetEnv("PROJECT_ID", "")
	PUBSUB_TOPIC = GetEnv("PUBSUB_TOPIC", "essa-admin-notification-topic")
	PUBSUB_ENABLED, _ = strconv.ParseBool(GetEnv("PUBSUB_ENABLED", "false"))

	BUCKET_NAME = GetEnv("BUCKET_NAME", "")
	REPORT_DESTINATION_FOLDER = GetEnv("REPORT_DESTINATION_FOLDER", "portfolioReports")
	GCP_CREDENTIALS_FILE = GetEnv("GCP_CREDENTIALS_FILE", "")

	SFTP_USER = GetEnv("SFTP_USER", "")
	SFTP_PASSWORD = GetEnv("SFTP_PASSWORD", "")
	SFTP_HOST = GetEnv("SFTP_HOST", "")
	SFTP_PORT = GetEnv("SFTP_PORT", "22")
	SFTP_REMOTE_FILE_PATH = GetEnv("SFTP_REMOTE_FILE_PATH", "")
	SFTP_ENABLED, _ = strconv.ParseBool(GetEnv("SFTP_ENABLED", "false"))

	REDIS_ADDR = GetEnv("REDIS_ADDR", "localhost:6379")
	REDIS_PASSWORD = GetEnv("REDIS_PASSWORD", "")
	REDIS_DB_Str := GetEnv("REDIS_DB", "0")
	REDIS_DB, _ = strconv.Atoi(REDIS_DB_Str)
	REDIS_ENABLE_TLS, _ = strconv.ParseBool(GetEnv("REDIS_ENABLE_TLS", "false"))
	REDIS_CONNECT_TIMEOUT_SECONDS, _ = strconv.Atoi(GetEnv("REDIS_CONNECT_TIMEOUT_SECONDS", "5"))
	REDIS_CERT_CONTENT = GetEnv("REDIS_CERT_CONTENT", "")

	TIMEOUT_IN_SECONDS, _ = strconv.Atoi(GetEnv("TIMEOUT_IN_SECONDS", "20"))
	SERVICE_NAME = GetEnv("SERVICE_NAME", "essaadmin")
	OTEL_URL = GetEnv("OTEL_URL", "")
	LOG_LEVEL = GetEnv("LOG_LEVEL", "INFO")
}

// LoadClassifierConfig reads classifier.yaml if it exists. A missing file
// keeps the built-in defaults.
func LoadClassifierConfig(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var cfg ClassifierConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Printf("Error parsing classifier config %s: %v", path, err)
		return
	}
	if cfg.DeadlineHorizonDays > 0 {
		classifierConfig.DeadlineHorizonDays = cfg.DeadlineHorizonDays
	}
	if cfg.LateFeeDailyRate > 0 {
		classifierConfig.LateFeeDailyRate = cfg.LateFeeDailyRate
	}
	if cfg.ViewCap > 0 {
		classifierConfig.ViewCap = cfg.ViewCap
	}
}

func GetClassifierConfig() ClassifierConfig {
	return classifierConfig
}

// GetRedisConfig returns a RedisConfig struct populated from environment variables
func GetRedisConfig() RedisConfig {
	return RedisConfig{
		Addr:           REDIS_ADDR,
		Password:       REDIS_PASSWORD,
		DB:             REDIS_DB,
		EnableTLS:      REDIS_ENABLE_TLS,
		ConnectTimeout: time.Duration(REDIS_CONNECT_TIMEOUT_SECONDS) * time.Second,
		CertContent:    REDIS_CERT_CONTENT,
	}
}

// GetPubSubConfig returns a PubSubConfig struct populated from environment variables
func GetPubSubConfig() PubSubConfig {
	return PubSubConfig{
		ProjectID: PROJECT_ID,
		Topic:     PUBSUB_TOPIC,
		Enabled:   PUBSUB_ENABLED,
	}
}

// GetEnv fetches the value of an environment variable or returns a default value
func GetEnv(key, defaultValue string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	return value
}
