package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"captiveportal/models"

	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Store drivers
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

var (
	DB        *gorm.DB
	Redis     *redis.Client
	AppConfig Config
	envLoaded bool
)

type RedisConfig struct {
	Enabled  bool   `json:"enabled"`
	Address  string `json:"address"`
	Password string `json:"-"`
	DB       int    `json:"db"`
}

type Config struct {
	Environment    string   `json:"environment"`
	ServerPort     string   `json:"server_port"`
	LogLevel       string   `json:"log_level"`
	SentryDSN      string   `json:"-"`
	AllowedOrigins []string `json:"allowed_origins"`

	StoreDriver    string      `json:"store_driver"`
	DBHost         string      `json:"db_host"`
	DBPort         string      `json:"db_port"`
	DBUser         string      `json:"db_user"`
	DBPassword     string      `json:"-"`
	DBName         string      `json:"db_name"`
	DBSSLMode      string      `json:"db_ssl_mode"`
	DBMaxIdleConns int         `json:"db_max_idle_conns"`
	DBMaxOpenConns int         `json:"db_max_open_conns"`
	Redis          RedisConfig `json:"redis"`

	JWTSecret    string `json:"-"`
	DemoEmail    string `json:"demo_email"`
	DemoPassword string `json:"-"`

	// Demo data
	SeedContacts   int   `json:"seed_contacts"`
	LogsPerContact int   `json:"logs_per_contact"`
	RandomSeed     int64 `json:"random_seed"` // 0 means non-deterministic

	RateLimitPortal int           `json:"rate_limit_portal"`
	SendDelay       time.Duration `json:"send_delay"`
	WorkerInterval  time.Duration `json:"worker_interval"`
	FromEmail       string        `json:"from_email"`
}

func init() {
	// Try to load .env file, but don't fail if it doesn't exist
	_ = godotenv.Load()
	envLoaded = true
}

func LoadConfig() error {
	AppConfig = Config{
		Environment:    getEnv("ENVIRONMENT", "development"),
		ServerPort:     getEnv("SERVER_PORT", "5000"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SentryDSN:      getEnv("SENTRY_DSN", ""),
		AllowedOrigins: getEnvAsList("ALLOWED_ORIGINS", []string{"http://localhost:3000"}),

		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreMemory)),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "captive_portal"),
		DBSSLMode:      getEnv("DB_SSL_MODE", "disable"),
		DBMaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 10),
		DBMaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 100),
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Address:  getEnv("REDIS_ADDRESS", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},

		JWTSecret:    getEnv("JWT_SECRET", ""),
		DemoEmail:    getEnv("DEMO_EMAIL", "demo@esempio.it"),
		DemoPassword: getEnv("DEMO_PASSWORD", "demo123"),

		SeedContacts:   getEnvAsInt("SEED_CONTACTS", 250),
		LogsPerContact: getEnvAsInt("LOGS_PER_CONTACT", 3),
		RandomSeed:     int64(getEnvAsInt("RANDOM_SEED", 0)),

		RateLimitPortal: getEnvAsInt("RATE_LIMIT_PORTAL", 10),
		SendDelay:       getEnvAsDuration("SEND_DELAY", 2*time.Second),
		WorkerInterval:  getEnvAsDuration("WORKER_INTERVAL", time.Minute),
		FromEmail:       getEnv("FROM_EMAIL", "newsletter@esempio.it"),
	}

	// Validate required configurations
	switch AppConfig.StoreDriver {
	case StoreMemory, StoreRedis:
	case StorePostgres:
		if AppConfig.DBPassword == "" {
			return fmt.Errorf("DB_PASSWORD is required for the postgres store")
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", AppConfig.StoreDriver)
	}
	if AppConfig.StoreDriver == StoreRedis {
		AppConfig.Redis.Enabled = true
	}
	if AppConfig.JWTSecret == "" {
		if AppConfig.Environment == "production" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		AppConfig.JWTSecret = "development-secret"
	}
	if AppConfig.SeedContacts < 0 {
		return fmt.Errorf("SEED_CONTACTS must not be negative")
	}

	logConfig()
	return nil
}

func ConnectDB() error {
	logrus.Info("Attempting to connect to database...")

	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		AppConfig.DBHost,
		AppConfig.DBPort,
		AppConfig.DBUser,
		AppConfig.DBPassword,
		AppConfig.DBName,
		AppConfig.DBSSLMode,
	)
	logrus.WithField("dsn", maskPassword(dsn)).Info("Using connection string")

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(AppConfig.DBMaxIdleConns)
	sqlDB.SetMaxOpenConns(AppConfig.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(30 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	logrus.Info("✅ Successfully connected to the database")
	if err := DB.AutoMigrate(&models.PortalCollection{}); err != nil {
		return fmt.Errorf("database migration failed: %w", err)
	}
	logrus.Info("✅ Database migration completed")
	return nil
}

func ConnectRedis(ctx context.Context) error {
	Redis = redis.NewClient(&redis.Options{
		Addr:     AppConfig.Redis.Address,
		Password: AppConfig.Redis.Password,
		DB:       AppConfig.Redis.DB,
	})
	if err := Redis.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	logrus.WithField("address", AppConfig.Redis.Address).Info("✅ Connected to redis")
	return nil
}

// Helper functions
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	if !envLoaded && fallback == "" {
		logrus.Warnf("Environment variable %s not found and no fallback provided", key)
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsBool(key string, fallback bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return value
}

func getEnvAsList(key string, fallback []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return fallback
	}
	var out []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func maskPassword(dsn string) string {
	const passwordMarker = "password="
	startIdx := strings.Index(dsn, passwordMarker)
	if startIdx == -1 {
		return dsn
	}

	startIdx += len(passwordMarker)
	endIdx := strings.IndexAny(dsn[startIdx:], " ")
	if endIdx == -1 {
		return dsn[:startIdx] + "*****"
	}
	return dsn[:startIdx] + "*****" + dsn[startIdx+endIdx:]
}

func logConfig() {
	logrus.WithFields(logrus.Fields{
		"environment":   AppConfig.Environment,
		"port":          AppConfig.ServerPort,
		"store":         AppConfig.StoreDriver,
		"redis_limiter": AppConfig.Redis.Enabled,
		"seed_contacts": AppConfig.SeedContacts,
		"sentry":        AppConfig.SentryDSN != "",
	}).Info("🔧 Loaded configuration")
}
