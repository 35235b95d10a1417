package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Ayash-Bera/copilot-chatbot/internal/models"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Manager owns the optional Postgres and Redis connections. Either
// field is nil when the corresponding feature is disabled.
type Manager struct {
	DB     *gorm.DB
	Redis  *redis.Client
	logger *logrus.Logger
}

// Database configuration. An empty URL skips that connection.
type Config struct {
	DatabaseURL string
	RedisURL    string
	LogLevel    string
}

// NewManager opens the configured connections and pings them.
func NewManager(config *Config, log *logrus.Logger) (*Manager, error) {
	m := &Manager{logger: log}

	if config.DatabaseURL != "" {
		db, err := openPostgres(config)
		if err != nil {
			return nil, err
		}
		m.DB = db
		log.Info("Postgres connection established")
	}

	if config.RedisURL != "" {
		client, err := openRedis(config.RedisURL)
		if err != nil {
			m.Close()
			return nil, err
		}
		m.Redis = client
		log.Info("Redis connection established")
	}

	return m, nil
}

func openPostgres(config *Config) (*gorm.DB, error) {
	gormLogger := logger.Default.LogMode(logger.Silent)
	if config.LogLevel == "debug" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(config.DatabaseURL), &gorm.Config{
		Logger:                 gormLogger,
		SkipDefaultTransaction: true,
		PrepareStmt:            true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// The activity log is a trickle of inserts; a small pool is plenty.
	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := verifyPool(sqlDB); err != nil {
		return nil, err
	}
	return db, nil
}

// pool is the part of *sql.DB that verifyPool needs.
type pool interface {
	Ping() error
	Close() error
}

// verifyPool pings p and closes it when the ping fails.
func verifyPool(p pool) error {
	if err := p.Ping(); err != nil {
		p.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

func openRedis(url string) (*redis.Client, error) {
	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	redisOpts.PoolSize = 20
	redisOpts.MinIdleConns = 2
	redisOpts.MaxConnAge = time.Hour
	redisOpts.IdleTimeout = 30 * time.Minute

	client := redis.NewClient(redisOpts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

// Migrate creates the activity log table. No-op without Postgres.
func (m *Manager) Migrate() error {
	if m.DB == nil {
		return nil
	}
	m.logger.Info("Running database migrations...")
	return m.DB.AutoMigrate(&models.RequestLog{})
}

// Close closes all database connections
func (m *Manager) Close() error {
	if m.Redis != nil {
		if err := m.Redis.Close(); err != nil {
			m.logger.WithError(err).Error("Failed to close Redis connection")
		}
	}

	if m.DB != nil {
		sqlDB, err := m.DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}

	return nil
}

// Health check methods
func (m *Manager) PingDatabase(ctx context.Context) error {
	sqlDB, err := m.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (m *Manager) PingRedis(ctx context.Context) error {
	return m.Redis.Ping(ctx).Err()
}
