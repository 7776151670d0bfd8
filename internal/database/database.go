package database

import (
	"context"
	"fmt"
	"time"

	"github.com/smartcowork/cowork-gin/internal/config"
	"github.com/smartcowork/cowork-gin/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// PoolConfig holds connection pool settings.
type PoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // seconds
	ConnMaxIdleTime int // seconds
}

// BuildDSN builds a PostgreSQL DSN from config.
func BuildDSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
}

// DefaultPoolConfig returns the development pool settings.
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		MaxIdleConns:    10,
		MaxOpenConns:    100,
		ConnMaxLifetime: 3600,
		ConnMaxIdleTime: 600,
	}
}

// Connect opens the database selected by cfg.Driver and applies pool settings.
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	switch cfg.Driver {
	case "sqlite", "sqlite3":
		db, err = gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	default:
		db, err = gorm.Open(postgres.Open(BuildDSN(cfg)), &gorm.Config{})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	pool := DefaultPoolConfig()
	if cfg.MaxIdleConns > 0 {
		pool.MaxIdleConns = cfg.MaxIdleConns
	}
	if cfg.MaxOpenConns > 0 {
		pool.MaxOpenConns = cfg.MaxOpenConns
	}
	if cfg.ConnMaxLifetime > 0 {
		pool.ConnMaxLifetime = cfg.ConnMaxLifetime
	}
	if cfg.ConnMaxIdleTime > 0 {
		pool.ConnMaxIdleTime = cfg.ConnMaxIdleTime
	}

	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTime) * time.Second)

	return db, nil
}

// ConnectWithRetry retries Connect with exponential backoff.
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2
		}
	}

	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// Migrate creates or updates the schema for all six tables.
func Migrate(db *gorm.DB) error {
	dialector := db.Dialector.Name()

	// SQLite has no jsonb type, create tables by hand there.
	if dialector == "sqlite" || dialector == "sqlite3" {
		if err := createSQLiteTables(db); err != nil {
			return fmt.Errorf("failed to create SQLite tables: %w", err)
		}
	} else {
		if err := db.AutoMigrate(
			&model.RequestModel{},
			&model.ResponseModel{},
			&model.TemplateModel{},
			&model.ApprovalModel{},
			&model.DocumentModel{},
			&model.CalendarTaskModel{},
		); err != nil {
			return fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	if err := CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func createSQLiteTables(db *gorm.DB) error {
	stmts := map[string]string{
		"requests": `
		CREATE TABLE IF NOT EXISTS requests (
			id VARCHAR(64) PRIMARY KEY,
			request_no VARCHAR(32) NOT NULL,
			title VARCHAR(255) NOT NULL,
			requester_id VARCHAR(64) NOT NULL,
			requester_name VARCHAR(64) NOT NULL,
			target_ids TEXT NOT NULL,
			items TEXT NOT NULL,
			created_at DATETIME NOT NULL
		)`,
		"responses": `
		CREATE TABLE IF NOT EXISTS responses (
			id VARCHAR(64) PRIMARY KEY,
			request_id VARCHAR(64) NOT NULL,
			target_id VARCHAR(64) NOT NULL,
			target_name VARCHAR(64) NOT NULL,
			"values" TEXT,
			not_applicable BOOLEAN NOT NULL DEFAULT 0,
			submitted_at DATETIME NOT NULL
		)`,
		"work_templates": `
		CREATE TABLE IF NOT EXISTS work_templates (
			id VARCHAR(64) PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			description TEXT,
			items TEXT NOT NULL,
			default_processor_id VARCHAR(64),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL,
			created_by VARCHAR(64)
		)`,
		"work_app_requests": `
		CREATE TABLE IF NOT EXISTS work_app_requests (
			id VARCHAR(64) PRIMARY KEY,
			template_id VARCHAR(64) NOT NULL,
			template_title VARCHAR(255) NOT NULL,
			title VARCHAR(255) NOT NULL,
			requester_id VARCHAR(64) NOT NULL,
			requester_name VARCHAR(64) NOT NULL,
			requester_position VARCHAR(64),
			requester_team VARCHAR(64),
			processor_id VARCHAR(64) NOT NULL,
			processor_name VARCHAR(64) NOT NULL,
			processor_position VARCHAR(64),
			processor_team VARCHAR(64),
			employees TEXT,
			status VARCHAR(32) NOT NULL DEFAULT 'pending',
			created_at DATETIME NOT NULL
		)`,
		"documents": `
		CREATE TABLE IF NOT EXISTS documents (
			id VARCHAR(64) PRIMARY KEY,
			doc_no VARCHAR(32) NOT NULL,
			title VARCHAR(255) NOT NULL,
			content TEXT,
			dept VARCHAR(64),
			enforcer_name VARCHAR(64) NOT NULL,
			enforced_at DATETIME NOT NULL,
			created_at DATETIME NOT NULL,
			created_by VARCHAR(64)
		)`,
		"ai_analyzed_tasks": `
		CREATE TABLE IF NOT EXISTS ai_analyzed_tasks (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			start_date DATETIME NOT NULL,
			end_date DATETIME NOT NULL,
			related_system VARCHAR(128),
			applied BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`,
	}

	for table, stmt := range stmts {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create %s table: %w", table, err)
		}
	}
	return nil
}

// CreateIndexes creates the secondary indexes used by the list queries.
func CreateIndexes(db *gorm.DB) error {
	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_requests_requester ON requests(requester_id)",
		"CREATE INDEX IF NOT EXISTS idx_requests_created_at ON requests(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_responses_request_id ON responses(request_id)",
		"CREATE INDEX IF NOT EXISTS idx_responses_target_id ON responses(target_id)",
		"CREATE INDEX IF NOT EXISTS idx_responses_submitted_at ON responses(submitted_at)",
		"CREATE INDEX IF NOT EXISTS idx_templates_created_at ON work_templates(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_approvals_requester ON work_app_requests(requester_id)",
		"CREATE INDEX IF NOT EXISTS idx_approvals_processor ON work_app_requests(processor_id)",
		"CREATE INDEX IF NOT EXISTS idx_approvals_status ON work_app_requests(status)",
		"CREATE INDEX IF NOT EXISTS idx_approvals_created_at ON work_app_requests(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_documents_created_at ON documents(created_at)",
		"CREATE INDEX IF NOT EXISTS idx_tasks_start_date ON ai_analyzed_tasks(start_date)",
		"CREATE INDEX IF NOT EXISTS idx_tasks_end_date ON ai_analyzed_tasks(end_date)",
	}

	for _, stmt := range indexes {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	// GIN indexes on the jsonb columns queried by membership lookups.
	if db.Dialector.Name() == "postgres" {
		gin := []string{
			"CREATE INDEX IF NOT EXISTS idx_requests_target_ids_gin ON requests USING GIN (target_ids)",
			"CREATE INDEX IF NOT EXISTS idx_responses_values_gin ON responses USING GIN (\"values\")",
		}
		for _, stmt := range gin {
			if err := db.Exec(stmt).Error; err != nil {
				return fmt.Errorf("failed to create GIN index: %w", err)
			}
		}
	}

	return nil
}

// CheckHealth pings the database with a short timeout.
func CheckHealth(db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx) == nil
}
