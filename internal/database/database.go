package database

import (
	"fmt"
	"time"

	"munibudget/internal/logger"
	"munibudget/internal/models"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Manager handles database operations. When the configured PostgreSQL
// store is unreachable at startup it degrades to an in-memory SQLite
// stand-in so the API stays usable; data written there does not survive
// the process.
type Manager struct {
	db       *gorm.DB
	url      string
	inMemory bool
}

// NewManager connects to PostgreSQL, falling back to the in-memory
// stand-in when the connection fails.
func NewManager(config *Config) (*Manager, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  config.DSN(),
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	if err != nil {
		logger.Get().Warnf("PostgreSQL connection failed: %v", err)
		logger.Get().Warn("Using in-memory storage instead of PostgreSQL")
		return newInMemoryManager()
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying DB: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		logger.Get().Warnf("PostgreSQL ping failed: %v", err)
		logger.Get().Warn("Using in-memory storage instead of PostgreSQL")
		_ = sqlDB.Close()
		return newInMemoryManager()
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Manager{db: db, url: config.URL()}, nil
}

func newInMemoryManager() (*Manager, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory store: %w", err)
	}
	return &Manager{db: db, inMemory: true}, nil
}

// Migrate brings the schema up to date: SQL migrations via golang-migrate
// on PostgreSQL, AutoMigrate on the in-memory stand-in.
func (m *Manager) Migrate() error {
	if m.inMemory {
		return m.db.AutoMigrate(&models.BudgetRecord{})
	}

	logger.Get().Info("Running database migrations...")

	mig, err := migrate.New("file://migrations", m.url)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		srcErr, dbErr := mig.Close()
		if srcErr != nil {
			logger.Get().Warnf("migrate source close error: %v", srcErr)
		}
		if dbErr != nil {
			logger.Get().Warnf("migrate database close error: %v", dbErr)
		}
	}()

	if err := mig.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migration failed: %w", err)
	}

	logger.Get().Info("Database migrations completed successfully")
	return nil
}

// DB returns the underlying GORM database instance
func (m *Manager) DB() *gorm.DB {
	return m.db
}

// InMemory reports whether the manager fell back to the in-memory stand-in.
func (m *Manager) InMemory() bool {
	return m.inMemory
}

// Status describes the active storage backend for the health endpoint.
func (m *Manager) Status() string {
	if m.inMemory {
		return "using in-memory storage (PostgreSQL unavailable)"
	}
	return "connected to PostgreSQL"
}
