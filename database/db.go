package database

import (
	"fmt"

	"travel-portal/config"
	"travel-portal/logger"
	"travel-portal/models/draft"
	"travel-portal/models/funnel"
	"travel-portal/models/log"
	"travel-portal/models/wishlist"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var DB *gorm.DB

// Models are the tables this service owns. Everything else lives in the
// backend services.
func Models() []interface{} {
	return []interface{}{
		&funnel.Session{},
		&funnel.StageEvent{},
		&draft.BookingDraft{},
		&wishlist.Item{},
		&log.Log{},
	}
}

// DSN builds the PostgreSQL connection string.
func DSN(cfg config.DatabaseConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Open connects without migrating.
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		logger.Error("Failed to connect to the database", err)
		return nil, err
	}
	logger.Success("Successfully connected to the database " + cfg.Name + " on " + cfg.Host)
	return db, nil
}

// InitDB connects, migrates and indexes the local tables
func InitDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}

	if err := Migrate(db); err != nil {
		logger.Error("Failed to run migrations", err)
		return nil, err
	}
	logger.Success("All migrations completed successfully")

	if err := createIndexes(db); err != nil {
		logger.Error("Failed to create indexes", err)
		return nil, err
	}
	logger.Success("All indexes created successfully")

	DB = db
	return db, nil
}

// Migrate runs auto migration for every local model
func Migrate(db *gorm.DB) error {
	for _, model := range Models() {
		if err := db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}
	return nil
}

// Status reports, per table, whether it exists.
func Status(db *gorm.DB) map[string]bool {
	status := map[string]bool{}
	for _, model := range Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			logger.Warning(fmt.Sprintf("Failed to parse model %T: %v", model, err))
			continue
		}
		status[stmt.Schema.Table] = db.Migrator().HasTable(model)
	}
	return status
}

// createIndexes creates the indexes AutoMigrate cannot express
func createIndexes(db *gorm.DB) error {
	// Session lookups by owner and stage
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_funnel_sessions_user_stage ON funnel_sessions(user_id, stage)").Error; err != nil {
		return fmt.Errorf("failed to create funnel session user/stage index: %w", err)
	}

	// Log indexes
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_service ON logs(service)").Error; err != nil {
		return fmt.Errorf("failed to create log service index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_status_code ON logs(status_code)").Error; err != nil {
		return fmt.Errorf("failed to create log status_code index: %w", err)
	}
	if err := db.Exec("CREATE INDEX IF NOT EXISTS idx_logs_created_at ON logs(created_at)").Error; err != nil {
		return fmt.Errorf("failed to create log created_at index: %w", err)
	}

	return nil
}
