package db

import (
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/gormlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the SQLite database at dbPath, migrates the schema and
// runs the idempotent seed step. The handle is returned to the caller rather
// than stored in a package global, so every operation receives it explicitly.
func Open(dbPath string) (*gorm.DB, error) {
	// Configure GORM logger
	newLogger := gormlogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // Use standard log writer (os.Stdout)
		gormlogger.Config{
			SlowThreshold:             time.Second,     // Slow SQL threshold
			LogLevel:                  gormlogger.Warn, // Log level (Warn, Error, Info)
			IgnoreRecordNotFoundError: true,            // Ignore ErrRecordNotFound error
			ParameterizedQueries:      false,           // Log SQL queries with params
			Colorful:                  true,            // Enable color
		},
	)

	gdb, err := gorm.Open(gormlite.Open(dbPath), &gorm.Config{
		Logger: newLogger, // Use the configured logger
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if err := gdb.AutoMigrate(&Mod{}, &Webhook{}, &ModWebhookAssignment{}, &WebhookTemplate{}, &Activity{}, &Setting{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database schema: %w", err)
	}

	if err := Seed(gdb); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	return gdb, nil
}
