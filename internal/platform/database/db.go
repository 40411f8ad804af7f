package database

import (
	"fmt"
	"log"
	"os"

	"github.com/campuspolls/election-backend/internal/platform/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the global gorm handle used by every domain package.
var DB *gorm.DB

// InitDB opens the relational database selected by the configuration.
// TranslateError is enabled so unique-constraint violations surface as
// gorm.ErrDuplicatedKey regardless of the driver; the vote engine relies
// on that to turn duplicate inserts into an "already voted" rejection.
func InitDB(cfg config.DatabaseConfig) error {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			LogLevel: logger.Silent,
			Colorful: true,
		},
	)

	gormCfg := &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	}

	var err error
	switch cfg.Driver {
	case "postgres":
		DB, err = gorm.Open(postgres.Open(cfg.DSN), gormCfg)
	default:
		DB, err = gorm.Open(sqlite.Open(cfg.DSN), gormCfg)
	}
	if err != nil {
		return fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	fmt.Println("Database connection established.")
	return nil
}
