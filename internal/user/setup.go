package user

import (
	"fmt"

	"github.com/campuspolls/election-backend/internal/platform/database"
)

// MigrateDB creates or updates the users table.
func MigrateDB() error {
	if err := database.DB.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}
