package vote

import (
	"fmt"

	"github.com/campuspolls/election-backend/internal/platform/database"
)

// MigrateDB creates or updates the votes table, including the composite
// unique index the engine depends on.
func MigrateDB() error {
	if err := database.DB.AutoMigrate(&Vote{}); err != nil {
		return fmt.Errorf("failed to migrate votes table: %w", err)
	}
	return nil
}
