package election

import (
	"fmt"

	"github.com/campuspolls/election-backend/internal/platform/database"
)

// MigrateDB creates or updates the elections, candidates and
// candidate_fields tables.
func MigrateDB() error {
	if err := database.DB.AutoMigrate(&Election{}, &Candidate{}, &CandidateField{}); err != nil {
		return fmt.Errorf("failed to migrate election tables: %w", err)
	}
	return nil
}
