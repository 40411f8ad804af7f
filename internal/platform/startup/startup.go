package startup

import (
	"fmt"

	"github.com/campuspolls/election-backend/internal/election"
	"github.com/campuspolls/election-backend/internal/platform/config"
	"github.com/campuspolls/election-backend/internal/user"
	"github.com/campuspolls/election-backend/internal/vote"
)

// InitializeApplication runs schema migration for every domain package and
// creates the bootstrap admin account when configured. It must be called
// once, after the database connections are up and before any request is
// served.
func InitializeApplication(cfg *config.Config) error {
	fmt.Println("Initializing application...")

	if err := user.MigrateDB(); err != nil {
		return err
	}
	if err := election.MigrateDB(); err != nil {
		return err
	}
	if err := vote.MigrateDB(); err != nil {
		return err
	}

	if err := user.EnsureAdmin(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword); err != nil {
		return err
	}

	fmt.Println("Application initialized.")
	return nil
}
