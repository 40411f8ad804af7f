package testutil

import (
	"fmt"
	"testing"

	"github.com/campuspolls/election-backend/internal/election"
	"github.com/campuspolls/election-backend/internal/platform/authz"
	"github.com/campuspolls/election-backend/internal/platform/config"
	"github.com/campuspolls/election-backend/internal/platform/database"
	"github.com/campuspolls/election-backend/internal/user"
	"github.com/campuspolls/election-backend/internal/vote"
)

// OpenTestDB points the global database handle at a private in-memory
// SQLite database and migrates the full schema. The connection pool is
// capped at one connection so concurrent test goroutines serialize at the
// pool instead of tripping SQLite's writer lock. The name must be unique
// per test to keep databases isolated.
func OpenTestDB(t *testing.T, name string) {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
	}
	if err := database.InitDB(cfg); err != nil {
		t.Fatalf("open test db: %v", err)
	}

	sqlDB, err := database.DB.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := user.MigrateDB(); err != nil {
		t.Fatalf("migrate users: %v", err)
	}
	if err := election.MigrateDB(); err != nil {
		t.Fatalf("migrate elections: %v", err)
	}
	if err := vote.MigrateDB(); err != nil {
		t.Fatalf("migrate votes: %v", err)
	}
}

// CreateStudent persists a student account for tests.
func CreateStudent(t *testing.T, username string) *user.User {
	t.Helper()
	u, err := user.Create(user.NewUser{Username: username, Password: "password"})
	if err != nil {
		t.Fatalf("create student %s: %v", username, err)
	}
	return u
}

// CreateAdmin persists an admin account for tests.
func CreateAdmin(t *testing.T, username string) *user.User {
	t.Helper()
	u, err := user.Create(user.NewUser{Username: username, Password: "password", Role: authz.RoleAdmin})
	if err != nil {
		t.Fatalf("create admin %s: %v", username, err)
	}
	return u
}
