package user

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/campuspolls/election-backend/internal/platform/authz"
	"github.com/campuspolls/election-backend/internal/platform/database"
)

// importRecord mirrors one entry of the bulk-import YAML document.
type importRecord struct {
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	Role       string `yaml:"role"`
	StudentID  string `yaml:"student_id"`
	Department string `yaml:"department"`
	Year       int    `yaml:"year"`
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
}

// ImportResult summarizes a bulk import run.
type ImportResult struct {
	Created int      `json:"created"`
	Skipped int      `json:"skipped"`
	Notes   []string `json:"notes,omitempty"`
}

// ImportYAML reads a YAML list of users and creates the accounts that do
// not exist yet. Entries with a missing username or password, or with an
// already-taken username, are skipped with a note rather than aborting the
// whole batch.
func ImportYAML(r io.Reader) (*ImportResult, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var records []importRecord
	if err := yaml.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	result := &ImportResult{}
	for i, rec := range records {
		if rec.Username == "" || rec.Password == "" {
			result.Skipped++
			result.Notes = append(result.Notes, fmt.Sprintf("entry %d: missing username or password", i+1))
			continue
		}

		var existing User
		err := database.DB.Where("username = ?", rec.Username).First(&existing).Error
		if err == nil {
			result.Skipped++
			result.Notes = append(result.Notes, fmt.Sprintf("user %q already exists", rec.Username))
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}

		role := authz.RoleStudent
		if rec.Role != "" {
			role = authz.Role(rec.Role)
		}
		var studentID *string
		if rec.StudentID != "" {
			sid := rec.StudentID
			studentID = &sid
		}

		if _, err := Create(NewUser{
			Username:   rec.Username,
			Password:   rec.Password,
			Role:       role,
			StudentID:  studentID,
			Department: rec.Department,
			Year:       rec.Year,
			FirstName:  rec.FirstName,
			LastName:   rec.LastName,
		}); err != nil {
			return nil, fmt.Errorf("failed to create user %q: %w", rec.Username, err)
		}
		result.Created++
	}
	return result, nil
}
