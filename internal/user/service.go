package user

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/campuspolls/election-backend/internal/platform/authz"
	"github.com/campuspolls/election-backend/internal/platform/database"
)

// ErrInvalidCredentials is returned when the username or password is wrong.
// The two cases are deliberately indistinguishable to the caller.
var ErrInvalidCredentials = errors.New("invalid username or password")

// NewUser carries the attributes accepted when creating an account.
type NewUser struct {
	Username   string
	Password   string
	Role       authz.Role
	StudentID  *string
	Department string
	Year       int
	FirstName  string
	LastName   string
}

// Create hashes the password and persists a new account. The role defaults
// to student when unset.
func Create(n NewUser) (*User, error) {
	if n.Username == "" || n.Password == "" {
		return nil, errors.New("username and password are required")
	}
	if n.Role == "" {
		n.Role = authz.RoleStudent
	}
	if n.Role != authz.RoleAdmin && n.Role != authz.RoleStudent {
		return nil, fmt.Errorf("unknown role %q", n.Role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(n.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Username:     n.Username,
		PasswordHash: string(hash),
		Role:         n.Role,
		StudentID:    n.StudentID,
		Department:   n.Department,
		Year:         n.Year,
		FirstName:    n.FirstName,
		LastName:     n.LastName,
	}
	if err := database.DB.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("user %q already exists", n.Username)
		}
		return nil, err
	}
	return u, nil
}

// Authenticate verifies a username/password pair and returns the account.
func Authenticate(username, password string) (*User, error) {
	var u User
	err := database.DB.Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &u, nil
}

// GetByID loads an account by primary key.
func GetByID(id uint) (*User, error) {
	var u User
	if err := database.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// Delete removes an account. Candidacies linked to the account survive with
// the link cleared; the account's ballots do not outlive it. The dependent
// tables are addressed by name because their packages build on this one.
// Deleting a voter's ballots leaves the denormalized tallies untouched, so
// a reconciliation run will flag the affected elections; that matches the
// source-of-truth role of the ballot log.
func Delete(id uint) error {
	var u User
	if err := database.DB.First(&u, id).Error; err != nil {
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Table("candidates").Where("user_id = ?", id).Update("user_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM votes WHERE user_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&User{}, id).Error
	})
}

// EnsureAdmin creates the bootstrap admin account on first startup. It is a
// no-op when any admin already exists or when no bootstrap password is
// configured.
func EnsureAdmin(username, password string) error {
	if password == "" {
		return nil
	}
	var count int64
	if err := database.DB.Model(&User{}).Where("role = ?", authz.RoleAdmin).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count admin accounts: %w", err)
	}
	if count > 0 {
		return nil
	}
	if _, err := Create(NewUser{Username: username, Password: password, Role: authz.RoleAdmin}); err != nil {
		return fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	fmt.Printf("Bootstrap admin account %q created.\n", username)
	return nil
}
