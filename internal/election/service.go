package election

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/campuspolls/election-backend/internal/platform/database"
	"github.com/campuspolls/election-backend/internal/user"
)

var (
	// ErrNotFound is returned when an election, candidate or field id does
	// not resolve.
	ErrNotFound = errors.New("not found")
	// ErrClosed is returned when an operation is not permitted in the
	// election's current lifecycle state.
	ErrClosed = errors.New("the election is closed")
	// ErrHasVotes blocks deletion of an open election that already
	// collected ballots.
	ErrHasVotes = errors.New("an open election with recorded votes cannot be deleted")
	// ErrUserNotFound is returned when a candidate link names an unknown
	// account.
	ErrUserNotFound = errors.New("no user with this username exists")
	// ErrAlreadyCandidate is returned when the linked account already backs
	// another candidate.
	ErrAlreadyCandidate = errors.New("this user is already linked to a candidate")
)

// ElectionInput carries the editable attributes of an election.
type ElectionInput struct {
	Name      string    `json:"name" binding:"required"`
	StartDate time.Time `json:"start_date" binding:"required"`
	EndDate   time.Time `json:"end_date" binding:"required"`
}

// CandidateInput carries the editable attributes of a candidate. Username
// optionally links a registered account; an empty username unlinks.
type CandidateInput struct {
	FullName string `json:"full_name" binding:"required"`
	Bio      string `json:"bio"`
	Image    string `json:"image"`
	Username string `json:"username"`
}

// GetByID loads an election with its candidates and their profile fields.
func GetByID(id uint) (*Election, error) {
	var e Election
	err := database.DB.Preload("Candidates.Fields").First(&e, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// List returns all elections, newest first, without candidate preloads.
func List() ([]Election, error) {
	var elections []Election
	if err := database.DB.Order("id desc").Find(&elections).Error; err != nil {
		return nil, err
	}
	return elections, nil
}

// CreateElection persists a new election in the Open state.
func CreateElection(in ElectionInput) (*Election, error) {
	e := &Election{
		Name:      in.Name,
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
	}
	if err := database.DB.Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// UpdateElection edits name and dates. Editing is only legal while the
// election is open; a closed election is immutable.
func UpdateElection(id uint, in ElectionInput) (*Election, error) {
	e, err := GetByID(id)
	if err != nil {
		return nil, err
	}
	if !e.Status().Permits(OpEditElection) {
		return nil, ErrClosed
	}
	e.Name = in.Name
	e.StartDate = in.StartDate
	e.EndDate = in.EndDate
	if err := database.DB.Save(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// CloseElection performs the one-way Open -> Closed transition. Closing an
// already-closed election is an idempotent no-op.
func CloseElection(id uint) (*Election, error) {
	e, err := GetByID(id)
	if err != nil {
		return nil, err
	}
	if e.Status() == StatusClosed {
		return e, nil
	}
	if err := database.DB.Model(e).Update("is_closed", true).Error; err != nil {
		return nil, err
	}
	e.IsClosed = true
	return e, nil
}

// countVotes counts recorded ballots for an election. The votes table is
// owned by the vote package; the query goes by table name to keep the
// package dependency pointing from vote to election.
func countVotes(tx *gorm.DB, electionID uint) (int64, error) {
	var n int64
	err := tx.Table("votes").Where("election_id = ? AND deleted_at IS NULL", electionID).Count(&n).Error
	return n, err
}

// DeleteElection removes an election and everything it owns. An open
// election with recorded votes is protected; close it first. The cascade is
// spelled out in one transaction instead of relying on FK actions, which
// SQLite only honors with a pragma enabled.
func DeleteElection(id uint) error {
	e, err := GetByID(id)
	if err != nil {
		return err
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if e.Status() == StatusOpen {
			n, err := countVotes(tx, id)
			if err != nil {
				return err
			}
			if n > 0 {
				return ErrHasVotes
			}
		}

		var candidateIDs []uint
		if err := tx.Model(&Candidate{}).Where("election_id = ?", id).Pluck("id", &candidateIDs).Error; err != nil {
			return err
		}
		if len(candidateIDs) > 0 {
			if err := tx.Unscoped().Where("candidate_id IN ?", candidateIDs).Delete(&CandidateField{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Exec("DELETE FROM votes WHERE election_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("election_id = ?", id).Delete(&Candidate{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&Election{}, id).Error
	})
}

// resolveUserLink maps a username to a user ID for candidate linking.
func resolveUserLink(username string) (*uint, error) {
	if username == "" {
		return nil, nil
	}
	var u user.User
	err := database.DB.Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u.ID, nil
}

// AddCandidate registers a new candidate on an open election.
func AddCandidate(electionID uint, in CandidateInput) (*Candidate, error) {
	e, err := GetByID(electionID)
	if err != nil {
		return nil, err
	}
	if !e.Status().Permits(OpManageCandidates) {
		return nil, ErrClosed
	}

	userID, err := resolveUserLink(in.Username)
	if err != nil {
		return nil, err
	}

	cand := &Candidate{
		ElectionID: electionID,
		UserID:     userID,
		FullName:   in.FullName,
		Bio:        in.Bio,
		Image:      in.Image,
	}
	if err := database.DB.Create(cand).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyCandidate
		}
		return nil, err
	}
	return cand, nil
}

// GetCandidate loads a candidate with its profile fields.
func GetCandidate(id uint) (*Candidate, error) {
	var cand Candidate
	err := database.DB.Preload("Fields").First(&cand, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cand, nil
}

// UpdateCandidate edits a candidate profile. The tally is deliberately not
// editable here; only the vote engine touches vote_count.
func UpdateCandidate(id uint, in CandidateInput) (*Candidate, error) {
	cand, err := GetCandidate(id)
	if err != nil {
		return nil, err
	}
	e, err := GetByID(cand.ElectionID)
	if err != nil {
		return nil, err
	}
	if !e.Status().Permits(OpManageCandidates) {
		return nil, ErrClosed
	}

	userID, err := resolveUserLink(in.Username)
	if err != nil {
		return nil, err
	}

	cand.FullName = in.FullName
	cand.Bio = in.Bio
	cand.Image = in.Image
	cand.UserID = userID

	// Updates by map so an unlink (user_id = NULL) is written too.
	err = database.DB.Model(cand).Updates(map[string]interface{}{
		"full_name": cand.FullName,
		"bio":       cand.Bio,
		"image":     cand.Image,
		"user_id":   cand.UserID,
	}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyCandidate
		}
		return nil, err
	}
	return cand, nil
}

// DeleteCandidate removes a candidate and its profile fields.
func DeleteCandidate(id uint) error {
	cand, err := GetCandidate(id)
	if err != nil {
		return err
	}
	e, err := GetByID(cand.ElectionID)
	if err != nil {
		return err
	}
	if !e.Status().Permits(OpManageCandidates) {
		return ErrClosed
	}

	return database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("candidate_id = ?", id).Delete(&CandidateField{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&Candidate{}, id).Error
	})
}

// AddField attaches a free-form name/value pair to a candidate profile.
func AddField(candidateID uint, name, value string) (*CandidateField, error) {
	cand, err := GetCandidate(candidateID)
	if err != nil {
		return nil, err
	}
	e, err := GetByID(cand.ElectionID)
	if err != nil {
		return nil, err
	}
	if !e.Status().Permits(OpManageCandidates) {
		return nil, ErrClosed
	}

	f := &CandidateField{CandidateID: candidateID, Name: name, Value: value}
	if err := database.DB.Create(f).Error; err != nil {
		return nil, err
	}
	return f, nil
}

// DeleteField removes one profile field.
func DeleteField(id uint) error {
	var f CandidateField
	err := database.DB.First(&f, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	cand, err := GetCandidate(f.CandidateID)
	if err != nil {
		return err
	}
	e, err := GetByID(cand.ElectionID)
	if err != nil {
		return err
	}
	if !e.Status().Permits(OpManageCandidates) {
		return ErrClosed
	}
	return database.DB.Unscoped().Delete(&f).Error
}

// CandidateOf reports whether the user backs any candidate of the election.
func CandidateOf(electionID uint, userID uint) (bool, error) {
	var n int64
	err := database.DB.Model(&Candidate{}).
		Where("election_id = ? AND user_id = ?", electionID, userID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("failed to check candidacy: %w", err)
	}
	return n > 0, nil
}
