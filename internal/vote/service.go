package vote

import (
	"errors"

	"gorm.io/gorm"

	"github.com/campuspolls/election-backend/internal/election"
	"github.com/campuspolls/election-backend/internal/platform/authz"
	"github.com/campuspolls/election-backend/internal/platform/database"
	"github.com/campuspolls/election-backend/internal/user"
)

// Rejection reasons of the vote engine. Each precondition failure maps to
// exactly one of these; handlers translate them into user-visible messages.
var (
	ErrElectionNotFound    = errors.New("election not found")
	ErrElectionClosed      = errors.New("this election is closed")
	ErrAdminsCannotVote    = errors.New("admins are not allowed to vote")
	ErrCandidateCannotVote = errors.New("you cannot vote in an election you are a candidate in")
	ErrAlreadyVoted        = errors.New("you have already voted in this election")
	ErrCandidateNotFound   = errors.New("candidate not found in this election")
)

// HasVoted reports whether the user already holds a ballot in the election.
func HasVoted(userID, electionID uint) (bool, error) {
	var n int64
	err := database.DB.Model(&Vote{}).
		Where("user_id = ? AND election_id = ?", userID, electionID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CastVote records one ballot. Preconditions are checked in a fixed order,
// each short-circuiting with its own rejection; when they all pass, the
// tally increment and the ballot insert commit in one transaction or not at
// all. The increment is a single UPDATE ... SET vote_count = vote_count + 1
// so concurrent ballots for the same candidate never lose an update, and a
// duplicate insert that slipped past the pre-check is caught by the unique
// index and reported as ErrAlreadyVoted, never as a raw storage error.
func CastVote(voter *user.User, electionID, candidateID uint) error {
	e, err := election.GetByID(electionID)
	if err != nil {
		if errors.Is(err, election.ErrNotFound) {
			return ErrElectionNotFound
		}
		return err
	}

	// Closed elections take no ballots, even from direct submissions that
	// bypass the UI affordance.
	if !e.Status().Permits(election.OpCastVote) {
		return ErrElectionClosed
	}

	// 1. Admins administer elections, they do not vote in them.
	if !authz.Allow(voter, authz.ActionCastVote, e) {
		return ErrAdminsCannotVote
	}

	// 2. Candidates cannot vote in their own election.
	isCandidate, err := election.CandidateOf(electionID, voter.ID)
	if err != nil {
		return err
	}
	if isCandidate {
		return ErrCandidateCannotVote
	}

	// 3. One ballot per user per election.
	voted, err := HasVoted(voter.ID, electionID)
	if err != nil {
		return err
	}
	if voted {
		return ErrAlreadyVoted
	}

	// 4. The target must be a candidate of this election; the tally update
	// doubles as the existence check inside the transaction.
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&election.Candidate{}).
			Where("id = ? AND election_id = ?", candidateID, electionID).
			Update("vote_count", gorm.Expr("vote_count + ?", 1))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrCandidateNotFound
		}

		return tx.Create(&Vote{
			UserID:      voter.ID,
			ElectionID:  electionID,
			CandidateID: candidateID,
		}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// A concurrent ballot won the race; the increment above was
			// rolled back with the transaction.
			return ErrAlreadyVoted
		}
		return err
	}
	return nil
}
