package vote

import (
	"gorm.io/gorm"

	"github.com/campuspolls/election-backend/internal/election"
	"github.com/campuspolls/election-backend/internal/user"
)

// Vote is one immutable ballot binding a user to a candidate within one
// election. The composite unique index on (user_id, election_id) is the
// authoritative one-vote-per-user guard: application pre-checks can race,
// the index cannot.
type Vote struct {
	gorm.Model

	UserID uint      `gorm:"not null;uniqueIndex:idx_votes_user_election" json:"user_id"`
	User   user.User `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	ElectionID uint              `gorm:"not null;uniqueIndex:idx_votes_user_election" json:"election_id"`
	Election   election.Election `gorm:"constraint:OnDelete:CASCADE" json:"-"`

	CandidateID uint               `gorm:"not null;index" json:"candidate_id"`
	Candidate   election.Candidate `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}
