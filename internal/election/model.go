package election

import (
	"time"

	"gorm.io/gorm"

	"github.com/campuspolls/election-backend/internal/user"
)

// Election is a timed contest with one or more candidates. It is created
// open and is closed exactly once by an admin; the stored is_closed flag is
// the persisted form of the lifecycle state.
type Election struct {
	gorm.Model

	Name      string    `gorm:"not null" json:"name"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsClosed  bool      `gorm:"not null;default:false" json:"is_closed"`

	Candidates []Candidate `json:"candidates,omitempty"`
}

// Status derives the lifecycle state from the persisted flag.
func (e *Election) Status() Status {
	if e.IsClosed {
		return StatusClosed
	}
	return StatusOpen
}

// ResultsVisible implements authz.Resource: students may only see results
// of a closed election.
func (e *Election) ResultsVisible() bool {
	return e.IsClosed
}

// Candidate is an entrant in one election. It may be linked to a registered
// account, but does not have to be; the OnDelete:SET NULL constraint keeps
// the candidacy alive when the account is removed.
type Candidate struct {
	gorm.Model

	ElectionID uint       `gorm:"not null;index" json:"election_id"`
	UserID     *uint      `gorm:"uniqueIndex" json:"user_id,omitempty"`
	User       *user.User `gorm:"constraint:OnDelete:SET NULL" json:"-"`

	FullName string `gorm:"not null" json:"full_name"`
	Bio      string `json:"bio,omitempty"`

	// Image is the file name under the candidate image directory, served
	// via the static /images/candidates route.
	Image string `json:"image,omitempty"`

	// VoteCount is the denormalized tally. It starts at zero, never
	// decreases, and is only ever changed by the vote engine's atomic
	// increment inside the same transaction as the ballot insert.
	VoteCount int `gorm:"not null;default:0" json:"vote_count"`

	Fields []CandidateField `gorm:"foreignKey:CandidateID" json:"fields,omitempty"`
}

// CandidateField is a free-form name/value pair on a candidate profile.
type CandidateField struct {
	gorm.Model

	CandidateID uint   `gorm:"not null;index" json:"candidate_id"`
	Name        string `gorm:"not null" json:"name"`
	Value       string `json:"value"`
}
