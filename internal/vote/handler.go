package vote

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campuspolls/election-backend/internal/election"
	"github.com/campuspolls/election-backend/internal/user"
)

// BallotResponse is the election detail view: the election, its candidates
// and the caller's eligibility flags, mirroring what the voting UI needs to
// decide whether to show the vote affordance.
type BallotResponse struct {
	Election        *election.Election `json:"election"`
	UserIsAdmin     bool               `json:"user_is_admin"`
	UserIsCandidate bool               `json:"user_is_candidate"`
	UserHasVoted    bool               `json:"user_has_voted"`
	ElectionClosed  bool               `json:"election_is_closed"`
}

func electionID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid election id"})
		return 0, false
	}
	return uint(id), true
}

// GetBallot handles GET /api/elections/:id.
func GetBallot(c *gin.Context) {
	id, ok := electionID(c)
	if !ok {
		return
	}
	u, ok := user.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	e, err := election.GetByID(id)
	if err != nil {
		if errors.Is(err, election.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "election not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load election"})
		return
	}

	isCandidate, err := election.CandidateOf(id, u.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load election"})
		return
	}
	voted, err := HasVoted(u.ID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load election"})
		return
	}

	c.JSON(http.StatusOK, BallotResponse{
		Election:        e,
		UserIsAdmin:     u.IsAdmin(),
		UserIsCandidate: isCandidate,
		UserHasVoted:    voted,
		ElectionClosed:  e.IsClosed,
	})
}

// VoteRequestBody is the JSON body of POST /api/elections/:id/vote.
type VoteRequestBody struct {
	CandidateID uint `json:"candidate_id" binding:"required"`
}

// SubmitVote handles POST /api/elections/:id/vote.
func SubmitVote(c *gin.Context) {
	id, ok := electionID(c)
	if !ok {
		return
	}
	u, ok := user.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var body VoteRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed request: " + err.Error()})
		return
	}

	if err := CastVote(u, id, body.CandidateID); err != nil {
		switch {
		case errors.Is(err, ErrElectionNotFound), errors.Is(err, ErrCandidateNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAdminsCannotVote), errors.Is(err, ErrCandidateCannotVote):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAlreadyVoted), errors.Is(err, ErrElectionClosed):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record vote"})
		}
		return
	}

	// The UI follows this to the results view, matching the post-vote
	// redirect of the web flow.
	c.JSON(http.StatusOK, gin.H{
		"message": "vote recorded",
		"results": "/api/elections/" + strconv.FormatUint(uint64(id), 10) + "/results",
	})
}
