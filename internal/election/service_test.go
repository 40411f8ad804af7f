package election_test

import (
	"errors"
	"testing"
	"time"

	"github.com/campuspolls/election-backend/internal/election"
	"github.com/campuspolls/election-backend/internal/platform/database"
	"github.com/campuspolls/election-backend/internal/testutil"
	"github.com/campuspolls/election-backend/internal/vote"
)

func newElection(t *testing.T, name string) *election.Election {
	t.Helper()
	e, err := election.CreateElection(election.ElectionInput{
		Name:      name,
		StartDate: time.Now(),
		EndDate:   time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create election: %v", err)
	}
	return e
}

func TestUpdateElection(t *testing.T) {
	testutil.OpenTestDB(t, "election_update")
	e := newElection(t, "Student Council")

	updated, err := election.UpdateElection(e.ID, election.ElectionInput{
		Name:      "Student Council 2026",
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
	})
	if err != nil {
		t.Fatalf("update open election: %v", err)
	}
	if updated.Name != "Student Council 2026" {
		t.Fatalf("name not updated, got %q", updated.Name)
	}
}

func TestUpdateClosedElectionRejected(t *testing.T) {
	testutil.OpenTestDB(t, "election_update_closed")
	e := newElection(t, "Student Council")

	if _, err := election.CloseElection(e.ID); err != nil {
		t.Fatalf("close election: %v", err)
	}

	_, err := election.UpdateElection(e.ID, election.ElectionInput{
		Name:      "Renamed",
		StartDate: e.StartDate,
		EndDate:   e.EndDate,
	})
	if !errors.Is(err, election.ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}

	// No mutation may have leaked through.
	reloaded, err := election.GetByID(e.ID)
	if err != nil {
		t.Fatalf("reload election: %v", err)
	}
	if reloaded.Name != "Student Council" {
		t.Fatalf("closed election was mutated: %q", reloaded.Name)
	}
}

func TestCloseElectionIsIdempotent(t *testing.T) {
	testutil.OpenTestDB(t, "election_close_idempotent")
	e := newElection(t, "Student Council")

	first, err := election.CloseElection(e.ID)
	if err != nil {
		t.Fatalf("first close: %v", err)
	}
	if !first.IsClosed {
		t.Fatal("election not closed after first close")
	}

	second, err := election.CloseElection(e.ID)
	if err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
	if !second.IsClosed {
		t.Fatal("election reopened by second close")
	}
}

func TestDeleteOpenElectionWithVotesRejected(t *testing.T) {
	testutil.OpenTestDB(t, "election_delete_guard")
	e := newElection(t, "Student Council")
	voter := testutil.CreateStudent(t, "voter1")

	cand, err := election.AddCandidate(e.ID, election.CandidateInput{FullName: "Alice"})
	if err != nil {
		t.Fatalf("add candidate: %v", err)
	}
	if err := vote.CastVote(voter, e.ID, cand.ID); err != nil {
		t.Fatalf("cast vote: %v", err)
	}

	if err := election.DeleteElection(e.ID); !errors.Is(err, election.ErrHasVotes) {
		t.Fatalf("expected ErrHasVotes, got %v", err)
	}

	// After closing, deletion cascades everything away.
	if _, err := election.CloseElection(e.ID); err != nil {
		t.Fatalf("close election: %v", err)
	}
	if err := election.DeleteElection(e.ID); err != nil {
		t.Fatalf("delete closed election: %v", err)
	}
	if _, err := election.GetByID(e.ID); !errors.Is(err, election.ErrNotFound) {
		t.Fatalf("election still present after delete: %v", err)
	}
	var votes int64
	if err := database.DB.Table("votes").Count(&votes).Error; err != nil {
		t.Fatalf("count votes: %v", err)
	}
	if votes != 0 {
		t.Fatalf("votes survived election deletion: %d", votes)
	}
}

func TestCandidateManagementGuardedByLifecycle(t *testing.T) {
	testutil.OpenTestDB(t, "election_candidate_guard")
	e := newElection(t, "Student Council")

	cand, err := election.AddCandidate(e.ID, election.CandidateInput{FullName: "Alice", Bio: "Hi"})
	if err != nil {
		t.Fatalf("add candidate: %v", err)
	}
	if cand.VoteCount != 0 {
		t.Fatalf("new candidate should start at zero votes, got %d", cand.VoteCount)
	}

	if _, err := election.CloseElection(e.ID); err != nil {
		t.Fatalf("close election: %v", err)
	}
	if _, err := election.AddCandidate(e.ID, election.CandidateInput{FullName: "Bob"}); !errors.Is(err, election.ErrClosed) {
		t.Fatalf("expected ErrClosed adding candidate to closed election, got %v", err)
	}
	if _, err := election.UpdateCandidate(cand.ID, election.CandidateInput{FullName: "Alice B."}); !errors.Is(err, election.ErrClosed) {
		t.Fatalf("expected ErrClosed updating candidate of closed election, got %v", err)
	}
}

func TestCandidateUserLink(t *testing.T) {
	testutil.OpenTestDB(t, "election_candidate_link")
	e := newElection(t, "Student Council")
	u := testutil.CreateStudent(t, "alice")

	if _, err := election.AddCandidate(e.ID, election.CandidateInput{FullName: "Alice", Username: "nobody"}); !errors.Is(err, election.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	cand, err := election.AddCandidate(e.ID, election.CandidateInput{FullName: "Alice", Username: "alice"})
	if err != nil {
		t.Fatalf("add linked candidate: %v", err)
	}
	if cand.UserID == nil || *cand.UserID != u.ID {
		t.Fatalf("candidate not linked to user %d: %+v", u.ID, cand.UserID)
	}

	// The same account cannot back a second candidate.
	if _, err := election.AddCandidate(e.ID, election.CandidateInput{FullName: "Alice Again", Username: "alice"}); !errors.Is(err, election.ErrAlreadyCandidate) {
		t.Fatalf("expected ErrAlreadyCandidate, got %v", err)
	}

	// Unlinking leaves the candidacy standing.
	cand, err = election.UpdateCandidate(cand.ID, election.CandidateInput{FullName: "Alice"})
	if err != nil {
		t.Fatalf("unlink candidate: %v", err)
	}
	if cand.UserID != nil {
		t.Fatalf("candidate still linked after unlink: %v", *cand.UserID)
	}
}

func TestCandidateFields(t *testing.T) {
	testutil.OpenTestDB(t, "election_fields")
	e := newElection(t, "Student Council")
	cand, err := election.AddCandidate(e.ID, election.CandidateInput{FullName: "Alice"})
	if err != nil {
		t.Fatalf("add candidate: %v", err)
	}

	f, err := election.AddField(cand.ID, "Motto", "Onward")
	if err != nil {
		t.Fatalf("add field: %v", err)
	}

	loaded, err := election.GetCandidate(cand.ID)
	if err != nil {
		t.Fatalf("reload candidate: %v", err)
	}
	if len(loaded.Fields) != 1 || loaded.Fields[0].Name != "Motto" {
		t.Fatalf("unexpected fields: %+v", loaded.Fields)
	}

	if err := election.DeleteField(f.ID); err != nil {
		t.Fatalf("delete field: %v", err)
	}
	if err := election.DeleteField(f.ID); !errors.Is(err, election.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for deleted field, got %v", err)
	}
}
