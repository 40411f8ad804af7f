package report_test

import (
	"testing"
	"time"

	"github.com/campuspolls/election-backend/internal/election"
	"github.com/campuspolls/election-backend/internal/platform/database"
	"github.com/campuspolls/election-backend/internal/report"
	"github.com/campuspolls/election-backend/internal/testutil"
	"github.com/campuspolls/election-backend/internal/vote"
)

func seedElection(t *testing.T, dbName string) (*election.Election, *election.Candidate, *election.Candidate) {
	t.Helper()
	testutil.OpenTestDB(t, dbName)
	e, err := election.CreateElection(election.ElectionInput{
		Name:      "Fall Vote",
		StartDate: time.Now(),
		EndDate:   time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create election: %v", err)
	}
	a, err := election.AddCandidate(e.ID, election.CandidateInput{FullName: "A"})
	if err != nil {
		t.Fatalf("add candidate: %v", err)
	}
	b, err := election.AddCandidate(e.ID, election.CandidateInput{FullName: "B"})
	if err != nil {
		t.Fatalf("add candidate: %v", err)
	}
	return e, a, b
}

func TestResultsIncludeZeroVoteCandidates(t *testing.T) {
	e, a, b := seedElection(t, "report_zero")
	u1 := testutil.CreateStudent(t, "u1")
	u2 := testutil.CreateStudent(t, "u2")

	if err := vote.CastVote(u1, e.ID, a.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}
	if err := vote.CastVote(u2, e.ID, a.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}

	_, results, err := report.Results(e.ID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results rows = %d, want 2", len(results))
	}
	// Ranked by tally, zero-vote candidate still listed.
	if results[0].CandidateID != a.ID || results[0].VoteCount != 2 {
		t.Fatalf("unexpected first row: %+v", results[0])
	}
	if results[1].CandidateID != b.ID || results[1].VoteCount != 0 {
		t.Fatalf("unexpected second row: %+v", results[1])
	}
}

func TestResultsSumMatchesBallots(t *testing.T) {
	e, a, b := seedElection(t, "report_sum")
	for i, target := range []uint{a.ID, a.ID, b.ID} {
		u := testutil.CreateStudent(t, "voter"+string(rune('0'+i)))
		if err := vote.CastVote(u, e.ID, target); err != nil {
			t.Fatalf("vote %d: %v", i, err)
		}
	}

	_, results, err := report.Results(e.ID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	sum := 0
	for _, r := range results {
		sum += r.VoteCount
	}

	var ballots int64
	if err := database.DB.Table("votes").Where("election_id = ?", e.ID).Count(&ballots).Error; err != nil {
		t.Fatalf("count ballots: %v", err)
	}
	if int64(sum) != ballots {
		t.Fatalf("tally sum %d != ballot count %d", sum, ballots)
	}
}

func TestReconcile(t *testing.T) {
	e, a, _ := seedElection(t, "report_reconcile")
	u := testutil.CreateStudent(t, "u1")
	if err := vote.CastVote(u, e.ID, a.ID); err != nil {
		t.Fatalf("vote: %v", err)
	}

	mismatches, err := report.Reconcile(e.ID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(mismatches) != 0 {
		t.Fatalf("expected consistent tallies, got %+v", mismatches)
	}

	// Corrupt the denormalized counter behind the engine's back.
	if err := database.DB.Model(&election.Candidate{}).Where("id = ?", a.ID).Update("vote_count", 5).Error; err != nil {
		t.Fatalf("corrupt counter: %v", err)
	}

	mismatches, err = report.Reconcile(e.ID)
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if len(mismatches) != 1 {
		t.Fatalf("expected one mismatch, got %+v", mismatches)
	}
	m := mismatches[0]
	if m.CandidateID != a.ID || m.Stored != 5 || m.Counted != 1 {
		t.Fatalf("unexpected mismatch: %+v", m)
	}
}
