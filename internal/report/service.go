package report

import (
	"github.com/campuspolls/election-backend/internal/election"
	"github.com/campuspolls/election-backend/internal/platform/database"
	"github.com/campuspolls/election-backend/internal/vote"
)

// CandidateResult is one row of the ranked results view.
type CandidateResult struct {
	CandidateID uint   `json:"candidate_id"`
	FullName    string `json:"full_name"`
	VoteCount   int    `json:"vote_count"`
}

// Results returns the tally of every candidate in the election, zero-vote
// candidates included, ranked by vote count. It reads the committed
// counters directly; there is no cache that could serve a stale tally
// after a vote commits.
func Results(electionID uint) (*election.Election, []CandidateResult, error) {
	e, err := election.GetByID(electionID)
	if err != nil {
		return nil, nil, err
	}

	var candidates []election.Candidate
	err = database.DB.
		Where("election_id = ?", electionID).
		Order("vote_count desc, id asc").
		Find(&candidates).Error
	if err != nil {
		return nil, nil, err
	}

	results := make([]CandidateResult, len(candidates))
	for i, cand := range candidates {
		results[i] = CandidateResult{
			CandidateID: cand.ID,
			FullName:    cand.FullName,
			VoteCount:   cand.VoteCount,
		}
	}
	return e, results, nil
}

// Mismatch reports one candidate whose stored counter disagrees with the
// number of ballots on record.
type Mismatch struct {
	CandidateID uint  `json:"candidate_id"`
	Stored      int   `json:"stored_count"`
	Counted     int64 `json:"counted_ballots"`
}

// Reconcile recounts ballots per candidate and compares them with the
// denormalized counters. An empty slice means the tallies are consistent.
// This is a consistency check for operators, not part of the voting path.
func Reconcile(electionID uint) ([]Mismatch, error) {
	if _, err := election.GetByID(electionID); err != nil {
		return nil, err
	}

	var candidates []election.Candidate
	if err := database.DB.Where("election_id = ?", electionID).Find(&candidates).Error; err != nil {
		return nil, err
	}

	type ballotCount struct {
		CandidateID uint
		N           int64
	}
	var counts []ballotCount
	err := database.DB.Model(&vote.Vote{}).
		Select("candidate_id, count(*) as n").
		Where("election_id = ?", electionID).
		Group("candidate_id").
		Scan(&counts).Error
	if err != nil {
		return nil, err
	}

	counted := make(map[uint]int64, len(counts))
	for _, bc := range counts {
		counted[bc.CandidateID] = bc.N
	}

	var mismatches []Mismatch
	for _, cand := range candidates {
		if int64(cand.VoteCount) != counted[cand.ID] {
			mismatches = append(mismatches, Mismatch{
				CandidateID: cand.ID,
				Stored:      cand.VoteCount,
				Counted:     counted[cand.ID],
			})
		}
	}
	return mismatches, nil
}
