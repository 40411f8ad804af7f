package election

// Status is the lifecycle state of an election. There are exactly two
// states and one legal transition: Open -> Closed. Nothing reopens a
// closed election.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

// Operation enumerates the state-guarded operations on an election.
type Operation string

const (
	OpEditElection     Operation = "edit_election"
	OpManageCandidates Operation = "manage_candidates"
	OpCastVote         Operation = "cast_vote"
	OpCloseElection    Operation = "close_election"
	OpDeleteElection   Operation = "delete_election"
)

// permitted is the single reviewable table of which operations are legal in
// which state. Closing an already-closed election stays permitted so the
// action is idempotent. Deletion is permitted in both states; the
// additional votes-exist guard for open elections lives in DeleteElection.
// Result visibility is role-dependent and therefore decided by the authz
// table via Election.ResultsVisible, not here.
var permitted = map[Status]map[Operation]bool{
	StatusOpen: {
		OpEditElection:     true,
		OpManageCandidates: true,
		OpCastVote:         true,
		OpCloseElection:    true,
		OpDeleteElection:   true,
	},
	StatusClosed: {
		OpCloseElection:  true,
		OpDeleteElection: true,
	},
}

// Permits reports whether the operation is legal in this state.
func (s Status) Permits(op Operation) bool {
	return permitted[s][op]
}
