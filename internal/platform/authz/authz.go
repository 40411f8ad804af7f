package authz

// Role is the set of roles a caller can hold.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// Action enumerates everything a caller can ask the system to do.
type Action string

const (
	ActionManageElections  Action = "elections:manage"
	ActionManageCandidates Action = "candidates:manage"
	ActionManageUsers      Action = "users:manage"
	ActionCastVote         Action = "elections:vote"
	ActionViewResults      Action = "elections:results"
	ActionReconcile        Action = "elections:reconcile"
)

// Actor is any authenticated caller.
type Actor interface {
	AuthRole() Role
}

// Resource is the optional target of an action. Resources that gate
// visibility on their lifecycle state report it through ResultsVisible.
type Resource interface {
	ResultsVisible() bool
}

// Allow is the single authorization decision point: it answers whether the
// actor may perform the action on the resource (which may be nil for
// resource-independent actions). New roles or actions extend this table
// instead of adding role conditionals at call sites.
func Allow(actor Actor, action Action, res Resource) bool {
	if actor == nil {
		return false
	}

	switch actor.AuthRole() {
	case RoleAdmin:
		// Admins administer everything but are barred from the ballot box.
		return action != ActionCastVote
	case RoleStudent:
		switch action {
		case ActionCastVote:
			return true
		case ActionViewResults:
			return res != nil && res.ResultsVisible()
		}
	}
	return false
}
