// Package access decides whether the current session may enter a view and,
// if not, where it should be sent instead.
package access

// Requirement is what a view demands of the session.
type Requirement int

const (
	RequireNone Requirement = iota
	RequireAuthenticated
	RequireAdmin
)

func (r Requirement) String() string {
	switch r {
	case RequireNone:
		return "none"
	case RequireAuthenticated:
		return "authenticated"
	case RequireAdmin:
		return "adminOnly"
	default:
		return "unknown"
	}
}

// Outcome is the kind of decision.
type Outcome int

const (
	// Loading means the session has not finished restoring; nothing may be
	// rendered and no redirect may be issued yet.
	Loading Outcome = iota
	Allow
	Deny
)

// Decision is the guard's answer. Redirect is set only when Outcome is Deny.
type Decision struct {
	Outcome  Outcome
	Redirect Route
}

// Allowed reports whether the view may be entered.
func (d Decision) Allowed() bool {
	return d.Outcome == Allow
}

// Snapshot is the part of the session the guard looks at.
type Snapshot struct {
	Loading       bool
	Authenticated bool
	Admin         bool
}

// Decide is a pure function of req and s:
//
//   - while s is loading the answer is Loading, whatever req is;
//   - RequireNone always allows;
//   - anything stricter sends an anonymous session to the login view;
//   - RequireAdmin sends an authenticated non-admin to the home view.
func Decide(req Requirement, s Snapshot) Decision {
	if s.Loading {
		return Decision{Outcome: Loading}
	}

	switch req {
	case RequireNone:
		return Decision{Outcome: Allow}
	case RequireAuthenticated:
		if !s.Authenticated {
			return Decision{Outcome: Deny, Redirect: RouteLogin}
		}
		return Decision{Outcome: Allow}
	default:
		if !s.Authenticated {
			return Decision{Outcome: Deny, Redirect: RouteLogin}
		}
		if !s.Admin {
			return Decision{Outcome: Deny, Redirect: RouteHome}
		}
		return Decision{Outcome: Allow}
	}
}
