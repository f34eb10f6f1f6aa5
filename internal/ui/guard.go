package ui

// Well-known paths used by guard decisions.
const (
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/login"
	// HomePath is the role-dispatched dashboard.
	HomePath = "/"
)

// Requirement is the role a route requires.
type Requirement int

const (
	// RequireNone renders unconditionally.
	RequireNone Requirement = iota
	// RequireAuthenticated renders for any signed-in user.
	RequireAuthenticated
	// RequireAdmin renders for administrators only.
	RequireAdmin
	// RequireStudent renders for students only.
	RequireStudent
)

// Outcome classifies a guard decision.
type Outcome int

const (
	// OutcomeLoading means session restoration has not resolved yet; the
	// caller must show a neutral loading indicator, never route content.
	OutcomeLoading Outcome = iota
	// OutcomeRender lets the route's content render.
	OutcomeRender
	// OutcomeRedirect sends the visitor to Decision.Target.
	OutcomeRedirect
)

// Decision is the result of evaluating a route against session state.
type Decision struct {
	Outcome Outcome
	Target  string // redirect target, set only for OutcomeRedirect
}

func render() Decision  { return Decision{Outcome: OutcomeRender} }
func loading() Decision { return Decision{Outcome: OutcomeLoading} }

func redirectTo(path string) Decision { return Decision{Outcome: OutcomeRedirect, Target: path} }

// Decide maps session state and a route requirement to render-or-redirect.
// It is a pure function: same state and requirement, same decision.
//
// A visitor holding the wrong role for a specific-role route is sent to the
// dashboard rather than the login page, so a student never silently lands
// on an admin screen and vice versa.
func Decide(state SessionState, req Requirement) Decision {
	if state.Loading {
		return loading()
	}

	switch req {
	case RequireNone:
		return render()

	case RequireAuthenticated:
		if state.IsAuthenticated() {
			return render()
		}
		return redirectTo(LoginPath)

	case RequireAdmin:
		if !state.IsAuthenticated() {
			return redirectTo(LoginPath)
		}
		if state.IsAdmin() {
			return render()
		}
		return redirectTo(HomePath)

	case RequireStudent:
		if !state.IsAuthenticated() {
			return redirectTo(LoginPath)
		}
		if state.IsStudent() {
			return render()
		}
		return redirectTo(HomePath)
	}

	// Unknown requirement values never render.
	return redirectTo(HomePath)
}

// DecideLogin covers the login page itself: an active session goes to the
// dashboard instead of seeing the login form again.
func DecideLogin(state SessionState) Decision {
	if state.Loading {
		return loading()
	}
	if state.IsAuthenticated() {
		return redirectTo(HomePath)
	}
	return render()
}
