package ui

import (
	"context"
	"net/http"
)

// Context keys for session data.
type contextKey string

const sessionContextKey contextKey = "session"

// StateFromContext retrieves the session state from the request context.
// Returns nil when no session middleware ran.
func StateFromContext(ctx context.Context) *SessionState {
	state, _ := ctx.Value(sessionContextKey).(*SessionState)
	return state
}

// WithSession restores the session once per request and adds the state to
// the request context. It makes no routing decision itself.
func (ui *UI) WithSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		state := ui.sessions.Restore(r)
		ctx := context.WithValue(r.Context(), sessionContextKey, &state)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Guard enforces a route requirement using the guard decision function.
// Must be used after WithSession.
func (ui *UI) Guard(req Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := StateFromContext(r.Context())
			if state == nil {
				restored := ui.sessions.Restore(r)
				state = &restored
				r = r.WithContext(context.WithValue(r.Context(), sessionContextKey, state))
			}

			switch d := Decide(*state, req); d.Outcome {
			case OutcomeRender:
				next.ServeHTTP(w, r)
			case OutcomeRedirect:
				http.Redirect(w, r, d.Target, http.StatusSeeOther)
			default:
				ui.renderLoading(w)
			}
		})
	}
}
