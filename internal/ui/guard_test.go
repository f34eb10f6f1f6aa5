package ui

import (
	"testing"

	"github.com/kracgan/student-management-frontend/pkg/model"
)

func adminState() SessionState {
	return SessionState{User: &model.Identity{ID: "u1", Username: "admin", Role: model.RoleAdmin}}
}

func studentState() SessionState {
	return SessionState{User: &model.Identity{ID: "u2", Username: "bob", Role: model.RoleStudent}}
}

func anonState() SessionState {
	return SessionState{}
}

func TestDecide_None(t *testing.T) {
	for name, state := range map[string]SessionState{
		"anonymous": anonState(),
		"admin":     adminState(),
		"student":   studentState(),
	} {
		t.Run(name, func(t *testing.T) {
			if d := Decide(state, RequireNone); d.Outcome != OutcomeRender {
				t.Errorf("expected render, got %+v", d)
			}
		})
	}
}

func TestDecide_AnyAuthenticated(t *testing.T) {
	if d := Decide(adminState(), RequireAuthenticated); d.Outcome != OutcomeRender {
		t.Errorf("expected render for admin, got %+v", d)
	}
	if d := Decide(studentState(), RequireAuthenticated); d.Outcome != OutcomeRender {
		t.Errorf("expected render for student, got %+v", d)
	}

	d := Decide(anonState(), RequireAuthenticated)
	if d.Outcome != OutcomeRedirect || d.Target != LoginPath {
		t.Errorf("expected redirect to %s, got %+v", LoginPath, d)
	}
}

func TestDecide_RoleGate(t *testing.T) {
	tests := []struct {
		name    string
		state   SessionState
		req     Requirement
		outcome Outcome
		target  string
	}{
		{"admin route, admin user", adminState(), RequireAdmin, OutcomeRender, ""},
		{"admin route, student user", studentState(), RequireAdmin, OutcomeRedirect, HomePath},
		{"admin route, anonymous", anonState(), RequireAdmin, OutcomeRedirect, LoginPath},
		{"student route, student user", studentState(), RequireStudent, OutcomeRender, ""},
		{"student route, admin user", adminState(), RequireStudent, OutcomeRedirect, HomePath},
		{"student route, anonymous", anonState(), RequireStudent, OutcomeRedirect, LoginPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Decide(tt.state, tt.req)
			if d.Outcome != tt.outcome {
				t.Errorf("expected outcome %v, got %v", tt.outcome, d.Outcome)
			}
			if d.Target != tt.target {
				t.Errorf("expected target %q, got %q", tt.target, d.Target)
			}
		})
	}
}

func TestDecide_LoadingPrecedence(t *testing.T) {
	// While restoration is unresolved no requirement may render or issue a
	// final redirect, whatever the user value looks like.
	states := map[string]SessionState{
		"no user":   {Loading: true},
		"with user": {Loading: true, User: &model.Identity{Role: model.RoleAdmin}},
	}
	reqs := []Requirement{RequireNone, RequireAuthenticated, RequireAdmin, RequireStudent}

	for name, state := range states {
		for _, req := range reqs {
			if d := Decide(state, req); d.Outcome != OutcomeLoading {
				t.Errorf("%s, requirement %v: expected loading outcome, got %+v", name, req, d)
			}
		}
	}

	if d := DecideLogin(SessionState{Loading: true}); d.Outcome != OutcomeLoading {
		t.Errorf("login page: expected loading outcome, got %+v", d)
	}
}

func TestDecideLogin(t *testing.T) {
	if d := DecideLogin(anonState()); d.Outcome != OutcomeRender {
		t.Errorf("expected render for anonymous, got %+v", d)
	}

	for name, state := range map[string]SessionState{
		"admin":   adminState(),
		"student": studentState(),
	} {
		t.Run(name, func(t *testing.T) {
			d := DecideLogin(state)
			if d.Outcome != OutcomeRedirect || d.Target != HomePath {
				t.Errorf("expected redirect home for active session, got %+v", d)
			}
		})
	}
}

func TestDecide_UnknownRequirementNeverRenders(t *testing.T) {
	d := Decide(adminState(), Requirement(99))
	if d.Outcome == OutcomeRender {
		t.Error("unknown requirement must not render")
	}
}
