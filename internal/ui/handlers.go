package ui

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kracgan/student-management-frontend/internal/backend"
	"github.com/kracgan/student-management-frontend/pkg/model"
)

// UI handles the web user interface.
type UI struct {
	sessions  *SessionManager
	api       *backend.Client
	logger    *slog.Logger
	templates *templateSet
}

// New creates a new UI handler.
func New(sessions *SessionManager, api *backend.Client, logger *slog.Logger) *UI {
	return &UI{
		sessions:  sessions,
		api:       api,
		logger:    logger.With("component", "ui"),
		templates: parseTemplates(),
	}
}

// apiFor returns a backend client acting on behalf of the session user.
func (ui *UI) apiFor(state *SessionState) *backend.Client {
	return ui.api.WithToken(state.Token)
}

// HandleLogin renders the login page.
func (ui *UI) HandleLogin(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())

	switch d := DecideLogin(*state); d.Outcome {
	case OutcomeRedirect:
		http.Redirect(w, r, d.Target, http.StatusSeeOther)
		return
	case OutcomeLoading:
		ui.renderLoading(w)
		return
	}

	ui.render(w, "login", map[string]any{
		"Title": "Sign in",
		"Error": r.URL.Query().Get("error"),
	})
}

// HandleLoginPost processes the login form.
func (ui *UI) HandleLoginPost(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ui.redirectLoginError(w, r, "Invalid request")
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	if username == "" || password == "" {
		ui.redirectLoginError(w, r, "Username and password required")
		return
	}

	result := ui.sessions.Login(r.Context(), w, username, password)
	if !result.OK() {
		ui.redirectLoginError(w, r, result.Message)
		return
	}

	http.Redirect(w, r, HomePath, http.StatusSeeOther)
}

// HandleLogout clears the session and redirects to login.
func (ui *UI) HandleLogout(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	ui.sessions.Logout(r.Context(), w, r)
	if state != nil && state.User != nil {
		ui.logger.Info("user logged out", "username", state.User.Username)
	}
	http.Redirect(w, r, LoginPath, http.StatusSeeOther)
}

// HandleHome renders the role-appropriate dashboard.
func (ui *UI) HandleHome(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())

	if state.IsAdmin() {
		ui.renderAdminDashboard(w, r, state)
		return
	}
	ui.renderStudentDashboard(w, r, state)
}

func (ui *UI) renderAdminDashboard(w http.ResponseWriter, r *http.Request, state *SessionState) {
	stats, err := ui.apiFor(state).DashboardStats(r.Context())
	if err != nil {
		ui.renderError(w, state, "Failed to load dashboard", err)
		return
	}

	ui.render(w, "dashboard_admin", map[string]any{
		"Title":   "Dashboard",
		"Session": state,
		"Stats":   stats,
	})
}

func (ui *UI) renderStudentDashboard(w http.ResponseWriter, r *http.Request, state *SessionState) {
	api := ui.apiFor(state)

	profile, err := api.Profile(r.Context())
	if err != nil {
		ui.renderError(w, state, "Failed to load profile", err)
		return
	}
	enrollments, err := api.MyEnrollments(r.Context())
	if err != nil {
		ui.renderError(w, state, "Failed to load enrollments", err)
		return
	}

	ui.render(w, "dashboard_student", map[string]any{
		"Title":       "Dashboard",
		"Session":     state,
		"Profile":     profile,
		"Enrollments": enrollments,
	})
}

// --- helpers ---

func (ui *UI) redirectLoginError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, LoginPath+"?error="+url.QueryEscape(msg), http.StatusSeeOther)
}

func (ui *UI) pathParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

func (ui *UI) parseListOptions(r *http.Request) model.ListOptions {
	opts := model.DefaultListOptions()
	q := r.URL.Query()
	if v, err := strconv.Atoi(q.Get("limit")); err == nil {
		opts.Limit = v
	}
	if v, err := strconv.Atoi(q.Get("offset")); err == nil {
		opts.Offset = v
	}
	opts.Search = q.Get("search")
	opts.Clamp()
	return opts
}
