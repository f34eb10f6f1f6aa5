package ui

import (
	"net/http"
	"strings"

	"github.com/kracgan/student-management-frontend/pkg/model"
)

// HandleProfile renders the student's own profile.
func (ui *UI) HandleProfile(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())

	profile, err := ui.apiFor(state).Profile(r.Context())
	if err != nil {
		ui.renderError(w, state, "Failed to load profile", err)
		return
	}

	ui.render(w, "profile", map[string]any{
		"Title":   "My Profile",
		"Session": state,
		"Profile": profile,
		"Saved":   r.URL.Query().Get("saved") != "",
	})
}

// HandleProfileUpdate applies profile edits to the backend and merges the
// change into the session user.
func (ui *UI) HandleProfileUpdate(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		ui.renderError(w, state, "Invalid form", err)
		return
	}

	var patch model.IdentityPatch
	if v := strings.TrimSpace(r.FormValue("name")); v != "" {
		patch.Name = &v
	}
	if v := strings.TrimSpace(r.FormValue("email")); v != "" {
		patch.Email = &v
	}

	if err := ui.apiFor(state).UpdateProfile(r.Context(), patch); err != nil {
		ui.renderError(w, state, "Failed to save profile", err)
		return
	}
	ui.sessions.UpdateUser(r.Context(), state, patch)

	http.Redirect(w, r, "/profile?saved=1", http.StatusSeeOther)
}

// HandleSubjects renders the subject browser with the student's current
// enrollments marked.
func (ui *UI) HandleSubjects(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	api := ui.apiFor(state)
	opts := ui.parseListOptions(r)

	subjects, pagination, err := api.ListSubjects(r.Context(), opts)
	if err != nil {
		ui.renderError(w, state, "Failed to load subjects", err)
		return
	}
	enrollments, err := api.MyEnrollments(r.Context())
	if err != nil {
		ui.renderError(w, state, "Failed to load enrollments", err)
		return
	}

	enrolled := make(map[string]string, len(enrollments)) // subject ID -> enrollment ID
	for _, e := range enrollments {
		enrolled[e.SubjectID] = e.ID
	}

	ui.render(w, "subjects", map[string]any{
		"Title":      "Subjects",
		"Session":    state,
		"Subjects":   subjects,
		"Enrolled":   enrolled,
		"Pagination": pagination,
		"Search":     opts.Search,
	})
}

// HandleEnroll enrolls the student in a subject.
func (ui *UI) HandleEnroll(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	subjectID := ui.pathParam(r, "id")

	if err := ui.apiFor(state).Enroll(r.Context(), subjectID); err != nil {
		ui.renderError(w, state, "Enrollment failed", err)
		return
	}

	http.Redirect(w, r, "/subjects", http.StatusSeeOther)
}

// HandleDrop drops an enrollment.
func (ui *UI) HandleDrop(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	enrollmentID := ui.pathParam(r, "id")

	if err := ui.apiFor(state).Drop(r.Context(), enrollmentID); err != nil {
		ui.renderError(w, state, "Drop failed", err)
		return
	}

	http.Redirect(w, r, "/subjects", http.StatusSeeOther)
}
