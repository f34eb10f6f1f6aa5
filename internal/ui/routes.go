package ui

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// RegisterRoutes registers all UI routes on the given router.
func (ui *UI) RegisterRoutes(r chi.Router) {
	r.Use(ui.WithSession)

	// Public routes. The login form POST is rate limited per IP to damp
	// credential stuffing; the backend still does the real verification.
	r.Get(LoginPath, ui.HandleLogin)
	r.With(httprate.LimitByIP(10, time.Minute)).Post(LoginPath, ui.HandleLoginPost)

	// Protected routes (auth required).
	r.Group(func(r chi.Router) {
		r.Use(ui.Guard(RequireAuthenticated))

		r.Get(HomePath, ui.HandleHome)
		r.Get("/logout", ui.HandleLogout)

		// Student routes.
		r.Group(func(r chi.Router) {
			r.Use(ui.Guard(RequireStudent))
			r.Get("/profile", ui.HandleProfile)
			r.Post("/profile", ui.HandleProfileUpdate)
			r.Get("/subjects", ui.HandleSubjects)
			r.Post("/subjects/{id}/enroll", ui.HandleEnroll)
			r.Post("/enrollments/{id}/drop", ui.HandleDrop)
		})

		// Admin routes.
		r.Route("/admin", func(r chi.Router) {
			r.Use(ui.Guard(RequireAdmin))
			r.Get("/students", ui.HandleStudentList)
			r.Post("/students", ui.HandleStudentCreate)
			r.Post("/students/{id}", ui.HandleStudentUpdate)
			r.Post("/students/{id}/delete", ui.HandleStudentDelete)

			r.Get("/departments", ui.HandleDepartmentList)
			r.Post("/departments", ui.HandleDepartmentCreate)
			r.Post("/departments/{id}", ui.HandleDepartmentUpdate)
			r.Post("/departments/{id}/delete", ui.HandleDepartmentDelete)

			r.Get("/subjects", ui.HandleSubjectList)
			r.Post("/subjects", ui.HandleSubjectCreate)
			r.Post("/subjects/{id}", ui.HandleSubjectUpdate)
			r.Post("/subjects/{id}/delete", ui.HandleSubjectDelete)

			r.Get("/enrollments", ui.HandleEnrollmentList)
			r.Post("/enrollments", ui.HandleEnrollmentCreate)
			r.Post("/enrollments/{id}/delete", ui.HandleEnrollmentDelete)
		})
	})

	// Unknown paths land on the dashboard.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, HomePath, http.StatusSeeOther)
	})
}
