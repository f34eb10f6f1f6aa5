package ui

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/kracgan/student-management-frontend/pkg/model"
)

// --- Students ---

// HandleStudentList renders the student management screen.
func (ui *UI) HandleStudentList(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	opts := ui.parseListOptions(r)

	students, pagination, err := ui.apiFor(state).ListStudents(r.Context(), opts)
	if err != nil {
		ui.renderError(w, state, "Failed to load students", err)
		return
	}
	departments, _, err := ui.apiFor(state).ListDepartments(r.Context(), model.ListOptions{Limit: 100})
	if err != nil {
		ui.renderError(w, state, "Failed to load departments", err)
		return
	}

	ui.render(w, "admin_students", map[string]any{
		"Title":       "Students",
		"Session":     state,
		"Students":    students,
		"Departments": departments,
		"Pagination":  pagination,
		"Search":      opts.Search,
	})
}

// HandleStudentCreate creates a student from the admin form.
func (ui *UI) HandleStudentCreate(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())

	student, err := studentFromForm(r)
	if err != nil {
		ui.renderError(w, state, "Invalid form", err)
		return
	}
	if err := ui.apiFor(state).CreateStudent(r.Context(), student); err != nil {
		ui.renderError(w, state, "Failed to create student", err)
		return
	}
	http.Redirect(w, r, "/admin/students", http.StatusSeeOther)
}

// HandleStudentUpdate updates a student record.
func (ui *UI) HandleStudentUpdate(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	id := ui.pathParam(r, "id")

	student, err := studentFromForm(r)
	if err != nil {
		ui.renderError(w, state, "Invalid form", err)
		return
	}
	if err := ui.apiFor(state).UpdateStudent(r.Context(), id, student); err != nil {
		ui.renderError(w, state, "Failed to update student", err)
		return
	}
	http.Redirect(w, r, "/admin/students", http.StatusSeeOther)
}

// HandleStudentDelete removes a student record.
func (ui *UI) HandleStudentDelete(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	id := ui.pathParam(r, "id")

	if err := ui.apiFor(state).DeleteStudent(r.Context(), id); err != nil {
		ui.renderError(w, state, "Failed to delete student", err)
		return
	}
	http.Redirect(w, r, "/admin/students", http.StatusSeeOther)
}

func studentFromForm(r *http.Request) (*model.Student, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	year, _ := strconv.Atoi(r.FormValue("year"))
	return &model.Student{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Email:        strings.TrimSpace(r.FormValue("email")),
		DepartmentID: r.FormValue("department_id"),
		Year:         year,
	}, nil
}

// --- Departments ---

// HandleDepartmentList renders the department management screen.
func (ui *UI) HandleDepartmentList(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	opts := ui.parseListOptions(r)

	departments, pagination, err := ui.apiFor(state).ListDepartments(r.Context(), opts)
	if err != nil {
		ui.renderError(w, state, "Failed to load departments", err)
		return
	}

	ui.render(w, "admin_departments", map[string]any{
		"Title":       "Departments",
		"Session":     state,
		"Departments": departments,
		"Pagination":  pagination,
		"Search":      opts.Search,
	})
}

// HandleDepartmentCreate creates a department.
func (ui *UI) HandleDepartmentCreate(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())

	dept, err := departmentFromForm(r)
	if err != nil {
		ui.renderError(w, state, "Invalid form", err)
		return
	}
	if err := ui.apiFor(state).CreateDepartment(r.Context(), dept); err != nil {
		ui.renderError(w, state, "Failed to create department", err)
		return
	}
	http.Redirect(w, r, "/admin/departments", http.StatusSeeOther)
}

// HandleDepartmentUpdate updates a department.
func (ui *UI) HandleDepartmentUpdate(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	id := ui.pathParam(r, "id")

	dept, err := departmentFromForm(r)
	if err != nil {
		ui.renderError(w, state, "Invalid form", err)
		return
	}
	if err := ui.apiFor(state).UpdateDepartment(r.Context(), id, dept); err != nil {
		ui.renderError(w, state, "Failed to update department", err)
		return
	}
	http.Redirect(w, r, "/admin/departments", http.StatusSeeOther)
}

// HandleDepartmentDelete removes a department.
func (ui *UI) HandleDepartmentDelete(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	id := ui.pathParam(r, "id")

	if err := ui.apiFor(state).DeleteDepartment(r.Context(), id); err != nil {
		ui.renderError(w, state, "Failed to delete department", err)
		return
	}
	http.Redirect(w, r, "/admin/departments", http.StatusSeeOther)
}

func departmentFromForm(r *http.Request) (*model.Department, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	return &model.Department{
		Name: strings.TrimSpace(r.FormValue("name")),
		Code: strings.TrimSpace(r.FormValue("code")),
	}, nil
}

// --- Subjects ---

// HandleSubjectList renders the subject management screen.
func (ui *UI) HandleSubjectList(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	opts := ui.parseListOptions(r)

	subjects, pagination, err := ui.apiFor(state).ListAdminSubjects(r.Context(), opts)
	if err != nil {
		ui.renderError(w, state, "Failed to load subjects", err)
		return
	}
	departments, _, err := ui.apiFor(state).ListDepartments(r.Context(), model.ListOptions{Limit: 100})
	if err != nil {
		ui.renderError(w, state, "Failed to load departments", err)
		return
	}

	ui.render(w, "admin_subjects", map[string]any{
		"Title":       "Subjects",
		"Session":     state,
		"Subjects":    subjects,
		"Departments": departments,
		"Pagination":  pagination,
		"Search":      opts.Search,
	})
}

// HandleSubjectCreate creates a subject.
func (ui *UI) HandleSubjectCreate(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())

	subject, err := subjectFromForm(r)
	if err != nil {
		ui.renderError(w, state, "Invalid form", err)
		return
	}
	if err := ui.apiFor(state).CreateSubject(r.Context(), subject); err != nil {
		ui.renderError(w, state, "Failed to create subject", err)
		return
	}
	http.Redirect(w, r, "/admin/subjects", http.StatusSeeOther)
}

// HandleSubjectUpdate updates a subject.
func (ui *UI) HandleSubjectUpdate(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	id := ui.pathParam(r, "id")

	subject, err := subjectFromForm(r)
	if err != nil {
		ui.renderError(w, state, "Invalid form", err)
		return
	}
	if err := ui.apiFor(state).UpdateSubject(r.Context(), id, subject); err != nil {
		ui.renderError(w, state, "Failed to update subject", err)
		return
	}
	http.Redirect(w, r, "/admin/subjects", http.StatusSeeOther)
}

// HandleSubjectDelete removes a subject.
func (ui *UI) HandleSubjectDelete(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	id := ui.pathParam(r, "id")

	if err := ui.apiFor(state).DeleteSubject(r.Context(), id); err != nil {
		ui.renderError(w, state, "Failed to delete subject", err)
		return
	}
	http.Redirect(w, r, "/admin/subjects", http.StatusSeeOther)
}

func subjectFromForm(r *http.Request) (*model.Subject, error) {
	if err := r.ParseForm(); err != nil {
		return nil, err
	}
	credits, _ := strconv.Atoi(r.FormValue("credits"))
	return &model.Subject{
		Name:         strings.TrimSpace(r.FormValue("name")),
		Code:         strings.TrimSpace(r.FormValue("code")),
		DepartmentID: r.FormValue("department_id"),
		Credits:      credits,
		Description:  strings.TrimSpace(r.FormValue("description")),
	}, nil
}

// --- Enrollments ---

// HandleEnrollmentList renders the enrollment management screen.
func (ui *UI) HandleEnrollmentList(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	opts := ui.parseListOptions(r)

	enrollments, pagination, err := ui.apiFor(state).ListEnrollments(r.Context(), opts)
	if err != nil {
		ui.renderError(w, state, "Failed to load enrollments", err)
		return
	}

	ui.render(w, "admin_enrollments", map[string]any{
		"Title":       "Enrollments",
		"Session":     state,
		"Enrollments": enrollments,
		"Pagination":  pagination,
		"Search":      opts.Search,
	})
}

// HandleEnrollmentCreate enrolls a student in a subject on their behalf.
func (ui *UI) HandleEnrollmentCreate(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())

	if err := r.ParseForm(); err != nil {
		ui.renderError(w, state, "Invalid form", err)
		return
	}
	enrollment := &model.Enrollment{
		StudentID: r.FormValue("student_id"),
		SubjectID: r.FormValue("subject_id"),
		Semester:  strings.TrimSpace(r.FormValue("semester")),
	}
	if err := ui.apiFor(state).CreateEnrollment(r.Context(), enrollment); err != nil {
		ui.renderError(w, state, "Failed to create enrollment", err)
		return
	}
	http.Redirect(w, r, "/admin/enrollments", http.StatusSeeOther)
}

// HandleEnrollmentDelete removes an enrollment.
func (ui *UI) HandleEnrollmentDelete(w http.ResponseWriter, r *http.Request) {
	state := StateFromContext(r.Context())
	id := ui.pathParam(r, "id")

	if err := ui.apiFor(state).DeleteEnrollment(r.Context(), id); err != nil {
		ui.renderError(w, state, "Failed to delete enrollment", err)
		return
	}
	http.Redirect(w, r, "/admin/enrollments", http.StatusSeeOther)
}
