package model

// Pagination holds pagination metadata returned by backend list endpoints.
type Pagination struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

// ListOptions configures backend list queries.
type ListOptions struct {
	Limit  int
	Offset int
	Search string // Optional free-text filter
}

// DefaultListOptions returns sensible defaults.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 20, Offset: 0}
}

// Clamp enforces limits (max 100, min 1).
func (o *ListOptions) Clamp() {
	if o.Limit <= 0 {
		o.Limit = 20
	}
	if o.Limit > 100 {
		o.Limit = 100
	}
	if o.Offset < 0 {
		o.Offset = 0
	}
}

// Student is a student record managed by administrators.
type Student struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	DepartmentID string `json:"department_id"`
	Year         int    `json:"year"`
}

// Department groups subjects and students.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// Subject is a course students can enroll in.
type Subject struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	DepartmentID string `json:"department_id"`
	Credits      int    `json:"credits"`
	Description  string `json:"description"`
}

// Enrollment links a student to a subject for a semester.
type Enrollment struct {
	ID         string `json:"id"`
	StudentID  string `json:"student_id"`
	SubjectID  string `json:"subject_id"`
	Semester   string `json:"semester"`
	Status     string `json:"status"`
	EnrolledAt string `json:"enrolled_at"`
}

// DashboardStats summarizes record counts for the admin dashboard.
type DashboardStats struct {
	Students    int `json:"students"`
	Departments int `json:"departments"`
	Subjects    int `json:"subjects"`
	Enrollments int `json:"enrollments"`
}
