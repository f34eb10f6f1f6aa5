package backend

import (
	"context"
	"net/http"

	"github.com/kracgan/student-management-frontend/pkg/model"
)

// --- Admin surface ---

func (c *Client) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var out model.DashboardStats
	if _, err := c.do(ctx, http.MethodGet, "/admin/dashboard/stats", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListStudents(ctx context.Context, opts model.ListOptions) ([]model.Student, *model.Pagination, error) {
	var out []model.Student
	pg, err := c.do(ctx, http.MethodGet, "/admin/students", listQuery(opts), nil, &out)
	return out, pg, err
}

func (c *Client) GetStudent(ctx context.Context, id string) (*model.Student, error) {
	var out model.Student
	if _, err := c.do(ctx, http.MethodGet, "/admin/students/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateStudent(ctx context.Context, s *model.Student) error {
	_, err := c.do(ctx, http.MethodPost, "/admin/students", nil, s, nil)
	return err
}

func (c *Client) UpdateStudent(ctx context.Context, id string, s *model.Student) error {
	_, err := c.do(ctx, http.MethodPut, "/admin/students/"+id, nil, s, nil)
	return err
}

func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/admin/students/"+id, nil, nil, nil)
	return err
}

func (c *Client) ListDepartments(ctx context.Context, opts model.ListOptions) ([]model.Department, *model.Pagination, error) {
	var out []model.Department
	pg, err := c.do(ctx, http.MethodGet, "/admin/departments", listQuery(opts), nil, &out)
	return out, pg, err
}

func (c *Client) CreateDepartment(ctx context.Context, d *model.Department) error {
	_, err := c.do(ctx, http.MethodPost, "/admin/departments", nil, d, nil)
	return err
}

func (c *Client) UpdateDepartment(ctx context.Context, id string, d *model.Department) error {
	_, err := c.do(ctx, http.MethodPut, "/admin/departments/"+id, nil, d, nil)
	return err
}

func (c *Client) DeleteDepartment(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/admin/departments/"+id, nil, nil, nil)
	return err
}

func (c *Client) ListAdminSubjects(ctx context.Context, opts model.ListOptions) ([]model.Subject, *model.Pagination, error) {
	var out []model.Subject
	pg, err := c.do(ctx, http.MethodGet, "/admin/subjects", listQuery(opts), nil, &out)
	return out, pg, err
}

func (c *Client) CreateSubject(ctx context.Context, s *model.Subject) error {
	_, err := c.do(ctx, http.MethodPost, "/admin/subjects", nil, s, nil)
	return err
}

func (c *Client) UpdateSubject(ctx context.Context, id string, s *model.Subject) error {
	_, err := c.do(ctx, http.MethodPut, "/admin/subjects/"+id, nil, s, nil)
	return err
}

func (c *Client) DeleteSubject(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/admin/subjects/"+id, nil, nil, nil)
	return err
}

func (c *Client) ListEnrollments(ctx context.Context, opts model.ListOptions) ([]model.Enrollment, *model.Pagination, error) {
	var out []model.Enrollment
	pg, err := c.do(ctx, http.MethodGet, "/admin/enrollments", listQuery(opts), nil, &out)
	return out, pg, err
}

func (c *Client) CreateEnrollment(ctx context.Context, e *model.Enrollment) error {
	_, err := c.do(ctx, http.MethodPost, "/admin/enrollments", nil, e, nil)
	return err
}

func (c *Client) DeleteEnrollment(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/admin/enrollments/"+id, nil, nil, nil)
	return err
}

// --- Student surface ---

func (c *Client) Profile(ctx context.Context) (*model.Student, error) {
	var out model.Student
	if _, err := c.do(ctx, http.MethodGet, "/students/profile", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProfile(ctx context.Context, patch model.IdentityPatch) error {
	_, err := c.do(ctx, http.MethodPut, "/students/profile", nil, patch, nil)
	return err
}

func (c *Client) ListSubjects(ctx context.Context, opts model.ListOptions) ([]model.Subject, *model.Pagination, error) {
	var out []model.Subject
	pg, err := c.do(ctx, http.MethodGet, "/subjects", listQuery(opts), nil, &out)
	return out, pg, err
}

func (c *Client) GetSubject(ctx context.Context, id string) (*model.Subject, error) {
	var out model.Subject
	if _, err := c.do(ctx, http.MethodGet, "/subjects/"+id, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyEnrollments(ctx context.Context) ([]model.Enrollment, error) {
	var out []model.Enrollment
	_, err := c.do(ctx, http.MethodGet, "/enrollments/my-enrollments", nil, nil, &out)
	return out, err
}

func (c *Client) Enroll(ctx context.Context, subjectID string) error {
	_, err := c.do(ctx, http.MethodPost, "/enrollments/enroll", nil,
		map[string]string{"subject_id": subjectID}, nil)
	return err
}

func (c *Client) Drop(ctx context.Context, enrollmentID string) error {
	_, err := c.do(ctx, http.MethodDelete, "/enrollments/"+enrollmentID, nil, nil, nil)
	return err
}
