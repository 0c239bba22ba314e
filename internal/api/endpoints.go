package api

// Typed wrappers over the backend's entity surface. These cover the screens'
// needs so callers never hand-build endpoint strings; every wrapper routes
// through the shared request path.

import (
	"context"
	"net/url"

	"github.com/internlink/console/internal/domain/model"
)

// DashboardStats fetches the backend-computed dashboard aggregate.
func (c *Client) DashboardStats(ctx context.Context) (model.DashboardStats, error) {
	var stats model.DashboardStats
	err := c.Get(ctx, "/dashboard/stats", &stats)
	return stats, err
}

// Companies lists all companies.
func (c *Client) Companies(ctx context.Context) ([]model.Company, error) {
	var companies []model.Company
	err := c.Get(ctx, "/companies", &companies)
	return companies, err
}

// Company fetches one company by id.
func (c *Client) Company(ctx context.Context, id string) (model.Company, error) {
	var company model.Company
	err := c.Get(ctx, "/companies/"+url.PathEscape(id), &company)
	return company, err
}

// CreateCompany creates a company.
func (c *Client) CreateCompany(ctx context.Context, company model.Company) (model.Company, error) {
	var created model.Company
	err := c.Post(ctx, "/companies", company, &created)
	return created, err
}

// UpdateCompany replaces a company record.
func (c *Client) UpdateCompany(ctx context.Context, id string, company model.Company) (model.Company, error) {
	var updated model.Company
	err := c.Put(ctx, "/companies/"+url.PathEscape(id), company, &updated)
	return updated, err
}

// DeleteCompany deletes a company.
func (c *Client) DeleteCompany(ctx context.Context, id string) error {
	return c.Delete(ctx, "/companies/"+url.PathEscape(id), nil)
}

// Students lists all students.
func (c *Client) Students(ctx context.Context) ([]model.Student, error) {
	var students []model.Student
	err := c.Get(ctx, "/students", &students)
	return students, err
}

// StudentsMinimal lists the minimal student projection for selection lists.
func (c *Client) StudentsMinimal(ctx context.Context) ([]model.StudentRef, error) {
	var refs []model.StudentRef
	err := c.Get(ctx, "/students/list/minimal", &refs)
	return refs, err
}

// Student fetches one student by id.
func (c *Client) Student(ctx context.Context, id string) (model.Student, error) {
	var student model.Student
	err := c.Get(ctx, "/students/"+url.PathEscape(id), &student)
	return student, err
}

// CreateStudent creates a student.
func (c *Client) CreateStudent(ctx context.Context, student model.Student) (model.Student, error) {
	var created model.Student
	err := c.Post(ctx, "/students", student, &created)
	return created, err
}

// UpdateStudent replaces a student record.
func (c *Client) UpdateStudent(ctx context.Context, id string, student model.Student) (model.Student, error) {
	var updated model.Student
	err := c.Put(ctx, "/students/"+url.PathEscape(id), student, &updated)
	return updated, err
}

// DeleteStudent deletes a student.
func (c *Client) DeleteStudent(ctx context.Context, id string) error {
	return c.Delete(ctx, "/students/"+url.PathEscape(id), nil)
}

// Internships lists all internship postings.
func (c *Client) Internships(ctx context.Context) ([]model.Internship, error) {
	var internships []model.Internship
	err := c.Get(ctx, "/internships", &internships)
	return internships, err
}

// Internship fetches one posting by id.
func (c *Client) Internship(ctx context.Context, id string) (model.Internship, error) {
	var internship model.Internship
	err := c.Get(ctx, "/internships/"+url.PathEscape(id), &internship)
	return internship, err
}

// CreateInternship creates a posting.
func (c *Client) CreateInternship(ctx context.Context, internship model.Internship) (model.Internship, error) {
	var created model.Internship
	err := c.Post(ctx, "/internships", internship, &created)
	return created, err
}

// UpdateInternship replaces a posting.
func (c *Client) UpdateInternship(ctx context.Context, id string, internship model.Internship) (model.Internship, error) {
	var updated model.Internship
	err := c.Put(ctx, "/internships/"+url.PathEscape(id), internship, &updated)
	return updated, err
}

// DeleteInternship deletes a posting.
func (c *Client) DeleteInternship(ctx context.Context, id string) error {
	return c.Delete(ctx, "/internships/"+url.PathEscape(id), nil)
}

// Applications lists all applications with their populated projections.
func (c *Client) Applications(ctx context.Context) ([]model.Application, error) {
	var applications []model.Application
	err := c.Get(ctx, "/applications", &applications)
	return applications, err
}

// Application fetches one application by id.
func (c *Client) Application(ctx context.Context, id string) (model.Application, error) {
	var application model.Application
	err := c.Get(ctx, "/applications/"+url.PathEscape(id), &application)
	return application, err
}

// CreateApplication submits a new application.
func (c *Client) CreateApplication(ctx context.Context, application model.Application) (model.Application, error) {
	var created model.Application
	err := c.Post(ctx, "/applications", application, &created)
	return created, err
}

// UpdateApplication replaces an application.
func (c *Client) UpdateApplication(ctx context.Context, id string, application model.Application) (model.Application, error) {
	var updated model.Application
	err := c.Put(ctx, "/applications/"+url.PathEscape(id), application, &updated)
	return updated, err
}

// SetApplicationStatus updates only the review status of an application.
func (c *Client) SetApplicationStatus(ctx context.Context, id string, status model.ReviewStatus) (model.Application, error) {
	var updated model.Application
	body := map[string]model.ReviewStatus{"status": status}
	err := c.Patch(ctx, "/applications/"+url.PathEscape(id)+"/status", body, &updated)
	return updated, err
}

// DeleteApplication deletes an application.
func (c *Client) DeleteApplication(ctx context.Context, id string) error {
	return c.Delete(ctx, "/applications/"+url.PathEscape(id), nil)
}

// Enrollments lists all enrollments.
func (c *Client) Enrollments(ctx context.Context) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := c.Get(ctx, "/enrollments", &enrollments)
	return enrollments, err
}

// Enrollment fetches one enrollment by id.
func (c *Client) Enrollment(ctx context.Context, id string) (model.Enrollment, error) {
	var enrollment model.Enrollment
	err := c.Get(ctx, "/enrollments/"+url.PathEscape(id), &enrollment)
	return enrollment, err
}

// CreateEnrollment creates an enrollment.
func (c *Client) CreateEnrollment(ctx context.Context, enrollment model.Enrollment) (model.Enrollment, error) {
	var created model.Enrollment
	err := c.Post(ctx, "/enrollments", enrollment, &created)
	return created, err
}

// UpdateEnrollment replaces an enrollment.
func (c *Client) UpdateEnrollment(ctx context.Context, id string, enrollment model.Enrollment) (model.Enrollment, error) {
	var updated model.Enrollment
	err := c.Put(ctx, "/enrollments/"+url.PathEscape(id), enrollment, &updated)
	return updated, err
}

// SetEnrollmentStatus updates only the review status of an enrollment.
func (c *Client) SetEnrollmentStatus(ctx context.Context, id string, status model.ReviewStatus) (model.Enrollment, error) {
	var updated model.Enrollment
	body := map[string]model.ReviewStatus{"status": status}
	err := c.Patch(ctx, "/enrollments/"+url.PathEscape(id)+"/status", body, &updated)
	return updated, err
}

// DeleteEnrollment deletes an enrollment.
func (c *Client) DeleteEnrollment(ctx context.Context, id string) error {
	return c.Delete(ctx, "/enrollments/"+url.PathEscape(id), nil)
}

// Admins lists all administrator records.
func (c *Client) Admins(ctx context.Context) ([]model.Admin, error) {
	var admins []model.Admin
	err := c.Get(ctx, "/admins", &admins)
	return admins, err
}

// Admin fetches one administrator record by id.
func (c *Client) Admin(ctx context.Context, id string) (model.Admin, error) {
	var admin model.Admin
	err := c.Get(ctx, "/admins/"+url.PathEscape(id), &admin)
	return admin, err
}

// CreateAdmin creates an administrator record.
func (c *Client) CreateAdmin(ctx context.Context, admin model.Admin) (model.Admin, error) {
	var created model.Admin
	err := c.Post(ctx, "/admins", admin, &created)
	return created, err
}

// UpdateAdmin replaces an administrator record.
func (c *Client) UpdateAdmin(ctx context.Context, id string, admin model.Admin) (model.Admin, error) {
	var updated model.Admin
	err := c.Put(ctx, "/admins/"+url.PathEscape(id), admin, &updated)
	return updated, err
}

// DeleteAdmin deletes an administrator record.
func (c *Client) DeleteAdmin(ctx context.Context, id string) error {
	return c.Delete(ctx, "/admins/"+url.PathEscape(id), nil)
}
