package store

import (
	"context"
	"net/http"
	"strings"

	"github.com/noah-isme/sma-adp-console/internal/client"
	"github.com/noah-isme/sma-adp-console/internal/dto"
	"github.com/noah-isme/sma-adp-console/internal/models"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

// Admin slice names, used for logging, metrics and the refresh API.
const (
	SliceTeachers       = "teachers"
	SliceTeacherCourses = "teacherCourses"
	SliceCourseSessions = "courseSessions"
	SliceAuditLogs      = "auditLogs"
	SliceHealth         = "health"
	SliceStats          = "stats"
)

// AdminSnapshot is a copy of every admin slice.
type AdminSnapshot struct {
	Teachers       ListState[models.Teacher]                           `json:"teachers"`
	TeacherCourses ScopedState[models.Teacher, models.Course]          `json:"teacherCourses"`
	CourseSessions ScopedState[models.Course, models.Session]          `json:"courseSessions"`
	AuditLogs      ScopedState[models.AuditAnalytics, models.AuditLog] `json:"auditLogs"`
	Health         ItemState[models.HealthSnapshot]                    `json:"health"`
	Stats          ItemState[models.StatsSnapshot]                     `json:"stats"`
}

// AdminStore mirrors the administrator endpoints.
type AdminStore struct {
	base
	teachers       List[models.Teacher]
	teacherCourses Scoped[models.Teacher, models.Course]
	courseSessions Scoped[models.Course, models.Session]
	auditLogs      Scoped[models.AuditAnalytics, models.AuditLog]
	health         Item[models.HealthSnapshot]
	stats          Item[models.StatsSnapshot]
}

// NewAdminStore constructs an AdminStore.
func NewAdminStore(deps Deps) *AdminStore {
	s := &AdminStore{base: newBase("admin", deps)}
	s.teachers.reset()
	s.teacherCourses.reset()
	s.courseSessions.reset()
	s.auditLogs.reset()
	return s
}

// GetAllTeachers loads one page of lecturers.
func (s *AdminStore) GetAllTeachers(ctx context.Context, page, limit int) error {
	req := client.Request{
		Method: http.MethodGet,
		Path:   "/admin/teachers",
		Query:  client.PageQuery(page, limit),
		Auth:   true,
	}
	return fetch(ctx, &s.base, SliceTeachers, &s.teachers, req, func(resp *dto.TeachersResponse) {
		s.teachers.replace(resp.Teachers, resp.Pagination.ToModel())
	})
}

// GetTeacherCourses loads a lecturer with one page of their courses.
func (s *AdminStore) GetTeacherCourses(ctx context.Context, teacherID string, page, limit int) error {
	req := client.Request{
		Method:   http.MethodGet,
		Path:     "/admin/teachers/" + client.PathEscape(teacherID) + "/courses",
		Endpoint: "/admin/teachers/:id/courses",
		Query:    client.PageQuery(page, limit),
		Auth:     true,
	}
	return fetch(ctx, &s.base, SliceTeacherCourses, &s.teacherCourses, req, func(resp *dto.TeacherCoursesResponse) {
		s.teacherCourses.replace(resp.Teacher, resp.Courses, resp.Pagination.ToModel())
	})
}

// GetCourseSessions loads a course with one page of its sessions. A status of
// "all" is not sent.
func (s *AdminStore) GetCourseSessions(ctx context.Context, courseID string, page, limit int, status string) error {
	req := client.Request{
		Method:   http.MethodGet,
		Path:     "/admin/courses/" + client.PathEscape(courseID) + "/sessions",
		Endpoint: "/admin/courses/:id/sessions",
		Query:    client.AddFilter(client.PageQuery(page, limit), "status", status),
		Auth:     true,
	}
	return fetch(ctx, &s.base, SliceCourseSessions, &s.courseSessions, req, func(resp *dto.CourseSessionsResponse) {
		s.courseSessions.replace(resp.Course, resp.Sessions, resp.Pagination.ToModel())
	})
}

// GetAuditLogs loads one page of audit logs with optional analytics.
func (s *AdminStore) GetAuditLogs(ctx context.Context, page, limit int, filter dto.AuditLogFilter) error {
	q := client.PageQuery(page, limit)
	q = client.AddFilter(q, "action", filter.Action)
	q = client.AddFilter(q, "severity", filter.Severity)
	q = client.AddFilter(q, "userId", filter.UserID)
	req := client.Request{
		Method: http.MethodGet,
		Path:   "/admin/audit-logs",
		Query:  q,
		Auth:   true,
	}
	return fetch(ctx, &s.base, SliceAuditLogs, &s.auditLogs, req, func(resp *dto.AuditLogsResponse) {
		s.auditLogs.replace(resp.Analytics, resp.Logs, resp.Pagination.ToModel())
	})
}

// GetSystemHealth refreshes the backend health snapshot.
func (s *AdminStore) GetSystemHealth(ctx context.Context) error {
	req := client.Request{Method: http.MethodGet, Path: "/admin/health", Auth: true}
	return fetch(ctx, &s.base, SliceHealth, &s.health, req, func(resp *models.HealthSnapshot) {
		s.health.set(resp)
	})
}

// GetStats refreshes the aggregate counters.
func (s *AdminStore) GetStats(ctx context.Context) error {
	req := client.Request{Method: http.MethodGet, Path: "/admin/stats", Auth: true}
	return fetch(ctx, &s.base, SliceStats, &s.stats, req, func(resp *models.StatsSnapshot) {
		s.stats.set(resp)
	})
}

// CreateLecturer creates a lecturer account. The list is not patched; callers
// refresh it.
func (s *AdminStore) CreateLecturer(ctx context.Context, input dto.CreateLecturerRequest) (*models.Teacher, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	req := client.Request{Method: http.MethodPost, Path: "/admin/teachers", Body: input, Auth: true}
	resp, err := mutate[dto.TeacherResponse](ctx, &s.base, req, nil)
	if err != nil {
		return nil, err
	}
	return resp.Teacher, nil
}

// BulkCreateLecturers creates many lecturers in one call and returns the
// per-row outcome.
func (s *AdminStore) BulkCreateLecturers(ctx context.Context, inputs []dto.CreateLecturerRequest) (*dto.BulkCreateLecturersResponse, error) {
	body := dto.BulkCreateLecturersRequest{Teachers: make([]dto.CreateLecturerRequest, 0, len(inputs))}
	for _, in := range inputs {
		body.Teachers = append(body.Teachers, dto.CreateLecturerRequest{
			Name:  strings.TrimSpace(in.Name),
			Email: strings.TrimSpace(strings.ToLower(in.Email)),
		})
	}
	req := client.Request{Method: http.MethodPost, Path: "/admin/teachers/bulk", Body: body, Auth: true}
	return mutate[dto.BulkCreateLecturersResponse](ctx, &s.base, req, nil)
}

// UpdateLecturer patches a lecturer and replaces it in the loaded list.
func (s *AdminStore) UpdateLecturer(ctx context.Context, id string, patch dto.UpdateLecturerRequest) (*models.Teacher, error) {
	req := client.Request{
		Method:   http.MethodPatch,
		Path:     "/admin/teachers/" + client.PathEscape(id),
		Endpoint: "/admin/teachers/:id",
		Body:     patch,
		Auth:     true,
	}
	resp, err := mutate(ctx, &s.base, req, func(resp *dto.TeacherResponse) {
		s.teachers.patch(*resp.Teacher, func(t models.Teacher) bool { return t.ID == id })
	})
	if err != nil {
		return nil, err
	}
	return resp.Teacher, nil
}

// DeleteLecturer deletes a lecturer and drops it from the loaded list.
func (s *AdminStore) DeleteLecturer(ctx context.Context, id string) error {
	req := client.Request{
		Method:          http.MethodDelete,
		Path:            "/admin/teachers/" + client.PathEscape(id),
		Endpoint:        "/admin/teachers/:id",
		Auth:            true,
		NotFoundMessage: "Teacher not found",
	}
	_, err := mutate(ctx, &s.base, req, func(*dto.MessageResponse) {
		s.teachers.remove(func(t models.Teacher) bool { return t.ID == id })
	})
	return err
}

// ReassignCourse moves a course to another lecturer.
func (s *AdminStore) ReassignCourse(ctx context.Context, courseID string, input dto.ReassignCourseRequest) (*models.Course, error) {
	req := client.Request{
		Method:          http.MethodPatch,
		Path:            "/courses/" + client.PathEscape(courseID) + "/reassign-lecturer",
		Endpoint:        "/courses/:id/reassign-lecturer",
		Body:            input,
		Auth:            true,
		NotFoundMessage: "Course not found",
	}
	resp, err := mutate[dto.ReassignCourseResponse](ctx, &s.base, req, nil)
	if err != nil {
		return nil, err
	}
	return resp.Course, nil
}

// SemesterCleanup purges semester data on the backend. It refuses to run
// without explicit confirmation.
func (s *AdminStore) SemesterCleanup(ctx context.Context, confirm bool) (*dto.SemesterCleanupResponse, error) {
	if !confirm {
		return nil, appErrors.Clone(appErrors.ErrConfirmationRequired, "semester cleanup requires explicit confirmation")
	}
	req := client.Request{
		Method: http.MethodDelete,
		Path:   "/admin/semester-cleanup",
		Body:   dto.SemesterCleanupRequest{Confirm: true},
		Auth:   true,
	}
	return mutate[dto.SemesterCleanupResponse](ctx, &s.base, req, nil)
}

// ClearTeachersError clears the error left by the last lecturer list fetch.
func (s *AdminStore) ClearTeachersError() { s.clearError(&s.teachers) }

// ClearTeacherCoursesError clears the error left by the last lecturer course list fetch.
func (s *AdminStore) ClearTeacherCoursesError() { s.clearError(&s.teacherCourses) }

// ClearCourseSessionsError clears the error left by the last course session list fetch.
func (s *AdminStore) ClearCourseSessionsError() { s.clearError(&s.courseSessions) }

// ClearAuditLogsError clears the error left by the last audit log fetch.
func (s *AdminStore) ClearAuditLogsError() { s.clearError(&s.auditLogs) }

// ClearHealthError clears the error left by the last system health fetch.
func (s *AdminStore) ClearHealthError() { s.clearError(&s.health) }

// ClearStatsError clears the error left by the last dashboard stats fetch.
func (s *AdminStore) ClearStatsError() { s.clearError(&s.stats) }

// Snapshot returns a copy of every slice.
func (s *AdminStore) Snapshot() AdminSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return AdminSnapshot{
		Teachers:       s.teachers.snapshot(),
		TeacherCourses: s.teacherCourses.snapshot(),
		CourseSessions: s.courseSessions.snapshot(),
		AuditLogs:      s.auditLogs.snapshot(),
		Health:         s.health.snapshot(),
		Stats:          s.stats.snapshot(),
	}
}

// Teachers returns a copy of the lecturer list slice.
func (s *AdminStore) Teachers() ListState[models.Teacher] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.teachers.snapshot()
}

// Health returns a copy of the health slice.
func (s *AdminStore) Health() ItemState[models.HealthSnapshot] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.health.snapshot()
}

// Stats returns a copy of the stats slice.
func (s *AdminStore) Stats() ItemState[models.StatsSnapshot] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats.snapshot()
}

// Close aborts in-flight fetches.
func (s *AdminStore) Close() {
	s.cancelAll(&s.teachers, &s.teacherCourses, &s.courseSessions, &s.auditLogs, &s.health, &s.stats)
}
