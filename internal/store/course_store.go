package store

import (
	"context"
	"net/http"

	"github.com/noah-isme/sma-adp-console/internal/client"
	"github.com/noah-isme/sma-adp-console/internal/dto"
	"github.com/noah-isme/sma-adp-console/internal/models"
)

// Course slice names.
const (
	SliceCourses           = "courses"
	SliceCurrentCourse     = "currentCourse"
	SliceCourseStudents    = "courseStudents"
	SliceSessions          = "sessions"
	SliceSessionAttendance = "sessionAttendance"
)

// CourseSnapshot is a copy of every course slice.
type CourseSnapshot struct {
	Courses           ListState[models.Course]            `json:"courses"`
	CurrentCourse     ItemState[models.Course]            `json:"currentCourse"`
	CourseStudents    ListState[models.Student]           `json:"courseStudents"`
	Sessions          ListState[models.Session]           `json:"sessions"`
	SessionAttendance ItemState[models.SessionAttendance] `json:"sessionAttendance"`
}

// CourseStore mirrors the lecturer-facing course endpoints.
type CourseStore struct {
	base
	courses           List[models.Course]
	currentCourse     Item[models.Course]
	courseStudents    List[models.Student]
	sessions          List[models.Session]
	sessionAttendance Item[models.SessionAttendance]
}

// NewCourseStore constructs a CourseStore.
func NewCourseStore(deps Deps) *CourseStore {
	s := &CourseStore{base: newBase("course", deps)}
	s.courses.reset()
	s.courseStudents.reset()
	s.sessions.reset()
	return s
}

func coursePath(id string) string {
	return "/courses/" + client.PathEscape(id)
}

// FetchCourses loads one page of the lecturer's courses.
func (s *CourseStore) FetchCourses(ctx context.Context, page, limit int) error {
	req := client.Request{Method: http.MethodGet, Path: "/courses", Query: client.PageQuery(page, limit), Auth: true}
	return fetch(ctx, &s.base, SliceCourses, &s.courses, req, func(resp *dto.CoursesResponse) {
		s.courses.replace(resp.Courses, resp.Pagination.ToModel())
	})
}

// FetchCourse loads one course into the current slot.
func (s *CourseStore) FetchCourse(ctx context.Context, id string) error {
	req := client.Request{
		Method:          http.MethodGet,
		Path:            coursePath(id),
		Endpoint:        "/courses/:id",
		Auth:            true,
		NotFoundMessage: "Course not found",
	}
	return fetch(ctx, &s.base, SliceCurrentCourse, &s.currentCourse, req, func(resp *dto.CourseResponse) {
		s.currentCourse.set(resp.Course)
	})
}

// FetchCourseStudents loads one page of a course's students.
func (s *CourseStore) FetchCourseStudents(ctx context.Context, id string, page, limit int) error {
	req := client.Request{
		Method:          http.MethodGet,
		Path:            coursePath(id) + "/students",
		Endpoint:        "/courses/:id/students",
		Query:           client.PageQuery(page, limit),
		Auth:            true,
		NotFoundMessage: "Course not found",
	}
	return fetch(ctx, &s.base, SliceCourseStudents, &s.courseStudents, req, func(resp *dto.CourseStudentsResponse) {
		s.courseStudents.replace(resp.Students, resp.Pagination.ToModel())
	})
}

// FetchSessions loads one page of a course's sessions. A status of "all" is
// not sent.
func (s *CourseStore) FetchSessions(ctx context.Context, id string, page, limit int, status string) error {
	req := client.Request{
		Method:          http.MethodGet,
		Path:            coursePath(id) + "/sessions",
		Endpoint:        "/courses/:id/sessions",
		Query:           client.AddFilter(client.PageQuery(page, limit), "status", status),
		Auth:            true,
		NotFoundMessage: "Course not found",
	}
	return fetch(ctx, &s.base, SliceSessions, &s.sessions, req, func(resp *dto.SessionsResponse) {
		s.sessions.replace(resp.Sessions, resp.Pagination.ToModel())
	})
}

// FetchSessionAttendance loads the attendance sheet of one session.
func (s *CourseStore) FetchSessionAttendance(ctx context.Context, sessionID string) error {
	req := client.Request{
		Method:          http.MethodGet,
		Path:            "/sessions/" + client.PathEscape(sessionID) + "/attendance",
		Endpoint:        "/sessions/:id/attendance",
		Auth:            true,
		NotFoundMessage: "Session not found",
	}
	return fetch(ctx, &s.base, SliceSessionAttendance, &s.sessionAttendance, req, func(resp *dto.SessionAttendanceResponse) {
		s.sessionAttendance.set(&models.SessionAttendance{
			Session: resp.Session,
			Records: resp.Attendance,
			Summary: resp.Summary,
		})
	})
}

// CreateCourse creates a course and appends it to the loaded list.
func (s *CourseStore) CreateCourse(ctx context.Context, input dto.CourseInput) (*models.Course, error) {
	req := client.Request{Method: http.MethodPost, Path: "/courses", Body: input, Auth: true}
	resp, err := mutate(ctx, &s.base, req, func(resp *dto.CourseResponse) {
		s.courses.push(*resp.Course)
	})
	if err != nil {
		return nil, err
	}
	return resp.Course, nil
}

// UpdateCourse patches a course and replaces it in the list and current slot.
func (s *CourseStore) UpdateCourse(ctx context.Context, id string, patch dto.UpdateCourseRequest) (*models.Course, error) {
	req := client.Request{
		Method:          http.MethodPatch,
		Path:            coursePath(id),
		Endpoint:        "/courses/:id",
		Body:            patch,
		Auth:            true,
		NotFoundMessage: "Course not found",
	}
	resp, err := mutate(ctx, &s.base, req, func(resp *dto.CourseResponse) {
		s.courses.patch(*resp.Course, func(c models.Course) bool { return c.ID == id })
		if current := s.currentCourse.state.Value; current != nil && current.ID == id {
			s.currentCourse.set(resp.Course)
		}
	})
	if err != nil {
		return nil, err
	}
	return resp.Course, nil
}

// DeleteCourse deletes a course and drops it from the list.
func (s *CourseStore) DeleteCourse(ctx context.Context, id string) error {
	req := client.Request{
		Method:          http.MethodDelete,
		Path:            coursePath(id),
		Endpoint:        "/courses/:id",
		Auth:            true,
		NotFoundMessage: "Course not found",
	}
	_, err := mutate(ctx, &s.base, req, func(*dto.MessageResponse) {
		s.courses.remove(func(c models.Course) bool { return c.ID == id })
		if current := s.currentCourse.state.Value; current != nil && current.ID == id {
			s.currentCourse.set(nil)
		}
	})
	return err
}

// ClearCoursesError clears the error left by the last course list fetch.
func (s *CourseStore) ClearCoursesError() { s.clearError(&s.courses) }

// ClearCurrentCourseError clears the error left by the last course detail fetch.
func (s *CourseStore) ClearCurrentCourseError() { s.clearError(&s.currentCourse) }

// ClearCourseStudentsError clears the error left by the last enrolled student list fetch.
func (s *CourseStore) ClearCourseStudentsError() { s.clearError(&s.courseStudents) }

// ClearSessionsError clears the error left by the last session list fetch.
func (s *CourseStore) ClearSessionsError() { s.clearError(&s.sessions) }

// ClearSessionAttendanceError clears the error left by the last session attendance fetch.
func (s *CourseStore) ClearSessionAttendanceError() { s.clearError(&s.sessionAttendance) }

// Snapshot returns a copy of every slice.
func (s *CourseStore) Snapshot() CourseSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CourseSnapshot{
		Courses:           s.courses.snapshot(),
		CurrentCourse:     s.currentCourse.snapshot(),
		CourseStudents:    s.courseStudents.snapshot(),
		Sessions:          s.sessions.snapshot(),
		SessionAttendance: s.sessionAttendance.snapshot(),
	}
}

// Close aborts in-flight fetches.
func (s *CourseStore) Close() {
	s.cancelAll(&s.courses, &s.currentCourse, &s.courseStudents, &s.sessions, &s.sessionAttendance)
}
