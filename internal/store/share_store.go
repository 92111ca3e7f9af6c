package store

import (
	"context"
	"net/http"

	"github.com/noah-isme/sma-adp-console/internal/client"
	"github.com/noah-isme/sma-adp-console/internal/dto"
	"github.com/noah-isme/sma-adp-console/internal/models"
)

// Student share slice names.
const (
	SliceIncoming      = "incoming"
	SliceOutgoing      = "outgoing"
	SliceShareTeachers = "shareTeachers"
)

// ShareSnapshot is a copy of every student share slice.
type ShareSnapshot struct {
	Incoming ListState[models.ShareRequest] `json:"incoming"`
	Outgoing ListState[models.ShareRequest] `json:"outgoing"`
	Teachers ListState[models.ShareTeacher] `json:"teachers"`
}

// StudentShareStore mirrors student roster share requests between lecturers.
type StudentShareStore struct {
	base
	incoming List[models.ShareRequest]
	outgoing List[models.ShareRequest]
	teachers List[models.ShareTeacher]
}

// NewStudentShareStore constructs a StudentShareStore.
func NewStudentShareStore(deps Deps) *StudentShareStore {
	s := &StudentShareStore{base: newBase("share", deps)}
	s.incoming.reset()
	s.outgoing.reset()
	s.teachers.reset()
	return s
}

func shareRequestPath(id string) string {
	return "/student-share/requests/" + client.PathEscape(id)
}

// FetchIncoming loads requests addressed to the current lecturer.
func (s *StudentShareStore) FetchIncoming(ctx context.Context, status string) error {
	req := client.Request{
		Method: http.MethodGet,
		Path:   "/student-share/requests/incoming",
		Query:  client.AddFilter(nil, "status", status),
		Auth:   true,
	}
	return fetch(ctx, &s.base, SliceIncoming, &s.incoming, req, func(resp *dto.ShareRequestsResponse) {
		s.incoming.replace(resp.Requests, nil)
	})
}

// FetchOutgoing loads requests the current lecturer has sent.
func (s *StudentShareStore) FetchOutgoing(ctx context.Context, status string) error {
	req := client.Request{
		Method: http.MethodGet,
		Path:   "/student-share/requests/outgoing",
		Query:  client.AddFilter(nil, "status", status),
		Auth:   true,
	}
	return fetch(ctx, &s.base, SliceOutgoing, &s.outgoing, req, func(resp *dto.ShareRequestsResponse) {
		s.outgoing.replace(resp.Requests, nil)
	})
}

// FetchTeachers loads lecturers that can receive a request.
func (s *StudentShareStore) FetchTeachers(ctx context.Context) error {
	req := client.Request{Method: http.MethodGet, Path: "/student-share/teachers", Auth: true}
	return fetch(ctx, &s.base, SliceShareTeachers, &s.teachers, req, func(resp *dto.ShareTeachersResponse) {
		s.teachers.replace(resp.Teachers, nil)
	})
}

// CreateRequest sends a share request and appends it to the outgoing list.
func (s *StudentShareStore) CreateRequest(ctx context.Context, input dto.ShareRequestInput) (*models.ShareRequest, error) {
	req := client.Request{Method: http.MethodPost, Path: "/student-share/requests", Body: input, Auth: true}
	resp, err := mutate(ctx, &s.base, req, func(resp *dto.ShareRequestResponse) {
		s.outgoing.push(*resp.Request)
	})
	if err != nil {
		return nil, err
	}
	return resp.Request, nil
}

// Respond approves or rejects an incoming request and replaces it in place.
func (s *StudentShareStore) Respond(ctx context.Context, id string, approve bool, message string) (*models.ShareRequest, error) {
	status := models.ShareStatusRejected
	if approve {
		status = models.ShareStatusApproved
	}
	req := client.Request{
		Method:          http.MethodPatch,
		Path:            shareRequestPath(id),
		Endpoint:        "/student-share/requests/:id",
		Body:            dto.ShareResponseInput{Status: status, ResponseMessage: message},
		Auth:            true,
		NotFoundMessage: "Share request not found",
	}
	resp, err := mutate(ctx, &s.base, req, func(resp *dto.ShareRequestResponse) {
		s.incoming.patch(*resp.Request, func(r models.ShareRequest) bool { return r.ID == id })
	})
	if err != nil {
		return nil, err
	}
	return resp.Request, nil
}

// Cancel withdraws an outgoing request and drops it from the list.
func (s *StudentShareStore) Cancel(ctx context.Context, id string) error {
	req := client.Request{
		Method:          http.MethodDelete,
		Path:            shareRequestPath(id),
		Endpoint:        "/student-share/requests/:id",
		Auth:            true,
		NotFoundMessage: "Share request not found",
	}
	_, err := mutate(ctx, &s.base, req, func(*dto.MessageResponse) {
		s.outgoing.remove(func(r models.ShareRequest) bool { return r.ID == id })
	})
	return err
}

// ClearIncomingError clears the error left by the last incoming request fetch.
func (s *StudentShareStore) ClearIncomingError() { s.clearError(&s.incoming) }

// ClearOutgoingError clears the error left by the last outgoing request fetch.
func (s *StudentShareStore) ClearOutgoingError() { s.clearError(&s.outgoing) }

// ClearTeachersError clears the error left by the last shareable lecturer fetch.
func (s *StudentShareStore) ClearTeachersError() { s.clearError(&s.teachers) }

// Snapshot returns a copy of every slice.
func (s *StudentShareStore) Snapshot() ShareSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ShareSnapshot{
		Incoming: s.incoming.snapshot(),
		Outgoing: s.outgoing.snapshot(),
		Teachers: s.teachers.snapshot(),
	}
}

// Close aborts in-flight fetches.
func (s *StudentShareStore) Close() {
	s.cancelAll(&s.incoming, &s.outgoing, &s.teachers)
}
