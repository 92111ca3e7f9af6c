package store

import (
	"context"
	"net/http"

	"github.com/noah-isme/sma-adp-console/internal/client"
	"github.com/noah-isme/sma-adp-console/internal/dto"
	"github.com/noah-isme/sma-adp-console/internal/models"
)

// SliceProfile names the profile slice.
const SliceProfile = "profile"

// ProfileStore mirrors the signed-in user's account.
type ProfileStore struct {
	base
	profile Item[models.Profile]
}

// NewProfileStore constructs a ProfileStore.
func NewProfileStore(deps Deps) *ProfileStore {
	return &ProfileStore{base: newBase("profile", deps)}
}

// FetchProfile loads the current user's profile.
func (s *ProfileStore) FetchProfile(ctx context.Context) error {
	req := client.Request{Method: http.MethodGet, Path: "/profile", Auth: true}
	return fetch(ctx, &s.base, SliceProfile, &s.profile, req, func(resp *dto.ProfileResponse) {
		s.profile.set(resp.User)
	})
}

// UpdateProfile patches the profile and replaces the stored value.
func (s *ProfileStore) UpdateProfile(ctx context.Context, patch dto.UpdateProfileRequest) (*models.Profile, error) {
	req := client.Request{Method: http.MethodPatch, Path: "/profile", Body: patch, Auth: true}
	resp, err := mutate(ctx, &s.base, req, func(resp *dto.ProfileResponse) {
		s.profile.set(resp.User)
	})
	if err != nil {
		return nil, err
	}
	return resp.User, nil
}

// ChangePassword rotates the user's password.
func (s *ProfileStore) ChangePassword(ctx context.Context, input dto.ChangePasswordRequest) error {
	req := client.Request{Method: http.MethodPost, Path: "/profile/change-password", Body: input, Auth: true}
	_, err := mutate[dto.MessageResponse](ctx, &s.base, req, nil)
	return err
}

// ClearProfileError clears the error left by the last profile fetch.
func (s *ProfileStore) ClearProfileError() { s.clearError(&s.profile) }

// Profile returns a copy of the profile slice.
func (s *ProfileStore) Profile() ItemState[models.Profile] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profile.snapshot()
}

// Close aborts an in-flight fetch.
func (s *ProfileStore) Close() {
	s.cancelAll(&s.profile)
}
