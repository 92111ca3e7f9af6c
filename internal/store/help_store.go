package store

import (
	"context"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-adp-console/internal/client"
	"github.com/noah-isme/sma-adp-console/internal/dto"
	"github.com/noah-isme/sma-adp-console/internal/models"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

// DefaultHelpStorageKey is where the help slices are persisted.
const DefaultHelpStorageKey = "help-storage"

// Help slice names.
const (
	SliceFAQs        = "faqs"
	SliceCurrentFAQ  = "currentFAQ"
	SliceCategories  = "categories"
	SliceSupportInfo = "supportInfo"
)

// StateStore persists JSON blobs; Get returns errors.ErrStateMiss for unknown keys.
type StateStore interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}) error
}

// HelpSnapshot is a copy of every help slice.
type HelpSnapshot struct {
	FAQs        ListState[models.FAQ]         `json:"faqs"`
	CurrentFAQ  ItemState[models.FAQ]         `json:"currentFAQ"`
	Categories  ListState[models.FAQCategory] `json:"categories"`
	SupportInfo ItemState[models.SupportInfo] `json:"supportInfo"`
}

type helpPersisted struct {
	FAQs        []models.FAQ         `json:"faqs"`
	Categories  []models.FAQCategory `json:"categories"`
	SupportInfo *models.SupportInfo  `json:"supportInfo,omitempty"`
}

type helpBlob struct {
	State   helpPersisted `json:"state"`
	Version int           `json:"version"`
}

// HelpStore mirrors the FAQ and support endpoints. FAQs, categories and the
// support card survive restarts through the state store.
type HelpStore struct {
	base
	state      StateStore
	storageKey string

	faqs        List[models.FAQ]
	currentFAQ  Item[models.FAQ]
	categories  List[models.FAQCategory]
	supportInfo Item[models.SupportInfo]
}

// NewHelpStore constructs a HelpStore. state may be nil to disable persistence.
func NewHelpStore(deps Deps, state StateStore, storageKey string) *HelpStore {
	if storageKey == "" {
		storageKey = DefaultHelpStorageKey
	}
	s := &HelpStore{base: newBase("help", deps), state: state, storageKey: storageKey}
	s.faqs.reset()
	s.categories.reset()
	return s
}

// Hydrate restores persisted slices. A missing blob is not an error.
func (s *HelpStore) Hydrate(ctx context.Context) error {
	if s.state == nil {
		return nil
	}
	var blob helpBlob
	if err := s.state.Get(ctx, s.storageKey, &blob); err != nil {
		if errors.Is(err, appErrors.ErrStateMiss) {
			return nil
		}
		s.logger.Warn("failed to hydrate help storage", zap.String("key", s.storageKey), zap.Error(err))
		return err
	}

	s.mu.Lock()
	s.faqs.replace(blob.State.FAQs, nil)
	s.categories.replace(blob.State.Categories, nil)
	s.supportInfo.set(blob.State.SupportInfo)
	s.mu.Unlock()
	return nil
}

func (s *HelpStore) persist(ctx context.Context) {
	if s.state == nil {
		return
	}
	s.mu.RLock()
	blob := helpBlob{State: helpPersisted{
		FAQs:        s.faqs.snapshot().Items,
		Categories:  s.categories.snapshot().Items,
		SupportInfo: s.supportInfo.snapshot().Value,
	}}
	s.mu.RUnlock()

	if err := s.state.Set(ctx, s.storageKey, blob); err != nil {
		s.logger.Warn("failed to persist help storage", zap.String("key", s.storageKey), zap.Error(err))
	}
}

// FetchFAQs loads FAQs, optionally filtered by category and search text.
func (s *HelpStore) FetchFAQs(ctx context.Context, filter dto.FAQFilter) error {
	q := client.AddFilter(nil, "category", filter.Category)
	q = client.AddFilter(q, "search", filter.Search)
	req := client.Request{Method: http.MethodGet, Path: "/faq", Query: q}
	err := fetch(ctx, &s.base, SliceFAQs, &s.faqs, req, func(resp *dto.FAQsResponse) {
		s.faqs.replace(resp.FAQs, nil)
	})
	if err == nil {
		s.persist(ctx)
	}
	return err
}

// FetchFAQ loads a single FAQ into the current slot.
func (s *HelpStore) FetchFAQ(ctx context.Context, id string) error {
	req := client.Request{
		Method:          http.MethodGet,
		Path:            "/faq/" + client.PathEscape(id),
		Endpoint:        "/faq/:id",
		NotFoundMessage: "FAQ not found",
	}
	return fetch(ctx, &s.base, SliceCurrentFAQ, &s.currentFAQ, req, func(resp *dto.FAQResponse) {
		s.currentFAQ.set(resp.FAQ)
	})
}

// FetchCategories loads the FAQ categories with counts.
func (s *HelpStore) FetchCategories(ctx context.Context) error {
	req := client.Request{Method: http.MethodGet, Path: "/faq/categories"}
	err := fetch(ctx, &s.base, SliceCategories, &s.categories, req, func(resp *dto.FAQCategoriesResponse) {
		s.categories.replace(resp.Categories, nil)
	})
	if err == nil {
		s.persist(ctx)
	}
	return err
}

// FetchSupportInfo loads the support contact card.
func (s *HelpStore) FetchSupportInfo(ctx context.Context) error {
	req := client.Request{Method: http.MethodGet, Path: "/support/info"}
	err := fetch(ctx, &s.base, SliceSupportInfo, &s.supportInfo, req, func(resp *dto.SupportInfoResponse) {
		s.supportInfo.set(resp.Support)
	})
	if err == nil {
		s.persist(ctx)
	}
	return err
}

// CreateFAQ creates a FAQ and appends it to the loaded list.
func (s *HelpStore) CreateFAQ(ctx context.Context, input dto.FAQInput) (*models.FAQ, error) {
	req := client.Request{Method: http.MethodPost, Path: "/faq", Body: input, Auth: true}
	resp, err := mutate(ctx, &s.base, req, func(resp *dto.FAQResponse) {
		s.faqs.push(*resp.FAQ)
	})
	if err != nil {
		return nil, err
	}
	s.persist(ctx)
	return resp.FAQ, nil
}

// UpdateFAQ replaces a FAQ and patches the list and current slot.
func (s *HelpStore) UpdateFAQ(ctx context.Context, id string, input dto.FAQInput) (*models.FAQ, error) {
	req := client.Request{
		Method:          http.MethodPut,
		Path:            "/faq/" + client.PathEscape(id),
		Endpoint:        "/faq/:id",
		Body:            input,
		Auth:            true,
		NotFoundMessage: "FAQ not found",
	}
	resp, err := mutate(ctx, &s.base, req, func(resp *dto.FAQResponse) {
		s.faqs.patch(*resp.FAQ, func(f models.FAQ) bool { return f.ID == id })
		if current := s.currentFAQ.state.Value; current != nil && current.ID == id {
			s.currentFAQ.set(resp.FAQ)
		}
	})
	if err != nil {
		return nil, err
	}
	s.persist(ctx)
	return resp.FAQ, nil
}

// DeleteFAQ deletes a FAQ and drops it from the list.
func (s *HelpStore) DeleteFAQ(ctx context.Context, id string) error {
	req := client.Request{
		Method:          http.MethodDelete,
		Path:            "/faq/" + client.PathEscape(id),
		Endpoint:        "/faq/:id",
		Auth:            true,
		NotFoundMessage: "FAQ not found",
	}
	_, err := mutate(ctx, &s.base, req, func(*dto.MessageResponse) {
		s.faqs.remove(func(f models.FAQ) bool { return f.ID == id })
		if current := s.currentFAQ.state.Value; current != nil && current.ID == id {
			s.currentFAQ.set(nil)
		}
	})
	if err != nil {
		return err
	}
	s.persist(ctx)
	return nil
}

// BulkCreateFAQs creates many FAQs and appends the created ones.
func (s *HelpStore) BulkCreateFAQs(ctx context.Context, inputs []dto.FAQInput) ([]models.FAQ, error) {
	req := client.Request{
		Method: http.MethodPost,
		Path:   "/faq/bulk",
		Body:   dto.BulkFAQRequest{FAQs: inputs},
		Auth:   true,
	}
	resp, err := mutate(ctx, &s.base, req, func(resp *dto.BulkFAQResponse) {
		for _, faq := range resp.Created {
			s.faqs.push(faq)
		}
	})
	if err != nil {
		return nil, err
	}
	s.persist(ctx)
	return resp.Created, nil
}

// ContactSupport submits a support request and returns the ticket.
func (s *HelpStore) ContactSupport(ctx context.Context, input dto.ContactRequest) (*models.SupportTicket, error) {
	req := client.Request{Method: http.MethodPost, Path: "/support/contact", Body: input}
	resp, err := mutate[dto.ContactResponse](ctx, &s.base, req, nil)
	if err != nil {
		return nil, err
	}
	return resp.Ticket, nil
}

// ClearFAQsError clears the error left by the last FAQ list fetch.
func (s *HelpStore) ClearFAQsError() { s.clearError(&s.faqs) }

// ClearCurrentFAQError clears the error left by the last FAQ detail fetch.
func (s *HelpStore) ClearCurrentFAQError() { s.clearError(&s.currentFAQ) }

// ClearCategoriesError clears the error left by the last FAQ category fetch.
func (s *HelpStore) ClearCategoriesError() { s.clearError(&s.categories) }

// ClearSupportInfoError clears the error left by the last support info fetch.
func (s *HelpStore) ClearSupportInfoError() { s.clearError(&s.supportInfo) }

// Snapshot returns a copy of every slice.
func (s *HelpStore) Snapshot() HelpSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return HelpSnapshot{
		FAQs:        s.faqs.snapshot(),
		CurrentFAQ:  s.currentFAQ.snapshot(),
		Categories:  s.categories.snapshot(),
		SupportInfo: s.supportInfo.snapshot(),
	}
}

// Close aborts in-flight fetches.
func (s *HelpStore) Close() {
	s.cancelAll(&s.faqs, &s.currentFAQ, &s.categories, &s.supportInfo)
}
