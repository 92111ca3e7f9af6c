package store

import (
	"context"
	"sync"

	"github.com/noah-isme/sma-adp-console/internal/models"
)

// ListState is a snapshot of a paginated (or plain) collection slice.
// Pagination is nil until the first successful paginated fetch.
type ListState[T any] struct {
	Items      []T                `json:"items"`
	Pagination *models.Pagination `json:"pagination"`
	Loading    bool               `json:"loading"`
	Error      string             `json:"error,omitempty"`
}

// ItemState is a snapshot of a single-entity slice (detail or point-in-time
// snapshot such as health).
type ItemState[T any] struct {
	Value   *T     `json:"value"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// tracker owns the request generation for one slice. Only the newest
// generation may settle state; starting a request cancels the previous one.
type tracker struct {
	gen    uint64
	cancel context.CancelFunc
}

// slice is implemented by List and Item.
type slice interface {
	track() *tracker
	setLoading(bool)
	setError(string)
	reset()
}

// List is a collection slice. Guarded by the owning store's mutex.
type List[T any] struct {
	tracker
	state ListState[T]
}

func (l *List[T]) track() *tracker     { return &l.tracker }
func (l *List[T]) setLoading(v bool)   { l.state.Loading = v }
func (l *List[T]) setError(msg string) { l.state.Error = msg }
func (l *List[T]) reset()              { l.state.Items = []T{}; l.state.Pagination = nil }

// replace swaps the collection and pagination wholesale.
func (l *List[T]) replace(items []T, pagination *models.Pagination) {
	if items == nil {
		items = []T{}
	}
	l.state.Items = items
	l.state.Pagination = pagination
}

// patch replaces every matching item with updated.
func (l *List[T]) patch(updated T, match func(T) bool) {
	next := make([]T, len(l.state.Items))
	for i, item := range l.state.Items {
		if match(item) {
			next[i] = updated
			continue
		}
		next[i] = item
	}
	l.state.Items = next
}

// remove drops every matching item and decrements the pagination total once
// when something was removed.
func (l *List[T]) remove(match func(T) bool) bool {
	next := make([]T, 0, len(l.state.Items))
	removed := false
	for _, item := range l.state.Items {
		if match(item) {
			removed = true
			continue
		}
		next = append(next, item)
	}
	l.state.Items = next
	if removed && l.state.Pagination != nil {
		p := *l.state.Pagination
		if p.TotalItems > 0 {
			p.TotalItems--
		}
		l.state.Pagination = &p
	}
	return removed
}

// push appends an item created locally.
func (l *List[T]) push(item T) {
	l.state.Items = append(append(make([]T, 0, len(l.state.Items)+1), l.state.Items...), item)
	if l.state.Pagination != nil {
		p := *l.state.Pagination
		p.TotalItems++
		l.state.Pagination = &p
	}
}

func (l *List[T]) snapshot() ListState[T] {
	out := ListState[T]{Loading: l.state.Loading, Error: l.state.Error}
	out.Items = append(make([]T, 0, len(l.state.Items)), l.state.Items...)
	if l.state.Pagination != nil {
		p := *l.state.Pagination
		out.Pagination = &p
	}
	return out
}

// Item is a single-value slice. Guarded by the owning store's mutex.
type Item[T any] struct {
	tracker
	state ItemState[T]
}

func (i *Item[T]) track() *tracker     { return &i.tracker }
func (i *Item[T]) setLoading(v bool)   { i.state.Loading = v }
func (i *Item[T]) setError(msg string) { i.state.Error = msg }
func (i *Item[T]) reset()              { i.state.Value = nil }

func (i *Item[T]) set(v *T) {
	if v == nil {
		i.state.Value = nil
		return
	}
	cp := *v
	i.state.Value = &cp
}

func (i *Item[T]) snapshot() ItemState[T] {
	out := ItemState[T]{Loading: i.state.Loading, Error: i.state.Error}
	if i.state.Value != nil {
		cp := *i.state.Value
		out.Value = &cp
	}
	return out
}

// ScopedState is a collection snapshot bundled with the parent entity that
// arrived in the same response (teacher detail, course info, audit analytics).
type ScopedState[P any, T any] struct {
	Parent *P `json:"parent"`
	ListState[T]
}

// Scoped is a List whose response also carries a parent entity. Both are
// replaced together and reset together.
type Scoped[P any, T any] struct {
	List[T]
	parent *P
}

func (s *Scoped[P, T]) reset() {
	s.List.reset()
	s.parent = nil
}

func (s *Scoped[P, T]) replace(parent *P, items []T, pagination *models.Pagination) {
	s.parent = parent
	s.List.replace(items, pagination)
}

func (s *Scoped[P, T]) snapshot() ScopedState[P, T] {
	out := ScopedState[P, T]{ListState: s.List.snapshot()}
	if s.parent != nil {
		cp := *s.parent
		out.Parent = &cp
	}
	return out
}

// guard is embedded by every store: one mutex per store object.
type guard struct {
	mu sync.RWMutex
}
