package store

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-adp-console/internal/client"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

type staticTokens string

func (s staticTokens) Token(context.Context) string { return string(s) }

type supersededCounter struct {
	mu     sync.Mutex
	slices []string
}

func (c *supersededCounter) ObserveSuperseded(slice string) {
	c.mu.Lock()
	c.slices = append(c.slices, slice)
	c.mu.Unlock()
}

func (c *supersededCounter) seen() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.slices...)
}

type backend struct {
	server *httptest.Server
	hits   int32
}

func (b *backend) Hits() int32 { return atomic.LoadInt32(&b.hits) }

// newBackend starts a fake API with routes registered by register.
func newBackend(t *testing.T, register func(r *gin.Engine)) *backend {
	t.Helper()
	gin.SetMode(gin.TestMode)
	b := &backend{}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		atomic.AddInt32(&b.hits, 1)
		c.Next()
	})
	register(r)
	b.server = httptest.NewServer(r)
	t.Cleanup(b.server.Close)
	return b
}

func (b *backend) deps(token string, metrics Observer) Deps {
	return Deps{
		Client:  client.New(client.Config{BaseURL: b.server.URL, Tokens: staticTokens(token)}),
		Metrics: metrics,
	}
}

type memoryState struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMemoryState() *memoryState {
	return &memoryState{data: map[string][]byte{}}
}

func (m *memoryState) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.data[key]
	if !ok {
		return appErrors.ErrStateMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryState) Set(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.data[key] = raw
	m.mu.Unlock()
	return nil
}
