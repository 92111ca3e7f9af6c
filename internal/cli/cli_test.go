package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-adp-console/pkg/config"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
)

type fakeAPI struct {
	server   *httptest.Server
	hits     int32
	lastAuth atomic.Value
}

func newFakeAPI(t *testing.T, register func(r *gin.Engine)) *fakeAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	api := &fakeAPI{}
	r := gin.New()
	r.Use(func(c *gin.Context) {
		atomic.AddInt32(&api.hits, 1)
		api.lastAuth.Store(c.GetHeader("Authorization"))
		c.Next()
	})
	register(r)
	api.server = httptest.NewServer(r)
	t.Cleanup(api.server.Close)
	return api
}

func (a *fakeAPI) Hits() int32 { return atomic.LoadInt32(&a.hits) }

func testConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	return &config.Config{
		Env:  config.EnvDevelopment,
		Port: 0,
		API:  config.APIConfig{BaseURL: baseURL, Timeout: 5 * time.Second},
		State: config.StateConfig{
			Backend:        config.StateBackendFile,
			Dir:            t.TempDir(),
			AuthStorageKey: "auth-storage",
			HelpStorageKey: "help-storage",
		},
		Polling: config.PollingConfig{HealthInterval: time.Minute, StatsInterval: time.Minute},
	}
}

func testOptions(cfg *config.Config) Options {
	return Options{
		LoadConfig: func() (*config.Config, error) {
			clone := *cfg
			return &clone, nil
		},
		NewLogger: func(*config.Config) (*zap.Logger, error) { return zap.NewNop(), nil },
	}
}

// run executes one console invocation and returns its stdout.
func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	root, con := newRoot(testOptions(cfg))
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	require.NoError(t, con.close())
	return out.String(), err
}

func TestLoginThenListTeachers(t *testing.T) {
	api := newFakeAPI(t, func(r *gin.Engine) {
		r.GET("/admin/teachers", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"teachers":   []gin.H{{"_id": "t1", "name": "Ada", "email": "ada@uni.edu"}},
				"pagination": gin.H{"currentPage": 1, "totalPages": 1, "totalTeachers": 1},
			})
		})
	})
	cfg := testConfig(t, api.server.URL)

	_, err := run(t, cfg, "login", "--token", "tok-123")
	require.NoError(t, err)

	out, err := run(t, cfg, "teachers", "list", "--limit", "10")
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", api.lastAuth.Load())

	var state struct {
		Items []struct {
			ID string `json:"_id"`
		} `json:"items"`
		Pagination struct {
			TotalItems int `json:"totalItems"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &state))
	require.Len(t, state.Items, 1)
	assert.Equal(t, "t1", state.Items[0].ID)
	assert.Equal(t, 1, state.Pagination.TotalItems)
}

func TestCommandsWithoutTokenNeverReachBackend(t *testing.T) {
	api := newFakeAPI(t, func(r *gin.Engine) {})
	cfg := testConfig(t, api.server.URL)

	_, err := run(t, cfg, "teachers", "list")
	require.Error(t, err)
	assert.Equal(t, "Authentication token not found", err.Error())
	assert.Equal(t, int32(0), api.Hits())

	_, err = run(t, cfg, "whoami")
	assert.True(t, errors.Is(err, appErrors.ErrAuthTokenMissing))
}

func TestLogoutForgetsToken(t *testing.T) {
	api := newFakeAPI(t, func(r *gin.Engine) {})
	cfg := testConfig(t, api.server.URL)

	_, err := run(t, cfg, "login", "--token", "tok")
	require.NoError(t, err)
	_, err = run(t, cfg, "logout")
	require.NoError(t, err)

	_, err = run(t, cfg, "profile", "show")
	assert.True(t, errors.Is(err, appErrors.ErrAuthTokenMissing))
}

func TestLoginWithPassword(t *testing.T) {
	api := newFakeAPI(t, func(r *gin.Engine) {
		r.POST("/auth/login", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"token": "issued", "user": gin.H{"_id": "u1", "name": "Admin", "email": "admin@uni.edu", "role": "admin"}})
		})
		r.GET("/profile", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user": gin.H{"_id": "u1", "name": "Admin", "email": "admin@uni.edu", "role": "admin"}})
		})
	})
	cfg := testConfig(t, api.server.URL)

	_, err := run(t, cfg, "login", "--email", "admin@uni.edu", "--password", "secret")
	require.NoError(t, err)

	out, err := run(t, cfg, "profile", "show")
	require.NoError(t, err)
	assert.Equal(t, "Bearer issued", api.lastAuth.Load())
	assert.Contains(t, out, `"u1"`)
}

func TestSemesterCleanupNeedsConfirm(t *testing.T) {
	api := newFakeAPI(t, func(r *gin.Engine) {
		r.DELETE("/admin/semester-cleanup", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "done", "deleted": gin.H{"sessions": 3}})
		})
	})
	cfg := testConfig(t, api.server.URL)
	_, err := run(t, cfg, "login", "--token", "tok")
	require.NoError(t, err)

	_, err = run(t, cfg, "semester-cleanup")
	assert.True(t, errors.Is(err, appErrors.ErrConfirmationRequired))
	assert.Equal(t, int32(0), api.Hits())

	out, err := run(t, cfg, "semester-cleanup", "--confirm")
	require.NoError(t, err)
	assert.Contains(t, out, `"sessions": 3`)
}

func TestDeleteTeacherSurfacesNotFound(t *testing.T) {
	api := newFakeAPI(t, func(r *gin.Engine) {
		r.DELETE("/admin/teachers/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	})
	cfg := testConfig(t, api.server.URL)
	_, err := run(t, cfg, "login", "--token", "tok")
	require.NoError(t, err)

	_, err = run(t, cfg, "teachers", "delete", "missing")
	require.Error(t, err)
	assert.Equal(t, "Teacher not found", err.Error())
}

func TestFAQBulkReadsFile(t *testing.T) {
	var received int32
	api := newFakeAPI(t, func(r *gin.Engine) {
		r.POST("/faq/bulk", func(c *gin.Context) {
			var body struct {
				FAQs []gin.H `json:"faqs"`
			}
			_ = c.ShouldBindJSON(&body)
			atomic.StoreInt32(&received, int32(len(body.FAQs)))
			c.JSON(http.StatusCreated, gin.H{"created": []gin.H{{"_id": "f1", "question": "How do I log in?", "answer": "Use SSO.", "category": "account"}}})
		})
	})
	cfg := testConfig(t, api.server.URL)
	_, err := run(t, cfg, "login", "--token", "tok")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "faqs.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"question":"How do I log in?","answer":"Use SSO.","category":"account"}]`), 0o600))

	out, err := run(t, cfg, "faq", "bulk", "--file", path)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&received))
	assert.Contains(t, out, `"f1"`)

	_, err = run(t, cfg, "faq", "bulk")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
}

func TestShareRespondRequiresOneDecision(t *testing.T) {
	api := newFakeAPI(t, func(r *gin.Engine) {})
	cfg := testConfig(t, api.server.URL)

	_, err := run(t, cfg, "share", "respond", "r1")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	_, err = run(t, cfg, "share", "respond", "r1", "--approve", "--reject")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, int32(0), api.Hits())
}

func TestServerBindsLoopbackByDefault(t *testing.T) {
	cfg := testConfig(t, "http://backend.invalid")
	cfg.Port = 8090
	assert.Equal(t, "127.0.0.1:8090", listenAddr(cfg))

	cfg.Host = "0.0.0.0"
	assert.Equal(t, "0.0.0.0:8090", listenAddr(cfg))

	cfg.Host = "::1"
	assert.Equal(t, "[::1]:8090", listenAddr(cfg))
}

func TestRouterServesStateBehindSession(t *testing.T) {
	api := newFakeAPI(t, func(r *gin.Engine) {
		r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
		r.GET("/admin/stats", func(c *gin.Context) { c.JSON(http.StatusServiceUnavailable, gin.H{}) })
	})
	cfg := testConfig(t, api.server.URL)

	app, err := NewApp(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	router := NewRouter(app)

	get := func(method, path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
		return rec
	}

	assert.Equal(t, http.StatusOK, get(http.MethodGet, "/health").Code)
	assert.Equal(t, http.StatusOK, get(http.MethodGet, "/ready").Code)
	assert.Equal(t, http.StatusUnauthorized, get(http.MethodGet, "/api/v1/state").Code)

	require.NoError(t, app.Auth.Save(context.Background(), "tok", nil))
	assert.Equal(t, http.StatusOK, get(http.MethodGet, "/api/v1/state").Code)

	rec := get(http.MethodPost, "/api/v1/refresh/admin.stats")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "HTTP error! status: 503", app.Registry.Admin.Stats().Error)

	assert.Equal(t, http.StatusNoContent, get(http.MethodDelete, "/api/v1/errors/admin.stats").Code)
	assert.Empty(t, app.Registry.Admin.Stats().Error)
	assert.Equal(t, http.StatusNotFound, get(http.MethodGet, "/api/v1/state/billing").Code)
}
