package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/sma-adp-console/internal/middleware"
	"github.com/noah-isme/sma-adp-console/internal/store"
	appErrors "github.com/noah-isme/sma-adp-console/pkg/errors"
	"github.com/noah-isme/sma-adp-console/pkg/response"
)

type stateRegistry interface {
	Snapshot(storeName string) (interface{}, error)
	Refresh(ctx context.Context, slice string, params store.RefreshParams) error
	ClearError(slice string) error
	Slices() []string
}

// StateHandler exposes store snapshots and user-initiated retries.
type StateHandler struct {
	registry stateRegistry
}

// NewStateHandler constructs the handler.
func NewStateHandler(registry stateRegistry) *StateHandler {
	return &StateHandler{registry: registry}
}

// Slices godoc
// @Summary List addressable slices
// @Tags State
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /api/v1/state [get]
func (h *StateHandler) Slices(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.registry.Slices(), nil)
}

// Snapshot godoc
// @Summary Snapshot every slice of a store
// @Tags State
// @Produce json
// @Param store path string true "admin, help, profile, course or share"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/v1/state/{store} [get]
func (h *StateHandler) Snapshot(c *gin.Context) {
	snapshot, err := h.registry.Snapshot(c.Param("store"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot, nil, middleware.ExtractMeta(c))
}

// Refresh godoc
// @Summary Re-run the fetch behind a slice
// @Tags State
// @Produce json
// @Param slice path string true "Qualified slice name, e.g. admin.teachers"
// @Param id query string false "Entity id for detail slices"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Param status query string false "Status filter (all omits it)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /api/v1/refresh/{slice} [post]
func (h *StateHandler) Refresh(c *gin.Context) {
	params, err := refreshParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	slice := c.Param("slice")
	middleware.SetMeta(c, "slice", slice)
	if err := h.registry.Refresh(c.Request.Context(), slice, params); err != nil {
		response.Error(c, err)
		return
	}
	storeName := slice
	if idx := strings.IndexByte(slice, '.'); idx > 0 {
		storeName = slice[:idx]
	}
	snapshot, err := h.registry.Snapshot(storeName)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot, nil, middleware.ExtractMeta(c))
}

// ClearError godoc
// @Summary Clear a slice's error
// @Tags State
// @Param slice path string true "Qualified slice name"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /api/v1/errors/{slice} [delete]
func (h *StateHandler) ClearError(c *gin.Context) {
	if err := h.registry.ClearError(c.Param("slice")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func refreshParams(c *gin.Context) (store.RefreshParams, error) {
	params := store.RefreshParams{
		ID:       strings.TrimSpace(c.Query("id")),
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Action:   c.Query("action"),
		Severity: c.Query("severity"),
		UserID:   c.Query("userId"),
	}
	var err error
	if params.Page, err = intQuery(c, "page", 1); err != nil {
		return params, err
	}
	if params.Limit, err = intQuery(c, "limit", 20); err != nil {
		return params, err
	}
	return params, nil
}

func intQuery(c *gin.Context, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return 0, appErrors.Clone(appErrors.ErrValidation, key+" must be a positive integer")
	}
	return value, nil
}
