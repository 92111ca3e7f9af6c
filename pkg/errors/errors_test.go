package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByCode(t *testing.T) {
	err := Clone(ErrHTTP, "Teacher not found")
	err.Status = http.StatusNotFound

	assert.True(t, errors.Is(err, ErrHTTP))
	assert.False(t, errors.Is(err, ErrTransport))
	assert.True(t, errors.Is(fmt.Errorf("delete: %w", err), ErrHTTP))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "Authentication token not found", Message(ErrAuthTokenMissing))
	assert.Equal(t, "dial tcp: refused", Message(errors.New("dial tcp: refused")))
}

func TestFromErrorContext(t *testing.T) {
	e := FromError(context.DeadlineExceeded)
	assert.Equal(t, ErrTransport.Code, e.Code)
	assert.ErrorIs(t, e, context.DeadlineExceeded)
}

func TestHTTPStatusMessage(t *testing.T) {
	assert.Equal(t, "HTTP error! status: 502", HTTPStatusMessage(http.StatusBadGateway))
}

func TestStatusOf(t *testing.T) {
	err := Clone(ErrHTTP, "boom")
	err.Status = http.StatusConflict
	assert.Equal(t, http.StatusConflict, StatusOf(err))
	assert.Equal(t, 0, StatusOf(nil))
}
