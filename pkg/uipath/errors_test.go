package uipath

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPError_Error(t *testing.T) {
	t.Run("prefers the parsed message", func(t *testing.T) {
		err := &HTTPError{Status: 403, Message: "access denied", Body: `{"error":{"message":"access denied"}}`}
		assert.Equal(t, "request failed with status 403: access denied", err.Error())
	})

	t.Run("falls back to the raw body", func(t *testing.T) {
		err := &HTTPError{Status: 502, Body: "bad gateway"}
		assert.Equal(t, "request failed with status 502: bad gateway", err.Error())
	})
}

func TestStatusHelpers(t *testing.T) {
	notFound := &HTTPError{Status: 404}
	unauthorized := &HTTPError{Status: 401}
	forbidden := &HTTPError{Status: 403}

	assert.True(t, IsNotFound(notFound))
	assert.False(t, IsNotFound(forbidden))

	assert.True(t, IsUnauthorized(unauthorized))
	assert.True(t, IsForbidden(forbidden))

	t.Run("sees through wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("getting odata/Assets: %w", notFound)
		assert.True(t, IsNotFound(wrapped))
	})

	t.Run("ignores unrelated errors", func(t *testing.T) {
		assert.False(t, IsNotFound(errors.New("boom")))
		assert.False(t, IsNotFound(nil))
	})
}

func TestFeedError(t *testing.T) {
	inner := errors.New("connection reset")
	err := &FeedError{Stage: FeedStageIndex, Detail: "service index unreachable", Err: inner}

	assert.Equal(t, "feed error (index): service index unreachable", err.Error())
	assert.ErrorIs(t, err, inner)
}

func TestDownloadError(t *testing.T) {
	inner := &HTTPError{Status: 404}
	err := &DownloadError{PackageID: "billing.helpers", Version: "1.0.2", Detail: "artifact fetch failed", Err: inner}

	assert.Equal(t, "downloading billing.helpers 1.0.2: artifact fetch failed", err.Error())
	assert.True(t, IsNotFound(err))
}

func TestAuthError(t *testing.T) {
	err := &AuthError{Status: 401, Body: `{"error":"invalid_client"}`}
	assert.Contains(t, err.Error(), "token endpoint returned 401")
	assert.Contains(t, err.Error(), "invalid_client")
}

func TestConfigError(t *testing.T) {
	err := &ConfigError{Detail: `unknown account "nobody"`}
	assert.Equal(t, `config error: unknown account "nobody"`, err.Error())
}
