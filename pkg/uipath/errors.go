package uipath

import (
	"errors"
	"fmt"
	"net/http"
)

// Static errors that can be wrapped with context.
var (
	ErrConfigRequired     = errors.New("config is required")
	ErrNoAccountsDefined  = errors.New("no accounts defined in config")
	ErrBaseURLRequired    = errors.New("base URL is required")
	ErrCredentialsMissing = errors.New("client ID and client secret are required")
	ErrNoTenantsDefined   = errors.New("account has no tenants defined")
	ErrNoFeedConfigured   = errors.New("tenant has no library feed configured")
)

// ConfigError reports an unknown account/tenant or a missing required
// configuration field. It is fatal to the specific request and never retried.
type ConfigError struct {
	Detail string
}

func (e *ConfigError) Error() string {
	return "config error: " + e.Detail
}

// AuthError reports a token endpoint rejection. The upstream status and body
// are surfaced verbatim.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("authentication failed: token endpoint returned %d: %s", e.Status, e.Body)
}

// HTTPError represents a non-2xx response from an Orchestrator or feed
// endpoint. Message holds the parsed upstream error message when the body
// carried one; Body always holds the raw response body.
type HTTPError struct {
	Status  int
	Message string
	Body    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Message)
	}

	return fmt.Sprintf("request failed with status %d: %s", e.Status, e.Body)
}

// Feed resolution stages, used by FeedError to name where resolution stopped.
const (
	FeedStageIndex      = "index"
	FeedStageCapability = "capability"
	FeedStageVersions   = "versions"
)

// FeedError reports a package-feed resolution failure: unreachable service
// index, missing PackageBaseAddress capability, or an empty version list.
type FeedError struct {
	Stage  string
	Detail string
	Err    error
}

func (e *FeedError) Error() string {
	return fmt.Sprintf("feed error (%s): %s", e.Stage, e.Detail)
}

func (e *FeedError) Unwrap() error {
	return e.Err
}

// DownloadError reports a failed artifact fetch or local write.
type DownloadError struct {
	PackageID string
	Version   string
	Detail    string
	Err       error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("downloading %s %s: %s", e.PackageID, e.Version, e.Detail)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// IsNotFound checks if the error is a 404 from the API.
func IsNotFound(err error) bool {
	return hasStatus(err, http.StatusNotFound)
}

// IsUnauthorized checks if the error is a 401 from the API.
func IsUnauthorized(err error) bool {
	return hasStatus(err, http.StatusUnauthorized)
}

// IsForbidden checks if the error is a 403 from the API.
func IsForbidden(err error) bool {
	return hasStatus(err, http.StatusForbidden)
}

func hasStatus(err error, status int) bool {
	httpErr := &HTTPError{}
	if errors.As(err, &httpErr) {
		return httpErr.Status == status
	}

	return false
}
