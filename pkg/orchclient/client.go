// Package orchclient provides the entry point for creating Orchestrator
// client registries.
package orchclient

import (
	"strings"
	"time"

	"github.com/roboworks-io/uipath-client/internal/client"
	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

// New validates and normalizes the configuration and returns a session
// registry. No network traffic happens here; sessions authenticate lazily on
// first access per (account, tenant).
func New(config *uipath.Config) (uipath.Registry, error) {
	if config == nil {
		return nil, uipath.ErrConfigRequired
	}

	if len(config.Accounts) == 0 {
		return nil, uipath.ErrNoAccountsDefined
	}

	for name, account := range config.Accounts {
		if account == nil {
			return nil, &uipath.ConfigError{Detail: "account " + name + " has no configuration"}
		}

		if account.Name == "" {
			account.Name = name
		}

		account.BaseURL = normalizeBaseURL(account.BaseURL)

		if err := account.Validate(); err != nil {
			return nil, err
		}
	}

	return client.NewRegistry(config), nil
}

// NewAggregator creates a resource aggregator. Zero values select the
// defaults (3 concurrent sub-fetches, 30s per-fetch timeout).
func NewAggregator(concurrency int, timeout time.Duration) uipath.Aggregator {
	return client.NewAggregator(concurrency, timeout)
}

// NewSingleAccount builds a registry for the common one-account case. The
// tenants all share the account's credentials and token.
func NewSingleAccount(account *uipath.AccountConfig) (uipath.Registry, error) {
	if account == nil {
		return nil, uipath.ErrConfigRequired
	}

	return New(&uipath.Config{
		Accounts: map[string]*uipath.AccountConfig{account.Name: account},
	})
}

// normalizeBaseURL trims a trailing slash and defaults to https when no
// scheme is present.
func normalizeBaseURL(baseURL string) string {
	baseURL = strings.TrimSuffix(baseURL, "/")
	if baseURL == "" {
		return baseURL
	}

	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		baseURL = "https://" + baseURL
	}

	return baseURL
}
