package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/roboworks-io/uipath-client/internal/constants"
	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

// Static errors for err113 compliance.
var (
	ErrEmptyAccessToken = errors.New("token endpoint returned an empty access token")
)

// ClientCredentialsConfig configures the client-credentials grant.
type ClientCredentialsConfig struct {
	// TokenURL is the full identity token endpoint,
	// e.g. "https://cloud.uipath.com/identity_/connect/token".
	TokenURL     string
	ClientID     string
	ClientSecret string
}

// OAuth2TokenManager acquires a bearer token via the client-credentials
// grant and caches it for the process lifetime. Concurrent first callers
// converge on a single in-flight token request; a second request is never
// issued while one is pending.
type OAuth2TokenManager struct {
	config     *ClientCredentialsConfig
	store      *tokenStore
	httpClient *nethttp.Client
	group      singleflight.Group
}

// NewOAuth2TokenManager creates a token manager for one account's
// credentials.
func NewOAuth2TokenManager(config *ClientCredentialsConfig) *OAuth2TokenManager {
	return &OAuth2TokenManager{
		config:     config,
		store:      &tokenStore{},
		httpClient: &nethttp.Client{Timeout: constants.DefaultHTTPTimeout},
	}
}

// GetToken returns the cached token without a network call when present;
// otherwise it performs the token request. No expiry tracking and no re-auth
// on 401: the first acquired token is reused until the process exits.
func (m *OAuth2TokenManager) GetToken(ctx context.Context) (string, error) {
	if token := m.store.Get(); token != nil {
		return token.AccessToken, nil
	}

	result, err, _ := m.group.Do("token", func() (interface{}, error) {
		// A concurrent caller may have populated the store while this call
		// waited on the flight group.
		if token := m.store.Get(); token != nil {
			return token.AccessToken, nil
		}

		token, err := m.requestToken(ctx)
		if err != nil {
			return nil, err
		}

		m.store.Set(token)

		return token.AccessToken, nil
	})
	if err != nil {
		return "", err
	}

	return result.(string), nil
}

// SetToken seeds the cache with an externally obtained token.
func (m *OAuth2TokenManager) SetToken(token string, acquiredAt time.Time) {
	m.store.Set(&Token{AccessToken: token, AcquiredAt: acquiredAt})
}

func (m *OAuth2TokenManager) requestToken(ctx context.Context) (*Token, error) {
	form := url.Values{
		"grant_type":    []string{"client_credentials"},
		"client_id":     []string{m.config.ClientID},
		"client_secret": []string{m.config.ClientSecret},
	}

	req, err := nethttp.NewRequestWithContext(ctx, nethttp.MethodPost, m.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("requesting token: %w", err)
	}

	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &uipath.AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var token Token
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}

	if token.AccessToken == "" {
		return nil, ErrEmptyAccessToken
	}

	token.AcquiredAt = time.Now()

	return &token, nil
}
