package client

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/roboworks-io/uipath-client/internal/auth"
	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

// sessionKey uniquely identifies a session.
type sessionKey struct {
	account string
	tenant  string
}

// Registry implements uipath.Registry: a get-or-create cache of sessions
// keyed by (account, tenant). The cache is the only structure mutated by
// multiple callers; a mutex guards insert-if-absent and a flight group
// collapses concurrent construction of the same key.
//
// Token managers are shared per account, so every tenant session of an
// account reuses the account's token.
type Registry struct {
	config *uipath.Config

	mu            sync.Mutex
	sessions      map[sessionKey]*Client
	tokenManagers map[string]auth.TokenManager

	group singleflight.Group
}

// NewRegistry creates a registry over a validated config.
func NewRegistry(config *uipath.Config) *Registry {
	return &Registry{
		config:        config,
		sessions:      make(map[sessionKey]*Client),
		tokenManagers: make(map[string]auth.TokenManager),
	}
}

// Session implements uipath.Registry.Session. Unknown accounts and tenants
// fail closed with ConfigError before any network traffic. First access per
// key constructs the session and acquires a token (one network round trip);
// subsequent calls return the cached instance without re-authenticating.
func (r *Registry) Session(ctx context.Context, account, tenant string) (uipath.Client, error) {
	session, err := r.session(ctx, account, tenant)
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (r *Registry) session(ctx context.Context, account, tenant string) (*Client, error) {
	accountCfg, err := r.config.Account(account)
	if err != nil {
		return nil, err
	}

	tenantCfg, err := accountCfg.Tenant(tenant)
	if err != nil {
		return nil, err
	}

	key := sessionKey{account: account, tenant: tenant}

	r.mu.Lock()
	if session, ok := r.sessions[key]; ok {
		r.mu.Unlock()

		return session, nil
	}
	r.mu.Unlock()

	result, err, _ := r.group.Do(account+"\x00"+tenant, func() (interface{}, error) {
		r.mu.Lock()
		if session, ok := r.sessions[key]; ok {
			r.mu.Unlock()

			return session, nil
		}

		tokenManager := r.tokenManagerLocked(accountCfg)
		r.mu.Unlock()

		session := newSession(r.config, accountCfg, tenantCfg, tokenManager)

		// Authenticate eagerly so a bad credential surfaces here, not on the
		// first resource call.
		if _, err := tokenManager.GetToken(ctx); err != nil {
			return nil, fmt.Errorf("authenticating account %q: %w", account, err)
		}

		r.mu.Lock()
		r.sessions[key] = session
		r.mu.Unlock()

		return session, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Client), nil
}

// tokenManagerLocked returns the account's shared token manager, creating it
// on first use. Caller holds r.mu.
func (r *Registry) tokenManagerLocked(account *uipath.AccountConfig) auth.TokenManager {
	if tm, ok := r.tokenManagers[account.Name]; ok {
		return tm
	}

	tm := auth.NewOAuth2TokenManager(&auth.ClientCredentialsConfig{
		TokenURL:     tokenURL(account.BaseURL),
		ClientID:     account.ClientID,
		ClientSecret: account.ClientSecret,
	})
	r.tokenManagers[account.Name] = tm

	return tm
}

// Feed implements uipath.Registry.Feed.
func (r *Registry) Feed(ctx context.Context, account, tenant string) (uipath.LibraryFeed, error) {
	session, err := r.session(ctx, account, tenant)
	if err != nil {
		return nil, err
	}

	return newFeedResolver(session), nil
}

// tokenURL builds the identity token endpoint for a base URL.
func tokenURL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/") + "/identity_/connect/token"
}
