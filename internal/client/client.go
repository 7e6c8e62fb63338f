// Package client implements the Orchestrator session, the session registry,
// the multi-resource aggregator, and the library feed resolver.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/roboworks-io/uipath-client/internal/auth"
	"github.com/roboworks-io/uipath-client/internal/constants"
	"github.com/roboworks-io/uipath-client/internal/http"
	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

// Headers carrying tenant and folder context on every request.
const (
	headerTenantName = "X-UIPATH-TenantName"
	headerOrgUnitID  = "X-UIPATH-OrganizationUnitId"
)

// Client is an authenticated session scoped to one (account, tenant) pair.
// It implements uipath.Client. Sessions are created by the Registry and
// shared; all methods are safe for concurrent use.
type Client struct {
	httpClient   *http.Client
	tokenManager auth.TokenManager
	account      *uipath.AccountConfig
	tenant       *uipath.TenantConfig
	logger       uipath.Logger
}

// newSession builds a session for the given account/tenant. It does not
// authenticate; the registry triggers that eagerly after construction.
func newSession(config *uipath.Config, account *uipath.AccountConfig, tenant *uipath.TenantConfig, tokenManager auth.TokenManager) *Client {
	return &Client{
		httpClient:   http.NewClient(account.BaseURL, tokenManager, httpOptions(config)...),
		tokenManager: tokenManager,
		account:      account,
		tenant:       tenant,
		logger:       config.Logger,
	}
}

// httpOptions translates ambient config into transport options.
func httpOptions(config *uipath.Config) []http.Option {
	var opts []http.Option

	if config.Logger != nil {
		opts = append(opts, http.WithLogger(config.Logger))
	}

	if config.Debug {
		opts = append(opts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		opts = append(opts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		opts = append(opts, http.WithTimeout(config.HTTPTimeout))
	}

	if config.RetryMax > 0 {
		waitMin := config.RetryWaitMin
		if waitMin <= 0 {
			waitMin = constants.DefaultRetryWaitMin
		}

		waitMax := config.RetryWaitMax
		if waitMax <= 0 {
			waitMax = constants.DefaultRetryWaitMax
		}

		opts = append(opts, http.WithRetryConfig(config.RetryMax, waitMin, waitMax))
	}

	return opts
}

// Account implements uipath.Client.Account.
func (c *Client) Account() string {
	return c.account.Name
}

// Tenant implements uipath.Client.Tenant.
func (c *Client) Tenant() string {
	return c.tenant.Name
}

// endpointPath builds the tenant-scoped API path:
// /{account}/orchestrator_/{tenant}/{endpoint}.
func (c *Client) endpointPath(endpoint string) string {
	return fmt.Sprintf("/%s/orchestrator_/%s/%s", c.account.Name, c.tenant.Name, strings.TrimPrefix(endpoint, "/"))
}

// requestHeaders builds the tenant/folder context headers. The organization
// unit header is the sole scoping mechanism: a positive folderID scopes the
// request to that folder, zero falls back to the account logical name for
// account-wide requests.
func (c *Client) requestHeaders(folderID int64) map[string]string {
	orgUnit := c.account.Name
	if folderID > 0 {
		orgUnit = strconv.FormatInt(folderID, 10)
	}

	return map[string]string{
		"Content-Type":   "application/json",
		headerTenantName: c.tenant.Name,
		headerOrgUnitID:  orgUnit,
	}
}

// Get implements uipath.Client.Get.
func (c *Client) Get(ctx context.Context, endpoint string, folderID int64) (*uipath.ODataList, error) {
	return c.get(ctx, endpoint, nil, folderID)
}

// GetFiltered implements uipath.Client.GetFiltered.
func (c *Client) GetFiltered(ctx context.Context, endpoint, filter string, folderID int64) (*uipath.ODataList, error) {
	query := url.Values{}
	if filter != "" {
		query.Set("$filter", filter)
	}

	return c.get(ctx, endpoint, query, folderID)
}

func (c *Client) get(ctx context.Context, endpoint string, query url.Values, folderID int64) (*uipath.ODataList, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  "GET",
		Path:    c.endpointPath(endpoint),
		Query:   query,
		Headers: c.requestHeaders(folderID),
	})
	if err != nil {
		return nil, fmt.Errorf("getting %s: %w", endpoint, err)
	}

	var list uipath.ODataList
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", endpoint, err)
	}

	return &list, nil
}

// Post implements uipath.Client.Post. POST requests are always
// account-scoped.
func (c *Client) Post(ctx context.Context, endpoint string, body interface{}) ([]byte, error) {
	resp, err := c.httpClient.Do(ctx, &http.Request{
		Method:  "POST",
		Path:    c.endpointPath(endpoint),
		Body:    body,
		Headers: c.requestHeaders(0),
	})
	if err != nil {
		return nil, fmt.Errorf("posting %s: %w", endpoint, err)
	}

	return resp.Body, nil
}
