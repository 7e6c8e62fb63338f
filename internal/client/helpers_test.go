package client

import (
	"time"

	"github.com/roboworks-io/uipath-client/internal/auth"
	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

// testConfig builds a one-account, one-tenant config pointing at the given
// base URL.
func testConfig(baseURL string) *uipath.Config {
	return &uipath.Config{
		Accounts: map[string]*uipath.AccountConfig{
			"acme": {
				Name:         "acme",
				BaseURL:      baseURL,
				ClientID:     "client-id",
				ClientSecret: "client-secret",
				Tenants: map[string]*uipath.TenantConfig{
					"prod": {Name: "prod"},
				},
			},
		},
	}
}

// testSession builds a session against baseURL with a pre-seeded token, so no
// token round trip happens.
func testSession(baseURL string) *Client {
	config := testConfig(baseURL)
	account := config.Accounts["acme"]
	tenant := account.Tenants["prod"]

	tokenManager := auth.NewOAuth2TokenManager(&auth.ClientCredentialsConfig{
		TokenURL:     baseURL + "/identity_/connect/token",
		ClientID:     account.ClientID,
		ClientSecret: account.ClientSecret,
	})
	tokenManager.SetToken("test-token", time.Now())

	return newSession(config, account, tenant, tokenManager)
}
