package uipath

import (
	"fmt"
	"time"
)

// Config is the validated, read-only configuration handed to the client
// layer. It maps account logical names to their connection settings.
//
// The zero value is unusable; build one from your configuration source and
// pass it to orchclient.New, which validates and normalizes it once.
type Config struct {
	// Accounts maps account logical name to its configuration.
	Accounts map[string]*AccountConfig `json:"accounts" yaml:"accounts"`

	// Optional ambient settings applied to every session.
	Logger       Logger        `json:"-"          yaml:"-"`
	Debug        bool          `json:"debug"      yaml:"debug"`
	UserAgent    string        `json:"user_agent" yaml:"user_agent"`
	HTTPTimeout  time.Duration `json:"-"          yaml:"-"`
	RetryMax     int           `json:"retry_max"  yaml:"retry_max"`
	RetryWaitMin time.Duration `json:"-"          yaml:"-"`
	RetryWaitMax time.Duration `json:"-"          yaml:"-"`
}

// Account looks up an account by logical name, failing closed with a
// ConfigError when absent.
func (c *Config) Account(name string) (*AccountConfig, error) {
	account, ok := c.Accounts[name]
	if !ok {
		return nil, &ConfigError{Detail: fmt.Sprintf("unknown account %q", name)}
	}

	return account, nil
}

// AccountConfig describes one Orchestrator organization.
type AccountConfig struct {
	// Name is the account logical name, used both in request paths and as
	// the organization-unit header value for account-scoped requests.
	Name string `json:"name" yaml:"name"`

	// BaseURL is the Orchestrator cloud base URL, e.g.
	// "https://cloud.uipath.com". A trailing slash is tolerated.
	BaseURL string `json:"base_url" yaml:"base_url"`

	// ClientID and ClientSecret are the OAuth2 client-credentials pair used
	// against the account's identity endpoint.
	ClientID     string `json:"client_id"     yaml:"client_id"`
	ClientSecret string `json:"client_secret" yaml:"client_secret"`

	// DownloadDir is where library artifacts are persisted. Created on first
	// download if absent; defaults to "downloads" when empty.
	DownloadDir string `json:"download_dir" yaml:"download_dir"`

	// BucketsCollection selects the storage-bucket OData collection. Older
	// deployments expose "odata/BucketDefinitions" instead of the default
	// "odata/Buckets".
	BucketsCollection string `json:"buckets_collection,omitempty" yaml:"buckets_collection,omitempty"`

	// Tenants maps tenant name to its configuration. Only listed tenants may
	// be used; session construction fails closed for anything else.
	Tenants map[string]*TenantConfig `json:"tenants" yaml:"tenants"`
}

// Tenant looks up a tenant by name under this account, failing closed with a
// ConfigError when absent.
func (a *AccountConfig) Tenant(name string) (*TenantConfig, error) {
	tenant, ok := a.Tenants[name]
	if !ok {
		return nil, &ConfigError{Detail: fmt.Sprintf("unknown tenant %q for account %q", name, a.Name)}
	}

	return tenant, nil
}

// BucketsEndpoint returns the OData collection path for storage buckets,
// honoring the per-deployment override.
func (a *AccountConfig) BucketsEndpoint() string {
	if a.BucketsCollection != "" {
		return "odata/" + a.BucketsCollection
	}

	return ResourceBuckets.Endpoint()
}

// Validate checks that the account carries every field the client layer
// requires.
func (a *AccountConfig) Validate() error {
	if a.Name == "" {
		return &ConfigError{Detail: "account name is required"}
	}

	if a.BaseURL == "" {
		return &ConfigError{Detail: fmt.Sprintf("account %q: %v", a.Name, ErrBaseURLRequired)}
	}

	if a.ClientID == "" || a.ClientSecret == "" {
		return &ConfigError{Detail: fmt.Sprintf("account %q: %v", a.Name, ErrCredentialsMissing)}
	}

	if len(a.Tenants) == 0 {
		return &ConfigError{Detail: fmt.Sprintf("account %q: %v", a.Name, ErrNoTenantsDefined)}
	}

	for name, tenant := range a.Tenants {
		if tenant == nil {
			return &ConfigError{Detail: fmt.Sprintf("account %q: tenant %q has no configuration", a.Name, name)}
		}

		if tenant.Name == "" {
			tenant.Name = name
		}
	}

	return nil
}

// TenantConfig describes one tenant within an account.
type TenantConfig struct {
	// Name is the tenant name sent in the X-UIPATH-TenantName header.
	Name string `json:"name" yaml:"name"`

	// LibraryFeedID identifies the tenant's library feed. The NuGet v3
	// service-index URL is constructed from it unless FeedIndexURL is set.
	LibraryFeedID string `json:"library_feed_id,omitempty" yaml:"library_feed_id,omitempty"`

	// FeedIndexURL, when set, is used verbatim as the service-index URL.
	// There is deliberately no URL probing: the feed location always comes
	// from configuration.
	FeedIndexURL string `json:"feed_index_url,omitempty" yaml:"feed_index_url,omitempty"`
}
