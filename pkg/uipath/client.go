package uipath

import (
	"context"
)

// Client is an authenticated Orchestrator session scoped to one
// (account, tenant) pair. Implementations are safe for concurrent use; the
// underlying transport pools connections, so independent requests may be in
// flight simultaneously against one session.
//
// Folder scoping is controlled entirely by the folderID argument: a positive
// id scopes the request to that folder via the X-UIPATH-OrganizationUnitId
// header; zero means account scope (the header carries the account logical
// name instead).
type Client interface {
	// Account returns the account logical name the session belongs to.
	Account() string

	// Tenant returns the tenant name the session is pinned to.
	Tenant() string

	// Get performs an authenticated GET against an OData endpoint and
	// returns the parsed collection envelope.
	Get(ctx context.Context, endpoint string, folderID int64) (*ODataList, error)

	// GetFiltered is Get with an OData $filter expression.
	GetFiltered(ctx context.Context, endpoint, filter string, folderID int64) (*ODataList, error)

	// Post performs an authenticated account-scoped POST and returns the raw
	// response body.
	Post(ctx context.Context, endpoint string, body interface{}) ([]byte, error)

	// Resource fetches one resource kind, applying the kind's endpoint and
	// scoping rule.
	Resource(ctx context.Context, kind ResourceKind, folderID int64) (*ODataList, error)

	// Domain accessors, one per resource kind.
	Folders(ctx context.Context) (*ODataList, error)
	Assets(ctx context.Context, folderID int64) (*ODataList, error)
	Queues(ctx context.Context, folderID int64) (*ODataList, error)
	Buckets(ctx context.Context, folderID int64) (*ODataList, error)
	Triggers(ctx context.Context, folderID int64) (*ODataList, error)
	Processes(ctx context.Context, folderID int64) (*ODataList, error)
	Libraries(ctx context.Context) (*ODataList, error)
}

// Registry hands out cached sessions per (account, tenant). Both lookups
// validate against the configuration and fail closed before any network
// traffic.
type Registry interface {
	// Session returns the cached session for the key, creating and
	// authenticating it on first use.
	Session(ctx context.Context, account, tenant string) (Client, error)

	// Feed returns the library feed accessor for the tenant's configured
	// feed, backed by the same cached session.
	Feed(ctx context.Context, account, tenant string) (LibraryFeed, error)
}

// Aggregator fetches several resource kinds for one folder in a single
// logical call, tolerating partial failure.
type Aggregator interface {
	// Fetch returns one entry per requested kind, in request order. A
	// failure for one kind never prevents delivery of the others; the full
	// response is returned only once every sub-fetch has settled.
	Fetch(ctx context.Context, session Client, kinds []ResourceKind, folderID int64) (*AggregatedResponse, error)
}

// LibraryFeed lists and downloads package-feed artifacts for one tenant.
type LibraryFeed interface {
	// ResolveIndex fetches the tenant's NuGet v3 service index.
	ResolveIndex(ctx context.Context) (*ServiceIndex, error)

	// VersionIndex returns the flat-container version list in feed-native
	// order, without sorting.
	VersionIndex(ctx context.Context, packageID string) ([]string, error)

	// ListVersions returns the lower-cased versions in lexical order. Note
	// that lexical order is not semantic-version order ("1.0.10" sorts
	// before "1.0.2").
	ListVersions(ctx context.Context, packageID string) ([]string, error)

	// Download fetches one package version into the account's download
	// directory. On failure no file is left at the final path.
	Download(ctx context.Context, packageID, version string) (*DownloadedArtifact, error)
}

// Logger is the structured logging interface used across the client. Any
// logging backend can be adapted to it.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}
