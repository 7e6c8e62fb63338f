package uipath

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Static errors for err113 compliance.
var (
	ErrUnknownResourceKind = errors.New("unknown resource kind")
)

// ResourceKind identifies one of the fixed Orchestrator resource collections.
// Each kind maps at compile time to exactly one OData endpoint and one
// scoping rule; an unrecognized kind is a validation error, never a silent
// no-op.
type ResourceKind string

const (
	ResourceFolders   ResourceKind = "folders"
	ResourceAssets    ResourceKind = "assets"
	ResourceQueues    ResourceKind = "queues"
	ResourceBuckets   ResourceKind = "storage_buckets"
	ResourceTriggers  ResourceKind = "triggers"
	ResourceProcesses ResourceKind = "processes"
	ResourceLibraries ResourceKind = "libraries"
)

// resourceEndpoints maps each kind to its default OData collection path and
// scoping rule. Buckets may be overridden per account (BucketsCollection).
var resourceEndpoints = map[ResourceKind]struct {
	endpoint     string
	folderScoped bool
}{
	ResourceFolders:   {"odata/Folders", false},
	ResourceAssets:    {"odata/Assets", true},
	ResourceQueues:    {"odata/QueueDefinitions", true},
	ResourceBuckets:   {"odata/Buckets", true},
	ResourceTriggers:  {"odata/ProcessSchedules", true},
	ResourceProcesses: {"odata/Releases", true},
	ResourceLibraries: {"odata/Libraries", false},
}

// AllResourceKinds returns every known kind in canonical order.
func AllResourceKinds() []ResourceKind {
	return []ResourceKind{
		ResourceFolders,
		ResourceAssets,
		ResourceQueues,
		ResourceBuckets,
		ResourceTriggers,
		ResourceProcesses,
		ResourceLibraries,
	}
}

// ParseResourceKind converts a string tag into a ResourceKind.
func ParseResourceKind(s string) (ResourceKind, error) {
	kind := ResourceKind(s)
	if _, ok := resourceEndpoints[kind]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownResourceKind, s)
	}

	return kind, nil
}

// Endpoint returns the default OData collection path for the kind.
func (k ResourceKind) Endpoint() string {
	return resourceEndpoints[k].endpoint
}

// FolderScoped reports whether requests for this kind are scoped to a single
// folder (true) or to the whole account (false).
func (k ResourceKind) FolderScoped() bool {
	return resourceEndpoints[k].folderScoped
}

// Valid reports whether the kind is one of the known resource kinds.
func (k ResourceKind) Valid() bool {
	_, ok := resourceEndpoints[k]

	return ok
}

// ODataList is the envelope Orchestrator wraps collection responses in.
// Records are kept raw; interpreting individual fields is the caller's job.
type ODataList struct {
	Count *int64            `json:"@odata.count,omitempty"`
	Value []json.RawMessage `json:"value"`
}

// ResourceFailure is the error record placed in an AggregatedResponse for a
// kind that failed to fetch.
type ResourceFailure struct {
	Error   string `json:"error"`
	Status  int    `json:"status,omitempty"`
	Message string `json:"message"`
}

// Failure categories used in ResourceFailure.Error.
const (
	FailureHTTP    = "http_error"
	FailureNetwork = "network_error"
	FailureTimeout = "timeout"
)

// ResourceResult is a tagged union: either Items or Failure is populated,
// never both. A successful kind with zero records is Items with an empty
// slice, a different state from Failure.
type ResourceResult struct {
	Items   []json.RawMessage
	Failure *ResourceFailure
}

// Failed reports whether the result represents a fetch failure.
func (r ResourceResult) Failed() bool {
	return r.Failure != nil
}

// MarshalJSON encodes a success as the bare item array and a failure as the
// error record. The shape asymmetry is deliberate: consumers branch on
// structure alone, and zero items never collapses into a failure.
func (r ResourceResult) MarshalJSON() ([]byte, error) {
	if r.Failure != nil {
		return json.Marshal(r.Failure)
	}

	if r.Items == nil {
		return []byte("[]"), nil
	}

	return json.Marshal(r.Items)
}

// AggregatedResponse maps each requested ResourceKind to its result. Key
// order is the caller's request order, not completion order.
type AggregatedResponse struct {
	kinds   []ResourceKind
	results map[ResourceKind]ResourceResult
}

// NewAggregatedResponse creates an empty response that will preserve
// insertion order.
func NewAggregatedResponse() *AggregatedResponse {
	return &AggregatedResponse{
		results: make(map[ResourceKind]ResourceResult),
	}
}

// Add records the result for a kind. The first Add for a kind fixes its
// position; a second Add for the same kind overwrites the value in place.
func (a *AggregatedResponse) Add(kind ResourceKind, result ResourceResult) {
	if _, ok := a.results[kind]; !ok {
		a.kinds = append(a.kinds, kind)
	}

	a.results[kind] = result
}

// Kinds returns the kinds in insertion order.
func (a *AggregatedResponse) Kinds() []ResourceKind {
	kinds := make([]ResourceKind, len(a.kinds))
	copy(kinds, a.kinds)

	return kinds
}

// Result returns the result for a kind.
func (a *AggregatedResponse) Result(kind ResourceKind) (ResourceResult, bool) {
	result, ok := a.results[kind]

	return result, ok
}

// Len returns the number of entries.
func (a *AggregatedResponse) Len() int {
	return len(a.kinds)
}

// MarshalJSON encodes the response as a JSON object whose key order matches
// the request order.
func (a *AggregatedResponse) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, kind := range a.kinds {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := json.Marshal(string(kind))
		if err != nil {
			return nil, fmt.Errorf("encoding key %q: %w", kind, err)
		}

		buf.Write(key)
		buf.WriteByte(':')

		value, err := json.Marshal(a.results[kind])
		if err != nil {
			return nil, fmt.Errorf("encoding result for %q: %w", kind, err)
		}

		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// ServiceIndex is a NuGet v3 service index document.
type ServiceIndex struct {
	Version   string            `json:"version"`
	Resources []ServiceResource `json:"resources"`
}

// ServiceResource is one entry in a service index. The @type field may be a
// single string or an array of strings depending on the server.
type ServiceResource struct {
	ID   string              `json:"@id"`
	Type ServiceResourceType `json:"@type"`
}

// ServiceResourceType holds the one-or-many @type values of a service
// resource.
type ServiceResourceType []string

// UnmarshalJSON accepts either a JSON string or an array of strings.
func (t *ServiceResourceType) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*t = ServiceResourceType{single}

		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("parsing @type: %w", err)
	}

	*t = ServiceResourceType(many)

	return nil
}

// Includes reports whether the type tag list contains the given value.
func (t ServiceResourceType) Includes(value string) bool {
	for _, v := range t {
		if v == value {
			return true
		}
	}

	return false
}

// VersionList is the flat-container version index for one package.
type VersionList struct {
	Versions []string `json:"versions"`
}

// DownloadedArtifact describes a package version persisted to local storage.
// Ownership of the file passes to the caller on return.
type DownloadedArtifact struct {
	PackageID string `json:"package_id" yaml:"package_id"`
	Version   string `json:"version"    yaml:"version"`
	LocalPath string `json:"local_path" yaml:"local_path"`
	ByteSize  int64  `json:"byte_size"  yaml:"byte_size"`
}
