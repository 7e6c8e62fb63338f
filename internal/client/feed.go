package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/roboworks-io/uipath-client/internal/constants"
	"github.com/roboworks-io/uipath-client/internal/http"
	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

// packageBaseAddressType is the NuGet v3 capability tag for the flat
// container used for version listing and artifact download.
const packageBaseAddressType = "PackageBaseAddress/3.0.0"

// defaultDownloadDir is used when the account does not configure one.
const defaultDownloadDir = "downloads"

// FeedResolver implements uipath.LibraryFeed over one tenant's configured
// feed. Resolution proceeds index → base address → list-or-fetch; each
// stage terminates the request with a named failure on error.
type FeedResolver struct {
	httpClient *http.Client
	// streamClient carries a longer timeout than the API client; the
	// per-call limit must cover reading a whole artifact body.
	streamClient *http.Client
	account      *uipath.AccountConfig
	tenant       *uipath.TenantConfig
	logger       uipath.Logger
}

func newFeedResolver(session *Client) *FeedResolver {
	streamOpts := []http.Option{http.WithTimeout(constants.ExtendedHTTPTimeout)}
	if session.logger != nil {
		streamOpts = append(streamOpts, http.WithLogger(session.logger))
	}

	return &FeedResolver{
		httpClient:   session.httpClient,
		streamClient: http.NewClient(session.account.BaseURL, session.tokenManager, streamOpts...),
		account:      session.account,
		tenant:       session.tenant,
		logger:       session.logger,
	}
}

// indexURL returns the tenant's service-index URL. A configured FeedIndexURL
// wins; otherwise the URL is constructed from the feed id. The feed location
// always comes from configuration; there is no URL probing.
func (f *FeedResolver) indexURL() (string, error) {
	if f.tenant.FeedIndexURL != "" {
		return f.tenant.FeedIndexURL, nil
	}

	if f.tenant.LibraryFeedID == "" {
		return "", &uipath.ConfigError{
			Detail: fmt.Sprintf("tenant %q: %v", f.tenant.Name, uipath.ErrNoFeedConfigured),
		}
	}

	base := strings.TrimSuffix(f.account.BaseURL, "/")

	return fmt.Sprintf("%s/%s/%s/nuget/v3/%s/index.json", base, f.account.Name, f.tenant.Name, f.tenant.LibraryFeedID), nil
}

// ResolveIndex implements uipath.LibraryFeed.ResolveIndex.
func (f *FeedResolver) ResolveIndex(ctx context.Context) (*uipath.ServiceIndex, error) {
	indexURL, err := f.indexURL()
	if err != nil {
		return nil, err
	}

	resp, err := f.httpClient.Get(ctx, indexURL, nil)
	if err != nil {
		return nil, &uipath.FeedError{
			Stage:  uipath.FeedStageIndex,
			Detail: "service index unreachable at " + indexURL,
			Err:    err,
		}
	}

	var index uipath.ServiceIndex
	if err := json.Unmarshal(resp.Body, &index); err != nil {
		return nil, &uipath.FeedError{
			Stage:  uipath.FeedStageIndex,
			Detail: "parsing service index",
			Err:    err,
		}
	}

	return &index, nil
}

// packageBaseAddress scans the index for the flat-container capability.
func packageBaseAddress(index *uipath.ServiceIndex) (string, error) {
	for _, resource := range index.Resources {
		if resource.Type.Includes(packageBaseAddressType) {
			return strings.TrimSuffix(resource.ID, "/"), nil
		}
	}

	return "", &uipath.FeedError{
		Stage:  uipath.FeedStageCapability,
		Detail: packageBaseAddressType + " not advertised by feed",
	}
}

// VersionIndex implements uipath.LibraryFeed.VersionIndex: versions in
// feed-native order.
func (f *FeedResolver) VersionIndex(ctx context.Context, packageID string) ([]string, error) {
	index, err := f.ResolveIndex(ctx)
	if err != nil {
		return nil, err
	}

	base, err := packageBaseAddress(index)
	if err != nil {
		return nil, err
	}

	packageID = strings.ToLower(packageID)

	resp, err := f.httpClient.Get(ctx, fmt.Sprintf("%s/%s/index.json", base, packageID), nil)
	if err != nil {
		return nil, &uipath.FeedError{
			Stage:  uipath.FeedStageVersions,
			Detail: "fetching version index for " + packageID,
			Err:    err,
		}
	}

	var list uipath.VersionList
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, &uipath.FeedError{
			Stage:  uipath.FeedStageVersions,
			Detail: "parsing version index for " + packageID,
			Err:    err,
		}
	}

	if len(list.Versions) == 0 {
		return nil, &uipath.FeedError{
			Stage:  uipath.FeedStageVersions,
			Detail: "no versions found for " + packageID,
		}
	}

	return list.Versions, nil
}

// ListVersions implements uipath.LibraryFeed.ListVersions: lower-cased
// versions in lexical order. Lexical, not semantic: "1.0.10" sorts before
// "1.0.2".
func (f *FeedResolver) ListVersions(ctx context.Context, packageID string) ([]string, error) {
	versions, err := f.VersionIndex(ctx, packageID)
	if err != nil {
		return nil, err
	}

	sorted := make([]string, len(versions))
	for i, version := range versions {
		sorted[i] = strings.ToLower(version)
	}

	sort.Strings(sorted)

	return sorted, nil
}

// Download implements uipath.LibraryFeed.Download. The body streams into a
// temporary file in the target directory which is renamed into place only on
// full success, so a failed or abandoned download never leaves a partial
// file at the final path.
func (f *FeedResolver) Download(ctx context.Context, packageID, version string) (*uipath.DownloadedArtifact, error) {
	index, err := f.ResolveIndex(ctx)
	if err != nil {
		return nil, err
	}

	base, err := packageBaseAddress(index)
	if err != nil {
		return nil, err
	}

	idLower := strings.ToLower(packageID)
	versionLower := strings.ToLower(version)
	artifactURL := fmt.Sprintf("%s/%s/%s/%s.%s.nupkg", base, idLower, versionLower, idLower, versionLower)

	stream, err := f.streamClient.Stream(ctx, &http.Request{Method: "GET", Path: artifactURL})
	if err != nil {
		return nil, &uipath.DownloadError{
			PackageID: packageID,
			Version:   version,
			Detail:    "artifact fetch failed",
			Err:       err,
		}
	}

	defer func() { _ = stream.Body.Close() }()

	downloadDir := f.account.DownloadDir
	if downloadDir == "" {
		downloadDir = defaultDownloadDir
	}

	if err := os.MkdirAll(downloadDir, constants.DownloadDirPerm); err != nil {
		return nil, &uipath.DownloadError{
			PackageID: packageID,
			Version:   version,
			Detail:    "creating download directory",
			Err:       err,
		}
	}

	finalPath := filepath.Join(downloadDir, fmt.Sprintf("%s.%s.nupkg", packageID, version))

	size, err := writeAtomic(finalPath, stream.Body)
	if err != nil {
		return nil, &uipath.DownloadError{
			PackageID: packageID,
			Version:   version,
			Detail:    "persisting artifact",
			Err:       err,
		}
	}

	if f.logger != nil {
		f.logger.Info("downloaded library artifact", map[string]interface{}{
			"package": packageID,
			"version": version,
			"path":    finalPath,
			"bytes":   size,
		})
	}

	return &uipath.DownloadedArtifact{
		PackageID: packageID,
		Version:   version,
		LocalPath: finalPath,
		ByteSize:  size,
	}, nil
}

// writeAtomic copies body into a temp file next to finalPath and renames it
// into place. On any failure the temp file is removed and finalPath is left
// untouched. Returns the number of bytes persisted.
func writeAtomic(finalPath string, body io.Reader) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(finalPath), ".download-*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file: %w", err)
	}

	size, err := io.Copy(tmp, body)
	if err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return 0, fmt.Errorf("writing artifact body: %w", err)
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return 0, fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), finalPath); err != nil {
		_ = os.Remove(tmp.Name())

		return 0, fmt.Errorf("moving artifact into place: %w", err)
	}

	return size, nil
}
