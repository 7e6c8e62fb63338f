package client

import (
	"context"
	"fmt"

	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

// Folders implements uipath.Client.Folders. Account-scoped: listing folders
// cannot itself be folder-scoped.
func (c *Client) Folders(ctx context.Context) (*uipath.ODataList, error) {
	return c.Get(ctx, uipath.ResourceFolders.Endpoint(), 0)
}

// Assets implements uipath.Client.Assets.
func (c *Client) Assets(ctx context.Context, folderID int64) (*uipath.ODataList, error) {
	return c.Get(ctx, uipath.ResourceAssets.Endpoint(), folderID)
}

// Queues implements uipath.Client.Queues.
func (c *Client) Queues(ctx context.Context, folderID int64) (*uipath.ODataList, error) {
	return c.Get(ctx, uipath.ResourceQueues.Endpoint(), folderID)
}

// Buckets implements uipath.Client.Buckets. The collection name varies by
// deployment; the account config decides.
func (c *Client) Buckets(ctx context.Context, folderID int64) (*uipath.ODataList, error) {
	return c.Get(ctx, c.account.BucketsEndpoint(), folderID)
}

// Triggers implements uipath.Client.Triggers. Covers both time and queue
// triggers: ProcessSchedules carries both schedule types.
func (c *Client) Triggers(ctx context.Context, folderID int64) (*uipath.ODataList, error) {
	return c.Get(ctx, uipath.ResourceTriggers.Endpoint(), folderID)
}

// Processes implements uipath.Client.Processes.
func (c *Client) Processes(ctx context.Context, folderID int64) (*uipath.ODataList, error) {
	return c.Get(ctx, uipath.ResourceProcesses.Endpoint(), folderID)
}

// Libraries implements uipath.Client.Libraries. Account-scoped.
func (c *Client) Libraries(ctx context.Context) (*uipath.ODataList, error) {
	return c.Get(ctx, uipath.ResourceLibraries.Endpoint(), 0)
}

// Resource implements uipath.Client.Resource, dispatching over the closed
// kind enumeration. Account-scoped kinds ignore folderID.
func (c *Client) Resource(ctx context.Context, kind uipath.ResourceKind, folderID int64) (*uipath.ODataList, error) {
	switch kind {
	case uipath.ResourceFolders:
		return c.Folders(ctx)
	case uipath.ResourceAssets:
		return c.Assets(ctx, folderID)
	case uipath.ResourceQueues:
		return c.Queues(ctx, folderID)
	case uipath.ResourceBuckets:
		return c.Buckets(ctx, folderID)
	case uipath.ResourceTriggers:
		return c.Triggers(ctx, folderID)
	case uipath.ResourceProcesses:
		return c.Processes(ctx, folderID)
	case uipath.ResourceLibraries:
		return c.Libraries(ctx)
	default:
		return nil, fmt.Errorf("%w: %q", uipath.ErrUnknownResourceKind, kind)
	}
}
