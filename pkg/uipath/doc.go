// Package uipath defines the public types, interfaces, and error taxonomy
// for the UiPath Orchestrator client.
//
// The package is organized around a few core concepts:
//
//   - Config / AccountConfig / TenantConfig: the validated, read-only
//     configuration surface. An account identifies an Orchestrator
//     organization (base URL plus OAuth2 client credentials); each account
//     hosts one or more named tenants.
//
//   - Client: an authenticated session scoped to one (account, tenant)
//     pair. It exposes raw OData access via Get/GetFiltered/Post plus one
//     thin accessor per resource collection (Folders, Assets, Queues, ...).
//
//   - Registry: the get-or-create cache of sessions, keyed by
//     (account, tenant). At most one live session exists per key; session
//     construction authenticates eagerly, so the first access per key costs
//     one token round trip.
//
//   - Aggregator: fetches several ResourceKinds for one folder in a single
//     logical call with partial-failure semantics. A failed kind is reported
//     as structured data and never aborts the other kinds.
//
//   - LibraryFeed: NuGet v3 feed access for a tenant's library feed:
//     service-index resolution, flat-container version listing, and
//     versioned artifact download.
//
// Use package orchclient to construct a Registry from a Config.
package uipath
