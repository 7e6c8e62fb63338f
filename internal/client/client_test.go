package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

func TestClient_Get(t *testing.T) {
	t.Run("builds tenant-scoped path and headers", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/acme/orchestrator_/prod/odata/Assets", r.URL.Path)
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "prod", r.Header.Get("X-UIPATH-TenantName"))

			_, _ = w.Write([]byte(`{"@odata.count":2,"value":[{"Id":1},{"Id":2}]}`))
		}))
		defer server.Close()

		session := testSession(server.URL)

		list, err := session.Get(context.Background(), "odata/Assets", 0)
		require.NoError(t, err)
		require.NotNil(t, list.Count)
		assert.Equal(t, int64(2), *list.Count)
		assert.Len(t, list.Value, 2)
	})

	t.Run("positive folder id scopes via organization unit header", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "77", r.Header.Get("X-UIPATH-OrganizationUnitId"))
			_, _ = w.Write([]byte(`{"value":[]}`))
		}))
		defer server.Close()

		session := testSession(server.URL)

		_, err := session.Get(context.Background(), "odata/Assets", 77)
		require.NoError(t, err)
	})

	t.Run("zero folder id falls back to account logical name", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "acme", r.Header.Get("X-UIPATH-OrganizationUnitId"))
			_, _ = w.Write([]byte(`{"value":[]}`))
		}))
		defer server.Close()

		session := testSession(server.URL)

		_, err := session.Get(context.Background(), "odata/Folders", 0)
		require.NoError(t, err)
	})

	t.Run("propagates HTTP errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"error":{"code":"1002","message":"access denied"}}`))
		}))
		defer server.Close()

		session := testSession(server.URL)

		_, err := session.Get(context.Background(), "odata/Assets", 5)
		require.Error(t, err)
		assert.True(t, uipath.IsForbidden(err))
	})
}

func TestClient_GetFiltered(t *testing.T) {
	t.Run("passes filter as OData query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Name eq 'billing'", r.URL.Query().Get("$filter"))
			_, _ = w.Write([]byte(`{"value":[{"Id":9}]}`))
		}))
		defer server.Close()

		session := testSession(server.URL)

		list, err := session.GetFiltered(context.Background(), "odata/Assets", "Name eq 'billing'", 0)
		require.NoError(t, err)
		assert.Len(t, list.Value, 1)
	})

	t.Run("empty filter omits the query", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.URL.RawQuery)
			_, _ = w.Write([]byte(`{"value":[]}`))
		}))
		defer server.Close()

		session := testSession(server.URL)

		_, err := session.GetFiltered(context.Background(), "odata/Assets", "", 0)
		require.NoError(t, err)
	})
}

func TestClient_Post(t *testing.T) {
	t.Run("posts JSON account-scoped and returns raw body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "acme", r.Header.Get("X-UIPATH-OrganizationUnitId"))

			_, _ = w.Write([]byte(`{"created":true}`))
		}))
		defer server.Close()

		session := testSession(server.URL)

		body, err := session.Post(context.Background(), "odata/Assets", map[string]string{"Name": "x"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"created":true}`, string(body))
	})
}

func TestClient_Resource(t *testing.T) {
	t.Run("dispatches each kind to its endpoint", func(t *testing.T) {
		paths := map[uipath.ResourceKind]string{
			uipath.ResourceFolders:   "/acme/orchestrator_/prod/odata/Folders",
			uipath.ResourceAssets:    "/acme/orchestrator_/prod/odata/Assets",
			uipath.ResourceQueues:    "/acme/orchestrator_/prod/odata/QueueDefinitions",
			uipath.ResourceBuckets:   "/acme/orchestrator_/prod/odata/Buckets",
			uipath.ResourceTriggers:  "/acme/orchestrator_/prod/odata/ProcessSchedules",
			uipath.ResourceProcesses: "/acme/orchestrator_/prod/odata/Releases",
			uipath.ResourceLibraries: "/acme/orchestrator_/prod/odata/Libraries",
		}

		var gotPath string

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			_, _ = w.Write([]byte(`{"value":[]}`))
		}))
		defer server.Close()

		session := testSession(server.URL)

		for kind, wantPath := range paths {
			_, err := session.Resource(context.Background(), kind, 3)
			require.NoError(t, err, "kind %s", kind)
			assert.Equal(t, wantPath, gotPath, "kind %s", kind)
		}
	})

	t.Run("rejects unknown kinds", func(t *testing.T) {
		session := testSession("http://unused.invalid")

		_, err := session.Resource(context.Background(), uipath.ResourceKind("widgets"), 0)
		require.ErrorIs(t, err, uipath.ErrUnknownResourceKind)
	})

	t.Run("buckets honors the per-account collection override", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/acme/orchestrator_/prod/odata/BucketDefinitions", r.URL.Path)
			_, _ = w.Write([]byte(`{"value":[]}`))
		}))
		defer server.Close()

		session := testSession(server.URL)
		session.account.BucketsCollection = "BucketDefinitions"

		_, err := session.Buckets(context.Background(), 4)
		require.NoError(t, err)
	})
}

func TestClient_Accessors(t *testing.T) {
	session := testSession("http://unused.invalid")

	assert.Equal(t, "acme", session.Account())
	assert.Equal(t, "prod", session.Tenant())
}
