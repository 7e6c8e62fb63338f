package orchclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

func validConfig() *uipath.Config {
	return &uipath.Config{
		Accounts: map[string]*uipath.AccountConfig{
			"acme": {
				BaseURL:      "https://cloud.uipath.com/",
				ClientID:     "id",
				ClientSecret: "secret",
				Tenants: map[string]*uipath.TenantConfig{
					"prod": {},
				},
			},
		},
	}
}

func TestNew(t *testing.T) {
	t.Run("valid config yields a registry", func(t *testing.T) {
		registry, err := New(validConfig())
		require.NoError(t, err)
		assert.NotNil(t, registry)
	})

	t.Run("nil config is rejected", func(t *testing.T) {
		_, err := New(nil)
		require.ErrorIs(t, err, uipath.ErrConfigRequired)
	})

	t.Run("empty accounts are rejected", func(t *testing.T) {
		_, err := New(&uipath.Config{})
		require.ErrorIs(t, err, uipath.ErrNoAccountsDefined)
	})

	t.Run("nil account entry is rejected", func(t *testing.T) {
		config := validConfig()
		config.Accounts["broken"] = nil

		_, err := New(config)
		require.Error(t, err)

		configErr := &uipath.ConfigError{}
		require.ErrorAs(t, err, &configErr)
	})

	t.Run("fills account names from map keys", func(t *testing.T) {
		config := validConfig()

		_, err := New(config)
		require.NoError(t, err)
		assert.Equal(t, "acme", config.Accounts["acme"].Name)
		assert.Equal(t, "prod", config.Accounts["acme"].Tenants["prod"].Name)
	})

	t.Run("normalizes the base URL", func(t *testing.T) {
		config := validConfig()
		config.Accounts["acme"].BaseURL = "cloud.uipath.com/"

		_, err := New(config)
		require.NoError(t, err)
		assert.Equal(t, "https://cloud.uipath.com", config.Accounts["acme"].BaseURL)
	})

	t.Run("invalid accounts are rejected", func(t *testing.T) {
		config := validConfig()
		config.Accounts["acme"].ClientSecret = ""

		_, err := New(config)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client ID and client secret are required")
	})
}

func TestNewSingleAccount(t *testing.T) {
	t.Run("wraps the account in a one-entry config", func(t *testing.T) {
		registry, err := NewSingleAccount(&uipath.AccountConfig{
			Name:         "acme",
			BaseURL:      "https://cloud.uipath.com",
			ClientID:     "id",
			ClientSecret: "secret",
			Tenants: map[string]*uipath.TenantConfig{
				"prod": {Name: "prod"},
			},
		})
		require.NoError(t, err)
		assert.NotNil(t, registry)
	})

	t.Run("nil account is rejected", func(t *testing.T) {
		_, err := NewSingleAccount(nil)
		require.ErrorIs(t, err, uipath.ErrConfigRequired)
	})
}

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "https://cloud.uipath.com", normalizeBaseURL("https://cloud.uipath.com/"))
	assert.Equal(t, "https://cloud.uipath.com", normalizeBaseURL("cloud.uipath.com"))
	assert.Equal(t, "http://localhost:8080", normalizeBaseURL("http://localhost:8080/"))
	assert.Empty(t, normalizeBaseURL(""))
}
