package uipath

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAccount() *AccountConfig {
	return &AccountConfig{
		Name:         "acme",
		BaseURL:      "https://cloud.uipath.com",
		ClientID:     "id",
		ClientSecret: "secret",
		Tenants: map[string]*TenantConfig{
			"prod": {Name: "prod"},
		},
	}
}

func TestConfig_Account(t *testing.T) {
	config := &Config{Accounts: map[string]*AccountConfig{"acme": validAccount()}}

	t.Run("known account", func(t *testing.T) {
		account, err := config.Account("acme")
		require.NoError(t, err)
		assert.Equal(t, "acme", account.Name)
	})

	t.Run("unknown account fails closed", func(t *testing.T) {
		_, err := config.Account("nobody")
		require.Error(t, err)

		configErr := &ConfigError{}
		require.ErrorAs(t, err, &configErr)
		assert.Contains(t, configErr.Detail, `unknown account "nobody"`)
	})
}

func TestAccountConfig_Tenant(t *testing.T) {
	account := validAccount()

	t.Run("known tenant", func(t *testing.T) {
		tenant, err := account.Tenant("prod")
		require.NoError(t, err)
		assert.Equal(t, "prod", tenant.Name)
	})

	t.Run("unknown tenant fails closed", func(t *testing.T) {
		_, err := account.Tenant("staging")
		require.Error(t, err)

		configErr := &ConfigError{}
		require.ErrorAs(t, err, &configErr)
		assert.Contains(t, configErr.Detail, `unknown tenant "staging"`)
	})
}

func TestAccountConfig_Validate(t *testing.T) {
	t.Run("valid account passes", func(t *testing.T) {
		require.NoError(t, validAccount().Validate())
	})

	t.Run("missing base URL", func(t *testing.T) {
		account := validAccount()
		account.BaseURL = ""

		err := account.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "base URL is required")
	})

	t.Run("missing credentials", func(t *testing.T) {
		account := validAccount()
		account.ClientSecret = ""

		err := account.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "client ID and client secret are required")
	})

	t.Run("no tenants", func(t *testing.T) {
		account := validAccount()
		account.Tenants = nil

		err := account.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no tenants defined")
	})

	t.Run("fills tenant names from map keys", func(t *testing.T) {
		account := validAccount()
		account.Tenants["staging"] = &TenantConfig{}

		require.NoError(t, account.Validate())
		assert.Equal(t, "staging", account.Tenants["staging"].Name)
	})

	t.Run("nil tenant entry is rejected", func(t *testing.T) {
		account := validAccount()
		account.Tenants["broken"] = nil

		err := account.Validate()
		require.Error(t, err)
		assert.Contains(t, err.Error(), `tenant "broken" has no configuration`)
	})
}

func TestAccountConfig_BucketsEndpoint(t *testing.T) {
	account := validAccount()
	assert.Equal(t, "odata/Buckets", account.BucketsEndpoint())

	account.BucketsCollection = "BucketDefinitions"
	assert.Equal(t, "odata/BucketDefinitions", account.BucketsEndpoint())
}
