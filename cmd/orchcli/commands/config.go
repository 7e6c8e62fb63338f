package commands

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

// Static errors for err113 compliance.
var (
	ErrNoAccountsConfigured = errors.New("no accounts configured, add an accounts section to the config file")
	ErrAccountRequired      = errors.New("account is required (--account or UIPATH_ACCOUNT)")
	ErrTenantRequired       = errors.New("tenant is required (--tenant or UIPATH_TENANT)")
	ErrSecretPromptFailed   = errors.New("client secret not configured and no terminal available to prompt")
)

// fileAccount mirrors the config file's account shape for viper decoding.
type fileAccount struct {
	BaseURL           string                `mapstructure:"base_url"`
	ClientID          string                `mapstructure:"client_id"`
	ClientSecret      string                `mapstructure:"client_secret"`
	DownloadDir       string                `mapstructure:"download_dir"`
	BucketsCollection string                `mapstructure:"buckets_collection"`
	Tenants           map[string]fileTenant `mapstructure:"tenants"`
}

type fileTenant struct {
	LibraryFeedID string `mapstructure:"library_feed_id"`
	FeedIndexURL  string `mapstructure:"feed_index_url"`
}

// loadClientConfig reads the accounts section from viper and converts it
// into the client configuration. Missing client secrets are prompted for
// interactively so they can stay out of config files.
func loadClientConfig() (*uipath.Config, error) {
	var accounts map[string]fileAccount
	if err := viper.UnmarshalKey("accounts", &accounts); err != nil {
		return nil, fmt.Errorf("parsing accounts config: %w", err)
	}

	if len(accounts) == 0 {
		return nil, ErrNoAccountsConfigured
	}

	config := &uipath.Config{
		Accounts: make(map[string]*uipath.AccountConfig, len(accounts)),
		Debug:    viper.GetBool("verbose"),
	}

	for name, account := range accounts {
		secret := account.ClientSecret
		if secret == "" {
			prompted, err := promptSecret(fmt.Sprintf("Client secret for account %q: ", name))
			if err != nil {
				return nil, err
			}

			secret = prompted
		}

		tenants := make(map[string]*uipath.TenantConfig, len(account.Tenants))
		for tenantName, tenant := range account.Tenants {
			tenants[tenantName] = &uipath.TenantConfig{
				Name:          tenantName,
				LibraryFeedID: tenant.LibraryFeedID,
				FeedIndexURL:  tenant.FeedIndexURL,
			}
		}

		config.Accounts[name] = &uipath.AccountConfig{
			Name:              name,
			BaseURL:           account.BaseURL,
			ClientID:          account.ClientID,
			ClientSecret:      secret,
			DownloadDir:       account.DownloadDir,
			BucketsCollection: account.BucketsCollection,
			Tenants:           tenants,
		}
	}

	return config, nil
}

// promptSecret reads a secret from the terminal without echo.
func promptSecret(prompt string) (string, error) {
	if !term.IsTerminal(int(syscall.Stdin)) {
		return "", ErrSecretPromptFailed
	}

	fmt.Fprint(os.Stderr, prompt)

	secret, err := term.ReadPassword(int(syscall.Stdin))

	fmt.Fprintln(os.Stderr)

	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}

	return string(secret), nil
}

// targetContext returns the account and tenant the command should run
// against, from flags or environment.
func targetContext() (string, string, error) {
	account := viper.GetString("account")
	if account == "" {
		return "", "", ErrAccountRequired
	}

	tenant := viper.GetString("tenant")
	if tenant == "" {
		return "", "", ErrTenantRequired
	}

	return account, tenant, nil
}
