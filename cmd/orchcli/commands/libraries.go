package commands

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roboworks-io/uipath-client/pkg/orchclient"
	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

// NewLibrariesCommand creates the libraries command group.
func NewLibrariesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "libraries",
		Short: "Work with the tenant's library feed",
	}

	cmd.AddCommand(newLibrariesListCommand())
	cmd.AddCommand(newLibrariesVersionsCommand())
	cmd.AddCommand(newLibrariesDownloadCommand())

	return cmd
}

func newLibrariesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List libraries published to the tenant",
		RunE: func(cmd *cobra.Command, args []string) error {
			session, err := targetSession(cmd)
			if err != nil {
				return err
			}

			libraries, err := session.Libraries(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing libraries: %w", err)
			}

			return renderList(libraries, "Id", "Title", "Version", "Published")
		},
	}
}

func newLibrariesVersionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "versions <package-id>",
		Short: "List feed versions for a package",
		Long: `Lists versions from the tenant's library feed in lexical order of the
lower-cased version strings. Lexical order is not semantic-version order:
"1.0.10" sorts before "1.0.2".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			feed, err := targetFeed(cmd)
			if err != nil {
				return err
			}

			versions, err := feed.ListVersions(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("listing versions: %w", err)
			}

			if viper.GetString("output") != OutputFormatTable {
				return renderStructured(map[string]interface{}{
					"package_id": args[0],
					"versions":   versions,
				})
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.Header("Version")

			for _, version := range versions {
				_ = table.Append(version)
			}

			_ = table.Render()

			return nil
		},
	}
}

func newLibrariesDownloadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "download <package-id> <version>",
		Short: "Download a package version to the account's download directory",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			feed, err := targetFeed(cmd)
			if err != nil {
				return err
			}

			artifact, err := feed.Download(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("downloading artifact: %w", err)
			}

			if viper.GetString("output") != OutputFormatTable {
				return renderStructured(artifact)
			}

			fmt.Printf("Downloaded %s %s (%d bytes) to %s\n",
				artifact.PackageID, artifact.Version, artifact.ByteSize, artifact.LocalPath)

			return nil
		},
	}
}

// targetSession resolves the session for the targeted account/tenant.
func targetSession(cmd *cobra.Command) (uipath.Client, error) {
	registry, account, tenant, err := targetRegistry()
	if err != nil {
		return nil, err
	}

	return registry.Session(cmd.Context(), account, tenant)
}

// targetFeed resolves the library feed for the targeted account/tenant.
func targetFeed(cmd *cobra.Command) (uipath.LibraryFeed, error) {
	registry, account, tenant, err := targetRegistry()
	if err != nil {
		return nil, err
	}

	return registry.Feed(cmd.Context(), account, tenant)
}

func targetRegistry() (uipath.Registry, string, string, error) {
	account, tenant, err := targetContext()
	if err != nil {
		return nil, "", "", err
	}

	config, err := loadClientConfig()
	if err != nil {
		return nil, "", "", err
	}

	registry, err := orchclient.New(config)
	if err != nil {
		return nil, "", "", err
	}

	return registry, account, tenant, nil
}
