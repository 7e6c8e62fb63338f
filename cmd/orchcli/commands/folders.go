package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roboworks-io/uipath-client/pkg/orchclient"
)

// NewFoldersCommand creates the folders command.
func NewFoldersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "folders",
		Short: "List folders for the targeted tenant",
		Long:  "Lists all folders the configured credentials can see in the targeted account/tenant.",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, tenant, err := targetContext()
			if err != nil {
				return err
			}

			config, err := loadClientConfig()
			if err != nil {
				return err
			}

			registry, err := orchclient.New(config)
			if err != nil {
				return err
			}

			session, err := registry.Session(cmd.Context(), account, tenant)
			if err != nil {
				return err
			}

			folders, err := session.Folders(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing folders: %w", err)
			}

			return renderList(folders, "Id", "DisplayName", "FullyQualifiedName")
		},
	}
}
