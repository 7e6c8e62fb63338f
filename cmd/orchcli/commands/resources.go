package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/roboworks-io/uipath-client/pkg/orchclient"
	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

// NewResourcesCommand creates the resources command.
func NewResourcesCommand() *cobra.Command {
	var (
		kindNames []string
		folderID  int64
	)

	cmd := &cobra.Command{
		Use:   "resources",
		Short: "Fetch multiple resource kinds for one folder",
		Long: `Fetches the requested resource kinds concurrently and reports one entry
per kind. A kind that fails to fetch is reported as an error entry without
affecting the others.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			account, tenant, err := targetContext()
			if err != nil {
				return err
			}

			kinds, err := parseKinds(kindNames)
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

			aggregator := orchclient.NewAggregator(0, 0)

			response, err := aggregator.Fetch(cmd.Context(), session, kinds, folderID)
			if err != nil {
				return fmt.Errorf("fetching resources: %w", err)
			}

			if viper.GetString("output") != OutputFormatTable {
				return renderStructured(response)
			}

			return renderAggregated(response)
		},
	}

	kindDefaults := []string{
		string(uipath.ResourceAssets),
		string(uipath.ResourceQueues),
		string(uipath.ResourceTriggers),
		string(uipath.ResourceProcesses),
	}

	cmd.Flags().StringSliceVar(&kindNames, "kinds", kindDefaults, "resource kinds to fetch")
	cmd.Flags().Int64Var(&folderID, "folder", 0, "folder ID to scope folder-scoped kinds to")

	return cmd
}

func parseKinds(names []string) ([]uipath.ResourceKind, error) {
	kinds := make([]uipath.ResourceKind, 0, len(names))

	for _, name := range names {
		kind, err := uipath.ParseResourceKind(strings.TrimSpace(name))
		if err != nil {
			return nil, err
		}

		kinds = append(kinds, kind)
	}

	return kinds, nil
}

// renderAggregated renders a per-kind summary table: item count for
// successes, the failure message otherwise.
func renderAggregated(response *uipath.AggregatedResponse) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header("Kind", "Status", "Items", "Detail")

	for _, kind := range response.Kinds() {
		result, _ := response.Result(kind)

		if result.Failed() {
			_ = table.Append(string(kind), "failed", notAvailable, result.Failure.Message)

			continue
		}

		_ = table.Append(string(kind), "ok", fmt.Sprintf("%d", len(result.Items)), "")
	}

	_ = table.Render()

	return nil
}
