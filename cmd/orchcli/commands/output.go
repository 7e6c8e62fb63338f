package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	defaultJSONIndent = "  "

	notAvailable = "N/A"
)

// renderJSON writes v as indented JSON to stdout.
func renderJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", defaultJSONIndent)

	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	return nil
}

// renderYAML writes v as YAML to stdout.
func renderYAML(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	_, _ = os.Stdout.Write(data)

	return nil
}

// renderStructured renders v in the configured non-table format.
func renderStructured(v interface{}) error {
	if viper.GetString("output") == OutputFormatYAML {
		return renderYAML(v)
	}

	return renderJSON(v)
}

// recordField extracts a top-level field from a raw OData record, formatted
// as a display string.
func recordField(raw json.RawMessage, field string) string {
	var record map[string]interface{}
	if err := json.Unmarshal(raw, &record); err != nil {
		return notAvailable
	}

	value, ok := record[field]
	if !ok || value == nil {
		return notAvailable
	}

	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}

		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// renderRecordTable renders raw OData records as a table with one column per
// requested field.
func renderRecordTable(items []json.RawMessage, fields ...string) error {
	if len(items) == 0 {
		_, _ = os.Stdout.WriteString("No records found\n")

		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)

	headers := make([]interface{}, len(fields))
	for i, field := range fields {
		headers[i] = field
	}

	table.Header(headers...)

	for _, item := range items {
		row := make([]interface{}, len(fields))
		for i, field := range fields {
			row[i] = recordField(item, field)
		}

		_ = table.Append(row...)
	}

	_ = table.Render()

	return nil
}

// renderList renders an OData collection in the configured output format.
func renderList(list *uipath.ODataList, fields ...string) error {
	if viper.GetString("output") != OutputFormatTable {
		return renderStructured(list)
	}

	return renderRecordTable(list.Value, fields...)
}
