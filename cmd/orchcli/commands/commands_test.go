package commands

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roboworks-io/uipath-client/pkg/uipath"
)

func TestNewFoldersCommand(t *testing.T) {
	cmd := NewFoldersCommand()
	assert.Equal(t, "folders", cmd.Use)
	assert.NotNil(t, cmd.RunE)
}

func TestNewResourcesCommand(t *testing.T) {
	cmd := NewResourcesCommand()
	assert.Equal(t, "resources", cmd.Use)
	assert.NotNil(t, cmd.RunE)

	kindsFlag := cmd.Flags().Lookup("kinds")
	require.NotNil(t, kindsFlag)

	folderFlag := cmd.Flags().Lookup("folder")
	require.NotNil(t, folderFlag)
	assert.Equal(t, "0", folderFlag.DefValue)
}

func TestNewLibrariesCommand(t *testing.T) {
	cmd := NewLibrariesCommand()
	assert.Equal(t, "libraries", cmd.Use)

	subcommands := cmd.Commands()
	assert.Len(t, subcommands, 3)

	var commandNames []string
	for _, subcmd := range subcommands {
		commandNames = append(commandNames, subcmd.Name())
	}

	assert.Contains(t, commandNames, "list")
	assert.Contains(t, commandNames, "versions")
	assert.Contains(t, commandNames, "download")
}

func TestNewVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3", "abc123", "2026-01-01")
	assert.Equal(t, "version", cmd.Use)
	assert.NotNil(t, cmd.Run)
}

func TestParseKinds(t *testing.T) {
	t.Run("parses and trims kind names", func(t *testing.T) {
		kinds, err := parseKinds([]string{"assets", " queues ", "triggers"})
		require.NoError(t, err)
		assert.Equal(t, []uipath.ResourceKind{
			uipath.ResourceAssets,
			uipath.ResourceQueues,
			uipath.ResourceTriggers,
		}, kinds)
	})

	t.Run("rejects unknown names", func(t *testing.T) {
		_, err := parseKinds([]string{"assets", "widgets"})
		require.ErrorIs(t, err, uipath.ErrUnknownResourceKind)
	})
}

func TestRecordField(t *testing.T) {
	record := json.RawMessage(`{"Id":42,"Name":"billing","Active":true,"Rate":1.5,"Empty":null}`)

	assert.Equal(t, "42", recordField(record, "Id"))
	assert.Equal(t, "billing", recordField(record, "Name"))
	assert.Equal(t, "true", recordField(record, "Active"))
	assert.Equal(t, "1.5", recordField(record, "Rate"))
	assert.Equal(t, notAvailable, recordField(record, "Empty"))
	assert.Equal(t, notAvailable, recordField(record, "Missing"))
	assert.Equal(t, notAvailable, recordField(json.RawMessage(`not-json`), "Id"))
}
