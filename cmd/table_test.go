package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gdocs-cli/gdocs/internal/docs"
)

func TestParseTableIndex(t *testing.T) {
	tests := []struct {
		name    string
		arg     string
		want    int
		wantErr bool
	}{
		{name: "first table", arg: "0", want: 0},
		{name: "third table", arg: "2", want: 2},
		{name: "negative", arg: "-1", wantErr: true},
		{name: "not a number", arg: "first", wantErr: true},
		{name: "empty", arg: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseTableIndex(tt.arg)
			if tt.wantErr {
				require.Error(t, err)
				var verr *docs.ValidationError
				assert.ErrorAs(t, err, &verr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableCommandsTakePositionalTableIndex(t *testing.T) {
	for _, name := range []string{"add-row", "delete-row", "add-column", "delete-column"} {
		t.Run(name, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{"table", name})
			require.NoError(t, err)

			assert.NoError(t, cmd.Args(cmd, []string{"doc-id", "0"}))
			assert.Error(t, cmd.Args(cmd, []string{"doc-id"}))
			assert.Error(t, cmd.Args(cmd, []string{"doc-id", "0", "extra"}))

			assert.Nil(t, cmd.Flags().Lookup("table"), "table index must be positional, not a flag")
		})
	}
}

func TestTableRowColumnFlags(t *testing.T) {
	tests := []struct {
		command string
		flags   []string
	}{
		{command: "add-row", flags: []string{"row", "above"}},
		{command: "delete-row", flags: []string{"row"}},
		{command: "add-column", flags: []string{"column", "left"}},
		{command: "delete-column", flags: []string{"column"}},
	}

	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			cmd, _, err := rootCmd.Find([]string{"table", tt.command})
			require.NoError(t, err)
			for _, flag := range tt.flags {
				assert.NotNil(t, cmd.Flags().Lookup(flag), "missing flag --%s", flag)
			}
		})
	}
}

func TestTableCreateDefaults(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"table", "create"})
	require.NoError(t, err)

	assert.Equal(t, "3", cmd.Flags().Lookup("rows").DefValue)
	assert.Equal(t, "3", cmd.Flags().Lookup("columns").DefValue)
	assert.Equal(t, "1", cmd.Flags().Lookup("index").DefValue)
}
