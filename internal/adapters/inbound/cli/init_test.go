package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulekit/rulekit/internal/adapters/inbound/cli"
)

func TestInitCommand_CreatesConfig(t *testing.T) {
	root := t.TempDir()

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"init", root})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Created .rulekit.yaml")

	data, err := os.ReadFile(filepath.Join(root, ".rulekit.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `pattern: "*.mdc"`)
	assert.Contains(t, string(data), "concurrency:")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".rulekit.yaml"), []byte("pattern: \"*.rule\"\n"), 0644))

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"init", root})
	assert.Error(t, cmd.Execute())
}

func TestInitCommand_ForceOverwrites(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, ".rulekit.yaml"), []byte("pattern: \"*.rule\"\n"), 0644))

	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"init", root, "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(filepath.Join(root, ".rulekit.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `pattern: "*.mdc"`)
}
