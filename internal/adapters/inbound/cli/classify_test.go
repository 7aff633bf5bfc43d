package cli_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulekit/rulekit/internal/adapters/inbound/cli"
)

func TestClassifyCommand(t *testing.T) {
	root := t.TempDir()
	path := writeDoc(t, root, "a.mdc", "---\nalwaysApply: true\n---\nbody\n")

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"classify", path})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "always", strings.TrimSpace(buf.String()))
}

func TestClassifyCommand_JSON(t *testing.T) {
	root := t.TempDir()
	path := writeDoc(t, root, "a.mdc", "---\nglobs:\n  - \"*.go\"\n---\nbody\n")

	cmd := cli.NewRootCmdForTest()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"classify", path, "--json"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), `"rule_type": "auto"`)
}

func TestClassifyCommand_MissingFile(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetArgs([]string{"classify", "/nonexistent/a.mdc"})
	assert.Error(t, cmd.Execute())
}
