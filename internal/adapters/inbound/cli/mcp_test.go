package cli_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rulekit/rulekit/internal/adapters/inbound/cli"
)

func TestMCPCommandExists(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"mcp", "--help"})
	assert.NoError(t, cmd.Execute())
}

func TestMCPServeCommandExists(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"mcp", "serve", "--help"})
	assert.NoError(t, cmd.Execute())
}
