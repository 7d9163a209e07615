package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewRootCommand_RegistersExpectedSubcommands(t *testing.T) {
	root := NewRootCommand()

	names := make(map[string]bool)
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}

	assert.True(t, names["run"])
	assert.True(t, names["validate"])
	assert.True(t, names["rules"])
}

func TestNewRootCommand_HasProjectRootAndVerboseFlags(t *testing.T) {
	root := NewRootCommand()
	assert.NotNil(t, root.PersistentFlags().Lookup("project-root"))
	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
}

func TestSetVersionInfo_UpdatesVersionString(t *testing.T) {
	SetVersionInfo("1.2.3")
	defer SetVersionInfo("dev")
	root := NewRootCommand()
	assert.Equal(t, "1.2.3", root.Version)
}
