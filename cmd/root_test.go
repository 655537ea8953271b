package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCommand_Registered(t *testing.T) {
	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "generate" {
			found = true
		}
	}
	assert.True(t, found, "generate subcommand must be attached to root")
}

func TestGenerateCommand_FlagDefaults(t *testing.T) {
	defaults := map[string]string{
		"year":     "2021",
		"event":    "Abu Dhabi",
		"session":  "R",
		"log":      "info",
		"data-dir": "data",
		"output":   "data/f1_emotions_data.json",
		"config":   "",
	}
	for name, want := range defaults {
		flag := generateCmd.Flags().Lookup(name)
		require.NotNil(t, flag, "flag %q", name)
		assert.Equal(t, want, flag.DefValue, "flag %q", name)
	}
}
