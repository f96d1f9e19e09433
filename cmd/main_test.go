package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	root := newRootCmd()

	serve, _, err := root.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())

	down, _, err := root.Find([]string{"migrate", "down"})
	require.NoError(t, err)
	require.NoError(t, down.ParseFlags([]string{"--steps", "2"}))

	steps, err := down.Flags().GetInt("steps")
	require.NoError(t, err)
	assert.Equal(t, 2, steps)

	configFlag := root.PersistentFlags().Lookup("config")
	require.NotNil(t, configFlag)
	assert.Equal(t, ".env", configFlag.DefValue)
}
