package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"ggp/networks"
	"ggp/statemachine"

	"github.com/stretchr/testify/require"
)

func TestOpenMachine(t *testing.T) {
	t.Run("builtin", func(t *testing.T) {
		sm, name, err := openMachine("builtin:pennies")
		require.NoError(t, err)
		require.Equal(t, "pennies", name)
		require.Equal(t, 2, sm.RoleCount())
	})

	t.Run("file", func(t *testing.T) {
		data, err := networks.Switch().Marshal()
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "switch.json")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		_, name, err := openMachine(path)
		require.NoError(t, err)
		require.Equal(t, "switch", name)
	})

	t.Run("unknown builtin", func(t *testing.T) {
		_, _, err := openMachine("builtin:go")
		require.Error(t, err)
	})
}

func TestOpenStateMachineWithGoals(t *testing.T) {
	goalNetwork = "builtin:pennies"
	t.Cleanup(func() { goalNetwork = "" })

	sm, _, err := openStateMachine("builtin:pennies")
	require.NoError(t, err)
	require.IsType(t, &statemachine.Goalless{}, sm)
}

func TestDescribe(t *testing.T) {
	sm, name, err := openMachine("builtin:pennies")
	require.NoError(t, err)

	var out bytes.Buffer
	describe(&out, name, sm)
	require.Contains(t, out.String(), "network pennies: 24 components, 2 bases, 2 roles")
	require.Contains(t, out.String(), "role 0 row: 2 inputs, 2 goals, legal [heads tails]")
	require.Contains(t, out.String(), "terminal: false")
}

func TestMatchCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"match", "builtin:pennies", "--games", "3", "--players", "legal"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "row: mean goal 100.0 over 3 games")
	require.Contains(t, out.String(), "column: mean goal 0.0 over 3 games")
}

func TestOpenCombined(t *testing.T) {
	t.Run("builtin", func(t *testing.T) {
		sm, name, err := openStateMachine("builtin:phases")
		require.NoError(t, err)
		require.Equal(t, "phases", name)
		require.IsType(t, &statemachine.Combined{}, sm)
	})

	t.Run("file", func(t *testing.T) {
		data, err := networks.Phases().Marshal()
		require.NoError(t, err)
		path := filepath.Join(t.TempDir(), "phases.json")
		require.NoError(t, os.WriteFile(path, data, 0o644))

		sm, name, err := openStateMachine(path)
		require.NoError(t, err)
		require.Equal(t, "phases", name)
		require.IsType(t, &statemachine.Combined{}, sm)
	})

	t.Run("refuses a goal network", func(t *testing.T) {
		goalNetwork = "builtin:pennies"
		t.Cleanup(func() { goalNetwork = "" })

		_, _, err := openStateMachine("builtin:phases")
		require.Error(t, err)
	})

	t.Run("plain networks fall through", func(t *testing.T) {
		sm, _, err := openStateMachine("builtin:pennies")
		require.NoError(t, err)
		require.IsType(t, &statemachine.Machine{}, sm)
	})
}

func TestMatchCommandCombined(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"match", "builtin:phases", "--games", "2", "--players", "random"})
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	require.NoError(t, rootCmd.Execute())
	require.Contains(t, out.String(), "player: mean goal 100.0 over 2 games")
}
