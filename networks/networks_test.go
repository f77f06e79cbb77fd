package networks_test

import (
	"testing"

	"ggp/loader"
	"ggp/networks"

	"github.com/stretchr/testify/require"
)

func TestBuiltinsBuild(t *testing.T) {
	require.Equal(t, []string{"churn", "pennies", "switch"}, networks.Names())

	for _, name := range networks.Names() {
		t.Run(name, func(t *testing.T) {
			d, err := networks.ByName(name)
			require.NoError(t, err)
			require.Len(t, d.Components, d.Create.NumComponents)
			require.Len(t, d.Outputs, d.Create.NumOutputs)

			sm, err := loader.Build(d)
			require.NoError(t, err)
			require.True(t, sm.Initialised())
		})
	}
}

func TestByNameUnknown(t *testing.T) {
	_, err := networks.ByName("chess")
	require.Error(t, err)
}

func TestDescribeSharesTerminator(t *testing.T) {
	d := networks.Churn()
	require.Equal(t, []int{0, -1}, d.Outputs[0])
	for _, c := range d.Components {
		if c[4] == 0 {
			require.Equal(t, 0, c[3], "Gates without outputs should point at the shared terminator")
		}
	}
}

func TestCombinedBuiltins(t *testing.T) {
	require.Equal(t, []string{"phases"}, networks.CombinedNames())

	d, ok := networks.CombinedByName("phases")
	require.True(t, ok)
	require.Len(t, d.Controls, d.NumControls)
	for _, control := range d.Controls {
		_, err := loader.Build(&control.Description)
		require.NoError(t, err)
	}

	_, ok = networks.CombinedByName("pennies")
	require.False(t, ok)
}
