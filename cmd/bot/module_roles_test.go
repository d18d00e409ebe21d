package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatModuleRoles(t *testing.T) {
	require.Equal(t, "There are no module roles.", formatModuleRoles(nil))
	require.Equal(t, "Module roles:\n- <@&1>\n- <@&2>", formatModuleRoles([]int64{1, 2}))
}
