package flags

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegistry_Enabled(t *testing.T) {
	tests := []struct {
		name     string
		registry *Registry
		flag     string
		expected bool
	}{
		{name: "default history on", registry: New(nil), flag: FlagHistory, expected: true},
		{name: "configured off wins", registry: New(map[string]bool{FlagHistory: false}), flag: FlagHistory, expected: false},
		{name: "unknown flag is off", registry: New(nil), flag: "nope", expected: false},
		{name: "nil registry is off", registry: nil, flag: FlagMouse, expected: false},
		{name: "extra configured flag", registry: New(map[string]bool{"beta": true}), flag: "beta", expected: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.registry.Enabled(tt.flag))
		})
	}
}

func TestRegistry_AllIsCopy(t *testing.T) {
	r := New(map[string]bool{FlagMouse: false})
	all := r.All()
	all[FlagMouse] = true
	all["new"] = true

	require.False(t, r.Enabled(FlagMouse))
	require.False(t, r.Enabled("new"))
	require.Equal(t, map[string]bool{}, (*Registry)(nil).All())
}

func TestNew_DoesNotMutateDefaults(t *testing.T) {
	_ = New(map[string]bool{FlagHistory: false})
	require.True(t, Defaults[FlagHistory])
}

func TestRegistry_String(t *testing.T) {
	r := New(map[string]bool{FlagMouse: false})
	require.Equal(t, "history=on,mouse=off,repair-hints=on", r.String())
}
