package theme

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mockbanker/mockbanker/internal/kvstore"
)

func dark() bool  { return true }
func light() bool { return false }

func TestLoad(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name   string
		stored string
		opts   []Option
		want   Mode
	}{
		{name: "absent falls back to dark terminal", opts: []Option{WithDetector(dark)}, want: Dark},
		{name: "absent falls back to light terminal", opts: []Option{WithDetector(light)}, want: Light},
		{name: "stored wins over terminal", stored: "light", opts: []Option{WithDetector(dark)}, want: Light},
		{name: "malformed falls back", stored: "purple", opts: []Option{WithDetector(dark)}, want: Dark},
		{name: "forced wins over stored", stored: "light", opts: []Option{WithDetector(light), WithForced(Dark)}, want: Dark},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := kvstore.NewMemory()
			if tt.stored != "" {
				require.NoError(t, store.Set(ctx, Key, tt.stored))
			}
			require.Equal(t, tt.want, New(store, tt.opts...).Load(ctx))
		})
	}
}

func TestToggle_Persists(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemory()
	p := New(store, WithDetector(light))

	m, err := p.Toggle(ctx, p.Load(ctx))
	require.NoError(t, err)
	require.Equal(t, Dark, m)
	require.Equal(t, Dark, New(store, WithDetector(light)).Load(ctx))

	raw, _, _ := store.Get(ctx, Key)
	require.Equal(t, "dark", raw)

	m, err = p.Toggle(ctx, m)
	require.NoError(t, err)
	require.Equal(t, Light, m)
}

func TestParse(t *testing.T) {
	m, ok := Parse(" DARK ")
	require.True(t, ok)
	require.True(t, m.IsDark())
	_, ok = Parse("auto")
	require.False(t, ok)
}
