package consent

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPrompt_Lifecycle(t *testing.T) {
	var p Prompt
	require.Equal(t, Unavailable, p.State())

	_, ok := p.Begin()
	require.False(t, ok, "cannot prompt before available")

	p.MarkAvailable()
	require.Equal(t, Available, p.State())

	h, ok := p.Begin()
	require.True(t, ok)
	require.Equal(t, Prompting, p.State())

	_, ok = p.Begin()
	require.False(t, ok, "only one prompt at a time")

	require.True(t, h.Resolve(Accepted))
	require.Equal(t, Resolved, p.State())
	require.Equal(t, Accepted, p.Outcome())

	p.MarkAvailable()
	require.Equal(t, Resolved, p.State())
}

func TestHandle_ResolveOnce(t *testing.T) {
	var p Prompt
	p.MarkAvailable()
	h, _ := p.Begin()

	require.False(t, h.Resolve(Pending))
	require.True(t, h.Resolve(Dismissed))
	require.False(t, h.Resolve(Accepted))
	require.Equal(t, Dismissed, p.Outcome())
}

func TestHandle_ConcurrentResolve(t *testing.T) {
	var p Prompt
	p.MarkAvailable()
	h, _ := p.Begin()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			o := Accepted
			if i%2 == 0 {
				o = Dismissed
			}
			if h.Resolve(o) {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()
	require.Equal(t, int32(1), wins.Load())
}

func TestHandle_Wait(t *testing.T) {
	var p Prompt
	p.MarkAvailable()
	h, _ := p.Begin()

	go func() {
		time.Sleep(10 * time.Millisecond)
		h.Resolve(Accepted)
	}()
	o, err := h.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, Accepted, o)
}

func TestHandle_WaitCancelled(t *testing.T) {
	var p Prompt
	p.MarkAvailable()
	h, _ := p.Begin()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	o, err := h.Wait(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, Pending, o)
	require.Equal(t, Prompting, p.State())
}

func TestState_String(t *testing.T) {
	require.Equal(t, "prompting", Prompting.String())
	require.Equal(t, "unknown", State(99).String())
}
