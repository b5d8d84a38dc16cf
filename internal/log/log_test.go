package log

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWrite_Format(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	Warn(CatHistory, "malformed blob", "key", "history", "len", 3)
	line := buf.String()
	require.Contains(t, line, "[WARN] [history] malformed blob key=history len=3")
	require.True(t, line[len(line)-1] == '\n')
}

func TestWrite_OddFields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	Info(CatGen, "batch", "orphan")
	require.Contains(t, buf.String(), "orphan=<missing>")
}

func TestErrorErr(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	ErrorErr(CatDB, "write failed", errors.New("disk full"))
	ErrorErr(CatDB, "write failed", nil)
	require.Contains(t, buf.String(), "error=disk full")
	require.Contains(t, buf.String(), "error=<nil>")
}

func TestMinLevelAndEnabled(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	SetMinLevel(LevelWarn)
	Debug(CatUI, "hidden")
	Info(CatUI, "hidden")
	require.Empty(t, buf.String())

	SetEnabled(false)
	Error(CatUI, "hidden")
	require.Empty(t, buf.String())
}

func TestNoLoggerIsSilent(t *testing.T) {
	defaultLogger = nil
	require.NotPanics(t, func() { Info(CatGen, "nothing") })
	require.Nil(t, NewListener(context.Background()))
}

func TestListenerReceivesEntries(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	t.Cleanup(func() { defaultLogger = nil })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l := NewListener(ctx)
	require.NotNil(t, l)

	Info(CatExport, "saved", "file", "ibans.csv")

	done := make(chan any, 1)
	go func() { done <- l.Listen()() }()
	select {
	case msg := <-done:
		ev, ok := msg.(LogEvent)
		require.True(t, ok)
		require.Contains(t, ev.Payload, "file=ibans.csv")
	case <-time.After(time.Second):
		t.Fatal("no log event")
	}
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, LevelInfo, ParseLevel("INFO"))
	require.Equal(t, LevelWarn, ParseLevel("warning"))
	require.Equal(t, LevelError, ParseLevel("error"))
	require.Equal(t, LevelDebug, ParseLevel("whatever"))
}
