package shared

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var osc52Env = []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION", "TMUX", "STY"}

// clearEnv blanks the variables that steer clipboard selection.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range osc52Env {
		t.Setenv(k, "")
	}
	t.Setenv("TERM", "xterm-256color")
}

func TestShouldUseOSC52(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected bool
	}{
		{"no env vars set", map[string]string{}, false},
		{"SSH_TTY set", map[string]string{"SSH_TTY": "/dev/pts/0"}, true},
		{"SSH_CLIENT set", map[string]string{"SSH_CLIENT": "192.168.1.1 12345 22"}, true},
		{"SSH_CONNECTION set", map[string]string{"SSH_CONNECTION": "192.168.1.1 12345 192.168.1.2 22"}, true},
		{"TMUX set", map[string]string{"TMUX": "/tmp/tmux-1000/default,12345,0"}, true},
		{"STY set (GNU screen)", map[string]string{"STY": "12345.pts-0.hostname"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			require.Equal(t, tt.expected, shouldUseOSC52())
		})
	}
}

func TestCopy_OverSSHWritesOSC52(t *testing.T) {
	clearEnv(t)
	t.Setenv("SSH_TTY", "/dev/pts/0")
	var buf bytes.Buffer

	err := NewSystemClipboard(&buf).Copy("DE89370400440532013000")

	require.NoError(t, err)
	encoded := base64.StdEncoding.EncodeToString([]byte("DE89370400440532013000"))
	require.Equal(t, "\x1b]52;c;"+encoded+"\x07", buf.String())
}

func TestCopy_InsideTmuxUsesPassthrough(t *testing.T) {
	clearEnv(t)
	t.Setenv("TMUX", "/tmp/tmux-1000/default,1,0")
	var buf bytes.Buffer

	require.NoError(t, NewSystemClipboard(&buf).Copy("ISSUE-123"))

	require.Equal(t, "\x1bPtmux;\x1b\x1b]52;c;SVNTVUUtMTIz\x07\x1b\\", buf.String())
}

func TestCopy_MultilinePayloadIsEncoded(t *testing.T) {
	clearEnv(t)
	t.Setenv("SSH_CONNECTION", "1 2 3 4")
	var buf bytes.Buffer

	require.NoError(t, NewSystemClipboard(&buf).Copy("line1\nline2"))

	require.Contains(t, buf.String(), "bGluZTEKbGluZTI=")
	require.NotContains(t, buf.String(), "line1")
}

func TestMockClipboard(t *testing.T) {
	var m MockClipboard
	require.Empty(t, m.Last())

	require.NoError(t, m.Copy("a"))
	require.NoError(t, m.Copy("b"))
	require.Equal(t, "b", m.Last())
	require.Equal(t, 2, m.Count())

	m.Err = errors.New("no clipboard")
	require.Error(t, m.Copy("c"))
	require.Equal(t, 2, m.Count())
}
