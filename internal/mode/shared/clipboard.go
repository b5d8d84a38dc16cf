// Package shared provides services shared by the tab controllers.
package shared

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
)

// Clipboard defines the interface for clipboard operations.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard copies through the OS clipboard and falls back to an
// OSC 52 escape sequence, which the terminal applies locally even over SSH.
type SystemClipboard struct {
	out io.Writer
}

// NewSystemClipboard writes OSC 52 sequences to out, usually os.Stderr since
// Bubble Tea owns stdout.
func NewSystemClipboard(out io.Writer) SystemClipboard {
	return SystemClipboard{out: out}
}

// Copy copies text to the clipboard.
func (c SystemClipboard) Copy(text string) error {
	if !shouldUseOSC52() && !clipboard.Unsupported {
		if err := clipboard.WriteAll(text); err == nil {
			return nil
		}
	}
	return c.copyOSC52(text)
}

func (c SystemClipboard) copyOSC52(text string) error {
	out := c.out
	if out == nil {
		out = os.Stderr
	}
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case os.Getenv("STY") != "" || strings.HasPrefix(os.Getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	_, err := seq.WriteTo(out)
	return err
}

// shouldUseOSC52 reports whether the OS clipboard would be the wrong one:
// over SSH it belongs to the remote host, and multiplexers may be detached.
func shouldUseOSC52() bool {
	for _, env := range []string{"SSH_TTY", "SSH_CLIENT", "SSH_CONNECTION", "TMUX", "STY"} {
		if os.Getenv(env) != "" {
			return true
		}
	}
	return false
}

// MockClipboard records copied text for tests.
type MockClipboard struct {
	mu     sync.Mutex
	copied []string
	Err    error
}

// Copy records text and returns Err.
func (m *MockClipboard) Copy(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.copied = append(m.copied, text)
	return nil
}

// Last returns the most recent copied text.
func (m *MockClipboard) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.copied) == 0 {
		return ""
	}
	return m.copied[len(m.copied)-1]
}

// Count returns how many copies succeeded.
func (m *MockClipboard) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.copied)
}
