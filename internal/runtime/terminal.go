package runtime

import (
	"os"
	"sync"

	"github.com/moby/term"
)

// TerminalGuard remembers the terminal state at startup and puts it back on
// exit. Interrupted password prompts and interactive child processes can
// leave echo disabled otherwise.
type TerminalGuard struct {
	mu       sync.Mutex
	inFd     uintptr
	oldState *term.State
}

// NewTerminalGuard creates an empty guard.
func NewTerminalGuard() *TerminalGuard {
	return &TerminalGuard{}
}

// Save records the current stdin state. It does nothing when stdin is not a
// TTY or a state is already saved.
func (g *TerminalGuard) Save() {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.oldState != nil {
		return
	}

	inFd, isTerm := term.GetFdInfo(os.Stdin)
	if !isTerm {
		return
	}

	st, err := term.SaveState(inFd)
	if err != nil {
		return
	}
	g.inFd = inFd
	g.oldState = st
}

// Restore resets the terminal to the saved state. Safe to call multiple
// times and on a nil guard.
func (g *TerminalGuard) Restore() {
	if g == nil {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.oldState == nil {
		return
	}
	_ = term.RestoreTerminal(g.inFd, g.oldState)
	g.oldState = nil
	g.inFd = 0
}
