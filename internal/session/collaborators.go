package session

import (
	"os"
	"os/exec"

	"github.com/atotto/clipboard"
	"github.com/skratchdot/open-golang/open"
)

// Runner runs a child process in the foreground. The terminal belongs to
// the child until it exits; done is then called on the caller's loop.
type Runner interface {
	Run(cmd *exec.Cmd, done func(error))
}

// Clipboard is the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Opener hands a path to the desktop's default application.
type Opener interface {
	Open(path string) error
}

// ForegroundRunner runs the child attached to this process's terminal and
// waits for it.
type ForegroundRunner struct{}

func (ForegroundRunner) Run(cmd *exec.Cmd, done func(error)) {
	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}
	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}
	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}
	done(cmd.Run())
}

// SystemClipboard uses xclip, xsel, wl-clipboard, pbcopy or the Windows
// clipboard, whichever the platform has.
type SystemClipboard struct{}

func (SystemClipboard) ReadAll() (string, error) { return clipboard.ReadAll() }

func (SystemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemOpener starts xdg-open, open or start without waiting.
type SystemOpener struct{}

func (SystemOpener) Open(path string) error { return open.Start(path) }
