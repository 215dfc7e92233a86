// Package session holds the browser state (current directory, listing,
// selection, navigation history, status line) and the command dispatcher
// that every key binding and typed command line goes through.
package session

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LFroesch/odyssey/internal/errors"
	"github.com/LFroesch/odyssey/internal/fileops"
	"github.com/LFroesch/odyssey/internal/listing"
	"github.com/LFroesch/odyssey/internal/logger"
	"github.com/LFroesch/odyssey/internal/selection"
)

// Status is the single message line. Each command overwrites it.
type Status struct {
	Text    string
	IsError bool
}

// Prompt is a command line waiting to be edited by the user. Cursor counts
// runes.
type Prompt struct {
	Value  string
	Cursor int
}

// Options configures a Session.
type Options struct {
	ShowHidden   bool
	Editor       string
	Shell        string
	Openers      map[string]string
	PreviewLines int
	Height       int

	Runner    Runner
	Clipboard Clipboard
	Opener    Opener
}

type gate struct {
	question string
	paths    []string
}

// Session is the state of one browser: the current directory and its
// listing, the selection over it, navigation history and the status line.
type Session struct {
	opts Options

	dir        string
	showHidden bool
	listing    *listing.Listing
	sel        *selection.Selection
	history    *listing.History
	status     Status

	gate     *gate
	prompt   *Prompt
	quit     bool
	farewell string

	commands map[string]handler
}

// New opens a session in dir.
func New(dir string, opts Options) (*Session, error) {
	if opts.Editor == "" {
		opts.Editor = "vim"
	}
	if opts.Shell == "" {
		opts.Shell = "sh"
	}
	if opts.PreviewLines <= 0 {
		opts.PreviewLines = 200
	}
	if opts.Runner == nil {
		opts.Runner = ForegroundRunner{}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = SystemClipboard{}
	}
	if opts.Opener == nil {
		opts.Opener = SystemOpener{}
	}

	s := &Session{
		opts:       opts,
		showHidden: opts.ShowHidden,
		sel:        selection.New(opts.Height),
		history:    listing.NewHistory(),
		commands:   commandTable(),
	}

	path := fileops.Canonical(expandHome(dir))
	l, err := listing.Scan(path, s.showHidden)
	if err != nil {
		return nil, err
	}
	s.dir = path
	s.listing = l
	s.sel.Reload(l.Len())
	return s, nil
}

// Dir returns the current directory
func (s *Session) Dir() string { return s.dir }

// Listing returns the current listing
func (s *Session) Listing() *listing.Listing { return s.listing }

// Selection returns the cursor and tags over the current listing
func (s *Session) Selection() *selection.Selection { return s.sel }

// Status returns the message left by the last command
func (s *Session) Status() Status { return s.status }

func (s *Session) ShowHidden() bool { return s.showHidden }

// Resize sets the number of visible listing rows
func (s *Session) Resize(height int) { s.sel.Resize(height) }

// Selected returns the entry under the cursor
func (s *Session) Selected() (listing.Entry, bool) {
	return s.listing.At(s.sel.Primary())
}

// Preview loads the preview of the entry under the cursor
func (s *Session) Preview() (listing.Preview, bool) {
	if _, ok := s.Selected(); !ok {
		return listing.Preview{}, false
	}
	return listing.LoadPreview(s.listing.Path(s.sel.Primary()), s.showHidden, s.opts.PreviewLines), true
}

// Quitting reports whether quit was dispatched, and the message to print
// after the terminal is restored
func (s *Session) Quitting() (bool, string) { return s.quit, s.farewell }

// TakePrompt returns the command line a command asked the user to edit,
// once.
func (s *Session) TakePrompt() (Prompt, bool) {
	if s.prompt == nil {
		return Prompt{}, false
	}
	p := *s.prompt
	s.prompt = nil
	return p, true
}

// AwaitingConfirmation returns the question of an open confirmation gate
func (s *Session) AwaitingConfirmation() (string, bool) {
	if s.gate == nil {
		return "", false
	}
	return s.gate.question, true
}

func (s *Session) setMessage(format string, args ...any) {
	s.status = Status{Text: fmt.Sprintf(format, args...)}
}

func (s *Session) fail(err error) {
	s.status = Status{Text: err.Error(), IsError: true}
}

// resolve turns a user path into an absolute one, relative to the current
// directory
func (s *Session) resolve(path string) string {
	path = expandHome(path)
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}
	return filepath.Clean(path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// reload rescans the current directory. With force unset an unchanged
// entry sequence keeps tags; anything else is a reload and clears them.
// A directory that disappeared is left for its nearest existing ancestor.
func (s *Session) reload(force bool) {
	l, err := listing.Scan(s.dir, s.showHidden)
	for err != nil {
		parent := filepath.Dir(s.dir)
		if parent == s.dir {
			logger.Error("cannot list %s: %v", s.dir, err)
			return
		}
		logger.Warn("%s is gone, moving to %s", s.dir, parent)
		s.dir = parent
		force = true
		l, err = listing.Scan(s.dir, s.showHidden)
	}

	if !force && s.listing.SameEntries(l) {
		s.listing = l
		return
	}
	s.listing = l
	s.sel.Reload(l.Len())
}

// jumpTo places the cursor on the entry at path when it is listed
func (s *Session) jumpTo(path string) {
	if filepath.Dir(path) != s.dir {
		return
	}
	if i := s.listing.Index(filepath.Base(path)); i >= 0 {
		s.sel.Jump(i)
	}
}

// targets returns the paths of the tagged entries, primary first
func (s *Session) targets() []string {
	indices := s.sel.Targets()
	paths := make([]string, 0, len(indices))
	for _, i := range indices {
		paths = append(paths, s.listing.Path(i))
	}
	return paths
}

// sources are the tagged entries, or the entry under the cursor when
// nothing is tagged
func (s *Session) sources() []string {
	if s.sel.HasTags() {
		return s.targets()
	}
	if _, ok := s.Selected(); ok {
		return []string{s.listing.Path(s.sel.Primary())}
	}
	return nil
}

func noSelection(op string) error {
	return errors.New(errors.NoSelection, op, "", "Cannot %s (No selected elements)", op)
}
