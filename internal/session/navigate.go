package session

import (
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gobwas/glob"
	"github.com/sahilm/fuzzy"

	"github.com/LFroesch/odyssey/internal/cmdline"
	"github.com/LFroesch/odyssey/internal/errors"
	"github.com/LFroesch/odyssey/internal/fileops"
	"github.com/LFroesch/odyssey/internal/listing"
	"github.com/LFroesch/odyssey/internal/logger"
	"github.com/LFroesch/odyssey/internal/utils"
)

func (s *Session) cmdQuit(args []string) error {
	s.quit = true
	s.farewell = cmdline.Join(args)
	return nil
}

func (s *Session) cmdUp(args []string) error {
	s.sel.Move(-1)
	return nil
}

func (s *Session) cmdDown(args []string) error {
	s.sel.Move(1)
	return nil
}

func (s *Session) cmdTop(args []string) error {
	s.sel.Jump(0)
	return nil
}

func (s *Session) cmdBottom(args []string) error {
	s.sel.Jump(s.listing.Len() - 1)
	return nil
}

// set takes a 1-based row. Several arguments are summed.
func (s *Session) cmdSet(args []string) error {
	n := 0
	for _, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil {
			return errors.New(errors.OutOfBounds, "set", "", "%q cannot be converted to integer", arg)
		}
		n += v
	}
	return s.sel.Set(n)
}

// get opens the command prompt holding the remaining arguments, with the
// cursor at the rune offset given first (-1 for the end).
func (s *Session) cmdGet(args []string) error {
	if len(args) == 0 {
		s.prompt = &Prompt{}
		return nil
	}
	cursor, err := strconv.Atoi(args[0])
	if err != nil {
		return errors.New(errors.OutOfBounds, "get", "", "%q cannot be converted to integer", args[0])
	}
	value := cmdline.Join(args[1:])
	if n := utf8.RuneCountInString(value); cursor < 0 || cursor > n {
		cursor = n
	}
	s.prompt = &Prompt{Value: value, Cursor: cursor}
	return nil
}

func (s *Session) cmdCd(args []string) error {
	if len(args) == 0 {
		e, ok := s.Selected()
		if !ok {
			return errors.New(errors.NoSelection, "cd", "", "Cannot change directory (In empty directory)")
		}
		return s.ChangeDir(e.Name)
	}
	return s.ChangeDir(cmdline.Join(args))
}

// ChangeDir moves to target. Leaving a directory records the child under
// the cursor; entering one puts the cursor back on its recorded child, and
// going up to an ancestor selects the child that leads back down.
func (s *Session) ChangeDir(target string) error {
	path := s.resolve(target)
	info, err := os.Stat(path)
	if err != nil {
		if os.IsPermission(err) {
			return errors.Wrap(errors.PermissionDenied, "cd", path, err, "Cannot change directory %q (Permission denied)", target)
		}
		return errors.Wrap(errors.PathNotFound, "cd", path, err, "Cannot change directory %q (No such file or directory)", target)
	}
	if !info.IsDir() {
		return errors.New(errors.NotDirectory, "cd", path, "Cannot change directory %q (Not a directory)", target)
	}

	path = fileops.Canonical(path)
	l, err := listing.Scan(path, s.showHidden)
	if err != nil {
		return errors.Wrap(errors.KindOf(err), "cd", path, err, "Cannot change directory %q (%s)", target, reason(err))
	}

	old := s.dir
	if e, ok := s.Selected(); ok {
		s.history.Remember(old, e.Name)
	}
	if child, ok := listing.ChildOf(path, old); ok {
		s.history.Remember(path, child)
	}

	s.dir = path
	s.listing = l
	s.sel.Reload(l.Len())
	s.sel.Jump(s.history.Restore(l))
	logger.Debug("cd %s -> %s", old, path)
	return nil
}

func reason(err error) string {
	switch errors.KindOf(err) {
	case errors.PermissionDenied:
		return "Permission denied"
	case errors.NotDirectory:
		return "Not a directory"
	default:
		return "No such file or directory"
	}
}

func (s *Session) cmdHidden(args []string) error {
	s.showHidden = !s.showHidden
	s.reload(true)
	s.sel.Jump(0)
	return nil
}

func (s *Session) cmdRefresh(args []string) error {
	s.reload(true)
	return nil
}

// open enters directories, runs the opener configured for a file's
// extension, and falls back to the editor.
func (s *Session) cmdOpen(args []string) error {
	target, err := s.argOrSelected("open", args)
	if err != nil {
		return err
	}
	path := s.resolve(target)
	exists, isDir := fileops.Exists(path)
	if !exists {
		return errors.New(errors.PathNotFound, "open", path, "Cannot open %q (No such file or directory)", target)
	}
	if isDir {
		return s.ChangeDir(path)
	}

	if line, ok := utils.OpenerFor(s.opts.Openers, path); ok {
		s.run("open", s.shellCommand(line))
		return nil
	}
	s.run("open", s.editorCommand(path))
	return nil
}

// xdg hands the entry to the desktop's default application.
func (s *Session) cmdXdg(args []string) error {
	target, err := s.argOrSelected("open", args)
	if err != nil {
		return err
	}
	path := s.resolve(target)
	if exists, _ := fileops.Exists(path); !exists {
		return errors.New(errors.PathNotFound, "open", path, "Cannot open %q (No such file or directory)", target)
	}
	if err := s.opts.Opener.Open(path); err != nil {
		return errors.Wrap(errors.ChildProcessFailure, "open", path, err, "Cannot open %q (%v)", target, err)
	}
	return nil
}

func (s *Session) argOrSelected(op string, args []string) (string, error) {
	if len(args) > 0 {
		return cmdline.Join(args), nil
	}
	e, ok := s.Selected()
	if !ok {
		return "", errors.New(errors.NoSelection, op, "", "Cannot %s (In empty directory)", op)
	}
	return e.Name, nil
}

// select with no argument toggles the tag under the cursor and moves down
// one row. Glob patterns tag every matching entry.
func (s *Session) cmdSelect(args []string) error {
	if len(args) == 0 {
		s.sel.ToggleTag()
		s.sel.Move(1)
		return nil
	}

	patterns := make([]glob.Glob, 0, len(args))
	for _, arg := range args {
		g, err := glob.Compile(arg)
		if err != nil {
			return errors.Wrap(errors.InvalidArgument, "select", "", err, "Invalid pattern %q", arg)
		}
		patterns = append(patterns, g)
	}

	matched := 0
	for i, e := range s.listing.Entries {
		for _, g := range patterns {
			if g.Match(e.Name) {
				s.sel.Tag(i)
				matched++
				break
			}
		}
	}
	if matched == 0 {
		return errors.New(errors.PathNotFound, "select", "", "No entries match %s", strings.Join(args, " "))
	}
	s.setMessage("%d selected", matched)
	return nil
}

// find moves the cursor to the best fuzzy match for the query.
func (s *Session) cmdFind(args []string) error {
	query := cmdline.Join(args)
	if query == "" {
		return errors.New(errors.InvalidArgument, "find", "", "Cannot find (No query)")
	}

	names := make([]string, s.listing.Len())
	for i, e := range s.listing.Entries {
		names[i] = e.Name
	}
	matches := fuzzy.Find(query, names)
	if len(matches) == 0 {
		return errors.New(errors.PathNotFound, "find", "", "No match for %q", query)
	}
	s.sel.Jump(matches[0].Index)
	return nil
}
