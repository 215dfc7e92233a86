package session

import (
	"os/exec"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/LFroesch/odyssey/internal/cmdline"
	"github.com/LFroesch/odyssey/internal/errors"
	"github.com/LFroesch/odyssey/internal/fileops"
	"github.com/LFroesch/odyssey/internal/logger"
)

func (s *Session) shellCommand(line string) *exec.Cmd {
	return exec.Command(s.opts.Shell, "-c", line)
}

// editorCommand opens paths in the configured editor, which may carry its
// own arguments ("code -w").
func (s *Session) editorCommand(paths ...string) *exec.Cmd {
	fields := strings.Fields(s.opts.Editor)
	if len(fields) == 0 {
		fields = []string{"vim"}
	}
	return exec.Command(fields[0], append(fields[1:], paths...)...)
}

// mkdir creates each missing directory, parents included. Existing names
// are skipped.
func (s *Session) cmdMkdir(args []string) error {
	if len(args) == 0 {
		return errors.New(errors.InvalidArgument, "mkdir", "", "Cannot create directory (No filename)")
	}

	var first string
	for _, name := range args {
		path := s.resolve(name)
		if exists, _ := fileops.Exists(path); exists {
			continue
		}
		if err := fileops.MakeDirs(path); err != nil {
			s.reload(true)
			return err
		}
		if first == "" {
			first = path
		}
	}
	s.reload(true)
	if first != "" {
		s.jumpTo(first)
	}
	return nil
}

// touch opens every new name in one editor session; saving creates them.
func (s *Session) cmdTouch(args []string) error {
	if len(args) == 0 {
		return errors.New(errors.InvalidArgument, "create file", "", "Cannot create file (No filename)")
	}

	paths := make([]string, 0, len(args))
	for _, name := range args {
		path := s.resolve(name)
		if exists, _ := fileops.Exists(path); exists {
			return fileops.ExistsError("create file", name, path)
		}
		paths = append(paths, path)
	}
	s.run("touch", s.editorCommand(paths...))
	return nil
}

// transfer runs mv or cp with arguments: the last one is the destination,
// the others are sources. A lone existing destination takes the tagged
// entries, or the entry under the cursor. A lone new name always applies
// to the entry under the cursor, as the rename prompt shows it.
func (s *Session) transfer(op fileops.Op, args []string) error {
	dst := s.resolve(args[len(args)-1])
	var sources []string
	switch {
	case len(args) > 1:
		for _, arg := range args[:len(args)-1] {
			sources = append(sources, s.resolve(arg))
		}
	default:
		if exists, _ := fileops.Exists(dst); exists {
			sources = s.sources()
		} else if _, ok := s.Selected(); ok {
			sources = []string{s.listing.Path(s.sel.Primary())}
		}
	}

	plan, err := fileops.PlanTransfer(op, sources, dst)
	if err != nil {
		return err
	}
	logger.Info("%s %d entries to %s", op, len(plan), dst)
	err = fileops.Apply(op, plan)
	s.reload(true)
	if err == nil && len(plan) == 1 {
		s.jumpTo(plan[0].Dst)
	}
	return err
}

// mv without arguments opens the prompt on "mv <name>" with the cursor
// before the extension.
func (s *Session) cmdMove(args []string) error {
	if len(args) > 0 {
		return s.transfer(fileops.MoveOp, args)
	}
	e, ok := s.Selected()
	if !ok {
		return noSelection("move")
	}
	stem := strings.TrimSuffix(e.Name, filepath.Ext(e.Name))
	if stem == "" {
		stem = e.Name
	}
	s.openMovePrompt(e.Name, utf8.RuneCountInString("mv "+cmdline.Quote(stem)))
	return nil
}

func (s *Session) cmdBeginMove(args []string) error {
	e, ok := s.Selected()
	if !ok {
		return noSelection("move")
	}
	s.openMovePrompt(e.Name, utf8.RuneCountInString("mv "))
	return nil
}

func (s *Session) cmdEndMove(args []string) error {
	e, ok := s.Selected()
	if !ok {
		return noSelection("move")
	}
	s.openMovePrompt(e.Name, -1)
	return nil
}

func (s *Session) openMovePrompt(name string, cursor int) {
	value := "mv " + cmdline.Quote(name)
	if cursor < 0 {
		cursor = utf8.RuneCountInString(value)
	}
	s.prompt = &Prompt{Value: value, Cursor: cursor}
}

// cp without arguments puts the absolute paths of the tagged entries on
// the clipboard, one per line.
func (s *Session) cmdCopy(args []string) error {
	if len(args) > 0 {
		return s.transfer(fileops.CopyOp, args)
	}
	if !s.sel.HasTags() {
		return noSelection("copy")
	}
	paths := s.targets()
	if err := s.writeClipboard(strings.Join(paths, "\n")); err != nil {
		return err
	}
	s.sel.ClearTags()
	s.setMessage("%d paths copied", len(paths))
	return nil
}

func (s *Session) cmdCopyDir(args []string) error {
	if err := s.writeClipboard(s.dir); err != nil {
		return err
	}
	s.setMessage("copied %s", s.dir)
	return nil
}

func (s *Session) writeClipboard(text string) error {
	if err := s.opts.Clipboard.WriteAll(text); err != nil {
		return errors.Wrap(errors.ChildProcessFailure, "clipboard", "", err, "Cannot access clipboard (%v)", err)
	}
	return nil
}

// paste copies every path on the clipboard into the current directory.
// Each line is checked and copied on its own; a bad line is reported and
// skipped.
func (s *Session) cmdPaste(args []string) error {
	text, err := s.opts.Clipboard.ReadAll()
	if err != nil {
		return errors.Wrap(errors.ChildProcessFailure, "clipboard", "", err, "Cannot access clipboard (%v)", err)
	}

	var failures []error
	pasted := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		plan, err := fileops.PlanTransfer(fileops.CopyOp, []string{s.resolve(line)}, s.dir)
		if err == nil {
			err = fileops.Apply(fileops.CopyOp, plan)
		}
		if err != nil {
			logger.Warn("paste %s: %v", line, err)
			failures = append(failures, err)
			continue
		}
		pasted++
	}
	s.reload(true)

	switch {
	case len(failures) == 1:
		return failures[0]
	case len(failures) > 1:
		return errors.Wrap(errors.KindOf(failures[0]), "paste", "", failures[0],
			"%s (and %d more)", failures[0].Error(), len(failures)-1)
	case pasted == 0:
		return errors.New(errors.NoSelection, "paste", "", "Cannot paste (Clipboard is empty)")
	}
	s.setMessage("%d pasted", pasted)
	return nil
}

// rm asks before deleting recursively. Without arguments it removes the
// tagged entries.
func (s *Session) cmdRemove(args []string) error {
	var paths []string
	if len(args) == 0 {
		if !s.sel.HasTags() {
			return noSelection("remove")
		}
		paths = s.targets()
	} else {
		for _, arg := range args {
			path := s.resolve(arg)
			if exists, _ := fileops.Exists(path); !exists {
				return errors.New(errors.PathNotFound, "remove", path, "Cannot remove %q (No such file or directory)", arg)
			}
			paths = append(paths, path)
		}
	}
	s.gate = &gate{question: "are you sure > ", paths: paths}
	return nil
}

// trash moves the entries to the system trash without asking.
func (s *Session) cmdTrash(args []string) error {
	var paths []string
	if len(args) == 0 {
		paths = s.sources()
		if len(paths) == 0 {
			return noSelection("trash")
		}
	} else {
		for _, arg := range args {
			path := s.resolve(arg)
			if exists, _ := fileops.Exists(path); !exists {
				return errors.New(errors.PathNotFound, "trash", path, "Cannot trash %q (No such file or directory)", arg)
			}
			paths = append(paths, path)
		}
	}

	defer s.reload(true)
	for _, path := range paths {
		logger.Info("trashing %s", path)
		if err := fileops.MoveToTrash(path); err != nil {
			return err
		}
	}
	return nil
}

func (s *Session) cmdShell(args []string) error {
	line := cmdline.Join(args)
	if strings.TrimSpace(line) == "" {
		return errors.New(errors.InvalidArgument, "sh", "", "Cannot run (No command)")
	}
	s.run("sh", s.shellCommand(line))
	return nil
}

// compress packs the tagged entries into the named archive. The archive
// type follows from its extension.
func (s *Session) cmdCompress(args []string) error {
	if !s.sel.HasTags() {
		return noSelection("compress")
	}
	name := cmdline.Join(args)
	path := s.resolve(name)
	if exists, _ := fileops.Exists(path); name != "" && exists {
		return fileops.ExistsError("compress", name, path)
	}

	var members []string
	for _, target := range s.targets() {
		members = append(members, filepath.Base(target))
	}
	cmd, err := fileops.CompressCommand(s.dir, name, members)
	if err != nil {
		return err
	}
	s.sel.ClearTags()
	s.run("compress", cmd)
	return nil
}

// extract unpacks the archive under the cursor into a new directory named
// after it.
func (s *Session) cmdExtract(args []string) error {
	e, ok := s.Selected()
	if !ok {
		return noSelection("extract")
	}
	if e.IsDir() || !fileops.IsArchive(e.Name) {
		return errors.New(errors.InvalidArgument, "extract", e.Name, "Cannot extract %q (Not a compressed file)", e.Name)
	}

	base := fileops.ArchiveBase(e.Name)
	into := s.resolve(base)
	if exists, _ := fileops.Exists(into); exists {
		return fileops.ExistsError("extract to", base, into)
	}
	cmd, err := fileops.ExtractCommand(s.resolve(e.Name), into)
	if err != nil {
		return err
	}
	if err := fileops.MakeDirs(into); err != nil {
		return err
	}
	s.run("extract", cmd)
	return nil
}
