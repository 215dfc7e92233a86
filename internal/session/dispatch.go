package session

import (
	"os/exec"
	"strings"

	"github.com/LFroesch/odyssey/internal/cmdline"
	"github.com/LFroesch/odyssey/internal/errors"
	"github.com/LFroesch/odyssey/internal/fileops"
	"github.com/LFroesch/odyssey/internal/logger"
)

type handler func(s *Session, args []string) error

func commandTable() map[string]handler {
	return map[string]handler{
		"q":        (*Session).cmdQuit,
		"quit":     (*Session).cmdQuit,
		"up":       (*Session).cmdUp,
		"down":     (*Session).cmdDown,
		"top":      (*Session).cmdTop,
		"bottom":   (*Session).cmdBottom,
		"set":      (*Session).cmdSet,
		"get":      (*Session).cmdGet,
		"cd":       (*Session).cmdCd,
		"hidden":   (*Session).cmdHidden,
		"open":     (*Session).cmdOpen,
		"xdg":      (*Session).cmdXdg,
		"select":   (*Session).cmdSelect,
		"find":     (*Session).cmdFind,
		"refresh":  (*Session).cmdRefresh,
		"mkdir":    (*Session).cmdMkdir,
		"touch":    (*Session).cmdTouch,
		"mv":       (*Session).cmdMove,
		"bmv":      (*Session).cmdBeginMove,
		"emv":      (*Session).cmdEndMove,
		"cp":       (*Session).cmdCopy,
		"cpdir":    (*Session).cmdCopyDir,
		"paste":    (*Session).cmdPaste,
		"rm":       (*Session).cmdRemove,
		"trash":    (*Session).cmdTrash,
		"sh":       (*Session).cmdShell,
		"compress": (*Session).cmdCompress,
		"extract":  (*Session).cmdExtract,
	}
}

// Dispatch runs one command line. Failures end up on the status line; the
// listing is rescanned afterwards whatever happened.
func (s *Session) Dispatch(line string) {
	if s.gate != nil {
		s.Confirm("")
	}
	s.status = Status{}

	args, err := cmdline.SplitStrict(line)
	if err != nil {
		logger.Warn("parsing %q: %v", line, err)
	}

	if name := args[0]; name != "" {
		if h, ok := s.commands[name]; !ok {
			err = errors.New(errors.UnknownCommand, "dispatch", "", "Command %q not found.", name)
		} else {
			logger.Debug("dispatch %q", line)
			err = h(s, args[1:])
		}
		if err != nil {
			logger.Warn("command %q failed: %v", line, err)
			s.fail(err)
		}
	}

	s.reload(false)
}

// Confirm answers the open confirmation gate. Only "y" or "yes" accepts.
func (s *Session) Confirm(answer string) {
	g := s.gate
	if g == nil {
		return
	}
	s.gate = nil
	s.status = Status{}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
	default:
		s.setMessage("ignored.")
		return
	}

	for _, path := range g.paths {
		logger.Info("removing %s", path)
		if err := fileops.Remove(path); err != nil {
			logger.Warn("remove failed: %v", err)
			s.fail(err)
			break
		}
	}
	s.reload(true)
}

// run hands cmd to the runner. The listing is reloaded once the child has
// exited so whatever it changed shows up.
func (s *Session) run(op string, cmd *exec.Cmd) {
	if cmd.Dir == "" {
		cmd.Dir = s.dir
	}
	logger.Info("running %s in %s", strings.Join(cmd.Args, " "), cmd.Dir)
	s.opts.Runner.Run(cmd, func(err error) {
		if err != nil {
			logger.Warn("%s: %v", op, err)
			s.fail(errors.Wrap(errors.ChildProcessFailure, op, "", err, "%s: %v", op, err))
		}
		s.reload(true)
	})
}
