// Package fileops holds the filesystem primitives behind the file commands.
// Multi-path operations are split into a plan step that checks every
// precondition against the current disk state and an apply step that
// mutates; nothing is touched unless the whole plan is valid.
package fileops

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"syscall"

	"github.com/LFroesch/odyssey/internal/errors"
	"github.com/LFroesch/odyssey/internal/utils"
)

// Op is a transfer kind.
type Op int

const (
	MoveOp Op = iota
	CopyOp
)

func (o Op) String() string {
	if o == CopyOp {
		return "copy"
	}
	return "move"
}

// Transfer is one planned source → target pair.
type Transfer struct {
	Src string
	Dst string
}

// FormatError classifies an OS error into the command error taxonomy
func FormatError(err error, path, op string) error {
	if err == nil {
		return nil
	}
	var classified *errors.Error
	if errors.As(err, &classified) {
		return err
	}

	reason := err.Error()
	var pathErr *os.PathError
	if errors.As(err, &pathErr) {
		reason = pathErr.Err.Error()
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) {
		reason = linkErr.Err.Error()
	}

	switch {
	case os.IsNotExist(err):
		return errors.Wrap(errors.PathNotFound, op, path, err, "Cannot %s %q (No such file or directory)", op, path)
	case os.IsExist(err):
		return errors.Wrap(errors.PathExists, op, path, err, "Cannot %s %q (File exists)", op, path)
	case os.IsPermission(err):
		return errors.Wrap(errors.PermissionDenied, op, path, err, "Cannot %s %q (Permission denied)", op, path)
	default:
		return errors.Wrap(errors.Unknown, op, path, err, "Cannot %s %q (%s)", op, path, reason)
	}
}

// Exists reports whether path exists (without following a final symlink)
// and whether it is a directory
func Exists(path string) (exists, isDir bool) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, false
	}
	if info.Mode()&os.ModeSymlink != 0 {
		if target, err := os.Stat(path); err == nil {
			return true, target.IsDir()
		}
	}
	return true, info.IsDir()
}

// ExistsError builds the PathExists error for the obstacle at path, shown
// as name, telling a file from a directory
func ExistsError(op, name, path string) error {
	_, isDir := Exists(path)
	what := "File exists"
	if isDir {
		what = "Directory exists"
	}
	return errors.New(errors.PathExists, op, path, "Cannot %s %q (%s)", op, name, what)
}

// Canonical returns the absolute, symlink-resolved form of path. Path
// components that do not exist yet are kept as written.
func Canonical(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	var rest []string
	for cur := abs; ; {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			for i := len(rest) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, rest[i])
			}
			return resolved
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs
		}
		rest = append(rest, filepath.Base(cur))
		cur = parent
	}
}

// Within reports whether target is dir itself or lies inside dir
func Within(target, dir string) bool {
	rel, err := filepath.Rel(Canonical(dir), Canonical(target))
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// PlanTransfer checks a move or copy of sources to dst and returns the
// resulting pairs. When dst is an existing directory every source lands in
// it under its own name; otherwise dst is the new name of a single source.
func PlanTransfer(op Op, sources []string, dst string) ([]Transfer, error) {
	name := op.String()
	if len(sources) == 0 {
		return nil, errors.New(errors.NoSelection, name, "", "Cannot %s (No selected elements)", name)
	}
	if dst == "" {
		return nil, errors.New(errors.InvalidArgument, name, "", "Cannot %s (No filename)", name)
	}

	for _, src := range sources {
		if ok, _ := Exists(src); !ok {
			return nil, errors.New(errors.PathNotFound, name, src, "Cannot %s %q (No such file or directory)", name, src)
		}
	}

	dstExists, dstIsDir := Exists(dst)
	switch {
	case dstExists && !dstIsDir && len(sources) > 1:
		return nil, errors.New(errors.NotDirectory, name, dst, "Cannot %s to %q (Not a directory)", name, dst)
	case dstExists && !dstIsDir:
		return nil, ExistsError(name, dst, dst)
	case !dstExists && len(sources) > 1:
		return nil, errors.New(errors.NotDirectory, name, dst, "Cannot %s to %q (Not a directory)", name, dst)
	case !dstExists:
		parent := filepath.Dir(dst)
		if ok, isDir := Exists(parent); !ok || !isDir {
			return nil, errors.New(errors.PathNotFound, name, parent, "Cannot %s to %q (No such file or directory)", name, parent)
		}
	}

	plan := make([]Transfer, 0, len(sources))
	seen := make(map[string]bool, len(sources))
	for _, src := range sources {
		target := dst
		if dstIsDir {
			target = filepath.Join(dst, filepath.Base(src))
		}
		if ok, _ := Exists(target); ok || seen[target] {
			return nil, ExistsError(name, target, target)
		}
		// A symlink is moved or copied as a link, never through its target
		if info, err := os.Lstat(src); err == nil && info.IsDir() && Within(target, src) {
			return nil, errors.New(errors.SelfSubdirectory, name, src, "Cannot %s %q to a subdirectory of itself", name, src)
		}
		seen[target] = true
		plan = append(plan, Transfer{Src: src, Dst: target})
	}
	return plan, nil
}

// Apply performs a plan built by PlanTransfer, stopping at the first
// failure
func Apply(op Op, plan []Transfer) error {
	for _, t := range plan {
		var err error
		if op == CopyOp {
			err = Copy(t.Src, t.Dst)
		} else {
			err = Move(t.Src, t.Dst)
		}
		if err != nil {
			return FormatError(err, t.Src, op.String())
		}
	}
	return nil
}

// Move renames src to dst, falling back to copy and remove across devices
func Move(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := Copy(src, dst); err != nil {
		return err
	}
	return os.RemoveAll(src)
}

// Copy copies a file, symlink or directory tree from src to dst
func Copy(src, dst string) error {
	info, err := os.Lstat(src)
	if err != nil {
		return err
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		link, err := os.Readlink(src)
		if err != nil {
			return err
		}
		return os.Symlink(link, dst)
	case info.IsDir():
		return copyDir(src, dst, info.Mode().Perm())
	default:
		return copyFile(src, dst, info.Mode().Perm())
	}
}

// copyFile copies a single file
func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// copyDir copies a directory recursively
func copyDir(src, dst string, perm os.FileMode) error {
	if err := os.Mkdir(dst, perm|0700); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := Copy(filepath.Join(src, entry.Name()), filepath.Join(dst, entry.Name())); err != nil {
			return err
		}
	}

	return os.Chmod(dst, perm)
}

// Remove deletes path recursively
func Remove(path string) error {
	if ok, _ := Exists(path); !ok {
		return errors.New(errors.PathNotFound, "remove", path, "Cannot remove %q (No such file or directory)", path)
	}
	return FormatError(os.RemoveAll(path), path, "remove")
}

// MakeDirs creates path and any missing parents
func MakeDirs(path string) error {
	return FormatError(os.MkdirAll(path, 0755), path, "create directory")
}

// MoveToTrash moves a file or directory to the system trash/recycle bin
func MoveToTrash(path string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		script := fmt.Sprintf(`tell application "Finder" to delete POSIX file %s`, utils.ShellQuote(path))
		cmd = exec.Command("osascript", "-e", script)
	case "windows":
		cmd = exec.Command("powershell", "-Command", fmt.Sprintf(`Add-Type -AssemblyName Microsoft.VisualBasic; [Microsoft.VisualBasic.FileIO.FileSystem]::DeleteFile('%s', 'OnlyErrorDialogs', 'SendToRecycleBin')`, path))
	default:
		switch {
		case utils.CommandExists("gio"):
			cmd = exec.Command("gio", "trash", path)
		case utils.CommandExists("trash-put"):
			cmd = exec.Command("trash-put", path)
		default:
			return errors.New(errors.ChildProcessFailure, "trash", path, "Cannot trash %q (install trash-cli or gvfs)", path)
		}
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return errors.Wrap(errors.ChildProcessFailure, "trash", path, err,
			"Cannot trash %q (%s)", path, strings.TrimSpace(string(out)))
	}
	return nil
}
