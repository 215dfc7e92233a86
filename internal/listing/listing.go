// Package listing reads a directory into the ordered entry sequence the
// browser shows, and remembers which child was selected in each directory.
package listing

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/LFroesch/odyssey/internal/errors"
	"github.com/LFroesch/odyssey/internal/logger"
	"github.com/LFroesch/odyssey/internal/utils"
)

// Kind tells files from directories.
type Kind int

const (
	File Kind = iota
	Directory
)

// Entry is one row of the listing.
type Entry struct {
	Name      string
	Kind      Kind
	SizeLabel string
}

// IsDir reports whether the entry is a directory
func (e Entry) IsDir() bool { return e.Kind == Directory }

// Listing is the snapshot of a directory taken by Scan. The order is the
// order the directory enumeration returned; it is not sorted.
type Listing struct {
	Dir     string
	Entries []Entry
}

func (l *Listing) Len() int { return len(l.Entries) }

// At returns the entry at i, or false when i is outside the listing
func (l *Listing) At(i int) (Entry, bool) {
	if i < 0 || i >= len(l.Entries) {
		return Entry{}, false
	}
	return l.Entries[i], true
}

// Index returns the position of name, or -1
func (l *Listing) Index(name string) int {
	for i, e := range l.Entries {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Path joins the entry at i onto the listing directory
func (l *Listing) Path(i int) string {
	e, ok := l.At(i)
	if !ok {
		return ""
	}
	return filepath.Join(l.Dir, e.Name)
}

// SameEntries reports whether other lists the same names in the same order
// for the same directory. Tags survive a rescan only when this holds.
func (l *Listing) SameEntries(other *Listing) bool {
	if l == nil || other == nil || l.Dir != other.Dir || len(l.Entries) != len(other.Entries) {
		return false
	}
	for i := range l.Entries {
		if l.Entries[i].Name != other.Entries[i].Name {
			return false
		}
	}
	return true
}

// IsHidden reports whether name is a dot file
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// Scan reads dir. Entries that cannot be stat'ed, such as broken symlinks,
// are skipped. Symlinks to directories are listed as directories.
func Scan(dir string, showHidden bool) (*Listing, error) {
	names, err := readNames(dir)
	if err != nil {
		return nil, err
	}

	l := &Listing{Dir: dir, Entries: make([]Entry, 0, len(names))}
	for _, name := range names {
		if !showHidden && IsHidden(name) {
			continue
		}
		info, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			logger.Debug("skipping %s: %v", name, err)
			continue
		}
		e := Entry{Name: name}
		if info.IsDir() {
			e.Kind = Directory
			e.SizeLabel = countLabel(filepath.Join(dir, name), showHidden)
		} else {
			e.SizeLabel = utils.FormatFileSize(info.Size())
		}
		l.Entries = append(l.Entries, e)
	}
	return l, nil
}

func readNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, classify(err, dir, "scan")
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, classify(err, dir, "scan")
	}
	if !info.IsDir() {
		return nil, errors.New(errors.NotDirectory, "scan", dir, "%q is not a directory", dir)
	}

	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, classify(err, dir, "scan")
	}
	return names, nil
}

// countLabel is the item count shown for a directory, honoring the hidden
// filter. Unreadable directories show "N/A".
func countLabel(dir string, showHidden bool) string {
	names, err := readNames(dir)
	if err != nil {
		return "N/A"
	}
	n := 0
	for _, name := range names {
		if showHidden || !IsHidden(name) {
			n++
		}
	}
	return fmt.Sprintf("%d", n)
}

func classify(err error, path, op string) error {
	switch {
	case os.IsNotExist(err):
		return errors.Wrap(errors.PathNotFound, op, path, err, "%q (No such file or directory)", path)
	case os.IsPermission(err):
		return errors.Wrap(errors.PermissionDenied, op, path, err, "%q (Permission denied)", path)
	default:
		return errors.Wrap(errors.Unknown, op, path, err, "%q (%v)", path, err)
	}
}
