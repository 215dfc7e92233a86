package listing

import (
	"path/filepath"
	"strings"
)

// History remembers, per directory, the name of the child that was selected
// when the directory was left. Names that no longer exist are pruned when
// they are looked up.
type History struct {
	names map[string]string
}

func NewHistory() *History {
	return &History{names: make(map[string]string)}
}

// Remember records name as the selected child of dir. An empty name clears
// the record.
func (h *History) Remember(dir, name string) {
	if name == "" {
		delete(h.names, dir)
		return
	}
	h.names[dir] = name
}

// Lookup returns the remembered child of dir
func (h *History) Lookup(dir string) (string, bool) {
	name, ok := h.names[dir]
	return name, ok
}

// Restore returns the index in l of the child remembered for l.Dir. A
// record whose name is gone from l is dropped and 0 is returned.
func (h *History) Restore(l *Listing) int {
	name, ok := h.names[l.Dir]
	if !ok {
		return 0
	}
	if i := l.Index(name); i >= 0 {
		return i
	}
	delete(h.names, l.Dir)
	return 0
}

func (h *History) Len() int { return len(h.names) }

// ChildOf returns the first path segment of descendant below ancestor, so
// ChildOf("/a", "/a/b/c") is "b". It returns false when descendant is not
// strictly below ancestor.
func ChildOf(ancestor, descendant string) (string, bool) {
	rel, err := filepath.Rel(ancestor, descendant)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	first, _, _ := strings.Cut(rel, string(filepath.Separator))
	return first, true
}
