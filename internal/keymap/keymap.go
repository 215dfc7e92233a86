// Package keymap resolves key presses, including timed two-key chords, into
// command lines for the dispatcher.
package keymap

import (
	"fmt"
	"strings"
	"time"
)

// DefaultTimeout is the longest gap allowed between the two keys of a chord.
const DefaultTimeout = 500 * time.Millisecond

// Binding maps a key, or a chord of two keys when Then is set, to a command
// line. Keys use bubbletea's KeyMsg.String() names ("j", "enter", " ").
type Binding struct {
	Key     string
	Then    string
	Command string
}

// IsChord reports whether b needs a second key.
func (b Binding) IsChord() bool {
	return b.Then != ""
}

// Keys returns the key sequence in the form Parse accepts, e.g. "g g".
func (b Binding) Keys() string {
	if b.IsChord() {
		return keyName(b.Key) + " " + keyName(b.Then)
	}
	return keyName(b.Key)
}

func (b Binding) String() string {
	return fmt.Sprintf("%s → %s", b.Keys(), b.Command)
}

// Default returns the built-in keymap in priority order.
func Default() []Binding {
	return []Binding{
		{Key: "q", Command: "q"},
		{Key: "j", Command: "down"},
		{Key: "down", Command: "down"},
		{Key: "k", Command: "up"},
		{Key: "up", Command: "up"},
		{Key: ":", Command: "get -1"},
		{Key: "l", Command: "open"},
		{Key: "enter", Command: "open"},
		{Key: "h", Command: "cd .."},
		{Key: "backspace", Command: "cd .."},
		{Key: ".", Command: "hidden"},
		{Key: "m", Command: `get -1 "mkdir "`},
		{Key: "t", Command: `get -1 "touch "`},
		{Key: "r", Command: "mv"},
		{Key: "A", Command: "emv"},
		{Key: "I", Command: "bmv"},
		{Key: "d", Command: "rm"},
		{Key: "D", Command: "trash"},
		{Key: " ", Command: "select"},
		{Key: "G", Command: "bottom"},
		{Key: "!", Command: `get -1 "sh "`},
		{Key: "/", Command: `get -1 "find "`},
		{Key: "c", Command: `get -1 "compress "`},
		{Key: "x", Command: "extract"},
		{Key: "o", Command: "xdg"},
		{Key: "R", Command: "refresh"},
		{Key: "g", Then: "g", Command: "top"},
		{Key: "g", Then: "h", Command: "cd ~"},
		{Key: "y", Then: "y", Command: "cp"},
		{Key: "y", Then: "d", Command: "cpdir"},
		{Key: "p", Then: "p", Command: "paste"},
	}
}

// Parse builds a binding from a config entry such as "g g" or "space".
func Parse(keys, command string) (Binding, error) {
	fields := strings.Fields(keys)
	if strings.TrimSpace(command) == "" {
		return Binding{}, fmt.Errorf("binding %q has no command", keys)
	}
	switch len(fields) {
	case 1:
		return Binding{Key: keyCode(fields[0]), Command: command}, nil
	case 2:
		return Binding{Key: keyCode(fields[0]), Then: keyCode(fields[1]), Command: command}, nil
	default:
		return Binding{}, fmt.Errorf("binding %q must be one key or a chord of two keys", keys)
	}
}

// Merge applies overrides on top of base. An override replaces the binding
// with the same key sequence in place; new sequences are appended.
func Merge(base, overrides []Binding) []Binding {
	merged := make([]Binding, len(base))
	copy(merged, base)

	for _, o := range overrides {
		replaced := false
		for i := range merged {
			if merged[i].Key == o.Key && merged[i].Then == o.Then {
				merged[i] = o
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, o)
		}
	}
	return merged
}

func keyCode(name string) string {
	if name == "space" {
		return " "
	}
	return name
}

func keyName(code string) string {
	if code == " " {
		return "space"
	}
	return code
}
