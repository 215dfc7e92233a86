// Package cmdline splits command lines typed at the prompt (or synthesized by
// a key binding) into an argument list.
//
// The language is deliberately small: arguments are separated by spaces, a
// double quote toggles quoted mode in which spaces are literal, and a
// backslash escapes either a double quote or a space that would otherwise
// split. There is no other escape sequence.
package cmdline

import (
	"strings"

	"github.com/LFroesch/odyssey/internal/errors"
)

// Split tokenizes line. The result always holds at least one element; a blank
// line yields a single empty string. Unterminated quotes are closed at the
// end of the line.
func Split(line string) []string {
	args, _ := split(line)
	return args
}

// SplitStrict is Split that also reports an unterminated quote. The returned
// arguments are the same best-effort split Split produces.
func SplitStrict(line string) ([]string, error) {
	args, open := split(line)
	if open {
		return args, errors.New(errors.ParseError, "parse", line, "unterminated quote")
	}
	return args, nil
}

func split(line string) ([]string, bool) {
	var (
		args    []string
		current strings.Builder
		started bool
		quoted  bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\\' && i+1 < len(runes) && runes[i+1] == '"':
			current.WriteRune('"')
			started = true
			i++
		case r == '\\' && i+1 < len(runes) && runes[i+1] == ' ' && !quoted:
			current.WriteRune(' ')
			started = true
			i++
		case r == '"':
			quoted = !quoted
			started = true
		case r == ' ' && !quoted:
			if started {
				args = append(args, current.String())
				current.Reset()
				started = false
			}
		default:
			current.WriteRune(r)
			started = true
		}
	}
	if started {
		args = append(args, current.String())
	}
	if len(args) == 0 {
		args = []string{""}
	}
	return args, quoted
}

// Join concatenates args with single spaces, the way multi-word arguments
// such as `cd my dir` are reassembled into one path.
func Join(args []string) string {
	return strings.Join(args, " ")
}

// Quote escapes s so that Split returns it as a single argument.
func Quote(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case ' ':
			b.WriteString(`\ `)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
