package main

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/termenv"
)

var errNoColor = errors.New("your terminal does not support color")

// checkColorSupport fails when stdout cannot show colors
func checkColorSupport() error {
	if termenv.NewOutput(os.Stdout).ColorProfile() == termenv.Ascii {
		return errNoColor
	}
	return nil
}

var (
	chromaStyle     = styles.Get("monokai")
	chromaFormatter = formatters.TTY256
)

// highlight colors preview lines for the language guessed from path.
// Lines come back unchanged when no lexer matches or formatting fails.
func highlight(path string, lines []string) []string {
	lexer := lexers.Match(path)
	if lexer == nil {
		return lines
	}
	lexer = chroma.Coalesce(lexer)

	content := strings.ReplaceAll(strings.Join(lines, "\n"), "\t", "    ")
	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return lines
	}

	var sb strings.Builder
	if err := chromaFormatter.Format(&sb, chromaStyle, iterator); err != nil {
		return lines
	}
	out := strings.Split(strings.TrimSuffix(sb.String(), "\n"), "\n")
	if len(out) != len(lines) {
		return lines
	}
	return out
}

// execDoneMsg reports that a foreground child process exited
type execDoneMsg struct {
	done func(error)
	err  error
}

type execRequest struct {
	cmd  *exec.Cmd
	done func(error)
}

// teaRunner queues child processes so Update can hand them to
// tea.ExecProcess, which releases the terminal while they run.
type teaRunner struct {
	queue []execRequest
}

func (r *teaRunner) Run(cmd *exec.Cmd, done func(error)) {
	r.queue = append(r.queue, execRequest{cmd: cmd, done: done})
}

func (r *teaRunner) drain() tea.Cmd {
	if len(r.queue) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(r.queue))
	for _, req := range r.queue {
		done := req.done
		cmds = append(cmds, tea.ExecProcess(req.cmd, func(err error) tea.Msg {
			return execDoneMsg{done: done, err: err}
		}))
	}
	r.queue = nil
	return tea.Sequence(cmds...)
}
