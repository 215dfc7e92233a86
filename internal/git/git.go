// Package git reads the repository state shown in the header and next to
// modified entries.
package git

import (
	"os/exec"
	"path/filepath"
	"strings"
)

func run(dir string, args ...string) (string, bool) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.Output()
	if err != nil {
		return "", false
	}
	// Leading spaces are significant in porcelain output
	return strings.TrimRight(string(output), "\n"), true
}

// Branch returns the current branch name, or "" outside a repository
func Branch(dir string) string {
	branch, _ := run(dir, "rev-parse", "--abbrev-ref", "HEAD")
	return branch
}

// Modified returns the absolute paths of changed files in the repository
// containing dir. Parent directories of a change are included so a
// directory row can be marked too.
func Modified(dir string) map[string]bool {
	modified := make(map[string]bool)

	root, ok := run(dir, "rev-parse", "--show-toplevel")
	if !ok {
		return modified
	}
	output, ok := run(dir, "status", "--porcelain")
	if !ok {
		return modified
	}

	for _, line := range strings.Split(output, "\n") {
		name, ok := porcelainPath(line)
		if !ok {
			continue
		}
		path := filepath.Join(root, name)
		for p := path; p != root && p != filepath.Dir(p); p = filepath.Dir(p) {
			modified[p] = true
		}
	}
	return modified
}

// porcelainPath extracts the path from one `git status --porcelain` line,
// taking the new name of a rename
func porcelainPath(line string) (string, bool) {
	// Status is in the first two characters, the path starts at column 3
	if len(line) < 4 {
		return "", false
	}
	name := line[3:]
	if _, after, found := strings.Cut(name, " -> "); found {
		name = after
	}
	name = strings.Trim(strings.TrimSpace(name), `"`)
	name = strings.TrimSuffix(name, "/")
	return name, name != ""
}
