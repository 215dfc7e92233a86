package utils

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// FormatFileSize formats a file size in bytes to a human-readable string
func FormatFileSize(size int64) string {
	const unit = 1024
	if size < 0 {
		return "N/A"
	}
	if size < unit {
		return fmt.Sprintf("%d B", size)
	}
	div, exp := int64(unit), 0
	for n := size / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
}

// Extension returns the lower-cased extension of name, with the dot
func Extension(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// DefaultColors maps file extensions to ANSI colors for the listing.
// The "dir" key colors directories and "" is the fallback.
func DefaultColors() map[string]string {
	colors := map[string]string{
		"dir": "12",
		"":    "7",
	}
	add := func(color string, exts ...string) {
		for _, ext := range exts {
			colors[ext] = color
		}
	}
	add("14", ".c", ".c++", ".cpp", ".cc", ".h++", ".hpp", ".h", ".go", ".rs")
	add("10", ".py", ".sh")
	add("11", ".jpg", ".jpeg", ".png", ".gif", ".tiff", ".tif", ".raw", ".bmp", ".svg", ".eps", ".ai")
	add("4", ".mkv", ".flv", ".ogv", ".ogg", ".avi", ".ts", ".mts", ".mov", ".wmv", ".amv",
		".mp4", ".m4p", ".m4v", ".mpg", ".mpeg", ".mpv")
	add("6", ".wav", ".aiff", ".au", ".m4a", ".flac", ".mp3", ".aac")
	add("9", ".zip", ".tar", ".gz", ".bz2", ".xz", ".tgz")
	add("13", ".html", ".css", ".php", ".rb")
	add("3", ".epub", ".pdf", ".mobi", ".aws")
	return colors
}

// ColorFor picks the color of an entry from table
func ColorFor(table map[string]string, name string, isDir bool) string {
	if isDir {
		if c, ok := table["dir"]; ok {
			return c
		}
	} else if c, ok := table[Extension(name)]; ok {
		return c
	}
	return table[""]
}

// DefaultOpeners maps file extensions to shell command templates. {f} is
// replaced by the quoted file path.
func DefaultOpeners() map[string]string {
	openers := map[string]string{}
	add := func(template string, exts ...string) {
		for _, ext := range exts {
			openers[ext] = template
		}
	}
	add("sxiv {f} > /dev/null 2>&1", ".jpg", ".jpeg", ".png", ".gif", ".tiff", ".tif", ".raw", ".bmp",
		".svg", ".eps", ".ai")
	add("mpv {f} > /dev/null 2>&1", ".mkv", ".flv", ".ogv", ".ogg", ".avi", ".ts", ".mts", ".mov",
		".wmv", ".amv", ".mp4", ".m4p", ".m4v", ".mpg", ".mpeg", ".mpv",
		".wav", ".aiff", ".au", ".m4a", ".flac", ".mp3", ".aac")
	add("ebook-viewer {f} > /dev/null 2>&1", ".epub", ".pdf", ".mobi", ".aws")
	return openers
}

// OpenerFor returns the command line that opens path, if table has a
// template for its extension
func OpenerFor(table map[string]string, path string) (string, bool) {
	template, ok := table[Extension(path)]
	if !ok {
		return "", false
	}
	return strings.ReplaceAll(template, "{f}", ShellQuote(path)), true
}

// ShellQuote wraps s in double quotes, escaping the characters the shell
// still interprets inside them
func ShellQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, `$`, `\$`, "`", "\\`")
	return `"` + r.Replace(s) + `"`
}

// CommandExists checks if a command is available in PATH
func CommandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}
