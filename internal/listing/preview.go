package listing

import (
	"bufio"
	"os"
	"unicode/utf8"
)

// Preview is the content shown for the selected entry: the child names of a
// directory, or the first lines of a file.
type Preview struct {
	Path   string
	IsDir  bool
	Lines  []string
	Binary bool
	Err    error
}

// LoadPreview builds the preview of path, reading at most maxLines lines.
// Errors are carried in the result so the view can show them in place.
func LoadPreview(path string, showHidden bool, maxLines int) Preview {
	p := Preview{Path: path}
	info, err := os.Stat(path)
	if err != nil {
		p.Err = classify(err, path, "preview")
		return p
	}

	if info.IsDir() {
		p.IsDir = true
		l, err := Scan(path, showHidden)
		if err != nil {
			p.Err = err
			return p
		}
		for _, e := range l.Entries {
			if len(p.Lines) >= maxLines {
				break
			}
			p.Lines = append(p.Lines, e.Name)
		}
		return p
	}

	f, err := os.Open(path)
	if err != nil {
		p.Err = classify(err, path, "preview")
		return p
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for len(p.Lines) < maxLines && scanner.Scan() {
		line := scanner.Text()
		if !utf8.ValidString(line) {
			p.Binary = true
			p.Lines = nil
			return p
		}
		p.Lines = append(p.Lines, line)
	}
	if err := scanner.Err(); err != nil {
		p.Err = classify(err, path, "preview")
	}
	return p
}
