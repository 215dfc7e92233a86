package git

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestPorcelainPath(t *testing.T) {
	tests := []struct {
		line string
		want string
		ok   bool
	}{
		{" M main.go", "main.go", true},
		{"?? internal/new/", "internal/new", true},
		{"R  old.go -> new.go", "new.go", true},
		{`?? "with space.txt"`, "with space.txt", true},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := porcelainPath(tt.line)
		if got != tt.want || ok != tt.ok {
			t.Errorf("porcelainPath(%q) = %q, %v; want %q, %v", tt.line, got, ok, tt.want, tt.ok)
		}
	}
}

func TestModifiedOutsideRepository(t *testing.T) {
	if got := Modified(t.TempDir()); len(got) != 0 {
		t.Errorf("expected no modified files outside a repository, got %v", got)
	}
	if got := Branch(t.TempDir()); got != "" {
		t.Errorf("expected no branch outside a repository, got %q", got)
	}
}

func TestModified(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	if out, err := exec.Command("git", "-C", dir, "init", "-q").CombinedOutput(); err != nil {
		t.Skipf("git init failed: %v %s", err, out)
	}
	if err := os.MkdirAll(filepath.Join(dir, "sub"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "sub", "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}

	root, err := filepath.EvalSymlinks(dir)
	if err != nil {
		t.Fatal(err)
	}
	got := Modified(filepath.Join(dir, "sub"))
	if !got[filepath.Join(root, "sub")] {
		t.Errorf("untracked directory not reported: %v", got)
	}
}
