package fileops

import (
	"testing"

	"github.com/LFroesch/odyssey/internal/errors"
)

func TestArchiveBase(t *testing.T) {
	tests := map[string]string{
		"photos.tar.gz":  "photos",
		"photos.TGZ":     "photos",
		"photos.tar":     "photos",
		"photos.tar.bz2": "photos",
		"notes.xz":       "notes",
		"notes.txt":      "notes.txt",
		".gz":            ".gz",
	}

	for name, want := range tests {
		if got := ArchiveBase(name); got != want {
			t.Errorf("ArchiveBase(%q) = %q, want %q", name, got, want)
		}
	}
}

func TestCompressCommand(t *testing.T) {
	cmd, err := CompressCommand("/work", "out.tar.xz", []string{"a", "b c"})
	if err != nil {
		t.Fatalf("CompressCommand failed: %v", err)
	}
	want := []string{"tar", "-cJf", "out.tar.xz", "--", "a", "b c"}
	if len(cmd.Args) != len(want) {
		t.Fatalf("args = %q, want %q", cmd.Args, want)
	}
	for i := range want {
		if cmd.Args[i] != want[i] {
			t.Errorf("args[%d] = %q, want %q", i, cmd.Args[i], want[i])
		}
	}
	if cmd.Dir != "/work" {
		t.Errorf("Dir = %q, want /work", cmd.Dir)
	}

	if _, err := CompressCommand("/work", "out.zip", []string{"a"}); !errors.IsKind(err, errors.InvalidArgument) {
		t.Errorf("expected InvalidArgument for unknown type, got %v", err)
	}
	if _, err := CompressCommand("/work", "", []string{"a"}); !errors.IsKind(err, errors.InvalidArgument) {
		t.Errorf("expected InvalidArgument for empty name, got %v", err)
	}
	if _, err := CompressCommand("/work", "out.tar", nil); !errors.IsKind(err, errors.NoSelection) {
		t.Errorf("expected NoSelection, got %v", err)
	}
}

func TestExtractCommand(t *testing.T) {
	cmd, err := ExtractCommand("/work/a.tgz", "/work/a")
	if err != nil {
		t.Fatalf("ExtractCommand failed: %v", err)
	}
	if got := cmd.Args; len(got) != 5 || got[1] != "-xf" || got[4] != "/work/a" {
		t.Errorf("unexpected args %q", got)
	}

	if _, err := ExtractCommand("/work/a.txt", "/work/a"); !errors.IsKind(err, errors.InvalidArgument) {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}
