package fileops

import (
	"os/exec"
	"strings"

	"github.com/LFroesch/odyssey/internal/errors"
)

// archive suffixes, longest first so ".tar.gz" wins over ".gz"
var archiveFormats = []struct {
	suffix string
	flag   string
}{
	{".tar.gz", "z"},
	{".tar.bz2", "j"},
	{".tar.xz", "J"},
	{".tgz", "z"},
	{".tar", ""},
	{".gz", "z"},
	{".bz2", "j"},
	{".xz", "J"},
}

func archiveFormat(name string) (suffix, flag string, ok bool) {
	lower := strings.ToLower(name)
	for _, f := range archiveFormats {
		if strings.HasSuffix(lower, f.suffix) && len(name) > len(f.suffix) {
			return f.suffix, f.flag, true
		}
	}
	return "", "", false
}

// IsArchive reports whether name has a recognized archive extension
func IsArchive(name string) bool {
	_, _, ok := archiveFormat(name)
	return ok
}

// ArchiveBase strips the archive extension from name
func ArchiveBase(name string) string {
	suffix, _, ok := archiveFormat(name)
	if !ok {
		return name
	}
	return name[:len(name)-len(suffix)]
}

// CompressCommand builds the tar invocation that packs members (paths
// relative to dir) into the archive name, inside dir.
func CompressCommand(dir, name string, members []string) (*exec.Cmd, error) {
	if len(members) == 0 {
		return nil, errors.New(errors.NoSelection, "compress", "", "Cannot compress (No selected elements)")
	}
	if name == "" {
		return nil, errors.New(errors.InvalidArgument, "compress", "", "Cannot compress (No filename)")
	}
	_, flag, ok := archiveFormat(name)
	if !ok {
		return nil, errors.New(errors.InvalidArgument, "compress", name, "Cannot compress (Unrecognized compression type)")
	}

	args := append([]string{"-c" + flag + "f", name, "--"}, members...)
	cmd := exec.Command("tar", args...)
	cmd.Dir = dir
	return cmd, nil
}

// ExtractCommand builds the tar invocation that unpacks archive into dir
func ExtractCommand(archive, dir string) (*exec.Cmd, error) {
	if !IsArchive(archive) {
		return nil, errors.New(errors.InvalidArgument, "extract", archive, "Cannot extract %q (Not a compressed file)", archive)
	}
	return exec.Command("tar", "-xf", archive, "-C", dir), nil
}
