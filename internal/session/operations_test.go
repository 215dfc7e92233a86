package session

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestMkdir(t *testing.T) {
	f := newFixture(t, "", "existing/", "z")

	st := f.dispatch(t, "mkdir existing new deep/er")
	assert.False(t, st.IsError, st.Text)
	assert.DirExists(t, f.path("new"))
	assert.DirExists(t, f.path("deep/er"))
	assert.Equal(t, "new", f.selectedName(t))

	st = f.dispatch(t, "mkdir")
	assert.True(t, st.IsError)
}

func TestTouchRunsEditorForNewNames(t *testing.T) {
	f := newFixture(t, "", "a")

	f.dispatch(t, "touch one two")
	require.Len(t, f.runner.cmds, 1)
	assert.Equal(t, []string{"vim", f.path("one"), f.path("two")}, f.runner.cmds[0].Args)
}

func TestTouchExisting(t *testing.T) {
	f := newFixture(t, "", "a", "dir/")

	st := f.dispatch(t, "touch a")
	assert.Equal(t, `Cannot create file "a" (File exists)`, st.Text)

	st = f.dispatch(t, "touch new dir")
	assert.Equal(t, `Cannot create file "dir" (Directory exists)`, st.Text)
	assert.Empty(t, f.runner.cmds)
}

func TestMoveRename(t *testing.T) {
	f := newFixture(t, "", "old.txt", "zz")
	f.selectName(t, "old.txt")

	st := f.dispatch(t, "mv new.txt")
	require.False(t, st.IsError, st.Text)
	assert.NoFileExists(t, f.path("old.txt"))
	assert.Equal(t, "old.txt", readFile(t, f.path("new.txt")))
	assert.Equal(t, "new.txt", f.selectedName(t), "cursor follows the renamed entry")
}

func TestRenamePromptIgnoresTags(t *testing.T) {
	f := newFixture(t, "", "shown.txt", "tagged.txt")
	f.tag(t, "tagged.txt")
	f.selectName(t, "shown.txt")

	f.dispatch(t, "mv")
	p, ok := f.session.TakePrompt()
	require.True(t, ok)
	assert.Equal(t, "mv shown.txt", p.Value)

	st := f.dispatch(t, "mv renamed.txt")
	require.False(t, st.IsError, st.Text)
	assert.NoFileExists(t, f.path("shown.txt"))
	assert.Equal(t, "shown.txt", readFile(t, f.path("renamed.txt")))
	assert.Equal(t, "tagged.txt", readFile(t, f.path("tagged.txt")))
}

func TestMoveIntoSubdirectoryOfItselfIsRejected(t *testing.T) {
	f := newFixture(t, "", "dirA/sub/keep")

	st := f.dispatch(t, "mv dirA dirA/sub")
	assert.True(t, st.IsError)
	assert.Equal(t, `Cannot move "`+f.path("dirA")+`" to a subdirectory of itself`, st.Text)

	assert.DirExists(t, f.path("dirA/sub"))
	assert.Equal(t, "dirA/sub/keep", readFile(t, f.path("dirA/sub/keep")))
	assert.NoDirExists(t, f.path("dirA/sub/dirA"))
}

func TestCopyCollisionKeepsTarget(t *testing.T) {
	f := newFixture(t, "", "fileA", "fileB")

	st := f.dispatch(t, "cp fileA fileB")
	assert.True(t, st.IsError)
	assert.Equal(t, `Cannot copy "`+f.path("fileB")+`" (File exists)`, st.Text)
	assert.Equal(t, "fileB", readFile(t, f.path("fileB")))
}

func TestMoveTaggedIntoDirectory(t *testing.T) {
	f := newFixture(t, "", "a", "b", "c", "dest/")
	f.tag(t, "a", "c")

	st := f.dispatch(t, "mv dest")
	require.False(t, st.IsError, st.Text)
	assert.FileExists(t, f.path("dest/a"))
	assert.FileExists(t, f.path("dest/c"))
	assert.FileExists(t, f.path("b"))
	assert.False(t, f.session.Selection().HasTags())
}

func TestMoveTaggedStopsBeforeAnyMutation(t *testing.T) {
	f := newFixture(t, "", "a", "b", "dest/b")
	f.tag(t, "a", "b")

	st := f.dispatch(t, "mv dest")
	assert.True(t, st.IsError)
	assert.True(t, strings.Contains(st.Text, "File exists"), st.Text)
	assert.FileExists(t, f.path("a"))
	assert.NoFileExists(t, f.path("dest/a"))
}

func TestMoveSeveralIntoNonDirectory(t *testing.T) {
	f := newFixture(t, "", "a", "b", "c")

	st := f.dispatch(t, "mv a b c")
	assert.Equal(t, `Cannot move to "`+f.path("c")+`" (Not a directory)`, st.Text)
	assert.FileExists(t, f.path("a"))
}

func TestMovePrompts(t *testing.T) {
	f := newFixture(t, "", "my file.txt")

	f.dispatch(t, "mv")
	p, ok := f.session.TakePrompt()
	require.True(t, ok)
	assert.Equal(t, `mv my\ file.txt`, p.Value)
	assert.Equal(t, len(`mv my\ file`), p.Cursor, "cursor sits before the extension")

	f.dispatch(t, "emv")
	p, _ = f.session.TakePrompt()
	assert.Equal(t, len(p.Value), p.Cursor)

	f.dispatch(t, "bmv")
	p, _ = f.session.TakePrompt()
	assert.Equal(t, 3, p.Cursor)

	// the edited prompt round-trips through the tokenizer
	f.dispatch(t, `mv my\ notes.txt`)
	assert.FileExists(t, f.path("my notes.txt"))
}

func TestMovePromptInEmptyDirectory(t *testing.T) {
	f := newFixture(t, "")

	st := f.dispatch(t, "mv")
	assert.Equal(t, "Cannot move (No selected elements)", st.Text)
}

func TestCopyDirectoryRecursively(t *testing.T) {
	f := newFixture(t, "", "src/a/b", "dest/")

	st := f.dispatch(t, "cp src dest")
	require.False(t, st.IsError, st.Text)
	assert.Equal(t, "src/a/b", readFile(t, f.path("dest/src/a/b")))
	assert.FileExists(t, f.path("src/a/b"))
}

func TestCopyToClipboard(t *testing.T) {
	f := newFixture(t, "", "a", "b", "c")

	st := f.dispatch(t, "cp")
	assert.Equal(t, "Cannot copy (No selected elements)", st.Text)

	f.tag(t, "c", "a")
	st = f.dispatch(t, "cp")
	assert.Equal(t, "2 paths copied", st.Text)

	lines := strings.Split(f.clipboard.text, "\n")
	assert.ElementsMatch(t, []string{f.path("a"), f.path("c")}, lines)
	assert.Equal(t, f.path(f.selectedName(t)), lines[0], "primary comes first")
	assert.False(t, f.session.Selection().HasTags())
}

func TestCopyDirToClipboard(t *testing.T) {
	f := newFixture(t, "", "a")

	f.dispatch(t, "cpdir")
	assert.Equal(t, f.root, f.clipboard.text)
}

func TestClipboardFailure(t *testing.T) {
	f := newFixture(t, "", "a")
	f.clipboard.err = os.ErrNotExist

	st := f.dispatch(t, "cpdir")
	assert.True(t, st.IsError)
	assert.True(t, strings.HasPrefix(st.Text, "Cannot access clipboard"))
}

func TestPasteEachLineIndependently(t *testing.T) {
	f := newFixture(t, "here", "here/dup", "src/one", "src/dup", "src/two/x")
	f.clipboard.text = strings.Join([]string{
		f.path("src/one"),
		f.path("src/dup"),
		f.path("src/missing"),
		f.path("src/two"),
		"",
	}, "\n")

	st := f.dispatch(t, "paste")
	assert.True(t, st.IsError)
	assert.True(t, strings.HasSuffix(st.Text, "(and 1 more)"), st.Text)

	assert.Equal(t, "src/one", readFile(t, f.path("here/one")))
	assert.Equal(t, "src/two/x", readFile(t, f.path("here/two/x")))
	assert.Equal(t, "here/dup", readFile(t, f.path("here/dup")), "colliding line left the target alone")
}

func TestPasteIntoOwnSubtree(t *testing.T) {
	f := newFixture(t, "dirA/sub", "dirA/sub/x")
	f.clipboard.text = f.path("dirA")

	st := f.dispatch(t, "paste")
	assert.True(t, strings.Contains(st.Text, "subdirectory of itself"), st.Text)
	assert.NoDirExists(t, f.path("dirA/sub/dirA"))
}

func TestPasteSuccess(t *testing.T) {
	f := newFixture(t, "here", "here/", "src/one")
	f.clipboard.text = f.path("src/one") + "\n"

	st := f.dispatch(t, "paste")
	assert.Equal(t, Status{Text: "1 pasted"}, st)
	assert.FileExists(t, f.path("here/one"))
}

func TestRemoveConfirmationGate(t *testing.T) {
	f := newFixture(t, "", "target", "other")

	f.dispatch(t, "rm target")
	q, ok := f.session.AwaitingConfirmation()
	require.True(t, ok)
	assert.Equal(t, "are you sure > ", q)

	f.session.Confirm("n")
	assert.FileExists(t, f.path("target"))
	assert.Equal(t, Status{Text: "ignored."}, f.session.Status())
	_, ok = f.session.AwaitingConfirmation()
	assert.False(t, ok)

	f.dispatch(t, "rm target")
	f.session.Confirm("y")
	assert.NoFileExists(t, f.path("target"))
	assert.FileExists(t, f.path("other"))
}

func TestRemoveGateRejectedByNextCommand(t *testing.T) {
	f := newFixture(t, "", "target")

	f.dispatch(t, "rm target")
	f.dispatch(t, "down")
	_, ok := f.session.AwaitingConfirmation()
	assert.False(t, ok)

	f.session.Confirm("yes")
	assert.FileExists(t, f.path("target"), "a stale answer must not delete")
}

func TestRemoveTaggedDirectories(t *testing.T) {
	f := newFixture(t, "", "d1/x/y", "d2/z", "keep")

	st := f.dispatch(t, "rm")
	assert.Equal(t, "Cannot remove (No selected elements)", st.Text)

	f.tag(t, "d1", "d2")
	f.dispatch(t, "rm")
	f.session.Confirm("YES")
	assert.NoDirExists(t, f.path("d1"))
	assert.NoDirExists(t, f.path("d2"))
	assert.FileExists(t, f.path("keep"))
}

func TestRemoveMissing(t *testing.T) {
	f := newFixture(t, "", "a")

	st := f.dispatch(t, "rm a ghost")
	assert.Equal(t, `Cannot remove "ghost" (No such file or directory)`, st.Text)
	_, ok := f.session.AwaitingConfirmation()
	assert.False(t, ok)
	assert.FileExists(t, f.path("a"))
}

func TestShell(t *testing.T) {
	f := newFixture(t, "", "a")
	f.runner.exec = true

	f.dispatch(t, `sh "echo hi > made.txt"`)
	require.Len(t, f.runner.cmds, 1)
	assert.Equal(t, []string{"sh", "-c", "echo hi > made.txt"}, f.runner.cmds[0].Args)
	assert.Equal(t, "hi\n", readFile(t, f.path("made.txt")))
	assert.GreaterOrEqual(t, f.session.Listing().Index("made.txt"), 0, "listing reloaded after the child exits")
}

func TestShellFailure(t *testing.T) {
	f := newFixture(t, "", "a")
	f.runner.exec = true

	f.dispatch(t, "sh exit 3")
	st := f.session.Status()
	assert.True(t, st.IsError)
	assert.Contains(t, st.Text, "exit status 3")
}

func TestCompress(t *testing.T) {
	f := newFixture(t, "", "a", "b", "out.tar")

	st := f.dispatch(t, "compress x.tar.gz")
	assert.Equal(t, "Cannot compress (No selected elements)", st.Text)

	f.tag(t, "a", "b")
	st = f.dispatch(t, "compress out.tar")
	assert.Equal(t, `Cannot compress "out.tar" (File exists)`, st.Text)

	// rejected commands leave the listing, and so the tags, alone
	st = f.dispatch(t, "compress x.rar")
	assert.Equal(t, "Cannot compress (Unrecognized compression type)", st.Text)

	f.dispatch(t, "compress x.tar.gz")
	require.Len(t, f.runner.cmds, 1)
	args := f.runner.cmds[0].Args
	assert.Equal(t, []string{"tar", "-czf", "x.tar.gz", "--"}, args[:4])
	assert.ElementsMatch(t, []string{"a", "b"}, args[4:])
	assert.Equal(t, f.root, f.runner.cmds[0].Dir)
}

func TestCompressAndExtractRoundTrip(t *testing.T) {
	if _, err := exec.LookPath("tar"); err != nil {
		t.Skip("tar not installed")
	}
	f := newFixture(t, "", "a", "b")
	f.runner.exec = true

	f.tag(t, "a", "b")
	f.dispatch(t, "compress pack.tar.gz")
	require.FileExists(t, f.path("pack.tar.gz"))

	f.selectName(t, "pack.tar.gz")
	st := f.dispatch(t, "extract")
	require.False(t, st.IsError, st.Text)
	assert.Equal(t, "a", readFile(t, filepath.Join(f.path("pack"), "a")))

	f.selectName(t, "pack.tar.gz")
	st = f.dispatch(t, "extract")
	assert.Equal(t, `Cannot extract to "pack" (Directory exists)`, st.Text)
}

func TestExtractRejectsPlainFile(t *testing.T) {
	f := newFixture(t, "", "notes.txt")

	st := f.dispatch(t, "extract")
	assert.Equal(t, `Cannot extract "notes.txt" (Not a compressed file)`, st.Text)
}
