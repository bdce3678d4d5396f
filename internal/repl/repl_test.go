package repl

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(path, contents string) error {
	return os.WriteFile(path, []byte(contents), 0o644)
}

func run(t *testing.T, r *REPL, lines ...string) string {
	t.Helper()
	var buf bytes.Buffer
	for _, line := range lines {
		r.ProcessLine(line, &buf)
	}
	return buf.String()
}

func TestAssumeThenEvalSucceeds(t *testing.T) {
	r := New()
	out := run(t, r,
		"assume (0 a : U) (1 x : a)",
		"1 x",
	)
	require.NotContains(t, out, "error")
	assert.Contains(t, out, "a")
}

func TestLetDefinesAReusableGlobal(t *testing.T) {
	r := New()
	out := run(t, r,
		"assume (0 a : U) (w x : a)",
		"let w id = (\\y -> y : (w z : a) -> a)",
		"w id x",
	)
	require.NotContains(t, out, "error")
	assert.Contains(t, out, "a")
}

func TestUnusedLinearBindingReportsMultiplicityError(t *testing.T) {
	r := New()
	out := run(t, r,
		"assume (0 a : U) (1 x : a)",
		"0 a",
	)
	assert.Contains(t, out, "error")
	assert.Contains(t, out, "multiplicity")
}

func TestUnknownVariableReportsError(t *testing.T) {
	r := New()
	out := run(t, r, "w b")
	assert.Contains(t, out, "error")
}

func TestBrowseListsBindings(t *testing.T) {
	r := New()
	run(t, r, "assume (0 a : U) (1 x : a)")
	var buf bytes.Buffer
	r.browse(&buf)
	got := buf.String()
	assert.True(t, strings.Contains(got, "a"))
	assert.True(t, strings.Contains(got, "x"))
}

func TestPutStrLnPrintsLiteralText(t *testing.T) {
	r := New()
	out := run(t, r, `putStrLn "hello, janus"`)
	assert.Contains(t, out, "hello, janus")
}

func TestLoadFileRunsStatementsInSequence(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/prelude.janus"
	require.NoError(t, writeFile(path, "assume (0 a : U) (1 x : a)\nlet 1 id = (\\z -> \\y -> y : (0 z : U) -> (1 y : z) -> z) a x\n"))

	r := New()
	var buf bytes.Buffer
	ok := r.LoadFile(path, &buf)
	assert.True(t, ok, buf.String())
	assert.NotContains(t, buf.String(), "error")
}

func TestLoadFileStopsAtFirstError(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/bad.janus"
	require.NoError(t, writeFile(path, "w b\n"))

	r := New()
	var buf bytes.Buffer
	ok := r.LoadFile(path, &buf)
	assert.False(t, ok)
	assert.Contains(t, buf.String(), "error")
}

func TestSetPromptColorAffectsPrompt(t *testing.T) {
	r := New()
	plain := r.getPrompt()
	r.SetPromptColor("magenta")
	assert.Equal(t, colorByName("magenta"), r.promptColor)
	assert.Contains(t, r.getPrompt(), "janus> ")
	assert.Contains(t, plain, "janus> ")
}

func TestSetHistoryFileOverridesDefault(t *testing.T) {
	r := New()
	dir := t.TempDir()
	path := dir + "/history"
	r.SetHistoryFile(path)
	assert.Equal(t, path, r.historyFile)

	r.SetHistoryFile("")
	assert.Equal(t, path, r.historyFile, "an empty path should leave the existing history file untouched")
}

func TestOutRedirectsToFile(t *testing.T) {
	r := New()
	dir := t.TempDir()
	path := dir + "/session.out"
	out := run(t, r,
		`out "`+path+`"`,
		`putStrLn "redirected"`,
		`out ""`,
	)
	assert.Empty(t, out, "nothing should reach the normal writer once redirected")
	assert.Nil(t, r.outFile)
}
