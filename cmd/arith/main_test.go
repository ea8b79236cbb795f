package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zephyrtronium/arith"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errout bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(append([]string{"--color=false"}, args...))
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errout)
	err := cmd.Execute()
	return out.String(), errout.String(), err
}

func TestArgs(t *testing.T) {
	out, errout, err := execute(t, "", "1+2*3", "(1.0+276/9)*0.5", "3!")
	require.NoError(t, err)
	assert.Equal(t, "7\n15.833333333333334\n6\n", out)
	assert.Empty(t, errout)
}

func TestArgsFailure(t *testing.T) {
	out, errout, err := execute(t, "", "1 2", "(-1)!", "4")
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, "4\n", out)
	lines := strings.Split(strings.TrimSpace(errout), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "ERROR: ")
	assert.Contains(t, lines[0], "trailing input")
	assert.Contains(t, lines[1], "factorial of a negative number is undefined")
}

func TestEcho(t *testing.T) {
	out, _, err := execute(t, "", "--echo", "--", "-2^3^4")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "parsed: (-(2^(3^4)))\n"), "output: %q", out)
}

func TestFormat(t *testing.T) {
	out, _, err := execute(t, "", "--fmt", "%.3f", "1/3")
	require.NoError(t, err)
	assert.Equal(t, "0.333\n", out)
}

func TestFormatInvalid(t *testing.T) {
	for _, f := range []string{"%d", "%s", "result", "%g %g"} {
		t.Run(f, func(t *testing.T) {
			out, _, err := execute(t, "", "--fmt", f, "1/3")
			assert.ErrorContains(t, err, "does not print a number")
			assert.NotErrorIs(t, err, errFailed)
			assert.Empty(t, out)
		})
	}

	dir := t.TempDir()
	path := filepath.Join(dir, "arith.toml")
	require.NoError(t, os.WriteFile(path, []byte(`format = "%x%d"`), 0o600))
	_, _, err := execute(t, "", "--config", path, "1")
	assert.ErrorContains(t, err, "does not print a number")
}

func TestInputFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "exprs.txt")
	require.NoError(t, os.WriteFile(path, []byte("1+1\n\n3!\n(2\n2^10\n"), 0o600))

	out, errout, err := execute(t, "4*4\n", "--in", path)
	require.NoError(t, err)
	assert.Equal(t, "2\n6\n1024\n", out)
	assert.Contains(t, errout, "expected closing parenthesis")

	_, _, err = execute(t, "", "--in", path, "1")
	assert.ErrorContains(t, err, "cannot be combined")

	_, _, err = execute(t, "", "-i", filepath.Join(dir, "missing.txt"))
	assert.Error(t, err)
}

func TestTokens(t *testing.T) {
	out, _, err := execute(t, "", "--tokens", ".5+1")
	require.NoError(t, err)
	assert.Equal(t, "Number:0.5@0\nPlus:+@2\nNumber:1@3\nEOF:@4\n1.5\n", out)
}

func TestTokensJSON(t *testing.T) {
	out, _, err := execute(t, "", "--json", "2!")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	var got []arith.Token
	for _, line := range lines[:3] {
		var tok arith.Token
		require.NoError(t, json.Unmarshal([]byte(line), &tok), line)
		got = append(got, tok)
	}
	assert.Equal(t, []arith.Token{
		{Kind: arith.TokenNum, Text: "2", Pos: 0},
		{Kind: arith.TokenFact, Text: "!", Pos: 1},
		{Kind: arith.TokenEOF, Text: "", Pos: 2},
	}, got)
	assert.Equal(t, "2", lines[3])
}

func TestREPL(t *testing.T) {
	in := "1+1\n\n  \n1&2\n2^10\n"
	out, errout, err := execute(t, in)
	require.NoError(t, err)
	// Input is not a terminal, so there is no prompt.
	assert.Equal(t, "2\n1024\n", out)
	assert.Contains(t, errout, "ERROR: ")
	assert.Contains(t, errout, `"&"`)
}

func TestWarningLogged(t *testing.T) {
	out, errout, err := execute(t, "", "1.9!")
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
	assert.Contains(t, errout, "WRN")
	assert.Contains(t, errout, "not an integer")

	_, errout, err = execute(t, "", "--log-level", "error", "1.9!")
	require.NoError(t, err)
	assert.Empty(t, errout)
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "arith.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
format = "%.2f"
echo = true
log_level = "error"
`), 0o600))

	out, _, err := execute(t, "", "--config", path, "1/3")
	require.NoError(t, err)
	assert.Equal(t, "parsed: (1/3)\n0.33\n", out)

	// Flags override the file.
	out, _, err = execute(t, "", "--config", path, "--echo=false", "--fmt", "%g", "1/4")
	require.NoError(t, err)
	assert.Equal(t, "0.25\n", out)
}

func TestConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte(`colour = true`), 0o600))
	_, _, err := execute(t, "", "--config", path, "1")
	assert.ErrorContains(t, err, "unknown key")

	_, _, err = execute(t, "", "--config", filepath.Join(dir, "missing.toml"), "1")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, errFailed)
}

func TestSessionPrompt(t *testing.T) {
	var out, errout bytes.Buffer
	cfg := defaultConfig()
	cfg.Color = false
	s := newSession(cfg, &out, &errout)
	require.NoError(t, s.repl(strings.NewReader("2*3\n"), true))
	assert.Equal(t, "> 6\n> \n", out.String())
}
