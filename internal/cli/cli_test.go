package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/frontier/pkg/errors"
)

var smallDataset = filepath.Join("..", "..", "pkg", "dataset", "testdata", "small")

// runCLI executes the command tree with isolated config and cache
// directories and returns what it printed.
func runCLI(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	return execCLI(t, stdin, args...)
}

// execCLI is runCLI without the isolation, for tests that span runs.
func execCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	c.Interactive = false
	root := c.RootCommand()

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogInfo).RootCommand()
	want := []string{"degrees", "dataset", "tictactoe", "serve", "cache", "config", "completion"}
	for _, name := range want {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
	for _, flag := range []string{"config", "verbose", "dataset", "no-cache"} {
		if root.PersistentFlags().Lookup(flag) == nil {
			t.Errorf("persistent flag --%s missing", flag)
		}
	}
}

func TestVersion(t *testing.T) {
	out, _, err := runCLI(t, "", "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "version") || !strings.Contains(out, "commit") {
		t.Errorf("version output = %q", out)
	}
}

func TestSetupReadsConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	data := "dataset = \"" + filepath.ToSlash(smallDataset) + "\"\nlog_level = \"debug\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, _, err := runCLI(t, "", "--config", path, "degrees", "--source-id", "102", "--target-id", "158")
	if err != nil {
		t.Fatalf("degrees with dataset from config: %v", err)
	}
	if !strings.HasPrefix(out, "1 degrees of separation.") {
		t.Errorf("output = %q", out)
	}
}

func TestSetupRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("unknown_key = 1\n"), 0o644)

	_, _, err := runCLI(t, "", "--config", path, "cache", "path")
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestMissingDataset(t *testing.T) {
	_, _, err := runCLI(t, "", "dataset", "stats")
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestFormatError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{errors.New(errors.ErrCodeNotFound, "person %q not found", "x"), `person "x" not found`},
		{errors.Wrap(errors.ErrCodeInvalidSource, io.EOF, "read"), "read: EOF"},
		{io.ErrUnexpectedEOF, "unexpected EOF"},
	}
	for _, tt := range tests {
		if got := FormatError(tt.err); got != tt.want {
			t.Errorf("FormatError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestParseFormats(t *testing.T) {
	if got := parseFormats(""); len(got) != 1 || got[0] != "svg" {
		t.Errorf("parseFormats(\"\") = %v, want [svg]", got)
	}
	if got := parseFormats("dot,svg"); len(got) != 2 {
		t.Errorf("parseFormats(\"dot,svg\") = %v", got)
	}
}

func TestWriteOutputs(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "chain.svg")

	paths, err := writeOutputs(base, map[string][]byte{"svg": []byte("<svg/>")})
	if err != nil || len(paths) != 1 || paths[0] != base {
		t.Fatalf("single format: %v, %v", paths, err)
	}

	paths, err = writeOutputs(base, map[string][]byte{"svg": []byte("<svg/>"), "dot": []byte("graph {}")})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "chain.dot"), filepath.Join(dir, "chain.svg")}
	if len(paths) != 2 || paths[0] != want[0] || paths[1] != want[1] {
		t.Errorf("paths = %v, want %v", paths, want)
	}
}
