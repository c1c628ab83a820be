package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"doccount/internal/count"
)

func TestLimitsCheck(t *testing.T) {
	unset := Limits{MaxWords: -1, MinWords: -1, MaxCharacters: -1, MinCharacters: -1}

	tests := []struct {
		name   string
		limits Limits
		total  count.Result
		want   int
	}{
		{"unset passes anything", unset, count.Result{Words: 1000, Characters: 5000}, 0},
		{"within max words", Limits{MaxWords: 10, MinWords: -1, MaxCharacters: -1, MinCharacters: -1}, count.Result{Words: 10}, 0},
		{"over max words", Limits{MaxWords: 10, MinWords: -1, MaxCharacters: -1, MinCharacters: -1}, count.Result{Words: 11}, 1},
		{"under min words", Limits{MaxWords: -1, MinWords: 5, MaxCharacters: -1, MinCharacters: -1}, count.Result{Words: 4}, 1},
		{"at min words", Limits{MaxWords: -1, MinWords: 5, MaxCharacters: -1, MinCharacters: -1}, count.Result{Words: 5}, 0},
		{"over max characters", Limits{MaxWords: -1, MinWords: -1, MaxCharacters: 100, MinCharacters: -1}, count.Result{Characters: 101}, 1},
		{"under min characters", Limits{MaxWords: -1, MinWords: -1, MaxCharacters: -1, MinCharacters: 50}, count.Result{Characters: 49}, 1},
		{"several violations", Limits{MaxWords: 1, MinWords: -1, MaxCharacters: -1, MinCharacters: 100}, count.Result{Words: 2, Characters: 10}, 2},
		{"zero limits with zero totals", Limits{MaxWords: 0, MinWords: 0, MaxCharacters: 0, MinCharacters: 0}, count.Result{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.limits.Check(tt.total)
			if len(got) != tt.want {
				t.Errorf("Check() = %v, want %d violations", got, tt.want)
			}
		})
	}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func runCommand(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errBuf bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestRunSingleFile(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "doc.md", "# Title\n\nHello world from doccount.\n")

	stdout, stderr, err := runCommand(t, f)
	if err != nil {
		t.Fatalf("Execute() error = %v, stderr=%q", err, stderr)
	}
	// "Title" + "Hello world from doccount." = 5 words.
	if !strings.Contains(stdout, "Words:      5") {
		t.Errorf("stdout = %q, want word count 5", stdout)
	}
}

func TestRunQuietJSON(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "doc.md", "one two three\n")

	stdout, _, err := runCommand(t, "--format", "json", "--display", "quiet", f)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(stdout) != `{"words":3,"characters":13}` {
		t.Errorf("stdout = %q, want compact single-object json", stdout)
	}
}

func TestRunModeWords(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "doc.md", "one two three\n")

	stdout, _, err := runCommand(t, "--mode", "words", "--display", "quiet", f)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(stdout) != "3" {
		t.Errorf("stdout = %q, want bare word count 3", stdout)
	}
}

func TestRunOutputFile(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "doc.md", "one two\n")
	outPath := filepath.Join(dir, "counts.json")

	stdout, _, err := runCommand(t, "-f", "json", "-o", outPath, f)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if stdout != "" {
		t.Errorf("stdout = %q, want empty when writing to a file", stdout)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"words":2`) {
		t.Errorf("output file = %q, want words 2", data)
	}
}

func TestRunExcludeImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "part.md", "four five six\n")
	main := writeFile(t, dir, "main.md", "one two three\n\n#include \"part.md\"\n")

	stdout, _, err := runCommand(t, "-m", "words", "-d", "quiet", main)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(stdout) != "6" {
		t.Errorf("with includes: stdout = %q, want 6", stdout)
	}

	stdout, _, err = runCommand(t, "-m", "words", "-d", "quiet", "-e", main)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(stdout) != "3" {
		t.Errorf("exclude-imports: stdout = %q, want 3", stdout)
	}
}

func TestRunLimitViolation(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "doc.md", "one two three four\n")

	_, stderr, err := runCommand(t, "--max-words", "3", f)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitLimits {
		t.Fatalf("Execute() error = %v, want ExitError{1}", err)
	}
	if !strings.Contains(stderr, "exceeds maximum (4 > 3)") {
		t.Errorf("stderr = %q, want limit message", stderr)
	}
}

func TestRunMissingFile(t *testing.T) {
	dir := t.TempDir()

	_, stderr, err := runCommand(t, filepath.Join(dir, "nope.md"))
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitFailure {
		t.Fatalf("Execute() error = %v, want ExitError{2}", err)
	}
	if !strings.Contains(stderr, "Error:") {
		t.Errorf("stderr = %q, want an error line", stderr)
	}
}

func TestRunFailureDoesNotMaskOtherFiles(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.md", "one two\n")

	stdout, _, err := runCommand(t, "-m", "words", "-d", "detailed", good, filepath.Join(dir, "missing.md"))
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitFailure {
		t.Fatalf("Execute() error = %v, want ExitError{2}", err)
	}
	if !strings.Contains(stdout, "good.md") {
		t.Errorf("stdout = %q, want the successful file reported", stdout)
	}
}

func TestRunInvalidFormat(t *testing.T) {
	dir := t.TempDir()
	f := writeFile(t, dir, "doc.md", "x\n")

	_, _, err := runCommand(t, "--format", "yaml", f)
	if err == nil {
		t.Fatal("Execute() error = nil, want format error")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Fatalf("Execute() error = %v, want plain error, not ExitError", err)
	}
}
