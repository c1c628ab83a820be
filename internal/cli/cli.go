// Package cli implements the doccount command: compile the given documents,
// count rendered words and characters, format the results, and enforce
// optional count limits for CI use.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"doccount/internal/compile"
	"doccount/internal/count"
	"doccount/internal/output"
)

// Exit codes: 0 success, 1 limit violation, 2 compilation or resolution
// failure.
const (
	ExitOK      = 0
	ExitLimits  = 1
	ExitFailure = 2
)

// ExitError carries the process exit code out of cobra's RunE. Messages are
// printed before it is returned, so it renders as an empty error.
type ExitError struct{ Code int }

func (e *ExitError) Error() string { return fmt.Sprintf("exit code %d", e.Code) }

// Limits are optional bounds on the total count. Negative means unset.
type Limits struct {
	MaxWords      int
	MinWords      int
	MaxCharacters int
	MinCharacters int
}

// Check returns one message per violated limit.
func (l Limits) Check(total count.Result) []string {
	var violations []string
	if l.MaxWords >= 0 && total.Words > l.MaxWords {
		violations = append(violations,
			fmt.Sprintf("word count exceeds maximum (%d > %d)", total.Words, l.MaxWords))
	}
	if l.MinWords >= 0 && total.Words < l.MinWords {
		violations = append(violations,
			fmt.Sprintf("word count below minimum (%d < %d)", total.Words, l.MinWords))
	}
	if l.MaxCharacters >= 0 && total.Characters > l.MaxCharacters {
		violations = append(violations,
			fmt.Sprintf("character count exceeds maximum (%d > %d)", total.Characters, l.MaxCharacters))
	}
	if l.MinCharacters >= 0 && total.Characters < l.MinCharacters {
		violations = append(violations,
			fmt.Sprintf("character count below minimum (%d < %d)", total.Characters, l.MinCharacters))
	}
	return violations
}

type options struct {
	format         string
	mode           string
	display        string
	outputPath     string
	excludeImports bool
	concurrency    int
	limits         Limits
}

// NewRootCommand builds the doccount command.
func NewRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "doccount [flags] FILE...",
		Short: "Count words and characters in markup documents",
		Long: `Count words and characters in markup documents.

Counts are based on the compiled document, so only rendered text is
counted: markup syntax, code blocks, comments, math, and definitions are
excluded. Included files are counted with their own provenance and can be
excluded with --exclude-imports.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.format, "format", "f", "human", "output format (human, json, csv)")
	flags.StringVarP(&opts.mode, "mode", "m", "both", "what to count (both, words, characters)")
	flags.StringVarP(&opts.display, "display", "d", "auto", "display mode (auto, total, quiet, detailed)")
	flags.StringVarP(&opts.outputPath, "output", "o", "", "write output to a file instead of stdout")
	flags.BoolVarP(&opts.excludeImports, "exclude-imports", "e", false, "count only the listed files, not their includes")
	flags.IntVar(&opts.concurrency, "jobs", 0, "max files processed concurrently (0 = default)")
	flags.IntVar(&opts.limits.MaxWords, "max-words", -1, "exit nonzero if word count exceeds N")
	flags.IntVar(&opts.limits.MinWords, "min-words", -1, "exit nonzero if word count is below N")
	flags.IntVar(&opts.limits.MaxCharacters, "max-characters", -1, "exit nonzero if character count exceeds N")
	flags.IntVar(&opts.limits.MinCharacters, "min-characters", -1, "exit nonzero if character count is below N")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts *options) error {
	format, err := output.ParseFormat(opts.format)
	if err != nil {
		return err
	}
	mode, err := output.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	display, err := output.ParseDisplay(opts.display)
	if err != nil {
		return err
	}

	world := compile.NewFSWorld("")
	world.PDFFallback = true

	report := count.Aggregate(context.Background(), world, args, count.Options{
		ExcludeImports: opts.excludeImports,
		Concurrency:    opts.concurrency,
	})

	var entries []output.Entry
	for _, f := range report.Files {
		if f.Err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", f.Err)
			continue
		}
		entries = append(entries, output.Entry{File: f.File, Result: f.Result})
	}

	formatter := output.Formatter{Format: format, Mode: mode}
	if err := writeOutput(cmd.OutOrStdout(), formatter.Render(entries, display), opts.outputPath); err != nil {
		return err
	}

	if report.Failed() {
		return &ExitError{Code: ExitFailure}
	}
	if violations := opts.limits.Check(report.Total); len(violations) > 0 {
		for _, v := range violations {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", v)
		}
		return &ExitError{Code: ExitLimits}
	}
	return nil
}

func writeOutput(stdout io.Writer, content string, path string) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write output file: %w", err)
	}
	return nil
}
