// Package output formats count results for the CLI: a human-readable
// table, JSON for machine processing, or CSV for spreadsheet import.
package output

import (
	"fmt"

	"doccount/internal/count"
)

// Format selects the output representation.
type Format int

const (
	FormatHuman Format = iota
	FormatJSON
	FormatCSV
)

func (f Format) String() string {
	switch f {
	case FormatHuman:
		return "human"
	case FormatJSON:
		return "json"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// ParseFormat parses a format name.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "human":
		return FormatHuman, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("unknown format %q (want human, json, or csv)", s)
	}
}

// Mode selects which counts to report.
type Mode int

const (
	ModeBoth Mode = iota
	ModeWords
	ModeCharacters
)

func (m Mode) String() string {
	switch m {
	case ModeBoth:
		return "both"
	case ModeWords:
		return "words"
	case ModeCharacters:
		return "characters"
	default:
		return "unknown"
	}
}

// ParseMode parses a counting mode name.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "both":
		return ModeBoth, nil
	case "words":
		return ModeWords, nil
	case "characters":
		return ModeCharacters, nil
	default:
		return 0, fmt.Errorf("unknown mode %q (want both, words, or characters)", s)
	}
}

// Display controls verbosity when reporting multiple files.
type Display int

const (
	// DisplayAuto shows a breakdown for multiple files, a simple count
	// for a single file.
	DisplayAuto Display = iota
	// DisplayTotal shows only the aggregate.
	DisplayTotal
	// DisplayQuiet suppresses labels and prints bare numbers.
	DisplayQuiet
	// DisplayDetailed always shows the per-file breakdown.
	DisplayDetailed
)

// ParseDisplay parses a display mode name.
func ParseDisplay(s string) (Display, error) {
	switch s {
	case "auto":
		return DisplayAuto, nil
	case "total":
		return DisplayTotal, nil
	case "quiet":
		return DisplayQuiet, nil
	case "detailed":
		return DisplayDetailed, nil
	default:
		return 0, fmt.Errorf("unknown display mode %q (want auto, total, quiet, or detailed)", s)
	}
}

// Entry pairs a file name with its count for formatting.
type Entry struct {
	File   string
	Result count.Result
}

// Total sums all entries pointwise.
func Total(entries []Entry) count.Result {
	total := count.Result{}
	for _, e := range entries {
		total = total.Add(e.Result)
	}
	return total
}

// Formatter renders count results in a fixed format and mode.
type Formatter struct {
	Format Format
	Mode   Mode
}

// Render formats the entries according to the configured format.
func (f Formatter) Render(entries []Entry, display Display) string {
	switch f.Format {
	case FormatJSON:
		return formatJSON(entries, display, f.Mode)
	case FormatCSV:
		return formatCSV(entries, display, f.Mode)
	default:
		return formatHuman(entries, display, f.Mode)
	}
}
