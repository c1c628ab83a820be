package output

import (
	"fmt"
	"strings"

	"doccount/internal/count"
)

func formatHuman(entries []Entry, display Display, mode Mode) string {
	showBreakdown := false
	switch display {
	case DisplayAuto:
		showBreakdown = len(entries) > 1
	case DisplayDetailed:
		showBreakdown = true
	}

	if !showBreakdown {
		return formatSingle(Total(entries), display == DisplayQuiet, mode)
	}
	return formatTable(entries, mode)
}

func formatSingle(r count.Result, quiet bool, mode Mode) string {
	switch {
	case mode == ModeWords && quiet:
		return fmt.Sprintf("%d\n", r.Words)
	case mode == ModeWords:
		return fmt.Sprintf(" Words:      %d\n", r.Words)
	case mode == ModeCharacters && quiet:
		return fmt.Sprintf("%d\n", r.Characters)
	case mode == ModeCharacters:
		return fmt.Sprintf(" Characters: %d\n", r.Characters)
	case quiet:
		return fmt.Sprintf("%d %d\n", r.Words, r.Characters)
	default:
		return fmt.Sprintf(" Words:      %d\n Characters: %d\n", r.Words, r.Characters)
	}
}

func formatTable(entries []Entry, mode Mode) string {
	nameWidth := len("Total")
	for _, e := range entries {
		if len(e.File) > nameWidth {
			nameWidth = len(e.File)
		}
	}

	var b strings.Builder
	writeRow := func(name string, r count.Result) {
		switch mode {
		case ModeWords:
			fmt.Fprintf(&b, "%-*s %12d\n", nameWidth, name, r.Words)
		case ModeCharacters:
			fmt.Fprintf(&b, "%-*s %12d\n", nameWidth, name, r.Characters)
		default:
			fmt.Fprintf(&b, "%-*s %12d %12d\n", nameWidth, name, r.Words, r.Characters)
		}
	}

	switch mode {
	case ModeWords:
		fmt.Fprintf(&b, "%-*s %12s\n", nameWidth, "File", "Words")
	case ModeCharacters:
		fmt.Fprintf(&b, "%-*s %12s\n", nameWidth, "File", "Characters")
	default:
		fmt.Fprintf(&b, "%-*s %12s %12s\n", nameWidth, "File", "Words", "Characters")
	}
	b.WriteString(separator(nameWidth, mode))

	for _, e := range entries {
		writeRow(e.File, e.Result)
	}

	b.WriteString(separator(nameWidth, mode))
	writeRow("Total", Total(entries))
	return b.String()
}

func separator(nameWidth int, mode Mode) string {
	cols := 2
	if mode == ModeBoth {
		cols = 3
	}
	return strings.Repeat("-", nameWidth+13*(cols-1)) + "\n"
}
