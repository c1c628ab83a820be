package output

import (
	"fmt"
	"strings"

	"doccount/internal/count"
)

func formatCSV(entries []Entry, display Display, mode Mode) string {
	var b strings.Builder

	switch mode {
	case ModeWords:
		b.WriteString("file,words\n")
	case ModeCharacters:
		b.WriteString("file,characters\n")
	default:
		b.WriteString("file,words,characters\n")
	}

	writeRow := func(name string, r count.Result) {
		switch mode {
		case ModeWords:
			fmt.Fprintf(&b, "%s,%d\n", name, r.Words)
		case ModeCharacters:
			fmt.Fprintf(&b, "%s,%d\n", name, r.Characters)
		default:
			fmt.Fprintf(&b, "%s,%d,%d\n", name, r.Words, r.Characters)
		}
	}

	if display == DisplayTotal && len(entries) > 1 {
		writeRow("total", Total(entries))
		return b.String()
	}
	for _, e := range entries {
		writeRow(e.File, e.Result)
	}
	return b.String()
}
