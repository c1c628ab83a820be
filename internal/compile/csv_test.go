package compile

import (
	"strings"
	"testing"
)

func csvText(t *testing.T, input string) string {
	t.Helper()
	p := &CSVParser{}
	tree, err := p.Parse(strings.NewReader(input), "data.csv")
	if err != nil {
		t.Fatal(err)
	}
	return flatten(tree)
}

func TestCSVRowsBecomeLines(t *testing.T) {
	text := csvText(t, "name,role\nada,engineer\ngrace,admiral\n")
	if got := len(strings.Fields(text)); got != 6 {
		t.Errorf("words = %d, want 6 (text %q)", got, text)
	}
}

func TestCSVQuotedCellsKeepSpaces(t *testing.T) {
	text := csvText(t, "title\n\"hello there world\"\n")
	if got := len(strings.Fields(text)); got != 4 {
		t.Errorf("words = %d, want 4 (text %q)", got, text)
	}
}

func TestCSVEmptyInput(t *testing.T) {
	text := csvText(t, "")
	if text != "" {
		t.Errorf("rendered text = %q, want empty", text)
	}
}

func TestCSVRowsDoNotFuse(t *testing.T) {
	text := csvText(t, "end\nstart\n")
	if strings.Contains(text, "endstart") {
		t.Errorf("rows fused: %q", text)
	}
}
