package compile

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"doccount/internal/content"
)

// CSVParser renders CSV files as one line per record, cells separated by a
// single space. The header row counts like any other record.
type CSVParser struct{}

func (p *CSVParser) Parse(r io.Reader, filename string) (*content.Node, error) {
	reader := csv.NewReader(r)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	root := &content.Node{Kind: content.Container}
	for _, row := range records {
		line := strings.TrimSpace(strings.Join(row, " "))
		if line == "" {
			continue
		}
		para := &content.Node{
			Kind:     content.Paragraph,
			Children: []*content.Node{content.NewText(line)},
		}
		root.Children = appendBlock(root.Children, para)
	}
	return root, nil
}
