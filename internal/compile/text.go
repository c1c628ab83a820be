package compile

import (
	"bufio"
	"io"
	"strings"

	"doccount/internal/content"
)

// TextParser compiles plain text: blank lines delimit paragraphs.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*content.Node, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	root := &content.Node{Kind: content.Container}
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		root.Children = appendBlock(root.Children, &content.Node{
			Kind:     content.Paragraph,
			Children: []*content.Node{content.NewText(current.String())},
		})
		current.Reset()
	}

	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			flush()
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	flush()

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return root, nil
}
