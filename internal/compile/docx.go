package compile

import (
	"fmt"
	"io"
	"os"
	"strings"

	"doccount/internal/content"
	"github.com/fumiama/go-docx"
)

// DOCXParser compiles .docx files. Paragraphs with a heading style become
// Heading nodes; everything else becomes Paragraph nodes of text runs.
type DOCXParser struct{}

func (p *DOCXParser) Parse(r io.Reader, filename string) (*content.Node, error) {
	// go-docx needs a ReadSeeker+size, so stage to a temp file.
	tmp, err := os.CreateTemp("", "doccount-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, size)
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	root := &content.Node{Kind: content.Container}
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		text := docxParagraphText(para)
		if text == "" {
			continue
		}

		kind := content.Paragraph
		if docxHeadingLevel(para) > 0 {
			kind = content.Heading
		}
		root.Children = appendBlock(root.Children, &content.Node{
			Kind:     kind,
			Children: []*content.Node{content.NewText(text)},
		})
	}
	return root, nil
}

func docxHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(strings.ReplaceAll(para.Properties.Style.Val, " ", ""))
	for level := 1; level <= 6; level++ {
		if style == fmt.Sprintf("heading%d", level) {
			return level
		}
	}
	return 0
}

func docxParagraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
