// Package compile turns source files into content trees. It plays the role
// of the external document compiler for the counting pipeline: a World maps
// file identifiers to compiled trees and resolves include references, and
// per-format Parsers do the actual compilation.
package compile

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"doccount/internal/content"
)

// Parser compiles raw document bytes into a content tree.
type Parser interface {
	Parse(r io.Reader, filename string) (*content.Node, error)
}

// SupportedExtensions lists file extensions a World can compile.
var SupportedExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".txt":      true,
	".html":     true,
	".htm":      true,
	".docx":     true,
	".pdf":      true,
	".csv":      true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".txt":
		return &TextParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// contributesText reports whether a kind can put text into the rendered
// stream, either directly or through descendants. Front ends use it to
// decide where block separators are needed.
func contributesText(k content.Kind) bool {
	switch k {
	case content.CodeBlock, content.CodeSpan, content.Raw,
		content.MathBlock, content.MathSpan, content.FuncDef:
		return false
	}
	return true
}

// appendBlock appends a block-level node to a sibling list, inserting a
// newline Text leaf between consecutive text-contributing blocks so that
// words never fuse across block boundaries when fragments are joined.
func appendBlock(siblings []*content.Node, n *content.Node) []*content.Node {
	if n == nil {
		return siblings
	}
	if contributesText(n.Kind) {
		// Look back past skipped blocks: two paragraphs separated only by
		// a code block still need whitespace between them.
		for i := len(siblings) - 1; i >= 0; i-- {
			if contributesText(siblings[i].Kind) {
				siblings = append(siblings, content.NewText("\n"))
				break
			}
		}
	}
	return append(siblings, n)
}
