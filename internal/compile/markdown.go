package compile

import (
	"io"
	"regexp"
	"strings"

	"doccount/internal/content"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownParser compiles Markdown using goldmark.
//
// Beyond plain CommonMark it recognizes directive paragraphs — a paragraph
// whose entire content is a single directive line:
//
//	#include "other.md"   splices the target file's rendered content
//	#import "defs.md"     binds definitions, renders nothing
//	#let name = value     binds a definition, renders nothing
//	#name(args)           bare call with no rendered output
//
// and math delimiters: a paragraph wrapped in $$...$$ is display math, and
// $...$ inside a text run is inline math. Math never contributes text.
type MarkdownParser struct{}

var (
	includeRe = regexp.MustCompile(`^#include\s+"([^"]+)"\s*$`)
	importRe  = regexp.MustCompile(`^#import\s+"[^"]+"`)
	letRe     = regexp.MustCompile(`^#let\s+\S`)
	callRe    = regexp.MustCompile(`^#[A-Za-z_][A-Za-z0-9_.]*\([^()]*\)\s*$`)
)

func (p *MarkdownParser) Parse(r io.Reader, filename string) (*content.Node, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(src))

	return &content.Node{
		Kind:     content.Container,
		Children: convertBlocks(doc, src),
	}, nil
}

func convertBlocks(parent ast.Node, src []byte) []*content.Node {
	var out []*content.Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		out = appendBlock(out, convertBlock(c, src))
	}
	return out
}

func convertBlock(n ast.Node, src []byte) *content.Node {
	switch b := n.(type) {
	case *ast.Heading:
		return &content.Node{Kind: content.Heading, Children: convertInlines(b, src)}
	case *ast.Paragraph:
		return paragraphNode(b, src)
	case *ast.TextBlock:
		return &content.Node{Kind: content.Paragraph, Children: convertInlines(b, src)}
	case *ast.Blockquote:
		return &content.Node{Kind: content.Container, Children: convertBlocks(b, src)}
	case *ast.List:
		return &content.Node{Kind: content.Container, Children: convertBlocks(b, src)}
	case *ast.ListItem:
		return &content.Node{Kind: content.ListItem, Children: convertBlocks(b, src)}
	case *ast.FencedCodeBlock:
		return &content.Node{Kind: content.CodeBlock}
	case *ast.CodeBlock:
		return &content.Node{Kind: content.CodeBlock}
	case *ast.HTMLBlock:
		return &content.Node{Kind: content.Raw}
	case *ast.ThematicBreak:
		return nil
	default:
		if n.ChildCount() == 0 {
			return nil
		}
		return &content.Node{Kind: content.Container, Children: convertBlocks(n, src)}
	}
}

// paragraphNode checks a paragraph for directive or display-math form
// before treating it as ordinary inline content.
func paragraphNode(b *ast.Paragraph, src []byte) *content.Node {
	line := strings.TrimSpace(plainText(b, src))

	if len(line) >= 5 && strings.HasPrefix(line, "$$") && strings.HasSuffix(line, "$$") {
		return &content.Node{Kind: content.MathBlock}
	}
	if m := includeRe.FindStringSubmatch(line); m != nil {
		return &content.Node{Kind: content.Include, Ref: m[1]}
	}
	if importRe.MatchString(line) || letRe.MatchString(line) {
		return &content.Node{Kind: content.FuncDef}
	}
	if callRe.MatchString(line) {
		return &content.Node{Kind: content.FuncCall}
	}
	return &content.Node{Kind: content.Paragraph, Children: convertInlines(b, src)}
}

func convertInlines(parent ast.Node, src []byte) []*content.Node {
	var out []*content.Node
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		out = append(out, convertInline(c, src)...)
	}
	return out
}

func convertInline(n ast.Node, src []byte) []*content.Node {
	switch i := n.(type) {
	case *ast.Text:
		s := string(i.Segment.Value(src))
		if i.SoftLineBreak() || i.HardLineBreak() {
			s += "\n"
		}
		return splitInlineMath(s)
	case *ast.String:
		return splitInlineMath(string(i.Value))
	case *ast.CodeSpan:
		return []*content.Node{{Kind: content.CodeSpan}}
	case *ast.Emphasis:
		kind := content.Emphasis
		if i.Level >= 2 {
			kind = content.Strong
		}
		return []*content.Node{{Kind: kind, Children: convertInlines(i, src)}}
	case *ast.Link:
		// Link text renders; the destination does not.
		return []*content.Node{{Kind: content.Container, Children: convertInlines(i, src)}}
	case *ast.AutoLink:
		return []*content.Node{content.NewText(string(i.Label(src)))}
	case *ast.Image:
		return []*content.Node{{Kind: content.Raw}}
	case *ast.RawHTML:
		return []*content.Node{{Kind: content.Raw}}
	default:
		if n.ChildCount() == 0 {
			return nil
		}
		return []*content.Node{{Kind: content.Container, Children: convertInlines(n, src)}}
	}
}

// plainText flattens the inline text of a node, used only for directive and
// display-math detection.
func plainText(n ast.Node, src []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
			if t.SoftLineBreak() || t.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(plainText(c, src))
		}
	}
	return buf.String()
}

// splitInlineMath splits a text run on $...$ pairs, producing Text leaves
// interleaved with MathSpan nodes. A pair must be non-empty and stay on one
// line; anything else is treated as a literal dollar sign.
func splitInlineMath(s string) []*content.Node {
	if s == "" {
		return nil
	}
	if !strings.Contains(s, "$") {
		return []*content.Node{content.NewText(s)}
	}

	var out []*content.Node
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			out = append(out, content.NewText(plain.String()))
			plain.Reset()
		}
	}

	for i := 0; i < len(s); {
		if s[i] != '$' {
			plain.WriteByte(s[i])
			i++
			continue
		}
		end := strings.IndexByte(s[i+1:], '$')
		if end < 0 {
			plain.WriteString(s[i:])
			break
		}
		inner := s[i+1 : i+1+end]
		if strings.TrimSpace(inner) == "" || strings.Contains(inner, "\n") {
			plain.WriteByte('$')
			i++
			continue
		}
		flush()
		out = append(out, &content.Node{Kind: content.MathSpan})
		i += end + 2
	}
	flush()
	return out
}
