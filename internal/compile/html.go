package compile

import (
	"fmt"
	"io"

	"doccount/internal/content"
	"golang.org/x/net/html"
)

// HTMLParser compiles HTML documents. Whitespace between elements survives
// as text nodes in the HTML tree, so no synthetic block separators are
// needed here.
type HTMLParser struct{}

func (p *HTMLParser) Parse(r io.Reader, filename string) (*content.Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	top := findBody(doc)
	if top == nil {
		top = doc
	}
	return &content.Node{
		Kind:     content.Container,
		Children: convertHTMLChildren(top),
	}, nil
}

func convertHTMLChildren(n *html.Node) []*content.Node {
	var out []*content.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if cn := convertHTML(c); cn != nil {
			out = append(out, cn)
		}
	}
	return out
}

func convertHTML(n *html.Node) *content.Node {
	switch n.Type {
	case html.TextNode:
		if n.Data == "" {
			return nil
		}
		return content.NewText(n.Data)
	case html.CommentNode:
		return &content.Node{Kind: content.Raw}
	case html.ElementNode:
		switch n.Data {
		case "script", "style", "template", "noscript":
			return &content.Node{Kind: content.Raw}
		case "pre":
			return &content.Node{Kind: content.CodeBlock}
		case "code":
			return &content.Node{Kind: content.CodeSpan}
		case "h1", "h2", "h3", "h4", "h5", "h6":
			return &content.Node{Kind: content.Heading, Children: convertHTMLChildren(n)}
		case "p":
			return &content.Node{Kind: content.Paragraph, Children: convertHTMLChildren(n)}
		case "li":
			return &content.Node{Kind: content.ListItem, Children: convertHTMLChildren(n)}
		case "em", "i":
			return &content.Node{Kind: content.Emphasis, Children: convertHTMLChildren(n)}
		case "strong", "b":
			return &content.Node{Kind: content.Strong, Children: convertHTMLChildren(n)}
		default:
			children := convertHTMLChildren(n)
			if len(children) == 0 {
				return nil
			}
			return &content.Node{Kind: content.Container, Children: children}
		}
	default:
		return nil
	}
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}
