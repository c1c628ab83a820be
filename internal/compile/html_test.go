package compile

import (
	"strings"
	"testing"

	"doccount/internal/content"
)

func TestHTMLParser_Structure(t *testing.T) {
	input := `<html><head><title>T</title></head><body>
<h1>Heading</h1>
<p>Some <em>styled</em> <strong>text</strong> here.</p>
<pre>ignored code</pre>
<script>var x = 1;</script>
<!-- a comment -->
<ul><li>one</li><li>two</li></ul>
</body></html>`

	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var heading, para *content.Node
	var sawPre, sawScript bool
	var walk func(*content.Node)
	walk = func(n *content.Node) {
		switch n.Kind {
		case content.Heading:
			heading = n
		case content.Paragraph:
			para = n
		case content.CodeBlock:
			sawPre = true
		case content.Raw:
			sawScript = true
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	walk(tree)

	if heading == nil || flatten(heading) != "Heading" {
		t.Errorf("expected heading %q, got %+v", "Heading", heading)
	}
	if para == nil {
		t.Fatal("expected a paragraph")
	}
	if got := flatten(para); got != "Some styled text here." {
		t.Errorf("paragraph text: expected %q, got %q", "Some styled text here.", got)
	}
	if !sawPre {
		t.Error("expected pre to map to a code block")
	}
	if !sawScript {
		t.Error("expected script to map to raw")
	}
}

func TestHTMLParser_RawSubtreesContributeNothing(t *testing.T) {
	input := `<body><script>hidden()</script><style>p{}</style><!-- note --></body>`
	p := &HTMLParser{}
	tree, err := p.Parse(strings.NewReader(input), "page.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.TrimSpace(flatten(tree)); got != "" {
		t.Errorf("expected no text, got %q", got)
	}
}
