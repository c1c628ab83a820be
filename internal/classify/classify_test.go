package classify

import (
	"testing"

	"doccount/internal/content"
)

func TestClassify_ByKind(t *testing.T) {
	tests := []struct {
		kind content.Kind
		want Verdict
	}{
		{content.Text, Leaf},
		{content.Heading, Recurse},
		{content.Paragraph, Recurse},
		{content.ListItem, Recurse},
		{content.Emphasis, Recurse},
		{content.Strong, Recurse},
		{content.Container, Recurse},
		{content.CodeBlock, Skip},
		{content.CodeSpan, Skip},
		{content.Raw, Skip},
		{content.MathBlock, Skip},
		{content.MathSpan, Skip},
		{content.FuncDef, Skip},
		{content.Include, Skip},
	}
	for _, tt := range tests {
		got := Classify(&content.Node{Kind: tt.kind})
		if got != tt.want {
			t.Errorf("kind %s: expected %s, got %s", tt.kind, tt.want, got)
		}
	}
}

func TestClassify_FuncCall(t *testing.T) {
	bare := &content.Node{Kind: content.FuncCall}
	if got := Classify(bare); got != Skip {
		t.Errorf("bare call: expected skip, got %s", got)
	}

	rendered := &content.Node{
		Kind:     content.FuncCall,
		Children: []*content.Node{content.NewText("output")},
	}
	if got := Classify(rendered); got != Recurse {
		t.Errorf("rendered call: expected recurse, got %s", got)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	n := &content.Node{Kind: content.Paragraph, Children: []*content.Node{
		content.NewText("a"),
		{Kind: content.CodeSpan},
	}}
	first := Classify(n)
	for range 10 {
		if got := Classify(n); got != first {
			t.Fatalf("classification changed between calls: %s vs %s", first, got)
		}
	}
}
