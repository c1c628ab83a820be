// Package classify decides, per content node, whether the node contributes
// rendered text, is a transparent container, or excludes its whole subtree.
package classify

import "doccount/internal/content"

// Verdict is the traversal decision for one node.
type Verdict int

const (
	// Leaf means the node contributes its literal text and has no
	// text-bearing descendants left to visit.
	Leaf Verdict = iota
	// Recurse means the node contributes nothing itself; each child must
	// be visited in document order and classified independently.
	Recurse
	// Skip means the node and its entire subtree are excluded, even if
	// descendants would otherwise be leaves.
	Skip
)

func (v Verdict) String() string {
	switch v {
	case Leaf:
		return "leaf"
	case Recurse:
		return "recurse"
	case Skip:
		return "skip"
	default:
		return "unknown"
	}
}

// Classify returns the traversal verdict for a node. The decision is a pure
// function of the node itself: no traversal order, sibling state, or
// descendant lookahead is involved.
//
// Include nodes are not classified into the counting pipeline at all — the
// aggregator intercepts them before consulting the classifier and splices
// the target file's tree in. A caller that does not resolve includes gets
// Skip, so the directive itself is never counted as text.
func Classify(n *content.Node) Verdict {
	switch n.Kind {
	case content.Text:
		return Leaf
	case content.Heading, content.Paragraph, content.ListItem,
		content.Emphasis, content.Strong, content.Container:
		return Recurse
	case content.CodeBlock, content.CodeSpan, content.Raw,
		content.MathBlock, content.MathSpan, content.FuncDef:
		return Skip
	case content.FuncCall:
		// A call that rendered visible output carries it as children; a
		// bare call or a definition-only call renders nothing.
		if len(n.Children) > 0 {
			return Recurse
		}
		return Skip
	case content.Include:
		return Skip
	default:
		return Skip
	}
}
