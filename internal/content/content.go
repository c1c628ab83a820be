// Package content defines the compiled document tree that the counting
// pipeline consumes. Front ends in the compile package produce these trees;
// the classifier and aggregator treat them as read-only.
package content

// Kind tags a Node with its content variant. The set is closed: every node
// a front end produces carries exactly one of these tags, and the tag never
// changes after compilation.
type Kind int

const (
	// Text is a literal run of rendered text.
	Text Kind = iota
	// Heading wraps the inline content of a section heading.
	Heading
	// Paragraph wraps the inline content of a paragraph.
	Paragraph
	// ListItem wraps the block content of one list item.
	ListItem
	// Emphasis wraps italicized inline content.
	Emphasis
	// Strong wraps bold inline content.
	Strong
	// CodeBlock is a fenced or indented code block.
	CodeBlock
	// CodeSpan is an inline code span.
	CodeSpan
	// Raw is a comment or raw markup block that never renders as text.
	Raw
	// MathBlock is a display math expression.
	MathBlock
	// MathSpan is an inline math expression.
	MathSpan
	// FuncDef is a definition directive (#let, #import) that binds names
	// without rendering anything.
	FuncDef
	// FuncCall is a function invocation. Its rendered output, if any, is
	// attached as children.
	FuncCall
	// Include is an unresolved #include reference to another file. The
	// aggregator substitutes the target file's tree at this point.
	Include
	// Container is a generic grouping node with no text of its own.
	Container
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "text"
	case Heading:
		return "heading"
	case Paragraph:
		return "paragraph"
	case ListItem:
		return "list_item"
	case Emphasis:
		return "emphasis"
	case Strong:
		return "strong"
	case CodeBlock:
		return "code_block"
	case CodeSpan:
		return "code_span"
	case Raw:
		return "raw"
	case MathBlock:
		return "math_block"
	case MathSpan:
		return "math_span"
	case FuncDef:
		return "func_def"
	case FuncCall:
		return "func_call"
	case Include:
		return "include"
	case Container:
		return "container"
	default:
		return "unknown"
	}
}

// Node is one node of a compiled document tree. Trees are acyclic and
// finite, bounded by the size of the source document.
type Node struct {
	Kind     Kind
	Text     string  // literal text, set only for Text leaves
	Ref      string  // include target, set only for Include nodes
	Children []*Node // ordered, empty for leaves
}

// NewText builds a Text leaf.
func NewText(s string) *Node {
	return &Node{Kind: Text, Text: s}
}

// Fragment is a non-empty run of rendered text tagged with the file it
// originated from. Fragments are created during traversal, never mutated,
// and consumed once by the aggregator.
type Fragment struct {
	Text string
	File string
}
