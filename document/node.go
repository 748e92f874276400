package document

import (
	"github.com/pooriaaskarim/logd/record"
	"github.com/pooriaaskarim/logd/segment"
)

// Kind identifies a node variant. The set is closed: the layout engine
// dispatches over it exhaustively, so adding a Kind means teaching layout
// about it in the same change.
type Kind uint8

const (
	KindHeader Kind = iota
	KindMessage
	KindError
	KindFooter
	KindMetadata
	KindParagraph
	KindGroup
	KindBox
	KindIndentation
	KindDecorated
	KindRow
	KindFiller
	KindMap
	KindList

	numKinds int = iota
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	names := [...]string{
		"header", "message", "error", "footer", "metadata", "paragraph",
		"group", "box", "indentation", "decorated", "row", "filler",
		"map", "list",
	}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// BorderStyle selects the glyph set a box is framed with.
type BorderStyle uint8

const (
	BorderSharp BorderStyle = iota
	BorderRounded
	BorderDouble
)

// Valid reports whether the border style is one of the fixed glyph sets.
func (b BorderStyle) Valid() bool {
	return b <= BorderDouble
}

// Node is one vertex of a semantic document tree. Exactly one variant's
// fields are meaningful per Kind; the rest stay zero. A node owns its
// children exclusively (tree, never DAG) so the arena can recycle subtrees
// without reference counting.
//
// Field use per kind:
//   - leaf text kinds (header, message, error, footer, metadata, paragraph):
//     Text, Tags, Style
//   - group, indentation, box, decorated, row, map, list: Children
//   - box: Border, UseColors, BoxWidth (0 means intrinsic width)
//   - indentation: Indent prefix string
//   - decorated: Text is the label, Children the value, Hang the column at
//     which wrapped continuation lines resume (0 means label end column),
//     ContinuationPrefix an optional marker for continuation lines
//   - row: CellWidths allots one column budget per child cell
//   - filler: Text repeated to the available width
//   - map: each child carries Text as its key and one child as its value
type Node struct {
	Kind     Kind
	Text     string
	Tags     segment.Tag
	Style    segment.Style
	Children []*Node

	Border    BorderStyle
	UseColors bool
	BoxWidth  int

	Indent string

	Hang               int
	ContinuationPrefix string

	CellWidths []int

	pooled bool
}

// AggregateTags returns the node's own tags ORed with every descendant's,
// letting decorators find matching content without a full traversal of
// their own.
func (n *Node) AggregateTags() segment.Tag {
	tags := n.Tags
	for _, child := range n.Children {
		tags |= child.AggregateTags()
	}
	return tags
}

// IsLeaf reports whether the node kind never carries children.
func (n *Node) IsLeaf() bool {
	switch n.Kind {
	case KindHeader, KindMessage, KindError, KindFooter, KindMetadata,
		KindParagraph, KindFiller:
		return true
	default:
		return false
	}
}

// Append attaches children to the node. The node takes ownership.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// reset clears every mutable field to the canonical empty state, keeping
// the Children slice capacity for reuse.
func (n *Node) reset() {
	n.Kind = 0
	n.Text = ""
	n.Tags = segment.TagNone
	n.Style = segment.Style{}
	n.Children = n.Children[:0]
	n.Border = BorderSharp
	n.UseColors = false
	n.BoxWidth = 0
	n.Indent = ""
	n.Hang = 0
	n.ContinuationPrefix = ""
	n.CellWidths = n.CellWidths[:0]
}

// Document is an ordered sequence of top-level nodes plus read-only
// provenance. A document belongs to exactly one in-flight log event and
// must be released exactly once.
type Document struct {
	Nodes []*Node
	Entry *record.Entry

	pooled bool
}

// Append attaches top-level nodes to the document.
func (d *Document) Append(nodes ...*Node) {
	d.Nodes = append(d.Nodes, nodes...)
}

// AggregateTags folds every top-level node's aggregate tags together.
func (d *Document) AggregateTags() segment.Tag {
	var tags segment.Tag
	for _, n := range d.Nodes {
		tags |= n.AggregateTags()
	}
	return tags
}

func (d *Document) reset() {
	d.Nodes = d.Nodes[:0]
	d.Entry = nil
}
