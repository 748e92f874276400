package document

import (
	"sync"

	"github.com/pooriaaskarim/logd/record"
	"github.com/pooriaaskarim/logd/segment"
)

// Arena is a registry of free lists keyed by node kind (plus lists for
// documents and physical lines). Every node a formatter or decorator
// creates comes out of an arena and goes back through Release, so sustained
// logging produces no per-event garbage.
//
// Growth is unbounded: the high-watermark equals the largest set of
// concurrently in-flight documents, which is bounded by the caller's
// concurrency level. That trade-off is deliberate; there is no eviction.
//
// An arena is safe for concurrent checkout/release from multiple
// goroutines. Construct one per process (or per test) and pass it down
// explicitly; there is no package-level singleton.
type Arena struct {
	mu    sync.Mutex
	nodes [numKinds][]*Node
	docs  []*Document
	lines []*PhysicalLine

	outstanding int
}

// NewArena returns an empty arena.
func NewArena() *Arena {
	return &Arena{}
}

// Outstanding reports how many nodes, documents and lines are currently
// checked out and not yet released. Used by lifecycle tests to prove pool
// conservation.
func (a *Arena) Outstanding() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.outstanding
}

func (a *Arena) checkout(kind Kind) *Node {
	a.mu.Lock()
	list := a.nodes[kind]
	var n *Node
	if len(list) > 0 {
		n = list[len(list)-1]
		a.nodes[kind] = list[:len(list)-1]
	}
	a.outstanding++
	a.mu.Unlock()

	if n == nil {
		n = &Node{}
	}
	n.Kind = kind
	n.pooled = false
	return n
}

// Release resets a single node and returns it to its kind's free list. The
// node must have no live children; use ReleaseRecursive for subtrees.
// Releasing the same node twice is a programmer error and panics.
func (a *Arena) Release(n *Node) {
	if n == nil {
		return
	}
	if n.pooled {
		panic("document: node released twice")
	}
	kind := n.Kind
	n.reset()
	n.pooled = true

	a.mu.Lock()
	a.nodes[kind] = append(a.nodes[kind], n)
	a.outstanding--
	a.mu.Unlock()
}

// ReleaseRecursive releases a whole subtree bottom-up: children strictly
// before their parent, so no pooled slot ever holds a reference to a live
// grandchild.
func (a *Arena) ReleaseRecursive(n *Node) {
	if n == nil {
		return
	}
	for _, child := range n.Children {
		a.ReleaseRecursive(child)
	}
	n.Children = n.Children[:0]
	a.Release(n)
}

// CheckoutDocument hands out an empty document bound to entry. The caller
// owns it for exactly one log event and must release it on every exit path.
func (a *Arena) CheckoutDocument(entry *record.Entry) *Document {
	a.mu.Lock()
	var d *Document
	if len(a.docs) > 0 {
		d = a.docs[len(a.docs)-1]
		a.docs = a.docs[:len(a.docs)-1]
	}
	a.outstanding++
	a.mu.Unlock()

	if d == nil {
		d = &Document{}
	}
	d.Entry = entry
	d.pooled = false
	return d
}

// ReleaseDocument releases every node in the document bottom-up, then the
// document itself. Releasing a document twice panics.
func (a *Arena) ReleaseDocument(d *Document) {
	if d == nil {
		return
	}
	if d.pooled {
		panic("document: document released twice")
	}
	for _, n := range d.Nodes {
		a.ReleaseRecursive(n)
	}
	d.reset()
	d.pooled = true

	a.mu.Lock()
	a.docs = append(a.docs, d)
	a.outstanding--
	a.mu.Unlock()
}

// CheckoutLine hands out an empty physical line.
func (a *Arena) CheckoutLine() *PhysicalLine {
	a.mu.Lock()
	var l *PhysicalLine
	if len(a.lines) > 0 {
		l = a.lines[len(a.lines)-1]
		a.lines = a.lines[:len(a.lines)-1]
	}
	a.outstanding++
	a.mu.Unlock()

	if l == nil {
		l = &PhysicalLine{}
	}
	l.pooled = false
	return l
}

// ReleaseLine returns one physical line to the pool.
func (a *Arena) ReleaseLine(l *PhysicalLine) {
	if l == nil {
		return
	}
	if l.pooled {
		panic("document: line released twice")
	}
	l.reset()
	l.pooled = true

	a.mu.Lock()
	a.lines = append(a.lines, l)
	a.outstanding--
	a.mu.Unlock()
}

// ReleaseLines returns a laid-out document's lines to the pool.
func (a *Arena) ReleaseLines(lines []*PhysicalLine) {
	for _, l := range lines {
		a.ReleaseLine(l)
	}
}

// Leaf factories. Tags are required; pass segment.TagNone explicitly for
// untagged content.

// NewHeader allocates a header leaf.
func (a *Arena) NewHeader(text string, tags segment.Tag) *Node {
	n := a.checkout(KindHeader)
	n.Text = text
	n.Tags = tags | segment.TagHeader
	return n
}

// NewMessage allocates a message leaf.
func (a *Arena) NewMessage(text string, tags segment.Tag) *Node {
	n := a.checkout(KindMessage)
	n.Text = text
	n.Tags = tags | segment.TagMessage
	return n
}

// NewError allocates an error leaf.
func (a *Arena) NewError(text string, tags segment.Tag) *Node {
	n := a.checkout(KindError)
	n.Text = text
	n.Tags = tags | segment.TagError
	return n
}

// NewFooter allocates a footer leaf.
func (a *Arena) NewFooter(text string, tags segment.Tag) *Node {
	n := a.checkout(KindFooter)
	n.Text = text
	n.Tags = tags
	return n
}

// NewMetadata allocates a metadata leaf.
func (a *Arena) NewMetadata(text string, tags segment.Tag) *Node {
	n := a.checkout(KindMetadata)
	n.Text = text
	n.Tags = tags
	return n
}

// NewParagraph allocates a flow-wrappable text leaf.
func (a *Arena) NewParagraph(text string, tags segment.Tag) *Node {
	n := a.checkout(KindParagraph)
	n.Text = text
	n.Tags = tags
	return n
}

// NewFiller allocates a leaf whose text repeats to the available width.
func (a *Arena) NewFiller(pattern string, tags segment.Tag) *Node {
	n := a.checkout(KindFiller)
	n.Text = pattern
	n.Tags = tags
	return n
}

// Structural factories.

// NewGroup allocates an unframed ordered container.
func (a *Arena) NewGroup(children ...*Node) *Node {
	n := a.checkout(KindGroup)
	n.Children = append(n.Children, children...)
	return n
}

/// NewBox allocates a framed container. A zero width means intrinsic: the
// box expands to its widest content line.
func (a *Arena) NewBox(border BorderStyle, useColors bool, children ...*Node) *Node {
	n := a.checkout(KindBox)
	n.Border = border
	n.UseColors = useColors
	n.Tags = segment.TagBorder
	n.Children = append(n.Children, children...)
	return n
}

// NewIndentation allocates a container that prefixes every laid-out child
// line with indent.
func (a *Arena) NewIndentation(indent string, children ...*Node) *Node {
	n := a.checkout(KindIndentation)
	n.Indent = indent
	n.Children = append(n.Children, children...)
	return n
}

// NewDecorated allocates a label/value pair with hanging indentation for
// wrapped continuation lines. hang <= 0 means "label end column".
func (a *Arena) NewDecorated(label string, hang int, children ...*Node) *Node {
	n := a.checkout(KindDecorated)
	n.Text = label
	n.Hang = hang
	n.Children = append(n.Children, children...)
	return n
}

// NewRow allocates fixed-width cells laid out side by side. cellWidths
// allots one column budget per child.
func (a *Arena) NewRow(cellWidths []int, cells ...*Node) *Node {
	n := a.checkout(KindRow)
	n.CellWidths = append(n.CellWidths, cellWidths...)
	n.Children = append(n.Children, cells...)
	return n
}

// NewMap allocates a recursive key/value container. Use NewMapEntry for its
// children.
func (a *Arena) NewMap(entries ...*Node) *Node {
	n := a.checkout(KindMap)
	n.Children = append(n.Children, entries...)
	return n
}

// NewMapEntry allocates one key/value pair for a map node.
func (a *Arena) NewMapEntry(key string, value *Node) *Node {
	n := a.checkout(KindDecorated)
	n.Text = key
	n.Tags = segment.TagKey
	n.Children = append(n.Children, value)
	return n
}

// NewList allocates a recursive sequence container.
func (a *Arena) NewList(items ...*Node) *Node {
	n := a.checkout(KindList)
	n.Children = append(n.Children, items...)
	return n
}
