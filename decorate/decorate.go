// Package decorate implements the ordered, type-prioritized pipeline of
// tree-to-tree document transformations: content transforms first, visual
// styling next, structural framing last (box before depth indent), unknown
// categories last of all. Duplicate decorators (same type, equal
// configuration) are removed before the pipeline runs, so applying a
// decorator list is idempotent by construction.
package decorate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pooriaaskarim/logd/document"
	"github.com/pooriaaskarim/logd/record"
	"github.com/pooriaaskarim/logd/segment"
	"github.com/pooriaaskarim/logd/textwidth"
)

// Category declares where a decorator sits in the auto-sorted pipeline.
type Category uint8

const (
	// CategoryTransform mutates content (wrapping, prefixes).
	CategoryTransform Category = iota
	// CategoryVisual applies styling without changing structure.
	CategoryVisual
	// CategoryBox adds structural framing.
	CategoryBox
	// CategoryIndent adds hierarchy-depth indentation, after framing.
	CategoryIndent
	// CategoryUnknown sorts after every known category.
	CategoryUnknown
)

// Decorator transforms a document in place. Implementations receive the
// arena so structural decorators can allocate wrapper nodes, and the
// originating entry for level-based decisions. A decorator must not retain
// references to the document or its nodes beyond the Apply call.
type Decorator interface {
	Apply(arena *document.Arena, doc *document.Document, entry *record.Entry)
	Category() Category
	// Fingerprint identifies the decorator's type and configuration.
	// Decorators with equal fingerprints are duplicates.
	Fingerprint() string
}

// Pipeline is a deduplicated, category-sorted decorator sequence.
type Pipeline struct {
	decorators []Decorator
}

// NewPipeline builds a pipeline from decorators in any order. The sort is
// stable, so decorators within the same category keep their given relative
// order; duplicates keep their first occurrence.
func NewPipeline(decorators ...Decorator) *Pipeline {
	seen := make(map[string]bool, len(decorators))
	deduped := make([]Decorator, 0, len(decorators))
	for _, d := range decorators {
		fp := d.Fingerprint()
		if seen[fp] {
			continue
		}
		seen[fp] = true
		deduped = append(deduped, d)
	}
	sort.SliceStable(deduped, func(i, j int) bool {
		return deduped[i].Category() < deduped[j].Category()
	})
	return &Pipeline{decorators: deduped}
}

// Decorators exposes the effective (deduplicated, sorted) sequence.
func (p *Pipeline) Decorators() []Decorator {
	return p.decorators
}

// Run applies every decorator in order.
func (p *Pipeline) Run(arena *document.Arena, doc *document.Document, entry *record.Entry) {
	for _, d := range p.decorators {
		d.Apply(arena, doc, entry)
	}
}

// StyleDecorator assigns level- and tag-based style hints to the document's
// nodes: error content red, headers bold, borders dim, the level token
// colored by severity.
type StyleDecorator struct{}

// NewStyleDecorator returns the standard level/tag styling decorator.
func NewStyleDecorator() StyleDecorator { return StyleDecorator{} }

// Category implements Decorator.
func (StyleDecorator) Category() Category { return CategoryVisual }

// Fingerprint implements Decorator.
func (StyleDecorator) Fingerprint() string { return "style" }

// Apply implements Decorator.
func (d StyleDecorator) Apply(_ *document.Arena, doc *document.Document, entry *record.Entry) {
	level := record.InfoLevel
	if entry != nil {
		level = entry.Level
	}
	for _, n := range doc.Nodes {
		d.styleNode(n, level)
	}
}

func (d StyleDecorator) styleNode(n *document.Node, level record.Level) {
	if n.Style.IsZero() {
		n.Style = styleFor(n.Tags, level)
	}
	for _, child := range n.Children {
		d.styleNode(child, level)
	}
}

// LevelColor maps a severity to its conventional terminal color.
func LevelColor(level record.Level) segment.Color {
	switch level {
	case record.TraceLevel:
		return segment.ColorBlue
	case record.DebugLevel:
		return segment.ColorCyan
	case record.InfoLevel:
		return segment.ColorGreen
	case record.WarnLevel:
		return segment.ColorYellow
	case record.ErrorLevel, record.FatalLevel:
		return segment.ColorRed
	default:
		return segment.ColorDefault
	}
}

func styleFor(tags segment.Tag, level record.Level) segment.Style {
	switch {
	case tags.Has(segment.TagError) || tags.Has(segment.TagStackFrame):
		return segment.Style{Color: segment.ColorRed}
	case tags.Has(segment.TagHeader) || tags.Has(segment.TagLevel):
		return segment.Style{Color: LevelColor(level), Bold: true}
	case tags.Has(segment.TagTimestamp):
		return segment.Style{Color: segment.ColorGray, Dim: true}
	case tags.Has(segment.TagLoggerName) || tags.Has(segment.TagOrigin):
		return segment.Style{Color: segment.ColorCyan}
	case tags.Has(segment.TagKey):
		return segment.Style{Color: segment.ColorCyan}
	case tags.Has(segment.TagBorder):
		return segment.Style{Color: segment.ColorGray, Dim: true}
	default:
		return segment.Style{}
	}
}

// PrefixDecorator prepends a fixed marker to every physical line of the
// event by wrapping the document in an indentation node.
type PrefixDecorator struct {
	Prefix string
}

// Category implements Decorator.
func (PrefixDecorator) Category() Category { return CategoryTransform }

// Fingerprint implements Decorator.
func (d PrefixDecorator) Fingerprint() string { return "prefix:" + d.Prefix }

// Apply implements Decorator.
func (d PrefixDecorator) Apply(arena *document.Arena, doc *document.Document, _ *record.Entry) {
	if d.Prefix == "" || len(doc.Nodes) == 0 {
		return
	}
	wrapper := arena.NewIndentation(d.Prefix, doc.Nodes...)
	wrapper.Tags |= segment.TagPrefix
	doc.Nodes = doc.Nodes[:0]
	doc.Append(wrapper)
}

// SuffixDecorator appends a trailing footer to the event.
type SuffixDecorator struct {
	Suffix string
}

// Category implements Decorator.
func (SuffixDecorator) Category() Category { return CategoryTransform }

// Fingerprint implements Decorator.
func (d SuffixDecorator) Fingerprint() string { return "suffix:" + d.Suffix }

// Apply implements Decorator.
func (d SuffixDecorator) Apply(arena *document.Arena, doc *document.Document, _ *record.Entry) {
	if d.Suffix == "" {
		return
	}
	doc.Append(arena.NewFooter(d.Suffix, segment.TagSuffix))
}

// BoxDecorator frames the whole event in a border. The framed box follows
// the expand-to-fit policy: content wider than the width budget widens the
// box. Compose a WrapDecorator before it to enforce the width instead; the
// two policies are deliberately distinct configurations.
type BoxDecorator struct {
	Border    document.BorderStyle
	UseColors bool
	// Width is the requested total box width; zero means intrinsic.
	Width int
}

// Category implements Decorator.
func (BoxDecorator) Category() Category { return CategoryBox }

// Fingerprint implements Decorator.
func (d BoxDecorator) Fingerprint() string {
	return fmt.Sprintf("box:%d:%t:%d", d.Border, d.UseColors, d.Width)
}

// Apply implements Decorator.
func (d BoxDecorator) Apply(arena *document.Arena, doc *document.Document, _ *record.Entry) {
	if len(doc.Nodes) == 0 {
		return
	}
	box := arena.NewBox(d.Border, d.UseColors, doc.Nodes...)
	box.BoxWidth = d.Width
	doc.Nodes = doc.Nodes[:0]
	doc.Append(box)
}

// WrapDecorator enforces a width by pre-wrapping every text leaf, clearing
// any noWrap exemption. This is the alternative boxed-content policy to
// BoxDecorator's expand-to-fit.
type WrapDecorator struct {
	Width int
}

// Category implements Decorator.
func (WrapDecorator) Category() Category { return CategoryTransform }

// Fingerprint implements Decorator.
func (d WrapDecorator) Fingerprint() string { return fmt.Sprintf("wrap:%d", d.Width) }

// Apply implements Decorator.
func (d WrapDecorator) Apply(_ *document.Arena, doc *document.Document, _ *record.Entry) {
	width := textwidth.ClampWidth(d.Width)
	for _, n := range doc.Nodes {
		d.wrapNode(n, width)
	}
}

func (d WrapDecorator) wrapNode(n *document.Node, width int) {
	if n.IsLeaf() {
		n.Tags &^= segment.TagNoWrap
		if textwidth.Visible(n.Text) > width {
			n.Text = strings.Join(textwidth.Wrap(n.Text, width), "\n")
		}
		return
	}
	for _, child := range n.Children {
		d.wrapNode(child, width)
	}
}

// IndentDecorator indents the event by hierarchy depth, one unit per level.
type IndentDecorator struct {
	Depth int
	// Unit defaults to two spaces per depth level.
	Unit string
}

// Category implements Decorator.
func (IndentDecorator) Category() Category { return CategoryIndent }

// Fingerprint implements Decorator.
func (d IndentDecorator) Fingerprint() string {
	return fmt.Sprintf("indent:%d:%s", d.Depth, d.Unit)
}

// Apply implements Decorator.
func (d IndentDecorator) Apply(arena *document.Arena, doc *document.Document, _ *record.Entry) {
	if d.Depth <= 0 || len(doc.Nodes) == 0 {
		return
	}
	unit := d.Unit
	if unit == "" {
		unit = "  "
	}
	wrapper := arena.NewIndentation(strings.Repeat(unit, d.Depth), doc.Nodes...)
	wrapper.Tags |= segment.TagHierarchy
	doc.Nodes = doc.Nodes[:0]
	doc.Append(wrapper)
}
