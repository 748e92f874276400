package layout

import (
	"strings"
	"testing"

	"github.com/pooriaaskarim/logd/document"
	"github.com/pooriaaskarim/logd/record"
	"github.com/pooriaaskarim/logd/segment"
	"github.com/pooriaaskarim/logd/textwidth"
)

func newHarness() (*document.Arena, *Engine) {
	arena := document.NewArena()
	return arena, New(arena)
}

func layoutNodes(t *testing.T, arena *document.Arena, engine *Engine, width int, build func(doc *document.Document)) []string {
	t.Helper()
	doc := arena.CheckoutDocument(&record.Entry{Level: record.InfoLevel})
	build(doc)
	lines := engine.Layout(doc, width)
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.PlainText()
	}
	arena.ReleaseLines(lines)
	arena.ReleaseDocument(doc)
	return out
}

func TestLeafWrapsAtWidth(t *testing.T) {
	arena, engine := newHarness()
	lines := layoutNodes(t, arena, engine, 10, func(doc *document.Document) {
		doc.Append(arena.NewMessage("the quick brown fox jumps", segment.TagNone))
	})
	if len(lines) < 3 {
		t.Fatalf("expected >= 3 lines, got %q", lines)
	}
	for _, l := range lines {
		if w := textwidth.Visible(l); w > 10 {
			t.Fatalf("line %q width %d > 10", l, w)
		}
	}
}

func TestEmptyMessageStillProducesALine(t *testing.T) {
	arena, engine := newHarness()
	lines := layoutNodes(t, arena, engine, 40, func(doc *document.Document) {
		doc.Append(arena.NewMessage("", segment.TagNone))
	})
	if len(lines) != 1 {
		t.Fatalf("expected exactly one (empty) line, got %d", len(lines))
	}
}

func TestEmptyDocumentStillProducesALine(t *testing.T) {
	arena, engine := newHarness()
	lines := layoutNodes(t, arena, engine, 40, func(doc *document.Document) {})
	if len(lines) != 1 {
		t.Fatalf("expected one line for an empty document, got %d", len(lines))
	}
}

func TestNoWrapExemptFromSplitting(t *testing.T) {
	arena, engine := newHarness()
	long := strings.Repeat("x", 50)
	lines := layoutNodes(t, arena, engine, 10, func(doc *document.Document) {
		doc.Append(arena.NewMessage(long, segment.TagNoWrap))
	})
	if len(lines) != 1 || lines[0] != long {
		t.Fatalf("noWrap content must stay on one line, got %q", lines)
	}
}

func TestBoxSymmetry(t *testing.T) {
	arena, engine := newHarness()
	for _, border := range []document.BorderStyle{document.BorderSharp, document.BorderRounded, document.BorderDouble} {
		lines := layoutNodes(t, arena, engine, 40, func(doc *document.Document) {
			doc.Append(arena.NewBox(border, false,
				arena.NewMessage("short", segment.TagNone),
				arena.NewMessage("a somewhat longer content line", segment.TagNone),
			))
		})
		if len(lines) < 4 {
			t.Fatalf("border %v: expected top, content, bottom, got %q", border, lines)
		}
		want := textwidth.Visible(lines[0])
		for i, l := range lines {
			if got := textwidth.Visible(l); got != want {
				t.Fatalf("border %v line %d width %d, want %d (%q)", border, i, got, want, l)
			}
		}
	}
}

func TestBoxPadsWideGlyphsByCells(t *testing.T) {
	arena, engine := newHarness()
	lines := layoutNodes(t, arena, engine, 20, func(doc *document.Document) {
		doc.Append(arena.NewBox(document.BorderSharp, false,
			arena.NewMessage("你好世界 🌍", segment.TagNone),
		))
	})
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %q", lines)
	}
	// 11 content cells + 4 border overhead.
	if w := textwidth.Visible(lines[1]); w < 10 {
		t.Fatalf("content line width %d, want >= 10 (padded by cells, not runes)", w)
	}
	for i := range lines {
		if textwidth.Visible(lines[i]) != textwidth.Visible(lines[0]) {
			t.Fatalf("box asymmetric around wide glyphs: %q", lines)
		}
	}
}

func TestBoxExpandsToFitWiderContent(t *testing.T) {
	arena, engine := newHarness()
	lines := layoutNodes(t, arena, engine, 30, func(doc *document.Document) {
		doc.Append(arena.NewBox(document.BorderSharp, false,
			arena.NewMessage(strings.Repeat("y", 40), segment.TagNoWrap),
		))
	})
	// noWrap content wider than the budget: the box expands, it never
	// truncates.
	if w := textwidth.Visible(lines[1]); w != 44 {
		t.Fatalf("expanded box content line width = %d, want 44", w)
	}
	if textwidth.Visible(lines[0]) != textwidth.Visible(lines[1]) {
		t.Fatalf("borders did not follow expansion: %q", lines)
	}
}

func TestBoxConfiguredWidth(t *testing.T) {
	arena, engine := newHarness()
	lines := layoutNodes(t, arena, engine, 60, func(doc *document.Document) {
		box := arena.NewBox(document.BorderDouble, false,
			arena.NewMessage("hi", segment.TagNone),
		)
		box.BoxWidth = 24
		doc.Append(box)
	})
	if w := textwidth.Visible(lines[0]); w != 24 {
		t.Fatalf("configured box width = %d, want 24", w)
	}
}

func TestIndentationPrefixesEveryLine(t *testing.T) {
	arena, engine := newHarness()
	lines := layoutNodes(t, arena, engine, 14, func(doc *document.Document) {
		doc.Append(arena.NewIndentation("    ",
			arena.NewMessage("alpha beta gamma delta", segment.TagNone),
		))
	})
	if len(lines) < 2 {
		t.Fatalf("expected wrapped indented lines, got %q", lines)
	}
	for _, l := range lines {
		if !strings.HasPrefix(l, "    ") {
			t.Fatalf("line missing indent: %q", l)
		}
		if w := textwidth.Visible(l); w > 14 {
			t.Fatalf("indented line too wide: %q (%d)", l, w)
		}
	}
}

func TestDecoratedHangingIndent(t *testing.T) {
	arena, engine := newHarness()
	lines := layoutNodes(t, arena, engine, 20, func(doc *document.Document) {
		doc.Append(arena.NewDecorated("err: ", 0,
			arena.NewParagraph("something went badly wrong here", segment.TagNone),
		))
	})
	if len(lines) < 2 {
		t.Fatalf("expected hanging wrap, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "err: ") {
		t.Fatalf("first line missing label: %q", lines[0])
	}
	for _, l := range lines[1:] {
		if !strings.HasPrefix(l, "     ") {
			t.Fatalf("continuation not aligned to label end: %q", l)
		}
	}
}

func TestDecoratedContinuationPrefix(t *testing.T) {
	arena, engine := newHarness()
	message := strings.Repeat("abcde fghij ", 5) // 53+ chars of wrappable text
	lines := layoutNodes(t, arena, engine, 20, func(doc *document.Document) {
		n := arena.NewDecorated("", 5,
			arena.NewParagraph(message, segment.TagNone),
		)
		n.ContinuationPrefix = "----|"
		doc.Append(n)
	})
	if len(lines) < 3 {
		t.Fatalf("expected >= 3 lines at width 20, got %q", lines)
	}
	for i, l := range lines {
		if w := textwidth.Visible(l); w > 20 {
			t.Fatalf("line %d wider than 20: %q", i, l)
		}
		if i > 0 && !strings.HasPrefix(l, "----|") {
			t.Fatalf("continuation line %d missing prefix: %q", i, l)
		}
	}
}

func TestDecoratedNarrowWidthFallback(t *testing.T) {
	arena, engine := newHarness()
	lines := layoutNodes(t, arena, engine, 12, func(doc *document.Document) {
		doc.Append(arena.NewDecorated("a very long label: ", 0,
			arena.NewParagraph("value text", segment.TagNone),
		))
	})
	// The hanging offset exceeds the budget, so label and value stack with
	// minimal indent instead of producing negative-width wraps.
	if len(lines) < 2 {
		t.Fatalf("expected stacked fallback, got %q", lines)
	}
	for _, l := range lines {
		if strings.Contains(l, "value") && !strings.HasPrefix(l, "  ") {
			t.Fatalf("fallback value line missing minimal indent: %q", l)
		}
	}
}

func TestRowPadsShorterCells(t *testing.T) {
	arena, engine := newHarness()
	lines := layoutNodes(t, arena, engine, 30, func(doc *document.Document) {
		doc.Append(arena.NewRow([]int{10, 10},
			arena.NewParagraph("one line", segment.TagNone),
			arena.NewParagraph("this cell wraps onto several lines", segment.TagNone),
		))
	})
	if len(lines) < 2 {
		t.Fatalf("expected multi-row output, got %q", lines)
	}
	for i, l := range lines {
		if got := textwidth.Visible(l); got != 20 {
			t.Fatalf("row %d width = %d, want 20 (%q)", i, got, l)
		}
	}
}

func TestMapAndListRendering(t *testing.T) {
	arena, engine := newHarness()
	lines := layoutNodes(t, arena, engine, 40, func(doc *document.Document) {
		doc.Append(arena.NewMap(
			arena.NewMapEntry("host", arena.NewParagraph("db-1", segment.TagValue)),
			arena.NewMapEntry("tags", arena.NewList(
				arena.NewParagraph("primary", segment.TagValue),
				arena.NewParagraph("eu-west", segment.TagValue),
			)),
		))
	})
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "host: db-1") {
		t.Fatalf("missing inline key/value, got:\n%s", joined)
	}
	if !strings.Contains(joined, "tags:") {
		t.Fatalf("missing structured key, got:\n%s", joined)
	}
	if !strings.Contains(joined, "- primary") || !strings.Contains(joined, "- eu-west") {
		t.Fatalf("missing list markers, got:\n%s", joined)
	}
}

func TestZeroWidthClampsAndTerminates(t *testing.T) {
	arena, engine := newHarness()
	for _, width := range []int{0, -5} {
		lines := layoutNodes(t, arena, engine, width, func(doc *document.Document) {
			doc.Append(arena.NewMessage("abc", segment.TagNone))
		})
		if len(lines) == 0 {
			t.Fatalf("width %d produced no lines", width)
		}
	}
}

func TestLayoutReleasesCleanly(t *testing.T) {
	arena, engine := newHarness()
	for range 100 {
		doc := arena.CheckoutDocument(&record.Entry{})
		doc.Append(arena.NewBox(document.BorderRounded, true,
			arena.NewRow([]int{8, 8},
				arena.NewParagraph("cell one content", segment.TagNone),
				arena.NewParagraph("cell two", segment.TagNone),
			),
			arena.NewDecorated("k: ", 0, arena.NewParagraph("v", segment.TagNone)),
		))
		lines := engine.Layout(doc, 40)
		arena.ReleaseLines(lines)
		arena.ReleaseDocument(doc)
	}
	if got := arena.Outstanding(); got != 0 {
		t.Fatalf("outstanding after layout churn = %d, want 0", got)
	}
}
