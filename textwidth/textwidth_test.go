package textwidth

import (
	"strings"
	"testing"
)

func TestVisible(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"ansi_colored", "\x1b[31mred\x1b[0m", 3},
		{"cjk", "你好", 4},
		{"cjk_mixed", "你好世界 🌍", 11},
		{"hangul", "한글", 4},
		{"fullwidth", "ＡＢ", 4},
		{"emoji", "🌍", 2},
		{"combining", "é", 1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Visible(tc.in); got != tc.want {
				t.Fatalf("Visible(%q) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestVisibleAtTabs(t *testing.T) {
	cases := []struct {
		name     string
		in       string
		startCol int
		want     int
	}{
		{"tab_at_zero", "\t", 0, 8},
		{"tab_mid_stop", "abc\t", 0, 8},
		{"tab_from_col5", "\t", 5, 3},
		{"tab_then_text", "a\tb", 0, 9},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := VisibleAt(tc.in, tc.startCol); got != tc.want {
				t.Fatalf("VisibleAt(%q, %d) = %d, want %d", tc.in, tc.startCol, got, tc.want)
			}
		})
	}
}

func TestStripMalformedSequence(t *testing.T) {
	// A lone ESC with no terminator must not crash and must not hide text.
	in := "before \x1b[ after"
	got := Strip(in)
	if !strings.Contains(got, "before") || !strings.Contains(got, "after") {
		t.Fatalf("Strip(%q) = %q, dropped visible text", in, got)
	}
}

func TestWrapBasic(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		width int
		want  []string
	}{
		{"fits", "hello", 10, []string{"hello"}},
		{"empty", "", 10, []string{""}},
		{"break_at_space", "hello world", 7, []string{"hello", "world"}},
		{"existing_newlines", "a\nb", 10, []string{"a", "b"}},
		{"forced_split", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"wide_clamped", "ab", 0, []string{"a", "b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Wrap(tc.in, tc.width)
			if len(got) != len(tc.want) {
				t.Fatalf("Wrap(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("Wrap(%q, %d)[%d] = %q, want %q", tc.in, tc.width, i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestWrapNeverExceedsWidth(t *testing.T) {
	inputs := []string{
		"the quick brown fox jumps over the lazy dog",
		"averyveryverylongunbreakabletokenthatneedssplitting",
		"short words and then averyverylongtoken at the end",
		"你好世界 你好世界 你好世界",
		"mixed 宽 width 文字 and ascii",
	}
	for _, in := range inputs {
		for _, width := range []int{1, 2, 5, 10, 20} {
			for _, line := range Wrap(in, width) {
				v := Visible(line)
				if v > width && !isSingleOversizedGlyph(line, width) {
					t.Fatalf("Wrap(%q, %d) produced %q (width %d)", in, width, line, v)
				}
			}
		}
	}
}

func isSingleOversizedGlyph(line string, width int) bool {
	return Visible(line) <= 2 && width < 2
}

func TestWrapNoCharactersDropped(t *testing.T) {
	in := "the quick brown fox jumps over the lazy dog"
	for _, width := range []int{5, 10, 20, 80} {
		joined := strings.Join(Wrap(in, width), " ")
		if strings.Join(strings.Fields(joined), " ") != in {
			t.Fatalf("Wrap(%q, %d) lost content: %q", in, width, joined)
		}
	}
}

func TestWrapDeterministic(t *testing.T) {
	in := "determinism matters for box width agreement across decorators"
	first := Wrap(in, 17)
	for range 10 {
		again := Wrap(in, 17)
		if strings.Join(again, "|") != strings.Join(first, "|") {
			t.Fatalf("Wrap not deterministic: %q vs %q", again, first)
		}
	}
}

func TestWrapPreserveANSI(t *testing.T) {
	in := "\x1b[31mthe quick brown fox jumps over the lazy dog"
	lines := WrapPreserveANSI(in, 12)
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %q", lines)
	}
	for i, line := range lines {
		if !strings.HasPrefix(line, "\x1b[31m") {
			t.Fatalf("line %d missing style prefix: %q", i, line)
		}
		if !strings.HasSuffix(line, Reset) {
			t.Fatalf("line %d missing reset: %q", i, line)
		}
		if Visible(line) > 12 {
			t.Fatalf("line %d visible width %d > 12: %q", i, Visible(line), line)
		}
	}
}

func TestWrapPreserveANSIUnstyled(t *testing.T) {
	lines := WrapPreserveANSI("plain text here", 80)
	if len(lines) != 1 || lines[0] != "plain text here" {
		t.Fatalf("unstyled text altered: %q", lines)
	}
	if strings.Contains(lines[0], Reset) {
		t.Fatalf("reset leaked into unstyled output: %q", lines[0])
	}
}

func TestPadRight(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		width int
		want  string
	}{
		{"pads_ascii", "ab", 5, "ab   "},
		{"already_wide", "abcdef", 3, "abcdef"},
		{"cjk_counts_cells", "你好", 6, "你好  "},
		{"clamped", "", 0, " "},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := PadRight(tc.in, tc.width); got != tc.want {
				t.Fatalf("PadRight(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
			}
		})
	}
}

func TestPadRightStyled(t *testing.T) {
	got := PadRight("\x1b[33mhi", 5)
	if Visible(got) != 5 {
		t.Fatalf("visible width = %d, want 5", Visible(got))
	}
	if !strings.HasSuffix(got, Reset) {
		t.Fatalf("styled padding must end with reset: %q", got)
	}
}
