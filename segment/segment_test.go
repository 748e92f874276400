package segment

import (
	"strings"
	"testing"
)

func TestTagBitmaskCombines(t *testing.T) {
	tags := TagHeader | TagLevel | TagNoWrap
	if !tags.Has(TagHeader) || !tags.Has(TagLevel) || !tags.Has(TagNoWrap) {
		t.Fatalf("combined tags missing members: %b", tags)
	}
	if tags.Has(TagError) {
		t.Fatalf("unexpected tag present: %b", tags)
	}
	if !tags.Has(TagHeader | TagLevel) {
		t.Fatalf("Has must match multi-bit masks")
	}
}

func TestWidthStripsANSI(t *testing.T) {
	s := New("\x1b[1;31mfatal\x1b[0m", TagError)
	if got := s.Width(); got != 5 {
		t.Fatalf("Width = %d, want 5", got)
	}
}

func TestWidthCountsCells(t *testing.T) {
	s := New("你好", TagNone)
	if got := s.Width(); got != 4 {
		t.Fatalf("Width = %d, want 4", got)
	}
}

func TestPadRightVisible(t *testing.T) {
	s := New("ab", TagNone)
	if got := s.PadRightVisible(5); got != "ab   " {
		t.Fatalf("PadRightVisible = %q", got)
	}
	styled := New("\x1b[32mok", TagNone)
	padded := styled.PadRightVisible(4)
	if !strings.HasSuffix(padded, "\x1b[0m") {
		t.Fatalf("styled padding must end with reset: %q", padded)
	}
}

func TestWithTextPreservesTagsAndStyle(t *testing.T) {
	orig := Styled("a", TagKey, Style{Color: ColorCyan})
	copied := orig.WithText("b")
	if copied.Text != "b" || copied.Tags != TagKey || copied.Style.Color != ColorCyan {
		t.Fatalf("WithText altered tags or style: %+v", copied)
	}
	if orig.Text != "a" {
		t.Fatalf("WithText mutated the original")
	}
}

func TestIsBlank(t *testing.T) {
	if !New("  \t", TagNone).IsBlank() {
		t.Fatalf("whitespace should be blank")
	}
	if !New("\x1b[31m \x1b[0m", TagNone).IsBlank() {
		t.Fatalf("styled whitespace should be blank")
	}
	if New("x", TagNone).IsBlank() {
		t.Fatalf("text should not be blank")
	}
}

func TestStyleIsZero(t *testing.T) {
	if !(Style{}).IsZero() {
		t.Fatalf("zero style must report IsZero")
	}
	if (Style{Bold: true}).IsZero() {
		t.Fatalf("bold style must not report IsZero")
	}
}
