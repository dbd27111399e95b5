package source

import (
	"testing"
)

func TestSpan_ShiftLeft(t *testing.T) {
	tests := []struct {
		name     string
		span     Span
		shift    uint32
		expected Span
	}{
		{
			name:     "shift normal span left by 5",
			span:     Span{Start: 10, End: 20},
			shift:    5,
			expected: Span{Start: 5, End: 15},
		},
		{
			name:     "shift by 0",
			span:     Span{Start: 10, End: 20},
			shift:    0,
			expected: Span{Start: 10, End: 20},
		},
		{
			name:     "shift equals start",
			span:     Span{Start: 10, End: 20},
			shift:    10,
			expected: Span{Start: 0, End: 10},
		},
		{
			name:     "shift larger than start returns original",
			span:     Span{Start: 10, End: 20},
			shift:    15,
			expected: Span{Start: 10, End: 20},
		},
		{
			name:     "shift zero-length span",
			span:     Span{Start: 10, End: 10},
			shift:    3,
			expected: Span{Start: 7, End: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.span.ShiftLeft(tt.shift)
			if got != tt.expected {
				t.Errorf("ShiftLeft(%d) = %v, want %v", tt.shift, got, tt.expected)
			}
		})
	}
}

func TestSpan_Cover(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Span
		expected Span
	}{
		{
			name:     "disjoint spans",
			a:        Span{Start: 0, End: 5},
			b:        Span{Start: 10, End: 20},
			expected: Span{Start: 0, End: 20},
		},
		{
			name:     "contained span",
			a:        Span{Start: 0, End: 20},
			b:        Span{Start: 5, End: 10},
			expected: Span{Start: 0, End: 20},
		},
		{
			name:     "overlapping spans",
			a:        Span{Start: 5, End: 15},
			b:        Span{Start: 10, End: 25},
			expected: Span{Start: 5, End: 25},
		},
		{
			name:     "same span",
			a:        Span{Start: 3, End: 7},
			b:        Span{Start: 3, End: 7},
			expected: Span{Start: 3, End: 7},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Cover(tt.b); got != tt.expected {
				t.Errorf("Cover() = %v, want %v", got, tt.expected)
			}
			if got := tt.b.Cover(tt.a); got != tt.expected {
				t.Errorf("Cover() reversed = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSpan_Contains(t *testing.T) {
	outer := Span{Start: 10, End: 30}

	tests := []struct {
		name  string
		inner Span
		want  bool
	}{
		{"fully inside", Span{Start: 15, End: 25}, true},
		{"same bounds", Span{Start: 10, End: 30}, true},
		{"starts before", Span{Start: 5, End: 25}, false},
		{"ends after", Span{Start: 15, End: 35}, false},
		{"empty at start", Span{Start: 10, End: 10}, true},
		{"empty at end", Span{Start: 30, End: 30}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outer.Contains(tt.inner); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.inner, got, tt.want)
			}
		})
	}
}

func TestSpan_Slice(t *testing.T) {
	buf := []byte("let x = \"héllo\"")

	tests := []struct {
		name   string
		span   Span
		want   string
		wantOK bool
	}{
		{"whole buffer", Span{Start: 0, End: uint32(len(buf))}, string(buf), true},
		{"keyword", Span{Start: 0, End: 3}, "let", true},
		{"empty span", Span{Start: 4, End: 4}, "", true},
		{"past end", Span{Start: 0, End: uint32(len(buf)) + 1}, "", false},
		{"inverted", Span{Start: 5, End: 3}, "", false},
		// The é sits at bytes 10-11; offset 11 is mid-rune.
		{"mid-rune start", Span{Start: 11, End: 14}, "", false},
		{"mid-rune end", Span{Start: 9, End: 11}, "", false},
		{"rune aligned", Span{Start: 10, End: 12}, "é", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.span.Slice(buf)
			if ok != tt.wantOK {
				t.Fatalf("Slice() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && string(got) != tt.want {
				t.Errorf("Slice() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsBoundary(t *testing.T) {
	buf := []byte("aé") // 'a' at 0, 'é' at 1-2

	tests := []struct {
		off  uint32
		want bool
	}{
		{0, true},
		{1, true},
		{2, false},
		{3, true}, // end of buffer
		{4, false},
	}

	for _, tt := range tests {
		if got := IsBoundary(buf, tt.off); got != tt.want {
			t.Errorf("IsBoundary(%d) = %v, want %v", tt.off, got, tt.want)
		}
	}
}
