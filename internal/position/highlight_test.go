package position

import "testing"

func TestHighlightSingleLine(t *testing.T) {
	file := NewSourceFile("a.cs", "int x = 1;\nx += y;\nM(x);")
	got := file.Highlight(file.SpanFromOffsets(16, 17), 1)
	want := "" +
		"   1 | int x = 1;\n" +
		"   2 | x += y;\n" +
		"     |      ^\n" +
		"   3 | M(x);\n"
	if got != want {
		t.Errorf("Highlight =\n%s\nwant\n%s", got, want)
	}
}

func TestHighlightMultiLineKeepsTabs(t *testing.T) {
	file := NewSourceFile("a.cs", "{\n\tx = 1;\n}")
	got := file.Highlight(file.SpanFromOffsets(3, 11), 0)
	want := "" +
		"   2 | \tx = 1;\n" +
		"     | \t^^^^^^\n" +
		"   3 | }\n" +
		"     | ^\n"
	if got != want {
		t.Errorf("Highlight =\n%q\nwant\n%q", got, want)
	}
}

func TestHighlightRejectsForeignSpans(t *testing.T) {
	file := NewSourceFile("a.cs", "x;")
	other := NewSourceFile("b.cs", "x;")
	if got := file.Highlight(other.SpanFromOffsets(0, 1), 0); got != "" {
		t.Errorf("foreign span highlighted: %q", got)
	}
	if got := file.Highlight(Span{}, 0); got != "" {
		t.Errorf("invalid span highlighted: %q", got)
	}
}
