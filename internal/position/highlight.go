package position

import (
	"fmt"
	"strings"
)

// Highlight renders the lines covered by span with a caret underline,
// preceded and followed by up to context lines of the surrounding source.
// Tabs in the source are kept in the underline so that carets stay aligned.
func (sf *SourceFile) Highlight(span Span, context int) string {
	if !span.IsValid() || span.Start.Filename != sf.Filename || span.End.Line > len(sf.Lines) {
		return ""
	}

	var b strings.Builder
	first := max(1, span.Start.Line-context)
	last := min(len(sf.Lines), span.End.Line+context)
	for n := first; n <= last; n++ {
		line := sf.GetLine(n)
		fmt.Fprintf(&b, "%4d | %s\n", n, line)
		if n < span.Start.Line || n > span.End.Line {
			continue
		}

		from, to := 1, len(line)+1
		if n == span.Start.Line {
			from = span.Start.Column
		}
		if n == span.End.Line {
			to = span.End.Column
		}
		b.WriteString("     | ")
		underline(&b, line, from, to)
		b.WriteByte('\n')
	}
	return b.String()
}

// underline marks the columns [from, to) of line. Columns count bytes.
func underline(b *strings.Builder, line string, from, to int) {
	for i := 1; i < from && i <= len(line); i++ {
		if line[i-1] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	to = min(to, len(line)+1)
	// an empty span still gets one caret.
	b.WriteString(strings.Repeat("^", max(1, to-from)))
}
