package editor

import (
	"unicode"

	"github.com/quakeditor/quake/internal/buffer"
)

// wordSpan is a run of word runes in a line: [Start, End) in rune columns.
type wordSpan struct {
	Start int
	End   int
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// wordSpans returns the words of line in order. Letters, digits and
// underscores form words; everything else separates them.
func wordSpans(line string) []wordSpan {
	var spans []wordSpan
	inWord := false
	start := 0
	col := 0
	for _, r := range line {
		if isWordRune(r) {
			if !inWord {
				start = col
				inWord = true
			}
		} else if inWord {
			spans = append(spans, wordSpan{Start: start, End: col})
			inWord = false
		}
		col++
	}
	if inWord {
		spans = append(spans, wordSpan{Start: start, End: col})
	}
	return spans
}

// WordRight moves to the start of the next word on the line, then to the
// line end, then to the start of the next line.
func (c *Cursor) WordRight(b *buffer.Buffer) {
	n := b.LineLen(c.Row)
	if c.Col >= n {
		c.Right(b)
		return
	}
	for _, w := range wordSpans(b.Line(c.Row)) {
		if w.Start > c.Col {
			c.Col = w.Start
			return
		}
	}
	c.Col = n
}

// WordLeft moves to the start of the word before the cursor, wrapping to
// the end of the previous line from column 0.
func (c *Cursor) WordLeft(b *buffer.Buffer) {
	if c.Col == 0 {
		c.Left(b)
		return
	}
	target := 0
	for _, w := range wordSpans(b.Line(c.Row)) {
		if w.Start >= c.Col {
			break
		}
		target = w.Start
	}
	c.Col = target
}
