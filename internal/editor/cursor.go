package editor

import "github.com/quakeditor/quake/internal/buffer"

// Cursor is a (Row, Col) position into the buffer. Col counts runes and may
// equal the line length (the append position).
type Cursor struct {
	Row int
	Col int
}

// Left moves back one rune, wrapping to the end of the previous line.
func (c *Cursor) Left(b *buffer.Buffer) {
	if c.Col > 0 {
		c.Col--
	} else if c.Row > 0 {
		c.Row--
		c.Col = b.LineLen(c.Row)
	}
}

// Right moves forward one rune, wrapping to the start of the next line.
func (c *Cursor) Right(b *buffer.Buffer) {
	if c.Col < b.LineLen(c.Row) {
		c.Col++
	} else if c.Row < b.LineCount()-1 {
		c.Row++
		c.Col = 0
	}
}

// Up moves to the previous line, keeping the column where the line allows.
func (c *Cursor) Up(b *buffer.Buffer) {
	if c.Row > 0 {
		c.Row--
		c.clampCol(b)
	}
}

// Down moves to the next line, keeping the column where the line allows.
func (c *Cursor) Down(b *buffer.Buffer) {
	if c.Row < b.LineCount()-1 {
		c.Row++
		c.clampCol(b)
	}
}

// Home moves to the start of the line.
func (c *Cursor) Home() {
	c.Col = 0
}

// End moves to the append position of the line.
func (c *Cursor) End(b *buffer.Buffer) {
	c.Col = b.LineLen(c.Row)
}

// Jump moves n rows (negative is up), clamped to the buffer.
func (c *Cursor) Jump(b *buffer.Buffer, n int) {
	c.Row += n
	c.Clamp(b)
}

// Clamp pulls the cursor back inside the buffer after lines were removed.
func (c *Cursor) Clamp(b *buffer.Buffer) {
	if c.Row >= b.LineCount() {
		c.Row = b.LineCount() - 1
	}
	if c.Row < 0 {
		c.Row = 0
	}
	c.clampCol(b)
}

func (c *Cursor) clampCol(b *buffer.Buffer) {
	if n := b.LineLen(c.Row); c.Col > n {
		c.Col = n
	}
	if c.Col < 0 {
		c.Col = 0
	}
}
