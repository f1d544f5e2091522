package editor

// Viewport is the window of buffer rows currently on screen. The last
// terminal row belongs to the status bar, so Height is rows-1.
type Viewport struct {
	Offset int // First visible buffer row
	Height int // Number of text rows
}

// NewViewport returns a viewport for a terminal with the given row count.
func NewViewport(termRows int) *Viewport {
	v := &Viewport{}
	v.Resize(termRows)
	return v
}

// Resize updates the text height for new terminal dimensions. The height
// never drops below one row.
func (v *Viewport) Resize(termRows int) {
	v.Height = termRows - 1
	if v.Height < 1 {
		v.Height = 1
	}
}

// Adjust scrolls the minimum amount needed for cursorRow to be visible on a
// terminal with termRows rows.
func (v *Viewport) Adjust(cursorRow, termRows int) {
	v.Resize(termRows)
	v.EnsureVisible(cursorRow)
}

// EnsureVisible adjusts Offset so the given row is visible.
func (v *Viewport) EnsureVisible(row int) {
	if row < v.Offset {
		v.Offset = row
	} else if row >= v.Offset+v.Height {
		v.Offset = row - v.Height + 1
	}
	if v.Offset < 0 {
		v.Offset = 0
	}
}

// Range returns the half-open row range [from, to) that rendering visits.
func (v *Viewport) Range() (from, to int) {
	return v.Offset, v.Offset + v.Height
}
