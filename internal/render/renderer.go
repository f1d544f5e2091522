package render

import (
	"image/color"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/quakeditor/quake/internal/editor"
)

var (
	gutterFg = lipgloss.Color("8")
	barFg    = lipgloss.Color("0")
	barBg    = lipgloss.Color("15")
	savedFg  = lipgloss.Color("2")
)

// Options controls what the renderer draws.
type Options struct {
	LineNumbers bool
	Version     string
}

// Renderer builds a frame buffer and writes it to the terminal in one go.
type Renderer struct {
	buf    strings.Builder
	opts   Options
	status StatusBar
}

func NewRenderer(opts Options) *Renderer {
	return &Renderer{
		opts:   opts,
		status: StatusBar{Version: opts.Version},
	}
}

// WriteCellRun draws text starting at the zero-based cell (row, col).
// A nil color leaves the terminal default in place.
func (r *Renderer) WriteCellRun(row, col int, text string, fg, bg color.Color) {
	r.MoveCursor(col, row)
	style := lipgloss.NewStyle()
	if fg != nil {
		style = style.Foreground(fg)
	}
	if bg != nil {
		style = style.Background(bg)
	}
	r.buf.WriteString(style.Render(text))
}

// MoveCursor places the terminal cursor at the zero-based cell (col, row).
func (r *Renderer) MoveCursor(col, row int) {
	r.buf.WriteString(ansi.CursorPosition(col+1, row+1))
}

// RenderFrame draws the full screen: gutter, text rows, status bar, the exit
// prompt when it is pending, and finally the cursor.
func (r *Renderer) RenderFrame(v editor.View, cols, rows int) string {
	r.buf.Reset()

	// Hide cursor during drawing, clear screen.
	r.buf.WriteString("\x1b[?25l")
	r.buf.WriteString("\x1b[2J\x1b[H")

	gutter := r.gutterWidth(v.LineCount)
	textWidth := cols - gutter
	if textWidth < 0 {
		textWidth = 0
	}

	for i, line := range v.Lines {
		if i >= v.Height || i >= rows-1 {
			break
		}
		if gutter > 0 {
			num := padLeft(strconv.Itoa(v.FirstRow+i+1), gutter-1) + " "
			r.WriteCellRun(i, 0, num, gutterFg, nil)
		}
		r.WriteCellRun(i, gutter, runewidth.Truncate(displayText(line), textWidth, ""), nil, nil)
	}

	r.renderStatusBar(v, cols, rows)

	if v.State == editor.StateConfirmExit {
		r.renderPrompt(v, cols, rows)
	} else {
		r.placeCursor(v, gutter, cols)
	}

	// Show cursor.
	r.buf.WriteString("\x1b[?25h")
	return r.buf.String()
}

// RenderSaveFlash returns the sequence that replaces the status row with
// the save confirmation.
func (r *Renderer) RenderSaveFlash(cols, rows int) string {
	r.buf.Reset()
	r.MoveCursor(0, rows-1)
	r.buf.WriteString("\x1b[2K")
	r.buf.WriteString(lipgloss.NewStyle().Foreground(savedFg).Render(fitWidth(SavedMessage, cols)))
	return r.buf.String()
}

func (r *Renderer) gutterWidth(lineCount int) int {
	if !r.opts.LineNumbers {
		return 0
	}
	return len(strconv.Itoa(lineCount)) + 1
}

func (r *Renderer) renderStatusBar(v editor.View, cols, rows int) {
	left := r.status.FormatLeft(v.Filename, v.Dirty, v.Message)
	right := r.status.FormatRight()

	lw, rw := ansi.StringWidth(left), ansi.StringWidth(right)
	if lw+rw >= cols {
		// Truncate left side if needed.
		maxLeft := cols - rw - 1
		if maxLeft < 0 {
			maxLeft = 0
		}
		left = ansi.Truncate(left, maxLeft, "")
		lw = ansi.StringWidth(left)
	}
	gap := cols - lw - rw
	if gap < 0 {
		gap = 0
	}
	bar := fitWidth(left+strings.Repeat(" ", gap)+right, cols)
	r.WriteCellRun(rows-1, 0, bar, barFg, barBg)
}

func (r *Renderer) renderPrompt(v editor.View, cols, rows int) {
	row := rows - 2
	if row < 0 {
		row = 0
	}
	prompt := FitConfirmPrompt(v.Filename, cols)
	pw := ansi.StringWidth(prompt)
	r.WriteCellRun(row, 0, fitWidth(prompt, cols), barFg, barBg)

	col := pw
	if col >= cols {
		col = cols - 1
	}
	r.MoveCursor(col, row)
}

func (r *Renderer) placeCursor(v editor.View, gutter, cols int) {
	row := v.Cursor.Row - v.FirstRow
	line := ""
	if row >= 0 && row < len(v.Lines) {
		line = v.Lines[row]
	}
	runes := []rune(displayText(line))
	n := v.Cursor.Col
	if n > len(runes) {
		n = len(runes)
	}
	col := gutter + runewidth.StringWidth(string(runes[:n]))
	if col >= cols {
		col = cols - 1
	}
	if col < 0 {
		col = 0
	}
	r.MoveCursor(col, row)
}

// displayText replaces control characters with spaces so every rune takes
// at least one cell and cursor placement stays aligned.
func displayText(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return ' '
		}
		return r
	}, s)
}

// fitWidth pads or truncates s to exactly width cells.
func fitWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

func padLeft(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat(" ", width-len(s)) + s
}
