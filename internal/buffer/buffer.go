package buffer

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	qerrors "github.com/quakeditor/quake/internal/errors"
	"github.com/quakeditor/quake/internal/logger"
)

var log = logger.ComponentLogger("buffer")

// Buffer holds the text content as a slice of lines (hard lines, split on \n).
// It always contains at least one line.
type Buffer struct {
	lines []string
}

// New returns a buffer holding a single empty line.
func New() *Buffer {
	return &Buffer{lines: []string{""}}
}

// FromLines returns a buffer holding a copy of lines. An empty slice gives
// a single empty line.
func FromLines(lines []string) *Buffer {
	if len(lines) == 0 {
		return New()
	}
	return &Buffer{lines: append([]string(nil), lines...)}
}

// FromText splits text on \n. A single trailing newline does not produce a
// phantom empty line, and a trailing \r on each line is dropped.
func FromText(text string) *Buffer {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return New()
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return &Buffer{lines: lines}
}

// Load reads a file into a new buffer. A missing file is a new file: the
// result is an empty buffer and no error. Any other read failure is returned
// together with an empty buffer so the caller can keep going.
func Load(path string) (*Buffer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("new file", "path", path)
			return New(), nil
		}
		return New(), qerrors.LoadFailed(path, err)
	}
	b := FromText(string(data))
	log.Debug("loaded", "path", path, "lines", len(b.lines))
	return b, nil
}

// Save writes the buffer to path, replacing its contents.
func (b *Buffer) Save(path string) error {
	if err := os.WriteFile(path, []byte(b.Text()), 0644); err != nil {
		return qerrors.SaveFailed(path, err)
	}
	log.Debug("saved", "path", path, "lines", len(b.lines))
	return nil
}

// Text joins all lines with \n. No trailing newline is added.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Lines returns a copy of the lines in [from, to), clamped to the buffer.
func (b *Buffer) Lines(from, to int) []string {
	if from < 0 {
		from = 0
	}
	if to > len(b.lines) {
		to = len(b.lines)
	}
	if from >= to {
		return nil
	}
	return append([]string(nil), b.lines[from:to]...)
}

// Line returns the content of a line, or "" when out of range.
func (b *Buffer) Line(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return b.lines[row]
}

// InsertChar inserts a character at the given line and column position.
func (b *Buffer) InsertChar(row, col int, ch rune) {
	if row < 0 || row >= len(b.lines) {
		return
	}
	runes := []rune(b.lines[row])
	col = clamp(col, len(runes))
	newRunes := make([]rune, 0, len(runes)+1)
	newRunes = append(newRunes, runes[:col]...)
	newRunes = append(newRunes, ch)
	newRunes = append(newRunes, runes[col:]...)
	b.lines[row] = string(newRunes)
}

// RemoveChar deletes the character before the given position and returns
// it. Returns 0 when there is nothing before col.
func (b *Buffer) RemoveChar(row, col int) rune {
	if row < 0 || row >= len(b.lines) || col <= 0 {
		return 0
	}
	runes := []rune(b.lines[row])
	if col > len(runes) {
		col = len(runes)
	}
	if col == 0 {
		return 0
	}
	ch := runes[col-1]
	b.lines[row] = string(runes[:col-1]) + string(runes[col:])
	return ch
}

// RemoveCharForward deletes the character at the given position (Del key).
// Returns 0 when col is at or past the end of the line.
func (b *Buffer) RemoveCharForward(row, col int) rune {
	if row < 0 || row >= len(b.lines) || col < 0 {
		return 0
	}
	runes := []rune(b.lines[row])
	if col >= len(runes) {
		return 0
	}
	ch := runes[col]
	b.lines[row] = string(runes[:col]) + string(runes[col+1:])
	return ch
}

// SplitLine truncates the line at col and inserts the remainder as a new
// line directly below.
func (b *Buffer) SplitLine(row, col int) {
	if row < 0 || row >= len(b.lines) {
		return
	}
	runes := []rune(b.lines[row])
	col = clamp(col, len(runes))
	before := string(runes[:col])
	after := string(runes[col:])
	b.lines[row] = before

	newLines := make([]string, 0, len(b.lines)+1)
	newLines = append(newLines, b.lines[:row+1]...)
	newLines = append(newLines, after)
	newLines = append(newLines, b.lines[row+1:]...)
	b.lines = newLines
}

// JoinIntoPrevious removes line row and appends its content to line row-1.
// Returns the rune column of the join point on the previous line, or -1 if
// row has no previous line.
func (b *Buffer) JoinIntoPrevious(row int) int {
	if row <= 0 || row >= len(b.lines) {
		return -1
	}
	at := b.LineLen(row - 1)
	b.lines[row-1] += b.lines[row]
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	return at
}

// RemoveLine deletes the line outright and returns its content. Removing the
// only line leaves a single empty line.
func (b *Buffer) RemoveLine(row int) string {
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	content := b.lines[row]
	b.lines = append(b.lines[:row], b.lines[row+1:]...)
	if len(b.lines) == 0 {
		b.lines = []string{""}
	}
	return content
}

// LineLen returns the rune-length of a given line.
func (b *Buffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len([]rune(b.lines[row]))
}

// LineCount returns the number of lines.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

func clamp(col, n int) int {
	if col < 0 {
		return 0
	}
	if col > n {
		return n
	}
	return col
}
