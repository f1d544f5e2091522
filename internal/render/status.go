package render

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/x/ansi"
)

// Hints lists the key bindings shown in the status bar.
const Hints = "Ctrl+S: Save | Ctrl+Q: Quit"

// SavedMessage is flashed on the status row after a successful save.
const SavedMessage = "File saved successfully!"

// StatusBar generates status bar text.
type StatusBar struct {
	Version string
}

// FormatLeft returns the left-aligned portion of the status bar. A pending
// message replaces the filename and hints until the next key.
func (s *StatusBar) FormatLeft(filename string, dirty bool, message string) string {
	if message != "" {
		return " " + message
	}
	name := truncatePath(filename)
	if dirty {
		name += " *"
	}
	return fmt.Sprintf("[ %s ]    %s", name, Hints)
}

// FormatRight returns the right-aligned portion of the status bar.
func (s *StatusBar) FormatRight() string {
	return fmt.Sprintf("QuakEditor Version %s ", s.Version)
}

const (
	promptHead  = "Are you sure you want to exit "
	promptTail  = "? Changes will be lost. (y/n) > "
	promptShort = "Exit? Changes will be lost. (y/n) > "
	promptMin   = "(y/n) > "
)

// ConfirmPrompt is shown while waiting for y/n after quitting with unsaved changes.
func ConfirmPrompt(filename string) string {
	return promptHead + filename + promptTail
}

// FitConfirmPrompt returns the exit prompt in at most width cells. The
// filename is shortened first; the answer choices are always kept.
func FitConfirmPrompt(filename string, width int) string {
	if p := ConfirmPrompt(filename); ansi.StringWidth(p) <= width {
		return p
	}
	if p := ConfirmPrompt(truncatePath(filename)); ansi.StringWidth(p) <= width {
		return p
	}
	room := width - ansi.StringWidth(promptHead) - ansi.StringWidth(promptTail)
	if room >= 4 {
		return promptHead + ansi.Truncate(truncatePath(filename), room, "…") + promptTail
	}
	if ansi.StringWidth(promptShort) <= width {
		return promptShort
	}
	return ansi.Truncate(promptMin, width, "")
}

// truncatePath shortens a file path to parent/basename.
func truncatePath(filename string) string {
	if filename == "" {
		return "[unnamed]"
	}
	dir := filepath.Base(filepath.Dir(filename))
	base := filepath.Base(filename)
	if dir == "." || dir == "/" {
		return base
	}
	return dir + "/" + base
}
