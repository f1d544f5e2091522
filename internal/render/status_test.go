package render

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestFormatLeftFilename(t *testing.T) {
	sb := StatusBar{}

	got := sb.FormatLeft("test.txt", false, "")
	if !strings.HasPrefix(got, "[ test.txt ]") {
		t.Errorf("got %q", got)
	}
	if !strings.HasSuffix(got, Hints) {
		t.Errorf("hints missing: %q", got)
	}

	got = sb.FormatLeft("test.txt", true, "")
	if !strings.HasPrefix(got, "[ test.txt * ]") {
		t.Errorf("dirty: %q", got)
	}

	got = sb.FormatLeft("", false, "")
	if !strings.HasPrefix(got, "[ [unnamed] ]") {
		t.Errorf("unnamed: %q", got)
	}

	got = sb.FormatLeft("/home/ann/src/quake/main.go", false, "")
	if !strings.HasPrefix(got, "[ quake/main.go ]") {
		t.Errorf("truncated path: %q", got)
	}
}

func TestFormatLeftMessage(t *testing.T) {
	sb := StatusBar{}
	if got := sb.FormatLeft("test.txt", true, "Save failed"); got != " Save failed" {
		t.Errorf("got %q", got)
	}
}

func TestFormatRight(t *testing.T) {
	sb := StatusBar{Version: "1.2.3"}
	if got := sb.FormatRight(); got != "QuakEditor Version 1.2.3 " {
		t.Errorf("got %q", got)
	}
}

func TestConfirmPrompt(t *testing.T) {
	want := "Are you sure you want to exit a.txt? Changes will be lost. (y/n) > "
	if got := ConfirmPrompt("a.txt"); got != want {
		t.Errorf("got %q", got)
	}
}

func TestFitConfirmPrompt(t *testing.T) {
	long := "/home/ann/projects/" + strings.Repeat("x", 60) + ".txt"
	tests := []struct {
		name     string
		filename string
		width    int
		want     string
	}{
		{"fits", "a.txt", 80, ConfirmPrompt("a.txt")},
		{"parent and base", "/home/ann/src/quake/main.go", 80, ConfirmPrompt("quake/main.go")},
		{"short form", "a.txt", 40, "Exit? Changes will be lost. (y/n) > "},
		{"choices only", "a.txt", 10, "(y/n) > "},
		{"tiny", "a.txt", 3, "(y/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FitConfirmPrompt(tt.filename, tt.width); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	got := FitConfirmPrompt(long, 80)
	if !strings.HasPrefix(got, promptHead+"projects/xxx") || !strings.HasSuffix(got, promptTail) {
		t.Errorf("long name: %q", got)
	}
	if !strings.Contains(got, "…") {
		t.Errorf("shortened name should end in an ellipsis: %q", got)
	}
	if w := ansi.StringWidth(got); w > 80 {
		t.Errorf("width %d exceeds 80", w)
	}
}
