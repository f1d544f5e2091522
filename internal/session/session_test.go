package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/quakeditor/quake/internal/buffer"
	"github.com/quakeditor/quake/internal/config"
	"github.com/quakeditor/quake/internal/editor"
	qerrors "github.com/quakeditor/quake/internal/errors"
	"github.com/quakeditor/quake/internal/render"
	"github.com/quakeditor/quake/internal/terminal"
)

// fakeSurface replays a fixed key sequence and records every frame.
type fakeSurface struct {
	keys   []terminal.Key
	frames []string
	cols   int
	rows   int
	closed int

	readErr  error
	writeErr error
	closeErr error
}

func (f *fakeSurface) ReadKey() (terminal.Key, error) {
	if len(f.keys) == 0 {
		if f.readErr != nil {
			return terminal.Key{}, f.readErr
		}
		return terminal.Key{}, errors.New("out of keys")
	}
	k := f.keys[0]
	f.keys = f.keys[1:]
	return k, nil
}

func (f *fakeSurface) Size() (int, int, error) { return f.cols, f.rows, nil }

func (f *fakeSurface) Write(frame string) error {
	if f.writeErr != nil {
		return f.writeErr
	}
	f.frames = append(f.frames, frame)
	return nil
}

func (f *fakeSurface) Close() error {
	f.closed++
	return f.closeErr
}

func chars(s string) []terminal.Key {
	var keys []terminal.Key
	for _, r := range s {
		keys = append(keys, terminal.Char(r))
	}
	return keys
}

func newSession(t *testing.T, path string, keys ...terminal.Key) (*Session, *fakeSurface, *[]time.Duration) {
	t.Helper()
	buf, err := buffer.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	surface := &fakeSurface{keys: keys, cols: 80, rows: 24}
	s := New(surface, editor.New(path, buf), config.Default(), "test")

	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }
	return s, surface, &slept
}

func TestRunTypeSaveQuit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")

	keys := chars("hi")
	keys = append(keys, terminal.Key{Type: terminal.KeyEnter})
	keys = append(keys, chars("there")...)
	keys = append(keys, terminal.Ctrl('s'), terminal.Ctrl('q'))

	s, surface, slept := newSession(t, path, keys...)
	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "hi\nthere" {
		t.Errorf("file = %q", got)
	}
	if len(*slept) != 1 || (*slept)[0] != config.DefaultSaveFlash {
		t.Errorf("slept %v, want one save pause", *slept)
	}
	if surface.closed != 1 {
		t.Errorf("closed %d times", surface.closed)
	}

	flashed := false
	for _, f := range surface.frames {
		if strings.Contains(f, render.SavedMessage) {
			flashed = true
		}
	}
	if !flashed {
		t.Error("save flash never written")
	}
}

func TestRunConfirmExitDeclined(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("ab"), 0644); err != nil {
		t.Fatal(err)
	}

	// Edit, try to quit, decline, then quit for real.
	keys := append(chars("x"), terminal.Ctrl('q'), terminal.Char('n'), terminal.Ctrl('q'), terminal.Char('y'))
	s, surface, _ := newSession(t, path, keys...)

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}

	prompts := 0
	for _, f := range surface.frames {
		// TempDir paths are wider than the prompt row allows; the answer
		// choices must still be on screen.
		if strings.Contains(f, "Changes will be lost. (y/n) > ") {
			prompts++
		}
	}
	if prompts != 2 {
		t.Errorf("prompt shown in %d frames, want 2", prompts)
	}

	got, _ := os.ReadFile(path)
	if string(got) != "ab" {
		t.Errorf("file changed without save: %q", got)
	}
}

func TestRunSaveFailureKeepsRunning(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "missing", "f.txt")

	keys := append(chars("z"), terminal.Ctrl('s'), terminal.Ctrl('q'), terminal.Char('y'))
	s, surface, slept := newSession(t, path, keys...)

	if err := s.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(*slept) != 0 {
		t.Error("failed save should not pause")
	}
	found := false
	for _, f := range surface.frames {
		if strings.Contains(f, "Save failed") {
			found = true
		}
	}
	if !found {
		t.Error("save failure not reported on the status line")
	}
}

func TestRunReadErrorClosesSurface(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	s, surface, _ := newSession(t, path)
	surface.readErr = errors.New("tty gone")

	err := s.Run()
	if err == nil || !qerrors.Is(err, qerrors.KindTerminal) {
		t.Fatalf("err = %v, want terminal error", err)
	}
	if surface.closed != 1 {
		t.Errorf("closed %d times", surface.closed)
	}
}

func TestRunWriteError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	s, surface, _ := newSession(t, path, terminal.Ctrl('q'))
	surface.writeErr = errors.New("broken pipe")

	if err := s.Run(); err == nil {
		t.Fatal("expected error")
	}
	if surface.closed != 1 {
		t.Errorf("closed %d times", surface.closed)
	}
}

func TestRunCloseErrorReturned(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	s, surface, _ := newSession(t, path, terminal.Ctrl('q'))
	surface.closeErr = errors.New("restore failed")

	if err := s.Run(); err == nil || err.Error() != "restore failed" {
		t.Fatalf("err = %v", err)
	}
}

func TestRunPicksUpResize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f.txt")
	var keys []terminal.Key
	for i := 0; i < 30; i++ {
		keys = append(keys, terminal.Key{Type: terminal.KeyEnter})
	}
	keys = append(keys, terminal.Ctrl('q'), terminal.Char('y'))
	s, surface, _ := newSession(t, path, keys...)
	surface.rows = 5

	if err := s.Run(); err != nil {
		t.Fatal(err)
	}
	if off := s.engine.Offset(); off != 27 {
		t.Errorf("offset = %d, want 27", off)
	}
}
