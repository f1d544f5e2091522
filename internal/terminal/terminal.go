package terminal

import (
	"io"
	"os"

	"golang.org/x/term"

	qerrors "github.com/quakeditor/quake/internal/errors"
	"github.com/quakeditor/quake/internal/logger"
)

var log = logger.ComponentLogger("terminal")

// Terminal manages raw mode, the alternate screen buffer and key input.
// Open acquires raw mode; Close releases it and must run on every exit path.
type Terminal struct {
	in       *os.File
	out      *os.File
	oldState *term.State
	pending  []byte // Bytes read but not yet decoded into keys.
	closed   bool
}

// Open switches stdin to raw mode and enters the alternate screen.
func Open() (*Terminal, error) {
	return open(os.Stdin, os.Stdout)
}

func open(in, out *os.File) (*Terminal, error) {
	t := &Terminal{in: in, out: out}

	oldState, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, qerrors.RawModeFailed(err)
	}
	t.oldState = oldState

	// Enter alternate screen buffer.
	out.WriteString("\x1b[?1049h")
	// Hide cursor during setup.
	out.WriteString("\x1b[?25l")

	if _, _, err := t.Size(); err != nil {
		t.Close()
		return nil, err
	}
	log.Debug("raw mode on")
	return t, nil
}

// Size returns the terminal dimensions as (columns, rows).
func (t *Terminal) Size() (int, int, error) {
	w, h, err := term.GetSize(int(t.out.Fd()))
	if err != nil {
		return 0, 0, qerrors.SizeFailed(err)
	}
	return w, h, nil
}

// Write sends a fully built frame to the terminal in one go.
func (t *Terminal) Write(frame string) error {
	_, err := io.WriteString(t.out, frame)
	return err
}

// Close clears the screen and returns the terminal to its original state.
// Safe to call more than once.
func (t *Terminal) Close() error {
	if t.closed {
		return nil
	}
	t.closed = true

	// Clear and home, show cursor, leave alternate screen buffer.
	t.out.WriteString("\x1b[2J\x1b[H")
	t.out.WriteString("\x1b[?25h")
	t.out.WriteString("\x1b[?1049l")
	if t.oldState != nil {
		if err := term.Restore(int(t.in.Fd()), t.oldState); err != nil {
			log.Warn("restore failed", "error", err)
			return qerrors.E(qerrors.Op("terminal.Close"), qerrors.KindTerminal, err)
		}
	}
	log.Debug("raw mode off")
	return nil
}

// ReadKey blocks until one key can be decoded from stdin. Bytes that
// arrive together (pastes, escape sequences) are queued and returned by
// later calls.
func (t *Terminal) ReadKey() (Key, error) {
	return readKey(t.in, &t.pending, t.inputReady)
}

// readKey decodes the next key from pending, reading from r when pending is
// empty or ends mid-rune. An escape sequence cut short by a read boundary is
// completed with further reads for as long as ready reports more input.
func readKey(r io.Reader, pending *[]byte, ready func() bool) (Key, error) {
	buf := make([]byte, 64)
	for len(*pending) == 0 || needsMore(*pending) {
		n, err := r.Read(buf)
		if n > 0 {
			*pending = append(*pending, buf[:n]...)
		}
		if err != nil {
			if len(*pending) > 0 {
				break
			}
			return Key{}, err
		}
		if n == 0 && len(*pending) > 0 {
			break
		}
	}
	for incompleteEscape(*pending) && ready() {
		n, err := r.Read(buf)
		if n > 0 {
			*pending = append(*pending, buf[:n]...)
		}
		if err != nil || n == 0 {
			break
		}
	}
	k, used := parseKey(*pending)
	*pending = (*pending)[used:]
	return k, nil
}
