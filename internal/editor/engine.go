package editor

import (
	"github.com/quakeditor/quake/internal/buffer"
	"github.com/quakeditor/quake/internal/logger"
	"github.com/quakeditor/quake/internal/terminal"
)

var log = logger.ComponentLogger("editor")

// State is the dispatch state of the engine.
type State int

const (
	StateEditing     State = iota
	StateConfirmExit       // Quit requested with unsaved changes; waiting for y/n.
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateConfirmExit:
		return "confirm-exit"
	default:
		return "unknown"
	}
}

// Action tells the session what to do after a key was handled.
type Action int

const (
	ActionNone  Action = iota // Redraw and read the next key.
	ActionSaved               // Buffer written; show the save confirmation.
	ActionQuit                // End the session.
)

// Engine maps keys to buffer, cursor and viewport changes. It owns the
// dirty flag and never touches the terminal.
type Engine struct {
	buf      *buffer.Buffer
	filename string
	cursor   Cursor
	viewport *Viewport
	rows     int
	state    State
	dirty    bool
	message  string // Status message shown until the next key.
}

// New returns an engine editing buf, saving to filename.
func New(filename string, buf *buffer.Buffer) *Engine {
	if buf == nil {
		buf = buffer.New()
	}
	return &Engine{
		buf:      buf,
		filename: filename,
		viewport: NewViewport(2),
		rows:     2,
	}
}

// Resize records the terminal height and re-scrolls to keep the cursor in view.
func (e *Engine) Resize(rows int) {
	e.rows = rows
	e.scroll()
}

// HandleKey dispatches one key according to the current state.
func (e *Engine) HandleKey(k terminal.Key) Action {
	// Clear any temporary status message on input.
	e.message = ""

	var a Action
	switch e.state {
	case StateConfirmExit:
		a = e.handleConfirmKey(k)
	default:
		a = e.handleEditKey(k)
	}
	e.scroll()
	return a
}

func (e *Engine) handleEditKey(k terminal.Key) Action {
	switch k.Type {
	case terminal.KeyRune:
		if k.Mod&terminal.ModCtrl != 0 {
			return e.handleCtrl(k)
		}
		e.insertChar(k.Rune)
	case terminal.KeyEnter:
		e.insertNewline()
	case terminal.KeyBackspace:
		e.backspace()
	case terminal.KeyDelete:
		e.deleteForward()
	case terminal.KeyLeft:
		if k.Mod&terminal.ModCtrl != 0 {
			e.cursor.WordLeft(e.buf)
		} else {
			e.cursor.Left(e.buf)
		}
	case terminal.KeyRight:
		if k.Mod&terminal.ModCtrl != 0 {
			e.cursor.WordRight(e.buf)
		} else {
			e.cursor.Right(e.buf)
		}
	case terminal.KeyUp:
		e.cursor.Up(e.buf)
	case terminal.KeyDown:
		e.cursor.Down(e.buf)
	case terminal.KeyHome:
		e.cursor.Home()
	case terminal.KeyEnd:
		e.cursor.End(e.buf)
	case terminal.KeyPgUp:
		e.cursor.Jump(e.buf, -e.viewport.Height)
	case terminal.KeyPgDn:
		e.cursor.Jump(e.buf, e.viewport.Height)
	}
	return ActionNone
}

func (e *Engine) handleCtrl(k terminal.Key) Action {
	// Alt+Ctrl chords are not bindings.
	if k.Mod&terminal.ModAlt != 0 {
		return ActionNone
	}
	switch {
	case k.IsCtrl('s'):
		return e.save()
	case k.IsCtrl('q'):
		if !e.dirty {
			return ActionQuit
		}
		e.state = StateConfirmExit
	case k.IsCtrl('d'):
		e.deleteLine()
	}
	return ActionNone
}

func (e *Engine) handleConfirmKey(k terminal.Key) Action {
	if k.Type != terminal.KeyRune || k.Mod&terminal.ModCtrl != 0 {
		return ActionNone
	}
	switch k.Rune {
	case 'y', 'Y':
		log.Info("quit without saving", "file", e.filename)
		return ActionQuit
	case 'n', 'N':
		e.state = StateEditing
	}
	return ActionNone
}

// insertChar inserts a character at the cursor and advances the cursor.
func (e *Engine) insertChar(ch rune) {
	e.buf.InsertChar(e.cursor.Row, e.cursor.Col, ch)
	e.cursor.Col++
	e.dirty = true
}

// insertNewline splits the current line at the cursor.
func (e *Engine) insertNewline() {
	e.buf.SplitLine(e.cursor.Row, e.cursor.Col)
	e.cursor.Row++
	e.cursor.Col = 0
	e.dirty = true
}

// backspace deletes the character before the cursor, joining lines at column 0.
func (e *Engine) backspace() {
	if e.cursor.Col > 0 {
		e.buf.RemoveChar(e.cursor.Row, e.cursor.Col)
		e.cursor.Col--
		e.dirty = true
		return
	}
	if e.cursor.Row > 0 {
		at := e.buf.JoinIntoPrevious(e.cursor.Row)
		e.cursor.Row--
		e.cursor.Col = at
		e.dirty = true
	}
}

// deleteForward deletes the character under the cursor, joining the next
// line when the cursor is at the end of its line.
func (e *Engine) deleteForward() {
	if e.cursor.Col < e.buf.LineLen(e.cursor.Row) {
		e.buf.RemoveCharForward(e.cursor.Row, e.cursor.Col)
		e.dirty = true
		return
	}
	if e.cursor.Row < e.buf.LineCount()-1 {
		e.buf.JoinIntoPrevious(e.cursor.Row + 1)
		e.dirty = true
	}
}

// deleteLine removes the current line outright.
func (e *Engine) deleteLine() {
	e.buf.RemoveLine(e.cursor.Row)
	e.cursor.Col = 0
	e.cursor.Clamp(e.buf)
	e.dirty = true
}

// save writes the buffer. The dirty flag is cleared only when the write
// succeeded; a failure is reported on the status line.
func (e *Engine) save() Action {
	if err := e.buf.Save(e.filename); err != nil {
		log.Warn("save failed", "file", e.filename, "error", err)
		e.message = "Save failed: " + err.Error()
		return ActionNone
	}
	e.dirty = false
	log.Info("saved", "file", e.filename, "lines", e.buf.LineCount())
	return ActionSaved
}

func (e *Engine) scroll() {
	e.viewport.Adjust(e.cursor.Row, e.rows)
}

// Notify shows msg on the status line until the next key.
func (e *Engine) Notify(msg string) { e.message = msg }

// Cursor returns the current cursor position.
func (e *Engine) Cursor() Cursor { return e.cursor }

// Dirty reports whether there are unsaved changes.
func (e *Engine) Dirty() bool { return e.dirty }

// State returns the dispatch state.
func (e *Engine) State() State { return e.state }

// Filename returns the file the buffer is saved to.
func (e *Engine) Filename() string { return e.filename }

// Message returns the transient status message, if any.
func (e *Engine) Message() string { return e.message }


// Offset returns the first visible row.
func (e *Engine) Offset() int { return e.viewport.Offset }

// View is a read-only snapshot of everything the renderer needs.
type View struct {
	Lines     []string // Buffer rows [FirstRow, FirstRow+len(Lines))
	FirstRow  int
	Height    int // Text rows available on screen
	LineCount int
	Cursor    Cursor
	Filename  string
	Dirty     bool
	State     State
	Message   string
}

// Snapshot returns the current view.
func (e *Engine) Snapshot() View {
	from, to := e.viewport.Range()
	return View{
		Lines:     e.buf.Lines(from, to),
		FirstRow:  from,
		Height:    e.viewport.Height,
		LineCount: e.buf.LineCount(),
		Cursor:    e.cursor,
		Filename:  e.filename,
		Dirty:     e.dirty,
		State:     e.state,
		Message:   e.message,
	}
}
