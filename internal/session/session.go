package session

import (
	"time"

	"github.com/quakeditor/quake/internal/config"
	"github.com/quakeditor/quake/internal/editor"
	qerrors "github.com/quakeditor/quake/internal/errors"
	"github.com/quakeditor/quake/internal/logger"
	"github.com/quakeditor/quake/internal/render"
	"github.com/quakeditor/quake/internal/terminal"
)

var log = logger.ComponentLogger("session")

// Surface is the terminal as seen by the session loop.
type Surface interface {
	ReadKey() (terminal.Key, error)
	Size() (cols, rows int, err error)
	Write(frame string) error
	Close() error
}

// Session drives one editing session from first frame to quit.
type Session struct {
	surface  Surface
	engine   *editor.Engine
	renderer *render.Renderer
	flash    time.Duration
	sleep    func(time.Duration)

	cols, rows int
}

func New(surface Surface, engine *editor.Engine, cfg *config.Config, version string) *Session {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Session{
		surface: surface,
		engine:  engine,
		renderer: render.NewRenderer(render.Options{
			LineNumbers: cfg.LineNumbers,
			Version:     version,
		}),
		flash: cfg.SaveFlash,
		sleep: time.Sleep,
	}
}

// Run renders, reads keys and dispatches them until the user quits or the
// surface fails. The surface is closed before Run returns.
func (s *Session) Run() (err error) {
	defer func() {
		if cerr := s.surface.Close(); cerr != nil {
			if err != nil {
				log.Warn("close surface", "error", cerr)
				return
			}
			err = cerr
		}
	}()

	log.Info("session started", "file", s.engine.Filename())
	for {
		if err := s.draw(); err != nil {
			return err
		}

		k, err := s.surface.ReadKey()
		if err != nil {
			return qerrors.E(qerrors.Op("session.Run"), qerrors.KindTerminal, "read key", err)
		}

		switch s.engine.HandleKey(k) {
		case editor.ActionQuit:
			log.Info("session ended", "dirty", s.engine.Dirty())
			return nil
		case editor.ActionSaved:
			if err := s.showSaved(); err != nil {
				return err
			}
		}
	}
}

// draw re-reads the terminal size so resizes are picked up on the next key.
func (s *Session) draw() error {
	cols, rows, err := s.surface.Size()
	if err != nil {
		return err
	}
	if cols != s.cols || rows != s.rows {
		log.Debug("resize", "cols", cols, "rows", rows)
		s.cols, s.rows = cols, rows
	}
	s.engine.Resize(rows)

	frame := s.renderer.RenderFrame(s.engine.Snapshot(), cols, rows)
	if err := s.surface.Write(frame); err != nil {
		return qerrors.E(qerrors.Op("session.draw"), qerrors.KindTerminal, "write frame", err)
	}
	return nil
}

func (s *Session) showSaved() error {
	if err := s.surface.Write(s.renderer.RenderSaveFlash(s.cols, s.rows)); err != nil {
		return qerrors.E(qerrors.Op("session.showSaved"), qerrors.KindTerminal, "write frame", err)
	}
	if s.flash > 0 {
		s.sleep(s.flash)
	}
	return nil
}
