// Package errors tags editor failures with the operation that hit them and
// a Kind. Callers branch on the Kind: IO failures during editing go to the
// status line, terminal failures end the session.
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Op names the failing call as "package.Func".
type Op string

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindIO
	KindTerminal
	KindConfig
)

var kindNames = map[Kind]string{
	KindNotFound: "not found",
	KindInvalid:  "invalid",
	KindIO:       "I/O error",
	KindTerminal: "terminal error",
	KindConfig:   "configuration error",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown error"
}

// Error carries an underlying error through the editor's layers.
// Context is a short human phrase such as "failed to write a.txt".
type Error struct {
	Op      Op
	Kind    Kind
	Err     error
	Context string
}

// Error renders as "op: context: cause", skipping empty parts.
func (e *Error) Error() string {
	parts := make([]string, 0, 3)
	if e.Op != "" {
		parts = append(parts, string(e.Op))
	}
	if e.Context != "" {
		parts = append(parts, e.Context)
	}
	parts = append(parts, e.Err.Error())
	return strings.Join(parts, ": ")
}

func (e *Error) Unwrap() error { return e.Err }

// E builds an *Error from any mix of Op, Kind, string and error values.
// With no error argument the string becomes the cause.
func E(args ...any) error {
	e := &Error{}
	for _, arg := range args {
		switch a := arg.(type) {
		case Op:
			e.Op = a
		case Kind:
			e.Kind = a
		case string:
			e.Context = a
		case error:
			e.Err = a
		}
	}
	if e.Err == nil {
		e.Err, e.Context = errors.New(e.Context), ""
	}
	return e
}

// Is reports whether the outermost *Error in err's chain has the given kind.
func Is(err error, kind Kind) bool {
	e := asError(err)
	return e != nil && e.Kind == kind
}

// GetKind returns the kind of the outermost *Error, or KindUnknown.
func GetKind(err error) Kind {
	if e := asError(err); e != nil {
		return e.Kind
	}
	return KindUnknown
}

// Cause strips every *Error layer and returns what is left, for messages
// shown to the user where op names would be noise.
func Cause(err error) error {
	for {
		e, ok := err.(*Error)
		if !ok {
			return err
		}
		err = e.Err
	}
}

func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return nil
}

func LoadFailed(path string, err error) error {
	return E(Op("buffer.Load"), KindIO, fmt.Sprintf("failed to read %s", path), err)
}

func SaveFailed(path string, err error) error {
	return E(Op("buffer.Save"), KindIO, fmt.Sprintf("failed to write %s", path), err)
}

func RawModeFailed(err error) error {
	return E(Op("terminal.Open"), KindTerminal, "failed to enter raw mode", err)
}

func SizeFailed(err error) error {
	return E(Op("terminal.Size"), KindTerminal, "failed to query terminal size", err)
}

func ConfigLoadFailed(path string, err error) error {
	return E(Op("config.Load"), KindConfig, fmt.Sprintf("failed to load config from %s", path), err)
}

func ConfigInvalid(reason string) error {
	return E(Op("config.Validate"), KindInvalid, reason)
}
