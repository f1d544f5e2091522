package terminal

import (
	"unicode/utf8"
)

// Key types.
const (
	KeyRune      = iota // Printable character, or a letter with ModCtrl
	KeyEscape           // Escape key (standalone)
	KeyEnter            // Enter/Return
	KeyBackspace        // Backspace/Delete-backward
	KeyTab              // Tab
	KeyUp               // Arrow up
	KeyDown             // Arrow down
	KeyLeft             // Arrow left
	KeyRight            // Arrow right
	KeyHome             // Home
	KeyEnd              // End
	KeyDelete           // Delete/Forward-delete
	KeyPgUp             // Page Up
	KeyPgDn             // Page Down
	KeyUnknown          // Unrecognised sequence
)

// Mod is a bit set of key modifiers.
type Mod int

const (
	ModCtrl Mod = 1 << iota
	ModAlt
	ModShift
)

// Key is one decoded input event.
type Key struct {
	Type int
	Rune rune
	Mod  Mod
}

// Ctrl returns the key produced by Ctrl plus a lowercase letter.
func Ctrl(letter rune) Key {
	return Key{Type: KeyRune, Rune: letter, Mod: ModCtrl}
}

// Char returns the key for a plain printable character.
func Char(r rune) Key {
	return Key{Type: KeyRune, Rune: r}
}

// IsCtrl reports whether k is Ctrl plus the given lowercase letter.
func (k Key) IsCtrl(letter rune) bool {
	return k.Type == KeyRune && k.Mod&ModCtrl != 0 && k.Rune == letter
}

// needsMore reports whether buf ends in the middle of a UTF-8 sequence and
// another read is required before decoding.
func needsMore(buf []byte) bool {
	return buf[0] >= 0x80 && len(buf) < utf8.UTFMax && !utf8.FullRune(buf)
}

// incompleteEscape reports whether buf is a lone ESC or the start of a CSI
// or SS3 sequence still missing its final byte.
func incompleteEscape(buf []byte) bool {
	if len(buf) == 0 || buf[0] != 27 {
		return false
	}
	if len(buf) == 1 {
		return true
	}
	switch buf[1] {
	case 'O':
		return len(buf) == 2
	case '[':
		for _, b := range buf[2:] {
			if b >= 0x40 && b <= 0x7E {
				return false
			}
		}
		return true
	}
	return false
}

// parseKey decodes the first key in buf and returns it with the number of
// bytes it used. buf must not be empty.
func parseKey(buf []byte) (Key, int) {
	if len(buf) == 0 {
		return Key{Type: KeyUnknown}, 0
	}

	b := buf[0]
	switch {
	case b == 27:
		return parseEscape(buf)
	case b == 13 || b == 10:
		return Key{Type: KeyEnter}, 1
	case b == 127 || b == 8:
		return Key{Type: KeyBackspace}, 1
	case b == 9:
		return Key{Type: KeyTab}, 1
	case b >= 1 && b <= 26:
		// Ctrl+A .. Ctrl+Z.
		return Ctrl(rune('a' + b - 1)), 1
	case b < 32:
		return Key{Type: KeyUnknown}, 1
	case b < 127:
		return Char(rune(b)), 1
	}

	// Multi-byte UTF-8 character.
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		return Key{Type: KeyUnknown}, 1
	}
	return Char(r), size
}

func parseEscape(buf []byte) (Key, int) {
	if len(buf) == 1 {
		return Key{Type: KeyEscape}, 1
	}

	switch buf[1] {
	case '[':
		return parseCSI(buf)
	case 'O':
		// SS3 sequences, sent by some terminals for arrows and Home/End.
		if len(buf) < 3 {
			return Key{Type: KeyUnknown}, len(buf)
		}
		if t, ok := finalKeys[buf[2]]; ok {
			return Key{Type: t}, 3
		}
		return Key{Type: KeyUnknown}, 3
	}

	// ESC plus a control byte is an Alt+Ctrl chord. Consume both so the
	// control byte is not replayed as a plain Ctrl binding.
	if buf[1] < 32 && buf[1] != 27 {
		return Key{Type: KeyUnknown}, 2
	}

	// Alt+key arrives as ESC followed by the key itself.
	k, n := parseKey(buf[1:])
	if k.Type == KeyUnknown {
		return Key{Type: KeyEscape}, 1
	}
	k.Mod |= ModAlt
	return k, n + 1
}

var finalKeys = map[byte]int{
	'A': KeyUp,
	'B': KeyDown,
	'C': KeyRight,
	'D': KeyLeft,
	'H': KeyHome,
	'F': KeyEnd,
}

var tildeKeys = map[string]int{
	"1": KeyHome,
	"7": KeyHome,
	"4": KeyEnd,
	"8": KeyEnd,
	"3": KeyDelete,
	"5": KeyPgUp,
	"6": KeyPgDn,
}

// parseCSI decodes ESC [ <params> <final>.
func parseCSI(buf []byte) (Key, int) {
	end := -1
	for i := 2; i < len(buf); i++ {
		if buf[i] >= 0x40 && buf[i] <= 0x7E {
			end = i
			break
		}
	}
	if end < 0 {
		return Key{Type: KeyUnknown}, len(buf)
	}

	params := string(buf[2:end])
	first, mods := params, ""
	for i := 0; i < len(params); i++ {
		if params[i] == ';' {
			first, mods = params[:i], params[i+1:]
			break
		}
	}

	var k Key
	final := buf[end]
	switch {
	case final == '~':
		t, ok := tildeKeys[first]
		if !ok {
			return Key{Type: KeyUnknown}, end + 1
		}
		k.Type = t
	default:
		t, ok := finalKeys[final]
		if !ok {
			return Key{Type: KeyUnknown}, end + 1
		}
		k.Type = t
	}
	k.Mod = csiMod(mods)
	return k, end + 1
}

// csiMod decodes the xterm modifier parameter (1 + bitmask).
func csiMod(p string) Mod {
	if len(p) != 1 || p[0] < '2' || p[0] > '8' {
		return 0
	}
	bits := p[0] - '1'
	var m Mod
	if bits&1 != 0 {
		m |= ModShift
	}
	if bits&2 != 0 {
		m |= ModAlt
	}
	if bits&4 != 0 {
		m |= ModCtrl
	}
	return m
}
