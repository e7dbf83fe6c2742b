// Package keymap parses key chords and resolves them to commands per pane.
package keymap

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	ErrUnknownModifier = errors.New("unknown key modifier")
	ErrUnknownKeyCode  = errors.New("unknown key code")
	ErrUnknownCommand  = errors.New("unknown command")
)

// Modifier is a set of modifier keys.
type Modifier uint8

const (
	ModShift Modifier = 1 << iota
	ModCtrl
	ModAlt
	ModSuper
	ModHyper
	ModMeta
)

var modifierNames = map[string]Modifier{
	"alt":     ModAlt,
	"ctrl":    ModCtrl,
	"control": ModCtrl,
	"hyper":   ModHyper,
	"meta":    ModMeta,
	"shift":   ModShift,
	"super":   ModSuper,
}

// Named codes and how the terminal reports them.
var codeNames = map[string]string{
	"esc":       "esc",
	"backspace": "backspace",
	"backtab":   "shift+tab",
	"delete":    "delete",
	"down":      "down",
	"end":       "end",
	"enter":     "enter",
	"home":      "home",
	"insert":    "insert",
	"left":      "left",
	"page_down": "pgdown",
	"page_up":   "pgup",
	"right":     "right",
	"tab":       "tab",
	"up":        "up",
}

// Key is a key chord: a set of modifiers and a key code. Code is either a
// single character or one of the named codes.
type Key struct {
	Mods Modifier
	Code string
}

// ParseKey parses "modifier+modifier+code", ignoring case.
func ParseKey(s string) (Key, error) {
	value := strings.ToLower(strings.TrimSpace(s))

	var code string
	var rest string
	switch {
	case value == "+":
		code = "+"
	case strings.HasSuffix(value, "++"):
		code, rest = "+", strings.TrimSuffix(value, "++")
	default:
		i := strings.LastIndex(value, "+")
		code, rest = value[i+1:], value[:max(i, 0)]
	}

	var k Key
	if rest != "" {
		for _, m := range strings.Split(rest, "+") {
			if m == "" {
				continue
			}
			mod, ok := modifierNames[m]
			if !ok {
				return Key{}, fmt.Errorf("%w: %q in %q", ErrUnknownModifier, m, s)
			}
			k.Mods |= mod
		}
	}

	switch {
	case code == "space":
		k.Code = " "
	case utf8.RuneCountInString(code) == 1:
		k.Code = code
	case isFunctionKey(code):
		k.Code = code
	default:
		if _, ok := codeNames[code]; !ok {
			return Key{}, fmt.Errorf("%w: %q in %q", ErrUnknownKeyCode, code, s)
		}
		k.Code = code
	}
	return k, nil
}

// MustParseKey is ParseKey for keys known to be valid.
func MustParseKey(s string) Key {
	k, err := ParseKey(s)
	if err != nil {
		panic(err)
	}
	return k
}

func isFunctionKey(code string) bool {
	if !strings.HasPrefix(code, "f") {
		return false
	}
	n, err := strconv.Atoi(code[1:])
	return err == nil && n >= 1 && n <= 20
}

// String renders the key the way it is written in the config file.
func (k Key) String() string {
	var parts []string
	for _, m := range []struct {
		mod  Modifier
		name string
	}{
		{ModCtrl, "ctrl"}, {ModAlt, "alt"}, {ModShift, "shift"},
		{ModMeta, "meta"}, {ModSuper, "super"}, {ModHyper, "hyper"},
	} {
		if k.Mods&m.mod != 0 {
			parts = append(parts, m.name)
		}
	}
	code := k.Code
	if code == " " {
		code = "space"
	}
	return strings.Join(append(parts, code), "+")
}

// TeaString returns the string bubbletea reports for this chord. Super and
// hyper never reach a terminal application, so keys using them report false.
func (k Key) TeaString() (string, bool) {
	if k.Mods&(ModSuper|ModHyper) != 0 {
		return "", false
	}
	ctrl := k.Mods&ModCtrl != 0
	shift := k.Mods&ModShift != 0
	alt := k.Mods&(ModAlt|ModMeta) != 0

	var s string
	if r, size := utf8.DecodeRuneInString(k.Code); size == len(k.Code) {
		switch {
		case r == ' ' && ctrl:
			s = "ctrl+@"
		case ctrl:
			s = "ctrl+" + string(unicode.ToLower(r))
		case shift:
			s = string(unicode.ToUpper(r))
		default:
			s = k.Code
		}
	} else {
		name, ok := codeNames[k.Code]
		if !ok {
			name = k.Code
		}
		switch k.Code {
		case "up", "down", "left", "right", "home", "end":
			prefix := ""
			if ctrl {
				prefix += "ctrl+"
			}
			if shift {
				prefix += "shift+"
			}
			s = prefix + name
		case "page_up", "page_down":
			if ctrl {
				name = "ctrl+" + name
			}
			s = name
		case "tab":
			if shift {
				name = "shift+tab"
			}
			s = name
		default:
			s = name
		}
	}

	if alt {
		s = "alt+" + s
	}
	return s, true
}
