//go:build !android && !ios

package globalshortcut

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

var namedKeys = map[string]fyne.KeyName{
	"enter":     fyne.KeyReturn,
	"return":    fyne.KeyReturn,
	"escape":    fyne.KeyEscape,
	"esc":       fyne.KeyEscape,
	"space":     fyne.KeySpace,
	"tab":       fyne.KeyTab,
	"up":        fyne.KeyUp,
	"down":      fyne.KeyDown,
	"left":      fyne.KeyLeft,
	"right":     fyne.KeyRight,
	"delete":    fyne.KeyDelete,
	"backspace": fyne.KeyBackspace,
	"home":      fyne.KeyHome,
	"end":       fyne.KeyEnd,
	"pageup":    fyne.KeyPageUp,
	"pagedown":  fyne.KeyPageDown,
	"f1":        fyne.KeyF1,
	"f2":        fyne.KeyF2,
	"f3":        fyne.KeyF3,
	"f4":        fyne.KeyF4,
	"f5":        fyne.KeyF5,
	"f6":        fyne.KeyF6,
	"f7":        fyne.KeyF7,
	"f8":        fyne.KeyF8,
	"f9":        fyne.KeyF9,
	"f10":       fyne.KeyF10,
	"f11":       fyne.KeyF11,
	"f12":       fyne.KeyF12,
}

// ParseAccelerator turns a string like "Ctrl+Shift+P" into a shortcut. At
// least one modifier and exactly one key are required; tokens are
// case-insensitive.
func ParseAccelerator(accel string) (*desktop.CustomShortcut, error) {
	var modifier fyne.KeyModifier
	var key fyne.KeyName

	tokens := strings.Split(accel, "+")
	for _, token := range tokens {
		token = strings.ToLower(strings.TrimSpace(token))
		if token == "" {
			return nil, fmt.Errorf("accelerator %q has an empty token", accel)
		}

		switch token {
		case "ctrl", "control":
			modifier |= fyne.KeyModifierControl
		case "cmd", "command", "super", "meta", "win":
			modifier |= fyne.KeyModifierSuper
		case "alt", "option":
			modifier |= fyne.KeyModifierAlt
		case "shift":
			modifier |= fyne.KeyModifierShift
		default:
			name, err := keyName(token)
			if err != nil {
				return nil, fmt.Errorf("accelerator %q: %w", accel, err)
			}
			if key != "" {
				return nil, fmt.Errorf("accelerator %q names more than one key", accel)
			}
			key = name
		}
	}

	if modifier == 0 {
		return nil, fmt.Errorf("accelerator %q needs at least one modifier", accel)
	}
	if key == "" {
		return nil, fmt.Errorf("accelerator %q names no key", accel)
	}
	return &desktop.CustomShortcut{KeyName: key, Modifier: modifier}, nil
}

func keyName(token string) (fyne.KeyName, error) {
	if name, ok := namedKeys[token]; ok {
		return name, nil
	}
	if len(token) == 1 {
		r := token[0]
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			return fyne.KeyName(strings.ToUpper(token)), nil
		}
	}
	return "", fmt.Errorf("unknown key %q", token)
}

// canonical renders the shortcut in a fixed modifier order so that
// "shift+ctrl+p" and "Ctrl+Shift+P" identify the same registration.
func canonical(sc *desktop.CustomShortcut) string {
	var parts []string
	if sc.Modifier&fyne.KeyModifierControl != 0 {
		parts = append(parts, "Ctrl")
	}
	if sc.Modifier&fyne.KeyModifierSuper != 0 {
		parts = append(parts, "Super")
	}
	if sc.Modifier&fyne.KeyModifierAlt != 0 {
		parts = append(parts, "Alt")
	}
	if sc.Modifier&fyne.KeyModifierShift != 0 {
		parts = append(parts, "Shift")
	}
	parts = append(parts, string(sc.KeyName))
	return strings.Join(parts, "+")
}
