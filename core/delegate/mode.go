package delegate

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned when parsing an unknown delegation mode.
var ErrUnknownMode = errors.New("unknown delegation mode")

// Mode selects how a proxy forwards calls to its delegate.
type Mode int

const (
	// Direct requires the delegate to be an instance of every proxied type. Calls
	// are forwarded to the delegate method of the same signature.
	Direct Mode = iota
	// Signature only requires the delegate to have structurally compatible methods:
	// same name, same arity and parameters that accept the proxied parameters.
	Signature
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Direct:
		return "direct"
	case Signature:
		return "signature"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode parses a mode name, ignoring case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "direct":
		return Direct, nil
	case "signature":
		return Signature, nil
	default:
		return 0, fmt.Errorf("%w: '%s'", ErrUnknownMode, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if m != Direct && m != Signature {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
