// Package chain holds the identifier types a contract host hands to
// contract code: account names and token symbol codes.
package chain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidName = errors.New("invalid name")

const (
	nameMaxLen = 13
	// characters in index order; position is the 5 bit symbol value
	nameAlphabet = ".12345abcdefghijklmnopqrstuvwxyz"
)

// Name is an account or action name packed into 64 bits. The first
// twelve characters take 5 bits each starting from the most significant
// end, an optional thirteenth character takes the low 4 bits.
type Name uint64

// ParseName encodes s, rejecting anything that would not round trip
// through String.
func ParseName(s string) (Name, error) {
	if err := validateName(s); err != nil {
		return 0, err
	}

	var n uint64
	for i := 0; i < len(s); i++ {
		sym := uint64(charToSymbol(s[i]))
		if i < 12 {
			n |= (sym & 0x1f) << (64 - 5*(i+1))
		} else {
			n |= sym & 0x0f
		}
	}
	return Name(n), nil
}

// MustParseName is ParseName for package level constants.
func MustParseName(s string) Name {
	n, err := ParseName(s)
	if err != nil {
		panic(err)
	}
	return n
}

func (n Name) String() string {
	var b [nameMaxLen]byte
	v := uint64(n)
	for i := 0; i < nameMaxLen; i++ {
		var sym uint64
		if i < 12 {
			sym = (v >> (64 - 5*(i+1))) & 0x1f
		} else {
			sym = v & 0x0f
		}
		b[i] = nameAlphabet[sym]
	}
	return strings.TrimRight(string(b[:]), ".")
}

// IsEmpty reports whether n is the zero name.
func (n Name) IsEmpty() bool { return n == 0 }

func (n Name) MarshalText() ([]byte, error) {
	return []byte(n.String()), nil
}

func (n *Name) UnmarshalText(text []byte) error {
	parsed, err := ParseName(string(text))
	if err != nil {
		return err
	}
	*n = parsed
	return nil
}

func validateName(s string) error {
	if len(s) == 0 || len(s) > nameMaxLen {
		return fmt.Errorf("%w: %q must have between 1 and %d characters", ErrInvalidName, s, nameMaxLen)
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '.' && !(c >= '1' && c <= '5') && !(c >= 'a' && c <= 'z') {
			return fmt.Errorf("%w: %q has illegal character %q", ErrInvalidName, s, c)
		}
	}
	if s[0] == '.' || s[len(s)-1] == '.' || strings.Contains(s, "..") {
		return fmt.Errorf("%w: %q has a leading, trailing or repeated dot", ErrInvalidName, s)
	}
	if len(s) == nameMaxLen && charToSymbol(s[12]) > 0x0f {
		return fmt.Errorf("%w: %q thirteenth character must be one of .1-5a-j", ErrInvalidName, s)
	}
	return nil
}

func charToSymbol(c byte) byte {
	switch {
	case c >= 'a' && c <= 'z':
		return c - 'a' + 6
	case c >= '1' && c <= '5':
		return c - '1' + 1
	default:
		return 0
	}
}
