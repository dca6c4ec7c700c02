package chain

import (
	"errors"
	"fmt"
)

var ErrInvalidSymbol = errors.New("invalid symbol code")

const symbolMaxLen = 7

// SymbolCode is a token ticker of one to seven upper case letters packed
// one byte per letter, first letter in the lowest byte.
type SymbolCode uint64

func ParseSymbolCode(s string) (SymbolCode, error) {
	if len(s) < 1 || len(s) > symbolMaxLen {
		return 0, fmt.Errorf("%w: %q must have between 1 and %d characters", ErrInvalidSymbol, s, symbolMaxLen)
	}
	var v uint64
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("%w: %q has illegal character %q", ErrInvalidSymbol, s, c)
		}
		v |= uint64(c) << (8 * i)
	}
	return SymbolCode(v), nil
}

// SymbolCodeFromUint64 checks a raw value read from chain data.
func SymbolCodeFromUint64(v uint64) (SymbolCode, error) {
	if v>>(8*symbolMaxLen) != 0 {
		return 0, fmt.Errorf("%w: %d out of range", ErrInvalidSymbol, v)
	}
	seenEnd := false
	for i := 0; i < symbolMaxLen; i++ {
		c := byte(v >> (8 * i))
		if c == 0 {
			seenEnd = true
			continue
		}
		if seenEnd || c < 'A' || c > 'Z' {
			return 0, fmt.Errorf("%w: %d has illegal byte %#x at %d", ErrInvalidSymbol, v, c, i)
		}
	}
	if v == 0 {
		return 0, fmt.Errorf("%w: empty", ErrInvalidSymbol)
	}
	return SymbolCode(v), nil
}

func (s SymbolCode) String() string {
	b := make([]byte, 0, symbolMaxLen)
	for i := 0; i < symbolMaxLen; i++ {
		c := byte(uint64(s) >> (8 * i))
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return string(b)
}
