// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package maskmem

import (
	"fmt"
	"strings"
)

// Mask is a pattern over {0,1,X} applied to addresses (or values). Floating
// holds the bits where the pattern has an X and Ones the bits where it has a
// 1. Character i of a pattern of length n is the bit n-1-i, so that patterns
// read like binary numbers.
type Mask struct {
	Floating uint64
	Ones     uint64
	width    int
}

// ParseMask returns the Mask described by pattern s. The pattern must have
// between 1 and 64 characters in {0,1,X}; otherwise we return an error
// wrapping ErrSyntax.
func ParseMask(s string) (Mask, error) {
	if len(s) == 0 || len(s) > _MAXADDRBITS {
		return Mask{}, fmt.Errorf("mask %q has %d bits: %w", s, len(s), ErrSyntax)
	}
	m := Mask{width: len(s)}
	for i := 0; i < len(s); i++ {
		m.Floating <<= 1
		m.Ones <<= 1
		switch s[i] {
		case 'X':
			m.Floating |= 1
		case '1':
			m.Ones |= 1
		case '0':
		default:
			return Mask{}, fmt.Errorf("mask %q: unexpected character %q at position %d: %w", s, s[i], i, ErrSyntax)
		}
	}
	return m, nil
}

// Address returns the base address obtained by applying the mask to addr: bits
// set to 1 in the mask are set, and floating bits are cleared. Bits of addr
// where the mask is 0 are kept.
func (m Mask) Address(addr uint64) uint64 {
	return addr&^m.Floating | m.Ones
}

// Value returns the result of applying the mask to value v: floating bits of v
// are kept, and the others are replaced by the bit of the mask.
func (m Mask) Value(v uint64) uint64 {
	return v&m.Floating | m.Ones
}

// Width returns the number of characters in the pattern of m. The width of the
// zero Mask is 36.
func (m Mask) Width() int {
	if m.width == 0 {
		return _DEFAULTADDRBITS
	}
	return m.width
}

// String returns the pattern of m, most significant bit first.
func (m Mask) String() string {
	var sb strings.Builder
	for i := m.Width() - 1; i >= 0; i-- {
		bit := uint64(1) << uint(i)
		switch {
		case m.Floating&bit != 0:
			sb.WriteByte('X')
		case m.Ones&bit != 0:
			sb.WriteByte('1')
		default:
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
