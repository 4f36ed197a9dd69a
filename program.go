// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package maskmem

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/holiman/uint256"
)

// Assign is an instruction mem[Addr] = Value.
type Assign struct {
	Addr  uint64
	Value uint64
}

// Block is a mask together with the writes performed while it is active.
type Block struct {
	Mask   Mask
	Writes []Assign
}

// Program is a sequence of blocks, in the order of the input.
type Program []Block

// Parse reads a program from r. Each line is either "mask = <pattern>" or
// "mem[<addr>] = <value>", with addresses and values in decimal notation.
// Blank lines are ignored. We stop at the first malformed line and return an
// error wrapping ErrSyntax (or ErrNoMask for a write that comes before any
// mask) with the line number.
func Parse(r io.Reader) (Program, error) {
	prog := Program{}
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lhs, rhs, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("line %d: missing '=' in %q: %w", lineno, line, ErrSyntax)
		}
		lhs = strings.TrimSpace(lhs)
		rhs = strings.TrimSpace(rhs)
		switch {
		case lhs == "mask":
			mask, err := ParseMask(rhs)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineno, err)
			}
			prog = append(prog, Block{Mask: mask})
		case strings.HasPrefix(lhs, "mem[") && strings.HasSuffix(lhs, "]"):
			addr, err := strconv.ParseUint(lhs[4:len(lhs)-1], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad address in %q: %w", lineno, line, ErrSyntax)
			}
			value, err := strconv.ParseUint(rhs, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: bad value in %q: %w", lineno, line, ErrSyntax)
			}
			if len(prog) == 0 {
				return nil, fmt.Errorf("line %d: %w", lineno, ErrNoMask)
			}
			last := &prog[len(prog)-1]
			last.Writes = append(last.Writes, Assign{Addr: addr, Value: value})
		default:
			return nil, fmt.Errorf("line %d: unknown instruction %q: %w", lineno, lhs, ErrSyntax)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return prog, nil
}

// Len returns the number of writes in the program.
func (p Program) Len() int {
	res := 0
	for _, b := range p {
		res += len(b.Writes)
	}
	return res
}

// ************************************************************

// ExecAddressMask runs program p on a new Memory built with the given options.
// Each mask is applied to the addresses of its writes, with floating bits
// standing for both possible values.
func ExecAddressMask(p Program, options ...func(*configs)) (*Memory, error) {
	m, err := New(options...)
	if err != nil {
		return nil, err
	}
	for _, b := range p {
		for _, w := range b.Writes {
			if err := m.Write(b.Mask.Floating, b.Mask.Address(w.Addr), w.Value); err != nil {
				return nil, fmt.Errorf("mem[%d] = %d with mask %s: %w", w.Addr, w.Value, b.Mask, err)
			}
		}
	}
	return m, nil
}

// ExecValueMask runs program p on a sparse memory, where each mask is applied
// to the values written (and not to the addresses).
func ExecValueMask(p Program) map[uint64]uint64 {
	mem := make(map[uint64]uint64)
	for _, b := range p {
		for _, w := range b.Writes {
			mem[w.Addr] = b.Mask.Value(w.Value)
		}
	}
	return mem
}

// SumValues returns the sum of the values in a sparse memory.
func SumValues(mem map[uint64]uint64) *uint256.Int {
	res := new(uint256.Int)
	for _, v := range mem {
		res.Add(res, uint256.NewInt(v))
	}
	return res
}
