// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package maskmem

import (
	"errors"
	"fmt"
)

var (
	// ErrSyntax is returned when a mask or an instruction is malformed.
	ErrSyntax = errors.New("syntax error")

	// ErrNoMask is returned when a program writes to memory before setting a
	// mask.
	ErrNoMask = errors.New("write before any mask")

	// ErrAddrRange is returned when a mask or an address uses bits outside of
	// the address width of a Memory.
	ErrAddrRange = errors.New("bit outside of address range")

	// ErrMemory is returned when a write needs more nodes than allowed by
	// Maxnodesize.
	ErrMemory = errors.New("node table is full")
)

// seterror wraps err with a description of the failed operation and logs it
// at debug level.
func (m *Memory) seterror(err error, format string, a ...interface{}) error {
	err = fmt.Errorf(format+": %w", append(a, err)...)
	m.logger.Debug(err)
	return err
}
