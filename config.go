// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package maskmem

import (
	"io"

	"github.com/sirupsen/logrus"
)

// configs is used to store the values of different parameters of a Memory
type configs struct {
	addrbits    int                // number of address bits
	nodesize    int                // initial capacity of the node table
	maxnodesize int                // Maximum total number of nodes (0 if no limit)
	logger      logrus.FieldLogger // destination of debug and trace logs
}

func makeconfigs() *configs {
	c := &configs{addrbits: _DEFAULTADDRBITS, nodesize: _DEFAULTNODESIZE}
	l := logrus.New()
	l.SetOutput(io.Discard)
	c.logger = l
	return c
}

// Addrbits is a configuration option (function). Used as a parameter in New it
// sets the number of bits in an address, which is also the number of levels
// in the diagram. The value must be in the interval [1..64]; the default is
// 36.
func Addrbits(n int) func(*configs) {
	return func(c *configs) {
		c.addrbits = n
	}
}

// Nodesize is a configuration option (function). Used as a parameter in New it
// sets a preferred initial capacity for the node table. The table grows
// during computation, so this value is only a hint. Values smaller than 1 are
// ignored.
func Nodesize(size int) func(*configs) {
	return func(c *configs) {
		if size >= 1 {
			c.nodesize = size
		}
	}
}

// Maxnodesize is a configuration option (function). Used as a parameter in New
// it sets a limit to the number of nodes in the table. A write trying to raise
// the number of nodes above this limit fails with ErrMemory and leaves the
// memory unchanged. The default value (0) means that there is no limit.
func Maxnodesize(size int) func(*configs) {
	return func(c *configs) {
		c.maxnodesize = size
	}
}

// Logger is a configuration option (function). Used as a parameter in New it
// sets the logger receiving debug information about writes. By default logs
// are discarded.
func Logger(l logrus.FieldLogger) func(*configs) {
	return func(c *configs) {
		if l != nil {
			c.logger = l
		}
	}
}
