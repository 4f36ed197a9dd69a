// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package maskmem

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Memory is a map from addresses to values encoded as a decision diagram. We
// use the runtime hashmap for the unicity tables: one associates each triplet
// (level, low, high) to a single node and the other associates each value to a
// single terminal. Nodes are never freed, except by an explicit call to
// Compact.
//
// A Memory is not safe for concurrent use.
type Memory struct {
	nodes      []node          // List of all the nodes, in creation order
	unique     map[nodekey]int // Unicity table for internal nodes
	consts     map[uint64]int  // Unicity table for terminals
	root       int             // Node describing the current content of the memory
	produced   int             // Total number of new nodes ever produced
	writecache                 // Memoized results of the current write
	cacheStat                  // Information about the caches
	configs                    // Configurable parameters
}

// New returns an empty Memory, where every address holds the value 0. We
// return an error if one of the options has an illegal value.
func New(options ...func(*configs)) (*Memory, error) {
	c := makeconfigs()
	for _, f := range options {
		f(c)
	}
	if c.addrbits < 1 || c.addrbits > _MAXADDRBITS {
		return nil, fmt.Errorf("bad number of address bits (%d)", c.addrbits)
	}
	if c.maxnodesize < 0 {
		return nil, fmt.Errorf("bad maximal number of nodes (%d)", c.maxnodesize)
	}
	m := &Memory{configs: *c}
	m.nodes = make([]node, 0, c.nodesize)
	m.unique = make(map[nodekey]int, c.nodesize)
	m.consts = make(map[uint64]int)
	// the table is empty, so this cannot hit the limit of Maxnodesize
	m.root = m.makeconst(0)
	m.logger.WithFields(logrus.Fields{
		"addrbits": m.addrbits,
		"nodesize": m.nodesize,
		"maxnodes": m.maxnodesize,
	}).Debug("new memory")
	return m, nil
}

// Addrbits returns the number of bits in an address.
func (m *Memory) Addrbits() int {
	return m.addrbits
}

// Size returns the number of entries in the node table, including terminals
// and the nodes that are not reachable anymore.
func (m *Memory) Size() int {
	return len(m.nodes)
}

// addrmask returns the set of legal bits in an address.
func (m *Memory) addrmask() uint64 {
	if m.addrbits == _MAXADDRBITS {
		return ^uint64(0)
	}
	return (uint64(1) << uint(m.addrbits)) - 1
}

// ************************************************************

// makenode returns the index of the node (level, low, high), building it only
// if it does not already exist. We return -1 if the node table is full.
func (m *Memory) makenode(level int32, low, high int) int {
	m.uniqueAccess++
	// check whether children are equal, in which case we can skip the node
	if low == high {
		return low
	}
	key := nodekey{level: level, low: low, high: high}
	if res, ok := m.unique[key]; ok {
		m.uniqueHit++
		return res
	}
	m.uniqueMiss++
	res := m.setnode(node{level: level, low: low, high: high})
	if res < 0 {
		return -1
	}
	m.unique[key] = res
	return res
}

// makeconst returns the index of the terminal holding value v. We return -1 if
// the node table is full.
func (m *Memory) makeconst(v uint64) int {
	if res, ok := m.consts[v]; ok {
		return res
	}
	res := m.setnode(node{level: int32(m.addrbits), value: v})
	if res < 0 {
		return -1
	}
	m.nodes[res].low = res
	m.nodes[res].high = res
	m.consts[v] = res
	return res
}

func (m *Memory) setnode(n node) int {
	if m.maxnodesize > 0 && len(m.nodes) >= m.maxnodesize {
		return -1
	}
	m.produced++
	m.nodes = append(m.nodes, n)
	return len(m.nodes) - 1
}
