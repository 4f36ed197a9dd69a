// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package maskmem

import (
	"github.com/holiman/uint256"
	"github.com/sirupsen/logrus"
)

// Write stores value at every address that agrees with addr on all the bits
// that are not set in floating. The bits of addr that are set in floating are
// ignored. We never enumerate addresses: the diagram is rebuilt level by
// level, visiting both branches of a floating bit.
//
// Bits of floating or addr outside of the address width are a usage error;
// we return ErrAddrRange and the memory is left unchanged. Likewise, we return
// ErrMemory if the write needs more nodes than allowed by Maxnodesize.
func (m *Memory) Write(floating, addr, value uint64) error {
	if (floating|addr)&^m.addrmask() != 0 {
		return m.seterror(ErrAddrRange, "write(%#x, %#x, %d)", floating, addr, value)
	}
	data := m.makeconst(value)
	if data < 0 {
		return m.seterror(ErrMemory, "write(%#x, %#x, %d)", floating, addr, value)
	}
	m.cacheinit(floating, addr, data)
	res := m.write(0, m.root)
	m.cachereset()
	if res < 0 {
		return m.seterror(ErrMemory, "write(%#x, %#x, %d)", floating, addr, value)
	}
	m.root = res
	m.logger.WithFields(logrus.Fields{
		"floating": floating,
		"addr":     addr,
		"value":    value,
		"root":     res,
		"nodes":    len(m.nodes),
	}).Debug("write")
	return nil
}

// write returns the node obtained after writing in n at all the levels from
// level to addrbits. Node n must not decide a bit lower than level.
func (m *Memory) write(level int32, n int) int {
	if int(level) == m.addrbits {
		return m.data
	}
	key := writekey{level: level, n: n}
	if res, ok := m.table[key]; ok {
		m.opHit++
		return res
	}
	m.opMiss++
	bit := uint64(1) << uint(level)
	floats := m.floating&bit != 0
	one := m.addr&bit != 0
	res := -1
	if m.level(n) > level {
		// n does not decide this bit: both branches of the bit lead to n
		j := m.write(level+1, n)
		switch {
		case j < 0:
			return -1
		case floats:
			res = j
		case one:
			res = m.makenode(level, n, j)
		default:
			res = m.makenode(level, j, n)
		}
	} else {
		low, high := m.low(n), m.high(n)
		switch {
		case floats:
			if low = m.write(level+1, low); low < 0 {
				return -1
			}
			high = m.write(level+1, high)
		case one:
			high = m.write(level+1, high)
		default:
			low = m.write(level+1, low)
		}
		if low < 0 || high < 0 {
			return -1
		}
		res = m.makenode(level, low, high)
	}
	if res >= 0 {
		m.table[key] = res
	}
	return res
}

// Get returns the value stored at address addr. Bits of addr outside of the
// address width are ignored.
func (m *Memory) Get(addr uint64) uint64 {
	n := m.root
	for !m.isconst(n) {
		if addr&(uint64(1)<<uint(m.level(n))) != 0 {
			n = m.high(n)
		} else {
			n = m.low(n)
		}
	}
	return m.nodes[n].value
}

// Sum returns the sum of the values stored at every address in the memory,
// including the addresses never written (which hold 0). We use 256-bits
// integers since the result can exceed 64 bits.
func (m *Memory) Sum() *uint256.Int {
	sumc := make(map[int]*uint256.Int)
	return m.sum(m.root, 0, sumc)
}

// sum returns the contribution of node n when it is reached at the given
// level. We use sumc to memoize the value of sum for each node at its own
// level and scale the result with the number of levels skipped by the
// caller, which depends on the path taken to n.
func (m *Memory) sum(n int, level int32, sumc map[int]*uint256.Int) *uint256.Int {
	var res *uint256.Int
	if m.isconst(n) {
		res = uint256.NewInt(m.nodes[n].value)
	} else if res = sumc[n]; res == nil {
		next := m.level(n) + 1
		res = new(uint256.Int).Add(m.sum(m.low(n), next, sumc), m.sum(m.high(n), next, sumc))
		sumc[n] = res
	}
	return new(uint256.Int).Lsh(res, uint(m.level(n)-level))
}

// Count returns the number of internal (non terminal) nodes reachable from the
// root of the memory.
func (m *Memory) Count() int {
	return m.markcount(m.root, make(map[int]bool))
}

// markcount returns the number of internal successors of the node n that are
// not already marked, and mark them.
func (m *Memory) markcount(n int, marked map[int]bool) int {
	if m.isconst(n) || marked[n] {
		return 0
	}
	marked[n] = true
	return 1 + m.markcount(m.low(n), marked) + m.markcount(m.high(n), marked)
}
