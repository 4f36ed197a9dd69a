// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package maskmem

type node struct {
	level int32  // Address bit decided by the node; equal to addrbits for terminals
	low   int    // Reference to the bit=0 branch (the node itself for terminals)
	high  int    // Reference to the bit=1 branch (the node itself for terminals)
	value uint64 // Value stored at the addresses leading to a terminal
}

// nodekey is the key of internal nodes in the unicity table.
type nodekey struct {
	level int32
	low   int
	high  int
}

// ************************************************************

func (m *Memory) isconst(n int) bool {
	return int(m.nodes[n].level) == m.addrbits
}

func (m *Memory) level(n int) int32 {
	return m.nodes[n].level
}

func (m *Memory) low(n int) int {
	return m.nodes[n].low
}

func (m *Memory) high(n int) int {
	return m.nodes[n].high
}
