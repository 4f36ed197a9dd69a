// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package maskmem

import "github.com/sirupsen/logrus"

// Compact rebuilds the node table with only the nodes reachable from the root
// and returns the number of nodes reclaimed. The content of the memory is not
// modified. Indexes of nodes (as seen with Allnodes) are not preserved.
func (m *Memory) Compact() int {
	before := len(m.nodes)
	old := m.nodes
	m.nodes = make([]node, 0, m.Count()+len(m.consts))
	m.unique = make(map[nodekey]int, cap(m.nodes))
	m.consts = make(map[uint64]int)
	m.root = m.relocate(old, m.root, make(map[int]int))
	reclaimed := before - len(m.nodes)
	m.logger.WithFields(logrus.Fields{
		"before":    before,
		"after":     len(m.nodes),
		"reclaimed": reclaimed,
	}).Trace("compact")
	return reclaimed
}

// relocate copies the node old[n], and its successors, into the current node
// table. Since old is already shared, we never need to check the unicity
// tables; we only record the new nodes in them.
func (m *Memory) relocate(old []node, n int, moved map[int]int) int {
	if res, ok := moved[n]; ok {
		return res
	}
	res := len(m.nodes)
	on := old[n]
	if int(on.level) == m.addrbits {
		m.nodes = append(m.nodes, node{level: on.level, low: res, high: res, value: on.value})
		m.consts[on.value] = res
	} else {
		low := m.relocate(old, on.low, moved)
		high := m.relocate(old, on.high, moved)
		res = len(m.nodes)
		m.nodes = append(m.nodes, node{level: on.level, low: low, high: high})
		m.unique[nodekey{level: on.level, low: low, high: high}] = res
	}
	moved[n] = res
	return res
}
