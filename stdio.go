// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package maskmem

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Statistics gives information about the size of a Memory and the efficiency
// of its caches.
type Statistics struct {
	Addrbits     int // Number of address bits
	Allocated    int // Number of entries in the node table
	Produced     int // Total number of nodes ever produced
	Reachable    int // Internal nodes reachable from the root
	Terminals    int // Terminals in the node table
	UniqueAccess int // Accesses to the unicity table
	UniqueHit    int // Nodes found in the unicity table
	UniqueMiss   int // Nodes not found in the unicity table
	WriteHit     int // Results found in the write cache
	WriteMiss    int // Results not found in the write cache
}

// Statistics returns information about the Memory.
func (m *Memory) Statistics() Statistics {
	return Statistics{
		Addrbits:     m.addrbits,
		Allocated:    len(m.nodes),
		Produced:     m.produced,
		Reachable:    m.Count(),
		Terminals:    len(m.consts),
		UniqueAccess: m.uniqueAccess,
		UniqueHit:    m.uniqueHit,
		UniqueMiss:   m.uniqueMiss,
		WriteHit:     m.opHit,
		WriteMiss:    m.opMiss,
	}
}

// Stats returns a textual description of the Memory statistics.
func (m *Memory) Stats() string {
	res := fmt.Sprintf("Addrbits:   %d\n", m.addrbits)
	res += fmt.Sprintf("Allocated:  %d\n", len(m.nodes))
	res += fmt.Sprintf("Produced:   %d\n", m.produced)
	res += fmt.Sprintf("Reachable:  %d\n", m.Count())
	res += fmt.Sprintf("Terminals:  %d\n", len(m.consts))
	res += "==============\n"
	res += m.cacheStat.String()
	return res
}

// ******************************************************************************************************

// String returns a one-line description of the diagram. Internal nodes are
// printed as [id@level low high] and terminals as (value). A node already
// printed is abbreviated as [id@level..].
func (m *Memory) String() string {
	var sb strings.Builder
	m.print(&sb, m.root, make(map[int]bool))
	return sb.String()
}

func (m *Memory) print(sb *strings.Builder, n int, seen map[int]bool) {
	if m.isconst(n) {
		fmt.Fprintf(sb, "(%d)", m.nodes[n].value)
		return
	}
	if seen[n] {
		fmt.Fprintf(sb, "[%d@%d..]", n, m.level(n))
		return
	}
	seen[n] = true
	fmt.Fprintf(sb, "[%d@%d ", n, m.level(n))
	m.print(sb, m.low(n), seen)
	sb.WriteByte(' ')
	m.print(sb, m.high(n), seen)
	sb.WriteByte(']')
}

// Allnodes iterates over all the nodes reachable from the root and calls f on
// each of them, exactly once. Function f takes the id, level, and id's of the
// low and high successors of each node. Terminals have level Addrbits and are
// their own successors. We stop and return an error if f returns an error at
// some point.
func (m *Memory) Allnodes(f func(id, level, low, high int) error) error {
	return m.allnodes(m.root, make(map[int]bool), f)
}

func (m *Memory) allnodes(n int, seen map[int]bool, f func(id, level, low, high int) error) error {
	if seen[n] {
		return nil
	}
	seen[n] = true
	if err := f(n, int(m.level(n)), m.low(n), m.high(n)); err != nil {
		return err
	}
	if m.isconst(n) {
		return nil
	}
	if err := m.allnodes(m.low(n), seen, f); err != nil {
		return err
	}
	return m.allnodes(m.high(n), seen, f)
}

// WriteDot writes a graph-like description of the diagram, using the DOT
// format of Graphviz, on w.
func (m *Memory) WriteDot(w io.Writer) error {
	nodes := []int{}
	m.Allnodes(func(id, level, low, high int) error {
		nodes = append(nodes, id)
		return nil
	})
	sort.Ints(nodes)
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "digraph G {")
	for _, v := range nodes {
		if m.isconst(v) {
			fmt.Fprintf(bw, "%d [shape=box, label=\"%d\", style=filled, height=0.3, width=0.3];\n", v, m.nodes[v].value)
			continue
		}
		fmt.Fprintf(bw, "%d %s\n", v, dotlabel(v, m.level(v)))
		fmt.Fprintf(bw, "%d -> %d [style=dotted];\n", v, m.low(v))
		fmt.Fprintf(bw, "%d -> %d [style=filled];\n", v, m.high(v))
	}
	fmt.Fprintln(bw, "}")
	return bw.Flush()
}

func dotlabel(a int, b int32) string {
	return fmt.Sprintf(`[label=<
	<FONT POINT-SIZE="20">%d</FONT>
	<FONT POINT-SIZE="10">[%d]</FONT>
>];`, b, a)
}
