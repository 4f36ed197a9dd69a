// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package maskmem

import "fmt"

// cacheStat stores status information about cache usage
type cacheStat struct {
	uniqueAccess int // accesses to the unique node table
	uniqueHit    int // entries actually found in the the unique node table
	uniqueMiss   int // entries not found in the the unique node table
	opHit        int // entries found in the write cache
	opMiss       int // entries not found in the write cache
}

// ************************************************************

// writekey identifies a recursive call during a write: the node we are
// rewriting and the address bit we are at.
type writekey struct {
	level int32
	n     int
}

// writecache stores the parameters of the current write together with the
// results computed so far. It is only valid during a single call to Write.
type writecache struct {
	table    map[writekey]int // Results of the recursive calls
	floating uint64           // Floating bits of the current write
	addr     uint64           // Base address of the current write
	data     int              // Terminal holding the value of the current write
}

func (wc *writecache) cacheinit(floating, addr uint64, data int) {
	wc.table = make(map[writekey]int)
	wc.floating = floating
	wc.addr = addr
	wc.data = data
}

func (wc *writecache) cachereset() {
	wc.table = nil
}

// ************************************************************

func (c cacheStat) String() string {
	res := fmt.Sprintf("Unique Access:  %d\n", c.uniqueAccess)
	res += fmt.Sprintf("Unique Hit:     %d\n", c.uniqueHit)
	res += fmt.Sprintf("Unique Miss:    %d\n", c.uniqueMiss)
	res += fmt.Sprintf("Write Hits:     %d\n", c.opHit)
	res += fmt.Sprintf("Write Miss:     %d", c.opMiss)
	return res
}
