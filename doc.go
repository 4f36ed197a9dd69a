// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

/*
Package maskmem simulates a memory with fixed-width addresses (36 bits by
default) that is updated through masked writes, where some address bits are
"floating" and a single write stores a value at every address matching the
remaining bits.

Basics

A Memory is a multi-terminal, ordered decision diagram. Each internal node
decides one address bit, called its level, with level 0 the least significant
bit of the address. Terminal nodes hold the value stored at every address
leading to them; they sit at level Addrbits, after all the address bits. When a
node skips some levels, the memory is identical on both branches of the
skipped bits. This is what keeps the diagram small when writes leave most bits
untouched.

Nodes are kept in a table and shared: two nodes with the same level and the
same children are built only once, and a node with two identical children is
never built (we use the child instead). Nodes are referenced by their index in
the table.

Writes and sums

Method Write never enumerates addresses. It rebuilds the diagram bit by bit,
visiting both branches of a floating bit and memoizing intermediate results so
that branches that meet again on a shared subtree are rebuilt only once. Method
Sum adds the values of all the 2^Addrbits addresses, with 256-bit arithmetic,
by scaling the contribution of each node with the number of levels it skips.

Programs

The package also reads textual programs made of lines "mask = <pattern>" and
"mem[<addr>] = <value>", where a pattern is a string over {0,1,X} of length
Addrbits, most significant bit first. Programs can be executed in
address-mask mode (ExecAddressMask, floating bits fan out addresses) or in
value-mask mode (ExecValueMask, the mask rewrites the stored value).
*/
package maskmem
