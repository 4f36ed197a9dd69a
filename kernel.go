// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package maskmem

// _DEFAULTADDRBITS is the number of address bits (levels in the diagram) used
// when no Addrbits option is given.
const _DEFAULTADDRBITS int = 36

// _MAXADDRBITS is the maximal number of address bits. Addresses and masks are
// stored in a uint64.
const _MAXADDRBITS int = 64

// _DEFAULTNODESIZE is the default capacity of the node table. The table grows
// as needed, this only saves a few reallocations on small examples.
const _DEFAULTNODESIZE int = 1 << 10
