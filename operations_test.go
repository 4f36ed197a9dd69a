// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package maskmem

import (
	"math/bits"
	"math/rand"
	"strings"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ex0 = `mask = XXXXXXXXXXXXXXXXXXXXXXXXXXXXX1XXXX0X
mem[8] = 11
mem[7] = 101
mem[8] = 0
`

const ex1 = `mask = 000000000000000000000000000000X1001X
mem[42] = 100
mask = 00000000000000000000000000000000X0XX
mem[26] = 1
`

// splat performs a masked write on a sparse map by enumerating every
// combination of the floating bits.
func splat(mem map[uint64]uint64, floating, addr, value uint64) {
	var fbits []uint64
	for b := 0; b < 64; b++ {
		if floating&(uint64(1)<<uint(b)) != 0 {
			fbits = append(fbits, uint64(1)<<uint(b))
		}
	}
	base := addr &^ floating
	for c := 0; c < 1<<uint(len(fbits)); c++ {
		off := uint64(0)
		for k, f := range fbits {
			if c&(1<<uint(k)) != 0 {
				off |= f
			}
		}
		mem[base|off] = value
	}
}

// randomMask returns a mask with exactly k floating bits among the width
// lowest bits.
func randomMask(r *rand.Rand, width, k int) uint64 {
	res := uint64(0)
	for bits.OnesCount64(res) < k {
		res |= uint64(1) << uint(r.Intn(width))
	}
	return res
}

func mustParse(t *testing.T, s string) Program {
	t.Helper()
	prog, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return prog
}

//********************************************************************************************

func TestWriteExamples(t *testing.T) {
	var exampleTests = []struct {
		name  string
		input string
		sum   string
		count int
		size  int
	}{
		{"ex0", ex0, "1735166787584", 2, 8},
		{"ex1", ex1, "208", 68, 75},
	}
	for _, tt := range exampleTests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ExecAddressMask(mustParse(t, tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.sum, m.Sum().ToBig().String())
			assert.Equal(t, tt.count, m.Count())
			assert.Equal(t, tt.size, m.Size())
		})
	}
}

func TestWriteFanOut(t *testing.T) {
	m, err := ExecAddressMask(mustParse(t, ex1))
	require.NoError(t, err)
	expected := map[uint64]uint64{
		16: 1, 17: 1, 18: 1, 19: 1, 24: 1, 25: 1, 26: 1, 27: 1,
		58: 100, 59: 100,
	}
	for addr := uint64(0); addr < 128; addr++ {
		assert.Equal(t, expected[addr], m.Get(addr), "address %d", addr)
	}
}

func TestWritePointUpdates(t *testing.T) {
	r := rand.New(rand.NewSource(14))
	m, err := New()
	require.NoError(t, err)
	naive := make(map[uint64]uint64)
	for i := 0; i < 500; i++ {
		addr := uint64(r.Int63n(1 << 36))
		if i%5 == 0 && len(naive) > 0 {
			// overwrite an address already written
			for a := range naive {
				addr = a
				break
			}
		}
		value := uint64(r.Int63n(1 << 36))
		require.NoError(t, m.Write(0, addr, value))
		naive[addr] = value
	}
	for addr, value := range naive {
		require.Equal(t, value, m.Get(addr), "address %#x", addr)
	}
	assert.Equal(t, SumValues(naive), m.Sum())
	assert.LessOrEqual(t, m.Count(), len(naive)*m.Addrbits())
}

func TestWriteFloatingBits(t *testing.T) {
	r := rand.New(rand.NewSource(2020))
	for k := 0; k <= 6; k++ {
		m, err := New()
		require.NoError(t, err)
		naive := make(map[uint64]uint64)
		for i := 0; i < 40; i++ {
			floating := randomMask(r, 36, k)
			addr := uint64(r.Int63n(1<<36)) &^ floating
			value := uint64(r.Int63n(1 << 20))
			require.NoError(t, m.Write(floating, addr, value))
			splat(naive, floating, addr, value)
		}
		require.Equal(t, SumValues(naive), m.Sum(), "k = %d", k)
		for addr, value := range naive {
			require.Equal(t, value, m.Get(addr), "k = %d, address %#x", k, addr)
		}
		assert.LessOrEqual(t, m.Count(), len(naive)*m.Addrbits())
	}
}

// TestWriteExhaustive compares the memory with an array covering the whole
// address space, using a small number of address bits and arbitrary masks.
func TestWriteExhaustive(t *testing.T) {
	const width = 8
	r := rand.New(rand.NewSource(36))
	m, err := New(Addrbits(width))
	require.NoError(t, err)
	var naive [1 << width]uint64
	for i := 0; i < 200; i++ {
		floating := uint64(r.Intn(1<<width)) & uint64(r.Intn(1<<width))
		addr := uint64(r.Intn(1 << width))
		value := uint64(r.Intn(4))
		require.NoError(t, m.Write(floating, addr, value))
		for a := range naive {
			if uint64(a)&^floating == addr&^floating {
				naive[a] = value
			}
		}
		sum := new(uint256.Int)
		for a, v := range naive {
			require.Equal(t, v, m.Get(uint64(a)), "step %d, address %d", i, a)
			sum.Add(sum, uint256.NewInt(v))
		}
		require.Equal(t, sum, m.Sum(), "step %d", i)
		require.Less(t, m.Count(), 1<<width)
	}
}

func TestWriteIdempotent(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	mask, err := ParseMask("0000000000000000000000000X0000X1XX01")
	require.NoError(t, err)
	require.NoError(t, m.Write(mask.Floating, mask.Address(1234), 77))
	sum, str, size := m.Sum(), m.String(), m.Size()
	require.NoError(t, m.Write(mask.Floating, mask.Address(1234), 77))
	assert.Equal(t, sum, m.Sum())
	assert.Equal(t, str, m.String())
	assert.Equal(t, size, m.Size())
}

func TestWriteOverlap(t *testing.T) {
	m, err := New()
	require.NoError(t, err)
	require.NoError(t, m.Write(0b11, 0, 5))
	require.NoError(t, m.Write(0, 1, 9))
	assert.Equal(t, []uint64{5, 9, 5, 5}, []uint64{m.Get(0), m.Get(1), m.Get(2), m.Get(3)})
	assert.Equal(t, uint256.NewInt(24), m.Sum())
	require.NoError(t, m.Write(0b110, 0, 2))
	assert.Equal(t, []uint64{2, 9, 2, 5, 2, 0, 2, 0}, []uint64{
		m.Get(0), m.Get(1), m.Get(2), m.Get(3), m.Get(4), m.Get(5), m.Get(6), m.Get(7),
	})
	assert.Equal(t, uint256.NewInt(22), m.Sum())
	// writing 0 erases
	require.NoError(t, m.Write(0b111, 0, 0))
	assert.True(t, m.Sum().IsZero())
	assert.Equal(t, 0, m.Count())
}

func TestWriteAllFloating(t *testing.T) {
	var allTests = []struct {
		addrbits int
		value    uint64
	}{
		{36, 1},
		{36, 42},
		{36, 1<<36 - 1},
		{64, 1},
		{64, ^uint64(0)},
		{1, 3},
	}
	for _, tt := range allTests {
		m, err := New(Addrbits(tt.addrbits))
		require.NoError(t, err)
		require.NoError(t, m.Write(m.addrmask(), 0, tt.value))
		expected := new(uint256.Int).Lsh(uint256.NewInt(tt.value), uint(tt.addrbits))
		if !expected.Eq(m.Sum()) {
			t.Errorf("sum after write(all, 0, %d) on %d bits: expected %s, actual %s",
				tt.value, tt.addrbits, expected.ToBig(), m.Sum().ToBig())
		}
		assert.Equal(t, 0, m.Count())
		assert.Equal(t, tt.value, m.Get(12345))
	}
}

func TestWriteErrors(t *testing.T) {
	m, err := New(Addrbits(8))
	require.NoError(t, err)
	require.NoError(t, m.Write(0b11, 0b100, 3))
	before := m.String()

	err = m.Write(0, 1<<8, 1)
	assert.ErrorIs(t, err, ErrAddrRange)
	err = m.Write(1<<9, 0, 1)
	assert.ErrorIs(t, err, ErrAddrRange)
	assert.Equal(t, before, m.String())

	m, err = New(Maxnodesize(4))
	require.NoError(t, err)
	err = m.Write(0, 0xAAAAAAAAA, 7)
	assert.ErrorIs(t, err, ErrMemory)
	assert.True(t, m.Sum().IsZero())
	assert.Equal(t, uint64(0), m.Get(0xAAAAAAAAA))
	assert.LessOrEqual(t, m.Size(), 4)
}

func TestNewErrors(t *testing.T) {
	for _, n := range []int{0, -1, 65} {
		_, err := New(Addrbits(n))
		assert.Error(t, err, "Addrbits(%d)", n)
	}
	_, err := New(Maxnodesize(-1))
	assert.Error(t, err)
	m, err := New(Nodesize(0), Logger(nil))
	require.NoError(t, err)
	assert.Equal(t, 36, m.Addrbits())
	assert.Equal(t, 1, m.Size())
}
