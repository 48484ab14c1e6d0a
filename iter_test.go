// Copyright 2024 The vmem Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vmem

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var iterTestData = []byte{
	0x01, 0x02, 0x03, 0x04,
	0x01, 0x02, 0x03, 0x04,
	0x05,
}

var iterTestDense = [][]byte{
	{0x00, 0x00, 0x00, 0x00},
	{0x00, 0x00, 0x00, 0x00},
	{0x01, 0x02, 0x03, 0x04},
	{0x01, 0x02, 0x03, 0x04},
	{0x05, 0x00, 0x00, 0x00},
	{0x00, 0x00, 0x00, 0x00},
	{0x01, 0x02, 0x03, 0x04},
	{0x01, 0x02, 0x03, 0x04},
}

func iterTestMemory(t *testing.T) *Memory {
	t.Helper()
	m := New(8, 4)
	m.WriteAt(iterTestData, 0x02)
	m.WriteAt(iterTestData, 0x06)
	return m
}

func TestWords(t *testing.T) {
	m := iterTestMemory(t)

	var got [][]byte
	it := m.Words()
	for word, ok := it.Next(); ok; word, ok = it.Next() {
		got = append(got, word)
	}
	require.Equal(t, iterTestDense, got)

	// yielded words are copies: mutating them can't touch the store
	got[2][0] = 0xff
	word, ok := m.ReadWord(2)
	require.True(t, ok)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, word)
}

func TestIter(t *testing.T) {
	m := iterTestMemory(t)

	var got [][]byte
	it := m.Iter()
	for word, ok := it.Next(); ok; word, ok = it.Next() {
		cp := make([]byte, len(word))
		copy(cp, word)
		got = append(got, cp)
	}
	require.Equal(t, iterTestDense, got)

	// read-only traversal must not materialize absent words
	require.Equal(t, 5, m.Materialized())
}

func TestIterMatchesReadWord(t *testing.T) {
	m := iterTestMemory(t)

	addr := uint64(0)
	it := m.Iter()
	for word, ok := it.Next(); ok; word, ok = it.Next() {
		expected, inBounds := m.ReadWord(addr)
		require.True(t, inBounds)
		require.Equal(t, expected, word)
		addr++
	}
	require.Equal(t, m.Len(), addr)
}

func TestIterMutMaterializes(t *testing.T) {
	m := New(0x0f, 4)
	require.Zero(t, m.Materialized())

	it := m.IterMut()
	n := 0
	for word, ok := it.Next(); ok; word, ok = it.Next() {
		copy(word, []byte{0x01, 0x02, 0x03, 0x04})
		n++
	}
	require.Equal(t, 0x0f, n)
	require.Equal(t, 0x0f, m.Materialized())

	for addr := uint64(0); addr < m.Len(); addr++ {
		word, ok := m.ReadWord(addr)
		require.True(t, ok)
		require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, word)
	}
}

func TestIterMutOnEmptyStoreYieldsZeros(t *testing.T) {
	m := New(4, 2)
	it := m.IterMut()
	for word, ok := it.Next(); ok; word, ok = it.Next() {
		require.Equal(t, []byte{0, 0}, word)
	}
	require.Equal(t, 4, m.Materialized())
}

func TestChunksAdjacent(t *testing.T) {
	m := New(0x0f, 4)
	require.NoError(t, m.WriteWord([]byte{0x01, 0x02, 0x03, 0x04}, 2))
	require.NoError(t, m.WriteWord([]byte{0x02, 0x04, 0x08, 0x16}, 3))
	require.NoError(t, m.WriteWord([]byte{0x01, 0x02, 0x03, 0x04}, 8))
	require.NoError(t, m.WriteWord([]byte{0x02, 0x04, 0x08, 0x16}, 9))
	require.NoError(t, m.WriteWord([]byte{0x01, 0x02, 0x03, 0x04}, 10))
	require.NoError(t, m.WriteWord([]byte{0x02, 0x04, 0x08, 0x16}, 11))

	var chunks []Chunk
	it := m.ChunksAdjacent(3)
	for chunk, ok := it.Next(); ok; chunk, ok = it.Next() {
		chunks = append(chunks, chunk)
	}

	require.Len(t, chunks, 3)

	// run of 2, then a run of 4 split by the size cap
	require.Equal(t, uint64(2), chunks[0].Addr())
	require.Len(t, chunks[0], 2)
	require.Equal(t, uint64(8), chunks[1].Addr())
	require.Len(t, chunks[1], 3)
	require.Equal(t, uint64(11), chunks[2].Addr())
	require.Len(t, chunks[2], 1)

	expected := []byte{
		0x01, 0x02, 0x03, 0x04,
		0x02, 0x04, 0x08, 0x16,
	}
	require.Equal(t, expected, chunks[0].Bytes())
}

func TestChunksAdjacentGapEndsChunk(t *testing.T) {
	m := New(16, 2)
	require.NoError(t, m.WriteWord([]byte{1, 1}, 2))
	require.NoError(t, m.WriteWord([]byte{2, 2}, 4))
	require.NoError(t, m.WriteWord([]byte{3, 3}, 5))

	var chunks []Chunk
	it := m.ChunksAdjacent(8)
	for chunk, ok := it.Next(); ok; chunk, ok = it.Next() {
		chunks = append(chunks, chunk)
	}

	// the gap between 2 and 4 splits the runs even though the size cap
	// would have allowed one chunk
	require.Len(t, chunks, 2)
	require.Equal(t, uint64(2), chunks[0].Addr())
	require.Len(t, chunks[0], 1)
	require.Equal(t, uint64(4), chunks[1].Addr())
	require.Len(t, chunks[1], 2)
}

func TestChunksAdjacentSkipsUntouched(t *testing.T) {
	m := New(1<<20, 4)
	require.NoError(t, m.WriteWord([]byte{1, 2, 3, 4}, 0xfffff))

	it := m.ChunksAdjacent(4)
	chunk, ok := it.Next()
	require.True(t, ok)
	require.Equal(t, uint64(0xfffff), chunk.Addr())
	require.Len(t, chunk, 1)

	_, ok = it.Next()
	require.False(t, ok)
}

func TestChunkChecksum(t *testing.T) {
	content := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	a := New(8, 4)
	a.WriteAt(content, 0)
	b := New(8, 4)
	b.WriteAt(content, 2)

	aChunk, ok := a.ChunksAdjacent(4).Next()
	require.True(t, ok)
	bChunk, ok := b.ChunksAdjacent(4).Next()
	require.True(t, ok)

	// the fingerprint is over content, not addresses
	require.NotEqual(t, aChunk.Addr(), bChunk.Addr())
	require.Equal(t, aChunk.Checksum(), bChunk.Checksum())

	require.NoError(t, b.WriteWord([]byte{0xff, 0, 0, 0}, 2))
	bChunk, ok = b.ChunksAdjacent(4).Next()
	require.True(t, ok)
	require.NotEqual(t, aChunk.Checksum(), bChunk.Checksum())
}
