// Copyright 2024 The vmem Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vmem

import (
	"github.com/dgryski/go-farm"
)

// Words returns a cursor over the dense logical contents of m: one word
// per address, 0 through Len-1, in ascending order.  Every yielded slice
// is a fresh copy, safe to retain after m is mutated or discarded.
func (m *Memory) Words() *WordIter {
	return &WordIter{m: m}
}

// WordIter is a forward-only cursor yielding copies of logical words.
type WordIter struct {
	m    *Memory
	next uint64
}

func (it *WordIter) Next() ([]byte, bool) {
	word, ok := it.m.ReadWord(it.next)
	if !ok {
		return nil, false
	}
	it.next++
	return word, true
}

// Iter returns a read-only cursor over the dense logical contents of m.
// Unlike Words, the yielded slices are views: the stored word when one is
// present, and a shared zero word otherwise.  Absent addresses are not
// materialized.  The views must not be modified, and are only valid until
// m is next mutated.
func (m *Memory) Iter() *Iter {
	return &Iter{m: m, zeroWord: make([]byte, m.width)}
}

// Iter is a forward-only, read-only cursor over logical words.
type Iter struct {
	m        *Memory
	zeroWord []byte
	next     uint64
}

func (it *Iter) Next() ([]byte, bool) {
	if it.next >= it.m.length {
		return nil, false
	}
	word, ok := it.m.words.Get(it.next)
	if !ok {
		word = it.zeroWord
	}
	it.next++
	return word, true
}

// IterMut returns a writable cursor over the dense contents of m.  Each
// yielded slice aliases the stored word, so writes through it update m
// directly.  Visiting an address with no stored word materializes it: a
// zero word is inserted so there is storage to hand back.  Fully
// consuming the cursor therefore converts a sparse Memory into a dense
// one; use Iter for read-only traversal.
//
// The cursor requires exclusive access to m for its lifetime, and each
// yielded slice is only valid until the next call to Next.
func (m *Memory) IterMut() *MutIter {
	return &MutIter{m: m}
}

// MutIter is a forward-only cursor yielding writable words.
type MutIter struct {
	m    *Memory
	next uint64
}

func (it *MutIter) Next() ([]byte, bool) {
	if it.next >= it.m.length {
		return nil, false
	}
	word := it.m.words.GetOrPut(it.next, it.m.width)
	it.next++
	return word, true
}

// An Entry pairs a word with the address it is stored at.
type Entry struct {
	Addr uint64
	Word []byte
}

// A Chunk is a run of entries at contiguous addresses, in ascending
// order.
type Chunk []Entry

// Addr returns the address of the first entry in the chunk.
func (c Chunk) Addr() uint64 {
	return c[0].Addr
}

// Bytes returns the chunk's words concatenated into one buffer.
func (c Chunk) Bytes() []byte {
	if len(c) == 0 {
		return nil
	}
	buf := make([]byte, 0, len(c)*len(c[0].Word))
	for _, e := range c {
		buf = append(buf, e.Word...)
	}
	return buf
}

// Checksum returns a content fingerprint of the chunk's words, for
// verifying a chunk after transport.
func (c Chunk) Checksum() uint32 {
	return uint32(farm.Hash64(c.Bytes()))
}

// ChunksAdjacent returns a cursor over only the materialized entries of
// m, grouped into runs of contiguous addresses of at most chunkSize
// entries.  A gap between stored addresses always starts a new chunk.
// This is the sparse view: untouched addresses are never visited, which
// makes it the cheap way to extract just the written regions of a large
// address space.
func (m *Memory) ChunksAdjacent(chunkSize int) *AdjacentChunks {
	if chunkSize <= 0 {
		panic("invariant broken: non-positive chunk size")
	}
	return &AdjacentChunks{m: m, chunkSize: chunkSize}
}

// AdjacentChunks is a forward-only cursor over runs of contiguous stored
// entries.  The yielded words alias the store and must not be modified.
type AdjacentChunks struct {
	m         *Memory
	chunkSize int
	pos       int
}

func (it *AdjacentChunks) Next() (Chunk, bool) {
	if it.pos >= it.m.words.Len() {
		return nil, false
	}
	addr, word := it.m.words.At(it.pos)
	it.pos++
	chunk := make(Chunk, 1, it.chunkSize)
	chunk[0] = Entry{Addr: addr, Word: word}
	for len(chunk) < it.chunkSize && it.pos < it.m.words.Len() {
		nextAddr, nextWord := it.m.words.At(it.pos)
		if nextAddr != addr+1 {
			break
		}
		chunk = append(chunk, Entry{Addr: nextAddr, Word: nextWord})
		addr = nextAddr
		it.pos++
	}
	return chunk, true
}
