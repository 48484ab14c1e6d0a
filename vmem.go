// Copyright 2024 The vmem Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vmem

import (
	"errors"
	"fmt"

	"github.com/bpowers/vmem/internal/wordmap"
)

var (
	// ErrAddressOutOfBounds is returned by word writes (and by Patch,
	// which is built on them) when the target address is at or beyond
	// the length of the address space.
	ErrAddressOutOfBounds = errors.New("address out of bounds")
)

// Memory is a sparse virtual memory of fixed length, addressed in words
// of a fixed byte width.  Only written words occupy storage; absent
// addresses read as the all-zero word.
type Memory struct {
	words  wordmap.Map
	length uint64
	width  int
}

// New returns an empty Memory spanning length words of width bytes each.
// No word storage is allocated until the first write.
func New(length uint64, width int) *Memory {
	if width <= 0 {
		panic(fmt.Sprintf("invariant broken: non-positive word width %d", width))
	}
	return &Memory{
		length: length,
		width:  width,
	}
}

// Len returns the number of addressable words.
func (m *Memory) Len() uint64 {
	return m.length
}

// Width returns the byte width of a single word.
func (m *Memory) Width() int {
	return m.width
}

// ReadWord returns a copy of the word at addr, or (nil, false) if addr is
// out of bounds.  An in-bounds address that was never written reads as
// the all-zero word: an out-of-bounds read is an empty result, never an
// error, while an out-of-bounds write is an explicit error.  Callers rely
// on that asymmetry to tell "nothing here" from "illegal operation".
func (m *Memory) ReadWord(addr uint64) ([]byte, bool) {
	if addr >= m.length {
		return nil, false
	}
	word := make([]byte, m.width)
	if stored, ok := m.words.Get(addr); ok {
		copy(word, stored)
	}
	return word, true
}

// WriteWord stores a copy of word at addr, allocating the entry if this
// is the first write to that address.  It returns ErrAddressOutOfBounds
// if addr is at or beyond Len.
func (m *Memory) WriteWord(word []byte, addr uint64) error {
	if len(word) != m.width {
		panic(fmt.Sprintf("invariant broken: word of width %d in a %d-byte-word memory", len(word), m.width))
	}
	if addr >= m.length {
		return ErrAddressOutOfBounds
	}
	stored := make([]byte, m.width)
	copy(stored, word)
	m.words.Put(addr, stored)
	return nil
}

// Present reports whether addr has been materialized (explicitly written,
// or touched by mutable iteration).  An absent in-bounds address still
// reads as the zero word.
func (m *Memory) Present(addr uint64) bool {
	return m.words.Contains(addr)
}

// Materialized returns the number of words that occupy storage.
func (m *Memory) Materialized() int {
	return m.words.Len()
}

// Clone returns a deep copy of m.  Useful as a scratch copy when a caller
// needs all-or-nothing Patch semantics.
func (m *Memory) Clone() *Memory {
	c := New(m.length, m.width)
	c.words = *m.words.Clone()
	return c
}

// Equal reports whether m and other have the same shape and the same
// logical contents.  A materialized zero word compares equal to an absent
// one: equality is over what reads observe, not over how entries happen
// to be stored.
func (m *Memory) Equal(other *Memory) bool {
	if m.length != other.length || m.width != other.width {
		return false
	}
	a, b := m.Iter(), other.Iter()
	for {
		aw, aok := a.Next()
		bw, bok := b.Next()
		if !aok || !bok {
			return aok == bok
		}
		for i := range aw {
			if aw[i] != bw[i] {
				return false
			}
		}
	}
}
