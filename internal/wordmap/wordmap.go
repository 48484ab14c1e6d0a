// Copyright 2024 The vmem Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package wordmap provides an address-ordered map from word index to
// fixed-width word contents, backed by a sorted slice and binary search.
// Iteration order (by position) is always ascending by address, which the
// diff and adjacent-chunking machinery above it depend on.
package wordmap

import (
	"sort"
)

type entry struct {
	addr uint64
	word []byte
}

// Map is an ordered address→word map.  The zero value is an empty map,
// ready for use.
type Map struct {
	entries []entry
}

// Len returns the number of stored entries.
func (m *Map) Len() int {
	return len(m.entries)
}

// search returns the position of addr, or the position it would be
// inserted at if absent.
func (m *Map) search(addr uint64) int {
	return sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].addr >= addr
	})
}

// Get returns the word stored at addr, or (nil, false) if none is stored.
// The returned slice aliases the map's storage.
func (m *Map) Get(addr uint64) ([]byte, bool) {
	i := m.search(addr)
	if i < len(m.entries) && m.entries[i].addr == addr {
		return m.entries[i].word, true
	}
	return nil, false
}

// Contains reports whether an entry is stored at addr.
func (m *Map) Contains(addr uint64) bool {
	_, ok := m.Get(addr)
	return ok
}

// Put inserts or replaces the entry at addr.  The map takes ownership of
// word; callers must not retain it.
func (m *Map) Put(addr uint64, word []byte) {
	i := m.search(addr)
	if i < len(m.entries) && m.entries[i].addr == addr {
		m.entries[i].word = word
		return
	}
	m.entries = append(m.entries, entry{})
	copy(m.entries[i+1:], m.entries[i:])
	m.entries[i] = entry{addr: addr, word: word}
}

// GetOrPut returns the word stored at addr, inserting a zero word of the
// given width first if the address is absent.  The returned slice aliases
// the map's storage, so writes through it are visible to later reads.
func (m *Map) GetOrPut(addr uint64, width int) []byte {
	if word, ok := m.Get(addr); ok {
		return word
	}
	word := make([]byte, width)
	m.Put(addr, word)
	return word
}

// At returns the i'th entry in ascending address order.
func (m *Map) At(i int) (addr uint64, word []byte) {
	e := m.entries[i]
	return e.addr, e.word
}

// Clone returns a deep copy of the map.
func (m *Map) Clone() *Map {
	c := &Map{entries: make([]entry, len(m.entries))}
	for i, e := range m.entries {
		word := make([]byte, len(e.word))
		copy(word, e.word)
		c.entries[i] = entry{addr: e.addr, word: word}
	}
	return c
}
