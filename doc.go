// Copyright 2024 The vmem Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package vmem provides a sparse, word-addressed virtual memory container:
// a fixed-size logical address space where physical storage is only
// allocated for words that have actually been written.  Unwritten words
// read as all-zero without occupying storage, which makes the container
// cheap for large, mostly-empty address spaces like emulated memory or
// firmware images.
//
//	// an address space of 0x100 words, each 4 bytes wide
//	m := vmem.New(0x100, 4)
//
//	if err := m.WriteWord([]byte{0x01, 0x02, 0x04, 0x08}, 0x03); err != nil {
//		// the only write failure is an out-of-bounds address
//	}
//
//	word, ok := m.ReadWord(0x03)
//
// Two Memories of the same shape can be compared with Diff, producing a
// minimal changeset that Patch re-applies -- the unit of transport for
// synchronizing mirrored stores or shipping snapshot deltas.
//
// A Memory is a single-owner data structure: it performs no internal
// locking, and callers sharing one across goroutines must wrap it in
// their own synchronization.
package vmem
