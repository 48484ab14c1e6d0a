// Copyright 2024 The vmem Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vmem

import (
	"bytes"
	"fmt"

	"github.com/dgryski/go-farm"
)

// A Changeset is an ascending-address sequence of (address, word) pairs
// describing the words that differ between two same-shaped Memories.
// Together with the shared word width it is the unit of transport for
// synchronizing mirrored stores.
type Changeset []Entry

// Checksum returns a content fingerprint over the changeset's words, for
// verifying a changeset after transport.
func (cs Changeset) Checksum() uint32 {
	var buf []byte
	for _, e := range cs {
		buf = append(buf, e.Word...)
	}
	return uint32(farm.Hash64(buf))
}

// Diff compares the logical contents of old and new address by address
// and returns the changeset of addresses whose words differ, recording
// the word from new at each.  Absence compares as the zero word, so a
// materialized zero never shows up as a change.  If the two Memories have
// different lengths, comparison stops at the shorter one.  The words in
// the result are copies, detached from new.
func Diff(old, new *Memory) Changeset {
	if old.width != new.width {
		panic(fmt.Sprintf("invariant broken: diffing %d-byte-word and %d-byte-word memories", old.width, new.width))
	}
	var cs Changeset
	oldIter, newIter := old.Iter(), new.Iter()
	for addr := uint64(0); ; addr++ {
		oldWord, oldOk := oldIter.Next()
		newWord, newOk := newIter.Next()
		if !oldOk || !newOk {
			return cs
		}
		if !bytes.Equal(oldWord, newWord) {
			word := make([]byte, len(newWord))
			copy(word, newWord)
			cs = append(cs, Entry{Addr: addr, Word: word})
		}
	}
}

// Patch applies each entry of the changeset to m via WriteWord, in the
// changeset's order.  Application is not atomic: the first out-of-bounds
// address aborts with ErrAddressOutOfBounds, leaving every earlier entry
// already committed.  Callers that need all-or-nothing semantics should
// validate bounds first or Patch a Clone.
func (m *Memory) Patch(cs Changeset) error {
	for _, e := range cs {
		if err := m.WriteWord(e.Word, e.Addr); err != nil {
			return fmt.Errorf("write word at %#x: %w", e.Addr, err)
		}
	}
	return nil
}
