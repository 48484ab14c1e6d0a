// Copyright 2024 The vmem Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vmem

import (
	"github.com/bpowers/vmem/internal/zero"
)

// FromBytes builds a Memory of the given word width from a flat image,
// sized to hold all of data (the last word is zero-padded if the image
// is not a whole number of words).  All-zero words are skipped rather
// than stored, so a zero-heavy image stays sparse.
func FromBytes(data []byte, width int) *Memory {
	length := uint64(len(data) / width)
	if len(data)%width != 0 {
		length++
	}
	m := New(length, width)

	addr := uint64(0)
	for off := 0; off < len(data); off += width {
		var word []byte
		if off+width <= len(data) {
			word = data[off : off+width]
		} else {
			// pad the trailing partial word before the zero check
			padded := make([]byte, width)
			copy(padded, data[off:])
			word = padded
		}
		if !zero.IsZero(word) {
			if err := m.WriteWord(word, addr); err != nil {
				panic("invariant broken: image write within the sized address space")
			}
		}
		addr++
	}
	return m
}
