// Copyright 2024 The vmem Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vmem

import (
	"github.com/bpowers/vmem/internal/zero"
)

// ReadAt fills buf with the logical contents of consecutive words
// starting at word index addr.  buf is partitioned into width-sized
// chunks; each in-bounds chunk is filled from the word at the current
// address (all-zero when absent), out-of-bounds chunks are left
// untouched, and the address advances by one per chunk either way.  If
// buf's length is not a multiple of the word width, the trailing partial
// chunk is filled from the leading bytes of the word at the final
// address, if that address is still in bounds.
//
// The returned count is advisory: it is computed from the final cursor
// address times the word width, not from the number of bytes copied into
// buf.  Don't treat it as "bytes written into buf".
func (m *Memory) ReadAt(buf []byte, addr uint64) int {
	width := m.width
	full := len(buf) / width
	for i := 0; i < full; i++ {
		chunk := buf[i*width : (i+1)*width]
		if addr < m.length {
			if word, ok := m.words.Get(addr); ok {
				copy(chunk, word)
			} else {
				zero.Bytes(chunk)
			}
		}
		addr++
	}
	bytesRead := int(addr) * width
	remainder := buf[full*width:]
	if len(remainder) > 0 && addr < m.length {
		if word, ok := m.words.Get(addr); ok {
			copy(remainder, word)
		} else {
			zero.Bytes(remainder)
		}
	}
	bytesRead += len(remainder)
	return bytesRead
}

// WriteAt writes buf into consecutive words starting at word index addr.
// Each full width-sized chunk replaces the whole target word (allocating
// it on first write); chunks whose address is out of bounds are silently
// skipped.  A trailing partial chunk merges instead of replacing: only
// the word's leading bytes are overwritten and its trailing bytes are
// preserved, so a short write never clobbers bytes the caller didn't
// supply.
func (m *Memory) WriteAt(buf []byte, addr uint64) {
	width := m.width
	full := len(buf) / width
	for i := 0; i < full; i++ {
		if addr < m.length {
			word := make([]byte, width)
			copy(word, buf[i*width:(i+1)*width])
			m.words.Put(addr, word)
		}
		addr++
	}
	remainder := buf[full*width:]
	if len(remainder) > 0 && addr < m.length {
		word := m.words.GetOrPut(addr, width)
		copy(word, remainder)
	}
}
