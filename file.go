// Copyright 2024 The vmem Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package vmem

import (
	"bufio"
	"fmt"
	"io"

	"github.com/bpowers/vmem/internal/mmap"
)

const defaultBufferSize = 4 * 1024 * 1024

// FromFile builds a Memory of the given word width from the raw image
// file at path.  The file is memory-mapped while its contents are folded
// into the sparse store, and unmapped before returning; the resulting
// Memory is independent of the file.
func FromFile(path string, width int) (*Memory, error) {
	f, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mmap.Open(%s): %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	return FromBytes(f.Data(), width), nil
}

// WriteTo writes the dense logical contents of m to w: every word from
// address 0 through Len-1 in order, absent words written as zeros.  The
// output is Len*Width bytes, the flat-image inverse of FromBytes.
func (m *Memory) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriterSize(w, defaultBufferSize)
	var written int64
	it := m.Iter()
	for {
		word, ok := it.Next()
		if !ok {
			break
		}
		n, err := bw.Write(word)
		written += int64(n)
		if err != nil {
			return written, fmt.Errorf("bufio.Write: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return written, fmt.Errorf("bufio.Flush: %w", err)
	}
	return written, nil
}
