// Copyright 2024 The vmem Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// Package mmap provides a read-only memory mapping of a file's contents.
package mmap

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// File is a read-only view of a file's contents, mapped into memory.
// Make sure to `defer f.Close()`.
type File struct {
	data []byte
}

// Open memory-maps the file at path for reading.  The mapping is advised
// for sequential access, which is the access pattern of image loading.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s): %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	stats, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("f.Stat: %w", err)
	}

	size := stats.Size()
	if size == 0 {
		// mmap fails on empty files; an empty mapping is still valid
		return &File{}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("unix.Mmap(%s): %w", path, err)
	}

	if err := unix.Madvise(data, unix.MADV_SEQUENTIAL); err != nil {
		_ = unix.Munmap(data)
		return nil, fmt.Errorf("madvise: %w", err)
	}

	return &File{data: data}, nil
}

// Data returns the mapped contents.  The slice is only valid until Close.
func (f *File) Data() []byte {
	return f.data
}

func (f *File) Len() int {
	return len(f.data)
}

func (f *File) Close() error {
	if f.data == nil {
		return nil
	}
	data := f.data
	f.data = nil
	return unix.Munmap(data)
}
