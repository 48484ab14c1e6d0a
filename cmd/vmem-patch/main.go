// Copyright 2024 The vmem Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// vmem-patch applies a changeset (the `addr:hexword` lines vmem-diff
// prints) to a raw memory image file and writes the patched dense image.
package main

import (
	"bufio"
	"bytes"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/bpowers/vmem"
)

var (
	width   = flag.Int("width", 4, "word width in bytes")
	outPath = flag.String("o", "", "write the patched image here (default stdout)")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-width n] [-o out] image changeset\n", os.Args[0])
	os.Exit(1)
}

func readChangeset(path string, width int) (vmem.Changeset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open(%s): %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var cs vmem.Changeset
	lineno := 0
	s := bufio.NewScanner(bufio.NewReaderSize(f, 16*1024))
	for s.Scan() {
		lineno++
		line := s.Bytes()
		if len(line) == 0 {
			continue
		}
		addrPart, wordPart, ok := bytes.Cut(line, []byte{':'})
		if !ok {
			return nil, fmt.Errorf("%s:%d: expected addr:hexword", path, lineno)
		}
		addr, err := strconv.ParseUint(string(addrPart), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad address: %w", path, lineno, err)
		}
		word, err := hex.DecodeString(string(wordPart))
		if err != nil {
			return nil, fmt.Errorf("%s:%d: bad word: %w", path, lineno, err)
		}
		if len(word) != width {
			return nil, fmt.Errorf("%s:%d: %d-byte word in a %d-byte-word changeset", path, lineno, len(word), width)
		}
		cs = append(cs, vmem.Entry{Addr: addr, Word: word})
	}
	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("bufio.Scan: %w", err)
	}
	return cs, nil
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
	}

	m, err := vmem.FromFile(flag.Arg(0), *width)
	if err != nil {
		log.Fatalf("loading %s: %s", flag.Arg(0), err)
	}
	cs, err := readChangeset(flag.Arg(1), *width)
	if err != nil {
		log.Fatalf("reading changeset: %s", err)
	}
	if err := m.Patch(cs); err != nil {
		log.Fatalf("patching: %s", err)
	}

	out := os.Stdout
	if *outPath != "" {
		out, err = os.Create(*outPath)
		if err != nil {
			log.Fatalf("os.Create(%s): %s", *outPath, err)
		}
	}
	if _, err := m.WriteTo(out); err != nil {
		log.Fatalf("writing image: %s", err)
	}
	if out != os.Stdout {
		if err := out.Close(); err != nil {
			log.Fatalf("f.Close: %s", err)
		}
	}
}
