// Copyright 2024 The vmem Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

// vmem-diff compares two raw memory image files word by word and prints
// the changeset as ascending `addr:hexword` lines, one per differing
// word.  The output is what vmem-patch consumes.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bpowers/vmem"
)

var width = flag.Int("width", 4, "word width in bytes")

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [-width n] old-image new-image\n", os.Args[0])
	os.Exit(1)
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
	}

	oldMem, err := vmem.FromFile(flag.Arg(0), *width)
	if err != nil {
		log.Fatalf("loading %s: %s", flag.Arg(0), err)
	}
	newMem, err := vmem.FromFile(flag.Arg(1), *width)
	if err != nil {
		log.Fatalf("loading %s: %s", flag.Arg(1), err)
	}

	for _, e := range vmem.Diff(oldMem, newMem) {
		fmt.Printf("%#x:%x\n", e.Addr, e.Word)
	}
}
