package main

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/zboralski/a64dis/internal/arm64"
)

func cmdDecode(args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	addrHex := fs.String("addr", "0", "address to decode at (hex)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("usage: a64dis decode <hexword> [--addr <hex>]")
	}
	// Flag parsing stops at the word, so parse what follows it again to
	// accept --addr after the word as well as before it.
	wordArg := fs.Arg(0)
	if err := fs.Parse(fs.Args()[1:]); err != nil {
		return err
	}

	word, err := parseHexWord(wordArg)
	if err != nil {
		return fmt.Errorf("parse word: %w", err)
	}
	addr, err := strconv.ParseUint(strings.TrimPrefix(*addrHex, "0x"), 16, 64)
	if err != nil {
		return fmt.Errorf("parse addr: %w", err)
	}

	inst, ok := arm64.Decode(word, addr)
	if !ok {
		return fmt.Errorf("word 0x%08x did not decode", word)
	}
	fmt.Printf("0x%08x  %s\n", word, arm64.Format(inst))
	return nil
}

func parseHexWord(s string) (uint32, error) {
	s = strings.TrimPrefix(s, "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}
