// Command a64dis decodes AArch64 instructions from a hex word or a binary
// file.
package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "decode":
		err = cmdDecode(os.Args[2:])
	case "disasm":
		err = cmdDisasm(os.Args[2:])
	case "help", "-h", "--help":
		usage()
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `a64dis — AArch64 instruction decoder

Usage:
  a64dis decode <hexword> [--addr <hex>]                       Decode a single instruction word
  a64dis disasm --lib <path> [--out <dir>] [--cfg] [--callgraph]  Disassemble an ELF's .text, or --raw a flat binary

Flags:
  --addr <hex>    Address to decode at (default 0)
  --lib <path>    Path to an ARM64 ELF file
  --raw <path>    Path to a flat binary blob of code (no ELF headers)
  --base <hex>    Load address for --raw (default 0)
  --out <dir>     Output directory (default: print to stdout)
  --cfg           Also emit a control-flow-graph DOT file
  --callgraph     Also emit lattice-rendered CFG and call-graph DOT files
`)
}
