package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zboralski/lattice"
	"github.com/zboralski/lattice/render"

	"github.com/zboralski/a64dis/internal/callgraph"
	"github.com/zboralski/a64dis/internal/disasm"
	"github.com/zboralski/a64dis/internal/elfx"
	"github.com/zboralski/a64dis/internal/output"
	intrender "github.com/zboralski/a64dis/internal/render"
)

// callEdgeWindow is how many instructions a register-provenance tracker
// keeps a symbol binding alive across, for resolving BLR targets.
const callEdgeWindow = 8

func cmdDisasm(args []string) error {
	fs := flag.NewFlagSet("disasm", flag.ExitOnError)
	lib := fs.String("lib", "", "path to an ARM64 ELF file")
	raw := fs.String("raw", "", "path to a flat binary blob of code")
	baseHex := fs.String("base", "0", "load address for --raw (hex)")
	outDir := fs.String("out", "", "output directory (default: stdout)")
	buildCFG := fs.Bool("cfg", false, "emit a control-flow-graph DOT file")
	buildCallGraph := fs.Bool("callgraph", false, "emit a call-graph DOT file via lattice/render")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *lib == "" && *raw == "" {
		return fmt.Errorf("one of --lib or --raw is required")
	}

	var (
		code    []byte
		addr    uint64
		symbols disasm.SymbolLookup
	)

	switch {
	case *lib != "":
		ef, err := elfx.Open(*lib)
		if err != nil {
			return fmt.Errorf("open: %w", err)
		}
		defer ef.Close()

		code, addr, err = ef.TextSection()
		if err != nil {
			return fmt.Errorf("text section: %w", err)
		}
		symbols = elfSymbolLookup(ef)
	case *raw != "":
		var err error
		code, err = os.ReadFile(*raw)
		if err != nil {
			return fmt.Errorf("read raw: %w", err)
		}
		addr, err = strconv.ParseUint(strings.TrimPrefix(*baseHex, "0x"), 16, 64)
		if err != nil {
			return fmt.Errorf("parse base: %w", err)
		}
	}

	insts := disasm.Disassemble(code, disasm.Options{BaseAddr: addr})
	fmt.Fprintf(os.Stderr, "decoded %d instructions from %d bytes at 0x%x\n", len(insts), len(code), addr)

	text := disasm.Format(insts, symbols)
	if *outDir == "" {
		fmt.Print(text)
	} else {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			return fmt.Errorf("mkdir out: %w", err)
		}
		if err := output.WriteASMSingle(*outDir, insts, symbols); err != nil {
			return fmt.Errorf("write asm: %w", err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", filepath.Join(*outDir, "asm.txt"))
	}

	const funcName = "text"

	if *buildCFG {
		cfg := disasm.BuildCFG(funcName, insts)
		dot := intrender.CFGDOT(cfg, intrender.NASA)
		if *outDir == "" {
			fmt.Print(dot)
		} else {
			dotPath := filepath.Join(*outDir, funcName+".dot")
			if err := os.WriteFile(dotPath, []byte(dot), 0644); err != nil {
				return fmt.Errorf("write cfg dot: %w", err)
			}
			fmt.Fprintf(os.Stderr, "wrote %s (%d blocks)\n", dotPath, len(cfg.Blocks))
		}
	}

	if *buildCallGraph {
		edges := disasm.ExtractCallEdges(insts, symbols, callEdgeWindow)
		funcs := []callgraph.FuncInfo{{Name: funcName, Insts: insts, CallEdges: edges}}

		lcfg, nblocks := callgraph.BuildFuncCFG(funcName, insts, edges)
		if nblocks > 1 {
			g := &lattice.CFGGraph{Funcs: []*lattice.FuncCFG{lcfg}}
			cfgDOT := render.DOTCFG(g, funcName)
			if *outDir == "" {
				fmt.Print(cfgDOT)
			} else {
				dotPath := filepath.Join(*outDir, funcName+".lattice.dot")
				if err := os.WriteFile(dotPath, []byte(cfgDOT), 0644); err != nil {
					return fmt.Errorf("write lattice cfg dot: %w", err)
				}
				fmt.Fprintf(os.Stderr, "wrote %s (%d blocks)\n", dotPath, nblocks)
			}
		}

		cg := callgraph.BuildCallGraph(funcs)
		cgDOT := render.DOT(cg, "callgraph")
		if *outDir == "" {
			fmt.Print(cgDOT)
		} else {
			cgPath := filepath.Join(*outDir, "callgraph.dot")
			if err := os.WriteFile(cgPath, []byte(cgDOT), 0644); err != nil {
				return fmt.Errorf("write callgraph.dot: %w", err)
			}
			fmt.Fprintf(os.Stderr, "wrote %s (%d nodes, %d edges)\n", cgPath, len(cg.Nodes), len(cg.Edges))
		}
	}

	return nil
}

// elfSymbolLookup builds a SymbolLookup over an ELF's dynamic symbol table,
// resolving exact address matches to their names.
func elfSymbolLookup(ef *elfx.File) disasm.SymbolLookup {
	syms, err := ef.ELF.DynamicSymbols()
	if err != nil {
		return nil
	}
	byAddr := make(map[uint64]string, len(syms))
	for _, s := range syms {
		if s.Name != "" {
			byAddr[s.Value] = s.Name
		}
	}
	return func(addr uint64) (string, bool) {
		name, ok := byAddr[addr]
		return name, ok
	}
}
