package disasm

import (
	"fmt"

	"github.com/zboralski/a64dis/internal/arm64"
)

// CallEdge represents a call site extracted from disassembly.
type CallEdge struct {
	FromPC     uint64 `json:"from_pc"`
	Kind       string `json:"kind"`                // "bl" or "blr"
	TargetPC   uint64 `json:"target_pc,omitempty"` // resolved VA for bl
	TargetName string `json:"target_name,omitempty"`
	Reg        string `json:"reg,omitempty"` // register for blr (e.g. "X16")
	Via        string `json:"via,omitempty"` // provenance: the symbol an ADRP/ADR bound to Reg
}

// regDef records the symbol that an ADRP or ADR resolved to and loaded into
// a register.
type regDef struct {
	sym string
	age int
}

// regTracker tracks last-def provenance for GP registers X0-X30 over a
// sliding window: definitions older than w instructions expire, since a
// register that far from its last def is unlikely to still hold that value.
type regTracker struct {
	defs [31]regDef
	w    int
}

func newRegTracker(w int) *regTracker { return &regTracker{w: w} }

func (rt *regTracker) tick() {
	for i := range rt.defs {
		if rt.defs[i].sym != "" {
			rt.defs[i].age++
			if rt.defs[i].age > rt.w {
				rt.defs[i] = regDef{}
			}
		}
	}
}

func (rt *regTracker) define(rd int, sym string) {
	if rd < 0 || rd > 30 {
		return
	}
	rt.defs[rd] = regDef{sym: sym}
}

func (rt *regTracker) lookup(rd int) string {
	if rd < 0 || rd > 30 {
		return ""
	}
	return rt.defs[rd].sym
}

func (rt *regTracker) kill(rd int) {
	if rd < 0 || rd > 30 {
		return
	}
	rt.defs[rd] = regDef{}
}

// ExtractCallEdges scans a function's instruction stream for BL and BLR call
// sites. BL targets are resolved directly through symbols; BLR targets are
// resolved indirectly, by tracking which register last received a
// symbol-resolved address from ADRP or ADR. Any later instruction that writes
// that register clears the binding, including the ADD of an ADRP+ADD pair.
func ExtractCallEdges(insts []Inst, symbols SymbolLookup, w int) []CallEdge {
	rt := newRegTracker(w)
	var edges []CallEdge

	for _, inst := range insts {
		if !inst.Ok {
			rt.tick()
			continue
		}
		k := inst.Decoded.Kind

		switch k {
		case arm64.BL:
			target := arm64.BranchTarget(inst.Decoded)
			e := CallEdge{FromPC: inst.Addr, Kind: "bl", TargetPC: target}
			if symbols != nil {
				if name, found := symbols(target); found {
					e.TargetName = name
				}
			}
			edges = append(edges, e)
			rt.tick()
			continue

		case arm64.BLR:
			rn := inst.Decoded.Rn
			via := rt.lookup(rn)
			e := CallEdge{FromPC: inst.Addr, Kind: "blr", Reg: fmt.Sprintf("X%d", rn), Via: via}
			if via != "" {
				e.TargetName = via
			}
			edges = append(edges, e)
			rt.tick()
			continue

		case arm64.ADRP, arm64.ADR:
			target := arm64.BranchTarget(inst.Decoded)
			sym := ""
			if symbols != nil {
				if name, found := symbols(target); found {
					sym = name
				}
			}
			if sym != "" {
				rt.define(inst.Decoded.Rd, sym)
			} else {
				rt.kill(inst.Decoded.Rd)
			}
			rt.tick()
			continue
		}

		if inst.Decoded.RdClass != arm64.NoReg {
			rt.kill(inst.Decoded.Rd)
		}
		rt.tick()
	}

	return edges
}
