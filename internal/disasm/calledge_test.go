package disasm

import (
	"encoding/binary"
	"testing"
)

func TestExtractCallEdgesBL(t *testing.T) {
	// BL #0x1234 at PC=0x1000: imm26 = 0x1234/4 = 0x48D.
	raw := uint32(0x9400048D)
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, raw)

	insts := Disassemble(data, Options{BaseAddr: 0x1000})
	symbols := map[uint64]string{0x1000 + 0x48D*4: "target_func"}
	edges := ExtractCallEdges(insts, PlaceholderLookup(symbols), 8)

	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}
	if edges[0].Kind != "bl" {
		t.Errorf("kind = %q, want bl", edges[0].Kind)
	}
	if edges[0].TargetName != "target_func" {
		t.Errorf("target name = %q, want target_func", edges[0].TargetName)
	}
}

func TestExtractCallEdgesBLR(t *testing.T) {
	// BLR X16.
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, 0xD63F0200)

	insts := Disassemble(data, Options{BaseAddr: 0x2000})
	edges := ExtractCallEdges(insts, nil, 8)

	if len(edges) != 1 {
		t.Fatalf("got %d edges, want 1", len(edges))
	}
	if edges[0].Kind != "blr" {
		t.Errorf("kind = %q, want blr", edges[0].Kind)
	}
	if edges[0].Reg != "X16" {
		t.Errorf("reg = %q, want X16", edges[0].Reg)
	}
	if edges[0].Via != "" {
		t.Errorf("via = %q, want empty (no ADRP tracked)", edges[0].Via)
	}
}

func TestExtractCallEdgesNoBranches(t *testing.T) {
	data := make([]byte, 4)
	binary.LittleEndian.PutUint32(data, 0xd503201f) // NOP
	insts := Disassemble(data, Options{BaseAddr: 0x3000})
	edges := ExtractCallEdges(insts, nil, 8)
	if len(edges) != 0 {
		t.Errorf("got %d edges for NOP, want 0", len(edges))
	}
}
