package arm64

import "testing"

func TestDecodeEndToEnd(t *testing.T) {
	tests := []struct {
		name    string
		word    uint32
		address uint64
		want    InstKind
		check   func(t *testing.T, inst Instruction)
	}{
		{
			name: "LDR unsigned offset", word: 0xF9400421, address: 0x1000, want: LDR,
			check: func(t *testing.T, inst Instruction) {
				if inst.Rd != 1 || inst.Rn != 1 {
					t.Errorf("rd=%d rn=%d, want 1,1", inst.Rd, inst.Rn)
				}
				if inst.RnClass != GpX || inst.RdClass != GpX {
					t.Errorf("rn/rd class = %v/%v, want GpX/GpX", inst.RnClass, inst.RdClass)
				}
				if inst.Imm != 8 {
					t.Errorf("imm = %d, want 8", inst.Imm)
				}
				if inst.AddrMode != ImmUnsigned {
					t.Errorf("addr mode = %v, want ImmUnsigned", inst.AddrMode)
				}
			},
		},
		{
			name: "STP pre-index", word: 0xA9BF7BFD, address: 0x1000, want: STP,
			check: func(t *testing.T, inst Instruction) {
				if inst.Rd != 29 || inst.Rt2 != 30 || inst.Rn != 31 {
					t.Errorf("rd=%d rt2=%d rn=%d, want 29,30,31", inst.Rd, inst.Rt2, inst.Rn)
				}
				if inst.RnClass != Sp {
					t.Errorf("rn class = %v, want Sp", inst.RnClass)
				}
				if inst.Imm != -16 {
					t.Errorf("imm = %d, want -16", inst.Imm)
				}
				if inst.AddrMode != PreIndex {
					t.Errorf("addr mode = %v, want PreIndex", inst.AddrMode)
				}
				if inst.RdClass != GpX {
					t.Errorf("rd class = %v, want GpX", inst.RdClass)
				}
			},
		},
		{
			name: "B", word: 0x14000010, address: 0x1000, want: B,
			check: func(t *testing.T, inst Instruction) {
				if inst.Imm != 0x40 {
					t.Errorf("imm = 0x%x, want 0x40", inst.Imm)
				}
				if got := BranchTarget(inst); got != 0x1040 {
					t.Errorf("branch target = 0x%x, want 0x1040", got)
				}
			},
		},
		{
			name: "RET", word: 0xD65F03C0, address: 0x1000, want: RET,
			check: func(t *testing.T, inst Instruction) {
				if inst.Rn != 30 {
					t.Errorf("rn = %d, want 30", inst.Rn)
				}
				if Format(inst) != "ret" {
					t.Errorf("format = %q, want %q", Format(inst), "ret")
				}
			},
		},
		{
			name: "CSET aliased from CSINC", word: 0x9A9F07E0, address: 0x2000, want: CSET,
			check: func(t *testing.T, inst Instruction) {
				if inst.Rd != 0 || inst.RdClass != GpX {
					t.Errorf("rd=%d class=%v, want 0,GpX", inst.Rd, inst.RdClass)
				}
				if inst.Cond != 1 {
					t.Errorf("cond = %d, want 1 (ne)", inst.Cond)
				}
			},
		},
		{
			name: "FCMP reg-reg", word: 0x1E202000, address: 0x3000, want: FCMP,
			check: func(t *testing.T, inst Instruction) {
				if inst.Rn != 0 || inst.Rm != 0 {
					t.Errorf("rn=%d rm=%d, want 0,0", inst.Rn, inst.Rm)
				}
				if inst.RnClass != VS || inst.RmClass != VS {
					t.Errorf("rn/rm class = %v/%v, want VS/VS", inst.RnClass, inst.RmClass)
				}
			},
		},
		{
			name: "FMOV GPR<-FP", word: 0x9E670000, address: 0x3000, want: FMOV,
			check: func(t *testing.T, inst Instruction) {
				if inst.Rd != 0 || inst.RdClass != GpX {
					t.Errorf("rd=%d class=%v, want 0,GpX", inst.Rd, inst.RdClass)
				}
				if inst.Rn != 0 || inst.RnClass != VD {
					t.Errorf("rn=%d class=%v, want 0,VD", inst.Rn, inst.RnClass)
				}
			},
		},
		{
			name: "CAS", word: 0xC8A07C20, address: 0x4000, want: CAS,
			check: func(t *testing.T, inst Instruction) {
				if inst.Rd != 0 || inst.Rm != 0 || inst.Rn != 1 {
					t.Errorf("rd=%d rm=%d rn=%d, want 0,0,1", inst.Rd, inst.Rm, inst.Rn)
				}
				if inst.RdClass != GpX {
					t.Errorf("rd class = %v, want GpX", inst.RdClass)
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			inst, ok := Decode(tc.word, tc.address)
			if !ok {
				t.Fatalf("decode failed for 0x%08x", tc.word)
			}
			if inst.Kind != tc.want {
				t.Fatalf("kind = %v, want %v", inst.Kind, tc.want)
			}
			if tc.check != nil {
				tc.check(t, inst)
			}
		})
	}
}

func TestDecodePurity(t *testing.T) {
	words := []uint32{0xF9400421, 0xA9BF7BFD, 0x14000010, 0xD65F03C0, 0x9A9F07E0, 0x8B020020}
	for _, w := range words {
		a, okA := Decode(w, 0x1000)
		b, okB := Decode(w, 0x1000)
		if okA != okB || a != b {
			t.Errorf("decode(0x%08x) not pure: %+v vs %+v", w, a, b)
		}
	}
}

func TestDecodeUnknown(t *testing.T) {
	// A reserved all-zero word should not decode.
	_, ok := Decode(0x00000000, 0)
	if ok {
		t.Error("expected decode failure for all-zero word")
	}
}

func TestHasImmInvariant(t *testing.T) {
	// ADD (register), no immediate.
	inst, ok := Decode(0x8B020020, 0x1000) // ADD X0, X1, X2
	if !ok {
		t.Fatal("decode failed")
	}
	if inst.HasImm {
		t.Error("ADD (register) should not carry HasImm")
	}
	if _, ok := ImmediateValue(inst); ok {
		t.Error("ImmediateValue should report false when HasImm is false")
	}
}

func TestSignExtensionLaw(t *testing.T) {
	// B #4 vs B #-4: imm26 = 1 vs imm26 = 0x3FFFFFF (two's complement -1 word => -4 bytes)
	pos, _ := Decode(0x14000001, 0x1000)
	neg, _ := Decode(0x14000000|0x03FFFFFF, 0x1000)
	if pos.Imm != 4 {
		t.Fatalf("positive imm = %d, want 4", pos.Imm)
	}
	if neg.Imm != -4 {
		t.Fatalf("negative imm = %d, want -4", neg.Imm)
	}
}

func TestWidthInvariant(t *testing.T) {
	inst, ok := Decode(0xF9400421, 0x1000) // LDR X1, [X1, #8]
	if !ok {
		t.Fatal("decode failed")
	}
	if inst.Is64Bit != (inst.RdClass == GpX || inst.RdClass == Sp || inst.RdClass == Xzr) {
		t.Errorf("Is64Bit=%v inconsistent with RdClass=%v", inst.Is64Bit, inst.RdClass)
	}
}

func TestAliasIdempotence(t *testing.T) {
	// CSET is stable across re-decode.
	first, _ := Decode(0x9A9F07E0, 0x2000)
	second, _ := Decode(0x9A9F07E0, 0x2000)
	if first.Kind != CSET || second.Kind != CSET {
		t.Fatalf("expected CSET both times, got %v and %v", first.Kind, second.Kind)
	}
}

func TestMovAliasFromOrr(t *testing.T) {
	// MOV X0, X1 == ORR X0, XZR, X1: sf=1,opc=01,shift=0,N=0,Rm=1,imm6=0,Rn=31,Rd=0.
	word := uint32(0xAA0103E0)
	inst, ok := Decode(word, 0)
	if !ok {
		t.Fatal("decode failed")
	}
	if inst.Kind != MOV {
		t.Fatalf("kind = %v, want MOV", inst.Kind)
	}
	if inst.Rm != 1 || inst.RdClass != GpX {
		t.Errorf("rm=%d rdclass=%v, want 1,GpX", inst.Rm, inst.RdClass)
	}
}

func TestBitfieldAliases(t *testing.T) {
	// UBFM X0, X1, #0, #3 (sf=1,N=1,immr=0,imms=3): immr==0 with imms<63
	// takes the LSL alias.
	word := uint32(0xD3400C20)
	inst, ok := Decode(word, 0)
	if !ok {
		t.Fatal("decode failed")
	}
	if inst.Kind != LSL {
		t.Fatalf("kind = %v, want LSL", inst.Kind)
	}
}
