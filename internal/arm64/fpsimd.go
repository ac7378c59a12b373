package arm64

// fpSimdTable decodes floating-point and scalar advanced-SIMD encodings.
// The FP rows' masks (top byte 0x5F) test bit 30 and bits 28..24 but not
// bit 31 (M, or sf in the FP<->integer row) or bit 29 (S), so these rows do
// not reject words with M=1 or S=1.
var fpSimdTable = decodeTable{
	{0x5F203C00, 0x1E202000, decodeFCmp},
	{0x5F200C00, 0x1E200400, decodeFCCmp},
	{0x5F200C00, 0x1E200C00, decodeFCSel},
	{0x5F201C00, 0x1E201000, decodeFMovImm},
	{0x5F20FC00, 0x1E200000, decodeFPIntConv},
	{0x5F207C00, 0x1E204000, decodeFP1Source},
	{0x5F200C00, 0x1E200800, decodeFP2Source},
	{0x5F000000, 0x1F000000, decodeFP3Source},
	{0xFFE0FC00, 0x5E000400, decodeScalarDup},
	{0xDF200400, 0x5E200400, decodeScalar3Same},
	{0xDF3E0C00, 0x5E200800, decodeScalar2RegMisc},
}

func ftypeClass(ftype uint32) (RegClass, bool) {
	switch ftype {
	case 0:
		return VS, true
	case 1:
		return VD, true
	case 3:
		return VH, true
	default:
		return NoReg, false
	}
}

func decodeFP1Source(word uint32, address uint64, inst *Instruction) bool {
	ftype := bits(word, 22, 23)
	opcode := bits(word, 15, 20)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	class, ok := ftypeClass(ftype)
	if !ok {
		return false
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.RnClass = class
	inst.RdClass = class

	switch opcode {
	case 0:
		inst.Kind = FMOV
	case 1:
		inst.Kind = FABS
	case 2:
		inst.Kind = FNEG
	case 3:
		inst.Kind = FSQRT
	case 4, 5, 7:
		inst.Kind = FCVT
		switch opcode & 0x3 {
		case 0:
			inst.RdClass = VS
		case 1:
			inst.RdClass = VD
		case 3:
			inst.RdClass = VH
		}
	case 8:
		inst.Kind = FRINT
		inst.Mnemonic = "frintn"
	case 9:
		inst.Kind = FRINT
		inst.Mnemonic = "frintp"
	case 10:
		inst.Kind = FRINT
		inst.Mnemonic = "frintm"
	case 11:
		inst.Kind = FRINT
		inst.Mnemonic = "frintz"
	case 12:
		inst.Kind = FRINT
		inst.Mnemonic = "frinta"
	case 14:
		inst.Kind = FRINT
		inst.Mnemonic = "frintx"
	case 15:
		inst.Kind = FRINT
		inst.Mnemonic = "frinti"
	default:
		return false
	}
	if inst.Mnemonic == "" {
		inst.Mnemonic = inst.Kind.String()
	}
	return true
}

var fp2SourceNames = [...]InstKind{FMUL, FDIV, FADD, FSUB, FMAX, FMIN, FMAXNM, FMINNM, FNMUL}

func decodeFP2Source(word uint32, address uint64, inst *Instruction) bool {
	ftype := bits(word, 22, 23)
	rm := int(bits(word, 16, 20))
	opcode := bits(word, 12, 15)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	class, ok := ftypeClass(ftype)
	if !ok || int(opcode) >= len(fp2SourceNames) {
		return false
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.Rm = rm
	inst.RdClass = class
	inst.RnClass = class
	inst.RmClass = class
	inst.Kind = fp2SourceNames[opcode]
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeFP3Source(word uint32, address uint64, inst *Instruction) bool {
	ftype := bits(word, 22, 23)
	o1 := bit(word, 21)
	rm := int(bits(word, 16, 20))
	o0 := bit(word, 15)
	ra := int(bits(word, 10, 14))
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	class, ok := ftypeClass(ftype)
	if !ok {
		return false
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.Rm = rm
	inst.Ra = ra
	inst.RdClass = class
	inst.RnClass = class
	inst.RmClass = class

	switch (o1 << 1) | o0 {
	case 0:
		inst.Kind = FMADD
	case 1:
		inst.Kind = FMSUB
	case 2:
		inst.Kind = FNMADD
	case 3:
		inst.Kind = FNMSUB
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeFCmp(word uint32, address uint64, inst *Instruction) bool {
	ftype := bits(word, 22, 23)
	rm := int(bits(word, 16, 20))
	rn := int(bits(word, 5, 9))
	opcode2 := bits(word, 0, 4)

	class, ok := ftypeClass(ftype)
	if !ok {
		return false
	}

	inst.Rn = rn
	inst.RnClass = class

	switch opcode2 {
	case 0x00:
		inst.Kind = FCMP
		inst.Rm = rm
		inst.RmClass = class
	case 0x08:
		inst.Kind = FCMP
		inst.HasImm = true
		inst.Imm = 0
	case 0x10:
		inst.Kind = FCMPE
		inst.Rm = rm
		inst.RmClass = class
	case 0x18:
		inst.Kind = FCMPE
		inst.HasImm = true
		inst.Imm = 0
	default:
		return false
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeFCCmp(word uint32, address uint64, inst *Instruction) bool {
	ftype := bits(word, 22, 23)
	rm := int(bits(word, 16, 20))
	cond := bits(word, 12, 15)
	rn := int(bits(word, 5, 9))
	op := bit(word, 4)
	nzcv := bits(word, 0, 3)

	class, ok := ftypeClass(ftype)
	if !ok {
		return false
	}

	inst.Rn = rn
	inst.Rm = rm
	inst.RnClass = class
	inst.RmClass = class
	inst.Cond = uint8(cond)
	inst.Imm = int64(nzcv)
	inst.HasImm = true

	if op == 1 {
		inst.Kind = FCCMPE
	} else {
		inst.Kind = FCCMP
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeFCSel(word uint32, address uint64, inst *Instruction) bool {
	ftype := bits(word, 22, 23)
	rm := int(bits(word, 16, 20))
	cond := bits(word, 12, 15)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	class, ok := ftypeClass(ftype)
	if !ok {
		return false
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.Rm = rm
	inst.RdClass = class
	inst.RnClass = class
	inst.RmClass = class
	inst.Cond = uint8(cond)
	inst.Kind = FCSEL
	inst.Mnemonic = "fcsel"
	return true
}

// fpIntConvEntry names one row of the composite (rmode<<3)|opcode table for
// the FP<->integer conversion and GPR<->FP FMOV group.
type fpIntConvEntry struct {
	kind  InstKind
	toGPR bool // true: Rd is the GPR (int result), Rn is FP; false: reversed
}

var fpIntConvTable = map[uint32]fpIntConvEntry{
	0x00: {FCVTNS, true},
	0x01: {FCVTNU, true},
	0x02: {SCVTF, false},
	0x03: {UCVTF, false},
	0x04: {FCVTAS, true},
	0x05: {FCVTAU, true},
	0x06: {FMOV, false}, // FMOV Vd, Xn (FP <- GPR bits)
	0x07: {FMOV, true},  // FMOV Xd, Vn (GPR <- FP bits)
	0x08: {FCVTPS, true},
	0x09: {FCVTPU, true},
	0x10: {FCVTMS, true},
	0x11: {FCVTMU, true},
	0x18: {FCVTZS, true},
	0x19: {FCVTZU, true},
}

func decodeFPIntConv(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	ftype := bits(word, 22, 23)
	rmode := bits(word, 19, 20)
	opcode := bits(word, 16, 18)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	fclass, ok := ftypeClass(ftype)
	if !ok {
		return false
	}
	gpr := GpW
	if sf == 1 {
		gpr = GpX
		inst.Is64Bit = true
	}

	key := (rmode << 3) | opcode
	e, ok := fpIntConvTable[key]
	if !ok {
		return false
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.Kind = e.kind

	if e.toGPR {
		inst.RdClass = gpr
		inst.RnClass = fclass
	} else {
		inst.RdClass = fclass
		inst.RnClass = gpr
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeFMovImm(word uint32, address uint64, inst *Instruction) bool {
	ftype := bits(word, 22, 23)
	imm8 := bits(word, 13, 20)
	imm5 := bits(word, 5, 9)
	rd := int(bits(word, 0, 4))

	if imm5 != 0 {
		return false
	}

	class, ok := ftypeClass(ftype)
	if !ok {
		return false
	}

	inst.Rd = rd
	inst.RdClass = class
	inst.Imm = int64(imm8)
	inst.HasImm = true
	inst.Kind = FMOV
	inst.Mnemonic = "fmov"
	return true
}

func decodeScalarDup(word uint32, address uint64, inst *Instruction) bool {
	imm5 := bits(word, 16, 20)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	var class RegClass
	var index uint32
	switch {
	case imm5&0x1 != 0:
		class = VB
		index = imm5 >> 1
	case imm5&0x2 != 0:
		class = VH
		index = imm5 >> 2
	case imm5&0x4 != 0:
		class = VS
		index = imm5 >> 3
	case imm5&0x8 != 0:
		class = VD
		index = imm5 >> 4
	default:
		return false
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.RdClass = class
	inst.RnClass = VFull
	inst.Imm = int64(index)
	inst.HasImm = true
	inst.Kind = DUP
	inst.Mnemonic = "dup"
	return true
}

// scalar3SameEntry names one (U,opcode) row of the scalar-3-same table.
// The table preserves source order so that the first entry matching a given
// key wins, per the documented duplicate at U=1,opcode=0x1D.
type scalar3SameEntry struct {
	key  uint32
	kind InstKind
	fp   bool
}

var scalar3SameTable = []scalar3SameEntry{
	{0x1A, FMULX, true},
	{0x1C, FCMEQ, true},
	{0x1F, FRECPS, true},
	{0x3F, FRSQRTS, true},
	{0x3D, FACGE, true}, // first match wins over the {0x3D, fdiv} entry below
	{0x3D, FDIV, true},
	{0x1B, FMUL, true},
	{0x1E, FMAX, true},
	{0x3E, FMIN, true},
	{0x1D, FADD, true},
	{0x3C, FSUB, true},
	{0x00, SIMDADD, false},
	{0x01, SIMDSUB, false},
}

func decodeScalar3Same(word uint32, address uint64, inst *Instruction) bool {
	size := bits(word, 22, 23)
	u := bit(word, 29)
	rm := int(bits(word, 16, 20))
	opcode := bits(word, 11, 15)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	var class RegClass
	switch size {
	case 0:
		class = VB
	case 1:
		class = VH
	case 2:
		class = VS
	case 3:
		class = VD
	}

	key := (u << 5) | opcode
	var found *scalar3SameEntry
	for i := range scalar3SameTable {
		if scalar3SameTable[i].key == key {
			found = &scalar3SameTable[i]
			break
		}
	}
	if found == nil {
		return false
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.Rm = rm
	inst.RdClass = class
	inst.RnClass = class
	inst.RmClass = class
	inst.Kind = found.kind
	inst.Mnemonic = inst.Kind.String()
	return true
}

type scalar2RegEntry struct {
	key  uint32
	kind InstKind
}

var scalar2RegTable = []scalar2RegEntry{
	{0x03, SUQADD},
	{0x07, SQABS},
	{0x08, CMGT},
	{0x09, CMEQ},
	{0x0A, CMLT},
	{0x0B, ABS},
	{0x2C, FCMGT},
	{0x2D, FCMEQ},
	{0x2E, FCMLT},
	{0x1A, FCVTNS},
	{0x1B, FCVTMS},
	{0x1C, FCVTAS},
	{0x1D, SCVTF},
	{0x23, USQADD},
	{0x27, SQNEG},
	{0x28, CMGE},
	{0x29, CMLE},
	{0x2B, NEG},
	{0x2C | 0x20, FCMGE_},
	{0x2D | 0x20, FCMLE},
	{0x3A, FCVTPU},
	{0x3B, FCVTZU_2REG},
	{0x3D, UCVTF_2REG},
}

func decodeScalar2RegMisc(word uint32, address uint64, inst *Instruction) bool {
	size := bits(word, 22, 23)
	u := bit(word, 29)
	opcode := bits(word, 12, 16)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	var class RegClass
	switch size {
	case 0:
		class = VB
	case 1:
		class = VH
	case 2:
		class = VS
	case 3:
		class = VD
	}

	key := (u << 5) | opcode
	var found *scalar2RegEntry
	for i := range scalar2RegTable {
		if scalar2RegTable[i].key == key {
			found = &scalar2RegTable[i]
			break
		}
	}
	if found == nil {
		return false
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.RdClass = class
	inst.RnClass = class
	inst.Kind = found.kind
	inst.Mnemonic = inst.Kind.String()
	return true
}
