package arm64

// branchTable decodes the branch/system category: B, BL, B.cond, CBZ/CBNZ,
// TBZ/TBNZ, unconditional-branch-to-register forms, and hint/MRS system
// instructions.
var branchTable = decodeTable{
	{0xFC000000, 0x14000000, decodeUncondBranchImm}, // B
	{0xFC000000, 0x94000000, decodeUncondBranchImm}, // BL
	{0xFF000010, 0x54000000, decodeCondBranchImm},   // B.cond
	{0x7E000000, 0x34000000, decodeCompareAndBranch}, // CBZ/CBNZ
	{0x7E000000, 0x36000000, decodeTestAndBranch},    // TBZ/TBNZ
	{0xFFFFFC1F, 0xD61F0000, decodeUncondBranchReg},  // BR
	{0xFFFFFC1F, 0xD63F0000, decodeUncondBranchReg},  // BLR
	{0xFFFFFC1F, 0xD65F0000, decodeUncondBranchReg},  // RET
	{0xFFFFFFFF, 0xD69F03E0, decodeUncondBranchReg},  // ERET
	{0xFFFFFFFF, 0xD6BF03E0, decodeUncondBranchReg},  // DRPS
	{0xFFC00000, 0xD5000000, decodeSystem},           // MSR/MRS/hints (system instr class)
}

func decodeUncondBranchImm(word uint32, address uint64, inst *Instruction) bool {
	op := bit(word, 31)
	imm26 := bits(word, 0, 25)
	imm := signExtend(imm26, 26) << 2
	inst.Imm = imm
	inst.HasImm = true
	if op == 1 {
		inst.Kind = BL
	} else {
		inst.Kind = B
	}
	inst.Mnemonic = inst.Kind.String()
	inst.Is64Bit = true
	return true
}

func decodeCondBranchImm(word uint32, address uint64, inst *Instruction) bool {
	if bits(word, 25, 31) != 0x2A { // 0101010
		return false
	}
	imm19 := bits(word, 5, 23)
	cond := bits(word, 0, 3)
	inst.Imm = signExtend(imm19, 19) << 2
	inst.HasImm = true
	inst.Cond = uint8(cond)
	inst.Kind = B
	inst.Mnemonic = "b." + CondNames[cond&0xF]
	inst.Is64Bit = true
	return true
}

func decodeCompareAndBranch(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	op := bit(word, 24)
	imm19 := bits(word, 5, 23)
	rt := int(bits(word, 0, 4))

	inst.Rd = rt
	if sf == 1 {
		inst.RdClass = GpX
		inst.Is64Bit = true
	} else {
		inst.RdClass = GpW
	}
	inst.Imm = signExtend(imm19, 19) << 2
	inst.HasImm = true
	if op == 1 {
		inst.Kind = CBNZ
	} else {
		inst.Kind = CBZ
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeTestAndBranch(word uint32, address uint64, inst *Instruction) bool {
	b5 := bit(word, 31)
	op := bit(word, 24)
	b40 := bits(word, 19, 23)
	imm14 := bits(word, 5, 18)
	rt := int(bits(word, 0, 4))

	bitPos := (b5 << 5) | b40
	inst.Rd = rt
	if bitPos < 32 {
		inst.RdClass = GpW
	} else {
		inst.RdClass = GpX
		inst.Is64Bit = true
	}
	inst.ShiftAmount = uint8(bitPos)
	inst.Imm = signExtend(imm14, 14) << 2
	inst.HasImm = true
	if op == 1 {
		inst.Kind = TBNZ
	} else {
		inst.Kind = TBZ
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeUncondBranchReg(word uint32, address uint64, inst *Instruction) bool {
	opc := bits(word, 21, 24)
	op2 := bits(word, 16, 20)
	op3 := bits(word, 10, 15)
	rn := int(bits(word, 5, 9))
	op4 := bits(word, 0, 4)

	if op2 != 0x1F || op3 != 0 {
		return false
	}

	switch opc {
	case 0:
		inst.Kind = BR
	case 1:
		inst.Kind = BLR
	case 2:
		inst.Kind = RET
	case 4:
		if rn != 31 {
			return false
		}
		inst.Kind = ERET
	case 5:
		if rn != 31 {
			return false
		}
		inst.Kind = DRPS
	default:
		return false
	}
	if op4 != 0 {
		return false
	}
	inst.Rn = rn
	inst.RnClass = GpX
	inst.Is64Bit = true
	inst.Mnemonic = inst.Kind.String()
	return true
}

// systemRegEntry names an MRS/MSR system register by its (op0,op1,CRn,CRm,op2) tuple.
type systemRegEntry struct {
	op0, op1, crn, crm, op2 uint32
	name                    string
}

var systemRegTable = []systemRegEntry{
	{3, 3, 4, 2, 0, "NZCV"},
	{3, 3, 4, 2, 1, "DAIF"},
	{3, 0, 4, 2, 2, "CurrentEL"},
	{3, 0, 4, 2, 0, "SPSel"},
	{3, 0, 4, 0, 0, "SP_EL0"},
	{3, 4, 4, 0, 0, "SP_EL1"},
	{3, 6, 4, 0, 0, "SP_EL2"},
	{3, 0, 4, 0, 1, "SPSR_EL1"},
	{3, 4, 4, 0, 1, "SPSR_EL2"},
	{3, 6, 4, 0, 1, "SPSR_EL3"},
	{3, 0, 4, 0, 2, "ELR_EL1"},
	{3, 4, 4, 0, 2, "ELR_EL2"},
	{3, 6, 4, 0, 2, "ELR_EL3"},
	{3, 3, 13, 0, 2, "TPIDR_EL0"},
	{3, 3, 13, 0, 3, "TPIDRRO_EL0"},
	{3, 3, 3, 4, 0, "FPCR"},
	{3, 3, 4, 4, 1, "FPSR"},
}

// SystemRegName looks up the friendly name of an MRS/MSR system register,
// falling back to the canonical Sop0_op1_Cn_Cm_op2 form.
func SystemRegName(op0, op1, crn, crm, op2 uint32) string {
	for _, e := range systemRegTable {
		if e.op0 == op0 && e.op1 == op1 && e.crn == crn && e.crm == crm && e.op2 == op2 {
			return e.name
		}
	}
	return genericSystemRegName(op0, op1, crn, crm, op2)
}

func decodeSystem(word uint32, address uint64, inst *Instruction) bool {
	l := bit(word, 21)
	op0 := bits(word, 19, 20)
	op1 := bits(word, 16, 18)
	crn := bits(word, 12, 15)
	crm := bits(word, 8, 11)
	op2 := bits(word, 5, 7)
	rt := int(bits(word, 0, 4))

	if l == 0 && op0 == 0 && op1 == 3 && crn == 2 && crm == 0 && rt == 31 {
		names := [...]string{"nop", "yield", "wfe", "wfi", "sev", "sevl"}
		if int(op2) >= len(names) {
			return false
		}
		inst.Kind = NOP
		inst.Mnemonic = names[op2]
		return true
	}

	if l == 1 && rt != 31 {
		inst.Kind = MRS
		inst.Mnemonic = "mrs"
		inst.Rd = rt
		inst.RdClass = GpX
		inst.Is64Bit = true
		return true
	}

	return false
}
