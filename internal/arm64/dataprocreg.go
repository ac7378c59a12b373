package arm64

// dataProcRegTable decodes the data-processing-register category: logical
// and add/sub shifted-register forms, the 1-source/2-source/3-source
// register-register groups, and the conditional-select family.
var dataProcRegTable = decodeTable{
	{0x1F000000, 0x0A000000, decodeLogicalShiftedReg},
	{0x1F200000, 0x0B000000, decodeAddSubShiftedReg},
	{0x5FE00000, 0x5AC00000, decodeDataProc1Source},
	{0x5FE00000, 0x1AC00000, decodeDataProc2Source},
	{0x1FE00000, 0x1B000000, decodeDataProc3Source},
	{0x1FE00000, 0x1A800000, decodeCondSelect},
}

func decodeLogicalShiftedReg(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	opc := bits(word, 29, 30)
	shift := bits(word, 22, 23)
	n := bit(word, 21)
	rm := int(bits(word, 16, 20))
	imm6 := bits(word, 10, 15)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	if sf == 0 && imm6 >= 32 {
		return false
	}

	gpr := GpW
	if sf == 1 {
		gpr = GpX
		inst.Is64Bit = true
	}

	shiftKinds := [...]ExtendKind{Lsl, Lsr, Asr, Ror}

	inst.Rd = rd
	inst.Rn = rn
	inst.Rm = rm
	inst.RdClass = gpr
	inst.RnClass = gpr
	inst.RmClass = gpr
	inst.Extend = shiftKinds[shift]
	inst.ShiftAmount = uint8(imm6)

	// op_code = (opc<<1)|N selects AND/BIC/ORR/ORN/EOR/EON/ANDS/BICS.
	opCode := (opc << 1) | n
	switch opCode {
	case 0:
		inst.Kind = AND
	case 1:
		inst.Kind = BIC
	case 2:
		inst.Kind = ORR
		if rn == 31 && imm6 == 0 && shift == 0 {
			inst.Kind = MOV
			inst.Rn = 0
			inst.RnClass = NoReg
			inst.Extend = NoExtend
		}
	case 3:
		inst.Kind = ORN
		if rn == 31 {
			inst.Mnemonic = "mvn"
			inst.Rn = 0
			inst.RnClass = NoReg
		}
	case 4:
		inst.Kind = EOR
	case 5:
		inst.Kind = EON
	case 6:
		inst.Kind = ANDS
		inst.SetFlags = true
		if rd == 31 {
			inst.Kind = TST
			inst.RdClass = gprZero(gpr)
		}
	case 7:
		inst.Kind = BICS
		inst.SetFlags = true
	default:
		return false
	}
	if inst.Mnemonic == "" {
		inst.Mnemonic = inst.Kind.String()
	}
	return true
}

func decodeAddSubShiftedReg(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	op := bit(word, 30)
	s := bit(word, 29)
	shift := bits(word, 22, 23)
	rm := int(bits(word, 16, 20))
	imm6 := bits(word, 10, 15)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	if shift == 3 {
		return false
	}
	if sf == 0 && imm6 >= 32 {
		return false
	}

	gpr := GpW
	if sf == 1 {
		gpr = GpX
		inst.Is64Bit = true
	}

	shiftKinds := [...]ExtendKind{Lsl, Lsr, Asr}

	inst.Rd = rd
	inst.Rn = rn
	inst.Rm = rm
	inst.RdClass = gpr
	inst.RnClass = gpr
	inst.RmClass = gpr
	inst.Extend = shiftKinds[shift]
	inst.ShiftAmount = uint8(imm6)
	inst.SetFlags = s == 1

	if op == 1 {
		inst.Kind = SUB
		if s == 1 {
			inst.Kind = SUBS
		}
	} else {
		inst.Kind = ADD
		if s == 1 {
			inst.Kind = ADDS
		}
	}

	isNeg := op == 1 && rn == 31 && s == 0
	if s == 1 && rd == 31 {
		if op == 1 {
			inst.Kind = CMP
		} else {
			inst.Kind = CMN
		}
		inst.RdClass = gprZero(gpr)
	} else if isNeg {
		inst.Kind = NEG
		inst.Rn = 0
		inst.RnClass = NoReg
	}

	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeDataProc1Source(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	s := bit(word, 29)
	opcode2 := bits(word, 16, 20)
	opcode := bits(word, 10, 15)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	if s != 0 || opcode2 != 0 {
		return false
	}

	gpr := GpW
	if sf == 1 {
		gpr = GpX
		inst.Is64Bit = true
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.RdClass = gpr
	inst.RnClass = gpr

	switch opcode {
	case 0:
		inst.Kind = RBIT
	case 1:
		inst.Kind = REV16
	case 2:
		if sf == 0 {
			inst.Kind = REV
		} else {
			inst.Kind = REV32
		}
	case 3:
		if sf == 0 {
			return false
		}
		inst.Kind = REV
	case 4:
		inst.Kind = CLZ
	case 5:
		inst.Kind = CLS
	default:
		return false
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeDataProc2Source(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	s := bit(word, 29)
	rm := int(bits(word, 16, 20))
	opcode := bits(word, 10, 15)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	if s != 0 {
		return false
	}

	gpr := GpW
	if sf == 1 {
		gpr = GpX
		inst.Is64Bit = true
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.Rm = rm
	inst.RdClass = gpr
	inst.RnClass = gpr
	inst.RmClass = gpr

	switch opcode {
	case 2:
		inst.Kind = UDIV
	case 3:
		inst.Kind = SDIV
	case 8:
		inst.Kind = LSL
	case 9:
		inst.Kind = LSR
	case 10:
		inst.Kind = ASR
	case 11:
		inst.Kind = ROR_
	default:
		return false
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeDataProc3Source(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	op54 := bits(word, 29, 30)
	op31 := bits(word, 21, 23)
	rm := int(bits(word, 16, 20))
	o0 := bit(word, 15)
	ra := int(bits(word, 10, 14))
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	if op54 != 0 {
		return false
	}

	gpr := GpW
	if sf == 1 {
		gpr = GpX
		inst.Is64Bit = true
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.Rm = rm
	inst.Ra = ra
	inst.RdClass = gpr
	inst.RnClass = gpr
	inst.RmClass = gpr

	opcode := (op31 << 1) | o0
	switch opcode {
	case 0:
		inst.Kind = MADD
		if ra == 31 {
			inst.Kind = MUL
			inst.Ra = 0
		}
	case 1:
		inst.Kind = MSUB
		if ra == 31 {
			inst.Kind = MNEG
			inst.Ra = 0
		}
	default:
		return false
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeCondSelect(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	op := bit(word, 30)
	s := bit(word, 29)
	rm := int(bits(word, 16, 20))
	cond := bits(word, 12, 15)
	op2 := bits(word, 10, 11)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	if s != 0 || op2 > 1 {
		return false
	}

	gpr := GpW
	if sf == 1 {
		gpr = GpX
		inst.Is64Bit = true
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.Rm = rm
	inst.RdClass = gpr
	inst.RnClass = gpr
	inst.RmClass = gpr
	inst.Cond = uint8(cond)

	opcode := (op << 1) | op2
	sameReg := rm == rn
	notALorNV := cond != 14 && cond != 15

	switch opcode {
	case 0:
		inst.Kind = CSEL
	case 1:
		inst.Kind = CSINC
		if rm == 31 && rn == 31 {
			inst.Kind = CSET
			inst.Cond ^= 1
			inst.Rn = 0
			inst.Rm = 0
			inst.RnClass = NoReg
			inst.RmClass = NoReg
		} else if sameReg && notALorNV {
			inst.Kind = CINC
			inst.Cond ^= 1
			inst.Rm = 0
			inst.RmClass = NoReg
		}
	case 2:
		inst.Kind = CSINV
		if rm == 31 && rn == 31 {
			inst.Kind = CSETM
			inst.Cond ^= 1
			inst.Rn = 0
			inst.Rm = 0
			inst.RnClass = NoReg
			inst.RmClass = NoReg
		} else if sameReg && notALorNV {
			inst.Kind = CINV
			inst.Cond ^= 1
			inst.Rm = 0
			inst.RmClass = NoReg
		}
	case 3:
		inst.Kind = CSNEG
		if sameReg && notALorNV {
			inst.Kind = CNEG
			inst.Cond ^= 1
			inst.Rm = 0
			inst.RmClass = NoReg
		}
	default:
		return false
	}
	inst.Cond &= 0xF
	inst.Mnemonic = inst.Kind.String()
	return true
}
