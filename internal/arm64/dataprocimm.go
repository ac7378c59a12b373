package arm64

// dataProcImmTable decodes the data-processing-immediate category: PC-relative
// addressing, add/sub-immediate, logical-immediate, move-wide, bitfield, and
// EXTR.
var dataProcImmTable = decodeTable{
	{0x1F000000, 0x10000000, decodePCRelAddressing},
	{0x1F800000, 0x11000000, decodeAddSubImmediate},
	{0x1F800000, 0x12000000, decodeLogicalImmediate},
	{0x1F800000, 0x12800000, decodeMoveWideImmediate},
	{0x1F800000, 0x13000000, decodeBitfield},
	{0x1F800000, 0x13800000, decodeExtr},
}

func decodePCRelAddressing(word uint32, address uint64, inst *Instruction) bool {
	if bits(word, 24, 28) != 0x10 {
		return false
	}
	op := bit(word, 31)
	immlo := bits(word, 29, 30)
	immhi := bits(word, 5, 23)
	rd := int(bits(word, 0, 4))
	imm21 := (immhi << 2) | immlo

	inst.Rd = rd
	inst.RdClass = GpX
	inst.Is64Bit = true
	if op == 1 {
		inst.Kind = ADRP
		inst.Imm = signExtend(imm21, 21) << 12
	} else {
		inst.Kind = ADR
		inst.Imm = signExtend(imm21, 21)
	}
	inst.HasImm = true
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeAddSubImmediate(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	op := bit(word, 30)
	s := bit(word, 29)
	shift := bits(word, 22, 23)
	imm12 := bits(word, 10, 21)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	if shift > 1 {
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
	inst.ShiftAmount = uint8(shift * 12)
	inst.Imm = int64(imm12) << inst.ShiftAmount
	inst.HasImm = true
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

	if s == 1 && rd == 31 {
		if op == 1 {
			inst.Kind = CMP
		} else {
			inst.Kind = CMN
		}
		if sf == 1 {
			inst.RdClass = Xzr
		} else {
			inst.RdClass = Wzr
		}
	} else if s == 0 && op == 0 && imm12 == 0 && shift == 0 {
		inst.Kind = MOV
		inst.HasImm = false
		inst.Rm = rn
		inst.RmClass = gpr
		if rn == 31 || rd == 31 {
			if rn == 31 {
				inst.RnClass = Sp
				inst.RmClass = Sp
			}
			if rd == 31 {
				inst.RdClass = Sp
			}
		}
	} else if s == 0 {
		if rn == 31 {
			inst.RnClass = Sp
		}
		if rd == 31 {
			inst.RdClass = Sp
		}
	}

	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeLogicalImmediate(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	opc := bits(word, 29, 30)
	n := bit(word, 22)
	immr := bits(word, 16, 21)
	imms := bits(word, 10, 15)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	if sf == 0 && n != 0 {
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
	inst.Imm = int64((immr << 6) | imms)
	inst.HasImm = true

	switch opc {
	case 0:
		inst.Kind = AND
	case 1:
		inst.Kind = ORR
	case 2:
		inst.Kind = EOR
	case 3:
		inst.Kind = ANDS
		inst.SetFlags = true
	default:
		return false
	}

	if opc == 1 && rn == 31 {
		inst.Kind = MOV
		inst.Rn = 0
		inst.RnClass = NoReg
	}
	if opc == 3 && rd == 31 {
		inst.Kind = TST
		inst.RdClass = gprZero(gpr)
	}

	inst.Mnemonic = inst.Kind.String()
	return true
}

func gprZero(gpr RegClass) RegClass {
	if gpr == GpX {
		return Xzr
	}
	return Wzr
}

func decodeMoveWideImmediate(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	opc := bits(word, 29, 30)
	hw := bits(word, 21, 22)
	imm16 := bits(word, 5, 20)
	rd := int(bits(word, 0, 4))

	if sf == 0 && hw >= 2 {
		return false
	}

	gpr := GpW
	if sf == 1 {
		gpr = GpX
		inst.Is64Bit = true
	}

	inst.Rd = rd
	inst.RdClass = gpr
	inst.ShiftAmount = uint8(hw * 16)
	inst.Imm = int64(imm16)
	inst.HasImm = true

	switch opc {
	case 0:
		inst.Kind = MOVN
	case 2:
		inst.Kind = MOVZ
	case 3:
		inst.Kind = MOVK
	default:
		return false
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeBitfield(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	opc := bits(word, 29, 30)
	n := bit(word, 22)
	immr := bits(word, 16, 21)
	imms := bits(word, 10, 15)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	if n != sf {
		return false
	}

	gpr := GpW
	topBit := uint32(31)
	if sf == 1 {
		gpr = GpX
		topBit = 63
		inst.Is64Bit = true
	}

	inst.Rd = rd
	inst.Rn = rn
	inst.RdClass = gpr
	inst.RnClass = gpr
	inst.ShiftAmount = uint8(immr)
	inst.Imm = int64((immr << 6) | imms)
	inst.HasImm = true

	switch opc {
	case 0: // SBFM, alias ASR
		inst.Kind = BFM
		inst.Mnemonic = "sbfm"
		if immr != 0 && imms == topBit {
			inst.Kind = ASR
			inst.Mnemonic = "asr"
		}
	case 1: // BFM, no dedicated alias
		inst.Kind = BFM
		inst.Mnemonic = "bfm"
	case 2: // UBFM, aliases LSR/LSL
		inst.Kind = BFM
		inst.Mnemonic = "ubfm"
		if imms == topBit {
			inst.Kind = LSR
			inst.Mnemonic = "lsr"
		} else if immr == 0 && imms < topBit {
			inst.Kind = LSL
			inst.Mnemonic = "lsl"
		}
	default:
		return false
	}
	return true
}

func decodeExtr(word uint32, address uint64, inst *Instruction) bool {
	sf := bit(word, 31)
	n := bit(word, 22)
	rm := int(bits(word, 16, 20))
	imms := bits(word, 10, 15)
	rn := int(bits(word, 5, 9))
	rd := int(bits(word, 0, 4))

	if sf != n {
		return false
	}
	if sf == 0 && imms >= 32 {
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
	inst.ShiftAmount = uint8(imms)
	inst.Imm = int64(imms)
	inst.HasImm = true

	if rn == rm {
		inst.Kind = ROR_
		inst.Mnemonic = "ror"
	} else {
		inst.Kind = EXTR
		inst.Mnemonic = "extr"
	}
	return true
}
