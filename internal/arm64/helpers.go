package arm64

// BranchTarget computes the architectural branch target of a PC-relative
// instruction: address + imm. It is only meaningful when the instruction's
// Kind is one of the PC-relative-immediate kinds; callers should check
// IsBranch (or the ADR/ADRP case explicitly) first.
func BranchTarget(inst Instruction) uint64 {
	switch inst.Kind {
	case B, BL, CBZ, CBNZ, TBZ, TBNZ, ADR, ADRP:
		return inst.Address + uint64(inst.Imm)
	default:
		return 0
	}
}

// IsBranch reports whether inst changes control flow, directly or through a
// register.
func IsBranch(inst Instruction) bool {
	switch inst.Kind {
	case B, BL, BR, BLR, RET, ERET, DRPS, CBZ, CBNZ, TBZ, TBNZ:
		return true
	default:
		return false
	}
}

// IsLoadStore reports whether inst accesses memory.
func IsLoadStore(inst Instruction) bool {
	switch inst.Kind {
	case LDR, LDRB, LDRH, LDRSW, LDRSB, LDRSH, STR, STRB, STRH, LDP, STP,
		LDXR, STXR, LDAXR, STLXR, LDAR, STLR,
		LDADD, LDCLR, LDEOR, LDSET, LDSMAX, LDSMIN, LDUMAX, LDUMIN, SWP, CAS:
		return true
	default:
		return false
	}
}

// UsedRegisters returns the set of architectural register encodings (0..31)
// referenced by inst across whichever of Rd/Rn/Rm/Rt2/Ra are populated for
// its kind, deduplicated, in slot order.
func UsedRegisters(inst Instruction) []int {
	var regs []int
	seen := make(map[int]bool)
	add := func(class RegClass, n int) {
		if class == NoReg {
			return
		}
		if !seen[n] {
			seen[n] = true
			regs = append(regs, n)
		}
	}
	add(inst.RdClass, inst.Rd)
	add(inst.RnClass, inst.Rn)
	add(inst.RmClass, inst.Rm)
	if inst.Kind == LDP || inst.Kind == STP {
		add(inst.RdClass, inst.Rt2)
	}
	if inst.Kind == MADD || inst.Kind == MSUB || inst.Kind == FMADD || inst.Kind == FMSUB ||
		inst.Kind == FNMADD || inst.Kind == FNMSUB {
		add(inst.RdClass, inst.Ra)
	}
	return regs
}

// ImmediateValue returns (imm, true) when inst carries a meaningful
// immediate, or (0, false) otherwise. Per the HasImm invariant, the imm
// field's value must not be examined when HasImm is false.
func ImmediateValue(inst Instruction) (int64, bool) {
	if !inst.HasImm {
		return 0, false
	}
	return inst.Imm, true
}
