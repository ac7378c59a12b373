package arm64

import (
	"fmt"
	"strings"
)

// regName renders the assembly-syntax name of a register slot given its
// resolved class and raw encoding number.
func regName(class RegClass, n int) string {
	switch class {
	case GpX:
		return fmt.Sprintf("x%d", n)
	case GpW:
		return fmt.Sprintf("w%d", n)
	case Sp:
		return "sp"
	case Xzr:
		return "xzr"
	case Wzr:
		return "wzr"
	case VFull:
		return fmt.Sprintf("v%d", n)
	case VB:
		return fmt.Sprintf("b%d", n)
	case VH:
		return fmt.Sprintf("h%d", n)
	case VS:
		return fmt.Sprintf("s%d", n)
	case VD:
		return fmt.Sprintf("d%d", n)
	case VQ:
		return fmt.Sprintf("q%d", n)
	default:
		return ""
	}
}

// Format renders a decoded Instruction as an assembly-syntax string. It
// accepts every InstKind and interprets Cond/Extend by their canonical
// index, renders Sp/Xzr/Wzr by name, and drives memory-operand rendering
// from AddrMode.
func Format(inst Instruction) string {
	mnem := inst.Mnemonic
	if mnem == "" {
		mnem = inst.Kind.String()
	}

	var ops []string

	switch inst.Kind {
	case Unknown:
		return fmt.Sprintf("unknown 0x%08x", inst.Raw)

	case B, BL:
		ops = []string{fmt.Sprintf("#0x%x", inst.Address+uint64(inst.Imm))}

	case CBZ, CBNZ:
		ops = []string{regName(inst.RdClass, inst.Rd), fmt.Sprintf("#0x%x", inst.Address+uint64(inst.Imm))}

	case TBZ, TBNZ:
		ops = []string{regName(inst.RdClass, inst.Rd), fmt.Sprintf("#%d", inst.ShiftAmount), fmt.Sprintf("#0x%x", inst.Address+uint64(inst.Imm))}

	case BR, BLR:
		ops = []string{regName(inst.RnClass, inst.Rn)}

	case RET:
		if inst.Rn != 30 {
			ops = []string{regName(inst.RnClass, inst.Rn)}
		}

	case ERET, DRPS, NOP:
		// no operands

	case MRS:
		op0, op1, crn, crm, op2 := extractSystemFields(inst.Raw)
		ops = []string{regName(inst.RdClass, inst.Rd), SystemRegName(op0, op1, crn, crm, op2)}

	case ADR, ADRP:
		ops = []string{regName(inst.RdClass, inst.Rd), fmt.Sprintf("#0x%x", inst.Address+uint64(inst.Imm))}

	case MOVZ, MOVN, MOVK:
		ops = []string{regName(inst.RdClass, inst.Rd), fmt.Sprintf("#0x%x", inst.Imm)}
		if inst.ShiftAmount != 0 {
			ops[1] += fmt.Sprintf(", lsl #%d", inst.ShiftAmount)
		}

	case MOV:
		if inst.HasImm {
			ops = []string{regName(inst.RdClass, inst.Rd), fmt.Sprintf("#0x%x", inst.Imm)}
		} else {
			ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RmClass, inst.Rm)}
		}

	case CMP, CMN, TST:
		ops = []string{regName(inst.RdClass, inst.Rd)}
		ops = append(ops, secondOperand(inst)...)

	case FCMP, FCMPE:
		ops = []string{regName(inst.RnClass, inst.Rn)}
		if inst.HasImm {
			ops = append(ops, "#0.0")
		} else {
			ops = append(ops, regName(inst.RmClass, inst.Rm))
		}

	case FCCMP, FCCMPE:
		ops = []string{regName(inst.RnClass, inst.Rn), regName(inst.RmClass, inst.Rm), fmt.Sprintf("#0x%x", inst.Imm), "#" + CondNames[inst.Cond&0xF]}

	case FCSEL, CSEL, CSINC, CSINV, CSNEG:
		ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RnClass, inst.Rn), regName(inst.RmClass, inst.Rm), CondNames[inst.Cond&0xF]}

	case CSET, CSETM:
		ops = []string{regName(inst.RdClass, inst.Rd), CondNames[inst.Cond&0xF]}

	case CINC, CINV, CNEG:
		ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RnClass, inst.Rn), CondNames[inst.Cond&0xF]}

	case FMOV:
		if inst.HasImm {
			ops = []string{regName(inst.RdClass, inst.Rd), fmt.Sprintf("#0x%x", inst.Imm)}
		} else {
			ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RnClass, inst.Rn)}
		}

	case DUP:
		ops = []string{regName(inst.RdClass, inst.Rd), fmt.Sprintf("%s[%d]", regName(inst.RnClass, inst.Rn), inst.Imm)}

	case LDR, LDRB, LDRH, LDRSW, LDRSB, LDRSH, STR, STRB, STRH:
		ops = []string{regName(inst.RdClass, inst.Rd)}
		ops = append(ops, memOperand(inst))

	case LDP, STP:
		ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RdClass, inst.Rt2)}
		ops = append(ops, memOperand(inst))

	case LDXR, LDAXR, STXR, STLXR, LDAR, STLR:
		if inst.Kind == STXR || inst.Kind == STLXR {
			ops = []string{regName(GpW, inst.Rm), regName(inst.RdClass, inst.Rd), fmt.Sprintf("[%s]", regName(inst.RnClass, inst.Rn))}
		} else {
			ops = []string{regName(inst.RdClass, inst.Rd), fmt.Sprintf("[%s]", regName(inst.RnClass, inst.Rn))}
		}

	case CAS:
		ops = []string{regName(inst.RmClass, inst.Rm), regName(inst.RdClass, inst.Rd), fmt.Sprintf("[%s]", regName(inst.RnClass, inst.Rn))}

	case LDADD, LDCLR, LDEOR, LDSET, LDSMAX, LDSMIN, LDUMAX, LDUMIN, SWP:
		ops = []string{regName(inst.RmClass, inst.Rm), regName(inst.RdClass, inst.Rd), fmt.Sprintf("[%s]", regName(inst.RnClass, inst.Rn))}

	case EXTR, ROR_:
		ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RnClass, inst.Rn), regName(inst.RmClass, inst.Rm), fmt.Sprintf("#%d", inst.ShiftAmount)}

	case LSL, LSR, ASR:
		if inst.RmClass != NoReg {
			ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RnClass, inst.Rn), regName(inst.RmClass, inst.Rm)}
		} else {
			ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RnClass, inst.Rn), fmt.Sprintf("#%d", inst.ShiftAmount)}
		}

	case BFM:
		ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RnClass, inst.Rn), fmt.Sprintf("#0x%x", inst.Imm)}

	case NEG:
		ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RmClass, inst.Rm)}

	case CLZ, CLS, RBIT, REV, REV16, REV32, FABS, FNEG, FSQRT, SCVTF, UCVTF, FCVTZS, FCVTZU, FCVT, FRINT,
		SUQADD, SQABS, ABS, CMGT, CMEQ, CMLT, USQADD, SQNEG, CMGE, CMLE, FCMGT, FCMLT, FCMGE_, FCMLE,
		FCVTNS, FCVTMS, FCVTAS, FCVTPU, FCVTZU_2REG, UCVTF_2REG, FCVTNU, FCVTAU, FCVTPS, FCVTMU:
		ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RnClass, inst.Rn)}

	case MUL, MNEG, UDIV, SDIV:
		ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RnClass, inst.Rn), regName(inst.RmClass, inst.Rm)}

	case MADD, MSUB, FMADD, FMSUB, FNMADD, FNMSUB:
		ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RnClass, inst.Rn), regName(inst.RmClass, inst.Rm), regName(inst.RdClass, inst.Ra)}

	case AND, ORR, EOR, ANDS, BIC, ORN, EON, BICS, ADD, SUB, ADDS, SUBS,
		FADD, FSUB, FMUL, FDIV, FMAX, FMIN, FMAXNM, FMINNM, FNMUL,
		FMULX, FCMEQ, FCMGE, FRECPS, FRSQRTS, FACGE, SIMDADD, SIMDSUB:
		ops = []string{regName(inst.RdClass, inst.Rd), regName(inst.RnClass, inst.Rn)}
		ops = append(ops, secondOperand(inst)...)

	default:
		ops = defaultOperands(inst)
	}

	if len(ops) == 0 {
		return mnem
	}
	return mnem + " " + strings.Join(ops, ", ")
}

// secondOperand renders the shifted-register or immediate second source
// operand shared by the add/sub and logical instruction families.
func secondOperand(inst Instruction) []string {
	if inst.HasImm {
		s := fmt.Sprintf("#0x%x", inst.Imm)
		if inst.ShiftAmount != 0 && inst.RmClass == NoReg {
			s += fmt.Sprintf(", lsl #%d", inst.ShiftAmount)
		}
		return []string{s}
	}
	if inst.RmClass == NoReg {
		return nil
	}
	rm := regName(inst.RmClass, inst.Rm)
	if inst.Extend != NoExtend && inst.ShiftAmount != 0 {
		rm += fmt.Sprintf(", %s #%d", inst.Extend, inst.ShiftAmount)
	}
	return []string{rm}
}

// defaultOperands is the fallback for kinds not given a dedicated case
// above: render whichever Rd/Rn/Rm slots have a valid class.
func defaultOperands(inst Instruction) []string {
	var ops []string
	if inst.RdClass != NoReg {
		ops = append(ops, regName(inst.RdClass, inst.Rd))
	}
	if inst.RnClass != NoReg {
		ops = append(ops, regName(inst.RnClass, inst.Rn))
	}
	if inst.RmClass != NoReg {
		ops = append(ops, regName(inst.RmClass, inst.Rm))
	}
	if inst.HasImm {
		ops = append(ops, fmt.Sprintf("#0x%x", inst.Imm))
	}
	return ops
}

// memOperand renders the memory operand of a load/store instruction
// according to its AddrMode.
func memOperand(inst Instruction) string {
	base := regName(inst.RnClass, inst.Rn)
	switch inst.AddrMode {
	case Literal:
		return fmt.Sprintf("#0x%x", inst.Address+uint64(inst.Imm))
	case ImmUnsigned, ImmSigned:
		if inst.Imm == 0 {
			return fmt.Sprintf("[%s]", base)
		}
		return fmt.Sprintf("[%s, #0x%x]", base, inst.Imm)
	case PreIndex:
		return fmt.Sprintf("[%s, #0x%x]!", base, inst.Imm)
	case PostIndex:
		return fmt.Sprintf("[%s], #0x%x", base, inst.Imm)
	case RegOffset:
		return fmt.Sprintf("[%s, %s]", base, regName(inst.RmClass, inst.Rm))
	case RegExtend:
		s := fmt.Sprintf("[%s, %s, %s", base, regName(inst.RmClass, inst.Rm), inst.Extend)
		if inst.ShiftAmount != 0 {
			s += fmt.Sprintf(" #%d", inst.ShiftAmount)
		}
		return s + "]"
	default:
		return fmt.Sprintf("[%s]", base)
	}
}

// extractSystemFields re-extracts the (op0,op1,CRn,CRm,op2) tuple of an MRS
// encoding from its raw word, per the formatter's documented contract.
func extractSystemFields(raw uint32) (op0, op1, crn, crm, op2 uint32) {
	op0 = bits(raw, 19, 20)
	op1 = bits(raw, 16, 18)
	crn = bits(raw, 12, 15)
	crm = bits(raw, 8, 11)
	op2 = bits(raw, 5, 7)
	return
}

// genericSystemRegName is the fallback used by SystemRegName when a system
// register isn't in the friendly-name table.
func genericSystemRegName(op0, op1, crn, crm, op2 uint32) string {
	return fmt.Sprintf("S%d_%d_C%d_C%d_%d", op0, op1, crn, crm, op2)
}
