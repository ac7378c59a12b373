// Package arm64 decodes single AArch64 A64 instruction words into a
// fully-populated, architecture-level instruction record.
package arm64

// RegClass names the width and identity of an operand register slot.
type RegClass int

const (
	NoReg RegClass = iota
	GpX            // 64-bit general-purpose register
	GpW            // 32-bit general-purpose register
	Sp             // stack pointer
	Xzr            // 64-bit zero register
	Wzr            // 32-bit zero register
	VFull          // vector register referenced by name only
	VB             // 8-bit SIMD/FP view
	VH             // 16-bit SIMD/FP view
	VS             // 32-bit SIMD/FP view
	VD             // 64-bit SIMD/FP view
	VQ             // 128-bit SIMD/FP view
)

func (c RegClass) String() string {
	switch c {
	case GpX:
		return "GpX"
	case GpW:
		return "GpW"
	case Sp:
		return "Sp"
	case Xzr:
		return "Xzr"
	case Wzr:
		return "Wzr"
	case VFull:
		return "VFull"
	case VB:
		return "VB"
	case VH:
		return "VH"
	case VS:
		return "VS"
	case VD:
		return "VD"
	case VQ:
		return "VQ"
	default:
		return "NoReg"
	}
}

// AddrMode names the addressing mode of a load/store memory operand.
type AddrMode int

const (
	AddrNone AddrMode = iota
	ImmUnsigned
	ImmSigned
	PreIndex
	PostIndex
	RegOffset
	RegExtend
	Literal
)

// ExtendKind names a register-extend or register-shift specifier.
// Values 0..7 map bit-exact to the architectural "option" field.
type ExtendKind int

const (
	UxtB ExtendKind = 0
	UxtH ExtendKind = 1
	UxtW ExtendKind = 2
	UxtX ExtendKind = 3
	SxtB ExtendKind = 4
	SxtH ExtendKind = 5
	SxtW ExtendKind = 6
	SxtX ExtendKind = 7
	Lsl  ExtendKind = 8
	Lsr  ExtendKind = 9
	Asr  ExtendKind = 10
	Ror  ExtendKind = 11

	NoExtend ExtendKind = -1
)

var extendNames = [...]string{"uxtb", "uxth", "uxtw", "uxtx", "sxtb", "sxth", "sxtw", "sxtx", "lsl", "lsr", "asr", "ror"}

func (e ExtendKind) String() string {
	if e >= 0 && int(e) < len(extendNames) {
		return extendNames[e]
	}
	return ""
}

// InstKind is a closed enumeration of the operation kinds this decoder can
// emit. UNKNOWN means the word was not recognized.
type InstKind int

const (
	Unknown InstKind = iota

	// Load/store
	LDR
	LDRB
	LDRH
	LDRSW
	LDRSB
	LDRSH
	STR
	STRB
	STRH
	LDP
	STP
	LDXR
	STXR
	LDAXR
	STLXR
	LDAR
	STLR
	LDADD
	LDCLR
	LDEOR
	LDSET
	LDSMAX
	LDSMIN
	LDUMAX
	LDUMIN
	SWP
	CAS

	// Move / data-processing immediate
	MOV
	MOVZ
	MOVN
	MOVK
	ADD
	SUB
	ADDS
	SUBS
	ADR
	ADRP

	// Branch
	B
	BL
	BR
	BLR
	RET
	ERET
	DRPS
	CBZ
	CBNZ
	TBZ
	TBNZ

	// Logical / shift
	AND
	ORR
	EOR
	ANDS
	BIC
	ORN
	EON
	BICS
	LSL
	LSR
	ASR
	ROR_
	CMP
	CMN
	TST

	// Multiply / divide
	MUL
	MADD
	MSUB
	MNEG
	SDIV
	UDIV

	// Conditional select
	CSEL
	CSINC
	CSINV
	CSNEG
	CSET
	CSETM
	CINC
	CINV
	CNEG

	// 1-source
	CLZ
	CLS
	RBIT
	REV
	REV16
	REV32
	EXTR
	BFM

	// System
	NOP
	MRS

	// Floating point / scalar SIMD
	FMOV
	FADD
	FSUB
	FMUL
	FDIV
	FABS
	FNEG
	FSQRT
	FMADD
	FMSUB
	FNMADD
	FNMSUB
	FCMP
	FCMPE
	FCCMP
	FCCMPE
	FCSEL
	FCVT
	FCVTZS
	FCVTZU
	SCVTF
	UCVTF
	FRINT
	FMAX
	FMIN
	FMAXNM
	FMINNM
	FNMUL
	FCVTNU
	FCVTAU
	FCVTPS
	FCVTMU

	// Scalar SIMD
	DUP
	FMULX
	FCMEQ
	FCMGE
	FRECPS
	FRSQRTS
	FACGE
	SIMDADD
	SIMDSUB
	SUQADD
	SQABS
	CMGT
	CMEQ
	CMLT
	ABS
	FCMGT
	FCMLT
	FCVTNS
	FCVTMS
	FCVTAS
	USQADD
	SQNEG
	CMGE
	CMLE
	NEG
	FCMGE_
	FCMLE
	FCVTPU
	FCVTZU_2REG
	UCVTF_2REG
)

var instKindNames = map[InstKind]string{
	Unknown: "unknown",
	LDR: "ldr", LDRB: "ldrb", LDRH: "ldrh", LDRSW: "ldrsw", LDRSB: "ldrsb", LDRSH: "ldrsh",
	STR: "str", STRB: "strb", STRH: "strh", LDP: "ldp", STP: "stp",
	LDXR: "ldxr", STXR: "stxr", LDAXR: "ldaxr", STLXR: "stlxr", LDAR: "ldar", STLR: "stlr",
	LDADD: "ldadd", LDCLR: "ldclr", LDEOR: "ldeor", LDSET: "ldset",
	LDSMAX: "ldsmax", LDSMIN: "ldsmin", LDUMAX: "ldumax", LDUMIN: "ldumin",
	SWP: "swp", CAS: "cas",
	MOV: "mov", MOVZ: "movz", MOVN: "movn", MOVK: "movk",
	ADD: "add", SUB: "sub", ADDS: "adds", SUBS: "subs", ADR: "adr", ADRP: "adrp",
	B: "b", BL: "bl", BR: "br", BLR: "blr", RET: "ret", ERET: "eret", DRPS: "drps",
	CBZ: "cbz", CBNZ: "cbnz", TBZ: "tbz", TBNZ: "tbnz",
	AND: "and", ORR: "orr", EOR: "eor", ANDS: "ands",
	BIC: "bic", ORN: "orn", EON: "eon", BICS: "bics",
	LSL: "lsl", LSR: "lsr", ASR: "asr", ROR_: "ror",
	CMP: "cmp", CMN: "cmn", TST: "tst",
	MUL: "mul", MADD: "madd", MSUB: "msub", MNEG: "mneg", SDIV: "sdiv", UDIV: "udiv",
	CSEL: "csel", CSINC: "csinc", CSINV: "csinv", CSNEG: "csneg",
	CSET: "cset", CSETM: "csetm", CINC: "cinc", CINV: "cinv", CNEG: "cneg",
	CLZ: "clz", CLS: "cls", RBIT: "rbit", REV: "rev", REV16: "rev16", REV32: "rev32",
	EXTR: "extr", BFM: "bfm",
	NOP: "nop", MRS: "mrs",
	FMOV: "fmov", FADD: "fadd", FSUB: "fsub", FMUL: "fmul", FDIV: "fdiv",
	FABS: "fabs", FNEG: "fneg", FSQRT: "fsqrt",
	FMADD: "fmadd", FMSUB: "fmsub", FNMADD: "fnmadd", FNMSUB: "fnmsub",
	FCMP: "fcmp", FCMPE: "fcmpe", FCCMP: "fccmp", FCCMPE: "fccmpe", FCSEL: "fcsel",
	FCVT: "fcvt", FCVTZS: "fcvtzs", FCVTZU: "fcvtzu", SCVTF: "scvtf", UCVTF: "ucvtf",
	FRINT: "frint", FMAX: "fmax", FMIN: "fmin", FMAXNM: "fmaxnm", FMINNM: "fminnm", FNMUL: "fnmul",
	FCVTNU: "fcvtnu", FCVTAU: "fcvtau", FCVTPS: "fcvtps", FCVTMU: "fcvtmu",
	DUP: "dup", FMULX: "fmulx", FCMEQ: "fcmeq", FCMGE: "fcmge",
	FRECPS: "frecps", FRSQRTS: "frsqrts", FACGE: "facge",
	SIMDADD: "add", SIMDSUB: "sub",
	SUQADD: "suqadd", SQABS: "sqabs", CMGT: "cmgt", CMEQ: "cmeq", CMLT: "cmlt", ABS: "abs",
	FCMGT: "fcmgt", FCMLT: "fcmlt", FCVTNS: "fcvtns", FCVTMS: "fcvtms", FCVTAS: "fcvtas",
	USQADD: "usqadd", SQNEG: "sqneg", CMGE: "cmge", CMLE: "cmle", NEG: "neg",
	FCMGE_: "fcmge", FCMLE: "fcmle", FCVTPU: "fcvtpu", FCVTZU_2REG: "fcvtzu", UCVTF_2REG: "ucvtf",
}

func (k InstKind) String() string {
	if s, ok := instKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// CondNames holds the canonical AArch64 condition mnemonics in architectural
// order: eq,ne,cs,cc,mi,pl,vs,vc,hi,ls,ge,lt,gt,le,al,nv.
var CondNames = [...]string{
	"eq", "ne", "cs", "cc", "mi", "pl", "vs", "vc",
	"hi", "ls", "ge", "lt", "gt", "le", "al", "nv",
}

// Instruction is the fully decoded, read-only record produced by Decode.
// All fields carry deterministic zero defaults before decoding; Decode
// overwrites only what is meaningful for the matched encoding.
type Instruction struct {
	Raw     uint32
	Address uint64

	Kind     InstKind
	Mnemonic string

	Rd, Rn, Rm, Rt2, Ra                int
	RdClass, RnClass, RmClass          RegClass

	Imm    int64
	HasImm bool

	AddrMode    AddrMode
	Extend      ExtendKind
	ShiftAmount uint8

	Cond uint8

	Is64Bit   bool
	SetFlags  bool
	IsAcquire bool
	IsRelease bool
}
