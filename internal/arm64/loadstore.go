package arm64

// loadStoreTable decodes the load/store category. Row order matters: more
// specific masks are placed before more general ones, so a word reaches a
// broader row only when the earlier, more specific decoders decline it.
var loadStoreTable = decodeTable{
	{0x3F200000, 0x08000000, decodeLoadStoreExclusive},
	{0x3FA00000, 0x08A00000, decodeCAS},
	{0x3B200C00, 0x38200000, decodeAtomicRMW},
	{0x3E000000, 0x28000000, decodeLoadStorePair},
	{0x3B000000, 0x18000000, decodeLoadLiteral},
	{0x3B000000, 0x39000000, decodeLoadStoreUnsignedImm},
	{0x3B200C00, 0x38200800, decodeLoadStoreRegOffset},
	{0x3B200C00, 0x38000000, decodeLoadStoreUnscaledIndexed},
}

func baseRegClass(rn int) RegClass {
	if rn == 31 {
		return Sp
	}
	return GpX
}

func decodeLoadStoreExclusive(word uint32, address uint64, inst *Instruction) bool {
	size := bits(word, 30, 31)
	o2 := bit(word, 23)
	l := bit(word, 22)
	o1 := bit(word, 21)
	rs := int(bits(word, 16, 20))
	o0 := bit(word, 15)
	rt2 := int(bits(word, 10, 14))
	rn := int(bits(word, 5, 9))
	rt := int(bits(word, 0, 4))

	gpr := GpW
	if size == 3 {
		gpr = GpX
		inst.Is64Bit = true
	}

	inst.Rd = rt
	inst.Rn = rn
	inst.RdClass = gpr
	inst.RnClass = baseRegClass(rn)
	inst.IsAcquire = o0 == 1
	inst.IsRelease = o1 == 1

	switch {
	case o2 == 0 && l == 1 && o1 == 0:
		if o0 == 1 {
			inst.Kind = LDAXR
		} else {
			inst.Kind = LDXR
		}
	case o2 == 0 && l == 0 && o1 == 0:
		inst.Rt2 = rt2 // unused for single-register form
		inst.Rm = rs
		inst.RmClass = GpW
		if o0 == 1 {
			inst.Kind = STLXR
		} else {
			inst.Kind = STXR
		}
	case o2 == 0 && l == 1 && o1 == 1:
		// LDXP/LDAXP: pair form, rt2 significant.
		inst.Rt2 = rt2
		inst.Kind = LDXR
		inst.Mnemonic = "ldxp"
		if o0 == 1 {
			inst.Mnemonic = "ldaxp"
		}
	case o2 == 0 && l == 0 && o1 == 1:
		inst.Rt2 = rt2
		inst.Rm = rs
		inst.RmClass = GpW
		inst.Kind = STXR
		inst.Mnemonic = "stxp"
		if o0 == 1 {
			inst.Mnemonic = "stlxp"
		}
	case o2 == 1 && l == 1:
		if rs != 0x1F || rt2 != 0x1F {
			return false
		}
		if o0 == 1 {
			inst.Kind = LDAR
		} else {
			inst.Kind = LDAR
			inst.Mnemonic = "ldlar"
		}
	case o2 == 1 && l == 0:
		if rs != 0x1F || rt2 != 0x1F {
			return false
		}
		if o0 == 1 {
			inst.Kind = STLR
		} else {
			inst.Kind = STLR
			inst.Mnemonic = "stllr"
		}
	default:
		return false
	}

	if size < 2 {
		if inst.Mnemonic == "" {
			inst.Mnemonic = inst.Kind.String()
		}
		if size == 0 {
			inst.Mnemonic += "b"
		} else {
			inst.Mnemonic += "h"
		}
		inst.RdClass = GpW
	}
	if inst.Mnemonic == "" {
		inst.Mnemonic = inst.Kind.String()
	}
	return true
}

func decodeCAS(word uint32, address uint64, inst *Instruction) bool {
	size := bits(word, 30, 31)
	o1 := bit(word, 22)
	rs := int(bits(word, 16, 20))
	o0 := bit(word, 15)
	rt2 := bits(word, 10, 14)
	rn := int(bits(word, 5, 9))
	rt := int(bits(word, 0, 4))

	if bits(word, 23, 23) != 1 || rt2 != 0x1F {
		return false
	}

	gpr := GpW
	if size == 3 {
		gpr = GpX
		inst.Is64Bit = true
	} else if size != 0 && size != 1 {
		return false
	}

	inst.Kind = CAS
	inst.Rd = rt
	inst.Rn = rn
	inst.Rm = rs
	inst.RdClass = gpr
	inst.RnClass = baseRegClass(rn)
	inst.RmClass = gpr
	inst.IsAcquire = o0 == 1
	inst.IsRelease = o1 == 1

	mnem := "cas"
	if o0 == 1 {
		mnem += "a"
	}
	if o1 == 1 {
		mnem += "l"
	}
	if size == 0 {
		mnem += "b"
		inst.RdClass = GpW
		inst.RmClass = GpW
	} else if size == 1 {
		mnem += "h"
		inst.RdClass = GpW
		inst.RmClass = GpW
	}
	inst.Mnemonic = mnem
	return true
}

var atomicRMWNames = [...]InstKind{LDADD, LDCLR, LDEOR, LDSET, LDSMAX, LDSMIN, LDUMAX, LDUMIN}

func decodeAtomicRMW(word uint32, address uint64, inst *Instruction) bool {
	size := bits(word, 30, 31)
	v := bit(word, 26)
	a := bit(word, 23)
	r := bit(word, 22)
	rs := int(bits(word, 16, 20))
	o3 := bit(word, 15)
	opc := bits(word, 12, 14)
	rn := int(bits(word, 5, 9))
	rt := int(bits(word, 0, 4))

	if v != 0 {
		return false
	}

	gpr := GpW
	if size == 3 {
		gpr = GpX
		inst.Is64Bit = true
	}

	inst.Rd = rt
	inst.Rn = rn
	inst.Rm = rs
	inst.RdClass = gpr
	inst.RnClass = baseRegClass(rn)
	inst.RmClass = gpr
	inst.IsAcquire = a == 1
	inst.IsRelease = r == 1

	var mnem string
	if o3 == 1 {
		if opc != 0 {
			return false
		}
		inst.Kind = SWP
		mnem = "swp"
	} else {
		if int(opc) >= len(atomicRMWNames) {
			return false
		}
		inst.Kind = atomicRMWNames[opc]
		mnem = inst.Kind.String()
	}

	if a == 1 {
		mnem += "a"
	}
	if r == 1 {
		mnem += "l"
	}
	if size == 0 {
		mnem += "b"
		inst.RdClass = GpW
	} else if size == 1 {
		mnem += "h"
		inst.RdClass = GpW
	}
	inst.Mnemonic = mnem
	return true
}

func decodeLoadStorePair(word uint32, address uint64, inst *Instruction) bool {
	opc := bits(word, 30, 31)
	v := bit(word, 26)
	idx := bits(word, 23, 24)
	l := bit(word, 22)
	imm7 := bits(word, 15, 21)
	rt2 := int(bits(word, 10, 14))
	rn := int(bits(word, 5, 9))
	rt := int(bits(word, 0, 4))

	if idx == 0 {
		return false
	}

	switch idx {
	case 1:
		inst.AddrMode = PostIndex
	case 2:
		inst.AddrMode = ImmSigned
	case 3:
		inst.AddrMode = PreIndex
	}

	inst.Rd = rt
	inst.Rt2 = rt2
	inst.Rn = rn
	inst.RnClass = baseRegClass(rn)

	var scale uint
	if v == 0 {
		switch opc {
		case 0:
			inst.RdClass = GpW
			scale = 2
		case 1:
			if l != 1 {
				return false
			}
			inst.Kind = LDRSW
			inst.RdClass = GpX
			inst.Is64Bit = true
			scale = 2
			inst.Imm = signExtend(imm7, 7) << scale
			inst.HasImm = true
			inst.Mnemonic = "ldrsw"
			return true
		case 2:
			inst.RdClass = GpX
			inst.Is64Bit = true
			scale = 3
		default:
			return false
		}
	} else {
		switch opc {
		case 0:
			inst.RdClass = VS
			scale = 2
		case 1:
			inst.RdClass = VD
			scale = 3
		case 2:
			inst.RdClass = VQ
			scale = 4
		default:
			return false
		}
	}

	if l == 1 {
		inst.Kind = LDP
	} else {
		inst.Kind = STP
	}
	inst.Imm = signExtend(imm7, 7) << scale
	inst.HasImm = true
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeLoadLiteral(word uint32, address uint64, inst *Instruction) bool {
	opc := bits(word, 30, 31)
	v := bit(word, 26)
	imm19 := bits(word, 5, 23)
	rt := int(bits(word, 0, 4))

	inst.Rd = rt
	inst.AddrMode = Literal
	inst.Imm = signExtend(imm19, 19) << 2
	inst.HasImm = true

	if v == 0 {
		switch opc {
		case 0:
			inst.Kind = LDR
			inst.RdClass = GpW
		case 1:
			inst.Kind = LDR
			inst.RdClass = GpX
			inst.Is64Bit = true
		case 2:
			inst.Kind = LDRSW
			inst.RdClass = GpX
			inst.Is64Bit = true
		default:
			return false
		}
	} else {
		switch opc {
		case 0:
			inst.Kind = LDR
			inst.RdClass = VS
		case 1:
			inst.Kind = LDR
			inst.RdClass = VD
		case 2:
			inst.Kind = LDR
			inst.RdClass = VQ
		default:
			return false
		}
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

type unsignedImmEntry struct {
	kind  InstKind
	class RegClass
	is64  bool
}

var gprUnsignedImmTable = map[uint32]unsignedImmEntry{
	0x00: {STRB, GpW, false},
	0x01: {LDRB, GpW, false},
	0x02: {LDRSB, GpX, true},
	0x03: {LDRSB, GpW, false},
	0x04: {STRH, GpW, false},
	0x05: {LDRH, GpW, false},
	0x06: {LDRSH, GpX, true},
	0x07: {LDRSH, GpW, false},
	0x08: {STR, GpW, false},
	0x09: {LDR, GpW, false},
	0x0A: {LDRSW, GpX, true},
	0x0C: {STR, GpX, true},
	0x0D: {LDR, GpX, true},
}

func decodeLoadStoreUnsignedImm(word uint32, address uint64, inst *Instruction) bool {
	size := bits(word, 30, 31)
	v := bit(word, 26)
	opc := bits(word, 22, 23)
	imm12 := bits(word, 10, 21)
	rn := int(bits(word, 5, 9))
	rt := int(bits(word, 0, 4))

	inst.Rd = rt
	inst.Rn = rn
	inst.RnClass = baseRegClass(rn)
	inst.AddrMode = ImmUnsigned
	inst.Imm = int64(imm12) << size
	inst.HasImm = true

	if v == 0 {
		key := (size << 2) | opc
		e, ok := gprUnsignedImmTable[key]
		if !ok {
			return false
		}
		inst.Kind = e.kind
		inst.RdClass = e.class
		inst.Is64Bit = e.is64
	} else {
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
		switch opc {
		case 0:
			inst.Kind = STR
		case 1:
			inst.Kind = LDR
		case 2:
			if size != 0 {
				return false
			}
			inst.Kind = STR
			class = VQ
		case 3:
			if size != 0 {
				return false
			}
			inst.Kind = LDR
			class = VQ
		default:
			return false
		}
		inst.RdClass = class
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeLoadStoreRegOffset(word uint32, address uint64, inst *Instruction) bool {
	size := bits(word, 30, 31)
	v := bit(word, 26)
	opc := bits(word, 22, 23)
	rm := int(bits(word, 16, 20))
	option := bits(word, 13, 15)
	s := bit(word, 12)
	rn := int(bits(word, 5, 9))
	rt := int(bits(word, 0, 4))

	inst.Rd = rt
	inst.Rn = rn
	inst.Rm = rm
	inst.RnClass = baseRegClass(rn)
	inst.Extend = ExtendKind(option)

	// option 3 (UXTX) and 7 (SXTX) index by a plain 64-bit register; every
	// other option extends a 32-bit register.
	if option == uint32(UxtX) || option == uint32(SxtX) {
		inst.AddrMode = RegOffset
		inst.RmClass = GpX
	} else {
		inst.AddrMode = RegExtend
		inst.RmClass = GpW
	}
	if s == 1 {
		inst.ShiftAmount = uint8(size)
	}

	if v == 0 {
		key := (size << 2) | opc
		e, ok := gprUnsignedImmTable[key]
		if !ok {
			return false
		}
		inst.Kind = e.kind
		inst.RdClass = e.class
		inst.Is64Bit = e.is64
	} else {
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
		switch opc {
		case 0:
			inst.Kind = STR
		case 1:
			inst.Kind = LDR
		case 2:
			if size != 0 {
				return false
			}
			inst.Kind = STR
			class = VQ
		case 3:
			if size != 0 {
				return false
			}
			inst.Kind = LDR
			class = VQ
		default:
			return false
		}
		inst.RdClass = class
	}
	inst.Mnemonic = inst.Kind.String()
	return true
}

func decodeLoadStoreUnscaledIndexed(word uint32, address uint64, inst *Instruction) bool {
	size := bits(word, 30, 31)
	v := bit(word, 26)
	opc := bits(word, 22, 23)
	imm9 := bits(word, 12, 20)
	idx := bits(word, 10, 11)
	rn := int(bits(word, 5, 9))
	rt := int(bits(word, 0, 4))

	if idx == 2 {
		return false
	}

	inst.Rd = rt
	inst.Rn = rn
	inst.RnClass = baseRegClass(rn)
	inst.Imm = signExtend(imm9, 9)
	inst.HasImm = true

	switch idx {
	case 0:
		inst.AddrMode = ImmSigned
	case 1:
		inst.AddrMode = PostIndex
	case 3:
		inst.AddrMode = PreIndex
	}

	unscaled := idx == 0

	if v == 0 {
		key := (size << 2) | opc
		e, ok := gprUnsignedImmTable[key]
		if !ok {
			return false
		}
		inst.Kind = e.kind
		inst.RdClass = e.class
		inst.Is64Bit = e.is64
	} else {
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
		switch opc {
		case 0:
			inst.Kind = STR
		case 1:
			inst.Kind = LDR
		case 2:
			if size != 0 {
				return false
			}
			inst.Kind = STR
			class = VQ
		case 3:
			if size != 0 {
				return false
			}
			inst.Kind = LDR
			class = VQ
		default:
			return false
		}
		inst.RdClass = class
	}

	mnem := inst.Kind.String()
	if unscaled {
		switch inst.Kind {
		case LDR:
			mnem = "ldur"
		case STR:
			mnem = "stur"
		case LDRB:
			mnem = "ldurb"
		case STRB:
			mnem = "sturb"
		case LDRH:
			mnem = "ldurh"
		case STRH:
			mnem = "sturh"
		case LDRSB:
			mnem = "ldursb"
		case LDRSH:
			mnem = "ldursh"
		case LDRSW:
			mnem = "ldursw"
		}
	}
	inst.Mnemonic = mnem
	return true
}
