package arm64

// topLevelTable routes on the high-order opcode bits per the Arm A64
// encoding map. Rows whose decoder rejects fall through to the retry chain
// in Decode, which tries every category table in a fixed order.
var topLevelTable = decodeTable{
	{0x1C000000, 0x10000000, dataProcImmTable.run3},
	{0x1C000000, 0x14000000, branchTable.run3},
	{0x1C000000, 0x18000000, loadStoreTable.run3},
	{0x0A000000, 0x08000000, loadStoreTable.run3},
	{0x0E000000, 0x0A000000, dataProcRegTable.run3},
}

// run3 adapts a decodeTable's multi-row scan to the decodeFunc shape so it
// can be used as a row's decoder in another table.
func (t decodeTable) run3(word uint32, address uint64, inst *Instruction) bool {
	return t.run(word, address, inst)
}

// categoryOrder is the fallback retry chain: branch, data-processing
// immediate, data-processing register, load/store, then FP/SIMD.
var categoryOrder = []decodeTable{
	branchTable,
	dataProcImmTable,
	dataProcRegTable,
	loadStoreTable,
	fpSimdTable,
}

// Decode decodes a single little-endian A64 instruction word at the given
// virtual address. It returns the populated Instruction and true if the word
// was recognized, or a blank Instruction (Kind == Unknown) and false
// otherwise. Decode is pure: it performs no I/O or allocation beyond the
// returned value, reads only immutable package-level tables, and is safe
// for unrestricted concurrent and reentrant use.
func Decode(word uint32, address uint64) (Instruction, bool) {
	inst := Instruction{
		Raw:      word,
		Address:  address,
		Kind:     Unknown,
		Mnemonic: "unknown",
	}

	if topLevelTable.run(word, address, &inst) {
		return inst, inst.Kind != Unknown
	}

	for _, table := range categoryOrder {
		if table.run(word, address, &inst) {
			return inst, inst.Kind != Unknown
		}
	}

	return inst, false
}
