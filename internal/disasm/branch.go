package disasm

import "github.com/zboralski/a64dis/internal/arm64"

// BranchInfo describes a decoded branch instruction, derived from the arm64
// package's own classification rather than a second hand-rolled decode.
type BranchInfo struct {
	Target uint64 // absolute target address (0 if RET or register-indirect)
	Cond   bool   // true if conditional (has fallthrough)
	IsRet  bool   // true if RET, BR, ERET or DRPS (no static target, no fallthrough)
}

// DecodeBranch classifies a raw instruction word at pc as a branch, or
// returns nil if it is not one. It decodes once via arm64.Decode and reads
// off the classification arm64.IsBranch/arm64.BranchTarget already compute,
// rather than re-deriving bit fields here.
func DecodeBranch(raw uint32, pc uint64) *BranchInfo {
	inst, ok := arm64.Decode(raw, pc)
	if !ok || !arm64.IsBranch(inst) {
		return nil
	}

	switch inst.Kind {
	case arm64.RET, arm64.BR, arm64.ERET, arm64.DRPS:
		return &BranchInfo{IsRet: true}
	case arm64.B:
		// B.cond decodes to Kind==B with a mnemonic of "b.<cond>"; plain B
		// carries no condition suffix.
		cond := len(inst.Mnemonic) > 1 && inst.Mnemonic[1] == '.'
		return &BranchInfo{Target: arm64.BranchTarget(inst), Cond: cond}
	case arm64.CBZ, arm64.CBNZ, arm64.TBZ, arm64.TBNZ:
		return &BranchInfo{Target: arm64.BranchTarget(inst), Cond: true}
	default:
		return nil
	}
}

// IsBranchTerminator returns true if the instruction terminates a basic block.
// This includes all branches (B, B.cond, CBZ, CBNZ, TBZ, TBNZ, RET) but NOT BL/BLR
// (calls return to the next instruction).
func IsBranchTerminator(raw uint32) bool {
	return DecodeBranch(raw, 0) != nil
}
