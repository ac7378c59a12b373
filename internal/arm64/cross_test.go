package arm64

import (
	"encoding/binary"
	"strings"
	"testing"

	"golang.org/x/arch/arm64/arm64asm"
)

// TestCrossDecodeAgreesWithOracle differentially checks a sample of common
// encodings against golang.org/x/arch/arm64/arm64asm.Decode. This is a
// test-only use of that dependency: the production Decode path above never
// imports arm64asm. Agreement is checked loosely (mnemonic family, not
// exact operand syntax) since the two decoders don't share a text format.
func TestCrossDecodeAgreesWithOracle(t *testing.T) {
	words := []uint32{
		0xF9400421, // LDR X1, [X1, #8]
		0xA9BF7BFD, // STP X29, X30, [SP, #-16]!
		0x14000010, // B #0x40
		0xD65F03C0, // RET
		0x8B020020, // ADD X0, X1, X2
		0xCB020020, // SUB X0, X1, X2
		0xAA0103E0, // MOV X0, X1
		0x91000420, // ADD X0, X1, #1
		0xF100003F, // CMP X1, #0
		0x9B037C41, // MUL X1, X2, X3
	}

	for _, w := range words {
		buf := make([]byte, 4)
		binary.LittleEndian.PutUint32(buf, w)

		want, err := arm64asm.Decode(buf)
		if err != nil {
			continue // oracle didn't recognize it either; nothing to compare
		}

		got, ok := Decode(w, 0x1000)
		if !ok {
			t.Errorf("word 0x%08x: oracle decoded %q but Decode failed", w, want.String())
			continue
		}

		wantMnem := strings.ToLower(strings.SplitN(want.String(), " ", 2)[0])
		gotMnem := strings.ToLower(got.Kind.String())
		if !strings.HasPrefix(wantMnem, gotMnem) && !strings.HasPrefix(gotMnem, wantMnem) {
			t.Errorf("word 0x%08x: oracle mnemonic %q, Decode kind %q", w, wantMnem, gotMnem)
		}
	}
}
