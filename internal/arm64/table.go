package arm64

// decodeFunc populates inst from word/address and reports whether the
// encoding was recognized. Returning false lets the table engine continue
// scanning past a broad mask match whose fine-grained field constraints
// didn't hold.
type decodeFunc func(word uint32, address uint64, inst *Instruction) bool

// decodeRow is one row of a decode table: a mask/value match gates a call
// into decoder.
type decodeRow struct {
	mask    uint32
	value   uint32
	decoder decodeFunc
}

// decodeTable is an ordered, immutable sequence of rows. Earlier rows win;
// a row's decoder may still reject, in which case the engine keeps scanning.
type decodeTable []decodeRow

// run walks the table in order and returns true on the first decoder that
// accepts the word. A decoder that rejects may already have written fields,
// so inst is restored to its state on entry before the next row is tried;
// when no row accepts, inst is left as it was on entry.
func (t decodeTable) run(word uint32, address uint64, inst *Instruction) bool {
	start := *inst
	for _, row := range t {
		if word&row.mask == row.value {
			if row.decoder(word, address, inst) {
				return true
			}
			*inst = start
		}
	}
	return false
}
