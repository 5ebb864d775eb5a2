//go:build legacy

package vm

// This file implements the float/DUP/POW instruction subset found in the
// pre-1.3.2 revision of the source material (spec §9: "two revisions
// present in the source"). It is gated behind the legacy build tag and is
// not part of the canonical wire format: a ROM compiled against the
// canonical opcode table will never emit these bytes, and a ROM that uses
// them will not run without this file. Floats are carried as the bit
// pattern of a float32 stored in a single word, matching the source's
// bot_word union.

import "math"

const (
	Dup Opcode = 0x36
	Pow Opcode = 0x46

	Fpu Opcode = 0x60 // FLOAT PUSH (immediate, like NUM4 but float-typed)
	Ftu Opcode = 0x61 // FLOAT TO UINT
	Utf Opcode = 0x62 // UINT TO FLOAT
	Feq Opcode = 0x63
	Fne Opcode = 0x64
	Fls Opcode = 0x65
	Fle Opcode = 0x66
	Fad Opcode = 0x70
	Fsb Opcode = 0x71
	Fml Opcode = 0x72
	Fdv Opcode = 0x73
	Fmo Opcode = 0x74 // FLOAT MODULO
)

func init() {
	for op, name := range map[Opcode]string{
		Dup: "dup", Pow: "pow",
		Fpu: "fpu", Ftu: "ftu", Utf: "utf",
		Feq: "feq", Fne: "fne", Fls: "fls", Fle: "fle",
		Fad: "fad", Fsb: "fsb", Fml: "fml", Fdv: "fdv", Fmo: "fmo",
	} {
		mnemonics[op] = name
		Mnemonics[name] = op
	}
	legacyOpcodeHandler = (*VM).stepLegacy
}

func asFloat(w Word) float32 { return math.Float32frombits(w) }
func fromFloat(f float32) Word { return math.Float32bits(f) }

// stepLegacy handles the legacy-only opcodes. Step calls it from its
// default case when the build tag is active.
func (m *VM) stepLegacy(op Opcode) bool {
	switch op {
	case Dup:
		top, ok := m.peek()
		if !ok {
			return true
		}
		m.push(top)

	case Pow:
		m.binOp(func(a, b Word) (Word, bool) {
			return Word(math.Pow(float64(a), float64(b))), true
		})

	case Fpu:
		if v, ok := m.fetchU32(); ok {
			m.push(v)
		}

	case Ftu:
		a, ok := m.peek()
		if !ok {
			return true
		}
		m.WriteWord(m.sp-1, Word(asFloat(a)))

	case Utf:
		a, ok := m.peek()
		if !ok {
			return true
		}
		m.WriteWord(m.sp-1, fromFloat(float32(a)))

	case Feq:
		m.binOp(func(a, b Word) (Word, bool) { return boolWord(asFloat(a) == asFloat(b)), true })
	case Fne:
		m.binOp(func(a, b Word) (Word, bool) { return boolWord(asFloat(a) != asFloat(b)), true })
	case Fls:
		m.binOp(func(a, b Word) (Word, bool) { return boolWord(asFloat(a) < asFloat(b)), true })
	case Fle:
		m.binOp(func(a, b Word) (Word, bool) { return boolWord(asFloat(a) <= asFloat(b)), true })

	case Fad:
		m.binOp(func(a, b Word) (Word, bool) { return fromFloat(asFloat(a) + asFloat(b)), true })
	case Fsb:
		m.binOp(func(a, b Word) (Word, bool) { return fromFloat(asFloat(a) - asFloat(b)), true })
	case Fml:
		m.binOp(func(a, b Word) (Word, bool) { return fromFloat(asFloat(a) * asFloat(b)), true })
	case Fdv:
		m.binOp(func(a, b Word) (Word, bool) {
			if asFloat(b) == 0 {
				m.Interrupt(IntInvalidOperation)
				return 0, false
			}
			return fromFloat(asFloat(a) / asFloat(b)), true
		})
	case Fmo:
		m.binOp(func(a, b Word) (Word, bool) {
			if asFloat(b) == 0 {
				m.Interrupt(IntInvalidOperation)
				return 0, false
			}
			return fromFloat(float32(math.Mod(float64(asFloat(a)), float64(asFloat(b))))), true
		})

	default:
		return false
	}
	return true
}
