package vm

// Opcode is a single ROM opcode byte (spec §4.1, §6.1).
type Opcode byte

// The canonical (integer-only, version 1.3.2-equivalent) instruction set.
// Values are part of the ROM wire format and must not be renumbered.
const (
	Nop Opcode = 0x00

	Int Opcode = 0x01

	Num  Opcode = 0x10
	Num1 Opcode = 0x11
	Num2 Opcode = 0x12
	Num3 Opcode = 0x13
	Num4 Opcode = 0x14

	Jmp Opcode = 0x20
	Jmc Opcode = 0x21
	Ceq Opcode = 0x22
	Cne Opcode = 0x23
	Cls Opcode = 0x24
	Cle Opcode = 0x25

	Hop Opcode = 0x30
	Pos Opcode = 0x31
	Set Opcode = 0x32
	Get Opcode = 0x33
	Pop Opcode = 0x34
	Rot Opcode = 0x35

	Add Opcode = 0x40
	Sub Opcode = 0x41
	Mul Opcode = 0x42
	Div Opcode = 0x43
	Mod Opcode = 0x44
	Min Opcode = 0x45

	Not Opcode = 0x50
	And Opcode = 0x51
	Bor Opcode = 0x52
	Xor Opcode = 0x53
	Lsh Opcode = 0x54
	Rsh Opcode = 0x55
)

// mnemonics maps opcode -> assembler mnemonic, used by String() and by
// internal/asm for the reverse lookup.
var mnemonics = map[Opcode]string{
	Nop:  "nop",
	Int:  "int",
	Num:  "num",
	Num1: "num1",
	Num2: "num2",
	Num3: "num3",
	Num4: "num4",
	Jmp:  "jmp",
	Jmc:  "jmc",
	Ceq:  "ceq",
	Cne:  "cne",
	Cls:  "cls",
	Cle:  "cle",
	Hop:  "hop",
	Pos:  "pos",
	Set:  "set",
	Get:  "get",
	Pop:  "pop",
	Rot:  "rot",
	Add:  "add",
	Sub:  "sub",
	Mul:  "mul",
	Div:  "div",
	Mod:  "mod",
	Min:  "min",
	Not:  "not",
	And:  "and",
	Bor:  "bor",
	Xor:  "xor",
	Lsh:  "lsh",
	Rsh:  "rsh",
}

// Mnemonics is the reverse of mnemonics, built once at init for internal/asm.
var Mnemonics = func() map[string]Opcode {
	m := make(map[string]Opcode, len(mnemonics))
	for op, name := range mnemonics {
		m[name] = op
	}
	return m
}()

func (o Opcode) String() string {
	if s, ok := mnemonics[o]; ok {
		return s
	}
	return "?unknown?"
}

// OperandBytes returns the number of ROM bytes, beyond the opcode byte
// itself, that this instruction consumes as an immediate (0 for everything
// except the NUM family, spec §6.1). The legacy build's FPU opcode also
// carries a 4-byte immediate, which this method does not report (it returns
// 0 for FPU).
func (o Opcode) OperandBytes() int {
	switch o {
	case Num1:
		return 1
	case Num2:
		return 2
	case Num3:
		return 3
	case Num4:
		return 4
	default:
		return 0
	}
}
