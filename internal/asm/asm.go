// Package asm is a small two-pass assembler for the ROM wire format: it
// lets a human write "num4 loop / jmp" instead of hand-packed hex, the
// way the teacher's compile.go/parse.go let GVM programs be written as
// mnemonics-plus-labels instead of raw Instruction structs. Label
// resolution and escape-sequence handling are adapted from that approach;
// everything downstream of it (byte widths, opcode set) follows this ISA's
// wire format instead.
package asm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dice-systems/botvm/vm"
)

var commentPattern = regexp.MustCompile(`//.*`)

var escapeSeqReplacements = map[string]string{
	`\a`:  "\a",
	`\b`:  "\b",
	`\t`:  "\t",
	`\n`:  "\n",
	`\r`:  "\r",
	`\f`:  "\f",
	`\v`:  "\v",
	`\"`:  "\"",
	`\\`:  `\`,
}

func unescape(s string) string {
	for orig, rep := range escapeSeqReplacements {
		s = strings.ReplaceAll(s, orig, rep)
	}
	return s
}

type statement struct {
	label   string // not set: label lines go to the labels map, not to a statement
	op      vm.Opcode
	hasOp   bool
	operand string // raw operand text, resolved in the second pass
	size    int    // opcode(1) + operand width
}

// Assemble compiles source text into a ROM byte sequence. The syntax is one
// statement per line: "label:" declares a label at the current address;
// otherwise a line is "mnemonic" or "mnemonic operand", where operand is a
// decimal or 0x-hex integer, a 'c' character literal, or a label name
// (resolved to the label's ROM address). Only the num1..num4 mnemonics take
// an operand; jmp/jmc take their address from the stack, so a label is
// pushed with e.g. "num4 loop" before "jmp". "//" starts a line comment.
func Assemble(source string) ([]byte, error) {
	lines := strings.Split(source, "\n")

	labels := map[string]uint32{}
	statements := make([]statement, 0, len(lines))
	addr := uint32(0)

	for lineNo, raw := range lines {
		line := strings.TrimSpace(commentPattern.ReplaceAllString(raw, ""))
		if line == "" {
			continue
		}

		if strings.HasSuffix(line, ":") {
			name := strings.TrimSuffix(line, ":")
			if _, dup := labels[name]; dup {
				return nil, fmt.Errorf("asm:%d: duplicate label %q", lineNo+1, name)
			}
			labels[name] = addr
			continue
		}

		fields := strings.SplitN(line, " ", 2)
		mnemonic := strings.ToLower(fields[0])
		op, ok := vm.Mnemonics[mnemonic]
		if !ok {
			return nil, fmt.Errorf("asm:%d: unknown mnemonic %q", lineNo+1, mnemonic)
		}

		st := statement{op: op, size: 1 + op.OperandBytes()}
		if len(fields) == 2 {
			st.hasOp = true
			st.operand = unescape(strings.TrimSpace(fields[1]))
		}
		if st.hasOp && op.OperandBytes() == 0 {
			return nil, fmt.Errorf("asm:%d: %s takes no operand", lineNo+1, mnemonic)
		}
		if !st.hasOp && op.OperandBytes() > 0 {
			return nil, fmt.Errorf("asm:%d: %s requires an operand", lineNo+1, mnemonic)
		}

		statements = append(statements, st)
		addr += uint32(st.size)
	}

	out := make([]byte, 0, addr)
	for i, st := range statements {
		out = append(out, byte(st.op))
		if st.size == 1 {
			continue
		}

		value, err := resolveOperand(st.operand, labels)
		if err != nil {
			return nil, fmt.Errorf("statement %d (%s): %w", i, st.op, err)
		}

		width := st.size - 1
		for b := width - 1; b >= 0; b-- {
			out = append(out, byte(value>>(8*uint(b))))
		}
	}

	return out, nil
}

func resolveOperand(text string, labels map[string]uint32) (uint32, error) {
	if addr, ok := labels[text]; ok {
		return addr, nil
	}
	if strings.HasPrefix(text, "'") && strings.HasSuffix(text, "'") && len(text) >= 3 {
		runes := []rune(text[1 : len(text)-1])
		if len(runes) != 1 {
			return 0, fmt.Errorf("character literal %q does not hold exactly one rune", text)
		}
		return uint32(runes[0]), nil
	}
	base := 10
	if strings.HasPrefix(text, "0x") || strings.HasPrefix(text, "0X") {
		base = 16
		text = text[2:]
	}
	v, err := strconv.ParseUint(text, base, 32)
	if err != nil {
		return 0, fmt.Errorf("operand %q is neither a known label nor a number: %w", text, err)
	}
	return uint32(v), nil
}
