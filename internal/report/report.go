// Package report prints the abnormal-halt fault report in the exact format
// of the source's bot_vm_report: a bracketed fault name followed by raw
// uppercase hex register dump. This format is part of the external
// behavior contract and must never be wrapped in structured logging.
package report

import (
	"fmt"
	"io"

	"github.com/dice-systems/botvm/vm"
)

var faultLabels = map[vm.Interrupt]string{
	vm.IntInvalidOperation: "[INVALID OPERATION]",
	vm.IntInvalidJump:      "[JUMP TO INVALID ADDRESS]",
	vm.IntOutOfBounds:      "[ACCESS TO INVALID MEMORY]",
	vm.IntOutOfMemory:      "[OUT OF MEMORY]",
}

// Write prints m's current INT/PC/SP state to w, preceded by a bracketed
// description of the fault. Unrecognized interrupt values (including
// cooperative codes the host did not service) print
// "[UNHANDLED INTERRUPT]".
func Write(w io.Writer, m *vm.VM) {
	label, ok := faultLabels[m.Int()]
	if !ok {
		label = "[UNHANDLED INTERRUPT]"
	}
	fmt.Fprintln(w, label)
	fmt.Fprintf(w, "INT: %.8X\n", uint32(m.Int()))
	fmt.Fprintf(w, "PC:  %.8X\n", m.PC())
	fmt.Fprintf(w, "SP:  %.8X\n", m.SP())
}
