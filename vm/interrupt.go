package vm

import "fmt"

// Interrupt is the value of the VM's INT register. Zero means the engine is
// runnable; any other value suspends it until the host clears it back to
// zero (see VM.Interrupt and spec §4.3).
type Interrupt uint32

// Engine faults. These are raised by the dispatch loop and the memory
// manager itself; the host never raises them directly.
const (
	IntNone             Interrupt = 0x00
	IntEndOfProgram     Interrupt = 0x01
	IntInvalidOperation Interrupt = 0x02
	IntInvalidJump      Interrupt = 0x03
	IntOutOfBounds      Interrupt = 0x04
	IntOutOfMemory      Interrupt = 0x05
	// 0x06..0x09 reserved for future engine faults.
)

// Host-defined cooperative interrupts recognized by the reference host
// (internal/hostio). A guest program raises one of these via the INT opcode
// to request a service and is resumed once the host clears INT back to 0.
const (
	IntArgument     Interrupt = 0x0A
	IntConsolePrint Interrupt = 0x0B
	IntConsoleInput Interrupt = 0x0C
	IntConsoleDebug Interrupt = 0x0D
)

var faultNames = map[Interrupt]string{
	IntNone:             "none",
	IntEndOfProgram:     "end of program",
	IntInvalidOperation: "invalid operation",
	IntInvalidJump:      "invalid jump",
	IntOutOfBounds:      "out of bounds",
	IntOutOfMemory:      "out of memory",
}

func (i Interrupt) String() string {
	if s, ok := faultNames[i]; ok {
		return s
	}
	if i >= IntArgument {
		return fmt.Sprintf("cooperative interrupt 0x%02X", uint32(i))
	}
	return fmt.Sprintf("reserved interrupt 0x%02X", uint32(i))
}

// IsFault reports whether i is one of the engine-detected faults
// (spec §4.3: codes END_OF_PROGRAM through OUT_OF_MEMORY).
func (i Interrupt) IsFault() bool {
	return i >= IntEndOfProgram && i <= IntOutOfMemory
}

// IsCooperative reports whether i was raised by the guest program via the
// INT opcode to request host service (spec §4.3: codes >= 0x0A).
func (i Interrupt) IsCooperative() bool {
	return i >= IntArgument
}

// Interrupt sets the INT register following the controller's set-discipline
// (spec §4.3): if INT is already non-zero and code is non-zero, the call is
// a no-op — first fault wins. Setting INT back to 0 is always allowed; it is
// the host's resume primitive.
func (m *VM) Interrupt(code Interrupt) {
	if m.int_ != 0 && code != 0 {
		return
	}
	m.int_ = code
}

// Int returns the current value of the INT register.
func (m *VM) Int() Interrupt {
	return m.int_
}

// Running reports whether the engine is runnable (INT == 0).
func (m *VM) Running() bool {
	return m.int_ == IntNone
}
