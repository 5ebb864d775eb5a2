// Package hostio implements the four cooperative interrupt handlers of the
// host-I/O ping-pong protocol: ARGUMENT, CONSOLE_PRINT, CONSOLE_INPUT, and
// CONSOLE_DEBUG. Each handler clears INT back to zero before doing its
// work, exactly mirroring the source's bot_vm_io_run: the engine is
// considered "resumed" the instant the host has accepted responsibility
// for the request, not after the request is serviced.
package hostio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/dice-systems/botvm/vm"
)

// Host drives the cooperative side of the handshake: it owns the console
// streams and the one-shot ARGUMENT payload a guest program can request.
type Host struct {
	Out      io.Writer
	In       *bufio.Reader
	Argument string
	Log      *zap.Logger

	argumentConsumed bool
}

// NewHost builds a Host wired to stdout/stdin-shaped streams. log may be
// nil, in which case events are not recorded.
func NewHost(out io.Writer, in io.Reader, argument string, log *zap.Logger) *Host {
	if log == nil {
		log = zap.NewNop()
	}
	return &Host{Out: out, In: bufio.NewReader(in), Argument: argument, Log: log}
}

// Service inspects m's current interrupt and, if it is one of the four
// cooperative codes, handles it and clears INT. It is a no-op for any other
// interrupt value (including IntNone and every engine fault), matching the
// source's switch-with-no-default behavior.
func (h *Host) Service(m *vm.VM) {
	switch m.Int() {
	case vm.IntArgument:
		h.argument(m)
	case vm.IntConsolePrint:
		h.consolePrint(m)
	case vm.IntConsoleInput:
		h.consoleInput(m)
	case vm.IntConsoleDebug:
		h.consoleDebug(m)
	}
}

func (h *Host) argument(m *vm.VM) {
	m.Interrupt(vm.IntNone)
	h.Log.Debug("argument requested", zap.Bool("consumed", h.argumentConsumed))
	if h.argumentConsumed {
		return
	}
	h.argumentConsumed = true
	if h.Argument == "" {
		return
	}
	m.PushString([]byte(h.Argument))
	m.PushWord(uint32(len(h.Argument)))
}

// consolePrint pops the address of a length-prefixed string (the length
// word at address, the string bytes packed starting at address+1) and
// writes it to Out.
func (h *Host) consolePrint(m *vm.VM) {
	m.Interrupt(vm.IntNone)

	addr, ok := m.PopWord()
	if !ok {
		return
	}
	length, ok := m.ReadWord(addr)
	if !ok {
		return
	}
	data, ok := m.UnpackString(addr+1, length)
	if !ok {
		return
	}

	fmt.Fprint(h.Out, string(data))
	h.Log.Debug("console print", zap.Uint32("length", length))
}

// consoleInput pops a max length, reads one line from In (truncated to
// maxLength-1 bytes, matching fgets semantics in the source), and pushes
// back length followed by the string bytes.
func (h *Host) consoleInput(m *vm.VM) {
	m.Interrupt(vm.IntNone)

	maxLength, ok := m.PopWord()
	if !ok || maxLength == 0 {
		m.PushWord(0)
		return
	}

	line, _ := h.In.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if limit := int(maxLength) - 1; limit >= 0 && len(line) > limit {
		line = line[:limit]
	}

	m.PushWord(uint32(len(line)))
	m.PushString([]byte(line))
	h.Log.Debug("console input", zap.Int("length", len(line)))
}

func (h *Host) consoleDebug(m *vm.VM) {
	m.Interrupt(vm.IntNone)

	value, ok := m.PopWord()
	if !ok {
		return
	}
	fmt.Fprint(h.Out, value)
	h.Log.Debug("console debug", zap.Uint32("value", value))
}
