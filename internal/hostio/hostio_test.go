package hostio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dice-systems/botvm/vm"
)

// buildPrintableString lays out a length-prefixed string the way the
// CONSOLE_PRINT protocol expects: mem[0] holds the byte length, the packed
// string bytes start at mem[1].
func buildPrintableString(t *testing.T, m *vm.VM, s string) {
	t.Helper()
	words := (uint32(len(s)) + 3) / 4
	m.Hop(1 + words)
	require.True(t, m.WriteWord(0, uint32(len(s))))
	require.True(t, m.PackString(1, []byte(s)))
}

func TestConsolePrint_RoundTrip(t *testing.T) {
	m := vm.New()
	buildPrintableString(t, m, "hello")
	require.True(t, m.PushWord(0)) // address argument for CONSOLE_PRINT
	m.Interrupt(vm.IntConsolePrint)

	var out bytes.Buffer
	host := NewHost(&out, strings.NewReader(""), "", zap.NewNop())
	host.Service(m)

	assert.Equal(t, "hello", out.String())
	assert.True(t, m.Running())
}

func TestConsoleDebug_PrintsDecimal(t *testing.T) {
	m := vm.New()
	require.True(t, m.PushWord(42))
	m.Interrupt(vm.IntConsoleDebug)

	var out bytes.Buffer
	host := NewHost(&out, strings.NewReader(""), "", zap.NewNop())
	host.Service(m)

	assert.Equal(t, "42", out.String())
	assert.True(t, m.Running())
}

func TestConsoleInput_PushesLengthThenString(t *testing.T) {
	m := vm.New()
	require.True(t, m.PushWord(16))
	m.Interrupt(vm.IntConsoleInput)

	var out bytes.Buffer
	host := NewHost(&out, strings.NewReader("hi\n"), "", zap.NewNop())
	host.Service(m)

	require.True(t, m.Running())
	data, ok := m.PopString(2)
	require.True(t, ok)
	assert.Equal(t, "hi", string(data))

	length, ok := m.PopWord()
	require.True(t, ok)
	assert.Equal(t, vm.Word(2), length)
}

func TestArgument_OneShotPayload(t *testing.T) {
	m := vm.New()
	m.Interrupt(vm.IntArgument)

	host := NewHost(&bytes.Buffer{}, strings.NewReader(""), "seed", zap.NewNop())
	host.Service(m)

	require.True(t, m.Running())
	length, ok := m.PopWord()
	require.True(t, ok)
	assert.Equal(t, vm.Word(4), length)
	data, ok := m.PopString(4)
	require.True(t, ok)
	assert.Equal(t, "seed", string(data))

	// Second request within the same session is a no-op: no payload pushed.
	m.Interrupt(vm.IntArgument)
	host.Service(m)
	assert.Equal(t, vm.Word(0), m.SP())
}

func TestService_IgnoresEngineFaults(t *testing.T) {
	m := vm.New()
	m.Interrupt(vm.IntOutOfBounds)

	host := NewHost(&bytes.Buffer{}, strings.NewReader(""), "", zap.NewNop())
	host.Service(m)

	assert.Equal(t, vm.IntOutOfBounds, m.Int())
}
