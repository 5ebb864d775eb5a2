package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_EmptyProgram(t *testing.T) {
	m := New()
	m.LoadBytes(nil)
	m.Run()
	assert.Equal(t, IntEndOfProgram, m.Int())
	assert.Equal(t, Word(0), m.PC())
	assert.Equal(t, Word(0), m.SP())
}

func TestRun_PushAndHalt(t *testing.T) {
	// NUM1 0x2A; NUM1 0x01; INT
	m := New()
	m.LoadBytes([]byte{0x11, 0x2A, 0x11, 0x01, 0x01})
	m.Run()

	assert.Equal(t, Interrupt(1), m.Int())
	assert.Equal(t, Word(1), m.SP())
	v, ok := m.ReadWord(0)
	require.True(t, ok)
	assert.Equal(t, Word(0x2A), v)
}

func TestRun_Add(t *testing.T) {
	// NUM1 3; NUM1 4; ADD
	m := New()
	m.LoadBytes([]byte{0x11, 0x03, 0x11, 0x04, 0x40})
	m.Run()

	assert.Equal(t, IntEndOfProgram, m.Int())
	assert.Equal(t, Word(1), m.SP())
	v, ok := m.ReadWord(0)
	require.True(t, ok)
	assert.Equal(t, Word(7), v)
}

func TestRun_BoundsFault_GetAfterPop(t *testing.T) {
	// NUM 0; GET
	m := New()
	m.LoadBytes([]byte{0x10, 0x33})
	m.Run()
	assert.Equal(t, IntOutOfBounds, m.Int())
}

func TestRun_InvalidJump(t *testing.T) {
	// NUM4 0xFFFFFFFF; JMP
	m := New()
	m.LoadBytes([]byte{0x14, 0xFF, 0xFF, 0xFF, 0xFF, 0x20})
	m.Run()
	assert.Equal(t, IntInvalidJump, m.Int())
	assert.Equal(t, Word(6), m.PC())
}

func TestStep_Mul_WidensTo64Bits(t *testing.T) {
	// NUM4 0xFFFFFFFF; NUM4 0x00000002; MUL
	m := New()
	rom := []byte{0x14, 0xFF, 0xFF, 0xFF, 0xFF, 0x14, 0x00, 0x00, 0x00, 0x02, 0x42}
	m.LoadBytes(rom)
	m.Step()
	m.Step()
	m.Step()

	require.True(t, m.Running())
	assert.Equal(t, Word(2), m.SP())

	hi, ok := m.ReadWord(0)
	require.True(t, ok)
	lo, ok := m.ReadWord(1)
	require.True(t, ok)

	wide := uint64(hi)<<32 | uint64(lo)
	assert.Equal(t, uint64(0xFFFFFFFF)*2, wide)
}

func TestStep_DivByZero_InvalidOperation(t *testing.T) {
	// NUM1 5; NUM 0 (pushes 0); DIV
	m := New()
	m.LoadBytes([]byte{0x11, 0x05, 0x10, 0x43})
	m.Run()
	assert.Equal(t, IntInvalidOperation, m.Int())
}

func TestStep_OversizedShift_ModuloWordWidth(t *testing.T) {
	// NUM1 1; NUM1 33; LSH -> shift count reduced mod 32, so shift by 1
	m := New()
	m.LoadBytes([]byte{0x11, 0x01, 0x11, 33, 0x54})
	m.Run()
	assert.Equal(t, IntEndOfProgram, m.Int())
	v, ok := m.ReadWord(0)
	require.True(t, ok)
	assert.Equal(t, Word(2), v)
}

func TestStep_Jmc_ValidatesAddressBeforeCondition(t *testing.T) {
	// push condition=0 (false), push address=0xFFFFFFFF, JMC
	m := New()
	rom := []byte{
		0x10,                   // NUM -> push 0 (condition)
		0x14, 0xFF, 0xFF, 0xFF, 0xFF, // NUM4 -> push address
		0x21, // JMC
	}
	m.LoadBytes(rom)
	m.Run()
	assert.Equal(t, IntInvalidJump, m.Int())
}

func TestStep_Pos_CapturesSPBeforePush(t *testing.T) {
	// NUM1 9 (SP=1); POS should push the pre-push SP value (1), not 2.
	m := New()
	m.LoadBytes([]byte{0x11, 0x09, 0x31})
	m.Step()
	m.Step()
	require.True(t, m.Running())
	assert.Equal(t, Word(2), m.SP())
	top, ok := m.ReadWord(1)
	require.True(t, ok)
	assert.Equal(t, Word(1), top)
}

func TestStep_UnknownOpcode_InvalidOperation(t *testing.T) {
	m := New()
	m.LoadBytes([]byte{0xFE})
	m.Run()
	assert.Equal(t, IntInvalidOperation, m.Int())
}

func TestStep_NoopWhenSuspended(t *testing.T) {
	m := New()
	m.LoadBytes([]byte{0x00, 0x00})
	m.Interrupt(IntOutOfBounds)
	m.Step()
	assert.Equal(t, Word(0), m.PC())
}
