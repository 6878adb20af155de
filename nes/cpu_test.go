package nes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestConsole seeds prog at org, points the reset vector at it and
// resets, leaving PC on the first byte of prog.
func newTestConsole(t *testing.T, org uint16, prog ...byte) *Console {
	t.Helper()
	c := NewConsole(nil)
	c.LoadProgram(prog, org)
	return c
}

func TestReset(t *testing.T) {
	c := NewConsole(nil)
	c.Write(0xFFFC, 0x34)
	c.Write(0xFFFD, 0x12)

	c.cpu.a, c.cpu.x, c.cpu.y = 1, 2, 3
	c.cpu.p = carry | zero | negative
	c.Reset()

	s := c.State()
	assert.Equal(t, uint16(0x1234), s.PC)
	assert.Equal(t, byte(0xFD), s.S)
	assert.Equal(t, byte(0), s.A)
	assert.Equal(t, byte(0), s.X)
	assert.Equal(t, byte(0), s.Y)
	assert.Equal(t, byte(0x24), s.P, "reset leaves only I and the always-on bit")
}

func TestADC(t *testing.T) {
	// the eight sign/carry combinations from
	// http://www.6502.org/tutorials/vflag.html
	tests := []struct {
		name     string
		a, m     byte
		carryIn  bool
		want     byte
		carry    bool
		overflow bool
	}{
		{name: "pos+pos", a: 0x50, m: 0x10, want: 0x60},
		{name: "pos+pos overflows", a: 0x50, m: 0x50, want: 0xA0, overflow: true},
		{name: "pos+neg", a: 0x50, m: 0x90, want: 0xE0},
		{name: "pos+neg carries", a: 0x50, m: 0xD0, want: 0x20, carry: true},
		{name: "neg+pos", a: 0xD0, m: 0x10, want: 0xE0},
		{name: "neg+pos carries", a: 0xD0, m: 0x50, want: 0x20, carry: true},
		{name: "neg+neg overflows", a: 0xD0, m: 0x90, want: 0x60, carry: true, overflow: true},
		{name: "neg+neg", a: 0xD0, m: 0xD0, want: 0xA0, carry: true},
		{name: "carry in", a: 0x00, m: 0x00, carryIn: true, want: 0x01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConsole(t, 0x0600, 0x69, tt.m) // ADC #m
			c.cpu.a = tt.a
			if tt.carryIn {
				c.cpu.p |= carry
			}

			require.NoError(t, c.Step())

			assert.Equal(t, tt.want, c.cpu.a)
			assert.Equal(t, tt.carry, c.cpu.p&carry > 0, "carry")
			assert.Equal(t, tt.overflow, c.cpu.p&overflow > 0, "overflow")
			assert.Equal(t, tt.want == 0, c.cpu.p&zero > 0, "zero")
			assert.Equal(t, tt.want&0x80 > 0, c.cpu.p&negative > 0, "negative")
			assert.Equal(t, uint16(0x0602), c.cpu.pc)
		})
	}
}

func TestADC_Scenario(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x69, 0x50) // ADC #$50
	c.cpu.a = 0x50

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0xA0), c.cpu.a)
	assert.True(t, c.cpu.p&negative > 0)
	assert.True(t, c.cpu.p&overflow > 0)
	assert.False(t, c.cpu.p&carry > 0)
	assert.False(t, c.cpu.p&zero > 0)
}

func TestSBC_Scenario(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0xE9, 0xF0) // SBC #$F0
	c.cpu.a = 0x50
	c.cpu.p |= carry

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x60), c.cpu.a)
	assert.False(t, c.cpu.p&negative > 0)
	assert.False(t, c.cpu.p&overflow > 0)
	assert.False(t, c.cpu.p&carry > 0)
	assert.False(t, c.cpu.p&zero > 0)
}

func TestSBC(t *testing.T) {
	tests := []struct {
		name     string
		a, m     byte
		want     byte
		carry    bool
		overflow bool
	}{
		{name: "borrow", a: 0x50, m: 0xF0, want: 0x60},
		{name: "borrow and overflow", a: 0x50, m: 0xB0, want: 0xA0, overflow: true},
		{name: "borrow across sign", a: 0x50, m: 0x70, want: 0xE0},
		{name: "no borrow", a: 0x50, m: 0x30, want: 0x20, carry: true},
		{name: "neg borrow", a: 0xD0, m: 0xF0, want: 0xE0},
		{name: "neg no borrow", a: 0xD0, m: 0xB0, want: 0x20, carry: true},
		{name: "neg overflow", a: 0xD0, m: 0x70, want: 0x60, carry: true, overflow: true},
		{name: "neg across sign", a: 0xD0, m: 0x30, want: 0xA0, carry: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConsole(t, 0x0600, 0xE9, tt.m) // SBC #m
			c.cpu.a = tt.a
			c.cpu.p |= carry

			require.NoError(t, c.Step())

			assert.Equal(t, tt.want, c.cpu.a)
			assert.Equal(t, tt.carry, c.cpu.p&carry > 0, "carry")
			assert.Equal(t, tt.overflow, c.cpu.p&overflow > 0, "overflow")
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name    string
		op      byte
		reg, m  byte
		carry   bool
		zero    bool
		negFlag bool
	}{
		{name: "CMP greater", op: 0xC9, reg: 0x40, m: 0x20, carry: true},
		{name: "CMP equal", op: 0xC9, reg: 0x40, m: 0x40, carry: true, zero: true},
		{name: "CMP less", op: 0xC9, reg: 0x20, m: 0x40, negFlag: true},
		{name: "CPX", op: 0xE0, reg: 0x10, m: 0x0F, carry: true},
		{name: "CPY", op: 0xC0, reg: 0x01, m: 0x02, negFlag: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConsole(t, 0x0600, tt.op, tt.m)
			switch tt.op {
			case 0xC9:
				c.cpu.a = tt.reg
			case 0xE0:
				c.cpu.x = tt.reg
			case 0xC0:
				c.cpu.y = tt.reg
			}

			require.NoError(t, c.Step())

			assert.Equal(t, tt.carry, c.cpu.p&carry > 0, "carry")
			assert.Equal(t, tt.zero, c.cpu.p&zero > 0, "zero")
			assert.Equal(t, tt.negFlag, c.cpu.p&negative > 0, "negative")
			assert.Equal(t, tt.reg, c.cpu.a|c.cpu.x|c.cpu.y, "compare must not store")
		})
	}
}

func TestBIT(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x24, 0x10) // BIT $10
	c.Write(0x0010, 0xC0)                      // N and V source bits set
	c.cpu.a = 0x3F

	require.NoError(t, c.Step())

	assert.True(t, c.cpu.p&zero > 0, "A AND M is zero")
	assert.True(t, c.cpu.p&negative > 0, "N copies bit 7 of M")
	assert.True(t, c.cpu.p&overflow > 0, "V copies bit 6 of M")
	assert.Equal(t, byte(0x3F), c.cpu.a, "A is not modified")
}

func TestIncDecRoundTrip(t *testing.T) {
	for _, x := range []byte{0x00, 0x01, 0x7F, 0x80, 0xFE, 0xFF} {
		c := newTestConsole(t, 0x0600, 0xE8, 0xCA) // INX, DEX
		c.cpu.x = x

		require.NoError(t, c.Step())
		assert.Equal(t, x+1, c.cpu.x)

		require.NoError(t, c.Step())
		assert.Equal(t, x, c.cpu.x)
		assert.Equal(t, x == 0, c.cpu.p&zero > 0)
		assert.Equal(t, x&0x80 > 0, c.cpu.p&negative > 0)
	}
}

func TestIncDecMemoryWraps(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0xE6, 0x10, 0xC6, 0x10, 0xC6, 0x10) // INC $10, DEC $10, DEC $10
	c.Write(0x0010, 0xFF)

	require.NoError(t, c.Step())
	assert.Equal(t, byte(0x00), c.Read(0x0010))
	assert.True(t, c.cpu.p&zero > 0)

	require.NoError(t, c.Step())
	assert.Equal(t, byte(0xFF), c.Read(0x0010))
	assert.True(t, c.cpu.p&negative > 0)

	require.NoError(t, c.Step())
	assert.Equal(t, byte(0xFE), c.Read(0x0010))
}

func TestShiftsAndRotates(t *testing.T) {
	tests := []struct {
		name     string
		op       byte
		a        byte
		carryIn  bool
		want     byte
		carryOut bool
	}{
		{name: "ASL", op: 0x0A, a: 0x81, want: 0x02, carryOut: true},
		{name: "LSR", op: 0x4A, a: 0x81, want: 0x40, carryOut: true},
		{name: "ROL", op: 0x2A, a: 0x80, carryIn: true, want: 0x01, carryOut: true},
		{name: "ROR", op: 0x6A, a: 0x01, carryIn: true, want: 0x80, carryOut: true},
		{name: "ROL no carry", op: 0x2A, a: 0x40, want: 0x80},
		{name: "ROR no carry", op: 0x6A, a: 0x02, want: 0x01},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConsole(t, 0x0600, tt.op)
			c.cpu.a = tt.a
			if tt.carryIn {
				c.cpu.p |= carry
			}

			require.NoError(t, c.Step())

			assert.Equal(t, tt.want, c.cpu.a)
			assert.Equal(t, tt.carryOut, c.cpu.p&carry > 0)
			assert.Equal(t, tt.want == 0, c.cpu.p&zero > 0)
			assert.Equal(t, tt.want&0x80 > 0, c.cpu.p&negative > 0)
		})
	}
}

func TestShiftMemoryForm(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x06, 0x10) // ASL $10
	c.Write(0x0010, 0xC0)

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x80), c.Read(0x0010))
	assert.True(t, c.cpu.p&carry > 0)
	assert.True(t, c.cpu.p&negative > 0)
}

// Nine rotates through the carry walk every bit through the 9-bit register
// and back home.
func TestRORNineTimesIsIdentity(t *testing.T) {
	prog := make([]byte, 9)
	for i := range prog {
		prog[i] = 0x6A // ROR A
	}

	for _, a := range []byte{0x00, 0x01, 0x5A, 0x80, 0xB7, 0xFF} {
		c := newTestConsole(t, 0x0600, prog...)
		c.cpu.a = a

		for range prog {
			require.NoError(t, c.Step())
		}

		assert.Equal(t, a, c.cpu.a)
		assert.False(t, c.cpu.p&carry > 0, "carry went in clear, must come out clear")
	}
}

func TestBranchTaken(t *testing.T) {
	c := newTestConsole(t, 0x1000, 0xF0, 0x10) // BEQ $10
	c.cpu.p |= zero

	require.NoError(t, c.Step())

	assert.Equal(t, uint16(0x1012), c.cpu.pc)
}

func TestBranchNotTaken(t *testing.T) {
	c := newTestConsole(t, 0x1000, 0xF0, 0x10) // BEQ $10, Z clear

	require.NoError(t, c.Step())

	assert.Equal(t, uint16(0x1002), c.cpu.pc)
}

func TestBranchBackwards(t *testing.T) {
	// 0x0600: NOP; 0x0601: BNE -3 -> back to the NOP
	c := newTestConsole(t, 0x0600, 0xEA, 0xD0, 0xFD)

	require.NoError(t, c.Step())
	require.NoError(t, c.Step())

	assert.Equal(t, uint16(0x0600), c.cpu.pc)
}

func TestBranchConditions(t *testing.T) {
	tests := []struct {
		op    byte
		flag  status
		taken bool // with the flag set
	}{
		{op: 0x90, flag: carry, taken: false},   // BCC
		{op: 0xB0, flag: carry, taken: true},    // BCS
		{op: 0xF0, flag: zero, taken: true},     // BEQ
		{op: 0xD0, flag: zero, taken: false},    // BNE
		{op: 0x30, flag: negative, taken: true},  // BMI
		{op: 0x10, flag: negative, taken: false}, // BPL
		{op: 0x50, flag: overflow, taken: false}, // BVC
		{op: 0x70, flag: overflow, taken: true},  // BVS
	}
	for _, tt := range tests {
		c := newTestConsole(t, 0x0600, tt.op, 0x08)
		c.cpu.p |= tt.flag

		require.NoError(t, c.Step())

		want := uint16(0x0602)
		if tt.taken {
			want += 0x08
		}
		assert.Equal(t, want, c.cpu.pc, "opcode 0x%02X", tt.op)
	}
}

func TestJMPAbsolute(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x4C, 0x00, 0x07) // JMP $0700

	require.NoError(t, c.Step())

	assert.Equal(t, uint16(0x0700), c.cpu.pc)
}

func TestJMPIndirectPageWrap(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x6C, 0xFF, 0x00) // JMP ($00FF)
	c.Write(0x00FF, 0xCD)
	c.Write(0x0000, 0x07) // high byte comes from $0000, not $0100
	c.Write(0x0100, 0x55) // the poisoned next-page byte

	require.NoError(t, c.Step())

	assert.Equal(t, uint16(0x07CD), c.cpu.pc)
}

func TestJSRAndRTS(t *testing.T) {
	c := newTestConsole(t, 0x1000, 0x20, 0x00, 0x80) // JSR $8000
	c.Write(0x8000, 0x60)                            // RTS
	c.cpu.s = 0xFF

	require.NoError(t, c.Step())

	assert.Equal(t, uint16(0x8000), c.cpu.pc)
	assert.Equal(t, byte(0xFD), c.cpu.s)
	assert.Equal(t, byte(0x10), c.Read(0x01FF), "return address high byte")
	assert.Equal(t, byte(0x02), c.Read(0x01FE), "return address low byte")

	require.NoError(t, c.Step())

	assert.Equal(t, uint16(0x1003), c.cpu.pc, "execution resumes after the JSR")
	assert.Equal(t, byte(0xFF), c.cpu.s, "stack pointer restored")
}

func TestRTI(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x40) // RTI
	c.cpu.s = 0xFC
	c.Write(0x01FD, byte(carry|negative|brk)) // pushed flags; brk must be dropped
	c.Write(0x01FE, 0x34)
	c.Write(0x01FF, 0x12)

	require.NoError(t, c.Step())

	assert.Equal(t, uint16(0x1234), c.cpu.pc, "execution resumes at the exact pulled address")
	assert.Equal(t, byte(0xFF), c.cpu.s)
	assert.True(t, c.cpu.p&carry > 0)
	assert.True(t, c.cpu.p&negative > 0)
	assert.True(t, c.cpu.p&unused > 0)
	assert.False(t, c.Break())
}

func TestPHAPLA(t *testing.T) {
	for _, a := range []byte{0x00, 0x42, 0x80} {
		c := newTestConsole(t, 0x0600, 0x48, 0xA9, 0x00, 0x68) // PHA, LDA #0, PLA
		c.cpu.a = a

		for range 3 {
			require.NoError(t, c.Step())
		}

		assert.Equal(t, a, c.cpu.a)
		assert.Equal(t, byte(0xFD), c.cpu.s)
		assert.Equal(t, a == 0, c.cpu.p&zero > 0)
		assert.Equal(t, a&0x80 > 0, c.cpu.p&negative > 0)
	}
}

func TestPHPPLP(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x08, 0x28) // PHP, PLP
	c.cpu.p = carry | decimal | negative

	require.NoError(t, c.Step())

	pushed := c.Read(0x01FD)
	assert.Equal(t, byte(carry|decimal|negative|brk|unused), pushed,
		"the pushed copy carries Break and bit 5 forced to 1")
	assert.False(t, c.cpu.p&brk > 0, "the in-core Break state is untouched")

	require.NoError(t, c.Step())

	assert.Equal(t, carry|decimal|negative|unused, c.cpu.p,
		"all flags restored except the Break phantom")
}

func TestStackOverflow(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x48) // PHA
	c.cpu.s = 0x00

	err := c.Step()
	require.Error(t, err)
	assert.ErrorIs(t, err, errStackOverflow)
	assert.Contains(t, err.Error(), "0x48")
	assert.Contains(t, err.Error(), "0x0600")
}

func TestStackUnderflow(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x68) // PLA
	c.cpu.s = 0xFF

	err := c.Step()
	require.Error(t, err)
	assert.ErrorIs(t, err, errStackUnderflow)
}

func TestLoadsAndStores(t *testing.T) {
	c := newTestConsole(t, 0x0600,
		0xA9, 0x7F, // LDA #$7F
		0x85, 0x21, // STA $21
		0xA2, 0x80, // LDX #$80
		0x86, 0x22, // STX $22
		0xA0, 0x00, // LDY #$00
		0x84, 0x23, // STY $23
	)

	for range 6 {
		require.NoError(t, c.Step())
	}

	assert.Equal(t, byte(0x7F), c.Read(0x0021))
	assert.Equal(t, byte(0x80), c.Read(0x0022))
	assert.Equal(t, byte(0x00), c.Read(0x0023))
	assert.True(t, c.cpu.p&zero > 0, "LDY #0 was the last load")
}

func TestZeroPageIndexedWraps(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0xB5, 0xFF) // LDA $FF,X
	c.cpu.x = 0x02
	c.Write(0x0001, 0x42)

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x42), c.cpu.a, "the sum stays in page zero")
}

func TestAbsoluteIndexedWraps(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0xBD, 0xFF, 0xFF) // LDA $FFFF,X
	c.cpu.x = 0x02
	c.Write(0x0001, 0x42)

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x42), c.cpu.a, "the 16-bit sum wraps")
}

func TestIndirectXPointerWraps(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0xA1, 0xFE) // LDA ($FE,X)
	c.cpu.x = 0x01                             // pointer lands on $FF
	c.Write(0x00FF, 0x34)
	c.Write(0x0000, 0x02) // high byte wraps to $00
	c.Write(0x0234, 0x99)

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x99), c.cpu.a)
}

func TestIndirectYPointerWraps(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0xB1, 0xFF) // LDA ($FF),Y
	c.cpu.y = 0x02
	c.Write(0x00FF, 0x30)
	c.Write(0x0000, 0x02) // high byte from $00, not $100
	c.Write(0x0232, 0x77)

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x77), c.cpu.a)
}

func TestTransfers(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0xAA, 0xA8, 0xBA, 0x8A, 0x98, 0x9A)
	c.cpu.a = 0x80

	require.NoError(t, c.Step()) // TAX
	assert.Equal(t, byte(0x80), c.cpu.x)
	assert.True(t, c.cpu.p&negative > 0)

	require.NoError(t, c.Step()) // TAY
	assert.Equal(t, byte(0x80), c.cpu.y)

	require.NoError(t, c.Step()) // TSX
	assert.Equal(t, byte(0xFD), c.cpu.x)

	require.NoError(t, c.Step()) // TXA
	assert.Equal(t, byte(0xFD), c.cpu.a)

	require.NoError(t, c.Step()) // TYA
	assert.Equal(t, byte(0x80), c.cpu.a)

	p := c.cpu.p
	require.NoError(t, c.Step()) // TXS
	assert.Equal(t, byte(0xFD), c.cpu.s)
	assert.Equal(t, p, c.cpu.p, "TXS updates no flags")
}

func TestBRKRaisesSignalOnly(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x00, 0xEA) // BRK, NOP

	require.NoError(t, c.Step())

	assert.True(t, c.Break())
	assert.Equal(t, byte(0xFD), c.cpu.s, "no state is pushed")
	assert.False(t, c.cpu.p&brk > 0, "the driver clears the bit between steps")

	require.NoError(t, c.Step())
	assert.False(t, c.Break(), "the signal is an edge, not a level")
}

func TestDecimalFlagIsInert(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0xF8, 0x69, 0x19, 0xD8) // SED, ADC #$19, CLD
	c.cpu.a = 0x19

	require.NoError(t, c.Step())
	assert.True(t, c.cpu.p&decimal > 0)

	require.NoError(t, c.Step())
	assert.Equal(t, byte(0x32), c.cpu.a, "binary sum, not BCD")

	require.NoError(t, c.Step())
	assert.False(t, c.cpu.p&decimal > 0)
}

func TestKILHaltsForGood(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x02, 0xEA)

	err := c.Step()
	assert.ErrorIs(t, err, ErrHalted)
	pc := c.cpu.pc

	err = c.Step()
	assert.ErrorIs(t, err, ErrHalted)
	assert.Equal(t, pc, c.cpu.pc, "a jammed cpu goes nowhere")

	c.Reset()
	c.SetPC(0x0601)
	require.NoError(t, c.Step(), "reset releases the jam")
}

func TestIllegalNOPsConsumeOperands(t *testing.T) {
	tests := []struct {
		op   byte
		size uint16
	}{
		{op: 0x1A, size: 1},
		{op: 0x80, size: 2}, // immediate
		{op: 0x04, size: 2}, // zero page
		{op: 0x14, size: 2}, // zero page,X
		{op: 0x0C, size: 3}, // absolute
		{op: 0x1C, size: 3}, // absolute,X
	}
	for _, tt := range tests {
		c := newTestConsole(t, 0x0600, tt.op, 0x10, 0x02, 0xEA)
		before := c.State()

		require.NoError(t, c.Step())

		after := c.State()
		assert.Equal(t, uint16(0x0600)+tt.size, after.PC, "opcode 0x%02X", tt.op)
		assert.Equal(t, before.A, after.A)
		assert.Equal(t, before.P, after.P)
		assert.Equal(t, before.S, after.S)
	}
}

func TestLAX(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0xA7, 0x10) // LAX $10
	c.Write(0x0010, 0x80)

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x80), c.cpu.a)
	assert.Equal(t, byte(0x80), c.cpu.x)
	assert.True(t, c.cpu.p&negative > 0)
}

func TestSAX(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x87, 0x10) // SAX $10
	c.cpu.a = 0xF0
	c.cpu.x = 0x33
	p := c.cpu.p

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x30), c.Read(0x0010))
	assert.Equal(t, p, c.cpu.p, "SAX updates no flags")
}

func TestDCP(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0xC7, 0x10) // DCP $10
	c.Write(0x0010, 0x41)
	c.cpu.a = 0x40

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x40), c.Read(0x0010), "target decremented")
	assert.True(t, c.cpu.p&zero > 0, "then compared against A")
	assert.True(t, c.cpu.p&carry > 0)
}

func TestISC(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0xE7, 0x10) // ISC $10
	c.Write(0x0010, 0x0F)
	c.cpu.a = 0x20
	c.cpu.p |= carry

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x10), c.Read(0x0010), "target incremented")
	assert.Equal(t, byte(0x10), c.cpu.a, "then subtracted from A")
	assert.True(t, c.cpu.p&carry > 0)
}

func TestSLO(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x07, 0x10) // SLO $10
	c.Write(0x0010, 0xC1)
	c.cpu.a = 0x02

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x82), c.Read(0x0010))
	assert.Equal(t, byte(0x82), c.cpu.a)
	assert.True(t, c.cpu.p&carry > 0)
	assert.True(t, c.cpu.p&negative > 0)
}

func TestSRE(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x47, 0x10) // SRE $10
	c.Write(0x0010, 0x03)
	c.cpu.a = 0xFF

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x01), c.Read(0x0010))
	assert.Equal(t, byte(0xFE), c.cpu.a)
	assert.True(t, c.cpu.p&carry > 0)
}

func TestRLA(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x27, 0x10) // RLA $10
	c.Write(0x0010, 0x80)
	c.cpu.a = 0x03
	c.cpu.p |= carry

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x01), c.Read(0x0010), "rotate pulled the old carry in")
	assert.Equal(t, byte(0x01), c.cpu.a)
	assert.True(t, c.cpu.p&carry > 0, "bit 7 went out")
}

func TestRRA(t *testing.T) {
	c := newTestConsole(t, 0x0600, 0x67, 0x10) // RRA $10
	c.Write(0x0010, 0x03)
	c.cpu.a = 0x10

	require.NoError(t, c.Step())

	assert.Equal(t, byte(0x01), c.Read(0x0010))
	assert.Equal(t, byte(0x12), c.cpu.a, "A + rotated value + shifted-out carry")
	assert.False(t, c.cpu.p&carry > 0)
}

func TestSBCAlias(t *testing.T) {
	for _, op := range []byte{0xE9, 0xEB} {
		c := newTestConsole(t, 0x0600, op, 0x01)
		c.cpu.a = 0x10
		c.cpu.p |= carry

		require.NoError(t, c.Step())

		assert.Equal(t, byte(0x0F), c.cpu.a, "opcode 0x%02X", op)
		assert.True(t, c.cpu.p&carry > 0)
	}
}

func TestLogicalOps(t *testing.T) {
	tests := []struct {
		name string
		op   byte
		a, m byte
		want byte
	}{
		{name: "AND", op: 0x29, a: 0xCC, m: 0xAA, want: 0x88},
		{name: "ORA", op: 0x09, a: 0x0C, m: 0xA0, want: 0xAC},
		{name: "EOR", op: 0x49, a: 0xFF, m: 0x0F, want: 0xF0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestConsole(t, 0x0600, tt.op, tt.m)
			c.cpu.a = tt.a

			require.NoError(t, c.Step())

			assert.Equal(t, tt.want, c.cpu.a)
			assert.Equal(t, tt.want == 0, c.cpu.p&zero > 0)
			assert.Equal(t, tt.want&0x80 > 0, c.cpu.p&negative > 0)
		})
	}
}
