package nes

import (
	"errors"
	"fmt"
	"io"
)

const (
	nmiAddr   = uint16(0xFFFA)
	resetAddr = uint16(0xFFFC)
	irqAddr   = uint16(0xFFFE)

	stackHi = 0x0100
)

var (
	errInvalidOpcode  = errors.New("nes: invalid opcode")
	errStackOverflow  = errors.New("nes: stack overflow")
	errStackUnderflow = errors.New("nes: stack underflow")

	// ErrHalted is returned by every step after a JAM opcode stopped the
	// processor. Only a reset clears the condition.
	ErrHalted = errors.New("nes: cpu halted by a jam opcode")
)

// status are all the flags that represent the processor status.
type status byte

const (
	// Carry flag.
	//
	// After ADC, this is the carry result of the addition.
	// After SBC or CMP, this flag will be set if no borrow was the result, or
	// alternatively a "greater than or equal" result.
	// After a shift instruction (ASL, LSR, ROL, ROR), this contains the bit
	// that was shifted out.
	//
	// Increment and decrement instructions do not affect the carry flag.
	// Can be set or cleared directly with SEC, CLC.
	carry status = 1 << iota

	// Zero flag is set when the result of an instruction is zero.
	zero

	// InterruptDisable flag.
	//
	// When set, all interrupts except the NMI are inhibited.
	// Can be set or cleared directly with SEI, CLI.
	// Reset leaves it set.
	interruptDisable

	// Decimal flag. On the 2A03 this flag has no effect: SED and CLD toggle
	// it, but ADC and SBC always work in binary.
	decimal

	// Break flag.
	//
	// While there are only six flags in the processor status register within
	// the cpu, when transferred to the stack, there are two additional bits.
	//
	// These do not represent a register that can hold a value but can be used
	// to distinguish how the flags were pushed.
	//
	// In the byte pushed, Break is 1 if from an instruction (PHP or BRK) or 0
	// if from an interrupt line being pulled low.
	//
	// PLP and RTI pull a byte from the stack and set all the flags. They
	// ignore Unused and Break.
	//
	// In this core the bit doubles as the BRK signal to the host: the BRK
	// executor raises it, the driver reports it and clears it between steps.
	brk

	// Unused flag. Always reads as 1 in the packed byte.
	unused

	// Overflow flag.
	//
	// ADC and SBC will set this flag if the signed result would be
	// invalid http://www.6502.org/tutorials/vflag.html, necessary for making
	// signed comparisons http://www.6502.org/tutorials/compare_beyond.html#5.
	//
	// BIT will load bit 6 of the addressed value directly into the V flag.
	// Can be cleared directly with CLV.
	// There is no corresponding set instruction.
	overflow

	// Negative flag.
	//
	// After most instructions that have a value result, this flag will
	// contain bit 7 of that result.
	// BIT will load bit 7 of the addressed value directly into the N flag.
	negative
)

type cpu struct {
	// A, along with the arithmetic logic unit (ALU), supports using the
	// status register for carrying, overflow detection, and so on.
	a byte

	// X and Y are used for several addressing modes. They can be used as
	// loop counters easily, using INC/DEC and branch instructions.
	//
	// Not being the accumulator, they have limited addressing modes
	// themselves when loading and saving.
	x, y byte

	// The program counter PC supports 65536 direct (unbanked) memory
	// locations. While an instruction executes it rests on the byte most
	// recently consumed: the driver reads the opcode without advancing it,
	// the addressing resolver steps it across the operand bytes, and the
	// driver advances it one final time after the executor returns. An
	// executor that assigns PC outright therefore stores target-1 so the
	// trailing increment lands on the target.
	pc uint16

	// The stack pointer holds the page-1 offset of the next free slot.
	// Pushing writes and then decrements, pulling increments and then
	// reads. A push at 0x00 or a pull at 0xFF is a fault, not a wrap.
	s byte

	// The Status Register has 6 bits used by the ALU but is byte-wide.
	// PHP, PLP, arithmetic, testing, and branch instructions can access
	// this register.
	p status

	// halted is latched by the JAM opcodes; only reset releases it.
	halted bool

	// fault records a stack fault raised mid-instruction. Checking it once
	// per step keeps the executor signatures uniform.
	fault error

	debug io.Writer
}

func newCpu(debug io.Writer) *cpu {
	return &cpu{
		debug: debug,
		p:     interruptDisable | unused,
		s:     0xFD,
		pc:    resetAddr,
	}
}

// reset puts the processor in its power-on state and seeds PC from the
// little-endian reset vector at 0xFFFC. The stack pointer lands on 0xFD,
// matching hardware after its three phantom pushes, which is also what
// nestest-style traces expect.
func (c *cpu) reset(bus *sysBus) {
	c.a = 0
	c.x = 0
	c.y = 0
	c.s = 0xFD
	c.p = interruptDisable | unused

	c.halted = false
	c.fault = nil

	c.pc = bus.readWord(resetAddr, false)
}

// execute runs a single fetch/decode/execute step and reports any fatal
// condition: an opcode the dispatcher has no executor for, a stack fault, or
// a latched halt. The failing opcode and program counter ride along in the
// error.
func (c *cpu) execute(bus *sysBus) error {
	if c.halted {
		return ErrHalted
	}

	opPC := c.pc
	opCode := bus.read(c.pc)
	inst := instructions[opCode]

	if c.debug != nil {
		disassemble(c.debug, bus, opPC, c.a, c.x, c.y, byte(c.p|unused), c.s, inst)
	}

	addr := c.resolveAddress(bus, inst.Mode)

	switch opCode {
	case 0x04, 0x0C, 0x14, 0x1A, 0x1C, 0x34, 0x3A, 0x3C, 0x44, 0x54, 0x5A,
		0x5C, 0x64, 0x74, 0x7A, 0x7C, 0x80, 0x82, 0x89, 0xC2, 0xD4, 0xDA,
		0xDC, 0xE2, 0xEA, 0xF4, 0xFA, 0xFC:
		c.nop(bus, inst.Mode, addr)
	case 0x61, 0x65, 0x69, 0x6D, 0x71, 0x75, 0x79, 0x7D:
		c.adc(bus, inst.Mode, addr)
	case 0x93, 0x9F:
		c.ahx(bus, inst.Mode, addr)
	case 0x4B:
		c.alr(bus, inst.Mode, addr)
	case 0x0B, 0x2B:
		c.anc(bus, inst.Mode, addr)
	case 0x21, 0x25, 0x29, 0x2D, 0x31, 0x35, 0x39, 0x3D:
		c.and(bus, inst.Mode, addr)
	case 0x6B:
		c.arr(bus, inst.Mode, addr)
	case 0x06, 0x0A, 0x0E, 0x16, 0x1E:
		c.asl(bus, inst.Mode, addr)
	case 0xCB:
		c.axs(bus, inst.Mode, addr)
	case 0x90:
		c.bcc(bus, inst.Mode, addr)
	case 0xB0:
		c.bcs(bus, inst.Mode, addr)
	case 0xF0:
		c.beq(bus, inst.Mode, addr)
	case 0x24, 0x2C:
		c.bit(bus, inst.Mode, addr)
	case 0x30:
		c.bmi(bus, inst.Mode, addr)
	case 0xD0:
		c.bne(bus, inst.Mode, addr)
	case 0x10:
		c.bpl(bus, inst.Mode, addr)
	case 0x00:
		c.brk(bus, inst.Mode, addr)
	case 0x50:
		c.bvc(bus, inst.Mode, addr)
	case 0x70:
		c.bvs(bus, inst.Mode, addr)
	case 0x18:
		c.clc(bus, inst.Mode, addr)
	case 0xD8:
		c.cld(bus, inst.Mode, addr)
	case 0x58:
		c.cli(bus, inst.Mode, addr)
	case 0xB8:
		c.clv(bus, inst.Mode, addr)
	case 0xC1, 0xC5, 0xC9, 0xCD, 0xD1, 0xD5, 0xD9, 0xDD:
		c.cmp(bus, inst.Mode, addr)
	case 0xE0, 0xE4, 0xEC:
		c.cpx(bus, inst.Mode, addr)
	case 0xC0, 0xC4, 0xCC:
		c.cpy(bus, inst.Mode, addr)
	case 0xC3, 0xC7, 0xCF, 0xD3, 0xD7, 0xDB, 0xDF:
		c.dcp(bus, inst.Mode, addr)
	case 0xC6, 0xCE, 0xD6, 0xDE:
		c.dec(bus, inst.Mode, addr)
	case 0xCA:
		c.dex(bus, inst.Mode, addr)
	case 0x88:
		c.dey(bus, inst.Mode, addr)
	case 0x41, 0x45, 0x49, 0x4D, 0x51, 0x55, 0x59, 0x5D:
		c.eor(bus, inst.Mode, addr)
	case 0xE6, 0xEE, 0xF6, 0xFE:
		c.inc(bus, inst.Mode, addr)
	case 0xE8:
		c.inx(bus, inst.Mode, addr)
	case 0xC8:
		c.iny(bus, inst.Mode, addr)
	case 0xE3, 0xE7, 0xEF, 0xF3, 0xF7, 0xFB, 0xFF:
		c.isc(bus, inst.Mode, addr)
	case 0x4C, 0x6C:
		c.jmp(bus, inst.Mode, addr)
	case 0x20:
		c.jsr(bus, inst.Mode, addr)
	case 0x02, 0x12, 0x22, 0x32, 0x42, 0x52, 0x62, 0x72, 0x92, 0xB2, 0xD2, 0xF2:
		c.kil(bus, inst.Mode, addr)
	case 0xBB:
		c.las(bus, inst.Mode, addr)
	case 0xA3, 0xA7, 0xAB, 0xAF, 0xB3, 0xB7, 0xBF:
		c.lax(bus, inst.Mode, addr)
	case 0xA1, 0xA5, 0xA9, 0xAD, 0xB1, 0xB5, 0xB9, 0xBD:
		c.lda(bus, inst.Mode, addr)
	case 0xA2, 0xA6, 0xAE, 0xB6, 0xBE:
		c.ldx(bus, inst.Mode, addr)
	case 0xA0, 0xA4, 0xAC, 0xB4, 0xBC:
		c.ldy(bus, inst.Mode, addr)
	case 0x46, 0x4A, 0x4E, 0x56, 0x5E:
		c.lsr(bus, inst.Mode, addr)
	case 0x01, 0x05, 0x09, 0x0D, 0x11, 0x15, 0x19, 0x1D:
		c.ora(bus, inst.Mode, addr)
	case 0x48:
		c.pha(bus, inst.Mode, addr)
	case 0x08:
		c.php(bus, inst.Mode, addr)
	case 0x68:
		c.pla(bus, inst.Mode, addr)
	case 0x28:
		c.plp(bus, inst.Mode, addr)
	case 0x23, 0x27, 0x2F, 0x33, 0x37, 0x3B, 0x3F:
		c.rla(bus, inst.Mode, addr)
	case 0x26, 0x2A, 0x2E, 0x36, 0x3E:
		c.rol(bus, inst.Mode, addr)
	case 0x66, 0x6A, 0x6E, 0x76, 0x7E:
		c.ror(bus, inst.Mode, addr)
	case 0x63, 0x67, 0x6F, 0x73, 0x77, 0x7B, 0x7F:
		c.rra(bus, inst.Mode, addr)
	case 0x40:
		c.rti(bus, inst.Mode, addr)
	case 0x60:
		c.rts(bus, inst.Mode, addr)
	case 0x83, 0x87, 0x8F, 0x97:
		c.sax(bus, inst.Mode, addr)
	case 0xE1, 0xE5, 0xE9, 0xEB, 0xED, 0xF1, 0xF5, 0xF9, 0xFD:
		c.sbc(bus, inst.Mode, addr)
	case 0x38:
		c.sec(bus, inst.Mode, addr)
	case 0xF8:
		c.sed(bus, inst.Mode, addr)
	case 0x78:
		c.sei(bus, inst.Mode, addr)
	case 0x9E:
		c.shx(bus, inst.Mode, addr)
	case 0x9C:
		c.shy(bus, inst.Mode, addr)
	case 0x03, 0x07, 0x0F, 0x13, 0x17, 0x1B, 0x1F:
		c.slo(bus, inst.Mode, addr)
	case 0x43, 0x47, 0x4F, 0x53, 0x57, 0x5B, 0x5F:
		c.sre(bus, inst.Mode, addr)
	case 0x81, 0x85, 0x8D, 0x91, 0x95, 0x99, 0x9D:
		c.sta(bus, inst.Mode, addr)
	case 0x86, 0x8E, 0x96:
		c.stx(bus, inst.Mode, addr)
	case 0x84, 0x8C, 0x94:
		c.sty(bus, inst.Mode, addr)
	case 0x9B:
		c.tas(bus, inst.Mode, addr)
	case 0xAA:
		c.tax(bus, inst.Mode, addr)
	case 0xA8:
		c.tay(bus, inst.Mode, addr)
	case 0xBA:
		c.tsx(bus, inst.Mode, addr)
	case 0x8A:
		c.txa(bus, inst.Mode, addr)
	case 0x9A:
		c.txs(bus, inst.Mode, addr)
	case 0x98:
		c.tya(bus, inst.Mode, addr)
	case 0x8B:
		c.xaa(bus, inst.Mode, addr)
	default:
		return fmt.Errorf("%w 0x%02X at 0x%04X", errInvalidOpcode, opCode, opPC)
	}

	if c.fault != nil {
		err := fmt.Errorf("%w (opcode 0x%02X at 0x%04X)", c.fault, opCode, opPC)
		c.fault = nil
		return err
	}

	if c.halted {
		// a JAM latched this step; leave PC parked on the jam byte
		return ErrHalted
	}

	c.pc++
	return nil
}

// resolveAddress computes the effective operand address for a mode,
// advancing PC over the operand bytes as it reads them. On return PC rests
// on the last byte the instruction consumed; the driver's trailing
// increment accounts for the opcode byte itself.
//
// Implied and Accumulator have no operand and resolve to zero; their
// executors never touch the address.
func (c *cpu) resolveAddress(bus *sysBus, mode AddressingMode) uint16 {
	switch mode {
	case Implied, Accumulator:
		return 0

	case Immediate, Relative:
		c.pc++
		return c.pc

	case ZeroPage:
		c.pc++
		return uint16(bus.read(c.pc))

	case ZeroPageIndexedX:
		c.pc++
		return uint16(bus.read(c.pc) + c.x) // let it overflow

	case ZeroPageIndexedY:
		c.pc++
		return uint16(bus.read(c.pc) + c.y) // let it overflow

	case Absolute:
		c.pc++
		addr := bus.readWord(c.pc, false)
		c.pc++
		return addr

	case IndexedX:
		c.pc++
		addr := bus.readWord(c.pc, false)
		c.pc++
		return addr + uint16(c.x)

	case IndexedY:
		c.pc++
		addr := bus.readWord(c.pc, false)
		c.pc++
		return addr + uint16(c.y)

	case Indirect:
		c.pc++
		pointer := bus.readWord(c.pc, false)
		c.pc++
		return bus.readWord(pointer, true)

	case PreIndexedIndirect:
		c.pc++
		pointer := bus.read(c.pc) + c.x // let it overflow
		return bus.readWord(uint16(pointer), true)

	case PostIndexedIndirect:
		c.pc++
		pointer := bus.read(c.pc)
		return bus.readWord(uint16(pointer), true) + uint16(c.y)
	}

	return 0
}

func (c *cpu) push(bus *sysBus, v byte) {
	if c.s == 0x00 {
		c.fault = errStackOverflow
		return
	}

	bus.write(stackHi|uint16(c.s), v)
	c.s--
}

func (c *cpu) pull(bus *sysBus) byte {
	if c.s == 0xFF {
		c.fault = errStackUnderflow
		return 0
	}

	c.s++
	return bus.read(stackHi | uint16(c.s))
}

// pushAddress pushes the high byte first so the little end sits at the
// lower address once both bytes are down.
func (c *cpu) pushAddress(bus *sysBus, value uint16) {
	c.push(bus, byte(value>>8))
	c.push(bus, byte(value))
}

func (c *cpu) pullAddress(bus *sysBus) uint16 {
	lo := uint16(c.pull(bus))
	hi := uint16(c.pull(bus))

	return hi<<8 | lo
}

func (c *cpu) updateZero(v byte) {
	if v == 0 {
		c.p |= zero
	} else {
		c.p &^= zero
	}
}

func (c *cpu) updateNegative(v byte) {
	if v&0x80 > 0 {
		c.p |= negative
	} else {
		c.p &^= negative
	}
}

func (c *cpu) compare(a, b byte) {
	if a >= b {
		c.p |= carry
	} else {
		c.p &^= carry
	}

	if a == b {
		c.p |= zero
	} else {
		c.p &^= zero
	}
	c.updateNegative(a - b)
}

func (c *cpu) doDec(v byte) byte {
	r := v - 1
	c.updateZero(r)
	c.updateNegative(r)
	return r
}

func (c *cpu) doInc(v byte) byte {
	r := v + 1
	c.updateZero(r)
	c.updateNegative(r)
	return r
}

// doAdd is the nine-bit adder behind ADC, SBC and the composite illegal
// opcodes. Carry comes from bit 8 of the wide sum; overflow is set when the
// two operands share a sign and the result does not.
func (c *cpu) doAdd(v byte) {
	a := uint16(c.a)
	b := uint16(v)
	crry := uint16(c.p & carry)

	result := a + b + crry

	if result&0x0100 > 0 {
		c.p |= carry
	} else {
		c.p &^= carry
	}

	if a&0x80 == b&0x80 && a&0x80 != result&0x80 {
		c.p |= overflow
	} else {
		c.p &^= overflow
	}

	c.a = byte(result)
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

func (c *cpu) doAsl(v byte) byte {
	if v&0x80 > 0 {
		c.p |= carry
	} else {
		c.p &^= carry
	}
	v = v << 1
	c.updateZero(v)
	c.updateNegative(v)
	return v
}

func (c *cpu) doRol(v byte) byte {
	var carries bool
	if v&0x80 > 0 {
		carries = true
	}
	v = v << 1
	v |= byte(c.p & carry)

	if carries {
		c.p |= carry
	} else {
		c.p &^= carry
	}
	c.updateZero(v)
	c.updateNegative(v)

	return v
}

func (c *cpu) doLsr(v byte) byte {
	if v&1 > 0 {
		c.p |= carry
	} else {
		c.p &^= carry
	}
	v = v >> 1
	c.updateZero(v)
	c.updateNegative(v)
	return v
}

func (c *cpu) doRor(v byte) byte {
	var carries bool
	if v&1 > 0 {
		carries = true
	}

	v = v >> 1
	if c.p&carry > 0 {
		v |= 0x80
	}

	if carries {
		c.p |= carry
	} else {
		c.p &^= carry
	}
	c.updateZero(v)
	c.updateNegative(v)

	return v
}

// branch adds the sign-extended offset at addr to PC. The resolver already
// advanced PC over the offset byte, and the driver's trailing increment
// covers the opcode byte, so the sum lands exactly where a branch measured
// from the end of the instruction should.
func (c *cpu) branch(bus *sysBus, addr uint16) {
	offset := bus.read(addr)
	c.pc += uint16(int8(offset))
}

// BRK - Force Interrupt
//
// This core performs no software interrupt vectoring: BRK raises the Break
// bit and nothing else. The driver reports the bit to the host and clears
// it between steps; whether to push state and vector through $FFFE is the
// host's call.
//
// Processor Status after use:
// C	Carry Flag			Not affected
// Z	Zero Flag			Not affected
// I	Interrupt Disable	Not affected
// D	Decimal Mode Flag	Not affected
// B	Break Command		Set to 1
// V	Overflow Flag		Not affected
// N	Negative Flag		Not affected
func (c *cpu) brk(bus *sysBus, mode AddressingMode, addr uint16) {
	c.p |= brk
}

// NOP - No Operation
//
// The NOP instruction causes no changes to the processor other than the
// normal incrementing of the program counter to the next instruction. The
// undocumented variants carry operands in every addressing mode; the
// resolver has already stepped over them by the time this runs.
//
// Processor Status after use:
// C	Carry Flag			Not affected
// Z	Zero Flag			Not affected
// I	Interrupt Disable	Not affected
// D	Decimal Mode Flag	Not affected
// B	Break Command		Not affected
// V	Overflow Flag		Not affected
// N	Negative Flag		Not affected
func (c *cpu) nop(bus *sysBus, mode AddressingMode, addr uint16) {
}

// SEC - Set Carry Flag
// C = 1
//
// Set the carry flag to one.
func (c *cpu) sec(bus *sysBus, mode AddressingMode, addr uint16) {
	c.p |= carry
}

// CLC - Clear Carry Flag
// C = 0
//
// Set the carry flag to zero.
func (c *cpu) clc(bus *sysBus, mode AddressingMode, addr uint16) {
	c.p &^= carry
}

// SED - Set Decimal Flag
// D = 1
//
// Set the decimal mode flag to one. The flag is inert on the 2A03; ADC and
// SBC stay binary.
func (c *cpu) sed(bus *sysBus, mode AddressingMode, addr uint16) {
	c.p |= decimal
}

// CLD - Clear Decimal Mode
// D = 0
//
// Sets the decimal mode flag to zero.
func (c *cpu) cld(bus *sysBus, mode AddressingMode, addr uint16) {
	c.p &^= decimal
}

// SEI - Set Interrupt Disable
// I = 1
//
// Set the interrupt disable flag to one.
func (c *cpu) sei(bus *sysBus, mode AddressingMode, addr uint16) {
	c.p |= interruptDisable
}

// CLI - Clear Interrupt Disable
// I = 0
//
// Clears the interrupt disable flag allowing normal interrupt requests to
// be serviced.
func (c *cpu) cli(bus *sysBus, mode AddressingMode, addr uint16) {
	c.p &^= interruptDisable
}

// CLV - Clear Overflow Flag
// V = 0
//
// Clears the overflow flag.
func (c *cpu) clv(bus *sysBus, mode AddressingMode, addr uint16) {
	c.p &^= overflow
}

// STA - Store Accumulator
// M = A
//
// Stores the contents of the accumulator into memory. No flags are
// affected.
func (c *cpu) sta(bus *sysBus, mode AddressingMode, addr uint16) {
	bus.write(addr, c.a)
}

// STX - Store X Register
// M = X
//
// Stores the contents of the X register into memory. No flags are affected.
func (c *cpu) stx(bus *sysBus, mode AddressingMode, addr uint16) {
	bus.write(addr, c.x)
}

// STY - Store Y Register
// M = Y
//
// Stores the contents of the Y register into memory. No flags are affected.
func (c *cpu) sty(bus *sysBus, mode AddressingMode, addr uint16) {
	bus.write(addr, c.y)
}

// LDA - Load Accumulator
// A,Z,N = M
//
// Loads a byte of memory into the accumulator setting the zero and negative
// flags as appropriate.
//
// Processor Status after use:
// C	Carry Flag			Not affected
// Z	Zero Flag			Set if A = 0
// I	Interrupt Disable	Not affected
// D	Decimal Mode Flag	Not affected
// B	Break Command		Not affected
// V	Overflow Flag		Not affected
// N	Negative Flag		Set if bit 7 of A is set
func (c *cpu) lda(bus *sysBus, mode AddressingMode, addr uint16) {
	c.a = bus.read(addr)
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// LDX - Load X Register
// X,Z,N = M
//
// Loads a byte of memory into the X register setting the zero and negative
// flags as appropriate.
func (c *cpu) ldx(bus *sysBus, mode AddressingMode, addr uint16) {
	c.x = bus.read(addr)
	c.updateZero(c.x)
	c.updateNegative(c.x)
}

// LDY - Load Y Register
// Y,Z,N = M
//
// Loads a byte of memory into the Y register setting the zero and negative
// flags as appropriate.
func (c *cpu) ldy(bus *sysBus, mode AddressingMode, addr uint16) {
	c.y = bus.read(addr)
	c.updateZero(c.y)
	c.updateNegative(c.y)
}

// TAX - Transfer Accumulator to X
// X = A
//
// Copies the current contents of the accumulator into the X register and
// sets the zero and negative flags as appropriate.
func (c *cpu) tax(bus *sysBus, mode AddressingMode, addr uint16) {
	c.x = c.a
	c.updateZero(c.x)
	c.updateNegative(c.x)
}

// TAY - Transfer Accumulator to Y
// Y = A
//
// Copies the current contents of the accumulator into the Y register and
// sets the zero and negative flags as appropriate.
func (c *cpu) tay(bus *sysBus, mode AddressingMode, addr uint16) {
	c.y = c.a
	c.updateZero(c.y)
	c.updateNegative(c.y)
}

// TSX - Transfer Stack Pointer to X
// X = S
//
// Copies the current contents of the stack register into the X register and
// sets the zero and negative flags as appropriate.
func (c *cpu) tsx(bus *sysBus, mode AddressingMode, addr uint16) {
	c.x = c.s
	c.updateZero(c.x)
	c.updateNegative(c.x)
}

// TXA - Transfer X to Accumulator
// A = X
//
// Copies the current contents of the X register into the accumulator and
// sets the zero and negative flags as appropriate.
func (c *cpu) txa(bus *sysBus, mode AddressingMode, addr uint16) {
	c.a = c.x
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// TXS - Transfer X to Stack Pointer
// S = X
//
// Copies the current contents of the X register into the stack register.
// The stack pointer is not a flag-updating destination.
func (c *cpu) txs(bus *sysBus, mode AddressingMode, addr uint16) {
	c.s = c.x
}

// TYA - Transfer Y to Accumulator
// A = Y
//
// Copies the current contents of the Y register into the accumulator and
// sets the zero and negative flags as appropriate.
func (c *cpu) tya(bus *sysBus, mode AddressingMode, addr uint16) {
	c.a = c.y
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// PHA - Push Accumulator
//
// Pushes a copy of the accumulator on to the stack.
func (c *cpu) pha(bus *sysBus, mode AddressingMode, addr uint16) {
	c.push(bus, c.a)
}

// PHP - Push Processor Status
//
// Pushes a copy of the status flags on to the stack. Break and the unused
// bit are forced to one on the pushed copy only; the in-core status keeps
// whatever Break state it had.
func (c *cpu) php(bus *sysBus, mode AddressingMode, addr uint16) {
	status := c.p
	status |= brk
	status |= unused
	c.push(bus, byte(status))
}

// PLA - Pull Accumulator
//
// Pulls an 8 bit value from the stack and into the accumulator. The zero
// and negative flags are set as appropriate.
func (c *cpu) pla(bus *sysBus, mode AddressingMode, addr uint16) {
	a := c.pull(bus)
	if c.fault != nil {
		return
	}

	c.a = a
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// PLP - Pull Processor Status
//
// Pulls an 8 bit value from the stack and into the processor flags. The
// flags will take on new states as determined by the value pulled, except
// for the Break phantom, which is dropped, and the unused bit, which always
// reads as one.
func (c *cpu) plp(bus *sysBus, mode AddressingMode, addr uint16) {
	p := c.pull(bus)
	if c.fault != nil {
		return
	}

	c.p = status(p)
	c.p &^= brk
	c.p |= unused
}

// DEC - Decrement Memory
// M,Z,N = M-1
//
// Subtracts one from the value held at a specified memory location setting
// the zero and negative flags as appropriate. The value wraps modulo 256.
func (c *cpu) dec(bus *sysBus, mode AddressingMode, addr uint16) {
	v := bus.read(addr)
	bus.write(addr, c.doDec(v))
}

// DEX - Decrement X Register
// X,Z,N = X-1
//
// Subtracts one from the X register setting the zero and negative flags as
// appropriate.
func (c *cpu) dex(bus *sysBus, mode AddressingMode, addr uint16) {
	c.x = c.doDec(c.x)
}

// DEY - Decrement Y Register
// Y,Z,N = Y-1
//
// Subtracts one from the Y register setting the zero and negative flags as
// appropriate.
func (c *cpu) dey(bus *sysBus, mode AddressingMode, addr uint16) {
	c.y = c.doDec(c.y)
}

// INC - Increment Memory
// M,Z,N = M+1
//
// Adds one to the value held at a specified memory location setting the
// zero and negative flags as appropriate. The value wraps modulo 256.
func (c *cpu) inc(bus *sysBus, mode AddressingMode, addr uint16) {
	v := bus.read(addr)
	bus.write(addr, c.doInc(v))
}

// INX - Increment X Register
// X,Z,N = X+1
//
// Adds one to the X register setting the zero and negative flags as
// appropriate.
func (c *cpu) inx(bus *sysBus, mode AddressingMode, addr uint16) {
	c.x = c.doInc(c.x)
}

// INY - Increment Y Register
// Y,Z,N = Y+1
//
// Adds one to the Y register setting the zero and negative flags as
// appropriate.
func (c *cpu) iny(bus *sysBus, mode AddressingMode, addr uint16) {
	c.y = c.doInc(c.y)
}

// ADC - Add with Carry
// A,Z,C,N = A+M+C
//
// This instruction adds the contents of a memory location to the
// accumulator together with the carry bit. If overflow occurs the carry bit
// is set, this enables multiple byte addition to be performed.
//
// Processor Status after use:
// C	Carry Flag			Set if overflow in bit 7
// Z	Zero Flag			Set if A = 0
// I	Interrupt Disable	Not affected
// D	Decimal Mode Flag	Not affected
// B	Break Command		Not affected
// V	Overflow Flag		Set if sign bit is incorrect
// N	Negative Flag		Set if bit 7 set
func (c *cpu) adc(bus *sysBus, mode AddressingMode, addr uint16) {
	c.doAdd(bus.read(addr))
}

// SBC - Subtract with Carry
// A,Z,C,N = A-M-(1-C)
//
// This instruction subtracts the contents of a memory location from the
// accumulator together with the not of the carry bit. Feeding the one's
// complement of the operand to the adder gives exactly A + ~M + C, so the
// flags, overflow included, fall out of the same nine-bit sum as ADC.
func (c *cpu) sbc(bus *sysBus, mode AddressingMode, addr uint16) {
	c.doAdd(bus.read(addr) ^ 0xFF)
}

// ASL - Arithmetic Shift Left
// A,Z,C,N = M*2 or M,Z,C,N = M*2
//
// This operation shifts all the bits of the accumulator or memory contents
// one bit left. Bit 0 is set to 0 and bit 7 is placed in the carry flag.
func (c *cpu) asl(bus *sysBus, mode AddressingMode, addr uint16) {
	if mode == Accumulator {
		c.a = c.doAsl(c.a)
		return
	}

	v := bus.read(addr)
	bus.write(addr, c.doAsl(v))
}

// AND - Logical AND
// A,Z,N = A&M
//
// A logical AND is performed, bit by bit, on the accumulator contents using
// the contents of a byte of memory.
func (c *cpu) and(bus *sysBus, mode AddressingMode, addr uint16) {
	c.a &= bus.read(addr)
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// EOR - Exclusive OR
// A,Z,N = A^M
//
// An exclusive OR is performed, bit by bit, on the accumulator contents
// using the contents of a byte of memory.
func (c *cpu) eor(bus *sysBus, mode AddressingMode, addr uint16) {
	c.a ^= bus.read(addr)
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// LSR - Logical Shift Right
// A,C,Z,N = A/2 or M,C,Z,N = M/2
//
// Each of the bits in A or M is shifted one place to the right. The bit
// that was in bit 0 is shifted into the carry flag. Bit 7 is set to zero.
func (c *cpu) lsr(bus *sysBus, mode AddressingMode, addr uint16) {
	if mode == Accumulator {
		c.a = c.doLsr(c.a)
		return
	}

	v := bus.read(addr)
	bus.write(addr, c.doLsr(v))
}

// ROL - Rotate Left
//
// Move each of the bits in either A or M one place to the left. Bit 0 is
// filled with the current value of the carry flag whilst the old bit 7
// becomes the new carry flag value.
func (c *cpu) rol(bus *sysBus, mode AddressingMode, addr uint16) {
	if mode == Accumulator {
		c.a = c.doRol(c.a)
		return
	}

	v := bus.read(addr)
	bus.write(addr, c.doRol(v))
}

// ROR - Rotate Right
//
// Move each of the bits in either A or M one place to the right. Bit 7 is
// filled with the current value of the carry flag whilst the old bit 0
// becomes the new carry flag value.
func (c *cpu) ror(bus *sysBus, mode AddressingMode, addr uint16) {
	if mode == Accumulator {
		c.a = c.doRor(c.a)
		return
	}

	v := bus.read(addr)
	bus.write(addr, c.doRor(v))
}

// ORA - Logical Inclusive OR
// A,Z,N = A|M
//
// An inclusive OR is performed, bit by bit, on the accumulator contents
// using the contents of a byte of memory.
func (c *cpu) ora(bus *sysBus, mode AddressingMode, addr uint16) {
	c.a |= bus.read(addr)
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// BIT - Bit Test
// A & M, N = M7, V = M6
//
// This instruction is used to test if one or more bits are set in a target
// memory location. The mask pattern in A is ANDed with the value in memory
// to set or clear the zero flag, but the result is not kept. Bits 7 and 6
// of the value from memory are copied into the N and V flags.
//
// Processor Status after use:
// C	Carry Flag			Not affected
// Z	Zero Flag			Set if the result of the AND is zero
// I	Interrupt Disable	Not affected
// D	Decimal Mode Flag	Not affected
// B	Break Command		Not affected
// V	Overflow Flag		Set to bit 6 of the memory value
// N	Negative Flag		Set to bit 7 of the memory value
func (c *cpu) bit(bus *sysBus, mode AddressingMode, addr uint16) {
	v := bus.read(addr)

	c.updateNegative(v)
	c.updateZero(c.a & v)

	if v&0x40 > 0 {
		c.p |= overflow
	} else {
		c.p &^= overflow
	}
}

// CMP - Compare
// Z,C,N = A-M
//
// This instruction compares the contents of the accumulator with another
// memory held value and sets the zero and carry flags as appropriate.
//
// Processor Status after use:
// C	Carry Flag			Set if A >= M
// Z	Zero Flag			Set if A = M
// I	Interrupt Disable	Not affected
// D	Decimal Mode Flag	Not affected
// B	Break Command		Not affected
// V	Overflow Flag		Not affected
// N	Negative Flag		Set if bit 7 of the result is set
func (c *cpu) cmp(bus *sysBus, mode AddressingMode, addr uint16) {
	c.compare(c.a, bus.read(addr))
}

// CPX - Compare X Register
// Z,C,N = X-M
//
// This instruction compares the contents of the X register with another
// memory held value and sets the zero and carry flags as appropriate.
func (c *cpu) cpx(bus *sysBus, mode AddressingMode, addr uint16) {
	c.compare(c.x, bus.read(addr))
}

// CPY - Compare Y Register
// Z,C,N = Y-M
//
// This instruction compares the contents of the Y register with another
// memory held value and sets the zero and carry flags as appropriate.
func (c *cpu) cpy(bus *sysBus, mode AddressingMode, addr uint16) {
	c.compare(c.y, bus.read(addr))
}

// BCC - Branch if Carry Clear
//
// If the carry flag is clear then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bcc(bus *sysBus, mode AddressingMode, addr uint16) {
	if c.p&carry > 0 {
		return
	}

	c.branch(bus, addr)
}

// BCS - Branch if Carry Set
//
// If the carry flag is set then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bcs(bus *sysBus, mode AddressingMode, addr uint16) {
	if c.p&carry == 0 {
		return
	}

	c.branch(bus, addr)
}

// BVC - Branch if Overflow Clear
//
// If the overflow flag is clear then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bvc(bus *sysBus, mode AddressingMode, addr uint16) {
	if c.p&overflow > 0 {
		return
	}

	c.branch(bus, addr)
}

// BVS - Branch if Overflow Set
//
// If the overflow flag is set then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bvs(bus *sysBus, mode AddressingMode, addr uint16) {
	if c.p&overflow == 0 {
		return
	}

	c.branch(bus, addr)
}

// BEQ - Branch if Equal
//
// If the zero flag is set then add the relative displacement to the program
// counter to cause a branch to a new location.
func (c *cpu) beq(bus *sysBus, mode AddressingMode, addr uint16) {
	if c.p&zero == 0 {
		return
	}

	c.branch(bus, addr)
}

// BNE - Branch if Not Equal
//
// If the zero flag is clear then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bne(bus *sysBus, mode AddressingMode, addr uint16) {
	if c.p&zero > 0 {
		return
	}

	c.branch(bus, addr)
}

// BMI - Branch if Minus
//
// If the negative flag is set then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bmi(bus *sysBus, mode AddressingMode, addr uint16) {
	if c.p&negative == 0 {
		return
	}

	c.branch(bus, addr)
}

// BPL - Branch if Positive
//
// If the negative flag is clear then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bpl(bus *sysBus, mode AddressingMode, addr uint16) {
	if c.p&negative > 0 {
		return
	}

	c.branch(bus, addr)
}

// JMP - Jump
//
// Sets the program counter to the address specified by the operand. The
// indirect form fetches its pointer with the page-wrap defect. target-1 is
// stored so the driver's trailing increment lands on the target.
func (c *cpu) jmp(bus *sysBus, mode AddressingMode, addr uint16) {
	c.pc = addr - 1
}

// JSR - Jump to Subroutine
//
// The JSR instruction pushes the address of the last byte of its own
// operand on to the stack and then sets the program counter to the target
// memory address. RTS pulls that address back and the trailing increment
// resumes at the instruction after the JSR.
func (c *cpu) jsr(bus *sysBus, mode AddressingMode, addr uint16) {
	c.pushAddress(bus, c.pc)
	c.pc = addr - 1
}

// RTI - Return from Interrupt
//
// The RTI instruction is used at the end of an interrupt processing
// routine. It pulls the processor flags from the stack followed by the
// program counter. Unlike RTS, the pulled word is the exact resume address,
// not one byte short of it, so target-1 is stored here too.
func (c *cpu) rti(bus *sysBus, mode AddressingMode, addr uint16) {
	p := c.pull(bus)
	if c.fault != nil {
		return
	}

	c.p = status(p) &^ brk
	c.p |= unused

	c.pc = c.pullAddress(bus) - 1
}

// RTS - Return from Subroutine
//
// The RTS instruction is used at the end of a subroutine to return to the
// calling routine. It pulls the program counter from the stack; the pushed
// word already points one byte short of the return target, so the driver's
// trailing increment completes the return.
func (c *cpu) rts(bus *sysBus, mode AddressingMode, addr uint16) {
	c.pc = c.pullAddress(bus)
}

// Equivalent to AND #i then LSR A. Some sources call this "ASR"; we do not
// follow this out of confusion with the mnemonic for a pseudoinstruction
// that combines CMP #$80 (or ANC #$FF) then ROR.
func (c *cpu) alr(bus *sysBus, mode AddressingMode, addr uint16) {
	c.and(bus, mode, addr)
	c.lsr(bus, Accumulator, addr)
}

// Does AND #i, setting N and Z flags based on the result. Then it copies N
// (bit 7) to C. ANC #$FF could be useful for sign-extending, much like
// CMP #$80.
func (c *cpu) anc(bus *sysBus, mode AddressingMode, addr uint16) {
	c.and(bus, mode, addr)

	if c.p&negative > 0 {
		c.p |= carry
	} else {
		c.p &^= carry
	}
}

// Similar to AND #i then ROR A, except sets the flags differently. N and Z
// are normal, but C is bit 6 and V is bit 6 xor bit 5.
func (c *cpu) arr(bus *sysBus, mode AddressingMode, addr uint16) {
	c.and(bus, mode, addr)
	c.ror(bus, Accumulator, addr)

	if (c.a>>6)&1 > 0 {
		c.p |= carry
	} else {
		c.p &^= carry
	}

	if ((c.a>>6)&1)^((c.a>>5)&1) > 0 {
		c.p |= overflow
	} else {
		c.p &^= overflow
	}
}

// Shortcut for LDA value then TAX. Saves a byte and two cycles and allows
// use of the X register with the (d),Y addressing mode.
func (c *cpu) lax(bus *sysBus, mode AddressingMode, addr uint16) {
	c.lda(bus, mode, addr)
	c.tax(bus, mode, addr)
}

// Stores the bitwise AND of A and X. As with STA and STX, no flags are
// affected.
func (c *cpu) sax(bus *sysBus, mode AddressingMode, addr uint16) {
	bus.write(addr, c.a&c.x)
}

// Equivalent to DEC value then CMP value, except supporting more addressing
// modes. LDA #$FF followed by DCP can be used to check if the decrement
// underflows, which is useful for multi-byte decrements.
func (c *cpu) dcp(bus *sysBus, mode AddressingMode, addr uint16) {
	v := c.doDec(bus.read(addr))
	bus.write(addr, v)
	c.compare(c.a, v)
}

// Equivalent to INC value then SBC value, except supporting more addressing
// modes. Some references name it ISB.
func (c *cpu) isc(bus *sysBus, mode AddressingMode, addr uint16) {
	v := c.doInc(bus.read(addr))
	bus.write(addr, v)
	c.doAdd(v ^ 0xFF)
}

// Equivalent to ROL value then AND value, except supporting more addressing
// modes. LDA #$FF followed by RLA is an efficient way to rotate a variable
// while also loading it in A.
func (c *cpu) rla(bus *sysBus, mode AddressingMode, addr uint16) {
	v := c.doRol(bus.read(addr))
	bus.write(addr, v)

	c.a &= v
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// Equivalent to ROR value then ADC value, except supporting more addressing
// modes. Essentially this computes A + value / 2, where value is 9-bit and
// the division is rounded up.
func (c *cpu) rra(bus *sysBus, mode AddressingMode, addr uint16) {
	v := c.doRor(bus.read(addr))
	bus.write(addr, v)
	c.doAdd(v)
}

// Equivalent to ASL value then ORA value, except supporting more addressing
// modes. LDA #0 followed by SLO is an efficient way to shift a variable
// while also loading it in A.
func (c *cpu) slo(bus *sysBus, mode AddressingMode, addr uint16) {
	v := c.doAsl(bus.read(addr))
	bus.write(addr, v)

	c.a |= v
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// Equivalent to LSR value then EOR value, except supporting more addressing
// modes. LDA #0 followed by SRE is an efficient way to shift a variable
// while also loading it in A.
func (c *cpu) sre(bus *sysBus, mode AddressingMode, addr uint16) {
	v := c.doLsr(bus.read(addr))
	bus.write(addr, v)

	c.a ^= v
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// The JAM opcodes wedge the real part until a reset. Latching a halt keeps
// the byte stream from being misread as something else.
func (c *cpu) kil(bus *sysBus, mode AddressingMode, addr uint16) {
	c.halted = true
}

// Highly unstable on hardware; the deterministic TXA-then-AND composite is
// the conventional rendition.
func (c *cpu) xaa(bus *sysBus, mode AddressingMode, addr uint16) {
	c.txa(bus, mode, addr)
	c.and(bus, mode, addr)
}

// The remaining unstable stores and loads (AHX, TAS, SHY, SHX, LAS, SBX)
// depend on bus-level analog behaviour no program in this corpus relies on.
// They decode, consume their operands, and do nothing.

func (c *cpu) axs(bus *sysBus, mode AddressingMode, addr uint16) {
}

func (c *cpu) ahx(bus *sysBus, mode AddressingMode, addr uint16) {
}

func (c *cpu) tas(bus *sysBus, mode AddressingMode, addr uint16) {
}

func (c *cpu) shy(bus *sysBus, mode AddressingMode, addr uint16) {
}

func (c *cpu) shx(bus *sysBus, mode AddressingMode, addr uint16) {
}

func (c *cpu) las(bus *sysBus, mode AddressingMode, addr uint16) {
}
