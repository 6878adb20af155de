package nes

// An AddressingMode names the rule used to turn an instruction's operand
// bytes, plus register state, into the effective operand location. Implied
// and Accumulator carry no operand; the zero-page and indexed-indirect
// family read one byte; the absolute family and Indirect read two.
type AddressingMode byte

const (
	// Immediate addressing is used when the operand's 1-byte value is given
	// in the instruction itself.
	Immediate AddressingMode = iota

	// ZeroPage addressing requires a 1-byte address and can only access the
	// zero-page range ($0000-$00FF).
	ZeroPage

	// Absolute addressing requires a full 2-byte address and can access the
	// full range ($0000-$FFFF).
	Absolute

	// Relative addressing is used on the branch instructions.
	//
	// A 1-byte signed operand is added to the program counter, and the
	// program continues execution from the new address. Because this value
	// is signed, values #00-#7F are positive, and values #FF-#80 are
	// negative.
	Relative

	// Implied addressing occurs when there is no operand. The addressing
	// mode is implied by the instruction.
	Implied

	// Accumulator addressing is a special type of Implied addressing that
	// only addresses the accumulator.
	Accumulator

	// IndexedX addressing works like Absolute but uses the X register as an
	// offset. The 16-bit sum wraps.
	IndexedX

	// IndexedY addressing works like Absolute but uses the Y register as an
	// offset. The 16-bit sum wraps.
	IndexedY

	// ZeroPageIndexedX addressing works like ZeroPage but uses the X
	// register as an offset. The sum stays in page zero.
	ZeroPageIndexedX

	// ZeroPageIndexedY addressing works like ZeroPage but uses the Y
	// register as an offset. The sum stays in page zero.
	ZeroPageIndexedY

	// Indirect addressing reads a memory location from a two-byte pointer.
	// Only JMP uses it, and the pointer fetch reproduces the page-wrap
	// defect, see sysBus.readWord.
	Indirect

	// PreIndexedIndirect addressing accepts a zero-page address and adds
	// the contents of the X register, wrapping in page zero, to find a
	// 2-byte little-endian pointer to the operand.
	PreIndexedIndirect

	// PostIndexedIndirect addressing accepts a zero-page address holding a
	// 2-byte little-endian pointer, and adds the Y register to the pointee.
	PostIndexedIndirect
)

// An Instruction describes one opcode: the mnemonic, the addressing mode
// the resolver applies, and the full encoded size in bytes, which the
// disassembler and the monitor use to show operands without executing.
type Instruction struct {
	OpCode  byte
	Name    string
	Mode    AddressingMode
	Size    byte
	Illegal bool
}

// Decode returns the Instruction for an opcode byte. The table is total:
// every byte decodes to something, including the undocumented opcodes and
// the JAM halts, so a bad byte can never desynchronise the stream.
func Decode(op byte) Instruction {
	return instructions[op]
}

var instructions = [256]Instruction{
	{OpCode: 0x00, Name: "BRK", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x01, Name: "ORA", Mode: PreIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0x02, Name: "KIL", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x03, Name: "SLO", Mode: PreIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0x04, Name: "NOP", Mode: ZeroPage, Size: 2, Illegal: true},
	{OpCode: 0x05, Name: "ORA", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0x06, Name: "ASL", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0x07, Name: "SLO", Mode: ZeroPage, Size: 2, Illegal: true},
	{OpCode: 0x08, Name: "PHP", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x09, Name: "ORA", Mode: Immediate, Size: 2, Illegal: false},
	{OpCode: 0x0A, Name: "ASL", Mode: Accumulator, Size: 1, Illegal: false},
	{OpCode: 0x0B, Name: "ANC", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0x0C, Name: "NOP", Mode: Absolute, Size: 3, Illegal: true},
	{OpCode: 0x0D, Name: "ORA", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x0E, Name: "ASL", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x0F, Name: "SLO", Mode: Absolute, Size: 3, Illegal: true},
	{OpCode: 0x10, Name: "BPL", Mode: Relative, Size: 2, Illegal: false},
	{OpCode: 0x11, Name: "ORA", Mode: PostIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0x12, Name: "KIL", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x13, Name: "SLO", Mode: PostIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0x14, Name: "NOP", Mode: ZeroPageIndexedX, Size: 2, Illegal: true},
	{OpCode: 0x15, Name: "ORA", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0x16, Name: "ASL", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0x17, Name: "SLO", Mode: ZeroPageIndexedX, Size: 2, Illegal: true},
	{OpCode: 0x18, Name: "CLC", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x19, Name: "ORA", Mode: IndexedY, Size: 3, Illegal: false},
	{OpCode: 0x1A, Name: "NOP", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x1B, Name: "SLO", Mode: IndexedY, Size: 3, Illegal: true},
	{OpCode: 0x1C, Name: "NOP", Mode: IndexedX, Size: 3, Illegal: true},
	{OpCode: 0x1D, Name: "ORA", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0x1E, Name: "ASL", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0x1F, Name: "SLO", Mode: IndexedX, Size: 3, Illegal: true},
	{OpCode: 0x20, Name: "JSR", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x21, Name: "AND", Mode: PreIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0x22, Name: "KIL", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x23, Name: "RLA", Mode: PreIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0x24, Name: "BIT", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0x25, Name: "AND", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0x26, Name: "ROL", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0x27, Name: "RLA", Mode: ZeroPage, Size: 2, Illegal: true},
	{OpCode: 0x28, Name: "PLP", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x29, Name: "AND", Mode: Immediate, Size: 2, Illegal: false},
	{OpCode: 0x2A, Name: "ROL", Mode: Accumulator, Size: 1, Illegal: false},
	{OpCode: 0x2B, Name: "ANC", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0x2C, Name: "BIT", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x2D, Name: "AND", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x2E, Name: "ROL", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x2F, Name: "RLA", Mode: Absolute, Size: 3, Illegal: true},
	{OpCode: 0x30, Name: "BMI", Mode: Relative, Size: 2, Illegal: false},
	{OpCode: 0x31, Name: "AND", Mode: PostIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0x32, Name: "KIL", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x33, Name: "RLA", Mode: PostIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0x34, Name: "NOP", Mode: ZeroPageIndexedX, Size: 2, Illegal: true},
	{OpCode: 0x35, Name: "AND", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0x36, Name: "ROL", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0x37, Name: "RLA", Mode: ZeroPageIndexedX, Size: 2, Illegal: true},
	{OpCode: 0x38, Name: "SEC", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x39, Name: "AND", Mode: IndexedY, Size: 3, Illegal: false},
	{OpCode: 0x3A, Name: "NOP", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x3B, Name: "RLA", Mode: IndexedY, Size: 3, Illegal: true},
	{OpCode: 0x3C, Name: "NOP", Mode: IndexedX, Size: 3, Illegal: true},
	{OpCode: 0x3D, Name: "AND", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0x3E, Name: "ROL", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0x3F, Name: "RLA", Mode: IndexedX, Size: 3, Illegal: true},
	{OpCode: 0x40, Name: "RTI", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x41, Name: "EOR", Mode: PreIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0x42, Name: "KIL", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x43, Name: "SRE", Mode: PreIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0x44, Name: "NOP", Mode: ZeroPage, Size: 2, Illegal: true},
	{OpCode: 0x45, Name: "EOR", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0x46, Name: "LSR", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0x47, Name: "SRE", Mode: ZeroPage, Size: 2, Illegal: true},
	{OpCode: 0x48, Name: "PHA", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x49, Name: "EOR", Mode: Immediate, Size: 2, Illegal: false},
	{OpCode: 0x4A, Name: "LSR", Mode: Accumulator, Size: 1, Illegal: false},
	{OpCode: 0x4B, Name: "ALR", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0x4C, Name: "JMP", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x4D, Name: "EOR", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x4E, Name: "LSR", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x4F, Name: "SRE", Mode: Absolute, Size: 3, Illegal: true},
	{OpCode: 0x50, Name: "BVC", Mode: Relative, Size: 2, Illegal: false},
	{OpCode: 0x51, Name: "EOR", Mode: PostIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0x52, Name: "KIL", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x53, Name: "SRE", Mode: PostIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0x54, Name: "NOP", Mode: ZeroPageIndexedX, Size: 2, Illegal: true},
	{OpCode: 0x55, Name: "EOR", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0x56, Name: "LSR", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0x57, Name: "SRE", Mode: ZeroPageIndexedX, Size: 2, Illegal: true},
	{OpCode: 0x58, Name: "CLI", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x59, Name: "EOR", Mode: IndexedY, Size: 3, Illegal: false},
	{OpCode: 0x5A, Name: "NOP", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x5B, Name: "SRE", Mode: IndexedY, Size: 3, Illegal: true},
	{OpCode: 0x5C, Name: "NOP", Mode: IndexedX, Size: 3, Illegal: true},
	{OpCode: 0x5D, Name: "EOR", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0x5E, Name: "LSR", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0x5F, Name: "SRE", Mode: IndexedX, Size: 3, Illegal: true},
	{OpCode: 0x60, Name: "RTS", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x61, Name: "ADC", Mode: PreIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0x62, Name: "KIL", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x63, Name: "RRA", Mode: PreIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0x64, Name: "NOP", Mode: ZeroPage, Size: 2, Illegal: true},
	{OpCode: 0x65, Name: "ADC", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0x66, Name: "ROR", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0x67, Name: "RRA", Mode: ZeroPage, Size: 2, Illegal: true},
	{OpCode: 0x68, Name: "PLA", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x69, Name: "ADC", Mode: Immediate, Size: 2, Illegal: false},
	{OpCode: 0x6A, Name: "ROR", Mode: Accumulator, Size: 1, Illegal: false},
	{OpCode: 0x6B, Name: "ARR", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0x6C, Name: "JMP", Mode: Indirect, Size: 3, Illegal: false},
	{OpCode: 0x6D, Name: "ADC", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x6E, Name: "ROR", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x6F, Name: "RRA", Mode: Absolute, Size: 3, Illegal: true},
	{OpCode: 0x70, Name: "BVS", Mode: Relative, Size: 2, Illegal: false},
	{OpCode: 0x71, Name: "ADC", Mode: PostIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0x72, Name: "KIL", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x73, Name: "RRA", Mode: PostIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0x74, Name: "NOP", Mode: ZeroPageIndexedX, Size: 2, Illegal: true},
	{OpCode: 0x75, Name: "ADC", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0x76, Name: "ROR", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0x77, Name: "RRA", Mode: ZeroPageIndexedX, Size: 2, Illegal: true},
	{OpCode: 0x78, Name: "SEI", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x79, Name: "ADC", Mode: IndexedY, Size: 3, Illegal: false},
	{OpCode: 0x7A, Name: "NOP", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x7B, Name: "RRA", Mode: IndexedY, Size: 3, Illegal: true},
	{OpCode: 0x7C, Name: "NOP", Mode: IndexedX, Size: 3, Illegal: true},
	{OpCode: 0x7D, Name: "ADC", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0x7E, Name: "ROR", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0x7F, Name: "RRA", Mode: IndexedX, Size: 3, Illegal: true},
	{OpCode: 0x80, Name: "NOP", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0x81, Name: "STA", Mode: PreIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0x82, Name: "NOP", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0x83, Name: "SAX", Mode: PreIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0x84, Name: "STY", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0x85, Name: "STA", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0x86, Name: "STX", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0x87, Name: "SAX", Mode: ZeroPage, Size: 2, Illegal: true},
	{OpCode: 0x88, Name: "DEY", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x89, Name: "NOP", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0x8A, Name: "TXA", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x8B, Name: "XAA", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0x8C, Name: "STY", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x8D, Name: "STA", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x8E, Name: "STX", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0x8F, Name: "SAX", Mode: Absolute, Size: 3, Illegal: true},
	{OpCode: 0x90, Name: "BCC", Mode: Relative, Size: 2, Illegal: false},
	{OpCode: 0x91, Name: "STA", Mode: PostIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0x92, Name: "KIL", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0x93, Name: "AHX", Mode: PostIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0x94, Name: "STY", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0x95, Name: "STA", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0x96, Name: "STX", Mode: ZeroPageIndexedY, Size: 2, Illegal: false},
	{OpCode: 0x97, Name: "SAX", Mode: ZeroPageIndexedY, Size: 2, Illegal: true},
	{OpCode: 0x98, Name: "TYA", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x99, Name: "STA", Mode: IndexedY, Size: 3, Illegal: false},
	{OpCode: 0x9A, Name: "TXS", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0x9B, Name: "TAS", Mode: IndexedY, Size: 3, Illegal: true},
	{OpCode: 0x9C, Name: "SHY", Mode: IndexedX, Size: 3, Illegal: true},
	{OpCode: 0x9D, Name: "STA", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0x9E, Name: "SHX", Mode: IndexedY, Size: 3, Illegal: true},
	{OpCode: 0x9F, Name: "AHX", Mode: IndexedY, Size: 3, Illegal: true},
	{OpCode: 0xA0, Name: "LDY", Mode: Immediate, Size: 2, Illegal: false},
	{OpCode: 0xA1, Name: "LDA", Mode: PreIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0xA2, Name: "LDX", Mode: Immediate, Size: 2, Illegal: false},
	{OpCode: 0xA3, Name: "LAX", Mode: PreIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0xA4, Name: "LDY", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0xA5, Name: "LDA", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0xA6, Name: "LDX", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0xA7, Name: "LAX", Mode: ZeroPage, Size: 2, Illegal: true},
	{OpCode: 0xA8, Name: "TAY", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0xA9, Name: "LDA", Mode: Immediate, Size: 2, Illegal: false},
	{OpCode: 0xAA, Name: "TAX", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0xAB, Name: "LAX", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0xAC, Name: "LDY", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0xAD, Name: "LDA", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0xAE, Name: "LDX", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0xAF, Name: "LAX", Mode: Absolute, Size: 3, Illegal: true},
	{OpCode: 0xB0, Name: "BCS", Mode: Relative, Size: 2, Illegal: false},
	{OpCode: 0xB1, Name: "LDA", Mode: PostIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0xB2, Name: "KIL", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0xB3, Name: "LAX", Mode: PostIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0xB4, Name: "LDY", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0xB5, Name: "LDA", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0xB6, Name: "LDX", Mode: ZeroPageIndexedY, Size: 2, Illegal: false},
	{OpCode: 0xB7, Name: "LAX", Mode: ZeroPageIndexedY, Size: 2, Illegal: true},
	{OpCode: 0xB8, Name: "CLV", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0xB9, Name: "LDA", Mode: IndexedY, Size: 3, Illegal: false},
	{OpCode: 0xBA, Name: "TSX", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0xBB, Name: "LAS", Mode: IndexedY, Size: 3, Illegal: true},
	{OpCode: 0xBC, Name: "LDY", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0xBD, Name: "LDA", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0xBE, Name: "LDX", Mode: IndexedY, Size: 3, Illegal: false},
	{OpCode: 0xBF, Name: "LAX", Mode: IndexedY, Size: 3, Illegal: true},
	{OpCode: 0xC0, Name: "CPY", Mode: Immediate, Size: 2, Illegal: false},
	{OpCode: 0xC1, Name: "CMP", Mode: PreIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0xC2, Name: "NOP", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0xC3, Name: "DCP", Mode: PreIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0xC4, Name: "CPY", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0xC5, Name: "CMP", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0xC6, Name: "DEC", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0xC7, Name: "DCP", Mode: ZeroPage, Size: 2, Illegal: true},
	{OpCode: 0xC8, Name: "INY", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0xC9, Name: "CMP", Mode: Immediate, Size: 2, Illegal: false},
	{OpCode: 0xCA, Name: "DEX", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0xCB, Name: "AXS", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0xCC, Name: "CPY", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0xCD, Name: "CMP", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0xCE, Name: "DEC", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0xCF, Name: "DCP", Mode: Absolute, Size: 3, Illegal: true},
	{OpCode: 0xD0, Name: "BNE", Mode: Relative, Size: 2, Illegal: false},
	{OpCode: 0xD1, Name: "CMP", Mode: PostIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0xD2, Name: "KIL", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0xD3, Name: "DCP", Mode: PostIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0xD4, Name: "NOP", Mode: ZeroPageIndexedX, Size: 2, Illegal: true},
	{OpCode: 0xD5, Name: "CMP", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0xD6, Name: "DEC", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0xD7, Name: "DCP", Mode: ZeroPageIndexedX, Size: 2, Illegal: true},
	{OpCode: 0xD8, Name: "CLD", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0xD9, Name: "CMP", Mode: IndexedY, Size: 3, Illegal: false},
	{OpCode: 0xDA, Name: "NOP", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0xDB, Name: "DCP", Mode: IndexedY, Size: 3, Illegal: true},
	{OpCode: 0xDC, Name: "NOP", Mode: IndexedX, Size: 3, Illegal: true},
	{OpCode: 0xDD, Name: "CMP", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0xDE, Name: "DEC", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0xDF, Name: "DCP", Mode: IndexedX, Size: 3, Illegal: true},
	{OpCode: 0xE0, Name: "CPX", Mode: Immediate, Size: 2, Illegal: false},
	{OpCode: 0xE1, Name: "SBC", Mode: PreIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0xE2, Name: "NOP", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0xE3, Name: "ISB", Mode: PreIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0xE4, Name: "CPX", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0xE5, Name: "SBC", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0xE6, Name: "INC", Mode: ZeroPage, Size: 2, Illegal: false},
	{OpCode: 0xE7, Name: "ISB", Mode: ZeroPage, Size: 2, Illegal: true},
	{OpCode: 0xE8, Name: "INX", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0xE9, Name: "SBC", Mode: Immediate, Size: 2, Illegal: false},
	{OpCode: 0xEA, Name: "NOP", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0xEB, Name: "SBC", Mode: Immediate, Size: 2, Illegal: true},
	{OpCode: 0xEC, Name: "CPX", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0xED, Name: "SBC", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0xEE, Name: "INC", Mode: Absolute, Size: 3, Illegal: false},
	{OpCode: 0xEF, Name: "ISB", Mode: Absolute, Size: 3, Illegal: true},
	{OpCode: 0xF0, Name: "BEQ", Mode: Relative, Size: 2, Illegal: false},
	{OpCode: 0xF1, Name: "SBC", Mode: PostIndexedIndirect, Size: 2, Illegal: false},
	{OpCode: 0xF2, Name: "KIL", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0xF3, Name: "ISB", Mode: PostIndexedIndirect, Size: 2, Illegal: true},
	{OpCode: 0xF4, Name: "NOP", Mode: ZeroPageIndexedX, Size: 2, Illegal: true},
	{OpCode: 0xF5, Name: "SBC", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0xF6, Name: "INC", Mode: ZeroPageIndexedX, Size: 2, Illegal: false},
	{OpCode: 0xF7, Name: "ISB", Mode: ZeroPageIndexedX, Size: 2, Illegal: true},
	{OpCode: 0xF8, Name: "SED", Mode: Implied, Size: 1, Illegal: false},
	{OpCode: 0xF9, Name: "SBC", Mode: IndexedY, Size: 3, Illegal: false},
	{OpCode: 0xFA, Name: "NOP", Mode: Implied, Size: 1, Illegal: true},
	{OpCode: 0xFB, Name: "ISB", Mode: IndexedY, Size: 3, Illegal: true},
	{OpCode: 0xFC, Name: "NOP", Mode: IndexedX, Size: 3, Illegal: true},
	{OpCode: 0xFD, Name: "SBC", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0xFE, Name: "INC", Mode: IndexedX, Size: 3, Illegal: false},
	{OpCode: 0xFF, Name: "ISB", Mode: IndexedX, Size: 3, Illegal: true},
}
