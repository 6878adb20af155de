package nes

import (
	"fmt"
	"io"
	"strings"
)

// disassemble writes one trace line for the instruction at pc, before it
// executes. The layout matches the classic nestest reference logs up
// through the stack pointer column, so traces diff cleanly against them:
//
//	C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD
//
// Undocumented opcodes are starred the way those logs star them.
func disassemble(out io.Writer, bus *sysBus,
	instPC uint16, a, x, y, p, sp byte, inst Instruction) {
	var strlen int

	n, _ := fmt.Fprintf(out, "%04X  ", instPC)
	strlen += n

	switch inst.Size {
	case 1:
		n, _ := fmt.Fprintf(out, "%02X      ", inst.OpCode)
		strlen += n
	case 2:
		n, _ := fmt.Fprintf(out, "%02X %02X   ", inst.OpCode, bus.read(instPC+1))
		strlen += n
	case 3:
		n, _ := fmt.Fprintf(out, "%02X %02X %02X", inst.OpCode, bus.read(instPC+1), bus.read(instPC+2))
		strlen += n
	}

	if inst.Illegal {
		n, _ := fmt.Fprint(out, " *")
		strlen += n
	} else {
		n, _ := fmt.Fprint(out, "  ")
		strlen += n
	}

	n, _ = fmt.Fprint(out, inst.Name, " ")
	strlen += n

	switch inst.Mode {
	case Accumulator:
		n, _ := fmt.Fprint(out, "A")
		strlen += n
	case Implied:
	default:
		var arg uint16
		switch inst.Mode {
		case Immediate, ZeroPage, ZeroPageIndexedX, ZeroPageIndexedY, PreIndexedIndirect, PostIndexedIndirect:
			arg = uint16(bus.read(instPC + 1))
		case Absolute, Indirect, IndexedX, IndexedY:
			arg = uint16(bus.read(instPC+1)) | uint16(bus.read(instPC+2))<<8
		case Relative:
			// the target, measured from the end of the instruction
			arg = instPC + 2 + uint16(int8(bus.read(instPC+1)))
		}

		n, _ := fmt.Fprintf(out, addressingFormats[inst.Mode], arg)
		strlen += n
	}

	if pad := 48 - strlen; pad > 0 {
		fmt.Fprint(out, strings.Repeat(" ", pad))
	}
	fmt.Fprintf(out, "A:%02X X:%02X Y:%02X P:%02X SP:%02X\n", a, x, y, p, sp)
}

var addressingFormats = map[AddressingMode]string{
	Immediate:           "#$%02X",    // #aa
	Absolute:            "$%04X",     // aaaa
	ZeroPage:            "$%02X",     // aa
	Implied:             "",          //
	Indirect:            "($%04X)",   // (aaaa)
	IndexedX:            "$%04X,X",   // aaaa,X
	IndexedY:            "$%04X,Y",   // aaaa,Y
	ZeroPageIndexedX:    "$%02X,X",   // aa,X
	ZeroPageIndexedY:    "$%02X,Y",   // aa,Y
	PreIndexedIndirect:  "($%02X,X)", // (aa,X)
	PostIndexedIndirect: "($%02X),Y", // (aa),Y
	Relative:            "$%04X",     // aaaa
	Accumulator:         "A",         // A
}
