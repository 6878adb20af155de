package nes

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Addresses of the host collaboration contract: between steps a front-end
// may deposit entropy and the last keypress into the zero page and read the
// 32x32 one-byte-per-pixel frame the program maintains. The core neither
// produces nor consumes these cells, it only carries them.
const (
	EntropyAddr = uint16(0x00FE)
	InputAddr   = uint16(0x00FF)

	FrameAddr   = uint16(0x0200)
	FrameWidth  = 32
	FrameHeight = 32
	FrameSize   = FrameWidth * FrameHeight
)

// Pixel values of the frame contract. Anything other than background and
// body reads as food.
const (
	PixelBackground byte = 0x00
	PixelBody       byte = 0x01
)

// A Console owns a cpu and the bus it executes against. The interpreter is
// strictly single-threaded: instructions run atomically, and the only
// interleaving point is the hook a host may install between steps, at which
// every write performed by the previous instruction is observable.
type Console struct {
	cartridge *Cartridge
	cpu       *cpu
	bus       *sysBus

	// brkSeen carries the Break signal from the last step; the driver
	// clears the in-core bit so BRK behaves as an edge, not a level.
	brkSeen bool

	traceFile *os.File
}

// State is a snapshot of the architectural registers, for monitors and
// tests.
type State struct {
	A, X, Y, S byte
	PC         uint16
	P          byte
}

// NewConsole builds a console with empty RAM and a writable PRG window.
// When debug is non-nil, one nestest-style line per instruction is written
// to it before the instruction executes.
func NewConsole(debug io.Writer) *Console {
	return &Console{
		cpu: newCpu(debug),
		bus: newSysBus(),
	}
}

// Load attaches a parsed cartridge, making the PRG window read-only ROM,
// and resets.
func (c *Console) Load(cart *Cartridge) {
	c.cartridge = cart
	c.bus.cartridge = cart
	c.Reset()
}

// LoadPath reads and attaches an iNES image from disk. The file handle
// lives only for the duration of the parse.
func (c *Console) LoadPath(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("unable to open rom: %s", err)
	}
	defer f.Close()

	cart, err := LoadINES(f)
	if err != nil {
		return err
	}

	c.Load(cart)
	return nil
}

// LoadProgram seeds a raw program image at org, points the reset vector at
// it, and resets. The image must fit below the PPU window; the typical org
// for bare listings is 0x0600.
func (c *Console) LoadProgram(program []byte, org uint16) {
	c.bus.writeChunk(org, program)
	c.bus.writeWord(resetAddr, org)
	c.Reset()
}

// Reset reinitialises registers and flags and seeds PC from the reset
// vector. RAM contents survive, as they do on hardware.
func (c *Console) Reset() {
	c.cpu.reset(c.bus)
	c.brkSeen = false
}

// Step executes exactly one instruction. It returns ErrHalted forever after
// a JAM opcode, and a fatal decode or stack error terminates the run with
// the failing opcode and program counter attached.
func (c *Console) Step() error {
	err := c.cpu.execute(c.bus)

	c.brkSeen = c.cpu.p&brk != 0
	c.cpu.p &^= brk

	return err
}

// Break reports whether the previous step executed BRK. The signal is
// cleared by the next step.
func (c *Console) Break() bool {
	return c.brkSeen
}

// Run steps the console until the hook returns false or a step fails. The
// hook runs before every instruction; this is the host's window for
// injecting input bytes and painting the frame.
func (c *Console) Run(hook func(*Console) bool) error {
	for {
		if hook != nil && !hook(c) {
			return nil
		}

		if err := c.Step(); err != nil {
			return err
		}
	}
}

// TraceTo opens path and streams the instruction trace to it. The file
// belongs to the console and is flushed and closed by Close.
func (c *Console) TraceTo(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to open trace log: %s", err)
	}

	if c.traceFile != nil {
		c.traceFile.Close()
	}
	c.traceFile = f
	c.cpu.debug = f
	return nil
}

// Close releases the trace log, if any.
func (c *Console) Close() error {
	if c.traceFile == nil {
		return nil
	}

	err := c.traceFile.Sync()
	if cerr := c.traceFile.Close(); err == nil {
		err = cerr
	}
	c.traceFile = nil
	c.cpu.debug = nil
	return err
}

// SetPC repoints the program counter, bypassing the reset vector. Automated
// test ROMs ask for entry points the vector does not name.
func (c *Console) SetPC(pc uint16) {
	c.cpu.pc = pc
}

// State returns a register snapshot.
func (c *Console) State() State {
	return State{
		A:  c.cpu.a,
		X:  c.cpu.x,
		Y:  c.cpu.y,
		S:  c.cpu.s,
		PC: c.cpu.pc,
		P:  byte(c.cpu.p | unused),
	}
}

// Cartridge returns the attached cartridge, or nil.
func (c *Console) Cartridge() *Cartridge {
	return c.cartridge
}

// Read returns the byte at addr, as the cpu would see it.
func (c *Console) Read(addr uint16) byte {
	return c.bus.read(addr)
}

// Write stores v at addr through the bus.
func (c *Console) Write(addr uint16, v byte) {
	c.bus.write(addr, v)
}

// ReadWord reads a little-endian word without the page-wrap defect.
func (c *Console) ReadWord(addr uint16) uint16 {
	return c.bus.readWord(addr, false)
}

// WriteWord stores a little-endian word.
func (c *Console) WriteWord(addr uint16, v uint16) {
	c.bus.writeWord(addr, v)
}

// ReadChunk copies n bytes starting at addr. The result does not alias
// console memory.
func (c *Console) ReadChunk(addr uint16, n int) []byte {
	return c.bus.readChunk(addr, n)
}

// WriteChunk stores data starting at addr.
func (c *Console) WriteChunk(addr uint16, data []byte) {
	c.bus.writeChunk(addr, data)
}

// Frame copies out the 1024-byte framebuffer region.
func (c *Console) Frame() []byte {
	return c.bus.readChunk(FrameAddr, FrameSize)
}

// Disassemble renders the instruction at the current PC as one trace line,
// without executing it.
func (c *Console) Disassemble() string {
	var sb strings.Builder
	inst := instructions[c.bus.read(c.cpu.pc)]
	disassemble(&sb, c.bus, c.cpu.pc, c.cpu.a, c.cpu.x, c.cpu.y, byte(c.cpu.p|unused), c.cpu.s, inst)
	return sb.String()
}
