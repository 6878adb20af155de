package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"
	"gopkg.in/urfave/cli.v2"

	"github.com/flga/hines/nes"
)

var (
	paneStyle  = lipgloss.NewStyle().Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true)
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

type monitorModel struct {
	console *nes.Console

	prevPC uint16
	lastOp string
	err    error
}

func (m monitorModel) Init() tea.Cmd {
	return nil
}

func (m monitorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case " ", "j":
			m.prevPC = m.console.State().PC
			m.lastOp = strings.TrimRight(m.console.Disassemble(), "\n")
			if err := m.console.Step(); err != nil {
				m.err = err
				return m, tea.Quit
			}

		case "r":
			m.console.Reset()
			m.lastOp = ""
		}
	}
	return m, nil
}

// registers renders the architectural state the way the trace lines do,
// with the flag letters spelled out.
func (m monitorModel) registers() string {
	s := m.console.State()

	var flags strings.Builder
	for i, letter := range "NV-BDIZC" {
		if s.P&(1<<(7-i)) > 0 {
			flags.WriteRune(letter)
		} else {
			flags.WriteRune('.')
		}
	}

	return fmt.Sprintf(
		"PC: %04X (%04X)\n A: %02X\n X: %02X\n Y: %02X\nSP: %02X\n P: %02X %s",
		s.PC, m.prevPC, s.A, s.X, s.Y, s.S, s.P, flags.String(),
	)
}

// memoryWindow renders a few 16-byte rows around the program counter, with
// the current byte bracketed.
func (m monitorModel) memoryWindow() string {
	pc := m.console.State().PC
	start := pc &^ 0x000F

	var rows []string
	for r := 0; r < 6; r++ {
		base := start + uint16(r*16)
		row := fmt.Sprintf("%04X | ", base)
		for i, b := range m.console.ReadChunk(base, 16) {
			if base+uint16(i) == pc {
				row += fmt.Sprintf("[%02X]", b)
			} else {
				row += fmt.Sprintf(" %02X ", b)
			}
		}
		rows = append(rows, row)
	}
	return strings.Join(rows, "\n")
}

func (m monitorModel) View() string {
	next := strings.TrimRight(m.console.Disassemble(), "\n")

	var last string
	if m.lastOp != "" {
		last = dimStyle.Render(m.lastOp)
	}

	op := m.console.Read(m.console.State().PC)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		lipgloss.JoinHorizontal(
			lipgloss.Top,
			paneStyle.Render(m.memoryWindow()),
			paneStyle.Render(m.registers()),
		),
		"",
		last,
		titleStyle.Render(next),
		dimStyle.Render(spew.Sdump(nes.Decode(op))),
		dimStyle.Render("space/j step · r reset · q quit"),
	)
}

func runMonitor(c *cli.Context) error {
	console, err := load(c)
	if err != nil {
		return err
	}

	final, err := tea.NewProgram(monitorModel{console: console}).Run()
	if err != nil {
		return err
	}

	if m := final.(monitorModel); m.err != nil {
		return fmt.Errorf("stopped: %s", m.err)
	}
	return nil
}
