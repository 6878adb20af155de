package main

import (
	"fmt"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/urfave/cli.v2"

	"github.com/flga/hines/nes"
)

// The frame contract gives one byte per pixel: 0 is background, 1 is the
// snake, anything else is food. Two terminal cells per pixel keeps the
// aspect ratio near square.
var (
	backgroundCell = lipgloss.NewStyle().Background(lipgloss.Color("0")).Render("  ")
	bodyCell       = lipgloss.NewStyle().Background(lipgloss.Color("10")).Render("  ")
	foodCell       = lipgloss.NewStyle().Background(lipgloss.Color("15")).Render("  ")

	statusStyle = lipgloss.NewStyle().Faint(true)
)

type frameMsg time.Time

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

type gameModel struct {
	console *nes.Console
	ips     int

	over bool
	err  error
}

func (m gameModel) Init() tea.Cmd {
	return frameTick()
}

func (m gameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "up", "w":
			m.console.Write(nes.InputAddr, 'w')
		case "down", "s":
			m.console.Write(nes.InputAddr, 's')
		case "left", "a":
			m.console.Write(nes.InputAddr, 'a')
		case "right", "d":
			m.console.Write(nes.InputAddr, 'd')
		}
		return m, nil

	case frameMsg:
		if m.over {
			return m, nil
		}

		for i := 0; i < m.ips; i++ {
			m.console.Write(nes.EntropyAddr, byte(rand.Intn(256)))

			if err := m.console.Step(); err != nil {
				m.over = true
				if err != nes.ErrHalted {
					m.err = err
				}
				return m, nil
			}

			if m.console.Break() {
				m.over = true
				return m, nil
			}
		}
		return m, frameTick()
	}

	return m, nil
}

func (m gameModel) View() string {
	frame := m.console.Frame()

	rows := make([]string, 0, nes.FrameHeight+1)
	for y := 0; y < nes.FrameHeight; y++ {
		var row string
		for x := 0; x < nes.FrameWidth; x++ {
			switch frame[y*nes.FrameWidth+x] {
			case nes.PixelBackground:
				row += backgroundCell
			case nes.PixelBody:
				row += bodyCell
			default:
				row += foodCell
			}
		}
		rows = append(rows, row)
	}

	status := "arrows/wasd to steer, q to quit"
	if m.err != nil {
		status = m.err.Error()
	} else if m.over {
		status = "game over, q to quit"
	}
	rows = append(rows, statusStyle.Render(status))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func runGame(c *cli.Context) error {
	console, err := load(c)
	if err != nil {
		return err
	}

	if path := c.String("trace"); path != "" {
		if err := console.TraceTo(path); err != nil {
			return err
		}
		defer console.Close()
	}

	model := gameModel{
		console: console,
		ips:     c.Int("ips"),
	}

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return err
	}

	if m := final.(gameModel); m.err != nil {
		return fmt.Errorf("emulation stopped: %s", m.err)
	}
	return nil
}
