package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"

	"gopkg.in/urfave/cli.v2"

	"github.com/flga/hines/nes"
)

func main() {
	app := &cli.App{
		Name:    "hines",
		Usage:   "a 2A03 interpreter with a terminal front-end",
		Version: "v0.1.0",
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run an image with the terminal front-end",
				ArgsUsage: "<rom.nes | image.bin>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "treat the file as a raw program image, not iNES",
					},
					&cli.StringFlag{
						Name:  "org",
						Usage: "load address for raw images",
						Value: "0x0600",
					},
					&cli.StringFlag{
						Name:  "trace",
						Usage: "write an instruction trace to `FILE`",
					},
					&cli.IntFlag{
						Name:  "ips",
						Usage: "instructions per frame",
						Value: 700,
					},
				},
				Action: runGame,
			},
			{
				Name:      "trace",
				Usage:     "execute and print one trace line per instruction",
				ArgsUsage: "<rom.nes | image.bin>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "treat the file as a raw program image, not iNES",
					},
					&cli.StringFlag{
						Name:  "org",
						Usage: "load address for raw images",
						Value: "0x0600",
					},
					&cli.StringFlag{
						Name:  "pc",
						Usage: "override the entry point, e.g. 0xC000",
					},
					&cli.IntFlag{
						Name:  "steps",
						Usage: "how many instructions to execute",
						Value: 100,
					},
				},
				Action: runTrace,
			},
			{
				Name:      "info",
				Usage:     "print the header of an iNES image",
				ArgsUsage: "<rom.nes>",
				Action:    runInfo,
			},
			{
				Name:      "debug",
				Usage:     "single-step an image in an interactive monitor",
				ArgsUsage: "<rom.nes | image.bin>",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "treat the file as a raw program image, not iNES",
					},
					&cli.StringFlag{
						Name:  "org",
						Usage: "load address for raw images",
						Value: "0x0600",
					},
				},
				Action: runMonitor,
			},
		},
	}

	sort.Sort(cli.FlagsByName(app.Flags))
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func parseAddr(s string) (uint16, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %s", s, err)
	}
	return uint16(v), nil
}

// load builds a console from the command line: an iNES image by default, or
// a raw program seeded at --org with --raw.
func load(c *cli.Context) (*nes.Console, error) {
	path := c.Args().First()
	if path == "" {
		cli.ShowSubcommandHelp(c)
		return nil, cli.Exit("missing image argument", 2)
	}

	console := nes.NewConsole(nil)

	if c.Bool("raw") {
		org, err := parseAddr(c.String("org"))
		if err != nil {
			return nil, err
		}
		program, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		console.LoadProgram(program, org)
		return console, nil
	}

	if err := console.LoadPath(path); err != nil {
		return nil, err
	}
	return console, nil
}

func runTrace(c *cli.Context) error {
	console, err := load(c)
	if err != nil {
		return err
	}

	if pc := c.String("pc"); pc != "" {
		addr, err := parseAddr(pc)
		if err != nil {
			return err
		}
		console.SetPC(addr)
	}

	for i := 0; i < c.Int("steps"); i++ {
		fmt.Print(console.Disassemble())
		if err := console.Step(); err != nil {
			return err
		}
	}
	return nil
}

func runInfo(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		cli.ShowSubcommandHelp(c)
		return cli.Exit("missing image argument", 2)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cart, err := nes.LoadINES(f)
	if err != nil {
		return err
	}

	fmt.Printf("mapper:     %d\n", cart.Mapper)
	fmt.Printf("prg:        %d x 16 KiB\n", cart.PRGBanks)
	fmt.Printf("chr:        %d x 8 KiB\n", cart.CHRBanks)
	fmt.Printf("mirroring:  %s\n", cart.MirrorMode)
	fmt.Printf("battery:    %t\n", cart.SaveRAM)
	fmt.Printf("trainer:    %t\n", cart.Trainer != nil)
	return nil
}
