// This file is part of Gopher2600.
//
// Gopher2600 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher2600 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher2600.  If not, see <https://www.gnu.org/licenses/>.

// dgnemu is the command-line entry point for the core: it parses the flag
// surface named in spec section 6, composes a Machine for the selected
// architecture, optionally plugs a cartridge (directly, or routed through
// a Multi-Pak Interface), and either runs headless or hands control to a
// GDB remote stub. Video rendering, audio mixing and host input are out of
// scope for the core (spec section 1) and are not wired here.
package main

import (
	"fmt"
	"net"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"

	"gopkg.in/urfave/cli.v2"

	"github.com/dgn09/core/cartridgeloader"
	"github.com/dgn09/core/debugger/gdb"
	"github.com/dgn09/core/debugger/govern"
	"github.com/dgn09/core/hardware/cartridge"
	"github.com/dgn09/core/hardware/cpu"
	"github.com/dgn09/core/hardware/instance"
	"github.com/dgn09/core/hardware/machine"
	"github.com/dgn09/core/logger"
)

func main() {
	app := &cli.App{
		Name:  "dgnemu",
		Usage: "Dragon/CoCo/MC-10 emulation core",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "machine", Usage: "named machine configuration (reserved for config-file integration)"},
			&cli.StringFlag{Name: "machine-arch", Value: "dragon64", Usage: "dragon32, dragon64, coco, coco3, mc10"},
			&cli.StringFlag{Name: "machine-cpu", Usage: "6809 or 6309; defaults to the architecture's native CPU"},
			&cli.IntFlag{Name: "ram", Usage: "RAM complement in kilobytes, overriding the architecture default"},
			&cli.StringFlag{Name: "cart", Usage: "path to a cartridge ROM image"},
			&cli.StringFlag{Name: "cart-type", Usage: "explicit cartridge mapper selection"},
			&cli.IntFlag{Name: "mpi-slot", Value: 4, Usage: "accepted for CLI-surface compatibility; real MPI hardware is fixed at four slots"},
			&cli.StringSliceFlag{Name: "mpi-load-cart", Usage: "[N=]NAME: load a cartridge image into MPI slot N (default 0)"},
			&cli.BoolFlag{Name: "gdb", Usage: "start the GDB remote stub and wait for a debugger before running"},
			&cli.StringFlag{Name: "gdb-ip", Value: "127.0.0.1", Usage: "GDB stub listen address"},
			&cli.IntFlag{Name: "gdb-port", Value: 65520, Usage: "GDB stub listen port"},
			&cli.BoolFlag{Name: "trace", Usage: "log every instruction fetch through the logger"},
			&cli.IntFlag{Name: "timeout", Usage: "quit automatically after S seconds (0 disables)"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	ins := instance.NewInstance("")

	cfg := machine.Config{
		Arch:     machine.Arch(c.String("machine-arch")),
		CPUModel: machine.CPUModel(c.String("machine-cpu")),
		RAMSizeK: c.Int("ram"),
	}

	cart, err := buildCartridge(ins, c)
	if err != nil {
		logger.Logf(logger.Allow, "dgnemu", "cartridge: %v", err)
		return cli.Exit(err, 1)
	}
	cfg.Cart = cart

	m, err := machine.New(ins, cfg)
	if err != nil {
		return cli.Exit(err, 1)
	}

	if c.Bool("trace") {
		m.CPU.InstructionHook = func(mc *cpu.CPU) bool {
			logger.Logf(logger.Allow, "dgnemu", "%s", mc)
			return true
		}
	}

	if timeout := c.Int("timeout"); timeout > 0 {
		time.AfterFunc(time.Duration(timeout)*time.Second, func() {
			logger.Logf(logger.Allow, "dgnemu", "timeout of %ds elapsed, quitting", timeout)
			os.Exit(0)
		})
	}

	if c.Bool("gdb") {
		return runWithGDB(m, c)
	}
	return runHeadless(m)
}

// buildCartridge interprets -cart/-cart-type/-mpi-slot/-mpi-load-cart into
// the single Cartridge a Machine is configured with: either a bare ROM
// cartridge plugged directly onto the bus, an MPI with cartridges routed
// into its slots, or nil (the machine substitutes cartridge.Null).
func buildCartridge(ins *instance.Instance, c *cli.Context) (cartridge.Cartridge, error) {
	loads := c.StringSlice("mpi-load-cart")
	if len(loads) == 0 && c.String("cart") == "" {
		return nil, nil
	}

	if len(loads) == 0 {
		rom := cartridge.NewROM(ins, c.String("cart"))
		ld, err := cartridgeloader.NewLoaderFromFilename(c.String("cart"), c.String("cart-type"))
		if err != nil {
			return nil, err
		}
		if err := rom.Attach(ld); err != nil {
			return nil, err
		}
		return rom, nil
	}

	mpi := cartridge.NewMPI(ins)
	for _, spec := range loads {
		slot, name := parseSlotSpec(spec)
		rom := cartridge.NewROM(ins, name)
		ld, err := cartridgeloader.NewLoaderFromFilename(name, c.String("cart-type"))
		if err != nil {
			return nil, err
		}
		if err := rom.Attach(ld); err != nil {
			// A cartridge that fails to attach is not plugged in; the
			// machine continues without it (spec section 7).
			logger.Logf(logger.Allow, "dgnemu", "mpi slot %d: %v", slot, err)
			continue
		}
		mpi.PlugIn(slot, rom)
	}
	return mpi, nil
}

// parseSlotSpec splits an "N=NAME" mpi-load-cart argument into its slot
// index and filename, defaulting to slot 0 when no "N=" prefix is given.
func parseSlotSpec(spec string) (slot int, name string) {
	if i, rest, found := strings.Cut(spec, "="); found {
		if n, err := strconv.Atoi(i); err == nil {
			return n, rest
		}
	}
	return 0, spec
}

// runHeadless drives the machine without any debugger attached, stopping
// only on a genuine execution error, a SIGINT, or the -timeout handler's
// os.Exit.
func runHeadless(m *machine.Machine) error {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)

	errCh := make(chan error, 1)
	go func() {
		errCh <- m.RunUntil(func() govern.RunState { return govern.Running })
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return cli.Exit(err, 1)
		}
		return nil
	case <-sigCh:
		return nil
	}
}

// runWithGDB starts the GDB stub and keeps the machine's run loop in lock
// step with it: the stub's State method is the RunUntil state function, so
// a connected debugger's c/s/^C traffic directly governs execution, per
// the run-lock coordination spec section 5 describes.
func runWithGDB(m *machine.Machine, c *cli.Context) error {
	addr := net.JoinHostPort(c.String("gdb-ip"), strconv.Itoa(c.Int("gdb-port")))
	server, err := gdb.NewServer(m, addr)
	if err != nil {
		return cli.Exit(err, 1)
	}
	logger.Logf(logger.Allow, "dgnemu", "gdb stub listening on %s", server.Addr())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	go func() {
		<-sigCh
		server.Close()
	}()

	serveErrCh := make(chan error, 1)
	go func() { serveErrCh <- server.Serve() }()

	for {
		if err := m.RunUntil(server.State); err != nil {
			return cli.Exit(err, 1)
		}
		select {
		case <-serveErrCh:
			return nil
		default:
		}
		if server.State() == govern.Stopped {
			time.Sleep(time.Millisecond)
		}
	}
}
