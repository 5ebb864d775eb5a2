// Command botvm runs, assembles, and debugs programs for the BOT stack
// machine.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dice-systems/botvm/internal/asm"
	"github.com/dice-systems/botvm/internal/config"
	"github.com/dice-systems/botvm/internal/debugger"
	"github.com/dice-systems/botvm/internal/hostio"
	"github.com/dice-systems/botvm/internal/hostlog"
	"github.com/dice-systems/botvm/internal/loader"
	"github.com/dice-systems/botvm/internal/report"
	"github.com/dice-systems/botvm/vm"
)

var (
	configPath string
	argument   string
	debugFlag  bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "botvm",
		Short:         "Run, assemble, and debug BOT stack-machine programs",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().StringVar(&argument, "arg", "", "payload returned to a guest's first ARGUMENT interrupt")
	root.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable verbose host-side logging")

	root.AddCommand(newRunCmd(), newDebugCmd(), newAsmCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run <rom>",
		Short: "Load a ROM file and run it to completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, m, log, err := prepare(args[0])
			if err != nil {
				return err
			}
			defer log.Sync()

			host := hostio.NewHost(os.Stdout, os.Stdin, cfg.Argument, log)
			runLoop(m, host)

			// Matches the source's main(): an engine fault still exits 0
			// once the report has been printed. Only a config or load
			// failure in prepare above produces a non-zero exit.
			if m.Int() != vm.IntEndOfProgram {
				report.Write(os.Stderr, m)
			}
			return nil
		},
	}
}

func newDebugCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "debug <rom>",
		Short: "Load a ROM file and step through it interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, m, log, err := prepare(args[0])
			if err != nil {
				return err
			}
			defer log.Sync()

			host := hostio.NewHost(os.Stdout, os.Stdin, cfg.Argument, log)
			log.Debug("debugger session start")
			err = debugger.Run(m, host)
			log.Debug("debugger session stop")
			return err
		},
	}
}

func newAsmCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "asm <source>",
		Short: "Assemble a mnemonic source file into a ROM image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			rom, err := asm.Assemble(string(src))
			if err != nil {
				return err
			}
			if out == "" {
				out = args[0] + ".rom"
			}
			return os.WriteFile(out, rom, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output ROM path (default: <source>.rom)")
	return cmd
}

// prepare loads config, constructs a VM, and loads romPath into it.
func prepare(romPath string) (config.Config, *vm.VM, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, nil, fmt.Errorf("config: %w", err)
	}
	if argument != "" {
		cfg.Argument = argument
	}
	if debugFlag {
		cfg.Debug = true
	}

	log := hostlog.New(cfg.Debug, false)

	m := vm.New(cfg.Options()...)
	if err := loader.Load(m, romPath); err != nil {
		return config.Config{}, nil, nil, err
	}

	log.Debug("rom loaded", zap.String("path", romPath), zap.Uint32("size", m.ROMSize()))
	return cfg, m, log, nil
}

// runLoop alternates engine execution and host service exactly as the
// source's do { bot_vm_run(vm); bot_vm_io_run(vm); } while (!vm->INT) loop:
// run until suspended, let the host service a cooperative interrupt, and
// keep going until an uncleared interrupt remains (an engine fault, or a
// cooperative code the host does not recognize).
func runLoop(m *vm.VM, host *hostio.Host) {
	for {
		m.Run()
		if !m.Int().IsCooperative() {
			return
		}
		host.Service(m)
		if !m.Running() {
			return
		}
	}
}
