// Command um runs programs written for the word-addressed universal
// machine implemented in package um (see the vm subdirectory). It also
// exposes a disasm subcommand for producing a mnemonic listing of a
// program image, optionally stepped through interactively.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	um "github.com/kstephano-labs/um/vm"
)

// errMissingFile is the CLI-only sentinel for "zero program files given".
var errMissingFile = errors.New("um: no program file given")

// benchmarkSuffix and benchmarkInput seed the canonical ICFP
// self-description benchmark's license-key prompt, grounded directly
// in the original reference implementation's handling of codex.umz.
const (
	benchmarkSuffix = "codex.umz"
	benchmarkInput  = "(\\b.bb)(\\v.vv)06FHPVboundvarHRAkp"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var trace bool
	var raw bool

	root := &cobra.Command{
		Use:           "um [files...]",
		Short:         "Run programs for the word-addressed universal machine",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFiles(args, trace, raw)
		},
	}
	root.Flags().BoolVar(&trace, "debug", false, "trace each instruction before it executes")
	root.Flags().BoolVar(&raw, "raw", false, "put stdin into raw (unbuffered, unechoed) mode for console input")
	root.AddCommand(newDisasmCmd())
	return root
}

// runFiles loads each file's bytes, in argument order, into array 0,
// seeds the benchmark input when applicable, and runs the machine to
// completion. Exit codes: 0 on halt, non-zero on any error.
func runFiles(paths []string, trace, raw bool) error {
	if len(paths) == 0 {
		return errMissingFile
	}

	restoreTerm, err := maybeSetRaw(raw)
	if err != nil {
		return err
	}
	defer restoreTerm()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	m := um.New(bufio.NewReader(os.Stdin), out, um.WithTrace(trace))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("um: reading %s: %w", path, err)
		}
		if err := m.LoadImage(data); err != nil {
			return fmt.Errorf("um: loading %s: %w", path, err)
		}
	}

	if hasSuffix(paths[0], benchmarkSuffix) {
		m.SeedInput(benchmarkInput)
	}

	return m.Run(context.Background())
}

func hasSuffix(path, suffix string) bool {
	if len(path) < len(suffix) {
		return false
	}
	return path[len(path)-len(suffix):] == suffix
}

// maybeSetRaw puts stdin into raw mode the way IntuitionEngine's
// terminal_host.go disables OS-level echo and line buffering before
// handing stdin to a byte-at-a-time consumer, so that opcode 11
// (Input) sees exactly the bytes a hosted program expects with no
// terminal driver in between. It is opt-in: most UM images (including
// the benchmark) read from a pipe or file, not a terminal, and
// MakeRaw on a non-terminal fd simply errors.
func maybeSetRaw(enabled bool) (restore func(), err error) {
	noop := func() {}
	if !enabled {
		return noop, nil
	}
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return noop, nil
	}
	old, err := term.MakeRaw(fd)
	if err != nil {
		return noop, fmt.Errorf("um: failed to set raw mode: %w", err)
	}
	return func() { _ = term.Restore(fd, old) }, nil
}

func newDisasmCmd() *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:           "disasm <file>",
		Short:         "Print a mnemonic listing of a program image",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("um: reading %s: %w", args[0], err)
			}
			if len(data)%4 != 0 {
				return um.ErrMisalignedImage
			}
			platters := make([]um.Word, len(data)/4)
			for i := range platters {
				platters[i] = um.Word(data[i*4])<<24 | um.Word(data[i*4+1])<<16 | um.Word(data[i*4+2])<<8 | um.Word(data[i*4+3])
			}
			if interactive {
				return stepDisassembly(platters)
			}
			for i, p := range platters {
				fmt.Printf("%6d: %s\n", i, um.Disassemble(p))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "step through the listing with a line-edited prompt")
	return cmd
}

// stepDisassembly walks a disassembled listing one platter at a time
// behind a liner prompt, adapted from S370's command/reader
// ConsoleReader — there it drives an operator console against a
// running mainframe, here it steps a static listing, since the UM has
// no operator console of its own to attach to.
func stepDisassembly(platters []um.Word) error {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	idx := 0
	for idx < len(platters) {
		fmt.Printf("%6d: %s\n", idx, um.Disassemble(platters[idx]))
		cmd, err := line.Prompt("(n=next, q=quit) > ")
		if err != nil {
			return nil
		}
		line.AppendHistory(cmd)
		if cmd == "q" || cmd == "quit" {
			return nil
		}
		idx++
	}
	return nil
}
