// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package debugshell is an interactive line-command console for stepping a
// CPU, inspecting its registers and memory, and setting breakpoints. It
// plays the role the teacher's host package plays for its assembler and
// disassembler, narrowed to the CPU core's own debug surface.
package debugshell

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/cmd"

	"github.com/SuperMage03/mos6502-emulator/bus"
	"github.com/SuperMage03/mos6502-emulator/cpu"
)

var cmds *cmd.Tree

func init() {
	cmds = cmd.NewTree("mos6502dbg", []cmd.Command{
		{
			Name:     "help",
			Shortcut: "?",
			Brief:    "Display help for a command",
			Data:     (*Shell).cmdHelp,
		},
		{
			Name:     "step",
			Shortcut: "s",
			Brief:    "Execute a single instruction",
			HelpText: "step",
			Data:     (*Shell).cmdStep,
		},
		{
			Name:     "run",
			Shortcut: "r",
			Brief:    "Run until a breakpoint fires",
			HelpText: "run",
			Data:     (*Shell).cmdRun,
		},
		{
			Name:     "breakpoint",
			Shortcut: "b",
			Brief:    "Breakpoint commands",
			Subcommands: cmd.NewTree("Breakpoint", []cmd.Command{
				{
					Name:     "list",
					HelpText: "breakpoint list",
					Data:     (*Shell).cmdBreakpointList,
				},
				{
					Name:     "add",
					HelpText: "breakpoint add <address>",
					Data:     (*Shell).cmdBreakpointAdd,
				},
				{
					Name:     "remove",
					HelpText: "breakpoint remove <address>",
					Data:     (*Shell).cmdBreakpointRemove,
				},
			}),
		},
		{
			Name:     "databreakpoint",
			Shortcut: "db",
			Brief:    "Data breakpoint commands",
			Subcommands: cmd.NewTree("DataBreakpoint", []cmd.Command{
				{
					Name:     "list",
					HelpText: "databreakpoint list",
					Data:     (*Shell).cmdDataBreakpointList,
				},
				{
					Name:     "add",
					HelpText: "databreakpoint add <address> [<value>]",
					Data:     (*Shell).cmdDataBreakpointAdd,
				},
				{
					Name:     "remove",
					HelpText: "databreakpoint remove <address>",
					Data:     (*Shell).cmdDataBreakpointRemove,
				},
			}),
		},
		{
			Name:     "reg",
			Brief:    "Display register contents",
			HelpText: "reg",
			Data:     (*Shell).cmdReg,
		},
		{
			Name:     "mem",
			Brief:    "Display a range of memory",
			HelpText: "mem <address> [<length>]",
			Data:     (*Shell).cmdMem,
		},
		{
			Name:     "reset",
			Brief:    "Perform a power-on reset",
			HelpText: "reset",
			Data:     (*Shell).cmdReset,
		},
		{
			Name:     "quit",
			Shortcut: "q",
			Brief:    "Exit the debug shell",
			HelpText: "quit",
			Data:     (*Shell).cmdQuit,
		},
	})
}

// Shell is an interactive debugging console wrapping one CPU and its
// memory. It implements cpu.BreakpointHandler so that breakpoints set
// through its own commands halt the run loop.
type Shell struct {
	CPU       *cpu.CPU
	Mem       *bus.FlatMemory
	debugger  *cpu.Debugger
	input     *bufio.Scanner
	output    *bufio.Writer
	breakHit  string
	done      bool
}

// New creates a shell around a freshly reset CPU backed by a flat 64KiB
// memory, with a debugger already attached.
func New() *Shell {
	mem := bus.NewFlatMemory()
	c := cpu.NewCPU(mem)
	sh := &Shell{CPU: c, Mem: mem}
	sh.debugger = cpu.NewDebugger(sh)
	c.AttachDebugger(sh.debugger)
	return sh
}

// OnBreakpoint implements cpu.BreakpointHandler.
func (s *Shell) OnBreakpoint(c *cpu.CPU, b *cpu.Breakpoint) {
	s.breakHit = fmt.Sprintf("breakpoint hit at $%04X", b.Address)
}

// OnDataBreakpoint implements cpu.BreakpointHandler.
func (s *Shell) OnDataBreakpoint(c *cpu.CPU, b *cpu.DataBreakpoint) {
	s.breakHit = fmt.Sprintf("data breakpoint hit at $%04X", b.Address)
}

// Run reads commands from r and writes responses to w until the shell's
// quit command is invoked or r is exhausted.
func (s *Shell) Run(r io.Reader, w io.Writer) {
	s.input = bufio.NewScanner(r)
	s.output = bufio.NewWriter(w)
	defer s.output.Flush()

	s.printf("%s\n", s.CPU.String())
	for !s.done {
		s.printf("* ")
		s.output.Flush()
		if !s.input.Scan() {
			return
		}
		line := strings.TrimSpace(s.input.Text())
		if line == "" {
			continue
		}

		sel, err := cmds.Lookup(line)
		switch {
		case err == cmd.ErrNotFound:
			s.println("command not found.")
			continue
		case err == cmd.ErrAmbiguous:
			s.println("command is ambiguous.")
			continue
		case err != nil:
			s.printf("ERROR: %v\n", err)
			continue
		}
		if sel.Command == nil {
			continue
		}

		handler := sel.Command.Data.(func(*Shell, cmd.Selection) error)
		if err := handler(s, sel); err != nil {
			s.printf("ERROR: %v\n", err)
		}
	}
}

func (s *Shell) print(args ...interface{})                  { fmt.Fprint(s.output, args...) }
func (s *Shell) printf(format string, args ...interface{})  { fmt.Fprintf(s.output, format, args...) }
func (s *Shell) println(args ...interface{})                { fmt.Fprintln(s.output, args...) }

func (s *Shell) cmdHelp(sel cmd.Selection) error {
	for _, c := range cmds.Commands {
		if c.Brief != "" {
			s.printf("  %-12s  %s\n", c.Name, c.Brief)
		}
	}
	return nil
}

func (s *Shell) cmdStep(sel cmd.Selection) error {
	s.breakHit = ""
	n := s.CPU.RunInstruction()
	s.printf("%s  (%d cycles)\n", s.CPU.String(), n)
	return nil
}

func (s *Shell) cmdRun(sel cmd.Selection) error {
	s.breakHit = ""
	const maxInstructions = 1 << 20
	for i := 0; i < maxInstructions && s.breakHit == ""; i++ {
		s.CPU.RunInstruction()
	}
	if s.breakHit != "" {
		s.println(s.breakHit)
	}
	s.printf("%s\n", s.CPU.String())
	return nil
}

func (s *Shell) cmdBreakpointList(sel cmd.Selection) error {
	for _, b := range s.debugger.GetBreakpoints() {
		s.printf("  $%04X%s\n", b.Address, disabledSuffix(b.Disabled))
	}
	return nil
}

func (s *Shell) cmdBreakpointAdd(sel cmd.Selection) error {
	addr, err := parseAddress(sel.Args)
	if err != nil {
		return err
	}
	s.debugger.AddBreakpoint(addr)
	s.printf("breakpoint set at $%04X\n", addr)
	return nil
}

func (s *Shell) cmdBreakpointRemove(sel cmd.Selection) error {
	addr, err := parseAddress(sel.Args)
	if err != nil {
		return err
	}
	s.debugger.RemoveBreakpoint(addr)
	return nil
}

func (s *Shell) cmdDataBreakpointList(sel cmd.Selection) error {
	for _, b := range s.debugger.GetDataBreakpoints() {
		if b.Conditional {
			s.printf("  $%04X == $%02X%s\n", b.Address, b.Value, disabledSuffix(b.Disabled))
		} else {
			s.printf("  $%04X%s\n", b.Address, disabledSuffix(b.Disabled))
		}
	}
	return nil
}

func (s *Shell) cmdDataBreakpointAdd(sel cmd.Selection) error {
	if len(sel.Args) == 0 {
		return fmt.Errorf("missing address")
	}
	addr, err := parseAddress(sel.Args[:1])
	if err != nil {
		return err
	}
	if len(sel.Args) > 1 {
		v, err := strconv.ParseUint(strings.TrimPrefix(sel.Args[1], "$"), 16, 8)
		if err != nil {
			return fmt.Errorf("invalid value %q", sel.Args[1])
		}
		s.debugger.AddConditionalDataBreakpoint(addr, byte(v))
		s.printf("data breakpoint set at $%04X == $%02X\n", addr, byte(v))
		return nil
	}
	s.debugger.AddDataBreakpoint(addr)
	s.printf("data breakpoint set at $%04X\n", addr)
	return nil
}

func (s *Shell) cmdDataBreakpointRemove(sel cmd.Selection) error {
	addr, err := parseAddress(sel.Args)
	if err != nil {
		return err
	}
	s.debugger.RemoveDataBreakpoint(addr)
	return nil
}

func (s *Shell) cmdReg(sel cmd.Selection) error {
	s.printf("%s\n", s.CPU.String())
	return nil
}

func (s *Shell) cmdMem(sel cmd.Selection) error {
	if len(sel.Args) == 0 {
		return fmt.Errorf("usage: mem <address> [<length>]")
	}
	addr, err := parseAddress(sel.Args[:1])
	if err != nil {
		return err
	}
	length := 16
	if len(sel.Args) > 1 {
		n, err := strconv.ParseInt(sel.Args[1], 0, 32)
		if err != nil {
			return fmt.Errorf("invalid length %q", sel.Args[1])
		}
		length = int(n)
	}
	for i := 0; i < length; i += 8 {
		s.printf("$%04X:", addr+uint16(i))
		for j := i; j < i+8 && j < length; j++ {
			s.printf(" %02X", s.CPU.ReadMemory(addr+uint16(j)))
		}
		s.println()
	}
	return nil
}

func (s *Shell) cmdReset(sel cmd.Selection) error {
	s.CPU.Reset()
	s.printf("%s\n", s.CPU.String())
	return nil
}

func (s *Shell) cmdQuit(sel cmd.Selection) error {
	s.done = true
	return nil
}

func parseAddress(args []string) (uint16, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing address")
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(args[0], "$"), 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q", args[0])
	}
	return uint16(n), nil
}

func disabledSuffix(disabled bool) string {
	if disabled {
		return " (disabled)"
	}
	return ""
}
