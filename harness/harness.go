// Package harness replays a per-opcode golden-trace corpus against a CPU
// instance and reports the first mismatch, the way the test suite described
// in the project's validation process is meant to be driven by a CLI runner.
package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/SuperMage03/mos6502-emulator/bus"
	"github.com/SuperMage03/mos6502-emulator/cpu"
)

// addrValue is a single (address, byte) pair as it appears in a corpus
// record's "ram" array.
type addrValue [2]int

// record is one golden-trace test case for a single opcode. Cycles is left
// as raw JSON entries: only its length is ever asserted, never its content.
type record struct {
	Name    string            `json:"name"`
	Initial snapshot          `json:"initial"`
	Final   snapshot          `json:"final"`
	Cycles  []json.RawMessage `json:"cycles"`
}

// snapshot is the architectural state plus sparse memory contents the
// corpus records before and after executing one instruction.
type snapshot struct {
	PC  uint16      `json:"pc"`
	S   byte        `json:"s"`
	A   byte        `json:"a"`
	X   byte        `json:"x"`
	Y   byte        `json:"y"`
	P   byte        `json:"p"`
	RAM []addrValue `json:"ram"`
}

// Mismatch describes the first field or memory location where a replayed
// instruction's actual result diverged from the corpus's expected one.
type Mismatch struct {
	Opcode byte
	Case   int
	Field  string
	Got    string
	Want   string
}

func (m Mismatch) String() string {
	return fmt.Sprintf("opcode $%02X case %d: %s = %s, want %s", m.Opcode, m.Case, m.Field, m.Got, m.Want)
}

// LoadCases parses a single opcode's corpus file (the JSON array format
// described by the test harness's corpus format).
func LoadCases(path string) ([]record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cases []record
	if err := json.Unmarshal(data, &cases); err != nil {
		return nil, fmt.Errorf("harness: parsing %s: %w", path, err)
	}
	return cases, nil
}

// RunCase replays one record against c and returns the first mismatch found,
// or nil if the instruction reproduced the corpus exactly.
func RunCase(c *cpu.CPU, mem *bus.FlatMemory, opcode byte, caseIndex int, r record) *Mismatch {
	mem.Reset()
	for _, kv := range r.Initial.RAM {
		mem.StoreByte(uint16(kv[0]), byte(kv[1]))
	}
	c.SetState(cpu.State{
		PC: r.Initial.PC,
		SP: r.Initial.S,
		A:  r.Initial.A,
		X:  r.Initial.X,
		Y:  r.Initial.Y,
		P:  r.Initial.P,
	})

	n := c.RunInstruction()

	if n != len(r.Cycles) {
		return &Mismatch{opcode, caseIndex, "cycles", fmt.Sprintf("%d", n), fmt.Sprintf("%d", len(r.Cycles))}
	}

	got := c.GetState()
	if got.PC != r.Final.PC {
		return &Mismatch{opcode, caseIndex, "PC", fmt.Sprintf("$%04X", got.PC), fmt.Sprintf("$%04X", r.Final.PC)}
	}
	if got.SP != r.Final.S {
		return &Mismatch{opcode, caseIndex, "SP", fmt.Sprintf("$%02X", got.SP), fmt.Sprintf("$%02X", r.Final.S)}
	}
	if got.A != r.Final.A {
		return &Mismatch{opcode, caseIndex, "A", fmt.Sprintf("$%02X", got.A), fmt.Sprintf("$%02X", r.Final.A)}
	}
	if got.X != r.Final.X {
		return &Mismatch{opcode, caseIndex, "X", fmt.Sprintf("$%02X", got.X), fmt.Sprintf("$%02X", r.Final.X)}
	}
	if got.Y != r.Final.Y {
		return &Mismatch{opcode, caseIndex, "Y", fmt.Sprintf("$%02X", got.Y), fmt.Sprintf("$%02X", r.Final.Y)}
	}
	if got.P != r.Final.P {
		return &Mismatch{opcode, caseIndex, "P", fmt.Sprintf("%08b", got.P), fmt.Sprintf("%08b", r.Final.P)}
	}
	for _, kv := range r.Final.RAM {
		addr, want := uint16(kv[0]), byte(kv[1])
		if got := mem.LoadByte(addr); got != want {
			return &Mismatch{opcode, caseIndex, fmt.Sprintf("RAM[$%04X]", addr), fmt.Sprintf("$%02X", got), fmt.Sprintf("$%02X", want)}
		}
	}
	return nil
}

// RunFile replays every case in one opcode's corpus file and returns the
// first mismatch encountered, or nil if all cases passed.
func RunFile(opcode byte, path string) (*Mismatch, error) {
	cases, err := LoadCases(path)
	if err != nil {
		return nil, err
	}
	mem := bus.NewFlatMemory()
	c := cpu.NewCPU(mem)
	for i, r := range cases {
		if m := RunCase(c, mem, opcode, i, r); m != nil {
			return m, nil
		}
	}
	return nil, nil
}

// RunDir replays every opcode's corpus file in dir (named "XX.json" per the
// corpus format), skipping opcodes the decode table marks "???", and
// returns the first mismatch encountered plus the count of opcodes it
// actually exercised. progress, if non-nil, is called after each opcode's
// file completes successfully, naming the opcode and how many cases it ran.
func RunDir(dir string, progress func(opcode byte, name string, cases int)) (mismatch *Mismatch, opcodesRun int, err error) {
	set := cpu.GetInstructionSet()
	for opcode := 0; opcode < 256; opcode++ {
		inst := set.Lookup(byte(opcode))
		if inst.Name == "???" {
			continue
		}
		path := filepath.Join(dir, fmt.Sprintf("%02x.json", opcode))
		cases, err := LoadCases(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, opcodesRun, err
		}
		mem := bus.NewFlatMemory()
		c := cpu.NewCPU(mem)
		for i, r := range cases {
			if m := RunCase(c, mem, byte(opcode), i, r); m != nil {
				return m, opcodesRun, nil
			}
		}
		opcodesRun++
		if progress != nil {
			progress(byte(opcode), inst.Name, len(cases))
		}
	}
	return nil, opcodesRun, nil
}
