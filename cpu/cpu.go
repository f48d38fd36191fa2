// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import (
	"fmt"

	"github.com/SuperMage03/mos6502-emulator/bus"
)

// Interrupt and reset vectors.
const (
	vectorNMI    = 0xfffa
	vectorReset  = 0xfffc
	vectorIRQBRK = 0xfffe
)

// CPU emulates a single MOS 6502 core: registers, decode table, and the
// transient state of whatever instruction is currently being fetched,
// resolved, or executed.
type CPU struct {
	Reg          Registers
	Mem          bus.Memory
	Cycles       uint64
	instructions *InstructionSet
	debugger     *Debugger
	storeByte    func(cpu *CPU, addr uint16, v byte)

	// Decode-in-flight state, valid only between the opcode fetch and the
	// moment the operation function runs. cur == nil means no instruction
	// is currently in flight.
	cur             *Instruction
	ref             OperandRef
	pageCrossed     bool
	branchOffset    int8
	extraCycles     int
	remainingCycles int
	executed        bool
}

// NewCPU creates a CPU wired to mem and performs a power-on RESET.
func NewCPU(mem bus.Memory) *CPU {
	cpu := &CPU{
		Mem:          mem,
		instructions: GetInstructionSet(),
		storeByte:    (*CPU).storeByteNormal,
	}
	cpu.Reg.Init()
	cpu.Reset()
	return cpu
}

// Connect installs bus as the CPU's memory and performs a power-on RESET.
func (cpu *CPU) Connect(mem bus.Memory) {
	cpu.Mem = mem
	cpu.Reset()
}

// RunCycle advances the CPU by a single clock cycle, driving the
// fetch/resolve/execute state machine described by the decode table: an
// opcode is fetched and its operand resolved on the first cycle of an
// instruction, and the operation function runs on the cycle its base cost
// expires, possibly extending remainingCycles for a taken or page-crossing
// branch or a page-crossing indexed read.
func (cpu *CPU) RunCycle() {
	cpu.Cycles++

	if cpu.cur == nil {
		if cpu.debugger != nil {
			cpu.debugger.onUpdatePC(cpu, cpu.Reg.PC)
		}
		opcode := cpu.Mem.LoadByte(cpu.Reg.PC)
		cpu.Reg.PC++
		cpu.cur = cpu.instructions.Lookup(opcode)
		cpu.ref, cpu.pageCrossed = cpu.resolve(cpu.cur.Mode)
		cpu.remainingCycles = int(cpu.cur.Cycles) - 1
		cpu.executed = false
		if cpu.remainingCycles <= 0 {
			cpu.execute()
		}
		return
	}

	cpu.remainingCycles--
	if cpu.remainingCycles <= 0 && !cpu.executed {
		cpu.execute()
		return
	}
	if cpu.remainingCycles <= 0 && cpu.executed {
		cpu.cur = nil
	}
}

// execute runs the current instruction's operation function and folds any
// cycle extension it requests (via extraCycles, set by branch()) plus the
// decode table's page-cross penalty back into remainingCycles.
func (cpu *CPU) execute() {
	cpu.extraCycles = 0
	cpu.cur.fn(cpu, cpu.cur, cpu.ref, cpu.pageCrossed)
	cpu.executed = true

	extra := cpu.extraCycles
	if cpu.pageCrossed {
		extra += int(cpu.cur.BPCycles)
	}
	cpu.remainingCycles += extra
	if cpu.remainingCycles <= 0 {
		cpu.cur = nil
	}
}

// RunInstruction drives RunCycle until the in-flight instruction (including
// any cycle extension) has fully retired, and returns the number of cycles
// it consumed. Used by the golden-trace harness, which checks whole
// instructions rather than individual cycles.
func (cpu *CPU) RunInstruction() int {
	n := 0
	cpu.RunCycle()
	n++
	for cpu.cur != nil {
		cpu.RunCycle()
		n++
	}
	return n
}

// ReadMemory and WriteMemory are pass-throughs to the Bus, exposed so a
// host can inspect or poke memory without reaching into cpu.Mem directly.
func (cpu *CPU) ReadMemory(addr uint16) byte {
	return cpu.Mem.LoadByte(addr)
}

func (cpu *CPU) WriteMemory(addr uint16, v byte) bool {
	return cpu.Mem.StoreByte(addr, v)
}

// State is a snapshot of the CPU's architectural registers, used by the
// golden-trace harness to load an initial state and compare a final one.
type State struct {
	PC uint16
	SP byte
	A  byte
	X  byte
	Y  byte
	P  byte
}

// GetState snapshots the current architectural state. It does not disturb
// any decode-in-progress; the harness only calls it at instruction
// boundaries.
func (cpu *CPU) GetState() State {
	return State{
		PC: cpu.Reg.PC,
		SP: cpu.Reg.SP,
		A:  cpu.Reg.A,
		X:  cpu.Reg.X,
		Y:  cpu.Reg.Y,
		P:  cpu.Reg.SaveFullPS(),
	}
}

// SetState loads a previously captured (or test-corpus-supplied)
// architectural state.
func (cpu *CPU) SetState(s State) {
	cpu.Reg.PC = s.PC
	cpu.Reg.SP = s.SP
	cpu.Reg.A = s.A
	cpu.Reg.X = s.X
	cpu.Reg.Y = s.Y
	cpu.Reg.RestoreFullPS(s.P)
}

// Reset performs a power-on/hardware RESET: registers take their canonical
// power-on values, PC loads from the reset vector, and any decode in
// flight is discarded. Real silicon spends 8 cycles doing this before
// fetching its first instruction.
func (cpu *CPU) Reset() {
	cpu.Reg.Init()
	cpu.Reg.PC = cpu.Mem.LoadAddress(vectorReset)
	cpu.cur = nil
	cpu.remainingCycles = 0
	cpu.executed = false
	cpu.extraCycles = 0
	cpu.Cycles += 8
}

// IRQ requests a maskable hardware interrupt. It is ignored while the
// interrupt-disable flag is set.
func (cpu *CPU) IRQ() {
	if cpu.Reg.InterruptDisable {
		return
	}
	cpu.handleInterrupt(false, vectorIRQBRK)
	cpu.Cycles += 7
}

// NMI requests a non-maskable interrupt; unlike IRQ it is never ignored.
func (cpu *CPU) NMI() {
	cpu.handleInterrupt(false, vectorNMI)
	cpu.Cycles += 7
}

// handleInterrupt is the common entry sequence shared by BRK, IRQ, and NMI:
// push PC, push P (with the break bit as the caller specifies), disable
// further IRQs, and load PC from vector.
func (cpu *CPU) handleInterrupt(brk bool, vector uint16) {
	cpu.pushAddress(cpu.Reg.PC)
	cpu.push(cpu.Reg.SavePS(brk))
	cpu.Reg.InterruptDisable = true
	cpu.Reg.PC = cpu.Mem.LoadAddress(vector)
}

// stackAddress maps a stack pointer value onto its fixed page-1 address.
func stackAddress(sp byte) uint16 {
	return 0x0100 | uint16(sp)
}

// push writes v to the stack and decrements SP, wrapping modulo 256.
func (cpu *CPU) push(v byte) {
	cpu.storeByte(cpu, stackAddress(cpu.Reg.SP), v)
	cpu.Reg.SP--
}

// pushAddress pushes a 16-bit address high byte first, so popAddress (which
// reads low before high) reconstructs it in the right order.
func (cpu *CPU) pushAddress(addr uint16) {
	cpu.push(byte(addr >> 8))
	cpu.push(byte(addr))
}

// pop increments SP (wrapping modulo 256) and reads the byte it now points
// to.
func (cpu *CPU) pop() byte {
	cpu.Reg.SP++
	return cpu.Mem.LoadByte(stackAddress(cpu.Reg.SP))
}

// popAddress pops a 16-bit address, low byte first.
func (cpu *CPU) popAddress() uint16 {
	lo := cpu.pop()
	hi := cpu.pop()
	return uint16(lo) | uint16(hi)<<8
}

// storeByteNormal is the default store path: straight through to the Bus.
func (cpu *CPU) storeByteNormal(addr uint16, v byte) {
	cpu.Mem.StoreByte(addr, v)
}

// storeByteDebugger notifies an attached debugger of a data store before
// performing it, so data breakpoints see the value before it lands.
func (cpu *CPU) storeByteDebugger(addr uint16, v byte) {
	if cpu.debugger != nil {
		cpu.debugger.onDataStore(cpu, addr, v)
	}
	cpu.Mem.StoreByte(addr, v)
}

// AttachDebugger installs a debugger, routing every subsequent store
// through storeByteDebugger instead of storeByteNormal.
func (cpu *CPU) AttachDebugger(d *Debugger) {
	cpu.debugger = d
	cpu.storeByte = (*CPU).storeByteDebugger
}

// DetachDebugger removes the current debugger and reverts to the normal
// store path.
func (cpu *CPU) DetachDebugger() {
	cpu.debugger = nil
	cpu.storeByte = (*CPU).storeByteNormal
}

// String renders a single-line debug dump: PC/SP/A/X/Y in hex, P in binary,
// and the running cycle count.
func (cpu *CPU) String() string {
	return fmt.Sprintf("PC=%04X SP=%02X A=%02X X=%02X Y=%02X P=%08b Cycles=%d",
		cpu.Reg.PC, cpu.Reg.SP, cpu.Reg.A, cpu.Reg.X, cpu.Reg.Y, cpu.Reg.SaveFullPS(), cpu.Cycles)
}
