// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// Mode describes a memory addressing mode. There are thirteen: the twelve
// that can produce an OperandRef, plus ACC, which targets the accumulator
// directly for the shift/rotate/inc/dec instructions that can operate on
// either memory or A.
type Mode byte

// All possible memory addressing modes.
const (
	IMM Mode = iota // Immediate
	IMP              // Implicit (no operand; instruction ignores it)
	REL              // Relative (conditional branches only)
	ZP0              // Zero Page
	ZPX              // Zero Page,X
	ZPY              // Zero Page,Y
	ABS              // Absolute
	ABX              // Absolute,X
	ABY              // Absolute,Y
	IND              // (Indirect) -- JMP only
	IZX              // (Indirect,X)
	IZY              // (Indirect),Y
	ACC              // Accumulator
)

// resolve reads whatever operand bytes the addressing mode requires,
// advances the PC past them, and returns the OperandRef along with whether
// the resolved address crossed a page boundary relative to its unindexed
// base. For REL it instead stores the signed branch displacement in
// branchOffset and returns the accumulator ref as a placeholder. It never reads
// or writes through an OperandRef itself -- that happens later, when the
// operation executes.
func (cpu *CPU) resolve(mode Mode) (ref OperandRef, pageCrossed bool) {
	switch mode {
	case IMP, ACC:
		return accRef, false

	case IMM:
		addr := cpu.Reg.PC
		cpu.Reg.PC++
		return memRef(addr), false

	case REL:
		offset := cpu.Mem.LoadByte(cpu.Reg.PC)
		cpu.Reg.PC++
		cpu.branchOffset = int8(offset)
		return accRef, false

	case ZP0:
		zp := cpu.Mem.LoadByte(cpu.Reg.PC)
		cpu.Reg.PC++
		return memRef(uint16(zp)), false

	case ZPX:
		zp := cpu.Mem.LoadByte(cpu.Reg.PC)
		cpu.Reg.PC++
		return memRef(uint16(offsetZeroPage(zp, cpu.Reg.X))), false

	case ZPY:
		zp := cpu.Mem.LoadByte(cpu.Reg.PC)
		cpu.Reg.PC++
		return memRef(uint16(offsetZeroPage(zp, cpu.Reg.Y))), false

	case ABS:
		addr := cpu.fetchAddress()
		return memRef(addr), false

	case ABX:
		base := cpu.fetchAddress()
		addr, crossed := offsetAddress(base, cpu.Reg.X)
		return memRef(addr), crossed

	case ABY:
		base := cpu.fetchAddress()
		addr, crossed := offsetAddress(base, cpu.Reg.Y)
		return memRef(addr), crossed

	case IND:
		addr := cpu.fetchAddress()
		return memRef(cpu.loadAddressWithPageBug(addr)), false

	case IZX:
		zp := cpu.Mem.LoadByte(cpu.Reg.PC)
		cpu.Reg.PC++
		ptr := offsetZeroPage(zp, cpu.Reg.X)
		addr := cpu.loadAddressWithPageBug(uint16(ptr))
		return memRef(addr), false

	case IZY:
		zp := cpu.Mem.LoadByte(cpu.Reg.PC)
		cpu.Reg.PC++
		base := cpu.loadAddressWithPageBug(uint16(zp))
		addr, crossed := offsetAddress(base, cpu.Reg.Y)
		return memRef(addr), crossed

	default:
		panic("cpu: invalid addressing mode")
	}
}

// fetchAddress reads the two-byte little-endian address at PC and advances
// PC past it.
func (cpu *CPU) fetchAddress() uint16 {
	lo := cpu.Mem.LoadByte(cpu.Reg.PC)
	hi := cpu.Mem.LoadByte(cpu.Reg.PC + 1)
	cpu.Reg.PC += 2
	return uint16(lo) | uint16(hi)<<8
}

// loadAddressWithPageBug loads a little-endian pointer stored at addr,
// reproducing the NMOS 6502's indirect-addressing page-boundary bug: when
// addr's low byte is 0xFF, the high byte of the pointer comes from the same
// page (addr-0xFF) instead of wrapping into the next one. Both JMP
// ($xxFF) and the IZX/IZY zero-page pointer lookups rely on this.
func (cpu *CPU) loadAddressWithPageBug(addr uint16) uint16 {
	lo := cpu.Mem.LoadByte(addr)
	var hiAddr uint16
	if (addr & 0xff) == 0xff {
		hiAddr = addr - 0xff
	} else {
		hiAddr = addr + 1
	}
	hi := cpu.Mem.LoadByte(hiAddr)
	return uint16(lo) | uint16(hi)<<8
}

// offsetAddress adds offset to addr and reports whether the result crossed
// a page boundary relative to addr.
func offsetAddress(addr uint16, offset byte) (newAddr uint16, pageCrossed bool) {
	newAddr = addr + uint16(offset)
	return newAddr, (newAddr & 0xff00) != (addr & 0xff00)
}

// offsetZeroPage adds offset to a zero-page address, wrapping within page
// zero rather than crossing into page one.
func offsetZeroPage(addr byte, offset byte) byte {
	return addr + offset
}

// branch applies a taken branch's displacement to the PC, charging the
// extra cycle(s) the spec attributes to a successful/page-crossing branch.
func (cpu *CPU) branch() {
	old := cpu.Reg.PC
	cpu.Reg.PC = uint16(int32(old) + int32(cpu.branchOffset))
	cpu.extraCycles++
	if (old & 0xff00) != (cpu.Reg.PC & 0xff00) {
		cpu.extraCycles++
	}
}
