// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// refKind distinguishes the two forms an OperandRef can take.
type refKind byte

const (
	refMem refKind = iota
	refAcc
)

// OperandRef is the decoded target of an instruction's data access. It is
// either a memory address (refMem) or the accumulator register itself
// (refAcc), so that ASL/LSR/ROL/ROR/INC/DEC can share one read-modify-write
// code path regardless of which the instruction actually addresses.
//
// An OperandRef carries an address, not a cached value: every load/store
// through it re-reads or re-writes the backing Bus, so a write that lands
// between resolving the ref and dereferencing it is still observed.
type OperandRef struct {
	kind refKind
	addr uint16
}

// memRef builds an OperandRef that denotes the memory location addr.
func memRef(addr uint16) OperandRef {
	return OperandRef{kind: refMem, addr: addr}
}

// accRef is the single OperandRef value denoting the accumulator.
var accRef = OperandRef{kind: refAcc}

// IsAccumulator reports whether ref denotes the accumulator register
// rather than a memory location.
func (ref OperandRef) IsAccumulator() bool {
	return ref.kind == refAcc
}

// Address returns the memory address denoted by ref, and false if ref
// denotes the accumulator instead.
func (ref OperandRef) Address() (uint16, bool) {
	return ref.addr, ref.kind == refMem
}

// load dereferences ref, reading through the Bus for a memory reference or
// returning A directly for the accumulator.
func (cpu *CPU) load(ref OperandRef) byte {
	if ref.kind == refAcc {
		return cpu.Reg.A
	}
	return cpu.Mem.LoadByte(ref.addr)
}

// store writes v through ref, either to memory via the Bus or directly into
// A for the accumulator.
func (cpu *CPU) store(ref OperandRef, v byte) {
	if ref.kind == refAcc {
		cpu.Reg.A = v
		return
	}
	cpu.storeByte(cpu, ref.addr, v)
}

// incrementAddress advances a memory OperandRef's address by one, wrapping
// at 16 bits. It is a no-op for the accumulator: REG_A has no address to
// advance.
func (ref OperandRef) incrementAddress() OperandRef {
	if ref.kind == refAcc {
		return ref
	}
	return memRef(ref.addr + 1)
}
