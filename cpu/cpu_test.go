package cpu_test

import (
	"testing"

	"github.com/SuperMage03/mos6502-emulator/bus"
	"github.com/SuperMage03/mos6502-emulator/cpu"
)

func newCPU() (*cpu.CPU, *bus.FlatMemory) {
	mem := bus.NewFlatMemory()
	return cpu.NewCPU(mem), mem
}

// TestLDAImmediateSetsZero: scenario 1.
func TestLDAImmediateSetsZero(t *testing.T) {
	c, mem := newCPU()
	mem.StoreAddress(0xfffc, 0x8000)
	mem.StoreBytes(0x8000, []byte{0xa9, 0x00})
	c.Reset()

	c.RunInstruction()

	s := c.GetState()
	if s.A != 0x00 || s.P&cpu.ZeroBit == 0 || s.P&cpu.NegativeBit != 0 || s.PC != 0x8002 {
		t.Errorf("got A=%02X P=%08b PC=%04X, want A=00 Z=1 N=0 PC=8002", s.A, s.P, s.PC)
	}
}

// TestADCImmediateSignedOverflow: scenario 2.
func TestADCImmediateSignedOverflow(t *testing.T) {
	c, mem := newCPU()
	mem.StoreBytes(0x8000, []byte{0x69, 0x50})
	c.SetState(cpu.State{PC: 0x8000, A: 0x50, P: 0})

	c.RunInstruction()

	s := c.GetState()
	if s.A != 0xa0 {
		t.Errorf("A = $%02X, want $A0", s.A)
	}
	if s.P&cpu.CarryBit != 0 || s.P&cpu.ZeroBit != 0 || s.P&cpu.NegativeBit == 0 || s.P&cpu.OverflowBit == 0 {
		t.Errorf("P = %08b, want C=0 Z=0 N=1 V=1", s.P)
	}
}

// TestSBCCrossesZero: scenario 3.
func TestSBCCrossesZero(t *testing.T) {
	c, mem := newCPU()
	mem.StoreBytes(0x8000, []byte{0xe9, 0xb0})
	c.SetState(cpu.State{PC: 0x8000, A: 0x50, P: cpu.CarryBit})

	c.RunInstruction()

	s := c.GetState()
	if s.A != 0xa0 {
		t.Errorf("A = $%02X, want $A0", s.A)
	}
	if s.P&cpu.CarryBit != 0 || s.P&cpu.OverflowBit == 0 || s.P&cpu.NegativeBit == 0 || s.P&cpu.ZeroBit != 0 {
		t.Errorf("P = %08b, want C=0 V=1 N=1 Z=0", s.P)
	}
}

// TestBEQPageCross: scenario 4.
func TestBEQPageCross(t *testing.T) {
	c, mem := newCPU()
	mem.StoreBytes(0x80fb, []byte{0xf0, 0x04})
	c.SetState(cpu.State{PC: 0x80fb, P: cpu.ZeroBit})

	n := c.RunInstruction()

	s := c.GetState()
	if s.PC != 0x8101 {
		t.Errorf("PC = $%04X, want $8101", s.PC)
	}
	if n != 4 {
		t.Errorf("cycles consumed = %d, want 4 (2 base + 1 taken + 1 page-cross)", n)
	}
}

// TestJMPIndirectPageBug: scenario 5.
func TestJMPIndirectPageBug(t *testing.T) {
	c, mem := newCPU()
	mem.StoreBytes(0x8000, []byte{0x6c, 0xff, 0x30})
	mem.StoreByte(0x30ff, 0x80)
	mem.StoreByte(0x3000, 0x50)
	mem.StoreByte(0x3100, 0x40)
	c.SetState(cpu.State{PC: 0x8000})

	c.RunInstruction()

	if s := c.GetState(); s.PC != 0x5080 {
		t.Errorf("PC = $%04X, want $5080 (not $4080)", s.PC)
	}
}

// TestJSRRTSRoundTrip: scenario 6.
func TestJSRRTSRoundTrip(t *testing.T) {
	c, mem := newCPU()
	mem.StoreBytes(0x8000, []byte{0x20, 0x10, 0x90, 0xea})
	mem.StoreByte(0x9010, 0x60)
	c.SetState(cpu.State{PC: 0x8000, SP: 0xfd})
	originalSP := c.GetState().SP

	c.RunInstruction() // JSR
	if s := c.GetState(); s.PC != 0x9010 {
		t.Fatalf("after JSR, PC = $%04X, want $9010", s.PC)
	}

	c.RunInstruction() // RTS
	s := c.GetState()
	if s.PC != 0x8003 {
		t.Errorf("after RTS, PC = $%04X, want $8003", s.PC)
	}
	if s.SP != originalSP {
		t.Errorf("after RTS, SP = $%02X, want $%02X", s.SP, originalSP)
	}
}

// TestADCSBCRoundTrip checks the property from spec section 8: ADC followed
// by the complementary SBC returns A to its original value.
func TestADCSBCRoundTrip(t *testing.T) {
	for a := 0; a < 256; a += 17 {
		for m := 0; m < 256; m += 23 {
			for _, carry := range []bool{false, true} {
				c, mem := newCPU()
				mem.StoreByte(0x8000, 0x69) // ADC imm
				mem.StoreByte(0x8001, byte(m))
				var p byte
				if carry {
					p = cpu.CarryBit
				}
				c.SetState(cpu.State{PC: 0x8000, A: byte(a), P: p})
				c.RunInstruction()
				afterAdc := c.GetState()

				// The inverse identity takes SBC's carry-in as the
				// complement of ADC's carry-in, not whatever ADC left
				// the flag at.
				sbcP := afterAdc.P &^ cpu.CarryBit
				if !carry {
					sbcP |= cpu.CarryBit
				}
				c.SetState(cpu.State{PC: afterAdc.PC, A: afterAdc.A, P: sbcP})

				mem.StoreByte(afterAdc.PC, 0xe9) // SBC imm
				mem.StoreByte(afterAdc.PC+1, byte(m))
				c.RunInstruction()

				if got := c.GetState().A; got != byte(a) {
					t.Errorf("A=%d M=%d C=%v: ADC then complementary SBC gave A=%d, want %d", a, m, carry, got, a)
				}
			}
		}
	}
}

// TestPushPopRoundTrip checks the stack property from spec section 8,
// including the SP wrap cases at both ends.
func TestPushPopRoundTrip(t *testing.T) {
	for _, sp := range []byte{0x00, 0x01, 0xfd, 0xff} {
		c, mem := newCPU()
		mem.StoreBytes(0x0000, []byte{0x48, 0x68}) // PHA, PLA
		c.SetState(cpu.State{PC: 0x0000, SP: sp, A: 0x42})

		c.RunInstruction() // PHA
		afterPush := c.GetState()
		wantSP := sp - 1
		if afterPush.SP != wantSP {
			t.Errorf("SP=%02X after PHA = %02X, want %02X", sp, afterPush.SP, wantSP)
		}

		c.RunInstruction() // PLA
		afterPop := c.GetState()
		if afterPop.SP != sp {
			t.Errorf("SP after PHA;PLA round trip = %02X, want %02X", afterPop.SP, sp)
		}
		if afterPop.A != 0x42 {
			t.Errorf("A after PHA;PLA round trip = %02X, want 42", afterPop.A)
		}
	}
}

// TestResetIdempotence checks that two resets from the same memory produce
// identical architectural state.
func TestResetIdempotence(t *testing.T) {
	c, mem := newCPU()
	mem.StoreAddress(0xfffc, 0x1234)

	c.Reset()
	first := c.GetState()
	c.Reset()
	second := c.GetState()

	if first != second {
		t.Errorf("Reset() is not idempotent: %+v != %+v", first, second)
	}
}

// TestIRQPushesPCAndClearsBreakBit checks vectoring, cycle cost, and the
// pushed P byte's B bit for a maskable interrupt.
func TestIRQPushesPCAndClearsBreakBit(t *testing.T) {
	c, mem := newCPU()
	mem.StoreAddress(0xfffe, 0x9000)
	c.SetState(cpu.State{PC: 0x8000, SP: 0xfd, P: 0})

	before := c.Cycles
	c.IRQ()

	s := c.GetState()
	if s.PC != 0x9000 {
		t.Errorf("PC = $%04X after IRQ, want $9000 (loaded from vector $FFFE)", s.PC)
	}
	if s.P&cpu.InterruptDisableBit == 0 {
		t.Errorf("P = %08b after IRQ, want InterruptDisable set", s.P)
	}
	if c.Cycles-before != 7 {
		t.Errorf("IRQ consumed %d cycles, want 7", c.Cycles-before)
	}
	if s.SP != 0xfa {
		t.Fatalf("SP = $%02X after IRQ, want $FA (three bytes pushed)", s.SP)
	}
	if pushedP := mem.LoadByte(0x01fb); pushedP&cpu.BreakBit != 0 {
		t.Errorf("pushed P = %08b after IRQ, want B=0", pushedP)
	}
	pcLo, pcHi := mem.LoadByte(0x01fc), mem.LoadByte(0x01fd)
	if pushed := uint16(pcLo) | uint16(pcHi)<<8; pushed != 0x8000 {
		t.Errorf("pushed PC = $%04X after IRQ, want $8000", pushed)
	}
}

// TestIRQMaskedByInterruptDisable checks that a pending IRQ is ignored while
// the interrupt-disable flag is set.
func TestIRQMaskedByInterruptDisable(t *testing.T) {
	c, mem := newCPU()
	mem.StoreAddress(0xfffe, 0x9000)
	c.SetState(cpu.State{PC: 0x8000, SP: 0xfd, P: cpu.InterruptDisableBit})

	c.IRQ()

	if s := c.GetState(); s.PC != 0x8000 {
		t.Errorf("PC = $%04X after masked IRQ, want unchanged $8000", s.PC)
	}
}

// TestNMIIsUnmaskable checks that NMI fires through the same interrupt
// disable flag that suppresses IRQ.
func TestNMIIsUnmaskable(t *testing.T) {
	c, mem := newCPU()
	mem.StoreAddress(0xfffa, 0x9500)
	c.SetState(cpu.State{PC: 0x8000, SP: 0xfd, P: cpu.InterruptDisableBit})

	before := c.Cycles
	c.NMI()

	s := c.GetState()
	if s.PC != 0x9500 {
		t.Errorf("PC = $%04X after NMI, want $9500 (loaded from vector $FFFA), even with I set", s.PC)
	}
	if c.Cycles-before != 7 {
		t.Errorf("NMI consumed %d cycles, want 7", c.Cycles-before)
	}
}

// TestBRKForcesBreakAndPadsPC runs an actual opcode $00 through
// RunInstruction and checks the pushed PC skips the padding byte and the
// pushed P has B forced to 1, unlike IRQ/NMI entry.
func TestBRKForcesBreakAndPadsPC(t *testing.T) {
	c, mem := newCPU()
	mem.StoreAddress(0xfffe, 0x9000)
	mem.StoreBytes(0x8000, []byte{0x00, 0xea}) // BRK, padding byte
	c.SetState(cpu.State{PC: 0x8000, SP: 0xfd, P: 0})

	n := c.RunInstruction()

	s := c.GetState()
	if s.PC != 0x9000 {
		t.Errorf("PC = $%04X after BRK, want $9000", s.PC)
	}
	if n != 7 {
		t.Errorf("BRK consumed %d cycles, want 7", n)
	}
	if pushedP := mem.LoadByte(0x01fb); pushedP&cpu.BreakBit == 0 {
		t.Errorf("pushed P = %08b after BRK, want B=1", pushedP)
	}
	pcLo, pcHi := mem.LoadByte(0x01fc), mem.LoadByte(0x01fd)
	if pushed := uint16(pcLo) | uint16(pcHi)<<8; pushed != 0x8002 {
		t.Errorf("pushed PC = $%04X after BRK, want $8002 (past opcode and padding byte)", pushed)
	}
}

// TestROLRORInverse checks the rotate-inverse property from spec section 8.
func TestROLRORInverse(t *testing.T) {
	for m := 0; m < 256; m++ {
		for _, carry := range []bool{false, true} {
			c, mem := newCPU()
			mem.StoreByte(0x8000, 0x2a) // ROL A
			mem.StoreByte(0x8001, 0x6a) // ROR A
			var p byte
			if carry {
				p = cpu.CarryBit
			}
			c.SetState(cpu.State{PC: 0x8000, A: byte(m), P: p})

			c.RunInstruction() // ROL
			c.RunInstruction() // ROR

			if got := c.GetState().A; got != byte(m) {
				t.Errorf("M=%d C=%v: ROR(ROL(M)) = %d, want %d", m, carry, got, m)
			}
		}
	}
}
