package cpu

import "testing"

func TestOperandRefIncrementAddress(t *testing.T) {
	ref := memRef(0x12ff)
	next := ref.incrementAddress()
	addr, ok := next.Address()
	if !ok {
		t.Fatal("incremented memory ref should still be a memory ref")
	}
	if addr != 0x1300 {
		t.Errorf("incrementAddress($12FF) = $%04X, want $1300 (16-bit wrap within range)", addr)
	}

	wrap := memRef(0xffff).incrementAddress()
	addr, _ = wrap.Address()
	if addr != 0x0000 {
		t.Errorf("incrementAddress($FFFF) = $%04X, want $0000 (16-bit wrap around)", addr)
	}
}

func TestOperandRefIncrementAccumulatorIsNoOp(t *testing.T) {
	next := accRef.incrementAddress()
	if !next.IsAccumulator() {
		t.Error("incrementing the accumulator ref should still denote the accumulator")
	}
}

func TestOperandRefAddressReportsKind(t *testing.T) {
	if _, ok := accRef.Address(); ok {
		t.Error("Address() on accRef should report ok=false")
	}
	if addr, ok := memRef(0x4000).Address(); !ok || addr != 0x4000 {
		t.Errorf("Address() on memRef(0x4000) = (%04X, %v), want (4000, true)", addr, ok)
	}
}
