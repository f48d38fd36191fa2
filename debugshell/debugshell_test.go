package debugshell

import (
	"strings"
	"testing"
)

func TestStepAdvancesPC(t *testing.T) {
	sh := New()
	sh.Mem.StoreBytes(0x0000, []byte{0xa9, 0x2a}) // LDA #$2A

	var out strings.Builder
	sh.Run(strings.NewReader("step\nquit\n"), &out)

	if sh.CPU.GetState().A != 0x2a {
		t.Errorf("A = $%02X after step, want $2A", sh.CPU.GetState().A)
	}
	if !strings.Contains(out.String(), "cycles") {
		t.Errorf("step output = %q, want a cycle count", out.String())
	}
}

func TestBreakpointStopsRun(t *testing.T) {
	sh := New()
	// Two NOPs, then a breakpointed JMP back to itself at $0002: the
	// breakpoint fires on the fetch that starts that JMP, so the JMP still
	// completes once before the run loop notices and stops.
	sh.Mem.StoreBytes(0x0000, []byte{0xea, 0xea, 0x4c, 0x02, 0x00})

	var out strings.Builder
	sh.Run(strings.NewReader("breakpoint add $0002\nrun\nquit\n"), &out)

	if got := sh.CPU.GetState().PC; got != 0x0002 {
		t.Errorf("PC after run = $%04X, want $0002 (JMP landed back on itself)", got)
	}
	if !strings.Contains(out.String(), "breakpoint hit") {
		t.Errorf("run output = %q, want a breakpoint notice", out.String())
	}
}

func TestDataBreakpointStopsRun(t *testing.T) {
	sh := New()
	// LDA #$05; STA $10; JMP $0000 -- would loop forever without the data
	// breakpoint on the STA's target address.
	sh.Mem.StoreBytes(0x0000, []byte{0xa9, 0x05, 0x85, 0x10, 0x4c, 0x00, 0x00})

	var out strings.Builder
	sh.Run(strings.NewReader("databreakpoint add $0010\nrun\nquit\n"), &out)

	if got := sh.Mem.LoadByte(0x0010); got != 0x05 {
		t.Errorf("mem[$0010] = $%02X after run, want $05 (STA completed before the loop noticed)", got)
	}
	if !strings.Contains(out.String(), "data breakpoint hit") {
		t.Errorf("run output = %q, want a data breakpoint notice", out.String())
	}
}

func TestParseAddressAcceptsDollarPrefix(t *testing.T) {
	addr, err := parseAddress([]string{"$8000"})
	if err != nil {
		t.Fatalf("parseAddress: %v", err)
	}
	if addr != 0x8000 {
		t.Errorf("parseAddress($8000) = $%04X, want $8000", addr)
	}
}

func TestParseAddressRejectsMissingArgument(t *testing.T) {
	if _, err := parseAddress(nil); err == nil {
		t.Error("parseAddress(nil) should report a missing-address error")
	}
}
