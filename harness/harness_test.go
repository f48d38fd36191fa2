package harness

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// writeCorpus writes a single opcode's corpus file to dir and returns its
// path, using the same "XX.json" naming the production loader expects.
func writeCorpus(t *testing.T, dir string, opcode byte, cases []record) string {
	t.Helper()
	data, err := json.Marshal(cases)
	if err != nil {
		t.Fatalf("marshaling synthetic corpus: %v", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("%02x.json", opcode))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing synthetic corpus: %v", err)
	}
	return path
}

// ldaImmediateCase is a hand-derived LDA #$00 trace: Z set, N clear, 2 cycles.
func ldaImmediateCase() record {
	return record{
		Name:    "lda immediate zero",
		Initial: snapshot{PC: 0x8000, S: 0xfd, A: 0x7f, RAM: []addrValue{{0x8000, 0xa9}, {0x8001, 0x00}}},
		// P = reserved(0x20) | zero(0x02): GetState's SaveFullPS always
		// reports the reserved bit set, and LDA #$00 sets Zero, clears
		// Negative, and leaves Carry/Overflow untouched from a zeroed start.
		Final: snapshot{PC: 0x8002, S: 0xfd, A: 0x00, P: 0x22, RAM: []addrValue{{0x8000, 0xa9}, {0x8001, 0x00}}},
		Cycles:  make([]json.RawMessage, 2),
	}
}

func TestLoadCasesRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpus(t, dir, 0xa9, []record{ldaImmediateCase()})

	cases, err := LoadCases(path)
	if err != nil {
		t.Fatalf("LoadCases: %v", err)
	}
	if len(cases) != 1 {
		t.Fatalf("got %d cases, want 1", len(cases))
	}
	if cases[0].Initial.A != 0x7f || cases[0].Final.A != 0x00 {
		t.Errorf("round-tripped case = %+v, unexpected initial/final A", cases[0])
	}
}

func TestRunFilePassesOnMatchingTrace(t *testing.T) {
	dir := t.TempDir()
	path := writeCorpus(t, dir, 0xa9, []record{ldaImmediateCase()})

	m, err := RunFile(0xa9, path)
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if m != nil {
		t.Errorf("got mismatch %s, want none", m)
	}
}

func TestRunFileReportsFieldMismatch(t *testing.T) {
	dir := t.TempDir()
	bad := ldaImmediateCase()
	bad.Final.A = 0x01 // wrong: LDA #$00 must leave A == 0
	path := writeCorpus(t, dir, 0xa9, []record{bad})

	m, err := RunFile(0xa9, path)
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if m == nil {
		t.Fatal("want a mismatch, got none")
	}
	if m.Field != "A" {
		t.Errorf("mismatch field = %q, want %q", m.Field, "A")
	}
}

func TestRunFileReportsCycleCountMismatch(t *testing.T) {
	dir := t.TempDir()
	bad := ldaImmediateCase()
	bad.Cycles = make([]json.RawMessage, 3) // LDA #imm is 2 cycles, not 3
	path := writeCorpus(t, dir, 0xa9, []record{bad})

	m, err := RunFile(0xa9, path)
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if m == nil || m.Field != "cycles" {
		t.Fatalf("got %v, want a cycles mismatch", m)
	}
}

func TestRunFileReportsRAMMismatch(t *testing.T) {
	dir := t.TempDir()
	// STA $0010 from A=$42: final RAM must show the store landed.
	c := record{
		Name:    "sta zero page",
		Initial: snapshot{PC: 0x8000, S: 0xfd, A: 0x42, RAM: []addrValue{{0x8000, 0x85}, {0x8001, 0x10}}},
		Final:   snapshot{PC: 0x8002, S: 0xfd, A: 0x42, RAM: []addrValue{{0x0010, 0x99}}}, // wrong expected value
		Cycles:  make([]json.RawMessage, 3),
	}
	path := writeCorpus(t, dir, 0x85, []record{c})

	m, err := RunFile(0x85, path)
	if err != nil {
		t.Fatalf("RunFile: %v", err)
	}
	if m == nil {
		t.Fatal("want a RAM mismatch, got none")
	}
	if m.Field != "RAM[$0010]" {
		t.Errorf("mismatch field = %q, want RAM[$0010]", m.Field)
	}
}

func TestRunDirSkipsUndocumentedOpcodesAndMissingFiles(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, 0xa9, []record{ldaImmediateCase()})
	// $02 is "???" in the decode table: its file holds a failing trace that
	// would be reported if RunDir replayed it.
	bad := ldaImmediateCase()
	bad.Final.A = 0xff
	writeCorpus(t, dir, 0x02, []record{bad})

	mismatch, opcodesRun, err := RunDir(dir, nil)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if mismatch != nil {
		t.Errorf("got mismatch %s, want none", mismatch)
	}
	if opcodesRun != 1 {
		t.Errorf("opcodesRun = %d, want 1 (0xA9 is the only documented opcode with a corpus file on disk)", opcodesRun)
	}
}

func TestRunDirStopsAtFirstMismatch(t *testing.T) {
	dir := t.TempDir()
	writeCorpus(t, dir, 0xa9, []record{ldaImmediateCase()})
	bad := ldaImmediateCase()
	bad.Final.A = 0xff
	writeCorpus(t, dir, 0xa5, []record{bad}) // LDA zpg, reuses the same bad trace

	mismatch, _, err := RunDir(dir, nil)
	if err != nil {
		t.Fatalf("RunDir: %v", err)
	}
	if mismatch == nil {
		t.Fatal("want a mismatch, got none")
	}
}
