// Command goldentrace replays a directory of per-opcode golden-trace JSON
// files against the cpu package and reports the first mismatch it finds.
package main

import (
	"fmt"
	"os"

	"github.com/SuperMage03/mos6502-emulator/harness"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Syntax: goldentrace [corpus-dir]")
		os.Exit(0)
	}
	run(os.Args[1])
}

func run(dir string) {
	progress := func(opcode byte, name string, cases int) {
		fmt.Printf("$%02X %-3s  %d case(s) OK\n", opcode, name, cases)
	}
	mismatch, opcodesRun, err := harness.RunDir(dir, progress)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	if mismatch != nil {
		fmt.Printf("FAIL after %d opcode(s): %s\n", opcodesRun, mismatch)
		os.Exit(1)
	}
	fmt.Printf("PASS: %d opcode(s) matched their golden trace\n", opcodesRun)
}
