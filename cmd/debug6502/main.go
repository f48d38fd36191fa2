// Command debug6502 starts an interactive console for stepping a 6502 core,
// inspecting registers and memory, and setting breakpoints.
package main

import (
	"fmt"
	"os"

	"github.com/SuperMage03/mos6502-emulator/debugshell"
)

func main() {
	sh := debugshell.New()

	if len(os.Args) > 1 {
		fmt.Fprintln(os.Stderr, "note: debug6502 takes no arguments; it starts with an empty 64KiB bus")
	}

	sh.Run(os.Stdin, os.Stdout)
}
