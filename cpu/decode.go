// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "strings"

// opID is an internal symbol identifying an instruction's semantics,
// independent of the opcode byte(s) and addressing mode that select it.
type opID byte

const (
	opXXX opID = iota // undocumented/illegal opcode; behaves as a NOP of some length
	opADC
	opAND
	opASL
	opBCC
	opBCS
	opBEQ
	opBIT
	opBMI
	opBNE
	opBPL
	opBRK
	opBVC
	opBVS
	opCLC
	opCLD
	opCLI
	opCLV
	opCMP
	opCPX
	opCPY
	opDEC
	opDEX
	opDEY
	opEOR
	opINC
	opINX
	opINY
	opJMP
	opJSR
	opLDA
	opLDX
	opLDY
	opLSR
	opNOP
	opORA
	opPHA
	opPHP
	opPLA
	opPLP
	opROL
	opROR
	opRTI
	opRTS
	opSBC
	opSEC
	opSED
	opSEI
	opSTA
	opSTX
	opSTY
	opTAX
	opTAY
	opTSX
	opTXA
	opTXS
	opTYA
)

type instfunc func(c *CPU, inst *Instruction, ref OperandRef, pageCrossed bool)

type opcodeImpl struct {
	op   opID
	name string
	fn   instfunc
}

// impl associates every documented opID with its name and implementation.
var impl = []opcodeImpl{
	{opADC, "ADC", (*CPU).adc},
	{opAND, "AND", (*CPU).and},
	{opASL, "ASL", (*CPU).asl},
	{opBCC, "BCC", (*CPU).bcc},
	{opBCS, "BCS", (*CPU).bcs},
	{opBEQ, "BEQ", (*CPU).beq},
	{opBIT, "BIT", (*CPU).bit},
	{opBMI, "BMI", (*CPU).bmi},
	{opBNE, "BNE", (*CPU).bne},
	{opBPL, "BPL", (*CPU).bpl},
	{opBRK, "BRK", (*CPU).brk},
	{opBVC, "BVC", (*CPU).bvc},
	{opBVS, "BVS", (*CPU).bvs},
	{opCLC, "CLC", (*CPU).clc},
	{opCLD, "CLD", (*CPU).cld},
	{opCLI, "CLI", (*CPU).cli},
	{opCLV, "CLV", (*CPU).clv},
	{opCMP, "CMP", (*CPU).cmp},
	{opCPX, "CPX", (*CPU).cpx},
	{opCPY, "CPY", (*CPU).cpy},
	{opDEC, "DEC", (*CPU).dec},
	{opDEX, "DEX", (*CPU).dex},
	{opDEY, "DEY", (*CPU).dey},
	{opEOR, "EOR", (*CPU).eor},
	{opINC, "INC", (*CPU).inc},
	{opINX, "INX", (*CPU).inx},
	{opINY, "INY", (*CPU).iny},
	{opJMP, "JMP", (*CPU).jmp},
	{opJSR, "JSR", (*CPU).jsr},
	{opLDA, "LDA", (*CPU).lda},
	{opLDX, "LDX", (*CPU).ldx},
	{opLDY, "LDY", (*CPU).ldy},
	{opLSR, "LSR", (*CPU).lsr},
	{opNOP, "NOP", (*CPU).nop},
	{opORA, "ORA", (*CPU).ora},
	{opPHA, "PHA", (*CPU).pha},
	{opPHP, "PHP", (*CPU).php},
	{opPLA, "PLA", (*CPU).pla},
	{opPLP, "PLP", (*CPU).plp},
	{opROL, "ROL", (*CPU).rol},
	{opROR, "ROR", (*CPU).ror},
	{opRTI, "RTI", (*CPU).rti},
	{opRTS, "RTS", (*CPU).rts},
	{opSBC, "SBC", (*CPU).sbc},
	{opSEC, "SEC", (*CPU).sec},
	{opSED, "SED", (*CPU).sed},
	{opSEI, "SEI", (*CPU).sei},
	{opSTA, "STA", (*CPU).sta},
	{opSTX, "STX", (*CPU).stx},
	{opSTY, "STY", (*CPU).sty},
	{opTAX, "TAX", (*CPU).tax},
	{opTAY, "TAY", (*CPU).tay},
	{opTSX, "TSX", (*CPU).tsx},
	{opTXA, "TXA", (*CPU).txa},
	{opTXS, "TXS", (*CPU).txs},
	{opTYA, "TYA", (*CPU).tya},
}

// opcodeData describes one (opcode, addressing mode) pairing for a
// documented instruction.
type opcodeData struct {
	op       opID
	mode     Mode
	opcode   byte
	length   byte
	cycles   byte
	bpcycles byte
}

// data lists every documented NMOS 6502 (opcode, mode) pairing. Opcode
// 0xEB is SBC's undocumented alias of 0xE9; every test suite that exercises
// it expects ordinary SBC semantics, so it gets its own row rather than
// falling through to the opXXX treatment below.
var data = []opcodeData{
	{opLDA, IMM, 0xa9, 2, 2, 0},
	{opLDA, ZP0, 0xa5, 2, 3, 0},
	{opLDA, ZPX, 0xb5, 2, 4, 0},
	{opLDA, ABS, 0xad, 3, 4, 0},
	{opLDA, ABX, 0xbd, 3, 4, 1},
	{opLDA, ABY, 0xb9, 3, 4, 1},
	{opLDA, IZX, 0xa1, 2, 6, 0},
	{opLDA, IZY, 0xb1, 2, 5, 1},
	{opLDX, IMM, 0xa2, 2, 2, 0},
	{opLDX, ZP0, 0xa6, 2, 3, 0},
	{opLDX, ZPY, 0xb6, 2, 4, 0},
	{opLDX, ABS, 0xae, 3, 4, 0},
	{opLDX, ABY, 0xbe, 3, 4, 1},
	{opLDY, IMM, 0xa0, 2, 2, 0},
	{opLDY, ZP0, 0xa4, 2, 3, 0},
	{opLDY, ZPX, 0xb4, 2, 4, 0},
	{opLDY, ABS, 0xac, 3, 4, 0},
	{opLDY, ABX, 0xbc, 3, 4, 1},
	{opSTA, ZP0, 0x85, 2, 3, 0},
	{opSTA, ZPX, 0x95, 2, 4, 0},
	{opSTA, ABS, 0x8d, 3, 4, 0},
	{opSTA, ABX, 0x9d, 3, 5, 0},
	{opSTA, ABY, 0x99, 3, 5, 0},
	{opSTA, IZX, 0x81, 2, 6, 0},
	{opSTA, IZY, 0x91, 2, 6, 0},
	{opSTX, ZP0, 0x86, 2, 3, 0},
	{opSTX, ZPY, 0x96, 2, 4, 0},
	{opSTX, ABS, 0x8e, 3, 4, 0},
	{opSTY, ZP0, 0x84, 2, 3, 0},
	{opSTY, ZPX, 0x94, 2, 4, 0},
	{opSTY, ABS, 0x8c, 3, 4, 0},
	{opADC, IMM, 0x69, 2, 2, 0},
	{opADC, ZP0, 0x65, 2, 3, 0},
	{opADC, ZPX, 0x75, 2, 4, 0},
	{opADC, ABS, 0x6d, 3, 4, 0},
	{opADC, ABX, 0x7d, 3, 4, 1},
	{opADC, ABY, 0x79, 3, 4, 1},
	{opADC, IZX, 0x61, 2, 6, 0},
	{opADC, IZY, 0x71, 2, 5, 1},
	{opSBC, IMM, 0xe9, 2, 2, 0},
	{opSBC, ZP0, 0xe5, 2, 3, 0},
	{opSBC, ZPX, 0xf5, 2, 4, 0},
	{opSBC, ABS, 0xed, 3, 4, 0},
	{opSBC, ABX, 0xfd, 3, 4, 1},
	{opSBC, ABY, 0xf9, 3, 4, 1},
	{opSBC, IZX, 0xe1, 2, 6, 0},
	{opSBC, IZY, 0xf1, 2, 5, 1},
	{opCMP, IMM, 0xc9, 2, 2, 0},
	{opCMP, ZP0, 0xc5, 2, 3, 0},
	{opCMP, ZPX, 0xd5, 2, 4, 0},
	{opCMP, ABS, 0xcd, 3, 4, 0},
	{opCMP, ABX, 0xdd, 3, 4, 1},
	{opCMP, ABY, 0xd9, 3, 4, 1},
	{opCMP, IZX, 0xc1, 2, 6, 0},
	{opCMP, IZY, 0xd1, 2, 5, 1},
	{opCPX, IMM, 0xe0, 2, 2, 0},
	{opCPX, ZP0, 0xe4, 2, 3, 0},
	{opCPX, ABS, 0xec, 3, 4, 0},
	{opCPY, IMM, 0xc0, 2, 2, 0},
	{opCPY, ZP0, 0xc4, 2, 3, 0},
	{opCPY, ABS, 0xcc, 3, 4, 0},
	{opBIT, ZP0, 0x24, 2, 3, 0},
	{opBIT, ABS, 0x2c, 3, 4, 0},
	{opCLC, IMP, 0x18, 1, 2, 0},
	{opSEC, IMP, 0x38, 1, 2, 0},
	{opCLI, IMP, 0x58, 1, 2, 0},
	{opSEI, IMP, 0x78, 1, 2, 0},
	{opCLD, IMP, 0xd8, 1, 2, 0},
	{opSED, IMP, 0xf8, 1, 2, 0},
	{opCLV, IMP, 0xb8, 1, 2, 0},
	{opBCC, REL, 0x90, 2, 2, 1},
	{opBCS, REL, 0xb0, 2, 2, 1},
	{opBEQ, REL, 0xf0, 2, 2, 1},
	{opBNE, REL, 0xd0, 2, 2, 1},
	{opBMI, REL, 0x30, 2, 2, 1},
	{opBPL, REL, 0x10, 2, 2, 1},
	{opBVC, REL, 0x50, 2, 2, 1},
	{opBVS, REL, 0x70, 2, 2, 1},
	{opBRK, IMP, 0x00, 1, 7, 0},
	{opAND, IMM, 0x29, 2, 2, 0},
	{opAND, ZP0, 0x25, 2, 3, 0},
	{opAND, ZPX, 0x35, 2, 4, 0},
	{opAND, ABS, 0x2d, 3, 4, 0},
	{opAND, ABX, 0x3d, 3, 4, 1},
	{opAND, ABY, 0x39, 3, 4, 1},
	{opAND, IZX, 0x21, 2, 6, 0},
	{opAND, IZY, 0x31, 2, 5, 1},
	{opORA, IMM, 0x09, 2, 2, 0},
	{opORA, ZP0, 0x05, 2, 3, 0},
	{opORA, ZPX, 0x15, 2, 4, 0},
	{opORA, ABS, 0x0d, 3, 4, 0},
	{opORA, ABX, 0x1d, 3, 4, 1},
	{opORA, ABY, 0x19, 3, 4, 1},
	{opORA, IZX, 0x01, 2, 6, 0},
	{opORA, IZY, 0x11, 2, 5, 1},
	{opEOR, IMM, 0x49, 2, 2, 0},
	{opEOR, ZP0, 0x45, 2, 3, 0},
	{opEOR, ZPX, 0x55, 2, 4, 0},
	{opEOR, ABS, 0x4d, 3, 4, 0},
	{opEOR, ABX, 0x5d, 3, 4, 1},
	{opEOR, ABY, 0x59, 3, 4, 1},
	{opEOR, IZX, 0x41, 2, 6, 0},
	{opEOR, IZY, 0x51, 2, 5, 1},
	{opINC, ZP0, 0xe6, 2, 5, 0},
	{opINC, ZPX, 0xf6, 2, 6, 0},
	{opINC, ABS, 0xee, 3, 6, 0},
	{opINC, ABX, 0xfe, 3, 7, 0},
	{opDEC, ZP0, 0xc6, 2, 5, 0},
	{opDEC, ZPX, 0xd6, 2, 6, 0},
	{opDEC, ABS, 0xce, 3, 6, 0},
	{opDEC, ABX, 0xde, 3, 7, 0},
	{opINX, IMP, 0xe8, 1, 2, 0},
	{opINY, IMP, 0xc8, 1, 2, 0},
	{opDEX, IMP, 0xca, 1, 2, 0},
	{opDEY, IMP, 0x88, 1, 2, 0},
	{opJMP, ABS, 0x4c, 3, 3, 0},
	{opJMP, IND, 0x6c, 3, 5, 0},
	{opJSR, ABS, 0x20, 3, 6, 0},
	{opRTS, IMP, 0x60, 1, 6, 0},
	{opRTI, IMP, 0x40, 1, 6, 0},
	{opNOP, IMP, 0xea, 1, 2, 0},
	{opTAX, IMP, 0xaa, 1, 2, 0},
	{opTXA, IMP, 0x8a, 1, 2, 0},
	{opTAY, IMP, 0xa8, 1, 2, 0},
	{opTYA, IMP, 0x98, 1, 2, 0},
	{opTXS, IMP, 0x9a, 1, 2, 0},
	{opTSX, IMP, 0xba, 1, 2, 0},
	{opPHA, IMP, 0x48, 1, 3, 0},
	{opPLA, IMP, 0x68, 1, 4, 0},
	{opPHP, IMP, 0x08, 1, 3, 0},
	{opPLP, IMP, 0x28, 1, 4, 0},
	{opASL, ACC, 0x0a, 1, 2, 0},
	{opASL, ZP0, 0x06, 2, 5, 0},
	{opASL, ZPX, 0x16, 2, 6, 0},
	{opASL, ABS, 0x0e, 3, 6, 0},
	{opASL, ABX, 0x1e, 3, 7, 0},
	{opLSR, ACC, 0x4a, 1, 2, 0},
	{opLSR, ZP0, 0x46, 2, 5, 0},
	{opLSR, ZPX, 0x56, 2, 6, 0},
	{opLSR, ABS, 0x4e, 3, 6, 0},
	{opLSR, ABX, 0x5e, 3, 7, 0},
	{opROL, ACC, 0x2a, 1, 2, 0},
	{opROL, ZP0, 0x26, 2, 5, 0},
	{opROL, ZPX, 0x36, 2, 6, 0},
	{opROL, ABS, 0x2e, 3, 6, 0},
	{opROL, ABX, 0x3e, 3, 7, 0},
	{opROR, ACC, 0x6a, 1, 2, 0},
	{opROR, ZP0, 0x66, 2, 5, 0},
	{opROR, ZPX, 0x76, 2, 6, 0},
	{opROR, ABS, 0x6e, 3, 6, 0},
	{opROR, ABX, 0x7e, 3, 7, 0},
	{opSBC, IMM, 0xeb, 2, 2, 0},
}

// unused describes one of the opcodes that has no documented operation on
// NMOS silicon. Real hardware still executes something -- the byte is
// fetched, some number of cycles elapse, and execution falls through to
// the next instruction -- so each gets a length and cycle count even
// though it carries no opID and performs no operation.
type unused struct {
	opcode byte
	mode   Mode
	length byte
	cycles byte
}

// unusedData covers every opcode data leaves unassigned: NMOS's official
// undocumented opcodes plus the block of opcodes that only exist on the
// 65C02 (STZ, BRA, PHX/PHY/PLX/PLY, TRB/TSB, and the indirect-zero-page
// addressing modes), none of which this core implements.
var unusedData = []unused{
	{0x02, ZP0, 2, 2},
	{0x22, ZP0, 2, 2},
	{0x42, ZP0, 2, 2},
	{0x62, ZP0, 2, 2},
	{0x82, ZP0, 2, 2},
	{0xc2, ZP0, 2, 2},
	{0xe2, ZP0, 2, 2},
	{0x03, IMP, 1, 1},
	{0x13, IMP, 1, 1},
	{0x23, IMP, 1, 1},
	{0x33, IMP, 1, 1},
	{0x43, IMP, 1, 1},
	{0x53, IMP, 1, 1},
	{0x63, IMP, 1, 1},
	{0x73, IMP, 1, 1},
	{0x83, IMP, 1, 1},
	{0x93, IMP, 1, 1},
	{0xa3, IMP, 1, 1},
	{0xb3, IMP, 1, 1},
	{0xc3, IMP, 1, 1},
	{0xd3, IMP, 1, 1},
	{0xe3, IMP, 1, 1},
	{0xf3, IMP, 1, 1},
	{0x44, ZP0, 2, 3},
	{0x54, ZP0, 2, 4},
	{0xd4, ZP0, 2, 4},
	{0xf4, ZP0, 2, 4},
	{0x07, IMP, 1, 1},
	{0x17, IMP, 1, 1},
	{0x27, IMP, 1, 1},
	{0x37, IMP, 1, 1},
	{0x47, IMP, 1, 1},
	{0x57, IMP, 1, 1},
	{0x67, IMP, 1, 1},
	{0x77, IMP, 1, 1},
	{0x87, IMP, 1, 1},
	{0x97, IMP, 1, 1},
	{0xa7, IMP, 1, 1},
	{0xb7, IMP, 1, 1},
	{0xc7, IMP, 1, 1},
	{0xd7, IMP, 1, 1},
	{0xe7, IMP, 1, 1},
	{0xf7, IMP, 1, 1},
	{0x0b, IMP, 1, 1},
	{0x1b, IMP, 1, 1},
	{0x2b, IMP, 1, 1},
	{0x3b, IMP, 1, 1},
	{0x4b, IMP, 1, 1},
	{0x5b, IMP, 1, 1},
	{0x6b, IMP, 1, 1},
	{0x7b, IMP, 1, 1},
	{0x8b, IMP, 1, 1},
	{0x9b, IMP, 1, 1},
	{0xab, IMP, 1, 1},
	{0xbb, IMP, 1, 1},
	{0xcb, IMP, 1, 1},
	{0xdb, IMP, 1, 1},
	{0xfb, IMP, 1, 1},
	{0x5c, ABS, 3, 8},
	{0xdc, ABS, 3, 4},
	{0xfc, ABS, 3, 4},
	{0x0f, IMP, 1, 1},
	{0x1f, IMP, 1, 1},
	{0x2f, IMP, 1, 1},
	{0x3f, IMP, 1, 1},
	{0x4f, IMP, 1, 1},
	{0x5f, IMP, 1, 1},
	{0x6f, IMP, 1, 1},
	{0x7f, IMP, 1, 1},
	{0x8f, IMP, 1, 1},
	{0x9f, IMP, 1, 1},
	{0xaf, IMP, 1, 1},
	{0xbf, IMP, 1, 1},
	{0xcf, IMP, 1, 1},
	{0xdf, IMP, 1, 1},
	{0xef, IMP, 1, 1},
	{0xff, IMP, 1, 1},
	{0x04, ZP0, 2, 3},
	{0x0c, ABS, 3, 4},
	{0x12, IMP, 1, 2},
	{0x14, ZPX, 2, 4},
	{0x1a, IMP, 1, 2},
	{0x1c, ABX, 3, 4},
	{0x32, IMP, 1, 2},
	{0x34, ZPX, 2, 4},
	{0x3a, IMP, 1, 2},
	{0x5a, IMP, 1, 2},
	{0x3c, ABX, 3, 4},
	{0x52, IMP, 1, 2},
	{0x64, ZP0, 2, 3},
	{0x72, IMP, 1, 2},
	{0x74, ZPX, 2, 4},
	{0x7a, IMP, 1, 2},
	{0x7c, ABX, 3, 4},
	{0x80, IMM, 2, 2},
	{0x89, IMM, 2, 2},
	{0x92, IMP, 1, 2},
	{0x9c, ABS, 3, 5},
	{0x9e, ABX, 3, 5},
	{0xb2, IMP, 1, 2},
	{0xd2, IMP, 1, 2},
	{0xda, IMP, 1, 2},
	{0xf2, IMP, 1, 2},
	{0xfa, IMP, 1, 2},
}

// Instruction describes a single decoded (opcode, mode) pairing: its
// mnemonic, its addressing mode, and the function that carries out its
// effect.
type Instruction struct {
	Name     string // all-caps mnemonic, or "???" for an unimplemented opcode
	Mode     Mode
	Opcode   byte
	Length   byte // combined size of opcode and operand, in bytes
	Cycles   byte // base number of cycles the instruction takes to execute
	BPCycles byte // additional cycles charged if indexing crosses a page
	fn       instfunc
}

// InstructionSet is the decode table: a dense, opcode-indexed array of
// every Instruction this core understands.
type InstructionSet struct {
	instructions [256]Instruction
	variants     map[string][]*Instruction
}

// Lookup retrieves the Instruction a fetched opcode byte decodes to.
func (s *InstructionSet) Lookup(opcode byte) *Instruction {
	return &s.instructions[opcode]
}

// GetInstructions returns every opcode variant of the named instruction
// (e.g. all eight addressing-mode forms of "ADC").
func (s *InstructionSet) GetInstructions(name string) []*Instruction {
	return s.variants[strings.ToUpper(name)]
}

var defaultInstructionSet *InstructionSet

// GetInstructionSet returns the singleton NMOS 6502 decode table, building
// it on first use.
func GetInstructionSet() *InstructionSet {
	if defaultInstructionSet == nil {
		defaultInstructionSet = newInstructionSet()
	}
	return defaultInstructionSet
}

func newInstructionSet() *InstructionSet {
	set := &InstructionSet{variants: make(map[string][]*Instruction)}

	opToImpl := make(map[opID]*opcodeImpl, len(impl))
	for i := range impl {
		opToImpl[impl[i].op] = &impl[i]
	}

	for _, d := range data {
		inst := &set.instructions[d.opcode]
		i := opToImpl[d.op]
		inst.Name = i.name
		inst.Mode = d.mode
		inst.Opcode = d.opcode
		inst.Length = d.length
		inst.Cycles = d.cycles
		inst.BPCycles = d.bpcycles
		inst.fn = i.fn
		set.variants[inst.Name] = append(set.variants[inst.Name], inst)
	}

	for _, u := range unusedData {
		inst := &set.instructions[u.opcode]
		inst.Name = "???"
		inst.Mode = u.mode
		inst.Opcode = u.opcode
		inst.Length = u.length
		inst.Cycles = u.cycles
		inst.BPCycles = 0
		inst.fn = (*CPU).xxx
	}

	for i := 0; i < 256; i++ {
		if set.instructions[i].Name == "" {
			panic("cpu: missing instruction in decode table")
		}
	}
	return set
}
