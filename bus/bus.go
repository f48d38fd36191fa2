// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bus implements the narrow byte-addressable memory interface that
// the cpu package reads and writes through. It owns no CPU state of its
// own: it only arbitrates access to one or more backing byte arrays.
package bus

// Memory is the interface through which all CPU memory accesses occur. A
// Memory implementation owns its backing storage for the duration of every
// call; callers must not assume a byte read from it remains valid once
// another write has occurred.
type Memory interface {
	// LoadByte loads a single byte from the address and returns it.
	LoadByte(addr uint16) byte

	// LoadBytes loads multiple bytes starting at addr into b.
	LoadBytes(addr uint16, b []byte)

	// LoadAddress loads a little-endian 16-bit address from addr. When
	// addr's low byte is 0xFF, the high byte is read from the same page
	// (addr-0xFF) rather than the next page, reproducing the 6502's
	// indirect-addressing page-boundary bug.
	LoadAddress(addr uint16) uint16

	// StoreByte stores a byte at addr. It returns false if addr is not
	// backed by writable storage; the CPU is free to ignore the result,
	// since on real hardware a dropped write is indistinguishable from
	// one that landed in an unmapped region.
	StoreByte(addr uint16, v byte) bool

	// StoreBytes stores multiple bytes starting at addr.
	StoreBytes(addr uint16, b []byte)

	// StoreAddress stores a little-endian 16-bit address at addr, subject
	// to the same page-wrap rule as LoadAddress.
	StoreAddress(addr uint16, v uint16)
}

// FlatMemory represents an entire 16-bit address space as a single 64KiB
// buffer with identity mapping. This is the memory used by the golden-trace
// test harness and by any host that doesn't need mirroring.
type FlatMemory struct {
	b [64 * 1024]byte
}

// NewFlatMemory creates a new flat 64KiB memory space, zero-initialized.
func NewFlatMemory() *FlatMemory {
	return &FlatMemory{}
}

// LoadByte loads a single byte from the address and returns it.
func (m *FlatMemory) LoadByte(addr uint16) byte {
	return m.b[addr]
}

// LoadBytes loads multiple bytes from the address, wrapping around the top
// of the address space if the read runs off the end of the buffer.
func (m *FlatMemory) LoadBytes(addr uint16, b []byte) {
	if int(addr)+len(b) <= len(m.b) {
		copy(b, m.b[addr:])
		return
	}
	r0 := len(m.b) - int(addr)
	copy(b, m.b[addr:])
	copy(b[r0:], m.b[:len(b)-r0])
}

// LoadAddress loads a 16-bit little-endian address from addr, reproducing
// the NMOS 6502 page-boundary bug when addr's low byte is 0xFF.
func (m *FlatMemory) LoadAddress(addr uint16) uint16 {
	if (addr & 0xff) == 0xff {
		return uint16(m.b[addr]) | uint16(m.b[addr-0xff])<<8
	}
	return uint16(m.b[addr]) | uint16(m.b[addr+1])<<8
}

// StoreByte stores a byte at the requested address. It always succeeds for
// flat memory, since every address is backed.
func (m *FlatMemory) StoreByte(addr uint16, v byte) bool {
	m.b[addr] = v
	return true
}

// StoreBytes stores multiple bytes to the requested address.
func (m *FlatMemory) StoreBytes(addr uint16, b []byte) {
	copy(m.b[addr:], b)
}

// StoreAddress stores a 16-bit little-endian address value, subject to the
// same page-wrap rule as LoadAddress.
func (m *FlatMemory) StoreAddress(addr uint16, v uint16) {
	m.b[addr] = byte(v)
	if (addr & 0xff) == 0xff {
		m.b[addr-0xff] = byte(v >> 8)
	} else {
		m.b[addr+1] = byte(v >> 8)
	}
}

// CopyBytes is a convenience used by hosts that load a binary image into
// memory before handing the bus to a CPU.
func (m *FlatMemory) CopyBytes(addr uint16, b []byte) {
	m.StoreBytes(addr, b)
}

// Reset zeroes every byte of memory. The golden-trace harness calls this
// between test records so that stale bytes from a previous opcode can't
// leak into the next one.
func (m *FlatMemory) Reset() {
	for i := range m.b {
		m.b[i] = 0
	}
}
