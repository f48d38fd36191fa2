// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package bus

// wramSize is the size of the NES's internal work RAM.
const wramSize = 0x0800

// wramMirrorEnd is the top of the address range that mirrors work RAM four
// times: 0x0000-0x07FF, 0x0800-0x0FFF, 0x1000-0x17FF, 0x1800-0x1FFF.
const wramMirrorEnd = 0x1fff

// NESBus is a board-specific Memory implementation shaped like the NES CPU
// bus: the low 8KiB of address space mirrors a 2KiB work-RAM region, and
// everything above it is routed to devices (PPU/APU registers, cartridge
// mappers) that live outside this core. Those upper ranges read as zero and
// silently discard writes unless a caller wires in a Device to handle them.
type NESBus struct {
	wram    [wramSize]byte
	devices map[uint16]Device
}

// Device is implemented by anything outside the core that the NES bus
// routes addresses to: PPU/APU registers, cartridge mappers, controllers.
// It is intentionally narrow so board-specific wiring never leaks into the
// CPU core.
type Device interface {
	ReadDevice(addr uint16) byte
	WriteDevice(addr uint16, v byte) bool
}

// NewNESBus creates a zero-initialized NES-style bus with no devices
// attached. Addresses outside work RAM read as zero and drop writes until a
// Device is registered to handle them.
func NewNESBus() *NESBus {
	return &NESBus{devices: make(map[uint16]Device)}
}

// AttachDevice routes every access to addr to device instead of the
// zero/drop default. Used by hosts that need PPU/APU registers or cartridge
// mappers; the core itself never calls this.
func (m *NESBus) AttachDevice(addr uint16, device Device) {
	m.devices[addr] = device
}

func (m *NESBus) LoadByte(addr uint16) byte {
	if addr <= wramMirrorEnd {
		return m.wram[addr&(wramSize-1)]
	}
	if d, ok := m.devices[addr]; ok {
		return d.ReadDevice(addr)
	}
	return 0
}

func (m *NESBus) LoadBytes(addr uint16, b []byte) {
	for i := range b {
		b[i] = m.LoadByte(addr + uint16(i))
	}
}

func (m *NESBus) LoadAddress(addr uint16) uint16 {
	if (addr & 0xff) == 0xff {
		return uint16(m.LoadByte(addr)) | uint16(m.LoadByte(addr-0xff))<<8
	}
	return uint16(m.LoadByte(addr)) | uint16(m.LoadByte(addr+1))<<8
}

func (m *NESBus) StoreByte(addr uint16, v byte) bool {
	if addr <= wramMirrorEnd {
		m.wram[addr&(wramSize-1)] = v
		return true
	}
	if d, ok := m.devices[addr]; ok {
		return d.WriteDevice(addr, v)
	}
	return false
}

func (m *NESBus) StoreBytes(addr uint16, b []byte) {
	for i, v := range b {
		m.StoreByte(addr+uint16(i), v)
	}
}

func (m *NESBus) StoreAddress(addr uint16, v uint16) {
	m.StoreByte(addr, byte(v))
	if (addr & 0xff) == 0xff {
		m.StoreByte(addr-0xff, byte(v>>8))
	} else {
		m.StoreByte(addr+1, byte(v>>8))
	}
}
