// Copyright 2014-2018 Brett Vickers. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cpu

import "sort"

// Debugger intercepts instruction fetches and data stores so a host can
// stop execution at an address or when a particular byte is written. It is
// entirely optional: a CPU with no debugger attached runs at full speed
// through storeByteNormal and never consults breakpoints.
type Debugger struct {
	handler         BreakpointHandler
	breakpoints     map[uint16]*Breakpoint
	dataBreakpoints map[uint16]*DataBreakpoint
}

// BreakpointHandler receives notifications when a breakpoint or data
// breakpoint fires.
type BreakpointHandler interface {
	OnBreakpoint(cpu *CPU, b *Breakpoint)
	OnDataBreakpoint(cpu *CPU, b *DataBreakpoint)
}

// Breakpoint stops execution when PC reaches Address.
type Breakpoint struct {
	Address  uint16
	Disabled bool
}

// DataBreakpoint stops execution when a byte is stored to Address, or, if
// Conditional, only when the stored byte equals Value.
type DataBreakpoint struct {
	Address     uint16
	Disabled    bool
	Conditional bool
	Value       byte
}

// NewDebugger creates a debugger with no breakpoints set, reporting to
// handler.
func NewDebugger(handler BreakpointHandler) *Debugger {
	return &Debugger{
		handler:         handler,
		breakpoints:     make(map[uint16]*Breakpoint),
		dataBreakpoints: make(map[uint16]*DataBreakpoint),
	}
}

type byBPAddr []*Breakpoint

func (a byBPAddr) Len() int           { return len(a) }
func (a byBPAddr) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byBPAddr) Less(i, j int) bool { return a[i].Address < a[j].Address }

// GetBreakpoint looks up a breakpoint by address.
func (d *Debugger) GetBreakpoint(addr uint16) *Breakpoint {
	return d.breakpoints[addr]
}

// GetBreakpoints returns every breakpoint, sorted by address.
func (d *Debugger) GetBreakpoints() []*Breakpoint {
	var bs []*Breakpoint
	for _, b := range d.breakpoints {
		bs = append(bs, b)
	}
	sort.Sort(byBPAddr(bs))
	return bs
}

// AddBreakpoint sets a new breakpoint at addr, replacing any already there.
func (d *Debugger) AddBreakpoint(addr uint16) *Breakpoint {
	b := &Breakpoint{Address: addr}
	d.breakpoints[addr] = b
	return b
}

// RemoveBreakpoint clears the breakpoint at addr, if any.
func (d *Debugger) RemoveBreakpoint(addr uint16) {
	delete(d.breakpoints, addr)
}

type byDBPAddr []*DataBreakpoint

func (a byDBPAddr) Len() int           { return len(a) }
func (a byDBPAddr) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byDBPAddr) Less(i, j int) bool { return a[i].Address < a[j].Address }

// GetDataBreakpoint looks up a data breakpoint by address.
func (d *Debugger) GetDataBreakpoint(addr uint16) *DataBreakpoint {
	return d.dataBreakpoints[addr]
}

// GetDataBreakpoints returns every data breakpoint, sorted by address.
func (d *Debugger) GetDataBreakpoints() []*DataBreakpoint {
	var bs []*DataBreakpoint
	for _, b := range d.dataBreakpoints {
		bs = append(bs, b)
	}
	sort.Sort(byDBPAddr(bs))
	return bs
}

// AddDataBreakpoint sets an unconditional data breakpoint at addr.
func (d *Debugger) AddDataBreakpoint(addr uint16) *DataBreakpoint {
	b := &DataBreakpoint{Address: addr}
	d.dataBreakpoints[addr] = b
	return b
}

// AddConditionalDataBreakpoint sets a data breakpoint at addr that only
// fires when value is the byte stored.
func (d *Debugger) AddConditionalDataBreakpoint(addr uint16, value byte) *DataBreakpoint {
	b := &DataBreakpoint{Address: addr, Conditional: true, Value: value}
	d.dataBreakpoints[addr] = b
	return b
}

// RemoveDataBreakpoint clears the data breakpoint at addr, if any.
func (d *Debugger) RemoveDataBreakpoint(addr uint16) {
	delete(d.dataBreakpoints, addr)
}

// onUpdatePC is called once per instruction fetch, before decoding, with
// the address about to execute.
func (d *Debugger) onUpdatePC(cpu *CPU, addr uint16) {
	if d.handler == nil {
		return
	}
	if b, ok := d.breakpoints[addr]; ok && !b.Disabled {
		d.handler.OnBreakpoint(cpu, b)
	}
}

// onDataStore is called by storeByteDebugger before every store reaches
// the Bus.
func (d *Debugger) onDataStore(cpu *CPU, addr uint16, v byte) {
	if d.handler == nil {
		return
	}
	if b, ok := d.dataBreakpoints[addr]; ok && !b.Disabled {
		if !b.Conditional || b.Value == v {
			d.handler.OnDataBreakpoint(cpu, b)
		}
	}
}
