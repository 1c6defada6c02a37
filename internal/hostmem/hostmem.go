// hostmem.go - flat-memory cpu86e.Backend implementation for cpu86erun
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

// Package hostmem is a flat, 1MB-addressable Backend implementation
// for the cpu86erun smoke-test host. It is intentionally minimal: no
// device model, no wait states, unmapped I/O ports read back all-ones.
package hostmem

import "github.com/disba1ancer/cpu86e"

const memSize = 1 << 20

// Memory is a flat real-mode address space plus a 64K port space, both
// backed by plain byte slices.
type Memory struct {
	ram   [memSize]byte
	ports [1 << 16]uint16
}

// New returns an empty address space: RAM zeroed, every I/O port
// reading back all-ones until something writes it.
func New() *Memory {
	m := &Memory{}
	for i := range m.ports {
		m.ports[i] = 0xFFFF
	}
	return m
}

// Load copies img into RAM starting at addr, wrapping modulo 1MB.
func (m *Memory) Load(addr uint32, img []byte) {
	for i, b := range img {
		m.ram[(addr+uint32(i))&(memSize-1)] = b
	}
}

func (m *Memory) ReadMem(_ *cpu86e.CPUState, dst []byte, addr uint32) {
	for i := range dst {
		dst[i] = m.ram[(addr+uint32(i))&(memSize-1)]
	}
}

func (m *Memory) WriteMem(_ *cpu86e.CPUState, addr uint32, src []byte) {
	for i, b := range src {
		m.ram[(addr+uint32(i))&(memSize-1)] = b
	}
}

func (m *Memory) ReadIOByte(port uint16) uint8 { return uint8(m.ports[port]) }
func (m *Memory) ReadIOWord(port uint16) uint16 { return m.ports[port] }

func (m *Memory) WriteIOByte(port uint16, val uint8) {
	m.ports[port] = m.ports[port]&0xFF00 | uint16(val)
}

func (m *Memory) WriteIOWord(port uint16, val uint16) {
	m.ports[port] = val
}
