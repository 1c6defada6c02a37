// backend.go - host memory/IO contract
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

package cpu86e

// Backend abstracts linear-address memory and 16-bit I/O port access,
// supplied by the host. Word accesses on memory are little-endian at
// the linear-address level; the CPU composes/decomposes words itself,
// so the backend only ever sees byte streams.
//
// Modeled on original_source/src/include/cpu86e/iiohook.h's IIOHook,
// generalized from a virtual-function trait to a Go interface.
type Backend interface {
	// ReadMem fills dst[0:len(dst)] from emulated linear addresses
	// starting at addr, wrapping modulo 2^20.
	ReadMem(state *CPUState, dst []byte, addr uint32)
	// WriteMem stores src to emulated linear addresses starting at
	// addr, wrapping modulo 2^20.
	WriteMem(state *CPUState, addr uint32, src []byte)

	ReadIOByte(port uint16) uint8
	ReadIOWord(port uint16) uint16
	WriteIOByte(port uint16, val uint8)
	WriteIOWord(port uint16, val uint16)
}

const linearAddrMask = 1<<20 - 1
