// cpu.go - CPU type: construction, host-facing controls, interrupt delivery
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

package cpu86e

// CPU is one 8086/8088 core. It holds no goroutines or timers of its
// own: a host drives it by calling Step or Run from whatever thread it
// likes, and asynchronously arms NMI/INTR/HALT from any other thread
// through SignalState.
type CPU struct {
	state     CPUState
	backend   Backend
	prevFlags uint16
	signals   SignalState

	// Cycles counts retired instructions (including each REP
	// iteration), not real bus cycles — this implementation is
	// cycle-inexact by design.
	Cycles uint64
}

// NewCPU creates a CPU at the architectural power-on/reset state,
// talking to backend for memory and I/O.
func NewCPU(backend Backend) *CPU {
	return NewCPUWithState(InitState(), backend)
}

// NewCPUWithState creates a CPU preloaded with an explicit state, for
// hosts that want to start execution somewhere other than the
// FFFF0 reset vector (e.g. a flat test image loaded below it).
func NewCPUWithState(state CPUState, backend Backend) *CPU {
	c := &CPU{state: state, backend: backend, prevFlags: state.flags}
	c.signals.init()
	return c
}

// State returns a pointer to the CPU's live architectural state.
// Mutating through it takes effect immediately, without going through
// LoadState's flags bookkeeping.
func (c *CPU) State() *CPUState { return &c.state }

// StoreState copies the current architectural state into dst.
func (c *CPU) StoreState(dst *CPUState) { *dst = c.state }

// LoadState replaces the architectural state wholesale.
func (c *CPU) LoadState(s CPUState) {
	c.state = s
	c.prevFlags = s.flags
}

// SetHook replaces the memory/IO backend.
func (c *CPU) SetHook(backend Backend) { c.backend = backend }

// SetNMI arms or disarms the non-maskable interrupt line.
func (c *CPU) SetNMI(level int32) { c.signals.SetNMI(level) }

// SetHalt forces the CPU into, or releases it from, the halt state.
func (c *CPU) SetHalt(level int32) { c.signals.SetHalt(level) }

// SetINTR arms (vector >= 0) or disarms (NoInterrupt) the maskable
// interrupt line with a vector already resolved by the host's
// interrupt controller.
func (c *CPU) SetINTR(vector int32) { c.signals.SetINTR(vector) }

// Halted reports whether the CPU is currently parked, whether because
// HLT retired or because a host called SetHalt directly.
func (c *CPU) Halted() bool { return c.signals.haltAsserted() }

// InitInterrupt forces immediate delivery of the given interrupt
// vector, bypassing the IF gate — for hosts bootstrapping a reset or
// injecting a synchronous vector outside the normal Step loop.
func (c *CPU) InitInterrupt(interrupt int) {
	c.deliverInterrupt(byte(interrupt))
}

// Step executes exactly one engine iteration: that is either a single
// instruction, a single REP iteration, or the delivery of a pending
// interrupt. Callers that want to drive a string op to completion (or
// let an enabled interrupt interrupt it) should keep calling Step
// until it stops returning StatusRepeat.
func (c *CPU) Step() StepStatus { return c.doStep() }

// Run calls Step repeatedly until either steps iterations have run
// (steps < 0 means unbounded) or the CPU halts, and returns the number
// of iterations actually taken.
func (c *CPU) Run(steps int) int {
	n := 0
	for steps < 0 || n < steps {
		status := c.Step()
		n++
		if status == StatusHalt {
			return n
		}
	}
	return n
}

func (c *CPU) readAbs16(addr uint32) uint16 {
	var b [2]byte
	c.backend.ReadMem(&c.state, b[:], addr&linearAddrMask)
	return uint16(b[0]) | uint16(b[1])<<8
}

// deliverInterrupt runs the real-mode interrupt-delivery sequence:
// push FLAGS, CS, IP; clear IF and TF; load CS:IP from the four-byte
// IVT entry at vector*4.
func (c *CPU) deliverInterrupt(vector byte) {
	c.push16(c.state.flags)
	c.push16(c.state.sregs[CS])
	c.push16(c.state.ip)
	c.state.flags = setFlag(c.state.flags, FlagIF, false)
	c.state.flags = setFlag(c.state.flags, FlagTF, false)

	entry := uint32(vector) * 4
	newIP := c.readAbs16(entry)
	newCS := c.readAbs16(entry + 2)
	c.state.ip = newIP
	c.state.sregs[CS] = newCS
}
