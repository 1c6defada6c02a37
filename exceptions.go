// exceptions.go - CPU exception vectors and step-engine status codes
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

package cpu86e

// Real-mode interrupt vectors for the CPU exceptions this
// implementation actively generates. The wider 80386+ exception set
// named in spec.md §7 (BR, NM, DF, MF, TS, NP, SS, GP, PF, AC, MC, XM,
// VE) has no real-mode trigger in this instruction set and is listed
// only for documentation parity with the architecture.
const (
	VectorDE = 0 // divide error
	VectorDB = 1 // single-step / debug
	VectorNMI = 2
	VectorBP = 3 // INT3
	VectorOF = 4 // INTO, OF set
	VectorUD = 6 // undefined opcode
)

// noFault is the sentinel "no exception" value for a handler's fault
// return.
const noFault = -1

// StepStatus is the outcome of dispatching one opcode.
type StepStatus int

const (
	// StatusNormal: instruction retired normally.
	StatusNormal StepStatus = iota
	// StatusRepeat: a REP-prefixed string op has not yet finished;
	// the engine rewinds IP to the start of the instruction and
	// returns control so interrupts can be sampled between
	// iterations.
	StatusRepeat
	// StatusHalt: HLT retired; the engine parks until woken.
	StatusHalt
)
