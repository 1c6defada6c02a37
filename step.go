// step.go - opcode dispatch table type and the doStep engine loop
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

package cpu86e

// opHandler implements one base opcode. It returns the outcome of
// dispatching that opcode plus, when it detected a CPU exception
// (divide error, #UD for a reserved encoding), the vector to raise —
// or noFault. Returning a typed fault value here, rather than a Go
// panic or error, keeps exception delivery inside the normal call/
// return flow of the step engine, which is what actually has to act on
// it (rewind IP, push FLAGS/CS/IP, jump through the IVT).
type opHandler func(c *CPU, pfx prefixDescriptor) (StepStatus, int)

// opTable is the 256-entry base opcode dispatch table, populated by
// initOpTable in ops.go. Legacy prefix bytes are consumed by
// parsePrefixes before the table is ever consulted, so none of its
// entries are prefix bytes.
var opTable [256]opHandler

func init() {
	initOpTable()
}

// doStep is the engine's single unit of work: sample the asynchronous
// signals, deliver whichever has priority, or else decode and dispatch
// one opcode.
func (c *CPU) doStep() StepStatus {
	oldFlags := c.prevFlags
	defer func() { c.prevFlags = c.state.flags }()

	if c.signals.haltAsserted() {
		return StatusHalt
	}

	if oldFlags&FlagTF != 0 {
		c.deliverInterrupt(VectorDB)
		return StatusNormal
	}
	if c.signals.takeNMI() {
		c.deliverInterrupt(VectorNMI)
		return StatusNormal
	}
	if oldFlags&FlagIF != 0 {
		if v, ok := c.signals.pendingINTR(); ok {
			c.deliverInterrupt(byte(v))
			return StatusNormal
		}
	}

	prevIP := c.state.ip
	pfx := c.parsePrefixes()
	opcode := c.fetch8()

	handler := opTable[opcode]
	if handler == nil {
		c.state.ip = prevIP
		c.deliverInterrupt(VectorUD)
		return StatusNormal
	}

	status, fault := handler(c, pfx)
	if fault != noFault {
		c.state.ip = prevIP
		c.deliverInterrupt(byte(fault))
		return StatusNormal
	}
	if status == StatusRepeat {
		c.state.ip = prevIP
		c.Cycles++
		return StatusRepeat
	}

	c.Cycles++
	return status
}
