// ops_string.go - REP-prefixed string instructions (MOVS/CMPS/STOS/LODS/SCAS)
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

package cpu86e

// Destination string operand addressing is always ES:DI, fixed by the
// architecture — no segment override is allowed there. Source operand
// addressing (MOVS/CMPS/LODS) defaults to DS:SI but does honor a
// segment override prefix.

func stepDirection(c *CPU, width uint) int16 {
	step := int16(1)
	if width == 16 {
		step = 2
	}
	if c.state.flags&FlagDF != 0 {
		step = -step
	}
	return step
}

func movsBody(width uint) func(*CPU, prefixDescriptor) {
	return func(c *CPU, pfx prefixDescriptor) {
		srcSeg := pfx.seg
		if srcSeg == SegReserve {
			srcSeg = DS
		}
		si, di := c.getReg16(byte(SI)), c.getReg16(byte(DI))
		if width == 8 {
			c.write8(ES, di, c.read8(srcSeg, si))
		} else {
			c.write16(ES, di, c.read16(srcSeg, si))
		}
		step := stepDirection(c, width)
		c.setReg16(byte(SI), uint16(int16(si)+step))
		c.setReg16(byte(DI), uint16(int16(di)+step))
	}
}

func cmpsBody(width uint) func(*CPU, prefixDescriptor) {
	return func(c *CPU, pfx prefixDescriptor) {
		srcSeg := pfx.seg
		if srcSeg == SegReserve {
			srcSeg = DS
		}
		si, di := c.getReg16(byte(SI)), c.getReg16(byte(DI))
		var a, b uint32
		if width == 8 {
			a, b = uint32(c.read8(srcSeg, si)), uint32(c.read8(ES, di))
		} else {
			a, b = uint32(c.read16(srcSeg, si)), uint32(c.read16(ES, di))
		}
		_, flags := binOp(width, aluCmp, a, b, c.state.flags)
		c.state.flags = flags
		step := stepDirection(c, width)
		c.setReg16(byte(SI), uint16(int16(si)+step))
		c.setReg16(byte(DI), uint16(int16(di)+step))
	}
}

func stosBody(width uint) func(*CPU, prefixDescriptor) {
	return func(c *CPU, pfx prefixDescriptor) {
		di := c.getReg16(byte(DI))
		if width == 8 {
			c.write8(ES, di, c.getReg8(0))
		} else {
			c.write16(ES, di, c.getReg16(byte(AX)))
		}
		step := stepDirection(c, width)
		c.setReg16(byte(DI), uint16(int16(di)+step))
	}
}

func lodsBody(width uint) func(*CPU, prefixDescriptor) {
	return func(c *CPU, pfx prefixDescriptor) {
		srcSeg := pfx.seg
		if srcSeg == SegReserve {
			srcSeg = DS
		}
		si := c.getReg16(byte(SI))
		if width == 8 {
			c.setReg8(0, c.read8(srcSeg, si))
		} else {
			c.setReg16(byte(AX), c.read16(srcSeg, si))
		}
		step := stepDirection(c, width)
		c.setReg16(byte(SI), uint16(int16(si)+step))
	}
}

func scasBody(width uint) func(*CPU, prefixDescriptor) {
	return func(c *CPU, pfx prefixDescriptor) {
		di := c.getReg16(byte(DI))
		var a, b uint32
		if width == 8 {
			a, b = uint32(c.getReg8(0)), uint32(c.read8(ES, di))
		} else {
			a, b = uint32(c.getReg16(byte(AX))), uint32(c.read16(ES, di))
		}
		_, flags := binOp(width, aluCmp, a, b, c.state.flags)
		c.state.flags = flags
		step := stepDirection(c, width)
		c.setReg16(byte(DI), uint16(int16(di)+step))
	}
}

// stringOpWrapper turns a single-iteration string-op body into the
// REP-aware opHandler the step engine expects: with no REP prefix it
// runs once; with one, it runs one iteration per call and signals
// StatusRepeat until CX (and, for CMPS/SCAS, ZF) says to stop. Running
// exactly one iteration per call — rather than looping to completion
// inside the handler — is what lets an asynchronous interrupt land
// between iterations instead of only before or after the whole string
// operation.
func stringOpWrapper(body func(*CPU, prefixDescriptor), zfGated bool) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		if pfx.rep == repNone {
			body(c, pfx)
			return StatusNormal, noFault
		}
		cx := c.getReg16(byte(CX))
		if cx == 0 {
			return StatusNormal, noFault
		}
		body(c, pfx)
		cx--
		c.setReg16(byte(CX), cx)
		if cx == 0 {
			return StatusNormal, noFault
		}
		if zfGated {
			wantZF := pfx.rep == repZ
			if (c.state.flags&FlagZF != 0) != wantZF {
				return StatusNormal, noFault
			}
		}
		return StatusRepeat, noFault
	}
}

func initStringOps() {
	opTable[0xA4] = stringOpWrapper(movsBody(8), false)
	opTable[0xA5] = stringOpWrapper(movsBody(16), false)
	opTable[0xA6] = stringOpWrapper(cmpsBody(8), true)
	opTable[0xA7] = stringOpWrapper(cmpsBody(16), true)
	opTable[0xAA] = stringOpWrapper(stosBody(8), false)
	opTable[0xAB] = stringOpWrapper(stosBody(16), false)
	opTable[0xAC] = stringOpWrapper(lodsBody(8), false)
	opTable[0xAD] = stringOpWrapper(lodsBody(16), false)
	opTable[0xAE] = stringOpWrapper(scasBody(8), true)
	opTable[0xAF] = stringOpWrapper(scasBody(16), true)
}
