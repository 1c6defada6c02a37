// ops_misc.go - BCD decimal-adjust instruction handlers
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

package cpu86e

// Decimal-adjust instructions: the classic 8086 BCD-correction
// algorithms, grounded on original_source/src/cpu.cpp's AAA/AAS/DAA/DAS
// (itself the textbook formulation of the 8086 manual's algorithm).

func opAAA(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
	al := c.getReg8(0)
	af := c.state.flags&FlagAF != 0
	adjust := al&0x0F > 9 || af
	if adjust {
		al += 6
		c.setReg8(4, c.getReg8(4)+1)
	}
	c.setReg8(0, al&0x0F)
	c.state.flags = setFlag(c.state.flags, FlagAF, adjust)
	c.state.flags = setFlag(c.state.flags, FlagCF, adjust)
	return StatusNormal, noFault
}

func opAAS(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
	al := c.getReg8(0)
	af := c.state.flags&FlagAF != 0
	adjust := al&0x0F > 9 || af
	if adjust {
		al -= 6
		c.setReg8(4, c.getReg8(4)-1)
	}
	c.setReg8(0, al&0x0F)
	c.state.flags = setFlag(c.state.flags, FlagAF, adjust)
	c.state.flags = setFlag(c.state.flags, FlagCF, adjust)
	return StatusNormal, noFault
}

func opDAA(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
	al := c.getReg8(0)
	oldAL := al
	oldCF := c.state.flags&FlagCF != 0
	af := c.state.flags&FlagAF != 0
	newCF, newAF := false, false
	if al&0x0F > 9 || af {
		al += 6
		newAF = true
	}
	if oldAL > 0x99 || oldCF {
		al += 0x60
		newCF = true
	}
	c.setReg8(0, al)
	flags := c.state.flags
	flags = setFlag(flags, FlagAF, newAF)
	flags = setFlag(flags, FlagCF, newCF)
	flags = setFlag(flags, FlagPF, evenParity(al))
	flags = setFlag(flags, FlagZF, al == 0)
	flags = setFlag(flags, FlagSF, al&0x80 != 0)
	c.state.flags = flags
	return StatusNormal, noFault
}

func opDAS(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
	al := c.getReg8(0)
	oldAL := al
	oldCF := c.state.flags&FlagCF != 0
	af := c.state.flags&FlagAF != 0
	newCF, newAF := false, false
	if al&0x0F > 9 || af {
		al -= 6
		newAF = true
	}
	if oldAL > 0x99 || oldCF {
		al -= 0x60
		newCF = true
	}
	c.setReg8(0, al)
	flags := c.state.flags
	flags = setFlag(flags, FlagAF, newAF)
	flags = setFlag(flags, FlagCF, newCF)
	flags = setFlag(flags, FlagPF, evenParity(al))
	flags = setFlag(flags, FlagZF, al == 0)
	flags = setFlag(flags, FlagSF, al&0x80 != 0)
	c.state.flags = flags
	return StatusNormal, noFault
}

func opAAM(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
	base := c.fetch8()
	if base == 0 {
		return StatusNormal, VectorDE
	}
	al := c.getReg8(0)
	ah := al / base
	al = al % base
	c.setReg8(4, ah)
	c.setReg8(0, al)
	flags := c.state.flags
	flags = setFlag(flags, FlagPF, evenParity(al))
	flags = setFlag(flags, FlagZF, al == 0)
	flags = setFlag(flags, FlagSF, al&0x80 != 0)
	c.state.flags = flags
	return StatusNormal, noFault
}

func opAAD(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
	base := c.fetch8()
	al, ah := c.getReg8(0), c.getReg8(4)
	newAL := ah*base + al
	c.setReg8(0, newAL)
	c.setReg8(4, 0)
	flags := c.state.flags
	flags = setFlag(flags, FlagPF, evenParity(newAL))
	flags = setFlag(flags, FlagZF, newAL == 0)
	flags = setFlag(flags, FlagSF, newAL&0x80 != 0)
	c.state.flags = flags
	return StatusNormal, noFault
}
