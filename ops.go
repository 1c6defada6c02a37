// ops.go - primary 256-entry opcode table
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

package cpu86e

// condCheck evaluates one of the sixteen Jcc/SETcc condition codes
// against the current FLAGS.
func condCheck(cc byte, flags uint16) bool {
	of := flags&FlagOF != 0
	cf := flags&FlagCF != 0
	zf := flags&FlagZF != 0
	sf := flags&FlagSF != 0
	pf := flags&FlagPF != 0
	switch cc {
	case 0x0:
		return of
	case 0x1:
		return !of
	case 0x2:
		return cf
	case 0x3:
		return !cf
	case 0x4:
		return zf
	case 0x5:
		return !zf
	case 0x6:
		return cf || zf
	case 0x7:
		return !cf && !zf
	case 0x8:
		return sf
	case 0x9:
		return !sf
	case 0xA:
		return pf
	case 0xB:
		return !pf
	case 0xC:
		return sf != of
	case 0xD:
		return sf == of
	case 0xE:
		return (sf != of) || zf
	default: // 0xF
		return sf == of && !zf
	}
}

func aluFormEbGb(op aluOp, writeBack bool) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		dst := c.readRM8(m, pfx.seg)
		src := c.getReg8(m.regField)
		result, flags := binOp(8, op, uint32(dst), uint32(src), c.state.flags)
		c.state.flags = flags
		if writeBack {
			c.writeRM8(m, pfx.seg, uint8(result))
		}
		return StatusNormal, noFault
	}
}

func aluFormEvGv(op aluOp, writeBack bool) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		dst := c.readRM16(m, pfx.seg)
		src := c.getReg16(m.regField)
		result, flags := binOp(16, op, uint32(dst), uint32(src), c.state.flags)
		c.state.flags = flags
		if writeBack {
			c.writeRM16(m, pfx.seg, uint16(result))
		}
		return StatusNormal, noFault
	}
}

func aluFormGbEb(op aluOp) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		dst := c.getReg8(m.regField)
		src := c.readRM8(m, pfx.seg)
		result, flags := binOp(8, op, uint32(dst), uint32(src), c.state.flags)
		c.state.flags = flags
		c.setReg8(m.regField, uint8(result))
		return StatusNormal, noFault
	}
}

func aluFormGvEv(op aluOp) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		dst := c.getReg16(m.regField)
		src := c.readRM16(m, pfx.seg)
		result, flags := binOp(16, op, uint32(dst), uint32(src), c.state.flags)
		c.state.flags = flags
		c.setReg16(m.regField, uint16(result))
		return StatusNormal, noFault
	}
}

func aluFormALIb(op aluOp) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		imm := c.fetch8()
		dst := c.getReg8(0)
		result, flags := binOp(8, op, uint32(dst), uint32(imm), c.state.flags)
		c.state.flags = flags
		if op != aluCmp {
			c.setReg8(0, uint8(result))
		}
		return StatusNormal, noFault
	}
}

func aluFormAXIv(op aluOp) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		imm := c.fetch16()
		dst := c.getReg16(byte(AX))
		result, flags := binOp(16, op, uint32(dst), uint32(imm), c.state.flags)
		c.state.flags = flags
		if op != aluCmp {
			c.setReg16(byte(AX), uint16(result))
		}
		return StatusNormal, noFault
	}
}

func opPushSeg(seg SegmentRegister) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		c.push16(c.state.sregs[seg])
		return StatusNormal, noFault
	}
}

func opPopSeg(seg SegmentRegister) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		c.state.sregs[seg] = c.pop16()
		return StatusNormal, noFault
	}
}

func initOpTable() {
	binOps := [8]aluOp{aluAdd, aluOr, aluAdc, aluSbb, aluAnd, aluSub, aluXor, aluCmp}
	for i, op := range binOps {
		base := byte(i * 8)
		wb := op != aluCmp
		opTable[base+0] = aluFormEbGb(op, wb)
		opTable[base+1] = aluFormEvGv(op, wb)
		opTable[base+2] = aluFormGbEb(op)
		opTable[base+3] = aluFormGvEv(op)
		opTable[base+4] = aluFormALIb(op)
		opTable[base+5] = aluFormAXIv(op)
	}
	opTable[0x06] = opPushSeg(ES)
	opTable[0x07] = opPopSeg(ES)
	opTable[0x0E] = opPushSeg(CS)
	opTable[0x0F] = opPopSeg(CS) // real 8086 silicon decodes this as POP CS
	opTable[0x16] = opPushSeg(SS)
	opTable[0x17] = opPopSeg(SS)
	opTable[0x1E] = opPushSeg(DS)
	opTable[0x1F] = opPopSeg(DS)
	opTable[0x27] = opDAA
	opTable[0x2F] = opDAS
	opTable[0x37] = opAAA
	opTable[0x3F] = opAAS
	// 0x26/0x2E/0x36/0x3E are segment-override prefixes, absorbed by
	// parsePrefixes before dispatch; left unset here.

	for r := 0; r < 8; r++ {
		reg := byte(r)
		opTable[0x40+reg] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
			v, f := incDec(16, uint32(c.getReg16(reg)), false, c.state.flags)
			c.setReg16(reg, uint16(v))
			c.state.flags = f
			return StatusNormal, noFault
		}
		opTable[0x48+reg] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
			v, f := incDec(16, uint32(c.getReg16(reg)), true, c.state.flags)
			c.setReg16(reg, uint16(v))
			c.state.flags = f
			return StatusNormal, noFault
		}
		opTable[0x50+reg] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
			c.push16(c.getReg16(reg))
			return StatusNormal, noFault
		}
		opTable[0x58+reg] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
			c.setReg16(reg, c.pop16())
			return StatusNormal, noFault
		}
		opTable[0xB0+reg] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
			c.setReg8(reg, c.fetch8())
			return StatusNormal, noFault
		}
		opTable[0xB8+reg] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
			c.setReg16(reg, c.fetch16())
			return StatusNormal, noFault
		}
		if reg != 0 {
			opTable[0x90+reg] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
				a := c.getReg16(byte(AX))
				b := c.getReg16(reg)
				c.setReg16(byte(AX), b)
				c.setReg16(reg, a)
				return StatusNormal, noFault
			}
		}
	}
	opTable[0x90] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { return StatusNormal, noFault } // NOP

	// 0x60-0x63 and 0x68-0x6F: PUSHA/POPA/BOUND/ARPL and the 186+
	// immediate-group duplicates of 0x80-0x83 — none exist on 8086/8088,
	// left as #UD. 0x64-0x67 never reach the table: parsePrefixes
	// consumes them as prefix bytes.

	for cc := byte(0); cc < 16; cc++ {
		ccv := cc
		opTable[0x70+cc] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
			rel := int8(c.fetch8())
			if condCheck(ccv, c.state.flags) {
				c.state.ip = uint16(int32(c.state.ip) + int32(rel))
			}
			return StatusNormal, noFault
		}
	}

	opTable[0x80] = opGrp1(8, false)
	opTable[0x81] = opGrp1(16, false)
	opTable[0x82] = opGrp1(8, true)
	opTable[0x83] = opGrp1(16, true)

	opTable[0x84] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		_, flags := binOp(8, aluAnd, uint32(c.readRM8(m, pfx.seg)), uint32(c.getReg8(m.regField)), c.state.flags)
		c.state.flags = flags
		return StatusNormal, noFault
	}
	opTable[0x85] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		_, flags := binOp(16, aluAnd, uint32(c.readRM16(m, pfx.seg)), uint32(c.getReg16(m.regField)), c.state.flags)
		c.state.flags = flags
		return StatusNormal, noFault
	}
	opTable[0x86] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		a, b := c.readRM8(m, pfx.seg), c.getReg8(m.regField)
		c.writeRM8(m, pfx.seg, b)
		c.setReg8(m.regField, a)
		return StatusNormal, noFault
	}
	opTable[0x87] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		a, b := c.readRM16(m, pfx.seg), c.getReg16(m.regField)
		c.writeRM16(m, pfx.seg, b)
		c.setReg16(m.regField, a)
		return StatusNormal, noFault
	}
	opTable[0x88] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		c.writeRM8(m, pfx.seg, c.getReg8(m.regField))
		return StatusNormal, noFault
	}
	opTable[0x89] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		c.writeRM16(m, pfx.seg, c.getReg16(m.regField))
		return StatusNormal, noFault
	}
	opTable[0x8A] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		c.setReg8(m.regField, c.readRM8(m, pfx.seg))
		return StatusNormal, noFault
	}
	opTable[0x8B] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		c.setReg16(m.regField, c.readRM16(m, pfx.seg))
		return StatusNormal, noFault
	}
	opTable[0x8C] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		seg := SegmentRegister(m.regField & 3)
		c.writeRM16(m, pfx.seg, c.state.sregs[seg])
		return StatusNormal, noFault
	}
	opTable[0x8E] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		seg := SegmentRegister(m.regField & 3)
		if seg == CS {
			return StatusNormal, VectorUD
		}
		c.state.sregs[seg] = c.readRM16(m, pfx.seg)
		return StatusNormal, noFault
	}
	opTable[0x8D] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		if m.kind == rmReg {
			return StatusNormal, VectorUD
		}
		c.setReg16(m.regField, m.addr)
		return StatusNormal, noFault
	}
	opTable[0x8F] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		c.writeRM16(m, pfx.seg, c.pop16())
		return StatusNormal, noFault
	}

	opTable[0x98] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // CBW
		c.setReg16(byte(AX), uint16(int16(int8(c.getReg8(0)))))
		return StatusNormal, noFault
	}
	opTable[0x99] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // CWD
		ax := int16(c.getReg16(byte(AX)))
		if ax < 0 {
			c.setReg16(byte(DX), 0xFFFF)
		} else {
			c.setReg16(byte(DX), 0)
		}
		return StatusNormal, noFault
	}
	opTable[0x9A] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // CALL ptr16:16
		ip := c.fetch16()
		cs := c.fetch16()
		c.push16(c.state.sregs[CS])
		c.push16(c.state.ip)
		c.state.sregs[CS] = cs
		c.state.ip = ip
		return StatusNormal, noFault
	}
	opTable[0x9B] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { return StatusNormal, noFault } // FWAIT: no coprocessor
	opTable[0x9C] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // PUSHF
		c.push16(c.state.flags)
		return StatusNormal, noFault
	}
	opTable[0x9D] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // POPF
		c.state.flags = c.pop16()
		return StatusNormal, noFault
	}
	opTable[0x9E] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // SAHF
		f := c.state.flags&0xFF00 | uint16(c.getReg8(4)) // AH
		c.state.flags = f
		return StatusNormal, noFault
	}
	opTable[0x9F] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // LAHF
		c.setReg8(4, uint8(c.state.flags)) // AH
		return StatusNormal, noFault
	}
	opTable[0xA0] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		off := c.fetch16()
		c.setReg8(0, c.read8(c.segForRM(modRM{kind: rmAddr}, pfx.seg), off))
		return StatusNormal, noFault
	}
	opTable[0xA1] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		off := c.fetch16()
		c.setReg16(byte(AX), c.read16(c.segForRM(modRM{kind: rmAddr}, pfx.seg), off))
		return StatusNormal, noFault
	}
	opTable[0xA2] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		off := c.fetch16()
		c.write8(c.segForRM(modRM{kind: rmAddr}, pfx.seg), off, c.getReg8(0))
		return StatusNormal, noFault
	}
	opTable[0xA3] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		off := c.fetch16()
		c.write16(c.segForRM(modRM{kind: rmAddr}, pfx.seg), off, c.getReg16(byte(AX)))
		return StatusNormal, noFault
	}
	opTable[0xA8] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		imm := c.fetch8()
		_, flags := binOp(8, aluAnd, uint32(c.getReg8(0)), uint32(imm), c.state.flags)
		c.state.flags = flags
		return StatusNormal, noFault
	}
	opTable[0xA9] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		imm := c.fetch16()
		_, flags := binOp(16, aluAnd, uint32(c.getReg16(byte(AX))), uint32(imm), c.state.flags)
		c.state.flags = flags
		return StatusNormal, noFault
	}

	opTable[0xC2] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		imm := c.fetch16()
		c.state.ip = c.pop16()
		c.state.gpr[SP] += imm
		return StatusNormal, noFault
	}
	opTable[0xC3] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		c.state.ip = c.pop16()
		return StatusNormal, noFault
	}
	opTable[0xC4] = opLoadFarPtr(ES)
	opTable[0xC5] = opLoadFarPtr(DS)
	opTable[0xC6] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		imm := c.fetch8()
		c.writeRM8(m, pfx.seg, imm)
		return StatusNormal, noFault
	}
	opTable[0xC7] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		imm := c.fetch16()
		c.writeRM16(m, pfx.seg, imm)
		return StatusNormal, noFault
	}
	opTable[0xCA] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		imm := c.fetch16()
		c.state.ip = c.pop16()
		c.state.sregs[CS] = c.pop16()
		c.state.gpr[SP] += imm
		return StatusNormal, noFault
	}
	opTable[0xCB] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		c.state.ip = c.pop16()
		c.state.sregs[CS] = c.pop16()
		return StatusNormal, noFault
	}
	opTable[0xCC] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		// INT3 is a deliberate software trap, not a fault to retry: it
		// delivers against the already-advanced IP, same as the
		// teacher's opINT calling handleInterrupt after the opcode
		// fetch, so the IRET return address is the instruction after
		// the INT3, not the INT3 itself.
		c.deliverInterrupt(VectorBP)
		return StatusNormal, noFault
	}
	opTable[0xCD] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		vec := c.fetch8()
		c.deliverInterrupt(vec)
		return StatusNormal, noFault
	}
	opTable[0xCE] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		if c.state.flags&FlagOF != 0 {
			c.deliverInterrupt(VectorOF)
		}
		return StatusNormal, noFault
	}
	opTable[0xCF] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // IRET
		c.state.ip = c.pop16()
		c.state.sregs[CS] = c.pop16()
		c.state.flags = c.pop16()
		return StatusNormal, noFault
	}
	opTable[0xD4] = opAAM
	opTable[0xD5] = opAAD
	opTable[0xD7] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // XLAT
		seg := pfx.seg
		if seg == SegReserve {
			seg = DS
		}
		off := c.getReg16(byte(BX)) + uint16(c.getReg8(0))
		c.setReg8(0, c.read8(seg, off))
		return StatusNormal, noFault
	}
	for op := byte(0xD8); op <= 0xDF; op++ {
		opTable[op] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
			// ESC: no coprocessor is modeled; decode and discard the
			// operand, matching a real bus cycle with nothing latching it.
			m := c.fetchModRM()
			if m.kind != rmReg {
				c.readRM16(m, pfx.seg)
			}
			return StatusNormal, noFault
		}
	}
	opTable[0xE0] = opLoop(func(zf bool) bool { return !zf }, true)  // LOOPNZ
	opTable[0xE1] = opLoop(func(zf bool) bool { return zf }, true)   // LOOPZ
	opTable[0xE2] = opLoop(func(zf bool) bool { return true }, true) // LOOP
	opTable[0xE3] = opLoop(func(zf bool) bool { return true }, false) // JCXZ
	opTable[0xE4] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		port := uint16(c.fetch8())
		c.setReg8(0, c.backend.ReadIOByte(port))
		return StatusNormal, noFault
	}
	opTable[0xE5] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		port := uint16(c.fetch8())
		c.setReg16(byte(AX), c.backend.ReadIOWord(port))
		return StatusNormal, noFault
	}
	opTable[0xE6] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		port := uint16(c.fetch8())
		c.backend.WriteIOByte(port, c.getReg8(0))
		return StatusNormal, noFault
	}
	opTable[0xE7] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		port := uint16(c.fetch8())
		c.backend.WriteIOWord(port, c.getReg16(byte(AX)))
		return StatusNormal, noFault
	}
	opTable[0xE8] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // CALL rel16
		rel := int16(c.fetch16())
		c.push16(c.state.ip)
		c.state.ip = uint16(int32(c.state.ip) + int32(rel))
		return StatusNormal, noFault
	}
	opTable[0xE9] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // JMP rel16
		rel := int16(c.fetch16())
		c.state.ip = uint16(int32(c.state.ip) + int32(rel))
		return StatusNormal, noFault
	}
	opTable[0xEA] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // JMP ptr16:16
		ip := c.fetch16()
		cs := c.fetch16()
		c.state.ip = ip
		c.state.sregs[CS] = cs
		return StatusNormal, noFault
	}
	opTable[0xEB] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // JMP rel8
		rel := int8(c.fetch8())
		c.state.ip = uint16(int32(c.state.ip) + int32(rel))
		return StatusNormal, noFault
	}
	opTable[0xEC] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		c.setReg8(0, c.backend.ReadIOByte(c.getReg16(byte(DX))))
		return StatusNormal, noFault
	}
	opTable[0xED] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		c.setReg16(byte(AX), c.backend.ReadIOWord(c.getReg16(byte(DX))))
		return StatusNormal, noFault
	}
	opTable[0xEE] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		c.backend.WriteIOByte(c.getReg16(byte(DX)), c.getReg8(0))
		return StatusNormal, noFault
	}
	opTable[0xEF] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		c.backend.WriteIOWord(c.getReg16(byte(DX)), c.getReg16(byte(AX)))
		return StatusNormal, noFault
	}
	opTable[0xF4] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // HLT
		c.signals.SetHalt(1)
		return StatusHalt, noFault
	}
	opTable[0xF5] = func(c *CPU, pfx prefixDescriptor) (StepStatus, int) { // CMC
		c.state.flags = setFlag(c.state.flags, FlagCF, c.state.flags&FlagCF == 0)
		return StatusNormal, noFault
	}
	opTable[0xF8] = flagSetter(FlagCF, false)
	opTable[0xF9] = flagSetter(FlagCF, true)
	opTable[0xFA] = flagSetter(FlagIF, false)
	opTable[0xFB] = flagSetter(FlagIF, true)
	opTable[0xFC] = flagSetter(FlagDF, false)
	opTable[0xFD] = flagSetter(FlagDF, true)

	opTable[0xF6] = opGrp3(8)
	opTable[0xF7] = opGrp3(16)
	opTable[0xFE] = opGrp4
	opTable[0xFF] = opGrp5

	opTable[0xC0] = opGrp2Imm8(8)
	opTable[0xC1] = opGrp2Imm8(16)
	opTable[0xD0] = opGrp2Count(8, func(c *CPU) uint8 { return 1 })
	opTable[0xD1] = opGrp2Count(16, func(c *CPU) uint8 { return 1 })
	opTable[0xD2] = opGrp2Count(8, func(c *CPU) uint8 { return c.getReg8(1) })
	opTable[0xD3] = opGrp2Count(16, func(c *CPU) uint8 { return c.getReg8(1) })

	initStringOps()
}

func flagSetter(mask uint16, val bool) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		c.state.flags = setFlag(c.state.flags, mask, val)
		return StatusNormal, noFault
	}
}

func opLoadFarPtr(seg SegmentRegister) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		if m.kind == rmReg {
			return StatusNormal, VectorUD
		}
		s := c.segForRM(m, pfx.seg)
		c.setReg16(m.regField, c.read16(s, m.addr))
		c.state.sregs[seg] = c.read16(s, m.addr+2)
		return StatusNormal, noFault
	}
}

func opLoop(cond func(zf bool) bool, decrementCX bool) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		rel := int8(c.fetch8())
		if decrementCX {
			cx := c.getReg16(byte(CX)) - 1
			c.setReg16(byte(CX), cx)
			if cx != 0 && cond(c.state.flags&FlagZF != 0) {
				c.state.ip = uint16(int32(c.state.ip) + int32(rel))
			}
		} else {
			if c.getReg16(byte(CX)) == 0 {
				c.state.ip = uint16(int32(c.state.ip) + int32(rel))
			}
		}
		return StatusNormal, noFault
	}
}
