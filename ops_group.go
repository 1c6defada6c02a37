// ops_group.go - Grp1-5 opcode implementations (shifts, multiply/divide, INC/DEC, CALL/JMP/PUSH via ModR/M)
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

package cpu86e

// opGrp1 implements the 0x80-0x83 immediate-binary-op group. width is
// the operand width (8 or 16); signExtendImm8 selects the 0x83 form,
// where a single signed imm8 is sign-extended to 16 bits instead of a
// full imm16 being read.
func opGrp1(width uint, signExtendImm8 bool) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		op := aluOp(m.regField & 7)
		var dst, src uint32
		if width == 8 {
			dst = uint32(c.readRM8(m, pfx.seg))
			src = uint32(c.fetch8())
		} else {
			dst = uint32(c.readRM16(m, pfx.seg))
			if signExtendImm8 {
				src = uint32(uint16(int16(int8(c.fetch8()))))
			} else {
				src = uint32(c.fetch16())
			}
		}
		result, flags := binOp(width, op, dst, src, c.state.flags)
		c.state.flags = flags
		if op != aluCmp {
			if width == 8 {
				c.writeRM8(m, pfx.seg, uint8(result))
			} else {
				c.writeRM16(m, pfx.seg, uint16(result))
			}
		}
		return StatusNormal, noFault
	}
}

func doShift(c *CPU, pfx prefixDescriptor, m modRM, width uint, op shiftOp, count uint8) {
	if width == 8 {
		val := c.readRM8(m, pfx.seg)
		r, f := shiftRotate(8, op, uint32(val), count, c.state.flags)
		c.state.flags = f
		c.writeRM8(m, pfx.seg, uint8(r))
	} else {
		val := c.readRM16(m, pfx.seg)
		r, f := shiftRotate(16, op, uint32(val), count, c.state.flags)
		c.state.flags = f
		c.writeRM16(m, pfx.seg, uint16(r))
	}
}

func opGrp2Imm8(width uint) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		count := c.fetch8()
		doShift(c, pfx, m, width, shiftOp(m.regField&7), count)
		return StatusNormal, noFault
	}
}

func opGrp2Count(width uint, countFn func(*CPU) uint8) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		count := countFn(c)
		doShift(c, pfx, m, width, shiftOp(m.regField&7), count)
		return StatusNormal, noFault
	}
}

// opGrp3 implements 0xF6/0xF7: TEST/NOT/NEG/MUL/IMUL/DIV/IDIV, keyed
// on the ModR/M reg field. DIV/IDIV return VectorDE instead of
// touching memory/registers when the divisor is zero or the quotient
// doesn't fit the destination — exactly the case the step engine's
// typed fault return exists for, in place of the in-band
// handleInterrupt-and-return style this is generalized from.
func opGrp3(width uint) opHandler {
	return func(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
		m := c.fetchModRM()
		mask := uint32(1)<<width - 1
		switch m.regField {
		case 0, 1: // TEST
			var imm uint32
			var val uint32
			if width == 8 {
				val = uint32(c.readRM8(m, pfx.seg))
				imm = uint32(c.fetch8())
			} else {
				val = uint32(c.readRM16(m, pfx.seg))
				imm = uint32(c.fetch16())
			}
			_, flags := binOp(width, aluAnd, val, imm, c.state.flags)
			c.state.flags = flags
		case 2: // NOT
			if width == 8 {
				c.writeRM8(m, pfx.seg, uint8(^c.readRM8(m, pfx.seg)))
			} else {
				c.writeRM16(m, pfx.seg, uint16(^c.readRM16(m, pfx.seg)&uint16(mask)))
			}
		case 3: // NEG
			var val uint32
			if width == 8 {
				val = uint32(c.readRM8(m, pfx.seg))
			} else {
				val = uint32(c.readRM16(m, pfx.seg))
			}
			result, flags := binOp(width, aluSub, 0, val, c.state.flags)
			flags = setFlag(flags, FlagCF, val != 0)
			c.state.flags = flags
			if width == 8 {
				c.writeRM8(m, pfx.seg, uint8(result))
			} else {
				c.writeRM16(m, pfx.seg, uint16(result))
			}
		case 4: // MUL
			if width == 8 {
				val := uint16(c.readRM8(m, pfx.seg))
				prod := uint16(c.getReg8(0)) * val
				c.setReg16(byte(AX), prod)
				cf := prod>>8 != 0
				c.state.flags = setFlag(c.state.flags, FlagCF, cf)
				c.state.flags = setFlag(c.state.flags, FlagOF, cf)
			} else {
				val := uint32(c.readRM16(m, pfx.seg))
				prod := uint32(c.getReg16(byte(AX))) * val
				c.setReg16(byte(AX), uint16(prod))
				c.setReg16(byte(DX), uint16(prod>>16))
				cf := prod>>16 != 0
				c.state.flags = setFlag(c.state.flags, FlagCF, cf)
				c.state.flags = setFlag(c.state.flags, FlagOF, cf)
			}
		case 5: // IMUL
			if width == 8 {
				val := int16(int8(c.readRM8(m, pfx.seg)))
				prod := int16(int8(c.getReg8(0))) * val
				c.setReg16(byte(AX), uint16(prod))
				of := prod < -128 || prod > 127
				c.state.flags = setFlag(c.state.flags, FlagCF, of)
				c.state.flags = setFlag(c.state.flags, FlagOF, of)
			} else {
				val := int32(int16(c.readRM16(m, pfx.seg)))
				prod := int32(int16(c.getReg16(byte(AX)))) * val
				c.setReg16(byte(AX), uint16(prod))
				c.setReg16(byte(DX), uint16(uint32(prod)>>16))
				of := prod < -32768 || prod > 32767
				c.state.flags = setFlag(c.state.flags, FlagCF, of)
				c.state.flags = setFlag(c.state.flags, FlagOF, of)
			}
		case 6: // DIV
			if width == 8 {
				divisor := uint16(c.readRM8(m, pfx.seg))
				if divisor == 0 {
					return StatusNormal, VectorDE
				}
				dividend := c.getReg16(byte(AX))
				q, r := dividend/divisor, dividend%divisor
				if q > 0xFF {
					return StatusNormal, VectorDE
				}
				c.setReg8(0, uint8(q))
				c.setReg8(4, uint8(r))
			} else {
				divisor := uint32(c.readRM16(m, pfx.seg))
				if divisor == 0 {
					return StatusNormal, VectorDE
				}
				dividend := uint32(c.getReg16(byte(DX)))<<16 | uint32(c.getReg16(byte(AX)))
				q, r := dividend/divisor, dividend%divisor
				if q > 0xFFFF {
					return StatusNormal, VectorDE
				}
				c.setReg16(byte(AX), uint16(q))
				c.setReg16(byte(DX), uint16(r))
			}
		case 7: // IDIV
			if width == 8 {
				divisor := int16(int8(c.readRM8(m, pfx.seg)))
				if divisor == 0 {
					return StatusNormal, VectorDE
				}
				dividend := int16(c.getReg16(byte(AX)))
				q, r := dividend/divisor, dividend%divisor
				if q < -128 || q > 127 {
					return StatusNormal, VectorDE
				}
				c.setReg8(0, uint8(q))
				c.setReg8(4, uint8(r))
			} else {
				divisor := int32(int16(c.readRM16(m, pfx.seg)))
				if divisor == 0 {
					return StatusNormal, VectorDE
				}
				dividend := int32(uint32(c.getReg16(byte(DX)))<<16 | uint32(c.getReg16(byte(AX))))
				q, r := dividend/divisor, dividend%divisor
				if q < -32768 || q > 32767 {
					return StatusNormal, VectorDE
				}
				c.setReg16(byte(AX), uint16(q))
				c.setReg16(byte(DX), uint16(r))
			}
		}
		return StatusNormal, noFault
	}
}

func opGrp4(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
	m := c.fetchModRM()
	switch m.regField {
	case 0, 1:
		val, flags := incDec(8, uint32(c.readRM8(m, pfx.seg)), m.regField == 1, c.state.flags)
		c.state.flags = flags
		c.writeRM8(m, pfx.seg, uint8(val))
		return StatusNormal, noFault
	default:
		return StatusNormal, VectorUD
	}
}

func opGrp5(c *CPU, pfx prefixDescriptor) (StepStatus, int) {
	m := c.fetchModRM()
	switch m.regField {
	case 0, 1:
		val, flags := incDec(16, uint32(c.readRM16(m, pfx.seg)), m.regField == 1, c.state.flags)
		c.state.flags = flags
		c.writeRM16(m, pfx.seg, uint16(val))
	case 2: // CALL near r/m16
		target := c.readRM16(m, pfx.seg)
		c.push16(c.state.ip)
		c.state.ip = target
	case 3: // CALL far m16:16
		if m.kind == rmReg {
			return StatusNormal, VectorUD
		}
		s := c.segForRM(m, pfx.seg)
		ip := c.read16(s, m.addr)
		cs := c.read16(s, m.addr+2)
		c.push16(c.state.sregs[CS])
		c.push16(c.state.ip)
		c.state.ip = ip
		c.state.sregs[CS] = cs
	case 4: // JMP near r/m16
		c.state.ip = c.readRM16(m, pfx.seg)
	case 5: // JMP far m16:16
		if m.kind == rmReg {
			return StatusNormal, VectorUD
		}
		s := c.segForRM(m, pfx.seg)
		c.state.ip = c.read16(s, m.addr)
		c.state.sregs[CS] = c.read16(s, m.addr+2)
	case 6: // PUSH r/m16
		c.push16(c.readRM16(m, pfx.seg))
	default:
		return StatusNormal, VectorUD
	}
	return StatusNormal, noFault
}
