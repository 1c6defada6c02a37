// alu_test.go - ALU engine unit tests
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

package cpu86e

import "testing"

func TestBinOpAdd8Flags(t *testing.T) {
	result, flags := binOp(8, aluAdd, 0xFF, 0x01, 0)
	if result != 0 {
		t.Errorf("0xFF+0x01 = 0x%02X, want 0", result)
	}
	if !getFlag(flags, FlagCF) {
		t.Errorf("CF not set on 8-bit overflow")
	}
	if !getFlag(flags, FlagZF) {
		t.Errorf("ZF not set on zero result")
	}
	if !getFlag(flags, FlagAF) {
		t.Errorf("AF not set on nibble carry")
	}
}

func TestBinOpSubBorrow(t *testing.T) {
	result, flags := binOp(8, aluSub, 0x00, 0x01, 0)
	if result != 0xFF {
		t.Errorf("0-1 = 0x%02X, want 0xFF", result)
	}
	if !getFlag(flags, FlagCF) {
		t.Errorf("CF (borrow) not set for 0-1")
	}
	if !getFlag(flags, FlagSF) {
		t.Errorf("SF not set for 0xFF result")
	}
}

func TestBinOpSbbCarryIn(t *testing.T) {
	// 5 - 3 - CF(1) = 1, no borrow.
	_, flagsIn := uint32(0), uint16(FlagCF)
	result, flags := binOp(8, aluSbb, 5, 3, uint16(flagsIn))
	if result != 1 {
		t.Errorf("5-3-1 = %d, want 1", result)
	}
	if getFlag(flags, FlagCF) {
		t.Errorf("CF incorrectly set for 5-3-1")
	}
}

func TestBinOpSbbZeroSrcWithCarryBorrows(t *testing.T) {
	// 0 - 0 - CF(1): must borrow even though src == 0, the edge case
	// that a naive complement-then-add implementation tends to miss.
	result, flags := binOp(8, aluSbb, 0, 0, FlagCF)
	if result != 0xFF {
		t.Errorf("0-0-1 = 0x%02X, want 0xFF", result)
	}
	if !getFlag(flags, FlagCF) {
		t.Errorf("CF not set for 0-0-1")
	}
}

func TestBinOpLogicalClearsCFOF(t *testing.T) {
	_, flags := binOp(8, aluAnd, 0xFF, 0xFF, FlagCF|FlagOF)
	if getFlag(flags, FlagCF) || getFlag(flags, FlagOF) {
		t.Errorf("AND must clear CF/OF, got flags=0x%04X", flags)
	}
}

func TestBinOpOverflow16(t *testing.T) {
	// 0x7FFF + 1 overflows into the sign bit: OF set, CF clear.
	_, flags := binOp(16, aluAdd, 0x7FFF, 1, 0)
	if !getFlag(flags, FlagOF) {
		t.Errorf("OF not set for 0x7FFF+1")
	}
	if getFlag(flags, FlagCF) {
		t.Errorf("CF incorrectly set for 0x7FFF+1")
	}
}

func TestIncDecPreservesCF(t *testing.T) {
	_, flags := incDec(16, 0xFFFF, false, FlagCF)
	if !getFlag(flags, FlagCF) {
		t.Errorf("INC must not clear a pre-existing CF")
	}
	_, flags = incDec(16, 0xFFFF, false, 0)
	if getFlag(flags, FlagCF) {
		t.Errorf("INC must not set CF on its own overflow (0xFFFF+1)")
	}
}

func TestShiftCountZeroNoOp(t *testing.T) {
	val, flags := shiftRotate(8, shiftSHL, 0x55, 0, FlagCF|FlagZF)
	if val != 0x55 {
		t.Errorf("count==0 mutated value: 0x%02X", val)
	}
	if flags != FlagCF|FlagZF {
		t.Errorf("count==0 mutated flags: 0x%04X", flags)
	}
}

func TestShiftOFOnlyDefinedAtCountOne(t *testing.T) {
	_, flags1 := shiftRotate(8, shiftSHL, 0x40, 1, 0)
	if !getFlag(flags1, FlagOF) {
		t.Errorf("SHL 0x40 by 1 should set OF (sign bit changes)")
	}
	// A count > 1 must not touch OF: seed it set, then rely on the
	// shift to leave it alone.
	_, flags2 := shiftRotate(8, shiftSHL, 0x40, 3, FlagOF)
	if !getFlag(flags2, FlagOF) {
		t.Errorf("count>1 must leave a pre-existing OF untouched")
	}
}

func TestShiftCFIsLastBitOut(t *testing.T) {
	val, flags := shiftRotate(8, shiftSHR, 0x01, 1, 0)
	if val != 0 {
		t.Errorf("0x01 SHR 1 = 0x%02X, want 0", val)
	}
	if !getFlag(flags, FlagCF) {
		t.Errorf("CF should carry the bit shifted out")
	}
}

func TestRotateDoesNotTouchSZP(t *testing.T) {
	_, flags := shiftRotate(8, shiftROL, 0x00, 1, FlagZF)
	if !getFlag(flags, FlagZF) {
		t.Errorf("ROL must not clear ZF: it only ever touches CF/OF")
	}
}

func TestParity(t *testing.T) {
	if !evenParity(0x00) {
		t.Errorf("0x00 has even (zero) parity")
	}
	if evenParity(0x01) {
		t.Errorf("0x01 has odd parity")
	}
	if !evenParity(0x03) {
		t.Errorf("0x03 has even parity (two bits set)")
	}
}
