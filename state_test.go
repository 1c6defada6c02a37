// state_test.go - register/flag/state unit tests
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

package cpu86e

import "testing"

func TestInitState(t *testing.T) {
	s := InitState()
	if got, want := s.Seg(CS), uint16(0xFFFF); got != want {
		t.Errorf("CS = 0x%04X, want 0x%04X", got, want)
	}
	if got := s.IP(); got != 0 {
		t.Errorf("IP = 0x%04X, want 0", got)
	}
	for _, r := range []Register{AX, CX, DX, BX, SP, BP, SI, DI} {
		if got := s.GPR(r); got != 0 {
			t.Errorf("GPR(%d) = 0x%04X, want 0", r, got)
		}
	}
}

func TestGPRRoundTrip(t *testing.T) {
	var s CPUState
	s.SetGPR(BX, 0x1234)
	if got, want := s.GPR(BX), uint16(0x1234); got != want {
		t.Errorf("GPR(BX) = 0x%04X, want 0x%04X", got, want)
	}
}

func TestSegRoundTrip(t *testing.T) {
	var s CPUState
	s.SetSeg(DS, 0xABCD)
	if got, want := s.Seg(DS), uint16(0xABCD); got != want {
		t.Errorf("Seg(DS) = 0x%04X, want 0x%04X", got, want)
	}
}

func TestFlagHelpers(t *testing.T) {
	f := setFlag(0, FlagCF, true)
	if !getFlag(f, FlagCF) {
		t.Errorf("FlagCF not set after setFlag(true)")
	}
	f = setFlag(f, FlagCF, false)
	if getFlag(f, FlagCF) {
		t.Errorf("FlagCF still set after setFlag(false)")
	}
}

func TestReg8Aliasing(t *testing.T) {
	c := NewCPU(&testBackend{})
	c.setReg16(byte(AX), 0x1234)
	if got, want := c.getReg8(0), uint8(0x34); got != want { // AL
		t.Errorf("AL = 0x%02X, want 0x%02X", got, want)
	}
	if got, want := c.getReg8(4), uint8(0x12); got != want { // AH
		t.Errorf("AH = 0x%02X, want 0x%02X", got, want)
	}
	c.setReg8(4, 0x56) // AH
	if got, want := c.getReg16(byte(AX)), uint16(0x5634); got != want {
		t.Errorf("AX = 0x%04X, want 0x%04X", got, want)
	}
}
