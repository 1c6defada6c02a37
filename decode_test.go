// decode_test.go - ModR/M decode and segment-default unit tests
//
// (c) 2024-2026 cpu86e contributors - GPLv3 or later

package cpu86e

import "testing"

func newTestCPU() (*CPU, *testBackend) {
	b := newTestBackend()
	c := NewCPUWithState(InitState(), b)
	c.state.sregs[CS] = 0
	c.state.ip = 0x100
	return c, b
}

func TestModRMRegisterDirect(t *testing.T) {
	c, b := newTestCPU()
	b.loadAt(0x100, 0xC3) // mod=11 reg=000 rm=011 -> reg AX, rm BX
	m := c.fetchModRM()
	if m.kind != rmReg {
		t.Fatalf("mod=3 must decode as rmReg, got %v", m.kind)
	}
	if m.rm != 3 || m.regField != 0 {
		t.Errorf("rm=%d reg=%d, want rm=3 reg=0", m.rm, m.regField)
	}
}

func TestModRMBXSIDefaultDS(t *testing.T) {
	c, b := newTestCPU()
	b.loadAt(0x100, 0x00) // mod=00 reg=000 rm=000 -> [BX+SI]
	c.state.gpr[BX] = 0x1000
	c.state.gpr[SI] = 0x0020
	m := c.fetchModRM()
	if m.kind != rmAddr {
		t.Fatalf("[BX+SI] must default to DS, got kind %v", m.kind)
	}
	if m.addr != 0x1020 {
		t.Errorf("effective offset = 0x%04X, want 0x1020", m.addr)
	}
	if c.segForRM(m, SegReserve) != DS {
		t.Errorf("default segment for [BX+SI] must be DS")
	}
}

func TestModRMBPSIDefaultSS(t *testing.T) {
	c, b := newTestCPU()
	b.loadAt(0x100, 0x02) // mod=00 reg=000 rm=010 -> [BP+SI]
	c.state.gpr[BP] = 0x0010
	c.state.gpr[SI] = 0x0005
	m := c.fetchModRM()
	if m.kind != rmAddrSS {
		t.Fatalf("[BP+SI] must default to SS, got kind %v", m.kind)
	}
	if c.segForRM(m, SegReserve) != SS {
		t.Errorf("default segment for [BP+SI] must be SS")
	}
}

func TestModRMDirectAddressDefaultsDS(t *testing.T) {
	c, b := newTestCPU()
	b.loadAt(0x100, 0x06, 0x34, 0x12) // mod=00 reg=000 rm=110 -> disp16 only, no BP
	m := c.fetchModRM()
	if m.kind != rmAddr {
		t.Fatalf("mod=0,rm=6 direct address must default to DS, got %v", m.kind)
	}
	if m.addr != 0x1234 {
		t.Errorf("effective offset = 0x%04X, want 0x1234", m.addr)
	}
}

func TestModRMBPDisp8DefaultsSS(t *testing.T) {
	c, b := newTestCPU()
	b.loadAt(0x100, 0x46, 0x05) // mod=01 reg=000 rm=110 -> [BP+disp8]
	c.state.gpr[BP] = 0x2000
	m := c.fetchModRM()
	if m.kind != rmAddrSS {
		t.Fatalf("[BP+disp8] must default to SS, got %v", m.kind)
	}
	if m.addr != 0x2005 {
		t.Errorf("effective offset = 0x%04X, want 0x2005", m.addr)
	}
}

func TestModRMDisp8SignExtends(t *testing.T) {
	c, b := newTestCPU()
	b.loadAt(0x100, 0x47, 0xFF) // mod=01 rm=111 -> [BX+disp8], disp8=-1
	c.state.gpr[BX] = 0x0100
	m := c.fetchModRM()
	if m.addr != 0x00FF {
		t.Errorf("[BX-1] = 0x%04X, want 0x00FF", m.addr)
	}
}

func TestSegmentOverridePrefixWins(t *testing.T) {
	c, b := newTestCPU()
	b.loadAt(0x100, 0x00)
	m := c.fetchModRM()
	if c.segForRM(m, ES) != ES {
		t.Errorf("explicit ES override must win over [BX+SI]'s DS default")
	}
}
