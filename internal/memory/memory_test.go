package memory

import "testing"

type stubPPU struct {
	reads  map[uint16]uint8
	writes map[uint16]uint8
}

func newStubPPU() *stubPPU {
	return &stubPPU{reads: make(map[uint16]uint8), writes: make(map[uint16]uint8)}
}

func (s *stubPPU) ReadRegister(address uint16) uint8 { return s.reads[address] }
func (s *stubPPU) WriteRegister(address uint16, value uint8) { s.writes[address] = value }

type stubAPU struct{ status uint8 }

func (s *stubAPU) WriteRegister(address uint16, value uint8) {}
func (s *stubAPU) ReadStatus() uint8                         { return s.status }

func TestRAMMirroring(t *testing.T) {
	m := New(newStubPPU(), &stubAPU{}, nil)
	m.Write(0x0010, 0x42)
	for k := uint16(0); k < 4; k++ {
		if got := m.Read(0x0010 + 0x0800*k); got != 0x42 {
			t.Errorf("mirror %d: Read(%04X) = %02X, want 42", k, 0x0010+0x0800*k, got)
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	ppu := newStubPPU()
	m := New(ppu, &stubAPU{}, nil)
	m.Write(0x2000, 0x80)
	if got := ppu.writes[0x2000]; got != 0x80 {
		t.Errorf("$2000 write not forwarded: got %02X", got)
	}
	m.Write(0x2008, 0x11) // mirrors to $2000
	if got := ppu.writes[0x2000]; got != 0x11 {
		t.Errorf("$2008 should alias $2000: got %02X", got)
	}
	m.Write(0x3FFF, 0x22) // (0x3FFF - 0x2000) % 8 == 7 -> $2007
	if got := ppu.writes[0x2007]; got != 0x22 {
		t.Errorf("$3FFF should alias $2007: got %02X", got)
	}
}

func TestPalettePaletteMirroring(t *testing.T) {
	pm := NewPPUMemory(nil, MirrorHorizontal)
	pm.Write(0x3F00, 0x10)
	if got := pm.Read(0x3F10); got != 0x10 {
		t.Errorf("$3F10 should alias $3F00: got %02X, want 10", got)
	}
	pm.Write(0x3F04, 0x20)
	if got := pm.Read(0x3F14); got != 0x20 {
		t.Errorf("$3F14 should alias $3F04: got %02X, want 20", got)
	}
}

func TestHorizontalMirroring(t *testing.T) {
	pm := NewPPUMemory(nil, MirrorHorizontal)
	pm.Write(0x2000, 0xAB)
	if got := pm.Read(0x2400); got != 0xAB {
		t.Errorf("horizontal mirror: $2400 should equal $2000: got %02X", got)
	}
	if got := pm.Read(0x2800); got == 0xAB {
		t.Errorf("horizontal mirror: $2800 should be a different 1KB bank")
	}
}

func TestVerticalMirroring(t *testing.T) {
	pm := NewPPUMemory(nil, MirrorVertical)
	pm.Write(0x2000, 0xCD)
	if got := pm.Read(0x2800); got != 0xCD {
		t.Errorf("vertical mirror: $2800 should equal $2000: got %02X", got)
	}
}

func TestNametableAliasRange(t *testing.T) {
	pm := NewPPUMemory(nil, MirrorHorizontal)
	pm.Write(0x2000, 0x77)
	if got := pm.Read(0x3000); got != 0x77 {
		t.Errorf("$3000 should alias $2000: got %02X", got)
	}
}
