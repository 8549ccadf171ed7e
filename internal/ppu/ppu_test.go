package ppu

import "testing"

func TestResetSetsVBlankBit(t *testing.T) {
	p := New()
	p.Reset()
	if p.ppuStatus&0x80 == 0 {
		t.Fatal("PPUSTATUS should power on with VBlank flag set")
	}
}

func TestPPUSTATUSReadClearsLatchNotVBlankOnly(t *testing.T) {
	p := New()
	p.Reset()
	p.w = true
	status := p.ReadRegister(0x2002)
	if status&0x80 == 0 {
		t.Fatal("read should return the VBlank flag before clearing it")
	}
	if p.ppuStatus&0x80 != 0 {
		t.Fatal("reading $2002 must clear the VBlank flag")
	}
	if p.w {
		t.Fatal("reading $2002 must clear the write latch")
	}
}

func TestPPUADDRTwoWriteSequence(t *testing.T) {
	p := New()
	p.Reset()
	p.WriteRegister(0x2006, 0x21)
	p.WriteRegister(0x2006, 0x08)
	if p.v != 0x2108 {
		t.Fatalf("v = %04X, want 2108", p.v)
	}
}

func TestPPUDataIncrementModeBit(t *testing.T) {
	p := New()
	p.Reset()
	p.v = 0x2000
	p.ppuCtrl = 0x04 // +32 per access
	p.memory = nil
	p.incrementVRAMAddress()
	if p.v != 0x2020 {
		t.Fatalf("v = %04X, want 2020 (increment by 32)", p.v)
	}
}

func TestPPUDataIncrementDuringRenderingStepsXAndY(t *testing.T) {
	p := New()
	p.Reset()
	p.v = 0x0000 // coarse X=0, coarse Y=0, fine Y=0
	p.ppuCtrl = 0x04 // +32 mode must be ignored while rendering
	p.renderingEnabled = true
	p.scanline = 50
	p.memory = nil
	p.incrementVRAMAddress()
	if p.v&0x001F != 1 {
		t.Fatalf("coarse X = %d, want 1", p.v&0x001F)
	}
	if p.v&0x7000 != 0x1000 {
		t.Fatalf("fine Y = %d, want 1", p.v>>12)
	}
}

func TestScrollWriteSequence(t *testing.T) {
	p := New()
	p.Reset()
	p.WriteRegister(0x2005, 0x7D) // X: coarse=15, fine=5
	p.WriteRegister(0x2005, 0x5E) // Y: coarse=11, fine=6
	if p.x != 5 {
		t.Fatalf("fine X = %d, want 5", p.x)
	}
	if (p.t & 0x1F) != 15 {
		t.Fatalf("coarse X in t = %d, want 15", p.t&0x1F)
	}
}

func TestIncrementXWrapsNametable(t *testing.T) {
	p := New()
	p.v = 31 // coarse X = 31
	p.incrementX()
	if p.v&0x001F != 0 {
		t.Fatal("coarse X should wrap to 0")
	}
	if p.v&0x0400 == 0 {
		t.Fatal("horizontal nametable bit should toggle on coarse-X wrap")
	}
}

func TestIncrementYRow29Wraps(t *testing.T) {
	p := New()
	p.v = 0x7000 | (29 << 5) // fine Y = 7, coarse Y = 29
	p.incrementY()
	if (p.v>>5)&0x1F != 0 {
		t.Fatal("coarse Y should wrap to 0 at row 29")
	}
	if p.v&0x0800 == 0 {
		t.Fatal("vertical nametable bit should toggle at row-29 wraparound")
	}
}

func TestIncrementYRow31WrapsWithoutNametableSwitch(t *testing.T) {
	p := New()
	before := p.v
	p.v = 0x7000 | (31 << 5)
	beforeNT := p.v & 0x0800
	p.incrementY()
	if (p.v>>5)&0x1F != 0 {
		t.Fatal("coarse Y should wrap to 0 at row 31")
	}
	if p.v&0x0800 != beforeNT {
		t.Fatal("row-31 wraparound must not toggle the vertical nametable bit")
	}
	_ = before
}

func TestVBlankSetAtScanline241Cycle1(t *testing.T) {
	p := New()
	p.Reset()
	p.ppuStatus &^= 0x80 // Reset sets VBlank; clear it so only the step below can set it
	p.scanline = 240
	p.cycle = 340
	p.Step() // processes (240,340), advances to (241,0)
	p.Step() // processes (241,0), advances to (241,1)
	p.Step() // processes (241,1) -> sets VBlank
	if p.ppuStatus&0x80 == 0 {
		t.Fatal("VBlank flag should be set at scanline 241, dot 1")
	}
}

func TestNMIFiresWhenEnabledDuringVBlankSet(t *testing.T) {
	p := New()
	p.Reset()
	p.ppuCtrl = 0x80 // NMI enabled
	fired := false
	p.SetNMICallback(func() { fired = true })
	p.scanline = 240
	p.cycle = 340
	p.Step()
	p.Step()
	p.Step()
	if !fired {
		t.Fatal("NMI callback should fire when VBlank starts with NMI enabled")
	}
}

func TestNMIFiresOnCTRLWriteDuringVBlank(t *testing.T) {
	p := New()
	p.Reset()
	p.ppuStatus |= 0x80 // already in VBlank
	fired := false
	p.SetNMICallback(func() { fired = true })
	p.WriteRegister(0x2000, 0x80) // newly enable NMI while VBlank is set
	if !fired {
		t.Fatal("enabling NMI generation while VBlank is active should fire immediately")
	}
}

func TestCTRLWriteDoesNotRefireNMIWhenAlreadyEnabled(t *testing.T) {
	p := New()
	p.Reset()
	p.ppuStatus |= 0x80 // already in VBlank
	p.ppuCtrl = 0x80    // NMI already enabled
	fired := false
	p.SetNMICallback(func() { fired = true })
	p.WriteRegister(0x2000, 0x80) // rewrite with nmi_enable unchanged
	if fired {
		t.Fatal("rewriting $2000 with nmi_enable already set must not refire NMI")
	}
}

func TestPreRenderClearsStatusFlags(t *testing.T) {
	p := New()
	p.Reset()
	p.ppuStatus = 0xE0 // VBlank, sprite0, overflow all set
	p.scanline = -1
	p.cycle = 0
	p.Step() // processes (-1,0), advances to (-1,1)
	p.Step() // processes (-1,1) -> clears flags
	if p.ppuStatus&0xE0 != 0 {
		t.Fatalf("status = %02X, want VBlank/sprite0/overflow all clear at pre-render dot 1", p.ppuStatus)
	}
}

func TestNESColorToRGBMasksAlpha(t *testing.T) {
	rgb := NESColorToRGB(0x20) // white entry
	if rgb&0xFF000000 != 0 {
		t.Fatal("NESColorToRGB must not leave an alpha channel set")
	}
}

func TestNESColorToRGBOutOfRangeIsBlack(t *testing.T) {
	if NESColorToRGB(64) != 0 {
		t.Fatal("out-of-range color index should return black")
	}
}

func TestReverseBits(t *testing.T) {
	if reverseBits(0b10000001) != 0b10000001 {
		t.Fatal("palindromic byte should reverse to itself")
	}
	if reverseBits(0b00000001) != 0b10000000 {
		t.Fatal("single low bit should reverse to single high bit")
	}
}
