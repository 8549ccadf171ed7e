package cartridge

import (
	"bytes"
	"testing"
)

func buildINES(prgBanks, chrBanks int, flags6, flags7 uint8, prgFill uint8) []byte {
	var buf bytes.Buffer
	buf.WriteString("NES\x1A")
	buf.WriteByte(uint8(prgBanks))
	buf.WriteByte(uint8(chrBanks))
	buf.WriteByte(flags6)
	buf.WriteByte(flags7)
	buf.Write(make([]byte, 8)) // remaining header bytes
	prg := bytes.Repeat([]byte{prgFill}, prgBanks*16384)
	buf.Write(prg)
	buf.Write(make([]byte, chrBanks*8192))
	return buf.Bytes()
}

func TestLoadNROM16KBMirrors(t *testing.T) {
	data := buildINES(1, 1, 0x00, 0x00, 0xAB)
	cart, err := LoadFromReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cart.MapperID() != 0 {
		t.Fatalf("mapper = %d, want 0", cart.MapperID())
	}
	if got := cart.ReadPRG(0x8000); got != 0xAB {
		t.Errorf("ReadPRG(0x8000) = %02X, want AB", got)
	}
	if got := cart.ReadPRG(0xC000); got != 0xAB {
		t.Errorf("ReadPRG(0xC000) = %02X, want AB (mirrored)", got)
	}
}

func TestLoadUnknownMapperIsFatal(t *testing.T) {
	data := buildINES(1, 1, 0xF0, 0x00, 0x00) // mapper nibble 15
	_, err := LoadFromReader(bytes.NewReader(data))
	if err == nil {
		t.Fatal("expected error for unsupported mapper, got nil")
	}
	var unsupported *UnsupportedMapperError
	if !asUnsupportedMapperError(err, &unsupported) {
		t.Fatalf("expected UnsupportedMapperError, got %v (%T)", err, err)
	}
	if unsupported.ID != 15 {
		t.Errorf("mapper ID = %d, want 15", unsupported.ID)
	}
}

func asUnsupportedMapperError(err error, target **UnsupportedMapperError) bool {
	e, ok := err.(*UnsupportedMapperError)
	if ok {
		*target = e
	}
	return ok
}

func TestMapper002BankSwitching(t *testing.T) {
	cart := &Cartridge{prgROM: make([]uint8, 0x4000*4)}
	for bank := 0; bank < 4; bank++ {
		for i := 0; i < 0x4000; i++ {
			cart.prgROM[bank*0x4000+i] = uint8(bank)
		}
	}
	m := NewMapper002(cart)

	if got := m.ReadPRG(0x8000); got != 0 {
		t.Errorf("initial bank 0 at 0x8000 = %d, want 0", got)
	}
	if got := m.ReadPRG(0xC000); got != 3 {
		t.Errorf("fixed last bank at 0xC000 = %d, want 3", got)
	}

	m.WritePRG(0x8000, 2)
	if got := m.ReadPRG(0x8000); got != 2 {
		t.Errorf("after select bank 2, ReadPRG(0x8000) = %d, want 2", got)
	}
	if got := m.ReadPRG(0xC000); got != 3 {
		t.Errorf("fixed bank changed after select: got %d, want 3", got)
	}
}

func TestMapper000CHRRAMWritable(t *testing.T) {
	cart := &Cartridge{chrROM: make([]uint8, 0x2000), hasCHRRAM: true}
	m := NewMapper000(cart)
	m.WriteCHR(0x0010, 0x42)
	if got := m.ReadCHR(0x0010); got != 0x42 {
		t.Errorf("CHR RAM readback = %02X, want 42", got)
	}
}

func TestMapper000CHRROMNotWritable(t *testing.T) {
	cart := &Cartridge{chrROM: []uint8{0x11, 0x22}, hasCHRRAM: false}
	m := NewMapper000(cart)
	m.WriteCHR(0x0000, 0xFF)
	if got := m.ReadCHR(0x0000); got != 0x11 {
		t.Errorf("CHR ROM was written: got %02X, want 11", got)
	}
}

func TestMirroringFlags(t *testing.T) {
	vertical := buildINES(1, 1, 0x01, 0x00, 0x00)
	cart, err := LoadFromReader(bytes.NewReader(vertical))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cart.GetMirrorMode() != MirrorVertical {
		t.Errorf("mirror = %v, want vertical", cart.GetMirrorMode())
	}

	fourScreen := buildINES(1, 1, 0x08, 0x00, 0x00)
	cart, err = LoadFromReader(bytes.NewReader(fourScreen))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cart.GetMirrorMode() != MirrorFourScreen {
		t.Errorf("mirror = %v, want four-screen", cart.GetMirrorMode())
	}
}
