package input

import "testing"

func TestStrobeHighAlwaysReturnsButtonA(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonB, true)
	c.Write(1) // strobe high

	for i := 0; i < 3; i++ {
		if c.Read()&1 != 1 {
			t.Fatal("strobe high should keep returning button A's state")
		}
	}
}

func TestStrobeLowShiftsOutButtonsInOrder(t *testing.T) {
	c := New()
	// A, Start, Right pressed; order is A,B,Select,Start,Up,Down,Left,Right
	c.SetButton(ButtonA, true)
	c.SetButton(ButtonStart, true)
	c.SetButton(ButtonRight, true)

	c.Write(1)
	c.Write(0) // latch snapshot, strobe low

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 1}
	for i, w := range want {
		if got := c.Read() & 1; got != w {
			t.Fatalf("bit %d = %d, want %d", i, got, w)
		}
	}
}

func TestReadPastEighthBitReturnsOne(t *testing.T) {
	c := New()
	c.Write(1)
	c.Write(0)
	for i := 0; i < 8; i++ {
		c.Read()
	}
	if c.Read()&1 != 1 {
		t.Fatal("reads past the 8th bit should return 1")
	}
}

func TestStrobeHighResetsBitPosition(t *testing.T) {
	c := New()
	c.Write(1)
	c.Write(0)
	c.Read()
	c.Read()
	c.Write(1) // strobe high again mid-sequence
	c.Write(0)
	if c.bitPosition != 0 {
		t.Fatal("re-strobing should reset the shift position")
	}
}

func TestSetButtonsArrayOrder(t *testing.T) {
	c := New()
	c.SetButtons([8]bool{true, false, false, false, false, false, false, true})
	if !c.IsPressed(ButtonA) {
		t.Fatal("button A should be pressed")
	}
	if !c.IsPressed(ButtonRight) {
		t.Fatal("button Right should be pressed")
	}
	if c.IsPressed(ButtonB) {
		t.Fatal("button B should not be pressed")
	}
}

func TestController2OpenBusBitSet(t *testing.T) {
	is := NewInputState()
	is.Write(0x4016, 1)
	is.Write(0x4016, 0)
	if is.Read(0x4017)&0x40 == 0 {
		t.Fatal("$4017 reads should always have bit 6 set")
	}
}

func TestStrobeWiredToBothControllers(t *testing.T) {
	is := NewInputState()
	is.Controller1.SetButton(ButtonA, true)
	is.Controller2.SetButton(ButtonB, true)
	is.Write(0x4016, 1)
	is.Write(0x4016, 0)

	if is.Read(0x4016)&1 != 1 {
		t.Fatal("controller 1 should report button A pressed")
	}
	is.Read(0x4017) // first bit out is button A (not pressed)
	if is.Read(0x4017)&1 != 1 {
		t.Fatal("controller 2 should report button B pressed")
	}
}

func TestResetClearsState(t *testing.T) {
	c := New()
	c.SetButton(ButtonA, true)
	c.Write(1)
	c.Reset()
	if c.buttons != 0 || c.strobe || c.shiftRegister != 0 {
		t.Fatal("Reset should clear buttons, strobe, and shift register")
	}
}
