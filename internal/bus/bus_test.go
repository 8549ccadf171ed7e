package bus

import (
	"testing"

	"nesgo/internal/cartridge"
)

func newTestBus() *Bus {
	cart := cartridge.NewMockCartridge()
	cart.LoadPRG(make([]uint8, 0x8000))
	b := New()
	b.LoadCartridge(cart)
	return b
}

func TestStepRunsThreePPUCyclesPerCPUCycle(t *testing.T) {
	b := newTestBus()
	before := b.ppuCycles
	cpuCycles := b.Step()
	if b.ppuCycles-before != cpuCycles*3 {
		t.Fatalf("ppu advanced %d cycles for %d cpu cycles, want 3x", b.ppuCycles-before, cpuCycles)
	}
}

func TestOAMDMATakes513CyclesOnEvenCycle(t *testing.T) {
	b := newTestBus()
	b.cpuCycles = 0 // force even parity
	b.TriggerOAMDMA(0x02)

	total := uint64(0)
	for b.IsDMAInProgress() {
		total += b.Step()
	}
	if total != 513 {
		t.Fatalf("OAM-DMA took %d cycles, want 513 on an even starting cycle", total)
	}
}

func TestOAMDMATakes514CyclesOnOddCycle(t *testing.T) {
	b := newTestBus()
	b.cpuCycles = 1 // force odd parity
	b.TriggerOAMDMA(0x02)

	total := uint64(0)
	for b.IsDMAInProgress() {
		total += b.Step()
	}
	if total != 514 {
		t.Fatalf("OAM-DMA took %d cycles, want 514 on an odd starting cycle", total)
	}
}

func TestOAMDMACopiesSourcePageIntoOAM(t *testing.T) {
	b := newTestBus()
	b.Memory.Write(0x0200, 0xAB)
	b.Memory.Write(0x0201, 0xCD)
	b.TriggerOAMDMA(0x02)
	for b.IsDMAInProgress() {
		b.Step()
	}

	b.PPU.WriteRegister(0x2003, 0x00)
	if got := b.PPU.ReadRegister(0x2004); got != 0xAB {
		t.Fatalf("OAM[0] = %02X, want AB", got)
	}
	b.PPU.WriteRegister(0x2003, 0x01)
	if got := b.PPU.ReadRegister(0x2004); got != 0xCD {
		t.Fatalf("OAM[1] = %02X, want CD", got)
	}
}

func TestRetriggeringOAMDMAWhileInProgressIsIgnored(t *testing.T) {
	b := newTestBus()
	b.TriggerOAMDMA(0x02)
	firstTotal := b.dmaTotalCycles
	b.TriggerOAMDMA(0x03) // should be ignored; a DMA is already in progress
	if b.dmaTotalCycles != firstTotal || b.dmaSourcePage != 0x02 {
		t.Fatal("a second TriggerOAMDMA call must not interrupt an in-progress transfer")
	}
}

func TestResetClearsCycleCounters(t *testing.T) {
	b := newTestBus()
	b.Step()
	b.Reset()
	if b.GetCycleCount() != 0 || b.GetFrameCount() != 0 {
		t.Fatal("Reset should zero the cycle and frame counters")
	}
}
