// Package bus implements the system bus that ties the CPU, PPU, APU,
// cartridge, and controller input together and coordinates their shared
// clock.
package bus

import (
	"nesgo/internal/apu"
	"nesgo/internal/cartridge"
	"nesgo/internal/cpu"
	"nesgo/internal/input"
	"nesgo/internal/memory"
	"nesgo/internal/ppu"
)

// Bus connects all NES components together and drives the shared clock:
// one CPU cycle followed by three PPU cycles and one APU cycle (spec §5).
type Bus struct {
	CPU    *cpu.CPU
	PPU    *ppu.PPU
	APU    *apu.APU
	Memory *memory.Memory
	Input  *input.InputState

	totalCycles uint64
	cpuCycles   uint64
	ppuCycles   uint64
	frameCount  uint64

	// OAM-DMA state: the transfer is spread across the stall so that the
	// PPU keeps ticking 3x per stalled CPU cycle throughout (spec §4.C).
	dmaInProgress  bool
	dmaTotalCycles uint64
	dmaCyclesLeft  uint64
	dmaSourcePage  uint8
	dmaReadBuffer  uint8

	cyclesPerFrame uint64
	oddFrame       bool
}

// New creates a new system bus with all components wired together.
func New() *Bus {
	bus := &Bus{
		PPU:   ppu.New(),
		APU:   apu.New(),
		Input: input.NewInputState(),

		cyclesPerFrame: 89342,
	}

	bus.Memory = memory.New(bus.PPU, bus.APU, nil)
	bus.Memory.SetInputSystem(bus.Input)
	bus.CPU = cpu.New(bus.Memory)

	bus.PPU.SetNMICallback(bus.triggerNMI)
	bus.PPU.SetFrameCompleteCallback(bus.handleFrameComplete)
	bus.Memory.SetDMACallback(bus.TriggerOAMDMA)
	bus.APU.SetDMCFetchCallback(bus.dmcFetch)
	bus.APU.SetIRQCallback(bus.CPU.TriggerIRQ)

	bus.Reset()

	return bus
}

// Reset resets all components to their initial state.
func (b *Bus) Reset() {
	b.CPU.Reset()
	b.PPU.Reset()
	b.APU.Reset()
	b.Input.Reset()

	b.totalCycles = 0
	b.cpuCycles = 0
	b.ppuCycles = 0
	b.frameCount = 0
	b.dmaInProgress = false
	b.dmaTotalCycles = 0
	b.dmaCyclesLeft = 0
	b.oddFrame = false

	b.PPU.SetFrameCount(0)
}

// triggerNMI is called by the PPU on a rising edge of VBlank AND nmi_enable.
func (b *Bus) triggerNMI() {
	b.CPU.TriggerNMI()
}

// handleFrameComplete is called by the PPU when a frame completes.
func (b *Bus) handleFrameComplete() {
	b.frameCount = b.PPU.GetFrameCount()
}

// dmcFetch is the APU's bus-read callback for DMC-DMA sample fetches. It
// reads the byte directly through Memory.Read; no CPU cycle is stolen or
// stalled for the fetch.
func (b *Bus) dmcFetch(address uint16) uint8 {
	return b.Memory.Read(address)
}

// Step executes one full CPU instruction, or one cycle of an in-progress
// OAM-DMA stall, and then advances the PPU and APU the correct number of
// cycles for the CPU cycles that took.
func (b *Bus) Step() uint64 {
	var cpuCycles uint64

	if b.dmaCyclesLeft > 0 {
		b.stepOAMDMACycle()
		cpuCycles = 1
	} else {
		cpuCycles = b.CPU.Step()
	}

	ppuCyclesToRun := cpuCycles * 3
	for i := uint64(0); i < ppuCyclesToRun; i++ {
		b.PPU.Step()
		b.ppuCycles++
	}

	for i := uint64(0); i < cpuCycles; i++ {
		b.APU.Step()
	}

	b.cpuCycles += cpuCycles
	b.totalCycles += cpuCycles

	return cpuCycles
}

// stepOAMDMACycle advances the in-progress OAM-DMA transfer by one stalled
// CPU cycle. The first 1 or 2 cycles are the hardware's alignment wait;
// after that, each pair of cycles is one CPU-memory read followed by one
// write into OAM (spec §4.C), so the transfer interleaves with the PPU
// ticks the caller runs around this one cycle rather than completing in a
// single call.
func (b *Bus) stepOAMDMACycle() {
	elapsed := b.dmaTotalCycles - b.dmaCyclesLeft
	alignCycles := b.dmaTotalCycles - 512

	if elapsed >= alignCycles {
		transferCycle := elapsed - alignCycles
		index := uint8(transferCycle / 2)
		if transferCycle%2 == 0 {
			sourceAddr := (uint16(b.dmaSourcePage) << 8) + uint16(index)
			b.dmaReadBuffer = b.Memory.Read(sourceAddr)
		} else {
			b.PPU.WriteOAM(index, b.dmaReadBuffer)
		}
	}

	b.dmaCyclesLeft--
	if b.dmaCyclesLeft == 0 {
		b.dmaInProgress = false
	}
}

// TriggerOAMDMA initiates an OAM-DMA transfer from CPU page sourcePage into
// OAM. The CPU is stalled 513 cycles (514 if triggered on an odd CPU
// cycle); the 256 byte copies are interleaved across that stall by Step,
// not performed immediately.
func (b *Bus) TriggerOAMDMA(sourcePage uint8) {
	if b.dmaInProgress {
		return
	}

	dmaCycles := uint64(513)
	if b.cpuCycles%2 == 1 {
		dmaCycles = 514
	}

	b.dmaInProgress = true
	b.dmaTotalCycles = dmaCycles
	b.dmaCyclesLeft = dmaCycles
	b.dmaSourcePage = sourcePage
}

// LoadCartridge loads a cartridge into the system, rebuilding the memory
// maps and resetting the CPU from its reset vector.
func (b *Bus) LoadCartridge(cart memory.CartridgeInterface) {
	b.Memory = memory.New(b.PPU, b.APU, cart)
	b.Memory.SetInputSystem(b.Input)
	b.CPU = cpu.New(b.Memory)

	mirrorMode := memory.MirrorHorizontal
	if c, ok := cart.(*cartridge.Cartridge); ok {
		switch c.GetMirrorMode() {
		case cartridge.MirrorVertical:
			mirrorMode = memory.MirrorVertical
		case cartridge.MirrorSingleScreen0:
			mirrorMode = memory.MirrorSingleScreen0
		case cartridge.MirrorSingleScreen1:
			mirrorMode = memory.MirrorSingleScreen1
		case cartridge.MirrorFourScreen:
			mirrorMode = memory.MirrorFourScreen
		default:
			mirrorMode = memory.MirrorHorizontal
		}
	}

	ppuMemory := memory.NewPPUMemory(cart, mirrorMode)
	b.PPU.SetMemory(ppuMemory)

	b.PPU.SetNMICallback(b.triggerNMI)
	b.Memory.SetDMACallback(b.TriggerOAMDMA)
	b.APU.SetIRQCallback(b.CPU.TriggerIRQ)

	b.CPU.Reset()
}

// Run runs the emulator for a specified number of frames.
func (b *Bus) Run(frames int) {
	targetFrames := b.frameCount + uint64(frames)
	for b.frameCount < targetFrames {
		b.Step()
	}
}

// RunCycles runs the emulator for a specified number of CPU cycles.
func (b *Bus) RunCycles(cycles uint64) {
	targetCycles := b.cpuCycles + cycles
	for b.cpuCycles < targetCycles {
		b.Step()
	}
}

// Frame executes approximately one NTSC frame's worth of CPU cycles.
func (b *Bus) Frame() {
	b.RunCycles(29781)
}

// GetFrameBuffer returns the current PPU frame buffer.
func (b *Bus) GetFrameBuffer() []uint32 {
	frameBuffer := b.PPU.GetFrameBuffer()
	return frameBuffer[:]
}

// GetAudioSamples returns the pending audio samples from the APU.
func (b *Bus) GetAudioSamples() []float32 {
	return b.APU.GetSamples()
}

// SetAudioSampleRate sets the target audio sample rate for the APU.
func (b *Bus) SetAudioSampleRate(rate int) {
	b.APU.SetSampleRate(rate)
}

// GetCycleCount returns the current CPU cycle count.
func (b *Bus) GetCycleCount() uint64 { return b.cpuCycles }

// GetFrameCount returns the current frame count.
func (b *Bus) GetFrameCount() uint64 { return b.frameCount }

// IsDMAInProgress returns whether an OAM-DMA transfer is currently stalling
// the CPU.
func (b *Bus) IsDMAInProgress() bool { return b.dmaInProgress }

// SetControllerButton sets the state of a single controller button.
func (b *Bus) SetControllerButton(controller int, button input.Button, pressed bool) {
	switch controller {
	case 0, 1:
		b.Input.Controller1.SetButton(button, pressed)
	case 2:
		b.Input.Controller2.SetButton(button, pressed)
	}
}

// SetControllerButtons sets all eight button states for a controller at
// once.
func (b *Bus) SetControllerButtons(controller int, buttons [8]bool) {
	switch controller {
	case 0, 1:
		b.Input.SetButtons1(buttons)
	case 2:
		b.Input.SetButtons2(buttons)
	}
}

// GetInputState returns the input state for direct access.
func (b *Bus) GetInputState() *input.InputState {
	return b.Input
}
