// Package ppu implements the Picture Processing Unit for the NES (2C02):
// a dot-accurate 262-scanline x 341-dot state machine driving a background
// shift-register pipeline and an 8-sprite rendering pipeline.
package ppu

import (
	"nesgo/internal/memory"
)

// PPU represents the NES Picture Processing Unit (2C02).
type PPU struct {
	// CPU-visible registers.
	ppuCtrl   uint8
	ppuMask   uint8
	ppuStatus uint8
	oamAddr   uint8

	// Loopy scroll registers (spec §4.E).
	v uint16 // current VRAM address (15 bits)
	t uint16 // temporary VRAM address / address latch (15 bits)
	x uint8  // fine X scroll (3 bits)
	w bool   // write toggle, shared by $2005/$2006

	memory *memory.PPUMemory

	scanline int // -1 (pre-render) .. 260
	cycle    int // 0 .. 340

	frameCount uint64
	oddFrame   bool
	readBuffer uint8

	// Background fetch pipeline.
	ntLatch, atLatch, ptLowLatch, ptHighLatch uint8
	bgPatternLowShift, bgPatternHighShift     uint16
	bgAttrLowShift, bgAttrHighShift           uint16

	// Sprite pipeline (8 slots).
	oam             [256]uint8
	secondaryOAM    [32]uint8
	spriteIndexes   [8]uint8
	spriteCount     uint8
	spritePatternLo [8]uint8
	spritePatternHi [8]uint8
	spriteAttr      [8]uint8
	spriteXCounter  [8]uint8
	sprite0OnLine   bool

	sprite0Hit     bool
	spriteOverflow bool

	frameBuffer [256 * 240]uint32

	nmiCallback           func()
	frameCompleteCallback func()

	backgroundEnabled bool
	spritesEnabled    bool
	renderingEnabled  bool

	cycleCount uint64
}

// New creates a new PPU instance.
func New() *PPU {
	return &PPU{
		scanline: -1,
	}
}

// Reset resets the PPU to its power-up state.
func (p *PPU) Reset() {
	*p = PPU{
		memory:                p.memory,
		nmiCallback:           p.nmiCallback,
		frameCompleteCallback: p.frameCompleteCallback,
		scanline:              -1,
		ppuStatus:              0xA0,
	}
}

// SetMemory installs the PPU-side memory map.
func (p *PPU) SetMemory(mem *memory.PPUMemory) {
	p.memory = mem
}

// SetNMICallback installs the bus's NMI-edge handler, invoked whenever VBlank
// start or a $2000 write newly raises (VBlank AND nmi_enable).
func (p *PPU) SetNMICallback(callback func()) {
	p.nmiCallback = callback
}

// SetFrameCompleteCallback installs the bus's per-frame hook.
func (p *PPU) SetFrameCompleteCallback(callback func()) {
	p.frameCompleteCallback = callback
}

// ReadRegister services a CPU read of $2000-$2007 (mirrored every 8 bytes).
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case 0x2002:
		status := p.ppuStatus
		p.ppuStatus &= 0x7F // clear VBL flag; sprite0/overflow cleared only at pre-render cycle 1
		p.w = false
		return status
	case 0x2004:
		return p.oam[p.oamAddr]
	case 0x2007:
		return p.readPPUData()
	default: // $2000/$2001/$2003/$2005/$2006 are write-only: open bus
		return p.ppuStatus & 0x1F
	}
}

// WriteRegister services a CPU write of $2000-$2007.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	switch address {
	case 0x2000:
		oldOutput := p.nmiOutput()
		p.ppuCtrl = value
		p.t = (p.t & 0xF3FF) | ((uint16(value) & 0x03) << 10)
		p.updateRenderingFlags()
		if !oldOutput && p.nmiOutput() && p.nmiCallback != nil {
			p.nmiCallback()
		}
	case 0x2001:
		p.ppuMask = value
		p.updateRenderingFlags()
	case 0x2003:
		p.oamAddr = value
	case 0x2004:
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case 0x2005:
		p.writePPUScroll(value)
	case 0x2006:
		p.writePPUAddr(value)
	case 0x2007:
		p.writePPUData(value)
	}
}

// WriteOAM writes to OAM directly, used by OAM-DMA.
func (p *PPU) WriteOAM(address uint8, value uint8) {
	p.oam[address] = value
}

func onRenderLine(scanline int) bool {
	return (scanline >= 0 && scanline <= 239) || scanline == -1
}

func shouldOutputPixel(scanline, cycle int) bool {
	return cycle >= 1 && cycle <= 256 && scanline >= 0 && scanline <= 239
}

func shouldRunBackground(scanline, cycle int) bool {
	return ((cycle >= 1 && cycle <= 256) || (cycle >= 321 && cycle <= 336)) && onRenderLine(scanline)
}

func shouldRunSprites(scanline, cycle int) bool {
	return scanline >= 0 && scanline <= 239 && cycle >= 1 && cycle <= 256
}

func shouldIncrementY(scanline, cycle int) bool {
	return cycle == 256 && onRenderLine(scanline)
}

func shouldResetX(scanline, cycle int) bool {
	return cycle == 257 && onRenderLine(scanline)
}

func shouldResetY(scanline, cycle int) bool {
	return scanline == -1 && cycle >= 280 && cycle <= 304
}

// Step advances the PPU by exactly one dot (spec §4.E). Grounded on the
// dot-schedule predicates of original_source/src/ppu/mod.rs, adapted to this
// emulator's scanline numbering (-1 for pre-render in place of 261).
func (p *PPU) Step() {
	p.cycleCount++

	if shouldOutputPixel(p.scanline, p.cycle) && p.renderingEnabled {
		p.outputPixel()
	}

	if shouldRunBackground(p.scanline, p.cycle) {
		p.advanceBackground()
	}
	if shouldRunSprites(p.scanline, p.cycle) && p.cycle == 1 {
		p.evaluateSprites()
	}
	if shouldRunSprites(p.scanline, p.cycle) {
		p.advanceSprites()
	}

	if p.renderingEnabled {
		if shouldIncrementY(p.scanline, p.cycle) {
			p.incrementY()
		}
		if shouldResetX(p.scanline, p.cycle) {
			p.copyX()
		}
		if shouldResetY(p.scanline, p.cycle) {
			p.copyY()
		}
	}

	if p.scanline == 241 && p.cycle == 1 {
		p.ppuStatus |= 0x80
		if p.nmiOutput() && p.nmiCallback != nil {
			p.nmiCallback()
		}
	}
	if p.scanline == -1 && p.cycle == 1 {
		p.ppuStatus &= 0x1F // clear VBlank, sprite0 hit, sprite overflow
		p.sprite0Hit = false
		p.spriteOverflow = false
	}

	p.advanceDot()
}

func (p *PPU) advanceDot() {
	// Odd-frame dot skip: with rendering on, the pre-render scanline's
	// final dot (340) is cut, so the very next Step lands on scanline 0
	// dot 0 a cycle early (spec §4.E).
	skipDot := p.scanline == -1 && p.cycle == 339 && p.oddFrame && p.renderingEnabled

	p.cycle++
	if skipDot {
		p.cycle = 341
	}

	if p.cycle > 340 {
		p.cycle = 0
		p.scanline++
		if p.scanline > 260 {
			p.scanline = -1
			p.frameCount++
			p.oddFrame = !p.oddFrame
			if p.frameCompleteCallback != nil {
				p.frameCompleteCallback()
			}
		}
	}
}

// outputPixel composes the background and sprite pipelines' current output
// into one frame-buffer pixel, handling sprite-0 hit as a side effect.
func (p *PPU) outputPixel() {
	pixelX := p.cycle - 1
	pixelY := p.scanline

	bgColorIndex, bgPaletteIndex := p.backgroundPixel()
	spColorIndex, spPaletteIndex, spPriority, spIsSprite0, spriteFound := p.spritePixel(pixelX)

	if !p.backgroundEnabled {
		bgColorIndex = 0
	}
	if !p.spritesEnabled {
		spriteFound = false
	}

	if spriteFound && spIsSprite0 && bgColorIndex != 0 && spColorIndex != 0 &&
		p.backgroundEnabled && p.spritesEnabled && pixelX != 255 && !p.sprite0Hit {
		if pixelX >= 8 || (p.ppuMask&0x06 == 0x06) {
			p.sprite0Hit = true
			p.ppuStatus |= 0x40
		}
	}

	var nesColor uint8
	switch {
	case bgColorIndex == 0 && !spriteFound:
		nesColor = p.readPaletteDirect(0x3F00)
	case bgColorIndex == 0:
		nesColor = p.readPaletteDirect(0x3F10 + uint16(spPaletteIndex)*4 + uint16(spColorIndex))
	case !spriteFound:
		nesColor = p.readPaletteDirect(0x3F00 + uint16(bgPaletteIndex)*4 + uint16(bgColorIndex))
	case spPriority:
		nesColor = p.readPaletteDirect(0x3F00 + uint16(bgPaletteIndex)*4 + uint16(bgColorIndex))
	default:
		nesColor = p.readPaletteDirect(0x3F10 + uint16(spPaletteIndex)*4 + uint16(spColorIndex))
	}

	p.frameBuffer[pixelY*256+pixelX] = NESColorToRGB(nesColor)
}

func (p *PPU) readPaletteDirect(address uint16) uint8 {
	if p.memory == nil {
		return 0
	}
	return p.memory.Read(address)
}

// backgroundPixel reads the current background color/palette index out of
// the shift-register pipeline at the fine-X selected bit.
func (p *PPU) backgroundPixel() (colorIndex, paletteIndex uint8) {
	mux := uint16(0x8000) >> p.x
	bit0 := uint8(0)
	bit1 := uint8(0)
	if p.bgPatternLowShift&mux != 0 {
		bit0 = 1
	}
	if p.bgPatternHighShift&mux != 0 {
		bit1 = 1
	}
	colorIndex = (bit1 << 1) | bit0

	pBit0 := uint8(0)
	pBit1 := uint8(0)
	if p.bgAttrLowShift&mux != 0 {
		pBit0 = 1
	}
	if p.bgAttrHighShift&mux != 0 {
		pBit1 = 1
	}
	paletteIndex = (pBit1 << 1) | pBit0
	return
}

// advanceBackground shifts the pipeline registers and, every 8th dot,
// performs the next nametable/attribute/pattern fetch and reloads the
// shift registers with the newly-fetched tile (spec §4.E background
// pipeline).
func (p *PPU) advanceBackground() {
	p.bgPatternLowShift <<= 1
	p.bgPatternHighShift <<= 1
	p.bgAttrLowShift <<= 1
	p.bgAttrHighShift <<= 1

	switch (p.cycle - 1) % 8 {
	case 0:
		p.reloadShiftRegisters()
		p.ntLatch = p.fetchNametableByte()
	case 2:
		p.atLatch = p.fetchAttributeBits()
	case 4:
		p.ptLowLatch = p.fetchPatternByte(false)
	case 6:
		p.ptHighLatch = p.fetchPatternByte(true)
	case 7:
		p.incrementX()
	}
}

func (p *PPU) reloadShiftRegisters() {
	p.bgPatternLowShift = (p.bgPatternLowShift & 0xFF00) | uint16(p.ptLowLatch)
	p.bgPatternHighShift = (p.bgPatternHighShift & 0xFF00) | uint16(p.ptHighLatch)

	var lowFill, highFill uint16
	if p.atLatch&0x01 != 0 {
		lowFill = 0x00FF
	}
	if p.atLatch&0x02 != 0 {
		highFill = 0x00FF
	}
	p.bgAttrLowShift = (p.bgAttrLowShift & 0xFF00) | lowFill
	p.bgAttrHighShift = (p.bgAttrHighShift & 0xFF00) | highFill
}

func (p *PPU) fetchNametableByte() uint8 {
	if p.memory == nil {
		return 0
	}
	addr := 0x2000 | (p.v & 0x0FFF)
	return p.memory.Read(addr)
}

func (p *PPU) fetchAttributeBits() uint8 {
	if p.memory == nil {
		return 0
	}
	addr := 0x23C0 | (p.v & 0x0C00) | ((p.v >> 4) & 0x38) | ((p.v >> 2) & 0x07)
	attrByte := p.memory.Read(addr)
	shift := ((p.v >> 4) & 4) | (p.v & 2)
	return (attrByte >> shift) & 0x03
}

func (p *PPU) fetchPatternByte(high bool) uint8 {
	if p.memory == nil {
		return 0
	}
	base := uint16(0x0000)
	if p.ppuCtrl&0x10 != 0 {
		base = 0x1000
	}
	fineY := (p.v >> 12) & 0x07
	addr := base + uint16(p.ntLatch)*16 + fineY
	if high {
		addr += 8
	}
	return p.memory.Read(addr)
}

// spriteHeight returns 8 or 16 depending on PPUCTRL bit 5.
func (p *PPU) spriteHeight() int {
	if p.ppuCtrl&0x20 != 0 {
		return 16
	}
	return 8
}

// evaluateSprites builds secondary OAM for the current scanline's rendering
// pass (spec §4.E sprite evaluation; simplified to a single dot-1 pass
// rather than the hardware's dots-65-256 spread, which is invisible to
// software under normal operation).
func (p *PPU) evaluateSprites() {
	p.spriteCount = 0
	p.spriteOverflow = false
	p.sprite0OnLine = false

	for i := range p.secondaryOAM {
		p.secondaryOAM[i] = 0xFF
	}
	for i := range p.spriteIndexes {
		p.spriteIndexes[i] = 0xFF
	}

	height := p.spriteHeight()
	found := 0
	for sprite := 0; sprite < 64; sprite++ {
		base := sprite * 4
		y := int(p.oam[base])
		if p.scanline < y+1 || p.scanline >= y+1+height {
			continue
		}
		if found < 8 {
			dst := found * 4
			copy(p.secondaryOAM[dst:dst+4], p.oam[base:base+4])
			p.spriteIndexes[found] = uint8(sprite)
			if sprite == 0 {
				p.sprite0OnLine = true
			}
			found++
		} else {
			p.spriteOverflow = true
			p.ppuStatus |= 0x20
			break
		}
	}
	p.spriteCount = uint8(found)
}

// advanceSprites loads the sprite pattern/attribute pipeline once per
// scanline (at dot 1, right after evaluation) and shifts the 8 slots'
// pattern registers forward one pixel per dot once their X counter expires.
func (p *PPU) advanceSprites() {
	if p.cycle == 1 {
		p.loadSpritePatterns()
		return
	}
	for i := 0; i < int(p.spriteCount); i++ {
		if p.spriteXCounter[i] > 0 {
			p.spriteXCounter[i]--
		} else {
			p.spritePatternLo[i] <<= 1
			p.spritePatternHi[i] <<= 1
		}
	}
}

func (p *PPU) loadSpritePatterns() {
	height := p.spriteHeight()
	for i := 0; i < int(p.spriteCount); i++ {
		base := i * 4
		y := int(p.secondaryOAM[base])
		tile := p.secondaryOAM[base+1]
		attr := p.secondaryOAM[base+2]
		x := p.secondaryOAM[base+3]

		row := p.scanline - (y + 1)
		if attr&0x80 != 0 { // vertical flip
			row = height - 1 - row
		}

		var patternBase uint16
		if height == 16 {
			if tile&0x01 != 0 {
				patternBase = 0x1000
			}
			tile &= 0xFE
			if row >= 8 {
				tile++
				row -= 8
			}
		} else if p.ppuCtrl&0x08 != 0 {
			patternBase = 0x1000
		}

		addr := patternBase + uint16(tile)*16 + uint16(row)
		lo := p.readMemSafe(addr)
		hi := p.readMemSafe(addr + 8)
		if attr&0x40 != 0 { // horizontal flip
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}

		p.spritePatternLo[i] = lo
		p.spritePatternHi[i] = hi
		p.spriteAttr[i] = attr
		p.spriteXCounter[i] = x
	}
	for i := int(p.spriteCount); i < 8; i++ {
		p.spritePatternLo[i] = 0
		p.spritePatternHi[i] = 0
		p.spriteXCounter[i] = 0xFF
	}
}

func (p *PPU) readMemSafe(addr uint16) uint8 {
	if p.memory == nil {
		return 0
	}
	return p.memory.Read(addr)
}

func reverseBits(b uint8) uint8 {
	var r uint8
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

// spritePixel returns the highest-priority non-transparent sprite pixel
// active at pixelX, if any, plus whether it belongs to sprite 0.
func (p *PPU) spritePixel(pixelX int) (colorIndex, paletteIndex uint8, priority, isSprite0, found bool) {
	for i := 0; i < int(p.spriteCount); i++ {
		if p.spriteXCounter[i] > 0 {
			continue
		}
		bit0 := (p.spritePatternLo[i] >> 7) & 1
		bit1 := (p.spritePatternHi[i] >> 7) & 1
		c := (bit1 << 1) | bit0
		if c == 0 {
			continue
		}
		return c, p.spriteAttr[i] & 0x03, p.spriteAttr[i]&0x20 != 0, p.spriteIndexes[i] == 0, true
	}
	return 0, 0, false, false, false
}

func (p *PPU) updateRenderingFlags() {
	p.backgroundEnabled = p.ppuMask&0x08 != 0
	p.spritesEnabled = p.ppuMask&0x10 != 0
	p.renderingEnabled = p.backgroundEnabled || p.spritesEnabled
}

// nmiOutput reports the PPU's current NMI output level: VBlank flagged and
// NMI generation enabled. The line callers watch for is the rising edge of
// this level, not the level itself — re-reading it while already high must
// never refire the callback (spec.md:107-112; original_source
// state/ppu/mapped_registers.rs).
func (p *PPU) nmiOutput() bool {
	return p.ppuCtrl&0x80 != 0 && p.ppuStatus&0x80 != 0
}

func (p *PPU) writePPUScroll(value uint8) {
	if !p.w {
		p.t = (p.t & 0xFFE0) | (uint16(value) >> 3)
		p.x = value & 0x07
		p.w = true
	} else {
		p.t = (p.t & 0x8FFF) | ((uint16(value) & 0x07) << 12)
		p.t = (p.t & 0xFC1F) | ((uint16(value) & 0xF8) << 2)
		p.w = false
	}
}

func (p *PPU) writePPUAddr(value uint8) {
	if !p.w {
		p.t = (p.t & 0x80FF) | ((uint16(value) & 0x3F) << 8)
		p.w = true
	} else {
		p.t = (p.t & 0xFF00) | uint16(value)
		p.v = p.t
		p.w = false
	}
}

// readPPUData services $2007 reads: buffered everywhere except palette RAM,
// which is exposed immediately while the buffer is refilled from the
// underlying nametable byte (spec §4.E).
func (p *PPU) readPPUData() uint8 {
	var data uint8
	if p.memory != nil {
		if p.v >= 0x3F00 {
			data = p.memory.Read(p.v)
			p.readBuffer = p.memory.Read(p.v & 0x2FFF)
		} else {
			data = p.readBuffer
			p.readBuffer = p.memory.Read(p.v)
		}
	}
	p.incrementVRAMAddress()
	return data
}

func (p *PPU) writePPUData(value uint8) {
	if p.memory != nil {
		p.memory.Write(p.v, value)
	}
	p.incrementVRAMAddress()
}

// incrementVRAMAddress applies the $2000 bit-2 step, then masks to 14 bits.
// During active rendering the PPU's internal datapath is busy with its own
// background fetches, so a $2007 access instead bumps v the way a normal
// dot would: one coarse-X step and one Y step, with no +1/+32 step (spec.md:141;
// original_source state/ppu/mapped_registers.rs).
func (p *PPU) incrementVRAMAddress() {
	if onRenderLine(p.scanline) && p.renderingEnabled {
		p.incrementX()
		p.incrementY()
		return
	}
	if p.ppuCtrl&0x04 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x3FFF
}

// incrementX increments the coarse-X component of v, wrapping into the
// adjacent horizontal nametable.
func (p *PPU) incrementX() {
	if p.v&0x001F == 31 {
		p.v &^= 0x001F
		p.v ^= 0x0400
	} else {
		p.v++
	}
}

// incrementY increments fine Y, carrying into coarse Y and the vertical
// nametable on overflow (with the documented row-29 wraparound quirk).
func (p *PPU) incrementY() {
	if p.v&0x7000 != 0x7000 {
		p.v += 0x1000
		return
	}
	p.v &^= 0x7000
	y := (p.v & 0x03E0) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= 0x0800
	case 31:
		y = 0
	default:
		y++
	}
	p.v = (p.v &^ 0x03E0) | (y << 5)
}

// copyX copies the horizontal-position bits from t into v.
func (p *PPU) copyX() {
	p.v = (p.v &^ 0x041F) | (p.t & 0x041F)
}

// copyY copies the vertical-position bits from t into v.
func (p *PPU) copyY() {
	p.v = (p.v &^ 0x7BE0) | (p.t & 0x7BE0)
}

// GetFrameBuffer returns the current frame buffer.
func (p *PPU) GetFrameBuffer() [256 * 240]uint32 { return p.frameBuffer }

// GetFrameCount returns the number of frames rendered since reset.
func (p *PPU) GetFrameCount() uint64 { return p.frameCount }

// SetFrameCount overrides the frame counter (used when reloading a cartridge
// mid-session to keep bus/PPU frame counts aligned).
func (p *PPU) SetFrameCount(count uint64) { p.frameCount = count }

// GetScanline returns the current scanline (-1 is pre-render).
func (p *PPU) GetScanline() int { return p.scanline }

// GetCycle returns the current dot within the scanline.
func (p *PPU) GetCycle() int { return p.cycle }

// IsRenderingEnabled reports whether background or sprite rendering is on.
func (p *PPU) IsRenderingEnabled() bool { return p.renderingEnabled }

// IsVBlank reports the current state of the VBlank flag.
func (p *PPU) IsVBlank() bool { return p.ppuStatus&0x80 != 0 }

// GetCycleCount returns the total number of PPU dots executed since reset.
func (p *PPU) GetCycleCount() uint64 { return p.cycleCount }

// NES 2C02 NTSC color palette (RGB, alpha channel dropped on lookup).
var nesColorPalette = [64]uint32{
	0xFF666666, 0xFF002A88, 0xFF1412A7, 0xFF3B00A4, 0xFF5C007E, 0xFF6E0040, 0xFF6C0600, 0xFF561D00,
	0xFF333500, 0xFF0B4800, 0xFF005200, 0xFF004F08, 0xFF00404D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFADADAD, 0xFF155FD9, 0xFF4240FF, 0xFF7527FE, 0xFFA01ACC, 0xFFB71E7B, 0xFFB53120, 0xFF994E00,
	0xFF6B6D00, 0xFF388700, 0xFF0C9300, 0xFF008F32, 0xFF007C8D, 0xFF000000, 0xFF000000, 0xFF000000,
	0xFFFFFEFF, 0xFF64B0FF, 0xFF9290FF, 0xFFC676FF, 0xFFF36AFF, 0xFFFE6ECC, 0xFFFE8170, 0xFFEA9E22,
	0xFFBCBE00, 0xFF88D800, 0xFF5CE430, 0xFF45E082, 0xFF48CDDE, 0xFF4F4F4F, 0xFF000000, 0xFF000000,
	0xFFFFFEFF, 0xFFC0DFFF, 0xFFD3D2FF, 0xFFE8C8FF, 0xFFFBC2FF, 0xFFFEC4EA, 0xFFFECCC5, 0xFFF7D8A5,
	0xFFE4E594, 0xFFCFF29B, 0xFFBEFBB3, 0xFFB8F8D8, 0xFFB8F8F8, 0xFF000000, 0xFF000000, 0xFF000000,
}

// NESColorToRGB converts a 6-bit NES color index to a 24-bit RGB value.
func NESColorToRGB(colorIndex uint8) uint32 {
	if colorIndex >= 64 {
		return 0
	}
	return nesColorPalette[colorIndex] & 0x00FFFFFF
}
