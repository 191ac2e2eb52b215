// spg.go - Sync Pulse Generator: scanline/field timing and blanking interrupts

/*
Grounded line-for-line on original_source/crates/dreamcast/src/spg.rs:
register layout, recompute_timing's SH4_CLOCK/PIXEL_CLOCK line-cycle
math (with interlace halving), tick's cycle-accumulator scanline
advance, and the vblank-in/vblank-out/hblank/line-0 interrupt firing
(raise_normal bits 3/4/5/5). Re-expressed as a supervisor-owned struct
(Design Note "Global singletons") instead of the reference's
once_cell::Lazy<Mutex<SpgState>>.
*/

package dreamcast

const (
	addrSPGTriggerPos = 0x005F80C4
	addrSPGHBlankInt  = 0x005F80C8
	addrSPGVBlankInt  = 0x005F80CC
	addrSPGControl    = 0x005F80D0
	addrSPGHBlank     = 0x005F80D4
	addrSPGLoad       = 0x005F80D8
	addrSPGVBlank     = 0x005F80DC
	addrSPGWidth      = 0x005F80E0
	addrSPGStatus     = 0x005F810C

	sh4Clock    uint64 = 200_000_000
	pixelClock  uint64 = 27_000_000
)

type spgRegisters struct {
	triggerPos, hblankInt, vblankInt uint32
	control, hblank, load, vblank, width uint32
}

func (r *spgRegisters) reset() {
	r.triggerPos = 0
	r.hblankInt = 0x031D0000
	r.vblankInt = 0x01500104
	r.control = 0
	r.hblank = 0x007E0345
	r.load = 0x01060359
	r.vblank = 0x01500104
	r.width = 0x07F1933F
}

// SpgState is the scanline/field timing generator.
type SpgState struct {
	regs       spgRegisters
	lineCycles uint32
	totalLines uint32
	cycleAcc   uint64
	scanline   uint32
	field      uint8
	inVblank   bool

	asic *AsicState
}

func NewSpgState(asic *AsicState) *SpgState {
	s := &SpgState{lineCycles: 1, totalLines: 1, asic: asic}
	s.regs.reset()
	s.recomputeTiming()
	return s
}

func (s *SpgState) Reset() {
	s.regs.reset()
	s.lineCycles = 1
	s.totalLines = 1
	s.cycleAcc = 0
	s.scanline = 0
	s.field = 0
	s.inVblank = false
	s.recomputeTiming()
}

func SpgHandlesAddress(addr uint32) bool {
	switch addr {
	case addrSPGTriggerPos, addrSPGHBlankInt, addrSPGVBlankInt, addrSPGControl,
		addrSPGHBlank, addrSPGLoad, addrSPGVBlank, addrSPGWidth, addrSPGStatus:
		return true
	}
	return false
}

func (s *SpgState) Read(addr uint32) uint32 {
	switch addr {
	case addrSPGTriggerPos:
		return s.regs.triggerPos
	case addrSPGHBlankInt:
		return s.regs.hblankInt
	case addrSPGVBlankInt:
		return s.regs.vblankInt
	case addrSPGControl:
		return s.regs.control
	case addrSPGHBlank:
		return s.regs.hblank
	case addrSPGLoad:
		return s.regs.load
	case addrSPGVBlank:
		return s.regs.vblank
	case addrSPGWidth:
		return s.regs.width
	case addrSPGStatus:
		return s.statusValue()
	}
	return 0
}

func (s *SpgState) Write(addr uint32, value uint32) {
	switch addr {
	case addrSPGTriggerPos:
		s.regs.triggerPos = value
	case addrSPGHBlankInt:
		s.regs.hblankInt = value
	case addrSPGVBlankInt:
		s.regs.vblankInt = value
	case addrSPGControl:
		s.regs.control = value
		s.recomputeTiming()
	case addrSPGHBlank:
		s.regs.hblank = value
	case addrSPGLoad:
		s.regs.load = value
		s.recomputeTiming()
	case addrSPGVBlank:
		s.regs.vblank = value
		total := s.totalLines
		if total == 0 {
			total = 1
		}
		if s.scanline >= total {
			s.scanline %= total
		}
		s.updateInVblank()
	case addrSPGWidth:
		s.regs.width = value
	case addrSPGStatus:
		// read-only
	}
}

func (s *SpgState) statusValue() uint32 {
	var v uint32
	v |= s.scanline & 0x3FF
	v |= (uint32(s.field) & 1) << 10
	if s.inVblank {
		v |= 1 << 11
		v |= 1 << 13
	}
	return v
}

func (s *SpgState) recomputeTiming() {
	hcount := s.regs.load & 0x3FF
	vcount := (s.regs.load >> 16) & 0x3FF
	hTotal := hcount + 1
	vTotal := vcount + 1
	if hTotal == 0 {
		hTotal = 1
	}
	if vTotal == 0 {
		vTotal = 1
	}

	lineCycles := (sh4Clock * uint64(hTotal)) / pixelClock
	if lineCycles == 0 {
		lineCycles = 1
	}
	if s.interlaceEnabled() {
		lineCycles /= 2
		if lineCycles == 0 {
			lineCycles = 1
		}
	}
	s.lineCycles = uint32(lineCycles)
	if s.lineCycles == 0 {
		s.lineCycles = 1
	}
	s.totalLines = vTotal
	if s.scanline >= s.totalLines {
		s.scanline %= s.totalLines
	}
	s.updateInVblank()
}

func (s *SpgState) interlaceEnabled() bool { return s.regs.control&(1<<4) != 0 }
func (s *SpgState) vblankStart() uint32    { return s.regs.vblank & 0x3FF }
func (s *SpgState) vblankEnd() uint32      { return (s.regs.vblank >> 16) & 0x3FF }

func (s *SpgState) hblankInterruptLine() (uint32, bool) {
	line := (s.regs.hblankInt >> 16) & 0x3FF
	return line, line != 0
}
func (s *SpgState) vblankInLine() uint32  { return s.regs.vblankInt & 0x3FF }
func (s *SpgState) vblankOutLine() uint32 { return (s.regs.vblankInt >> 16) & 0x3FF }

func (s *SpgState) updateInVblank() {
	start, end := s.vblankStart(), s.vblankEnd()
	if start == end {
		s.inVblank = false
		return
	}
	if start < end {
		s.inVblank = s.scanline >= start && s.scanline < end
	} else {
		s.inVblank = s.scanline >= start || s.scanline < end
	}
}

// Tick advances the scanline counter by cycles worth of pixel-clock time,
// firing the vblank-in/vblank-out/hblank/line-0 ASIC normal interrupts
// (bits 3/4/5/5) on each scanline crossing.
func (s *SpgState) Tick(cycles uint32) {
	s.cycleAcc += uint64(cycles)
	for s.cycleAcc >= uint64(s.lineCycles) {
		s.cycleAcc -= uint64(s.lineCycles)
		total := s.totalLines
		if total == 0 {
			total = 1
		}
		s.scanline = (s.scanline + 1) % total

		if s.scanline == s.vblankInLine() {
			s.asic.RaiseNormal(3)
		}
		if s.scanline == s.vblankOutLine() {
			s.asic.RaiseNormal(4)
		}
		if line, ok := s.hblankInterruptLine(); ok && s.scanline == line {
			s.asic.RaiseNormal(5)
		}

		if s.scanline == s.vblankStart() {
			s.inVblank = true
		}
		if s.scanline == s.vblankEnd() {
			s.inVblank = false
		}

		if s.scanline == 0 {
			if s.interlaceEnabled() {
				s.field ^= 1
			} else {
				s.field = 0
			}
			s.asic.RaiseNormal(5)
		}
	}
}
