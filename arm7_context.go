// arm7_context.go - ARM7DI architectural register file

/*
Grounded on original_source/crates/dreamcast/src/aica.rs's Arm7Context
shape and original_source/crates/arm7di-core (register naming, CPSR
mode field, banked SPSR). Go struct/method style follows the teacher's
CPU_Z80/CPU_6502 register-file-plus-methods pattern.
*/

package dreamcast

const (
	arm7ModeUSR = 0x10
	arm7ModeFIQ = 0x11
	arm7ModeIRQ = 0x12
	arm7ModeSVC = 0x13
	arm7ModeABT = 0x17
	arm7ModeUND = 0x1B
	arm7ModeSYS = 0x1F
)

const (
	arm7FlagN = 1 << 31
	arm7FlagZ = 1 << 30
	arm7FlagC = 1 << 29
	arm7FlagV = 1 << 28
	arm7FlagI = 1 << 7
	arm7FlagF = 1 << 6
)

// Arm7Ctx is the ARM7DI register file: 16 GPRs (R15 is the pipelined PC,
// visible-PC = physical PC + 8 per the architecture's fetch/decode/execute
// bias), CPSR, and the banked registers for FIQ/IRQ/SVC/ABT/UND modes.
type Arm7Ctx struct {
	R    [16]uint32
	CPSR uint32

	// banked register sets, indexed by mode
	rFIQBank [7]uint32 // R8-R14 banked for FIQ
	rBank    map[uint32][2]uint32 // mode -> {R13, R14} for IRQ/SVC/ABT/UND
	spsr     map[uint32]uint32

	audioRAM     []byte
	audioRAMMask uint32

	Running bool

	// AICA e68k handshake state (set by aica_bridge.go, consumed by the
	// ARM7 core's own register reads of REG_L/REG_M).
	e68kOut   bool
	e68kRegL  uint8
	e68kRegM  uint8
	aicaInterr bool
	aicaRegL   uint32

	mmap *MemoryMap
}

// NewArm7Ctx returns a reset ARM7DI context over the AICA sound RAM window.
func NewArm7Ctx(audioRAM []byte, audioRAMMask uint32) *Arm7Ctx {
	c := &Arm7Ctx{
		audioRAM:     audioRAM,
		audioRAMMask: audioRAMMask,
		rBank:        make(map[uint32][2]uint32),
		spsr:         make(map[uint32]uint32),
	}
	c.CPSR = arm7ModeSVC | arm7FlagI | arm7FlagF
	return c
}

// visiblePC is R15's architectural value as instructions see it (physical
// fetch address + 8, the two-stage pipeline bias).
func (c *Arm7Ctx) visiblePC() uint32 { return c.R[15] + 8 }

func (c *Arm7Ctx) mode() uint32 { return c.CPSR & 0x1F }

func (c *Arm7Ctx) flagN() bool { return c.CPSR&arm7FlagN != 0 }
func (c *Arm7Ctx) flagZ() bool { return c.CPSR&arm7FlagZ != 0 }
func (c *Arm7Ctx) flagC() bool { return c.CPSR&arm7FlagC != 0 }
func (c *Arm7Ctx) flagV() bool { return c.CPSR&arm7FlagV != 0 }

func (c *Arm7Ctx) setFlag(flag uint32, v bool) {
	if v {
		c.CPSR |= flag
	} else {
		c.CPSR &^= flag
	}
}

func (c *Arm7Ctx) setNZ(v uint32) {
	c.setFlag(arm7FlagN, v&0x80000000 != 0)
	c.setFlag(arm7FlagZ, v == 0)
}

// readAudioRAM8/32 implement the AICA sound-RAM access the ARM7 core uses
// for both instruction fetch and data access (all wrapped mod len).
func (c *Arm7Ctx) readAudioRAM32(addr uint32) uint32 {
	off := addr & c.audioRAMMask &^ 3
	return uint32(c.audioRAM[off]) | uint32(c.audioRAM[off+1])<<8 |
		uint32(c.audioRAM[off+2])<<16 | uint32(c.audioRAM[off+3])<<24
}

func (c *Arm7Ctx) writeAudioRAM32(addr, v uint32) {
	off := addr & c.audioRAMMask &^ 3
	c.audioRAM[off] = byte(v)
	c.audioRAM[off+1] = byte(v >> 8)
	c.audioRAM[off+2] = byte(v >> 16)
	c.audioRAM[off+3] = byte(v >> 24)
}

func (c *Arm7Ctx) readAudioRAM8(addr uint32) uint8 {
	return c.audioRAM[addr&c.audioRAMMask]
}

func (c *Arm7Ctx) writeAudioRAM8(addr uint32, v uint8) {
	c.audioRAM[addr&c.audioRAMMask] = v
}

// switchMode banks SP/LR (and SPSR) on an exception-entry or mode-change
// mode switch, matching the ARM register-bank model.
func (c *Arm7Ctx) switchMode(newMode uint32) {
	old := c.mode()
	if old == newMode {
		return
	}
	if old != arm7ModeUSR && old != arm7ModeSYS {
		c.rBank[old] = [2]uint32{c.R[13], c.R[14]}
	}
	if newMode != arm7ModeUSR && newMode != arm7ModeSYS {
		if bank, ok := c.rBank[newMode]; ok {
			c.R[13], c.R[14] = bank[0], bank[1]
		}
	}
	c.CPSR = (c.CPSR &^ 0x1F) | newMode
}

// enterException performs the standard ARM exception entry: bank SPSR,
// save return PC to LR_mode, switch mode and disable IRQ (always) / FIQ
// (reset and FIQ only).
func (c *Arm7Ctx) enterException(newMode uint32, vectorOffset uint32, lrAdjust uint32) {
	savedCPSR := c.CPSR
	returnPC := c.R[15] + lrAdjust
	c.switchMode(newMode)
	c.spsr[newMode] = savedCPSR
	c.R[14] = returnPC
	c.setFlag(arm7FlagI, true)
	c.R[15] = vectorOffset
}
