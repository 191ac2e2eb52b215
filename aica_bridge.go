// aica_bridge.go - AICA register file and the ARM7/SH-4 interrupt handshake

/*
Grounded line-for-line on original_source/crates/dreamcast/src/aica.rs:
the 0x8000-byte register window, SCIEB/SCIPD/SCIRE (ARM-side pending)
and MCIEB/MCIPD/MCIRE (SH4-side pending) register trios, SCILV0-2
priority encoding (calc_level), the REG_L/REG_M e68k accept/clear
handshake (update_e68k/accept_e68k), and the write-1-sets semantics on
SCIPD/MCIPD bit 5.

Re-expressed as a supervisor-owned struct (Design Note "Global
singletons") instead of the reference's once_cell::Lazy<Mutex<AicaState>>
— the Dreamcast struct owns the one instance and passes its Arm7Ctx and
AsicState explicitly rather than reaching through package-level statics.
*/

package dreamcast

const (
	aicaRegSpaceSize = 0x8000
	aicaRegMask      = 0x7FFF

	addrSCIEB     = 0x289C
	addrSCIPD     = 0x289C + 4
	addrSCIRE     = 0x289C + 8
	addrSCILV0    = 0x2800 + 0xA8
	addrSCILV1    = 0x2800 + 0xAC
	addrSCILV2    = 0x2800 + 0xB0
	addrMCIEB     = 0x28B4
	addrMCIPD     = 0x28B4 + 4
	addrMCIRE     = 0x28B4 + 8
	addrSCIEBHigh = addrSCIEB + 2
	addrMCIEBHigh = addrMCIEB + 2
	addrREGL      = 0x2D00
	addrREGM      = 0x2D04

	spuIRQExtBit uint8 = 1
)

// AicaState is the AICA sound-chip register file plus the cross-CPU
// interrupt bridge state (SCIEB/SCIPD/MCIEB/MCIPD mirrors, ARM reset and
// VREG latch bytes).
type AicaState struct {
	regs     [aicaRegSpaceSize]byte
	scieb    uint32
	scipd    uint32
	mcieb    uint32
	mcipd    uint32
	vreg     uint8
	armReset uint8

	asic *AsicState
}

func NewAicaState(asic *AsicState) *AicaState {
	return &AicaState{asic: asic}
}

func (a *AicaState) Reset() {
	for i := range a.regs {
		a.regs[i] = 0
	}
	a.scieb, a.scipd, a.mcieb, a.mcipd = 0, 0, 0, 0
	a.vreg, a.armReset = 0, 0
	a.asic.CancelExternal(spuIRQExtBit)
}

func (a *AicaState) readU8(off uint32) uint8 {
	if int(off) >= len(a.regs) {
		return 0
	}
	return a.regs[off]
}

func (a *AicaState) readU16(off uint32) uint16 {
	if int(off)+2 > len(a.regs) {
		return 0
	}
	return uint16(a.regs[off]) | uint16(a.regs[off+1])<<8
}

func (a *AicaState) readU32(off uint32) uint32 {
	if int(off)+4 > len(a.regs) {
		return 0
	}
	return uint32(a.regs[off]) | uint32(a.regs[off+1])<<8 |
		uint32(a.regs[off+2])<<16 | uint32(a.regs[off+3])<<24
}

func (a *AicaState) writeU8(off uint32, v uint8) {
	if int(off) < len(a.regs) {
		a.regs[off] = v
	}
}

func (a *AicaState) writeU16(off uint32, v uint16) {
	if int(off)+2 > len(a.regs) {
		return
	}
	a.regs[off] = byte(v)
	a.regs[off+1] = byte(v >> 8)
}

func (a *AicaState) writeU32(off uint32, v uint32) {
	if int(off)+4 > len(a.regs) {
		return
	}
	a.regs[off] = byte(v)
	a.regs[off+1] = byte(v >> 8)
	a.regs[off+2] = byte(v >> 16)
	a.regs[off+3] = byte(v >> 24)
}

func (a *AicaState) syncSCIPD() { a.writeU32(addrSCIPD, a.scipd) }
func (a *AicaState) syncMCIPD() { a.writeU32(addrMCIPD, a.mcipd) }

// calcLevel encodes the ARM interrupt priority level (0-7) for a pending
// bit index from SCILV0/1/2: bit 0 of the level from SCILV0, bit 1 from
// SCILV1, bit 2 from SCILV2.
func (a *AicaState) calcLevel(bitIndex uint32) uint32 {
	if bitIndex > 7 {
		bitIndex = 7
	}
	mask := uint32(1) << bitIndex
	scilv0 := uint32(a.readU16(addrSCILV0))
	scilv1 := uint32(a.readU16(addrSCILV1))
	scilv2 := uint32(a.readU16(addrSCILV2))
	var level uint32
	if scilv0&mask != 0 {
		level |= 1
	}
	if scilv1&mask != 0 {
		level |= 2
	}
	if scilv2&mask != 0 {
		level |= 4
	}
	return level
}

// updateE68k implements the e68k handshake: once the ARM side has a
// pending interrupt and the latch isn't already armed, latch REG_L; once
// the ARM interrupt clears, disarm.
func updateE68k(arm *Arm7Ctx) {
	if !arm.e68kOut && arm.aicaInterr {
		arm.e68kOut = true
		arm.e68kRegL = uint8(arm.aicaRegL)
	} else if !arm.aicaInterr {
		arm.e68kOut = false
		arm.e68kRegL = 0
	}
}

func setArmInterrupt(arm *Arm7Ctx, pendingBits uint32, level uint32) {
	arm.aicaInterr = pendingBits != 0
	arm.aicaRegL = level
	updateE68k(arm)
	arm.UpdateInterrupts(arm.e68kOut, false)
}

func acceptE68k(arm *Arm7Ctx) {
	arm.e68kOut = false
	updateE68k(arm)
	arm.UpdateInterrupts(arm.e68kOut, false)
}

func (a *AicaState) updateArmInterrupts(arm *Arm7Ctx) {
	pending := a.scieb & a.scipd
	if pending != 0 {
		bitIndex := trailingZeros32(pending)
		level := a.calcLevel(bitIndex)
		setArmInterrupt(arm, pending, level)
	} else {
		setArmInterrupt(arm, 0, 0)
	}
}

func (a *AicaState) updateSh4Interrupts() {
	pending := a.mcieb & a.mcipd
	if pending != 0 {
		a.asic.RaiseExternal(spuIRQExtBit)
	} else {
		a.asic.CancelExternal(spuIRQExtBit)
	}
}

func trailingZeros32(v uint32) uint32 {
	if v == 0 {
		return 32
	}
	var n uint32
	for v&1 == 0 {
		v >>= 1
		n++
	}
	return n
}

func maskValue(value uint32, size int) uint32 {
	switch size {
	case 1:
		return value & 0xFF
	case 2:
		return value & 0xFFFF
	default:
		return value
	}
}

func (a *AicaState) readInternal(arm *Arm7Ctx, offset uint32, size int, fromArm bool) uint32 {
	var value uint32
	switch size {
	case 1:
		switch {
		case fromArm && offset == addrREGL:
			value = uint32(arm.e68kRegL)
		case fromArm && offset == addrREGM:
			value = uint32(arm.e68kRegM)
		case offset == 0x2C00:
			value = uint32(a.armReset)
		case offset == 0x2C01:
			value = uint32(a.vreg)
		default:
			value = uint32(a.readU8(offset))
		}
	case 2:
		switch {
		case fromArm && offset == addrREGL:
			value = uint32(arm.e68kRegL)
		case fromArm && offset == addrREGM:
			value = uint32(arm.e68kRegM)
		case offset == 0x2C00:
			value = uint32(a.armReset) | uint32(a.vreg)<<8
		default:
			value = uint32(a.readU16(offset))
		}
	case 4:
		value = a.readU32(offset)
	}
	return maskValue(value, size)
}

func (a *AicaState) writeInternal(arm *Arm7Ctx, offset uint32, size int, value uint32, fromArm bool) {
	switch size {
	case 1:
		switch offset {
		case 0x2C00:
			a.armReset = uint8(value)
			return
		case 0x2C01:
			a.vreg = uint8(value)
			return
		case addrSCIPD:
			if value&(1<<5) != 0 {
				a.scipd |= 1 << 5
				a.syncSCIPD()
				a.updateArmInterrupts(arm)
			}
			return
		case addrSCIRE:
			a.scipd &^= maskValue(value, size)
			a.syncSCIPD()
			a.updateArmInterrupts(arm)
			return
		case addrMCIPD:
			if value&(1<<5) != 0 {
				a.mcipd |= 1 << 5
				a.syncMCIPD()
				a.updateSh4Interrupts()
			}
			return
		case addrMCIRE:
			a.mcipd &^= maskValue(value, size)
			a.syncMCIPD()
			a.updateSh4Interrupts()
			return
		case addrREGL:
			// read-only
			return
		case addrREGM:
			if fromArm && value&1 != 0 {
				acceptE68k(arm)
				return
			}
			return
		default:
			a.writeU8(offset, uint8(value))
			return
		}
	case 2:
		switch offset {
		case 0x2C00:
			a.armReset = uint8(value)
			a.vreg = uint8(value >> 8)
			return
		case addrREGL:
			return
		case addrREGM:
			if fromArm && value&1 != 0 {
				acceptE68k(arm)
				return
			}
			return
		case addrSCIPD:
			if value&(1<<5) != 0 {
				a.scipd |= 1 << 5
				a.syncSCIPD()
				a.updateArmInterrupts(arm)
			}
			return
		case addrSCIRE:
			a.scipd &^= maskValue(value, size)
			a.syncSCIPD()
			a.updateArmInterrupts(arm)
			return
		case addrMCIPD:
			if value&(1<<5) != 0 {
				a.mcipd |= 1 << 5
				a.syncMCIPD()
				a.updateSh4Interrupts()
			}
			return
		case addrMCIRE:
			a.mcipd &^= maskValue(value, size)
			a.syncMCIPD()
			a.updateSh4Interrupts()
			return
		case addrSCIEB, addrSCIEBHigh, addrMCIEB, addrMCIEBHigh:
			a.writeU16(offset, uint16(maskValue(value, size)))
		default:
			a.writeU16(offset, uint16(maskValue(value, size)))
		}
	case 4:
		switch offset {
		case addrSCIEB:
			a.writeU32(offset, maskValue(value, size))
			a.scieb = a.readU32(addrSCIEB)
			a.updateArmInterrupts(arm)
			return
		case addrSCIPD:
			if value&(1<<5) != 0 {
				a.scipd |= 1 << 5
				a.syncSCIPD()
				a.updateArmInterrupts(arm)
			}
			return
		case addrSCIRE:
			a.scipd &^= maskValue(value, size)
			a.syncSCIPD()
			a.updateArmInterrupts(arm)
			return
		case addrMCIEB:
			a.writeU32(offset, maskValue(value, size))
			a.mcieb = a.readU32(addrMCIEB)
			a.updateSh4Interrupts()
			return
		case addrMCIPD:
			if value&(1<<5) != 0 {
				a.mcipd |= 1 << 5
				a.syncMCIPD()
				a.updateSh4Interrupts()
			}
			return
		case addrMCIRE:
			a.mcipd &^= maskValue(value, size)
			a.syncMCIPD()
			a.updateSh4Interrupts()
			return
		case addrREGL:
			// read-only
		case addrREGM:
			if fromArm && value&1 != 0 {
				acceptE68k(arm)
				return
			}
		default:
			a.writeU32(offset, maskValue(value, size))
		}
	}

	switch offset {
	case addrSCIEB, addrSCIEBHigh:
		a.scieb = a.readU32(addrSCIEB)
		a.updateArmInterrupts(arm)
	case addrMCIEB, addrMCIEBHigh:
		a.mcieb = a.readU32(addrMCIEB)
		a.updateSh4Interrupts()
	}
}

func AicaHandlesAddress(addr uint32) bool { return addr&^aicaRegMask == 0x00700000 }

func (a *AicaState) ReadFromSH4(arm *Arm7Ctx, addr uint32, size int) uint32 {
	return a.readInternal(arm, addr&aicaRegMask, size, false)
}
func (a *AicaState) WriteFromSH4(arm *Arm7Ctx, addr uint32, size int, value uint32) {
	a.writeInternal(arm, addr&aicaRegMask, size, value, false)
}
func (a *AicaState) ReadFromARM(arm *Arm7Ctx, addr uint32, size int) uint32 {
	return a.readInternal(arm, addr&aicaRegMask, size, true)
}
func (a *AicaState) WriteFromARM(arm *Arm7Ctx, addr uint32, size int, value uint32) {
	a.writeInternal(arm, addr&aicaRegMask, size, value, true)
}
