// arm7_interp.go - ARM7DI instruction interpreter

/*
Single-step only (the recompiler's code-threading applies to the SH-4
side alone per the component design) — grounded on
original_source/crates/arm7di-core's step/execute shape and the
teacher's CPU_6502/CPU_Z80 single-instruction Step() convention.
*/

package dreamcast

func arm7Cond(c *Arm7Ctx, cond uint32) bool {
	switch cond {
	case 0x0:
		return c.flagZ()
	case 0x1:
		return !c.flagZ()
	case 0x2:
		return c.flagC()
	case 0x3:
		return !c.flagC()
	case 0x4:
		return c.flagN()
	case 0x5:
		return !c.flagN()
	case 0x6:
		return c.flagV()
	case 0x7:
		return !c.flagV()
	case 0x8:
		return c.flagC() && !c.flagZ()
	case 0x9:
		return !c.flagC() || c.flagZ()
	case 0xA:
		return c.flagN() == c.flagV()
	case 0xB:
		return c.flagN() != c.flagV()
	case 0xC:
		return !c.flagZ() && c.flagN() == c.flagV()
	case 0xD:
		return c.flagZ() || c.flagN() != c.flagV()
	case 0xE:
		return true
	default:
		return false
	}
}

// Arm7Step fetches, decodes, and executes exactly one instruction, then
// advances R15 by 4 unless the instruction itself redirected control flow
// (branch, data-processing into R15, LDM with R15, etc., all of which set
// nextPC explicitly before returning).
func Arm7Step(c *Arm7Ctx) {
	pc := c.R[15]
	op := c.readAudioRAM32(pc)
	cond := op >> 28

	if cond != 0xE && !arm7Cond(c, cond) {
		c.R[15] = pc + 4
		return
	}

	switch {
	case op&0x0FFFFFF0 == 0x012FFF10:
		arm7BX(c, op)
	case op&0x0F0000F0 == 0x00000090 && op&0x0FC000F0 != 0x00000090:
		arm7Multiply(c, op)
	case op&0x0F8000F0 == 0x00800090:
		arm7MultiplyLong(c, op)
	case op&0x0FB00FF0 == 0x01000090:
		arm7Swap(c, op)
	case op&0x0E000010 == 0x06000010:
		c.R[15] = pc + 4
		arm7Undefined(c)
	case op&0x0FBF0FFF == 0x010F0000:
		arm7MRS(c, op, pc)
	case op&0x0FB0FFF0 == 0x0129F000 || op&0x0FB0F000 == 0x0328F000:
		arm7MSR(c, op, pc)
	case op&0x0C000000 == 0x00000000:
		arm7DataProcessing(c, op, pc)
	case op&0x0C000000 == 0x04000000:
		arm7SingleDataTransfer(c, op, pc)
	case op&0x0E000000 == 0x08000000:
		arm7BlockDataTransfer(c, op, pc)
	case op&0x0E000000 == 0x0A000000:
		arm7Branch(c, op, pc)
	case op&0x0F000000 == 0x0F000000:
		arm7SWI(c)
		return
	default:
		c.R[15] = pc + 4
	}

	if c.R[15] == pc {
		c.R[15] = pc + 4
	}
}

func arm7ShiftOperand(c *Arm7Ctx, op uint32, updateCarry bool) (uint32, bool) {
	if op&(1<<25) != 0 {
		imm := op & 0xFF
		rot := (op >> 8) & 0xF * 2
		v := imm>>rot | imm<<(32-rot)
		carry := c.flagC()
		if rot != 0 {
			carry = v&0x80000000 != 0
		}
		return v, carry
	}
	rm := c.regRead(op & 0xF)
	var shiftAmt uint32
	shiftType := (op >> 5) & 0x3
	if op&(1<<4) != 0 {
		shiftAmt = c.regRead((op>>8)&0xF) & 0xFF
	} else {
		shiftAmt = (op >> 7) & 0x1F
	}
	return arm7Shift(shiftType, rm, shiftAmt, c.flagC(), op&(1<<4) == 0)
}

func arm7Shift(shiftType, val, amount uint32, carryIn bool, immediateZeroSpecial bool) (uint32, bool) {
	switch shiftType {
	case 0: // LSL
		if amount == 0 {
			return val, carryIn
		}
		if amount >= 32 {
			if amount == 32 {
				return 0, val&1 != 0
			}
			return 0, false
		}
		return val << amount, (val>>(32-amount))&1 != 0
	case 1: // LSR
		if amount == 0 && immediateZeroSpecial {
			amount = 32
		}
		if amount == 0 {
			return val, carryIn
		}
		if amount >= 32 {
			if amount == 32 {
				return 0, val&0x80000000 != 0
			}
			return 0, false
		}
		return val >> amount, (val>>(amount-1))&1 != 0
	case 2: // ASR
		if amount == 0 && immediateZeroSpecial {
			amount = 32
		}
		if amount == 0 {
			return val, carryIn
		}
		if amount >= 32 {
			if val&0x80000000 != 0 {
				return 0xFFFFFFFF, true
			}
			return 0, false
		}
		return uint32(int32(val) >> amount), (val>>(amount-1))&1 != 0
	default: // ROR / RRX
		if amount == 0 && immediateZeroSpecial {
			carryBit := uint32(0)
			if carryIn {
				carryBit = 1
			}
			result := val>>1 | carryBit<<31
			return result, val&1 != 0
		}
		amount &= 31
		if amount == 0 {
			return val, carryIn
		}
		result := val>>amount | val<<(32-amount)
		return result, result&0x80000000 != 0
	}
}

func (c *Arm7Ctx) regRead(r uint32) uint32 {
	if r == 15 {
		return c.visiblePC()
	}
	return c.R[r]
}

func arm7DataProcessing(c *Arm7Ctx, op uint32, pc uint32) {
	rn := (op >> 16) & 0xF
	rd := (op >> 12) & 0xF
	setFlags := op&(1<<20) != 0
	opcode := (op >> 21) & 0xF

	operand2, shiftCarry := arm7ShiftOperand(c, op, setFlags)
	operand1 := c.regRead(rn)

	var result uint32
	writesResult := true

	switch opcode {
	case 0x0: // AND
		result = operand1 & operand2
	case 0x1: // EOR
		result = operand1 ^ operand2
	case 0x2: // SUB
		result = operand1 - operand2
		if setFlags {
			c.setFlag(arm7FlagC, operand1 >= operand2)
			c.setFlag(arm7FlagV, arm7OverflowSub(operand1, operand2, result))
		}
	case 0x3: // RSB
		result = operand2 - operand1
		if setFlags {
			c.setFlag(arm7FlagC, operand2 >= operand1)
			c.setFlag(arm7FlagV, arm7OverflowSub(operand2, operand1, result))
		}
	case 0x4: // ADD
		result = operand1 + operand2
		if setFlags {
			c.setFlag(arm7FlagC, result < operand1)
			c.setFlag(arm7FlagV, arm7OverflowAdd(operand1, operand2, result))
		}
	case 0x5: // ADC
		carryIn := uint32(0)
		if c.flagC() {
			carryIn = 1
		}
		result = operand1 + operand2 + carryIn
		if setFlags {
			c.setFlag(arm7FlagC, uint64(operand1)+uint64(operand2)+uint64(carryIn) > 0xFFFFFFFF)
			c.setFlag(arm7FlagV, arm7OverflowAdd(operand1, operand2, result))
		}
	case 0x6: // SBC
		borrowIn := uint32(1)
		if c.flagC() {
			borrowIn = 0
		}
		result = operand1 - operand2 - borrowIn
		if setFlags {
			c.setFlag(arm7FlagC, uint64(operand1) >= uint64(operand2)+uint64(borrowIn))
			c.setFlag(arm7FlagV, arm7OverflowSub(operand1, operand2, result))
		}
	case 0x7: // RSC
		borrowIn := uint32(1)
		if c.flagC() {
			borrowIn = 0
		}
		result = operand2 - operand1 - borrowIn
	case 0x8: // TST
		result = operand1 & operand2
		writesResult = false
		setFlags = true
	case 0x9: // TEQ
		result = operand1 ^ operand2
		writesResult = false
		setFlags = true
	case 0xA: // CMP
		result = operand1 - operand2
		writesResult = false
		setFlags = true
		c.setFlag(arm7FlagC, operand1 >= operand2)
		c.setFlag(arm7FlagV, arm7OverflowSub(operand1, operand2, result))
	case 0xB: // CMN
		result = operand1 + operand2
		writesResult = false
		setFlags = true
		c.setFlag(arm7FlagC, result < operand1)
		c.setFlag(arm7FlagV, arm7OverflowAdd(operand1, operand2, result))
	case 0xC: // ORR
		result = operand1 | operand2
	case 0xD: // MOV
		result = operand2
	case 0xE: // BIC
		result = operand1 &^ operand2
	case 0xF: // MVN
		result = ^operand2
	}

	if setFlags {
		if opcode != 0x2 && opcode != 0x3 && opcode != 0x4 && opcode != 0x5 &&
			opcode != 0x6 && opcode != 0xA && opcode != 0xB {
			c.setFlag(arm7FlagC, shiftCarry)
		}
		c.setNZ(result)
		if rd == 15 && writesResult {
			if spsr, ok := c.spsr[c.mode()]; ok {
				c.CPSR = spsr
			}
		}
	}

	if writesResult {
		c.R[rd] = result
		if rd == 15 {
			c.R[15] = result &^ 3
			return
		}
	}
	c.R[15] = pc + 4
}

func arm7OverflowAdd(a, b, result uint32) bool {
	return (a^result)&(b^result)&0x80000000 != 0
}
func arm7OverflowSub(a, b, result uint32) bool {
	return (a^b)&(a^result)&0x80000000 != 0
}

func arm7SingleDataTransfer(c *Arm7Ctx, op uint32, pc uint32) {
	rn := (op >> 16) & 0xF
	rd := (op >> 12) & 0xF
	loadBit := op&(1<<20) != 0
	writeBack := op&(1<<21) != 0
	byteBit := op&(1<<22) != 0
	upBit := op&(1<<23) != 0
	preIndex := op&(1<<24) != 0

	var offset uint32
	if op&(1<<25) != 0 {
		offset, _ = arm7ShiftOperand(c, op, false)
	} else {
		offset = op & 0xFFF
	}

	base := c.regRead(rn)
	var addr uint32
	if upBit {
		addr = base + offset
	} else {
		addr = base - offset
	}

	effective := base
	if preIndex {
		effective = addr
	}

	if loadBit {
		var v uint32
		if byteBit {
			v = uint32(c.readAudioRAM8(effective))
		} else {
			v = c.readAudioRAM32(effective &^ 3)
			rot := (effective & 3) * 8
			if rot != 0 {
				v = v>>rot | v<<(32-rot)
			}
		}
		c.R[rd] = v
		if rd == 15 {
			c.R[15] = v &^ 3
		}
	} else {
		v := c.R[rd]
		if rd == 15 {
			v = pc + 12
		}
		if byteBit {
			c.writeAudioRAM8(effective, uint8(v))
		} else {
			c.writeAudioRAM32(effective&^3, v)
		}
	}

	if !preIndex {
		c.R[rn] = addr
	} else if writeBack {
		c.R[rn] = addr
	}

	if rd != 15 || !loadBit {
		c.R[15] = pc + 4
	}
}

func arm7BlockDataTransfer(c *Arm7Ctx, op uint32, pc uint32) {
	rn := (op >> 16) & 0xF
	loadBit := op&(1<<20) != 0
	writeBack := op&(1<<21) != 0
	upBit := op&(1<<23) != 0
	preIndex := op&(1<<24) != 0
	regList := op & 0xFFFF

	base := c.R[rn]
	addr := base
	count := 0
	for i := 0; i < 16; i++ {
		if regList&(1<<uint(i)) != 0 {
			count++
		}
	}

	step := func(r int) {
		if preIndex {
			if upBit {
				addr += 4
			} else {
				addr -= 4
			}
		}
		if loadBit {
			c.R[r] = c.readAudioRAM32(addr &^ 3)
		} else {
			c.writeAudioRAM32(addr&^3, c.R[r])
		}
		if !preIndex {
			if upBit {
				addr += 4
			} else {
				addr -= 4
			}
		}
	}

	if upBit {
		for i := 0; i < 16; i++ {
			if regList&(1<<uint(i)) != 0 {
				step(i)
			}
		}
	} else {
		for i := 15; i >= 0; i-- {
			if regList&(1<<uint(i)) != 0 {
				step(i)
			}
		}
	}

	if writeBack {
		c.R[rn] = addr
	}

	if loadBit && regList&(1<<15) != 0 {
		c.R[15] &^= 3
		return
	}
	c.R[15] = pc + 4
}

func arm7Branch(c *Arm7Ctx, op uint32, pc uint32) {
	link := op&(1<<24) != 0
	offset := op & 0xFFFFFF
	if offset&0x800000 != 0 {
		offset |= 0xFF000000
	}
	target := pc + 8 + offset<<2
	if link {
		c.R[14] = pc + 4
	}
	c.R[15] = target
}

func arm7BX(c *Arm7Ctx, op uint32) {
	rm := c.regRead(op & 0xF)
	c.R[15] = rm &^ 1
}

func arm7Multiply(c *Arm7Ctx, op uint32) {
	rd := (op >> 16) & 0xF
	rn := (op >> 12) & 0xF
	rs := (op >> 8) & 0xF
	rm := op & 0xF
	accumulate := op&(1<<21) != 0
	setFlags := op&(1<<20) != 0

	result := c.R[rm] * c.R[rs]
	if accumulate {
		result += c.R[rn]
	}
	c.R[rd] = result
	if setFlags {
		c.setNZ(result)
	}
	c.R[15] += 4
}

func arm7MultiplyLong(c *Arm7Ctx, op uint32) {
	rdHi := (op >> 16) & 0xF
	rdLo := (op >> 12) & 0xF
	rs := (op >> 8) & 0xF
	rm := op & 0xF
	signed := op&(1<<22) != 0
	accumulate := op&(1<<21) != 0
	setFlags := op&(1<<20) != 0

	var result uint64
	if signed {
		result = uint64(int64(int32(c.R[rm])) * int64(int32(c.R[rs])))
	} else {
		result = uint64(c.R[rm]) * uint64(c.R[rs])
	}
	if accumulate {
		result += uint64(c.R[rdHi])<<32 | uint64(c.R[rdLo])
	}
	c.R[rdHi] = uint32(result >> 32)
	c.R[rdLo] = uint32(result)
	if setFlags {
		c.setFlag(arm7FlagN, result&0x8000000000000000 != 0)
		c.setFlag(arm7FlagZ, result == 0)
	}
	c.R[15] += 4
}

func arm7Swap(c *Arm7Ctx, op uint32) {
	rn := (op >> 16) & 0xF
	rd := (op >> 12) & 0xF
	rm := op & 0xF
	byteBit := op&(1<<22) != 0
	addr := c.R[rn]
	if byteBit {
		old := c.readAudioRAM8(addr)
		c.writeAudioRAM8(addr, uint8(c.R[rm]))
		c.R[rd] = uint32(old)
	} else {
		old := c.readAudioRAM32(addr &^ 3)
		c.writeAudioRAM32(addr&^3, c.R[rm])
		c.R[rd] = old
	}
	c.R[15] += 4
}

func arm7MRS(c *Arm7Ctx, op uint32, pc uint32) {
	rd := (op >> 12) & 0xF
	useSPSR := op&(1<<22) != 0
	if useSPSR {
		c.R[rd] = c.spsr[c.mode()]
	} else {
		c.R[rd] = c.CPSR
	}
	c.R[15] = pc + 4
}

func arm7MSR(c *Arm7Ctx, op uint32, pc uint32) {
	useSPSR := op&(1<<22) != 0
	flagsOnly := op&(1<<16) == 0

	var value uint32
	if op&(1<<25) != 0 {
		imm := op & 0xFF
		rot := (op >> 8) & 0xF * 2
		value = imm>>rot | imm<<(32-rot)
	} else {
		value = c.R[op&0xF]
	}

	mask := uint32(0xFFFFFFFF)
	if flagsOnly {
		mask = 0xF0000000
	}

	if useSPSR {
		cur := c.spsr[c.mode()]
		c.spsr[c.mode()] = (cur &^ mask) | (value & mask)
	} else {
		c.CPSR = (c.CPSR &^ mask) | (value & mask)
	}
	c.R[15] = pc + 4
}

func arm7SWI(c *Arm7Ctx) {
	c.enterException(arm7ModeSVC, 0x08, 4)
}

func arm7Undefined(c *Arm7Ctx) {
	c.enterException(arm7ModeUND, 0x04, 4)
}

// UpdateInterrupts raises IRQ/FIQ exception entry if the bridge
// (aica_bridge.go) reports a pending, unmasked line — called at the same
// block-boundary granularity as the SH-4 side.
func (c *Arm7Ctx) UpdateInterrupts(irqPending, fiqPending bool) {
	if fiqPending && c.CPSR&arm7FlagF == 0 {
		c.enterException(arm7ModeFIQ, 0x1C, 4)
		c.setFlag(arm7FlagF, true)
		return
	}
	if irqPending && c.CPSR&arm7FlagI == 0 {
		c.enterException(arm7ModeIRQ, 0x18, 4)
	}
}
