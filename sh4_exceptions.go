// sh4_exceptions.go - SH-4 exception/trap delivery

/*
Exception delivery follows the architecture's standard model: save SR
and PC to SSR/SPC, switch to privileged/bank-1/block-interrupts mode,
load PC from VBR+offset. Grounded on
original_source/crates/sh4-core/src/lib.rs's exception table and the
teacher's own trap-vector convention in cpu_z80.go (RST / interrupt
vector dispatch).
*/

package dreamcast

type sh4Exception struct {
	code   uint32
	offset uint32 // offset from VBR (general exceptions use 0x100, TLB 0x400, interrupts 0x600)
}

var (
	excIllegalInstruction  = sh4Exception{code: 0x180, offset: 0x100}
	excSlotIllegal         = sh4Exception{code: 0x1A0, offset: 0x100}
	excFPUDisable          = sh4Exception{code: 0x800, offset: 0x100}
	excSlotFPUDisable      = sh4Exception{code: 0x820, offset: 0x100}
	excTrapAlways          = sh4Exception{code: 0x160, offset: 0x100}
)

// sh4RaiseException implements the SH-4's exception-entry sequence: SSR/SPC
// save current SR/PC, SGR saves R15, SR transitions to exception mode, PC
// jumps to VBR+offset.
func sh4RaiseException(ctx *Sh4Ctx, exc sh4Exception) {
	ctx.SSR = ctx.SR
	ctx.SPC = ctx.PC0
	ctx.SGR = ctx.R[15]
	ctx.SR |= (1 << srBL) | (1 << srMD) | (1 << srRB)
	target := ctx.VBR + exc.offset
	ctx.PC0 = target
	ctx.PC1 = target + 2
	ctx.PC2 = target + 4
	ctx.IsDelaySlot0 = false
	ctx.IsDelaySlot1 = false
}

// sh4RaiseInterrupt is the IRL-driven entry, vectoring through 0x600 per the
// architecture's external-interrupt exception offset.
func sh4RaiseInterrupt(ctx *Sh4Ctx, intCode uint32) {
	ctx.SSR = ctx.SR
	ctx.SPC = ctx.PC0
	ctx.SGR = ctx.R[15]
	ctx.SR |= (1 << srBL) | (1 << srMD) | (1 << srRB)
	target := ctx.VBR + 0x600
	ctx.PC0 = target
	ctx.PC1 = target + 2
	ctx.PC2 = target + 4
	ctx.IsDelaySlot0 = false
	ctx.IsDelaySlot1 = false
}

// sh4RTE stages the rte instruction's SSR->SR restore and SPC branch
// target without applying either yet: the delay slot must observe the
// pre-rte SR, so the actual setSR(SSR) happens in sh4ApplyPendingBranch
// once the delay-slot instruction has committed (decBranch==4, matching
// other delayed branches for the PC side).
func sh4RTE(ctx *Sh4Ctx) uint32 {
	ctx.decPendingSSR = ctx.SSR
	return ctx.SPC
}
