// sh4_interp.go - SH-4 single-step interpreter and cycle-budget slice runner

/*
Step executes exactly one instruction through the interpreter face
(used by the debugger/monitor and by frchg/fschg, which the recompiler
refuses to compile). RunSlice drives the code-threading recompiler
across a cycle budget, polling the interrupt bridge at each block
boundary — the only point, per the concurrency model, where an IRQ is
allowed to divert control flow.

Grounded on the teacher's CPU_Z80/CPU_6502 Step()/Run() pair
(single-step for the debugger, bulk run for the emulation loop) and
original_source/crates/sh4-core/src/lib.rs's sh4_ipr_dispatcher loop
shape for the fetch/execute/PC-advance sequence.
*/

package dreamcast

// Step executes one instruction via the interpreter face, advancing the
// three-deep PC pipeline and the delay-slot flags exactly as the hardware
// pipeline would. A delayed branch (bra/bsr/jmp/jsr/rts/braf/bsrf/bt.s/
// bf.s/rte) commits its delay-slot instruction before the branch target is
// folded in, matching sh4BuildBlock's record ordering — the delay slot
// always executes with the pre-branch architectural state.
func Step(ctx *Sh4Ctx) {
	ensureSh4OpcodeTable()
	op := Read16(ctx.mmap, ctx.PC0)
	desc := &sh4OpTable[op]
	ctx.decBranch = 0
	desc.exec(ctx, op)

	if ctx.decBranch != 0 {
		if sh4HasDelaySlot(op) {
			dsPC := ctx.PC0 + 2
			dsOp := Read16(ctx.mmap, dsPC)
			dsDesc := &sh4OpTable[dsOp]
			dsDesc.exec(ctx, dsOp)
		}
		sh4ApplyPendingBranch(ctx)
		return
	}

	ctx.PC0 = ctx.PC1
	ctx.PC1 = ctx.PC2
	ctx.PC2 += 2
	ctx.IsDelaySlot0 = ctx.IsDelaySlot1
	ctx.IsDelaySlot1 = false
}

// RunSlice grants the SH-4 ~budget cycles via the recompiler, polling
// pollIRQ (if non-nil and SR.BL is clear) before each compiled block and,
// when it reports a
// pending level, delivering the interrupt at the block boundary before
// continuing — interrupts never preempt mid-block, matching the ordering
// guarantee in the concurrency model.
func RunSlice(ctx *Sh4Ctx, table *sh4BlockTable, budget int32, pollIRQ func(ctx *Sh4Ctx) (pending bool, intCode uint32)) {
	ctx.RemainingCycles = budget
	for ctx.RemainingCycles > 0 {
		if ctx.SR&(1<<srBL) == 0 && pollIRQ != nil {
			if pending, intCode := pollIRQ(ctx); pending {
				sh4RaiseInterrupt(ctx, intCode)
			}
		}
		steps := sh4FnsDispatch(ctx, table)
		if steps == 0 {
			steps = 1
		}
		ctx.RemainingCycles -= int32(steps)
	}
}
