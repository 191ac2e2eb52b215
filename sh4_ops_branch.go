// sh4_ops_branch.go - SH-4 branch/control-transfer instruction family

/*
Branch records don't jump directly — they set ctx.decBranch* fields,
which sh4ApplyPendingBranch (sh4_recompiler.go) folds into the live PC
pipeline once the block (including any delay slot) has finished
running. This keeps the delay-slot pair inside the same block without
special-casing the executor loop.
*/

package dreamcast

func registerBranchOps() {
	registerOp("1010dddddddddddd", "bra", execDisp12(braOp), decodeDisp12(braOp), disasmFixed("bra"))
	registerOp("1011dddddddddddd", "bsr", execDisp12(bsrOp), decodeDisp12(bsrOp), disasmFixed("bsr"))
	registerOp("10001001dddddddd", "bt", execDisp8(btOp), decodeDisp8(btOp), disasmFixed("bt"))
	registerOp("10001011dddddddd", "bf", execDisp8(bfOp), decodeDisp8(bfOp), disasmFixed("bf"))
	registerOp("10001101dddddddd", "bt.s", execDisp8(btsOp), decodeDisp8(btsOp), disasmFixed("bt.s"))
	registerOp("10001111dddddddd", "bf.s", execDisp8(bfsOp), decodeDisp8(bfsOp), disasmFixed("bf.s"))
	registerOp("0100nnnn00101011", "jmp", execN(jmpOp), decodeN(jmpOp), disasmFixed("jmp"))
	registerOp("0100nnnn00001011", "jsr", execN(jsrOp), decodeN(jsrOp), disasmFixed("jsr"))
	registerOp("0000000000001011", "rts", execNone(rtsOp), decodeNone(rtsOp), disasmFixed("rts"))
	registerOp("0000000000101011", "rte", execNone(rteOp), decodeNone(rteOp), disasmFixed("rte"))
	registerOp("0000nnnn00100011", "braf", execN(brafOp), decodeN(brafOp), disasmFixed("braf"))
	registerOp("0000nnnn00000011", "bsrf", execN(bsrfOp), decodeN(bsrfOp), disasmFixed("bsrf"))
	registerOp("11000011iiiiiiii", "trapa", execImm8(trapaOp), decodeImm8(trapaOp), disasmFixed("trapa"))
	registerOp("0000000000001001", "nop", execNone(nopOp), decodeNone(nopOp), disasmFixed("nop"))
}

type implDisp func(ctx *Sh4Ctx, disp int32)

func execDisp12(impl implDisp) sh4ExecFn {
	return func(ctx *Sh4Ctx, op uint16) { impl(ctx, decDisp12s(op)) }
}
func decodeDisp12(impl implDisp) sh4DecodeFn {
	return func(bb *sh4BlockBuilder, op uint16) {
		disp := decDisp12s(op)
		pc := bb.pc
		bb.emit(func(ctx *Sh4Ctx) { implDispAt(impl, ctx, disp, pc) })
	}
}

func execDisp8(impl implDisp) sh4ExecFn {
	return func(ctx *Sh4Ctx, op uint16) { impl(ctx, decDisp8s(op)) }
}
func decodeDisp8(impl implDisp) sh4DecodeFn {
	return func(bb *sh4BlockBuilder, op uint16) {
		disp := decDisp8s(op)
		pc := bb.pc
		bb.emit(func(ctx *Sh4Ctx) { implDispAt(impl, ctx, disp, pc) })
	}
}

// implDispAt lets a displacement-branch impl compute PC-relative targets
// from the instruction's own address, captured at decode time rather than
// re-derived from the live (possibly stale, post-delay-slot) PC0.
func implDispAt(impl implDisp, ctx *Sh4Ctx, disp int32, pc uint32) {
	savedPC := ctx.PC0
	ctx.PC0 = pc
	impl(ctx, disp)
	ctx.PC0 = savedPC
}

func braOp(ctx *Sh4Ctx, disp int32) {
	target := uint32(int32(ctx.PC0) + 4 + disp*2)
	ctx.decBranch = 2
	ctx.decBranchTarget = target
}

func bsrOp(ctx *Sh4Ctx, disp int32) {
	ctx.PR = ctx.PC0 + 4
	target := uint32(int32(ctx.PC0) + 4 + disp*2)
	ctx.decBranch = 2
	ctx.decBranchTarget = target
}

func btOp(ctx *Sh4Ctx, disp int32) {
	if ctx.SrT != 0 {
		ctx.decBranch = 1
		ctx.decBranchTarget = uint32(int32(ctx.PC0) + 4 + disp*2)
	} else {
		ctx.decBranch = 1
		ctx.decBranchTarget = ctx.PC0 + 2
	}
}

func bfOp(ctx *Sh4Ctx, disp int32) {
	if ctx.SrT == 0 {
		ctx.decBranch = 1
		ctx.decBranchTarget = uint32(int32(ctx.PC0) + 4 + disp*2)
	} else {
		ctx.decBranch = 1
		ctx.decBranchTarget = ctx.PC0 + 2
	}
}

func btsOp(ctx *Sh4Ctx, disp int32) {
	if ctx.SrT != 0 {
		ctx.decBranch = 1
		ctx.decBranchTarget = uint32(int32(ctx.PC0) + 4 + disp*2)
	} else {
		ctx.decBranch = 1
		ctx.decBranchTarget = ctx.PC0 + 4
	}
}

func bfsOp(ctx *Sh4Ctx, disp int32) {
	if ctx.SrT == 0 {
		ctx.decBranch = 1
		ctx.decBranchTarget = uint32(int32(ctx.PC0) + 4 + disp*2)
	} else {
		ctx.decBranch = 1
		ctx.decBranchTarget = ctx.PC0 + 4
	}
}

func jmpOp(ctx *Sh4Ctx, n int) {
	ctx.decBranch = 3
	ctx.decBranchTarget = ctx.R[n]
}

func jsrOp(ctx *Sh4Ctx, n int) {
	ctx.PR = ctx.PC0 + 4
	ctx.decBranch = 3
	ctx.decBranchTarget = ctx.R[n]
}

func rtsOp(ctx *Sh4Ctx) {
	ctx.decBranch = 3
	ctx.decBranchTarget = ctx.PR
}

func rteOp(ctx *Sh4Ctx) {
	target := sh4RTE(ctx)
	ctx.decBranch = 4
	ctx.decBranchTarget = target
}

func brafOp(ctx *Sh4Ctx, n int) {
	ctx.decBranch = 3
	ctx.decBranchTarget = ctx.PC0 + 4 + ctx.R[n]
}

func bsrfOp(ctx *Sh4Ctx, n int) {
	ctx.PR = ctx.PC0 + 4
	ctx.decBranch = 3
	ctx.decBranchTarget = ctx.PC0 + 4 + ctx.R[n]
}

func trapaOp(ctx *Sh4Ctx, imm uint32) {
	ctx.R[15] -= 4
	Write32(ctx.mmap, ctx.R[15], ctx.SR)
	ctx.R[15] -= 4
	Write32(ctx.mmap, ctx.R[15], ctx.PC0+2)
	sh4RaiseException(ctx, excTrapAlways)
	ctx.decBranch = 2
	ctx.decBranchTarget = ctx.PC0
}

func nopOp(ctx *Sh4Ctx) {}
