// sh4_ops_loadstore.go - SH-4 load/store instruction family

/*
Covers the mov.[bwl] addressing-mode matrix (register indirect, post-
increment, pre-decrement, indexed, GBR-displacement, PC-relative) plus
mova. Grounded on original_source/crates/sh4-core/src/backend_fns.rs's
per-addressing-mode functions.
*/

package dreamcast

func registerLoadStoreOps() {
	// register indirect
	registerOp("0010nnnnmmmm0000", "mov.b @-", execNM(movBStoreInd), decodeNM(movBStoreInd), disasmFixed("mov.b Rm,@Rn"))
	registerOp("0010nnnnmmmm0001", "mov.w @-", execNM(movWStoreInd), decodeNM(movWStoreInd), disasmFixed("mov.w Rm,@Rn"))
	registerOp("0010nnnnmmmm0010", "mov.l @-", execNM(movLStoreInd), decodeNM(movLStoreInd), disasmFixed("mov.l Rm,@Rn"))
	registerOp("0110nnnnmmmm0000", "mov.b @", execNM(movBLoadInd), decodeNM(movBLoadInd), disasmFixed("mov.b @Rm,Rn"))
	registerOp("0110nnnnmmmm0001", "mov.w @", execNM(movWLoadInd), decodeNM(movWLoadInd), disasmFixed("mov.w @Rm,Rn"))
	registerOp("0110nnnnmmmm0010", "mov.l @", execNM(movLLoadInd), decodeNM(movLLoadInd), disasmFixed("mov.l @Rm,Rn"))

	// pre-decrement store
	registerOp("0010nnnnmmmm0100", "mov.b @-Rn", execNM(movBStorePreDec), decodeNM(movBStorePreDec), disasmFixed("mov.b Rm,@-Rn"))
	registerOp("0010nnnnmmmm0101", "mov.w @-Rn", execNM(movWStorePreDec), decodeNM(movWStorePreDec), disasmFixed("mov.w Rm,@-Rn"))
	registerOp("0010nnnnmmmm0110", "mov.l @-Rn", execNM(movLStorePreDec), decodeNM(movLStorePreDec), disasmFixed("mov.l Rm,@-Rn"))

	// post-increment load
	registerOp("0110nnnnmmmm0100", "mov.b @Rm+", execNM(movBLoadPostInc), decodeNM(movBLoadPostInc), disasmFixed("mov.b @Rm+,Rn"))
	registerOp("0110nnnnmmmm0101", "mov.w @Rm+", execNM(movWLoadPostInc), decodeNM(movWLoadPostInc), disasmFixed("mov.w @Rm+,Rn"))
	registerOp("0110nnnnmmmm0110", "mov.l @Rm+", execNM(movLLoadPostInc), decodeNM(movLLoadPostInc), disasmFixed("mov.l @Rm+,Rn"))

	// indexed
	registerOp("0000nnnnmmmm0100", "mov.b @(R0,Rn)", execNM(movBStoreIndexed), decodeNM(movBStoreIndexed), disasmFixed("mov.b Rm,@(R0,Rn)"))
	registerOp("0000nnnnmmmm0101", "mov.w @(R0,Rn)", execNM(movWStoreIndexed), decodeNM(movWStoreIndexed), disasmFixed("mov.w Rm,@(R0,Rn)"))
	registerOp("0000nnnnmmmm0110", "mov.l @(R0,Rn)", execNM(movLStoreIndexed), decodeNM(movLStoreIndexed), disasmFixed("mov.l Rm,@(R0,Rn)"))
	registerOp("0000nnnnmmmm1100", "mov.b @(R0,Rm)", execNM(movBLoadIndexed), decodeNM(movBLoadIndexed), disasmFixed("mov.b @(R0,Rm),Rn"))
	registerOp("0000nnnnmmmm1101", "mov.w @(R0,Rm)", execNM(movWLoadIndexed), decodeNM(movWLoadIndexed), disasmFixed("mov.w @(R0,Rm),Rn"))
	registerOp("0000nnnnmmmm1110", "mov.l @(R0,Rm)", execNM(movLLoadIndexed), decodeNM(movLLoadIndexed), disasmFixed("mov.l @(R0,Rm),Rn"))

	// GBR-displacement (R0 only)
	registerOp("11000000dddddddd", "mov.b @(d,GBR)", execImm8(movBStoreGBR), decodeImm8(movBStoreGBR), disasmFixed("mov.b R0,@(disp,GBR)"))
	registerOp("11000001dddddddd", "mov.w @(d,GBR)", execImm8(movWStoreGBR), decodeImm8(movWStoreGBR), disasmFixed("mov.w R0,@(disp,GBR)"))
	registerOp("11000010dddddddd", "mov.l @(d,GBR)", execImm8(movLStoreGBR), decodeImm8(movLStoreGBR), disasmFixed("mov.l R0,@(disp,GBR)"))
	registerOp("11000100dddddddd", "mov.b @(d,GBR) ld", execImm8(movBLoadGBR), decodeImm8(movBLoadGBR), disasmFixed("mov.b @(disp,GBR),R0"))
	registerOp("11000101dddddddd", "mov.w @(d,GBR) ld", execImm8(movWLoadGBR), decodeImm8(movWLoadGBR), disasmFixed("mov.w @(disp,GBR),R0"))
	registerOp("11000110dddddddd", "mov.l @(d,GBR) ld", execImm8(movLLoadGBR), decodeImm8(movLLoadGBR), disasmFixed("mov.l @(disp,GBR),R0"))

	// Rn-displacement
	registerOp("10000000nnnndddd", "mov.b @(d,Rn) st", execNImm4(movBStoreDispR0), decodeNImm4(movBStoreDispR0), disasmFixed("mov.b R0,@(disp,Rn)"))
	registerOp("10000001nnnndddd", "mov.w @(d,Rn) st", execNImm4(movWStoreDispR0), decodeNImm4(movWStoreDispR0), disasmFixed("mov.w R0,@(disp,Rn)"))
	registerOp("0001nnnnmmmmdddd", "mov.l @(d,Rn) st", execNMDisp4(movLStoreDispRn), decodeNMDisp4(movLStoreDispRn), disasmFixed("mov.l Rm,@(disp,Rn)"))
	registerOp("10000100mmmmdddd", "mov.b @(d,Rm) ld", execNImm4(movBLoadDispR0), decodeNImm4(movBLoadDispR0), disasmFixed("mov.b @(disp,Rm),R0"))
	registerOp("10000101mmmmdddd", "mov.w @(d,Rm) ld", execNImm4(movWLoadDispR0), decodeNImm4(movWLoadDispR0), disasmFixed("mov.w @(disp,Rm),R0"))
	registerOp("0101nnnnmmmmdddd", "mov.l @(d,Rm) ld", execNMDisp4(movLLoadDispRn), decodeNMDisp4(movLLoadDispRn), disasmFixed("mov.l @(disp,Rm),Rn"))

	// PC-relative
	registerOp("1001nnnndddddddd", "mov.w @(d,PC)", execNImm8(movWLoadPCRel), decodeNImm8PC(movWLoadPCRel), disasmFixed("mov.w @(disp,PC),Rn"))
	registerOp("1101nnnndddddddd", "mov.l @(d,PC)", execNImm8(movLLoadPCRel), decodeNImm8PC(movLLoadPCRel), disasmFixed("mov.l @(disp,PC),Rn"))
	registerOp("0000nnnn11000011", "mova", execN(movaOp), decodeNPC(movaOp), disasmFixed("mova @(disp,PC),R0"))
}

// --- arity helpers specific to this family -----------------------------

type implNMDisp func(ctx *Sh4Ctx, n, m int, disp uint32)

func execNMDisp4(impl implNMDisp) sh4ExecFn {
	return func(ctx *Sh4Ctx, op uint16) { impl(ctx, decN(op), decM(op), decDisp4(op)) }
}
func decodeNMDisp4(impl implNMDisp) sh4DecodeFn {
	return func(bb *sh4BlockBuilder, op uint16) {
		n, m, disp := decN(op), decM(op), decDisp4(op)
		bb.emit(func(ctx *Sh4Ctx) { impl(ctx, n, m, disp) })
	}
}

// decodeNImm8PC captures the instruction's own PC (for PC-relative loads,
// which need the fetch address of the mov.w/mov.l itself, not the live PC0
// which may have advanced past a delay slot).
func decodeNImm8PC(impl implNImm) sh4DecodeFn {
	return func(bb *sh4BlockBuilder, op uint16) {
		n, imm := decN(op), decImm8(op)
		pc := bb.pc
		bb.emit(func(ctx *Sh4Ctx) { implDispAtNImm(impl, ctx, n, imm, pc) })
	}
}

func implDispAtNImm(impl implNImm, ctx *Sh4Ctx, n int, imm uint32, pc uint32) {
	saved := ctx.PC0
	ctx.PC0 = pc
	impl(ctx, n, imm)
	ctx.PC0 = saved
}

func decodeNPC(impl implN) sh4DecodeFn {
	return func(bb *sh4BlockBuilder, op uint16) {
		n := decN(op)
		pc := bb.pc
		bb.emit(func(ctx *Sh4Ctx) {
			saved := ctx.PC0
			ctx.PC0 = pc
			impl(ctx, n)
			ctx.PC0 = saved
		})
	}
}

// --- register-indirect ---------------------------------------------------

func movBStoreInd(ctx *Sh4Ctx, n, m int) { Write8(ctx.mmap, ctx.R[n], uint8(ctx.R[m])) }
func movWStoreInd(ctx *Sh4Ctx, n, m int) { Write16(ctx.mmap, ctx.R[n], uint16(ctx.R[m])) }
func movLStoreInd(ctx *Sh4Ctx, n, m int) { Write32(ctx.mmap, ctx.R[n], ctx.R[m]) }
func movBLoadInd(ctx *Sh4Ctx, n, m int)  { ctx.R[n] = uint32(int32(int8(Read8(ctx.mmap, ctx.R[m])))) }
func movWLoadInd(ctx *Sh4Ctx, n, m int)  { ctx.R[n] = uint32(int32(int16(Read16(ctx.mmap, ctx.R[m])))) }
func movLLoadInd(ctx *Sh4Ctx, n, m int)  { ctx.R[n] = Read32(ctx.mmap, ctx.R[m]) }

// --- pre-decrement store ---------------------------------------------------

func movBStorePreDec(ctx *Sh4Ctx, n, m int) {
	addr := ctx.R[n] - 1
	Write8(ctx.mmap, addr, uint8(ctx.R[m]))
	ctx.R[n] = addr
}
func movWStorePreDec(ctx *Sh4Ctx, n, m int) {
	addr := ctx.R[n] - 2
	Write16(ctx.mmap, addr, uint16(ctx.R[m]))
	ctx.R[n] = addr
}
func movLStorePreDec(ctx *Sh4Ctx, n, m int) {
	addr := ctx.R[n] - 4
	Write32(ctx.mmap, addr, ctx.R[m])
	ctx.R[n] = addr
}

// --- post-increment load ---------------------------------------------------

func movBLoadPostInc(ctx *Sh4Ctx, n, m int) {
	v := Read8(ctx.mmap, ctx.R[m])
	if n != m {
		ctx.R[m] += 1
	}
	ctx.R[n] = uint32(int32(int8(v)))
}
func movWLoadPostInc(ctx *Sh4Ctx, n, m int) {
	v := Read16(ctx.mmap, ctx.R[m])
	if n != m {
		ctx.R[m] += 2
	}
	ctx.R[n] = uint32(int32(int16(v)))
}
func movLLoadPostInc(ctx *Sh4Ctx, n, m int) {
	v := Read32(ctx.mmap, ctx.R[m])
	if n != m {
		ctx.R[m] += 4
	}
	ctx.R[n] = v
}

// --- indexed (R0 + Rn/Rm) ---------------------------------------------------

func movBStoreIndexed(ctx *Sh4Ctx, n, m int) { Write8(ctx.mmap, ctx.R[n]+ctx.R[0], uint8(ctx.R[m])) }
func movWStoreIndexed(ctx *Sh4Ctx, n, m int) { Write16(ctx.mmap, ctx.R[n]+ctx.R[0], uint16(ctx.R[m])) }
func movLStoreIndexed(ctx *Sh4Ctx, n, m int) { Write32(ctx.mmap, ctx.R[n]+ctx.R[0], ctx.R[m]) }
func movBLoadIndexed(ctx *Sh4Ctx, n, m int) {
	ctx.R[n] = uint32(int32(int8(Read8(ctx.mmap, ctx.R[m]+ctx.R[0]))))
}
func movWLoadIndexed(ctx *Sh4Ctx, n, m int) {
	ctx.R[n] = uint32(int32(int16(Read16(ctx.mmap, ctx.R[m]+ctx.R[0]))))
}
func movLLoadIndexed(ctx *Sh4Ctx, n, m int) { ctx.R[n] = Read32(ctx.mmap, ctx.R[m]+ctx.R[0]) }

// --- GBR-displacement (R0 only) ---------------------------------------------

func movBStoreGBR(ctx *Sh4Ctx, imm uint32) { Write8(ctx.mmap, ctx.GBR+imm, uint8(ctx.R[0])) }
func movWStoreGBR(ctx *Sh4Ctx, imm uint32) { Write16(ctx.mmap, ctx.GBR+imm*2, uint16(ctx.R[0])) }
func movLStoreGBR(ctx *Sh4Ctx, imm uint32) { Write32(ctx.mmap, ctx.GBR+imm*4, ctx.R[0]) }
func movBLoadGBR(ctx *Sh4Ctx, imm uint32) {
	ctx.R[0] = uint32(int32(int8(Read8(ctx.mmap, ctx.GBR+imm))))
}
func movWLoadGBR(ctx *Sh4Ctx, imm uint32) {
	ctx.R[0] = uint32(int32(int16(Read16(ctx.mmap, ctx.GBR+imm*2))))
}
func movLLoadGBR(ctx *Sh4Ctx, imm uint32) { ctx.R[0] = Read32(ctx.mmap, ctx.GBR+imm*4) }

// --- Rn/Rm-displacement ---------------------------------------------------

func movBStoreDispR0(ctx *Sh4Ctx, n int, disp uint32) { Write8(ctx.mmap, ctx.R[n]+disp, uint8(ctx.R[0])) }
func movWStoreDispR0(ctx *Sh4Ctx, n int, disp uint32) {
	Write16(ctx.mmap, ctx.R[n]+disp*2, uint16(ctx.R[0]))
}
func movLStoreDispRn(ctx *Sh4Ctx, n, m int, disp uint32) { Write32(ctx.mmap, ctx.R[n]+disp*4, ctx.R[m]) }
func movBLoadDispR0(ctx *Sh4Ctx, m int, disp uint32) {
	ctx.R[0] = uint32(int32(int8(Read8(ctx.mmap, ctx.R[m]+disp))))
}
func movWLoadDispR0(ctx *Sh4Ctx, m int, disp uint32) {
	ctx.R[0] = uint32(int32(int16(Read16(ctx.mmap, ctx.R[m]+disp*2))))
}
func movLLoadDispRn(ctx *Sh4Ctx, n, m int, disp uint32) { ctx.R[n] = Read32(ctx.mmap, ctx.R[m]+disp*4) }

// --- PC-relative ---------------------------------------------------

func movWLoadPCRel(ctx *Sh4Ctx, n int, imm uint32) {
	addr := (ctx.PC0 &^ 1) + 4 + imm*2
	ctx.R[n] = uint32(int32(int16(Read16(ctx.mmap, addr))))
}
func movLLoadPCRel(ctx *Sh4Ctx, n int, imm uint32) {
	addr := (ctx.PC0 &^ 3) + 4 + imm*4
	ctx.R[n] = Read32(ctx.mmap, addr)
}
func movaOp(ctx *Sh4Ctx, n int) {
	op := Read16(ctx.mmap, ctx.PC0)
	imm := decImm8(op)
	addr := (ctx.PC0 &^ 3) + 4 + imm*4
	ctx.R[0] = addr
}
