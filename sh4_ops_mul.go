// sh4_ops_mul.go - SH-4 multiply and MAC instruction family

package dreamcast

func registerMulOps() {
	registerOp("0000nnnnmmmm0111", "mul.l", execNM(mulL), decodeNM(mulL), disasmFixed("mul.l"))
	registerOp("0010nnnnmmmm1111", "muls.w", execNM(mulSW), decodeNM(mulSW), disasmFixed("muls.w"))
	registerOp("0010nnnnmmmm1110", "mulu.w", execNM(mulUW), decodeNM(mulUW), disasmFixed("mulu.w"))
	registerOp("0000nnnnmmmm1111", "mac.l", execNM(macL), decodeNM(macL), disasmFixed("mac.l"))
	registerOp("0100nnnnmmmm1111", "mac.w", execNM(macW), decodeNM(macW), disasmFixed("mac.w"))
	registerOp("0000000000011000", "clrmac", execNone(clrmac), decodeNone(clrmac), disasmFixed("clrmac"))
	registerOp("0000000000111000", "clrs", execNone(clrs), decodeNone(clrs), disasmFixed("clrs"))
	registerOp("0000000001001000", "sets", execNone(setsOp), decodeNone(setsOp), disasmFixed("sets"))
	registerOp("0000000000001000", "clrt", execNone(clrt), decodeNone(clrt), disasmFixed("clrt"))
	registerOp("0000000000011001", "sett", execNone(sett), decodeNone(sett), disasmFixed("sett"))
	registerOp("0000nnnn00101001", "movt", execN(movt), decodeN(movt), disasmFixed("movt"))
}

func mulL(ctx *Sh4Ctx, n, m int) { ctx.MACL = ctx.R[n] * ctx.R[m] }

func mulSW(ctx *Sh4Ctx, n, m int) {
	ctx.MACL = uint32(int32(int16(ctx.R[n])) * int32(int16(ctx.R[m])))
}

func mulUW(ctx *Sh4Ctx, n, m int) {
	ctx.MACL = uint32(uint16(ctx.R[n])) * uint32(uint16(ctx.R[m]))
}

func macL(ctx *Sh4Ctx, n, m int) {
	a := Read32(ctx.mmap, ctx.R[n])
	b := Read32(ctx.mmap, ctx.R[m])
	ctx.R[n] += 4
	ctx.R[m] += 4
	prod := int64(int32(a)) * int64(int32(b))
	acc := int64(uint64(ctx.MACH)<<32|uint64(ctx.MACL)) + prod
	if ctx.SR&(1<<srS) != 0 {
		const limit = int64(1) << 47
		if acc > limit {
			acc = limit
		} else if acc < -limit {
			acc = -limit
		}
	}
	ctx.MACH = uint32(uint64(acc) >> 32)
	ctx.MACL = uint32(uint64(acc))
}

func macW(ctx *Sh4Ctx, n, m int) {
	a := Read16(ctx.mmap, ctx.R[n])
	b := Read16(ctx.mmap, ctx.R[m])
	ctx.R[n] += 2
	ctx.R[m] += 2
	prod := int32(int16(a)) * int32(int16(b))
	if ctx.SR&(1<<srS) != 0 {
		sum := int64(int32(ctx.MACL)) + int64(prod)
		const limit = int64(0x7FFFFFFF)
		const lowerLimit = -int64(0x80000000)
		if sum > limit {
			sum = limit
			ctx.MACH |= 1
		} else if sum < lowerLimit {
			sum = lowerLimit
			ctx.MACH |= 1
		}
		ctx.MACL = uint32(sum)
	} else {
		acc := int64(uint64(ctx.MACH)<<32|uint64(ctx.MACL)) + int64(prod)
		ctx.MACH = uint32(uint64(acc) >> 32)
		ctx.MACL = uint32(uint64(acc))
	}
}

func clrmac(ctx *Sh4Ctx) { ctx.MACH = 0; ctx.MACL = 0 }
func clrs(ctx *Sh4Ctx)   { ctx.SR &^= 1 << srS }
func setsOp(ctx *Sh4Ctx) { ctx.SR |= 1 << srS }
func clrt(ctx *Sh4Ctx)  { ctx.setT(false) }
func sett(ctx *Sh4Ctx)  { ctx.setT(true) }

func movt(ctx *Sh4Ctx, n int) { ctx.R[n] = ctx.SrT }
