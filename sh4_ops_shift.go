// sh4_ops_shift.go - SH-4 shift/rotate instruction family

package dreamcast

func registerShiftOps() {
	registerOp("0100nnnn00000000", "shll", execN(shShll), decodeN(shShll), disasmFixed("shll"))
	registerOp("0100nnnn00000001", "shlr", execN(shShlr), decodeN(shShlr), disasmFixed("shlr"))
	registerOp("0100nnnn00001000", "shll2", execN(shShll2), decodeN(shShll2), disasmFixed("shll2"))
	registerOp("0100nnnn00001001", "shlr2", execN(shShlr2), decodeN(shShlr2), disasmFixed("shlr2"))
	registerOp("0100nnnn00011000", "shll8", execN(shShll8), decodeN(shShll8), disasmFixed("shll8"))
	registerOp("0100nnnn00011001", "shlr8", execN(shShlr8), decodeN(shShlr8), disasmFixed("shlr8"))
	registerOp("0100nnnn00101000", "shll16", execN(shShll16), decodeN(shShll16), disasmFixed("shll16"))
	registerOp("0100nnnn00101001", "shlr16", execN(shShlr16), decodeN(shShlr16), disasmFixed("shlr16"))
	registerOp("0100nnnn00100000", "shal", execN(shShal), decodeN(shShal), disasmFixed("shal"))
	registerOp("0100nnnn00100001", "shar", execN(shShar), decodeN(shShar), disasmFixed("shar"))
	registerOp("0100nnnn00000100", "rotl", execN(shRotl), decodeN(shRotl), disasmFixed("rotl"))
	registerOp("0100nnnn00000101", "rotr", execN(shRotr), decodeN(shRotr), disasmFixed("rotr"))
	registerOp("0100nnnn00100100", "rotcl", execN(shRotcl), decodeN(shRotcl), disasmFixed("rotcl"))
	registerOp("0100nnnn00100101", "rotcr", execN(shRotcr), decodeN(shRotcr), disasmFixed("rotcr"))
	registerOp("0100nnnnmmmm1100", "shad", execNM(shShad), decodeNM(shShad), disasmFixed("shad"))
	registerOp("0100nnnnmmmm1101", "shld", execNM(shShld), decodeNM(shShld), disasmFixed("shld"))
}

func shShll(ctx *Sh4Ctx, n int) {
	ctx.setT(ctx.R[n]&0x80000000 != 0)
	ctx.R[n] <<= 1
}

func shShlr(ctx *Sh4Ctx, n int) {
	ctx.setT(ctx.R[n]&1 != 0)
	ctx.R[n] >>= 1
}

func shShll2(ctx *Sh4Ctx, n int)  { ctx.R[n] <<= 2 }
func shShlr2(ctx *Sh4Ctx, n int)  { ctx.R[n] >>= 2 }
func shShll8(ctx *Sh4Ctx, n int)  { ctx.R[n] <<= 8 }
func shShlr8(ctx *Sh4Ctx, n int)  { ctx.R[n] >>= 8 }
func shShll16(ctx *Sh4Ctx, n int) { ctx.R[n] <<= 16 }
func shShlr16(ctx *Sh4Ctx, n int) { ctx.R[n] >>= 16 }

func shShal(ctx *Sh4Ctx, n int) {
	ctx.setT(ctx.R[n]&0x80000000 != 0)
	ctx.R[n] = uint32(int32(ctx.R[n]) << 1)
}

func shShar(ctx *Sh4Ctx, n int) {
	ctx.setT(ctx.R[n]&1 != 0)
	ctx.R[n] = uint32(int32(ctx.R[n]) >> 1)
}

func shRotl(ctx *Sh4Ctx, n int) {
	carry := ctx.R[n]&0x80000000 != 0
	ctx.R[n] = ctx.R[n]<<1 | ctx.R[n]>>31
	ctx.setT(carry)
}

func shRotr(ctx *Sh4Ctx, n int) {
	carry := ctx.R[n]&1 != 0
	ctx.R[n] = ctx.R[n]>>1 | ctx.R[n]<<31
	ctx.setT(carry)
}

func shRotcl(ctx *Sh4Ctx, n int) {
	carryIn := ctx.SrT
	carryOut := ctx.R[n]&0x80000000 != 0
	ctx.R[n] = ctx.R[n]<<1 | carryIn
	ctx.setT(carryOut)
}

func shRotcr(ctx *Sh4Ctx, n int) {
	carryIn := ctx.SrT
	carryOut := ctx.R[n]&1 != 0
	ctx.R[n] = ctx.R[n]>>1 | carryIn<<31
	ctx.setT(carryOut)
}

func shShad(ctx *Sh4Ctx, n, m int) {
	shift := int32(ctx.R[m])
	v := int32(ctx.R[n])
	switch {
	case shift >= 0:
		if shift >= 32 {
			ctx.R[n] = 0
		} else {
			ctx.R[n] = uint32(v << uint(shift))
		}
	case shift <= -32:
		if v < 0 {
			ctx.R[n] = 0xFFFFFFFF
		} else {
			ctx.R[n] = 0
		}
	default:
		ctx.R[n] = uint32(v >> uint(-shift))
	}
}

func shShld(ctx *Sh4Ctx, n, m int) {
	shift := int32(ctx.R[m])
	v := ctx.R[n]
	switch {
	case shift >= 0:
		if shift >= 32 {
			ctx.R[n] = 0
		} else {
			ctx.R[n] = v << uint(shift)
		}
	case shift <= -32:
		ctx.R[n] = 0
	default:
		ctx.R[n] = v >> uint(-shift)
	}
}
