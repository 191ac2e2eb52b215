// sh4_ops_fpu.go - SH-4 floating point unit instruction family

/*
Single-precision by default; the PR bit in FPSCR selects the
double-precision pairing for fadd/fsub/fmul/fdiv/fcmp/fmov on even
register pairs. frchg/fschg are handled specially: the recompiler
refuses to put them in a block (sh4_recompiler.go), so their impl here
only needs to serve the interpreter's single-step path and therefore
panics if ever reached through the block path, matching the reference.
*/

package dreamcast

import "math"

func registerFpuOps() {
	registerOp("1111nnnnmmmm0000", "fadd", execNM(fpuFadd), decodeNM(fpuFadd), disasmFixed("fadd"))
	registerOp("1111nnnnmmmm0001", "fsub", execNM(fpuFsub), decodeNM(fpuFsub), disasmFixed("fsub"))
	registerOp("1111nnnnmmmm0010", "fmul", execNM(fpuFmul), decodeNM(fpuFmul), disasmFixed("fmul"))
	registerOp("1111nnnnmmmm0011", "fdiv", execNM(fpuFdiv), decodeNM(fpuFdiv), disasmFixed("fdiv"))
	registerOp("1111nnnnmmmm0100", "fcmp/eq", execNM(fpuFcmpEq), decodeNM(fpuFcmpEq), disasmFixed("fcmp/eq"))
	registerOp("1111nnnnmmmm0101", "fcmp/gt", execNM(fpuFcmpGt), decodeNM(fpuFcmpGt), disasmFixed("fcmp/gt"))
	registerOp("1111nnnnmmmm1100", "fmov", execNM(fpuFmov), decodeNM(fpuFmov), disasmFixed("fmov"))
	registerOp("1111nnnn01011101", "fabs", execN(fpuFabs), decodeN(fpuFabs), disasmFixed("fabs"))
	registerOp("1111nnnn01001101", "fneg", execN(fpuFneg), decodeN(fpuFneg), disasmFixed("fneg"))
	registerOp("1111nnnn01101101", "fsqrt", execN(fpuFsqrt), decodeN(fpuFsqrt), disasmFixed("fsqrt"))
	registerOp("1111nnnn00101101", "float", execN(fpuFloat), decodeN(fpuFloat), disasmFixed("float"))
	registerOp("1111nnnn00111101", "ftrc", execN(fpuFtrc), decodeN(fpuFtrc), disasmFixed("ftrc"))
	registerOp("1111nnnn10001101", "fldi0", execN(fpuFldi0), decodeN(fpuFldi0), disasmFixed("fldi0"))
	registerOp("1111nnnn10011101", "fldi1", execN(fpuFldi1), decodeN(fpuFldi1), disasmFixed("fldi1"))
	registerOp("1111nnnn00011101", "flds", execN(fpuFlds), decodeN(fpuFlds), disasmFixed("flds"))
	registerOp("1111nnnn00001101", "fsts", execN(fpuFsts), decodeN(fpuFsts), disasmFixed("fsts"))
	registerOp("1111nnnnmmmm1000", "fmov.s @", execNM(fpuFmovLoadInd), decodeNM(fpuFmovLoadInd), disasmFixed("fmov.s @Rm,FRn"))
	registerOp("1111nnnnmmmm1010", "fmov.s @-", execNM(fpuFmovStoreInd), decodeNM(fpuFmovStoreInd), disasmFixed("fmov.s FRm,@Rn"))
	registerOp("1111nnnnmmmm1001", "fmov.s @Rm+", execNM(fpuFmovLoadPostInc), decodeNM(fpuFmovLoadPostInc), disasmFixed("fmov.s @Rm+,FRn"))
	registerOp("1111nnnnmmmm1011", "fmov.s @-Rn", execNM(fpuFmovStorePreDec), decodeNM(fpuFmovStorePreDec), disasmFixed("fmov.s FRm,@-Rn"))
	registerOp("0100nnnn01101011", "lds.l @Rn+,FPSCR", execN(fpuLdsLFPSCR), decodeN(fpuLdsLFPSCR), disasmFixed("lds.l @Rn+,FPSCR"))
	registerOp("0100nnnn01011011", "lds.l @Rn+,FPUL", execN(fpuLdsLFPUL), decodeN(fpuLdsLFPUL), disasmFixed("lds.l @Rn+,FPUL"))
	registerOp("1111nnnnmmmm1110", "fmac", execNM(fpuFmac), decodeNM(fpuFmac), disasmFixed("fmac"))
	registerOp("1111nnn001111101", "fsrra", execN(fpuFsrra), decodeN(fpuFsrra), disasmFixed("fsrra"))
	registerOp("1111nnn011111101", "fsca", execN(fpuFsca), decodeN(fpuFsca), disasmFixed("fsca"))
	registerOp("1111nnmm11101101", "fipr", execNM(fpuFipr), decodeNM(fpuFipr), disasmFixed("fipr"))
	registerOp("1111nn0111111101", "ftrv", execN(fpuFtrv), decodeN(fpuFtrv), disasmFixed("ftrv"))
	registerOp("1111101111111101", "frchg", execNone(fpuFrchg), nil, disasmFixed("frchg"))
	registerOp("1111001111111101", "fschg", execNone(fpuFschg), nil, disasmFixed("fschg"))
}

func fpuIsDouble(ctx *Sh4Ctx) bool { return ctx.fpscrBit(fpscrPR) }

func fpuFadd(ctx *Sh4Ctx, n, m int) {
	if fpuIsDouble(ctx) {
		ctx.FR.SetF64(n/2, ctx.FR.F64(n/2)+ctx.FR.F64(m/2))
	} else {
		ctx.FR.F[n] += ctx.FR.F[m]
	}
}
func fpuFsub(ctx *Sh4Ctx, n, m int) {
	if fpuIsDouble(ctx) {
		ctx.FR.SetF64(n/2, ctx.FR.F64(n/2)-ctx.FR.F64(m/2))
	} else {
		ctx.FR.F[n] -= ctx.FR.F[m]
	}
}
func fpuFmul(ctx *Sh4Ctx, n, m int) {
	if fpuIsDouble(ctx) {
		ctx.FR.SetF64(n/2, ctx.FR.F64(n/2)*ctx.FR.F64(m/2))
	} else {
		ctx.FR.F[n] *= ctx.FR.F[m]
	}
}
func fpuFdiv(ctx *Sh4Ctx, n, m int) {
	if fpuIsDouble(ctx) {
		ctx.FR.SetF64(n/2, ctx.FR.F64(n/2)/ctx.FR.F64(m/2))
	} else {
		ctx.FR.F[n] /= ctx.FR.F[m]
	}
}
func fpuFcmpEq(ctx *Sh4Ctx, n, m int) {
	if fpuIsDouble(ctx) {
		ctx.setT(ctx.FR.F64(n/2) == ctx.FR.F64(m/2))
	} else {
		ctx.setT(ctx.FR.F[n] == ctx.FR.F[m])
	}
}
func fpuFcmpGt(ctx *Sh4Ctx, n, m int) {
	if fpuIsDouble(ctx) {
		ctx.setT(ctx.FR.F64(n/2) > ctx.FR.F64(m/2))
	} else {
		ctx.setT(ctx.FR.F[n] > ctx.FR.F[m])
	}
}
func fpuFmov(ctx *Sh4Ctx, n, m int) {
	if ctx.fpscrBit(fpscrSZ) {
		ctx.FR.SetU32(n, ctx.FR.U32(m))
		ctx.FR.SetU32(n^1, ctx.FR.U32(m^1))
	} else {
		ctx.FR.F[n] = ctx.FR.F[m]
	}
}
func fpuFabs(ctx *Sh4Ctx, n int) {
	if fpuIsDouble(ctx) {
		ctx.FR.SetF64(n/2, math.Abs(ctx.FR.F64(n/2)))
	} else {
		ctx.FR.SetU32(n, ctx.FR.U32(n)&0x7FFFFFFF)
	}
}
func fpuFneg(ctx *Sh4Ctx, n int) {
	if fpuIsDouble(ctx) {
		ctx.FR.SetF64(n/2, -ctx.FR.F64(n/2))
	} else {
		ctx.FR.SetU32(n, ctx.FR.U32(n)^0x80000000)
	}
}
func fpuFsqrt(ctx *Sh4Ctx, n int) {
	if fpuIsDouble(ctx) {
		ctx.FR.SetF64(n/2, math.Sqrt(ctx.FR.F64(n/2)))
	} else {
		ctx.FR.F[n] = float32(math.Sqrt(float64(ctx.FR.F[n])))
	}
}
func fpuFloat(ctx *Sh4Ctx, n int) {
	if fpuIsDouble(ctx) {
		ctx.FR.SetF64(n/2, float64(int32(ctx.FPUL)))
	} else {
		ctx.FR.F[n] = float32(int32(ctx.FPUL))
	}
}
func fpuFtrc(ctx *Sh4Ctx, n int) {
	if fpuIsDouble(ctx) {
		ctx.FPUL = sh4ClampToInt32(ctx.FR.F64(n / 2))
	} else {
		ctx.FPUL = sh4ClampToInt32(float64(ctx.FR.F[n]))
	}
}

func sh4ClampToInt32(v float64) uint32 {
	const maxI = 2147483647.0
	const minI = -2147483648.0
	if v > maxI {
		return uint32(int32(maxI))
	}
	if v < minI {
		return 0x80000000
	}
	return uint32(int32(v))
}

func fpuFldi0(ctx *Sh4Ctx, n int) { ctx.FR.F[n] = 0 }
func fpuFldi1(ctx *Sh4Ctx, n int) { ctx.FR.F[n] = 1 }
func fpuFlds(ctx *Sh4Ctx, n int)  { ctx.FPUL = ctx.FR.U32(n) }
func fpuFsts(ctx *Sh4Ctx, n int)  { ctx.FR.SetU32(n, ctx.FPUL) }

func fpuFmovLoadInd(ctx *Sh4Ctx, n, m int) {
	if ctx.fpscrBit(fpscrSZ) {
		ctx.FR.SetU32(n, Read32(ctx.mmap, ctx.R[m]))
		ctx.FR.SetU32(n^1, Read32(ctx.mmap, ctx.R[m]+4))
	} else {
		ctx.FR.SetU32(n, Read32(ctx.mmap, ctx.R[m]))
	}
}
func fpuFmovStoreInd(ctx *Sh4Ctx, n, m int) {
	if ctx.fpscrBit(fpscrSZ) {
		Write32(ctx.mmap, ctx.R[n], ctx.FR.U32(m))
		Write32(ctx.mmap, ctx.R[n]+4, ctx.FR.U32(m^1))
	} else {
		Write32(ctx.mmap, ctx.R[n], ctx.FR.U32(m))
	}
}
func fpuFmovLoadPostInc(ctx *Sh4Ctx, n, m int) {
	if ctx.fpscrBit(fpscrSZ) {
		ctx.FR.SetU32(n, Read32(ctx.mmap, ctx.R[m]))
		ctx.FR.SetU32(n^1, Read32(ctx.mmap, ctx.R[m]+4))
		ctx.R[m] += 8
	} else {
		ctx.FR.SetU32(n, Read32(ctx.mmap, ctx.R[m]))
		ctx.R[m] += 4
	}
}
func fpuFmovStorePreDec(ctx *Sh4Ctx, n, m int) {
	if ctx.fpscrBit(fpscrSZ) {
		addr := ctx.R[n] - 8
		Write32(ctx.mmap, addr, ctx.FR.U32(m))
		Write32(ctx.mmap, addr+4, ctx.FR.U32(m^1))
		ctx.R[n] = addr
	} else {
		addr := ctx.R[n] - 4
		Write32(ctx.mmap, addr, ctx.FR.U32(m))
		ctx.R[n] = addr
	}
}

func fpuLdsLFPSCR(ctx *Sh4Ctx, n int) {
	ctx.FPSCR = Read32(ctx.mmap, ctx.R[n]) & 0x003FFFFF
	ctx.R[n] += 4
}
func fpuLdsLFPUL(ctx *Sh4Ctx, n int) {
	ctx.FPUL = Read32(ctx.mmap, ctx.R[n])
	ctx.R[n] += 4
}

func fpuFmac(ctx *Sh4Ctx, n, m int) {
	ctx.FR.F[n] += ctx.FR.F[0] * ctx.FR.F[m]
}

func fpuFsrra(ctx *Sh4Ctx, n int) {
	ctx.FR.F[n] = float32(1.0 / math.Sqrt(float64(ctx.FR.F[n])))
}

func fpuFsca(ctx *Sh4Ctx, n int) {
	base := n &^ 1
	angle := float64(ctx.FPUL) * (2 * math.Pi / 65536.0)
	ctx.FR.F[base] = float32(math.Sin(angle))
	ctx.FR.F[base+1] = float32(math.Cos(angle))
}

func fpuFipr(ctx *Sh4Ctx, n, m int) {
	nb := n &^ 3
	mb := m &^ 3
	var sum float32
	for i := 0; i < 4; i++ {
		sum += ctx.FR.F[nb+i] * ctx.FR.F[mb+i]
	}
	ctx.FR.F[nb+3] = sum
}

func fpuFtrv(ctx *Sh4Ctx, n int) {
	nb := n &^ 3
	var in [4]float32
	copy(in[:], ctx.FR.F[nb:nb+4])
	for row := 0; row < 4; row++ {
		var sum float32
		for col := 0; col < 4; col++ {
			sum += ctx.FR.F[col*4+row] * in[col]
		}
		ctx.FR.F[nb+row] = sum
	}
}

// fpuFrchg/fpuFschg are reachable only from the interpreter's single-step
// path, never from a compiled block (sh4_recompiler.go refuses to emit a
// record for them and terminates the block first).
func fpuFrchg(ctx *Sh4Ctx) { ctx.FPSCR ^= 1 << fpscrFR; ctx.swapFPBanks() }
func fpuFschg(ctx *Sh4Ctx) { ctx.FPSCR ^= 1 << fpscrSZ }
