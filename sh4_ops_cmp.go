// sh4_ops_cmp.go - SH-4 compare/test instruction family

package dreamcast

func registerCmpOps() {
	registerOp("0011nnnnmmmm0000", "cmp/eq", execNM(cmpEq), decodeNM(cmpEq), disasmFixed("cmp/eq"))
	registerOp("10001000iiiiiiii", "cmp/eq #imm,R0", execImm8(cmpEqImmR0), decodeImm8(cmpEqImmR0), disasmFixed("cmp/eq #imm,R0"))
	registerOp("0011nnnnmmmm0010", "cmp/hs", execNM(cmpHs), decodeNM(cmpHs), disasmFixed("cmp/hs"))
	registerOp("0011nnnnmmmm0011", "cmp/ge", execNM(cmpGe), decodeNM(cmpGe), disasmFixed("cmp/ge"))
	registerOp("0011nnnnmmmm0110", "cmp/hi", execNM(cmpHi), decodeNM(cmpHi), disasmFixed("cmp/hi"))
	registerOp("0011nnnnmmmm0111", "cmp/gt", execNM(cmpGt), decodeNM(cmpGt), disasmFixed("cmp/gt"))
	registerOp("0100nnnn00010001", "cmp/pz", execN(cmpPz), decodeN(cmpPz), disasmFixed("cmp/pz"))
	registerOp("0100nnnn00010101", "cmp/pl", execN(cmpPl), decodeN(cmpPl), disasmFixed("cmp/pl"))
	registerOp("0010nnnnmmmm1100", "cmp/str", execNM(cmpStr), decodeNM(cmpStr), disasmFixed("cmp/str"))
	registerOp("0100nnnn00010000", "dt", execN(dtDecTest), decodeN(dtDecTest), disasmFixed("dt"))
	registerOp("0010nnnnmmmm1000", "tst", execNM(tstRR), decodeNM(tstRR), disasmFixed("tst"))
	registerOp("11001000iiiiiiii", "tst #imm,R0", execImm8(tstImmR0), decodeImm8(tstImmR0), disasmFixed("tst #imm,R0"))
}

func cmpEq(ctx *Sh4Ctx, n, m int)        { ctx.setT(ctx.R[n] == ctx.R[m]) }
func cmpEqImmR0(ctx *Sh4Ctx, imm uint32) { ctx.setT(ctx.R[0] == uint32(int32(int8(uint8(imm))))) }
func cmpHs(ctx *Sh4Ctx, n, m int)        { ctx.setT(ctx.R[n] >= ctx.R[m]) }
func cmpGe(ctx *Sh4Ctx, n, m int)        { ctx.setT(int32(ctx.R[n]) >= int32(ctx.R[m])) }
func cmpHi(ctx *Sh4Ctx, n, m int)        { ctx.setT(ctx.R[n] > ctx.R[m]) }
func cmpGt(ctx *Sh4Ctx, n, m int)        { ctx.setT(int32(ctx.R[n]) > int32(ctx.R[m])) }
func cmpPz(ctx *Sh4Ctx, n int)           { ctx.setT(int32(ctx.R[n]) >= 0) }
func cmpPl(ctx *Sh4Ctx, n int)           { ctx.setT(int32(ctx.R[n]) > 0) }

func cmpStr(ctx *Sh4Ctx, n, m int) {
	x := ctx.R[n] ^ ctx.R[m]
	eq := (x&0xFF == 0) || (x&0xFF00 == 0) || (x&0xFF0000 == 0) || (x&0xFF000000 == 0)
	ctx.setT(eq)
}

func dtDecTest(ctx *Sh4Ctx, n int) {
	ctx.R[n]--
	ctx.setT(ctx.R[n] == 0)
}

func tstRR(ctx *Sh4Ctx, n, m int)        { ctx.setT(ctx.R[n]&ctx.R[m] == 0) }
func tstImmR0(ctx *Sh4Ctx, imm uint32)   { ctx.setT(ctx.R[0]&imm == 0) }
