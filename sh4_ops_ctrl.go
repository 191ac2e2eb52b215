// sh4_ops_ctrl.go - SH-4 control-register transfer instruction family (LDC/STC/LDS/STS)

package dreamcast

func registerCtrlOps() {
	registerOp("0100nnnn00001110", "ldc Rn,SR", execN(ldcSR), decodeN(ldcSR), disasmFixed("ldc Rn,SR"))
	registerOp("0100nnnn00011110", "ldc Rn,GBR", execN(ldcGBR), decodeN(ldcGBR), disasmFixed("ldc Rn,GBR"))
	registerOp("0100nnnn00101110", "ldc Rn,VBR", execN(ldcVBR), decodeN(ldcVBR), disasmFixed("ldc Rn,VBR"))
	registerOp("0100nnnn00111110", "ldc Rn,SSR", execN(ldcSSR), decodeN(ldcSSR), disasmFixed("ldc Rn,SSR"))
	registerOp("0100nnnn01001110", "ldc Rn,SPC", execN(ldcSPC), decodeN(ldcSPC), disasmFixed("ldc Rn,SPC"))
	registerOp("0100nnnn11111010", "ldc Rn,DBR", execN(ldcDBR), decodeN(ldcDBR), disasmFixed("ldc Rn,DBR"))

	registerOp("0000nnnn00000010", "stc SR,Rn", execN(stcSR), decodeN(stcSR), disasmFixed("stc SR,Rn"))
	registerOp("0000nnnn00010010", "stc GBR,Rn", execN(stcGBR), decodeN(stcGBR), disasmFixed("stc GBR,Rn"))
	registerOp("0000nnnn00100010", "stc VBR,Rn", execN(stcVBR), decodeN(stcVBR), disasmFixed("stc VBR,Rn"))
	registerOp("0000nnnn00110010", "stc SSR,Rn", execN(stcSSR), decodeN(stcSSR), disasmFixed("stc SSR,Rn"))
	registerOp("0000nnnn01000010", "stc SPC,Rn", execN(stcSPC), decodeN(stcSPC), disasmFixed("stc SPC,Rn"))
	registerOp("0000nnnn00111010", "stc SGR,Rn", execN(stcSGR), decodeN(stcSGR), disasmFixed("stc SGR,Rn"))
	registerOp("0000nnnn11111010", "stc DBR,Rn", execN(stcDBR), decodeN(stcDBR), disasmFixed("stc DBR,Rn"))

	registerOp("0100nnnn00000111", "ldc.l @Rn+,SR", execN(ldcLSR), decodeN(ldcLSR), disasmFixed("ldc.l @Rn+,SR"))
	registerOp("0100nnnn00010111", "ldc.l @Rn+,GBR", execN(ldcLGBR), decodeN(ldcLGBR), disasmFixed("ldc.l @Rn+,GBR"))
	registerOp("0100nnnn00100111", "ldc.l @Rn+,VBR", execN(ldcLVBR), decodeN(ldcLVBR), disasmFixed("ldc.l @Rn+,VBR"))

	registerOp("0100nnnn00001010", "lds Rn,MACH", execN(ldsMACH), decodeN(ldsMACH), disasmFixed("lds Rn,MACH"))
	registerOp("0100nnnn00011010", "lds Rn,MACL", execN(ldsMACL), decodeN(ldsMACL), disasmFixed("lds Rn,MACL"))
	registerOp("0100nnnn00101010", "lds Rn,PR", execN(ldsPR), decodeN(ldsPR), disasmFixed("lds Rn,PR"))
	registerOp("0100nnnn01011010", "lds Rn,FPUL", execN(ldsFPUL), decodeN(ldsFPUL), disasmFixed("lds Rn,FPUL"))
	registerOp("0100nnnn01101010", "lds Rn,FPSCR", execN(ldsFPSCR), decodeN(ldsFPSCR), disasmFixed("lds Rn,FPSCR"))

	registerOp("0000nnnn00001010", "sts MACH,Rn", execN(stsMACH), decodeN(stsMACH), disasmFixed("sts MACH,Rn"))
	registerOp("0000nnnn00011010", "sts MACL,Rn", execN(stsMACL), decodeN(stsMACL), disasmFixed("sts MACL,Rn"))
	registerOp("0000nnnn00101010", "sts PR,Rn", execN(stsPR), decodeN(stsPR), disasmFixed("sts PR,Rn"))
	registerOp("0000nnnn01011010", "sts FPUL,Rn", execN(stsFPUL), decodeN(stsFPUL), disasmFixed("sts FPUL,Rn"))
	registerOp("0000nnnn01101010", "sts FPSCR,Rn", execN(stsFPSCR), decodeN(stsFPSCR), disasmFixed("sts FPSCR,Rn"))
}

func ldcSR(ctx *Sh4Ctx, n int) {
	old := ctx.SR&(1<<srRB) != 0
	ctx.setSR(ctx.R[n] & 0x700083F3)
	if new_ := ctx.SR&(1<<srRB) != 0; new_ != old {
		ctx.swapRBanks()
	}
}
func ldcGBR(ctx *Sh4Ctx, n int) { ctx.GBR = ctx.R[n] }
func ldcVBR(ctx *Sh4Ctx, n int) { ctx.VBR = ctx.R[n] }
func ldcSSR(ctx *Sh4Ctx, n int) { ctx.SSR = ctx.R[n] }
func ldcSPC(ctx *Sh4Ctx, n int) { ctx.SPC = ctx.R[n] }
func ldcDBR(ctx *Sh4Ctx, n int) { ctx.DBR = ctx.R[n] }

func stcSR(ctx *Sh4Ctx, n int)  { ctx.R[n] = ctx.SR }
func stcGBR(ctx *Sh4Ctx, n int) { ctx.R[n] = ctx.GBR }
func stcVBR(ctx *Sh4Ctx, n int) { ctx.R[n] = ctx.VBR }
func stcSSR(ctx *Sh4Ctx, n int) { ctx.R[n] = ctx.SSR }
func stcSPC(ctx *Sh4Ctx, n int) { ctx.R[n] = ctx.SPC }
func stcSGR(ctx *Sh4Ctx, n int) { ctx.R[n] = ctx.SGR }
func stcDBR(ctx *Sh4Ctx, n int) { ctx.R[n] = ctx.DBR }

func ldcLSR(ctx *Sh4Ctx, n int) {
	v := Read32(ctx.mmap, ctx.R[n])
	ctx.R[n] += 4
	old := ctx.SR&(1<<srRB) != 0
	ctx.setSR(v & 0x700083F3)
	if new_ := ctx.SR&(1<<srRB) != 0; new_ != old {
		ctx.swapRBanks()
	}
}
func ldcLGBR(ctx *Sh4Ctx, n int) { ctx.GBR = Read32(ctx.mmap, ctx.R[n]); ctx.R[n] += 4 }
func ldcLVBR(ctx *Sh4Ctx, n int) { ctx.VBR = Read32(ctx.mmap, ctx.R[n]); ctx.R[n] += 4 }

func ldsMACH(ctx *Sh4Ctx, n int) { ctx.MACH = ctx.R[n] }
func ldsMACL(ctx *Sh4Ctx, n int) { ctx.MACL = ctx.R[n] }
func ldsPR(ctx *Sh4Ctx, n int)   { ctx.PR = ctx.R[n] }
func ldsFPUL(ctx *Sh4Ctx, n int) { ctx.FPUL = ctx.R[n] }
func ldsFPSCR(ctx *Sh4Ctx, n int) { ctx.FPSCR = ctx.R[n] & 0x003FFFFF }

func stsMACH(ctx *Sh4Ctx, n int)  { ctx.R[n] = ctx.MACH }
func stsMACL(ctx *Sh4Ctx, n int)  { ctx.R[n] = ctx.MACL }
func stsPR(ctx *Sh4Ctx, n int)    { ctx.R[n] = ctx.PR }
func stsFPUL(ctx *Sh4Ctx, n int)  { ctx.R[n] = ctx.FPUL }
func stsFPSCR(ctx *Sh4Ctx, n int) { ctx.R[n] = ctx.FPSCR }
