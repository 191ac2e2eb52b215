// sh4_opcode_table.go - 65536-entry opcode dispatch table, populated by bit-pattern scan

/*
Generated once at startup by scanning bit patterns, exactly as spec.md
4.B describes and as the teacher's CPU_6502/CPU_Z80 populate their
(much smaller) dispatch tables via an init*Ops pass guarded by a
ready-check. Each table slot carries three faces sharing one
implementation function (Design Note "Code-threading recompiler"):

  - exec:   the interpreter face — decodes operands from the live
            16-bit opcode and calls the implementation immediately.
  - decode: the recompiler face — decodes operands once, at block-build
            time, and appends a pre-bound record to the block builder.
  - disasm: produces a mnemonic string for the debugger/monitor.

Rather than writing a decode wrapper by hand for every one of the ~140
SH-4 encodings, exec/decode pairs are generated by a small number of
arity-shaped higher-order functions (execNM/decodeNM, execN/decodeN,
...) parameterized by the shared implementation — the Go expression of
"duplication is by convention, not inheritance" from the reference.
*/

package dreamcast

import "sync"

type sh4ExecFn func(ctx *Sh4Ctx, op uint16)
type sh4DecodeFn func(bb *sh4BlockBuilder, op uint16)
type sh4DisasmFn func(pc uint32, op uint16) string

type sh4OpDesc struct {
	name   string
	exec   sh4ExecFn
	decode sh4DecodeFn
	disasm sh4DisasmFn
}

var (
	sh4OpTable    [65536]sh4OpDesc
	sh4TableOnce  sync.Once
)

func ensureSh4OpcodeTable() {
	sh4TableOnce.Do(buildSh4OpcodeTable)
}

// registerOp fills every table slot whose fixed bits (the '0'/'1' chars of
// pattern) match. Non-0/1 characters are wildcards (register/immediate/
// displacement fields) and are simply skipped in both masks.
func registerOp(pattern, name string, exec sh4ExecFn, decode sh4DecodeFn, disasm sh4DisasmFn) {
	if len(pattern) != 16 {
		panic("sh4_opcode_table: pattern must be 16 bits: " + name)
	}
	var mask, val uint16
	for i := 0; i < 16; i++ {
		bit := uint16(1) << (15 - i)
		switch pattern[i] {
		case '0':
			mask |= bit
		case '1':
			mask |= bit
			val |= bit
		}
	}
	desc := sh4OpDesc{name: name, exec: exec, decode: decode, disasm: disasm}
	for op := 0; op < 65536; op++ {
		if uint16(op)&mask == val {
			sh4OpTable[op] = desc
		}
	}
}

func buildSh4OpcodeTable() {
	for i := range sh4OpTable {
		sh4OpTable[i] = sh4OpDesc{name: "ill", exec: execIllegal, decode: decodeIllegal, disasm: disasmIllegal}
	}
	registerAluOps()
	registerCmpOps()
	registerShiftOps()
	registerMulOps()
	registerBranchOps()
	registerLoadStoreOps()
	registerCtrlOps()
	registerFpuOps()
}

func execIllegal(ctx *Sh4Ctx, op uint16) {
	sh4RaiseException(ctx, excIllegalInstruction)
}

func decodeIllegal(bb *sh4BlockBuilder, op uint16) {
	bb.emit(func(ctx *Sh4Ctx) { sh4RaiseException(ctx, excIllegalInstruction) })
}

func disasmIllegal(pc uint32, op uint16) string { return ".word" }

// ---- arity-shaped wrapper generators --------------------------------

type implNM func(ctx *Sh4Ctx, n, m int)
type implN func(ctx *Sh4Ctx, n int)
type implNImm func(ctx *Sh4Ctx, n int, imm uint32)
type implImm func(ctx *Sh4Ctx, imm uint32)
type implNone func(ctx *Sh4Ctx)

func execNM(impl implNM) sh4ExecFn {
	return func(ctx *Sh4Ctx, op uint16) { impl(ctx, decN(op), decM(op)) }
}
func decodeNM(impl implNM) sh4DecodeFn {
	return func(bb *sh4BlockBuilder, op uint16) {
		n, m := decN(op), decM(op)
		bb.emit(func(ctx *Sh4Ctx) { impl(ctx, n, m) })
	}
}

func execN(impl implN) sh4ExecFn {
	return func(ctx *Sh4Ctx, op uint16) { impl(ctx, decN(op)) }
}
func decodeN(impl implN) sh4DecodeFn {
	return func(bb *sh4BlockBuilder, op uint16) {
		n := decN(op)
		bb.emit(func(ctx *Sh4Ctx) { impl(ctx, n) })
	}
}

func execNImm8(impl implNImm) sh4ExecFn {
	return func(ctx *Sh4Ctx, op uint16) { impl(ctx, decN(op), decImm8(op)) }
}
func decodeNImm8(impl implNImm) sh4DecodeFn {
	return func(bb *sh4BlockBuilder, op uint16) {
		n, imm := decN(op), decImm8(op)
		bb.emit(func(ctx *Sh4Ctx) { impl(ctx, n, imm) })
	}
}

func execNImm4(impl implNImm) sh4ExecFn {
	return func(ctx *Sh4Ctx, op uint16) { impl(ctx, decN(op), decImm4(op)) }
}
func decodeNImm4(impl implNImm) sh4DecodeFn {
	return func(bb *sh4BlockBuilder, op uint16) {
		n, imm := decN(op), decImm4(op)
		bb.emit(func(ctx *Sh4Ctx) { impl(ctx, n, imm) })
	}
}

func execImm8(impl implImm) sh4ExecFn {
	return func(ctx *Sh4Ctx, op uint16) { impl(ctx, decImm8(op)) }
}
func decodeImm8(impl implImm) sh4DecodeFn {
	return func(bb *sh4BlockBuilder, op uint16) {
		imm := decImm8(op)
		bb.emit(func(ctx *Sh4Ctx) { impl(ctx, imm) })
	}
}

func execNone(impl implNone) sh4ExecFn {
	return func(ctx *Sh4Ctx, op uint16) { impl(ctx) }
}
func decodeNone(impl implNone) sh4DecodeFn {
	return func(bb *sh4BlockBuilder, op uint16) { bb.emit(sh4Record(impl)) }
}

func disasmFixed(text string) sh4DisasmFn {
	return func(pc uint32, op uint16) string { return text }
}
