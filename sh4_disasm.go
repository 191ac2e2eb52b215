// sh4_disasm.go - SH-4 disassembler entry point

/*
DisassembledLine is shared with the ARM7 disassembler (arm7_disasm.go),
following the teacher's per-CPU Disassemble(addr, count)
[]DisassembledLine convention (debug_cpu_z80.go, debug_cpu_m68k.go).
*/

package dreamcast

import "fmt"

// DisassembledLine is one decoded instruction, as returned by Disassemble.
type DisassembledLine struct {
	Address uint32
	Text    string
}

// Sh4Disassemble produces count lines starting at addr using each opcode
// descriptor's disasm face.
func Sh4Disassemble(ctx *Sh4Ctx, addr uint32, count int) []DisassembledLine {
	ensureSh4OpcodeTable()
	out := make([]DisassembledLine, 0, count)
	for i := 0; i < count; i++ {
		a := addr + uint32(i*2)
		op := Read16(ctx.mmap, a)
		desc := &sh4OpTable[op]
		text := desc.disasm(a, op)
		out = append(out, DisassembledLine{Address: a, Text: fmt.Sprintf("%s (0x%04X)", text, op)})
	}
	return out
}
