// arm7_disasm.go - ARM7DI disassembler

/*
Mirrors arm7di_disasm.rs's condition-suffix and register-naming tables.
Used by the supervisor's Disassemble entry point and exercised by the
ARM7 binary-harness tests.
*/

package dreamcast

import "fmt"

var arm7CondSuffix = [16]string{
	"eq", "ne", "cs", "cc", "mi", "pl", "vs", "vc",
	"hi", "ls", "ge", "lt", "gt", "le", "", "nv",
}

var arm7RegName = [16]string{
	"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7",
	"r8", "r9", "r10", "r11", "r12", "sp", "lr", "pc",
}

var arm7DPMnemonic = [16]string{
	"and", "eor", "sub", "rsb", "add", "adc", "sbc", "rsc",
	"tst", "teq", "cmp", "cmn", "orr", "mov", "bic", "mvn",
}

// Arm7Disassemble produces one mnemonic line per 4-byte instruction,
// matching the teacher's Disassemble(addr, count) []DisassembledLine shape.
func Arm7Disassemble(c *Arm7Ctx, addr uint32, count int) []DisassembledLine {
	out := make([]DisassembledLine, 0, count)
	for i := 0; i < count; i++ {
		a := addr + uint32(i*4)
		op := c.readAudioRAM32(a)
		out = append(out, DisassembledLine{Address: a, Text: arm7DisasmOne(op)})
	}
	return out
}

func arm7DisasmOne(op uint32) string {
	cond := arm7CondSuffix[op>>28]
	switch {
	case op&0x0FFFFFF0 == 0x012FFF10:
		return fmt.Sprintf("bx%s %s", cond, arm7RegName[op&0xF])
	case op&0x0E000000 == 0x0A000000:
		link := "b"
		if op&(1<<24) != 0 {
			link = "bl"
		}
		offset := int32(op & 0xFFFFFF)
		if offset&0x800000 != 0 {
			offset |= -0x1000000
		}
		return fmt.Sprintf("%s%s #%d", link, cond, offset<<2)
	case op&0x0C000000 == 0x00000000:
		opcode := (op >> 21) & 0xF
		rd := (op >> 12) & 0xF
		rn := (op >> 16) & 0xF
		return fmt.Sprintf("%s%s %s,%s,#...", arm7DPMnemonic[opcode], cond, arm7RegName[rd], arm7RegName[rn])
	case op&0x0C000000 == 0x04000000:
		ld := "str"
		if op&(1<<20) != 0 {
			ld = "ldr"
		}
		rd := (op >> 12) & 0xF
		rn := (op >> 16) & 0xF
		return fmt.Sprintf("%s%s %s,[%s]", ld, cond, arm7RegName[rd], arm7RegName[rn])
	case op&0x0F000000 == 0x0F000000:
		return fmt.Sprintf("swi%s #0x%06X", cond, op&0xFFFFFF)
	default:
		return fmt.Sprintf(".word 0x%08X", op)
	}
}
