// sh4_alu_test.go - tests for the SH-4 arithmetic/logic instruction family

package dreamcast

import "testing"

// newSh4TestRig returns an SH-4 context over a flat 64KB RAM region at
// address 0, mirroring the teacher's newCPUZ80TestRig()/newCPU6502TestRig()
// pattern of a minimal isolated memory for single-instruction tests.
func newSh4TestRig() (*Sh4Ctx, *MemoryMap, []byte) {
	ensureSh4OpcodeTable()
	ram := make([]byte, 0x10000)
	m := NewMemoryMap()
	m.RegisterBuffer(0x00, 0x00, 0xFFFF, ram, "ram")
	ctx := NewSh4Ctx(m)
	return ctx, m, ram
}

func sh4AddOpcode(n, m int) uint16 {
	return uint16(0x3000 | n<<8 | m<<4 | 0xC)
}

func sh4MovImmOpcode(n int, imm uint8) uint16 {
	return uint16(0xE000 | n<<8 | int(imm))
}

func TestSh4ALUAdd(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, sh4AddOpcode(0, 1))
	ctx.R[0] = 5
	ctx.R[1] = 7

	Step(ctx)

	if ctx.R[0] != 12 {
		t.Fatalf("R0 = %d, want 12", ctx.R[0])
	}
	if ctx.PC0 != 2 {
		t.Fatalf("PC0 = 0x%X, want 2", ctx.PC0)
	}
}

func TestSh4ALUAddOverflowWraps(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, sh4AddOpcode(0, 1))
	ctx.R[0] = 0xFFFFFFFF
	ctx.R[1] = 2

	Step(ctx)

	if ctx.R[0] != 1 {
		t.Fatalf("R0 = 0x%X, want 1 (wrapped)", ctx.R[0])
	}
}

func TestSh4ALUAddImm(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0x7000|(3<<8)|0x05)) // add #5,R3
	ctx.R[3] = 10

	Step(ctx)

	if ctx.R[3] != 15 {
		t.Fatalf("R3 = %d, want 15", ctx.R[3])
	}
}

func TestSh4ALUAddImmNegative(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0x7000|(3<<8)|0xFF)) // add #-1,R3
	ctx.R[3] = 10

	Step(ctx)

	if ctx.R[3] != 9 {
		t.Fatalf("R3 = %d, want 9", ctx.R[3])
	}
}

func TestSh4ALUSubc(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0x3000|(0<<8)|(1<<4)|0xA)) // subc R1,R0
	ctx.R[0] = 5
	ctx.R[1] = 1
	ctx.setT(true)

	Step(ctx)

	if ctx.R[0] != 3 {
		t.Fatalf("R0 = %d, want 3 (5-1-borrow)", ctx.R[0])
	}
}

func TestSh4ALUAndOr(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0x2000|(0<<8)|(1<<4)|0x9)) // and R1,R0
	ctx.R[0] = 0xFF
	ctx.R[1] = 0x0F

	Step(ctx)

	if ctx.R[0] != 0x0F {
		t.Fatalf("R0 = 0x%X, want 0x0F", ctx.R[0])
	}

	Write16(m, 2, uint16(0x2000|(0<<8)|(1<<4)|0xB)) // or R1,R0
	ctx.R[1] = 0xF0

	Step(ctx)

	if ctx.R[0] != 0xFF {
		t.Fatalf("R0 = 0x%X, want 0xFF", ctx.R[0])
	}
}

func TestSh4ALUMovImm(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, sh4MovImmOpcode(4, 0x42))

	Step(ctx)

	if ctx.R[4] != 0x42 {
		t.Fatalf("R4 = 0x%X, want 0x42", ctx.R[4])
	}
}

func TestSh4ALUExtuExts(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0x6000|(0<<8)|(1<<4)|0xE)) // exts.b R1,R0
	ctx.R[1] = 0x80

	Step(ctx)

	if ctx.R[0] != 0xFFFFFF80 {
		t.Fatalf("R0 = 0x%X, want 0xFFFFFF80", ctx.R[0])
	}

	Write16(m, 2, uint16(0x6000|(2<<8)|(1<<4)|0xC)) // extu.b R1,R2
	Step(ctx)

	if ctx.R[2] != 0x80 {
		t.Fatalf("R2 = 0x%X, want 0x80", ctx.R[2])
	}
}
