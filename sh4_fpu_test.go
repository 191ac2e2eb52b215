// sh4_fpu_test.go - tests for the SH-4 floating-point instruction family

package dreamcast

import "testing"

func TestSh4FPUFadd(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0xF000|(0<<8)|(1<<4)|0x0)) // fadd FR1,FR0
	ctx.FR.F[0] = 1.5
	ctx.FR.F[1] = 2.25

	Step(ctx)

	if ctx.FR.F[0] != 3.75 {
		t.Fatalf("FR0 = %v, want 3.75", ctx.FR.F[0])
	}
}

func TestSh4FPUFsub(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0xF000|(0<<8)|(1<<4)|0x1)) // fsub FR1,FR0
	ctx.FR.F[0] = 5
	ctx.FR.F[1] = 2

	Step(ctx)

	if ctx.FR.F[0] != 3 {
		t.Fatalf("FR0 = %v, want 3", ctx.FR.F[0])
	}
}

func TestSh4FPUFmul(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0xF000|(0<<8)|(1<<4)|0x2)) // fmul FR1,FR0
	ctx.FR.F[0] = 3
	ctx.FR.F[1] = 4

	Step(ctx)

	if ctx.FR.F[0] != 12 {
		t.Fatalf("FR0 = %v, want 12", ctx.FR.F[0])
	}
}

func TestSh4FPUFcmpGt(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0xF000|(0<<8)|(1<<4)|0x5)) // fcmp/gt FR1,FR0
	ctx.FR.F[0] = 5
	ctx.FR.F[1] = 2

	Step(ctx)

	if ctx.SrT != 1 {
		t.Fatalf("T = %d, want 1 (5 > 2)", ctx.SrT)
	}
}

func TestSh4FPUFneg(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0xF000|(3<<8)|0x4D)) // fneg FR3
	ctx.FR.F[3] = 1.5

	Step(ctx)

	if ctx.FR.F[3] != -1.5 {
		t.Fatalf("FR3 = %v, want -1.5", ctx.FR.F[3])
	}
}

func TestSh4FPUFloatAndFtrcRoundTrip(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0xF000|(2<<8)|0x2D)) // float FPUL,FR2
	ctx.FPUL = 0xFFFFFFF9 // int32(-7)

	Step(ctx)

	if ctx.FR.F[2] != -7 {
		t.Fatalf("FR2 = %v, want -7", ctx.FR.F[2])
	}

	Write16(m, 2, uint16(0xF000|(2<<8)|0x3D)) // ftrc FR2,FPUL
	Step(ctx)

	if int32(ctx.FPUL) != -7 {
		t.Fatalf("FPUL = %d, want -7", int32(ctx.FPUL))
	}
}

func TestSh4FPUFldi0Fldi1(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0xF000|(5<<8)|0x8D)) // fldi0 FR5
	ctx.FR.F[5] = 99

	Step(ctx)

	if ctx.FR.F[5] != 0 {
		t.Fatalf("FR5 = %v, want 0", ctx.FR.F[5])
	}

	Write16(m, 2, uint16(0xF000|(5<<8)|0x9D)) // fldi1 FR5
	Step(ctx)

	if ctx.FR.F[5] != 1 {
		t.Fatalf("FR5 = %v, want 1", ctx.FR.F[5])
	}
}
