// arm7_test.go - tests for the ARM7DI single-step interpreter

package dreamcast

import "testing"

func newArm7TestRig() *Arm7Ctx {
	ram := make([]byte, 64*1024)
	return NewArm7Ctx(ram, 0xFFFF)
}

func arm7WriteOp(c *Arm7Ctx, addr uint32, op uint32) {
	c.writeAudioRAM32(addr, op)
}

func TestArm7DataProcessingMovImm(t *testing.T) {
	c := newArm7TestRig()
	arm7WriteOp(c, 0, 0xE3A00005) // mov r0,#5

	Arm7Step(c)

	if c.R[0] != 5 {
		t.Fatalf("R0 = %d, want 5", c.R[0])
	}
	if c.R[15] != 4 {
		t.Fatalf("R15 = 0x%X, want 4", c.R[15])
	}
}

func TestArm7DataProcessingAddReg(t *testing.T) {
	c := newArm7TestRig()
	arm7WriteOp(c, 0, 0xE0802001) // add r2,r0,r1
	c.R[0] = 3
	c.R[1] = 4

	Arm7Step(c)

	if c.R[2] != 7 {
		t.Fatalf("R2 = %d, want 7", c.R[2])
	}
}

func TestArm7DataProcessingSubImm(t *testing.T) {
	c := newArm7TestRig()
	arm7WriteOp(c, 0, 0xE2400001) // sub r0,r0,#1
	c.R[0] = 10

	Arm7Step(c)

	if c.R[0] != 9 {
		t.Fatalf("R0 = %d, want 9", c.R[0])
	}
}

func TestArm7CmpSetsFlags(t *testing.T) {
	c := newArm7TestRig()
	arm7WriteOp(c, 0, 0xE3500005) // cmp r0,#5
	c.R[0] = 5

	Arm7Step(c)

	if !c.flagZ() {
		t.Fatal("Z flag not set after cmp r0,#5 with r0==5")
	}
}

func TestArm7ConditionalSkippedWhenFalse(t *testing.T) {
	c := newArm7TestRig()
	arm7WriteOp(c, 0, 0x03A00009) // moveq r0,#9
	c.setFlag(arm7FlagZ, false)
	c.R[0] = 1

	Arm7Step(c)

	if c.R[0] != 1 {
		t.Fatalf("R0 = %d, want 1 (MOVEQ should not execute when Z clear)", c.R[0])
	}
	if c.R[15] != 4 {
		t.Fatalf("R15 = 0x%X, want 4 (PC still advances)", c.R[15])
	}
}

func TestArm7ConditionalTakenWhenTrue(t *testing.T) {
	c := newArm7TestRig()
	arm7WriteOp(c, 0, 0x03A00009) // moveq r0,#9
	c.setFlag(arm7FlagZ, true)

	Arm7Step(c)

	if c.R[0] != 9 {
		t.Fatalf("R0 = %d, want 9 (MOVEQ should execute when Z set)", c.R[0])
	}
}

func TestArm7Branch(t *testing.T) {
	c := newArm7TestRig()
	arm7WriteOp(c, 0, 0xEA00003E) // b #0x100

	Arm7Step(c)

	if c.R[15] != 0x100 {
		t.Fatalf("R15 = 0x%X, want 0x100", c.R[15])
	}
}

func TestArm7BranchWithLink(t *testing.T) {
	c := newArm7TestRig()
	arm7WriteOp(c, 0, 0xEB00003E) // bl #0x100

	Arm7Step(c)

	if c.R[15] != 0x100 {
		t.Fatalf("R15 = 0x%X, want 0x100", c.R[15])
	}
	if c.R[14] != 4 {
		t.Fatalf("LR = 0x%X, want 4", c.R[14])
	}
}

func TestArm7BXSwitchesToTarget(t *testing.T) {
	c := newArm7TestRig()
	arm7WriteOp(c, 0, 0xE12FFF11) // bx r1
	c.R[1] = 0x200

	Arm7Step(c)

	if c.R[15] != 0x200 {
		t.Fatalf("R15 = 0x%X, want 0x200", c.R[15])
	}
}
