// sh4_branch_test.go - tests for the SH-4 branch/control-transfer family

package dreamcast

import "testing"

func TestSh4BranchBra(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, 0xA000) // bra disp=0 -> target = pc+4
	Write16(m, 2, 0x0009) // nop (delay slot)

	Step(ctx)

	if ctx.PC0 != 4 {
		t.Fatalf("PC0 = 0x%X, want 4", ctx.PC0)
	}
	if ctx.PC1 != 6 || ctx.PC2 != 8 {
		t.Fatalf("pipeline = (%X,%X), want (6,8)", ctx.PC1, ctx.PC2)
	}
}

func TestSh4BranchBsrSetsPR(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, 0xB000) // bsr disp=0
	Write16(m, 2, 0x0009) // nop (delay slot)

	Step(ctx)

	if ctx.PR != 4 {
		t.Fatalf("PR = 0x%X, want 4", ctx.PR)
	}
	if ctx.PC0 != 4 {
		t.Fatalf("PC0 = 0x%X, want 4", ctx.PC0)
	}
}

func TestSh4BranchDelaySlotExecutesBeforeTarget(t *testing.T) {
	// bra's delay slot must commit its side effect before the branch
	// target is reached (spec.md §4.B: "the instruction at the
	// branch-shadow executes next, then the target instruction
	// executes"). A single Step() over bra+delay-slot must both run the
	// delay slot and land on the target in one call, not two.
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, 0xA000)                     // bra disp=0 -> target = pc+4 = 4
	Write16(m, 2, uint16(0x7000|(0<<8)|0x01)) // add #1,R0 (delay slot)
	ctx.R[0] = 0

	Step(ctx)

	if ctx.R[0] != 1 {
		t.Fatal("expected the delay-slot instruction to have executed")
	}
	if ctx.PC0 != 4 {
		t.Fatalf("PC0 = 0x%X, want 4", ctx.PC0)
	}
}

func TestSh4BranchBtTaken(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, 0x8902) // bt disp=2 -> target = pc+4+4 = 8
	ctx.setT(true)

	Step(ctx)

	if ctx.PC0 != 8 {
		t.Fatalf("PC0 = 0x%X, want 8", ctx.PC0)
	}
}

func TestSh4BranchBtNotTakenFallsThrough(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, 0x8902) // bt disp=2
	ctx.setT(false)

	Step(ctx)

	if ctx.PC0 != 2 {
		t.Fatalf("PC0 = 0x%X, want 2 (fallthrough)", ctx.PC0)
	}
}

func TestSh4BranchBfTakenWhenClear(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, 0x8B02) // bf disp=2 -> target = pc+4+4 = 8
	ctx.setT(false)

	Step(ctx)

	if ctx.PC0 != 8 {
		t.Fatalf("PC0 = 0x%X, want 8", ctx.PC0)
	}
}

func TestSh4BranchJmp(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, uint16(0x400B|(2<<8))) // jmp @R2
	Write16(m, 2, 0x0009)                // nop (delay slot)
	ctx.R[2] = 0x1000

	Step(ctx)

	if ctx.PC0 != 0x1000 {
		t.Fatalf("PC0 = 0x%X, want 0x1000", ctx.PC0)
	}
}

func TestSh4BranchRts(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, 0x000B) // rts
	Write16(m, 2, 0x0009) // nop (delay slot)
	ctx.PR = 0x2000

	Step(ctx)

	if ctx.PC0 != 0x2000 {
		t.Fatalf("PC0 = 0x%X, want 0x2000", ctx.PC0)
	}
}

func TestSh4BranchBtsDelaySlotAlwaysExecutes(t *testing.T) {
	// bt.s is a delayed conditional branch: the delay slot runs whether
	// or not the branch is taken.
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, 0x8D02)                     // bt.s disp=2 -> target = pc+4+4 = 8 when taken
	Write16(m, 2, uint16(0x7000|(0<<8)|0x01)) // add #1,R0 (delay slot)
	ctx.setT(true)
	ctx.R[0] = 0

	Step(ctx)

	if ctx.R[0] != 1 {
		t.Fatal("expected bt.s's delay slot to execute before the branch target")
	}
	if ctx.PC0 != 8 {
		t.Fatalf("PC0 = 0x%X, want 8", ctx.PC0)
	}
}

func TestSh4BranchRteDeferesSRRestoreUntilAfterDelaySlot(t *testing.T) {
	// rte's delay slot must observe the pre-rte SR, and the SSR->SR
	// restore must only commit once that delay slot has run (spec.md
	// §4.B: "RTE re-enters privileged state by copying SSR -> SR after
	// the delay slot's effects are committed").
	ctx, m, _ := newSh4TestRig()
	Write16(m, 0, 0x002B)       // rte
	Write16(m, 2, 0x0102)       // stc SR,R1 (delay slot) -- captures SR as seen mid-delay-slot
	ctx.SR = 1
	ctx.SSR = 2
	ctx.SPC = 0x3000

	Step(ctx)

	if ctx.R[1] != 1 {
		t.Fatalf("R1 = %d, want 1 (delay slot must observe the pre-rte SR)", ctx.R[1])
	}
	if ctx.SR != 2 {
		t.Fatalf("SR = %d, want 2 (SSR must be committed once the delay slot has run)", ctx.SR)
	}
	if ctx.PC0 != 0x3000 {
		t.Fatalf("PC0 = 0x%X, want 0x3000", ctx.PC0)
	}
}
