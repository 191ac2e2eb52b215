// sh4_recompiler_test.go - tests for the on-demand code-threading recompiler

package dreamcast

import "testing"

func TestSh4RecompilerRunsStraightLineBlockThenBranch(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	table := newSh4BlockTable()

	Write16(m, 0, uint16(0xE000|(2<<8)|0x0A))        // mov #10,R2
	Write16(m, 2, uint16(0x3000|(2<<8)|(3<<4)|0xC))  // add R3,R2
	Write16(m, 4, 0xA000)                            // bra disp=0 -> target 8
	Write16(m, 6, 0x0009)                            // nop (delay slot)
	ctx.R[3] = 5

	steps := sh4FnsDispatch(ctx, table)

	if steps != 4 {
		t.Fatalf("steps = %d, want 4 (mov, add, bra, delay-slot nop)", steps)
	}
	if ctx.R[2] != 15 {
		t.Fatalf("R2 = %d, want 15", ctx.R[2])
	}
	if ctx.PC0 != 8 || ctx.PC1 != 10 || ctx.PC2 != 12 {
		t.Fatalf("pipeline = (%X,%X,%X), want (8,A,C)", ctx.PC0, ctx.PC1, ctx.PC2)
	}
}

func TestSh4RecompilerCachesCompiledBlock(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	table := newSh4BlockTable()

	Write16(m, 0, uint16(0xE000|(0<<8)|0x01)) // mov #1,R0
	Write16(m, 2, 0xA000)                     // bra disp=0 -> target 6
	Write16(m, 4, 0x0009)                     // nop (delay slot)

	sh4FnsDispatch(ctx, table)
	first := table.blocks[sh4BlockKey(0)]
	if first == nil {
		t.Fatal("expected a compiled block to be cached at PC 0")
	}

	// Re-enter the same entry point and confirm the cached block is reused
	// rather than rebuilt (the on-demand decode only ever runs once).
	ctx.PC0, ctx.PC1, ctx.PC2 = 0, 2, 4
	sh4FnsDispatch(ctx, table)
	second := table.blocks[sh4BlockKey(0)]

	if first != second {
		t.Fatal("block was rebuilt instead of reused from the cache")
	}
}

func TestSh4RecompilerInvalidateBlockForcesRebuild(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	table := newSh4BlockTable()

	Write16(m, 0, uint16(0xE000|(0<<8)|0x01)) // mov #1,R0
	Write16(m, 2, 0xA000)                     // bra disp=0
	Write16(m, 4, 0x0009)                     // nop

	sh4FnsDispatch(ctx, table)
	before := table.blocks[sh4BlockKey(0)]

	table.InvalidateBlock(0)

	if _, ok := table.blocks[sh4BlockKey(0)]; ok {
		t.Fatal("expected InvalidateBlock to remove the cached entry")
	}

	ctx.PC0, ctx.PC1, ctx.PC2 = 0, 2, 4
	sh4FnsDispatch(ctx, table)
	after := table.blocks[sh4BlockKey(0)]

	if before == after {
		t.Fatal("expected a fresh block after invalidation")
	}
}

func TestSh4RecompilerRunSliceDrivesMultipleBlocks(t *testing.T) {
	ctx, m, _ := newSh4TestRig()
	table := newSh4BlockTable()

	// A tight loop spanning two blocks: inc R0 at 0, branch to 6; inc R0 at
	// 6, branch back to 0. Each full iteration increments R0 twice.
	Write16(m, 0, uint16(0x7000|(0<<8)|0x01)) // add #1,R0
	Write16(m, 2, 0xA000)                     // bra disp=0 -> target = 2+4+0 = 6
	Write16(m, 4, 0x0009)                     // delay slot nop
	Write16(m, 6, uint16(0x7000|(0<<8)|0x01)) // add #1,R0
	Write16(m, 8, uint16(0xA000|0x0FFA)) // bra disp=-6 -> target = 8+4-12 = 0
	Write16(m, 10, 0x0009)                    // delay slot nop

	RunSlice(ctx, table, 6, nil)

	if ctx.R[0] < 2 {
		t.Fatalf("R0 = %d, want at least 2 increments over the slice", ctx.R[0])
	}
}
