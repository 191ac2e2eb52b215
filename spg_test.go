// spg_test.go - tests for the sync pulse generator's scanline timing and
// blanking interrupts

package dreamcast

import "testing"

func newSpgTestRig() (*SpgState, *AsicState) {
	asic := NewAsicState()
	spg := NewSpgState(asic)
	return spg, asic
}

// loadValue packs hcount/vcount into the SPG_LOAD register layout.
func loadValue(hcount, vcount uint32) uint32 { return hcount | (vcount << 16) }

func TestSpgRecomputeTimingLineCycles(t *testing.T) {
	spg, _ := newSpgTestRig()
	spg.Write(addrSPGLoad, loadValue(134, 3)) // hTotal=135, vTotal=4

	if spg.lineCycles != 1000 {
		t.Fatalf("lineCycles = %d, want 1000", spg.lineCycles)
	}
	if spg.totalLines != 4 {
		t.Fatalf("totalLines = %d, want 4", spg.totalLines)
	}
}

func TestSpgInterlaceHalvesLineCycles(t *testing.T) {
	spg, _ := newSpgTestRig()
	spg.Write(addrSPGControl, 1<<4) // enable interlace
	spg.Write(addrSPGLoad, loadValue(134, 3))

	if spg.lineCycles != 500 {
		t.Fatalf("lineCycles = %d, want 500 (interlace halved)", spg.lineCycles)
	}
}

func TestSpgTickAdvancesScanline(t *testing.T) {
	spg, _ := newSpgTestRig()
	spg.Write(addrSPGLoad, loadValue(134, 3)) // lineCycles=1000, totalLines=4

	spg.Tick(1000)

	v := spg.Read(addrSPGStatus)
	if v&0x3FF != 1 {
		t.Fatalf("status scanline field = %d, want 1", v&0x3FF)
	}
}

func TestSpgTickWrapsScanlineAtTotalLines(t *testing.T) {
	spg, _ := newSpgTestRig()
	spg.Write(addrSPGLoad, loadValue(134, 3)) // totalLines=4

	spg.Tick(1000 * 4) // exactly one full field

	v := spg.Read(addrSPGStatus)
	if v&0x3FF != 0 {
		t.Fatalf("status scanline field = %d, want 0 after wraparound", v&0x3FF)
	}
}

func TestSpgVblankWindowWraps(t *testing.T) {
	spg, _ := newSpgTestRig()
	spg.Write(addrSPGLoad, loadValue(134, 3)) // lineCycles=1000, totalLines=4
	spg.Write(addrSPGVBlank, 2)               // start=2, end=0 (wraps: inVblank when scanline>=2)

	if spg.inVblank {
		t.Fatal("expected inVblank false at scanline 0")
	}

	spg.Tick(1000 * 2) // advance to scanline 2

	if !spg.inVblank {
		t.Fatal("expected inVblank true at scanline 2")
	}
}

func TestSpgVblankInLineRaisesAsicBit3(t *testing.T) {
	spg, asic := newSpgTestRig()
	spg.Write(addrSPGLoad, loadValue(134, 3))     // lineCycles=1000, totalLines=4
	spg.Write(addrSPGVBlankInt, 2|(3<<16))        // vblank-in at line 2, vblank-out at line 3

	spg.Tick(1000 * 2) // reach scanline 2

	if asic.IstNrm&(1<<3) == 0 {
		t.Fatal("expected vblank-in to raise ASIC normal pending bit 3")
	}
}

func TestSpgVblankOutLineRaisesAsicBit4(t *testing.T) {
	spg, asic := newSpgTestRig()
	spg.Write(addrSPGLoad, loadValue(134, 3))
	spg.Write(addrSPGVBlankInt, 2|(3<<16))

	spg.Tick(1000 * 3) // reach scanline 3

	if asic.IstNrm&(1<<4) == 0 {
		t.Fatal("expected vblank-out to raise ASIC normal pending bit 4")
	}
}

func TestSpgHblankLineRaisesAsicBit5(t *testing.T) {
	spg, asic := newSpgTestRig()
	spg.Write(addrSPGLoad, loadValue(134, 3)) // totalLines=4
	spg.Write(addrSPGHBlankInt, 1<<16)        // hblank interrupt on scanline 1

	spg.Tick(1000) // reach scanline 1

	if asic.IstNrm&(1<<5) == 0 {
		t.Fatal("expected the hblank line match to raise ASIC normal pending bit 5")
	}
}

func TestSpgLine0TogglesFieldUnderInterlace(t *testing.T) {
	spg, asic := newSpgTestRig()
	spg.Write(addrSPGControl, 1<<4) // interlace on
	spg.Write(addrSPGLoad, loadValue(134, 3))

	startField := spg.field
	spg.Tick(spg.lineCycles * uint32(spg.totalLines)) // wrap all the way back to scanline 0

	if spg.field == startField {
		t.Fatal("expected field to toggle on wraparound to scanline 0 under interlace")
	}
	if asic.IstNrm&(1<<5) == 0 {
		t.Fatal("expected scanline 0 to also raise ASIC normal pending bit 5")
	}
}

func TestSpgResetRestoresDefaults(t *testing.T) {
	spg, _ := newSpgTestRig()
	spg.Write(addrSPGLoad, loadValue(134, 3))
	spg.Tick(1000)

	spg.Reset()

	if spg.Read(addrSPGLoad) != 0x01060359 {
		t.Fatalf("SPG_LOAD = 0x%X after reset, want default 0x01060359", spg.Read(addrSPGLoad))
	}
	if spg.Read(addrSPGStatus)&0x3FF != 0 {
		t.Fatal("expected scanline to reset to 0")
	}
}
