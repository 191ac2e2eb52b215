// aica_bridge_test.go - tests for the AICA register bridge and the
// SH-4/ARM7 interrupt handshake

package dreamcast

import "testing"

func newAicaTestRig() (*AicaState, *Arm7Ctx) {
	asic := NewAsicState()
	aica := NewAicaState(asic)
	arm := NewArm7Ctx(make([]byte, 64*1024), 0xFFFF)
	return aica, arm
}

func TestAicaSCIEBWriteUpdatesMirror(t *testing.T) {
	aica, arm := newAicaTestRig()
	aica.WriteFromARM(arm, addrSCIEB, 4, 0x20)

	if aica.scieb != 0x20 {
		t.Fatalf("scieb = 0x%X, want 0x20", aica.scieb)
	}
}

func TestAicaSCIPDSetBySh4RaisesArmInterrupt(t *testing.T) {
	aica, arm := newAicaTestRig()
	aica.WriteFromARM(arm, addrSCIEB, 4, 1<<5) // unmask bit 5
	aica.WriteFromSH4(arm, addrSCIPD, 4, 1<<5) // set pending bit 5 (write-1-sets)

	if aica.scipd&(1<<5) == 0 {
		t.Fatal("expected SCIPD bit 5 to be set")
	}
	if !arm.aicaInterr {
		t.Fatal("expected the ARM7 to see a pending AICA interrupt")
	}
}

func TestAicaSCIREClearsPending(t *testing.T) {
	aica, arm := newAicaTestRig()
	aica.WriteFromARM(arm, addrSCIEB, 4, 1<<5)
	aica.WriteFromSH4(arm, addrSCIPD, 4, 1<<5)
	if !arm.aicaInterr {
		t.Fatal("precondition: expected pending interrupt before clear")
	}

	aica.WriteFromSH4(arm, addrSCIRE, 4, 1<<5)

	if aica.scipd&(1<<5) != 0 {
		t.Fatal("expected SCIRE write to clear SCIPD bit 5")
	}
	if arm.aicaInterr {
		t.Fatal("expected the pending interrupt to clear after SCIRE")
	}
}

func TestAicaMCIEBPendingRaisesAsicExternal(t *testing.T) {
	aica, arm := newAicaTestRig()
	aica.asic.Write(addrSBIML6EXT, 1<<spuIRQExtBit) // unmask the SPU external bit at level 6
	aica.WriteFromSH4(arm, addrMCIEB, 4, 1<<5)
	aica.WriteFromSH4(arm, addrMCIPD, 4, 1<<5) // write-1-sets applies to bit 5 only

	pending, _ := aica.asic.AnyPending()
	if !pending {
		t.Fatal("expected MCIPD bit to raise the ASIC external pending line")
	}
}

func TestAicaE68kHandshakeAcceptClearsLatch(t *testing.T) {
	aica, arm := newAicaTestRig()
	aica.WriteFromARM(arm, addrSCIEB, 4, 1<<5)
	aica.WriteFromSH4(arm, addrSCIPD, 4, 1<<5) // write-1-sets applies to bit 5 only

	if !arm.e68kOut {
		t.Fatal("expected e68kOut to latch once an ARM interrupt is pending")
	}

	// ARM side reads REG_M and writes back bit 0 to accept.
	aica.WriteFromARM(arm, addrREGM, 1, 1)

	if arm.e68kOut {
		t.Fatal("expected REG_M accept write to clear the e68k latch")
	}
}

func TestAicaCalcLevelEncodesThreeBitPriority(t *testing.T) {
	aica, arm := newAicaTestRig()
	// SCILV0 bit0 set for pending bit 0 -> level bit0, SCILV2 bit0 set -> level bit2.
	aica.WriteFromARM(arm, addrSCILV0, 2, 0x0001)
	aica.WriteFromARM(arm, addrSCILV2, 2, 0x0001)

	level := aica.calcLevel(0)
	if level != 0x5 {
		t.Fatalf("calcLevel(0) = %d, want 5 (bit0 | bit2)", level)
	}
}

func TestAicaArmResetByteRoundTrip(t *testing.T) {
	aica, arm := newAicaTestRig()
	aica.WriteFromSH4(arm, 0x2C00, 1, 1)

	v := aica.ReadFromSH4(arm, 0x2C00, 1)
	if v != 1 {
		t.Fatalf("arm reset byte = %d, want 1", v)
	}
}

func TestAicaHandlesAddress(t *testing.T) {
	if !AicaHandlesAddress(0x00700000) {
		t.Fatal("expected 0x00700000 to be recognized as an AICA register address")
	}
	if !AicaHandlesAddress(0x00707FFF) {
		t.Fatal("expected the top of the 32KB window to be recognized")
	}
	if AicaHandlesAddress(0x00800000) {
		t.Fatal("expected an address past the AICA window to not be recognized")
	}
}
