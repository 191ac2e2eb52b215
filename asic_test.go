// asic_test.go - tests for the ASIC interrupt controller

package dreamcast

import "testing"

func TestAsicRaiseNormalFoldsIntoLevel(t *testing.T) {
	a := NewAsicState()
	a.Write(addrSBIML6NRM, 1<<3)

	a.RaiseNormal(3)

	pending, code := a.AnyPending()
	if !pending || code != 9 {
		t.Fatalf("AnyPending() = (%v, %d), want (true, 9)", pending, code)
	}
}

func TestAsicMaskedBitDoesNotRaise(t *testing.T) {
	a := NewAsicState()
	// no mask bits set — the level should stay low even with a pending bit.
	a.RaiseNormal(5)

	pending, _ := a.AnyPending()
	if pending {
		t.Fatal("expected a masked interrupt to not raise any IRL line")
	}
}

func TestAsicWriteToISTNRMClearsBit(t *testing.T) {
	a := NewAsicState()
	a.Write(addrSBIML4NRM, 1<<0)
	a.RaiseNormal(0)

	pending, code := a.AnyPending()
	if !pending || code != 11 {
		t.Fatalf("AnyPending() = (%v, %d), want (true, 11)", pending, code)
	}

	a.Write(addrSBISTNRM, 1<<0)

	pending, _ = a.AnyPending()
	if pending {
		t.Fatal("expected writing to SB_ISTNRM to clear the bit")
	}
}

func TestAsicISTEXTIgnoresDirectWrite(t *testing.T) {
	a := NewAsicState()
	a.Write(addrSBIML2EXT, 1<<1)
	a.RaiseExternal(1)

	a.Write(addrSBISTEXT, 1<<1) // should be ignored — only CancelExternal clears it

	pending, code := a.AnyPending()
	if !pending || code != 13 {
		t.Fatalf("AnyPending() = (%v, %d), want (true, 13) — SB_ISTEXT write should not clear", pending, code)
	}
}

func TestAsicCancelExternalClearsBit(t *testing.T) {
	a := NewAsicState()
	a.Write(addrSBIML2EXT, 1<<1)
	a.RaiseExternal(1)

	a.CancelExternal(1)

	pending, _ := a.AnyPending()
	if pending {
		t.Fatal("expected CancelExternal to clear the external pending bit")
	}
}

func TestAsicLevelPriorityOrder(t *testing.T) {
	a := NewAsicState()
	// Arm all three levels — level 6 (code 9) should win over 4 and 2.
	a.Write(addrSBIML6NRM, 1)
	a.Write(addrSBIML4NRM, 1<<1)
	a.Write(addrSBIML2NRM, 1<<2)
	a.RaiseNormal(0)
	a.RaiseNormal(1)
	a.RaiseNormal(2)

	pending, code := a.AnyPending()
	if !pending || code != 9 {
		t.Fatalf("AnyPending() = (%v, %d), want (true, 9) — level6 takes priority", pending, code)
	}
}

func TestAsicReadISTNRMFoldsExtErrFlags(t *testing.T) {
	a := NewAsicState()
	a.Write(addrSBIML2EXT, 1)
	a.RaiseExternal(0)

	v := a.Read(addrSBISTNRM)
	if v&0x40000000 == 0 {
		t.Fatal("expected SB_ISTNRM bit 30 to reflect a pending external interrupt")
	}
}

func TestAsicReset(t *testing.T) {
	a := NewAsicState()
	a.Write(addrSBIML6NRM, 1)
	a.RaiseNormal(0)

	a.Reset()

	pending, _ := a.AnyPending()
	if pending {
		t.Fatal("expected Reset to clear all pending/mask state")
	}
}
