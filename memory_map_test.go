// memory_map_test.go - tests for the region-dispatch memory map

package dreamcast

import "testing"

func TestMemoryMapBufferRoundTrip(t *testing.T) {
	m := NewMemoryMap()
	ram := make([]byte, 0x10000)
	m.RegisterBuffer(0x0C, 0x0C, 0xFFFF, ram, "ram")

	Write32(m, 0x0C001000, 0xDEADBEEF)
	if got := Read32(m, 0x0C001000); got != 0xDEADBEEF {
		t.Fatalf("Read32 = 0x%X, want 0xDEADBEEF", got)
	}
}

func TestMemoryMapMasksOffsetAcrossMirrors(t *testing.T) {
	m := NewMemoryMap()
	ram := make([]byte, 0x1000)
	m.RegisterBuffer(0x0C, 0x0F, 0x0FFF, ram, "ram")

	Write8(m, 0x0C000100, 0x42)

	// Every region in the mirrored range should read back the same byte
	// since the mask folds the high address bits away.
	if got := Read8(m, 0x0D000100); got != 0x42 {
		t.Fatalf("mirrored Read8 at region 0x0D = 0x%X, want 0x42", got)
	}
	if got := Read8(m, 0x0F000100); got != 0x42 {
		t.Fatalf("mirrored Read8 at region 0x0F = 0x%X, want 0x42", got)
	}
}

func TestMemoryMapHandlerBankDispatch(t *testing.T) {
	m := NewMemoryMap()
	var lastOffset uint32
	var lastValue uint32
	h := &MemHandlers{
		Read32: func(ctx any, offset uint32) uint32 { return offset + 1 },
		Write32: func(ctx any, offset uint32, v uint32) {
			lastOffset = offset
			lastValue = v
		},
	}
	m.RegisterHandler(0x10, 0x10, 0xFFFF, h, nil, "mmio")

	Write32(m, 0x10002000, 0x99)
	if lastOffset != 0x2000 || lastValue != 0x99 {
		t.Fatalf("handler saw (offset=0x%X, value=0x%X), want (0x2000, 0x99)", lastOffset, lastValue)
	}
	if got := Read32(m, 0x100000FF); got != 0x100 {
		t.Fatalf("Read32 via handler = 0x%X, want 0x100", got)
	}
}

func TestMemoryMapUnmappedRegionReturnsZero(t *testing.T) {
	m := NewMemoryMap()
	if got := Read32(m, 0x55000000); got != 0 {
		t.Fatalf("Read32 of unmapped region = 0x%X, want 0", got)
	}
	// Should not panic on write either.
	Write32(m, 0x55000000, 0xFF)
}

func TestMemoryMapOutOfBoundsOffsetReturnsZero(t *testing.T) {
	m := NewMemoryMap()
	ram := make([]byte, 4)
	m.RegisterBuffer(0x20, 0x20, 0xFFFF, ram, "tiny")

	// offset 0x10 & mask 0xFFFF is past the end of the 4-byte buffer.
	if got := Read32(m, 0x20000010); got != 0 {
		t.Fatalf("Read32 past buffer end = 0x%X, want 0", got)
	}
}

func TestMemoryMapReadBytesWalksRegion(t *testing.T) {
	m := NewMemoryMap()
	ram := make([]byte, 16)
	copy(ram, []byte{1, 2, 3, 4, 5, 6, 7, 8})
	m.RegisterBuffer(0x30, 0x30, 0xFFFF, ram, "ram")

	got := m.ReadBytes(0x30000002, 4)
	want := []byte{3, 4, 5, 6}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ReadBytes = %v, want %v", got, want)
		}
	}
}

func TestMemoryMapLittleEndian16And64(t *testing.T) {
	m := NewMemoryMap()
	ram := make([]byte, 16)
	m.RegisterBuffer(0x40, 0x40, 0xFFFF, ram, "ram")

	Write16(m, 0x40000000, 0xABCD)
	if ram[0] != 0xCD || ram[1] != 0xAB {
		t.Fatalf("bytes = [%X %X], want little-endian [CD AB]", ram[0], ram[1])
	}
	if got := Read16(m, 0x40000000); got != 0xABCD {
		t.Fatalf("Read16 = 0x%X, want 0xABCD", got)
	}

	Write64(m, 0x40000008, 0x0102030405060708)
	if got := Read64(m, 0x40000008); got != 0x0102030405060708 {
		t.Fatalf("Read64 = 0x%X, want 0x0102030405060708", got)
	}
}
