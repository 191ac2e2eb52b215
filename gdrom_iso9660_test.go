// gdrom_iso9660_test.go - tests for the flat ISO-9660 GDImage implementation
// and the REIOS boot-file locator

package dreamcast

import (
	"encoding/binary"
	"testing"
)

func TestIso9660ReadSectorFadOffset(t *testing.T) {
	data := make([]byte, 2*2048)
	for i := range data[:2048] {
		data[i] = 0xAA
	}
	for i := range data[2048:] {
		data[2048+i] = 0xBB
	}
	img := NewIso9660Image(data)

	buf := make([]byte, 2048)
	if !img.ReadSector(buf, 150, 1, 2048) {
		t.Fatal("expected ReadSector at fad=150 (lba 0) to succeed")
	}
	if buf[0] != 0xAA {
		t.Fatalf("sector 0 byte = 0x%X, want 0xAA", buf[0])
	}

	if !img.ReadSector(buf, 151, 1, 2048) {
		t.Fatal("expected ReadSector at fad=151 (lba 1) to succeed")
	}
	if buf[0] != 0xBB {
		t.Fatalf("sector 1 byte = 0x%X, want 0xBB", buf[0])
	}
}

func TestIso9660ReadSectorRejectsFadBelow150(t *testing.T) {
	img := NewIso9660Image(make([]byte, 2048))
	buf := make([]byte, 2048)

	if img.ReadSector(buf, 100, 1, 2048) {
		t.Fatal("expected ReadSector to reject a fad below the 150 lead-in offset")
	}
}

func TestIso9660ReadSectorRejectsOutOfBounds(t *testing.T) {
	img := NewIso9660Image(make([]byte, 2048))
	buf := make([]byte, 2048)

	if img.ReadSector(buf, 150, 2, 2048) {
		t.Fatal("expected ReadSector to reject a read past the end of the image")
	}
}

func TestIso9660GetSessionInfoMarksOneSession(t *testing.T) {
	img := NewIso9660Image(make([]byte, 2048))
	buf := make([]byte, 6)

	img.GetSessionInfo(buf, 0)

	if buf[2] != 1 {
		t.Fatalf("session count byte = %d, want 1", buf[2])
	}
}

func TestIso9660GetDiscTypeIsGDROM(t *testing.T) {
	img := NewIso9660Image(make([]byte, 2048))
	if img.GetDiscType() != gdDiscTypeGDROM {
		t.Fatalf("GetDiscType() = 0x%X, want 0x%X", img.GetDiscType(), gdDiscTypeGDROM)
	}
}

// buildPVD writes a primary volume descriptor into a 2048-byte sector with
// the given root-directory LBA and byte length.
func buildPVD(rootLBA, rootLen uint32) []byte {
	pvd := make([]byte, 2048)
	copy(pvd[1:8], "\x01CD001\x01")
	binary.BigEndian.PutUint32(pvd[160:164], rootLBA)
	binary.BigEndian.PutUint32(pvd[168:172], rootLen)
	return pvd
}

func TestIso9660RootDirectoryParsesPVD(t *testing.T) {
	// baseFad+16 must land at fad>=150 for ReadSector to accept it.
	const baseFad = 134
	pvd := buildPVD(23, 4096)
	img := NewIso9660Image(pvd)

	lba, length, ok := iso9660RootDirectory(img, baseFad)
	if !ok {
		t.Fatal("expected a valid PVD to parse")
	}
	if lba != 23 || length != 4096 {
		t.Fatalf("root dir = (lba=%d, len=%d), want (23, 4096)", lba, length)
	}
}

func TestIso9660RootDirectoryRejectsBadMagic(t *testing.T) {
	const baseFad = 134
	pvd := make([]byte, 2048) // all zero, no CD001 magic
	img := NewIso9660Image(pvd)

	_, _, ok := iso9660RootDirectory(img, baseFad)
	if ok {
		t.Fatal("expected a PVD without the CD001 magic to be rejected")
	}
}

// buildDirectoryEntry writes one 33-byte ISO-9660 directory record header
// (LBA at offset 2, length at offset 10, both 8-byte bi-endian fields, only
// the big-endian half populated since that's all the locator reads) plus the
// filename, at the given offset in buf.
func buildDirectoryEntry(buf []byte, offset int, fileLBA, fileLen uint32, name string) {
	binary.BigEndian.PutUint32(buf[offset+6:offset+10], fileLBA)
	binary.BigEndian.PutUint32(buf[offset+14:offset+18], fileLen)
	copy(buf[offset+33:], name)
}

func TestIso9660LocateFileFindsEntry(t *testing.T) {
	const baseFad = 134
	const rootLBA = 23
	const rootLen = 4096 // exactly 2 sectors

	img := make([]byte, (rootLBA+2)*2048)
	copy(img[:2048], buildPVD(rootLBA, rootLen))

	dirStart := rootLBA * 2048
	buildDirectoryEntry(img, dirStart+64, 99, 12345, "BOOT.BIN")

	disc := NewIso9660Image(img)
	lba, length, ok := iso9660LocateFile(disc, baseFad, "BOOT.BIN")
	if !ok {
		t.Fatal("expected to locate BOOT.BIN in the root directory")
	}
	if lba != 99 || length != 12345 {
		t.Fatalf("located file = (lba=%d, len=%d), want (99, 12345)", lba, length)
	}
}

func TestIso9660LocateFileMissingReturnsNotFound(t *testing.T) {
	const baseFad = 134
	const rootLBA = 23
	const rootLen = 4096

	img := make([]byte, (rootLBA+2)*2048)
	copy(img[:2048], buildPVD(rootLBA, rootLen))

	dirStart := rootLBA * 2048
	buildDirectoryEntry(img, dirStart+64, 99, 12345, "BOOT.BIN")

	disc := NewIso9660Image(img)
	_, _, ok := iso9660LocateFile(disc, baseFad, "MISSING.BIN")
	if ok {
		t.Fatal("expected a file not present in the directory to not be found")
	}
}
