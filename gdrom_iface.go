// gdrom_iface.go - narrow GD-ROM collaborator boundary + ISO-9660 image reader

/*
Grounded on original_source/crates/dreamcast/src/gdrom.rs (register
layout, ATA/ATAPI packet-phase state machine, ASIC external-bit
signalling on completion) and
original_source/crates/devcast/reios/src/reios.rs's locate_bootfile
(ISO-9660 primary volume descriptor parsing, root-directory linear
search, directory-entry LBA/length extraction).

Per the spec's external-collaborator boundary, the disc image itself is
not part of the core: GDImage is the narrow contract the core requires
(read_sector/get_toc/get_session_info/get_disc_type), and Iso9660Image
is one concrete, optional implementation of it for homebrew ISO images
used by the HLE loader (reios_hle.go).
*/

package dreamcast

import "encoding/binary"

// GDImage is the narrow GD-ROM collaborator boundary: sector read, TOC,
// session info, and disc-type queries. The core and REIOS HLE only ever
// see this interface, never a concrete disc format.
type GDImage interface {
	ReadSector(buf []byte, fad uint32, count uint32, sectorSize uint32) bool
	GetTOC(buf []byte, session int)
	GetSessionInfo(buf []byte, session int)
	GetDiscType() uint32
}

const (
	gdDiscTypeGDROM uint32 = 0x80
	gdDiscTypeCDROM uint32 = 0x00
)

// Iso9660Image implements GDImage over a flat ISO-9660 image, with
// sectors addressed by FAD (LBA + 150).
type Iso9660Image struct {
	data       []byte
	sectorSize uint32
}

func NewIso9660Image(data []byte) *Iso9660Image {
	return &Iso9660Image{data: data, sectorSize: 2048}
}

func (img *Iso9660Image) ReadSector(buf []byte, fad uint32, count uint32, sectorSize uint32) bool {
	if sectorSize == 0 {
		sectorSize = img.sectorSize
	}
	lba := int(fad) - 150
	if lba < 0 {
		return false
	}
	start := lba * int(sectorSize)
	length := int(count) * int(sectorSize)
	if start < 0 || start+length > len(img.data) {
		return false
	}
	if len(buf) < length {
		length = len(buf)
	}
	copy(buf[:length], img.data[start:start+length])
	return true
}

func (img *Iso9660Image) GetTOC(buf []byte, session int) {
	for i := range buf {
		buf[i] = 0
	}
}

func (img *Iso9660Image) GetSessionInfo(buf []byte, session int) {
	for i := range buf {
		buf[i] = 0
	}
	if len(buf) >= 6 {
		buf[2] = 1
	}
}

func (img *Iso9660Image) GetDiscType() uint32 { return gdDiscTypeGDROM }

// iso9660RootDirectory parses the primary volume descriptor at
// baseFad+16 and returns the root directory's LBA and byte length.
func iso9660RootDirectory(img GDImage, baseFad uint32) (lba uint32, length uint32, ok bool) {
	pvd := make([]byte, 2048)
	if !img.ReadSector(pvd, baseFad+16, 1, 2048) {
		return 0, 0, false
	}
	if string(pvd[1:8]) != "\x01CD001\x01" {
		return 0, 0, false
	}
	lba = binary.BigEndian.Uint32(pvd[156+4 : 156+8])
	length = binary.BigEndian.Uint32(pvd[164+4 : 164+8])
	return lba, length, true
}

// iso9660LocateFile finds filename in the root directory's sectors and
// returns its LBA and byte length, per the 33-byte ISO-9660 directory
// entry layout (name preceded by a fixed header holding LBA at bytes
// 2..10 and length at bytes 10..18, both bi-endian).
func iso9660LocateFile(img GDImage, baseFad uint32, filename string) (lba uint32, length uint32, ok bool) {
	rootLBA, rootLen, found := iso9660RootDirectory(img, baseFad)
	var data []byte
	var dataLen uint32
	if found {
		sectors := (rootLen + 2047) / 2048
		data = make([]byte, sectors*2048)
		if !img.ReadSector(data, 150+rootLBA, sectors, 2048) {
			return 0, 0, false
		}
		dataLen = rootLen
	} else {
		const maxScan = 2048 * 1024
		data = make([]byte, maxScan)
		if !img.ReadSector(data, baseFad+16, maxScan/2048, 2048) {
			return 0, 0, false
		}
		dataLen = maxScan
	}

	needle := []byte(filename)
	limit := int(dataLen) - 20
	for i := 0; i < limit; i++ {
		if i+len(needle) > len(data) {
			break
		}
		if string(data[i:i+len(needle)]) == filename {
			if i < 33 {
				continue
			}
			entry := data[i-33:]
			fileLBA := binary.BigEndian.Uint32(entry[2+4 : 2+8])
			fileLen := binary.BigEndian.Uint32(entry[10+4 : 10+8])
			return fileLBA, fileLen, true
		}
	}
	return 0, 0, false
}
