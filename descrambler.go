// descrambler.go - CD boot-file descrambler

/*
Grounded line-for-line on
original_source/crates/devcast/reios/src/descrambl.rs: the 16-bit PRNG
(seed*2109+9273 masked to 0x7FFF, yielding seed+0xC000 masked to
0xFFFF) and the chunked 32-byte-slice shuffle (2 MiB chunks, halved
down to 32 B, each chunk shuffled via a reverse Fisher-Yates pass keyed
by the PRNG).
*/

package dreamcast

const descramblerMaxChunk = 2048 * 1024

type descramblerRNG struct {
	seed uint16
}

func newDescramblerRNG(n uint32) *descramblerRNG {
	return &descramblerRNG{seed: uint16(n & 0xFFFF)}
}

func (r *descramblerRNG) next() uint16 {
	r.seed = uint16((uint32(r.seed)*2109 + 9273) & 0x7FFF)
	return uint16((uint32(r.seed) + 0xC000) & 0xFFFF)
}

// descrambleLoadChunk shuffles sz bytes (a multiple of 32) of src into dst
// using the reverse Fisher-Yates pass the CD boot descrambler uses.
func descrambleLoadChunk(src []byte, dst []byte, sz int, rng *descramblerRNG) {
	numSlices := sz / 32
	idx := make([]int, numSlices)
	for i := range idx {
		idx[i] = i
	}
	for i := numSlices - 1; i >= 0; i-- {
		randVal := int(rng.next())
		x := (randVal * i) >> 16
		idx[i], idx[x] = idx[x], idx[i]

		srcStart := i * 32
		dstStart := idx[i] * 32
		copy(dst[dstStart:dstStart+32], src[srcStart:srcStart+32])
	}
}

// DescrambleBuffer descrambles filesz bytes of src (a scrambled CD boot
// file) into dst, which must be at least filesz bytes.
func DescrambleBuffer(src []byte, dst []byte, filesz int) {
	rng := newDescramblerRNG(uint32(filesz))
	srcOff := 0
	dstOff := 0
	remaining := filesz

	for chunksz := descramblerMaxChunk; chunksz >= 32; chunksz >>= 1 {
		for remaining >= chunksz {
			descrambleLoadChunk(src[srcOff:srcOff+chunksz], dst[dstOff:dstOff+chunksz], chunksz, rng)
			srcOff += chunksz
			dstOff += chunksz
			remaining -= chunksz
		}
	}

	if remaining > 0 {
		copy(dst[dstOff:dstOff+remaining], src[srcOff:srcOff+remaining])
	}
}
