// sh4_context.go - SH-4 architectural register file

/*
Sh4Ctx holds everything one SH-4 execution context owns: the sixteen
general registers plus the privileged-mode alternate bank, the status and
FPU-status words, the three-deep PC pipeline, the FPU register banks, and
the decoder/recompiler scratch fields used while a block is being built.

Grounded on original_source/crates/sh4-core/src/lib.rs's Sh4Ctx (field
names and the pc0/pc1/pc2 + is_delayslot0/1 pipeline are kept exactly;
FRBank/MacReg's Rust unions become plain Go arrays/struct with u32/f32
reinterpretation helpers, since Go has no native union type).
*/

package dreamcast

import "math"

// SR bit positions.
const (
	srT     = 0
	srS     = 1
	srIMASK = 4 // width 4
	srQ     = 8
	srM     = 9
	srFD    = 15
	srBL    = 28
	srRB    = 29
	srMD    = 30
)

// FPSCR bit positions.
const (
	fpscrRM    = 0 // width 2
	fpscrDN    = 18
	fpscrPR    = 19
	fpscrSZ    = 20
	fpscrFR    = 21
)

// FRBank is one 32-entry float register bank, reinterpretable as u32 lanes
// or as 16 paired doubles (FPSCR.PR=1).
type FRBank struct {
	F [32]float32
}

func (b *FRBank) U32(i int) uint32     { return math.Float32bits(b.F[i]) }
func (b *FRBank) SetU32(i int, v uint32) { b.F[i] = math.Float32frombits(v) }

func (b *FRBank) F64(pair int) float64 {
	hi := b.U32(pair * 2)
	lo := b.U32(pair*2 + 1)
	return math.Float64frombits(uint64(hi)<<32 | uint64(lo))
}

func (b *FRBank) SetF64(pair int, v float64) {
	bits := math.Float64bits(v)
	b.SetU32(pair*2, uint32(bits>>32))
	b.SetU32(pair*2+1, uint32(bits))
}

// Sh4Ctx is the SH-4 architectural state, owned by exactly one execution
// context (the supervisor embeds one).
type Sh4Ctx struct {
	R     [16]uint32
	RBank [8]uint32 // alternate R0..R7 bank, swapped with SR.RB

	RemainingCycles int32

	PC0, PC1, PC2           uint32
	IsDelaySlot0, IsDelaySlot1 bool

	FR FRBank
	XF FRBank

	SrT   uint32 // cached T bit, kept consistent with SR bit 0
	SR    uint32
	MACL  uint32
	MACH  uint32
	FPUL  uint32
	FPSCR uint32

	GBR, SSR, SPC, SGR, DBR, VBR, PR uint32

	// Running is cleared by the REIOS HLE exit syscall to signal the
	// supervisor's run loop to stop.
	Running bool

	// decoder/recompiler scratch state, valid only while a block is being
	// built by sh4BuildBlock.
	decBranch       int // 0=none 1=cond 2=static 3=dynamic 4=rte
	decBranchCond   uint32
	decBranchNext   uint32
	decBranchTarget uint32
	decBranchDynIdx int // register index holding the dynamic target, -1 if none
	decBranchDSlot  bool
	decPendingSSR   uint32 // rte's staged SSR, applied to SR only once the delay slot commits

	mmap *MemoryMap
}

// NewSh4Ctx returns a zeroed SH-4 context wired to the given memory map,
// with pc1/pc2 pre-advanced per the reference's Default impl.
func NewSh4Ctx(mmap *MemoryMap) *Sh4Ctx {
	return &Sh4Ctx{PC1: 2, PC2: 4, mmap: mmap, decBranchDynIdx: -1, Running: true}
}

// sr bit helpers. SR.T is mirrored into SrT on every write per invariant 2.

func (c *Sh4Ctx) setSR(v uint32) {
	c.SR = v
	c.SrT = v & 1
}

func (c *Sh4Ctx) srBit(bit uint) bool { return c.SR&(1<<bit) != 0 }

func (c *Sh4Ctx) setT(v bool) {
	if v {
		c.SR |= 1
		c.SrT = 1
	} else {
		c.SR &^= 1
		c.SrT = 0
	}
}

func (c *Sh4Ctx) srIMASKValue() uint32 { return (c.SR >> srIMASK) & 0xF }

func (c *Sh4Ctx) fpscrBit(bit uint) bool { return c.FPSCR&(1<<bit) != 0 }

// swapFPBanks implements frchg: swap FR and XF wholesale.
func (c *Sh4Ctx) swapFPBanks() {
	c.FR, c.XF = c.XF, c.FR
}

// swapRBanks implements the R0..R7 bank switch on SR.RB toggle.
func (c *Sh4Ctx) swapRBanks() {
	for i := 0; i < 8; i++ {
		c.R[i], c.RBank[i] = c.RBank[i], c.R[i]
	}
}
