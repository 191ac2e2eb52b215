// asic.go - ASIC interrupt controller: three pending registers folded into three SH-4 IRL levels

/*
Grounded line-for-line on original_source/crates/dreamcast/src/asic.rs:
SB_ISTNRM/EXT/ERR pending registers, three IML2/4/6 mask register trios,
write-to-clear semantics on ISTNRM/ISTERR (ISTEXT is cleared only via
CancelExternal, matching the reference's "use cancel for clearing"
comment), and recompute_pending folding the three pending×mask ANDs into
IRL9 (level6)/IRL11 (level4)/IRL13 (level2).

Re-expressed as a supervisor-owned struct instead of the reference's
once_cell::Lazy<Mutex<AsicState>> singleton (Design Note "Global
singletons") — the Dreamcast struct (dreamcast.go) holds the only
instance and calls these methods directly, no lock needed under the
single-thread-per-slice concurrency model.
*/

package dreamcast

const (
	addrSBISTNRM  = 0x005F6900
	addrSBISTEXT  = 0x005F6904
	addrSBISTERR  = 0x005F6908
	addrSBIML2NRM = 0x005F6910
	addrSBIML2EXT = 0x005F6914
	addrSBIML2ERR = 0x005F6918
	addrSBIML4NRM = 0x005F6920
	addrSBIML4EXT = 0x005F6924
	addrSBIML4ERR = 0x005F6928
	addrSBIML6NRM = 0x005F6930
	addrSBIML6EXT = 0x005F6934
	addrSBIML6ERR = 0x005F6938
)

// AsicState holds the three pending-interrupt registers and their three
// per-level mask trios.
type AsicState struct {
	IstNrm, IstExt, IstErr uint32

	Iml2Nrm, Iml2Ext, Iml2Err uint32
	Iml4Nrm, Iml4Ext, Iml4Err uint32
	Iml6Nrm, Iml6Ext, Iml6Err uint32

	// last-computed IRL line state, polled by RunSlice via pollIRQ.
	Level6, Level4, Level2 bool
}

func NewAsicState() *AsicState {
	a := &AsicState{}
	a.RecomputePending()
	return a
}

func (a *AsicState) Reset() {
	*a = AsicState{}
	a.RecomputePending()
}

func AsicHandlesAddress(addr uint32) bool {
	switch addr {
	case addrSBISTNRM, addrSBISTEXT, addrSBISTERR,
		addrSBIML2NRM, addrSBIML2EXT, addrSBIML2ERR,
		addrSBIML4NRM, addrSBIML4EXT, addrSBIML4ERR,
		addrSBIML6NRM, addrSBIML6EXT, addrSBIML6ERR:
		return true
	}
	return false
}

func (a *AsicState) Read(addr uint32) uint32 {
	switch addr {
	case addrSBISTNRM:
		v := a.IstNrm & 0x3FFFFFFF
		if a.IstExt != 0 {
			v |= 0x40000000
		}
		if a.IstErr != 0 {
			v |= 0x80000000
		}
		return v
	case addrSBISTEXT:
		return a.IstExt
	case addrSBISTERR:
		return a.IstErr
	case addrSBIML2NRM:
		return a.Iml2Nrm
	case addrSBIML2EXT:
		return a.Iml2Ext
	case addrSBIML2ERR:
		return a.Iml2Err
	case addrSBIML4NRM:
		return a.Iml4Nrm
	case addrSBIML4EXT:
		return a.Iml4Ext
	case addrSBIML4ERR:
		return a.Iml4Err
	case addrSBIML6NRM:
		return a.Iml6Nrm
	case addrSBIML6EXT:
		return a.Iml6Ext
	case addrSBIML6ERR:
		return a.Iml6Err
	}
	return 0
}

func (a *AsicState) Write(addr uint32, value uint32) {
	switch addr {
	case addrSBISTNRM:
		a.IstNrm &^= value
		a.RecomputePending()
	case addrSBISTEXT:
		// writes ignored; cleared only via CancelExternal
	case addrSBISTERR:
		a.IstErr &^= value
		a.RecomputePending()
	case addrSBIML2NRM:
		a.Iml2Nrm = value
		a.RecomputePending()
	case addrSBIML2EXT:
		a.Iml2Ext = value
		a.RecomputePending()
	case addrSBIML2ERR:
		a.Iml2Err = value
		a.RecomputePending()
	case addrSBIML4NRM:
		a.Iml4Nrm = value
		a.RecomputePending()
	case addrSBIML4EXT:
		a.Iml4Ext = value
		a.RecomputePending()
	case addrSBIML4ERR:
		a.Iml4Err = value
		a.RecomputePending()
	case addrSBIML6NRM:
		a.Iml6Nrm = value
		a.RecomputePending()
	case addrSBIML6EXT:
		a.Iml6Ext = value
		a.RecomputePending()
	case addrSBIML6ERR:
		a.Iml6Err = value
		a.RecomputePending()
	}
}

func (a *AsicState) RaiseNormal(bit uint8)   { a.IstNrm |= 1 << bit; a.RecomputePending() }
func (a *AsicState) RaiseExternal(bit uint8) { a.IstExt |= 1 << bit; a.RecomputePending() }
func (a *AsicState) RaiseError(bit uint8)    { a.IstErr |= 1 << bit; a.RecomputePending() }
func (a *AsicState) CancelExternal(bit uint8) {
	a.IstExt &^= 1 << bit
	a.RecomputePending()
}

// RecomputePending folds the three pending registers against the three
// per-level mask trios into the three SH-4 external IRQ lines: IRL9
// (level6), IRL11 (level4), IRL13 (level2).
func (a *AsicState) RecomputePending() {
	a.Level6 = (a.IstNrm&a.Iml6Nrm) != 0 || (a.IstExt&a.Iml6Ext) != 0 || (a.IstErr&a.Iml6Err) != 0
	a.Level4 = (a.IstNrm&a.Iml4Nrm) != 0 || (a.IstExt&a.Iml4Ext) != 0 || (a.IstErr&a.Iml4Err) != 0
	a.Level2 = (a.IstNrm&a.Iml2Nrm) != 0 || (a.IstExt&a.Iml2Ext) != 0 || (a.IstErr&a.Iml2Err) != 0
}

// AnyPending reports whether any of the three folded IRL lines are active,
// and the highest-priority line's interrupt code (SH-4 IRL9 > IRL11 >
// IRL13) for sh4RaiseInterrupt.
func (a *AsicState) AnyPending() (bool, uint32) {
	switch {
	case a.Level6:
		return true, 9
	case a.Level4:
		return true, 11
	case a.Level2:
		return true, 13
	}
	return false, 0
}
