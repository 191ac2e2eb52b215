// reios_hle.go - REIOS HLE BIOS: syscall trap dispatch and disc boot

/*
Grounded on original_source/crates/devcast/reios/src/reios.rs (trap
opcode, syscall-vector patching, IP.BIN metadata parsing, bootfile
location, boot register setup) and
.../devcast/reios/src/gdrom_hle.rs (the GDROM_SEND_COMMAND/CHECK_
COMMAND/CHECK_DRIVE syscall surface and its GETTOC2/PIOREAD/DMAREAD
command handlers).

Re-expressed against this core's own Sh4Ctx/MemoryMap/GDImage types in
place of the reference's ReiosSh4Memory/ReiosSh4Context/ReiosDisc trait
objects — there is exactly one SH-4 context and one memory map per
Dreamcast instance here, so no trait indirection is needed.
*/

package dreamcast

const (
	reiosOpcode uint16 = 0x085B

	biosSyscallSystem   uint32 = 0x8C0000B0
	biosSyscallFont     uint32 = 0x8C0000B4
	biosSyscallFlashrom uint32 = 0x8C0000B8
	biosSyscallGD       uint32 = 0x8C0000BC
	biosSyscallMisc     uint32 = 0x8C0000E0

	biosEntrypointGDBioscall uint32 = 0x8C0010F0

	sysinfoIDAddr uint32 = 0x8C001010
)

var flashromInfo = [5][2]uint32{
	{0 * 1024, 8 * 1024},
	{8 * 1024, 8 * 1024},
	{16 * 1024, 16 * 1024},
	{32 * 1024, 32 * 1024},
	{64 * 1024, 64 * 1024},
}

// IPBinMetadata is the parsed IP.BIN header of the current disc.
type IPBinMetadata struct {
	HardwareID, MakerID, DeviceInfo, AreaSymbols, Peripherals string
	ProductNumber, ProductVersion, ReleaseDate, BootFilename  string
	SoftwareCompany, SoftwareName                             string
	WindowsCE                                                 bool
}

const (
	gdromSyscallGDROM = 0x00

	gdromSendCommand  = 0x00
	gdromCheckCommand = 0x01
	gdromMain         = 0x02
	gdromInit         = 0x03
	gdromCheckDrive   = 0x04
	gdromAbortCommand = 0x08
	gdromReset        = 0x09
	gdromSectorMode   = 0x0A

	gdccPIORead  = 16
	gdccDMARead  = 17
	gdccGetTOC   = 18
	gdccGetTOC2  = 19
	gdccGetSes   = 35
)

// ReiosState is the HLE BIOS: syscall hooks, disc boot metadata, and the
// tiny command-queue emulation the GD-ROM syscall surface expects.
type ReiosState struct {
	baseFad        uint32
	descrambl      bool
	bootfileInited bool
	preInit        bool

	Metadata IPBinMetadata

	hooks map[uint32]int

	secMode  [4]uint32
	lastCmd  uint32
	dwReqID  uint32
}

func NewReiosState() *ReiosState {
	return &ReiosState{
		baseFad: 45150,
		hooks:   make(map[uint32]int),
		lastCmd: 0xFFFFFFFF,
		dwReqID: 0xF0FFFFFF,
	}
}

func syscallAddrMap(addr uint32) uint32 { return (addr & 0x1FFFFFFF) | 0x80000000 }

func readU32BI(b []byte) uint32 {
	return uint32(b[4])<<24 | uint32(b[5])<<16 | uint32(b[6])<<8 | uint32(b[7])
}

func writeMemBlock(m *MemoryMap, addr uint32, data []byte) {
	for i, b := range data {
		Write8(m, addr+uint32(i), b)
	}
}

// Init installs the REIOS trap opcode at the BIOS entry point and
// registers the syscall/boot/exit hook addresses.
func (r *ReiosState) Init(m *MemoryMap) {
	zeros := make([]byte, 64*1024)
	for i := range zeros {
		zeros[i] = 0xFF
	}
	writeMemBlock(m, 0x8C000000, zeros)

	Write16(m, 0xA0000000, reiosOpcode)

	r.registerHook(0xA0000000, 0)
	r.registerHook(0x8C001000, 1)
	r.registerHook(0x8C001002, 2)
	r.registerHook(0x8C001004, 3)
	r.registerHook(0x8C001006, 4)
	r.registerHook(0x8C001008, 5)
	r.registerHook(0x8C00043C, 6)
	r.registerHook(biosEntrypointGDBioscall, 7)
}

func (r *ReiosState) Reset() {
	r.preInit = false
	r.bootfileInited = false
}

func (r *ReiosState) registerHook(pc uint32, hookID int) {
	r.hooks[syscallAddrMap(pc)] = hookID
}

func (r *ReiosState) hookAddr(hookID int) (uint32, bool) {
	for pc, id := range r.hooks {
		if id == hookID {
			return syscallAddrMap(pc), true
		}
	}
	return 0, false
}

func (r *ReiosState) doPreInit(disc GDImage) {
	if r.preInit {
		return
	}
	if disc != nil && disc.GetDiscType() == gdDiscTypeGDROM {
		r.baseFad = 45150
		r.descrambl = false
	} else if disc != nil {
		ses := make([]byte, 6)
		disc.GetSessionInfo(ses, 0)
		session := int(ses[2])
		disc.GetSessionInfo(ses, session)
		r.baseFad = uint32(ses[3])<<16 | uint32(ses[4])<<8 | uint32(ses[5])
		r.descrambl = true
	}
	r.preInit = true
}

// DiskID reads and parses the IP.BIN metadata sector from disc.
func (r *ReiosState) DiskID(m *MemoryMap, disc GDImage) string {
	if !r.preInit {
		r.doPreInit(disc)
	}
	ipBin := make([]byte, 256)
	if disc != nil {
		disc.ReadSector(ipBin, r.baseFad, 1, 2048)
	}
	writeMemBlock(m, 0x8C008000, ipBin)

	trim := func(b []byte) string {
		i := len(b)
		for i > 0 && (b[i-1] == 0 || b[i-1] == ' ') {
			i--
		}
		return string(b[:i])
	}
	r.Metadata.HardwareID = trim(ipBin[0:16])
	r.Metadata.MakerID = trim(ipBin[16:32])
	r.Metadata.DeviceInfo = trim(ipBin[32:48])
	r.Metadata.AreaSymbols = trim(ipBin[48:56])
	r.Metadata.Peripherals = trim(ipBin[56:64])
	r.Metadata.ProductNumber = trim(ipBin[64:74])
	r.Metadata.ProductVersion = trim(ipBin[74:80])
	r.Metadata.ReleaseDate = trim(ipBin[80:96])
	r.Metadata.BootFilename = trim(ipBin[96:112])
	r.Metadata.SoftwareCompany = trim(ipBin[112:128])
	r.Metadata.SoftwareName = trim(ipBin[128:256])
	r.Metadata.WindowsCE = len(r.Metadata.BootFilename) >= 12 && r.Metadata.BootFilename[:12] == "0WINCEOS.BIN"
	return r.Metadata.ProductNumber
}

func (r *ReiosState) locateBootfile(m *MemoryMap, disc GDImage, bootfile string) bool {
	if disc == nil {
		return false
	}
	lba, length, ok := iso9660LocateFile(disc, r.baseFad, bootfile)
	if !ok {
		return false
	}

	fileSectors := (length + 2047) / 2048
	fileData := make([]byte, fileSectors*2048)
	disc.ReadSector(fileData, lba+150, fileSectors, 2048)

	if r.descrambl {
		dst := make([]byte, length)
		DescrambleBuffer(fileData, dst, int(length))
		writeMemBlock(m, 0x8C010000, dst)
	} else {
		writeMemBlock(m, 0x8C010000, fileData[:length])
	}
	r.bootfileInited = true
	return true
}

func (r *ReiosState) setupState(ctx *Sh4Ctx, bootAddr uint32) {
	ctx.R[15] = 0x8D000000
	ctx.GBR = 0x8C000000
	ctx.SSR = 0x40000001
	ctx.SPC = 0x8C000776
	ctx.SGR = 0x8D000000
	ctx.DBR = 0x8C000010
	ctx.VBR = 0x8C000000
	ctx.PR = 0xAC00043C
	ctx.FPUL = 0
	ctx.PC0 = bootAddr
	ctx.PC1 = bootAddr + 2
	ctx.PC2 = bootAddr + 4
	ctx.setSR(0x400000F0)
	ctx.setT(true)
	ctx.FPSCR = 0x00040001
}

// Boot patches the syscall vectors, locates and loads the boot file
// (falling back to a direct dump if no ISO-9660 PVD is found), and sets
// up SH-4 registers to mimic a normal BIOS handoff.
func (r *ReiosState) Boot(m *MemoryMap, ctx *Sh4Ctx, disc GDImage) {
	zeros := make([]byte, 64*1024)
	for i := range zeros {
		zeros[i] = 0xFF
	}
	writeMemBlock(m, 0x8C000000, zeros)

	setupSyscall := func(hookID int, syscallAddr uint32) {
		addr, ok := r.hookAddr(hookID)
		if !ok {
			return
		}
		Write32(m, syscallAddr, addr)
		Write16(m, addr, reiosOpcode)
	}
	setupSyscall(1, biosSyscallSystem)
	setupSyscall(2, biosSyscallFont)
	setupSyscall(3, biosSyscallFlashrom)
	setupSyscall(4, biosSyscallGD)
	setupSyscall(5, biosSyscallMisc)

	if addr, ok := r.hookAddr(6); ok {
		Write16(m, addr, reiosOpcode)
	}
	Write32(m, biosEntrypointGDBioscall, uint32(reiosOpcode))

	Write32(m, 0x80800000, 0xEAFFFFFE)
	Write32(m, 0xFFA00040, 0x8001)

	if !r.bootfileInited {
		r.locateBootfile(m, disc, "1ST_READ.BIN")
	}

	if r.bootfileInited {
		r.setupState(ctx, 0xAC008300)
	} else {
		r.setupState(ctx, 0x8C010000)
	}
}

// Trap handles a REIOS_OPCODE hit at pc: redirects PR as the return
// address and dispatches to the matching hook handler.
func (r *ReiosState) Trap(m *MemoryMap, ctx *Sh4Ctx, disc GDImage) {
	pc := ctx.PC0
	mapped := syscallAddrMap(pc)
	ctx.PC0 = ctx.PR
	ctx.PC1 = ctx.PR + 2
	ctx.PC2 = ctx.PR + 4

	hookID, ok := r.hooks[mapped]
	if !ok {
		return
	}
	switch hookID {
	case 0:
		r.Boot(m, ctx, disc)
	case 1:
		r.sysSystem(m, ctx)
	case 2:
		// sys_font: no-op
	case 3:
		r.sysFlashrom(m, ctx)
	case 4:
		r.gdromHleOp(m, ctx, disc)
	case 5:
		ctx.R[0] = 0
	case 6:
		ctx.Running = false
	case 7:
		r.gdromHleOp(m, ctx, disc)
	}
}

func (r *ReiosState) sysSystem(m *MemoryMap, ctx *Sh4Ctx) {
	switch ctx.R[7] {
	case 0:
		ctx.R[0] = 0
	case 2:
		ctx.R[0] = 704
	case 3:
		Write32(m, sysinfoIDAddr+0, 0xE1E2E3E4)
		Write32(m, sysinfoIDAddr+4, 0xE5E6E7E8)
		ctx.R[0] = sysinfoIDAddr
	}
}

func (r *ReiosState) sysFlashrom(m *MemoryMap, ctx *Sh4Ctx) {
	switch ctx.R[7] {
	case 0:
		part := int(ctx.R[4])
		dest := ctx.R[5]
		if part <= 4 {
			Write32(m, dest+0, flashromInfo[part][0])
			Write32(m, dest+4, flashromInfo[part][1])
			ctx.R[0] = 0
		} else {
			ctx.R[0] = 0xFFFFFFFF
		}
	case 1:
		size := ctx.R[6]
		ctx.R[0] = size
	case 2, 3:
		// write/delete: stub
	}
}

func (r *ReiosState) gdromHleReadTOC(m *MemoryMap, disc GDImage, addr uint32) {
	b := Read32(m, addr+4)
	s := int(Read32(m, addr+0))
	buf := make([]byte, 102*4)
	if disc != nil {
		disc.GetTOC(buf, s)
	}
	for i := 0; i < 102; i++ {
		v := uint32(buf[i*4])<<24 | uint32(buf[i*4+1])<<16 | uint32(buf[i*4+2])<<8 | uint32(buf[i*4+3])
		Write32(m, b+uint32(i*4), v)
	}
}

func (r *ReiosState) readSectorsTo(m *MemoryMap, disc GDImage, addr, sector, count uint32) {
	temp := make([]byte, 2048)
	for i := uint32(0); i < count; i++ {
		if disc != nil {
			disc.ReadSector(temp, sector+i, 1, 2048)
		}
		writeMemBlock(m, addr+i*2048, temp)
	}
}

func (r *ReiosState) gdHleCommand(m *MemoryMap, ctx *Sh4Ctx, disc GDImage, cc, prm uint32) {
	switch cc {
	case gdccGetTOC2:
		r.gdromHleReadTOC(m, disc, ctx.R[5])
	case gdccPIORead:
		addr := ctx.R[5]
		s, n, b := Read32(m, addr+0), Read32(m, addr+4), Read32(m, addr+8)
		r.readSectorsTo(m, disc, b, s, n)
	case gdccDMARead:
		addr := ctx.R[5]
		s, n, b := Read32(m, addr+0), Read32(m, addr+4), Read32(m, addr+8)
		r.readSectorsTo(m, disc, b, s, n)
	}
}

func (r *ReiosState) gdromHleOp(m *MemoryMap, ctx *Sh4Ctx, disc GDImage) {
	r6, r7 := ctx.R[6], ctx.R[7]
	if r6 != gdromSyscallGDROM {
		return
	}
	switch r7 {
	case gdromSendCommand:
		cc, prm := ctx.R[4], ctx.R[5]
		r.gdHleCommand(m, ctx, disc, cc, prm)
		r.lastCmd = r.dwReqID
		r.dwReqID--
		ctx.R[0] = r.lastCmd
	case gdromCheckCommand:
		r4 := ctx.R[4]
		result := uint32(0)
		if r.lastCmd == r4 {
			result = 2
		}
		ctx.R[0] = result
		r.lastCmd = 0xFFFFFFFF
	case gdromMain, gdromInit, gdromReset:
		// no-op
	case gdromCheckDrive:
		r4 := ctx.R[4]
		Write32(m, r4+0, 0x02)
		discType := uint32(0)
		if disc != nil {
			discType = disc.GetDiscType()
		}
		Write32(m, r4+4, discType)
		ctx.R[0] = 0
	case gdromAbortCommand:
		ctx.R[0] = 0xFFFFFFFF
	case gdromSectorMode:
		r4 := ctx.R[4]
		for i := 0; i < 4; i++ {
			r.secMode[i] = Read32(m, r4+uint32(i*4))
		}
		ctx.R[0] = 0
	}
}
