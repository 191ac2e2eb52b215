// dreamcast.go - top-level supervisor: owns every CPU/device and wires them together

/*
Grounded on original_source/crates/dreamcast/src/lib.rs's top-level
System/Dreamcast struct (owning Sh4Ctx, Arm7Context, the three
interrupt-fabric singletons, and the memory map) and area0.rs's region
layout. Re-architected per the spec's Design Note "Global singletons":
one Dreamcast struct owns the one AsicState/SpgState/AicaState/GdromState
instance and threads pointers through explicitly, rather than reaching
through package-level once_cell::Lazy<Mutex<...>> statics.
*/

package dreamcast

import "fmt"

const (
	sysRAMSize   = 16 * 1024 * 1024
	vramSize     = 8 * 1024 * 1024
	soundRAMSize = 2 * 1024 * 1024
	biosROMSize  = 2 * 1024 * 1024
	flashROMSize = 128 * 1024

	cyclesPerSlice = 2_000_000
)

// BootConfig selects how a Dreamcast instance comes up: a disc image for
// REIOS HLE boot, or a raw ELF32 homebrew binary.
type BootConfig struct {
	DiscImage GDImage
	ELF       []byte
}

// Dreamcast is the single-owner supervisor: one SH-4 context, one ARM7
// context, the ASIC/SPG/AICA interrupt fabric, the GD-ROM controller,
// and the shared memory map, run single-threaded one slice at a time.
type Dreamcast struct {
	Sh4  *Sh4Ctx
	Arm7 *Arm7Ctx

	Asic  *AsicState
	Spg   *SpgState
	Aica  *AicaState
	Gdrom *GdromState
	Reios *ReiosState

	Mmap *MemoryMap

	blocks *sh4BlockTable

	sysRAM   []byte
	vram     []byte
	soundRAM []byte
	bios     []byte
	flash    []byte

	PVR PVRPresenter
}

// NewDreamcast builds an unconfigured supervisor: memory regions are
// allocated and wired, but no program is loaded and no registers are set
// (call Init to boot a config).
func NewDreamcast() *Dreamcast {
	ensureSh4OpcodeTable()

	dc := &Dreamcast{
		Mmap:     NewMemoryMap(),
		sysRAM:   make([]byte, sysRAMSize),
		vram:     make([]byte, vramSize),
		soundRAM: make([]byte, soundRAMSize),
		bios:     make([]byte, biosROMSize),
		flash:    make([]byte, flashROMSize),
		PVR:      NewStubPVR(),
		blocks:   newSh4BlockTable(),
	}

	dc.Asic = NewAsicState()
	dc.Spg = NewSpgState(dc.Asic)
	dc.Aica = NewAicaState(dc.Asic)
	dc.Arm7 = NewArm7Ctx(dc.soundRAM, soundRAMSize-1)
	dc.Gdrom = NewGdromState(dc.Asic, nil)
	dc.Reios = NewReiosState()

	dc.Sh4 = NewSh4Ctx(dc.Mmap)

	dc.wireMemoryMap()
	return dc
}

// wireMemoryMap configures the 256-entry region table: system RAM
// mirrors at 0x0C/0x8C/0xAC, VRAM mirrors at 0x04/0xA4, and the area-0
// handler bank (BIOS/flash/sound-RAM/system-bus registers) at 0x00,
// 0x80-0x83 and 0xA0-0xA3,
// per the spec's memory-map layout.
func (dc *Dreamcast) wireMemoryMap() {
	dc.Mmap.RegisterBuffer(0x0C, 0x0C, sysRAMSize-1, dc.sysRAM, "sysram")
	dc.Mmap.RegisterBuffer(0x8C, 0x8C, sysRAMSize-1, dc.sysRAM, "sysram")
	dc.Mmap.RegisterBuffer(0xAC, 0xAC, sysRAMSize-1, dc.sysRAM, "sysram")

	dc.Mmap.RegisterBuffer(0x04, 0x04, vramSize-1, dc.vram, "vram")
	dc.Mmap.RegisterBuffer(0xA4, 0xA4, vramSize-1, dc.vram, "vram")

	a0 := &area0Ctx{
		bios: dc.bios, flash: dc.flash,
		asic: dc.Asic, spg: dc.Spg, aica: dc.Aica, gdrom: dc.Gdrom, arm7: dc.Arm7,
	}
	handlers := newArea0Handlers()
	dc.Mmap.RegisterHandler(0x00, 0x00, 0x00FFFFFF, handlers, a0, "area0")
	dc.Mmap.RegisterHandler(0x80, 0x83, 0x00FFFFFF, handlers, a0, "area0")
	dc.Mmap.RegisterHandler(0xA0, 0xA3, 0x00FFFFFF, handlers, a0, "area0")
}

// Reset clears every owned CPU/device back to its power-on state.
func (dc *Dreamcast) Reset() {
	dc.Asic.Reset()
	dc.Spg.Reset()
	dc.Aica.Reset()
	dc.Gdrom.Reset()
	dc.Reios.Reset()
	dc.blocks = newSh4BlockTable()
	*dc.Sh4 = *NewSh4Ctx(dc.Mmap)
}

// Init loads a boot configuration: a disc image (REIOS HLE path, PC
// starts at the BIOS entry trap) or a homebrew ELF (direct entry jump).
func (dc *Dreamcast) Init(cfg BootConfig) error {
	dc.Reset()

	if cfg.DiscImage != nil {
		dc.Gdrom.SetImage(cfg.DiscImage)
		dc.Reios.Init(dc.Mmap)
		dc.Sh4.PC0 = 0xA0000000
		dc.Sh4.PC1 = 0xA0000002
		dc.Sh4.PC2 = 0xA0000004
		return nil
	}

	if cfg.ELF != nil {
		entry, err := LoadELF(dc.Mmap, cfg.ELF)
		if err != nil {
			return err
		}
		dc.Sh4.PC0 = entry
		dc.Sh4.PC1 = entry + 2
		dc.Sh4.PC2 = entry + 4
		return nil
	}

	dc.Sh4.PC0 = 0xA0000000
	dc.Sh4.PC1 = 0xA0000002
	dc.Sh4.PC2 = 0xA0000004
	return nil
}

// pollIRQ is RunSlice's block-boundary callback. It doubles as the REIOS
// HLE trap point: since RunSlice calls this before decoding the next
// block, this is the one place that's guaranteed to see the REIOS
// opcode at ctx.PC0 before the (unregistered, illegal-instruction)
// opcode would otherwise reach the recompiler. After servicing it folds
// in the ASIC's external-interrupt lines (AnyPending) as normal.
func (dc *Dreamcast) pollIRQ(ctx *Sh4Ctx) (bool, uint32) {
	if Read16(dc.Mmap, dc.Sh4.PC0) == reiosOpcode {
		dc.Reios.Trap(dc.Mmap, dc.Sh4, dc.Gdrom.image)
	}
	return dc.Asic.AnyPending()
}

// RunSlice runs one ~cyclesPerSlice chunk of SH-4 execution (ticking the
// SPG scanline timer and the ARM7 sound core in lockstep), returning
// whether the core is still running.
func (dc *Dreamcast) RunSlice() bool {
	if !dc.Sh4.Running {
		return false
	}
	RunSlice(dc.Sh4, dc.blocks, cyclesPerSlice, dc.pollIRQ)
	dc.Spg.Tick(cyclesPerSlice)

	armCycles := cyclesPerSlice / 4
	for i := 0; i < armCycles && dc.Arm7.Running; i++ {
		Arm7Step(dc.Arm7)
	}
	return dc.Sh4.Running
}

// Step executes exactly one SH-4 instruction via the interpreter face,
// for the debugger/monitor's single-step command. It bypasses the
// recompiler entirely, so a stepped block's cached compilation (if any)
// is left untouched in the block table.
func (dc *Dreamcast) Step() {
	Step(dc.Sh4)
}

// IsRunning reports whether the SH-4 core is still executing (cleared by
// the REIOS exit syscall).
func (dc *Dreamcast) IsRunning() bool { return dc.Sh4.Running }

// SetRunning force-sets the SH-4 run flag, for host-driven stop/resume.
func (dc *Dreamcast) SetRunning(running bool) { dc.Sh4.Running = running }

// GetRegister looks up a named SH-4 register for debugger/monitor use.
func (dc *Dreamcast) GetRegister(name string) (uint32, bool) {
	switch name {
	case "pc":
		return dc.Sh4.PC0, true
	case "pr":
		return dc.Sh4.PR, true
	case "sr":
		return dc.Sh4.SR, true
	case "gbr":
		return dc.Sh4.GBR, true
	case "vbr":
		return dc.Sh4.VBR, true
	case "macl":
		return dc.Sh4.MACL, true
	case "mach":
		return dc.Sh4.MACH, true
	case "fpul":
		return dc.Sh4.FPUL, true
	case "fpscr":
		return dc.Sh4.FPSCR, true
	}
	if len(name) >= 2 && name[0] == 'r' {
		var idx int
		if _, err := fmt.Sscanf(name[1:], "%d", &idx); err == nil && idx >= 0 && idx < 16 {
			return dc.Sh4.R[idx], true
		}
	}
	return 0, false
}

// Disassemble dispatches to the SH-4 or ARM7 disassembler.
func (dc *Dreamcast) Disassemble(cpu string, addr uint32, count int) []DisassembledLine {
	if cpu == "arm7" {
		return Arm7Disassemble(dc.Arm7, addr, count)
	}
	return Sh4Disassemble(dc.Sh4, addr, count)
}

// ReadMemory reads length bytes starting at addr through the SH-4's
// memory map, for debugger/monitor inspection.
func (dc *Dreamcast) ReadMemory(addr uint32, length int) []byte {
	return dc.Mmap.ReadBytes(addr, length)
}
