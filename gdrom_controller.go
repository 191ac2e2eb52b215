// gdrom_controller.go - GD-ROM ATA/ATAPI register-level controller

/*
Grounded line-for-line on original_source/crates/dreamcast/src/gdrom.rs:
the ATA task-file register layout, the ATA-command/ATAPI-packet phase
state machine (Idle/ExpectPacket/DataIn/DataOut), the PIO data-FIFO
transfer helpers, and completion signalling via the ASIC external
interrupt bit. Re-expressed as a supervisor-owned struct (Design Note
"Global singletons") holding a GDImage rather than the reference's
once_cell::Lazy<Mutex<Gdrom>> plus a stub disc reader — real sector
reads are delegated to whatever GDImage the supervisor was configured
with (an Iso9660Image, or none at all for a no-disc boot).
*/

package dreamcast

const (
	gdBase = 0x005F7000

	gdRegAltStatus    = 0x18
	gdRegDevCtrl      = 0x18
	gdRegData         = 0x80
	gdRegError        = 0x84
	gdRegFeatures     = 0x84
	gdRegIntReason    = 0x88
	gdRegSecCount     = 0x88
	gdRegSecNumber    = 0x8C
	gdRegByteCountLow = 0x90
	gdRegByteCountHi  = 0x94
	gdRegDrvSel       = 0x98
	gdRegStatus       = 0x9C
	gdRegCommand      = 0x9C

	gdStatusCheck = 0x01
	gdStatusDRQ   = 0x08
	gdStatusDSC   = 0x10
	gdStatusDRDY  = 0x40
	gdStatusBSY   = 0x80

	gdIntReasonCOD = 0x01
	gdIntReasonIO  = 0x02

	gdromExtBit uint8 = 0

	gdMaxTransferBytes = 2048
)

type gdromPhase int

const (
	gdPhaseIdle gdromPhase = iota
	gdPhaseExpectPacket
	gdPhaseDataIn
	gdPhaseDataOut
)

type gdromRegisters struct {
	status, altStatus, errorReg, features     uint8
	intReason, sectorCount, sectorNumber      uint8
	byteCount                                 uint16
	drvSel, command                           uint8
}

func (r *gdromRegisters) reset() {
	*r = gdromRegisters{status: gdStatusDRDY}
	r.altStatus = r.status
}

// GdromState is the GD-ROM ATA/ATAPI register-level emulation, wired to
// an optional GDImage and the shared AsicState for interrupt signalling.
type GdromState struct {
	regs        gdromRegisters
	dataFifo    []uint16
	image       GDImage
	phase       gdromPhase
	packet      [12]byte
	packetIndex int
	senseKey    uint8
	senseCode   uint8
	senseQual   uint8

	asic *AsicState
}

func NewGdromState(asic *AsicState, image GDImage) *GdromState {
	g := &GdromState{asic: asic, image: image}
	g.regs.reset()
	return g
}

func (g *GdromState) SetImage(image GDImage) { g.image = image }

func (g *GdromState) Reset() {
	g.regs.reset()
	g.dataFifo = g.dataFifo[:0]
	g.phase = gdPhaseIdle
	g.packetIndex = 0
	g.senseKey, g.senseCode, g.senseQual = 0, 0, 0
}

func GdromHandlesAddress(addr uint32) bool { return addr&0xFFFFFF00 == gdBase }

func (g *GdromState) discPresent() bool { return g.image != nil }

func (g *GdromState) Read(addr uint32, size int) uint32 {
	offset := addr - gdBase
	var value uint32
	switch offset {
	case gdRegAltStatus:
		value = uint32(g.regs.altStatus)
	case gdRegData:
		value = g.readDataRegister()
	case gdRegError:
		value = uint32(g.regs.errorReg)
	case gdRegIntReason:
		value = uint32(g.regs.intReason)
	case gdRegSecNumber:
		value = uint32(g.regs.sectorNumber)
	case gdRegByteCountLow:
		value = uint32(g.regs.byteCount & 0xFF)
	case gdRegByteCountHi:
		value = uint32(g.regs.byteCount >> 8)
	case gdRegDrvSel:
		value = uint32(g.regs.drvSel)
	case gdRegStatus:
		value = uint32(g.currentStatus())
	}
	return maskValue(value, size)
}

func (g *GdromState) Write(addr uint32, size int, value uint32) {
	offset := addr - gdBase
	narrowed := maskValue(value, size)
	switch offset {
	case gdRegDevCtrl:
		g.writeDevCtrl(uint8(narrowed))
	case gdRegData:
		g.writeDataRegister(uint16(narrowed))
	case gdRegFeatures:
		g.regs.features = uint8(narrowed)
	case gdRegSecCount:
		g.regs.sectorCount = uint8(narrowed)
	case gdRegSecNumber:
		g.regs.sectorNumber = uint8(narrowed)
	case gdRegByteCountLow:
		g.regs.byteCount = (g.regs.byteCount & 0xFF00) | uint16(uint8(narrowed))
	case gdRegByteCountHi:
		g.regs.byteCount = (g.regs.byteCount & 0x00FF) | (uint16(uint8(narrowed)) << 8)
	case gdRegDrvSel:
		g.regs.drvSel = uint8(narrowed)
	case gdRegCommand:
		g.writeCommand(uint8(narrowed))
	}
}

func (g *GdromState) readDataRegister() uint32 {
	if len(g.dataFifo) == 0 {
		return 0
	}
	word := g.dataFifo[0]
	g.dataFifo = g.dataFifo[1:]
	if len(g.dataFifo) == 0 {
		g.completeDataPhase()
	}
	return uint32(word)
}

func (g *GdromState) writeDataRegister(value uint16) {
	switch g.phase {
	case gdPhaseExpectPacket:
		g.pushPacketWord(value)
	case gdPhaseDataOut:
		// consumed and ignored
	default:
		if len(g.dataFifo) < 32 {
			g.dataFifo = append(g.dataFifo, value)
		}
	}
}

func (g *GdromState) writeDevCtrl(value uint8) {
	nien := (value >> 1) & 1
	if nien != 0 {
		g.regs.status &^= gdStatusDRQ
	}
	if value&0x04 != 0 {
		g.Reset()
	}
}

func (g *GdromState) writeCommand(value uint8) {
	g.regs.command = value
	g.regs.status |= gdStatusBSY
	switch value {
	case 0x00, 0x08:
		g.completeSuccess()
	case 0xA0:
		g.enterPacketPhase()
	case 0xA1, 0xEC:
		g.prepareIdentifyData()
	default:
		g.completeSuccess()
	}
}

func (g *GdromState) currentStatus() uint8 {
	status := g.regs.status
	if g.senseKey != 0 || !g.discPresent() {
		status |= gdStatusCheck
	}
	return status
}

func (g *GdromState) prepareIdentifyData() {
	data := make([]byte, 512)
	data[0] = 0x85
	data[2], data[3] = 0x00, 0x02
	data[98], data[99] = 0x00, 0x2F
	data[166], data[167] = 0x00, 0x04
	g.startPIOTransfer(data)
	g.phase = gdPhaseDataIn
}

func (g *GdromState) enterPacketPhase() {
	g.phase = gdPhaseExpectPacket
	g.packetIndex = 0
	g.packet = [12]byte{}
	g.dataFifo = g.dataFifo[:0]
	g.regs.byteCount = 12
	g.regs.intReason = gdIntReasonCOD
	g.regs.status &^= gdStatusBSY
	g.regs.status |= gdStatusDRDY | gdStatusDRQ
	g.regs.altStatus = g.regs.status
	g.signalInterrupt()
}

func (g *GdromState) pushPacketWord(word uint16) {
	if g.packetIndex < len(g.packet) {
		g.packet[g.packetIndex] = uint8(word & 0xFF)
		g.packetIndex++
	}
	if g.packetIndex < len(g.packet) {
		g.packet[g.packetIndex] = uint8(word >> 8)
		g.packetIndex++
	}
	if g.packetIndex >= len(g.packet) {
		g.regs.status |= gdStatusBSY
		g.regs.status &^= gdStatusDRQ
		g.phase = gdPhaseIdle
		g.processPacket()
	}
}

func (g *GdromState) processPacket() {
	defer func() { g.packetIndex = 0 }()
	switch g.packet[0] {
	case 0x00:
		g.cmdTestUnitReady()
	case 0x10:
		g.cmdRequestStatus()
	case 0x11:
		g.cmdRequestMode()
	case 0x12:
		g.completeSuccess()
	case 0x13:
		g.cmdRequestError()
	case 0x14:
		g.cmdGetTOC()
	case 0x15:
		g.cmdRequestSession()
	case 0x20, 0x21, 0x22:
		g.completeSuccess()
	case 0x30, 0x31:
		g.cmdRead()
	case 0x40:
		g.cmdRequestSubcode()
	default:
		g.completeError(0x05, 0x20, 0x00)
	}
}

func (g *GdromState) cmdTestUnitReady() {
	if g.discPresent() {
		g.completeSuccess()
	} else {
		g.completeError(0x02, 0x3A, 0x00)
	}
}

func (g *GdromState) cmdRequestStatus() {
	data := make([]byte, 8)
	if !g.discPresent() {
		data[0] = 0x02
	}
	data[1], data[2], data[3] = g.senseKey, g.senseCode, g.senseQual
	g.startPIOTransfer(data)
}

func (g *GdromState) cmdRequestMode() {
	length := int(g.packet[4])
	if length < 8 {
		length = 8
	}
	if length > gdMaxTransferBytes {
		length = gdMaxTransferBytes
	}
	g.startPIOTransfer(make([]byte, length))
}

func (g *GdromState) cmdRequestError() {
	data := make([]byte, 18)
	data[0] = 0x70
	data[2], data[7], data[8] = g.senseKey, g.senseCode, g.senseQual
	g.startPIOTransfer(data)
}

func (g *GdromState) cmdGetTOC() {
	length := (int(g.packet[3])<<8 | int(g.packet[4]))
	if length < 8 {
		length = 8
	}
	if length > gdMaxTransferBytes {
		length = gdMaxTransferBytes
	}
	buf := make([]byte, length)
	if g.image != nil {
		g.image.GetTOC(buf, 0)
	}
	g.startPIOTransfer(buf)
}

func (g *GdromState) cmdRequestSession() {
	length := (int(g.packet[3])<<8 | int(g.packet[4]))
	if length < 8 {
		length = 8
	}
	if length > gdMaxTransferBytes {
		length = gdMaxTransferBytes
	}
	buf := make([]byte, length)
	if g.image != nil {
		g.image.GetSessionInfo(buf, int(g.packet[2]))
	}
	g.startPIOTransfer(buf)
}

func (g *GdromState) cmdRequestSubcode() {
	g.startPIOTransfer(make([]byte, 96))
}

func (g *GdromState) cmdRead() {
	sectorCount := uint32(g.packet[8])<<16 | uint32(g.packet[9])<<8 | uint32(g.packet[10])
	blocks := sectorCount
	if blocks == 0 {
		blocks = 0x10000
	}
	bytes := int(blocks) * 2048
	length := bytes
	if length > gdMaxTransferBytes {
		length = gdMaxTransferBytes
	}
	if length < 2048 {
		length = 2048
	}
	data := make([]byte, length)
	if g.image != nil {
		fad := uint32(g.packet[2])<<16 | uint32(g.packet[3])<<8 | uint32(g.packet[4])
		g.image.ReadSector(data, fad, uint32(length/2048), 2048)
	}
	g.startPIOTransfer(data)
	g.phase = gdPhaseDataIn
}

func (g *GdromState) startPIOTransfer(payload []byte) {
	g.dataFifo = g.dataFifo[:0]
	for i := 0; i < len(payload); i += 2 {
		lo := payload[i]
		var hi byte
		if i+1 < len(payload) {
			hi = payload[i+1]
		}
		g.dataFifo = append(g.dataFifo, uint16(lo)|uint16(hi)<<8)
	}
	g.regs.byteCount = uint16(len(payload))
	g.regs.status &^= gdStatusBSY
	g.regs.status |= gdStatusDRDY | gdStatusDRQ
	g.regs.intReason = gdIntReasonIO
	g.regs.altStatus = g.regs.status
	g.phase = gdPhaseDataIn
	g.signalInterrupt()
}

func (g *GdromState) signalInterrupt() { g.asic.RaiseExternal(gdromExtBit) }

func (g *GdromState) clearSense() {
	g.senseKey, g.senseCode, g.senseQual = 0, 0, 0
	g.regs.errorReg = 0
}

func (g *GdromState) setSense(key, asc, ascq uint8) {
	g.senseKey, g.senseCode, g.senseQual = key, asc, ascq
	g.regs.errorReg = (key & 0x0F) << 4
}

func (g *GdromState) completeSuccess() {
	g.clearSense()
	g.regs.status &^= gdStatusBSY | gdStatusDRQ
	g.regs.status |= gdStatusDSC | gdStatusDRDY
	g.regs.altStatus = g.regs.status
	g.phase = gdPhaseIdle
	g.signalInterrupt()
}

func (g *GdromState) completeError(key, asc, ascq uint8) {
	g.setSense(key, asc, ascq)
	g.regs.status &^= gdStatusBSY | gdStatusDRQ
	g.regs.status |= gdStatusDSC | gdStatusDRDY | gdStatusCheck
	g.regs.altStatus = g.regs.status
	g.phase = gdPhaseIdle
	g.signalInterrupt()
}

func (g *GdromState) completeDataPhase() {
	g.phase = gdPhaseIdle
	g.clearSense()
	g.regs.status &^= gdStatusDRQ | gdStatusBSY
	g.regs.status |= gdStatusDSC | gdStatusDRDY
	g.regs.altStatus = g.regs.status
	g.signalInterrupt()
}
