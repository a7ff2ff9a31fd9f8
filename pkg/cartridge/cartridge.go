package cartridge

import (
	"errors"
	"fmt"

	"github.com/famicore/pkg/cartridge/mapper"
	"github.com/famicore/pkg/logger"
)

const (
	prgSlotSize = 0x2000 // 8 KiB PRG slots over $8000-$FFFF
	chrSlotSize = 0x0400 // 1 KiB CHR slots over $0000-$1FFF
	ntSlotSize  = 0x0400 // 1 KiB nametable slots over $2000-$2FFF
)

// powerOnPalette is the hardware power-up pattern of palette RAM.
// Deterministic boot screens depend on this exact sequence.
var powerOnPalette = [32]uint8{
	0x09, 0x01, 0x00, 0x01, 0x00, 0x02, 0x02, 0x0D,
	0x08, 0x10, 0x08, 0x24, 0x00, 0x00, 0x04, 0x2C,
	0x09, 0x01, 0x34, 0x03, 0x00, 0x04, 0x00, 0x14,
	0x08, 0x3A, 0x00, 0x02, 0x00, 0x20, 0x2C, 0x08,
}

// Cartridge owns every byte the mapper can bank: PRG ROM, PRG RAM,
// CHR ROM/RAM, nametable RAM and palette RAM. Address translation goes
// through per-slot offset tables that the mapper rewrites.
type Cartridge struct {
	ROM *ROM

	PRGRAM       []uint8
	CHRRAM       []uint8
	NametableRAM [4 * 1024]uint8
	PaletteRAM   [32]uint8

	// Slot tables hold byte offsets into their backing arrays.
	prgSlot [4]int
	chrSlot [8]int
	ntSlot  [4]int

	Mapper    mapper.Mapper
	mirroring Mirroring
}

// New builds a cartridge around a parsed ROM image and instantiates its
// mapper. Unsupported mapper ids fail construction.
func New(rom *ROM) (*Cartridge, error) {
	c := &Cartridge{ROM: rom}

	prgRAMSize := rom.PRGRAMSize + rom.PRGNVRAMSize
	if prgRAMSize == 0 && rom.HasBattery {
		prgRAMSize = 8 * 1024
	}
	if prgRAMSize > 0 {
		c.PRGRAM = make([]uint8, prgRAMSize)
	}

	if len(rom.CHRROM) == 0 {
		chrRAMSize := rom.CHRRAMSize + rom.CHRNVRAMSize
		if chrRAMSize == 0 {
			chrRAMSize = 8 * 1024
		}
		c.CHRRAM = make([]uint8, chrRAMSize)
	}

	c.PaletteRAM = powerOnPalette

	if rom.Trainer != nil && len(c.PRGRAM) >= 0x1200 {
		copy(c.PRGRAM[0x1000:0x1200], rom.Trainer)
	}

	for i := 0; i < 4; i++ {
		c.MapPRG(i, i)
	}
	for i := 0; i < 8; i++ {
		c.MapCHR(i, i)
	}
	c.SetMirroring(rom.Mirroring)

	m, err := mapper.New(rom.MapperID, banks{c})
	if err != nil {
		var unsupported *mapper.UnsupportedError
		if errors.As(err, &unsupported) {
			return nil, &UnsupportedMapperError{ID: unsupported.ID}
		}
		return nil, fmt.Errorf("creating mapper: %w", err)
	}
	c.Mapper = m

	return c, nil
}

// chrData returns the backing array for pattern data: CHR ROM when
// present, CHR RAM otherwise.
func (c *Cartridge) chrData() []uint8 {
	if len(c.ROM.CHRROM) > 0 {
		return c.ROM.CHRROM
	}
	return c.CHRRAM
}

// MapPRG points an 8 KiB PRG slot at the given bank. Banks wrap modulo
// the PRG ROM size, so a slot offset never exceeds the backing array.
func (c *Cartridge) MapPRG(slot, bank8k int) {
	c.prgSlot[slot] = (bank8k * prgSlotSize) % len(c.ROM.PRGROM)
	if c.prgSlot[slot] < 0 {
		c.prgSlot[slot] += len(c.ROM.PRGROM)
	}
}

// MapCHR points a 1 KiB CHR slot at the given bank, modulo the CHR
// backing size.
func (c *Cartridge) MapCHR(slot, bank1k int) {
	c.chrSlot[slot] = (bank1k * chrSlotSize) % len(c.chrData())
	if c.chrSlot[slot] < 0 {
		c.chrSlot[slot] += len(c.chrData())
	}
}

// MapNametable points a logical nametable slot at a physical 1 KiB page.
func (c *Cartridge) MapNametable(slot, bank1k int) {
	c.ntSlot[slot] = (bank1k * ntSlotSize) % len(c.NametableRAM)
}

// SetMirroring rewires all four nametable slots for the given preset.
func (c *Cartridge) SetMirroring(m Mirroring) {
	c.mirroring = m
	switch m {
	case MirrorOneScreenLow:
		c.mapNametables(0, 0, 0, 0)
	case MirrorOneScreenHigh:
		c.mapNametables(1, 1, 1, 1)
	case MirrorVertical:
		c.mapNametables(0, 1, 0, 1)
	case MirrorHorizontal:
		c.mapNametables(0, 0, 1, 1)
	case MirrorFourScreen:
		c.mapNametables(0, 1, 2, 3)
	}
}

func (c *Cartridge) mapNametables(a, b, d, e int) {
	c.MapNametable(0, a)
	c.MapNametable(1, b)
	c.MapNametable(2, d)
	c.MapNametable(3, e)
}

// Mirroring returns the currently active preset.
func (c *Cartridge) Mirroring() Mirroring {
	return c.mirroring
}

// banks adapts the cartridge to the mapper.Banks interface. The two
// Mirroring enumerations share ordering, so the casts are direct.
type banks struct {
	c *Cartridge
}

func (b banks) MapPRG(slot, bank8k int)       { b.c.MapPRG(slot, bank8k) }
func (b banks) MapCHR(slot, bank1k int)       { b.c.MapCHR(slot, bank1k) }
func (b banks) SetMirroring(m mapper.Mirroring) { b.c.SetMirroring(Mirroring(m)) }
func (b banks) Mirroring() mapper.Mirroring   { return mapper.Mirroring(b.c.mirroring) }
func (b banks) PRGPages() int                 { return b.c.PRGPages() }
func (b banks) CHRPages() int                 { return b.c.CHRPages() }

// PRGPages returns the number of 8 KiB PRG banks.
func (c *Cartridge) PRGPages() int {
	return len(c.ROM.PRGROM) / prgSlotSize
}

// CHRPages returns the number of 1 KiB CHR banks.
func (c *Cartridge) CHRPages() int {
	return len(c.chrData()) / chrSlotSize
}

// PRGPageForAddr reports which 8 KiB bank currently backs a CPU
// address. Debug and trace use only.
func (c *Cartridge) PRGPageForAddr(addr uint16) int {
	if addr < 0x8000 {
		return -1
	}
	return c.prgSlot[(addr-0x8000)/prgSlotSize] / prgSlotSize
}

// ReadPRG handles CPU bus reads at $6000-$FFFF.
func (c *Cartridge) ReadPRG(addr uint16) uint8 {
	switch {
	case addr >= 0x8000:
		slot := int(addr-0x8000) / prgSlotSize
		return c.ROM.PRGROM[c.prgSlot[slot]+int(addr&0x1FFF)]
	case addr >= 0x6000:
		if len(c.PRGRAM) == 0 {
			logger.LogWarn("read from absent PRG RAM at $%04X", addr)
			return 0
		}
		return c.PRGRAM[int(addr-0x6000)%len(c.PRGRAM)]
	default:
		logger.LogWarn("read from unmapped PRG space at $%04X", addr)
		return 0
	}
}

// WritePRG handles CPU bus writes at $6000-$FFFF. Writes into ROM space
// never reach ROM; the mapper sees them as register writes. PRG RAM is
// always writable, battery only selects the backup surface.
func (c *Cartridge) WritePRG(addr uint16, value uint8) {
	switch {
	case addr >= 0x8000:
		c.Mapper.OnPRGWrite(addr, value)
	case addr >= 0x6000:
		if len(c.PRGRAM) == 0 {
			logger.LogWarn("write to absent PRG RAM at $%04X = $%02X", addr, value)
			return
		}
		c.PRGRAM[int(addr-0x6000)%len(c.PRGRAM)] = value
		c.Mapper.OnPRGWrite(addr, value)
	default:
		logger.LogWarn("write to unmapped PRG space at $%04X = $%02X", addr, value)
	}
}

// paletteIndex folds the hardware aliases: $3F10/$3F14/$3F18/$3F1C map
// onto $3F00/$3F04/$3F08/$3F0C.
func paletteIndex(addr uint16) int {
	i := int(addr & 0x1F)
	if i&0x13 == 0x10 {
		i &= 0x0F
	}
	return i
}

// ReadCHR handles PPU bus reads at $0000-$3FFF. Every access first
// notifies the mapper of the PPU address so MMC3 can watch A12.
func (c *Cartridge) ReadCHR(addr uint16) uint8 {
	addr &= 0x3FFF
	c.Mapper.OnPPUAddrChange(addr)
	switch {
	case addr < 0x2000:
		slot := int(addr) / chrSlotSize
		return c.chrData()[c.chrSlot[slot]+int(addr&0x03FF)]
	case addr < 0x3F00:
		slot := int(addr&0x0FFF) / ntSlotSize
		return c.NametableRAM[c.ntSlot[slot]+int(addr&0x03FF)]
	default:
		return c.PaletteRAM[paletteIndex(addr)]
	}
}

// WriteCHR handles PPU bus writes at $0000-$3FFF.
func (c *Cartridge) WriteCHR(addr uint16, value uint8) {
	addr &= 0x3FFF
	c.Mapper.OnPPUAddrChange(addr)
	switch {
	case addr < 0x2000:
		if len(c.ROM.CHRROM) > 0 {
			logger.LogInfo("write to CHR ROM at $%04X = $%02X ignored", addr, value)
			return
		}
		slot := int(addr) / chrSlotSize
		c.CHRRAM[c.chrSlot[slot]+int(addr&0x03FF)] = value
	case addr < 0x3F00:
		slot := int(addr&0x0FFF) / ntSlotSize
		c.NametableRAM[c.ntSlot[slot]+int(addr&0x03FF)] = value
	default:
		c.PaletteRAM[paletteIndex(addr)] = value & 0x3F
	}
}

// PeekPalette reads palette RAM without the mapper notification.
// The renderer resolves colors through this.
func (c *Cartridge) PeekPalette(index uint8) uint8 {
	return c.PaletteRAM[paletteIndex(uint16(index))]
}

// TickMapper advances the mapper by one PPU cycle.
func (c *Cartridge) TickMapper() {
	c.Mapper.Tick()
}

// IRQPending reports the mapper's IRQ line level.
func (c *Cartridge) IRQPending() bool {
	return c.Mapper.IRQPending()
}

// Backup returns the battery-backed PRG RAM contents, or nil when the
// header's battery bit is clear.
func (c *Cartridge) Backup() []uint8 {
	if !c.ROM.HasBattery {
		return nil
	}
	return append([]uint8(nil), c.PRGRAM...)
}

// LoadBackup preloads battery RAM saved by a previous run.
func (c *Cartridge) LoadBackup(dat []uint8) error {
	if len(dat) != len(c.PRGRAM) {
		return &BackupSizeMismatchError{Actual: len(dat), Expected: len(c.PRGRAM)}
	}
	copy(c.PRGRAM, dat)
	return nil
}
