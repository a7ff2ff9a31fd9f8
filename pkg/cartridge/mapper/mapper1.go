package mapper

import "github.com/famicore/pkg/logger"

// MMC1 PRG banking modes, selected by control register bits 2-3.
const (
	prgSwitch32K uint8 = iota
	prgSwitch16KLow
	prgSwitch16KHigh
)

// Mapper1 (MMC1) is driven through a 5-bit serial port: software writes
// one bit at a time to $8000-$FFFF, and the fifth write commits the
// accumulated value to the register selected by address bits 13-14.
type Mapper1 struct {
	banks Banks

	shift      uint8
	shiftCount uint8

	prgMode uint8
	chrMode uint8 // 0: 8 KiB, 1: 4 KiB
}

// NewMapper1 creates an MMC1 mapper
func NewMapper1(b Banks) *Mapper1 {
	m := &Mapper1{
		banks:   b,
		prgMode: prgSwitch16KLow,
	}
	pages := b.PRGPages()
	b.MapPRG(0, 0)
	b.MapPRG(1, 1)
	b.MapPRG(2, pages-2)
	b.MapPRG(3, pages-1)
	return m
}

func (m *Mapper1) OnPRGWrite(addr uint16, value uint8) {
	if addr < 0x8000 {
		return
	}

	if value&0x80 != 0 {
		// Reset strobe: clear the shift register and force the
		// 16 KiB-low PRG mode (control |= $0C).
		logger.LogMapper("MMC1 reset strobe")
		m.shift = 0
		m.shiftCount = 0
		m.prgMode = prgSwitch16KLow
		return
	}

	m.shift |= (value & 1) << m.shiftCount
	m.shiftCount++
	if m.shiftCount < 5 {
		return
	}

	cmd := m.shift
	m.shift = 0
	m.shiftCount = 0

	reg := (addr >> 13) & 3
	logger.LogMapper("MMC1 reg[%d] <- $%02X", reg, cmd)

	switch reg {
	case 0: // Control
		switch cmd & 0x03 {
		case 0:
			m.banks.SetMirroring(MirrorOneScreenLow)
		case 1:
			m.banks.SetMirroring(MirrorOneScreenHigh)
		case 2:
			m.banks.SetMirroring(MirrorVertical)
		case 3:
			m.banks.SetMirroring(MirrorHorizontal)
		}
		switch (cmd >> 2) & 3 {
		case 0, 1:
			m.prgMode = prgSwitch32K
		case 2:
			m.prgMode = prgSwitch16KHigh
		case 3:
			m.prgMode = prgSwitch16KLow
		}
		m.chrMode = (cmd >> 4) & 1

	case 1: // CHR bank 0
		if m.chrMode == 0 {
			page := int(cmd >> 1)
			for i := 0; i < 8; i++ {
				m.banks.MapCHR(i, page*8+i)
			}
		} else {
			page := int(cmd)
			for i := 0; i < 4; i++ {
				m.banks.MapCHR(i, page*4+i)
			}
		}

	case 2: // CHR bank 1
		if m.chrMode == 0 {
			logger.LogMapper("MMC1: high CHR bank set in 8K CHR mode")
		} else {
			page := int(cmd)
			for i := 0; i < 4; i++ {
				m.banks.MapCHR(i+4, page*4+i)
			}
		}

	case 3: // PRG bank
		pages := m.banks.PRGPages()
		switch m.prgMode {
		case prgSwitch32K:
			page := int(cmd&0x0F) >> 1
			for i := 0; i < 4; i++ {
				m.banks.MapPRG(i, page*4+i)
			}
		case prgSwitch16KLow:
			page := int(cmd & 0x0F)
			m.banks.MapPRG(0, page*2)
			m.banks.MapPRG(1, page*2+1)
			m.banks.MapPRG(2, pages-2)
			m.banks.MapPRG(3, pages-1)
		case prgSwitch16KHigh:
			page := int(cmd & 0x0F)
			m.banks.MapPRG(0, 0)
			m.banks.MapPRG(1, 1)
			m.banks.MapPRG(2, page*2)
			m.banks.MapPRG(3, page*2+1)
		}
	}
}

func (m *Mapper1) OnPPUAddrChange(addr uint16) {}

func (m *Mapper1) Tick() {}

func (m *Mapper1) IRQPending() bool { return false }

func (m *Mapper1) State() State {
	return State{
		Shift:      m.shift,
		ShiftCount: m.shiftCount,
		PRGMode:    m.prgMode,
		CHRMode:    m.chrMode,
	}
}

func (m *Mapper1) Restore(s State) {
	m.shift = s.Shift
	m.shiftCount = s.ShiftCount
	m.prgMode = s.PRGMode
	m.chrMode = s.CHRMode
}
