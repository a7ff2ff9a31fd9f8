package mapper

import "github.com/famicore/pkg/logger"

// Mapper0 (NROM) has no banking hardware at all. The cartridge's
// identity slot mapping stands; register writes go nowhere.
type Mapper0 struct {
	banks Banks
}

// NewMapper0 creates an NROM mapper
func NewMapper0(b Banks) *Mapper0 {
	return &Mapper0{banks: b}
}

func (m *Mapper0) OnPRGWrite(addr uint16, value uint8) {
	if addr >= 0x8000 {
		logger.LogMapper("NROM: ignored write $%04X = $%02X", addr, value)
	}
}

func (m *Mapper0) OnPPUAddrChange(addr uint16) {}

func (m *Mapper0) Tick() {}

func (m *Mapper0) IRQPending() bool { return false }

func (m *Mapper0) State() State { return State{} }

func (m *Mapper0) Restore(s State) {}
