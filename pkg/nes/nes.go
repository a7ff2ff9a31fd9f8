package nes

import (
	"fmt"

	"github.com/famicore/pkg/apu"
	"github.com/famicore/pkg/cartridge"
	"github.com/famicore/pkg/cpu"
	"github.com/famicore/pkg/input"
	"github.com/famicore/pkg/logger"
	"github.com/famicore/pkg/memory"
	"github.com/famicore/pkg/ppu"
)

// NES assembles the core: CPU, PPU, APU, cartridge and the bus that
// clocks them at the 1:3 CPU:PPU ratio.
type NES struct {
	CPU       *cpu.CPU
	PPU       *ppu.PPU
	APU       *apu.APU
	Memory    *memory.Memory
	Cartridge *cartridge.Cartridge

	// Frame counts completed StepFrame calls
	Frame uint64
}

// New builds a core around a cartridge and runs the reset sequence.
func New(cart *cartridge.Cartridge) *NES {
	n := &NES{Cartridge: cart}
	n.PPU = ppu.New(cart)
	n.APU = apu.New(cart)
	n.Memory = memory.New(n.PPU, n.APU, cart)
	n.CPU = cpu.New(n.Memory)
	n.Reset()
	return n
}

// NewFromBytes parses a ROM image, builds its cartridge and core, and
// optionally preloads battery RAM.
func NewFromBytes(dat []uint8, backup []uint8) (*NES, error) {
	rom, err := cartridge.FromBytes(dat)
	if err != nil {
		return nil, fmt.Errorf("parsing ROM: %w", err)
	}
	cart, err := cartridge.New(rom)
	if err != nil {
		return nil, err
	}
	if backup != nil {
		if err := cart.LoadBackup(backup); err != nil {
			return nil, err
		}
	}
	logger.LogInfo("ROM loaded: mapper %d, PRG %d KiB, CHR %d KiB, %s mirroring, %s timing",
		rom.MapperID, len(rom.PRGROM)/1024, len(rom.CHRROM)/1024, rom.Mirroring, rom.Timing)
	if rom.Timing != cartridge.TimingNTSC {
		logger.LogWarn("%s ROM on an NTSC-only core; timing will be off", rom.Timing)
	}
	return New(cart), nil
}

// Reset runs the CPU reset sequence and returns the devices to their
// power-on register state.
func (n *NES) Reset() {
	n.PPU.Reset()
	n.APU.Reset()
	n.CPU.Reset()
}

// StepFrame installs the controller snapshot, then runs whole CPU
// instructions until the PPU finishes the current frame. Device time
// advances under every CPU bus cycle, so the frame boundary is exact
// to within one instruction.
func (n *NES) StepFrame(in *input.State) {
	n.APU.SetInput(in)
	n.APU.BeginFrame()

	start := n.PPU.Frame
	for n.PPU.Frame == start {
		n.CPU.Step()
	}
	n.Frame++
}

// FrameBuffer returns the current frame as 256x240 packed RGB
// triples. The core owns the buffer; it is valid until the next
// StepFrame call.
func (n *NES) FrameBuffer() []uint8 {
	return n.PPU.FrameBuffer[:]
}

// AudioSamples returns the 48 kHz signed samples accumulated during
// the last frame: 799 to 801 of them.
func (n *NES) AudioSamples() []int16 {
	return n.APU.Samples()
}

// Backup returns battery-backed PRG RAM, or nil without a battery.
func (n *NES) Backup() []uint8 {
	return n.Cartridge.Backup()
}
