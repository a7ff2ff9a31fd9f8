package apu

import (
	"github.com/famicore/pkg/input"
	"github.com/famicore/pkg/logger"
)

const (
	// NTSC geometry shared with the PPU: the sampler paces itself
	// in PPU clocks so a frame yields 800 +/- 1 samples at 48 kHz.
	ppuClocksPerFrame = 341 * 262
	ppuClocksPerCPU   = 3
	samplesPerFrame   = 48000 / 60
)

// frameSteps are the frame sequencer thresholds in CPU cycles.
var frameSteps = [5]int{7457, 14913, 22371, 29829, 37281}

// lengthTable translates the 5-bit length-counter load values.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// PRGReader lets the DMC fetch sample bytes through the cartridge
// memory read path.
type PRGReader interface {
	ReadPRG(addr uint16) uint8
}

// APU holds the five channels, the frame sequencer and the controller
// shift registers. Tick runs once per CPU cycle.
type APU struct {
	Pulse    [2]Pulse
	Triangle Triangle
	Noise    Noise
	DMC      DMC

	// Frame sequencer
	FrameMode5      bool // 5-step mode when set
	FrameIRQInhibit bool
	FrameCounter    int
	// $4017 writes land after a 3-cycle delay
	FrameResetDelay int

	frameIRQ bool
	dmcIRQ   bool

	Cycles uint64

	// Controller interface
	ControllerLatch bool
	PadShift        [2]uint8
	in              input.State

	// Sampling
	SamplerCounter uint64
	samples        []int16

	// FilterEnabled routes output through the 90 Hz/440 Hz
	// high-pass and 14 kHz low-pass chain.
	FilterEnabled bool
	filters       *filterChain

	prg PRGReader
}

// New creates an APU. The PRG reader feeds the DMC.
func New(prg PRGReader) *APU {
	a := &APU{
		prg:           prg,
		FilterEnabled: true,
		filters:       newFilterChain(48000),
		samples:       make([]int16, 0, samplesPerFrame+8),
	}
	a.Noise.Shift = 1
	a.DMC.ShiftRemain = 8
	return a
}

// Reset silences every channel and restarts the sequencer.
func (a *APU) Reset() {
	in := a.in
	prg := a.prg
	filters := a.filters
	*a = APU{
		prg:           prg,
		FilterEnabled: a.FilterEnabled,
		filters:       filters,
		in:            in,
		samples:       a.samples[:0],
	}
	a.Noise.Shift = 1
	a.DMC.ShiftRemain = 8
}

// SetInput installs the per-frame controller snapshot.
func (a *APU) SetInput(in *input.State) {
	if in != nil {
		a.in = *in
	}
}

// FrameIRQ reports the frame-counter IRQ line.
func (a *APU) FrameIRQ() bool { return a.frameIRQ }

// DMCIRQ reports the DMC IRQ line.
func (a *APU) DMCIRQ() bool { return a.dmcIRQ }

// Samples returns the audio accumulated since the last BeginFrame.
func (a *APU) Samples() []int16 {
	return a.samples
}

// BeginFrame discards the previous frame's samples.
func (a *APU) BeginFrame() {
	a.samples = a.samples[:0]
}

// Tick advances the APU by one CPU cycle.
func (a *APU) Tick() {
	a.FrameCounter++

	quarter := false
	half := false

	switch a.FrameCounter {
	case frameSteps[0], frameSteps[2]:
		quarter = true
	case frameSteps[1]:
		quarter = true
		half = true
	case frameSteps[3]:
		if !a.FrameMode5 {
			quarter = true
			half = true
			if !a.FrameIRQInhibit {
				a.frameIRQ = true
			}
			a.FrameCounter = 0
		}
	case frameSteps[4]:
		quarter = true
		half = true
		a.FrameCounter = 0
	}

	if a.FrameResetDelay > 0 {
		a.FrameResetDelay--
		if a.FrameResetDelay == 0 {
			a.FrameCounter = 0
			if a.FrameMode5 {
				quarter = true
				half = true
			}
		}
	}

	if quarter {
		a.clockQuarterFrame()
	}
	if half {
		a.clockHalfFrame()
	}

	a.Cycles++

	// Pulse and noise sequencers run at half the CPU rate; the
	// triangle runs at full rate.
	if a.Cycles&1 == 1 {
		a.Pulse[0].clockSequencer()
		a.Pulse[1].clockSequencer()
		a.Noise.clockSequencer()
	}
	a.Triangle.clockSequencer()
	a.clockDMC()

	a.SamplerCounter += samplesPerFrame * ppuClocksPerCPU
	if a.SamplerCounter >= ppuClocksPerFrame {
		a.SamplerCounter -= ppuClocksPerFrame
		a.samples = append(a.samples, a.sample())
	}
}

func (a *APU) clockQuarterFrame() {
	a.Pulse[0].clockEnvelope()
	a.Pulse[1].clockEnvelope()
	a.Noise.clockEnvelope()
	a.Triangle.clockLinearCounter()
}

func (a *APU) clockHalfFrame() {
	a.Pulse[0].clockLengthAndSweep(true)
	a.Pulse[1].clockLengthAndSweep(false)
	a.Triangle.clockLength()
	a.Noise.clockLength()
}

// clockDMC advances the sample shifter and refills its buffer from
// PRG space when a sample is pending.
func (a *APU) clockDMC() {
	d := &a.DMC

	if d.ShiftCounter == 0 {
		d.ShiftCounter = dmcRates[d.RateIndex]

		if !d.Silence {
			if d.ShiftReg&1 != 0 {
				if d.OutputLevel <= 0x7D {
					d.OutputLevel += 2
				}
			} else if d.OutputLevel >= 2 {
				d.OutputLevel -= 2
			}
			d.ShiftReg >>= 1
		}

		d.ShiftRemain--
		if d.ShiftRemain == 0 {
			d.ShiftRemain = 8
			if d.BufferFull {
				d.ShiftReg = d.Buffer
				d.BufferFull = false
				d.Silence = false
			} else {
				d.Silence = true
			}
		}
	} else {
		d.ShiftCounter--
	}

	if !d.BufferFull && d.LengthCounter != 0 {
		d.Buffer = a.prg.ReadPRG(d.CurAddr)
		d.BufferFull = true

		d.CurAddr++
		if d.CurAddr == 0 {
			d.CurAddr = 0x8000
		}
		d.LengthCounter--
		if d.LengthCounter == 0 {
			if d.Loop {
				d.CurAddr = d.SampleAddr
				d.LengthCounter = d.SampleLength
			} else if d.IRQEnabled {
				a.dmcIRQ = true
			}
		}
	}
}

// sample mixes the five channel outputs with the linear
// approximation and runs the result through the filter chain.
func (a *APU) sample() int16 {
	p0 := float64(a.Pulse[0].output(true))
	p1 := float64(a.Pulse[1].output(false))
	t := float64(a.Triangle.output())
	n := float64(a.Noise.output())
	d := float64(a.DMC.OutputLevel)

	pulseOut := 0.00752 * (p0 + p1)
	tndOut := 0.00851*t + 0.00494*n + 0.00335*d

	out := pulseOut + tndOut
	if a.FilterEnabled {
		out = a.filters.run(out)
	}

	v := out * 30000.0
	if v > 32767 {
		v = 32767
	} else if v < -32768 {
		v = -32768
	}
	return int16(v)
}

// ReadRegister handles CPU reads of $4015-$4017.
func (a *APU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case 0x4015:
		var v uint8
		if a.Pulse[0].LengthCounter > 0 {
			v |= 0x01
		}
		if a.Pulse[1].LengthCounter > 0 {
			v |= 0x02
		}
		if a.Triangle.LengthCounter > 0 {
			v |= 0x04
		}
		if a.Noise.LengthCounter > 0 {
			v |= 0x08
		}
		if a.DMC.LengthCounter > 0 {
			v |= 0x10
		}
		if a.frameIRQ {
			v |= 0x40
		}
		if a.dmcIRQ {
			v |= 0x80
		}
		// Reading status acknowledges the frame IRQ.
		a.frameIRQ = false
		return v

	case 0x4016, 0x4017:
		ix := int(addr - 0x4016)
		if a.ControllerLatch {
			// Free-running latch mode: the register tracks the
			// live pad, so a read always sees button A.
			return a.in.Pads[ix].Bits() & 1
		}
		v := a.PadShift[ix] & 1
		a.PadShift[ix] = a.PadShift[ix]>>1 | 0x80
		return v
	}

	logger.LogAPU("read from write-only APU register $%04X", addr)
	return 0
}

// WriteRegister handles CPU writes of $4000-$4017 (except $4014).
func (a *APU) WriteRegister(addr uint16, value uint8) {
	switch {
	case addr <= 0x4003:
		a.Pulse[0].write(addr&3, value)
	case addr <= 0x4007:
		a.Pulse[1].write(addr&3, value)
	case addr <= 0x400B:
		a.Triangle.write(addr&3, value)
	case addr <= 0x400F:
		a.Noise.write(addr&3, value)
	case addr <= 0x4013:
		a.writeDMC(addr&3, value)

	case addr == 0x4015:
		a.Pulse[0].setEnabled(value&0x01 != 0)
		a.Pulse[1].setEnabled(value&0x02 != 0)
		a.Triangle.setEnabled(value&0x04 != 0)
		a.Noise.setEnabled(value&0x08 != 0)

		if value&0x10 == 0 {
			a.DMC.Enabled = false
			a.DMC.LengthCounter = 0
		} else {
			a.DMC.Enabled = true
			if a.DMC.LengthCounter == 0 {
				a.DMC.CurAddr = a.DMC.SampleAddr
				a.DMC.LengthCounter = a.DMC.SampleLength
			}
		}
		a.dmcIRQ = false

	case addr == 0x4016:
		a.ControllerLatch = value&1 != 0
		if a.ControllerLatch {
			a.PadShift[0] = a.in.Pads[0].Bits()
			a.PadShift[1] = a.in.Pads[1].Bits()
		}

	case addr == 0x4017:
		a.FrameMode5 = value&0x80 != 0
		a.FrameIRQInhibit = value&0x40 != 0
		if a.FrameIRQInhibit {
			a.frameIRQ = false
		}
		a.FrameResetDelay = 3

	default:
		logger.LogAPU("write to unused APU register $%04X = $%02X", addr, value)
	}
}

func (a *APU) writeDMC(reg uint16, value uint8) {
	d := &a.DMC
	switch reg {
	case 0:
		d.IRQEnabled = value&0x80 != 0
		d.Loop = value&0x40 != 0
		d.RateIndex = value & 0x0F
		if !d.IRQEnabled {
			a.dmcIRQ = false
		}
	case 1:
		d.OutputLevel = value & 0x7F
	case 2:
		d.SampleAddr = 0xC000 + uint16(value)*64
	case 3:
		d.SampleLength = uint16(value)*16 + 1
	}
}
