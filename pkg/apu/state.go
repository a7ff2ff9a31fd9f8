package apu

// State is every mutable APU field except the audio buffer and the
// filter memories, which only shape already-emitted output.
type State struct {
	Pulse    [2]Pulse
	Triangle Triangle
	Noise    Noise
	DMC      DMC

	FrameMode5      bool
	FrameIRQInhibit bool
	FrameCounter    int
	FrameResetDelay int
	FrameIRQ        bool
	DMCIRQ          bool

	Cycles         uint64
	SamplerCounter uint64

	ControllerLatch bool
	PadShift        [2]uint8
}

// State captures the APU for a snapshot.
func (a *APU) State() State {
	return State{
		Pulse:    a.Pulse,
		Triangle: a.Triangle,
		Noise:    a.Noise,
		DMC:      a.DMC,

		FrameMode5:      a.FrameMode5,
		FrameIRQInhibit: a.FrameIRQInhibit,
		FrameCounter:    a.FrameCounter,
		FrameResetDelay: a.FrameResetDelay,
		FrameIRQ:        a.frameIRQ,
		DMCIRQ:          a.dmcIRQ,

		Cycles:         a.Cycles,
		SamplerCounter: a.SamplerCounter,

		ControllerLatch: a.ControllerLatch,
		PadShift:        a.PadShift,
	}
}

// Restore loads a snapshot taken by State.
func (a *APU) Restore(s State) {
	a.Pulse = s.Pulse
	a.Triangle = s.Triangle
	a.Noise = s.Noise
	a.DMC = s.DMC

	a.FrameMode5 = s.FrameMode5
	a.FrameIRQInhibit = s.FrameIRQInhibit
	a.FrameCounter = s.FrameCounter
	a.FrameResetDelay = s.FrameResetDelay
	a.frameIRQ = s.FrameIRQ
	a.dmcIRQ = s.DMCIRQ

	a.Cycles = s.Cycles
	a.SamplerCounter = s.SamplerCounter

	a.ControllerLatch = s.ControllerLatch
	a.PadShift = s.PadShift
}
