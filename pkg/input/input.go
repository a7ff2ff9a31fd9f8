package input

// Pad holds the state of one controller's eight buttons.
type Pad struct {
	A      bool
	B      bool
	Select bool
	Start  bool
	Up     bool
	Down   bool
	Left   bool
	Right  bool
}

// State is the per-frame input snapshot handed to the core before each
// frame. The APU reads it whenever software asserts the controller
// latch bit.
type State struct {
	Pads [2]Pad
}

// Bits packs a pad into the controller shift-register wire order:
// bit 0 = A, 1 = B, 2 = Select, 3 = Start, 4 = Up, 5 = Down,
// 6 = Left, 7 = Right.
func (p Pad) Bits() uint8 {
	var v uint8
	if p.A {
		v |= 1 << 0
	}
	if p.B {
		v |= 1 << 1
	}
	if p.Select {
		v |= 1 << 2
	}
	if p.Start {
		v |= 1 << 3
	}
	if p.Up {
		v |= 1 << 4
	}
	if p.Down {
		v |= 1 << 5
	}
	if p.Left {
		v |= 1 << 6
	}
	if p.Right {
		v |= 1 << 7
	}
	return v
}
