package controlmode

import "github.com/einherij/groundlink/pkg/protocol"

type Axis int

// Axis values follow the gamepad axis index convention.
const (
	Yaw Axis = iota
	Alt
	Roll
	Pitch

	numAxes
)

func (a Axis) String() string {
	switch a {
	case Yaw:
		return "yaw"
	case Alt:
		return "alt"
	case Roll:
		return "roll"
	case Pitch:
		return "pitch"
	default:
		return "unknown"
	}
}

// Signals holds the operator axis values together with the values seen at
// the previous flight-control tick.
type Signals struct {
	cur  [numAxes]float32
	prev [numAxes]float32
}

func (s *Signals) Set(a Axis, v float32) {
	if a < 0 || a >= numAxes {
		return
	}
	s.cur[a] = v
}

func (s *Signals) Get(a Axis) float32 {
	if a < 0 || a >= numAxes {
		return 0
	}
	return s.cur[a]
}

// Changed reports whether axis a differs from its value at the last Latch.
func (s *Signals) Changed(a Axis) bool {
	if a < 0 || a >= numAxes {
		return false
	}
	return s.cur[a] != s.prev[a]
}

func (s *Signals) Dirty() bool {
	return s.cur != s.prev
}

func (s *Signals) Latch() {
	s.prev = s.cur
}

func (s *Signals) Reset() {
	*s = Signals{}
}

func (s *Signals) FlightControl() protocol.FlightControl {
	return protocol.FlightControl{
		Alt:   s.cur[Alt],
		Pitch: s.cur[Pitch],
		Roll:  s.cur[Roll],
		Yaw:   s.cur[Yaw],
	}
}
