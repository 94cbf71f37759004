package gamepad

import (
	"github.com/sirupsen/logrus"

	"github.com/einherij/groundlink/pkg/controlmode"
)

// ModeToggleButton flips between radio and mixed control on its rising edge.
const ModeToggleButton = 12

// Mapper converts device events into axis signals.
type Mapper struct {
	log     logrus.FieldLogger
	signals *controlmode.Signals
	buttons map[int]float32
}

func NewMapper(signals *controlmode.Signals, log logrus.FieldLogger) *Mapper {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Mapper{
		log:     log,
		signals: signals,
		buttons: make(map[int]float32),
	}
}

// Apply updates the signals. It returns true when ev is a rising edge of the
// mode toggle button.
func (m *Mapper) Apply(ev Event) (toggle bool) {
	switch ev.Kind {
	case AxisEvent:
		m.applyAxis(ev.Index, clamp(ev.Value))
	case ButtonEvent:
		prev, seen := m.buttons[ev.Index]
		m.buttons[ev.Index] = ev.Value
		if ev.Index == ModeToggleButton && ev.Value > 0 && (!seen || prev <= 0) {
			return true
		}
	}
	return false
}

func (m *Mapper) applyAxis(index int, v float32) {
	switch index {
	case 0:
		m.signals.Set(controlmode.Yaw, v)
	case 1:
		m.signals.Set(controlmode.Alt, -v)
	case 2:
		m.signals.Set(controlmode.Roll, v)
	case 3:
		m.signals.Set(controlmode.Pitch, -v)
	default:
		m.log.Debugf("ignoring axis %d", index)
	}
}

// Reset forgets button states, e.g. when a session ends.
func (m *Mapper) Reset() {
	m.buttons = make(map[int]float32)
}

func clamp(v float32) float32 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
