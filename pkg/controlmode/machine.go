package controlmode

import (
	"github.com/sirupsen/logrus"

	"github.com/einherij/groundlink/pkg/protocol"
)

// Machine arbitrates which authority governs flight actuation. Requested
// transitions are applied optimistically; the remote confirms them later.
// Killed is terminal until Reset.
type Machine struct {
	log  logrus.FieldLogger
	mode protocol.ControlMode
}

func New(log logrus.FieldLogger) *Machine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Machine{
		log:  log,
		mode: protocol.ModeAutonomous,
	}
}

func (m *Machine) Mode() protocol.ControlMode {
	return m.mode
}

// Reset returns to the server-assumed default of a fresh session.
func (m *Machine) Reset() {
	m.mode = protocol.ModeAutonomous
}

func (m *Machine) CanTakeoff() bool {
	return m.mode != protocol.ModeKilled
}

// RequestManualOverride moves Autonomous to Radio.
func (m *Machine) RequestManualOverride() (protocol.SetCtlMode, bool) {
	if m.mode != protocol.ModeAutonomous {
		m.log.Debugf("ignoring manual override in %s mode", m.mode)
		return protocol.SetCtlMode{}, false
	}
	return m.transition(protocol.ModeRadio), true
}

// RequestAutonomous moves Radio or Mixed to Autonomous.
func (m *Machine) RequestAutonomous() (protocol.SetCtlMode, bool) {
	if m.mode != protocol.ModeRadio && m.mode != protocol.ModeMixed {
		m.log.Debugf("ignoring autonomous request in %s mode", m.mode)
		return protocol.SetCtlMode{}, false
	}
	return m.transition(protocol.ModeAutonomous), true
}

// RequestKillswitch is accepted from every mode, Killed included, so the
// kill request can always be repeated.
func (m *Machine) RequestKillswitch() protocol.SetCtlMode {
	return m.transition(protocol.ModeKilled)
}

// ToggleMixed flips between Radio and Mixed.
func (m *Machine) ToggleMixed() (protocol.SetCtlMode, bool) {
	switch m.mode {
	case protocol.ModeRadio:
		return m.transition(protocol.ModeMixed), true
	case protocol.ModeMixed:
		return m.transition(protocol.ModeRadio), true
	default:
		m.log.Debugf("ignoring mixed toggle in %s mode", m.mode)
		return protocol.SetCtlMode{}, false
	}
}

// Confirm checks the mode applied by the remote against the tracked one.
// Confirmations never originate a transition.
func (m *Machine) Confirm(applied protocol.ControlMode) bool {
	if applied != m.mode {
		m.log.Warnf("remote applied %s mode while %s is tracked", applied, m.mode)
		return false
	}
	return true
}

// Tick runs one flight-control period. In Mixed mode it returns the current
// axes when at least one changed since the previous tick.
func (m *Machine) Tick(s *Signals) (protocol.FlightControl, bool) {
	dirty := s.Dirty()
	s.Latch()
	if m.mode != protocol.ModeMixed || !dirty {
		return protocol.FlightControl{}, false
	}
	return s.FlightControl(), true
}

func (m *Machine) transition(to protocol.ControlMode) protocol.SetCtlMode {
	m.log.Infof("control mode %s -> %s", m.mode, to)
	m.mode = to
	mask := protocol.AxesNone
	if to == protocol.ModeMixed {
		mask = protocol.AxesAll
	}
	return protocol.SetCtlMode{Mode: to, AxesMask: mask}
}
