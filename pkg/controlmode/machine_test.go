package controlmode

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"

	"github.com/einherij/groundlink/pkg/protocol"
)

type MachineSuite struct {
	suite.Suite
	hook    *test.Hook
	machine *Machine
	signals Signals
}

func TestMachineSuite(t *testing.T) {
	suite.Run(t, new(MachineSuite))
}

func (s *MachineSuite) SetupTest() {
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s.hook = hook
	s.machine = New(logger)
	s.signals.Reset()
}

func (s *MachineSuite) toMixed() {
	_, ok := s.machine.RequestManualOverride()
	s.Require().True(ok)
	req, ok := s.machine.ToggleMixed()
	s.Require().True(ok)
	s.Require().Equal(protocol.ModeMixed, req.Mode)
	s.Require().Equal(protocol.AxesAll, req.AxesMask)
}

func (s *MachineSuite) TestInitialModeIsAutonomous() {
	s.Equal(protocol.ModeAutonomous, s.machine.Mode())
}

func (s *MachineSuite) TestOverrideOnlyFromAutonomous() {
	req, ok := s.machine.RequestManualOverride()
	s.True(ok)
	s.Equal(protocol.SetCtlMode{Mode: protocol.ModeRadio, AxesMask: protocol.AxesNone}, req)

	_, ok = s.machine.RequestManualOverride()
	s.False(ok)
	s.Equal(protocol.ModeRadio, s.machine.Mode())
}

func (s *MachineSuite) TestAutonomousFromRadioOrMixed() {
	_, ok := s.machine.RequestAutonomous()
	s.False(ok)

	s.toMixed()
	req, ok := s.machine.RequestAutonomous()
	s.True(ok)
	s.Equal(protocol.ModeAutonomous, req.Mode)
}

func (s *MachineSuite) TestKillswitchIsTerminal() {
	s.toMixed()
	req := s.machine.RequestKillswitch()
	s.Equal(protocol.ModeKilled, req.Mode)

	_, ok := s.machine.RequestManualOverride()
	s.False(ok)
	_, ok = s.machine.RequestAutonomous()
	s.False(ok)
	_, ok = s.machine.ToggleMixed()
	s.False(ok)
	s.False(s.machine.CanTakeoff())
	s.Equal(protocol.ModeKilled, s.machine.Mode())

	s.machine.Reset()
	s.Equal(protocol.ModeAutonomous, s.machine.Mode())
}

func (s *MachineSuite) TestKillswitchFromEveryMode() {
	for _, prepare := range []func(){
		func() {},
		func() { s.machine.RequestManualOverride() },
		s.toMixed,
		func() { s.machine.RequestKillswitch() },
	} {
		s.machine.Reset()
		prepare()
		s.machine.RequestKillswitch()
		s.Equal(protocol.ModeKilled, s.machine.Mode())
	}
}

func (s *MachineSuite) TestToggleOnlyBetweenRadioAndMixed() {
	_, ok := s.machine.ToggleMixed()
	s.False(ok)

	s.toMixed()
	req, ok := s.machine.ToggleMixed()
	s.True(ok)
	s.Equal(protocol.ModeRadio, req.Mode)
	s.Equal(protocol.AxesNone, req.AxesMask)
}

func (s *MachineSuite) TestTickSuppressesUnchangedAxes() {
	s.toMixed()
	s.signals.Set(Roll, 0.5)
	s.True(s.signals.Changed(Roll))
	s.False(s.signals.Changed(Pitch))

	fc, ok := s.machine.Tick(&s.signals)
	s.True(ok)
	s.Equal(protocol.FlightControl{Roll: 0.5}, fc)
	s.False(s.signals.Changed(Roll), "tick latches the sent values")

	_, ok = s.machine.Tick(&s.signals)
	s.False(ok, "no axis changed between ticks")

	s.signals.Set(Pitch, -0.25)
	s.True(s.signals.Changed(Pitch))
	s.False(s.signals.Changed(Roll))
	s.False(s.signals.Changed(Axis(7)))
	fc, ok = s.machine.Tick(&s.signals)
	s.True(ok)
	s.Equal(protocol.FlightControl{Pitch: -0.25, Roll: 0.5}, fc)
}

func (s *MachineSuite) TestTickSetBackToSameValueIsClean() {
	s.toMixed()
	s.signals.Set(Yaw, 0.3)
	s.signals.Set(Yaw, 0)
	_, ok := s.machine.Tick(&s.signals)
	s.False(ok)
}

func (s *MachineSuite) TestTickSendsNothingOutsideMixed() {
	s.signals.Set(Alt, 1)
	_, ok := s.machine.Tick(&s.signals)
	s.False(ok)

	s.machine.RequestManualOverride()
	s.signals.Set(Alt, -1)
	_, ok = s.machine.Tick(&s.signals)
	s.False(ok)

	s.machine.RequestKillswitch()
	s.signals.Set(Alt, 0.2)
	_, ok = s.machine.Tick(&s.signals)
	s.False(ok)
}

func (s *MachineSuite) TestConfirmMismatchIsLogged() {
	s.True(s.machine.Confirm(protocol.ModeAutonomous))
	s.False(s.machine.Confirm(protocol.ModeRadio))
	s.Equal(protocol.ModeAutonomous, s.machine.Mode())
	s.Equal(logrus.WarnLevel, s.hook.LastEntry().Level)
}
