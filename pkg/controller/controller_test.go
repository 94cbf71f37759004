package controller

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"

	"github.com/einherij/groundlink/pkg/device"
	"github.com/einherij/groundlink/pkg/device/mock_device"
	"github.com/einherij/groundlink/pkg/devicectl"
	"github.com/einherij/groundlink/pkg/protocol"
	"github.com/einherij/groundlink/pkg/wsbridge"
)

type fakeMessenger struct {
	in  chan wsbridge.Message
	out chan wsbridge.Message
}

func newFakeMessenger() *fakeMessenger {
	return &fakeMessenger{
		in:  make(chan wsbridge.Message, 8),
		out: make(chan wsbridge.Message, 8),
	}
}

func (m *fakeMessenger) SendMessage(msg wsbridge.Message) bool {
	m.out <- msg
	return true
}

func (m *fakeMessenger) ReceiveMessage(ctx context.Context) wsbridge.Message {
	select {
	case <-ctx.Done():
		return wsbridge.Message{}
	case msg := <-m.in:
		return msg
	}
}

type ControllerSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	device    *mock_device.MockDevice
	messenger *fakeMessenger
	handler   *Controller
}

func TestControllerSuite(t *testing.T) {
	suite.Run(t, new(ControllerSuite))
}

func (s *ControllerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.device = mock_device.NewMockDevice(s.ctrl)
	s.messenger = newFakeMessenger()
	s.handler = New(s.messenger, s.device)
	s.device.EXPECT().State().Return(device.State{Connected: true, Mode: protocol.ModeRadio}).AnyTimes()
}

func (s *ControllerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ControllerSuite) command(name string, args any) []byte {
	cmd := Command{Name: name}
	if args != nil {
		raw, err := json.Marshal(args)
		s.Require().NoError(err)
		cmd.Args = raw
	}
	content, err := json.Marshal(cmd)
	s.Require().NoError(err)
	return content
}

func (s *ControllerSuite) reply() wsbridge.Message {
	select {
	case msg := <-s.messenger.out:
		return msg
	default:
		s.FailNow("no reply")
		return wsbridge.Message{}
	}
}

func (s *ControllerSuite) TestSimpleCommands() {
	gomock.InOrder(
		s.device.EXPECT().RequestTakeoff(),
		s.device.EXPECT().RequestLanding(),
		s.device.EXPECT().RequestOverride(),
		s.device.EXPECT().RequestAutonomous(),
		s.device.EXPECT().RequestKillswitch(),
		s.device.EXPECT().Close(),
	)
	for _, name := range []string{"takeoff", "landing", "override", "autonomous", "killswitch", "disconnect"} {
		s.handler.handle(s.command(name, nil))
		msg := s.reply()
		s.Equal(wsbridge.MTLog, msg.Type)
		s.Contains(string(msg.Content), "Connected: true; Mode: radio")
	}
}

func (s *ControllerSuite) TestConnect() {
	s.device.EXPECT().Open("10.0.0.2:5000").Return(nil)
	s.handler.handle(s.command("connect", connectArgs{Address: "10.0.0.2:5000"}))
	s.True(strings.HasPrefix(string(s.reply().Content), "Command Connecting to 10.0.0.2:5000"))
}

func (s *ControllerSuite) TestConnectBadAddress() {
	s.device.EXPECT().Open("nowhere").Return(device.ErrBadAddress)
	s.handler.handle(s.command("connect", connectArgs{Address: "nowhere"}))
	s.Contains(string(s.reply().Content), "bad address")
}

func (s *ControllerSuite) TestSettings() {
	track := protocol.TrackSettings{Color: protocol.Color{R: 10, G: 20, B: 30}, HueThresh: 5, Fps: 15, Enabled: true}
	pid := protocol.PidSettings{Axis: 2, P: 1.5, I: 0.1, D: 0.01}
	s.device.EXPECT().SetTrackSettings(track)
	s.device.EXPECT().SetTrimSettings(protocol.TrimSettings{Roll: 0.5})
	s.device.EXPECT().SetFilterSettings(protocol.FilterSettings{Alpha: 0.9})
	s.device.EXPECT().SetPidSettings(pid)
	s.device.EXPECT().SetDeviceControl(uint32(7), int32(-3))

	s.handler.handle(s.command("track", track))
	s.handler.handle(s.command("trim", protocol.TrimSettings{Roll: 0.5}))
	s.handler.handle(s.command("filter", protocol.FilterSettings{Alpha: 0.9}))
	s.handler.handle(s.command("pid", pid))
	s.handler.handle(s.command("device_control", deviceControlArgs{ID: 7, Value: -3}))
	s.Len(s.messenger.out, 5)
}

func (s *ControllerSuite) TestMissingArguments() {
	s.handler.handle(s.command("pid", nil))
	s.Contains(string(s.reply().Content), "missing arguments")
}

func (s *ControllerSuite) TestControls() {
	controls := []devicectl.Descriptor{{ID: 1, Name: "gain", Kind: devicectl.KindInt, Max: 10}}
	s.device.EXPECT().Controls().Return(controls)
	s.handler.handle(s.command("controls", nil))

	msg := s.reply()
	s.Equal(wsbridge.MTControls, msg.Type)
	var got []devicectl.Descriptor
	s.Require().NoError(json.Unmarshal(msg.Content, &got))
	s.Equal(controls, got)
	s.Contains(string(s.reply().Content), "1 device controls")
}

func (s *ControllerSuite) TestUnknownCommand() {
	s.handler.handle(s.command("barrel_roll", nil))
	s.Contains(string(s.reply().Content), "unknown command")

	s.handler.handle([]byte("not json"))
	s.Contains(string(s.reply().Content), "error parsing command")
}

func (s *ControllerSuite) TestRunDispatchesCommandsOnly() {
	s.device.EXPECT().Name().Return("network").AnyTimes()
	done := make(chan struct{})
	s.device.EXPECT().RequestTakeoff().Do(func() { close(done) })

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		s.handler.Run(ctx)
		close(stopped)
	}()

	s.messenger.in <- wsbridge.Message{Type: wsbridge.MTLog, Content: []byte("ignored")}
	s.messenger.in <- wsbridge.Message{Type: wsbridge.MTCmd, Content: s.command("takeoff", nil)}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		s.Fail("takeoff not requested")
	}

	cancel()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		s.Fail("controller did not stop")
	}
}
