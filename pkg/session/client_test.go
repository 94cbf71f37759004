package session

import (
	"context"
	"encoding/binary"
	"errors"
	"net"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/suite"

	"github.com/einherij/groundlink/pkg/device"
	"github.com/einherij/groundlink/pkg/event"
	"github.com/einherij/groundlink/pkg/gamepad"
	"github.com/einherij/groundlink/pkg/protocol"
)

const waitTimeout = 2 * time.Second

// remote is a fake flight controller listening on loopback.
type remote struct {
	ln      net.Listener
	conn    net.Conn
	packets chan protocol.Packet
}

func newRemote() (*remote, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	return &remote{ln: ln, packets: make(chan protocol.Packet, 4096)}, nil
}

func (r *remote) accept() error {
	conn, err := r.ln.Accept()
	if err != nil {
		return err
	}
	r.conn = conn
	go r.read()
	return nil
}

func (r *remote) read() {
	defer close(r.packets)
	var dec protocol.Decoder
	buf := make([]byte, 4096)
	for {
		n, err := r.conn.Read(buf)
		if n > 0 {
			_, _ = dec.Write(buf[:n])
			for {
				p, ok, derr := dec.Next()
				if derr != nil || !ok {
					break
				}
				r.packets <- p
			}
		}
		if err != nil {
			return
		}
	}
}

func (r *remote) send(p protocol.Packet) error {
	return r.write(p.Bytes())
}

func (r *remote) write(b []byte) error {
	_, err := r.conn.Write(b)
	return err
}

// drain waits for the client to close its side.
func (r *remote) drain(timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		select {
		case _, ok := <-r.packets:
			if !ok {
				return true
			}
		case <-deadline:
			return false
		}
	}
}

// next returns the next packet carrying cmd, skipping any other traffic.
func (r *remote) next(cmd protocol.Command, timeout time.Duration) (protocol.Packet, bool) {
	deadline := time.After(timeout)
	for {
		select {
		case p, ok := <-r.packets:
			if !ok {
				return protocol.Packet{}, false
			}
			if p.Command == cmd {
				return p, true
			}
		case <-deadline:
			return protocol.Packet{}, false
		}
	}
}

// count counts packets carrying cmd received during window.
func (r *remote) count(cmd protocol.Command, window time.Duration) int {
	deadline := time.After(window)
	n := 0
	for {
		select {
		case p, ok := <-r.packets:
			if !ok {
				return n
			}
			if p.Command == cmd {
				n++
			}
		case <-deadline:
			return n
		}
	}
}

func (r *remote) close() {
	if r.conn != nil {
		_ = r.conn.Close()
	}
	_ = r.ln.Close()
}

// jammedConn accepts reads but fails every write.
type jammedConn struct {
	net.Conn
	writes atomic.Int32
}

func (c *jammedConn) Write([]byte) (int, error) {
	c.writes.Add(1)
	return 0, errors.New("transmit queue jammed")
}

type connDialer struct {
	conn net.Conn
}

func (d connDialer) DialContext(context.Context, string, string) (net.Conn, error) {
	return d.conn, nil
}

// heldDialer blocks every dial until release is closed, ignoring
// cancellation, and answers with one end of a pipe.
type heldDialer struct {
	release chan struct{}
	dialed  chan string
	peers   chan net.Conn
}

func newHeldDialer() *heldDialer {
	return &heldDialer{
		release: make(chan struct{}),
		dialed:  make(chan string, 4),
		peers:   make(chan net.Conn, 4),
	}
}

func (d *heldDialer) DialContext(_ context.Context, _, address string) (net.Conn, error) {
	d.dialed <- address
	<-d.release
	local, peer := net.Pipe()
	d.peers <- peer
	return local, nil
}

func (d *heldDialer) closePeers() {
	for {
		select {
		case p := <-d.peers:
			_ = p.Close()
		default:
			return
		}
	}
}

type ClientSuite struct {
	suite.Suite
	remote *remote
	client *Client
	logger *logrus.Logger
	hook   *test.Hook
	cancel context.CancelFunc
	done   chan struct{}
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientSuite))
}

func (s *ClientSuite) SetupTest() {
	var err error
	s.remote, err = newRemote()
	s.Require().NoError(err)

	s.logger, s.hook = test.NewNullLogger()
	s.logger.SetLevel(logrus.DebugLevel)
	s.start()
}

func (s *ClientSuite) start(opts ...Option) {
	s.client = New(append([]Option{WithLogger(s.logger), WithConnectTimeout(time.Second)}, opts...)...)

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go func() {
		s.client.Run(ctx)
		close(s.done)
	}()
}

func (s *ClientSuite) stop() {
	s.cancel()
	select {
	case <-s.done:
	case <-time.After(waitTimeout):
		s.Fail("session did not stop")
	}
}

// restart replaces the running client with one built from opts.
func (s *ClientSuite) restart(opts ...Option) {
	s.stop()
	s.start(opts...)
}

func (s *ClientSuite) TearDownTest() {
	s.stop()
	s.remote.close()
}

func (s *ClientSuite) waitStatus(connected bool) event.ConnectionStatus {
	deadline := time.After(waitTimeout)
	for {
		select {
		case ev := <-s.client.Events():
			if st, ok := ev.(event.ConnectionStatus); ok && st.Connected == connected {
				return st
			}
		case <-deadline:
			s.FailNowf("timeout", "no ConnectionStatus{Connected: %t}", connected)
			return event.ConnectionStatus{}
		}
	}
}

func (s *ClientSuite) waitEvent(match func(event.Event) bool) event.Event {
	deadline := time.After(waitTimeout)
	for {
		select {
		case ev := <-s.client.Events():
			if match(ev) {
				return ev
			}
		case <-deadline:
			s.FailNow("expected event did not arrive")
			return nil
		}
	}
}

// waitLogged waits until at least n entries contain msg.
func (s *ClientSuite) waitLogged(msg string, n int) {
	s.Eventually(func() bool {
		count := 0
		for _, e := range s.hook.AllEntries() {
			if strings.Contains(e.Message, msg) {
				count++
			}
		}
		return count >= n
	}, waitTimeout, 5*time.Millisecond, "%q not logged %d times", msg, n)
}

func (s *ClientSuite) connect() {
	address := s.remote.ln.Addr().String()
	s.Require().NoError(s.client.Open(address))
	s.Require().NoError(s.remote.accept())
	st := s.waitStatus(true)
	s.Equal(address, st.Address)
}

func (s *ClientSuite) identify() {
	s.connect()
	s.Require().NoError(s.remote.send(protocol.Request(protocol.ServerReqIdent)))
	ack, ok := s.remote.next(protocol.ClientAckIdent, waitTimeout)
	s.Require().True(ok, "no ident ack")
	s.Equal(protocol.EncodeIdentAck(), ack)
	s.Eventually(func() bool { return s.client.State().Identified }, waitTimeout, 5*time.Millisecond)
}

func (s *ClientSuite) expectMode(mode protocol.ControlMode, mask uint32) {
	p, ok := s.remote.next(protocol.ClientReqSetCtlMode, waitTimeout)
	s.Require().True(ok, "no SET_CTL_MODE for %s", mode)
	s.Equal(protocol.SetCtlMode{Mode: mode, AxesMask: mask}.Packet(), p)
}

func (s *ClientSuite) TestOpenRejectsBadAddress() {
	s.ErrorIs(s.client.Open("localhost"), device.ErrBadAddress)
	s.ErrorIs(s.client.Open("localhost:"), device.ErrBadAddress)
	s.False(s.client.State().Connected)
}

func (s *ClientSuite) TestConnectFailureReportsDisconnected() {
	address := s.remote.ln.Addr().String()
	s.remote.close()
	s.Require().NoError(s.client.Open(address))
	s.waitStatus(false)
	s.False(s.client.State().Connected)
}

func (s *ClientSuite) TestIdentStartsPeriodicRequests() {
	s.identify()

	_, ok := s.remote.next(protocol.ClientReqDeviceControls, waitTimeout)
	s.True(ok)
	_, ok = s.remote.next(protocol.ClientReqTrackSettings, waitTimeout)
	s.True(ok)
	_, ok = s.remote.next(protocol.ClientReqTelemetry, 500*time.Millisecond)
	s.True(ok, "telemetry not requested")
	_, ok = s.remote.next(protocol.ClientReqMJPGFrame, 500*time.Millisecond)
	s.True(ok, "video not requested")
	s.Equal(protocol.ModeAutonomous, s.client.State().Mode)
}

func (s *ClientSuite) TestDisconnectStopsEverything() {
	s.identify()
	_, ok := s.remote.next(protocol.ClientReqTelemetry, 500*time.Millisecond)
	s.Require().True(ok)

	s.client.Close()
	s.waitStatus(false)

	s.True(s.remote.drain(waitTimeout), "remote still connected")

	deadline := time.After(200 * time.Millisecond)
	for done := false; !done; {
		select {
		case ev := <-s.client.Events():
			_, isStatus := ev.(event.ConnectionStatus)
			s.False(isStatus, "second ConnectionStatus emitted")
		case <-deadline:
			done = true
		}
	}

	st := s.client.State()
	s.False(st.Connected)
	s.False(st.Identified)
	s.Empty(s.client.Controls())
}

func (s *ClientSuite) TestPeerCloseDisconnects() {
	s.identify()
	_ = s.remote.conn.Close()
	s.waitStatus(false)
	s.False(s.client.State().Connected)
}

func (s *ClientSuite) TestCorruptLengthDisconnects() {
	s.identify()
	// header announcing a 4 byte packet
	header := make([]byte, protocol.HeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], uint32(protocol.ServerAckTelemetry))
	binary.LittleEndian.PutUint32(header[4:8], 4)
	s.Require().NoError(s.remote.write(header))
	s.waitStatus(false)
	s.False(s.client.State().Connected)
}

func (s *ClientSuite) TestUnknownCommandThenTelemetry() {
	s.identify()
	s.Require().NoError(s.remote.send(protocol.NewPacket(protocol.Command(0xFFFF), []byte{1, 2, 3, 4})))
	s.Require().NoError(s.remote.send(protocol.Telemetry{
		Yaw: 1, Pitch: 2, Roll: 3, RSSI: -60, Altitude: 120, Battery: 80,
	}.Packet()))

	ev := s.waitEvent(func(ev event.Event) bool {
		_, ok := ev.(event.TelemetrySample)
		return ok
	})
	sample := ev.(event.TelemetrySample)
	s.Equal(float32(3), sample.Yaw)
	s.Equal(float32(-2), sample.Pitch)
	s.Equal(float32(-1), sample.Roll)
	s.Equal(int32(-60), sample.RSSI)
	s.Equal(int32(120), sample.Altitude)
	s.Equal(int32(80), sample.Battery)
	s.True(s.client.State().Connected)
}

func (s *ClientSuite) TestMixedModeSendsOnlyChangedSignals() {
	s.identify()

	s.client.RequestOverride()
	s.expectMode(protocol.ModeRadio, protocol.AxesNone)

	s.client.InputReady(gamepad.Event{Kind: gamepad.ButtonEvent, Index: gamepad.ModeToggleButton, Value: 1})
	s.expectMode(protocol.ModeMixed, protocol.AxesAll)
	s.Equal(0, s.remote.count(protocol.ClientReqFlightCtl, 200*time.Millisecond), "unchanged signals were sent")

	s.client.InputReady(gamepad.Event{Kind: gamepad.AxisEvent, Index: 2, Value: 0.5})
	p, ok := s.remote.next(protocol.ClientReqFlightCtl, waitTimeout)
	s.Require().True(ok)
	fc, err := protocol.DecodeFlightControl(p)
	s.Require().NoError(err)
	s.Equal(protocol.FlightControl{Roll: 0.5}, fc)
	s.Equal(0, s.remote.count(protocol.ClientReqFlightCtl, 200*time.Millisecond))

	s.client.InputReady(gamepad.Event{Kind: gamepad.AxisEvent, Index: 1, Value: 0.25})
	p, ok = s.remote.next(protocol.ClientReqFlightCtl, waitTimeout)
	s.Require().True(ok)
	fc, err = protocol.DecodeFlightControl(p)
	s.Require().NoError(err)
	s.Equal(protocol.FlightControl{Alt: -0.25, Roll: 0.5}, fc)
}

func (s *ClientSuite) TestRadioModeSendsNoFlightControl() {
	s.identify()
	s.client.RequestOverride()
	s.expectMode(protocol.ModeRadio, protocol.AxesNone)

	s.client.InputReady(gamepad.Event{Kind: gamepad.AxisEvent, Index: 0, Value: 1})
	s.Equal(0, s.remote.count(protocol.ClientReqFlightCtl, 300*time.Millisecond))
}

func (s *ClientSuite) TestKillswitchIsTerminal() {
	s.identify()
	s.client.RequestOverride()
	s.expectMode(protocol.ModeRadio, protocol.AxesNone)
	s.client.InputReady(gamepad.Event{Kind: gamepad.ButtonEvent, Index: gamepad.ModeToggleButton, Value: 1})
	s.expectMode(protocol.ModeMixed, protocol.AxesAll)

	s.client.RequestKillswitch()
	s.expectMode(protocol.ModeKilled, protocol.AxesNone)
	s.Eventually(func() bool { return s.client.State().Mode == protocol.ModeKilled }, waitTimeout, 5*time.Millisecond)

	s.client.RequestOverride()
	s.client.RequestAutonomous()
	s.client.RequestTakeoff()
	s.client.InputReady(gamepad.Event{Kind: gamepad.ButtonEvent, Index: gamepad.ModeToggleButton, Value: -1})
	s.client.InputReady(gamepad.Event{Kind: gamepad.ButtonEvent, Index: gamepad.ModeToggleButton, Value: 1})
	s.client.InputReady(gamepad.Event{Kind: gamepad.AxisEvent, Index: 3, Value: 0.7})

	deadline := time.After(300 * time.Millisecond)
	for done := false; !done; {
		select {
		case p, ok := <-s.remote.packets:
			s.Require().True(ok, "connection dropped")
			s.NotContains([]protocol.Command{
				protocol.ClientReqSetCtlMode,
				protocol.ClientReqTakeoff,
				protocol.ClientReqFlightCtl,
			}, p.Command)
		case <-deadline:
			done = true
		}
	}
	s.Equal(protocol.ModeKilled, s.client.State().Mode)
}

func (s *ClientSuite) TestModeConfirmationMismatchKeepsMode() {
	s.identify()
	s.client.RequestOverride()
	s.expectMode(protocol.ModeRadio, protocol.AxesNone)

	s.Require().NoError(s.remote.send(protocol.ModeAck(protocol.ModeAutonomous)))
	s.Eventually(func() bool {
		for _, e := range s.hook.AllEntries() {
			if e.Level == logrus.WarnLevel && strings.Contains(e.Message, "remote applied autonomous mode") {
				return true
			}
		}
		return false
	}, waitTimeout, 5*time.Millisecond)
	s.Never(func() bool { return s.client.State().Mode != protocol.ModeRadio }, 100*time.Millisecond, 10*time.Millisecond)
}

func (s *ClientSuite) TestDeviceControlsFollowRemote() {
	s.identify()
	announce := protocol.ControlAnnouncement{ID: 5, Kind: 2, Max: 3, Step: 1, Current: 1, Name: "exposure"}
	s.Require().NoError(s.remote.send(announce.Packet()))
	s.Require().NoError(s.remote.send(protocol.MenuLabel{ID: 5, Index: 1, Label: "auto"}.Packet()))
	s.Require().NoError(s.remote.send(announce.Packet()))

	s.waitEvent(func(ev event.Event) bool {
		dc, ok := ev.(event.DeviceControl)
		return ok && dc.Descriptor.MenuLabels[1] == "auto"
	})
	s.Len(s.client.Controls(), 1)

	s.client.SetDeviceControl(5, 3)
	p, ok := s.remote.next(protocol.ClientReqSetDeviceControl, waitTimeout)
	s.Require().True(ok)
	s.Equal(protocol.ControlValue{ID: 5, Value: 3}.Packet(), p)
	s.Equal(int32(1), s.client.Controls()[0].Current, "value changed before confirmation")

	s.Require().NoError(s.remote.send(protocol.ControlValue{ID: 5, Value: 3}.AckPacket()))
	s.waitEvent(func(ev event.Event) bool {
		dc, ok := ev.(event.DeviceControl)
		return ok && dc.Descriptor.Current == 3
	})
	s.Equal(int32(3), s.client.Controls()[0].Current)

	s.client.SetDeviceControl(99, 1)
	s.Equal(0, s.remote.count(protocol.ClientReqSetDeviceControl, 100*time.Millisecond))
}

func (s *ClientSuite) TestSendFailureKeepsSession() {
	local, peer := net.Pipe()
	defer peer.Close()
	conn := &jammedConn{Conn: local}
	s.restart(WithDialer(connDialer{conn: conn}))

	s.Require().NoError(s.client.Open("fc.local:5000"))
	s.waitStatus(true)
	_, err := peer.Write(protocol.Request(protocol.ServerReqIdent).Bytes())
	s.Require().NoError(err)
	s.Eventually(func() bool { return s.client.State().Identified }, waitTimeout, 5*time.Millisecond)

	s.Eventually(func() bool { return conn.writes.Load() > 0 }, waitTimeout, 5*time.Millisecond)
	first := conn.writes.Load()
	s.Eventually(func() bool { return conn.writes.Load() >= first+5 }, waitTimeout, 10*time.Millisecond,
		"periodic requests stopped after a failed send")
	s.True(s.client.State().Connected)

	_, err = peer.Write(protocol.Telemetry{Yaw: 1, Pitch: 2, Roll: 3}.Packet().Bytes())
	s.Require().NoError(err)
	ev := s.waitEvent(func(ev event.Event) bool {
		_, ok := ev.(event.TelemetrySample)
		return ok
	})
	s.Equal(float32(3), ev.(event.TelemetrySample).Yaw)
	s.True(s.client.State().Connected)

	s.waitLogged("error sending", 1)
}

func (s *ClientSuite) TestOpenDuringAbandonedDialIsQueued() {
	dialer := newHeldDialer()
	defer dialer.closePeers()
	s.restart(WithDialer(dialer))

	s.Require().NoError(s.client.Open("fc.local:5000"))
	select {
	case address := <-dialer.dialed:
		s.Equal("fc.local:5000", address)
	case <-time.After(waitTimeout):
		s.FailNow("first dial not started")
	}
	s.client.Close()
	s.Require().NoError(s.client.Open("fc.backup:5000"))
	s.waitLogged("queueing open fc.backup:5000", 1)
	close(dialer.release)

	st := s.waitStatus(false)
	s.Equal("fc.local:5000", st.Address)
	st = s.waitStatus(true)
	s.Equal("fc.backup:5000", st.Address)
	s.Equal("fc.backup:5000", s.client.State().Address)
}

func (s *ClientSuite) TestCloseDropsQueuedOpen() {
	dialer := newHeldDialer()
	defer dialer.closePeers()
	s.restart(WithDialer(dialer))

	s.Require().NoError(s.client.Open("fc.local:5000"))
	select {
	case <-dialer.dialed:
	case <-time.After(waitTimeout):
		s.FailNow("first dial not started")
	}
	s.client.Close()
	s.Require().NoError(s.client.Open("fc.backup:5000"))
	s.client.Close()
	s.waitLogged("abandoning pending dial", 2)
	close(dialer.release)

	s.waitStatus(false)
	s.Never(func() bool { return s.client.State().Connected }, 200*time.Millisecond, 10*time.Millisecond)
	s.Empty(dialer.dialed)
}
