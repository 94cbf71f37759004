package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"sync/atomic"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/einherij/groundlink/pkg/controlmode"
	"github.com/einherij/groundlink/pkg/device"
	"github.com/einherij/groundlink/pkg/devicectl"
	"github.com/einherij/groundlink/pkg/event"
	"github.com/einherij/groundlink/pkg/gamepad"
	"github.com/einherij/groundlink/pkg/protocol"
)

type Dialer interface {
	DialContext(ctx context.Context, network, address string) (net.Conn, error)
}

type Option func(*Client)

func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

func WithDialer(d Dialer) Option {
	return func(c *Client) {
		if d != nil {
			c.dialer = d
		}
	}
}

func WithConnectTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.connectTimeout = d
		}
	}
}

func WithWriteTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.writeTimeout = d
		}
	}
}

func WithPeriods(p Periods) Option {
	return func(c *Client) {
		c.periods = p
	}
}

func WithEventBuffer(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.eventBuf = n
		}
	}
}

type dialResult struct {
	address string
	conn    net.Conn
	err     error
}

// Client is the network flight-controller device. All protocol state is
// owned by the goroutine running Run; the exported methods only queue work
// for it.
type Client struct {
	log            logrus.FieldLogger
	dialer         Dialer
	connectTimeout time.Duration
	writeTimeout   time.Duration
	periods        Periods
	eventBuf       int

	commands chan func()
	events   chan event.Event
	input    *gamepad.Queue
	dialed   chan dialResult
	state    atomic.Pointer[device.State]
	controls *devicectl.Registry

	// loop state
	runCtx      context.Context
	link        *link
	dialCancel  context.CancelFunc
	abandonDial bool
	pendingOpen string
	identified  bool
	mode        *controlmode.Machine
	signals     controlmode.Signals
	mapper      *gamepad.Mapper
	sched       *Scheduler
}

var _ device.Device = (*Client)(nil)

func New(opts ...Option) *Client {
	c := &Client{
		log:            logrus.StandardLogger().WithField("component", "session"),
		dialer:         &net.Dialer{},
		connectTimeout: 5 * time.Second,
		writeTimeout:   time.Second,
		periods:        DefaultPeriods(),
		eventBuf:       256,
		commands:       make(chan func(), 64),
		input:          gamepad.NewQueue(256),
		dialed:         make(chan dialResult, 1),
		controls:       devicectl.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.events = make(chan event.Event, c.eventBuf)
	c.mode = controlmode.New(c.log)
	c.mapper = gamepad.NewMapper(&c.signals, c.log)
	c.sched = NewScheduler(c.periods)
	c.publishState()
	return c
}

func (c *Client) Name() string {
	return "network"
}

func (c *Client) Run(ctx context.Context) {
	c.log.Warnf("started network session")
	c.runCtx = ctx
	for {
		var incoming <-chan readResult
		if c.link != nil {
			incoming = c.link.incoming
		}
		select {
		case <-ctx.Done():
			c.shutdown()
			c.log.Warnf("stopped network session")
			return
		case fn := <-c.commands:
			fn()
		case res := <-c.dialed:
			c.handleDial(res)
		case res := <-incoming:
			c.handleRead(res)
		case <-c.sched.Telemetry():
			c.send(protocol.Request(protocol.ClientReqTelemetry))
		case <-c.sched.Video():
			c.send(protocol.Request(protocol.ClientReqMJPGFrame))
		case <-c.sched.FlightControl():
			if fc, ok := c.mode.Tick(&c.signals); ok {
				c.send(fc.Packet())
			}
		case ev := <-c.input.C():
			c.handleInput(ev)
			c.input.Drain(c.handleInput)
		}
	}
}

// Open validates address and starts connecting. The result is reported as
// a ConnectionStatus event.
func (c *Client) Open(address string) error {
	if _, _, err := device.ParseAddress(address); err != nil {
		return err
	}
	c.do("open", func() { c.connect(address) })
	return nil
}

func (c *Client) Close() {
	c.do("close", c.disconnect)
}

func (c *Client) State() device.State {
	return *c.state.Load()
}

func (c *Client) Events() <-chan event.Event {
	return c.events
}

func (c *Client) Controls() []devicectl.Descriptor {
	return c.controls.Snapshot()
}

func (c *Client) InputReady(ev gamepad.Event) {
	if !c.input.Push(ev) {
		c.log.Debugf("dropped %s: input queue full", ev)
	}
}

func (c *Client) RequestTakeoff() {
	c.do("takeoff", func() {
		if !c.ready("takeoff") {
			return
		}
		if !c.mode.CanTakeoff() {
			c.log.Warnf("takeoff refused in %s mode", c.mode.Mode())
			return
		}
		c.send(protocol.Request(protocol.ClientReqTakeoff))
	})
}

func (c *Client) RequestLanding() {
	c.sendRequest("landing", protocol.Request(protocol.ClientReqLanding))
}

func (c *Client) RequestOverride() {
	c.do("override", func() { c.requestMode("override", c.mode.RequestManualOverride) })
}

func (c *Client) RequestAutonomous() {
	c.do("autonomous", func() { c.requestMode("autonomous", c.mode.RequestAutonomous) })
}

func (c *Client) RequestKillswitch() {
	c.do("killswitch", func() {
		if c.link == nil {
			c.log.Warnf("killswitch ignored: not connected")
			return
		}
		c.applyMode(c.mode.RequestKillswitch())
	})
}

func (c *Client) SetTrackSettings(s protocol.TrackSettings) {
	c.sendRequest("track settings", s.Packet())
}

func (c *Client) SetTrimSettings(s protocol.TrimSettings) {
	c.sendRequest("trim settings", s.Packet())
}

func (c *Client) SetFilterSettings(s protocol.FilterSettings) {
	c.sendRequest("filter settings", s.Packet())
}

func (c *Client) SetPidSettings(s protocol.PidSettings) {
	c.sendRequest("pid settings", s.Packet())
}

// SetDeviceControl asks the remote to change a control. The registry keeps
// the old value until the remote confirms.
func (c *Client) SetDeviceControl(id uint32, value int32) {
	c.do("device control", func() {
		if !c.ready("device control") {
			return
		}
		if _, ok := c.controls.Get(id); !ok {
			c.log.Warnf("ignoring update of unknown device control %d", id)
			return
		}
		c.send(protocol.ControlValue{ID: id, Value: value}.Packet())
	})
}

func (c *Client) do(what string, fn func()) {
	select {
	case c.commands <- fn:
	default:
		c.log.Warnf("dropping %s request: command queue full", what)
	}
}

func (c *Client) sendRequest(what string, p protocol.Packet) {
	c.do(what, func() {
		if c.ready(what) {
			c.send(p)
		}
	})
}

func (c *Client) ready(what string) bool {
	if c.link == nil || !c.identified {
		c.log.Warnf("%s ignored: session not established", what)
		return false
	}
	return true
}

func (c *Client) requestMode(what string, request func() (protocol.SetCtlMode, bool)) {
	if !c.ready(what) {
		return
	}
	if m, ok := request(); ok {
		c.applyMode(m)
	}
}

func (c *Client) applyMode(m protocol.SetCtlMode) {
	c.send(m.Packet())
	c.publishState()
	c.emit(event.ControlModeChanged{Mode: m.Mode})
}

func (c *Client) handleInput(ev gamepad.Event) {
	if !c.mapper.Apply(ev) {
		return
	}
	if c.link == nil || !c.identified {
		return
	}
	if m, ok := c.mode.ToggleMixed(); ok {
		c.applyMode(m)
	}
}

func (c *Client) connect(address string) {
	if c.dialCancel != nil && c.abandonDial {
		// dialed once the abandoned attempt has returned
		c.log.Infof("queueing open %s behind abandoned dial", address)
		c.pendingOpen = address
		return
	}
	if c.link != nil || c.dialCancel != nil {
		c.log.Warnf("ignoring open %s: session already active", address)
		return
	}
	ctx, cancel := context.WithTimeout(c.runCtx, c.connectTimeout)
	c.dialCancel = cancel
	c.log.Infof("connecting to %s", address)
	go func() {
		conn, err := c.dialer.DialContext(ctx, "tcp", address)
		c.dialed <- dialResult{address: address, conn: conn, err: err}
	}()
}

func (c *Client) handleDial(res dialResult) {
	c.dialCancel()
	c.dialCancel = nil
	abandoned := c.abandonDial
	c.abandonDial = false

	if res.err == nil && abandoned {
		_ = res.conn.Close()
		res.err = errors.New("connection abandoned")
	}
	if res.err != nil {
		c.log.Error(fmt.Errorf("error connecting to %s: %w", res.address, res.err))
		c.emit(event.ConnectionStatus{Connected: false, Address: res.address})
		if pending := c.pendingOpen; pending != "" {
			c.pendingOpen = ""
			c.connect(pending)
		}
		return
	}

	c.link = startLink(res.address, res.conn)
	c.identified = false
	c.mode.Reset()
	c.signals.Reset()
	c.mapper.Reset()
	c.controls.Clear()
	c.publishState()
	c.log.Warnf("connected to %s", res.address)
	c.emit(event.ConnectionStatus{Connected: true, Address: res.address})
	c.emit(event.ControlModeChanged{Mode: c.mode.Mode()})
}

func (c *Client) handleRead(res readResult) {
	if res.err != nil {
		if errors.Is(res.err, io.EOF) {
			c.log.Warnf("%s closed the connection", c.link.address)
		} else {
			c.log.Error(fmt.Errorf("error reading from %s: %w", c.link.address, res.err))
		}
		c.disconnect()
		return
	}

	_, _ = c.link.decoder.Write(res.data)
	for c.link != nil {
		pkt, ok, err := c.link.decoder.Next()
		if err != nil {
			c.log.Error(fmt.Errorf("error decoding stream from %s: %w", c.link.address, err))
			c.disconnect()
			return
		}
		if !ok {
			return
		}
		c.dispatch(pkt)
	}
}

func (c *Client) dispatch(pkt protocol.Packet) {
	actions, err := Dispatch(pkt, c.identified)
	if err != nil {
		c.log.Warn(fmt.Errorf("error decoding %s: %w", pkt.Command, err))
	}
	for _, a := range actions {
		c.log.Debugf("%s: %s", pkt.Command, describe(a))
		c.apply(a)
	}
}

func (c *Client) apply(a Action) {
	switch a := a.(type) {
	case Send:
		c.send(a.Packet)
	case StartScheduler:
		c.identified = true
		c.sched.Start()
		c.publishState()
		c.log.Warnf("identified by %s, periodic requests started", c.link.address)
	case ConfirmMode:
		c.mode.Confirm(a.Mode)
	case RegisterControl:
		if err := c.controls.Register(a.Descriptor); err != nil {
			c.log.Error(fmt.Errorf("error registering device control: %w", err))
			return
		}
		c.emit(event.DeviceControl{Descriptor: a.Descriptor})
	case ApplyMenuLabel:
		d, err := c.controls.ApplyMenuLabel(a.Label.ID, a.Label.Index, a.Label.Label)
		if err != nil {
			c.log.Error(fmt.Errorf("error applying menu label: %w", err))
			return
		}
		c.emit(event.DeviceControl{Descriptor: d})
	case UpdateControl:
		d, err := c.controls.SetValue(a.Value.ID, a.Value.Value)
		if err != nil {
			c.log.Error(fmt.Errorf("error updating device control: %w", err))
			return
		}
		c.emit(event.DeviceControl{Descriptor: d})
	case Emit:
		c.emit(a.Event)
	case Unexpected:
		c.log.Warnf("unexpected %s before identification", a.Command)
	case Unknown:
		c.log.Warnf("discarding unknown command %s", a.Command)
	}
}

func (c *Client) send(p protocol.Packet) {
	if c.link == nil {
		c.log.Debugf("not connected, dropping %s", p.Command)
		return
	}
	if err := c.link.write(p.Bytes(), c.writeTimeout); err != nil {
		c.log.Warn(fmt.Errorf("error sending %s: %w", p.Command, err))
	}
}

func (c *Client) disconnect() {
	if c.dialCancel != nil {
		c.log.Infof("abandoning pending dial")
		c.abandonDial = true
		c.pendingOpen = ""
		c.dialCancel()
		return
	}
	if c.link == nil {
		return
	}
	address := c.link.address
	c.sched.Stop()
	if err := c.link.close(); err != nil {
		c.log.Debugf("closing %s: %v", address, err)
	}
	c.link = nil
	c.identified = false
	c.controls.Clear()
	c.publishState()
	c.log.Warnf("disconnected from %s", address)
	c.emit(event.ConnectionStatus{Connected: false, Address: address})
}

func (c *Client) shutdown() {
	c.pendingOpen = ""
	if c.dialCancel != nil {
		c.dialCancel()
		c.dialCancel = nil
		if res := <-c.dialed; res.conn != nil {
			_ = res.conn.Close()
		}
	}
	c.disconnect()
}

func (c *Client) emit(ev event.Event) {
	select {
	case c.events <- ev:
	default:
		c.log.Warnf("dropping %T: event consumer is behind", ev)
	}
}

func (c *Client) publishState() {
	st := device.State{
		Connected:  c.link != nil,
		Identified: c.identified,
		Mode:       c.mode.Mode(),
	}
	if c.link != nil {
		st.Address = c.link.address
	}
	c.state.Store(&st)
}
