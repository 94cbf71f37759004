// Package tellodevice drives a DJI Tello through the same device interface
// as the network flight controller.
package tellodevice

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/SMerrony/tello"
	"github.com/sirupsen/logrus"

	"github.com/einherij/groundlink/pkg/controlmode"
	"github.com/einherij/groundlink/pkg/device"
	"github.com/einherij/groundlink/pkg/devicectl"
	"github.com/einherij/groundlink/pkg/event"
	"github.com/einherij/groundlink/pkg/gamepad"
	"github.com/einherij/groundlink/pkg/protocol"
)

// DefaultAddress is the only control address the Tello SDK dials.
const DefaultAddress = "192.168.10.1:8889"

const (
	stickScale         = 32767
	flightDataPeriodMs = 100
	keyFrameInterval   = 500 * time.Millisecond
)

type Option func(*Device)

func WithLogger(l logrus.FieldLogger) Option {
	return func(d *Device) {
		if l != nil {
			d.log = l
		}
	}
}

func WithFlightControlPeriod(p time.Duration) Option {
	return func(d *Device) {
		if p > 0 {
			d.flightPeriod = p
		}
	}
}

// Device adapts a Tello to device.Device. Like the network session, all
// drone calls happen on the goroutine running Run.
type Device struct {
	log          logrus.FieldLogger
	drone        Drone
	flightPeriod time.Duration

	commands chan func()
	events   chan event.Event
	input    *gamepad.Queue
	state    atomic.Pointer[device.State]

	// loop state
	connected  bool
	address    string
	flightData <-chan tello.FlightData
	video      <-chan []byte
	flight     *time.Ticker
	keyFrames  *time.Ticker
	mode       *controlmode.Machine
	signals    controlmode.Signals
	mapper     *gamepad.Mapper
}

var _ device.Device = (*Device)(nil)

func New(drone Drone, opts ...Option) *Device {
	d := &Device{
		log:          logrus.StandardLogger().WithField("component", "tello"),
		drone:        drone,
		flightPeriod: 50 * time.Millisecond,
		commands:     make(chan func(), 64),
		events:       make(chan event.Event, 256),
		input:        gamepad.NewQueue(256),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.mode = controlmode.New(d.log)
	d.mapper = gamepad.NewMapper(&d.signals, d.log)
	d.publishState()
	return d
}

func (d *Device) Name() string {
	return "tello"
}

func (d *Device) Run(ctx context.Context) {
	d.log.Warnf("started tello device")
	for {
		select {
		case <-ctx.Done():
			d.disconnect()
			d.log.Warnf("stopped tello device")
			return
		case fn := <-d.commands:
			fn()
		case fd, ok := <-d.flightData:
			if !ok {
				d.log.Warnf("tello flight data stream ended")
				d.disconnect()
				continue
			}
			d.emit(Telemetry(fd))
		case chunk, ok := <-d.video:
			if !ok {
				d.video = nil
				continue
			}
			d.emit(event.VideoFrame{Time: time.Now(), Format: "h264", Data: chunk})
		case <-tickerC(d.keyFrames):
			d.drone.GetVideoSpsPps()
		case <-tickerC(d.flight):
			if fc, ok := d.mode.Tick(&d.signals); ok {
				d.drone.UpdateSticks(Sticks(fc))
			}
		case ev := <-d.input.C():
			d.handleInput(ev)
			d.input.Drain(d.handleInput)
		}
	}
}

func (d *Device) Open(address string) error {
	if _, _, err := device.ParseAddress(address); err != nil {
		return err
	}
	if address != DefaultAddress {
		return fmt.Errorf("%w: tello is only reachable at %s", device.ErrBadAddress, DefaultAddress)
	}
	d.do("open", func() { d.connect(address) })
	return nil
}

func (d *Device) Close() {
	d.do("close", d.disconnect)
}

func (d *Device) State() device.State {
	return *d.state.Load()
}

func (d *Device) Events() <-chan event.Event {
	return d.events
}

// Controls is always empty: the Tello announces no tunable controls.
func (d *Device) Controls() []devicectl.Descriptor {
	return nil
}

func (d *Device) InputReady(ev gamepad.Event) {
	if !d.input.Push(ev) {
		d.log.Debugf("dropped %s: input queue full", ev)
	}
}

func (d *Device) RequestTakeoff() {
	d.do("takeoff", func() {
		if !d.ready("takeoff") {
			return
		}
		if !d.mode.CanTakeoff() {
			d.log.Warnf("takeoff refused in %s mode", d.mode.Mode())
			return
		}
		d.drone.TakeOff()
	})
}

func (d *Device) RequestLanding() {
	d.do("landing", func() {
		if d.ready("landing") {
			d.drone.Land()
		}
	})
}

func (d *Device) RequestOverride() {
	d.do("override", func() { d.requestMode("override", d.mode.RequestManualOverride) })
}

func (d *Device) RequestAutonomous() {
	d.do("autonomous", func() { d.requestMode("autonomous", d.mode.RequestAutonomous) })
}

// RequestKillswitch lands the drone and latches Killed; the Tello has no
// motor cut-off command.
func (d *Device) RequestKillswitch() {
	d.do("killswitch", func() {
		if !d.ready("killswitch") {
			return
		}
		d.applyMode(d.mode.RequestKillswitch())
		d.drone.Land()
	})
}

func (d *Device) SetTrackSettings(protocol.TrackSettings) { d.unsupported("track settings") }

func (d *Device) SetTrimSettings(protocol.TrimSettings) { d.unsupported("trim settings") }

func (d *Device) SetFilterSettings(protocol.FilterSettings) { d.unsupported("filter settings") }

func (d *Device) SetPidSettings(protocol.PidSettings) { d.unsupported("pid settings") }

func (d *Device) SetDeviceControl(id uint32, _ int32) {
	d.unsupported(fmt.Sprintf("device control %d", id))
}

func (d *Device) unsupported(what string) {
	d.log.Warnf("%s not supported by tello", what)
}

func (d *Device) do(what string, fn func()) {
	select {
	case d.commands <- fn:
	default:
		d.log.Warnf("dropping %s request: command queue full", what)
	}
}

func (d *Device) ready(what string) bool {
	if !d.connected {
		d.log.Warnf("%s ignored: tello not connected", what)
		return false
	}
	return true
}

func (d *Device) requestMode(what string, request func() (protocol.SetCtlMode, bool)) {
	if !d.ready(what) {
		return
	}
	if m, ok := request(); ok {
		d.applyMode(m)
	}
}

// applyMode takes effect locally. Leaving Mixed centers the sticks so the
// drone holds position.
func (d *Device) applyMode(m protocol.SetCtlMode) {
	if m.Mode != protocol.ModeMixed {
		d.drone.Hover()
	}
	d.publishState()
	d.emit(event.ControlModeChanged{Mode: m.Mode})
}

func (d *Device) handleInput(ev gamepad.Event) {
	if !d.mapper.Apply(ev) || !d.connected {
		return
	}
	if m, ok := d.mode.ToggleMixed(); ok {
		d.applyMode(m)
	}
}

func (d *Device) connect(address string) {
	if d.connected {
		d.log.Warnf("ignoring open %s: tello already connected", address)
		return
	}
	if err := d.drone.ControlConnectDefault(); err != nil {
		d.log.Error(fmt.Errorf("error connecting to tello: %w", err))
		d.emit(event.ConnectionStatus{Connected: false, Address: address})
		return
	}
	flightData, err := d.drone.StreamFlightData(false, flightDataPeriodMs)
	if err != nil {
		d.drone.ControlDisconnect()
		d.log.Error(fmt.Errorf("error streaming tello flight data: %w", err))
		d.emit(event.ConnectionStatus{Connected: false, Address: address})
		return
	}
	video, err := d.drone.VideoConnectDefault()
	if err != nil {
		d.log.Error(fmt.Errorf("error connecting tello video: %w", err))
	} else {
		d.keyFrames = time.NewTicker(keyFrameInterval)
	}

	d.connected = true
	d.address = address
	d.flightData = flightData
	d.video = video
	d.flight = time.NewTicker(d.flightPeriod)
	d.mode.Reset()
	d.signals.Reset()
	d.mapper.Reset()
	d.publishState()
	d.log.Warnf("connected to tello at %s", address)
	d.emit(event.ConnectionStatus{Connected: true, Address: address})
	d.emit(event.ControlModeChanged{Mode: d.mode.Mode()})
}

func (d *Device) disconnect() {
	if !d.connected {
		return
	}
	for _, t := range []*time.Ticker{d.flight, d.keyFrames} {
		if t != nil {
			t.Stop()
		}
	}
	d.flight, d.keyFrames = nil, nil
	if d.video != nil {
		d.drone.VideoDisconnect()
	}
	d.drone.ControlDisconnect()
	address := d.address
	d.connected = false
	d.address = ""
	d.flightData = nil
	d.video = nil
	d.publishState()
	d.log.Warnf("disconnected from tello")
	d.emit(event.ConnectionStatus{Connected: false, Address: address})
}

func (d *Device) emit(ev event.Event) {
	select {
	case d.events <- ev:
	default:
		d.log.Warnf("dropping %T: event consumer is behind", ev)
	}
}

func (d *Device) publishState() {
	d.state.Store(&device.State{
		Connected:  d.connected,
		Identified: d.connected,
		Address:    d.address,
		Mode:       d.mode.Mode(),
	})
}

// Telemetry converts Tello flight data. Only the IMU yaw is reported; pitch
// and roll stay zero.
func Telemetry(fd tello.FlightData) event.TelemetrySample {
	return event.TelemetrySample{
		Time:     time.Now(),
		Yaw:      float32(fd.IMU.Yaw),
		RSSI:     int32(fd.WifiStrength),
		Altitude: int32(fd.Height),
		Battery:  int32(fd.BatteryPercentage),
	}
}

// Sticks maps normalized flight-control axes onto Tello stick positions:
// left stick yaw and altitude, right stick roll and pitch.
func Sticks(fc protocol.FlightControl) tello.StickMessage {
	return tello.StickMessage{
		Lx: scaleStick(fc.Yaw),
		Ly: scaleStick(fc.Alt),
		Rx: scaleStick(fc.Roll),
		Ry: scaleStick(fc.Pitch),
	}
}

func scaleStick(v float32) int16 {
	if v > 1 {
		v = 1
	} else if v < -1 {
		v = -1
	}
	return int16(v * stickScale)
}

func tickerC(t *time.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}
