package session

import (
	"fmt"
	"time"

	"github.com/einherij/groundlink/pkg/devicectl"
	"github.com/einherij/groundlink/pkg/event"
	"github.com/einherij/groundlink/pkg/protocol"
)

// Action is a side effect requested by Dispatch. The session loop executes
// actions in order.
type Action interface {
	action()
}

type (
	Send            struct{ Packet protocol.Packet }
	StartScheduler  struct{}
	ConfirmMode     struct{ Mode protocol.ControlMode }
	RegisterControl struct{ Descriptor devicectl.Descriptor }
	ApplyMenuLabel  struct{ Label protocol.MenuLabel }
	UpdateControl   struct{ Value protocol.ControlValue }
	Emit            struct{ Event event.Event }
	// Unexpected marks a packet received before the identification handshake.
	Unexpected struct{ Command protocol.Command }
	// Unknown marks a command missing from the protocol table.
	Unknown struct{ Command protocol.Command }
)

func (Send) action()            {}
func (StartScheduler) action()  {}
func (ConfirmMode) action()     {}
func (RegisterControl) action() {}
func (ApplyMenuLabel) action()  {}
func (UpdateControl) action()   {}
func (Emit) action()            {}
func (Unexpected) action()      {}
func (Unknown) action()         {}

// now is replaced in tests.
var now = time.Now

// Dispatch decodes one complete packet. It performs no I/O; a malformed
// payload is returned as an error and the packet is otherwise ignored.
func Dispatch(p protocol.Packet, identified bool) ([]Action, error) {
	var actions []Action
	if !identified && p.Command != protocol.ServerReqIdent {
		actions = append(actions, Unexpected{Command: p.Command})
	}

	switch p.Command {
	case protocol.ServerReqIdent:
		return append(actions,
			Send{Packet: protocol.EncodeIdentAck()},
			StartScheduler{},
			Send{Packet: protocol.Request(protocol.ClientReqDeviceControls)},
			Send{Packet: protocol.Request(protocol.ClientReqTrackSettings)},
		), nil

	case protocol.ServerAckTelemetry:
		raw, err := protocol.DecodeTelemetry(p)
		if err != nil {
			return actions, err
		}
		return append(actions, Emit{Event: TelemetrySample(raw)}), nil

	case protocol.ServerAckMJPGFrame:
		return append(actions, Emit{Event: event.VideoFrame{
			Time:   now(),
			Format: "jpeg",
			Data:   p.Payload,
		}}), nil

	case protocol.ServerAckSetCtlMode:
		mode, err := protocol.DecodeSetCtlModeAck(p)
		if err != nil {
			return actions, err
		}
		return append(actions, ConfirmMode{Mode: mode}), nil

	case protocol.ServerAckTrackSettings:
		settings, err := protocol.DecodeTrackSettings(p)
		if err != nil {
			return actions, err
		}
		return append(actions, Emit{Event: event.TrackSettings{Settings: settings}}), nil

	case protocol.ServerAckDeviceControl:
		a, err := protocol.DecodeControlAnnouncement(p)
		if err != nil {
			return actions, err
		}
		return append(actions, RegisterControl{Descriptor: devicectl.FromAnnouncement(a)}), nil

	case protocol.ServerAckDeviceControlMenu:
		label, err := protocol.DecodeMenuLabel(p)
		if err != nil {
			return actions, err
		}
		return append(actions, ApplyMenuLabel{Label: label}), nil

	case protocol.ServerAckSetDeviceControl:
		value, err := protocol.DecodeControlValue(p)
		if err != nil {
			return actions, err
		}
		return append(actions, UpdateControl{Value: value}), nil

	case protocol.ServerAckIgnored,
		protocol.ServerAckTakeoff,
		protocol.ServerAckLanding,
		protocol.ServerAckFlightCtl,
		protocol.ServerAckSetTrackSettings,
		protocol.ServerAckSetTrimSettings,
		protocol.ServerAckSetFilterSettings,
		protocol.ServerAckSetPidSettings:
		return append(actions, Emit{Event: event.CommandAck{Command: p.Command}}), nil
	}

	return append(actions, Unknown{Command: p.Command}), nil
}

// TelemetrySample applies the network controller's axis convention: the
// wire carries yaw, pitch, roll; the sample reports roll as yaw and the
// negated wire yaw and pitch as roll and pitch.
func TelemetrySample(raw protocol.Telemetry) event.TelemetrySample {
	return event.TelemetrySample{
		Time:     now(),
		Yaw:      raw.Roll,
		Pitch:    -raw.Pitch,
		Roll:     -raw.Yaw,
		RSSI:     raw.RSSI,
		Altitude: raw.Altitude,
		Battery:  raw.Battery,
	}
}

func describe(a Action) string {
	switch a := a.(type) {
	case Send:
		return "send " + a.Packet.Command.String()
	case Emit:
		return fmt.Sprintf("emit %T", a.Event)
	default:
		return fmt.Sprintf("%T", a)
	}
}
