package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/einherij/groundlink/pkg/device"
	"github.com/einherij/groundlink/pkg/protocol"
	"github.com/einherij/groundlink/pkg/wsbridge"
)

var ErrUnknownCommand = errors.New("unknown command")

type Messenger interface {
	SendMessage(msg wsbridge.Message) bool
	ReceiveMessage(ctx context.Context) wsbridge.Message
}

// Command is the content of a cmd message sent by the UI.
type Command struct {
	Name string          `json:"name"`
	Args json.RawMessage `json:"args,omitempty"`
}

type connectArgs struct {
	Address string `json:"address"`
}

type deviceControlArgs struct {
	ID    uint32 `json:"id"`
	Value int32  `json:"value"`
}

// Controller turns UI commands into device requests.
type Controller struct {
	messenger Messenger
	device    device.Device
}

func New(messenger Messenger, dev device.Device) *Controller {
	return &Controller{
		messenger: messenger,
		device:    dev,
	}
}

func (h *Controller) Run(ctx context.Context) {
	logrus.Warnf("started %s device controller", h.device.Name())
	for {
		select {
		case <-ctx.Done():
			logrus.Warnf("stopped %s device controller", h.device.Name())
			return
		default:
			msg := h.messenger.ReceiveMessage(ctx)
			if msg.Type != wsbridge.MTCmd {
				continue
			}
			h.handle(msg.Content)
		}
	}
}

func (h *Controller) handle(content []byte) {
	var cmd Command
	var info string
	if err := json.Unmarshal(content, &cmd); err != nil {
		err = fmt.Errorf("error parsing command %q: %w", content, err)
		logrus.Error(err)
		info = err.Error()
	} else if info, err = h.execute(cmd); err != nil {
		err = fmt.Errorf("error executing %s: %w", cmd.Name, err)
		logrus.Error(err)
		info = err.Error()
	}

	st := h.device.State()
	info += fmt.Sprintf(" Connected: %t; Mode: %s", st.Connected, st.Mode)
	if st.Address != "" {
		info += "; Address: " + st.Address
	}
	h.messenger.SendMessage(wsbridge.Message{
		Type:    wsbridge.MTLog,
		Content: []byte("Command " + info),
	})
}

func (h *Controller) execute(cmd Command) (info string, err error) {
	switch cmd.Name {
	case "connect":
		var args connectArgs
		if err := unmarshalArgs(cmd.Args, &args); err != nil {
			return "", err
		}
		if err := h.device.Open(args.Address); err != nil {
			return "", err
		}
		return "Connecting to " + args.Address, nil
	case "disconnect":
		h.device.Close()
		return "Disconnecting", nil
	case "takeoff":
		h.device.RequestTakeoff()
		return "Started Take Off", nil
	case "landing":
		h.device.RequestLanding()
		return "Started Land", nil
	case "override":
		h.device.RequestOverride()
		return "Requested Manual Override", nil
	case "autonomous":
		h.device.RequestAutonomous()
		return "Requested Autonomous", nil
	case "killswitch":
		h.device.RequestKillswitch()
		return "Killswitch", nil
	case "track":
		var s protocol.TrackSettings
		if err := unmarshalArgs(cmd.Args, &s); err != nil {
			return "", err
		}
		h.device.SetTrackSettings(s)
		return "Track settings sent", nil
	case "trim":
		var s protocol.TrimSettings
		if err := unmarshalArgs(cmd.Args, &s); err != nil {
			return "", err
		}
		h.device.SetTrimSettings(s)
		return "Trim settings sent", nil
	case "filter":
		var s protocol.FilterSettings
		if err := unmarshalArgs(cmd.Args, &s); err != nil {
			return "", err
		}
		h.device.SetFilterSettings(s)
		return "Filter settings sent", nil
	case "pid":
		var s protocol.PidSettings
		if err := unmarshalArgs(cmd.Args, &s); err != nil {
			return "", err
		}
		h.device.SetPidSettings(s)
		return "PID settings sent", nil
	case "device_control":
		var args deviceControlArgs
		if err := unmarshalArgs(cmd.Args, &args); err != nil {
			return "", err
		}
		h.device.SetDeviceControl(args.ID, args.Value)
		return fmt.Sprintf("Device control %d set to %d", args.ID, args.Value), nil
	case "controls":
		controls := h.device.Controls()
		content, err := json.Marshal(controls)
		if err != nil {
			return "", err
		}
		h.messenger.SendMessage(wsbridge.Message{Type: wsbridge.MTControls, Content: content})
		return fmt.Sprintf("%d device controls", len(controls)), nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownCommand, cmd.Name)
	}
}

func unmarshalArgs(raw json.RawMessage, v any) error {
	if len(raw) == 0 {
		return errors.New("missing arguments")
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("error parsing arguments: %w", err)
	}
	return nil
}
