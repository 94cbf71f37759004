package eventsend

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/einherij/groundlink/pkg/device"
	"github.com/einherij/groundlink/pkg/event"
	"github.com/einherij/groundlink/pkg/wsbridge"
)

type Messenger interface {
	SendMessage(msg wsbridge.Message) bool
}

// Sender forwards device events to the UI and reports the device state
// once per stateInterval.
type Sender struct {
	messenger     Messenger
	device        device.Device
	stateInterval time.Duration
}

func New(messenger Messenger, dev device.Device) *Sender {
	return &Sender{
		messenger:     messenger,
		device:        dev,
		stateInterval: time.Second,
	}
}

func (s *Sender) Run(ctx context.Context) {
	logrus.Warnf("started event sender")
	stateTicker := time.NewTicker(s.stateInterval)
	defer stateTicker.Stop()
	events := s.device.Events()
	for {
		select {
		case ev := <-events:
			msg, err := Encode(ev)
			if err != nil {
				logrus.Error(fmt.Errorf("error encoding %T: %w", ev, err))
				continue
			}
			s.messenger.SendMessage(msg)
		case <-stateTicker.C:
			content, err := json.Marshal(s.device.State())
			if err != nil {
				logrus.Error(fmt.Errorf("error encoding device state: %w", err))
				continue
			}
			s.messenger.SendMessage(wsbridge.Message{Type: wsbridge.MTState, Content: content})
		case <-ctx.Done():
			logrus.Warnf("stopped event sender")
			return
		}
	}
}

// Encode converts a device event into a bridge message. Video frames are
// sent as raw encoded bytes, everything else as JSON.
func Encode(ev event.Event) (wsbridge.Message, error) {
	var mt wsbridge.MessageType
	switch ev := ev.(type) {
	case event.VideoFrame:
		return wsbridge.Message{Type: wsbridge.MTVideo, Content: ev.Data}, nil
	case event.TelemetrySample:
		mt = wsbridge.MTTelemetry
	case event.ConnectionStatus:
		mt = wsbridge.MTStatus
	case event.ControlModeChanged:
		mt = wsbridge.MTMode
	case event.DeviceControl:
		mt = wsbridge.MTDeviceControl
	case event.TrackSettings:
		mt = wsbridge.MTTrack
	case event.CommandAck:
		mt = wsbridge.MTAck
	default:
		return wsbridge.Message{}, fmt.Errorf("unsupported event %T", ev)
	}
	content, err := json.Marshal(ev)
	if err != nil {
		return wsbridge.Message{}, err
	}
	return wsbridge.Message{Type: mt, Content: content}, nil
}
