// Package event defines what a device reports to the presentation layer.
package event

import (
	"time"

	"github.com/einherij/groundlink/pkg/devicectl"
	"github.com/einherij/groundlink/pkg/protocol"
)

type Event interface {
	event()
}

type TelemetrySample struct {
	Time     time.Time `json:"time"`
	Yaw      float32   `json:"yaw"`
	Pitch    float32   `json:"pitch"`
	Roll     float32   `json:"roll"`
	RSSI     int32     `json:"rssi"`
	Altitude int32     `json:"altitude"`
	Battery  int32     `json:"battery"`
}

// VideoFrame carries an opaque encoded frame, "jpeg" or "h264".
type VideoFrame struct {
	Time   time.Time `json:"time"`
	Format string    `json:"format"`
	Data   []byte    `json:"data"`
}

type ConnectionStatus struct {
	Connected bool   `json:"connected"`
	Address   string `json:"address,omitempty"`
}

type ControlModeChanged struct {
	Mode protocol.ControlMode `json:"mode"`
}

type DeviceControl struct {
	Descriptor devicectl.Descriptor `json:"descriptor"`
}

type TrackSettings struct {
	Settings protocol.TrackSettings `json:"settings"`
}

// CommandAck reports a payload-less acknowledgement from the remote.
type CommandAck struct {
	Command protocol.Command `json:"command"`
}

func (TelemetrySample) event()    {}
func (VideoFrame) event()         {}
func (ConnectionStatus) event()   {}
func (ControlModeChanged) event() {}
func (DeviceControl) event()      {}
func (TrackSettings) event()      {}
func (CommandAck) event()         {}
