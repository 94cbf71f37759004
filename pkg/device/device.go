package device

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/einherij/groundlink/pkg/devicectl"
	"github.com/einherij/groundlink/pkg/event"
	"github.com/einherij/groundlink/pkg/gamepad"
	"github.com/einherij/groundlink/pkg/protocol"
)

var ErrBadAddress = errors.New("bad address")

type State struct {
	Connected  bool                 `json:"connected"`
	Identified bool                 `json:"identified"`
	Address    string               `json:"address,omitempty"`
	Mode       protocol.ControlMode `json:"mode"`
}

//go:generate mockgen -destination=mock_device/mock_device.go github.com/einherij/groundlink/pkg/device Device

// Device is the capability set shared by every flight-controller variant.
// Requests are asynchronous: they are queued to the device loop run by Run.
type Device interface {
	Run(ctx context.Context)

	Name() string
	Open(address string) error
	Close()
	State() State
	Events() <-chan event.Event
	Controls() []devicectl.Descriptor

	RequestTakeoff()
	RequestLanding()
	RequestOverride()
	RequestAutonomous()
	RequestKillswitch()

	SetTrackSettings(s protocol.TrackSettings)
	SetTrimSettings(s protocol.TrimSettings)
	SetFilterSettings(s protocol.FilterSettings)
	SetPidSettings(s protocol.PidSettings)
	SetDeviceControl(id uint32, value int32)

	// InputReady is called from the input worker; it must not block.
	InputReady(ev gamepad.Event)
}

// ParseAddress validates an "address:port" connection target.
func ParseAddress(address string) (host, port string, err error) {
	if strings.Count(address, ":") != 1 {
		return "", "", fmt.Errorf("%w: %q must contain exactly one ':'", ErrBadAddress, address)
	}
	host, port, _ = strings.Cut(address, ":")
	if port == "" {
		return "", "", fmt.Errorf("%w: %q has no port", ErrBadAddress, address)
	}
	return host, port, nil
}
