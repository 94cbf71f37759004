package tellodevice

import (
	"time"

	"github.com/SMerrony/tello"
)

//go:generate mockgen -destination=mock_tellodevice/mock_drone.go github.com/einherij/groundlink/pkg/tellodevice Drone

// Drone is the part of *tello.Tello the device drives.
type Drone interface {
	ControlConnectDefault() (err error)
	ControlDisconnect()

	VideoConnectDefault() (<-chan []byte, error)
	VideoDisconnect()
	GetVideoSpsPps()

	StreamFlightData(asAvailable bool, periodMs time.Duration) (<-chan tello.FlightData, error)

	TakeOff()
	Land()
	Hover()
	UpdateSticks(sm tello.StickMessage)
}

var _ Drone = (*tello.Tello)(nil)
