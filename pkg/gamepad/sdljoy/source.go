// Package sdljoy reads a physical joystick through SDL2.
package sdljoy

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/einherij/groundlink/pkg/gamepad"
)

const axisScale = 32767

// Source implements gamepad.Source. SDL is initialized lazily by the first
// Wait so that it binds to the worker's thread.
type Source struct {
	index int
	joy   *sdl.Joystick
}

func New(index int) *Source {
	return &Source{index: index}
}

func (s *Source) open() error {
	if err := sdl.Init(sdl.INIT_JOYSTICK); err != nil {
		return fmt.Errorf("error initializing sdl joystick subsystem: %w", err)
	}
	if n := sdl.NumJoysticks(); s.index >= n {
		sdl.Quit()
		return fmt.Errorf("joystick %d not present, %d found: %w", s.index, n, gamepad.ErrClosed)
	}
	s.joy = sdl.JoystickOpen(s.index)
	if s.joy == nil {
		sdl.Quit()
		return fmt.Errorf("error opening joystick %d: %w", s.index, sdl.GetError())
	}
	logrus.Warnf("opened joystick %q with %d axes and %d buttons", s.joy.Name(), s.joy.NumAxes(), s.joy.NumButtons())
	return nil
}

func (s *Source) Wait(timeout time.Duration) (gamepad.Event, bool, error) {
	if s.joy == nil {
		if err := s.open(); err != nil {
			return gamepad.Event{}, false, err
		}
	}
	switch e := sdl.WaitEventTimeout(int(timeout.Milliseconds())).(type) {
	case *sdl.JoyAxisEvent:
		return gamepad.Event{
			Kind:  gamepad.AxisEvent,
			Index: int(e.Axis),
			Value: normalizeAxis(e.Value),
		}, true, nil
	case *sdl.JoyButtonEvent:
		value := float32(-1)
		if e.State == sdl.PRESSED {
			value = 1
		}
		return gamepad.Event{Kind: gamepad.ButtonEvent, Index: int(e.Button), Value: value}, true, nil
	case *sdl.JoyDeviceRemovedEvent:
		return gamepad.Event{}, false, gamepad.ErrClosed
	}
	return gamepad.Event{}, false, nil
}

func (s *Source) Close() error {
	if s.joy != nil {
		s.joy.Close()
		s.joy = nil
		sdl.Quit()
	}
	return nil
}

func normalizeAxis(v int16) float32 {
	f := float32(v) / axisScale
	if f < -1 {
		f = -1
	}
	return f
}
