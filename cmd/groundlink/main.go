package main

import (
	"os"

	"github.com/SMerrony/tello"
	"github.com/sirupsen/logrus"

	"github.com/einherij/enterprise"
	"github.com/einherij/enterprise/utils"
	"github.com/einherij/groundlink/pkg/config"
	"github.com/einherij/groundlink/pkg/controller"
	"github.com/einherij/groundlink/pkg/device"
	"github.com/einherij/groundlink/pkg/eventsend"
	"github.com/einherij/groundlink/pkg/gamepad"
	"github.com/einherij/groundlink/pkg/gamepad/sdljoy"
	"github.com/einherij/groundlink/pkg/logging"
	"github.com/einherij/groundlink/pkg/session"
	"github.com/einherij/groundlink/pkg/tellodevice"
	"github.com/einherij/groundlink/pkg/wsbridge"
)

func main() {
	cfg := utils.Must(config.FromEnvironment(os.LookupEnv))
	logFile := utils.Must(logging.Setup(logrus.StandardLogger(), cfg.Log))

	app := enterprise.NewApplication()
	app.RegisterOnShutdown(func() {
		_ = logFile.Close()
	})

	dev := newDevice(cfg)
	app.RegisterRunner(dev)

	// connect to interface
	wsClient := wsbridge.New(cfg.Handler.URL)
	app.RegisterRunner(wsClient)
	app.RegisterRunner(eventsend.New(wsClient, dev))
	app.RegisterRunner(controller.New(wsClient, dev))

	if cfg.Gamepad.Enabled {
		worker := gamepad.NewWorker(sdljoy.New(cfg.Gamepad.Index), dev.InputReady, config.Duration(cfg.Gamepad.WaitTimeout))
		app.RegisterRunner(worker)
	}

	if cfg.Device.Address != "" {
		utils.PanicOnError(dev.Open(cfg.Device.Address))
	}

	app.Run()
}

func newDevice(cfg config.Config) device.Device {
	if cfg.Device.Kind == config.DeviceTello {
		return tellodevice.New(new(tello.Tello),
			tellodevice.WithFlightControlPeriod(config.Duration(cfg.Session.FlightControlPeriod)),
		)
	}
	return session.New(
		session.WithConnectTimeout(config.Duration(cfg.Device.ConnectTimeout)),
		session.WithWriteTimeout(config.Duration(cfg.Device.WriteTimeout)),
		session.WithPeriods(session.Periods{
			Telemetry:     config.Duration(cfg.Session.TelemetryPeriod),
			Video:         config.Duration(cfg.Session.VideoPeriod),
			FlightControl: config.Duration(cfg.Session.FlightControlPeriod),
		}),
	)
}
