package protocol

import "fmt"

type Command uint32

// client -> server
const (
	ClientAckIdent             Command = 0x0002
	ClientReqTakeoff           Command = 0x0010
	ClientReqLanding           Command = 0x0011
	ClientReqSetCtlMode        Command = 0x0012
	ClientReqTelemetry         Command = 0x0013
	ClientReqMJPGFrame         Command = 0x0014
	ClientReqFlightCtl         Command = 0x0015
	ClientReqSetTrackSettings  Command = 0x0016
	ClientReqTrackSettings     Command = 0x0017
	ClientReqSetTrimSettings   Command = 0x0018
	ClientReqSetFilterSettings Command = 0x0019
	ClientReqSetPidSettings    Command = 0x001A
	ClientReqDeviceControls    Command = 0x001B
	ClientReqSetDeviceControl  Command = 0x001C
)

// server -> client
const (
	ServerReqIdent             Command = 0x0001
	ServerAckIgnored           Command = 0x0100
	ServerAckTakeoff           Command = 0x0101
	ServerAckLanding           Command = 0x0102
	ServerAckSetCtlMode        Command = 0x0103
	ServerAckTelemetry         Command = 0x0104
	ServerAckMJPGFrame         Command = 0x0105
	ServerAckFlightCtl         Command = 0x0106
	ServerAckSetTrackSettings  Command = 0x0107
	ServerAckTrackSettings     Command = 0x0108
	ServerAckSetTrimSettings   Command = 0x0109
	ServerAckSetFilterSettings Command = 0x010A
	ServerAckSetPidSettings    Command = 0x010B
	ServerAckDeviceControl     Command = 0x010C
	ServerAckDeviceControlMenu Command = 0x010D
	ServerAckSetDeviceControl  Command = 0x010E
)

// Identification sent in reply to ServerReqIdent.
const (
	IdentMagic   uint32 = 0x474C4E4B // "GLNK"
	IdentVersion uint32 = 1
)

var commandNames = map[Command]string{
	ClientAckIdent:             "CLIENT_ACK_IDENT",
	ClientReqTakeoff:           "CLIENT_REQ_TAKEOFF",
	ClientReqLanding:           "CLIENT_REQ_LANDING",
	ClientReqSetCtlMode:        "CLIENT_REQ_SET_CTL_MODE",
	ClientReqTelemetry:         "CLIENT_REQ_TELEMETRY",
	ClientReqMJPGFrame:         "CLIENT_REQ_MJPG_FRAME",
	ClientReqFlightCtl:         "CLIENT_REQ_FLIGHT_CTL",
	ClientReqSetTrackSettings:  "CLIENT_REQ_SET_TRACK_SETTINGS",
	ClientReqTrackSettings:     "CLIENT_REQ_TRACK_SETTINGS",
	ClientReqSetTrimSettings:   "CLIENT_REQ_SET_TRIM_SETTINGS",
	ClientReqSetFilterSettings: "CLIENT_REQ_SET_FILTER_SETTINGS",
	ClientReqSetPidSettings:    "CLIENT_REQ_SET_PID_SETTINGS",
	ClientReqDeviceControls:    "CLIENT_REQ_DEVICE_CONTROLS",
	ClientReqSetDeviceControl:  "CLIENT_REQ_SET_DEVICE_CONTROL",
	ServerReqIdent:             "SERVER_REQ_IDENT",
	ServerAckIgnored:           "SERVER_ACK_IGNORED",
	ServerAckTakeoff:           "SERVER_ACK_TAKEOFF",
	ServerAckLanding:           "SERVER_ACK_LANDING",
	ServerAckSetCtlMode:        "SERVER_ACK_SET_CTL_MODE",
	ServerAckTelemetry:         "SERVER_ACK_TELEMETRY",
	ServerAckMJPGFrame:         "SERVER_ACK_MJPG_FRAME",
	ServerAckFlightCtl:         "SERVER_ACK_FLIGHT_CTL",
	ServerAckSetTrackSettings:  "SERVER_ACK_SET_TRACK_SETTINGS",
	ServerAckTrackSettings:     "SERVER_ACK_TRACK_SETTINGS",
	ServerAckSetTrimSettings:   "SERVER_ACK_SET_TRIM_SETTINGS",
	ServerAckSetFilterSettings: "SERVER_ACK_SET_FILTER_SETTINGS",
	ServerAckSetPidSettings:    "SERVER_ACK_SET_PID_SETTINGS",
	ServerAckDeviceControl:     "SERVER_ACK_DEVICE_CONTROL",
	ServerAckDeviceControlMenu: "SERVER_ACK_DEVICE_CONTROL_MENU",
	ServerAckSetDeviceControl:  "SERVER_ACK_SET_DEVICE_CONTROL",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return fmt.Sprintf("COMMAND_0x%04x", uint32(c))
}

// ControlMode is the authority governing flight actuation.
type ControlMode uint32

const (
	ModeRadio ControlMode = iota
	ModeMixed
	ModeAutonomous
	ModeKilled
)

func (m ControlMode) String() string {
	switch m {
	case ModeRadio:
		return "radio"
	case ModeMixed:
		return "mixed"
	case ModeAutonomous:
		return "autonomous"
	case ModeKilled:
		return "killed"
	default:
		return fmt.Sprintf("mode(%d)", uint32(m))
	}
}

// Axes mask bits of CLIENT_REQ_SET_CTL_MODE.
const (
	AxisAlt uint32 = 1 << iota
	AxisPitch
	AxisRoll
	AxisYaw

	AxesNone uint32 = 0
	AxesAll         = AxisAlt | AxisPitch | AxisRoll | AxisYaw
)

func (c Command) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (m ControlMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}
