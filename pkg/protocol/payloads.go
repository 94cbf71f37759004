package protocol

import (
	"bytes"
	"encoding/binary"
	"math"
)

const nameSize = 32

type fields []byte

func (f fields) u32(i int) uint32  { return binary.LittleEndian.Uint32(f[i*4:]) }
func (f fields) i32(i int) int32   { return int32(f.u32(i)) }
func (f fields) f32(i int) float32 { return math.Float32frombits(f.u32(i)) }

type builder struct {
	buf []byte
}

func (b *builder) u32(v uint32) *builder {
	b.buf = binary.LittleEndian.AppendUint32(b.buf, v)
	return b
}

func (b *builder) i32(v int32) *builder   { return b.u32(uint32(v)) }
func (b *builder) f32(v float32) *builder { return b.u32(math.Float32bits(v)) }

// name writes s as a fixed NUL terminated field, truncated to nameSize-1.
func (b *builder) name(s string) *builder {
	var raw [nameSize]byte
	copy(raw[:nameSize-1], s)
	b.buf = append(b.buf, raw[:]...)
	return b
}

func (b *builder) packet(cmd Command) Packet {
	return NewPacket(cmd, b.buf)
}

func parseName(raw []byte) string {
	if idx := bytes.IndexByte(raw, 0x00); idx >= 0 {
		raw = raw[:idx]
	}
	return string(raw)
}

func EncodeIdentAck() Packet {
	return new(builder).u32(IdentMagic).u32(IdentVersion).packet(ClientAckIdent)
}

// Request encodes a payload-less client command.
func Request(cmd Command) Packet {
	return NewPacket(cmd, nil)
}

type SetCtlMode struct {
	Mode     ControlMode
	AxesMask uint32
}

func (m SetCtlMode) Packet() Packet {
	return new(builder).u32(uint32(m.Mode)).u32(m.AxesMask).packet(ClientReqSetCtlMode)
}

func DecodeSetCtlModeAck(p Packet) (ControlMode, error) {
	if err := checkPayload(p, 4); err != nil {
		return 0, err
	}
	return ControlMode(fields(p.Payload).u32(0)), nil
}

// Telemetry is SERVER_ACK_TELEMETRY as laid out on the wire.
type Telemetry struct {
	Yaw, Pitch, Roll float32
	RSSI             int32
	Altitude         int32
	Battery          int32
}

const telemetrySize = 24

func (t Telemetry) Packet() Packet {
	return new(builder).
		f32(t.Yaw).f32(t.Pitch).f32(t.Roll).
		i32(t.RSSI).i32(t.Altitude).i32(t.Battery).
		packet(ServerAckTelemetry)
}

func DecodeTelemetry(p Packet) (Telemetry, error) {
	if err := checkPayload(p, telemetrySize); err != nil {
		return Telemetry{}, err
	}
	f := fields(p.Payload)
	return Telemetry{
		Yaw:      f.f32(0),
		Pitch:    f.f32(1),
		Roll:     f.f32(2),
		RSSI:     f.i32(3),
		Altitude: f.i32(4),
		Battery:  f.i32(5),
	}, nil
}

type FlightControl struct {
	Alt, Pitch, Roll, Yaw float32
}

func (c FlightControl) Packet() Packet {
	return new(builder).f32(c.Alt).f32(c.Pitch).f32(c.Roll).f32(c.Yaw).packet(ClientReqFlightCtl)
}

func DecodeFlightControl(p Packet) (FlightControl, error) {
	if err := checkPayload(p, 16); err != nil {
		return FlightControl{}, err
	}
	f := fields(p.Payload)
	return FlightControl{Alt: f.f32(0), Pitch: f.f32(1), Roll: f.f32(2), Yaw: f.f32(3)}, nil
}

type Color struct {
	R, G, B uint8
}

type TrackSettings struct {
	Color     Color `json:"color"`
	HueThresh int32 `json:"hue_thresh"`
	SatThresh int32 `json:"sat_thresh"`
	FpsThresh int32 `json:"fps_thresh"`
	Fps       int32 `json:"fps"`
	Enabled   bool  `json:"enabled"`
}

const trackSettingsSize = 32

func (t TrackSettings) encode(cmd Command) Packet {
	var enabled uint32
	if t.Enabled {
		enabled = 1
	}
	return new(builder).
		u32(uint32(t.Color.R)).u32(uint32(t.Color.G)).u32(uint32(t.Color.B)).
		i32(t.HueThresh).i32(t.SatThresh).i32(t.FpsThresh).i32(t.Fps).
		u32(enabled).
		packet(cmd)
}

func (t TrackSettings) Packet() Packet {
	return t.encode(ClientReqSetTrackSettings)
}

// ReportPacket encodes the settings the way the remote reports them.
func (t TrackSettings) ReportPacket() Packet {
	return t.encode(ServerAckTrackSettings)
}

func DecodeTrackSettings(p Packet) (TrackSettings, error) {
	if err := checkPayload(p, trackSettingsSize); err != nil {
		return TrackSettings{}, err
	}
	f := fields(p.Payload)
	return TrackSettings{
		Color:     Color{R: uint8(f.u32(0)), G: uint8(f.u32(1)), B: uint8(f.u32(2))},
		HueThresh: f.i32(3),
		SatThresh: f.i32(4),
		FpsThresh: f.i32(5),
		Fps:       f.i32(6),
		Enabled:   f.u32(7) != 0,
	}, nil
}

type TrimSettings struct {
	Roll  float32 `json:"roll"`
	Pitch float32 `json:"pitch"`
	Yaw   float32 `json:"yaw"`
}

func (t TrimSettings) Packet() Packet {
	return new(builder).f32(t.Roll).f32(t.Pitch).f32(t.Yaw).packet(ClientReqSetTrimSettings)
}

type FilterSettings struct {
	GyroCutoff  float32 `json:"gyro_cutoff"`
	AccelCutoff float32 `json:"accel_cutoff"`
	Alpha       float32 `json:"alpha"`
}

func (f FilterSettings) Packet() Packet {
	return new(builder).f32(f.GyroCutoff).f32(f.AccelCutoff).f32(f.Alpha).packet(ClientReqSetFilterSettings)
}

type PidSettings struct {
	Axis uint32  `json:"axis"`
	P    float32 `json:"p"`
	I    float32 `json:"i"`
	D    float32 `json:"d"`
}

func (s PidSettings) Packet() Packet {
	return new(builder).u32(s.Axis).f32(s.P).f32(s.I).f32(s.D).packet(ClientReqSetPidSettings)
}

// ControlAnnouncement is SERVER_ACK_DEVICE_CONTROL.
type ControlAnnouncement struct {
	ID      uint32
	Kind    uint32
	Min     int32
	Max     int32
	Step    int32
	Default int32
	Current int32

	// Name is sent NUL terminated in a 32 byte field; longer names are cut
	// to 31 bytes.
	Name string
}

const controlAnnouncementSize = 7*4 + nameSize

func (a ControlAnnouncement) Packet() Packet {
	return new(builder).
		u32(a.ID).u32(a.Kind).
		i32(a.Min).i32(a.Max).i32(a.Step).i32(a.Default).i32(a.Current).
		name(a.Name).
		packet(ServerAckDeviceControl)
}

func DecodeControlAnnouncement(p Packet) (ControlAnnouncement, error) {
	if err := checkPayload(p, controlAnnouncementSize); err != nil {
		return ControlAnnouncement{}, err
	}
	f := fields(p.Payload)
	return ControlAnnouncement{
		ID:      f.u32(0),
		Kind:    f.u32(1),
		Min:     f.i32(2),
		Max:     f.i32(3),
		Step:    f.i32(4),
		Default: f.i32(5),
		Current: f.i32(6),
		Name:    parseName(p.Payload[28 : 28+nameSize]),
	}, nil
}

// MenuLabel is SERVER_ACK_DEVICE_CONTROL_MENU.
type MenuLabel struct {
	ID    uint32
	Index int32
	// Label has the same 31 byte limit as ControlAnnouncement.Name.
	Label string
}

func (m MenuLabel) Packet() Packet {
	return new(builder).u32(m.ID).i32(m.Index).name(m.Label).packet(ServerAckDeviceControlMenu)
}

func DecodeMenuLabel(p Packet) (MenuLabel, error) {
	if err := checkPayload(p, 8+nameSize); err != nil {
		return MenuLabel{}, err
	}
	f := fields(p.Payload)
	return MenuLabel{ID: f.u32(0), Index: f.i32(1), Label: parseName(p.Payload[8 : 8+nameSize])}, nil
}

type ControlValue struct {
	ID    uint32
	Value int32
}

func (v ControlValue) Packet() Packet {
	return new(builder).u32(v.ID).i32(v.Value).packet(ClientReqSetDeviceControl)
}

// AckPacket encodes the authoritative value update sent by the remote.
func (v ControlValue) AckPacket() Packet {
	return new(builder).u32(v.ID).i32(v.Value).packet(ServerAckSetDeviceControl)
}

func DecodeControlValue(p Packet) (ControlValue, error) {
	if err := checkPayload(p, 8); err != nil {
		return ControlValue{}, err
	}
	f := fields(p.Payload)
	return ControlValue{ID: f.u32(0), Value: f.i32(1)}, nil
}

// ModeAck encodes SERVER_ACK_SET_CTL_MODE.
func ModeAck(mode ControlMode) Packet {
	return new(builder).u32(uint32(mode)).packet(ServerAckSetCtlMode)
}
