package protocol

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	HeaderSize = 8
	// MaxPacketLength bounds a single packet, video frames included.
	MaxPacketLength = 8 << 20
)

var (
	ErrCorruptFrame = errors.New("corrupt frame")
	ErrShortPayload = errors.New("short payload")
)

type Packet struct {
	Command Command
	Length  uint32
	Payload []byte
}

func NewPacket(cmd Command, payload []byte) Packet {
	return Packet{
		Command: cmd,
		Length:  uint32(HeaderSize + len(payload)),
		Payload: payload,
	}
}

// Bytes returns the wire encoding of the packet.
func (p Packet) Bytes() []byte {
	buf := make([]byte, HeaderSize+len(p.Payload))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(p.Command))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(HeaderSize+len(p.Payload)))
	copy(buf[HeaderSize:], p.Payload)
	return buf
}

func (p Packet) String() string {
	return fmt.Sprintf("%s (%d bytes)", p.Command, p.Length)
}

func checkPayload(p Packet, size int) error {
	if len(p.Payload) < size {
		return fmt.Errorf("%w: %s carries %d bytes, need %d", ErrShortPayload, p.Command, len(p.Payload), size)
	}
	return nil
}
