package protocol

import (
	"encoding/binary"
	"fmt"
)

// Decoder reassembles length-prefixed packets from an append-only byte
// stream. It holds at most one partial packet.
type Decoder struct {
	in        []byte // received, not yet consumed
	packet    []byte // packet under assembly, nil while awaiting a header
	remaining int
	err       error
}

// Write appends a chunk of the stream. It never fails; corruption is
// reported by Next.
func (d *Decoder) Write(chunk []byte) (int, error) {
	d.in = append(d.in, chunk...)
	return len(chunk), nil
}

// Next returns the next complete packet. ok is false when more bytes are
// needed. Once corruption is detected every call returns ErrCorruptFrame.
func (d *Decoder) Next() (pkt Packet, ok bool, err error) {
	if d.err != nil {
		return Packet{}, false, d.err
	}
	for {
		if d.packet == nil {
			if len(d.in) < HeaderSize {
				d.compact()
				return Packet{}, false, nil
			}
			length := binary.LittleEndian.Uint32(d.in[4:8])
			if length < HeaderSize || length > MaxPacketLength {
				d.err = fmt.Errorf("%w: declared length %d", ErrCorruptFrame, length)
				d.in = nil
				return Packet{}, false, d.err
			}
			d.packet = make([]byte, HeaderSize, length)
			copy(d.packet, d.in[:HeaderSize])
			d.in = d.in[HeaderSize:]
			d.remaining = int(length) - HeaderSize
		}

		n := min(d.remaining, len(d.in))
		d.packet = append(d.packet, d.in[:n]...)
		d.in = d.in[n:]
		d.remaining -= n
		if d.remaining > 0 {
			d.compact()
			return Packet{}, false, nil
		}

		raw := d.packet
		d.packet = nil
		return Packet{
			Command: Command(binary.LittleEndian.Uint32(raw[0:4])),
			Length:  uint32(len(raw)),
			Payload: raw[HeaderSize:],
		}, true, nil
	}
}

// Buffered reports the bytes held by the decoder, partial packet included.
func (d *Decoder) Buffered() int {
	return len(d.in) + len(d.packet)
}

func (d *Decoder) Reset() {
	*d = Decoder{}
}

func (d *Decoder) compact() {
	if len(d.in) == 0 {
		d.in = nil
	}
}
