package scarlett

import (
	"encoding/binary"
	"fmt"
)

// opcode is one of the 32-bit command codes of the vendor protocol.
type opcode uint32

const (
	opInit1    opcode = 0x00000000
	opInit2    opcode = 0x00000002
	opGetMeter opcode = 0x00001001
	opGetMix   opcode = 0x00002001
	opSetMix   opcode = 0x00002002
	opGetMux   opcode = 0x00003001
	opSetMux   opcode = 0x00003002
	opGetSync  opcode = 0x00006004
	opGetData  opcode = 0x00800000
	opSetData  opcode = 0x00800001
	opDataCmd  opcode = 0x00800002
)

// configSaveArg is the DATA_CMD argument that tells the device to
// persist its current RAM state to NVRAM.
const configSaveArg uint32 = 6

// packetHeaderSize is the size of the fixed header prefixing every
// request/response packet: u32 cmd, u16 size, u16 seq, u32 error,
// u32 pad.
const packetHeaderSize = 16

// packetHeader is the framing wrapper around every vendor request and
// response.
type packetHeader struct {
	Cmd   opcode
	Size  uint16
	Seq   uint16
	Error uint32
	Pad   uint32
}

func decodeHeader(buf []byte) (packetHeader, error) {
	if len(buf) < packetHeaderSize {
		return packetHeader{}, fmt.Errorf("short packet: %d bytes", len(buf))
	}
	return packetHeader{
		Cmd:   opcode(binary.LittleEndian.Uint32(buf[0:4])),
		Size:  binary.LittleEndian.Uint16(buf[4:6]),
		Seq:   binary.LittleEndian.Uint16(buf[6:8]),
		Error: binary.LittleEndian.Uint32(buf[8:12]),
		Pad:   binary.LittleEndian.Uint32(buf[12:16]),
	}, nil
}

// wireCodec builds and validates the framed request/response packets
// exchanged over a Transport, and owns the session's monotone sequence
// counter.
type wireCodec struct {
	t   Transport
	seq uint16
}

func newWireCodec(t Transport) *wireCodec {
	// Sequence numbers start at 1: the first request of a session
	// carries seq=1 (§3.7).
	return &wireCodec{t: t, seq: 1}
}

// exchange sends one framed request and returns the payload of the
// matching response. resp must be sized to exactly the expected
// response payload length.
func (c *wireCodec) exchange(cmd opcode, req []byte, resp []byte) error {
	seq := c.seq
	c.seq++

	out := make([]byte, packetHeaderSize+len(req))
	binary.LittleEndian.PutUint32(out[0:4], uint32(cmd))
	binary.LittleEndian.PutUint16(out[4:6], uint16(len(req)))
	binary.LittleEndian.PutUint16(out[6:8], seq)
	// error, pad already zero
	copy(out[packetHeaderSize:], req)

	n, err := c.t.ControlOut(reqOut, out)
	if err != nil {
		return newError(Transport, "exchange.send", err)
	}
	if n != len(out) {
		return newError(Protocol, "exchange.send", fmt.Errorf("wrote %d of %d bytes", n, len(out)))
	}

	in := make([]byte, packetHeaderSize+len(resp))
	n, err = c.t.ControlIn(reqResp, in)
	if err != nil {
		return newError(Transport, "exchange.recv", err)
	}
	if n != len(in) {
		return newError(Protocol, "exchange.recv", fmt.Errorf("read %d of %d bytes", n, len(in)))
	}

	hdr, err := decodeHeader(in)
	if err != nil {
		return newError(Protocol, "exchange.recv", err)
	}
	if hdr.Cmd != cmd {
		return newError(Protocol, "exchange.recv", fmt.Errorf("cmd mismatch: got %#x want %#x", hdr.Cmd, cmd))
	}
	seqOK := hdr.Seq == seq || (seq == 1 && hdr.Seq == 0)
	if !seqOK {
		return newError(Protocol, "exchange.recv", fmt.Errorf("seq mismatch: got %d want %d", hdr.Seq, seq))
	}
	if int(hdr.Size) != len(resp) {
		return newError(Protocol, "exchange.recv", fmt.Errorf("size mismatch: got %d want %d", hdr.Size, len(resp)))
	}
	if hdr.Error != 0 || hdr.Pad != 0 {
		return newError(Protocol, "exchange.recv", fmt.Errorf("nonzero error/pad: %#x/%#x", hdr.Error, hdr.Pad))
	}

	copy(resp, in[packetHeaderSize:])
	return nil
}

// initHandshake performs the three-step attach sequence: a raw IN sink
// transfer, then INIT_1, then INIT_2 with its fixed 84-byte response.
func (c *wireCodec) initHandshake() error {
	sink := make([]byte, 24)
	if _, err := c.t.ControlIn(reqInit, sink); err != nil {
		return newError(Fatal, "init.sink", err)
	}

	c.seq = 1
	if err := c.exchange(opInit1, nil, nil); err != nil {
		return newError(Fatal, "init.1", err)
	}

	c.seq = 1
	if err := c.exchange(opInit2, nil, make([]byte, 84)); err != nil {
		return newError(Fatal, "init.2", err)
	}
	return nil
}
