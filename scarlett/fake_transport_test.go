package scarlett

import (
	"encoding/binary"
	"fmt"
)

// fakeTransport is an in-memory Transport: a handler keyed by opcode
// produces the response body for each outgoing request, echoing the
// header's sequence number back (or whatever the test wants to force,
// for negative cases). Mirrors the teacher's own style of testing
// usbfs ioctl wrappers against a recording fake rather than a real
// device node.
type fakeTransport struct {
	handlers map[opcode]func(req []byte) (resp []byte, errField uint32)

	lastSeq     uint16
	forceSeq    *uint16
	forceCmd    *opcode
	closeCalls  int
	interruptCh chan []byte

	pendingCmd opcode
	pendingReq []byte
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{handlers: map[opcode]func([]byte) ([]byte, uint32){}}
}

func (f *fakeTransport) on(cmd opcode, fn func(req []byte) ([]byte, uint32)) {
	f.handlers[cmd] = fn
}

func (f *fakeTransport) ControlOut(request uint8, payload []byte) (int, error) {
	if len(payload) < packetHeaderSize {
		return 0, fmt.Errorf("short outgoing packet")
	}
	hdr, err := decodeHeader(payload)
	if err != nil {
		return 0, err
	}
	f.lastSeq = hdr.Seq
	f.pendingCmd = hdr.Cmd
	f.pendingReq = append([]byte(nil), payload[packetHeaderSize:]...)
	return len(payload), nil
}

func (f *fakeTransport) ControlIn(request uint8, buf []byte) (int, error) {
	if request == reqInit {
		// The raw sink read of the init handshake carries no framing.
		for i := range buf {
			buf[i] = 0
		}
		return len(buf), nil
	}
	cmd := f.pendingCmd
	if f.forceCmd != nil {
		cmd = *f.forceCmd
	}
	wantBody := len(buf) - packetHeaderSize
	h, ok := f.handlers[cmd]
	body := make([]byte, wantBody)
	var errField uint32
	if ok {
		var b []byte
		b, errField = h(f.pendingReq)
		copy(body, b)
		if len(b) != wantBody {
			return 0, fmt.Errorf("fakeTransport: handler for %#x returned %d bytes, want %d", cmd, len(b), wantBody)
		}
	}
	seq := f.lastSeq
	if f.forceSeq != nil {
		seq = *f.forceSeq
	}

	out := make([]byte, packetHeaderSize+len(body))
	binary.LittleEndian.PutUint32(out[0:4], uint32(cmd))
	binary.LittleEndian.PutUint16(out[4:6], uint16(len(body)))
	binary.LittleEndian.PutUint16(out[6:8], seq)
	binary.LittleEndian.PutUint32(out[8:12], errField)
	copy(out[packetHeaderSize:], body)

	if len(out) != len(buf) {
		return 0, fmt.Errorf("fakeTransport: response size %d != requested %d", len(out), len(buf))
	}
	copy(buf, out)
	return len(buf), nil
}

func (f *fakeTransport) ReadInterrupt(buf []byte) (int, error) {
	if f.interruptCh == nil {
		f.interruptCh = make(chan []byte)
	}
	pkt, ok := <-f.interruptCh
	if !ok {
		return 0, fmt.Errorf("fakeTransport: interrupt channel closed")
	}
	copy(buf, pkt)
	return len(pkt), nil
}

func (f *fakeTransport) pushInterrupt(mask uint32) {
	if f.interruptCh == nil {
		f.interruptCh = make(chan []byte)
	}
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint32(buf, mask)
	f.interruptCh <- buf
}

func (f *fakeTransport) Close() error {
	f.closeCalls++
	if f.interruptCh != nil {
		close(f.interruptCh)
	}
	return nil
}
