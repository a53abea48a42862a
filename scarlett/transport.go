package scarlett

import (
	"github.com/scarlett2/driver/usbhost"
)

// Transport is the narrow seam between the Scarlett control plane and
// the host's USB stack, mirroring the teacher package's own policy of
// exposing usbfs only through usbhost.Device's method set rather than
// letting callers reach for raw ioctls. A fake implementation drives
// every test in this package without a real device attached.
type Transport interface {
	// ControlOut issues a class/interface OUT control transfer carrying
	// payload and returns the number of bytes actually sent.
	ControlOut(request uint8, payload []byte) (int, error)
	// ControlIn issues a class/interface IN control transfer of
	// exactly len(buf) bytes, reading into buf.
	ControlIn(request uint8, buf []byte) (int, error)
	// ReadInterrupt blocks until one notification packet is available
	// on the interrupt endpoint and copies it into buf.
	ReadInterrupt(buf []byte) (int, error)
	// Close releases any transport-owned resources (claimed interface,
	// open file descriptor).
	Close() error
}

const (
	reqOut  uint8 = 2 // SCARLETT2_USB_CMD_REQ
	reqResp uint8 = 3 // SCARLETT2_USB_CMD_RESP
	reqInit uint8 = 0 // SCARLETT2_USB_CMD_INIT
)

// usbhostTransport adapts an opened, interface-claimed usbhost.Device to
// the Transport interface used by this package's Request Layer.
type usbhostTransport struct {
	dev            *usbhost.Device
	interfaceIndex uint16
	interruptEP    uint8
}

func newUSBHostTransport(dev *usbhost.Device, interfaceNumber int, interruptEP uint8) *usbhostTransport {
	return &usbhostTransport{
		dev:            dev,
		interfaceIndex: uint16(interfaceNumber),
		interruptEP:    interruptEP,
	}
}

func (t *usbhostTransport) ControlOut(request uint8, payload []byte) (int, error) {
	typ := usbhost.RequestDirectionOut | usbhost.RequestTypeClass | usbhost.RequestRecipientInterface
	return t.dev.Ctrl(typ, request, 0, t.interfaceIndex, payload)
}

func (t *usbhostTransport) ControlIn(request uint8, buf []byte) (int, error) {
	typ := usbhost.RequestDirectionIn | usbhost.RequestTypeClass | usbhost.RequestRecipientInterface
	return t.dev.Ctrl(typ, request, 0, t.interfaceIndex, buf)
}

func (t *usbhostTransport) ReadInterrupt(buf []byte) (int, error) {
	return t.dev.SubmitInterrupt(t.interruptEP, buf)
}

func (t *usbhostTransport) Close() error {
	return t.dev.Close()
}
