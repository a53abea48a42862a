package usbhost

import (
	"fmt"
	"syscall"

	"github.com/scarlett2/driver/usbfs"
)

// Device is a claimed handle on a USB device reachable through the Linux
// usbfs character device at /dev/bus/usb/BBB/DDD.
type Device struct {
	fd           int
	BusNumber    int
	DeviceNumber int
	Descriptors  []Descriptor

	claimedInterface int
	haveInterface    bool
}

func (d *Device) GetDeviceDescriptor() *DeviceDescriptor {
	return d.Descriptors[0].(*DeviceDescriptor)
}

// Open opens the underlying usbfs node. Devices returned by FindDevices /
// EnumerateDevices start closed (fd == -1).
func (d *Device) Open() error {
	if d.fd != -1 {
		return fmt.Errorf("device already open")
	}
	fd, err := usbfs.OpenDevice(d.BusNumber, d.DeviceNumber)
	if err != nil {
		return err
	}
	d.fd = fd
	return nil
}

func (d *Device) IsOpen() bool {
	return d.fd != -1
}

func (d *Device) GetDriver(iface uint32) (string, error) {
	return usbfs.GetDriver(d.fd, iface)
}

func (d *Device) DetachKernel(iface uint32) error {
	return usbfs.Disconnect(d.fd, iface)
}

func (d *Device) AttachKernel(iface uint32) error {
	return usbfs.Connect(d.fd, iface)
}

// ClaimInterface claims the given interface for exclusive use by this
// process, required before issuing class/vendor requests against it. It
// first asserts the device sits in its declared configuration, setting
// it if a reset or a bare enumeration left the device unconfigured.
func (d *Device) ClaimInterface(iface int) error {
	if cfg, err := d.GetConfiguration(); err == nil {
		if want := d.configurationValue(); cfg != want {
			if err := d.SetConfiguration(want); err != nil {
				return fmt.Errorf("set configuration %d: %w", want, err)
			}
		}
	}
	if err := usbfs.ClaimInterface(d.fd, iface); err != nil {
		return err
	}
	d.claimedInterface = iface
	d.haveInterface = true
	return nil
}

// configurationValue returns the BConfigurationValue of this device's
// (only, for Scarlett) configuration descriptor, defaulting to 1 if
// none was parsed.
func (d *Device) configurationValue() int {
	for _, desc := range d.Descriptors {
		if cfg, ok := desc.(*ConfigurationDescriptor); ok {
			return int(cfg.BConfigurationValue)
		}
	}
	return 1
}

func (d *Device) ReleaseInterface() error {
	if !d.haveInterface {
		return nil
	}
	err := usbfs.ReleaseInterface(d.fd, d.claimedInterface)
	d.haveInterface = false
	return err
}

func (d *Device) Ctrl(typ RequestType, req uint8, value uint16, index uint16, payload []byte) (int, error) {
	return usbfs.ControlTransfer(d.fd, uint8(typ), req, value, index, 1000, payload)
}

func (d *Device) CtrlTimeout(typ RequestType, req uint8, value uint16, index uint16, payload []byte, timeout uint32) (int, error) {
	return usbfs.ControlTransfer(d.fd, uint8(typ), req, value, index, timeout, payload)
}

func (d *Device) Bulk(ep uint8, data []byte) (int, error) {
	return usbfs.BulkTransfer(d.fd, uint32(ep)&0xFF, 1000, data)
}

func (d *Device) BulkTimeout(ep uint8, data []byte, timeout uint32) (int, error) {
	return usbfs.BulkTransfer(d.fd, uint32(ep)&0xFF, timeout, data)
}

// SubmitInterrupt submits an interrupt IN transfer of len(buf) bytes and
// blocks until it completes or errors. endpoint is a bEndpointAddress with
// the IN direction bit already set.
func (d *Device) SubmitInterrupt(endpoint uint8, buf []byte) (int, error) {
	return usbfs.InterruptTransfer(d.fd, endpoint, buf)
}

func (d *Device) Close() error {
	_ = d.ReleaseInterface()
	e := syscall.Close(d.fd)
	d.fd = -1
	return e
}
