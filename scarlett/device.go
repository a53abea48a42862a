package scarlett

import (
	"fmt"

	"github.com/scarlett2/driver/usbhost"
)

// sessionState is the Session state machine of §4.8.
type sessionState int

const (
	Attached sessionState = iota
	Initialized
	Running
	Suspended
	Torn
)

// deviceConfigBase is the absolute device address of the persisted
// software-configuration blob (§6).
const deviceConfigBase = 0xEC

// vendorInterfaceClass is the USB interface class this driver's
// control plane lives on (§6).
const vendorInterfaceClass = 0xFF

// Device is one attached Scarlett session: the request layer, state
// store, software-config mirror, notification pump, and delayed-commit
// timer bound together, plus the session state machine.
type Device struct {
	model *Model
	req   *requestLayer
	store *stateStore
	sc    *SoftwareConfig

	transport Transport
	pump      *notifyPump
	commit    *delayedCommit

	state sessionState
}

// Open claims the Scarlett vendor interface on an already-enumerated
// usbhost.Device and returns an unattached Device for model m.
// Equivalent in spirit to the teacher's Device.Open + ClaimInterface
// pairing, specialised to the one vendor interface this driver cares
// about.
func Open(dev *usbhost.Device, m *Model) (*Device, error) {
	iface, interruptEP, err := findVendorInterface(dev)
	if err != nil {
		return nil, newError(Fatal, "Open", err)
	}
	if err := dev.ClaimInterface(iface); err != nil {
		return nil, newError(Fatal, "Open.claim", err)
	}

	t := newUSBHostTransport(dev, iface, interruptEP)
	req := newRequestLayer(t, m)
	return &Device{
		model:     m,
		req:       req,
		store:     newStateStore(m, req),
		transport: t,
		state:     Attached,
	}, nil
}

// findVendorInterface locates the class-0xFF interface and its IN
// interrupt endpoint on an already-enumerated device. Descriptors is a
// flat list in enumeration order (config, then each interface followed
// by its own endpoints), so the interrupt endpoint for an interface is
// whichever EndpointDescriptor appears before the next
// InterfaceDescriptor.
func findVendorInterface(dev *usbhost.Device) (iface int, interruptEP uint8, err error) {
	inTarget := false
	foundIface := -1
	for _, d := range dev.Descriptors {
		switch desc := d.(type) {
		case *usbhost.InterfaceDescriptor:
			inTarget = desc.BInterfaceClass == vendorInterfaceClass
			if inTarget {
				foundIface = int(desc.BInterfaceNumber)
			}
		case *usbhost.EndpointDescriptor:
			if inTarget && desc.TransferType() == usbhost.TransferTypeInterrupt &&
				desc.BEndpointAddress&usbhost.EndpointDirectionIn != 0 {
				return foundIface, desc.BEndpointAddress, nil
			}
		}
	}
	return 0, 0, fmt.Errorf("no vendor-specific (class 0xFF) interface with an interrupt IN endpoint found")
}

// Attach performs the init handshake, the first full state read, the
// initial mux emission, and starts the notification pump and
// delayed-commit timer. Any failure during the init handshake is Fatal
// and aborts attach (§4.8, §7).
func (d *Device) Attach() error {
	if err := d.req.attach(); err != nil {
		return err
	}
	d.state = Initialized

	if err := d.store.refreshVolumes(); err != nil {
		return err
	}
	if err := d.req.getMux(d.store.mux, d.muxDestCount()); err != nil {
		return err
	}
	if err := d.loadSoftwareConfig(); err != nil {
		// Integrity errors soft-disable the mirror but do not abort
		// attach — the hardware path still works (§7).
		if _, ok := err.(*Error); !ok || err.(*Error).Kind != Integrity {
			return err
		}
	}
	d.store.sc = d.sc

	if err := d.req.setMux(d.store.mux); err != nil {
		return err
	}

	d.commit = newDelayedCommit(func() {
		_ = d.req.configSave()
	})
	d.pump = newNotifyPump(d.transport, d.store)
	go d.pump.run()

	d.state = Running
	return nil
}

func (d *Device) muxDestCount() int {
	n := 0
	for _, t := range declaredPortOrder {
		n += d.model.PortCount(t, dirOut)
	}
	return n
}

// loadSoftwareConfig implements the attach-time mirror bootstrap of
// §4.5: read szof, synthesize a fresh blob if zero, load if it matches
// this driver's structure size, otherwise soft-disable.
func (d *Device) loadSoftwareConfig() error {
	szofRaw, err := d.req.getData(deviceConfigBase+8, 4)
	if err != nil {
		return err
	}
	szof := int(szofRaw[0]) | int(szofRaw[1])<<8 | int(szofRaw[2])<<16 | int(szofRaw[3])<<24

	if szof == 0 {
		d.sc = freshSoftwareConfig()
		return d.req.setData(deviceConfigBase, d.sc.Bytes())
	}
	if szof != scSize {
		d.sc = &SoftwareConfig{enabled: false}
		return newError(Integrity, "loadSoftwareConfig", fmt.Errorf("szof=%d want %d", szof, scSize))
	}

	raw, err := d.req.getData(deviceConfigBase, uint32(scSize))
	if err != nil {
		return err
	}
	sc, err := loadSoftwareConfig(raw)
	d.sc = sc
	return err
}

// Close flushes any pending commit, stops the notification pump, and
// releases the transport. Equivalent to the Torn state of §4.8.
func (d *Device) Close() error {
	if d.state == Torn {
		return nil
	}
	if d.commit != nil {
		d.commit.Flush()
	}
	if d.pump != nil {
		d.pump.Stop()
	}
	d.state = Torn
	return d.transport.Close()
}

// Suspend flushes any pending commit synchronously before the host
// suspends the device (§4.8).
func (d *Device) Suspend() {
	if d.commit != nil {
		d.commit.Flush()
	}
	d.state = Suspended
}

// Model returns the static descriptor this Device was opened with.
func (d *Device) Model() *Model { return d.model }

// SetVolume writes output i's software volume, arming the delayed
// commit on success.
func (d *Device) SetVolume(i, vol int) (bool, error) {
	changed, err := d.store.SetVolume(i, vol)
	if err == nil && changed && d.commit != nil {
		d.commit.Arm()
	}
	return changed, err
}

// SetSwHw toggles output i's control-source state machine, arming the
// delayed commit on success.
func (d *Device) SetSwHw(i int, toHw bool) (bool, error) {
	changed, err := d.store.SetSwHw(i, toHw)
	if err == nil && changed && d.commit != nil {
		d.commit.Arm()
	}
	return changed, err
}

// Volume returns output i's current volume, re-reading lazily if
// stale.
func (d *Device) Volume(i int) (int, error) {
	return d.store.Volume(i)
}

// SetMux routes source src (flat index) to destination dst (flat
// index), applying stereo-pair coupling from the software-config mirror
// when it is enabled, emitting the three per-band SET_MUX tables, and
// mirroring the assignment into the software config when present.
func (d *Device) SetMux(dst, src int) (bool, error) {
	prev := d.store.mux.Get(dst)
	if prev == src {
		return false, nil
	}

	var stereoSw uint32
	if d.sc != nil && d.sc.Enabled() {
		stereoSw = d.sc.StereoSw()
	}

	d.store.mux.Set(dst, src, stereoSw)
	if err := d.req.setMux(d.store.mux); err != nil {
		d.store.mux.Set(dst, prev, stereoSw)
		return false, err
	}

	if d.sc != nil && d.sc.Enabled() {
		d.sc.SetOutMux(dst, uint16(src+1))
		if err := d.req.setData(deviceConfigBase+uint32(scOffOutMux)+2*uint32(dst), d.sc.Bytes()[scOffOutMux+2*dst:scOffOutMux+2*dst+2]); err == nil {
			_ = d.req.setData(deviceConfigBase+uint32(scOffChecksum), d.sc.Bytes()[scOffChecksum:scOffChecksum+4])
		}
	}

	d.store.publish("mux")
	if d.commit != nil {
		d.commit.Arm()
	}
	return true, nil
}

// SetMixGain sets mix row out, input in to stored gain index gain,
// updating the software-config mirror when present and arming the
// delayed commit on success.
func (d *Device) SetMixGain(out, in, gain int) (bool, error) {
	changed, err := d.store.SetMixGain(out, in, gain)
	if err != nil || !changed {
		return changed, err
	}
	if d.sc != nil && d.sc.Enabled() {
		d.sc.SetMixerGain(out, in, gain)
		if err := d.req.setData(deviceConfigBase+uint32(scOffMixer)+4*uint32(out*scMixerInputCount+in), d.sc.Bytes()[scOffMixer+4*(out*scMixerInputCount+in):scOffMixer+4*(out*scMixerInputCount+in)+4]); err != nil {
			return true, err
		}
		if err := d.req.setData(deviceConfigBase+uint32(scOffChecksum), d.sc.Bytes()[scOffChecksum:scOffChecksum+4]); err != nil {
			return true, err
		}
	}
	if d.commit != nil {
		d.commit.Arm()
	}
	return true, nil
}
