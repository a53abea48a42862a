package usbhost

// Standard request codes. Scarlett's control plane only ever needs
// GetConfiguration/SetConfiguration, to assert the device is in its
// single declared configuration before ClaimInterface — the rest of
// chapter 9's standard requests (remote wakeup, LPM, alternate
// interface settings, isochronous delay, SEL timing) have no caller in
// this driver, which speaks only vendor-class control transfers once
// attached (see scarlett.Transport).
const (
	ReqGetConfiguration = 0x08
	ReqSetConfiguration = 0x09
)

// GetConfiguration returns the current device configuration value. A
// returned value of zero means the device is not configured.
func (d *Device) GetConfiguration() (int, error) {
	buff := make([]byte, 1)
	_, err := d.Ctrl(RequestDirectionIn|RequestTypeStandard|RequestRecipientDevice,
		ReqGetConfiguration, 0, 0, buff)
	return int(buff[0]), err
}

// SetConfiguration selects configurationValue as the device's active
// configuration. configurationValue must be 0 (address state) or match
// a configuration value from a configuration descriptor.
func (d *Device) SetConfiguration(configurationValue int) error {
	_, err := d.Ctrl(RequestDirectionOut|RequestTypeStandard|RequestRecipientDevice,
		ReqSetConfiguration, uint16(configurationValue), 0, nil)
	return err
}
