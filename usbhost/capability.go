package usbhost

import "fmt"

// Capability identifies a BOS device-capability descriptor's type
// (USB 3.x Link Power Management, Container ID, platform-specific,
// and so on, per the USB specification's Table 9-14). Scarlett's
// enumeration never decodes a capability sub-descriptor — this
// vendor-class audio interface's control plane never issues a
// GetDescriptor(BOS) request — so only the raw type and its string
// form are kept; the typed SuperSpeed/Container-ID/Platform
// sub-structs the full USB capability table defines have no consumer
// here and are not carried.
type Capability uint8

func (c Capability) String() string {
	return fmt.Sprintf("Capability(0x%.2X)", uint8(c))
}
