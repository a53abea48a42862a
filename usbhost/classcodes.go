package usbhost

import "fmt"

// Class codes, trimmed to the ones a Scarlett's descriptor walk
// actually reports: the Audio interfaces it shares its config with,
// the class-0xFF vendor control interface findVendorInterface
// searches for, and the device-level "defer to interface descriptors"
// code every composite device (Scarlett included) reports at the
// device descriptor. The full table at https://www.usb.org/defined-class-codes
// has no reachable consumer beyond these.
type (
	ClassCode uint8
	SubClass  uint8
)

func (code ClassCode) String() string {
	if codeString, exist := classCodeMap[code]; exist {
		return codeString
	}
	return fmt.Sprintf("Unknown(%.2X)", uint8(code))
}

const (
	ClassCodeUseInterfaceDescriptors = ClassCode(0x00)
	ClassCodeInterfaceAudio          = ClassCode(0x01)
	ClassCodeVendorSpecific          = ClassCode(0xFF)
)

var classCodeMap = map[ClassCode]string{
	ClassCodeUseInterfaceDescriptors: "UseInterfaceDescriptors",
	ClassCodeInterfaceAudio:          "InterfaceAudio",
	ClassCodeVendorSpecific:          "VendorSpecific",
}
