package usbhost

// RequestType is the bmRequestType byte of a USB control transfer's setup
// packet, built by OR-ing one constant from each of the three fields
// below. Trimmed to the direction/type/recipient combinations a Scarlett
// actually issues: RequestRecipientDevice for the GetConfiguration/
// SetConfiguration assertion in ClaimInterface, RequestRecipientInterface
// for the vendor control-plane's class requests.
type RequestType uint8

const (
	RequestDirectionIn  = RequestType(0b10000000)
	RequestDirectionOut = RequestType(0b00000000)

	RequestTypeStandard = RequestType(0b00000000)
	RequestTypeClass    = RequestType(0b00100000)

	RequestRecipientDevice    = RequestType(0b00000000)
	RequestRecipientInterface = RequestType(0b00000001)
)
