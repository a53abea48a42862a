package usbfs

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// usbdevfs_urb.Type values (linux/usbdevice_fs.h).
const (
	urbTypeIsochronous = 0
	urbTypeInterrupt   = 1
	urbTypeControl     = 2
	urbTypeBulk        = 3
)

// InterruptTransfer submits a single interrupt URB against endpoint and
// blocks (via USBDEVFS_REAPURB) until it completes, returning the number
// of bytes actually transferred into buf.
//
// The teacher package declared the USBDEVFS_SUBMITURB/REAPURB/DISCARDURB
// ioctl numbers and the usbdevfs_urb layout but never wrapped them; this
// is that wrapping, needed for the notification pump's interrupt endpoint.
func InterruptTransfer(fd int, endpoint uint8, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	urb := &usbdevfs_urb{
		Type:         urbTypeInterrupt,
		Endpoint:     endpoint,
		Buffer:       slicePtr(buf),
		BufferLength: int32(len(buf)),
	}
	if _, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_submiturb, uintptr(unsafe.Pointer(urb))); e != 0 {
		return 0, e
	}
	var reaped uintptr
	if _, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_reapurb, uintptr(unsafe.Pointer(&reaped))); e != 0 {
		_, _, _ = unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_discardurb, uintptr(unsafe.Pointer(urb)))
		return 0, e
	}
	if urb.Status != 0 {
		return int(urb.ActualLength), unix.Errno(-urb.Status)
	}
	return int(urb.ActualLength), nil
}

// DiscardURB cancels the in-flight URB urb previously submitted against
// fd. Nothing in this module calls it; the URB that InterruptTransfer
// submits is local to that call and is not handed out.
func DiscardURB(fd int, urb *usbdevfs_urb) error {
	_, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_discardurb, uintptr(unsafe.Pointer(urb)))
	if e == 0 {
		return nil
	}
	return e
}
