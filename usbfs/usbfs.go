package usbfs

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

func GetDriver(fd int, iface uint32) (string, error) {
	data := &usbdevfs_getdriver{
		Interface: iface,
	}
	_, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_getdriver, uintptr(unsafe.Pointer(data)))
	if e == 0 {
		return data.String(), nil
	}
	return "", e
}

func GetConnectInfo(fd int) (uint8, error) {
	info := &usbdevfs_connectinfo{}
	_, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_connectionfo, uintptr(unsafe.Pointer(info)))
	if e == 0 {
		return info.Slow, nil
	}
	return 0, e
}

func SetInterface(fd int, iface, setting uint32) error {
	data := &usbdevfs_setinterface{
		Interface:  iface,
		AltSetting: setting,
	}
	_, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_setinterface, uintptr(unsafe.Pointer(data)))
	if e == 0 {
		return nil
	}
	return e
}

func ClaimInterface(fd, iface int) error {
	v := uint32(iface)
	_, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_claiminterface, uintptr(unsafe.Pointer(&v)))
	if e == 0 {
		return nil
	}
	return e
}

func ReleaseInterface(fd, iface int) error {
	v := uint32(iface)
	_, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_releaseinterface, uintptr(unsafe.Pointer(&v)))
	if e == 0 {
		return nil
	}
	return e
}

func Disconnect(fd int, iface uint32) error {
	data := usbdevfs_ioctl{
		Interface: int32(iface),
		IoctlCode: int32(ctl_usbdevfs_disconnect),
		Data:      0,
	}
	_, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_ioctl, uintptr(unsafe.Pointer(&data)))
	if e == 0 {
		return nil
	}
	return e
}

func Connect(fd int, iface uint32) error {
	data := usbdevfs_ioctl{
		Interface: int32(iface),
		IoctlCode: int32(ctl_usbdevfs_connect),
		Data:      0,
	}
	_, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_ioctl, uintptr(unsafe.Pointer(&data)))
	if e == 0 {
		return nil
	}
	return e
}

func ControlTransfer(fd int, typ uint8, request uint8, value uint16, index uint16, timeout uint32, payload []byte) (int, error) {
	data := &usbdevfs_ctrltransfer{
		RequestType: typ,
		Request:     request,
		Value:       value,
		Index:       index,
		Timeout:     timeout,
	}
	if payload != nil {
		data.Length = uint16(len(payload))
		data.Data = slicePtr(payload)
	}
	x, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_control, uintptr(unsafe.Pointer(data)))
	if e == 0 {
		return int(x), nil
	}
	return int(x), e
}

func BulkTransfer(fd int, endpoint uint32, timeout uint32, payload []byte) (int, error) {
	data := &usbdevfs_bulktransfer{
		Endpoint: endpoint,
		Timeout:  timeout,
	}
	if payload != nil {
		data.Length = uint32(len(payload))
		data.Data = slicePtr(payload)
	}
	x, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_bulk, uintptr(unsafe.Pointer(data)))
	if e == 0 {
		return int(x), nil
	}
	return int(x), e
}

func ResetDevice(fd int) error {
	_, _, e := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), ctl_usbdevfs_reset, 0)
	if e == 0 {
		return nil
	}
	return e
}

func OpenDevice(busNumber, deviceNumber int) (int, error) {
	devPath := fmt.Sprintf("%s/%.3d/%.3d", usbDevPath, busNumber, deviceNumber)
	fd, err := unix.Open(devPath, unix.O_RDWR, 0)
	if err != nil {
		return -1, err
	}
	return fd, nil
}
