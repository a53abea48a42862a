package scarlett

import (
	"errors"
	"log"
	"syscall"
)

// Notification bitmask (§4.6), grounded on SCARLETT2_USB_NOTIFY_*.
const (
	notifyAck     uint32 = 0x0000_0001
	notifySync    uint32 = 0x0000_0008
	notifyDimMute uint32 = 0x0020_0000
	notifyMonitor uint32 = 0x0040_0000
	notifyLineCtl uint32 = 0x0080_0000
	notifySpeaker uint32 = 0x0100_0000
)

// notifyPump reads 8-byte interrupt packets and turns their bitmask
// into dirty-flag updates and subscriber notifications. It never
// issues USB I/O itself (§5): a re-read happens lazily on the next
// getter call against the affected state.
type notifyPump struct {
	t     Transport
	store *stateStore
	done  chan struct{}
}

func newNotifyPump(t Transport, store *stateStore) *notifyPump {
	return &notifyPump{t: t, store: store, done: make(chan struct{})}
}

// run loops reading interrupt packets until Stop is called or the
// transport reports a terminal error.
func (p *notifyPump) run() {
	buf := make([]byte, 8)
	for {
		select {
		case <-p.done:
			return
		default:
		}

		n, err := p.t.ReadInterrupt(buf)
		if err != nil {
			// Transport-level teardown (disconnect/shutdown) ends the
			// pump; anything else is logged and retried on the next
			// URB, matching the reference driver's unconditional
			// resubmission except on terminal status.
			if errors.Is(err, syscall.ENODEV) || errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ESHUTDOWN) {
				return
			}
			select {
			case <-p.done:
				return
			default:
				log.Printf("scarlett: notify pump read error: %v", err)
				continue
			}
		}
		if n != 8 {
			continue
		}
		mask := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
		p.handle(mask)
	}
}

func (p *notifyPump) handle(mask uint32) {
	if mask&notifySync != 0 {
		// Any sync-change notification sets syncLock to true; nothing
		// re-reads the lock state from the device afterwards.
		p.store.syncLock = true
		p.store.publish("sync")
	}
	if mask&notifyDimMute != 0 {
		p.store.dirty.volUpdated = true
		p.store.publish("dim_mute")
	}
	if mask&notifyMonitor != 0 {
		p.store.dirty.volUpdated = true
		p.store.publish("volume")
	}
	if mask&notifyLineCtl != 0 {
		p.store.dirty.lineCtlUpdated = true
		p.store.publish("line_ctl")
	}
	if mask&notifySpeaker != 0 {
		// Speaker/talkback/direct-monitor changes are coupled with
		// volume and button changes (§4.6).
		p.store.dirty.speakerUpdated = true
		p.store.dirty.volUpdated = true
		p.store.publish("speaker")
		p.store.publish("volume")
		p.store.publish("dim_mute")
	}
}

// Stop ends the pump's read loop. Safe to call once.
func (p *notifyPump) Stop() {
	close(p.done)
}
