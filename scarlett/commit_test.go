package scarlett

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDelayedCommitFiresAfterQuiescence(t *testing.T) {
	var fires int32
	dc := newDelayedCommit(func() { atomic.AddInt32(&fires, 1) })
	dc.setDelay(5 * time.Millisecond)
	dc.Arm()

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fires))
}

func TestDelayedCommitRearmRestartsWindow(t *testing.T) {
	var fires int32
	dc := newDelayedCommit(func() { atomic.AddInt32(&fires, 1) })
	dc.setDelay(15 * time.Millisecond)

	dc.Arm()
	time.Sleep(8 * time.Millisecond)
	dc.Arm() // restarts the window before the first fire
	time.Sleep(8 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fires), "re-arming must cancel the pending fire")

	time.Sleep(15 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fires))
}

func TestDelayedCommitCancelPreventsFire(t *testing.T) {
	var fires int32
	dc := newDelayedCommit(func() { atomic.AddInt32(&fires, 1) })
	dc.setDelay(5 * time.Millisecond)
	dc.Arm()
	dc.Cancel()

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&fires))
}

func TestDelayedCommitFlushRunsPendingNow(t *testing.T) {
	var fires int32
	dc := newDelayedCommit(func() { atomic.AddInt32(&fires, 1) })
	dc.Arm() // default commitDelay is 2s; Flush must not wait for it
	dc.Flush()
	assert.Equal(t, int32(1), atomic.LoadInt32(&fires))

	dc.Flush() // nothing pending: no-op, no double-fire
	assert.Equal(t, int32(1), atomic.LoadInt32(&fires))
}
