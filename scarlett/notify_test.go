package scarlett

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifyPumpDimMuteSetsDirtyAndPublishes(t *testing.T) {
	m := LookupModel(0x1235, 0x8215)
	require.NotNil(t, m)
	ft := newFakeTransport()
	req := newRequestLayer(ft, m)
	s := newStateStore(m, req)

	published := make(chan string, 4)
	s.Subscribe(func(control string) { published <- control })

	pump := newNotifyPump(ft, s)
	go pump.run()
	defer pump.Stop()

	ft.pushInterrupt(notifyDimMute)

	select {
	case c := <-published:
		assert.Equal(t, "dim_mute", c)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for publish")
	}
	assert.True(t, s.dirty.volUpdated)
}

// Speaker notifications couple volume, dim_mute, and speaker publishes
// together (§4.6).
func TestNotifyPumpSpeakerCouplesPublishes(t *testing.T) {
	m := LookupModel(0x1235, 0x8215)
	require.NotNil(t, m)
	ft := newFakeTransport()
	req := newRequestLayer(ft, m)
	s := newStateStore(m, req)

	published := make(chan string, 8)
	s.Subscribe(func(control string) { published <- control })

	pump := newNotifyPump(ft, s)
	go pump.run()
	defer pump.Stop()

	ft.pushInterrupt(notifySpeaker)

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		select {
		case c := <-published:
			seen[c] = true
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for publishes")
		}
	}
	assert.True(t, seen["speaker"])
	assert.True(t, seen["volume"])
	assert.True(t, seen["dim_mute"])
	assert.True(t, s.dirty.speakerUpdated)
}

func TestNotifyPumpStopEndsLoop(t *testing.T) {
	m := LookupModel(0x1235, 0x8215)
	ft := newFakeTransport()
	req := newRequestLayer(ft, m)
	s := newStateStore(m, req)

	pump := newNotifyPump(ft, s)
	done := make(chan struct{})
	go func() {
		pump.run()
		close(done)
	}()
	pump.Stop()
	_ = ft.Close() // unblocks the pump's in-flight ReadInterrupt

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pump did not stop")
	}
}
