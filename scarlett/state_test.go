package scarlett

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*stateStore, *fakeTransport) {
	m := LookupModel(0x1235, 0x8215)
	require.NotNil(t, m)
	ft := newFakeTransport()
	ft.on(opSetData, func(req []byte) ([]byte, uint32) { return nil, 0 })
	ft.on(opDataCmd, func(req []byte) ([]byte, uint32) { return nil, 0 })
	req := newRequestLayer(ft, m)
	return newStateStore(m, req), ft
}

func TestSetVolumeIsIdempotent(t *testing.T) {
	s, ft := newTestStore(t)
	s.outputs[0].Vol = 100

	changed, err := s.SetVolume(0, 100)
	require.NoError(t, err)
	assert.False(t, changed)

	var exchanges int
	ft.on(opSetData, func(req []byte) ([]byte, uint32) { exchanges++; return nil, 0 })
	changed, err = s.SetVolume(0, 110)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 1, exchanges)
}

func TestSetVolumeClampsRange(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.SetVolume(0, 9000)
	require.NoError(t, err)
	assert.Equal(t, volumeBias, s.outputs[0].Vol)

	_, err = s.SetVolume(0, -50)
	require.NoError(t, err)
	assert.Equal(t, 0, s.outputs[0].Vol)
}

// Testable invariant: toggling an output to hw-controlled immediately
// snaps its mirrored volume to the current master volume.
func TestSetSwHwSnapsToMasterVolume(t *testing.T) {
	s, _ := newTestStore(t)
	s.masterVol = 90

	changed, err := s.SetSwHw(0, true)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, HwControlled, s.outputs[0].Mode)
	assert.Equal(t, 90, s.outputs[0].Vol)

	changed, err = s.SetSwHw(0, true)
	require.NoError(t, err)
	assert.False(t, changed, "no-op transition reports unchanged")
}

// The device expects LINE_OUT_VOLUME written before SW_HW_SWITCH on a
// Sw->Hw transition.
func TestSetSwHwWritesVolumeBeforeSwitch(t *testing.T) {
	s, ft := newTestStore(t)
	s.masterVol = 90

	volOff, _, _, _ := s.model.ConfigItem(ConfigLineOutVolume)
	swHwOff, _, _, _ := s.model.ConfigItem(ConfigSwHwSwitch)

	var order []uint32
	ft.on(opSetData, func(req []byte) ([]byte, uint32) {
		order = append(order, binary.LittleEndian.Uint32(req[0:4]))
		return nil, 0
	})

	_, err := s.SetSwHw(0, true)
	require.NoError(t, err)
	require.Len(t, order, 2)
	assert.Equal(t, volOff, order[0])
	assert.Equal(t, swHwOff, order[1])
}

// On Hw->Sw, a present software-config mirror's stored volume takes
// over from the master-derived mirror value.
func TestSetSwHwReloadsFromMirrorOnHwToSw(t *testing.T) {
	s, _ := newTestStore(t)
	s.masterVol = 90
	_, err := s.SetSwHw(0, true)
	require.NoError(t, err)

	s.sc = freshSoftwareConfig()
	s.sc.SetVolume(0, 40, true, 0)

	changed, err := s.SetSwHw(0, false)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, SwControlled, s.outputs[0].Mode)
	assert.Equal(t, 40+volumeBias, s.outputs[0].Vol)
}

func TestSetMixGainPublishesAndRevertsOnError(t *testing.T) {
	s, ft := newTestStore(t)
	var published []string
	s.Subscribe(func(control string) { published = append(published, control) })
	changed, err := s.SetMixGain(0, 0, 160)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, 160, s.mix[0][0])
	assert.Equal(t, []string{"mix"}, published)

	ft.on(opSetMix, func(req []byte) ([]byte, uint32) { return nil, 5 })
	_, err = s.SetMixGain(0, 1, 50)
	require.Error(t, err)
	assert.Equal(t, 0, s.mix[0][1], "failed write must not stick in the mirror")
}

func TestRefreshVolumesUpdatesHwControlledOutputs(t *testing.T) {
	m := LookupModel(0x1235, 0x8215)
	require.NotNil(t, m)
	ft := newFakeTransport()
	size := 2 + 2 + 2*m.LineOutCount + 2*m.LineOutCount + m.LineOutCount + m.LineOutCount + 6 + 2
	ft.on(opGetData, func(req []byte) ([]byte, uint32) {
		return make([]byte, size), 0
	})
	req := newRequestLayer(ft, m)
	s := newStateStore(m, req)
	s.outputs[0].Mode = HwControlled

	require.NoError(t, s.refreshVolumes())
	assert.Equal(t, volumeBias, s.outputs[0].Vol) // master_vol raw 0 -> biased to 127
}
