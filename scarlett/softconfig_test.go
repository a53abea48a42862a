package scarlett

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Testable invariant 6: the software-config blob's 32-bit words, taken
// across its full declared size, sum to zero mod 2^32.
func TestFreshSoftwareConfigSatisfiesChecksum(t *testing.T) {
	sc := freshSoftwareConfig()
	assert.True(t, sc.verifyChecksum())
	assert.Len(t, sc.Bytes(), scSize)
}

func TestMutationsKeepChecksumValid(t *testing.T) {
	sc := freshSoftwareConfig()
	sc.SetOutMux(0, 7)
	assert.True(t, sc.verifyChecksum())

	sc.SetStereoSw(0b11)
	assert.True(t, sc.verifyChecksum())

	sc.SetMixerGain(0, 0, 160)
	assert.True(t, sc.verifyChecksum())

	sc.SetVolume(2, -40, true, 1)
	assert.True(t, sc.verifyChecksum())
}

func TestLoadSoftwareConfigRejectsWrongSize(t *testing.T) {
	_, err := loadSoftwareConfig(make([]byte, scSize-4))
	require.Error(t, err)
	se, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, Integrity, se.Kind)
}

func TestLoadSoftwareConfigAcceptsCorrectSize(t *testing.T) {
	fresh := freshSoftwareConfig()
	sc, err := loadSoftwareConfig(fresh.Bytes())
	require.NoError(t, err)
	assert.True(t, sc.Enabled())
	assert.True(t, sc.verifyChecksum())
}

func TestClearStereoPairClearsBothMasks(t *testing.T) {
	sc := freshSoftwareConfig()
	sc.SetStereoSw(0b11)
	sc.SetMixerBind(0b11)
	sc.ClearStereoPair(0)
	assert.Equal(t, uint32(0), sc.StereoSw())
	assert.Equal(t, uint32(0), sc.MixerBind())
}

func TestVolumeFieldRoundTrips(t *testing.T) {
	sc := freshSoftwareConfig()
	sc.SetVolume(3, -12, true, 0xAB)
	level, changed, flags := sc.Volume(3)
	assert.Equal(t, int16(-12), level)
	assert.True(t, changed)
	assert.Equal(t, byte(0xAB), flags)
}
