package scarlett

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGainToLinearClampsRange(t *testing.T) {
	assert.Equal(t, mixerValues[0], gainToLinear(-5))
	assert.Equal(t, mixerValues[mixerValueCount-1], gainToLinear(9000))
	assert.Equal(t, mixerValues[86], gainToLinear(86))
}

func TestLinearToGainRoundTrips(t *testing.T) {
	for g := 0; g < mixerValueCount; g++ {
		got := linearToGain(mixerValues[g])
		assert.GreaterOrEqual(t, mixerValues[got], mixerValues[g])
	}
}

func TestEncodeMixRowForcesMutedToZero(t *testing.T) {
	values := encodeMixRow([]int{172, 172}, []bool{false, true}, false)
	assert.Equal(t, mixerValues[172], values[0])
	assert.Equal(t, mixerValues[0], values[1])
}

func TestEncodeMixRowAppendsTalkbackSentinel(t *testing.T) {
	values := encodeMixRow([]int{0}, nil, true)
	assert.Len(t, values, 2)
	assert.Equal(t, talkbackSentinel, values[1])
}

// Testable invariant 7: decodeFloatGain flushes sub-0.5dB magnitudes to
// zero and saturates beyond the device's declared range.
func TestDecodeFloatGainThresholdsAndSaturates(t *testing.T) {
	bitsFor := func(db float64) uint32 {
		return math.Float32bits(float32(math.Pow(10, db/20)))
	}
	assert.Equal(t, 0, decodeFloatGain(bitsFor(0.0)))
	assert.Equal(t, 0, decodeFloatGain(bitsFor(0.2)))
	assert.Equal(t, -160, decodeFloatGain(bitsFor(-120)))
	assert.Equal(t, 12, decodeFloatGain(bitsFor(120)))
	assert.Equal(t, 12, decodeFloatGain(bitsFor(6)))
	assert.Equal(t, -160, decodeFloatGain(0))
}

func TestMixerSwValuesComputedFromSameScale(t *testing.T) {
	// Gain index 160 == 0dB (80*2): amplitude 1.0, high bits of 1.0f.
	bits := uint32(mixerSwValues[160]) << 16
	amplitude := math.Float32frombits(bits)
	assert.InDelta(t, 1.0, float64(amplitude), 0.01)
}
