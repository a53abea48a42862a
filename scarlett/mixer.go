package scarlett

import "math"

// mixerValueCount is the number of entries in the dB→linear gain table:
// -80dB to +6dB in 0.5dB steps, inclusive of both ends.
const mixerValueCount = 173

// mixerValues maps a stored gain index g (0..172, representing
// (dB+80)*2) to the 16-bit linear value the device expects on the wire.
// Transcribed verbatim from the reference driver's lookup table.
var mixerValues = [mixerValueCount]uint16{
	0, 0, 0, 0, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 2,
	2, 2, 3, 3, 3, 3, 3, 4, 4, 4, 4, 5, 5, 5, 6, 6, 6, 7, 7, 8, 8,
	9, 9, 10, 10, 11, 12, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21,
	23, 24, 25, 27, 29, 30, 32, 34, 36, 38, 41, 43, 46, 48, 51,
	54, 57, 61, 65, 68, 73, 77, 81, 86, 91, 97, 103, 109, 115,
	122, 129, 137, 145, 154, 163, 173, 183, 194, 205, 217, 230,
	244, 259, 274, 290, 307, 326, 345, 365, 387, 410, 434, 460,
	487, 516, 547, 579, 614, 650, 689, 730, 773, 819, 867, 919,
	973, 1031, 1092, 1157, 1225, 1298, 1375, 1456, 1543, 1634,
	1731, 1833, 1942, 2057, 2179, 2308, 2445, 2590, 2744, 2906,
	3078, 3261, 3454, 3659, 3876, 4105, 4349, 4606, 4879, 5168,
	5475, 5799, 6143, 6507, 6892, 7301, 7733, 8192, 8677, 9191,
	9736, 10313, 10924, 11571, 12257, 12983, 13752, 14567, 15430,
	16345,
}

// mixerSwValues holds, for each gain index, the high 16 bits of the
// IEEE-754 binary32 linear-amplitude value stored in the software
// configuration's mixer gain matrix (the low 16 bits are always zero
// by construction). The reference driver does not carry this table
// (it has no software-config mirror); it is derived here from the
// same dB scale the driver's own mixerValues table uses, rather than
// transcribed, since the spec leaves its exact values
// implementation-defined.
var mixerSwValues [mixerValueCount]uint16

func init() {
	for g := 0; g < mixerValueCount; g++ {
		db := float64(g)/2 - 80
		amplitude := math.Pow(10, db/20)
		bits := math.Float32bits(float32(amplitude))
		mixerSwValues[g] = uint16(bits >> 16)
	}
}

// gainToLinear returns the wire-format linear value for stored gain
// index g, clamped into [0, mixerValueCount).
func gainToLinear(g int) uint16 {
	if g < 0 {
		g = 0
	}
	if g >= mixerValueCount {
		g = mixerValueCount - 1
	}
	return mixerValues[g]
}

// linearToGain finds the smallest gain index k such that
// mixerValues[k] >= value, saturating to the top index if none is
// found — the inverse of gainToLinear, used when decoding a GET_MIX
// response.
func linearToGain(value uint16) int {
	for k, v := range mixerValues {
		if v >= value {
			return k
		}
	}
	return mixerValueCount - 1
}

// talkbackSentinel is the fixed wire value appended as an extra mix
// slot on talkback-capable models; its exact semantics are
// undocumented upstream and are preserved literally (Open Question c).
const talkbackSentinel uint16 = 0x2000

// encodeMixRow builds the SET_MIX payload for one mixer output: a
// little-endian u16 per input, muted inputs forced to index 0, plus a
// trailing talkbackSentinel slot when talkback is appended.
func encodeMixRow(gain []int, mute []bool, talkback bool) []uint16 {
	n := len(gain)
	out := make([]uint16, n, n+1)
	for i := 0; i < n; i++ {
		g := gain[i]
		if i < len(mute) && mute[i] {
			g = 0
		}
		out[i] = gainToLinear(g)
	}
	if talkback {
		out = append(out, talkbackSentinel)
	}
	return out
}

// decodeMixRow converts a GET_MIX response (linear wire values) back
// into stored gain indices.
func decodeMixRow(linear []uint16) []int {
	out := make([]int, len(linear))
	for i, v := range linear {
		out[i] = linearToGain(v)
	}
	return out
}

// decodeFloatGain decodes an IEEE-754 binary32 linear-amplitude value
// (as stored in the software-config mixer gain matrix) into half-dB
// units in [-160, 12]. A magnitude under 0.5dB flushes to 0; a
// magnitude over 80dB saturates to -160 (below -80dB) or +12 (above
// the device's +6dB positive ceiling).
func decodeFloatGain(bits uint32) int {
	amplitude := math.Float32frombits(bits)
	if amplitude <= 0 {
		return -160
	}
	db := 20 * math.Log10(float64(amplitude))
	if math.Abs(db) < 0.5 {
		return 0
	}
	if db > 80 {
		return 12
	}
	if db < -80 {
		return -160
	}
	half := int(math.Round(db * 2))
	if half > 12 {
		half = 12
	}
	if half < -160 {
		half = -160
	}
	return half
}
