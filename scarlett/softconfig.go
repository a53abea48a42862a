package scarlett

import (
	"encoding/binary"
	"fmt"
)

// Software-config blob layout (§3.5). Offsets are relative to the
// start of the blob itself, not the absolute device address (0xEC,
// see deviceConfigBase in device.go).
const (
	scOffAllSize = 0
	scOffMagic   = 4
	scOffVersion = 6
	scOffSzof    = 8
	scOffHeader  = 12

	scOutMuxCount      = 26
	scMixerInCount     = 30
	scVolumeCount      = 10
	scInAliasCount     = 42
	scOutAliasCount    = 26
	scAliasLen         = 12
	scMixerOutputCount = 12
	scMixerInputCount  = 30

	scOffOutMux      = scOffHeader
	scOffMixerInMux  = scOffOutMux + 2*scOutMuxCount
	scOffMixerInMap  = scOffMixerInMux + 2*scMixerInCount
	scOffStereoSw    = scOffMixerInMap + scMixerInCount + 2 // 2 pad bytes keep every later 32-bit field word-aligned
	scOffMuteSw      = scOffStereoSw + 4
	scOffVolume      = scOffMuteSw + 4
	scOffInAlias     = scOffVolume + 4*scVolumeCount
	scOffOutAlias    = scOffInAlias + scAliasLen*scInAliasCount
	scOffMixer       = scOffOutAlias + scAliasLen*scOutAliasCount
	scOffMixerPan    = scOffMixer + 4*scMixerOutputCount*scMixerInputCount
	scOffMixerMute   = scOffMixerPan + scMixerOutputCount*scMixerInputCount
	scOffMixerSolo   = scOffMixerMute + 4*scMixerOutputCount
	scOffMixerBind   = scOffMixerSolo + 4*scMixerOutputCount
	scOffChecksum    = scOffMixerBind + 4
	scSize           = scOffChecksum + 4

	scMagic   = 0x3006
	scVersion = 1
)

// SoftwareConfig mirrors the device's persisted configuration blob.
// Every mutation is write-through: the mirror is updated, the checksum
// recomputed, and the dirtied byte range (plus the checksum word)
// uploaded through the owning Device's wire codec.
type SoftwareConfig struct {
	buf     []byte
	enabled bool
}

// freshSoftwareConfig synthesizes an all-zero-payload blob with a valid
// header and checksum, used when the device reports szof == 0 (§4.5).
func freshSoftwareConfig() *SoftwareConfig {
	sc := &SoftwareConfig{buf: make([]byte, scSize), enabled: true}
	binary.LittleEndian.PutUint32(sc.buf[scOffAllSize:], uint32(scSize+0x0c))
	binary.LittleEndian.PutUint16(sc.buf[scOffMagic:], scMagic)
	binary.LittleEndian.PutUint16(sc.buf[scOffVersion:], scVersion)
	binary.LittleEndian.PutUint32(sc.buf[scOffSzof:], uint32(scSize))
	sc.recomputeChecksum()
	return sc
}

// loadSoftwareConfig wraps a blob read from the device. It returns an
// Integrity error if the declared size does not match this driver's
// structure size, per §4.5 ("otherwise warn and proceed with the
// mirror disabled").
func loadSoftwareConfig(raw []byte) (*SoftwareConfig, error) {
	if len(raw) != scSize {
		return &SoftwareConfig{buf: nil, enabled: false},
			newError(Integrity, "softconfig.load", fmt.Errorf("size %d != %d", len(raw), scSize))
	}
	sc := &SoftwareConfig{buf: append([]byte(nil), raw...), enabled: true}
	return sc, nil
}

func (sc *SoftwareConfig) Enabled() bool { return sc.enabled }

// checksum computes the two's-complement negation of the 32-bit-word
// sum of the blob with the checksum field treated as zero (§3.5).
func (sc *SoftwareConfig) checksum() uint32 {
	var sum uint32
	for off := 0; off < scSize; off += 4 {
		if off == scOffChecksum {
			continue
		}
		sum += binary.LittleEndian.Uint32(sc.buf[off : off+4])
	}
	return -sum
}

// recomputeChecksum rewrites the trailing checksum word so that the
// sum of every 32-bit word in the blob, including the checksum itself,
// is congruent to 0 mod 2^32.
func (sc *SoftwareConfig) recomputeChecksum() {
	binary.LittleEndian.PutUint32(sc.buf[scOffChecksum:], sc.checksum())
}

// verifyChecksum reports whether the blob currently satisfies the
// checksum invariant.
func (sc *SoftwareConfig) verifyChecksum() bool {
	var sum uint32
	for off := 0; off < scSize; off += 4 {
		sum += binary.LittleEndian.Uint32(sc.buf[off : off+4])
	}
	return sum == 0
}

// OutMux returns the 1-based software routing source for output i
// (0 = none).
func (sc *SoftwareConfig) OutMux(i int) uint16 {
	return binary.LittleEndian.Uint16(sc.buf[scOffOutMux+2*i:])
}

// SetOutMux writes the software routing source for output i and
// recomputes the checksum.
func (sc *SoftwareConfig) SetOutMux(i int, src uint16) {
	binary.LittleEndian.PutUint16(sc.buf[scOffOutMux+2*i:], src)
	sc.recomputeChecksum()
}

// MixerInMap returns the stereo-pair map byte for mixer input i: bit 7
// marks an active pair, the low 7 bits name the partner input.
func (sc *SoftwareConfig) MixerInMap(i int) byte {
	return sc.buf[scOffMixerInMap+i]
}

// StereoSw returns the 32-bit stereo-pair mask over output slots.
func (sc *SoftwareConfig) StereoSw() uint32 {
	return binary.LittleEndian.Uint32(sc.buf[scOffStereoSw:])
}

// SetStereoSw writes the stereo-pair mask and recomputes the checksum.
func (sc *SoftwareConfig) SetStereoSw(mask uint32) {
	binary.LittleEndian.PutUint32(sc.buf[scOffStereoSw:], mask)
	sc.recomputeChecksum()
}

// MixerBind returns the mask of outputs routed directly (bypassing the
// internal mixer).
func (sc *SoftwareConfig) MixerBind() uint32 {
	return binary.LittleEndian.Uint32(sc.buf[scOffMixerBind:])
}

// SetMixerBind writes the direct-routing mask and recomputes the
// checksum.
func (sc *SoftwareConfig) SetMixerBind(mask uint32) {
	binary.LittleEndian.PutUint32(sc.buf[scOffMixerBind:], mask)
	sc.recomputeChecksum()
}

// ClearStereoPair forces a destination pair to mono/direct routing:
// both stereo_sw bits clear and both mixer_bind bits clear (§4.4).
func (sc *SoftwareConfig) ClearStereoPair(evenDst int) {
	mask := uint32(0b11) << uint(evenDst)
	sc.SetStereoSw(sc.StereoSw() &^ mask)
	sc.SetMixerBind(sc.MixerBind() &^ mask)
}

// MixerGain returns the raw float32 bits stored for mixer output out,
// input in.
func (sc *SoftwareConfig) MixerGain(out, in int) uint32 {
	off := scOffMixer + 4*(out*scMixerInputCount+in)
	return binary.LittleEndian.Uint32(sc.buf[off:])
}

// SetMixerGain writes the high 16 bits of the float32 linear gain for
// stored gain index g at (out, in); the low 16 bits are always zero by
// construction (§3.2).
func (sc *SoftwareConfig) SetMixerGain(out, in, g int) {
	off := scOffMixer + 4*(out*scMixerInputCount+in)
	var bits uint32
	if g >= 0 && g < mixerValueCount {
		bits = uint32(mixerSwValues[g]) << 16
	}
	binary.LittleEndian.PutUint32(sc.buf[off:], bits)
	sc.recomputeChecksum()
}

// Volume returns the stored {level, changedFlag, flags} triplet for
// analogue output i.
func (sc *SoftwareConfig) Volume(i int) (level int16, changed bool, flags byte) {
	off := scOffVolume + 4*i
	level = int16(binary.LittleEndian.Uint16(sc.buf[off:]))
	changed = sc.buf[off+2] != 0
	flags = sc.buf[off+3]
	return
}

// SetVolume writes the stored volume triplet for analogue output i and
// recomputes the checksum.
func (sc *SoftwareConfig) SetVolume(i int, level int16, changed bool, flags byte) {
	off := scOffVolume + 4*i
	binary.LittleEndian.PutUint16(sc.buf[off:], uint16(level))
	if changed {
		sc.buf[off+2] = 1
	} else {
		sc.buf[off+2] = 0
	}
	sc.buf[off+3] = flags
	sc.recomputeChecksum()
}

// Bytes returns the full blob, for upload or inspection.
func (sc *SoftwareConfig) Bytes() []byte {
	return sc.buf
}

// ChecksumWordOffset is the byte offset of the trailing checksum word,
// exposed so callers can upload just the dirtied range plus this word.
func (sc *SoftwareConfig) ChecksumWordOffset() int {
	return scOffChecksum
}

// Size returns the declared blob size (szof).
func (sc *SoftwareConfig) Size() int {
	return scSize
}
