package scarlett

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func eighteen20Gen3(t *testing.T) *Model {
	m := LookupModel(0x1235, 0x8215)
	require.NotNil(t, m)
	return m
}

// Testable invariant 2: buildMuxTable emits exactly model.MuxSize(band)
// slots, in the canonical muxPortOrder, zero-padded for unassigned or
// trailing slots.
func TestBuildMuxTableSizeAndOrder(t *testing.T) {
	m := eighteen20Gen3(t)
	rt := newRoutingTable(m)

	payload := rt.buildMuxTable(0)
	assert.Len(t, payload, 4+4*m.MuxSize(0))
	assert.Equal(t, uint16(0), binary.LittleEndian.Uint16(payload[2:4]))

	// Every unassigned slot is zero.
	for i := 0; i < m.MuxSize(0); i++ {
		word := binary.LittleEndian.Uint32(payload[4+4*i:])
		assert.Equal(t, uint32(0), word)
	}

	// The Analogue group follows the PCM group: the first Analogue
	// destination lands in the slot right after the last PCM slot.
	rt.Set(m.FlatOffset(PortAnalogue, dirOut), 0, 0)
	payload = rt.buildMuxTable(0)
	slot := m.muxBand[0].Pcm
	want := uint32(m.PortID(PortAnalogue, 0)) | uint32(m.srcID(0))<<12
	assert.Equal(t, want, binary.LittleEndian.Uint32(payload[4+4*slot:]))
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(payload[4:]), "first PCM slot stays unassigned")
}

func TestSetAndGetRoundTrip(t *testing.T) {
	m := eighteen20Gen3(t)
	rt := newRoutingTable(m)
	rt.Set(0, 3, 0)
	assert.Equal(t, 3, rt.Get(0))
	assert.Equal(t, noSource, rt.Get(1))
}

// Invariant: stereo-pair coupling assigns the partner slot src+1/src-1
// implicitly when the stereo_sw bit for dst is set.
func TestStereoPairCoupling(t *testing.T) {
	m := eighteen20Gen3(t)
	rt := newRoutingTable(m)
	rt.Set(0, 10, 1<<0)
	assert.Equal(t, 10, rt.Get(0))
	assert.Equal(t, 11, rt.Get(1))

	rt2 := newRoutingTable(m)
	rt2.Set(1, 21, 1<<1)
	assert.Equal(t, 21, rt2.Get(1))
	assert.Equal(t, 20, rt2.Get(0))
}

func TestBuildThenPopulateRoundTrips(t *testing.T) {
	m := eighteen20Gen3(t)
	rt := newRoutingTable(m)

	dstFlat := m.FlatOffset(PortAnalogue, dirOut)
	srcFlat := 0 // first PCM input by declaredPortOrder
	rt.Set(dstFlat, srcFlat, 0)

	payload := rt.buildMuxTable(0)
	rt2 := newRoutingTable(m)
	rt2.populateMux(payload[4:])
	assert.Equal(t, srcFlat, rt2.Get(dstFlat))
}

func TestIDConversionsAreInverse(t *testing.T) {
	m := eighteen20Gen3(t)
	for flat := 0; flat < m.PortCount(PortAnalogue, dirIn); flat++ {
		offset := m.FlatOffset(PortAnalogue, dirIn)
		id := m.PortID(PortAnalogue, flat)
		got := m.idToSrcFlat(id)
		assert.Equal(t, offset+flat, got)
	}
}
