package scarlett

import "encoding/binary"

// noSource is the sentinel flat index meaning "no source assigned".
const noSource = -1

// routingTable is the driver-internal mux assignment: one logical
// source flat-index per destination flat-index (or noSource), plus the
// mixer-input software routing array, independent of how the three
// per-band wire tables are laid out.
type routingTable struct {
	model *Model

	// dst[i] is the source flat index routed to destination flat
	// index i, across every destination port type in declaredPortOrder.
	dst []int

	// mixerInMux[i] is the 1-based source port number routed to mixer
	// input i (destinations of type Mix), 0 meaning unassigned, shaped
	// like the software-config mixer_in_mux array. It is allocated with
	// every entry 0; neither Set nor populateMux writes it, so it does
	// not follow dst.
	mixerInMux []int
}

func newRoutingTable(m *Model) *routingTable {
	numDst := 0
	for _, t := range declaredPortOrder {
		numDst += m.PortCount(t, dirOut)
	}
	numMix := m.PortCount(PortMix, dirOut)

	dst := make([]int, numDst)
	for i := range dst {
		dst[i] = noSource
	}
	return &routingTable{
		model:      m,
		dst:        dst,
		mixerInMux: make([]int, numMix),
	}
}

// srcID converts a source flat index into its 12-bit hardware port id.
func (m *Model) srcID(flat int) uint16 {
	offset := 0
	for _, t := range declaredPortOrder {
		n := m.PortCount(t, dirIn)
		if flat < offset+n {
			return m.PortID(t, flat-offset)
		}
		offset += n
	}
	return 0
}

// idToSrcFlat converts a 12-bit hardware source port id back into a
// flat index, or -1 if it does not belong to any declared input port.
func (m *Model) idToSrcFlat(id uint16) int {
	offset := 0
	for _, t := range declaredPortOrder {
		base := portIDBase[t]
		n := m.PortCount(t, dirIn)
		if id >= base && int(id-base) < n {
			return offset + int(id-base)
		}
		offset += n
	}
	return -1
}

// idToDstFlat converts a 12-bit hardware destination port id back into
// a flat index.
func (m *Model) idToDstFlat(id uint16) int {
	offset := 0
	for _, t := range declaredPortOrder {
		base := portIDBase[t]
		n := m.PortCount(t, dirOut)
		if id >= base && int(id-base) < n {
			return offset + int(id-base)
		}
		offset += n
	}
	return -1
}

// Set assigns src as the source for destination dst (both flat
// indices), applying stereo-pair coupling per stereoSw: when dst is a
// member of an active pair, the partner slot is implicitly updated to
// src+1 (even dst) or src-1 (odd dst).
func (r *routingTable) Set(dst, src int, stereoSw uint32) {
	r.dst[dst] = src
	if stereoSw&(1<<uint(dst)) == 0 {
		return
	}
	if dst%2 == 0 {
		r.dst[dst+1] = src + 1
	} else {
		r.dst[dst-1] = src - 1
	}
}

// Get returns the current source flat index for destination dst, or
// noSource.
func (r *routingTable) Get(dst int) int {
	return r.dst[dst]
}

// buildMuxTable reconstructs the SET_MUX payload for band: a u16 pad
// word, a u16 band number, then model.MuxSize(band) little-endian u32
// slots emitted in muxPortOrder, each {dst_id | src_id<<12}, zero for
// unassigned or padding slots (§4.4, invariant 2).
func (r *routingTable) buildMuxTable(band int) []byte {
	m := r.model
	size := m.MuxSize(band)
	payload := make([]byte, 4+4*size)
	binary.LittleEndian.PutUint16(payload[0:2], 0)
	binary.LittleEndian.PutUint16(payload[2:4], uint16(band))

	slot := 0
	for _, t := range muxPortOrder {
		count := m.muxBand[band].forType(t)
		dstBase := m.FlatOffset(t, dirOut)
		for i := 0; i < count; i++ {
			dstFlat := dstBase + i
			dstID := m.PortID(t, i)
			var word uint32
			if src := r.dst[dstFlat]; src != noSource {
				word = uint32(dstID) | uint32(m.srcID(src))<<12
			}
			binary.LittleEndian.PutUint32(payload[4+4*slot:8+4*slot], word)
			slot++
		}
	}
	// Remaining slots up to size are left zero (padding).
	return payload
}

// populateMux decodes a GET_MUX response table and loads the resulting
// assignments into r.
func (r *routingTable) populateMux(data []byte) {
	for i := 0; i+4 <= len(data); i += 4 {
		word := binary.LittleEndian.Uint32(data[i : i+4])
		dstID := uint16(word & 0xFFF)
		srcID := uint16((word >> 12) & 0xFFF)
		dstFlat := r.model.idToDstFlat(dstID)
		if dstFlat < 0 || dstFlat >= len(r.dst) {
			continue
		}
		srcFlat := r.model.idToSrcFlat(srcID)
		r.dst[dstFlat] = srcFlat
	}
}
