package scarlett

import (
	"encoding/binary"
	"fmt"
	"sync"
)

// requestLayer implements the typed operations of §4.2 over a
// wireCodec. All of its methods serialize through mu — the wire mutex
// of §5 — held across every exchange of one logical operation: a
// single codec.exchange for most, the SET_DATA/DATA_CMD pair for
// setConfig, all chunks for getData/setData/getConfig, and all three
// per-band SET_MUX exchanges for setMux.
type requestLayer struct {
	codec *wireCodec
	model *Model
	mu    sync.Mutex
}

func newRequestLayer(t Transport, m *Model) *requestLayer {
	return &requestLayer{codec: newWireCodec(t), model: m}
}

func (r *requestLayer) attach() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codec.initHandshake()
}

// setConfig computes the item's per-index offset, writes it, and
// activates the change if the item declares an activation code.
func (r *requestLayer) setConfig(item ConfigItem, index, value int) error {
	offset, size, activate, ok := r.model.ConfigItem(item)
	if !ok {
		return newError(Unsupported, "setConfig", fmt.Errorf("item %d not present on %s", item, r.model.Name))
	}
	off := offset + uint32(index)*size

	r.mu.Lock()
	defer r.mu.Unlock()

	req := make([]byte, 12)
	binary.LittleEndian.PutUint32(req[0:4], off)
	binary.LittleEndian.PutUint32(req[4:8], size)
	binary.LittleEndian.PutUint32(req[8:12], uint32(value))
	if err := r.codec.exchange(opSetData, req[:8+size], nil); err != nil {
		return err
	}
	if activate != 0 {
		if err := r.codec.dataCmd(activate); err != nil {
			return err
		}
	}
	return nil
}

// getConfig bulk-reads count items worth of bytes starting at item's
// offset.
func (r *requestLayer) getConfig(item ConfigItem, count int) ([]byte, error) {
	offset, size, _, ok := r.model.ConfigItem(item)
	if !ok {
		return nil, newError(Unsupported, "getConfig", fmt.Errorf("item %d not present on %s", item, r.model.Name))
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codec.getData(offset, size*uint32(count))
}

func (r *requestLayer) getData(offset, length uint32) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codec.getData(offset, length)
}

func (r *requestLayer) setData(offset uint32, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codec.setData(offset, data)
}

// getMix reads one mixer output row and decodes it into stored gain
// indices.
func (r *requestLayer) getMix(mixNum, numMixerIn int) ([]int, error) {
	req := make([]byte, 4)
	binary.LittleEndian.PutUint16(req[0:2], uint16(mixNum))
	binary.LittleEndian.PutUint16(req[2:4], uint16(numMixerIn))

	resp := make([]byte, 2*numMixerIn)

	r.mu.Lock()
	err := r.codec.exchange(opGetMix, req, resp)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	linear := make([]uint16, numMixerIn)
	for i := range linear {
		linear[i] = binary.LittleEndian.Uint16(resp[2*i:])
	}
	return decodeMixRow(linear), nil
}

// setMix emits the SET_MIX request for one output row, appending the
// talkback sentinel slot when the model supports it.
func (r *requestLayer) setMix(mixNum int, gain []int, mute []bool) error {
	values := encodeMixRow(gain, mute, r.model.HasTalkback)
	req := make([]byte, 2+2*len(values))
	binary.LittleEndian.PutUint16(req[0:2], uint16(mixNum))
	for i, v := range values {
		binary.LittleEndian.PutUint16(req[2+2*i:], v)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codec.exchange(opSetMix, req, nil)
}

// getMux reads the full mux assignment (all destinations, one flat
// GET_MUX across every type) and populates rt.
func (r *requestLayer) getMux(rt *routingTable, count int) error {
	req := make([]byte, 4)
	binary.LittleEndian.PutUint16(req[0:2], 0)
	binary.LittleEndian.PutUint16(req[2:4], uint16(count))

	resp := make([]byte, 4*count)

	r.mu.Lock()
	err := r.codec.exchange(opGetMux, req, resp)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	rt.populateMux(resp)
	return nil
}

// setMux emits one SET_MUX request per sample-rate band, rebuilding
// each band's table from rt.
func (r *requestLayer) setMux(rt *routingTable) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for band := 0; band < sampleRateBands; band++ {
		payload := rt.buildMuxTable(band)
		if err := r.codec.exchange(opSetMux, payload, nil); err != nil {
			return err
		}
	}
	return nil
}

// getMeter reads num levels, truncated to u16 per §4.2.
func (r *requestLayer) getMeter(num int) ([]uint16, error) {
	req := make([]byte, 8)
	binary.LittleEndian.PutUint16(req[0:2], 0)
	binary.LittleEndian.PutUint16(req[2:4], uint16(num))
	binary.LittleEndian.PutUint32(req[4:8], 1) // magic

	resp := make([]byte, 4*num)

	r.mu.Lock()
	err := r.codec.exchange(opGetMeter, req, resp)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	out := make([]uint16, num)
	for i := range out {
		out[i] = uint16(binary.LittleEndian.Uint32(resp[4*i:]))
	}
	return out, nil
}

// getSync reports whether the device's sample clock is locked.
func (r *requestLayer) getSync() (bool, error) {
	resp := make([]byte, 4)
	r.mu.Lock()
	err := r.codec.exchange(opGetSync, nil, resp)
	r.mu.Unlock()
	if err != nil {
		return false, err
	}
	return binary.LittleEndian.Uint32(resp) != 0, nil
}

// deviceVolumeStatusOffset is the device address of the fixed-layout
// volume-status packet, also config item 0's offset.
const deviceVolumeStatusOffset = 0x31

// getVolumeStatus reads and decodes the fixed volume-status packet
// (§3.6). lineOutCount selects how many per-output entries to decode.
func (r *requestLayer) getVolumeStatus(lineOutCount int) (volumeStatus, error) {
	size := 2 + 2 + 2*lineOutCount + 2*lineOutCount + lineOutCount + lineOutCount + 6 + 2
	r.mu.Lock()
	raw, err := r.codec.getData(deviceVolumeStatusOffset, uint32(size))
	r.mu.Unlock()
	if err != nil {
		return volumeStatus{}, err
	}

	var st volumeStatus
	st.DimMute = [2]bool{raw[0] != 0, raw[1] != 0}
	off := 4 // dim_mute[2] + pad1
	st.SwVol = make([]int16, lineOutCount)
	for i := range st.SwVol {
		st.SwVol[i] = int16(binary.LittleEndian.Uint16(raw[off:]))
		off += 2
	}
	st.HwVol = make([]int16, lineOutCount)
	for i := range st.HwVol {
		st.HwVol[i] = int16(binary.LittleEndian.Uint16(raw[off:]))
		off += 2
	}
	st.MuteSwitch = make([]bool, lineOutCount)
	for i := range st.MuteSwitch {
		st.MuteSwitch[i] = raw[off] != 0
		off++
	}
	st.SwHw = make([]bool, lineOutCount)
	for i := range st.SwHw {
		st.SwHw[i] = raw[off] != 0
		off++
	}
	off += 6 // pad3
	st.MasterVol = int16(binary.LittleEndian.Uint16(raw[off:]))
	return st, nil
}

// configSave issues the DATA_CMD that persists RAM state to NVRAM —
// the only path that writes NVRAM.
func (r *requestLayer) configSave() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.codec.dataCmd(configSaveArg)
}
