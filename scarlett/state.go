package scarlett

// swHwMode is the per-output volume control state machine of §4.8.
type swHwMode int

const (
	SwControlled swHwMode = iota
	HwControlled
)

// OutputState is the per-analogue-output mirror of §3.3.
type OutputState struct {
	Vol   int // 0..127, 127 == 0dB
	Mute  bool
	Mode  swHwMode
}

// InputConditioning is the per-input switch mirror of §3.4.
type InputConditioning struct {
	Level     bool // false=Line, true=Inst
	Pad       bool
	Air       bool
	Phantom48 bool
	Retain48  bool
}

// volumeStatus mirrors the fixed-layout packet read by get_volume_status
// (§3.6), decoded into driver-friendly fields.
type volumeStatus struct {
	DimMute    [2]bool
	SwVol      []int16
	HwVol      []int16
	MuteSwitch []bool
	SwHw       []bool
	MasterVol  int16
}

// dirty flags, §4.3.
type dirtyFlags struct {
	volUpdated      bool
	lineCtlUpdated  bool
	speakerUpdated  bool
}

// stateStore is the in-memory mirror of device state, guarded by its
// own mutex (the "data mutex" of §5), strictly outer to the wire mutex
// held inside req.
type stateStore struct {
	model *Model
	req   *requestLayer
	sc    *SoftwareConfig // set once Attach loads the mirror; nil until then

	outputs []OutputState
	inputs  []InputConditioning
	mux     *routingTable
	mix     [][]int  // mix[row][input] stored gain index
	mute    [][]bool // mute[row][input]

	masterVol int
	dimMute   [2]bool
	syncLock  bool

	dirty dirtyFlags

	subscribers []func(control string)
}

func newStateStore(m *Model, req *requestLayer) *stateStore {
	s := &stateStore{
		model:   m,
		req:     req,
		outputs: make([]OutputState, m.LineOutCount),
		inputs:  make([]InputConditioning, m.LevelInputCount),
		mux:     newRoutingTable(m),
	}
	numMixOut := m.PortCount(PortMix, dirIn)
	numMixIn := m.PortCount(PortMix, dirOut)
	s.mix = make([][]int, numMixOut)
	s.mute = make([][]bool, numMixOut)
	for i := range s.mix {
		s.mix[i] = make([]int, numMixIn)
		s.mute[i] = make([]bool, numMixIn)
	}
	return s
}

// Subscribe registers a callback invoked with the control name whenever
// that control's value changes, via either a user write or a
// notification-driven re-read.
func (s *stateStore) Subscribe(fn func(control string)) {
	s.subscribers = append(s.subscribers, fn)
}

func (s *stateStore) publish(control string) {
	for _, fn := range s.subscribers {
		fn(control)
	}
}

// refreshVolumes re-reads get_volume_status and updates the master
// volume, dim/mute buttons, and any hw-controlled output's mirrored
// vol/mute, clearing the vol_updated dirty flag (grounded on
// scarlett2_update_volumes).
func (s *stateStore) refreshVolumes() error {
	s.dirty.volUpdated = false

	st, err := s.req.getVolumeStatus(s.model.LineOutCount)
	if err != nil {
		s.dirty.volUpdated = true
		return err
	}

	master := int(st.MasterVol) + volumeBias
	if master < 0 {
		master = 0
	}
	if master > volumeBias {
		master = volumeBias
	}
	s.masterVol = master

	if s.model.HasHWVolume {
		s.dimMute = st.DimMute
	}
	mute := s.dimMute[buttonMute]

	for i := range s.outputs {
		if s.outputs[i].Mode == HwControlled {
			s.outputs[i].Vol = master
			s.outputs[i].Mute = mute
		}
	}
	return nil
}

const (
	volumeBias = 127
	buttonMute = 0
	buttonDim  = 1
)

// Volume returns output i's current volume, re-reading from the device
// first if the dirty flag is set.
func (s *stateStore) Volume(i int) (int, error) {
	if s.dirty.volUpdated {
		if err := s.refreshVolumes(); err != nil {
			return 0, err
		}
	}
	return s.outputs[i].Vol, nil
}

// SetVolume writes a new software volume for output i. Returns
// changed=false ("no change") if the value is unchanged, per the
// idempotence invariant. A write is accepted whatever the output's
// sw/hw mode: neither this method nor the registered volume control
// rejects it while the output is hw-controlled.
func (s *stateStore) SetVolume(i, vol int) (changed bool, err error) {
	if vol < 0 {
		vol = 0
	}
	if vol > volumeBias {
		vol = volumeBias
	}
	if s.outputs[i].Vol == vol {
		return false, nil
	}
	if err := s.req.setConfig(ConfigLineOutVolume, i, vol-volumeBias); err != nil {
		s.dirty.volUpdated = true
		return false, err
	}
	s.outputs[i].Vol = vol
	s.publish("volume")
	return true, nil
}

// SetSwHw transitions output i's control-source state machine (§4.8).
func (s *stateStore) SetSwHw(i int, toHw bool) (changed bool, err error) {
	cur := s.outputs[i].Mode
	want := SwControlled
	if toHw {
		want = HwControlled
	}
	if cur == want {
		return false, nil
	}

	if toHw {
		s.outputs[i].Vol = s.masterVol
		if err := s.req.setConfig(ConfigLineOutVolume, i, s.masterVol-volumeBias); err != nil {
			return false, err
		}
	}

	val := 0
	if toHw {
		val = 1
	}
	if err := s.req.setConfig(ConfigSwHwSwitch, i, val); err != nil {
		return false, err
	}

	if !toHw && s.sc != nil && s.sc.Enabled() {
		level, _, _ := s.sc.Volume(i)
		s.outputs[i].Vol = int(level) + volumeBias
	}

	s.outputs[i].Mode = want
	s.publish("sw_hw")
	return true, nil
}

// SetMute writes output i's mute switch.
func (s *stateStore) SetMute(i int, mute bool) (changed bool, err error) {
	if s.outputs[i].Mute == mute {
		return false, nil
	}
	v := 0
	if mute {
		v = 1
	}
	if err := s.req.setConfig(ConfigMuteSwitch, i, v); err != nil {
		return false, err
	}
	s.outputs[i].Mute = mute
	s.publish("mute")
	return true, nil
}

// SetMixGain sets the stored gain index for one cell of mix row out,
// input in, returning changed=false if unchanged.
func (s *stateStore) SetMixGain(out, in, gain int) (changed bool, err error) {
	if s.mix[out][in] == gain {
		return false, nil
	}
	prev := s.mix[out][in]
	s.mix[out][in] = gain
	if err := s.req.setMix(out, s.mix[out], s.mute[out]); err != nil {
		s.mix[out][in] = prev
		return false, err
	}
	s.publish("mix")
	return true, nil
}
