package scarlett

// ControlKind classifies a registered control for a host framework
// that needs to pick a widget/ALSA-control-type without knowing the
// specifics of this package.
type ControlKind int

const (
	// ControlVolume is a signed, model-range fader control (output
	// volume, mixer gain).
	ControlVolume ControlKind = iota
	// ControlSwitch is a boolean on/off control (mute, pad, sw/hw).
	ControlSwitch
	// ControlRoute is an enumerated per-destination source selector
	// (routing mux), not a fader or a boolean.
	ControlRoute
)

// ControlDescriptor is one control surface exposed to a host
// framework: a name, a kind, the channel count it spans, and the
// get/set callbacks that read or write through to the Device.
type ControlDescriptor struct {
	Name     string
	Kind     ControlKind
	Channels int
	Get      func(channel int) (int, error)
	Set      func(channel, value int) error
}

// ControlHost is the narrow seam this package exposes to whatever
// framework surfaces controls to a user (ALSA mixer controls, a CLI,
// a GUI). It mirrors the teacher's own pattern of never letting a
// caller reach past a small interface into package internals: a host
// only ever sees Add calls, never the Device itself.
type ControlHost interface {
	Add(d ControlDescriptor)
}

// RegisterControls populates host with one descriptor per user-facing
// control this model supports: a volume, mute and sw/hw control
// spanning the analogue outputs, level and pad switches spanning the
// inputs that have them, one routing control spanning every mux
// destination, and one mixer-gain control per mixer output row with a
// channel per mixer input. No air or 48V switch is registered. No
// concrete ALSA binding lives here — only the descriptors and their
// callbacks.
func (d *Device) RegisterControls(host ControlHost) {
	m := d.model

	host.Add(ControlDescriptor{
		Name:     "Master Volume",
		Kind:     ControlVolume,
		Channels: m.LineOutCount,
		Get:      func(ch int) (int, error) { return d.Volume(ch) },
		Set:      func(ch, v int) error { _, err := d.SetVolume(ch, v); return err },
	})
	host.Add(ControlDescriptor{
		Name:     "Output Mute",
		Kind:     ControlSwitch,
		Channels: m.LineOutCount,
		Get: func(ch int) (int, error) {
			if d.store.outputs[ch].Mute {
				return 1, nil
			}
			return 0, nil
		},
		Set: func(ch, v int) error {
			_, err := d.store.SetMute(ch, v != 0)
			if err == nil && d.commit != nil {
				d.commit.Arm()
			}
			return err
		},
	})
	host.Add(ControlDescriptor{
		Name:     "Output Source",
		Kind:     ControlSwitch,
		Channels: m.LineOutCount,
		Get: func(ch int) (int, error) {
			if d.store.outputs[ch].Mode == HwControlled {
				return 1, nil
			}
			return 0, nil
		},
		Set: func(ch, v int) error { _, err := d.SetSwHw(ch, v != 0); return err },
	})

	if n := m.LevelInputCount; n > 0 {
		host.Add(ControlDescriptor{
			Name:     "Input Level",
			Kind:     ControlSwitch,
			Channels: n,
			Get: func(ch int) (int, error) {
				if d.store.inputs[ch].Level {
					return 1, nil
				}
				return 0, nil
			},
			Set: func(ch, v int) error {
				err := d.req.setConfig(ConfigLevelSwitch, ch, v)
				if err == nil {
					d.store.inputs[ch].Level = v != 0
					if d.commit != nil {
						d.commit.Arm()
					}
				}
				return err
			},
		})
	}
	if n := m.PadInputCount; n > 0 {
		host.Add(ControlDescriptor{
			Name:     "Input Pad",
			Kind:     ControlSwitch,
			Channels: n,
			Get: func(ch int) (int, error) {
				if d.store.inputs[ch].Pad {
					return 1, nil
				}
				return 0, nil
			},
			Set: func(ch, v int) error {
				err := d.req.setConfig(ConfigPadSwitch, ch, v)
				if err == nil {
					d.store.inputs[ch].Pad = v != 0
					if d.commit != nil {
						d.commit.Arm()
					}
				}
				return err
			},
		})
	}

	host.Add(ControlDescriptor{
		Name:     "Output Routing",
		Kind:     ControlRoute,
		Channels: len(d.store.mux.dst),
		Get:      func(ch int) (int, error) { return d.store.mux.Get(ch), nil },
		Set:      func(ch, src int) error { _, err := d.SetMux(ch, src); return err },
	})

	numMixOut := m.PortCount(PortMix, dirIn)
	numMixIn := m.PortCount(PortMix, dirOut)
	for out := 0; out < numMixOut; out++ {
		out := out
		host.Add(ControlDescriptor{
			Name:     mixRowName(out),
			Kind:     ControlVolume,
			Channels: numMixIn,
			Get:      func(in int) (int, error) { return d.store.mix[out][in], nil },
			Set:      func(in, gain int) error { _, err := d.SetMixGain(out, in, gain); return err },
		})
	}
}

func mixRowName(out int) string {
	const base = "Mix "
	return base + string(rune('A'+out)) + " Input Playback Volume"
}
