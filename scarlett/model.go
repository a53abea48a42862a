// Package scarlett implements the vendor-specific control plane of
// Focusrite Scarlett Gen 2 / Gen 3 USB audio interfaces: the framed
// request/response protocol, the routing matrix, the per-mix gain
// matrix, per-output volume/mute state, input conditioning switches,
// the persisted software-configuration blob, and the notification
// pipeline that keeps driver state coherent with the physical controls.
package scarlett

import "fmt"

// PortType identifies a class of hardware port that can appear as a mux
// source or destination. The numeric values are declaration order;
// the device's hardware id bases are held separately in portIDBase.
type PortType int

const (
	PortNone PortType = iota
	PortAnalogue
	PortSpdif
	PortAdat
	PortAdat2
	PortMix
	PortPcm
	PortInternalMic
	PortTalkback

	portTypeCount
)

func (t PortType) String() string {
	switch t {
	case PortNone:
		return "None"
	case PortAnalogue:
		return "Analogue"
	case PortSpdif:
		return "Spdif"
	case PortAdat:
		return "Adat"
	case PortAdat2:
		return "Adat2"
	case PortMix:
		return "Mix"
	case PortPcm:
		return "Pcm"
	case PortInternalMic:
		return "InternalMic"
	case PortTalkback:
		return "Talkback"
	default:
		return fmt.Sprintf("PortType(%d)", int(t))
	}
}

// portIDBase gives the 16-bit hardware id of port index 0 of each type;
// the n-th port of a type has hardware id base+n.
var portIDBase = map[PortType]uint16{
	PortNone:        0x000,
	PortAnalogue:    0x080,
	PortSpdif:       0x180,
	PortAdat:        0x200,
	PortAdat2:       0x200, // alias of Adat, see Open Question (a)
	PortMix:         0x300,
	PortPcm:         0x600,
	PortInternalMic: 0x280,
	PortTalkback:    0x380,
}

// muxPortOrder is the fixed order in which port-type groups are emitted
// into a SET_MUX table.
var muxPortOrder = [...]PortType{
	PortPcm, PortAnalogue, PortSpdif, PortAdat, PortMix, PortTalkback,
}

const sampleRateBands = 3

// direction distinguishes ports that feed the mux (In, i.e. usable as a
// source) from ports the mux feeds (Out, i.e. usable as a destination).
type direction int

const (
	dirIn direction = iota
	dirOut
)

// bandCounts gives, for one sample-rate band, the number of active mux
// slots contributed by each port type in muxPortOrder.
type bandCounts struct {
	Pcm, Analogue, Spdif, Adat, Mix, Talkback int
}

func (b bandCounts) forType(t PortType) int {
	switch t {
	case PortPcm:
		return b.Pcm
	case PortAnalogue:
		return b.Analogue
	case PortSpdif:
		return b.Spdif
	case PortAdat, PortAdat2:
		return b.Adat
	case PortMix:
		return b.Mix
	case PortTalkback:
		return b.Talkback
	default:
		return 0
	}
}

// ConfigItem names one field of the device's configuration-item table:
// a fixed {offset, size, activation code} triplet shared by every model
// this driver supports.
type ConfigItem int

const (
	ConfigDimMute ConfigItem = iota
	ConfigLineOutVolume
	ConfigMuteSwitch
	ConfigSwHwSwitch
	ConfigLevelSwitch
	ConfigPadSwitch

	configItemCount
)

// configItemDesc is one entry of the configuration-item table.
type configItemDesc struct {
	Offset   uint32
	Size     uint32
	Activate uint32
}

// configItems is the device's configuration-item table. It is the same
// across every supported model; only the per-model index range (driven
// by Model.LineOutCount / LevelInputCount / PadInputCount) differs.
var configItems = [configItemCount]configItemDesc{
	ConfigDimMute:       {Offset: 0x31, Size: 1, Activate: 2},
	ConfigLineOutVolume: {Offset: 0x34, Size: 2, Activate: 1},
	ConfigMuteSwitch:    {Offset: 0x5c, Size: 1, Activate: 1},
	ConfigSwHwSwitch:    {Offset: 0x66, Size: 1, Activate: 3},
	ConfigLevelSwitch:   {Offset: 0x7c, Size: 1, Activate: 7},
	ConfigPadSwitch:     {Offset: 0x84, Size: 1, Activate: 8},
}

// ConfigItem returns the {offset, size, activation code} triplet for
// item, and whether this model actually exposes it.
func (m *Model) ConfigItem(item ConfigItem) (offset, size, activate uint32, ok bool) {
	if item == ConfigPadSwitch && m.PadInputCount == 0 {
		return 0, 0, 0, false
	}
	if item == ConfigLevelSwitch && m.LevelInputCount == 0 {
		return 0, 0, 0, false
	}
	if item == ConfigDimMute && !m.HasTalkback {
		// Dim/Mute buttons are only present on the 18i20 family in the
		// reference hardware; the spec leaves this model-dependent.
		return 0, 0, 0, false
	}
	d := configItems[item]
	return d.Offset, d.Size, d.Activate, true
}

// Model is a static, per-product descriptor: everything the driver
// needs to talk to one specific Scarlett Gen 2/3 product is data here,
// never a type switch elsewhere in the package.
type Model struct {
	Name             string
	USBVendorID      uint16
	USBProductID     uint16
	HasHWVolume      bool // device reports a master "hardware" volume knob
	HasTalkback      bool // 18i20 family: dim/mute buttons, talkback mixer slot
	HasMSDMode       bool // mass-storage-device boot mode toggle
	LineOutCount     int  // number of analogue outputs with vol/mute/sw_hw controls
	LevelInputCount  int  // inputs with a line/inst switch
	PadInputCount    int  // inputs with a pad switch
	AirInputCount    int  // inputs with an "Air" switch (Gen3 only)
	Phantom48VCount  int  // inputs with 48V phantom power
	LineOutDescrs    []string

	// portIn/portOut[t] is the number of ports of type t in that
	// direction (§3.1: "for each (type, direction) pair a model
	// declares a count"), constant across sample-rate bands.
	portIn  [portTypeCount]int
	portOut [portTypeCount]int

	// muxSize[b] is the declared total slot count of the SET_MUX table
	// for band b (16..77 across the registered models); muxBand[b] is
	// the active-slot breakdown in muxPortOrder used to reconstruct
	// that table.
	muxSize [sampleRateBands]int
	muxBand [sampleRateBands]bandCounts
}

// PortCount returns the number of ports of type t in direction dir.
func (m *Model) PortCount(t PortType, dir direction) int {
	if t == PortAdat2 {
		t = PortAdat
	}
	if dir == dirIn {
		return m.portIn[t]
	}
	return m.portOut[t]
}

// MuxSize returns the declared SET_MUX payload slot count for band b.
func (m *Model) MuxSize(band int) int {
	return m.muxSize[band]
}

// PortID returns the 16-bit hardware id of the n-th (0-based) port of
// type t.
func (m *Model) PortID(t PortType, n int) uint16 {
	return portIDBase[t] + uint16(n)
}

// FlatOffset returns the flat-index offset of the first port of type t
// in direction dir, i.e. the sum of counts of all port types that
// precede t in declaredPortOrder. The driver only needs a stable total
// ordering, so both directions use that same order (§3.1).
func (m *Model) FlatOffset(t PortType, dir direction) int {
	offset := 0
	for _, pt := range declaredPortOrder {
		if pt == t {
			return offset
		}
		offset += m.PortCount(pt, dir)
	}
	return offset
}

// declaredPortOrder is the order flat indices are assigned in; it need
// not match muxPortOrder (which governs wire emission only).
var declaredPortOrder = [...]PortType{
	PortPcm, PortAnalogue, PortSpdif, PortAdat, PortMix, PortInternalMic, PortTalkback,
}

// registry maps a USB VID:PID pair to its Model.
var registry = map[[2]uint16]*Model{}

func register(m *Model) {
	key := [2]uint16{m.USBVendorID, m.USBProductID}
	if _, dup := registry[key]; dup {
		panic(fmt.Sprintf("scarlett: duplicate model registration for %04x:%04x", m.USBVendorID, m.USBProductID))
	}
	if m.portOut[PortAdat2] != 0 {
		// Open Question (a): ADAT2 is a model-local alias for ADAT and
		// must never be independently populated.
		panic(fmt.Sprintf("scarlett: model %s declares Adat2 output slots; Adat2 is an alias of Adat", m.Name))
	}
	registry[key] = m
}

// LookupModel returns the Model registered for vid:pid, or nil if the
// device is not one of the supported Scarlett Gen 2/3 products.
func LookupModel(vid, pid uint16) *Model {
	return registry[[2]uint16{vid, pid}]
}

// Models returns every registered Model, for enumeration/discovery.
func Models() []*Model {
	out := make([]*Model, 0, len(registry))
	for _, m := range registry {
		out = append(out, m)
	}
	return out
}
