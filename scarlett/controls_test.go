package scarlett

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeControlHost struct {
	descs []ControlDescriptor
}

func (f *fakeControlHost) Add(d ControlDescriptor) { f.descs = append(f.descs, d) }

func (f *fakeControlHost) find(name string) *ControlDescriptor {
	for i := range f.descs {
		if f.descs[i].Name == name {
			return &f.descs[i]
		}
	}
	return nil
}

func newTestDeviceForControls(t *testing.T) (*Device, *fakeTransport) {
	m := LookupModel(0x1235, 0x8215)
	require.NotNil(t, m)
	ft := newFakeTransport()
	ft.on(opSetData, func(req []byte) ([]byte, uint32) { return nil, 0 })
	ft.on(opDataCmd, func(req []byte) ([]byte, uint32) { return nil, 0 })

	req := newRequestLayer(ft, m)
	d := &Device{
		model:     m,
		req:       req,
		store:     newStateStore(m, req),
		transport: ft,
		state:     Running,
	}
	return d, ft
}

func TestRegisterControlsPopulatesVolumeAndMute(t *testing.T) {
	d, _ := newTestDeviceForControls(t)
	host := &fakeControlHost{}
	d.RegisterControls(host)

	vol := host.find("Master Volume")
	require.NotNil(t, vol)
	assert.Equal(t, ControlVolume, vol.Kind)
	assert.Equal(t, d.model.LineOutCount, vol.Channels)

	mute := host.find("Output Mute")
	require.NotNil(t, mute)
	assert.Equal(t, ControlSwitch, mute.Kind)

	route := host.find("Output Routing")
	require.NotNil(t, route)
	assert.Equal(t, ControlRoute, route.Kind)
	assert.Equal(t, len(d.store.mux.dst), route.Channels)
}

func TestControlDescriptorRouteWritesThrough(t *testing.T) {
	d, ft := newTestDeviceForControls(t)
	ft.on(opSetMux, func(req []byte) ([]byte, uint32) { return nil, 0 })
	host := &fakeControlHost{}
	d.RegisterControls(host)

	route := host.find("Output Routing")
	require.NotNil(t, route)
	require.NoError(t, route.Set(0, 3))
	got, err := route.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 3, got)
}

func TestControlDescriptorSetWritesThrough(t *testing.T) {
	d, _ := newTestDeviceForControls(t)
	host := &fakeControlHost{}
	d.RegisterControls(host)

	vol := host.find("Master Volume")
	require.NotNil(t, vol)
	require.NoError(t, vol.Set(0, 80))
	got, err := vol.Get(0)
	require.NoError(t, err)
	assert.Equal(t, 80, got)
}

func TestRegisterControlsOmitsAbsentSwitches(t *testing.T) {
	solo := LookupModel(0x1235, 0x8211)
	require.NotNil(t, solo)
	ft := newFakeTransport()
	req := newRequestLayer(ft, solo)
	d := &Device{model: solo, req: req, store: newStateStore(solo, req), transport: ft, state: Running}

	host := &fakeControlHost{}
	d.RegisterControls(host)
	assert.Nil(t, host.find("Input Pad"), "Solo Gen3 has no pad-switch inputs")
}

func TestRegisterControlsAddsOneMixRowPerMixerOutput(t *testing.T) {
	d, _ := newTestDeviceForControls(t)
	host := &fakeControlHost{}
	d.RegisterControls(host)

	numMixOut := d.model.PortCount(PortMix, dirIn)
	count := 0
	for _, desc := range host.descs {
		if desc.Kind == ControlVolume && desc.Name != "Master Volume" {
			count++
		}
	}
	assert.Equal(t, numMixOut, count)
}
