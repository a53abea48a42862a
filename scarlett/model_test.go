package scarlett

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupModel(t *testing.T) {
	m := LookupModel(0x1235, 0x8215)
	require.NotNil(t, m)
	assert.Equal(t, "Scarlett 18i20 Gen3", m.Name)
	assert.True(t, m.HasHWVolume)
	assert.True(t, m.HasTalkback)

	assert.Nil(t, LookupModel(0xdead, 0xbeef))
}

func TestModelsEnumeratesAllNine(t *testing.T) {
	assert.Len(t, Models(), 9)
}

// S1: 18i20 Gen3 mux size matches the known per-band totals of 77/73/46.
func TestMuxSizeScenarioS1(t *testing.T) {
	m := LookupModel(0x1235, 0x8215)
	require.NotNil(t, m)
	assert.Equal(t, 77, m.MuxSize(0))
	assert.Equal(t, 73, m.MuxSize(1))
	assert.Equal(t, 46, m.MuxSize(2))
}

func TestConfigItemAvailability(t *testing.T) {
	solo := LookupModel(0x1235, 0x8211)
	require.NotNil(t, solo)
	_, _, _, ok := solo.ConfigItem(ConfigPadSwitch)
	assert.False(t, ok, "Solo Gen3 has no pad-switch inputs")

	_, _, _, ok = solo.ConfigItem(ConfigDimMute)
	assert.False(t, ok, "non-talkback model has no dim/mute buttons")

	eighteen := LookupModel(0x1235, 0x8215)
	off, size, activate, ok := eighteen.ConfigItem(ConfigDimMute)
	require.True(t, ok)
	assert.Equal(t, uint32(0x31), off)
	assert.Equal(t, uint32(1), size)
	assert.Equal(t, uint32(2), activate)
}

func TestPortCountAdat2AliasesAdat(t *testing.T) {
	m := LookupModel(0x1235, 0x8215)
	require.NotNil(t, m)
	assert.Equal(t, m.PortCount(PortAdat, dirOut), m.PortCount(PortAdat2, dirOut))
}

func TestRegisterPanicsOnDuplicate(t *testing.T) {
	dup := newModel("dup", 0x1235, 0x8215) // already registered by init()
	assert.Panics(t, func() { register(dup) })
}
