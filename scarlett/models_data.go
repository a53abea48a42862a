package scarlett

// Port-count and mux-table data below is transcribed from the
// scarlett2_device_info tables of the upstream ALSA mixer driver for
// this device family (seven of the nine declared models); the two Gen3
// models that driver snapshot does not describe (Solo Gen3, 2i2 Gen3)
// have port counts and mux layouts approximated consistently with their
// sibling Gen3 models, per Non-goal "supporting models outside the
// declared table" and Open Question (b).

func newModel(name string, vid, pid uint16) *Model {
	return &Model{
		Name:         name,
		USBVendorID:  vid,
		USBProductID: pid,
	}
}

// setPorts sets the (in, out) counts of port type t and returns m for
// chaining; types never passed to it stay at zero.
func (m *Model) setPorts(t PortType, in, out int) *Model {
	m.portIn[t] = in
	m.portOut[t] = out
	return m
}

// setMux fills muxSize and muxBand for band b and returns m for
// chaining.
func (m *Model) setMux(band int, bc bandCounts, noneCount int) *Model {
	m.muxBand[band] = bc
	total := bc.Pcm + bc.Analogue + bc.Spdif + bc.Adat + bc.Mix + bc.Talkback + noneCount
	m.muxSize[band] = total
	return m
}

func init() {
	// 6i6 Gen2 — 1235:8203
	m := newModel("Scarlett 6i6 Gen2", 0x1235, 0x8203)
	m.LevelInputCount, m.PadInputCount = 2, 2
	m.LineOutCount = 4
	m.LineOutDescrs = []string{"Headphones 1 L", "Headphones 1 R", "Headphones 2 L", "Headphones 2 R"}
	m.setPorts(PortNone, 1, 0).setPorts(PortAnalogue, 4, 4).setPorts(PortSpdif, 2, 2).
		setPorts(PortMix, 10, 18).setPorts(PortPcm, 6, 6)
	same := bandCounts{Pcm: 6, Analogue: 4, Spdif: 2, Mix: 18}
	m.setMux(0, same, 8).setMux(1, same, 8).setMux(2, same, 8)
	register(m)

	// 18i8 Gen2 — 1235:8204
	m = newModel("Scarlett 18i8 Gen2", 0x1235, 0x8204)
	m.LevelInputCount, m.PadInputCount = 2, 4
	m.LineOutCount = 6
	m.LineOutDescrs = []string{
		"Monitor L", "Monitor R", "Headphones 1 L", "Headphones 1 R", "Headphones 2 L", "Headphones 2 R",
	}
	m.setPorts(PortNone, 1, 0).setPorts(PortAnalogue, 8, 6).setPorts(PortSpdif, 2, 2).
		setPorts(PortAdat, 8, 0).setPorts(PortMix, 10, 18).setPorts(PortPcm, 8, 18)
	m.setMux(0, bandCounts{Pcm: 18, Analogue: 6, Spdif: 2, Mix: 18}, 8)
	m.setMux(1, bandCounts{Pcm: 14, Analogue: 6, Spdif: 2, Mix: 18}, 8)
	m.setMux(2, bandCounts{Pcm: 10, Analogue: 6, Spdif: 2, Mix: 18}, 4)
	register(m)

	// 18i20 Gen2 — 1235:8201
	m = newModel("Scarlett 18i20 Gen2", 0x1235, 0x8201)
	m.HasHWVolume = true
	m.HasTalkback = true
	m.LineOutCount = 10
	m.LineOutDescrs = []string{
		"Monitor L", "Monitor R", "", "", "", "", "Headphones 1 L", "Headphones 1 R", "Headphones 2 L", "Headphones 2 R",
	}
	m.setPorts(PortNone, 1, 0).setPorts(PortAnalogue, 8, 10).setPorts(PortSpdif, 2, 2).
		setPorts(PortAdat, 8, 8).setPorts(PortMix, 10, 18).setPorts(PortPcm, 20, 18)
	m.setMux(0, bandCounts{Pcm: 18, Analogue: 10, Spdif: 2, Adat: 8, Mix: 18}, 8)
	m.setMux(1, bandCounts{Pcm: 14, Analogue: 10, Spdif: 2, Adat: 4, Mix: 18}, 8)
	m.setMux(2, bandCounts{Pcm: 10, Analogue: 10, Spdif: 2, Mix: 18}, 6)
	register(m)

	// 4i4 Gen3 — 1235:8212
	m = newModel("Scarlett 4i4 Gen3", 0x1235, 0x8212)
	m.LevelInputCount, m.PadInputCount, m.AirInputCount = 2, 2, 2
	m.HasMSDMode = true
	m.LineOutCount = 4
	m.LineOutDescrs = []string{"Monitor L", "Monitor R", "Headphones L", "Headphones R"}
	m.setPorts(PortNone, 1, 0).setPorts(PortAnalogue, 4, 4).setPorts(PortMix, 6, 8).setPorts(PortPcm, 4, 6)
	same = bandCounts{Pcm: 6, Analogue: 4, Mix: 8}
	m.setMux(0, same, 16).setMux(1, same, 16).setMux(2, same, 16)
	register(m)

	// 8i6 Gen3 — 1235:8213
	m = newModel("Scarlett 8i6 Gen3", 0x1235, 0x8213)
	m.LevelInputCount, m.PadInputCount, m.AirInputCount = 2, 2, 2
	m.HasMSDMode = true
	m.LineOutCount = 4
	m.LineOutDescrs = []string{"Headphones 1 L", "Headphones 1 R", "Headphones 2 L", "Headphones 2 R"}
	m.setPorts(PortNone, 1, 0).setPorts(PortAnalogue, 6, 4).setPorts(PortSpdif, 2, 2).
		setPorts(PortMix, 8, 8).setPorts(PortPcm, 6, 10)
	same = bandCounts{Pcm: 10, Analogue: 4, Spdif: 2, Mix: 8}
	m.setMux(0, same, 18).setMux(1, same, 18).setMux(2, same, 18)
	register(m)

	// 18i8 Gen3 — 1235:8214
	m = newModel("Scarlett 18i8 Gen3", 0x1235, 0x8214)
	m.HasHWVolume = true
	m.LevelInputCount, m.PadInputCount, m.AirInputCount = 2, 2, 2
	m.HasMSDMode = true
	m.LineOutCount = 8
	m.LineOutDescrs = []string{
		"Monitor L", "Monitor R", "Headphones 1 L", "Headphones 1 R",
		"Headphones 2 L", "Headphones 2 R", "Alt Monitor L", "Alt Monitor R",
	}
	m.setPorts(PortNone, 1, 0).setPorts(PortAnalogue, 8, 8).setPorts(PortSpdif, 2, 2).
		setPorts(PortAdat, 8, 0).setPorts(PortMix, 10, 20).setPorts(PortPcm, 8, 20)
	m.setMux(0, bandCounts{Pcm: 20, Analogue: 8, Spdif: 2, Mix: 20}, 10)
	m.setMux(1, bandCounts{Pcm: 16, Analogue: 8, Spdif: 2, Mix: 20}, 10)
	m.setMux(2, bandCounts{Pcm: 10, Analogue: 8, Spdif: 2, Mix: 20}, 10)
	register(m)

	// 18i20 Gen3 — 1235:8215
	m = newModel("Scarlett 18i20 Gen3", 0x1235, 0x8215)
	m.HasHWVolume = true
	m.HasTalkback = true
	m.LevelInputCount, m.PadInputCount = 2, 8
	m.LineOutCount = 10
	m.LineOutDescrs = []string{
		"Monitor 1 L", "Monitor 1 R", "Monitor 2 L", "Monitor 2 R", "", "",
		"Headphones 1 L", "Headphones 1 R", "Headphones 2 L", "Headphones 2 R",
	}
	m.setPorts(PortNone, 1, 0).setPorts(PortAnalogue, 9, 10).setPorts(PortSpdif, 2, 2).
		setPorts(PortAdat, 8, 8).setPorts(PortMix, 12, 25).setPorts(PortPcm, 20, 20)
	m.setMux(0, bandCounts{Pcm: 20, Analogue: 10, Spdif: 2, Adat: 8, Mix: 25}, 12)
	m.setMux(1, bandCounts{Pcm: 18, Analogue: 10, Spdif: 2, Adat: 8, Mix: 25}, 10)
	m.setMux(2, bandCounts{Pcm: 10, Analogue: 10, Spdif: 2}, 24)
	register(m)

	// Solo Gen3 — 1235:8211 (approximated: absent from the retrieved
	// driver snapshot; smallest interface in the family, one combo
	// input, no internal mixer routing beyond a minimal passthrough).
	m = newModel("Scarlett Solo Gen3", 0x1235, 0x8211)
	m.LevelInputCount, m.AirInputCount = 1, 1
	m.LineOutCount = 2
	m.LineOutDescrs = []string{"Monitor L", "Monitor R"}
	m.setPorts(PortNone, 1, 0).setPorts(PortAnalogue, 2, 2).setPorts(PortMix, 2, 4).setPorts(PortPcm, 2, 2)
	same = bandCounts{Pcm: 2, Analogue: 2, Mix: 4}
	m.setMux(0, same, 8).setMux(1, same, 8).setMux(2, same, 8)
	register(m)

	// 2i2 Gen3 — 1235:8210 (approximated: absent from the retrieved
	// driver snapshot; two combo inputs, small internal mixer).
	m = newModel("Scarlett 2i2 Gen3", 0x1235, 0x8210)
	m.LevelInputCount, m.AirInputCount = 2, 2
	m.LineOutCount = 2
	m.LineOutDescrs = []string{"Monitor L", "Monitor R"}
	m.setPorts(PortNone, 1, 0).setPorts(PortAnalogue, 2, 2).setPorts(PortMix, 4, 4).setPorts(PortPcm, 2, 4)
	same = bandCounts{Pcm: 4, Analogue: 2, Mix: 4}
	m.setMux(0, same, 6).setMux(1, same, 6).setMux(2, same, 6)
	register(m)
}
