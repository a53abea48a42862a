package main

import (
	"encoding/json"
	"log"
	"os"

	"github.com/spf13/pflag"

	"github.com/scarlett2/driver/scarlett"
	"github.com/scarlett2/driver/usbhost"
)

type report struct {
	Model   string         `json:"model"`
	Outputs []outputReport `json:"outputs"`
}

type outputReport struct {
	Name string `json:"name"`
	Vol  int    `json:"volume"`
}

func main() {
	list := pflag.BoolP("list", "l", false, "list supported models and exit")
	verbose := pflag.BoolP("verbose", "v", false, "log USB transfer errors")
	pflag.Parse()

	if *list {
		for _, m := range scarlett.Models() {
			log.Printf("%04x:%04x  %s", m.USBVendorID, m.USBProductID, m.Name)
		}
		return
	}

	devs, err := usbhost.FindDevices(func(d *usbhost.Device) bool {
		dd := d.GetDeviceDescriptor()
		return scarlett.LookupModel(dd.IDVendor, dd.IDProduct) != nil
	})
	if err != nil {
		log.Fatalf("scarlettctl: enumerate: %v", err)
	}
	if len(devs) == 0 {
		log.Fatal("scarlettctl: no supported Scarlett interface found")
	}

	dev := devs[0]
	dd := dev.GetDeviceDescriptor()
	model := scarlett.LookupModel(dd.IDVendor, dd.IDProduct)

	if err := dev.Open(); err != nil {
		log.Fatalf("scarlettctl: open %04x:%04x: %v", dd.IDVendor, dd.IDProduct, err)
	}

	d, err := scarlett.Open(dev, model)
	if err != nil {
		log.Fatalf("scarlettctl: claim interface: %v", err)
	}
	if err := d.Attach(); err != nil {
		log.Fatalf("scarlettctl: attach: %v", err)
	}
	defer d.Close()

	rep := report{Model: model.Name}
	for i, name := range model.LineOutDescrs {
		vol, err := d.Volume(i)
		if err != nil {
			if *verbose {
				log.Printf("scarlettctl: volume[%d]: %v", i, err)
			}
			continue
		}
		rep.Outputs = append(rep.Outputs, outputReport{Name: name, Vol: vol})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		log.Fatalf("scarlettctl: encode: %v", err)
	}
}
