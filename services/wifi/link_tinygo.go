//go:build tinygo

package wifi

import (
	"tinygo.org/x/drivers/netlink"
	"tinygo.org/x/drivers/netlink/probe"
)

// deviceLink drives the board's radio through the probed netlink.
type deviceLink struct {
	link netlink.Netlinker
}

func (d *deviceLink) Connect(ssid, pass string) error {
	return d.link.NetConnect(&netlink.ConnectParams{
		Ssid:       ssid,
		Passphrase: pass,
	})
}

// NewLink probes the board's network device and wraps it. The probe also
// registers the netdev so the std net package routes through the radio.
func NewLink() Link {
	link, _ := probe.Probe()
	return &deviceLink{link: link}
}
