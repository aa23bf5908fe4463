//go:build !tinygo

package wifi

// hostLink stands in for the radio when running on the host: association
// always succeeds, the host OS already owns the network.
type hostLink struct{}

func (hostLink) Connect(ssid, pass string) error { return nil }

// NewLink returns the platform link implementation.
func NewLink() Link { return hostLink{} }
