//go:build !tinygo

package clocksync

import (
	"context"
	"time"

	"github.com/beevik/ntp"

	"envclock-go/errcode"
)

// ntpSource queries the configured pool server once per call.
type ntpSource struct {
	server string
}

// NewSource returns the platform time source.
func NewSource(server string) Source {
	return &ntpSource{server: server}
}

func (n *ntpSource) Offset(ctx context.Context) (time.Duration, error) {
	opt := ntp.QueryOptions{}
	if deadline, ok := ctx.Deadline(); ok {
		opt.Timeout = time.Until(deadline)
	}
	resp, err := ntp.QueryWithOptions(n.server, opt)
	if err != nil {
		return 0, errcode.Wrap(errcode.SyncTimeout, "ntp.query", err)
	}
	if err := resp.Validate(); err != nil {
		return 0, errcode.Wrap(errcode.SyncTimeout, "ntp.validate", err)
	}
	return resp.ClockOffset, nil
}
