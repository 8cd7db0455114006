// internal/poller/runner.go
package poller

import (
	"context"
	"time"
)

// Run drives the poll loop until ctx is cancelled. One immediate cycle,
// then strictly sequential ticks; no overlap, no retries inside a tick.
// The transport is closed on exit, best effort.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.cfg.Interval)
	defer ticker.Stop()
	defer func() {
		if err := p.Close(); err != nil {
			p.log.Warnf("transport close: %v", err)
		}
	}()

	p.Tick(time.Now())

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			p.Tick(now)
		}
	}
}
