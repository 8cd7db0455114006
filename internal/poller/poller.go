// internal/poller/poller.go
package poller

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tamzrod/deye-bridge/internal/cache"
	"github.com/tamzrod/deye-bridge/internal/monitor"
	"github.com/tamzrod/deye-bridge/internal/regmap"
)

// Publisher delivers committed snapshots downstream. Delivery failures are
// logged and never counted against the breaker.
type Publisher interface {
	Publish(snap cache.Snapshot) error
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Interval      time.Duration
	RoundDecimals int
	FailLimit     int
	OpenFor       time.Duration
}

// Poller drives the read-decode-commit cycle. It exclusively owns the
// transport client handle and all breaker writes.
type Poller struct {
	cfg     Config
	specs   []regmap.Spec
	holding []Range
	input   []Range

	client  Client
	factory func() (Client, error)

	store   *cache.Store
	breaker *Breaker
	publish Publisher
	log     *logrus.Logger
}

// New creates a poller with immutable config and precomputed read plans.
func New(cfg Config, specs []regmap.Spec, factory func() (Client, error), store *cache.Store, log *logrus.Logger) (*Poller, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if cfg.FailLimit < 1 {
		return nil, errors.New("poller: breaker fail limit must be >= 1")
	}
	if len(specs) == 0 {
		return nil, errors.New("poller: at least one register spec required")
	}
	if factory == nil {
		return nil, errors.New("poller: client factory required")
	}
	if store == nil {
		return nil, errors.New("poller: cache store required")
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	var holding, input []regmap.Spec
	for _, s := range specs {
		if s.Function == regmap.FunctionInput {
			input = append(input, s)
		} else {
			holding = append(holding, s)
		}
	}

	return &Poller{
		cfg:     cfg,
		specs:   specs,
		holding: planRanges(holding),
		input:   planRanges(input),
		factory: factory,
		store:   store,
		breaker: NewBreaker(cfg.FailLimit, cfg.OpenFor),
		log:     log,
	}, nil
}

// SetPublisher attaches an optional downstream publisher.
func (p *Poller) SetPublisher(pub Publisher) { p.publish = pub }

// Breaker exposes breaker state for diagnostics.
func (p *Poller) Breaker() *Breaker { return p.breaker }

// Tick runs at most one cycle. A breaker-open tick is a no-op, not a
// failure: the stale cache keeps being served.
func (p *Poller) Tick(now time.Time) {
	if !p.breaker.Allow(now) {
		p.log.Debug("breaker open, serving stale cache")
		return
	}

	monitor.CyclesTotal.Inc()
	started := time.Now()
	snap, err := p.cycle()
	monitor.CycleDuration.Observe(time.Since(started).Seconds())

	if err != nil {
		monitor.CycleFailures.Inc()
		p.log.Warnf("poll cycle failed: %v", err)
		p.discardClient()
		if p.breaker.Failure(now) {
			monitor.BreakerOpens.Inc()
			failures, _ := p.breaker.State()
			p.log.Errorf("circuit breaker open for %s after %d failures, serving stale cache", p.cfg.OpenFor, failures)
		}
		return
	}

	p.store.Commit(snap, time.Now())
	p.breaker.Success()
	p.log.Debug("cache refreshed")

	if p.publish != nil {
		if err := p.publish.Publish(snap); err != nil {
			p.log.Warnf("snapshot publish failed: %v", err)
		}
	}
}

// cycle performs the read and decode work of one tick.
// All-or-nothing: any connect, read or lookup error aborts with no result.
func (p *Poller) cycle() (cache.Snapshot, error) {
	client, err := p.ensureClient()
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	words := map[regmap.Function]map[uint16]uint16{
		regmap.FunctionHolding: {},
		regmap.FunctionInput:   {},
	}

	for _, r := range p.holding {
		if err := readInto(words[regmap.FunctionHolding], client.ReadHoldingRegisters, r); err != nil {
			return nil, err
		}
	}
	for _, r := range p.input {
		if err := readInto(words[regmap.FunctionInput], client.ReadInputRegisters, r); err != nil {
			return nil, err
		}
	}

	snap := cache.Snapshot{}
	for _, spec := range p.specs {
		bank := words[spec.Function]
		w := make([]uint16, spec.Count)
		for i := 0; i < spec.Count; i++ {
			v, ok := bank[spec.Address+uint16(i)]
			if !ok {
				// planning bug; contained like any other cycle failure
				return nil, fmt.Errorf("decode %s: address %d missing from read plan", spec.ID, spec.Address+uint16(i))
			}
			w[i] = v
		}

		raw := combine(w, spec.DType, spec.ByteOrder)
		val := roundTo(scale(raw, spec.Multiply, spec.Offset), p.cfg.RoundDecimals)

		m := snap[spec.Measurement]
		if m == nil {
			m = map[string]float64{}
			snap[spec.Measurement] = m
		}
		m[spec.Field] = val
	}
	return snap, nil
}

func readInto(dst map[uint16]uint16, read func(addr, qty uint16) ([]uint16, error), r Range) error {
	regs, err := read(r.Start, r.Quantity)
	if err != nil {
		return fmt.Errorf("read %d+%d: %w", r.Start, r.Quantity, err)
	}
	if len(regs) < int(r.Quantity) {
		return fmt.Errorf("read %d+%d: short response: got %d words", r.Start, r.Quantity, len(regs))
	}
	for i, w := range regs {
		dst[r.Start+uint16(i)] = w
	}
	return nil
}

// ensureClient connects lazily on first use. A connect failure shares the
// read-failure path and counts toward the breaker.
func (p *Poller) ensureClient() (Client, error) {
	if p.client != nil {
		return p.client, nil
	}
	c, err := p.factory()
	if err != nil {
		return nil, err
	}
	p.client = c
	return c, nil
}

// discardClient drops a dead transport so the next tick reconnects through
// the factory.
func (p *Poller) discardClient() {
	if p.client == nil {
		return
	}
	_ = p.client.Close()
	p.client = nil
}

// Close releases the transport, best effort.
func (p *Poller) Close() error {
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}
