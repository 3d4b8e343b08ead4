// Package telemetry fans out simulation metrics to one or more sinks: a
// per-tick, sink-agnostic publisher replacing an end-of-run print loop with
// a continuous register/evaluate/fan-out cycle.
package telemetry

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Provider evaluates a single named metric. A non-nil error marks the
// metric absent for this tick rather than halting the publish (spec.md §7
// "TelemetrySinkFailure ... isolated per sink and per tick").
type Provider func() (any, error)

// Sink receives one publish call per tick, grouped by area.
type Sink interface {
	Publish(area string, metrics map[string]any)
}

type registration struct {
	name     string
	area     string
	provider Provider
}

// Publisher evaluates registered providers once per tick and fans the
// results out to every registered sink, grouped by area.
type Publisher struct {
	registrations []registration
	sinks         []Sink
	log           *logrus.Logger
}

// NewPublisher creates a Publisher that logs provider/sink failures to log.
func NewPublisher(log *logrus.Logger) *Publisher {
	return &Publisher{log: log}
}

// Register adds a named metric provider under area. Providers are evaluated
// in registration order on every Tick call.
func (p *Publisher) Register(name string, provider Provider, area string) {
	p.registrations = append(p.registrations, registration{name: name, area: area, provider: provider})
}

// AddSink registers a sink to receive every future Tick's output.
func (p *Publisher) AddSink(sink Sink) {
	p.sinks = append(p.sinks, sink)
}

// Tick evaluates every registered provider, grouping results by area, and
// fans each area's metrics out to every sink. A provider error or panic
// marks that metric absent (omitted) rather than aborting the tick. A sink
// that panics is isolated to that sink and logged; it does not affect other
// sinks or the simulation (spec.md §7).
func (p *Publisher) Tick() {
	byArea := make(map[string]map[string]any)
	for _, reg := range p.registrations {
		value, err := p.evaluate(reg)
		if err != nil {
			if p.log != nil {
				p.log.WithFields(logrus.Fields{"metric": reg.name, "area": reg.area}).
					WithError(err).Warn("telemetry provider failed, omitting metric")
			}
			continue
		}
		group, ok := byArea[reg.area]
		if !ok {
			group = make(map[string]any)
			byArea[reg.area] = group
		}
		group[reg.name] = value
	}

	for area, metrics := range byArea {
		for _, sink := range p.sinks {
			p.publishToSink(sink, area, metrics)
		}
	}
}

func (p *Publisher) evaluate(reg registration) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("provider panicked: %v", r)
		}
	}()
	return reg.provider()
}

func (p *Publisher) publishToSink(sink Sink, area string, metrics map[string]any) {
	defer func() {
		if r := recover(); r != nil && p.log != nil {
			p.log.WithField("area", area).Errorf("telemetry sink panicked: %v", r)
		}
	}()
	sink.Publish(area, metrics)
}
