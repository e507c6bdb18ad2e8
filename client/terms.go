package client

import (
	"sync"

	"github.com/KAsare1/Kodefx-channels/pricing"
)

// TermsGate blocks navigation away from a terms screen until the terms are
// accepted. Once navigated, the gate is spent and ignores further input.
type TermsGate struct {
	mu        sync.Mutex
	channel   string
	accepted  bool
	navigated bool
}

func NewTermsGate(channel string) *TermsGate {
	return &TermsGate{channel: channel}
}

func (g *TermsGate) Channel() string {
	return g.channel
}

// Toggle flips acceptance.
func (g *TermsGate) Toggle() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.navigated {
		return
	}
	g.accepted = !g.accepted
}

func (g *TermsGate) Accepted() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.accepted
}

// ContinueDisabled reports whether the continue control must be disabled.
func (g *TermsGate) ContinueDisabled() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return !g.accepted || g.navigated
}

// Navigated reports whether Continue has already navigated.
func (g *TermsGate) Navigated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.navigated
}

// Continue calls navigate only when the terms are accepted and the gate has
// not navigated yet. It reports whether navigate was called.
func (g *TermsGate) Continue(navigate func()) bool {
	g.mu.Lock()
	if !g.accepted || g.navigated {
		g.mu.Unlock()
		return false
	}
	g.navigated = true
	g.mu.Unlock()

	if navigate != nil {
		navigate()
	}
	return true
}

// TermsGates holds one independent gate per channel terms screen.
type TermsGates struct {
	gates map[string]*TermsGate
}

func NewTermsGates() *TermsGates {
	channels := pricing.Channels()
	gates := make(map[string]*TermsGate, len(channels))
	for _, ch := range channels {
		gates[ch.Type] = NewTermsGate(ch.Type)
	}
	return &TermsGates{gates: gates}
}

// Gate returns the gate for channel.
func (t *TermsGates) Gate(channel string) (*TermsGate, bool) {
	g, ok := t.gates[channel]
	return g, ok
}
