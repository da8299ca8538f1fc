// Package animated turns animator transitions into eased progress values.
//
// A Progress follows one node: entering tweens its value towards 1 over the
// node's enter duration, exiting tweens it back to 0 over the exit duration.
// The host advances it with Update(dt) from its frame loop, the same loop that
// advances a frame-driven clock.
package animated

import (
	"github.com/aretw0/animator"
	"github.com/aretw0/animator/pkg/domain"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Progress is the eased visibility of a node, from 0 (exited) to 1 (entered).
// It is not safe for concurrent use.
type Progress struct {
	enter ease.TweenFunc
	exit  ease.TweenFunc

	tween       *gween.Tween
	value       float32
	unsubscribe func()
}

// Option configures a Progress.
type Option func(*Progress)

// WithEasing sets the easing for both directions.
func WithEasing(fn ease.TweenFunc) Option {
	return func(p *Progress) {
		if fn != nil {
			p.enter = fn
			p.exit = fn
		}
	}
}

// WithExitEasing overrides the easing used while exiting.
func WithExitEasing(fn ease.TweenFunc) Option {
	return func(p *Progress) {
		if fn != nil {
			p.exit = fn
		}
	}
}

// Track subscribes a new Progress to node, starting from the node's current state.
func Track(node *animator.Node, opts ...Option) *Progress {
	def := easings[DefaultEasing]
	p := &Progress{enter: def, exit: def}
	for _, opt := range opts {
		opt(p)
	}

	if node.State() == domain.StateEntered || node.State() == domain.StateExiting {
		p.value = 1
	}
	p.follow(node)
	p.unsubscribe = node.Subscribe(p.follow)
	return p
}

func (p *Progress) follow(node *animator.Node) {
	s := node.Settings()
	switch node.State() {
	case domain.StateEntering:
		p.start(1, s.Duration.Enter, p.enter)
	case domain.StateExiting:
		p.start(0, s.Duration.Exit, p.exit)
	case domain.StateEntered:
		p.snap(1)
	case domain.StateExited:
		p.snap(0)
	}
}

func (p *Progress) start(to float32, seconds float64, fn ease.TweenFunc) {
	if seconds <= 0 || p.value == to {
		p.snap(to)
		return
	}
	p.tween = gween.New(p.value, to, float32(seconds), fn)
}

func (p *Progress) snap(v float32) {
	p.tween = nil
	p.value = v
}

// Update advances the running tween by dt seconds and reports whether the
// value is at rest.
func (p *Progress) Update(dt float32) bool {
	if p.tween == nil {
		return true
	}
	v, done := p.tween.Update(dt)
	p.value = v
	if done {
		p.tween = nil
	}
	return done
}

// Value returns the current progress.
func (p *Progress) Value() float64 { return float64(p.value) }

// Running reports whether a tween is in flight.
func (p *Progress) Running() bool { return p.tween != nil }

// Close stops following the node.
func (p *Progress) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
	p.tween = nil
}
