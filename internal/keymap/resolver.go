package keymap

import "time"

// Resolver turns a stream of keys into command lines. It is not safe for
// concurrent use; the event loop owns it.
type Resolver struct {
	bindings []Binding
	timeout  time.Duration
	now      func() time.Time
	pending  *pendingChord
}

type pendingChord struct {
	key string
	at  time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTimeout overrides the chord timeout.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) {
		if d > 0 {
			r.timeout = d
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// NewResolver creates a resolver over bindings, consulted in order.
func NewResolver(bindings []Binding, opts ...Option) *Resolver {
	r := &Resolver{
		bindings: bindings,
		timeout:  DefaultTimeout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve consumes one key. It returns the command line to run, or false when
// the key produced nothing this tick (unbound, or the first key of a chord).
//
// Chord expiry is checked only here, when the next key arrives. A first key
// whose partner never comes stays pending until more input.
func (r *Resolver) Resolve(key string) (string, bool) {
	if r.pending != nil {
		p := *r.pending
		r.pending = nil
		if r.now().Sub(p.at) <= r.timeout {
			for _, b := range r.bindings {
				if b.IsChord() && b.Key == p.key && b.Then == key {
					return b.Command, true
				}
			}
		}
	}

	for _, b := range r.bindings {
		if !b.IsChord() && b.Key == key {
			return b.Command, true
		}
	}

	for _, b := range r.bindings {
		if b.IsChord() && b.Key == key {
			r.pending = &pendingChord{key: key, at: r.now()}
			return "", false
		}
	}
	return "", false
}

// Pending returns the first key of a chord waiting for its second key.
func (r *Resolver) Pending() (string, bool) {
	if r.pending == nil {
		return "", false
	}
	return r.pending.key, true
}

// Reset drops any pending chord.
func (r *Resolver) Reset() {
	r.pending = nil
}

// Bindings returns the keymap in priority order.
func (r *Resolver) Bindings() []Binding {
	return r.bindings
}
