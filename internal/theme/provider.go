package theme

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/alexisbeaulieu97/todos/internal/kvstore"
	"github.com/alexisbeaulieu97/todos/internal/logger"
	apperrors "github.com/alexisbeaulieu97/todos/pkg/errors"
)

// PreferenceKey is the storage key holding the JSON-encoded dark-mode flag.
const PreferenceKey = "darkMode"

// State is a consistent snapshot of the provider.
type State struct {
	IsDarkMode bool
	Colors     ColorScheme
}

// Listener is notified after every change of the preference.
type Listener func(State)

type subscription struct {
	id int
	fn Listener
}

// Provider owns the dark-mode preference for the lifetime of the application.
// Create one per process with NewProvider and hand it to every consumer.
type Provider struct {
	store kvstore.Store
	log   *logger.Logger

	mu         sync.RWMutex
	isDarkMode bool
	// changed is set once the user has flipped the preference; a late
	// initial load must not overwrite that choice.
	changed   bool
	seq       uint64
	listeners []subscription
	nextID    int

	// notifyMu serialises delivery; a snapshot older than notifiedSeq is
	// dropped so listeners end on the newest state.
	notifyMu    sync.Mutex
	notifiedSeq uint64

	// writeMu orders persistence so storage converges on the newest value.
	writeMu      sync.Mutex
	attemptedSeq uint64

	initOnce sync.Once
	initErr  error
	ready    chan struct{}
}

// NewProvider returns a provider in light mode. Call Init or Start to load
// the stored preference.
func NewProvider(store kvstore.Store, log *logger.Logger) *Provider {
	return &Provider{
		store: store,
		log:   log.WithField("component", "theme"),
		ready: make(chan struct{}),
	}
}

// Init reads the stored preference once. Later calls return the first
// result without touching storage again.
//
// A missing key keeps light mode. An unreadable or malformed value also keeps
// light mode; the returned *errors.PreferenceError only reports it.
func (p *Provider) Init(ctx context.Context) error {
	p.initOnce.Do(func() {
		defer close(p.ready)
		p.initErr = p.load(ctx)
	})
	return p.initErr
}

// Start runs Init in the background and returns a channel closed once the
// stored preference has been applied. Consumers see light mode until then.
func (p *Provider) Start(ctx context.Context) <-chan struct{} {
	go func() {
		_ = p.Init(ctx)
	}()
	return p.ready
}

// Ready is closed once initialisation has finished, successfully or not.
func (p *Provider) Ready() <-chan struct{} {
	return p.ready
}

func (p *Provider) load(ctx context.Context) error {
	raw, ok, err := p.store.Get(ctx, PreferenceKey)
	if err != nil {
		p.log.Warn(err, "stored theme preference unreadable, using light mode")
		return apperrors.NewPreferenceError(PreferenceKey, "", err)
	}
	if !ok || raw == "" {
		p.log.Debug("no stored theme preference, using light mode")
		return nil
	}

	var dark bool
	if err := json.Unmarshal([]byte(raw), &dark); err != nil {
		p.log.WithField("value", raw).Warn(err, "stored theme preference malformed, using light mode")
		return apperrors.NewPreferenceError(PreferenceKey, raw, err)
	}

	p.mu.Lock()
	if p.changed {
		p.mu.Unlock()
		p.log.Debug("theme changed before stored preference loaded, keeping current value")
		return nil
	}
	prev := p.isDarkMode
	p.isDarkMode = dark
	p.seq++
	seq := p.seq
	state := p.stateLocked()
	listeners := p.listenersLocked()
	p.mu.Unlock()

	p.log.WithField("dark", dark).Debug("theme preference loaded")
	if prev != dark {
		p.notify(seq, listeners, state)
	}
	return nil
}

// IsDarkMode reports the current preference.
func (p *Provider) IsDarkMode() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.isDarkMode
}

// Colors returns the scheme for the current preference.
func (p *Provider) Colors() ColorScheme {
	return SchemeFor(p.IsDarkMode())
}

// State returns the preference and its scheme as one snapshot.
func (p *Provider) State() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.stateLocked()
}

// ToggleDarkMode flips the preference, notifies subscribers and persists the
// new value. The in-memory change stands even when the write fails; the
// returned error lets callers report it.
func (p *Provider) ToggleDarkMode(ctx context.Context) error {
	p.mu.Lock()
	return p.applyLocked(ctx, !p.isDarkMode)
}

// SetDarkMode sets the preference explicitly with the same semantics as
// ToggleDarkMode. Setting the current value still persists it.
func (p *Provider) SetDarkMode(ctx context.Context, dark bool) error {
	p.mu.Lock()
	return p.applyLocked(ctx, dark)
}

// applyLocked must be called with p.mu held; it releases it.
func (p *Provider) applyLocked(ctx context.Context, dark bool) error {
	prev := p.isDarkMode
	p.isDarkMode = dark
	p.changed = true
	p.seq++
	seq := p.seq
	state := p.stateLocked()
	listeners := p.listenersLocked()
	p.mu.Unlock()

	if prev != dark {
		p.notify(seq, listeners, state)
	}
	return p.persist(ctx, seq, dark)
}

func (p *Provider) persist(ctx context.Context, seq uint64, dark bool) error {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	if seq < p.attemptedSeq {
		// A newer value has already been written.
		return nil
	}
	p.attemptedSeq = seq

	encoded, err := json.Marshal(dark)
	if err != nil {
		return err
	}
	if err := p.store.Set(ctx, PreferenceKey, string(encoded)); err != nil {
		p.log.WithField("dark", dark).Error(err, "failed to persist theme preference")
		return err
	}
	p.log.WithField("dark", dark).Debug("theme preference saved")
	return nil
}

// Subscribe registers fn to run after every change, in registration order.
// Deliveries never overlap, and a listener never sees an older state after
// a newer one. fn must not change the preference itself.
// The returned function removes it and is safe to call more than once.
func (p *Provider) Subscribe(fn Listener) (unsubscribe func()) {
	if fn == nil {
		return func() {}
	}

	p.mu.Lock()
	p.nextID++
	id := p.nextID
	p.listeners = append(p.listeners, subscription{id: id, fn: fn})
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			for i, sub := range p.listeners {
				if sub.id == id {
					p.listeners = append(p.listeners[:i:i], p.listeners[i+1:]...)
					return
				}
			}
		})
	}
}

func (p *Provider) stateLocked() State {
	return State{IsDarkMode: p.isDarkMode, Colors: SchemeFor(p.isDarkMode)}
}

func (p *Provider) listenersLocked() []Listener {
	out := make([]Listener, len(p.listeners))
	for i, sub := range p.listeners {
		out[i] = sub.fn
	}
	return out
}

func (p *Provider) notify(seq uint64, listeners []Listener, state State) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	if seq < p.notifiedSeq {
		// A newer state has already been delivered.
		return
	}
	p.notifiedSeq = seq

	for _, fn := range listeners {
		fn(state)
	}
}
