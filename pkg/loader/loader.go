// Package loader runs asynchronous calls on behalf of screens whose lifetime
// is shorter than the calls they start. A screen attaches as a Host; results
// are delivered to the live instance of that host at most once per Load, and
// results that arrive while no instance is attached are kept for a bounded
// window so the next instance can pick them up.
package loader

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"
)

const DefaultRetention = 30 * time.Second

// Token identifies one load: the host lifecycle key plus a numeric load id.
type Token struct {
	Host string
	ID   int
}

type State int

const (
	Idle State = iota
	Loading
	Delivered
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Delivered:
		return "delivered"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Outcome is the result of a Call. Exactly one of Value and Err is meaningful.
type Outcome struct {
	Value any
	Err   error
}

type Call func(ctx context.Context) (any, error)

// Executor runs delivery functions, typically on the UI goroutine.
type Executor func(fn func())

func Inline(fn func()) { fn() }

type Option func(*Loader)

func WithRetention(d time.Duration) Option {
	return func(l *Loader) {
		if d > 0 {
			l.retention = d
		}
	}
}

func WithExecutor(exec Executor) Option {
	return func(l *Loader) {
		if exec != nil {
			l.exec = exec
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// Stats counts what happened to results since the loader was created.
type Stats struct {
	Started    int
	Delivered  int
	Superseded int
	Retained   int
	Replayed   int
	Expired    int
}

type operation struct {
	token  Token
	owner  *Host
	cb     func(Outcome)
	cancel context.CancelFunc
}

type Loader struct {
	mu        sync.Mutex
	hosts     map[string]*Host
	inflight  map[Token]*operation
	states    map[Token]State
	retained  *ttlcache.Cache[Token, Outcome]
	retention time.Duration
	exec      Executor
	log       *zap.Logger
	stats     Stats
	closed    bool

	ctx    context.Context
	cancel context.CancelFunc
}

func New(opts ...Option) *Loader {
	l := &Loader{
		hosts:     make(map[string]*Host),
		inflight:  make(map[Token]*operation),
		states:    make(map[Token]State),
		retention: DefaultRetention,
		exec:      Inline,
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.ctx, l.cancel = context.WithCancel(context.Background())

	l.retained = ttlcache.New(
		ttlcache.WithTTL[Token, Outcome](l.retention),
		ttlcache.WithDisableTouchOnHit[Token, Outcome](),
	)
	l.retained.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[Token, Outcome]) {
		if reason != ttlcache.EvictionReasonExpired {
			return
		}
		l.mu.Lock()
		defer l.mu.Unlock()
		tok := item.Key()
		l.stats.Expired++
		if _, ok := l.inflight[tok]; !ok {
			l.states[tok] = Idle
		}
		l.log.Debug("retained result expired", zap.String("host", tok.Host), zap.Int("id", tok.ID))
	})
	go l.retained.Start()
	return l
}

// Attach creates a live instance for key. A previous live instance with the
// same key is detached.
func (l *Loader) Attach(key string) *Host {
	l.mu.Lock()
	defer l.mu.Unlock()
	if prev, ok := l.hosts[key]; ok {
		prev.detached = true
		l.log.Debug("host replaced", zap.String("host", key), zap.Stringer("instance", prev.instance))
	}
	h := &Host{key: key, instance: uuid.New(), loader: l}
	l.hosts[key] = h
	l.log.Debug("host attached", zap.String("host", key), zap.Stringer("instance", h.instance))
	return h
}

func (l *Loader) State(tok Token) State {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.states[tok]
}

func (l *Loader) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stats
}

// Retained reports whether a result for tok is waiting for a host.
func (l *Loader) Retained(tok Token) bool {
	return l.retained.Get(tok) != nil
}

// Close cancels every in-flight call and drops retained results.
func (l *Loader) Close() {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return
	}
	l.closed = true
	for tok, op := range l.inflight {
		op.cancel()
		delete(l.inflight, tok)
	}
	for _, h := range l.hosts {
		h.detached = true
	}
	l.mu.Unlock()

	l.cancel()
	l.retained.Stop()
	l.retained.DeleteAll()
}

func (l *Loader) load(h *Host, id int, call Call, cb func(Outcome)) {
	l.mu.Lock()
	if h.detached || l.closed {
		l.mu.Unlock()
		l.log.Debug("load on detached host ignored", zap.String("host", h.key), zap.Int("id", id))
		return
	}
	tok := Token{Host: h.key, ID: id}

	if item := l.retained.Get(tok); item != nil {
		l.retained.Delete(tok)
		outcome := item.Value()
		l.stats.Replayed++
		l.mu.Unlock()
		l.log.Debug("replaying retained result", zap.String("host", tok.Host), zap.Int("id", id),
			zap.Stringer("instance", h.instance))
		l.exec(func() { l.deliver(tok, h, cb, outcome) })
		return
	}

	if op, ok := l.inflight[tok]; ok {
		if op.owner != h && op.owner.detached {
			op.owner = h
			op.cb = cb
			l.mu.Unlock()
			l.log.Debug("joined in-flight call", zap.String("host", tok.Host), zap.Int("id", id),
				zap.Stringer("instance", h.instance))
			return
		}
		op.cancel()
		delete(l.inflight, tok)
		l.log.Debug("replacing in-flight call", zap.String("host", tok.Host), zap.Int("id", id))
	}

	ctx, cancel := context.WithCancel(l.ctx)
	op := &operation{token: tok, owner: h, cb: cb, cancel: cancel}
	l.inflight[tok] = op
	l.states[tok] = Loading
	l.stats.Started++
	l.mu.Unlock()

	go l.run(ctx, op, call)
}

func (l *Loader) run(ctx context.Context, op *operation, call Call) {
	defer op.cancel()
	v, err := call(ctx)
	l.complete(op, Outcome{Value: v, Err: err})
}

func (l *Loader) complete(op *operation, outcome Outcome) {
	l.mu.Lock()
	if l.inflight[op.token] != op {
		l.stats.Superseded++
		l.mu.Unlock()
		l.log.Debug("dropping superseded result", zap.String("host", op.token.Host), zap.Int("id", op.token.ID))
		return
	}
	delete(l.inflight, op.token)
	if outcome.Err != nil {
		l.states[op.token] = Failed
	} else {
		l.states[op.token] = Delivered
	}
	owner, cb := op.owner, op.cb
	if owner.detached {
		l.retainLocked(op.token, outcome)
		l.mu.Unlock()
		return
	}
	l.mu.Unlock()

	l.exec(func() { l.deliver(op.token, owner, cb, outcome) })
}

// deliver runs on the executor. The owner may have been detached between
// completion and execution, in which case the result is kept for the next
// instance unless that instance already started its own call.
func (l *Loader) deliver(tok Token, owner *Host, cb func(Outcome), outcome Outcome) {
	l.mu.Lock()
	if owner.detached {
		if _, ok := l.inflight[tok]; !ok && !l.closed {
			l.retainLocked(tok, outcome)
		}
		l.mu.Unlock()
		return
	}
	l.stats.Delivered++
	l.mu.Unlock()
	cb(outcome)
}

func (l *Loader) retainLocked(tok Token, outcome Outcome) {
	l.retained.Set(tok, outcome, ttlcache.DefaultTTL)
	l.stats.Retained++
	l.log.Debug("retained result for detached host", zap.String("host", tok.Host), zap.Int("id", tok.ID),
		zap.Duration("retention", l.retention))
}

func (l *Loader) detach(h *Host) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if h.detached {
		return
	}
	h.detached = true
	if l.hosts[h.key] == h {
		delete(l.hosts, h.key)
	}
	l.log.Debug("host detached", zap.String("host", h.key), zap.Stringer("instance", h.instance))
}

func (l *Loader) finish(h *Host) {
	l.mu.Lock()
	h.detached = true
	if l.hosts[h.key] == h {
		delete(l.hosts, h.key)
	}
	for tok, op := range l.inflight {
		if tok.Host == h.key {
			op.cancel()
			delete(l.inflight, tok)
		}
	}
	for tok := range l.states {
		if tok.Host == h.key {
			delete(l.states, tok)
		}
	}
	l.mu.Unlock()

	for _, tok := range l.retained.Keys() {
		if tok.Host == h.key {
			l.retained.Delete(tok)
		}
	}
	l.log.Debug("host finished", zap.String("host", h.key), zap.Stringer("instance", h.instance))
}

// Host is one live instance of a screen. Instances of the same key share
// loads; only the most recently attached one receives results.
type Host struct {
	key      string
	instance uuid.UUID
	loader   *Loader

	// guarded by loader.mu
	detached bool
}

func (h *Host) Key() string { return h.key }

func (h *Host) Instance() uuid.UUID { return h.instance }

func (h *Host) Detached() bool {
	h.loader.mu.Lock()
	defer h.loader.mu.Unlock()
	return h.detached
}

// Load starts call for id, or picks up a call or result left by a previous
// instance of this host. cb runs at most once, through the loader's executor.
func (h *Host) Load(id int, call Call, cb func(Outcome)) {
	h.loader.load(h, id, call, cb)
}

func (h *Host) State(id int) State {
	return h.loader.State(Token{Host: h.key, ID: id})
}

// Detach stops deliveries to this instance. In-flight calls keep running and
// their results are retained for the next instance.
func (h *Host) Detach() { h.loader.detach(h) }

// Finish ends the host for good: in-flight calls are cancelled and retained
// results dropped.
func (h *Host) Finish() { h.loader.finish(h) }
