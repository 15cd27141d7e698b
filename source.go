package rethread

import "sync"

// subscriberRecord is the per-token state a sourced token needs. Its
// shape mirrors StandaloneToken: each record has its own mutex,
// handler slot, and cancelled flag, so that the register/cancel/
// unregister protocol runs identically to the standalone case,
// including the same collapse of spec.md §4.2's Cancelling-state
// handshake into plain mutex exclusion (see StandaloneToken.Cancel).
// Once the record is published, its cancelled flag is set only from
// inside cancel, under the record's own lock — never read from the
// Source's shared flag — so that a Guard registering concurrently with Source.Cancel racing
// toward this particular record is handled by the ordinary handshake
// instead of a second, inconsistent source of truth.
type subscriberRecord struct {
	mu        sync.Mutex
	cancelled bool
	handler   Handler
}

func newSubscriberRecord() *subscriberRecord {
	return &subscriberRecord{}
}

// cancel runs the per-record cancel protocol of spec.md §4.2 steps
// 2-5, scoped to this one record.
func (r *subscriberRecord) cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancelled {
		return
	}
	r.cancelled = true

	if h := r.handler; h != nil {
		h.Cancel()
	}
}

func (r *subscriberRecord) registerHandler(h Handler) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancelled {
		return false
	}

	if r.handler != nil {
		panic("rethread: BUG: double registration on sourced token")
	}

	r.handler = h
	return true
}

func (r *subscriberRecord) unregisterHandler() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	cancelRan := r.cancelled && r.handler != nil
	r.handler = nil
	return cancelRan
}

// Source owns a shared cancel flag and broadcasts cancellation to
// every token it has produced. Cancelling a Source is a single,
// idempotent, one-shot operation, exactly like cancelling a
// StandaloneToken, except it fans out to every subscriber.
//
// Lock order is strict: the Source's own mutex is always acquired
// before any individual subscriber record's mutex, never the reverse,
// per spec.md §5. Cancel releases the source lock before taking any
// subscriber lock, so the two are never nested.
type Source struct {
	mu          sync.Mutex
	cancelled   bool
	subscribers []*subscriberRecord
}

// NewSource returns a new, not-yet-cancelled Source.
func NewSource() *Source {
	return &Source{}
}

// NewToken returns a new token that shares this Source's cancel
// state. The token remains valid for as long as the Source is
// reachable; it must not be used after the Source is discarded. A
// token created after Cancel starts out cancelled.
func (s *Source) NewToken() Token {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := newSubscriberRecord()
	rec.cancelled = s.cancelled
	s.subscribers = append(s.subscribers, rec)
	return &sourcedToken{source: s, rec: rec}
}

// IsCancelled reports whether Cancel has been called on this Source.
func (s *Source) IsCancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

// Cancel marks the source cancelled and, for every token this source
// has ever produced, runs that token's cancel protocol: at most one
// Handler.Cancel() invocation per live guard, as spec.md §4.3 and the
// source-broadcast testable property (spec.md §8) require.
func (s *Source) Cancel() {
	s.mu.Lock()
	if s.cancelled {
		s.mu.Unlock()
		return
	}
	s.cancelled = true
	subs := make([]*subscriberRecord, len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.Unlock()

	for _, rec := range subs {
		rec.cancel()
	}
}

// sourcedToken is a lightweight handle referring to state owned by a
// Source. Many sourced tokens share one cancel flag; each still
// serializes its own handler slot against the source's broadcast via
// its own subscriberRecord.
type sourcedToken struct {
	source *Source
	rec    *subscriberRecord
}

var (
	_ Token     = (*sourcedToken)(nil)
	_ registrar = (*sourcedToken)(nil)
)

func (t *sourcedToken) IsCancelled() bool {
	return t.source.IsCancelled()
}

func (t *sourcedToken) registerHandler(h Handler) bool {
	return t.rec.registerHandler(h)
}

func (t *sourcedToken) unregisterHandler() bool {
	return t.rec.unregisterHandler()
}
