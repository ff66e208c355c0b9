package realtime

import (
	"sync"
)

// StatusListener receives edge-triggered online/offline transitions:
// online fires only when a user's first handle registers, offline only when
// the last one unregisters.
type StatusListener func(userID string, online bool)

// Registry is the sole owner of live session state: a concurrency-safe
// multimap from user ID to that user's open handles. It is never the system
// of record; on restart it is rebuilt from new connections.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]map[string]Handle
	listener StatusListener
}

// NewRegistry creates an empty registry. The listener may be nil.
func NewRegistry(listener StatusListener) *Registry {
	return &Registry{
		sessions: make(map[string]map[string]Handle),
		listener: listener,
	}
}

// SetListener installs the transition listener. Meant for wiring at startup
// before connections arrive.
func (r *Registry) SetListener(listener StatusListener) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listener = listener
}

// Register adds a handle to the user's set. The online transition is
// signalled outside the lock so listeners may call back into the registry.
func (r *Registry) Register(userID string, h Handle) {
	r.mu.Lock()
	set, ok := r.sessions[userID]
	if !ok {
		set = make(map[string]Handle)
		r.sessions[userID] = set
	}
	wasEmpty := len(set) == 0
	set[h.ID()] = h
	listener := r.listener
	r.mu.Unlock()

	if wasEmpty && listener != nil {
		listener(userID, true)
	}
}

// Unregister removes a handle. Removing the last handle signals offline
// exactly once; removing an unknown handle is a no-op.
func (r *Registry) Unregister(userID string, h Handle) {
	r.mu.Lock()
	set, ok := r.sessions[userID]
	if !ok {
		r.mu.Unlock()
		return
	}
	if _, present := set[h.ID()]; !present {
		r.mu.Unlock()
		return
	}
	delete(set, h.ID())
	wentOffline := len(set) == 0
	if wentOffline {
		delete(r.sessions, userID)
	}
	listener := r.listener
	r.mu.Unlock()

	if wentOffline && listener != nil {
		listener(userID, false)
	}
}

// LiveHandles returns a snapshot of the user's open handles. A handle may
// disconnect right after the snapshot; delivery to it must fail silently.
func (r *Registry) LiveHandles(userID string) []Handle {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set := r.sessions[userID]
	if len(set) == 0 {
		return nil
	}
	handles := make([]Handle, 0, len(set))
	for _, h := range set {
		handles = append(handles, h)
	}
	return handles
}

// IsOnline reports whether the user has at least one open handle.
func (r *Registry) IsOnline(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions[userID]) > 0
}
