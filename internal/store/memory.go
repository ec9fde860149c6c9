package store

import (
	"sort"
	"sync"
)

// subscriberBuffer is the channel capacity given to each subscriber.
const subscriberBuffer = 100

// MemoryStore is an in-memory implementation of [Store].
//
// States are keyed by panel name, with new states replacing previous ones.
// Subscribers receive updates via buffered channels; if a subscriber's buffer
// is full, the update is dropped for that subscriber.
type MemoryStore struct {
	mu          sync.RWMutex
	states      map[string]PanelState
	subscribers map[chan PanelState]struct{}
	subMu       sync.RWMutex
}

// NewMemoryStore creates a new in-memory [Store] implementation.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states:      make(map[string]PanelState),
		subscribers: make(map[chan PanelState]struct{}),
	}
}

// Update stores a [PanelState] and notifies all subscribers.
func (m *MemoryStore) Update(state PanelState) {
	m.mu.Lock()
	m.states[state.Name] = state
	m.mu.Unlock()

	m.notifySubscribers(state)
}

// Get returns the state stored under name.
func (m *MemoryStore) Get(name string) (PanelState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	state, ok := m.states[name]
	return state, ok
}

// GetAll returns a snapshot of all stored states, sorted by name so the
// dashboard renders panels in a stable order.
func (m *MemoryStore) GetAll() []PanelState {
	m.mu.RLock()
	states := make([]PanelState, 0, len(m.states))
	for _, s := range m.states {
		states = append(states, s)
	}
	m.mu.RUnlock()

	sort.Slice(states, func(i, j int) bool { return states[i].Name < states[j].Name })
	return states
}

// Subscribe creates a new subscription and returns a channel for receiving
// updates. Caller must call [MemoryStore.Unsubscribe] when done.
func (m *MemoryStore) Subscribe() <-chan PanelState {
	ch := make(chan PanelState, subscriberBuffer)

	m.subMu.Lock()
	m.subscribers[ch] = struct{}{}
	m.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
// Safe to call multiple times or with an unknown channel.
func (m *MemoryStore) Unsubscribe(ch <-chan PanelState) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for subCh := range m.subscribers {
		if subCh == ch {
			delete(m.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// notifySubscribers sends the state to all active subscribers without
// blocking.
func (m *MemoryStore) notifySubscribers(state PanelState) {
	m.subMu.RLock()
	defer m.subMu.RUnlock()

	for ch := range m.subscribers {
		select {
		case ch <- state:
		default:
			// subscriber is slow, drop the message
		}
	}
}
