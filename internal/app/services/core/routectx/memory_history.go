package routectx

import (
	"curebird-service/internal/app/contracts"
	"sync"
)

// MemoryHistory is the server-side stand-in for the browser history of one
// portal session. The delivery layer pushes reported path changes into it;
// subscribers (the session resolver) observe them.
type MemoryHistory struct {
	mu          sync.RWMutex
	currentPath string
	subscribers map[int]func(path string)
	nextSubID   int
}

func NewMemoryHistory(initialPath string) *MemoryHistory {
	return &MemoryHistory{
		currentPath: initialPath,
		subscribers: make(map[int]func(path string)),
	}
}

var _ contracts.HistorySource = (*MemoryHistory)(nil)

func (h *MemoryHistory) CurrentPath() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.currentPath
}

// SetPath records a navigation and notifies subscribers. An unchanged path
// is not republished.
func (h *MemoryHistory) SetPath(path string) {
	h.mu.Lock()
	if h.currentPath == path {
		h.mu.Unlock()
		return
	}
	h.currentPath = path
	callbacks := make([]func(string), 0, len(h.subscribers))
	for _, callback := range h.subscribers {
		callbacks = append(callbacks, callback)
	}
	h.mu.Unlock()

	for _, callback := range callbacks {
		callback(path)
	}
}

func (h *MemoryHistory) SubscribePathChanges(callback func(path string)) func() {
	h.mu.Lock()
	subID := h.nextSubID
	h.nextSubID++
	h.subscribers[subID] = callback
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers, subID)
		})
	}
}
