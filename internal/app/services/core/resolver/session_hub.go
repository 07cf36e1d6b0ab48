package resolver

import (
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/app/services/core/routectx"
	"sync"

	"go.uber.org/zap"
)

type sessionEntry struct {
	Resolver *SessionResolver
	History  *routectx.MemoryHistory
}

// SessionHub owns one resolver per live portal session, keyed by portal
// session id. Creation is idempotent; removal closes the resolver.
type SessionHub struct {
	Classifier         *routectx.Classifier
	ProfileStore       contracts.ProfileStore
	CredentialProvider contracts.CredentialProvider
	Log                *zap.Logger

	mu      sync.Mutex
	entries map[string]*sessionEntry
}

func NewSessionHub(
	classifier *routectx.Classifier,
	profileStore contracts.ProfileStore,
	credentialProvider contracts.CredentialProvider,
	logger *zap.Logger,
) *SessionHub {
	return &SessionHub{
		Classifier:         classifier,
		ProfileStore:       profileStore,
		CredentialProvider: credentialProvider,
		Log:                logger,
		entries:            make(map[string]*sessionEntry),
	}
}

// GetOrCreate returns the resolver for the portal session, creating it with
// the given initial path on first use.
func (h *SessionHub) GetOrCreate(portalSessionID, initialPath string) *SessionResolver {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.entries[portalSessionID]; ok {
		return existing.Resolver
	}

	history := routectx.NewMemoryHistory(initialPath)
	r := NewSessionResolver(portalSessionID, h.Classifier, h.ProfileStore, h.CredentialProvider, history, h.Log)
	h.entries[portalSessionID] = &sessionEntry{Resolver: r, History: history}
	return r
}

func (h *SessionHub) Get(portalSessionID string) *SessionResolver {
	h.mu.Lock()
	defer h.mu.Unlock()

	entry, ok := h.entries[portalSessionID]
	if !ok {
		return nil
	}
	return entry.Resolver
}

// ReportPathChange feeds a navigation reported by the browser into the
// session's history, which in turn drives the resolver.
func (h *SessionHub) ReportPathChange(portalSessionID, path string) bool {
	h.mu.Lock()
	entry, ok := h.entries[portalSessionID]
	h.mu.Unlock()

	if !ok {
		return false
	}
	entry.History.SetPath(path)
	return true
}

// Remove closes and discards the session's resolver. Unknown ids are a
// no-op.
func (h *SessionHub) Remove(portalSessionID string) {
	h.mu.Lock()
	entry, ok := h.entries[portalSessionID]
	delete(h.entries, portalSessionID)
	h.mu.Unlock()

	if ok {
		entry.Resolver.Close()
	}
}

// CloseAll tears down every live resolver. Called on shutdown.
func (h *SessionHub) CloseAll() {
	h.mu.Lock()
	entries := make([]*sessionEntry, 0, len(h.entries))
	for _, entry := range h.entries {
		entries = append(entries, entry)
	}
	h.entries = make(map[string]*sessionEntry)
	h.mu.Unlock()

	for _, entry := range entries {
		entry.Resolver.Close()
	}
}
