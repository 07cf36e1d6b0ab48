package contracts

import "context"

// ChallengeVerifier is the invisible human-verification widget bound to one
// page slot. Exactly one live instance may exist per slot.
type ChallengeVerifier interface {
	// Ready issues (or keeps) the verifier's challenge token. Idempotent.
	Ready(ctx context.Context) error
	// Consume validates and burns the current challenge token. An expired or
	// absent token fails; callers must not silently retry.
	Consume(ctx context.Context) error
	Slot() string
}

// ChallengeManager owns the per-slot verifier singletons, replacing the
// page-global widget handle with an injectable owner.
type ChallengeManager interface {
	GetOrCreate(slot string) ChallengeVerifier
	Dispose(slot string)
}
