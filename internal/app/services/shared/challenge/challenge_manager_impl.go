package challenge

import (
	"context"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/pkg/constvars"
	"sync"
	"time"

	"go.uber.org/zap"
)

// challengeManager keeps one live verifier per page slot so that repeated
// mounts of the same widget reuse the existing instance instead of stacking
// duplicates.
type challengeManager struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
	TokenTTL        time.Duration

	mu        sync.Mutex
	verifiers map[string]*challengeVerifier
}

func NewChallengeManager(redisRepository contracts.RedisRepository, logger *zap.Logger, tokenTTL time.Duration) contracts.ChallengeManager {
	return &challengeManager{
		RedisRepository: redisRepository,
		Log:             logger,
		TokenTTL:        tokenTTL,
		verifiers:       make(map[string]*challengeVerifier),
	}
}

func (m *challengeManager) GetOrCreate(slot string) contracts.ChallengeVerifier {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing, ok := m.verifiers[slot]; ok {
		return existing
	}

	verifier := newChallengeVerifier(slot, m.RedisRepository, m.Log, m.TokenTTL)
	m.verifiers[slot] = verifier

	m.Log.Info("challengeManager.GetOrCreate created verifier",
		zap.String(constvars.LoggingChallengeSlotKey, slot),
	)
	return verifier
}

func (m *challengeManager) Dispose(slot string) {
	m.mu.Lock()
	verifier, ok := m.verifiers[slot]
	delete(m.verifiers, slot)
	m.mu.Unlock()

	if !ok {
		return
	}

	verifier.clear(context.Background())
	m.Log.Info("challengeManager.Dispose removed verifier",
		zap.String(constvars.LoggingChallengeSlotKey, slot),
	)
}
