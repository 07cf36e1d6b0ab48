package challenge

import (
	"context"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// challengeVerifier holds the invisible-challenge token for one slot. The
// token lives in Redis under a TTL; Consume burns it, so each Ready/Consume
// pair guards exactly one protected call.
type challengeVerifier struct {
	RedisRepository contracts.RedisRepository
	Log             *zap.Logger
	TokenTTL        time.Duration

	slot string

	mu       sync.Mutex
	readied  bool
	consumed bool
}

func newChallengeVerifier(slot string, redisRepository contracts.RedisRepository, logger *zap.Logger, tokenTTL time.Duration) *challengeVerifier {
	return &challengeVerifier{
		RedisRepository: redisRepository,
		Log:             logger,
		TokenTTL:        tokenTTL,
		slot:            slot,
	}
}

func (v *challengeVerifier) Slot() string {
	return v.slot
}

func (v *challengeVerifier) Ready(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.readied && !v.consumed {
		return nil
	}

	// SetNX so a token another instance already issued for this slot keeps
	// its TTL; Consume only checks presence, so the surviving token serves.
	token := uuid.New().String()
	_, err := v.RedisRepository.TrySetNX(ctx, v.redisKey(), token, v.TokenTTL)
	if err != nil {
		return err
	}

	v.readied = true
	v.consumed = false

	v.Log.Info("challengeVerifier.Ready issued token",
		zap.String(constvars.LoggingChallengeSlotKey, v.slot),
	)
	return nil
}

func (v *challengeVerifier) Consume(ctx context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	if !v.readied {
		return exceptions.ErrChallengeNotReady(nil)
	}
	if v.consumed {
		return exceptions.ErrChallengeConsumed(nil)
	}

	token, err := v.RedisRepository.Get(ctx, v.redisKey())
	if err != nil {
		return err
	}
	if token == "" {
		v.readied = false
		return exceptions.ErrChallengeExpired(nil)
	}

	err = v.RedisRepository.Delete(ctx, v.redisKey())
	if err != nil {
		return err
	}

	v.consumed = true
	v.readied = false

	v.Log.Info("challengeVerifier.Consume burned token",
		zap.String(constvars.LoggingChallengeSlotKey, v.slot),
	)
	return nil
}

func (v *challengeVerifier) clear(ctx context.Context) {
	v.mu.Lock()
	defer v.mu.Unlock()

	_ = v.RedisRepository.Delete(ctx, v.redisKey())
	v.readied = false
	v.consumed = false
}

func (v *challengeVerifier) redisKey() string {
	return constvars.CHALLENGE_KEY_PREFIX + v.slot
}
