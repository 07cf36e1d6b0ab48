package session

import (
	"context"
	"curebird-service/internal/app/config"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/app/models"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/exceptions"
	"curebird-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
)

type sessionService struct {
	RedisRepository contracts.RedisRepository
	InternalConfig  *config.InternalConfig
}

func NewSessionService(redisRepository contracts.RedisRepository, internalConfig *config.InternalConfig) contracts.SessionService {
	return &sessionService{
		RedisRepository: redisRepository,
		InternalConfig:  internalConfig,
	}
}

func (svc *sessionService) CreateSession(ctx context.Context, session *models.Session) (string, error) {
	expiry := time.Duration(svc.InternalConfig.App.SessionExpiredTimeInHours) * time.Hour
	err := svc.RedisRepository.Set(ctx, constvars.SESSION_KEY_PREFIX+session.SessionID, session, expiry)
	if err != nil {
		return "", err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, svc.InternalConfig.JWT.Secret, svc.InternalConfig.JWT.ExpTimeInHour)
	if err != nil {
		return "", exceptions.ErrTokenGenerate(err)
	}
	return token, nil
}

func (svc *sessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	session := new(models.Session)
	err := json.Unmarshal([]byte(sessionData), session)
	if err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return session, nil
}

func (svc *sessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	sessionData, err := svc.RedisRepository.Get(ctx, constvars.SESSION_KEY_PREFIX+sessionID)
	if err != nil {
		return "", err
	}
	if sessionData == "" {
		return "", exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return sessionData, nil
}

func (svc *sessionService) DeleteSession(ctx context.Context, sessionID string) error {
	return svc.RedisRepository.Delete(ctx, constvars.SESSION_KEY_PREFIX+sessionID)
}

func (svc *sessionService) VerifySessionToken(ctx context.Context, token string) (string, error) {
	sessionID, err := utils.ParseSessionJWT(token, svc.InternalConfig.JWT.Secret)
	if err != nil {
		return "", exceptions.ErrTokenInvalidOrExpired(err)
	}
	return sessionID, nil
}
