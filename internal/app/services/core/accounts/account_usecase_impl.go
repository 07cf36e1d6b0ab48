package accounts

import (
	"context"
	"curebird-service/internal/app/config"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/app/models"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/exceptions"
	"curebird-service/internal/pkg/utils"
	"sync"
	"time"

	"go.uber.org/zap"
)

// accountUsecase is the credential provider. It owns the accounts collection
// and the per portal-session identity-changed fanout: every successful
// sign-in (and every sign-out) is published to the portal session that
// performed it, and only to that session.
type accountUsecase struct {
	AccountRepository AccountRepository
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger

	mu          sync.RWMutex
	subscribers map[string]map[int]func(*models.Identity)
	nextSubID   int
}

func NewAccountUsecase(
	accountRepository AccountRepository,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.CredentialProvider {
	return &accountUsecase{
		AccountRepository: accountRepository,
		InternalConfig:    internalConfig,
		Log:               logger,
		subscribers:       make(map[string]map[int]func(*models.Identity)),
	}
}

func (uc *accountUsecase) SignInWithPassword(ctx context.Context, portalSessionID, email, password string) (*models.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("accountUsecase.SignInWithPassword called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	account, err := uc.AccountRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}
	if !utils.CheckPasswordHash(password, account.PasswordHash) {
		return nil, exceptions.ErrInvalidUsernameOrPassword(nil)
	}

	identity := account.Identity()
	uc.publishIdentityChange(portalSessionID, identity)

	uc.Log.Info("accountUsecase.SignInWithPassword succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentityUIDKey, identity.UID),
	)
	return identity, nil
}

func (uc *accountUsecase) CreateAccountWithPassword(ctx context.Context, portalSessionID, email, password string) (*models.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("accountUsecase.CreateAccountWithPassword called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	existingAccount, err := uc.AccountRepository.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existingAccount != nil {
		return nil, exceptions.ErrEmailAlreadyExist(nil)
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, exceptions.ErrHashPassword(err)
	}

	now := time.Now()
	account := &models.Account{
		UID:          utils.GenerateUID(),
		Email:        email,
		PasswordHash: passwordHash,
		Provider:     models.ProviderPassword,
		TimeModel: models.TimeModel{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	_, err = uc.AccountRepository.CreateAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	identity := account.Identity()
	uc.publishIdentityChange(portalSessionID, identity)

	uc.Log.Info("accountUsecase.CreateAccountWithPassword succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentityUIDKey, identity.UID),
	)
	return identity, nil
}

func (uc *accountUsecase) SignInWithFederatedAssertion(ctx context.Context, portalSessionID string, assertion *contracts.FederatedAssertion) (*models.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("accountUsecase.SignInWithFederatedAssertion called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	account, err := uc.AccountRepository.FindByEmail(ctx, assertion.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		now := time.Now()
		account = &models.Account{
			UID:         utils.GenerateUID(),
			Email:       assertion.Email,
			DisplayName: assertion.DisplayName,
			PhotoURL:    assertion.PhotoURL,
			Provider:    models.ProviderGoogle,
			TimeModel: models.TimeModel{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		_, err = uc.AccountRepository.CreateAccount(ctx, account)
		if err != nil {
			return nil, err
		}
	} else if account.DisplayName != assertion.DisplayName || account.PhotoURL != assertion.PhotoURL {
		account.DisplayName = assertion.DisplayName
		account.PhotoURL = assertion.PhotoURL
		account.UpdatedAt = time.Now()
		err = uc.AccountRepository.UpdateAccount(ctx, account)
		if err != nil {
			return nil, err
		}
	}

	identity := account.Identity()
	uc.publishIdentityChange(portalSessionID, identity)

	uc.Log.Info("accountUsecase.SignInWithFederatedAssertion succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentityUIDKey, identity.UID),
	)
	return identity, nil
}

func (uc *accountUsecase) ConfirmPhoneIdentity(ctx context.Context, portalSessionID, phoneNumber string) (*models.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("accountUsecase.ConfirmPhoneIdentity called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPhoneNumberKey, phoneNumber),
	)

	account, err := uc.AccountRepository.FindByPhoneNumber(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}
	if account == nil {
		// A confirmed code signs the caller in even when no account exists
		// yet; the account is created on the spot.
		now := time.Now()
		account = &models.Account{
			UID:         utils.GenerateUID(),
			PhoneNumber: phoneNumber,
			Provider:    models.ProviderPhone,
			TimeModel: models.TimeModel{
				CreatedAt: now,
				UpdatedAt: now,
			},
		}
		_, err = uc.AccountRepository.CreateAccount(ctx, account)
		if err != nil {
			return nil, err
		}
	}

	identity := account.Identity()
	uc.publishIdentityChange(portalSessionID, identity)

	uc.Log.Info("accountUsecase.ConfirmPhoneIdentity succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentityUIDKey, identity.UID),
	)
	return identity, nil
}

func (uc *accountUsecase) SignOut(ctx context.Context, portalSessionID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("accountUsecase.SignOut called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	uc.publishIdentityChange(portalSessionID, nil)
	return nil
}

func (uc *accountUsecase) SubscribeIdentityChanges(portalSessionID string, callback func(*models.Identity)) func() {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if uc.subscribers[portalSessionID] == nil {
		uc.subscribers[portalSessionID] = make(map[int]func(*models.Identity))
	}
	subID := uc.nextSubID
	uc.nextSubID++
	uc.subscribers[portalSessionID][subID] = callback

	var once sync.Once
	return func() {
		once.Do(func() {
			uc.mu.Lock()
			defer uc.mu.Unlock()
			delete(uc.subscribers[portalSessionID], subID)
			if len(uc.subscribers[portalSessionID]) == 0 {
				delete(uc.subscribers, portalSessionID)
			}
		})
	}
}

func (uc *accountUsecase) publishIdentityChange(portalSessionID string, identity *models.Identity) {
	uc.mu.RLock()
	callbacks := make([]func(*models.Identity), 0, len(uc.subscribers[portalSessionID]))
	for _, callback := range uc.subscribers[portalSessionID] {
		callbacks = append(callbacks, callback)
	}
	uc.mu.RUnlock()

	for _, callback := range callbacks {
		callback(identity)
	}
}
