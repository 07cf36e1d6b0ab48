package otp

import (
	"context"
	"curebird-service/internal/app/config"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/app/models"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/dto/requests"
	"curebird-service/internal/pkg/dto/responses"
	"curebird-service/internal/pkg/exceptions"
	"curebird-service/internal/pkg/utils"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var otpCodeRegex = regexp.MustCompile(constvars.RegexOtpCode)

// storedOtp is the redis value behind an outstanding confirmation handle.
type storedOtp struct {
	PhoneNumber string `json:"phoneNumber"`
	Code        string `json:"code"`
}

type otpUsecase struct {
	RedisRepository    contracts.RedisRepository
	SmsPublisher       contracts.SmsPublisher
	ChallengeManager   contracts.ChallengeManager
	CredentialProvider contracts.CredentialProvider
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger

	limiterMu sync.Mutex
	limiters  map[string]*rate.Limiter

	slotMu       sync.Mutex
	sessionSlots map[string]map[string]struct{}
}

func NewOtpUsecase(
	redisRepository contracts.RedisRepository,
	smsPublisher contracts.SmsPublisher,
	challengeManager contracts.ChallengeManager,
	credentialProvider contracts.CredentialProvider,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) OtpUsecase {
	return &otpUsecase{
		RedisRepository:    redisRepository,
		SmsPublisher:       smsPublisher,
		ChallengeManager:   challengeManager,
		CredentialProvider: credentialProvider,
		InternalConfig:     internalConfig,
		Log:                logger,
		limiters:           make(map[string]*rate.Limiter),
		sessionSlots:       make(map[string]map[string]struct{}),
	}
}

func (uc *otpUsecase) SendCode(ctx context.Context, portalSessionID string, request *requests.SendOtp) (*responses.SendOtp, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("otpUsecase.SendCode called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingChallengeSlotKey, request.Slot),
	)

	// Local validation comes first: a malformed number must fail before the
	// challenge or the delivery queue is ever touched.
	phoneDigits := utils.NormalizePhoneDigits(request.PhoneNumber)
	if err := utils.ValidateInternationalPhoneDigits(phoneDigits); err != nil {
		return nil, exceptions.ErrInvalidPhoneNumber(err)
	}

	if !uc.allowSend(phoneDigits) {
		return nil, exceptions.ErrOtpSendThrottled(nil)
	}

	// Slots are scoped per portal session so one session's verifiers can be
	// torn down on logout without touching another's.
	slot := uc.trackSlot(portalSessionID, request.Slot)
	verifier := uc.ChallengeManager.GetOrCreate(slot)
	if err := verifier.Ready(ctx); err != nil {
		return nil, err
	}
	if err := verifier.Consume(ctx); err != nil {
		return nil, err
	}

	code, err := utils.GenerateOTP(uc.InternalConfig.Otp.Length)
	if err != nil {
		return nil, err
	}

	handle := utils.GenerateUID()
	expiry := time.Duration(uc.InternalConfig.Otp.ExpiredTimeInMinutes) * time.Minute
	err = uc.RedisRepository.Set(ctx, constvars.OTP_CODE_KEY_PREFIX+handle, &storedOtp{
		PhoneNumber: phoneDigits,
		Code:        code,
	}, expiry)
	if err != nil {
		return nil, err
	}

	err = uc.SmsPublisher.PublishOtpMessage(ctx, &requests.OtpSmsMessage{
		To:   phoneDigits,
		Body: fmt.Sprintf("Your CureBird verification code is %s", code),
	})
	if err != nil {
		return nil, err
	}

	uc.Log.Info("otpUsecase.SendCode succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPhoneNumberKey, phoneDigits),
	)
	return &responses.SendOtp{
		Handle:      handle,
		PhoneNumber: phoneDigits,
	}, nil
}

func (uc *otpUsecase) ConfirmCode(ctx context.Context, portalSessionID string, request *requests.ConfirmOtp) (*models.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("otpUsecase.ConfirmCode called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	// Format check before any lookup: anything that is not exactly six
	// digits is rejected locally.
	if !otpCodeRegex.MatchString(request.Code) {
		return nil, exceptions.ErrInvalidCode(nil)
	}

	data, err := uc.RedisRepository.Get(ctx, constvars.OTP_CODE_KEY_PREFIX+request.Handle)
	if err != nil {
		return nil, err
	}
	if data == "" {
		return nil, exceptions.ErrChallengeExpired(nil)
	}

	var stored storedOtp
	if err := json.Unmarshal([]byte(data), &stored); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}

	if stored.Code != request.Code {
		return nil, exceptions.ErrCodeRejected(nil)
	}

	// The handle is one-shot: burn it before signing in so a concurrent
	// confirm with the same handle cannot succeed twice.
	err = uc.RedisRepository.Delete(ctx, constvars.OTP_CODE_KEY_PREFIX+request.Handle)
	if err != nil {
		return nil, err
	}

	identity, err := uc.CredentialProvider.ConfirmPhoneIdentity(ctx, portalSessionID, stored.PhoneNumber)
	if err != nil {
		return nil, err
	}

	uc.Log.Info("otpUsecase.ConfirmCode succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentityUIDKey, identity.UID),
	)
	return identity, nil
}

func (uc *otpUsecase) DisposeChallenges(ctx context.Context, portalSessionID string) {
	uc.slotMu.Lock()
	slots := uc.sessionSlots[portalSessionID]
	delete(uc.sessionSlots, portalSessionID)
	uc.slotMu.Unlock()

	for slot := range slots {
		uc.ChallengeManager.Dispose(slot)
	}

	if len(slots) > 0 {
		uc.Log.Info("otpUsecase.DisposeChallenges disposed verifiers",
			zap.Int("slot_count", len(slots)),
		)
	}
}

// trackSlot scopes a page slot to its portal session and remembers it for
// DisposeChallenges.
func (uc *otpUsecase) trackSlot(portalSessionID, slot string) string {
	scoped := portalSessionID + ":" + slot

	uc.slotMu.Lock()
	defer uc.slotMu.Unlock()
	if uc.sessionSlots[portalSessionID] == nil {
		uc.sessionSlots[portalSessionID] = make(map[string]struct{})
	}
	uc.sessionSlots[portalSessionID][scoped] = struct{}{}
	return scoped
}

func (uc *otpUsecase) allowSend(phoneDigits string) bool {
	uc.limiterMu.Lock()
	defer uc.limiterMu.Unlock()

	limiter, ok := uc.limiters[phoneDigits]
	if !ok {
		perMinute := uc.InternalConfig.Otp.SendsPerPhonePerMinute
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)
		uc.limiters[phoneDigits] = limiter
	}
	return limiter.Allow()
}
