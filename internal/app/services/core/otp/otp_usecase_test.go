package otp

import (
	"context"
	"curebird-service/internal/app/config"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/app/models"
	redisRepo "curebird-service/internal/app/services/shared/redis"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/dto/requests"
	"curebird-service/internal/pkg/exceptions"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSmsPublisher struct {
	published []*requests.OtpSmsMessage
	err       error
}

func (f *fakeSmsPublisher) PublishOtpMessage(ctx context.Context, request *requests.OtpSmsMessage) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, request)
	return nil
}

type fakeVerifier struct {
	slot     string
	readies  int
	consumes int
	err      error
}

func (f *fakeVerifier) Ready(ctx context.Context) error { f.readies++; return f.err }
func (f *fakeVerifier) Consume(ctx context.Context) error {
	if f.err != nil {
		return f.err
	}
	f.consumes++
	return nil
}
func (f *fakeVerifier) Slot() string { return f.slot }

type fakeChallengeManager struct {
	verifiers map[string]*fakeVerifier
	disposed  []string
}

func newFakeChallengeManager() *fakeChallengeManager {
	return &fakeChallengeManager{verifiers: make(map[string]*fakeVerifier)}
}

func (f *fakeChallengeManager) GetOrCreate(slot string) contracts.ChallengeVerifier {
	if existing, ok := f.verifiers[slot]; ok {
		return existing
	}
	verifier := &fakeVerifier{slot: slot}
	f.verifiers[slot] = verifier
	return verifier
}

func (f *fakeChallengeManager) Dispose(slot string) {
	f.disposed = append(f.disposed, slot)
	delete(f.verifiers, slot)
}

type fakeCredentialProvider struct {
	confirmed []string
}

func (f *fakeCredentialProvider) SignInWithPassword(ctx context.Context, portalSessionID, email, password string) (*models.Identity, error) {
	return nil, nil
}

func (f *fakeCredentialProvider) CreateAccountWithPassword(ctx context.Context, portalSessionID, email, password string) (*models.Identity, error) {
	return nil, nil
}

func (f *fakeCredentialProvider) SignInWithFederatedAssertion(ctx context.Context, portalSessionID string, assertion *contracts.FederatedAssertion) (*models.Identity, error) {
	return nil, nil
}

func (f *fakeCredentialProvider) ConfirmPhoneIdentity(ctx context.Context, portalSessionID, phoneNumber string) (*models.Identity, error) {
	f.confirmed = append(f.confirmed, phoneNumber)
	return &models.Identity{UID: "uid-phone", PhoneNumber: phoneNumber, PhoneVerified: true}, nil
}

func (f *fakeCredentialProvider) SignOut(ctx context.Context, portalSessionID string) error {
	return nil
}

func (f *fakeCredentialProvider) SubscribeIdentityChanges(portalSessionID string, callback func(*models.Identity)) func() {
	return func() {}
}

type otpTestEnv struct {
	mr        *miniredis.Miniredis
	sms       *fakeSmsPublisher
	challenge *fakeChallengeManager
	creds     *fakeCredentialProvider
	usecase   OtpUsecase
}

func newOtpTestEnv(t *testing.T) *otpTestEnv {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	env := &otpTestEnv{
		mr:        mr,
		sms:       &fakeSmsPublisher{},
		challenge: newFakeChallengeManager(),
		creds:     &fakeCredentialProvider{},
	}
	internalConfig := &config.InternalConfig{
		Otp: config.Otp{
			Length:                 6,
			ExpiredTimeInMinutes:   5,
			ChallengeTTLInMinutes:  2,
			SendsPerPhonePerMinute: 2,
		},
	}
	env.usecase = NewOtpUsecase(
		redisRepo.NewRedisRepository(client),
		env.sms,
		env.challenge,
		env.creds,
		internalConfig,
		zap.NewNop(),
	)
	return env
}

func assertDevMessage(t *testing.T, err error, devMessage string) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected CustomError, got %v", err)
	assert.Equal(t, devMessage, customErr.DevMessage)
}

func (env *otpTestEnv) storedCode(t *testing.T, handle string) string {
	t.Helper()
	data, err := env.mr.Get(constvars.OTP_CODE_KEY_PREFIX + handle)
	require.NoError(t, err)
	var stored storedOtp
	require.NoError(t, json.Unmarshal([]byte(data), &stored))
	return stored.Code
}

func TestOtpUsecase_SendCode(t *testing.T) {
	env := newOtpTestEnv(t)

	response, err := env.usecase.SendCode(context.Background(), "portal-1", &requests.SendOtp{
		PhoneNumber: "+91 98765 43210",
		Slot:        "signin-card",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, response.Handle)
	assert.Equal(t, "919876543210", response.PhoneNumber)

	require.Len(t, env.sms.published, 1)
	assert.Equal(t, "919876543210", env.sms.published[0].To)
	assert.Contains(t, env.sms.published[0].Body, env.storedCode(t, response.Handle))

	verifier := env.challenge.verifiers["portal-1:signin-card"]
	require.NotNil(t, verifier)
	assert.Equal(t, 1, verifier.readies)
	assert.Equal(t, 1, verifier.consumes)
}

func TestOtpUsecase_SendCodeRejectsInvalidPhoneLocally(t *testing.T) {
	env := newOtpTestEnv(t)

	_, err := env.usecase.SendCode(context.Background(), "portal-1", &requests.SendOtp{
		PhoneNumber: "not-a-number",
		Slot:        "signin-card",
	})
	assertDevMessage(t, err, constvars.ErrDevInvalidPhoneNumber)

	// Neither the challenge nor the delivery queue was touched.
	assert.Empty(t, env.challenge.verifiers)
	assert.Empty(t, env.sms.published)
}

func TestOtpUsecase_SendCodeThrottlesPerPhone(t *testing.T) {
	env := newOtpTestEnv(t)

	for i := 0; i < 2; i++ {
		_, err := env.usecase.SendCode(context.Background(), "portal-1", &requests.SendOtp{
			PhoneNumber: "+919876543210",
			Slot:        "signin-card",
		})
		require.NoError(t, err)
	}

	_, err := env.usecase.SendCode(context.Background(), "portal-1", &requests.SendOtp{
		PhoneNumber: "919876543210",
		Slot:        "signin-card",
	})
	assertDevMessage(t, err, constvars.ErrDevOtpSendThrottled)

	// Another phone number is unaffected.
	_, err = env.usecase.SendCode(context.Background(), "portal-1", &requests.SendOtp{
		PhoneNumber: "+14155550123",
		Slot:        "signin-card",
	})
	require.NoError(t, err)
}

func TestOtpUsecase_ConfirmCodeRejectsMalformedCodeLocally(t *testing.T) {
	env := newOtpTestEnv(t)

	for _, code := range []string{"1234", "1234567", "12a456", ""} {
		_, err := env.usecase.ConfirmCode(context.Background(), "portal-1", &requests.ConfirmOtp{
			Handle: "some-handle",
			Code:   code,
		})
		assertDevMessage(t, err, constvars.ErrDevInvalidCodeFormat)
	}

	assert.Empty(t, env.creds.confirmed)
}

func TestOtpUsecase_ConfirmCodeHappyPath(t *testing.T) {
	env := newOtpTestEnv(t)

	response, err := env.usecase.SendCode(context.Background(), "portal-1", &requests.SendOtp{
		PhoneNumber: "+919876543210",
		Slot:        "signin-card",
	})
	require.NoError(t, err)
	code := env.storedCode(t, response.Handle)

	identity, err := env.usecase.ConfirmCode(context.Background(), "portal-1", &requests.ConfirmOtp{
		Handle: response.Handle,
		Code:   code,
	})
	require.NoError(t, err)
	assert.Equal(t, "919876543210", identity.PhoneNumber)
	assert.Equal(t, []string{"919876543210"}, env.creds.confirmed)
}

func TestOtpUsecase_ConfirmCodeIsOneShot(t *testing.T) {
	env := newOtpTestEnv(t)

	response, err := env.usecase.SendCode(context.Background(), "portal-1", &requests.SendOtp{
		PhoneNumber: "+919876543210",
		Slot:        "signin-card",
	})
	require.NoError(t, err)
	code := env.storedCode(t, response.Handle)

	_, err = env.usecase.ConfirmCode(context.Background(), "portal-1", &requests.ConfirmOtp{
		Handle: response.Handle,
		Code:   code,
	})
	require.NoError(t, err)

	_, err = env.usecase.ConfirmCode(context.Background(), "portal-1", &requests.ConfirmOtp{
		Handle: response.Handle,
		Code:   code,
	})
	assertDevMessage(t, err, constvars.ErrDevChallengeExpired)
}

func TestOtpUsecase_ConfirmCodeRejectsWrongCode(t *testing.T) {
	env := newOtpTestEnv(t)

	response, err := env.usecase.SendCode(context.Background(), "portal-1", &requests.SendOtp{
		PhoneNumber: "+919876543210",
		Slot:        "signin-card",
	})
	require.NoError(t, err)
	code := env.storedCode(t, response.Handle)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	_, err = env.usecase.ConfirmCode(context.Background(), "portal-1", &requests.ConfirmOtp{
		Handle: response.Handle,
		Code:   wrong,
	})
	assertDevMessage(t, err, constvars.ErrDevCodeRejected)
	assert.Empty(t, env.creds.confirmed)

	// The handle survives a wrong attempt; the right code still works.
	_, err = env.usecase.ConfirmCode(context.Background(), "portal-1", &requests.ConfirmOtp{
		Handle: response.Handle,
		Code:   code,
	})
	require.NoError(t, err)
}

func TestOtpUsecase_ConfirmCodeExpiredHandle(t *testing.T) {
	env := newOtpTestEnv(t)

	response, err := env.usecase.SendCode(context.Background(), "portal-1", &requests.SendOtp{
		PhoneNumber: "+919876543210",
		Slot:        "signin-card",
	})
	require.NoError(t, err)
	code := env.storedCode(t, response.Handle)

	env.mr.FastForward(6 * time.Minute)

	_, err = env.usecase.ConfirmCode(context.Background(), "portal-1", &requests.ConfirmOtp{
		Handle: response.Handle,
		Code:   code,
	})
	assertDevMessage(t, err, constvars.ErrDevChallengeExpired)
}

func TestOtpUsecase_DisposeChallengesTearsDownSessionSlots(t *testing.T) {
	env := newOtpTestEnv(t)

	_, err := env.usecase.SendCode(context.Background(), "portal-1", &requests.SendOtp{
		PhoneNumber: "+919876543210",
		Slot:        "signin-card",
	})
	require.NoError(t, err)
	_, err = env.usecase.SendCode(context.Background(), "portal-1", &requests.SendOtp{
		PhoneNumber: "+14155550123",
		Slot:        "signup-card",
	})
	require.NoError(t, err)
	_, err = env.usecase.SendCode(context.Background(), "portal-2", &requests.SendOtp{
		PhoneNumber: "+14155550199",
		Slot:        "signin-card",
	})
	require.NoError(t, err)

	env.usecase.DisposeChallenges(context.Background(), "portal-1")

	assert.ElementsMatch(t,
		[]string{"portal-1:signin-card", "portal-1:signup-card"},
		env.challenge.disposed,
	)
	assert.NotContains(t, env.challenge.verifiers, "portal-1:signin-card")
	assert.NotContains(t, env.challenge.verifiers, "portal-1:signup-card")

	// The other session's verifier is untouched.
	require.Contains(t, env.challenge.verifiers, "portal-2:signin-card")

	// Disposing again is a no-op.
	env.usecase.DisposeChallenges(context.Background(), "portal-1")
	assert.Len(t, env.challenge.disposed, 2)
}
