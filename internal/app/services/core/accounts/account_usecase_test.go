package accounts

import (
	"context"
	"curebird-service/internal/app/config"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/app/models"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/exceptions"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memoryAccountRepository struct {
	accounts map[string]*models.Account
	nextID   int
}

func newMemoryAccountRepository() *memoryAccountRepository {
	return &memoryAccountRepository{accounts: make(map[string]*models.Account)}
}

func (r *memoryAccountRepository) CreateAccount(ctx context.Context, account *models.Account) (string, error) {
	r.nextID++
	account.ID = fmt.Sprintf("account-%d", r.nextID)
	r.accounts[account.UID] = account
	return account.ID, nil
}

func (r *memoryAccountRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	for _, account := range r.accounts {
		if account.Email == email {
			return account, nil
		}
	}
	return nil, nil
}

func (r *memoryAccountRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*models.Account, error) {
	for _, account := range r.accounts {
		if account.PhoneNumber == phoneNumber {
			return account, nil
		}
	}
	return nil, nil
}

func (r *memoryAccountRepository) FindByUID(ctx context.Context, uid string) (*models.Account, error) {
	return r.accounts[uid], nil
}

func (r *memoryAccountRepository) UpdateAccount(ctx context.Context, account *models.Account) error {
	r.accounts[account.UID] = account
	return nil
}

func newTestProvider() (contracts.CredentialProvider, *memoryAccountRepository) {
	repo := newMemoryAccountRepository()
	provider := NewAccountUsecase(repo, &config.InternalConfig{}, zap.NewNop())
	return provider, repo
}

func assertDevMessage(t *testing.T, err error, devMessage string) {
	t.Helper()
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr), "expected CustomError, got %v", err)
	assert.Equal(t, devMessage, customErr.DevMessage)
}

func TestAccountUsecase_CreateThenSignIn(t *testing.T) {
	provider, repo := newTestProvider()
	ctx := context.Background()

	created, err := provider.CreateAccountWithPassword(ctx, "portal-1", "ravi@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, created.UID)

	// The stored hash is never the plaintext.
	stored := repo.accounts[created.UID]
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.Equal(t, models.ProviderPassword, stored.Provider)

	identity, err := provider.SignInWithPassword(ctx, "portal-1", "ravi@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, created.UID, identity.UID)
}

func TestAccountUsecase_DuplicateEmailRejected(t *testing.T) {
	provider, _ := newTestProvider()
	ctx := context.Background()

	_, err := provider.CreateAccountWithPassword(ctx, "portal-1", "ravi@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = provider.CreateAccountWithPassword(ctx, "portal-2", "ravi@example.com", "other-pass")
	assertDevMessage(t, err, constvars.ErrDevEmailAlreadyExists)
}

func TestAccountUsecase_SignInRejectsBadCredentials(t *testing.T) {
	provider, _ := newTestProvider()
	ctx := context.Background()

	_, err := provider.CreateAccountWithPassword(ctx, "portal-1", "ravi@example.com", "s3cret-pass")
	require.NoError(t, err)

	_, err = provider.SignInWithPassword(ctx, "portal-1", "ravi@example.com", "wrong-pass")
	assertDevMessage(t, err, constvars.ErrDevInvalidCredentials)

	// Unknown email fails the same way, leaking nothing about which part
	// was wrong.
	_, err = provider.SignInWithPassword(ctx, "portal-1", "unknown@example.com", "s3cret-pass")
	assertDevMessage(t, err, constvars.ErrDevInvalidCredentials)
}

func TestAccountUsecase_FederatedSignInCreatesAndUpdates(t *testing.T) {
	provider, repo := newTestProvider()
	ctx := context.Background()

	identity, err := provider.SignInWithFederatedAssertion(ctx, "portal-1", &contracts.FederatedAssertion{
		Subject:     "google-1",
		Email:       "asha@example.com",
		DisplayName: "Asha Menon",
		PhotoURL:    "https://photos.example.com/asha.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha Menon", identity.DisplayName)
	assert.Equal(t, models.ProviderGoogle, repo.accounts[identity.UID].Provider)

	// A repeat assertion with changed claims updates the same account.
	updated, err := provider.SignInWithFederatedAssertion(ctx, "portal-1", &contracts.FederatedAssertion{
		Subject:     "google-1",
		Email:       "asha@example.com",
		DisplayName: "Asha M",
		PhotoURL:    "https://photos.example.com/asha2.png",
	})
	require.NoError(t, err)
	assert.Equal(t, identity.UID, updated.UID)
	assert.Equal(t, "Asha M", repo.accounts[identity.UID].DisplayName)
}

func TestAccountUsecase_ConfirmPhoneIdentityCreatesAccountOnTheSpot(t *testing.T) {
	provider, repo := newTestProvider()
	ctx := context.Background()

	identity, err := provider.ConfirmPhoneIdentity(ctx, "portal-1", "919876543210")
	require.NoError(t, err)
	assert.Equal(t, "919876543210", identity.PhoneNumber)
	assert.True(t, identity.PhoneVerified)
	assert.Equal(t, models.ProviderPhone, repo.accounts[identity.UID].Provider)

	// Confirming the same number again reuses the account.
	again, err := provider.ConfirmPhoneIdentity(ctx, "portal-2", "919876543210")
	require.NoError(t, err)
	assert.Equal(t, identity.UID, again.UID)
}

func TestAccountUsecase_IdentityFanoutIsScopedPerPortalSession(t *testing.T) {
	provider, _ := newTestProvider()
	ctx := context.Background()

	var portal1Events, portal2Events []*models.Identity
	unsub1 := provider.SubscribeIdentityChanges("portal-1", func(identity *models.Identity) {
		portal1Events = append(portal1Events, identity)
	})
	defer unsub1()
	unsub2 := provider.SubscribeIdentityChanges("portal-2", func(identity *models.Identity) {
		portal2Events = append(portal2Events, identity)
	})
	defer unsub2()

	identity, err := provider.CreateAccountWithPassword(ctx, "portal-1", "ravi@example.com", "s3cret-pass")
	require.NoError(t, err)

	require.Len(t, portal1Events, 1)
	assert.Equal(t, identity.UID, portal1Events[0].UID)
	assert.Empty(t, portal2Events)

	require.NoError(t, provider.SignOut(ctx, "portal-1"))
	require.Len(t, portal1Events, 2)
	assert.Nil(t, portal1Events[1])
	assert.Empty(t, portal2Events)
}

func TestAccountUsecase_UnsubscribeStopsDelivery(t *testing.T) {
	provider, _ := newTestProvider()
	ctx := context.Background()

	var events []*models.Identity
	unsub := provider.SubscribeIdentityChanges("portal-1", func(identity *models.Identity) {
		events = append(events, identity)
	})

	_, err := provider.CreateAccountWithPassword(ctx, "portal-1", "ravi@example.com", "s3cret-pass")
	require.NoError(t, err)
	require.Len(t, events, 1)

	unsub()
	unsub() // second call is a no-op

	require.NoError(t, provider.SignOut(ctx, "portal-1"))
	assert.Len(t, events, 1)
}
