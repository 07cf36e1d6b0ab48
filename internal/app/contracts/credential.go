package contracts

import (
	"context"
	"curebird-service/internal/app/models"
)

// FederatedAssertion carries the claims asserted by a federated sign-in
// popup once the provider has validated them.
type FederatedAssertion struct {
	Subject     string
	Email       string
	DisplayName string
	PhotoURL    string
}

// CredentialProvider owns identities. Every successful sign-in publishes an
// identity-changed event for the portal session that performed it; sign-out
// publishes a nil identity.
type CredentialProvider interface {
	SignInWithPassword(ctx context.Context, portalSessionID, email, password string) (*models.Identity, error)
	CreateAccountWithPassword(ctx context.Context, portalSessionID, email, password string) (*models.Identity, error)
	SignInWithFederatedAssertion(ctx context.Context, portalSessionID string, assertion *FederatedAssertion) (*models.Identity, error)
	ConfirmPhoneIdentity(ctx context.Context, portalSessionID, phoneNumber string) (*models.Identity, error)
	SignOut(ctx context.Context, portalSessionID string) error

	// SubscribeIdentityChanges registers a callback for one portal session and
	// returns its unsubscribe function. After unsubscribing no further
	// callbacks fire.
	SubscribeIdentityChanges(portalSessionID string, callback func(*models.Identity)) func()
}
