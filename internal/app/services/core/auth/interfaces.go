package auth

import (
	"context"
	"curebird-service/internal/app/models"
	"curebird-service/internal/pkg/dto/requests"
)

type AuthUsecase interface {
	Register(ctx context.Context, portalSessionID string, request *requests.RegisterAccount) (*models.Identity, error)
	Login(ctx context.Context, portalSessionID string, request *requests.LoginAccount) (*models.Identity, error)
	FederatedSignIn(ctx context.Context, portalSessionID string, request *requests.FederatedSignIn) (*models.Identity, error)

	// DoctorLogin and DoctorFederatedSignIn apply the doctor gate: an
	// identity whose profile document exists without the doctor role is
	// signed out again and rejected.
	DoctorLogin(ctx context.Context, portalSessionID string, request *requests.LoginAccount) (*models.Identity, error)
	DoctorFederatedSignIn(ctx context.Context, portalSessionID string, request *requests.FederatedSignIn) (*models.Identity, error)

	Logout(ctx context.Context, portalSessionID string) error
}
