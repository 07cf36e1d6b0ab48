package auth

import (
	"context"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/app/models"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/dto/requests"
	"curebird-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type authUsecase struct {
	CredentialProvider contracts.CredentialProvider
	ProfileStore       contracts.ProfileStore
	Log                *zap.Logger
}

func NewAuthUsecase(
	credentialProvider contracts.CredentialProvider,
	profileStore contracts.ProfileStore,
	logger *zap.Logger,
) AuthUsecase {
	return &authUsecase{
		CredentialProvider: credentialProvider,
		ProfileStore:       profileStore,
		Log:                logger,
	}
}

func (uc *authUsecase) Register(ctx context.Context, portalSessionID string, request *requests.RegisterAccount) (*models.Identity, error) {
	if request.Password != request.RetypePassword {
		return nil, exceptions.ErrPasswordAndRetypePasswordNotMatch(nil)
	}
	return uc.CredentialProvider.CreateAccountWithPassword(ctx, portalSessionID, request.Email, request.Password)
}

func (uc *authUsecase) Login(ctx context.Context, portalSessionID string, request *requests.LoginAccount) (*models.Identity, error) {
	return uc.CredentialProvider.SignInWithPassword(ctx, portalSessionID, request.Email, request.Password)
}

func (uc *authUsecase) FederatedSignIn(ctx context.Context, portalSessionID string, request *requests.FederatedSignIn) (*models.Identity, error) {
	return uc.CredentialProvider.SignInWithFederatedAssertion(ctx, portalSessionID, &contracts.FederatedAssertion{
		Subject:     request.Subject,
		Email:       request.Email,
		DisplayName: request.DisplayName,
		PhotoURL:    request.PhotoURL,
	})
}

func (uc *authUsecase) DoctorLogin(ctx context.Context, portalSessionID string, request *requests.LoginAccount) (*models.Identity, error) {
	identity, err := uc.CredentialProvider.SignInWithPassword(ctx, portalSessionID, request.Email, request.Password)
	if err != nil {
		return nil, err
	}
	return uc.applyDoctorGate(ctx, portalSessionID, identity)
}

func (uc *authUsecase) DoctorFederatedSignIn(ctx context.Context, portalSessionID string, request *requests.FederatedSignIn) (*models.Identity, error) {
	identity, err := uc.FederatedSignIn(ctx, portalSessionID, request)
	if err != nil {
		return nil, err
	}
	return uc.applyDoctorGate(ctx, portalSessionID, identity)
}

func (uc *authUsecase) Logout(ctx context.Context, portalSessionID string) error {
	return uc.CredentialProvider.SignOut(ctx, portalSessionID)
}

// applyDoctorGate rejects a doctor sign-in when the identity's profile
// document exists but does not carry the doctor role. The identity is signed
// out again before the rejection so the portal session is left signed out,
// not half signed in. A missing document passes: that identity goes to
// doctor onboarding.
func (uc *authUsecase) applyDoctorGate(ctx context.Context, portalSessionID string, identity *models.Identity) (*models.Identity, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	profile, err := uc.ProfileStore.GetDoctorProfile(ctx, identity.UID)
	if err != nil {
		return nil, exceptions.ErrProfileLookupFailed(err)
	}
	if profile != nil && profile.Role != constvars.RoleDoctor {
		uc.Log.Warn("authUsecase.applyDoctorGate role mismatch, signing out",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingIdentityUIDKey, identity.UID),
		)
		if signOutErr := uc.CredentialProvider.SignOut(ctx, portalSessionID); signOutErr != nil {
			return nil, signOutErr
		}
		return nil, exceptions.ErrRoleMismatch(nil)
	}
	return identity, nil
}
