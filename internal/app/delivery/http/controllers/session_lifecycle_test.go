package controllers

import (
	"context"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/app/models"
	"curebird-service/internal/app/services/core/resolver"
	"curebird-service/internal/app/services/core/routectx"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/dto/requests"
	"curebird-service/internal/pkg/dto/responses"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeOtpUsecase struct {
	disposedSessions []string
}

func (f *fakeOtpUsecase) SendCode(ctx context.Context, portalSessionID string, request *requests.SendOtp) (*responses.SendOtp, error) {
	return &responses.SendOtp{}, nil
}

func (f *fakeOtpUsecase) ConfirmCode(ctx context.Context, portalSessionID string, request *requests.ConfirmOtp) (*models.Identity, error) {
	return &models.Identity{}, nil
}

func (f *fakeOtpUsecase) DisposeChallenges(ctx context.Context, portalSessionID string) {
	f.disposedSessions = append(f.disposedSessions, portalSessionID)
}

type fakeAuthUsecase struct {
	loggedOut []string
	logoutErr error
}

func (f *fakeAuthUsecase) Register(ctx context.Context, portalSessionID string, request *requests.RegisterAccount) (*models.Identity, error) {
	return nil, nil
}

func (f *fakeAuthUsecase) Login(ctx context.Context, portalSessionID string, request *requests.LoginAccount) (*models.Identity, error) {
	return nil, nil
}

func (f *fakeAuthUsecase) FederatedSignIn(ctx context.Context, portalSessionID string, request *requests.FederatedSignIn) (*models.Identity, error) {
	return nil, nil
}

func (f *fakeAuthUsecase) DoctorLogin(ctx context.Context, portalSessionID string, request *requests.LoginAccount) (*models.Identity, error) {
	return nil, nil
}

func (f *fakeAuthUsecase) DoctorFederatedSignIn(ctx context.Context, portalSessionID string, request *requests.FederatedSignIn) (*models.Identity, error) {
	return nil, nil
}

func (f *fakeAuthUsecase) Logout(ctx context.Context, portalSessionID string) error {
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.loggedOut = append(f.loggedOut, portalSessionID)
	return nil
}

type fakeSessionService struct {
	deleted []string
}

func (f *fakeSessionService) CreateSession(ctx context.Context, session *models.Session) (string, error) {
	return "token", nil
}

func (f *fakeSessionService) ParseSessionData(ctx context.Context, sessionData string) (*models.Session, error) {
	return nil, nil
}

func (f *fakeSessionService) GetSessionData(ctx context.Context, sessionID string) (string, error) {
	return "", nil
}

func (f *fakeSessionService) DeleteSession(ctx context.Context, sessionID string) error {
	f.deleted = append(f.deleted, sessionID)
	return nil
}

func (f *fakeSessionService) VerifySessionToken(ctx context.Context, token string) (string, error) {
	return "", nil
}

var _ contracts.SessionService = (*fakeSessionService)(nil)

func requestWithSession(method, target, sessionID string) *http.Request {
	request := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(request.Context(), constvars.CONTEXT_SESSION_ID_KEY, sessionID)
	return request.WithContext(ctx)
}

func TestAuthController_LogoutDisposesSessionChallenges(t *testing.T) {
	authUsecase := &fakeAuthUsecase{}
	otpUsecase := &fakeOtpUsecase{}
	ctrl := NewAuthController(zap.NewNop(), authUsecase, otpUsecase)

	recorder := httptest.NewRecorder()
	ctrl.Logout(recorder, requestWithSession(http.MethodPost, "/auth/logout", "portal-1"))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []string{"portal-1"}, authUsecase.loggedOut)
	assert.Equal(t, []string{"portal-1"}, otpUsecase.disposedSessions)
}

func TestAuthController_LogoutFailureKeepsChallenges(t *testing.T) {
	authUsecase := &fakeAuthUsecase{logoutErr: errors.New("provider unavailable")}
	otpUsecase := &fakeOtpUsecase{}
	ctrl := NewAuthController(zap.NewNop(), authUsecase, otpUsecase)

	recorder := httptest.NewRecorder()
	ctrl.Logout(recorder, requestWithSession(http.MethodPost, "/auth/logout", "portal-1"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	// A failed sign-out can be retried against the same verifiers.
	assert.Empty(t, otpUsecase.disposedSessions)
}

func TestSessionController_DeleteSessionDisposesChallenges(t *testing.T) {
	sessionService := &fakeSessionService{}
	otpUsecase := &fakeOtpUsecase{}
	hub := resolver.NewSessionHub(routectx.NewClassifier("/doctor"), nil, nil, zap.NewNop())
	ctrl := NewSessionController(zap.NewNop(), sessionService, hub, otpUsecase)

	recorder := httptest.NewRecorder()
	ctrl.DeleteSession(recorder, requestWithSession(http.MethodDelete, "/session", "portal-1"))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, []string{"portal-1"}, sessionService.deleted)
	assert.Equal(t, []string{"portal-1"}, otpUsecase.disposedSessions)
}
