package controllers

import (
	"context"
	"curebird-service/internal/app/models"
	"curebird-service/internal/app/services/core/auth"
	"curebird-service/internal/app/services/core/otp"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/dto/requests"
	"curebird-service/internal/pkg/dto/responses"
	"curebird-service/internal/pkg/exceptions"
	"curebird-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AuthController struct {
	Log         *zap.Logger
	AuthUsecase auth.AuthUsecase
	OtpUsecase  otp.OtpUsecase
}

func NewAuthController(logger *zap.Logger, authUsecase auth.AuthUsecase, otpUsecase otp.OtpUsecase) *AuthController {
	return &AuthController{
		Log:         logger,
		AuthUsecase: authUsecase,
		OtpUsecase:  otpUsecase,
	}
}

func newIdentityResponse(identity *models.Identity) *responses.Identity {
	return &responses.Identity{
		UID:         identity.UID,
		Email:       identity.Email,
		PhoneNumber: identity.PhoneNumber,
		DisplayName: identity.DisplayName,
		PhotoURL:    identity.PhotoURL,
	}
}

func (ctrl *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	// Bind body to request
	request := new(requests.RegisterAccount)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	// Sanitize request
	utils.SanitizeRegisterAccountRequest(request)

	// Validate request
	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID, _ := ctx.Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	identity, err := ctrl.AuthUsecase.Register(ctx, sessionID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.RegisterSuccessMessage, newIdentityResponse(identity))
}

func (ctrl *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	request := new(requests.LoginAccount)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeLoginAccountRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID, _ := ctx.Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	identity, err := ctrl.AuthUsecase.Login(ctx, sessionID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoginSuccessMessage, newIdentityResponse(identity))
}

func (ctrl *AuthController) FederatedSignIn(w http.ResponseWriter, r *http.Request) {
	ctrl.handleFederated(w, r, ctrl.AuthUsecase.FederatedSignIn)
}

func (ctrl *AuthController) DoctorFederatedSignIn(w http.ResponseWriter, r *http.Request) {
	ctrl.handleFederated(w, r, ctrl.AuthUsecase.DoctorFederatedSignIn)
}

func (ctrl *AuthController) handleFederated(
	w http.ResponseWriter,
	r *http.Request,
	signIn func(ctx context.Context, portalSessionID string, request *requests.FederatedSignIn) (*models.Identity, error),
) {
	request := new(requests.FederatedSignIn)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeFederatedSignInRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID, _ := ctx.Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	identity, err := signIn(ctx, sessionID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FederatedLoginSuccess, newIdentityResponse(identity))
}

func (ctrl *AuthController) DoctorLogin(w http.ResponseWriter, r *http.Request) {
	request := new(requests.LoginAccount)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeLoginAccountRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID, _ := ctx.Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	identity, err := ctrl.AuthUsecase.DoctorLogin(ctx, sessionID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoginSuccessMessage, newIdentityResponse(identity))
}

func (ctrl *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID, _ := ctx.Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	err := ctrl.AuthUsecase.Logout(ctx, sessionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// The signed-out session keeps no live challenge verifiers; the next
	// visit creates fresh ones.
	ctrl.OtpUsecase.DisposeChallenges(ctx, sessionID)

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LogoutSuccessMessage, nil)
}

func (ctrl *AuthController) SendOtp(w http.ResponseWriter, r *http.Request) {
	request := new(requests.SendOtp)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeSendOtpRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID, _ := ctx.Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	response, err := ctrl.OtpUsecase.SendCode(ctx, sessionID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OtpSentSuccessMessage, response)
}

func (ctrl *AuthController) ConfirmOtp(w http.ResponseWriter, r *http.Request) {
	request := new(requests.ConfirmOtp)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeConfirmOtpRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	sessionID, _ := ctx.Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	identity, err := ctrl.OtpUsecase.ConfirmCode(ctx, sessionID, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.OtpConfirmedSuccessMessage, newIdentityResponse(identity))
}
