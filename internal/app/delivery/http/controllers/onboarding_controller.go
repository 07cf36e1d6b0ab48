package controllers

import (
	"context"
	"curebird-service/internal/app/models"
	"curebird-service/internal/app/services/core/onboarding"
	"curebird-service/internal/app/services/core/resolver"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/dto/requests"
	"curebird-service/internal/pkg/exceptions"
	"curebird-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type OnboardingController struct {
	Log               *zap.Logger
	OnboardingUsecase onboarding.OnboardingUsecase
	SessionHub        *resolver.SessionHub
}

func NewOnboardingController(logger *zap.Logger, onboardingUsecase onboarding.OnboardingUsecase, sessionHub *resolver.SessionHub) *OnboardingController {
	return &OnboardingController{
		Log:               logger,
		OnboardingUsecase: onboardingUsecase,
		SessionHub:        sessionHub,
	}
}

// signedInIdentity reads the identity out of the session's resolved state.
// Onboarding is only reachable for a signed-in, not-yet-profiled identity.
func (ctrl *OnboardingController) signedInIdentity(sessionID string) (*models.Identity, error) {
	sessionResolver := ctrl.SessionHub.Get(sessionID)
	if sessionResolver == nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	state := sessionResolver.State()
	if state.Identity == nil {
		return nil, exceptions.ErrTokenInvalidOrExpired(nil)
	}
	return state.Identity, nil
}

func (ctrl *OnboardingController) GetPrefill(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := r.Context().Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	identity, err := ctrl.signedInIdentity(sessionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response := ctrl.OnboardingUsecase.Prefill(identity)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetPrefillSuccess, response)
}

func (ctrl *OnboardingController) SubmitPatient(w http.ResponseWriter, r *http.Request) {
	ctrl.handleSubmit(w, r, func(ctx context.Context, identity *models.Identity, request *requests.OnboardingSubmit) (interface{}, error) {
		return ctrl.OnboardingUsecase.SubmitPatient(ctx, identity, request)
	})
}

func (ctrl *OnboardingController) SubmitDoctor(w http.ResponseWriter, r *http.Request) {
	ctrl.handleSubmit(w, r, func(ctx context.Context, identity *models.Identity, request *requests.OnboardingSubmit) (interface{}, error) {
		return ctrl.OnboardingUsecase.SubmitDoctor(ctx, identity, request)
	})
}

func (ctrl *OnboardingController) handleSubmit(
	w http.ResponseWriter,
	r *http.Request,
	submit func(ctx context.Context, identity *models.Identity, request *requests.OnboardingSubmit) (interface{}, error),
) {
	request := new(requests.OnboardingSubmit)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeOnboardingSubmitRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	if request.ProfilePicture != "" {
		imageData, extension, err := utils.DecodeBase64Image(request.ProfilePicture)
		if err != nil {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrImageValidation(err))
			return
		}
		request.ProfilePictureData = imageData
		request.ProfilePictureExtension = extension
	}

	sessionID, _ := r.Context().Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	identity, err := ctrl.signedInIdentity(sessionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	profile, err := submit(ctx, identity, request)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	// The profile write changes what resolution would produce; refresh so
	// the stored state reflects it immediately.
	if sessionResolver := ctrl.SessionHub.Get(sessionID); sessionResolver != nil {
		sessionResolver.Refresh()
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.OnboardingSubmitSuccess, profile)
}
