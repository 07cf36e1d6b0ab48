package controllers

import (
	"context"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/app/models"
	"curebird-service/internal/app/services/core/otp"
	"curebird-service/internal/app/services/core/resolver"
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

type SessionController struct {
	Log            *zap.Logger
	SessionService contracts.SessionService
	SessionHub     *resolver.SessionHub
	OtpUsecase     otp.OtpUsecase
}

func NewSessionController(logger *zap.Logger, sessionService contracts.SessionService, sessionHub *resolver.SessionHub, otpUsecase otp.OtpUsecase) *SessionController {
	return &SessionController{
		Log:            logger,
		SessionService: sessionService,
		SessionHub:     sessionHub,
		OtpUsecase:     otpUsecase,
	}
}

func newSessionStateResponse(state models.SessionState, routeCtx models.RouteContext) *responses.SessionState {
	response := &responses.SessionState{
		Phase:        string(state.Phase),
		RouteContext: string(routeCtx),
	}
	if state.Identity != nil {
		response.Identity = newIdentityResponse(state.Identity)
	}
	if state.PatientProfile != nil {
		response.PatientProfile = state.PatientProfile
	}
	if state.DoctorProfile != nil {
		response.DoctorProfile = state.DoctorProfile
	}
	return response
}

// CreateSession opens a portal session: a server-side session record, its
// bearer token and a live resolver seeded with the reported initial path.
func (ctrl *SessionController) CreateSession(w http.ResponseWriter, r *http.Request) {
	request := new(requests.CreateSession)
	// The body is optional; a missing path starts the session at the root.
	_ = json.NewDecoder(r.Body).Decode(&request)
	if request.Path == "" {
		request.Path = "/"
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	session := &models.Session{SessionID: utils.GenerateUID()}
	token, err := ctrl.SessionService.CreateSession(ctx, session)
	if err != nil {
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.SessionHub.GetOrCreate(session.SessionID, request.Path)

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateSessionSuccess, responses.Login{Token: token})
}

func (ctrl *SessionController) GetState(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := r.Context().Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	sessionResolver := ctrl.SessionHub.GetOrCreate(sessionID, "/")
	response := newSessionStateResponse(sessionResolver.State(), sessionResolver.RouteContext())

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSessionStateSuccess, response)
}

// ReportRoute feeds a browser navigation into the session's history. The
// resolver only recomputes when the path crosses the context boundary.
func (ctrl *SessionController) ReportRoute(w http.ResponseWriter, r *http.Request) {
	request := new(requests.RouteChange)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	sessionID, _ := r.Context().Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	if !ctrl.SessionHub.ReportPathChange(sessionID, request.Path) {
		ctrl.SessionHub.GetOrCreate(sessionID, request.Path)
	}

	sessionResolver := ctrl.SessionHub.Get(sessionID)
	response := newSessionStateResponse(sessionResolver.State(), sessionResolver.RouteContext())

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateContextSuccess, response)
}

// Refresh forces a full re-resolution, the server-side equivalent of a page
// reload.
func (ctrl *SessionController) Refresh(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := r.Context().Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	sessionResolver := ctrl.SessionHub.GetOrCreate(sessionID, "/")
	sessionResolver.Refresh()

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RefreshSessionSuccess, nil)
}

func (ctrl *SessionController) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := r.Context().Value(constvars.CONTEXT_SESSION_ID_KEY).(string)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err := ctrl.SessionService.DeleteSession(ctx, sessionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	ctrl.SessionHub.Remove(sessionID)
	ctrl.OtpUsecase.DisposeChallenges(ctx, sessionID)

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteSessionSuccess, nil)
}
