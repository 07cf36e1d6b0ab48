package onboarding

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
	"strings"
	"time"

	"go.uber.org/zap"
)

type onboardingUsecase struct {
	ProfileStore   contracts.ProfileStore
	MinioStorage   contracts.Storage
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
}

func NewOnboardingUsecase(
	profileStore contracts.ProfileStore,
	minioStorage contracts.Storage,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) OnboardingUsecase {
	return &onboardingUsecase{
		ProfileStore:   profileStore,
		MinioStorage:   minioStorage,
		InternalConfig: internalConfig,
		Log:            logger,
	}
}

func (uc *onboardingUsecase) Prefill(identity *models.Identity) *responses.OnboardingPrefill {
	firstName, lastName := utils.SplitDisplayName(identity.DisplayName)
	return &responses.OnboardingPrefill{
		FirstName: firstName,
		LastName:  lastName,
		Email:     identity.Email,
		PhotoURL:  identity.PhotoURL,
	}
}

func (uc *onboardingUsecase) SubmitPatient(ctx context.Context, identity *models.Identity, request *requests.OnboardingSubmit) (*models.PatientProfile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("onboardingUsecase.SubmitPatient called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentityUIDKey, identity.UID),
	)

	if err := validateRequiredFields(request); err != nil {
		return nil, err
	}

	photoURL, err := uc.resolvePhotoURL(ctx, identity, request, constvars.MinioProfilePicturePrefix)
	if err != nil {
		return nil, err
	}

	profile := &models.PatientProfile{
		UID:               identity.UID,
		FirstName:         request.FirstName,
		LastName:          request.LastName,
		Email:             request.Email,
		PhoneNumber:       identity.PhoneNumber,
		PhotoURL:          photoURL,
		IsProfileComplete: true,
		CreatedAt:         time.Now(),
	}
	err = uc.ProfileStore.SavePatientProfile(ctx, profile)
	if err != nil {
		return nil, exceptions.ErrProfileWrite(err)
	}

	uc.Log.Info("onboardingUsecase.SubmitPatient succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentityUIDKey, identity.UID),
	)
	return profile, nil
}

func (uc *onboardingUsecase) SubmitDoctor(ctx context.Context, identity *models.Identity, request *requests.OnboardingSubmit) (*models.DoctorProfile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("onboardingUsecase.SubmitDoctor called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentityUIDKey, identity.UID),
	)

	if err := validateRequiredFields(request); err != nil {
		return nil, err
	}

	photoURL, err := uc.resolvePhotoURL(ctx, identity, request, constvars.MinioDoctorProfilePicturePrefix)
	if err != nil {
		return nil, err
	}

	joinedVia := constvars.JoinedViaGoogle
	if identity.PhoneVerified {
		joinedVia = constvars.JoinedViaPhone
	}

	profile := &models.DoctorProfile{
		UID:               identity.UID,
		FirstName:         request.FirstName,
		LastName:          request.LastName,
		Name:              strings.TrimSpace(request.FirstName + " " + request.LastName),
		Email:             request.Email,
		PhoneNumber:       identity.PhoneNumber,
		PhotoURL:          photoURL,
		Role:              constvars.RoleDoctor,
		JoinedVia:         joinedVia,
		IsProfileComplete: true,
		CreatedAt:         time.Now(),
	}
	err = uc.ProfileStore.SaveDoctorProfile(ctx, profile)
	if err != nil {
		return nil, exceptions.ErrProfileWrite(err)
	}

	uc.Log.Info("onboardingUsecase.SubmitDoctor succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingIdentityUIDKey, identity.UID),
	)
	return profile, nil
}

// resolvePhotoURL uploads the submitted avatar and resolves it to a
// presigned URL. Without an upload the identity's existing photo is carried
// over unchanged.
func (uc *onboardingUsecase) resolvePhotoURL(ctx context.Context, identity *models.Identity, request *requests.OnboardingSubmit, prefix string) (string, error) {
	if len(request.ProfilePictureData) == 0 {
		return identity.PhotoURL, nil
	}

	err := utils.ValidateImageFormat(request.ProfilePictureExtension, constvars.ImageAllowedProfilePictureFormats)
	if err != nil {
		return "", exceptions.ErrImageValidation(err)
	}
	err = utils.ValidateImageSize(request.ProfilePictureData, uc.InternalConfig.Minio.ProfilePictureMaxUploadSizeInMB)
	if err != nil {
		return "", exceptions.ErrImageValidation(err)
	}

	fileName := utils.GenerateFileName(prefix, identity.UID, request.ProfilePictureExtension)
	objectName, err := uc.MinioStorage.UploadBase64Image(ctx, request.ProfilePictureData, uc.InternalConfig.Minio.BucketName, fileName, request.ProfilePictureExtension)
	if err != nil {
		return "", exceptions.ErrUploadFailed(err)
	}

	expiry := time.Duration(uc.InternalConfig.Minio.PreSignedUrlObjectExpiryInHours) * time.Hour
	photoURL, err := uc.MinioStorage.PresignedDownloadURL(ctx, uc.InternalConfig.Minio.BucketName, objectName, expiry)
	if err != nil {
		return "", exceptions.ErrUploadFailed(err)
	}
	return photoURL, nil
}

func validateRequiredFields(request *requests.OnboardingSubmit) error {
	if strings.TrimSpace(request.FirstName) == "" {
		return exceptions.ErrMissingRequiredField(fmt.Errorf("first_name is required"))
	}
	if strings.TrimSpace(request.LastName) == "" {
		return exceptions.ErrMissingRequiredField(fmt.Errorf("last_name is required"))
	}
	return nil
}
