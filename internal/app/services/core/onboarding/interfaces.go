package onboarding

import (
	"context"
	"curebird-service/internal/app/models"
	"curebird-service/internal/pkg/dto/requests"
	"curebird-service/internal/pkg/dto/responses"
)

type OnboardingUsecase interface {
	// Prefill derives form defaults from the signed-in identity.
	Prefill(identity *models.Identity) *responses.OnboardingPrefill
	// SubmitPatient writes the patient profile with the completion flag set.
	SubmitPatient(ctx context.Context, identity *models.Identity, request *requests.OnboardingSubmit) (*models.PatientProfile, error)
	// SubmitDoctor writes the doctor profile carrying the doctor role.
	SubmitDoctor(ctx context.Context, identity *models.Identity, request *requests.OnboardingSubmit) (*models.DoctorProfile, error)
}
