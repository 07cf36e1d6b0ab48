package utils

import (
	"curebird-service/internal/pkg/dto/requests"
	"strings"
)

func SanitizeRegisterAccountRequest(input *requests.RegisterAccount) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
}

func SanitizeLoginAccountRequest(input *requests.LoginAccount) {
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
}

func SanitizeFederatedSignInRequest(input *requests.FederatedSignIn) {
	input.Subject = strings.TrimSpace(input.Subject)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	input.DisplayName = strings.TrimSpace(input.DisplayName)
}

func SanitizeSendOtpRequest(input *requests.SendOtp) {
	input.PhoneNumber = NormalizePhoneDigits(input.PhoneNumber)
	input.Slot = strings.TrimSpace(input.Slot)
}

func SanitizeConfirmOtpRequest(input *requests.ConfirmOtp) {
	input.Handle = strings.TrimSpace(input.Handle)
	input.Code = strings.TrimSpace(input.Code)
}

func SanitizeOnboardingSubmitRequest(input *requests.OnboardingSubmit) {
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
}
