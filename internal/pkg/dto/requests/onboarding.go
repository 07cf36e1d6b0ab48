package requests

type OnboardingSubmit struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email" validate:"omitempty,email"`
	ProfilePicture string `json:"profile_picture"`

	// Populated by the controller after base64 validation.
	ProfilePictureData      []byte `json:"-"`
	ProfilePictureExtension string `json:"-"`
}
