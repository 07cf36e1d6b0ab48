package requests

type RegisterAccount struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"password"`
	RetypePassword string `json:"retype_password"`
}

type LoginAccount struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type FederatedSignIn struct {
	Subject     string `json:"subject" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	DisplayName string `json:"display_name"`
	PhotoURL    string `json:"photo_url"`
}

type SendOtp struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Slot        string `json:"slot" validate:"required"`
}

type ConfirmOtp struct {
	Handle string `json:"handle" validate:"required"`
	Code   string `json:"code" validate:"required"`
}
