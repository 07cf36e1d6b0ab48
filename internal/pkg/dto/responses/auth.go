package responses

type Login struct {
	Token string `json:"token"`
}

type SendOtp struct {
	Handle      string `json:"handle"`
	PhoneNumber string `json:"phone_number"`
}

type Identity struct {
	UID         string `json:"uid"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	PhotoURL    string `json:"photo_url,omitempty"`
}
