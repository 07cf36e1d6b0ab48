package responses

type SessionState struct {
	Phase          string      `json:"phase"`
	RouteContext   string      `json:"route_context"`
	Identity       *Identity   `json:"identity,omitempty"`
	PatientProfile interface{} `json:"patient_profile,omitempty"`
	DoctorProfile  interface{} `json:"doctor_profile,omitempty"`
}

type OnboardingPrefill struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	PhotoURL  string `json:"photo_url,omitempty"`
}
