package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Auth messages
	LoginSuccessMessage         = "successfully login"
	RegisterSuccessMessage      = "account created successfully"
	LogoutSuccessMessage        = "successfully logout"
	OtpSentSuccessMessage       = "verification code sent"
	OtpConfirmedSuccessMessage  = "phone number verified successfully"
	FederatedLoginSuccess       = "successfully signed in with federated account"

	// Session messages
	CreateSessionSuccess     = "portal session created successfully"
	DeleteSessionSuccess     = "portal session closed successfully"
	GetSessionStateSuccess   = "resolved session state successfully"
	UpdateContextSuccess     = "route context updated successfully"
	RefreshSessionSuccess    = "session re-resolution triggered"

	// Onboarding messages
	OnboardingSubmitSuccess = "profile saved successfully"
	GetPrefillSuccess       = "get onboarding prefill successfully"
)
