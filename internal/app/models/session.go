package models

// RouteContext classifies which half of the portal the browser is in. It is
// derived from the URL path prefix, never from the identity.
type RouteContext string

const (
	PatientContext RouteContext = "patient"
	DoctorContext  RouteContext = "doctor"
)

// SessionPhase enumerates the six mutually exclusive UI contexts.
type SessionPhase string

const (
	PhaseLoading           SessionPhase = "loading"
	PhaseUnauthenticated   SessionPhase = "unauthenticated"
	PhasePatientActive     SessionPhase = "patient_active"
	PhasePatientOnboarding SessionPhase = "patient_onboarding"
	PhaseDoctorActive      SessionPhase = "doctor_active"
	PhaseDoctorOnboarding  SessionPhase = "doctor_onboarding"
)

// SessionState is the resolved, in-memory-only session value. It has no
// lifecycle beyond the current portal session and is recomputed on every
// identity event and every context change.
type SessionState struct {
	Phase          SessionPhase    `json:"phase"`
	Identity       *Identity       `json:"identity,omitempty"`
	PatientProfile *PatientProfile `json:"patientProfile,omitempty"`
	DoctorProfile  *DoctorProfile  `json:"doctorProfile,omitempty"`
}

func LoadingState() SessionState {
	return SessionState{Phase: PhaseLoading}
}

func UnauthenticatedState() SessionState {
	return SessionState{Phase: PhaseUnauthenticated}
}

func PatientActiveState(identity *Identity, profile *PatientProfile) SessionState {
	return SessionState{Phase: PhasePatientActive, Identity: identity, PatientProfile: profile}
}

func PatientOnboardingState(identity *Identity) SessionState {
	return SessionState{Phase: PhasePatientOnboarding, Identity: identity}
}

func DoctorActiveState(identity *Identity, profile *DoctorProfile) SessionState {
	return SessionState{Phase: PhaseDoctorActive, Identity: identity, DoctorProfile: profile}
}

func DoctorOnboardingState(identity *Identity) SessionState {
	return SessionState{Phase: PhaseDoctorOnboarding, Identity: identity}
}

// Session is the server-side record behind the portal session token.
type Session struct {
	SessionID   string `json:"sessionId"`
	UID         string `json:"uid,omitempty"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}
