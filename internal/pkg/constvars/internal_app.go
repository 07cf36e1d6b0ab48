package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_ID_KEY           ContextKey = "session_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "CRBRD_SVC_"
)

const (
	// URL prefix that switches the portal into the doctor context.
	DoctorPathPrefixDefault = "/doctor"

	OTP_LENGTH           = 6
	OTP_CODE_KEY_PREFIX  = "otp:code:"
	CHALLENGE_KEY_PREFIX = "challenge:"
	SESSION_KEY_PREFIX   = "session:"
)

const (
	RoleDoctor = "doctor"

	JoinedViaPhone  = "phone"
	JoinedViaGoogle = "google"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)
