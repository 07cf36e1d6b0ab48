package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":     "is required",
	"email":        "must be a valid email",
	"alphanum":     "must contain only alphanumeric characters",
	"min":          "must be at least %s characters long",
	"max":          "maximum at %s characters long",
	"eqfield":      "must match %s",
	"password":     "must be at least 8 characters long, contain at least one special character, and one uppercase letter",
	"numeric":      "must be a number",
	"len":          "must be %s characters long",
	"oneof":        "must be one of [%s]",
	"url":          "must be a valid URL",
	"uuid":         "must be a valid UUID",
	"base64":       "must be a valid base64 string",
	"phone_number": "must be a valid international phone number",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":     true,
	"max":     true,
	"len":     true,
	"eqfield": true,
	"oneof":   true,
}

// Error messages for clients
const (
	ErrClientSomethingWrongWithApplication = "something went wrong with the application, please try again later"
	ErrClientCannotProcessRequest          = "cannot process the request"
	ErrClientNotAuthorized                 = "you are not authorized to do this action"
	ErrClientNotLoggedIn                   = "you are not logged in, please login first"
	ErrClientServerLongRespond             = "server took too long to respond, please try again later"

	ErrClientInvalidUsernameOrPassword = "invalid email or password"
	ErrClientEmailAlreadyExists        = "email already used"
	ErrClientPasswordsDoNotMatch       = "password and retype password do not match"

	ErrClientInvalidPhoneNumber = "please enter a valid phone number with country code"
	ErrClientChallengeExpired   = "verification challenge expired, please request a new code"
	ErrClientInvalidCode        = "verification code must be 6 digits"
	ErrClientCodeRejected       = "verification code does not match, please try again"
	ErrClientMissingField       = "first name and last name are required"
	ErrClientProfileLookup      = "unable to load your profile right now"
	ErrClientUploadFailed       = "failed to upload the profile picture"
	ErrClientRoleMismatch       = "access denied: this account is not registered for this area"
	ErrClientInvalidImageFormat = "invalid image, allowed formats are jpg, jpeg and png"
)

// Error messages for developers
const (
	ErrDevValidationFailed          = "request validation failed"
	ErrDevCannotParseJSON           = "cannot parse request body as JSON"
	ErrDevCannotMarshalJSON         = "cannot marshal value to JSON"
	ErrDevImageValidationFailed     = "image validation failed"
	ErrDevServerDeadlineExceeded    = "server deadline exceeded"
	ErrDevInvalidCredentials        = "credentials do not match any account"
	ErrDevEmailAlreadyExists        = "account with the given email already exists"
	ErrDevFailedToHashPassword      = "failed to hash password with bcrypt"
	ErrDevPasswordsDoNotMatch       = "password and retype_password fields differ"
	ErrDevAuthTokenMissing          = "authorization token missing from request"
	ErrDevAuthTokenInvalidOrExpired = "authorization token invalid or expired"
	ErrDevAuthGenerateToken         = "failed to generate session token"

	ErrDevInvalidPhoneNumber    = "phone number failed international digits validation"
	ErrDevChallengeExpired      = "challenge token expired or was never issued"
	ErrDevChallengeNotReady     = "challenge verifier was not readied before sending a code"
	ErrDevInvalidCodeFormat     = "otp code failed local format validation"
	ErrDevCodeRejected          = "otp code does not match the stored challenge code"
	ErrDevChallengeConsumed     = "otp challenge was already consumed or reset"
	ErrDevMissingRequiredField  = "required onboarding field is empty"
	ErrDevProfileLookupFailed   = "profile store lookup failed"
	ErrDevProfileSubscribe      = "profile store subscription failed"
	ErrDevProfileWrite          = "profile store write failed"
	ErrDevUploadFailed          = "blob storage upload failed"
	ErrDevPresignedURL          = "failed to resolve presigned download url"
	ErrDevRoleMismatch          = "identity holds a profile in the wrong collection for the current context"
	ErrDevOtpSendThrottled      = "otp send throttled for this phone number"
	ErrDevMongoDBInsertDocument = "mongodb failed to insert document"
	ErrDevMongoDBFindDocument   = "mongodb failed to find document"
	ErrDevMongoDBUpdateDocument = "mongodb failed to update document"
	ErrDevRedisSet              = "redis failed to set key"
	ErrDevRedisGet              = "redis failed to get key"
	ErrDevRedisDelete           = "redis failed to delete key"
	ErrDevRabbitMQPublish       = "rabbitmq failed to publish message to queue %s"
	ErrDevMinioCreateObject     = "minio failed to create object in bucket %s"
)
