package constvars

const (
	LoggingRequestIDKey      = "request_id"
	LoggingDataKey           = "data"
	LoggingSessionDataKey    = "session_data"
	LoggingQueryKey          = "query_params"
	LoggingResponseKey       = "response"
	LoggingRequestKey        = "request"
	LoggingMethodKey         = "method"
	LoggingEndpointKey       = "endpoint"
	LoggingRemoteAddrKey     = "remote_addr"
	LoggingUserAgentKey      = "user_agent"
	LoggingStatusCodeKey     = "status_code"
	LoggingDurationKey       = "duration"
	LoggingSuccessKey        = "success"
	LoggingQueueNameKey      = "queue_name"
	LoggingIdentityUIDKey    = "identity_uid"
	LoggingRouteContextKey   = "route_context"
	LoggingSessionStateKey   = "session_state"
	LoggingResolveEpochKey   = "resolve_epoch"
	LoggingChallengeSlotKey  = "challenge_slot"
	LoggingPhoneNumberKey    = "phone_number"
	LoggingBucketNameKey     = "bucket_name"
	LoggingObjectNameKey     = "object_name"
	LoggingErrorCodeKey      = "error_code"
	LoggingErrorMessageKey   = "error_message"
	LoggingResponseLengthKey = "response_length"
)
