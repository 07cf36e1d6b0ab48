package config

type InternalConfig struct {
	App   App
	JWT   JWT
	Otp   Otp
	Minio AppMinio
}

type App struct {
	Env                        string
	Port                       string
	Version                    string
	Address                    string
	Timezone                   string
	EndpointPrefix             string
	DoctorPathPrefix           string
	RabbitMQSmsQueue           string
	MaxRequests                int
	ShutdownTimeout            int
	RequestBodyLimitInMegabyte int
	SessionExpiredTimeInHours  int
}

type JWT struct {
	Secret        string
	ExpTimeInHour int
}

type Otp struct {
	Length                 int
	ExpiredTimeInMinutes   int
	ChallengeTTLInMinutes  int
	SendsPerPhonePerMinute int
}

type AppMinio struct {
	BucketName                      string
	ProfilePictureMaxUploadSizeInMB int64
	PreSignedUrlObjectExpiryInHours int
}
