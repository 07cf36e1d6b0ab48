package constvars

const (
	MongoCollectionAccounts = "accounts"
	MongoCollectionPatients = "patients"
	MongoCollectionDoctors  = "doctors"
)

const (
	MinioProfilePicturePrefix       = "profile_pictures"
	MinioDoctorProfilePicturePrefix = "doctor_profiles"
)

var ImageAllowedProfilePictureFormats = []string{".jpg", ".jpeg", ".png"}
