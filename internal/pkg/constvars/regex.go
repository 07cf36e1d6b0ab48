package constvars

const (
	RegexContainAtLeastOneSpecialChar = `.*[!@#$%^&*(),.?":{}|<>].*`
	RegexContainAtLeastOneUppercase   = `.*[A-Z].*`
	RegexContainAtLeastOneLowercase   = `.*[a-z].*`
	RegexContainAtLeastOneDigit       = `.*\d.*`
	RegexEmail                        = `^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`
	RegexNumeric                      = `^\d+$`
	RegexPhoneNumberGeneral           = `^\+[1-9]\d{9,14}$`
	// RegexPhoneNumberDigitsInternational matches "E.164 without plus", digits only.
	// 10-15 digits, cannot start with 0.
	RegexPhoneNumberDigitsInternational = `^[1-9]\d{9,14}$`
	RegexOtpCode                        = `^\d{6}$`
)
