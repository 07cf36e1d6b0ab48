package models

// OtpChallenge is the one-shot confirmation capability returned by a
// successful code send. It becomes invalid after a single confirmation or an
// explicit reset.
type OtpChallenge struct {
	Handle      string `json:"handle"`
	PhoneNumber string `json:"phoneNumber"`
	Consumed    bool   `json:"-"`
}
