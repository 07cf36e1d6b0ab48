package models

import "time"

// Identity is issued and owned by the credential provider. The rest of the
// application never mutates it except through provider operations.
type Identity struct {
	UID           string    `json:"uid" bson:"uid"`
	Email         string    `json:"email,omitempty" bson:"email,omitempty"`
	PhoneNumber   string    `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	DisplayName   string    `json:"displayName,omitempty" bson:"displayName,omitempty"`
	PhotoURL      string    `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	EmailVerified bool      `json:"emailVerified" bson:"emailVerified"`
	PhoneVerified bool      `json:"phoneVerified" bson:"phoneVerified"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
}

// Account is the stored credential record backing an Identity.
type Account struct {
	ID           string `bson:"_id,omitempty"`
	UID          string `bson:"uid"`
	Email        string `bson:"email,omitempty"`
	PhoneNumber  string `bson:"phoneNumber,omitempty"`
	PasswordHash string `bson:"passwordHash,omitempty"`
	DisplayName  string `bson:"displayName,omitempty"`
	PhotoURL     string `bson:"photoURL,omitempty"`
	Provider     string `bson:"provider"`
	TimeModel    `bson:",inline"`
}

func (a *Account) Identity() *Identity {
	return &Identity{
		UID:           a.UID,
		Email:         a.Email,
		PhoneNumber:   a.PhoneNumber,
		DisplayName:   a.DisplayName,
		PhotoURL:      a.PhotoURL,
		EmailVerified: a.Provider == ProviderGoogle,
		PhoneVerified: a.PhoneNumber != "",
		CreatedAt:     a.CreatedAt,
	}
}

const (
	ProviderPassword = "password"
	ProviderGoogle   = "google"
	ProviderPhone    = "phone"
)
