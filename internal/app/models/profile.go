package models

import "time"

// PatientProfile lives in the patients collection, keyed by identity uid.
type PatientProfile struct {
	UID               string    `json:"uid" bson:"uid"`
	FirstName         string    `json:"firstName" bson:"firstName"`
	LastName          string    `json:"lastName" bson:"lastName"`
	Email             string    `json:"email,omitempty" bson:"email,omitempty"`
	PhoneNumber       string    `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	PhotoURL          string    `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	IsProfileComplete bool      `json:"isProfileComplete" bson:"isProfileComplete"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
}

// DoctorProfile lives in the doctors collection, keyed by the same uid space.
// An identity may hold both profiles at once; the route context decides which
// one applies.
type DoctorProfile struct {
	UID               string    `json:"uid" bson:"uid"`
	FirstName         string    `json:"firstName" bson:"firstName"`
	LastName          string    `json:"lastName" bson:"lastName"`
	Name              string    `json:"name" bson:"name"`
	Email             string    `json:"email,omitempty" bson:"email,omitempty"`
	PhoneNumber       string    `json:"phoneNumber,omitempty" bson:"phoneNumber,omitempty"`
	PhotoURL          string    `json:"photoURL,omitempty" bson:"photoURL,omitempty"`
	Role              string    `json:"role" bson:"role"`
	JoinedVia         string    `json:"joinedVia" bson:"joinedVia"`
	IsProfileComplete bool      `json:"isProfileComplete" bson:"isProfileComplete"`
	CreatedAt         time.Time `json:"createdAt" bson:"createdAt"`
}

// AccountKind makes the implicit two-collection role model explicit: for a
// given (identity, context) pair exactly one of the variants applies.
type AccountKindTag string

const (
	AccountKindNone    AccountKindTag = "none"
	AccountKindPatient AccountKindTag = "patient"
	AccountKindDoctor  AccountKindTag = "doctor"
)

type AccountKind struct {
	Tag     AccountKindTag
	Patient *PatientProfile
	Doctor  *DoctorProfile
}

func AccountKindOfPatient(profile *PatientProfile) AccountKind {
	if profile == nil || !profile.IsProfileComplete {
		return AccountKind{Tag: AccountKindNone}
	}
	return AccountKind{Tag: AccountKindPatient, Patient: profile}
}

func AccountKindOfDoctor(profile *DoctorProfile) AccountKind {
	if profile == nil || profile.Role != "doctor" {
		return AccountKind{Tag: AccountKindNone}
	}
	return AccountKind{Tag: AccountKindDoctor, Doctor: profile}
}
