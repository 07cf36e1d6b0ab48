package routectx

import (
	"curebird-service/internal/app/models"
	"strings"
)

// Classifier decides which half of the portal a path belongs to. The doctor
// prefix is an exact segment match: "/doctor" and "/doctor/visits" are doctor
// context, "/doctortalk" is not.
type Classifier struct {
	DoctorPathPrefix string
}

func NewClassifier(doctorPathPrefix string) *Classifier {
	return &Classifier{DoctorPathPrefix: doctorPathPrefix}
}

func (c *Classifier) Classify(path string) models.RouteContext {
	if path == c.DoctorPathPrefix || strings.HasPrefix(path, c.DoctorPathPrefix+"/") {
		return models.DoctorContext
	}
	return models.PatientContext
}
