package contracts

import (
	"context"
	"curebird-service/internal/app/models"
)

// UnsubscribeFunc stops a live document subscription. Calling it more than
// once is a no-op.
type UnsubscribeFunc func()

// ProfileStore is the document-store boundary for the two disjoint profile
// collections. Lookups that find no document return (nil, nil).
type ProfileStore interface {
	GetPatientProfile(ctx context.Context, uid string) (*models.PatientProfile, error)
	GetDoctorProfile(ctx context.Context, uid string) (*models.DoctorProfile, error)
	SavePatientProfile(ctx context.Context, profile *models.PatientProfile) error
	SaveDoctorProfile(ctx context.Context, profile *models.DoctorProfile) error

	// SubscribePatientProfile delivers the current document (nil when absent)
	// followed by every subsequent change until unsubscribed.
	SubscribePatientProfile(ctx context.Context, uid string, onSnapshot func(*models.PatientProfile)) (UnsubscribeFunc, error)
}
