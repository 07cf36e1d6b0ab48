package profiles

import (
	"context"
	"curebird-service/internal/app/contracts"
	"curebird-service/internal/app/models"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/exceptions"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

type ProfileMongoRepository struct {
	PatientCollection *mongo.Collection
	DoctorCollection  *mongo.Collection
	Log               *zap.Logger
}

func NewProfileMongoRepository(db *mongo.Client, dbName string, logger *zap.Logger) contracts.ProfileStore {
	database := db.Database(dbName)
	return &ProfileMongoRepository{
		PatientCollection: database.Collection(constvars.MongoCollectionPatients),
		DoctorCollection:  database.Collection(constvars.MongoCollectionDoctors),
		Log:               logger,
	}
}

func (r *ProfileMongoRepository) GetPatientProfile(ctx context.Context, uid string) (*models.PatientProfile, error) {
	var profile models.PatientProfile
	err := r.PatientCollection.FindOne(ctx, bson.M{"uid": uid}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &profile, nil
}

func (r *ProfileMongoRepository) GetDoctorProfile(ctx context.Context, uid string) (*models.DoctorProfile, error) {
	var profile models.DoctorProfile
	err := r.DoctorCollection.FindOne(ctx, bson.M{"uid": uid}).Decode(&profile)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &profile, nil
}

func (r *ProfileMongoRepository) SavePatientProfile(ctx context.Context, profile *models.PatientProfile) error {
	filter := bson.M{"uid": profile.UID}
	opts := options.Replace().SetUpsert(true)
	_, err := r.PatientCollection.ReplaceOne(ctx, filter, profile, opts)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *ProfileMongoRepository) SaveDoctorProfile(ctx context.Context, profile *models.DoctorProfile) error {
	filter := bson.M{"uid": profile.UID}
	opts := options.Replace().SetUpsert(true)
	_, err := r.DoctorCollection.ReplaceOne(ctx, filter, profile, opts)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// SubscribePatientProfile delivers the current document first, then follows
// the collection's change stream for that uid. A missing document is not an
// error: the subscription stays open so a later insert (the onboarding
// write) is still observed.
func (r *ProfileMongoRepository) SubscribePatientProfile(ctx context.Context, uid string, onSnapshot func(*models.PatientProfile)) (contracts.UnsubscribeFunc, error) {
	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"fullDocument.uid": uid}}},
	}
	opts := options.ChangeStream().SetFullDocument(options.UpdateLookup)

	streamCtx, cancel := context.WithCancel(context.Background())
	stream, err := r.PatientCollection.Watch(streamCtx, pipeline, opts)
	if err != nil {
		cancel()
		return nil, exceptions.ErrProfileSubscribe(err)
	}

	initial, err := r.GetPatientProfile(ctx, uid)
	if err != nil {
		cancel()
		stream.Close(context.Background())
		return nil, err
	}
	onSnapshot(initial)

	go func() {
		defer stream.Close(context.Background())
		for stream.Next(streamCtx) {
			// The pipeline matches on fullDocument.uid, so every decoded
			// event carries the looked-up document.
			var event struct {
				FullDocument *models.PatientProfile `bson:"fullDocument"`
			}
			if err := stream.Decode(&event); err != nil {
				r.Log.Error("ProfileMongoRepository.SubscribePatientProfile error decoding event",
					zap.String(constvars.LoggingIdentityUIDKey, uid),
					zap.Error(err),
				)
				continue
			}
			onSnapshot(event.FullDocument)
		}
	}()

	var once sync.Once
	unsubscribe := func() {
		once.Do(cancel)
	}
	return unsubscribe, nil
}
