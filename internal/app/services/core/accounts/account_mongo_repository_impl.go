package accounts

import (
	"context"
	"curebird-service/internal/app/models"
	"curebird-service/internal/pkg/constvars"
	"curebird-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type AccountMongoRepository struct {
	Collection *mongo.Collection
}

func NewAccountMongoRepository(db *mongo.Client, dbName string) AccountRepository {
	return &AccountMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAccounts),
	}
}

func (repo *AccountMongoRepository) CreateAccount(ctx context.Context, account *models.Account) (accountID string, err error) {
	result, err := repo.Collection.InsertOne(ctx, account)
	if err != nil {
		return "", exceptions.ErrMongoDBInsertDocument(err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex(), nil
}

func (r *AccountMongoRepository) FindByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	err := r.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &account, nil
}

func (r *AccountMongoRepository) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*models.Account, error) {
	var account models.Account
	err := r.Collection.FindOne(ctx, bson.M{"phoneNumber": phoneNumber}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &account, nil
}

func (r *AccountMongoRepository) FindByUID(ctx context.Context, uid string) (*models.Account, error) {
	var account models.Account
	err := r.Collection.FindOne(ctx, bson.M{"uid": uid}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &account, nil
}

func (r *AccountMongoRepository) UpdateAccount(ctx context.Context, account *models.Account) error {
	filter := bson.M{"uid": account.UID}
	update := bson.M{"$set": account}
	_, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
