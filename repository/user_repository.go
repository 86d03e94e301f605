package repository

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"time"

	"maharashtra-guide/models"
	"maharashtra-guide/utils/errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserRepository is the document-store boundary for user records. Lookups
// that find nothing fail with errors.ErrNotFound; an unreachable store fails
// with errors.ErrStoreUnavailable.
type UserRepository interface {
	FindByType(ctx context.Context, userType models.UserType) ([]models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, user *models.User) (string, error)
	UpdateLocation(ctx context.Context, id string, lat, lon float64, at time.Time) error
	SetPasswordHash(ctx context.Context, id, hash string) error
}

// Connect opens a pooled client for uri and checks that the server answers.
// The client is returned even when the ping fails so callers can keep
// serving and report the store as unavailable per request.
func Connect(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(timeout).
		SetConnectTimeout(timeout)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		return client, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}

type MongoUserRepository struct {
	collection *mongo.Collection
	timeout    time.Duration
}

func NewMongoUserRepository(db *mongo.Database, timeout time.Duration) *MongoUserRepository {
	return &MongoUserRepository{
		collection: db.Collection("users"),
		timeout:    timeout,
	}
}

// EnsureIndexes creates the unique username and email indexes. Legacy data
// may violate them, so failures are logged rather than returned.
func (r *MongoUserRepository) EnsureIndexes(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		{
			Keys: bson.D{{Key: "email", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("email_unique").
				SetPartialFilterExpression(bson.M{"email": bson.M{"$type": "string"}}),
		},
		{
			Keys:    bson.D{{Key: "userType", Value: 1}},
			Options: options.Index().SetName("user_type"),
		},
	}
	if _, err := r.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Printf("Failed to create user indexes: %v", err)
	}
}

func (r *MongoUserRepository) FindByType(ctx context.Context, userType models.UserType) ([]models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"userType": userType}, opts)
	if err != nil {
		return nil, storeError("find users by type", err)
	}
	defer cursor.Close(ctx)

	users := []models.User{}
	if err := cursor.All(ctx, &users); err != nil {
		return nil, storeError("decode users by type", err)
	}
	return users, nil
}

func (r *MongoUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "find user by id", idFilter(id))
}

func (r *MongoUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "find user by username", bson.M{"username": username})
}

func (r *MongoUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "find user by email", bson.M{"email": email})
}

func (r *MongoUserRepository) findOne(ctx context.Context, op string, filter bson.M) (*models.User, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var user models.User
	if err := r.collection.FindOne(ctx, filter).Decode(&user); err != nil {
		return nil, storeError(op, err)
	}
	return &user, nil
}

func (r *MongoUserRepository) Create(ctx context.Context, user *models.User) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return "", storeError("create user", err)
	}
	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("create user: unexpected inserted id %v", result.InsertedID)
	}
	user.ID = oid.Hex()
	return user.ID, nil
}

func (r *MongoUserRepository) UpdateLocation(ctx context.Context, id string, lat, lon float64, at time.Time) error {
	update := bson.M{
		"$set": bson.M{
			"currentLatitude":    models.NewDegrees(lat),
			"currentLongitude":   models.NewDegrees(lon),
			"lastLocationUpdate": at,
		},
	}
	return r.updateOne(ctx, "update user location", id, update)
}

func (r *MongoUserRepository) SetPasswordHash(ctx context.Context, id, hash string) error {
	update := bson.M{
		"$set":   bson.M{"passwordHash": hash},
		"$unset": bson.M{"password": ""},
	}
	return r.updateOne(ctx, "set password hash", id, update)
}

func (r *MongoUserRepository) updateOne(ctx context.Context, op, id string, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	result, err := r.collection.UpdateOne(ctx, idFilter(id), update)
	if err != nil {
		return storeError(op, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("%s: %w", op, errors.ErrNotFound)
	}
	return nil
}

// idFilter matches ObjectID keys by their hex form and falls back to plain
// string keys for records imported with custom identifiers.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": oid}
	}
	return bson.M{"_id": id}
}

func storeError(op string, err error) error {
	switch {
	case stderrors.Is(err, mongo.ErrNoDocuments):
		return fmt.Errorf("%s: %w", op, errors.ErrNotFound)
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%s: %w", op, errors.ErrConflict)
	case mongo.IsNetworkError(err), mongo.IsTimeout(err), stderrors.Is(err, mongo.ErrClientDisconnected):
		return fmt.Errorf("%s: %w (%v)", op, errors.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
