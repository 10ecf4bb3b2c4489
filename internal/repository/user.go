package repository

import (
	"errors"

	"github.com/resssoft/casefolio/internal/database"
	"github.com/resssoft/casefolio/internal/models"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollectionName = "users"

type UserRepository interface {
	Add(models.User) (models.User, error)
	GetByUsername(string) (models.User, error)
	Count() (int64, error)
}

type userRepo struct {
	dbApp      database.MongoClientApplication
	collection *mongo.Collection
}

func NewUserRepo(db database.MongoClientApplication) UserRepository {
	collection := db.GetCollection(usersCollectionName)
	db.CreateUniqueIndex(collection, "username")
	return &userRepo{
		dbApp:      db,
		collection: collection,
	}
}

func (u *userRepo) Add(user models.User) (models.User, error) {
	user.MongoID = primitive.NewObjectID()
	_, err := u.collection.InsertOne(u.dbApp.GetContext(), user)
	if err != nil {
		if isDuplicateKey(err) {
			return user, models.ErrDuplicateUsername
		}
		log.Error().AnErr("Insert user error", err).Send()
		return user, err
	}
	return user, nil
}

func (u *userRepo) GetByUsername(username string) (models.User, error) {
	user := models.User{}
	err := u.collection.FindOne(u.dbApp.GetContext(), bson.M{"username": username}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return user, models.ErrNotFound
	}
	if err != nil {
		log.Error().AnErr("user read error", err).Str("username", username).Send()
		return user, err
	}
	return user, nil
}

func (u *userRepo) Count() (int64, error) {
	return u.collection.CountDocuments(u.dbApp.GetContext(), bson.D{})
}

// isDuplicateKey reports whether a write failed on a unique index.
func isDuplicateKey(err error) bool {
	var writeErr mongo.WriteException
	if errors.As(err, &writeErr) {
		for _, we := range writeErr.WriteErrors {
			if we.Code == 11000 || we.Code == 11001 {
				return true
			}
		}
	}
	return false
}
