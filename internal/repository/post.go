package repository

import (
	"github.com/resssoft/casefolio/internal/database"
	"github.com/resssoft/casefolio/internal/models"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const postsCollectionName = "posts"

type PostRepository interface {
	Add(models.Post) (models.Post, error)
	GetBySlug(string) (models.Post, error)
	GetByID(primitive.ObjectID) (models.Post, error)
	GetAllOrdered() ([]models.Post, error)
	GetAllByCreated() ([]models.Post, error)
	MaxOrder() (int, error)
	UpdateOrder(primitive.ObjectID, int) error
	Remove(primitive.ObjectID) error
	Count() (int64, error)
}

type postRepo struct {
	dbApp      database.MongoClientApplication
	collection *mongo.Collection
}

func NewPostRepo(db database.MongoClientApplication) PostRepository {
	collection := db.GetCollection(postsCollectionName)
	db.CreateUniqueIndex(collection, "slug")
	return &postRepo{
		dbApp:      db,
		collection: collection,
	}
}

func (u *postRepo) Add(post models.Post) (models.Post, error) {
	post.MongoID = primitive.NewObjectID()
	_, err := u.collection.InsertOne(u.dbApp.GetContext(), post)
	if err != nil {
		if isDuplicateKey(err) {
			return post, models.ErrDuplicateSlug
		}
		log.Error().AnErr("Insert post error", err).Send()
		return post, err
	}
	return post, nil
}

func (u *postRepo) GetBySlug(slug string) (models.Post, error) {
	return u.getByFilter(bson.M{"slug": slug})
}

func (u *postRepo) GetByID(id primitive.ObjectID) (models.Post, error) {
	return u.getByFilter(bson.M{"_id": id})
}

func (u *postRepo) getByFilter(filter bson.M) (models.Post, error) {
	post := models.Post{}
	err := u.collection.FindOne(u.dbApp.GetContext(), filter).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return post, models.ErrNotFound
	}
	if err != nil {
		log.Error().AnErr("post read error", err).Interface("filter", filter).Send()
		return post, err
	}
	return post, nil
}

// GetAllOrdered returns every post sorted by the persisted sort key. Ties are
// broken by creation time and then id, so the result is deterministic even
// while order values collide.
func (u *postRepo) GetAllOrdered() ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "order", Value: 1},
		{Key: "createdAt", Value: 1},
		{Key: "_id", Value: 1},
	})
	return u.getAll(findOptions)
}

func (u *postRepo) GetAllByCreated() ([]models.Post, error) {
	findOptions := options.Find().SetSort(bson.D{
		{Key: "createdAt", Value: -1},
	})
	return u.getAll(findOptions)
}

func (u *postRepo) getAll(findOptions *options.FindOptions) ([]models.Post, error) {
	post := models.Post{}
	var posts []models.Post
	cursor, err := u.collection.Find(u.dbApp.GetContext(), bson.D{}, findOptions)
	if err != nil {
		return posts, err
	}
	defer cursor.Close(u.dbApp.GetContext())
	for cursor.Next(u.dbApp.GetContext()) {
		err := cursor.Decode(&post)
		if err != nil {
			log.Error().AnErr("post read error", err).Send()
			continue
		}
		posts = append(posts, post)
	}
	if err := cursor.Err(); err != nil {
		return posts, err
	}
	return posts, nil
}

// MaxOrder returns the highest persisted sort key, or -1 for an empty
// collection.
func (u *postRepo) MaxOrder() (int, error) {
	post := models.Post{}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "order", Value: -1}})
	err := u.collection.FindOne(u.dbApp.GetContext(), bson.D{}, findOptions).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return -1, nil
	}
	if err != nil {
		return -1, err
	}
	return post.Order, nil
}

// UpdateOrder writes a single post's sort key. An id that matches nothing is
// not an error: the reorder contract leaves unknown ids to the convergence
// check on the caller's side.
func (u *postRepo) UpdateOrder(id primitive.ObjectID, order int) error {
	result, err := u.collection.UpdateOne(
		u.dbApp.GetContext(),
		bson.M{"_id": id},
		bson.D{
			{Key: "$set", Value: bson.M{"order": order}},
		})
	if err != nil {
		log.Error().AnErr("Update post order error", err).Send()
		return err
	}
	if result.MatchedCount == 0 {
		log.Debug().Str("id", id.Hex()).Msg("order update matched no post")
	}
	return nil
}

func (u *postRepo) Remove(id primitive.ObjectID) error {
	result, err := u.collection.DeleteOne(u.dbApp.GetContext(), bson.M{"_id": id})
	if err != nil {
		log.Error().AnErr("Delete post error", err).Send()
		return err
	}
	if result.DeletedCount == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (u *postRepo) Count() (int64, error) {
	return u.collection.CountDocuments(u.dbApp.GetContext(), bson.D{})
}
