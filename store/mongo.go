package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/SamarthKasar123/Primewave/models"
)

// MongoProjectStore keeps each project as one document in a projects
// collection.
type MongoProjectStore struct {
	Collection *mongo.Collection
}

func NewMongoProjectStore(collection *mongo.Collection) *MongoProjectStore {
	return &MongoProjectStore{Collection: collection}
}

func (s *MongoProjectStore) Insert(ctx context.Context, p *models.Project) error {
	result, err := s.Collection.InsertOne(ctx, p)
	if err != nil {
		return fmt.Errorf("failed to insert project: %v", err)
	}
	p.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoProjectStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var project models.Project
	err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching project: %v", err)
	}
	return &project, nil
}

func (s *MongoProjectStore) FindByClient(ctx context.Context, clientID primitive.ObjectID) ([]models.Project, error) {
	return s.find(ctx, bson.M{"client": clientID})
}

func (s *MongoProjectStore) FindAll(ctx context.Context) ([]models.Project, error) {
	return s.find(ctx, bson.M{})
}

func (s *MongoProjectStore) find(ctx context.Context, filter bson.M) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := s.Collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching projects: %v", err)
	}
	defer cursor.Close(ctx)

	var projects []models.Project
	if err = cursor.All(ctx, &projects); err != nil {
		return nil, fmt.Errorf("error decoding projects: %v", err)
	}
	return projects, nil
}

func (s *MongoProjectStore) Replace(ctx context.Context, p *models.Project) error {
	result, err := s.Collection.ReplaceOne(ctx, bson.M{"_id": p.ID}, p)
	if err != nil {
		return fmt.Errorf("failed to update project: %v", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

type MongoClientStore struct {
	Collection *mongo.Collection
}

func NewMongoClientStore(collection *mongo.Collection) *MongoClientStore {
	return &MongoClientStore{Collection: collection}
}

func (s *MongoClientStore) Insert(ctx context.Context, c *models.Client) error {
	result, err := s.Collection.InsertOne(ctx, c)
	if err != nil {
		return fmt.Errorf("failed to insert client: %v", err)
	}
	c.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoClientStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Client, error) {
	var client models.Client
	if err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching client: %v", err)
	}
	return &client, nil
}

func (s *MongoClientStore) FindByEmail(ctx context.Context, email string) (*models.Client, error) {
	var client models.Client
	if err := s.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&client); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching client: %v", err)
	}
	return &client, nil
}

type MongoManagerStore struct {
	Collection *mongo.Collection
}

func NewMongoManagerStore(collection *mongo.Collection) *MongoManagerStore {
	return &MongoManagerStore{Collection: collection}
}

func (s *MongoManagerStore) Insert(ctx context.Context, m *models.Manager) error {
	result, err := s.Collection.InsertOne(ctx, m)
	if err != nil {
		return fmt.Errorf("failed to insert manager: %v", err)
	}
	m.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *MongoManagerStore) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Manager, error) {
	var manager models.Manager
	if err := s.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&manager); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching manager: %v", err)
	}
	return &manager, nil
}

func (s *MongoManagerStore) FindByUsername(ctx context.Context, username string) (*models.Manager, error) {
	var manager models.Manager
	if err := s.Collection.FindOne(ctx, bson.M{"username": username}).Decode(&manager); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching manager: %v", err)
	}
	return &manager, nil
}

// MongoPinger pings the deployment the collections live on.
type MongoPinger struct {
	Client *mongo.Client
}

func (p *MongoPinger) Ping(ctx context.Context) error {
	return p.Client.Ping(ctx, nil)
}
