// Package tasksmongostore persists tasks as documents in a MongoDB collection.
package tasksmongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrazmi/tasktracker/core/repositories"
	"github.com/jrazmi/tasktracker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasktracker/infrastructure/mongodb"
	"github.com/jrazmi/tasktracker/sdk/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Completed   bool               `bson:"completed"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d document) toTask() tasksrepo.Task {
	return tasksrepo.Task{
		TaskID:      d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		Completed:   d.Completed,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type Store struct {
	log  *logger.Logger
	coll *mongo.Collection
}

func NewStore(log *logger.Logger, coll *mongo.Collection) *Store {
	return &Store{
		log:  log,
		coll: coll,
	}
}

var newestFirst = bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}

func (s *Store) List(ctx context.Context) ([]tasksrepo.Task, error) {
	cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, mongodb.HandleMongoError(err)
	}

	var docs []document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, mongodb.HandleMongoError(err)
	}

	tasks := make([]tasksrepo.Task, len(docs))
	for i, d := range docs {
		tasks[i] = d.toTask()
	}
	return tasks, nil
}

func (s *Store) GetByID(ctx context.Context, taskID string) (tasksrepo.Task, error) {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}

	var doc document
	if err := s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return tasksrepo.Task{}, notFound(err)
	}
	return doc.toTask(), nil
}

func (s *Store) Create(ctx context.Context, task tasksrepo.Task) (tasksrepo.Task, error) {
	doc := document{
		ID:          primitive.NewObjectID(),
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return tasksrepo.Task{}, fmt.Errorf("insert task: %w", mongodb.HandleMongoError(err))
	}
	return doc.toTask(), nil
}

func (s *Store) Update(ctx context.Context, taskID string, patch tasksrepo.TaskPatch) (tasksrepo.Task, error) {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}

	var set bson.D
	if patch.Title != nil {
		set = append(set, bson.E{Key: "title", Value: *patch.Title})
	}
	if patch.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *patch.Description})
	}
	if patch.Completed != nil {
		set = append(set, bson.E{Key: "completed", Value: *patch.Completed})
	}

	update := bson.D{{Key: "$max", Value: bson.D{{Key: "updatedAt", Value: patch.UpdatedAt}}}}
	if len(set) > 0 {
		update = append(update, bson.E{Key: "$set", Value: set})
	}

	var doc document
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return tasksrepo.Task{}, notFound(err)
	}
	return doc.toTask(), nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	oid, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return repositories.ErrNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return mongodb.HandleMongoError(err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func notFound(err error) error {
	err = mongodb.HandleMongoError(err)
	if errors.Is(err, mongodb.ErrDBNotFound) {
		return repositories.ErrNotFound
	}
	return err
}
