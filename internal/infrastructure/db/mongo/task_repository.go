package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskmanager/tasks-api/internal/core/domain"
)

type TaskRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{db: db, col: db.Collection(collectionTasks)}
}

// Create assigns the next id from the counters collection and inserts the task.
func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionTasks)
	if err != nil {
		return nil, err
	}

	doc := *t
	doc.ID = id
	doc.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return &doc, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func (r *TaskRepository) List(ctx context.Context, offset, limit int) ([]*domain.Task, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count tasks: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	items := []*domain.Task{}
	for cur.Next(ctx) {
		var t domain.Task
		if err := cur.Decode(&t); err != nil {
			return nil, 0, fmt.Errorf("decode task: %w", err)
		}
		t.CreatedAt = t.CreatedAt.UTC()
		items = append(items, &t)
	}
	if err := cur.Err(); err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}
	return items, total, nil
}

// Update applies $set / $unset for the fields present in patch and returns
// the document after the update.
func (r *TaskRepository) Update(ctx context.Context, id int64, patch domain.TaskPatch) (*domain.Task, error) {
	if patch.IsEmpty() {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.Task
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		updateDocument(patch),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	t.CreatedAt = t.CreatedAt.UTC()
	return &t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("delete task: %w", err)
	}
	return res.DeletedCount > 0, nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.RunCommand(ctx, bson.D{{Key: "ping", Value: 1}}).Err()
}

func updateDocument(patch domain.TaskPatch) bson.M {
	set := bson.M{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.ClearDescription {
		set["description"] = nil
	} else if patch.Description != nil {
		set["description"] = *patch.Description
	}
	if patch.Status != nil {
		set["status"] = *patch.Status
	}
	return bson.M{"$set": set}
}
