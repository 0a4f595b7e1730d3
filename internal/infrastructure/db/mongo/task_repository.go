package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/task-tracker/internal/core/domain"
	"github.com/taskboard/task-tracker/internal/core/ports"
)

const tasksCollection = "tasks"

// TaskRepository persists tasks in the tasks collection.
type TaskRepository struct {
	coll *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{coll: db.Collection(tasksCollection)}
}

type mongoTask struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description,omitempty"`
	DueDate     time.Time          `bson:"due_date,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func (mt *mongoTask) toDomain() *domain.Task {
	return &domain.Task{
		ID:          mt.ID.Hex(),
		OwnerID:     mt.OwnerID,
		Title:       mt.Title,
		Description: mt.Description,
		DueDate:     mt.DueDate,
		Status:      domain.TaskStatus(mt.Status),
		CreatedAt:   mt.CreatedAt,
		UpdatedAt:   mt.UpdatedAt,
	}
}

// EnsureIndexes creates the owner and owner+status indexes backing the list
// endpoint and the purge pipeline.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "owner_id", Value: 1}, {Key: "status", Value: 1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}

func (r *TaskRepository) Create(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTask{
		OwnerID:     task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		DueDate:     task.DueDate,
		Status:      string(task.Status),
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	created := *task
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTask
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TaskRepository) FindByOwner(ctx context.Context, ownerID string, filter ports.TaskFilter) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query, opts := ownerQuery(ownerID, filter)

	cur, err := r.coll.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer cur.Close(ctx)

	var tasks []domain.Task
	for cur.Next(ctx) {
		var mt mongoTask
		if err := cur.Decode(&mt); err != nil {
			return nil, fmt.Errorf("decode task: %w", err)
		}
		tasks = append(tasks, *mt.toDomain())
	}
	return tasks, cur.Err()
}

func (r *TaskRepository) Update(ctx context.Context, id string, fields ports.UpdateTaskFields) (*domain.Task, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTaskNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC()}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		set["description"] = *fields.Description
	}
	if fields.DueDate != nil {
		set["due_date"] = *fields.DueDate
	}
	if fields.Status != nil {
		set["status"] = string(*fields.Status)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mt mongoTask
	err = r.coll.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTaskNotFound
		}
		return nil, fmt.Errorf("update task: %w", err)
	}
	return mt.toDomain(), nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTaskNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// DeleteByOwner removes every task belonging to ownerID.
func (r *TaskRepository) DeleteByOwner(ctx context.Context, ownerID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.coll.DeleteMany(ctx, bson.M{"owner_id": ownerID})
	if err != nil {
		return 0, fmt.Errorf("purge tasks: %w", err)
	}
	return res.DeletedCount, nil
}

// ownerQuery translates the enumerated filter into a Mongo query and find
// options. Only recognized fields ever reach the query; there is no dynamic
// passthrough from the request.
func ownerQuery(ownerID string, filter ports.TaskFilter) (bson.M, *options.FindOptions) {
	query := bson.M{"owner_id": ownerID}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	key := filter.SortKey
	if key == "" {
		key = ports.SortByCreatedAt
	}
	dir := 1
	if filter.SortDescending {
		dir = -1
	}

	return query, options.Find().SetSort(bson.D{{Key: key, Value: dir}})
}
