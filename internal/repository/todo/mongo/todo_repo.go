package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"todoTracker/internal/logger"
	"todoTracker/internal/models/todo"
	repo "todoTracker/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const collectionName = "todos"

type Storage struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func New(ctx context.Context, uri, database string) (*Storage, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(10).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		logger.Error("Repository: Ошибка подключения к MongoDB", err)
		return nil, fmt.Errorf("подключение к mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	coll := client.Database(database).Collection(collectionName)

	// индекс под выборку списка: владелец + сортировка по дате создания
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		logger.Error("Repository: Ошибка создания индекса", err)
		return nil, fmt.Errorf("создание индекса: %w", err)
	}

	logger.Info("Repository: Успешное подключение к MongoDB")
	return &Storage{client: client, coll: coll}, nil
}

func (s *Storage) Close(ctx context.Context) {
	if err := s.client.Disconnect(ctx); err != nil {
		logger.Error("Repository: Ошибка закрытия соединений MongoDB", err)
		return
	}
	logger.Info("Repository: Закрытие всех соединений MongoDB")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx, nil); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

func (s *Storage) Create(ctx context.Context, todoToCreate *todo.Todo) error {
	start := time.Now()

	res, err := s.coll.InsertOne(ctx, todoToCreate)
	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		todoToCreate.ID = oid
	}

	warnIfSlow("Create", start)
	return nil
}

func (s *Storage) GetByID(ctx context.Context, owner string, id primitive.ObjectID) (*todo.Todo, error) {
	start := time.Now()

	result := &todo.Todo{}
	err := s.coll.FindOne(ctx, ownerFilter(owner, id)).Decode(result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}

	warnIfSlow("GetByID", start)
	return result, nil
}

// List возвращает задачи владельца, новые первыми
func (s *Storage) List(ctx context.Context, owner string, filter repo.ListFilter) ([]*todo.Todo, error) {
	start := time.Now()

	query := bson.M{"owner": owner}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(filter.Limit).
		SetSkip(filter.Skip)

	cursor, err := s.coll.Find(ctx, query, opts)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer cursor.Close(ctx)

	todos := []*todo.Todo{}
	if err := cursor.All(ctx, &todos); err != nil {
		logger.Error("Repository: Ошибка чтения курсора", err)
		return nil, fmt.Errorf("чтение курсора: %w", err)
	}

	warnIfSlow("List", start)
	return todos, nil
}

// Update заменяет только переданные поля и обновляет updated_at.
// Запись другого владельца неотличима от несуществующей.
func (s *Storage) Update(ctx context.Context, owner string, id primitive.ObjectID, fields repo.UpdateFields) (*todo.Todo, error) {
	start := time.Now()

	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}

	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Description != nil {
		if *fields.Description == "" {
			unset["description"] = ""
		} else {
			set["description"] = *fields.Description
		}
	}
	if fields.Status != nil {
		set["status"] = *fields.Status
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	result := &todo.Todo{}
	err := s.coll.FindOneAndUpdate(ctx, ownerFilter(owner, id), update, opts).Decode(result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("обновление задачи: %w", err)
	}

	warnIfSlow("Update", start)
	return result, nil
}

func (s *Storage) Delete(ctx context.Context, owner string, id primitive.ObjectID) error {
	start := time.Now()

	res, err := s.coll.DeleteOne(ctx, ownerFilter(owner, id))
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if res.DeletedCount == 0 {
		return repo.ErrNotFound
	}

	warnIfSlow("Delete", start)
	return nil
}

// SetStatus пишет новый статус без проверки версии: переключение
// статуса работает по принципу last-write-wins
func (s *Storage) SetStatus(ctx context.Context, owner string, id primitive.ObjectID, status todo.Status) (*todo.Todo, error) {
	start := time.Now()

	update := bson.M{"$set": bson.M{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	result := &todo.Todo{}
	err := s.coll.FindOneAndUpdate(ctx, ownerFilter(owner, id), update, opts).Decode(result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось переключить статус", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("переключение статуса: %w", err)
	}

	warnIfSlow("SetStatus", start)
	return result, nil
}

func ownerFilter(owner string, id primitive.ObjectID) bson.M {
	return bson.M{"_id": id, "owner": owner}
}

func warnIfSlow(operation string, start time.Time) {
	if time.Since(start) > 100*time.Millisecond {
		logger.Warn("Repository: Медленная операция",
			zap.String("operation", operation),
			zap.Duration("ms", time.Since(start)))
	}
}
