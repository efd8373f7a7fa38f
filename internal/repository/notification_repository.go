package repository

import (
	"context"
	"errors"
	"time"

	"kavun/internal/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrNotificationNotFound = errors.New("notification not found")

// NotificationRepository scopes every mutation to the owning user. A filter
// that names both the id and the owner can never touch another user's
// records, so ownership checks don't need a separate read.
type NotificationRepository interface {
	Index(ctx context.Context, userId string) ([]entity.Notification, error)
	Create(ctx context.Context, notification entity.Notification) (string, error)
	MarkRead(ctx context.Context, userId, notificationId string) error
	MarkAllRead(ctx context.Context, userId string) error
	Delete(ctx context.Context, userId, notificationId string) error
	CountUnread(ctx context.Context, userId string) (int64, error)
}

type notificationRepository struct {
	db mongo.Database
}

func NewNotificationRepository(db mongo.Database) NotificationRepository {
	return &notificationRepository{
		db: db,
	}
}

func (r *notificationRepository) Index(ctx context.Context, userId string) ([]entity.Notification, error) {
	collection := r.db.Collection("notifications")
	filter := bson.M{"userId": userId}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var notifications []entity.Notification
	err = cursor.All(ctx, &notifications)
	if err != nil {
		return nil, err
	}

	return notifications, nil
}

func (r *notificationRepository) Create(ctx context.Context, notification entity.Notification) (string, error) {
	collection := r.db.Collection("notifications")
	notification.Id = uuid.New().String()
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}

	_, err := collection.InsertOne(ctx, notification)
	if err != nil {
		return "", err
	}

	return notification.Id, nil
}

func (r *notificationRepository) MarkRead(ctx context.Context, userId, notificationId string) error {
	collection := r.db.Collection("notifications")
	filter := bson.M{
		"_id":    notificationId,
		"userId": userId,
	}
	update := bson.M{
		"$set": bson.M{"read": true},
	}

	result, err := collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *notificationRepository) MarkAllRead(ctx context.Context, userId string) error {
	collection := r.db.Collection("notifications")
	filter := bson.M{
		"userId": userId,
		"read":   false,
	}
	update := bson.M{
		"$set": bson.M{"read": true},
	}

	_, err := collection.UpdateMany(ctx, filter, update)
	return err
}

func (r *notificationRepository) Delete(ctx context.Context, userId, notificationId string) error {
	collection := r.db.Collection("notifications")
	filter := bson.M{
		"_id":    notificationId,
		"userId": userId,
	}

	result, err := collection.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrNotificationNotFound
	}

	return nil
}

func (r *notificationRepository) CountUnread(ctx context.Context, userId string) (int64, error) {
	collection := r.db.Collection("notifications")
	filter := bson.M{
		"userId": userId,
		"read":   false,
	}

	return collection.CountDocuments(ctx, filter)
}
