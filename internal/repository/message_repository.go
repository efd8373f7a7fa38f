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

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	Get(ctx context.Context, messageId string) (entity.Message, error)
	Create(ctx context.Context, message entity.Message) (string, error)
	FindBetween(ctx context.Context, userId1, userId2 string) ([]entity.Message, error)
	LatestBetween(ctx context.Context, userId1, userId2 string) (entity.Message, error)
	CountUnreadFrom(ctx context.Context, sender, receiver string) (int64, error)
	CountUnread(ctx context.Context, receiver string) (int64, error)
	MarkRead(ctx context.Context, messageId string) error
	MarkReadBetween(ctx context.Context, sender, receiver string) error
}

type messageRepository struct {
	db mongo.Database
}

func NewMessageRepository(db mongo.Database) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func betweenFilter(userId1, userId2 string) bson.M {
	return bson.M{
		"$or": bson.A{
			bson.M{"sender": userId1, "receiver": userId2},
			bson.M{"sender": userId2, "receiver": userId1},
		},
	}
}

func (r *messageRepository) Get(ctx context.Context, messageId string) (entity.Message, error) {
	collection := r.db.Collection("messages")
	filter := bson.M{"_id": messageId}

	var message entity.Message
	err := collection.FindOne(ctx, filter).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.Message{}, ErrMessageNotFound
		}
		return entity.Message{}, err
	}

	return message, nil
}

func (r *messageRepository) Create(ctx context.Context, message entity.Message) (string, error) {
	collection := r.db.Collection("messages")
	message.Id = uuid.New().String()
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	_, err := collection.InsertOne(ctx, message)
	if err != nil {
		return "", err
	}

	return message.Id, nil
}

// FindBetween returns the full exchange between two users, oldest first.
func (r *messageRepository) FindBetween(ctx context.Context, userId1, userId2 string) ([]entity.Message, error) {
	collection := r.db.Collection("messages")

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := collection.Find(ctx, betweenFilter(userId1, userId2), opts)
	if err != nil {
		return nil, err
	}

	var messages []entity.Message
	err = cursor.All(ctx, &messages)
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (r *messageRepository) LatestBetween(ctx context.Context, userId1, userId2 string) (entity.Message, error) {
	collection := r.db.Collection("messages")

	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	var message entity.Message
	err := collection.FindOne(ctx, betweenFilter(userId1, userId2), opts).Decode(&message)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.Message{}, ErrMessageNotFound
		}
		return entity.Message{}, err
	}

	return message, nil
}

func (r *messageRepository) CountUnreadFrom(ctx context.Context, sender, receiver string) (int64, error) {
	collection := r.db.Collection("messages")
	filter := bson.M{
		"sender":   sender,
		"receiver": receiver,
		"read":     false,
	}

	return collection.CountDocuments(ctx, filter)
}

func (r *messageRepository) CountUnread(ctx context.Context, receiver string) (int64, error) {
	collection := r.db.Collection("messages")
	filter := bson.M{
		"receiver": receiver,
		"read":     false,
	}

	return collection.CountDocuments(ctx, filter)
}

func (r *messageRepository) MarkRead(ctx context.Context, messageId string) error {
	collection := r.db.Collection("messages")
	filter := bson.M{"_id": messageId}
	update := bson.M{
		"$set": bson.M{"read": true},
	}

	_, err := collection.UpdateOne(ctx, filter, update)
	return err
}

// MarkReadBetween flips every unread message from sender to receiver.
// Re-running it matches nothing, so the operation is idempotent.
func (r *messageRepository) MarkReadBetween(ctx context.Context, sender, receiver string) error {
	collection := r.db.Collection("messages")
	filter := bson.M{
		"sender":   sender,
		"receiver": receiver,
		"read":     false,
	}
	update := bson.M{
		"$set": bson.M{"read": true},
	}

	_, err := collection.UpdateMany(ctx, filter, update)
	return err
}
