package repository

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"kavun/internal/entity"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrConversationNotFound = errors.New("conversation not found")

// ParticipantsKey builds the canonical key for a participant set: ids
// sorted and joined with ":". Lookup by key is order-independent.
func ParticipantsKey(participants []string) string {
	ids := make([]string, len(participants))
	copy(ids, participants)
	sort.Strings(ids)
	return strings.Join(ids, ":")
}

type ConversationRepository interface {
	Index(ctx context.Context, userId string) ([]entity.Conversation, error)
	Get(ctx context.Context, conversationId string) (entity.Conversation, error)
	GetByKey(ctx context.Context, participantsKey string) (entity.Conversation, error)
	Create(ctx context.Context, conversation entity.Conversation) (string, error)
	UpdateLastMessage(ctx context.Context, conversationId, lastMessage string, at time.Time) error
}

type conversationRepository struct {
	db mongo.Database
}

func NewConversationRepository(db mongo.Database) ConversationRepository {
	return &conversationRepository{
		db: db,
	}
}

// Index returns all conversations the user participates in, most recently
// updated first.
func (r *conversationRepository) Index(ctx context.Context, userId string) ([]entity.Conversation, error) {
	collection := r.db.Collection("conversations")
	filter := bson.M{"participants": userId}

	opts := options.Find().SetSort(bson.D{{Key: "updatedAt", Value: -1}})
	cursor, err := collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}

	var conversations []entity.Conversation
	err = cursor.All(ctx, &conversations)
	if err != nil {
		return nil, err
	}

	return conversations, nil
}

func (r *conversationRepository) Get(ctx context.Context, conversationId string) (entity.Conversation, error) {
	collection := r.db.Collection("conversations")
	filter := bson.M{"_id": conversationId}

	var conversation entity.Conversation
	err := collection.FindOne(ctx, filter).Decode(&conversation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.Conversation{}, ErrConversationNotFound
		}
		return entity.Conversation{}, err
	}

	return conversation, nil
}

func (r *conversationRepository) GetByKey(ctx context.Context, participantsKey string) (entity.Conversation, error) {
	collection := r.db.Collection("conversations")
	filter := bson.M{"participantsKey": participantsKey}

	var conversation entity.Conversation
	err := collection.FindOne(ctx, filter).Decode(&conversation)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return entity.Conversation{}, ErrConversationNotFound
		}
		return entity.Conversation{}, err
	}

	return conversation, nil
}

func (r *conversationRepository) Create(ctx context.Context, conversation entity.Conversation) (string, error) {
	collection := r.db.Collection("conversations")
	conversation.Id = uuid.New().String()
	conversation.ParticipantsKey = ParticipantsKey(conversation.Participants)
	conversation.CreatedAt = time.Now()
	conversation.UpdatedAt = conversation.CreatedAt

	_, err := collection.InsertOne(ctx, conversation)
	if err != nil {
		return "", err
	}

	return conversation.Id, nil
}

// UpdateLastMessage refreshes the denormalized inbox fields. Keyed by
// conversation id, so a repeat of the same update is harmless.
func (r *conversationRepository) UpdateLastMessage(ctx context.Context, conversationId, lastMessage string, at time.Time) error {
	collection := r.db.Collection("conversations")
	filter := bson.M{"_id": conversationId}
	update := bson.M{
		"$set": bson.M{
			"lastMessage": lastMessage,
			"updatedAt":   at,
		},
	}

	_, err := collection.UpdateOne(ctx, filter, update)
	return err
}
