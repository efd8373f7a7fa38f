package usecase

import (
	"context"
	"strings"
	"time"

	"kavun/infrastructure/cache"
	"kavun/internal/entity"
	"kavun/internal/repository"
	"kavun/pkg/timeformat"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

const userCacheTTL = 5 * time.Minute

type ConversationUsecase interface {
	List(ctx context.Context, userId string) ([]entity.ConversationSummary, error)
	Create(ctx context.Context, userId string, participantIds []string) (entity.Conversation, bool, error)
	Send(ctx context.Context, senderId, receiverId, content string) (entity.Message, error)
	History(ctx context.Context, userId, receiverId string) (entity.ConversationHistory, error)
	MarkRead(ctx context.Context, userId, messageId string) error
	UnreadTotal(ctx context.Context, userId string) (int64, error)
}

type conversationUsecase struct {
	conversationRepo repository.ConversationRepository
	messageRepo      repository.MessageRepository
	userRepo         repository.UserRepository
	userCache        *cache.MemCache
	now              func() time.Time
}

func NewConversationUsecase(
	conversationRepo repository.ConversationRepository,
	messageRepo repository.MessageRepository,
	userRepo repository.UserRepository,
	userCache *cache.MemCache,
) ConversationUsecase {
	return &conversationUsecase{
		conversationRepo: conversationRepo,
		messageRepo:      messageRepo,
		userRepo:         userRepo,
		userCache:        userCache,
		now:              time.Now,
	}
}

func (c *conversationUsecase) cachedUser(ctx context.Context, userId string) (entity.User, error) {
	key := "user:" + userId
	if v, ok := c.userCache.Get(key); ok {
		if user, ok := v.(entity.User); ok {
			return user, nil
		}
	}

	user, err := c.userRepo.Get(ctx, userId)
	if err != nil {
		return entity.User{}, err
	}

	c.userCache.Set(key, user, userCacheTTL)
	return user, nil
}

// List returns the user's inbox, most recently updated conversation first.
// Each row is enriched with the counterpart's identity, the latest message
// and the unread count.
func (c *conversationUsecase) List(ctx context.Context, userId string) ([]entity.ConversationSummary, error) {
	conversations, err := c.conversationRepo.Index(ctx, userId)
	if err != nil {
		return nil, err
	}

	now := c.now()
	summaries := make([]entity.ConversationSummary, 0, len(conversations))

	for _, conversation := range conversations {
		otherId := ""
		for _, participant := range conversation.Participants {
			if participant != userId {
				otherId = participant
				break
			}
		}
		if otherId == "" {
			continue
		}

		other, err := c.cachedUser(ctx, otherId)
		if err != nil {
			if err == repository.ErrUserNotFound {
				// Counterpart deleted; the row has nothing to show.
				continue
			}
			return nil, err
		}

		lastMessage := conversation.LastMessage
		lastAt := conversation.CreatedAt
		latest, err := c.messageRepo.LatestBetween(ctx, userId, otherId)
		if err == nil {
			lastMessage = latest.Content
			lastAt = latest.CreatedAt
		} else if err != repository.ErrMessageNotFound {
			return nil, err
		}

		unread, err := c.messageRepo.CountUnreadFrom(ctx, otherId, userId)
		if err != nil {
			return nil, err
		}

		summaries = append(summaries, entity.ConversationSummary{
			Id:          conversation.Id,
			UserId:      other.Id,
			Name:        other.Name,
			Email:       other.Email,
			University:  other.University,
			LastMessage: lastMessage,
			Date:        timeformat.ConversationLabel(lastAt, now),
			Unread:      unread,
		})
	}

	return summaries, nil
}

// Create finds or creates the conversation for a participant set. The
// caller is always part of the set. The boolean reports whether a new
// record was inserted. A concurrent create by the counterpart loses the
// unique-index race and reads back the winner, so the pair invariant holds.
func (c *conversationUsecase) Create(ctx context.Context, userId string, participantIds []string) (entity.Conversation, bool, error) {
	set := map[string]bool{userId: true}
	for _, id := range participantIds {
		if id != "" {
			set[id] = true
		}
	}
	if len(set) != 2 {
		return entity.Conversation{}, false, invalidInput("konuşma tam olarak iki katılımcı gerektirir")
	}

	participants := make([]string, 0, 2)
	for id := range set {
		participants = append(participants, id)
	}

	for _, id := range participants {
		if id == userId {
			continue
		}
		if _, err := c.userRepo.Get(ctx, id); err != nil {
			if err == repository.ErrUserNotFound {
				return entity.Conversation{}, false, ErrNotFound
			}
			return entity.Conversation{}, false, err
		}
	}

	key := repository.ParticipantsKey(participants)

	existing, err := c.conversationRepo.GetByKey(ctx, key)
	if err == nil {
		return existing, false, nil
	}
	if err != repository.ErrConversationNotFound {
		return entity.Conversation{}, false, err
	}

	conversationId, err := c.conversationRepo.Create(ctx, entity.Conversation{
		Participants: participants,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			winner, getErr := c.conversationRepo.GetByKey(ctx, key)
			if getErr != nil {
				return entity.Conversation{}, false, getErr
			}
			return winner, false, nil
		}
		return entity.Conversation{}, false, err
	}

	created, err := c.conversationRepo.Get(ctx, conversationId)
	if err != nil {
		return entity.Conversation{}, false, err
	}

	return created, true, nil
}

// Send persists the message and refreshes the conversation's denormalized
// inbox fields. The metadata update is keyed by conversation id and
// retried once; if it still fails the message stands and the stale
// lastMessage heals on the next send.
func (c *conversationUsecase) Send(ctx context.Context, senderId, receiverId, content string) (entity.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return entity.Message{}, invalidInput("Mesaj içeriği zorunludur")
	}
	if len([]rune(content)) > entity.MaxMessageLength {
		return entity.Message{}, invalidInput("Mesaj en fazla 500 karakter olabilir")
	}
	if senderId == receiverId {
		return entity.Message{}, invalidInput("kendinize mesaj gönderemezsiniz")
	}

	conversation, _, err := c.Create(ctx, senderId, []string{receiverId})
	if err != nil {
		return entity.Message{}, err
	}

	now := c.now()
	message := entity.Message{
		ConversationId: conversation.Id,
		Sender:         senderId,
		Receiver:       receiverId,
		Content:        content,
		Read:           false,
		CreatedAt:      now,
	}

	messageId, err := c.messageRepo.Create(ctx, message)
	if err != nil {
		return entity.Message{}, err
	}
	message.Id = messageId

	if err := c.conversationRepo.UpdateLastMessage(ctx, conversation.Id, content, now); err != nil {
		if retryErr := c.conversationRepo.UpdateLastMessage(ctx, conversation.Id, content, now); retryErr != nil {
			logrus.WithError(retryErr).WithField("conversationId", conversation.Id).
				Warn("conversation: lastMessage update failed, will heal on next send")
		}
	}

	return message, nil
}

// History returns the full exchange with one counterpart, oldest first, and
// marks the counterpart's messages to the caller as read.
func (c *conversationUsecase) History(ctx context.Context, userId, receiverId string) (entity.ConversationHistory, error) {
	other, err := c.userRepo.Get(ctx, receiverId)
	if err != nil {
		if err == repository.ErrUserNotFound {
			return entity.ConversationHistory{}, ErrNotFound
		}
		return entity.ConversationHistory{}, err
	}

	messages, err := c.messageRepo.FindBetween(ctx, userId, receiverId)
	if err != nil {
		return entity.ConversationHistory{}, err
	}

	if err := c.messageRepo.MarkReadBetween(ctx, receiverId, userId); err != nil {
		return entity.ConversationHistory{}, err
	}

	views := make([]entity.MessageView, 0, len(messages))
	for _, message := range messages {
		views = append(views, entity.MessageView{
			Message: message,
			IsMine:  message.Sender == userId,
		})
	}

	other.Password = ""

	return entity.ConversationHistory{
		User:     other,
		Messages: views,
	}, nil
}

// MarkRead flips one message to read. Re-marking an already-read message
// is a no-op, not an error. A message addressed to someone else is
// indistinguishable from a missing one.
func (c *conversationUsecase) MarkRead(ctx context.Context, userId, messageId string) error {
	message, err := c.messageRepo.Get(ctx, messageId)
	if err != nil {
		if err == repository.ErrMessageNotFound {
			return ErrNotFound
		}
		return err
	}

	if message.Receiver != userId {
		return ErrNotFound
	}

	if message.Read {
		return nil
	}

	return c.messageRepo.MarkRead(ctx, messageId)
}

func (c *conversationUsecase) UnreadTotal(ctx context.Context, userId string) (int64, error) {
	return c.messageRepo.CountUnread(ctx, userId)
}
