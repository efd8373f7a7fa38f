package usecase

import (
	"context"
	"sort"
	"time"

	"kavun/internal/entity"
	"kavun/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository stubs backing the usecase tests.

type stubUserRepo struct {
	users map[string]entity.User
}

func newStubUserRepo(users ...entity.User) *stubUserRepo {
	r := &stubUserRepo{users: map[string]entity.User{}}
	for _, u := range users {
		r.users[u.Id] = u
	}
	return r
}

func (r *stubUserRepo) Get(_ context.Context, userId string) (entity.User, error) {
	user, ok := r.users[userId]
	if !ok {
		return entity.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return entity.User{}, repository.ErrUserNotFound
}

func (r *stubUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, err := r.GetByEmail(ctx, email)
	if err == repository.ErrUserNotFound {
		return false, nil
	}
	return err == nil, err
}

func (r *stubUserRepo) Create(_ context.Context, user entity.User) (string, error) {
	user.Id = uuid.New().String()
	r.users[user.Id] = user
	return user.Id, nil
}

func (r *stubUserRepo) SetOnline(_ context.Context, userId string, online bool) error {
	user, ok := r.users[userId]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.IsOnline = online
	r.users[userId] = user
	return nil
}

func (r *stubUserRepo) SetVerified(_ context.Context, userId string) error {
	user, ok := r.users[userId]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Verified = true
	r.users[userId] = user
	return nil
}

type stubConversationRepo struct {
	conversations map[string]entity.Conversation
}

func newStubConversationRepo() *stubConversationRepo {
	return &stubConversationRepo{conversations: map[string]entity.Conversation{}}
}

func (r *stubConversationRepo) Index(_ context.Context, userId string) ([]entity.Conversation, error) {
	var out []entity.Conversation
	for _, c := range r.conversations {
		for _, p := range c.Participants {
			if p == userId {
				out = append(out, c)
				break
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].UpdatedAt.After(out[j].UpdatedAt)
	})
	return out, nil
}

func (r *stubConversationRepo) Get(_ context.Context, conversationId string) (entity.Conversation, error) {
	c, ok := r.conversations[conversationId]
	if !ok {
		return entity.Conversation{}, repository.ErrConversationNotFound
	}
	return c, nil
}

func (r *stubConversationRepo) GetByKey(_ context.Context, participantsKey string) (entity.Conversation, error) {
	for _, c := range r.conversations {
		if c.ParticipantsKey == participantsKey {
			return c, nil
		}
	}
	return entity.Conversation{}, repository.ErrConversationNotFound
}

func (r *stubConversationRepo) Create(ctx context.Context, conversation entity.Conversation) (string, error) {
	key := repository.ParticipantsKey(conversation.Participants)
	if _, err := r.GetByKey(ctx, key); err == nil {
		// Mirrors the unique participantsKey index.
		return "", mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000}}}
	}

	conversation.Id = uuid.New().String()
	conversation.ParticipantsKey = key
	now := time.Now()
	conversation.CreatedAt = now
	conversation.UpdatedAt = now
	r.conversations[conversation.Id] = conversation
	return conversation.Id, nil
}

func (r *stubConversationRepo) UpdateLastMessage(_ context.Context, conversationId, lastMessage string, at time.Time) error {
	c, ok := r.conversations[conversationId]
	if !ok {
		return repository.ErrConversationNotFound
	}
	c.LastMessage = lastMessage
	c.UpdatedAt = at
	r.conversations[conversationId] = c
	return nil
}

type stubMessageRepo struct {
	messages map[string]entity.Message
}

func newStubMessageRepo() *stubMessageRepo {
	return &stubMessageRepo{messages: map[string]entity.Message{}}
}

func (r *stubMessageRepo) between(userId1, userId2 string) []entity.Message {
	var out []entity.Message
	for _, m := range r.messages {
		if (m.Sender == userId1 && m.Receiver == userId2) || (m.Sender == userId2 && m.Receiver == userId1) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func (r *stubMessageRepo) Get(_ context.Context, messageId string) (entity.Message, error) {
	m, ok := r.messages[messageId]
	if !ok {
		return entity.Message{}, repository.ErrMessageNotFound
	}
	return m, nil
}

func (r *stubMessageRepo) Create(_ context.Context, message entity.Message) (string, error) {
	message.Id = uuid.New().String()
	r.messages[message.Id] = message
	return message.Id, nil
}

func (r *stubMessageRepo) FindBetween(_ context.Context, userId1, userId2 string) ([]entity.Message, error) {
	return r.between(userId1, userId2), nil
}

func (r *stubMessageRepo) LatestBetween(_ context.Context, userId1, userId2 string) (entity.Message, error) {
	all := r.between(userId1, userId2)
	if len(all) == 0 {
		return entity.Message{}, repository.ErrMessageNotFound
	}
	return all[len(all)-1], nil
}

func (r *stubMessageRepo) CountUnreadFrom(_ context.Context, sender, receiver string) (int64, error) {
	var n int64
	for _, m := range r.messages {
		if m.Sender == sender && m.Receiver == receiver && !m.Read {
			n++
		}
	}
	return n, nil
}

func (r *stubMessageRepo) CountUnread(_ context.Context, receiver string) (int64, error) {
	var n int64
	for _, m := range r.messages {
		if m.Receiver == receiver && !m.Read {
			n++
		}
	}
	return n, nil
}

func (r *stubMessageRepo) MarkRead(_ context.Context, messageId string) error {
	m, ok := r.messages[messageId]
	if !ok {
		return repository.ErrMessageNotFound
	}
	m.Read = true
	r.messages[messageId] = m
	return nil
}

func (r *stubMessageRepo) MarkReadBetween(_ context.Context, sender, receiver string) error {
	for id, m := range r.messages {
		if m.Sender == sender && m.Receiver == receiver && !m.Read {
			m.Read = true
			r.messages[id] = m
		}
	}
	return nil
}

type stubNotificationRepo struct {
	notifications map[string]entity.Notification
}

func newStubNotificationRepo() *stubNotificationRepo {
	return &stubNotificationRepo{notifications: map[string]entity.Notification{}}
}

func (r *stubNotificationRepo) Index(_ context.Context, userId string) ([]entity.Notification, error) {
	var out []entity.Notification
	for _, n := range r.notifications {
		if n.UserId == userId {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *stubNotificationRepo) Create(_ context.Context, notification entity.Notification) (string, error) {
	notification.Id = uuid.New().String()
	r.notifications[notification.Id] = notification
	return notification.Id, nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, userId, notificationId string) error {
	n, ok := r.notifications[notificationId]
	if !ok || n.UserId != userId {
		return repository.ErrNotificationNotFound
	}
	n.Read = true
	r.notifications[notificationId] = n
	return nil
}

func (r *stubNotificationRepo) MarkAllRead(_ context.Context, userId string) error {
	for id, n := range r.notifications {
		if n.UserId == userId {
			n.Read = true
			r.notifications[id] = n
		}
	}
	return nil
}

func (r *stubNotificationRepo) Delete(_ context.Context, userId, notificationId string) error {
	n, ok := r.notifications[notificationId]
	if !ok || n.UserId != userId {
		return repository.ErrNotificationNotFound
	}
	delete(r.notifications, notificationId)
	return nil
}

func (r *stubNotificationRepo) CountUnread(_ context.Context, userId string) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserId == userId && !n.Read {
			count++
		}
	}
	return count, nil
}

type stubRefreshTokenRepo struct {
	tokens map[string]entity.RefreshToken
}

func newStubRefreshTokenRepo() *stubRefreshTokenRepo {
	return &stubRefreshTokenRepo{tokens: map[string]entity.RefreshToken{}}
}

func (r *stubRefreshTokenRepo) Create(_ context.Context, refreshToken entity.RefreshToken) error {
	refreshToken.Id = uuid.New().String()
	refreshToken.CreatedAt = time.Now()
	r.tokens[refreshToken.Token] = refreshToken
	return nil
}

func (r *stubRefreshTokenRepo) GetByToken(_ context.Context, token string) (entity.RefreshToken, error) {
	rt, ok := r.tokens[token]
	if !ok {
		return entity.RefreshToken{}, repository.ErrRefreshTokenNotFound
	}
	return rt, nil
}

func (r *stubRefreshTokenRepo) Revoke(_ context.Context, token string) error {
	rt, ok := r.tokens[token]
	if !ok {
		return repository.ErrRefreshTokenNotFound
	}
	rt.IsRevoked = true
	r.tokens[token] = rt
	return nil
}

func (r *stubRefreshTokenRepo) RevokeAllByUserId(_ context.Context, userId string) error {
	for token, rt := range r.tokens {
		if rt.UserId == userId {
			rt.IsRevoked = true
			r.tokens[token] = rt
		}
	}
	return nil
}

func (r *stubRefreshTokenRepo) DeleteExpired(_ context.Context) error {
	now := time.Now()
	for token, rt := range r.tokens {
		if now.After(rt.ExpiresAt) {
			delete(r.tokens, token)
		}
	}
	return nil
}
