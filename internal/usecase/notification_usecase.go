package usecase

import (
	"context"
	"time"

	"kavun/internal/entity"
	"kavun/internal/repository"
	"kavun/pkg/timeformat"
)

type NotificationUsecase interface {
	List(ctx context.Context, userId string) ([]entity.NotificationView, error)
	Create(ctx context.Context, notification entity.Notification) (entity.Notification, error)
	MarkOne(ctx context.Context, userId, notificationId string) error
	MarkAll(ctx context.Context, userId string) error
	Delete(ctx context.Context, userId, notificationId string) error
	UnreadCount(ctx context.Context, userId string) (int64, error)
}

type notificationUsecase struct {
	notificationRepo repository.NotificationRepository
	now              func() time.Time
}

func NewNotificationUsecase(notificationRepo repository.NotificationRepository) NotificationUsecase {
	return &notificationUsecase{
		notificationRepo: notificationRepo,
		now:              time.Now,
	}
}

// List returns the owner's notifications, newest first, each with its
// display age computed at read time.
func (n *notificationUsecase) List(ctx context.Context, userId string) ([]entity.NotificationView, error) {
	notifications, err := n.notificationRepo.Index(ctx, userId)
	if err != nil {
		return nil, err
	}

	now := n.now()
	views := make([]entity.NotificationView, 0, len(notifications))
	for _, notification := range notifications {
		views = append(views, entity.NotificationView{
			Notification: notification,
			Age:          timeformat.RelativeAge(notification.CreatedAt, now),
		})
	}

	return views, nil
}

// Create records a server-side business event for a user. An unknown type
// is coerced to "other" rather than rejected.
func (n *notificationUsecase) Create(ctx context.Context, notification entity.Notification) (entity.Notification, error) {
	if notification.UserId == "" || notification.Title == "" || notification.Message == "" || notification.Type == "" {
		return entity.Notification{}, invalidInput("Zorunlu alanlar eksik (userId, title, message, type)")
	}

	if !entity.KnownNotificationType(notification.Type) {
		notification.Type = entity.NotificationOther
	}

	notification.Read = false
	notification.CreatedAt = n.now()

	notificationId, err := n.notificationRepo.Create(ctx, notification)
	if err != nil {
		return entity.Notification{}, err
	}
	notification.Id = notificationId

	return notification, nil
}

// MarkOne is owner-scoped: someone else's notification id comes back as
// not-found, never a silent success.
func (n *notificationUsecase) MarkOne(ctx context.Context, userId, notificationId string) error {
	err := n.notificationRepo.MarkRead(ctx, userId, notificationId)
	if err == repository.ErrNotificationNotFound {
		return ErrNotFound
	}
	return err
}

func (n *notificationUsecase) MarkAll(ctx context.Context, userId string) error {
	return n.notificationRepo.MarkAllRead(ctx, userId)
}

func (n *notificationUsecase) Delete(ctx context.Context, userId, notificationId string) error {
	err := n.notificationRepo.Delete(ctx, userId, notificationId)
	if err == repository.ErrNotificationNotFound {
		return ErrNotFound
	}
	return err
}

func (n *notificationUsecase) UnreadCount(ctx context.Context, userId string) (int64, error) {
	return n.notificationRepo.CountUnread(ctx, userId)
}
