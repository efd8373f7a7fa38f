package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"kavun/internal/entity"
)

func TestNotificationCreate(t *testing.T) {
	uc := NewNotificationUsecase(newStubNotificationRepo())
	ctx := context.Background()

	created, err := uc.Create(ctx, entity.Notification{
		UserId:  "u-ali",
		Type:    entity.NotificationLessonRequest,
		Title:   "Yeni ders talebi",
		Message: "Ayşe Yılmaz fizik dersi talep etti.",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.Id == "" {
		t.Error("created notification must carry its id")
	}
	if created.Read {
		t.Error("a fresh notification starts unread")
	}
	if created.CreatedAt.IsZero() {
		t.Error("createdAt must be stamped")
	}
}

func TestNotificationCreateRequiredFields(t *testing.T) {
	uc := NewNotificationUsecase(newStubNotificationRepo())
	ctx := context.Background()

	missing := []entity.Notification{
		{Type: "other", Title: "t", Message: "m"},
		{UserId: "u", Title: "t", Message: "m"},
		{UserId: "u", Type: "other", Message: "m"},
		{UserId: "u", Type: "other", Title: "t"},
	}

	for _, n := range missing {
		_, err := uc.Create(ctx, n)
		var invalid *InvalidInputError
		if !errors.As(err, &invalid) {
			t.Fatalf("notification %+v: err = %v, want InvalidInputError", n, err)
		}
		if invalid.Reason != "Zorunlu alanlar eksik (userId, title, message, type)" {
			t.Errorf("reason = %q", invalid.Reason)
		}
	}
}

func TestNotificationCreateCoercesUnknownType(t *testing.T) {
	uc := NewNotificationUsecase(newStubNotificationRepo())

	created, err := uc.Create(context.Background(), entity.Notification{
		UserId:  "u-ali",
		Type:    "something_new",
		Title:   "Duyuru",
		Message: "İçerik",
	})
	if err != nil {
		t.Fatal(err)
	}
	if created.Type != entity.NotificationOther {
		t.Errorf("type = %q, want %q", created.Type, entity.NotificationOther)
	}
}

func TestNotificationListComputesAge(t *testing.T) {
	repo := newStubNotificationRepo()
	uc := NewNotificationUsecase(repo).(*notificationUsecase)

	now := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	if _, err := repo.Create(context.Background(), entity.Notification{
		UserId:    "u-ali",
		Type:      entity.NotificationNewReview,
		Title:     "Yeni değerlendirme",
		Message:   "Bir öğrenci değerlendirme bıraktı.",
		CreatedAt: now.Add(-90 * time.Minute),
	}); err != nil {
		t.Fatal(err)
	}

	views, err := uc.List(context.Background(), "u-ali")
	if err != nil {
		t.Fatal(err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	if views[0].Age != "1 saat önce" {
		t.Errorf("age = %q, want %q", views[0].Age, "1 saat önce")
	}
}

func TestNotificationOwnerScoping(t *testing.T) {
	repo := newStubNotificationRepo()
	uc := NewNotificationUsecase(repo)
	ctx := context.Background()

	created, err := uc.Create(ctx, entity.Notification{
		UserId:  "u-ali",
		Type:    entity.NotificationLessonBooking,
		Title:   "Ders onaylandı",
		Message: "Pazartesi 14:00",
	})
	if err != nil {
		t.Fatal(err)
	}

	// Another user touching the same id gets not-found, never a success.
	if err := uc.MarkOne(ctx, "u-ayse", created.Id); err != ErrNotFound {
		t.Errorf("foreign mark: err = %v, want ErrNotFound", err)
	}
	if err := uc.Delete(ctx, "u-ayse", created.Id); err != ErrNotFound {
		t.Errorf("foreign delete: err = %v, want ErrNotFound", err)
	}

	if err := uc.MarkOne(ctx, "u-ali", created.Id); err != nil {
		t.Fatalf("owner mark: %v", err)
	}

	count, err := uc.UnreadCount(ctx, "u-ali")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("unread = %d, want 0", count)
	}

	if err := uc.Delete(ctx, "u-ali", created.Id); err != nil {
		t.Fatalf("owner delete: %v", err)
	}
	if err := uc.Delete(ctx, "u-ali", created.Id); err != ErrNotFound {
		t.Errorf("double delete: err = %v, want ErrNotFound", err)
	}
}

func TestNotificationMarkAll(t *testing.T) {
	uc := NewNotificationUsecase(newStubNotificationRepo())
	ctx := context.Background()

	for _, title := range []string{"bir", "iki", "üç"} {
		if _, err := uc.Create(ctx, entity.Notification{
			UserId:  "u-ali",
			Type:    entity.NotificationOther,
			Title:   title,
			Message: "içerik",
		}); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := uc.Create(ctx, entity.Notification{
		UserId:  "u-ayse",
		Type:    entity.NotificationOther,
		Title:   "başka kullanıcı",
		Message: "içerik",
	}); err != nil {
		t.Fatal(err)
	}

	if err := uc.MarkAll(ctx, "u-ali"); err != nil {
		t.Fatal(err)
	}

	count, err := uc.UnreadCount(ctx, "u-ali")
	if err != nil {
		t.Fatal(err)
	}
	if count != 0 {
		t.Errorf("owner unread = %d, want 0", count)
	}

	count, err = uc.UnreadCount(ctx, "u-ayse")
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("other user unread = %d, want 1", count)
	}
}
