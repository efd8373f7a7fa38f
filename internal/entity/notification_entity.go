package entity

import "time"

const (
	NotificationLessonRequest       = "lesson_request"
	NotificationLessonBooking       = "lesson_booking"
	NotificationAppointmentReminder = "appointment_reminder"
	NotificationNewReview           = "new_review"
	NotificationPaymentConfirmation = "payment_confirmation"
	NotificationLessonCancellation  = "lesson_cancellation"
	NotificationOther               = "other"
)

// KnownNotificationType reports whether t is one of the enumerated types.
func KnownNotificationType(t string) bool {
	switch t {
	case NotificationLessonRequest, NotificationLessonBooking,
		NotificationAppointmentReminder, NotificationNewReview,
		NotificationPaymentConfirmation, NotificationLessonCancellation,
		NotificationOther:
		return true
	}
	return false
}

type Notification struct {
	Id        string    `bson:"_id" json:"id"`
	UserId    string    `bson:"userId" json:"userId"`
	Type      string    `bson:"type" json:"type"`
	Title     string    `bson:"title" json:"title"`
	Message   string    `bson:"message" json:"message"`
	ActionUrl string    `bson:"actionUrl,omitempty" json:"actionUrl,omitempty"`
	Read      bool      `bson:"read" json:"read"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// NotificationView adds the display age, computed at read time.
type NotificationView struct {
	Notification
	Age string `json:"age"`
}
