package timeformat

import (
	"testing"
	"time"
)

// Wednesday, 15 May 2024, 18:00.
var now = time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)

func TestConversationLabel(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{
			name: "same day shows clock time",
			t:    time.Date(2024, 5, 15, 14, 30, 0, 0, time.UTC),
			want: "14:30",
		},
		{
			name: "previous day",
			t:    time.Date(2024, 5, 14, 23, 59, 0, 0, time.UTC),
			want: "Dün",
		},
		{
			name: "three days ago is a weekday name",
			t:    time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC),
			want: "Pazar",
		},
		{
			name: "six days ago is still a weekday name",
			t:    time.Date(2024, 5, 9, 20, 0, 0, 0, time.UTC),
			want: "Perşembe",
		},
		{
			name: "a month ago is a full date",
			t:    time.Date(2024, 4, 15, 12, 0, 0, 0, time.UTC),
			want: "15/04/2024",
		},
		{
			name: "a year ago is a full date",
			t:    time.Date(2023, 5, 15, 12, 0, 0, 0, time.UTC),
			want: "15/05/2023",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConversationLabel(tt.t, now); got != tt.want {
				t.Errorf("ConversationLabel(%v) = %q, want %q", tt.t, got, tt.want)
			}
		})
	}
}

func TestRelativeAge(t *testing.T) {
	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"just now", 0, "0 dakika önce"},
		{"five minutes", 5 * time.Minute, "5 dakika önce"},
		{"fifty nine minutes", 59 * time.Minute, "59 dakika önce"},
		{"ninety minutes rounds to one hour", 90 * time.Minute, "1 saat önce"},
		{"twenty three hours", 23 * time.Hour, "23 saat önce"},
		{"twenty five hours rounds to one day", 25 * time.Hour, "1 gün önce"},
		{"three days", 3 * 24 * time.Hour, "3 gün önce"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RelativeAge(now.Add(-tt.ago), now); got != tt.want {
				t.Errorf("RelativeAge(now-%v) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}
}

func TestRelativeAgeFutureClampsToZero(t *testing.T) {
	if got := RelativeAge(now.Add(time.Minute), now); got != "0 dakika önce" {
		t.Errorf("future timestamp = %q, want %q", got, "0 dakika önce")
	}
}
