package domain

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFeedback(t *testing.T) {
	tests := []struct {
		total string
		want  FeedbackLevel
	}{
		{"1000.01", FeedbackHigh},
		{"5000", FeedbackHigh},
		{"1000", FeedbackModerate},
		{"500.01", FeedbackModerate},
		{"500", FeedbackGood},
		{"0", FeedbackGood},
	}

	for _, tt := range tests {
		if got := Feedback(decimal.RequireFromString(tt.total)); got != tt.want {
			t.Fatalf("Feedback(%s) = %s, want %s", tt.total, got, tt.want)
		}
	}
}

func TestFeedbackLevel_Message(t *testing.T) {
	for _, level := range []FeedbackLevel{FeedbackHigh, FeedbackModerate, FeedbackGood} {
		if level.Message() == "" {
			t.Fatalf("expected message for level %s", level)
		}
	}

	if !strings.HasPrefix(FeedbackGood.Message(), "Good job!") {
		t.Fatalf("unexpected good message %q", FeedbackGood.Message())
	}
}

func TestBuildInsight_Text(t *testing.T) {
	insight := BuildInsight([]*Entry{
		expense("rent", 900, "home"),
		expense("coffee", 3.5, "food"),
		expense("shoes", 120, "clothes"),
	}, 2)

	if insight.Level != FeedbackHigh {
		t.Fatalf("expected high feedback for 1023.50, got %s", insight.Level)
	}

	want := "Top 2 Expensive Items\n" +
		"rent: $900.00\n" +
		"shoes: $120.00\n" +
		"\nTotal Spending: $1023.50\n" +
		"\nFeedback\n" +
		FeedbackHigh.Message()

	if got := insight.Text(); got != want {
		t.Fatalf("unexpected text:\n%s\nwant:\n%s", got, want)
	}
}
