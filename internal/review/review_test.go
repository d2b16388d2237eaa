package review

import (
	"context"
	"errors"
	"testing"
	"time"

	"restaurant-storefront/internal/apperr"
	"restaurant-storefront/internal/logger"
)

type brokenRepository struct{}

func (brokenRepository) Add(ctx context.Context, r Review) error { return errors.New("connection reset") }

func (brokenRepository) ListByItem(ctx context.Context, itemID string) ([]Review, error) {
	return nil, errors.New("connection reset")
}

func TestAverage(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{name: "no reviews", want: DefaultRating},
		{name: "single", ratings: []int{3}, want: 3},
		{name: "mean", ratings: []int{5, 4, 4, 2}, want: 3.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var reviews []Review
			for _, r := range tt.ratings {
				reviews = append(reviews, Review{Rating: r})
			}
			if got := Average(reviews); got != tt.want {
				t.Errorf("Average() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestServiceAddAndSummarize(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryRepository(), logger.Discard())
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return start }

	summary, err := svc.Summarize(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Average != DefaultRating || summary.Count != 0 || summary.Reviews == nil {
		t.Fatalf("empty summary = %+v", summary)
	}

	if _, err := svc.Add(ctx, "1", "Sara", 5, " Great "); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	svc.now = func() time.Time { return start.Add(time.Hour) }
	if _, err := svc.Add(ctx, "1", "Omar", 2, ""); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if _, err := svc.Add(ctx, "2", "Omar", 1, ""); err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	summary, err = svc.Summarize(ctx, "1")
	if err != nil {
		t.Fatal(err)
	}
	if summary.Count != 2 || summary.Average != 3.5 {
		t.Fatalf("summary = %+v", summary)
	}
	if summary.Reviews[0].Author != "Omar" || summary.Reviews[1].Comment != "Great" {
		t.Errorf("reviews not newest first: %+v", summary.Reviews)
	}
}

func TestServiceAddRejectsInvalidReviews(t *testing.T) {
	svc := NewService(NewMemoryRepository(), logger.Discard())

	tests := []struct {
		name   string
		author string
		rating int
	}{
		{name: "blank author", author: "  ", rating: 4},
		{name: "rating too low", author: "Sara", rating: 0},
		{name: "rating too high", author: "Sara", rating: 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Add(context.Background(), "1", tt.author, tt.rating, ""); !errors.Is(err, apperr.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestServiceRepositoryFailure(t *testing.T) {
	svc := NewService(brokenRepository{}, logger.Discard())

	if _, err := svc.Add(context.Background(), "1", "Sara", 4, ""); !errors.Is(err, apperr.ErrCollaborator) {
		t.Errorf("Add() expected ErrCollaborator, got %v", err)
	}
	if _, err := svc.Summarize(context.Background(), "1"); !errors.Is(err, apperr.ErrCollaborator) {
		t.Errorf("Summarize() expected ErrCollaborator, got %v", err)
	}
}
