package database

import (
	"context"
	"fmt"

	"restaurant-storefront/internal/review"
)

// ReviewStore keeps customer reviews in PostgreSQL
type ReviewStore struct {
	db *DB
}

func NewReviewStore(db *DB) *ReviewStore {
	return &ReviewStore{db: db}
}

func (s *ReviewStore) Add(ctx context.Context, r review.Review) error {
	_, err := s.db.Pool.Exec(ctx, InsertReviewSQL, r.ID, r.ItemID, r.Author, r.Rating, r.Comment, r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert review: %w", err)
	}
	return nil
}

func (s *ReviewStore) ListByItem(ctx context.Context, itemID string) ([]review.Review, error) {
	rows, err := s.db.Pool.Query(ctx, ListItemReviewsSQL, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer rows.Close()

	reviews := []review.Review{}
	for rows.Next() {
		var r review.Review
		if err := rows.Scan(&r.ID, &r.ItemID, &r.Author, &r.Rating, &r.Comment, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
