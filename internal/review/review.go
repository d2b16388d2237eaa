package review

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"restaurant-storefront/internal/apperr"
	"restaurant-storefront/internal/logger"
)

// DefaultRating is reported for items nobody has reviewed yet
const DefaultRating = 4.5

const (
	MinRating = 1
	MaxRating = 5
)

type Review struct {
	ID        string    `json:"id"`
	ItemID    string    `json:"item_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary is what the menu shows for one item
type Summary struct {
	Average float64  `json:"average_rating"`
	Count   int      `json:"review_count"`
	Reviews []Review `json:"reviews"`
}

// Repository stores reviews. ListByItem returns newest first.
type Repository interface {
	Add(ctx context.Context, r Review) error
	ListByItem(ctx context.Context, itemID string) ([]Review, error)
}

type Service struct {
	repo   Repository
	logger *logger.Logger
	now    func() time.Time
}

func NewService(repo Repository, log *logger.Logger) *Service {
	return &Service{repo: repo, logger: log, now: time.Now}
}

// Add records a review of an item. The caller checks the item exists.
func (s *Service) Add(ctx context.Context, itemID, author string, rating int, comment string) (Review, error) {
	author = strings.TrimSpace(author)
	if author == "" {
		return Review{}, fmt.Errorf("review author is required: %w", apperr.ErrValidation)
	}
	if rating < MinRating || rating > MaxRating {
		return Review{}, fmt.Errorf("rating %d outside %d..%d: %w", rating, MinRating, MaxRating, apperr.ErrValidation)
	}

	r := Review{
		ID:        uuid.NewString(),
		ItemID:    itemID,
		Author:    author,
		Rating:    rating,
		Comment:   strings.TrimSpace(comment),
		CreatedAt: s.now().UTC(),
	}
	if err := s.repo.Add(ctx, r); err != nil {
		return Review{}, fmt.Errorf("store review: %w: %w", apperr.ErrCollaborator, err)
	}

	s.logger.Info("review_added", "Review added", "", map[string]interface{}{
		"item_id": itemID,
		"rating":  rating,
	})
	return r, nil
}

// Summarize averages the item's ratings, or reports DefaultRating when there are none
func (s *Service) Summarize(ctx context.Context, itemID string) (Summary, error) {
	reviews, err := s.repo.ListByItem(ctx, itemID)
	if err != nil {
		return Summary{}, fmt.Errorf("list reviews: %w: %w", apperr.ErrCollaborator, err)
	}
	return Summary{Average: Average(reviews), Count: len(reviews), Reviews: reviews}, nil
}

// Average is the mean rating, DefaultRating for no reviews
func Average(reviews []Review) float64 {
	if len(reviews) == 0 {
		return DefaultRating
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	return float64(sum) / float64(len(reviews))
}

// MemoryRepository keeps reviews in process
type MemoryRepository struct {
	mu      sync.Mutex
	reviews []Review
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (m *MemoryRepository) Add(ctx context.Context, r Review) error {
	m.mu.Lock()
	m.reviews = append([]Review{r}, m.reviews...)
	m.mu.Unlock()
	return nil
}

func (m *MemoryRepository) ListByItem(ctx context.Context, itemID string) ([]Review, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := []Review{}
	for _, r := range m.reviews {
		if r.ItemID == itemID {
			out = append(out, r)
		}
	}
	return out, nil
}
