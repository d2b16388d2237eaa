package catalog

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"restaurant-storefront/internal/models"
)

// Snapshot is an organized, read-only view of the menu at one point in time
type Snapshot struct {
	Categories []models.Category `json:"categories"`
	Items      []models.MenuItem `json:"items"`
	FetchedAt  time.Time         `json:"fetched_at"`
}

// Organize orders categories by their index and numbers each item
// "<category>.<item>" (1-based). Items whose category is unknown are dropped.
func Organize(categories []models.Category, items []models.MenuItem, now time.Time) *Snapshot {
	cats := append([]models.Category(nil), categories...)
	sort.SliceStable(cats, func(i, j int) bool {
		return cats[i].OrderIndex < cats[j].OrderIndex
	})

	organized := make([]models.MenuItem, 0, len(items))
	for ci, c := range cats {
		n := 0
		for _, item := range items {
			if item.CategoryID != c.ID {
				continue
			}
			n++
			item.DisplayID = fmt.Sprintf("%d.%d", ci+1, n)
			organized = append(organized, item)
		}
	}

	return &Snapshot{Categories: cats, Items: organized, FetchedAt: now}
}

// Item looks up an item by id
func (s *Snapshot) Item(id string) (models.MenuItem, bool) {
	for _, item := range s.Items {
		if item.ID == id {
			return item, true
		}
	}
	return models.MenuItem{}, false
}

// Search returns available items in the category (all categories when empty)
// whose name or description contains the query, ignoring case.
func (s *Snapshot) Search(query, categoryID string) []models.MenuItem {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []models.MenuItem
	for _, item := range s.Items {
		if !item.IsAvailable {
			continue
		}
		if categoryID != "" && item.CategoryID != categoryID {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(item.Name), q) &&
			!strings.Contains(strings.ToLower(item.Description), q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (s *Snapshot) clone() *Snapshot {
	return &Snapshot{
		Categories: append([]models.Category(nil), s.Categories...),
		Items:      append([]models.MenuItem(nil), s.Items...),
		FetchedAt:  s.FetchedAt,
	}
}
