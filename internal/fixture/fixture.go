package fixture

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/SergeyParamoshkin/blog/internal/article"
	"github.com/SergeyParamoshkin/blog/internal/category"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

// Category fixture data
var categories = []string{"Tech", "Travel"}

// Article fixture data, by category index (-1 for none)
var articles = []struct {
	title    string
	content  string
	category int
}{
	{title: "Hi", content: "Hello from the new blog.", category: -1},
	{title: "sup", content: "Setting up Go modules.", category: 0},
	{title: "alo", content: "Notes from Lisbon.", category: 1},
	{title: "bonjour", content: "A week in Lyon.", category: 1},
	{title: "whats up", content: "What changed in chi v5.", category: 0},
}

// Seed inserts the fixture data when the database holds no articles and
// no categories. It reports whether anything was written.
func Seed(ctx context.Context, db *gorm.DB, now time.Time) (bool, error) {
	for _, m := range []interface{}{&model.Category{}, &model.Article{}} {
		var n int64
		if err := db.WithContext(ctx).Model(m).Count(&n).Error; err != nil {
			return false, fmt.Errorf("count %T: %w", m, err)
		}
		if n > 0 {
			return false, nil
		}
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		categoryStore := category.NewStore(tx)
		articleStore := article.NewStore(tx)

		saved := make([]*model.Category, 0, len(categories))
		for _, name := range categories {
			c := &model.Category{Name: name}
			if err := categoryStore.Save(ctx, c); err != nil {
				return err
			}
			saved = append(saved, c)
		}

		for i, f := range articles {
			// Spread creation times so the latest-articles query has an order.
			created := now.Add(time.Duration(i-len(articles)) * time.Hour)

			a := &model.Article{Title: f.title, Content: f.content, CreatedAt: created, UpdatedAt: created}
			if f.category >= 0 {
				a.SetCategory(saved[f.category])
			}

			if err := articleStore.Save(ctx, a); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return false, fmt.Errorf("seed fixtures: %w", err)
	}

	return true, nil
}
