package category

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// Store is the data access for categories.
type Store interface {
	FindAll(ctx context.Context) ([]model.Category, error)
	FindByID(ctx context.Context, id uint64) (*model.Category, error)
	Save(ctx context.Context, category *model.Category) error
	DeleteByID(ctx context.Context, id uint64) error
}

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindAll(ctx context.Context) ([]model.Category, error) {
	var categories []model.Category
	if err := s.db.WithContext(ctx).Order("id").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("find categories: %w", err)
	}

	return categories, nil
}

// FindByID returns model.ErrNotFound when no category has the id.
func (s *GormStore) FindByID(ctx context.Context, id uint64) (*model.Category, error) {
	var category model.Category

	err := s.db.WithContext(ctx).First(&category, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category %d: %w", id, err)
	}

	return &category, nil
}

// Save inserts the category when its ID is zero and updates it otherwise.
func (s *GormStore) Save(ctx context.Context, category *model.Category) error {
	if err := s.db.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("save category: %w", err)
	}

	return nil
}

// DeleteByID removes the category and unlinks the articles that
// referenced it. Deleting a missing id is a no-op.
func (s *GormStore) DeleteByID(ctx context.Context, id uint64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Article{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("unlink articles: %w", err)
		}

		return tx.Delete(&model.Category{}, id).Error
	})
	if err != nil {
		return fmt.Errorf("delete category %d: %w", id, err)
	}

	return nil
}
