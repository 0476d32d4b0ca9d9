package article

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// LatestLimit is how many articles FindTop3ByCreatedAtDesc returns.
const LatestLimit = 3

// Store is the data access for articles. Every finder that returns raw
// entities loads the linked Category.
type Store interface {
	FindAll(ctx context.Context) ([]model.Article, error)
	FindByID(ctx context.Context, id uint64) (*model.Article, error)
	Save(ctx context.Context, article *model.Article) error
	DeleteByID(ctx context.Context, id uint64) error

	FindByTitle(ctx context.Context, title string) ([]model.Article, error)
	FindByContentContaining(ctx context.Context, fragment string) ([]model.Article, error)
	FindByCreatedAtAfter(ctx context.Context, t time.Time) ([]model.Article, error)
	FindTop3ByCreatedAtDesc(ctx context.Context) ([]model.Article, error)
}

type GormStore struct {
	db *gorm.DB
}

var _ Store = (*GormStore)(nil)

func NewStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) query(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("Category")
}

func (s *GormStore) FindAll(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	if err := s.query(ctx).Order("id").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("find articles: %w", err)
	}

	return articles, nil
}

// FindByID returns model.ErrNotFound when no article has the id.
func (s *GormStore) FindByID(ctx context.Context, id uint64) (*model.Article, error) {
	var article model.Article

	err := s.query(ctx).First(&article, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find article %d: %w", id, err)
	}

	return &article, nil
}

// Save inserts the article when its ID is zero and updates every column
// otherwise. The Category association is never written through.
func (s *GormStore) Save(ctx context.Context, article *model.Article) error {
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Save(article).Error; err != nil {
		return fmt.Errorf("save article: %w", err)
	}

	return nil
}

func (s *GormStore) DeleteByID(ctx context.Context, id uint64) error {
	if err := s.db.WithContext(ctx).Delete(&model.Article{}, id).Error; err != nil {
		return fmt.Errorf("delete article %d: %w", id, err)
	}

	return nil
}

// FindByTitle matches the title exactly.
func (s *GormStore) FindByTitle(ctx context.Context, title string) ([]model.Article, error) {
	var articles []model.Article
	if err := s.query(ctx).Where("title = ?", title).Order("id").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("find articles by title: %w", err)
	}

	return articles, nil
}

// FindByContentContaining matches fragment anywhere in the content; LIKE
// wildcards in fragment are matched literally.
func (s *GormStore) FindByContentContaining(ctx context.Context, fragment string) ([]model.Article, error) {
	var articles []model.Article

	pattern := "%" + escapeLike(fragment) + "%"
	if err := s.query(ctx).Where(`content LIKE ? ESCAPE '\'`, pattern).Order("id").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("find articles by content: %w", err)
	}

	return articles, nil
}

// FindByCreatedAtAfter returns the articles created strictly after t.
func (s *GormStore) FindByCreatedAtAfter(ctx context.Context, t time.Time) ([]model.Article, error) {
	var articles []model.Article
	if err := s.query(ctx).Where("created_at > ?", t.UTC()).Order("created_at").Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("find articles created after %s: %w", t.Format(time.RFC3339), err)
	}

	return articles, nil
}

// FindTop3ByCreatedAtDesc returns the LatestLimit most recently created
// articles, newest first.
func (s *GormStore) FindTop3ByCreatedAtDesc(ctx context.Context) ([]model.Article, error) {
	var articles []model.Article
	if err := s.query(ctx).Order("created_at DESC").Order("id DESC").Limit(LatestLimit).Find(&articles).Error; err != nil {
		return nil, fmt.Errorf("find latest articles: %w", err)
	}

	return articles, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
