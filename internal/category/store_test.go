package category

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/SergeyParamoshkin/blog/internal/database/dbtest"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

func TestStoreSaveAndFind(t *testing.T) {
	ctx := context.Background()
	store := NewStore(dbtest.Open(t))

	tech := &model.Category{Name: "Tech"}
	if err := store.Save(ctx, tech); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if tech.ID == 0 {
		t.Fatal("Save() did not assign an id")
	}

	life := &model.Category{Name: "Life"}
	if err := store.Save(ctx, life); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.FindByID(ctx, tech.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if diff := cmp.Diff(tech, got); diff != "" {
		t.Fatalf("FindByID() mismatch (-want +got):\n%s", diff)
	}

	all, err := store.FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll() error = %v", err)
	}
	if diff := cmp.Diff([]model.Category{*tech, *life}, all); diff != "" {
		t.Fatalf("FindAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreFindMissing(t *testing.T) {
	store := NewStore(dbtest.Open(t))

	if _, err := store.FindByID(context.Background(), 404); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("FindByID() error = %v, want ErrNotFound", err)
	}
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()
	store := NewStore(dbtest.Open(t))

	c := &model.Category{Name: "Tech"}
	if err := store.Save(ctx, c); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	c.Name = "Technology"
	if err := store.Save(ctx, c); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.FindByID(ctx, c.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.Name != "Technology" {
		t.Fatalf("Name = %q, want Technology", got.Name)
	}
}

func TestStoreDeleteUnlinksArticles(t *testing.T) {
	ctx := context.Background()
	db := dbtest.Open(t)
	store := NewStore(db)

	c := &model.Category{Name: "Tech"}
	if err := store.Save(ctx, c); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	article := &model.Article{Title: "A", Content: "B", CreatedAt: now, UpdatedAt: now, CategoryID: &c.ID}
	if err := db.Create(article).Error; err != nil {
		t.Fatalf("create article: %v", err)
	}

	if err := store.DeleteByID(ctx, c.ID); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}

	if _, err := store.FindByID(ctx, c.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("FindByID() after delete error = %v, want ErrNotFound", err)
	}

	var got model.Article
	if err := db.First(&got, article.ID).Error; err != nil {
		t.Fatalf("reload article: %v", err)
	}
	if got.CategoryID != nil {
		t.Fatalf("CategoryID = %d, want nil", *got.CategoryID)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("UpdatedAt = %v, unlinking must not touch it", got.UpdatedAt)
	}
}

func TestStoreDeleteMissingIsNoop(t *testing.T) {
	store := NewStore(dbtest.Open(t))

	if err := store.DeleteByID(context.Background(), 404); err != nil {
		t.Fatalf("DeleteByID() error = %v", err)
	}
}
