package model

import "testing"

func TestCategoryRef(t *testing.T) {
	fk := uint64(7)

	tests := []struct {
		name    string
		article Article
		want    *uint64
	}{
		{name: "none", article: Article{}, want: nil},
		{name: "column only", article: Article{CategoryID: &fk}, want: &fk},
		{name: "association", article: Article{Category: &Category{ID: 3}}, want: ptr(3)},
		{name: "association wins", article: Article{CategoryID: &fk, Category: &Category{ID: 3}}, want: ptr(3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.article.CategoryRef()
			switch {
			case got == nil && tt.want == nil:
			case got == nil || tt.want == nil:
				t.Fatalf("CategoryRef() = %v, want %v", got, tt.want)
			case *got != *tt.want:
				t.Fatalf("CategoryRef() = %d, want %d", *got, *tt.want)
			}
		})
	}
}

func TestSetCategory(t *testing.T) {
	a := Article{}
	a.SetCategory(&Category{ID: 4, Name: "Go"})

	if a.CategoryID == nil || *a.CategoryID != 4 {
		t.Fatalf("CategoryID = %v, want 4", a.CategoryID)
	}

	a.SetCategory(nil)

	if a.CategoryID != nil || a.Category != nil {
		t.Fatalf("SetCategory(nil) left %v / %v", a.CategoryID, a.Category)
	}
}

func ptr(v uint64) *uint64 { return &v }
