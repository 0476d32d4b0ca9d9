package model

import "time"

// Article data model. CreatedAt and UpdatedAt are stamped by the handlers,
// so GORM's automatic time tracking is switched off for both columns.
type Article struct {
	ID         uint64    `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title"`
	Content    string    `json:"content" gorm:"type:text"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime:false;index"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime:false"`
	CategoryID *uint64   `json:"-" gorm:"index"`
	Category   *Category `json:"category" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

// CategoryRef returns the id of the linked category, or nil when the
// article has none. The loaded association wins over the raw column.
func (a *Article) CategoryRef() *uint64 {
	if a.Category != nil {
		id := a.Category.ID

		return &id
	}

	return a.CategoryID
}

// SetCategory links the article to c, or unlinks it when c is nil.
func (a *Article) SetCategory(c *Category) {
	a.Category = c
	if c == nil {
		a.CategoryID = nil

		return
	}

	id := c.ID
	a.CategoryID = &id
}
