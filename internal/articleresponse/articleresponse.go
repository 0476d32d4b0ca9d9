package articleresponse

import (
	"net/http"
	"time"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// ArticleResponse is the projected response payload for the Article data
// model: the linked Category is flattened into CategoryID.
type ArticleResponse struct {
	ID         uint64    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	CategoryID *uint64   `json:"categoryId"`
}

func NewArticleResponse(article *model.Article) *ArticleResponse {
	return &ArticleResponse{
		ID:         article.ID,
		Title:      article.Title,
		Content:    article.Content,
		CreatedAt:  article.CreatedAt,
		UpdatedAt:  article.UpdatedAt,
		CategoryID: article.CategoryRef(),
	}
}

func NewArticleListResponse(articles []model.Article) []render.Renderer {
	list := []render.Renderer{}
	for i := range articles {
		list = append(list, NewArticleResponse(&articles[i]))
	}

	return list
}

func (rd *ArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// RawArticleResponse renders the entity as stored, with the Category
// nested rather than flattened. The search endpoints return this shape.
type RawArticleResponse struct {
	*model.Article
}

func NewRawArticleListResponse(articles []model.Article) []render.Renderer {
	list := []render.Renderer{}
	for i := range articles {
		list = append(list, &RawArticleResponse{Article: &articles[i]})
	}

	return list
}

func (rd *RawArticleResponse) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}
