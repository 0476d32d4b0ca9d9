package article

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/articlerequest"
	"github.com/SergeyParamoshkin/blog/internal/articleresponse"
	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/logger"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

// CategoryFinder resolves the category an article payload refers to.
type CategoryFinder interface {
	FindByID(ctx context.Context, id uint64) (*model.Category, error)
}

// API serves the /articles resource.
type API struct {
	Store      Store
	Categories CategoryFinder

	// Now stamps createdAt and updatedAt.
	Now func() time.Time
}

func NewAPI(store Store, categories CategoryFinder) *API {
	return &API{
		Store:      store,
		Categories: categories,
		Now:        Now,
	}
}

// Now is the default clock: UTC, at the microsecond precision the
// databases keep.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// ListArticles returns every article, projected.
func (a *API) ListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := a.Store.FindAll(r.Context())
	if err != nil {
		a.internalError(w, r, "list articles", err)

		return
	}

	if err := render.RenderList(w, r, articleresponse.NewArticleListResponse(articles)); err != nil {
		renderError(w, r, errresponse.ErrRender(err))
	}
}

// GetArticle returns the Article loaded by ArticleCtx, projected.
func (a *API) GetArticle(w http.ResponseWriter, r *http.Request) {
	article := FromContext(r.Context())

	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		renderError(w, r, errresponse.ErrRender(err))
	}
}

// SearchByTitle returns the raw articles whose title equals searchTerms.
func (a *API) SearchByTitle(w http.ResponseWriter, r *http.Request) {
	terms, err := requiredParam(r, "searchTerms")
	if err != nil {
		renderError(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	articles, err := a.Store.FindByTitle(r.Context(), terms)
	a.renderRaw(w, r, "search articles by title", articles, err)
}

// SearchByContent returns the raw articles whose content contains
// searchTerms.
func (a *API) SearchByContent(w http.ResponseWriter, r *http.Request) {
	terms, err := requiredParam(r, "searchTerms")
	if err != nil {
		renderError(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	articles, err := a.Store.FindByContentContaining(r.Context(), terms)
	a.renderRaw(w, r, "search articles by content", articles, err)
}

// SearchCreatedAfter returns the raw articles created strictly after the
// date parameter.
func (a *API) SearchCreatedAfter(w http.ResponseWriter, r *http.Request) {
	value, err := requiredParam(r, "date")
	if err != nil {
		renderError(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	after, err := ParseDateTime(value)
	if err != nil {
		renderError(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	articles, err := a.Store.FindByCreatedAtAfter(r.Context(), after)
	a.renderRaw(w, r, "search articles created after", articles, err)
}

// LatestArticles returns the three most recent raw articles, newest first.
func (a *API) LatestArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := a.Store.FindTop3ByCreatedAtDesc(r.Context())
	a.renderRaw(w, r, "latest articles", articles, err)
}

// CreateArticle persists the posted Article and returns it
// back to the client as an acknowledgement.
func (a *API) CreateArticle(w http.ResponseWriter, r *http.Request) {
	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		renderError(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	category, err := a.resolveCategory(r.Context(), data)
	if err != nil {
		a.internalError(w, r, "resolve category", err)

		return
	}

	now := a.Now()
	article := &model.Article{
		Title:     data.Title,
		Content:   data.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	article.SetCategory(category)

	if err := a.Store.Save(r.Context(), article); err != nil {
		a.internalError(w, r, "create article", err)

		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		renderError(w, r, errresponse.ErrRender(err))
	}
}

// UpdateArticle overwrites the title, content and category of the Article
// loaded by ArticleCtx. createdAt is kept.
func (a *API) UpdateArticle(w http.ResponseWriter, r *http.Request) {
	article := FromContext(r.Context())

	data := &articlerequest.ArticleRequest{}
	if err := render.Bind(r, data); err != nil {
		renderError(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	category, err := a.resolveCategory(r.Context(), data)
	if err != nil {
		a.internalError(w, r, "resolve category", err)

		return
	}

	article.Title = data.Title
	article.Content = data.Content
	article.UpdatedAt = a.Now()
	article.SetCategory(category)

	if err := a.Store.Save(r.Context(), article); err != nil {
		a.internalError(w, r, "update article", err)

		return
	}

	if err := render.Render(w, r, articleresponse.NewArticleResponse(article)); err != nil {
		renderError(w, r, errresponse.ErrRender(err))
	}
}

// DeleteArticle removes the Article loaded by ArticleCtx.
func (a *API) DeleteArticle(w http.ResponseWriter, r *http.Request) {
	article := FromContext(r.Context())

	if err := a.Store.DeleteByID(r.Context(), article.ID); err != nil {
		a.internalError(w, r, "delete article", err)

		return
	}

	render.NoContent(w, r)
}

// Routes mounts the article endpoints on r.
func (a *API) Routes(r chi.Router) {
	r.Get("/", a.ListArticles)                   // GET /articles
	r.Post("/", a.CreateArticle)                 // POST /articles
	r.Get("/search-title", a.SearchByTitle)      // GET /articles/search-title?searchTerms=
	r.Get("/search-content", a.SearchByContent)  // GET /articles/search-content?searchTerms=
	r.Get("/search-after", a.SearchCreatedAfter) // GET /articles/search-after?date=
	r.Get("/search-last", a.LatestArticles)      // GET /articles/search-last

	r.Route("/{"+IDParam+":[0-9]+}", func(r chi.Router) {
		r.Use(a.ArticleCtx)            // Load the *Article on the request context
		r.Get("/", a.GetArticle)       // GET /articles/123
		r.Put("/", a.UpdateArticle)    // PUT /articles/123
		r.Delete("/", a.DeleteArticle) // DELETE /articles/123
	})
}

// resolveCategory looks up the category the payload refers to. An unknown
// id resolves to no category rather than failing the request.
func (a *API) resolveCategory(ctx context.Context, data *articlerequest.ArticleRequest) (*model.Category, error) {
	id, ok := data.RequestedCategory()
	if !ok {
		return nil, nil
	}

	category, err := a.Categories.FindByID(ctx, id)
	if errors.Is(err, model.ErrNotFound) {
		logger.FromContext(ctx).Debugw("dropping unknown category", "category_id", id)

		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (a *API) renderRaw(w http.ResponseWriter, r *http.Request, op string, articles []model.Article, err error) {
	if err != nil {
		a.internalError(w, r, op, err)

		return
	}

	if err := render.RenderList(w, r, articleresponse.NewRawArticleListResponse(articles)); err != nil {
		renderError(w, r, errresponse.ErrRender(err))
	}
}

func (a *API) internalError(w http.ResponseWriter, r *http.Request, op string, err error) {
	logger.FromContext(r.Context()).Errorw(op, "error", err)
	renderError(w, r, errresponse.ErrInternal(err))
}

func requiredParam(r *http.Request, name string) (string, error) {
	q := r.URL.Query()
	if !q.Has(name) {
		return "", fmt.Errorf("required request parameter %q is not present", name)
	}

	return q.Get(name), nil
}
