package category

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/categorypayload"
	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/logger"
)

// API serves the /categories resource.
type API struct {
	Store Store
}

func NewAPI(store Store) *API {
	return &API{Store: store}
}

// ListCategories returns every category as stored.
func (a *API) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := a.Store.FindAll(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).Errorw("list categories", "error", err)
		renderError(w, r, errresponse.ErrInternal(err))

		return
	}

	if err := render.RenderList(w, r, categorypayload.NewCategoryListResponse(categories)); err != nil {
		renderError(w, r, errresponse.ErrRender(err))
	}
}

// GetCategory returns the Category loaded by CategoryCtx.
func (a *API) GetCategory(w http.ResponseWriter, r *http.Request) {
	category := FromContext(r.Context())

	if err := render.Render(w, r, categorypayload.NewCategoryPayloadResponse(category)); err != nil {
		renderError(w, r, errresponse.ErrRender(err))
	}
}

// CreateCategory persists the posted Category and returns it
// back to the client as an acknowledgement.
func (a *API) CreateCategory(w http.ResponseWriter, r *http.Request) {
	data := &categorypayload.CategoryPayload{}
	if err := render.Bind(r, data); err != nil {
		renderError(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	category := data.Category
	if err := a.Store.Save(r.Context(), category); err != nil {
		logger.FromContext(r.Context()).Errorw("create category", "error", err)
		renderError(w, r, errresponse.ErrInternal(err))

		return
	}

	render.Status(r, http.StatusCreated)
	if err := render.Render(w, r, categorypayload.NewCategoryPayloadResponse(category)); err != nil {
		renderError(w, r, errresponse.ErrRender(err))
	}
}

// UpdateCategory renames the Category loaded by CategoryCtx.
func (a *API) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	category := FromContext(r.Context())

	data := &categorypayload.CategoryPayload{}
	if err := render.Bind(r, data); err != nil {
		renderError(w, r, errresponse.ErrInvalidRequest(err))

		return
	}

	category.Name = data.Name
	if err := a.Store.Save(r.Context(), category); err != nil {
		logger.FromContext(r.Context()).Errorw("update category", "id", category.ID, "error", err)
		renderError(w, r, errresponse.ErrInternal(err))

		return
	}

	if err := render.Render(w, r, categorypayload.NewCategoryPayloadResponse(category)); err != nil {
		renderError(w, r, errresponse.ErrRender(err))
	}
}

// DeleteCategory removes the category without looking it up first, so a
// missing id still answers 204.
func (a *API) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(chi.URLParam(r, IDParam), 10, 64)
	if err != nil {
		renderError(w, r, errresponse.ErrNotFound)

		return
	}

	if err := a.Store.DeleteByID(r.Context(), id); err != nil {
		logger.FromContext(r.Context()).Errorw("delete category", "id", id, "error", err)
		renderError(w, r, errresponse.ErrInternal(err))

		return
	}

	render.NoContent(w, r)
}

// Routes mounts the category endpoints on r.
func (a *API) Routes(r chi.Router) {
	r.Get("/", a.ListCategories)  // GET /categories
	r.Post("/", a.CreateCategory) // POST /categories

	r.Route("/{"+IDParam+":[0-9]+}", func(r chi.Router) {
		r.Delete("/", a.DeleteCategory) // DELETE /categories/123

		r.Group(func(r chi.Router) {
			r.Use(a.CategoryCtx)         // Load the *Category on the request context
			r.Get("/", a.GetCategory)    // GET /categories/123
			r.Put("/", a.UpdateCategory) // PUT /categories/123
		})
	})
}
