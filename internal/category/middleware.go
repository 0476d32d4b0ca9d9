package category

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/errresponse"
	"github.com/SergeyParamoshkin/blog/internal/logger"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

type ctxKey struct{}

// IDParam is the chi URL parameter holding the category id.
const IDParam = "categoryID"

// CategoryCtx middleware is used to load a Category object from
// the URL parameters passed through as the request. In case
// the Category could not be found, we stop here and return a 404.
func (a *API) CategoryCtx(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseUint(chi.URLParam(r, IDParam), 10, 64)
		if err != nil {
			renderError(w, r, errresponse.ErrNotFound)

			return
		}

		category, err := a.Store.FindByID(r.Context(), id)
		if errors.Is(err, model.ErrNotFound) {
			renderError(w, r, errresponse.ErrNotFound)

			return
		}
		if err != nil {
			logger.FromContext(r.Context()).Errorw("load category", "id", id, "error", err)
			renderError(w, r, errresponse.ErrInternal(err))

			return
		}

		ctx := context.WithValue(r.Context(), ctxKey{}, category)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext returns the Category loaded by CategoryCtx.
func FromContext(ctx context.Context) *model.Category {
	category, _ := ctx.Value(ctxKey{}).(*model.Category)

	return category
}

func renderError(w http.ResponseWriter, r *http.Request, v render.Renderer) {
	if err := render.Render(w, r, v); err != nil {
		logger.FromContext(r.Context()).Errorw("render error response", "error", err)
	}
}
