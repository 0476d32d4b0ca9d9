package category

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/go-cmp/cmp"

	"github.com/SergeyParamoshkin/blog/internal/database/dbtest"
	"github.com/SergeyParamoshkin/blog/internal/model"
)

func newRouter(store Store) http.Handler {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Route("/categories", NewAPI(store).Routes)

	return r
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	return w
}

func decodeCategory(t *testing.T, w *httptest.ResponseRecorder) model.Category {
	t.Helper()

	var c model.Category
	if err := json.Unmarshal(w.Body.Bytes(), &c); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}

	return c
}

func TestCategoryCRUD(t *testing.T) {
	h := newRouter(NewStore(dbtest.Open(t)))

	w := do(t, h, http.MethodPost, "/categories", `{"name":"Tech"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST status = %d, want %d: %s", w.Code, http.StatusCreated, w.Body)
	}
	if diff := cmp.Diff(model.Category{ID: 1, Name: "Tech"}, decodeCategory(t, w)); diff != "" {
		t.Fatalf("POST body mismatch (-want +got):\n%s", diff)
	}

	w = do(t, h, http.MethodGet, "/categories/1", "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET status = %d, want %d", w.Code, http.StatusOK)
	}
	if got := decodeCategory(t, w); got.Name != "Tech" {
		t.Fatalf("GET name = %q", got.Name)
	}

	w = do(t, h, http.MethodPut, "/categories/1", `{"id": 7, "name":"Technology"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("PUT status = %d, want %d", w.Code, http.StatusOK)
	}
	if diff := cmp.Diff(model.Category{ID: 1, Name: "Technology"}, decodeCategory(t, w)); diff != "" {
		t.Fatalf("PUT body mismatch (-want +got):\n%s", diff)
	}

	w = do(t, h, http.MethodGet, "/categories", "")
	var all []model.Category
	if err := json.Unmarshal(w.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if diff := cmp.Diff([]model.Category{{ID: 1, Name: "Technology"}}, all); diff != "" {
		t.Fatalf("GET list mismatch (-want +got):\n%s", diff)
	}

	w = do(t, h, http.MethodDelete, "/categories/1", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE status = %d, want %d", w.Code, http.StatusNoContent)
	}

	w = do(t, h, http.MethodGet, "/categories/1", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET after delete status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestListCategoriesEmpty(t *testing.T) {
	h := newRouter(NewStore(dbtest.Open(t)))

	w := do(t, h, http.MethodGet, "/categories", "")
	if w.Code != http.StatusOK || w.Body.String() != "[]\n" {
		t.Fatalf("GET /categories = %d %q, want 200 []", w.Code, w.Body.String())
	}
}

func TestGetCategoryMissingIsNotFound(t *testing.T) {
	h := newRouter(NewStore(dbtest.Open(t)))

	if w := do(t, h, http.MethodGet, "/categories/99", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestUpdateCategoryMissingIsNotFound(t *testing.T) {
	h := newRouter(NewStore(dbtest.Open(t)))

	w := do(t, h, http.MethodPut, "/categories/99", `{"name":"X"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestDeleteCategoryMissingIsNoContent(t *testing.T) {
	h := newRouter(NewStore(dbtest.Open(t)))

	if w := do(t, h, http.MethodDelete, "/categories/99", ""); w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNoContent)
	}
}

func TestCreateCategoryInvalidBody(t *testing.T) {
	h := newRouter(NewStore(dbtest.Open(t)))

	for _, body := range []string{`{}`, `[`} {
		if w := do(t, h, http.MethodPost, "/categories", body); w.Code != http.StatusBadRequest {
			t.Fatalf("POST %s status = %d, want %d", body, w.Code, http.StatusBadRequest)
		}
	}
}

func TestNonNumericIDDoesNotRoute(t *testing.T) {
	h := newRouter(NewStore(dbtest.Open(t)))

	if w := do(t, h, http.MethodGet, "/categories/abc", ""); w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusNotFound)
	}
}

type failingStore struct{ Store }

func (failingStore) FindAll(context.Context) ([]model.Category, error) {
	return nil, errors.New("connection refused")
}

func (failingStore) FindByID(context.Context, uint64) (*model.Category, error) {
	return nil, errors.New("connection refused")
}

func TestStoreFailureIsInternalError(t *testing.T) {
	h := newRouter(failingStore{})

	for _, target := range []string{"/categories", "/categories/1"} {
		w := do(t, h, http.MethodGet, target, "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("GET %s status = %d, want %d", target, w.Code, http.StatusInternalServerError)
		}
		if strings.Contains(w.Body.String(), "connection refused") {
			t.Fatalf("GET %s leaked the store error: %s", target, w.Body)
		}
	}
}
