package articlerequest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// ArticleRequest is the request payload for the Article data model.
//
// The protected fields shadow the embedded ones so a client cannot pick
// the id or the timestamps; any value sent for them is decoded and thrown
// away.
type ArticleRequest struct {
	*model.Article

	ProtectedID        json.RawMessage `json:"id"`
	ProtectedCreatedAt json.RawMessage `json:"createdAt"`
	ProtectedUpdatedAt json.RawMessage `json:"updatedAt"`
}

func (a *ArticleRequest) Bind(r *http.Request) error {
	// a.Article is nil if no Article fields are sent in the request. Return an
	// error to avoid a nil pointer dereference.
	if a.Article == nil {
		return errors.New("missing required Article fields")
	}

	a.ProtectedID = nil
	a.ProtectedCreatedAt = nil
	a.ProtectedUpdatedAt = nil

	a.Article.ID = 0
	a.Article.CreatedAt = time.Time{}
	a.Article.UpdatedAt = time.Time{}
	a.Article.CategoryID = nil

	return nil
}

// RequestedCategory reports the category id the client asked for. A
// missing category object, or one without an id, asks for none.
func (a *ArticleRequest) RequestedCategory() (uint64, bool) {
	if a.Article == nil || a.Article.Category == nil || a.Article.Category.ID == 0 {
		return 0, false
	}

	return a.Article.Category.ID, true
}
