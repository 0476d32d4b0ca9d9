package categorypayload

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/SergeyParamoshkin/blog/internal/model"
)

// CategoryPayload is both the request and the response payload for the
// Category data model; categories go over the wire unprojected.
type CategoryPayload struct {
	*model.Category

	ProtectedID json.RawMessage `json:"id,omitempty"`
}

func NewCategoryPayloadResponse(category *model.Category) *CategoryPayload {
	return &CategoryPayload{Category: category}
}

func NewCategoryListResponse(categories []model.Category) []render.Renderer {
	list := []render.Renderer{}
	for i := range categories {
		list = append(list, NewCategoryPayloadResponse(&categories[i]))
	}

	return list
}

// Bind on CategoryPayload will run after the unmarshalling is complete, its
// a good time to focus some post-processing after a decoding.
func (c *CategoryPayload) Bind(r *http.Request) error {
	if c.Category == nil {
		return errors.New("missing required Category fields")
	}

	c.ProtectedID = nil
	c.Category.ID = 0

	return nil
}

func (c *CategoryPayload) Render(w http.ResponseWriter, r *http.Request) error {
	return nil
}

// MarshalJSON writes the category as stored; ProtectedID only guards the
// input and would otherwise hide the stored id.
func (c *CategoryPayload) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.Category)
}
