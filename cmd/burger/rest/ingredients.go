package rest

import (
	"context"
	"net/http"

	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
)

func (c *client) GetIngredients(ctx context.Context) ([]apiingr.Ingredient, error) {
	resp, err := c.do(ctx, request{method: http.MethodGet, path: []string{"ingredients"}})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body := apiingr.Response{}
	if err := unmarshalJsonResponse(
		resp, &body,
		MessageFor{
			Status2xx: "failed to load ingredients",
			Status4xx: "[BUG] client is not compatible with the server",
			Status5xx: serverError(resp),
		},
	); err != nil {
		return nil, err
	}
	if body.Data == nil {
		return []apiingr.Ingredient{}, nil
	}
	return body.Data, nil
}
