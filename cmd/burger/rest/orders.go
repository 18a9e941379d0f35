package rest

import (
	"context"
	"net/http"
	"strconv"

	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
)

func (c *client) GetUserOrders(ctx context.Context) ([]apiorders.Order, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodGet, path: []string{"orders"}, authorized: true,
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body := apiorders.ListResponse{}
	if err := unmarshalJsonResponse(resp, &body, MessageFor{
		Status2xx: "failed to load your orders",
		Status4xx: "failed to load your orders",
		Status5xx: serverError(resp),
	}); err != nil {
		return nil, err
	}
	if body.Orders == nil {
		return []apiorders.Order{}, nil
	}
	return body.Orders, nil
}

func (c *client) GetOrderByNumber(ctx context.Context, number int) (*apiorders.Order, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodGet, path: []string{"orders", strconv.Itoa(number)},
	})
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		// not found is a result, not a failure.
		drain(resp)
		return nil, nil
	}

	body := apiorders.ListResponse{}
	if err := unmarshalJsonResponse(resp, &body, MessageFor{
		Status2xx: "failed to load order",
		Status4xx: "failed to load order",
		Status5xx: serverError(resp),
	}); err != nil {
		return nil, err
	}
	if len(body.Orders) == 0 {
		return nil, nil
	}
	found := body.Orders[0]
	return &found, nil
}

func (c *client) GetFeed(ctx context.Context) (apiorders.Feed, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodGet, path: []string{"orders", "all"},
	})
	if err != nil {
		return apiorders.Feed{}, err
	}
	defer resp.Body.Close()

	body := apiorders.FeedResponse{}
	if err := unmarshalJsonResponse(resp, &body, MessageFor{
		Status2xx: "failed to load the order feed",
		Status4xx: "failed to load the order feed",
		Status5xx: serverError(resp),
	}); err != nil {
		return apiorders.Feed{}, err
	}
	if body.Orders == nil {
		body.Orders = []apiorders.Order{}
	}
	return body.Feed, nil
}

func (c *client) PlaceOrder(ctx context.Context, ingredientIds []string) (apiorders.Placement, error) {
	resp, err := c.do(ctx, request{
		method: http.MethodPost, path: []string{"orders"},
		body:       apiorders.PlaceRequest{Ingredients: ingredientIds},
		authorized: true,
	})
	if err != nil {
		return apiorders.Placement{}, err
	}
	defer resp.Body.Close()

	body := apiorders.PlaceResponse{}
	if err := unmarshalJsonResponse(resp, &body, MessageFor{
		Status2xx: "failed to place order",
		Status4xx: "failed to place order",
		Status5xx: serverError(resp),
	}); err != nil {
		return apiorders.Placement{}, err
	}
	if body.Order == nil {
		return apiorders.Placement{}, rejection("failed to place order", ErrRejected, "order is missing in response")
	}
	placement := *body.Order
	placement.Name = body.Name
	return placement, nil
}
