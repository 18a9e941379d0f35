package orders

import (
	"github.com/stellarburgers/burger/pkg/api/types/misc/rfctime"
)

// Status of Order. Values are defined by the API; unknown values are kept as they are.
type Status string

const (
	Pending Status = "pending"
	Done    Status = "done"
	Created Status = "created"
)

// Order is an order accepted by the API.
type Order struct {
	Id     string `json:"_id"`
	Status Status `json:"status"`
	Name   string `json:"name"`

	CreatedAt rfctime.Timestamp `json:"createdAt"`
	UpdatedAt rfctime.Timestamp `json:"updatedAt"`

	// human-facing sequence number. It is different from Id.
	Number int `json:"number"`

	// ingredient ids in the order. Repetition means quantity.
	Ingredients []string `json:"ingredients"`
}

func (o Order) Equal(other Order) bool {
	if len(o.Ingredients) != len(other.Ingredients) {
		return false
	}
	for nth := range o.Ingredients {
		if o.Ingredients[nth] != other.Ingredients[nth] {
			return false
		}
	}
	return o.Id == other.Id &&
		o.Status == other.Status &&
		o.Name == other.Name &&
		o.CreatedAt.Equal(other.CreatedAt) &&
		o.UpdatedAt.Equal(other.UpdatedAt) &&
		o.Number == other.Number
}

// Feed is the public list of orders across all users.
type Feed struct {
	Orders     []Order `json:"orders"`
	Total      int     `json:"total"`
	TotalToday int     `json:"totalToday"`
}

// FeedResponse is the response of GET /orders/all
type FeedResponse struct {
	Success bool `json:"success"`
	Feed
}

func (r FeedResponse) Succeeded() bool {
	return r.Success
}

// ListResponse is the response of GET /orders and GET /orders/:number
type ListResponse struct {
	Success bool    `json:"success"`
	Orders  []Order `json:"orders"`
}

func (r ListResponse) Succeeded() bool {
	return r.Success
}

// PlaceRequest is the request body of POST /orders
type PlaceRequest struct {
	Ingredients []string `json:"ingredients"`
}

// Placement is the result of a successful order placement.
type Placement struct {
	Number int `json:"number"`

	// name of the burger given by the API.
	Name string `json:"-"`
}

// PlaceResponse is the response of POST /orders
type PlaceResponse struct {
	Success bool       `json:"success"`
	Name    string     `json:"name"`
	Order   *Placement `json:"order"`
}

func (r PlaceResponse) Succeeded() bool {
	return r.Success
}
