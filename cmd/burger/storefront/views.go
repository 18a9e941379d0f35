package storefront

import (
	"time"

	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
)

const (
	// CardIngredients is the max number of ingredients shown in an order card.
	CardIngredients = 6

	// BoardNumbers is the max number of order numbers in each column of the feed board.
	BoardNumbers = 20
)

// OrderCard is a summary of an order in lists.
type OrderCard struct {
	Number    int              `json:"number"`
	Name      string           `json:"name"`
	Status    apiorders.Status `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`

	// Ingredients to be shown, up to CardIngredients.
	Ingredients []apiingr.Ingredient `json:"ingredients"`

	// Remains is the number of ingredients not in Ingredients.
	Remains int `json:"remains"`

	Total int `json:"total"`
}

// OrderLine is an ingredient in an order with its quantity.
type OrderLine struct {
	apiingr.Ingredient
	Count int `json:"count"`
}

// OrderInfo is the detail of an order.
type OrderInfo struct {
	Number    int              `json:"number"`
	Name      string           `json:"name"`
	Status    apiorders.Status `json:"status"`
	CreatedAt time.Time        `json:"createdAt"`

	// Lines in the order of first appearance.
	Lines []OrderLine `json:"lines"`

	Total int `json:"total"`
}

// FeedBoard is the stats of the feed.
type FeedBoard struct {
	Done    []int `json:"done"`
	Pending []int `json:"pending"`

	Total      int `json:"total"`
	TotalToday int `json:"totalToday"`
}

// resolve ingredients of o in the catalog. Unknown ingredients are skipped.
func (s *Storefront) resolve(o apiorders.Order) []apiingr.Ingredient {
	found := make([]apiingr.Ingredient, 0, len(o.Ingredients))
	for _, id := range o.Ingredients {
		if ingr, ok := s.Catalog.Lookup(id); ok {
			found = append(found, ingr)
		}
	}
	return found
}

func (s *Storefront) OrderCard(o apiorders.Order) OrderCard {
	ingrs := s.resolve(o)

	total := 0
	for _, i := range ingrs {
		total += i.Price
	}

	shown := ingrs
	remains := 0
	if CardIngredients < len(ingrs) {
		shown = ingrs[:CardIngredients]
		remains = len(ingrs) - CardIngredients
	}

	return OrderCard{
		Number:      o.Number,
		Name:        o.Name,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt.Time(),
		Ingredients: shown,
		Remains:     remains,
		Total:       total,
	}
}

func (s *Storefront) OrderInfo(o apiorders.Order) OrderInfo {
	lines := []OrderLine{}
	index := map[string]int{}
	total := 0
	for _, i := range s.resolve(o) {
		total += i.Price
		if nth, ok := index[i.Id]; ok {
			lines[nth].Count += 1
			continue
		}
		index[i.Id] = len(lines)
		lines = append(lines, OrderLine{Ingredient: i, Count: 1})
	}

	return OrderInfo{
		Number:    o.Number,
		Name:      o.Name,
		Status:    o.Status,
		CreatedAt: o.CreatedAt.Time(),
		Lines:     lines,
		Total:     total,
	}
}

// FeedBoard summarizes the feed loaded in the order store.
func (s *Storefront) FeedBoard() FeedBoard {
	feed := s.Orders.Snapshot().Feed

	board := FeedBoard{
		Done:       []int{},
		Pending:    []int{},
		Total:      feed.Total,
		TotalToday: feed.TotalToday,
	}
	for _, o := range feed.Orders {
		switch o.Status {
		case apiorders.Done:
			if len(board.Done) < BoardNumbers {
				board.Done = append(board.Done, o.Number)
			}
		case apiorders.Pending:
			if len(board.Pending) < BoardNumbers {
				board.Pending = append(board.Pending, o.Number)
			}
		}
	}
	return board
}
