package fakeapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	"github.com/stellarburgers/burger/pkg/api/types/misc/rfctime"
	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
)

// number of orders placed before the fake server started, reported as feed total.
const history = 28000

func (s *Server) timestamp() rfctime.Timestamp {
	return rfctime.Timestamp(s.now())
}

func (s *Server) feed(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	today := 0
	for _, o := range s.orders {
		created := o.CreatedAt.Time().UTC()
		if created.Year() == now.Year() && created.YearDay() == now.YearDay() {
			today += 1
		}
	}

	orders := make([]apiorders.Order, 0, len(s.orders))
	for nth := len(s.orders) - 1; 0 <= nth; nth-- {
		orders = append(orders, s.orders[nth])
	}

	return c.JSON(http.StatusOK, apiorders.FeedResponse{
		Success: true,
		Feed: apiorders.Feed{
			Orders:     orders,
			Total:      history + len(s.orders),
			TotalToday: today,
		},
	})
}

func (s *Server) userOrders(c echo.Context) error {
	email := c.Get(keyEmail).(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	orders := []apiorders.Order{}
	for _, o := range s.orders {
		if s.owners[o.Number] == email {
			orders = append(orders, o)
		}
	}
	return c.JSON(http.StatusOK, apiorders.ListResponse{Success: true, Orders: orders})
}

func (s *Server) orderByNumber(c echo.Context) error {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		return reject(c, http.StatusBadRequest, "order number should be a number")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	orders := []apiorders.Order{}
	for _, o := range s.orders {
		if o.Number == number {
			orders = append(orders, o)
		}
	}
	return c.JSON(http.StatusOK, apiorders.ListResponse{Success: true, Orders: orders})
}

func (s *Server) placeOrder(c echo.Context) error {
	email := c.Get(keyEmail).(string)

	req := apiorders.PlaceRequest{}
	if err := c.Bind(&req); err != nil {
		return reject(c, http.StatusBadRequest, "malformed request")
	}
	if len(req.Ingredients) == 0 {
		return reject(c, http.StatusBadRequest, "Ingredient ids must be provided")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byId := map[string]apiingr.Ingredient{}
	for _, i := range s.ingredients {
		byId[i.Id] = i
	}

	names := []string{}
	seen := map[string]bool{}
	for _, id := range req.Ingredients {
		ingr, ok := byId[id]
		if !ok {
			return reject(c, http.StatusBadRequest, "One or more ids provided are incorrect")
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		names = append(names, strings.Fields(ingr.Name)[0])
	}
	name := strings.Join(names, " ") + " burger"

	now := s.timestamp()
	order := apiorders.Order{
		Id:          s.ids.Next(),
		Status:      apiorders.Pending,
		Name:        name,
		CreatedAt:   now,
		UpdatedAt:   now,
		Number:      s.nextNumber,
		Ingredients: append([]string{}, req.Ingredients...),
	}
	s.nextNumber += 1
	s.orders = append(s.orders, order)
	s.owners[order.Number] = email

	return c.JSON(http.StatusOK, apiorders.PlaceResponse{
		Success: true,
		Name:    name,
		Order:   &apiorders.Placement{Number: order.Number},
	})
}
