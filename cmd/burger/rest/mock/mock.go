package mock

import (
	"context"
	"sync"
	"testing"

	"github.com/stellarburgers/burger/cmd/burger/rest"
	apiauth "github.com/stellarburgers/burger/pkg/api/types/auth"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
)

type LoginArgs struct {
	Email    string
	Password string
}

type RegisterArgs struct {
	Name     string
	Email    string
	Password string
}

func New(t *testing.T) *mockBurgerClient {
	return &mockBurgerClient{t: t}
}

type mockBurgerClient struct {
	t  *testing.T
	mu sync.Mutex

	Impl struct {
		GetIngredients   func(ctx context.Context) ([]apiingr.Ingredient, error)
		GetUser          func(ctx context.Context) (apiauth.User, error)
		Login            func(ctx context.Context, email string, password string) (apiauth.User, apiauth.Tokens, error)
		Register         func(ctx context.Context, name string, email string, password string) (apiauth.User, apiauth.Tokens, error)
		Logout           func(ctx context.Context, refreshToken string) error
		RefreshToken     func(ctx context.Context, refreshToken string) (apiauth.Tokens, error)
		UpdateUser       func(ctx context.Context, patch apiauth.UserPatch) (apiauth.User, error)
		GetUserOrders    func(ctx context.Context) ([]apiorders.Order, error)
		GetOrderByNumber func(ctx context.Context, number int) (*apiorders.Order, error)
		GetFeed          func(ctx context.Context) (apiorders.Feed, error)
		PlaceOrder       func(ctx context.Context, ingredientIds []string) (apiorders.Placement, error)
	}
	Calls struct {
		GetIngredients   int
		GetUser          int
		Login            []LoginArgs
		Register         []RegisterArgs
		Logout           []string
		RefreshToken     []string
		UpdateUser       []apiauth.UserPatch
		GetUserOrders    int
		GetOrderByNumber []int
		GetFeed          int
		PlaceOrder       [][]string
	}
}

var _ rest.BurgerClient = &mockBurgerClient{}

func (m *mockBurgerClient) GetIngredients(ctx context.Context) ([]apiingr.Ingredient, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetIngredients += 1
	m.mu.Unlock()

	if m.Impl.GetIngredients == nil {
		m.t.Fatal("GetIngredients is not ready to be called")
	}
	return m.Impl.GetIngredients(ctx)
}

func (m *mockBurgerClient) GetUser(ctx context.Context) (apiauth.User, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetUser += 1
	m.mu.Unlock()

	if m.Impl.GetUser == nil {
		m.t.Fatal("GetUser is not ready to be called")
	}
	return m.Impl.GetUser(ctx)
}

func (m *mockBurgerClient) Login(ctx context.Context, email string, password string) (apiauth.User, apiauth.Tokens, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.Login = append(m.Calls.Login, LoginArgs{Email: email, Password: password})
	m.mu.Unlock()

	if m.Impl.Login == nil {
		m.t.Fatal("Login is not ready to be called")
	}
	return m.Impl.Login(ctx, email, password)
}

func (m *mockBurgerClient) Register(ctx context.Context, name string, email string, password string) (apiauth.User, apiauth.Tokens, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.Register = append(m.Calls.Register, RegisterArgs{Name: name, Email: email, Password: password})
	m.mu.Unlock()

	if m.Impl.Register == nil {
		m.t.Fatal("Register is not ready to be called")
	}
	return m.Impl.Register(ctx, name, email, password)
}

func (m *mockBurgerClient) Logout(ctx context.Context, refreshToken string) error {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.Logout = append(m.Calls.Logout, refreshToken)
	m.mu.Unlock()

	if m.Impl.Logout == nil {
		m.t.Fatal("Logout is not ready to be called")
	}
	return m.Impl.Logout(ctx, refreshToken)
}

func (m *mockBurgerClient) RefreshToken(ctx context.Context, refreshToken string) (apiauth.Tokens, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.RefreshToken = append(m.Calls.RefreshToken, refreshToken)
	m.mu.Unlock()

	if m.Impl.RefreshToken == nil {
		m.t.Fatal("RefreshToken is not ready to be called")
	}
	return m.Impl.RefreshToken(ctx, refreshToken)
}

func (m *mockBurgerClient) UpdateUser(ctx context.Context, patch apiauth.UserPatch) (apiauth.User, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.UpdateUser = append(m.Calls.UpdateUser, patch)
	m.mu.Unlock()

	if m.Impl.UpdateUser == nil {
		m.t.Fatal("UpdateUser is not ready to be called")
	}
	return m.Impl.UpdateUser(ctx, patch)
}

func (m *mockBurgerClient) GetUserOrders(ctx context.Context) ([]apiorders.Order, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetUserOrders += 1
	m.mu.Unlock()

	if m.Impl.GetUserOrders == nil {
		m.t.Fatal("GetUserOrders is not ready to be called")
	}
	return m.Impl.GetUserOrders(ctx)
}

func (m *mockBurgerClient) GetOrderByNumber(ctx context.Context, number int) (*apiorders.Order, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetOrderByNumber = append(m.Calls.GetOrderByNumber, number)
	m.mu.Unlock()

	if m.Impl.GetOrderByNumber == nil {
		m.t.Fatal("GetOrderByNumber is not ready to be called")
	}
	return m.Impl.GetOrderByNumber(ctx, number)
}

func (m *mockBurgerClient) GetFeed(ctx context.Context) (apiorders.Feed, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.GetFeed += 1
	m.mu.Unlock()

	if m.Impl.GetFeed == nil {
		m.t.Fatal("GetFeed is not ready to be called")
	}
	return m.Impl.GetFeed(ctx)
}

func (m *mockBurgerClient) PlaceOrder(ctx context.Context, ingredientIds []string) (apiorders.Placement, error) {
	m.t.Helper()

	m.mu.Lock()
	m.Calls.PlaceOrder = append(m.Calls.PlaceOrder, ingredientIds)
	m.mu.Unlock()

	if m.Impl.PlaceOrder == nil {
		m.t.Fatal("PlaceOrder is not ready to be called")
	}
	return m.Impl.PlaceOrder(ctx, ingredientIds)
}
