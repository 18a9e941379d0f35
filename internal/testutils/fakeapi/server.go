// Package fakeapi is an in-memory burger API for tests.
package fakeapi

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	kprof "github.com/stellarburgers/burger/cmd/burger/config/profiles"
	apiauth "github.com/stellarburgers/burger/pkg/api/types/auth"
	apierr "github.com/stellarburgers/burger/pkg/api/types/errors"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
	"github.com/stellarburgers/burger/pkg/idgen"
)

type account struct {
	user     apiauth.User
	password string
}

type Server struct {
	server *httptest.Server

	mu sync.Mutex

	secret []byte
	ttl    time.Duration
	skew   atomic.Int64

	ingredients []apiingr.Ingredient
	accounts    map[string]*account // by email
	refresh     map[string]string   // refresh token -> email
	orders      []apiorders.Order
	owners      map[int]string // order number -> email
	nextNumber  int
	ids         idgen.Generator

	failures map[string]failure
	requests map[string]int
}

type failure struct {
	status  int
	message string
}

type Option func(*Server) *Server

// WithIngredients sets the catalog served by GET /ingredients.
func WithIngredients(items ...apiingr.Ingredient) Option {
	return func(s *Server) *Server {
		s.ingredients = append(s.ingredients, items...)
		return s
	}
}

// WithAccount registers an account in advance.
func WithAccount(name, email, password string) Option {
	return func(s *Server) *Server {
		s.accounts[email] = &account{
			user:     apiauth.User{Name: name, Email: email},
			password: password,
		}
		return s
	}
}

// WithAccessTokenTTL sets lifetime of access tokens. Default is 20 minutes.
func WithAccessTokenTTL(ttl time.Duration) Option {
	return func(s *Server) *Server {
		s.ttl = ttl
		return s
	}
}

// WithOrders puts orders into the public feed.
func WithOrders(orders ...apiorders.Order) Option {
	return func(s *Server) *Server {
		for _, o := range orders {
			s.orders = append(s.orders, o)
			if s.nextNumber <= o.Number {
				s.nextNumber = o.Number + 1
			}
		}
		return s
	}
}

// New starts a fake API server. It is closed on cleanup of t.
func New(t *testing.T, options ...Option) *Server {
	t.Helper()

	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		t.Fatal(err)
	}

	s := &Server{
		secret:     secret,
		ttl:        20 * time.Minute,
		accounts:   map[string]*account{},
		refresh:    map[string]string{},
		owners:     map[int]string{},
		nextNumber: 1000,
		ids:        idgen.NewCounter("order-"),
		failures:   map[string]failure{},
		requests:   map[string]int{},
	}
	for _, opt := range options {
		s = opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	SetLevel(e, "off")
	e.Use(middleware.Recover())
	e.Use(LogHandlerFunc)
	e.Use(s.count)
	e.Use(s.inject)

	e.GET("/ingredients", s.getIngredients)

	e.POST("/auth/login", s.login)
	e.POST("/auth/register", s.register)
	e.POST("/auth/logout", s.logout)
	e.POST("/auth/token", s.token)
	e.GET("/auth/user", s.getUser, s.authorized)
	e.PATCH("/auth/user", s.patchUser, s.authorized)

	e.GET("/orders", s.userOrders, s.authorized)
	e.POST("/orders", s.placeOrder, s.authorized)
	e.GET("/orders/all", s.feed)
	e.GET("/orders/:number", s.orderByNumber)

	s.server = httptest.NewServer(e)
	t.Cleanup(s.server.Close)
	return s
}

// URL is the API root.
func (s *Server) URL() string {
	return s.server.URL
}

// Profile returns a profile pointing this server.
func (s *Server) Profile() *kprof.Profile {
	return &kprof.Profile{ApiRoot: s.server.URL}
}

// Advance moves the clock of the server forward, to expire access tokens.
func (s *Server) Advance(d time.Duration) {
	s.skew.Add(int64(d))
}

// Fail makes requests to path respond with status and message, until Recover(path).
//
// path is the route pattern, like "/orders/:number".
func (s *Server) Fail(path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[path] = failure{status: status, message: message}
}

func (s *Server) Recover(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, path)
}

// Requests counts requests for the route pattern, like "GET /auth/user".
func (s *Server) Requests(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[route]
}

// Orders returns placed and pre-seeded orders.
func (s *Server) Orders() []apiorders.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]apiorders.Order{}, s.orders...)
}

// SetStatus changes status of the order.
func (s *Server) SetStatus(number int, status apiorders.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for nth := range s.orders {
		if s.orders[nth].Number == number {
			s.orders[nth].Status = status
			s.orders[nth].UpdatedAt = s.timestamp()
		}
	}
}

// User returns the account registered with email.
func (s *Server) User(email string) (apiauth.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[email]
	if !ok {
		return apiauth.User{}, false
	}
	return a.user, true
}

func (s *Server) now() time.Time {
	return time.Now().Add(time.Duration(s.skew.Load()))
}

func (s *Server) count(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		s.requests[c.Request().Method+" "+c.Path()] += 1
		s.mu.Unlock()
		return next(c)
	}
}

func (s *Server) inject(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		s.mu.Lock()
		f, ok := s.failures[c.Path()]
		s.mu.Unlock()
		if ok {
			return reject(c, f.status, f.message)
		}
		return next(c)
	}
}

func reject(c echo.Context, status int, message string) error {
	return c.JSON(status, apierr.ErrorResponse{Success: false, Message: message})
}

func (s *Server) getIngredients(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return c.JSON(http.StatusOK, apiingr.Response{
		Success: true,
		Data:    append([]apiingr.Ingredient{}, s.ingredients...),
	})
}

func randomToken() string {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	return hex.EncodeToString(buf)
}
