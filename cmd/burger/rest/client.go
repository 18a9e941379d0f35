package rest

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	kprof "github.com/stellarburgers/burger/cmd/burger/config/profiles"
	apiauth "github.com/stellarburgers/burger/pkg/api/types/auth"
	apiingr "github.com/stellarburgers/burger/pkg/api/types/ingredients"
	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
)

type BurgerClient interface {
	// GetIngredients fetches the catalog.
	//
	// GET /ingredients
	GetIngredients(ctx context.Context) ([]apiingr.Ingredient, error)

	// GetUser fetches the user owning the current credentials.
	//
	// GET /auth/user (authorized)
	GetUser(ctx context.Context) (apiauth.User, error)

	// Login authenticates with email and password.
	//
	// POST /auth/login
	//
	// # Returns
	//
	// - apiauth.User: the logged-in user
	//
	// - apiauth.Tokens: new credentials. Both of them are non-empty.
	//
	// - error
	Login(ctx context.Context, email string, password string) (apiauth.User, apiauth.Tokens, error)

	// Register creates a new account and authenticates as it.
	//
	// POST /auth/register
	//
	// When email is used by another account, ErrRejected is returned with the server's message.
	Register(ctx context.Context, name string, email string, password string) (apiauth.User, apiauth.Tokens, error)

	// Logout invalidates refreshToken on the server.
	//
	// POST /auth/logout
	Logout(ctx context.Context, refreshToken string) error

	// RefreshToken exchanges refreshToken with new credentials.
	//
	// POST /auth/token
	RefreshToken(ctx context.Context, refreshToken string) (apiauth.Tokens, error)

	// UpdateUser changes fields of the user which are non-nil in patch.
	//
	// PATCH /auth/user (authorized)
	UpdateUser(ctx context.Context, patch apiauth.UserPatch) (apiauth.User, error)

	// GetUserOrders fetches orders of the current user.
	//
	// GET /orders (authorized)
	GetUserOrders(ctx context.Context) ([]apiorders.Order, error)

	// GetOrderByNumber fetches an order by its number.
	//
	// GET /orders/:number
	//
	// When there are no such order, it returns (nil, nil).
	GetOrderByNumber(ctx context.Context, number int) (*apiorders.Order, error)

	// GetFeed fetches the public feed of orders.
	//
	// GET /orders/all
	GetFeed(ctx context.Context) (apiorders.Feed, error)

	// PlaceOrder submits an order of ingredients.
	//
	// POST /orders (authorized)
	//
	// ingredientIds are sent as they are. Callers put the bun at both ends.
	PlaceOrder(ctx context.Context, ingredientIds []string) (apiorders.Placement, error)
}

// Authenticator provides credentials for authorized requests.
//
// The client never stores credentials by itself.
type Authenticator interface {
	// AccessToken returns the current access token, or "" if there are none.
	AccessToken() string

	// Refresh gets a new access token.
	//
	// It is called when the server refuses the current access token.
	Refresh(ctx context.Context) (string, error)
}

type client struct {
	httpclient *http.Client
	api        string
	auth       Authenticator
	log        *logrus.Entry
}

type config struct {
	httpclient *http.Client
	auth       Authenticator
	registerer prometheus.Registerer
	log        *logrus.Entry
}

type Option func(*config) *config

// WithAuthenticator sets the source of credentials.
//
// Without this, authorized requests fail with ErrUnauthorized.
func WithAuthenticator(a Authenticator) Option {
	return func(c *config) *config {
		c.auth = a
		return c
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) *config {
		c.httpclient = hc
		return c
	}
}

// WithMetrics registers request metrics into reg.
func WithMetrics(reg prometheus.Registerer) Option {
	return func(c *config) *config {
		c.registerer = reg
		return c
	}
}

func WithLogger(l *logrus.Entry) Option {
	return func(c *config) *config {
		c.log = l
		return c
	}
}

// NewClient creates a new client for Profile.
//
// # Returns
//
// - BurgerClient: created client
//
// - error: If given profile is invalid, ErrProfileInvalid is returned.
func NewClient(prof *kprof.Profile, options ...Option) (BurgerClient, error) {
	if err := prof.Verify(); err != nil {
		return nil, err
	}

	conf := &config{}
	for _, opt := range options {
		conf = opt(conf)
	}

	httpclient := conf.httpclient
	if httpclient == nil {
		httpclient = new(http.Client)
	} else {
		hc := *httpclient
		httpclient = &hc
	}
	if prof.Timeout != 0 {
		httpclient.Timeout = prof.Timeout
	}

	if prof.Cert.CA != "" {
		hc, err := trustCa(httpclient, []string{prof.Cert.CA})
		if err != nil {
			return nil, err
		}
		httpclient = hc
	}

	if conf.registerer != nil {
		tran, err := instrument(conf.registerer, httpclient.Transport)
		if err != nil {
			return nil, err
		}
		httpclient.Transport = tran
	}

	logger := conf.log
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = logrus.NewEntry(l)
	}

	return &client{
		httpclient: httpclient,
		api:        strings.TrimSuffix(prof.ApiRoot, "/"),
		auth:       conf.auth,
		log:        logger,
	}, nil
}

// build URL with path
func (c *client) apipath(path ...string) string {
	elems := make([]string, 0, len(path)+1)
	elems = append(elems, c.api)
	for _, p := range path {
		elems = append(elems, strings.Trim(p, "/"))
	}
	return strings.Join(elems, "/")
}

func trustCa(hc *http.Client, cacerts []string) (*http.Client, error) {
	if len(cacerts) <= 0 {
		return hc, nil
	}

	if hc.Transport == nil {
		hc.Transport = http.DefaultTransport
	}

	tran, ok := hc.Transport.(*http.Transport)
	if !ok {
		return nil, fmt.Errorf("failed to add ca cert")
	}
	tran = tran.Clone()

	tcc := tran.TLSClientConfig.Clone()
	if tcc == nil {
		tcc = &tls.Config{}
	}

	rootcas := tcc.RootCAs
	if rootcas == nil {
		rootcas = x509.NewCertPool()
		tcc.RootCAs = rootcas
	}
	for _, ca := range cacerts {
		bin, err := base64.StdEncoding.DecodeString(ca)
		if err != nil {
			return nil, err
		}
		if !rootcas.AppendCertsFromPEM(bin) {
			return nil, fmt.Errorf("failed to add cert")
		}
	}

	tran.TLSClientConfig = tcc
	hc.Transport = tran
	return hc, nil
}
