// Package storefront puts the stores together and drives them.
package storefront

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/stellarburgers/burger/cmd/burger/config/credentials"
	kprof "github.com/stellarburgers/burger/cmd/burger/config/profiles"
	"github.com/stellarburgers/burger/cmd/burger/rest"
	"github.com/stellarburgers/burger/cmd/burger/state/builder"
	"github.com/stellarburgers/burger/cmd/burger/state/catalog"
	"github.com/stellarburgers/burger/cmd/burger/state/lifecycle"
	"github.com/stellarburgers/burger/cmd/burger/state/orders"
	"github.com/stellarburgers/burger/cmd/burger/state/session"
	apiorders "github.com/stellarburgers/burger/pkg/api/types/orders"
	"github.com/stellarburgers/burger/pkg/idgen"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoBun is returned when an order is placed without bun.
	ErrNoBun = errors.New("choose a bun first")

	// ErrLoginRequired is returned when an order is placed by anonymous user.
	ErrLoginRequired = errors.New("login required")

	// ErrPlacementInFlight is returned when an order is placed while another placement is in progress.
	ErrPlacementInFlight = orders.ErrPlacementInFlight
)

type Options struct {
	// IDs generates keys of builder items. Default is UUID.
	IDs idgen.Generator

	// ClearBuilderOnPlacement empties the builder after an order is placed.
	ClearBuilderOnPlacement bool

	// KeepCatalogOnError keeps the catalog when fetching it fails.
	KeepCatalogOnError bool

	// OnLoginRequired is called when an anonymous user places an order.
	OnLoginRequired func()

	Logger *logrus.Entry
}

type Storefront struct {
	Catalog *catalog.Store
	Builder *builder.Store
	Session *session.Store
	Orders  *orders.Store

	clearOnPlacement bool
	onLoginRequired  func()
	log              *logrus.Entry
}

// New builds a storefront on client.
//
// client should authenticate with keyring.
func New(client rest.BurgerClient, keyring *session.Keyring, opts Options) *Storefront {
	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = logrus.NewEntry(l)
	}
	ids := opts.IDs
	if ids == nil {
		ids = idgen.UUID()
	}

	observer := lifecycle.Observer(func(e lifecycle.Event) {
		entry := logger.WithField("store", e.Store).WithField("operation", e.Operation)
		if e.Error != "" {
			entry = entry.WithField("error", e.Error)
		}
		entry.Debug(e.Phase.String())
	})

	catalogOptions := []catalog.Option{catalog.WithObserver(observer)}
	if opts.KeepCatalogOnError {
		catalogOptions = append(catalogOptions, catalog.WithKeepStaleOnError())
	}

	return &Storefront{
		Catalog: catalog.New(client, catalogOptions...),
		Builder: builder.New(ids),
		Session: session.New(client, keyring, session.WithObserver(observer)),
		Orders:  orders.New(client, orders.WithObserver(observer)),

		clearOnPlacement: opts.ClearBuilderOnPlacement,
		onLoginRequired:  opts.OnLoginRequired,
		log:              logger,
	}
}

// Dial connects to the API of prof and builds a storefront.
//
// The refresh token is kept in longLived, and the access token is kept in shortLived.
func Dial(
	prof *kprof.Profile,
	longLived credentials.Store,
	shortLived credentials.Store,
	opts Options,
	restOptions ...rest.Option,
) (*Storefront, error) {
	if opts.Logger != nil {
		restOptions = append(restOptions, rest.WithLogger(opts.Logger))
	}

	// tokens are refreshed without credentials.
	refresher, err := rest.NewClient(prof, restOptions...)
	if err != nil {
		return nil, err
	}
	keyring := session.NewKeyring(refresher, longLived, shortLived)

	client, err := rest.NewClient(prof, append(restOptions, rest.WithAuthenticator(keyring))...)
	if err != nil {
		return nil, err
	}
	return New(client, keyring, opts), nil
}

// Start loads the catalog and recovers the session, independently.
//
// Only the failure of the catalog is returned. The session stays anonymous when it cannot be recovered.
func (s *Storefront) Start(ctx context.Context) error {
	eg := new(errgroup.Group)
	eg.Go(func() error {
		_, err := s.Catalog.Fetch(ctx)
		return err
	})
	eg.Go(func() error {
		if err := s.Session.Rehydrate(ctx); err != nil {
			s.log.WithError(err).Debug("session is not recovered")
		}
		return nil
	})
	return eg.Wait()
}

// PlaceOrder orders the burger in the builder.
//
// It is refused without requests when there are no bun (ErrNoBun),
// another placement is in flight (ErrPlacementInFlight), or
// nobody is logged in (ErrLoginRequired, after OnLoginRequired is called).
func (s *Storefront) PlaceOrder(ctx context.Context) (apiorders.Placement, error) {
	if !s.Builder.HasBun() {
		return apiorders.Placement{}, ErrNoBun
	}
	if s.Orders.Snapshot().PlacementStatus.IsLoading() {
		return apiorders.Placement{}, ErrPlacementInFlight
	}
	if !s.Session.IsAuthenticated() {
		if s.onLoginRequired != nil {
			s.onLoginRequired()
		}
		return apiorders.Placement{}, ErrLoginRequired
	}

	placement, err := s.Orders.PlaceOrder(ctx, s.Builder.IngredientIDs())
	if err != nil {
		return apiorders.Placement{}, err
	}
	if s.clearOnPlacement {
		s.Builder.Clear()
	}
	return placement, nil
}

// Price of the burger in the builder.
func (s *Storefront) Price() int {
	return s.Builder.TotalPrice()
}
