// Package dashboard implements the view-state controller for the
// customer dashboard: the loading → ready / unauthenticated lifecycle,
// tab selection, and logout. Customer data is fetched exactly once per
// mount and every tab renders from that single aggregate.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/Team-SMDRS/customer-dashboard/internal/domain"
	"github.com/Team-SMDRS/customer-dashboard/internal/infra/observability"
	"github.com/Team-SMDRS/customer-dashboard/internal/session"
)

// State is the controller lifecycle state.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	// StateUnauthenticated is terminal for the session: the credential
	// is gone (or was never there) and the caller must go to login.
	StateUnauthenticated State = "unauthenticated"
	// StateDegraded means the data fetch failed for a non-auth reason.
	// The session credential is still intact.
	StateDegraded State = "degraded"
)

// Tab identifies one of the four dashboard views.
type Tab string

const (
	TabOverview      Tab = "overview"
	TabAccounts      Tab = "accounts"
	TabTransactions  Tab = "transactions"
	TabFixedDeposits Tab = "fixed-deposits"
)

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case TabOverview, TabAccounts, TabTransactions, TabFixedDeposits:
		return Tab(s), nil
	}
	return "", &domain.ErrValidation{Field: "tab", Message: fmt.Sprintf("unknown tab %q", s)}
}

// DataFetcher is the slice of the bank client the controller needs.
type DataFetcher interface {
	GetCustomerDetails(ctx context.Context) (*domain.CustomerData, error)
}

// Controller owns the dashboard view state. All mutation is serialized
// behind its mutex; stale fetch completions are discarded via a
// generation counter so a slow response can never clobber the state of
// a newer mount or a logout.
type Controller struct {
	fetcher DataFetcher
	session *session.Store
	metrics *observability.Metrics
	logger  *zap.Logger

	mu         sync.Mutex
	state      State
	tab        Tab
	data       *domain.CustomerData
	generation uint64

	group singleflight.Group
}

// NewController creates a controller in the loading state.
func NewController(fetcher DataFetcher, sess *session.Store, metrics *observability.Metrics, logger *zap.Logger) *Controller {
	return &Controller{
		fetcher: fetcher,
		session: sess,
		metrics: metrics,
		logger:  logger,
		state:   StateLoading,
		tab:     TabOverview,
	}
}

// Mount loads the dashboard: it checks the session, fetches the customer
// aggregate, and settles in ready, degraded, or unauthenticated.
// Concurrent mounts are coalesced into a single request.
func (c *Controller) Mount(ctx context.Context) error {
	// The session check and the generation take share one critical
	// section, so a logout can only land entirely before or entirely
	// after them, never in between.
	c.mu.Lock()
	if _, ok := c.session.Get(); !ok {
		c.state = StateUnauthenticated
		c.data = nil
		c.mu.Unlock()
		c.logger.Info("mount: no session credential, going to login")
		return &domain.ErrMissingCredential{}
	}
	c.generation++
	gen := c.generation
	c.mu.Unlock()

	v, err, _ := c.group.Do("customer_data", func() (any, error) {
		return c.fetcher.GetCustomerDetails(ctx)
	})

	// Re-verify the generation and install the outcome under the same
	// lock: a logout or newer mount that got in while the fetch was in
	// flight invalidates this result, and nothing can slip between the
	// check and the install.
	c.mu.Lock()
	if c.generation != gen {
		c.mu.Unlock()
		c.logger.Debug("mount: discarding stale fetch result", zap.Uint64("generation", gen))
		return err
	}

	if err != nil {
		var authErr *domain.ErrAuth
		var missing *domain.ErrMissingCredential
		switch {
		case errors.As(err, &authErr), errors.As(err, &missing):
			// Only a credential problem ends the session; anything
			// else degrades the view and leaves the token alone.
			c.state = StateUnauthenticated
			c.data = nil
			c.mu.Unlock()
			c.logger.Warn("mount: session rejected, going to login", zap.Error(err))
		default:
			c.state = StateDegraded
			c.data = nil
			c.mu.Unlock()
			c.logger.Error("mount: customer data fetch failed", zap.Error(err))
		}
		return err
	}

	data := v.(*domain.CustomerData)
	c.data = data
	c.state = StateReady
	c.tab = TabOverview
	c.mu.Unlock()

	c.logger.Info("dashboard ready",
		zap.String("customer_id", data.CustomerProfile.CustomerID),
		zap.Int("accounts", len(data.Accounts)),
		zap.Int("transactions", len(data.Transactions)),
		zap.Int("fixed_deposits", len(data.FixedDeposits)),
	)
	return nil
}

// SelectTab switches the active tab. It is a pure state update: no
// network call is made and the held data is untouched.
func (c *Controller) SelectTab(tab Tab) error {
	if _, err := ParseTab(string(tab)); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != StateReady {
		return &domain.ErrValidation{Field: "state", Message: "dashboard is not ready"}
	}
	c.tab = tab
	return nil
}

// Logout clears the session unconditionally and discards the loaded
// data. The generation bump and the state change happen under the same
// lock Mount installs under, so an in-flight fetch can never overwrite
// the logged-out state.
func (c *Controller) Logout() error {
	c.mu.Lock()
	c.generation++
	err := c.session.Clear()
	c.state = StateUnauthenticated
	c.data = nil
	c.mu.Unlock()

	c.metrics.IncrSessionClear()
	c.logger.Info("logged out")
	return err
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ActiveTab returns the selected tab.
func (c *Controller) ActiveTab() Tab {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.tab
}

// Data returns the loaded customer aggregate, or nil before ready.
func (c *Controller) Data() *domain.CustomerData {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.data
}
