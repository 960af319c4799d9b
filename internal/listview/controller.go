package listview

import (
	"context"
	"errors"
	"sync"
	"time"

	"entq/internal/domain/entity"

	"github.com/rs/zerolog/log"
)

// PollInterval is fixed; the list is never polled at any other rate.
const PollInterval = 2000 * time.Millisecond

type QueryClient interface {
	Fetch(ctx context.Context, vars *entity.QueryVariables) ([]*entity.Entity, error)
}

// QueryFunc adapts a plain function, such as an entity.Lister's List
// method, to a QueryClient.
type QueryFunc func(ctx context.Context, vars *entity.QueryVariables) ([]*entity.Entity, error)

func (f QueryFunc) Fetch(ctx context.Context, vars *entity.QueryVariables) ([]*entity.Entity, error) {
	return f(ctx, vars)
}

// Controller owns the state of one application's entity list: sort,
// search, the create dialog flag, the last applied result and the polling
// lifecycle.
type Controller struct {
	mu sync.Mutex

	appID     string
	client    QueryClient
	scheduler Scheduler
	spawn     func(func())
	onChange  func()

	sort       entity.SortSpec
	search     string
	createOpen bool

	entities     []*entity.Entity
	loaded       bool
	notification *Notification

	// seq numbers fetches in start order. applied is the seq of the
	// response currently shown.
	seq     uint64
	applied uint64

	mounted bool
	ctx     context.Context
	cancel  context.CancelFunc
	stop    func()
}

type Option func(*Controller)

func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.scheduler = s }
}

// WithSpawn replaces the goroutine used for fetches. Tests pass a function
// that runs the fetch inline.
func WithSpawn(fn func(func())) Option {
	return func(c *Controller) { c.spawn = fn }
}

// WithOnChange registers a callback run after every state change, outside
// the controller lock.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

// WithSort sets the initial sort without fetching.
func WithSort(spec entity.SortSpec) Option {
	return func(c *Controller) { c.sort = spec.Normalize() }
}

// WithSearch sets the initial search phrase without fetching.
func WithSearch(phrase string) Option {
	return func(c *Controller) { c.search = phrase }
}

func NewController(appID string, client QueryClient, opts ...Option) *Controller {
	c := &Controller{
		appID:     appID,
		client:    client,
		scheduler: TickerScheduler{},
		spawn:     func(fn func()) { go fn() },
		sort:      entity.SortSpec{}.Normalize(),
	}
	for _, o := range opts {
		o(c)
	}

	return c
}

func (c *Controller) AppID() string {
	return c.appID
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Controller) variablesLocked() *entity.QueryVariables {
	return entity.BuildQueryVariables(c.appID, c.sort, c.search)
}

// Variables returns the query variables derived from the current sort and
// search.
func (c *Controller) Variables() *entity.QueryVariables {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.variablesLocked()
}

func (c *Controller) Sort() entity.SortSpec {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.sort
}

func (c *Controller) Search() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.search
}

// SetSort replaces the sort. An empty field sorts by display name and an
// empty direction means ascending.
func (c *Controller) SetSort(field string, direction entity.SortDirection) {
	c.mu.Lock()
	c.sort = entity.SortSpec{Field: field, Direction: direction}.Normalize()
	ctx := c.fetchContextLocked()
	c.mu.Unlock()

	c.Refetch(ctx)
	c.changed()
}

// SetSearch stores phrase as typed. Every call refetches.
func (c *Controller) SetSearch(phrase string) {
	c.mu.Lock()
	c.search = phrase
	ctx := c.fetchContextLocked()
	c.mu.Unlock()

	c.Refetch(ctx)
	c.changed()
}

func (c *Controller) ToggleCreateDialog() bool {
	c.mu.Lock()
	c.createOpen = !c.createOpen
	open := c.createOpen
	c.mu.Unlock()

	c.changed()
	return open
}

func (c *Controller) CreateDialogOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.createOpen
}

func (c *Controller) fetchContextLocked() context.Context {
	if c.mounted {
		return c.ctx
	}

	return context.Background()
}

// Refetch starts a fetch with the current variables. Its response is
// applied only if no newer response has been applied already.
func (c *Controller) Refetch(ctx context.Context) {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	vars := c.variablesLocked()
	c.mu.Unlock()

	c.spawn(func() {
		entities, err := c.client.Fetch(ctx, vars)
		c.apply(seq, entities, err)
	})
}

func (c *Controller) apply(seq uint64, entities []*entity.Entity, err error) {
	// Cancelled fetches belong to an unmounted view.
	if errors.Is(err, context.Canceled) {
		return
	}

	c.mu.Lock()
	if seq <= c.applied {
		applied := c.applied
		c.mu.Unlock()
		log.Debug().
			Uint64("seq", seq).
			Uint64("applied", applied).
			Msg("dropping stale entities response")
		return
	}
	c.applied = seq

	if err != nil {
		log.Warn().Err(err).Str("app", c.appID).Msg("entities query failed")
		c.notification = &Notification{Message: FormatError(err), CreatedAt: time.Now()}
	} else {
		c.entities = entities
		c.loaded = true
	}
	c.mu.Unlock()

	c.changed()
}

// Mount fetches once and starts polling. Calling it again while mounted
// does nothing.
func (c *Controller) Mount(ctx context.Context) {
	c.mu.Lock()
	if c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = true
	c.ctx, c.cancel = context.WithCancel(ctx)
	fetchCtx := c.ctx
	c.mu.Unlock()

	c.Refetch(fetchCtx)
	stop := c.scheduler.Every(PollInterval, func() { c.Refetch(fetchCtx) })

	// Unmount may have run while the scheduler was starting. The poller then
	// belongs to no mount and is stopped here.
	c.mu.Lock()
	current := c.mounted && c.ctx == fetchCtx
	if current {
		c.stop = stop
	}
	c.mu.Unlock()

	if !current {
		stop()
	}
}

// Unmount stops polling and cancels in-flight fetches. Calling it while
// not mounted does nothing.
func (c *Controller) Unmount() {
	c.mu.Lock()
	if !c.mounted {
		c.mu.Unlock()
		return
	}
	c.mounted = false
	stop, cancel := c.stop, c.cancel
	c.stop = nil
	c.mu.Unlock()

	if stop != nil {
		stop()
	}
	cancel()
}

func (c *Controller) Mounted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.mounted
}

// Loaded reports whether any response has been applied yet.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.loaded
}

func (c *Controller) Entities() []*entity.Entity {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]*entity.Entity, len(c.entities))
	copy(out, c.entities)
	return out
}

// Entity returns the loaded entity with id, or nil.
func (c *Controller) Entity(id entity.EntityID) *entity.Entity {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, e := range c.entities {
		if e.ID == id {
			return e
		}
	}

	return nil
}

func (c *Controller) Rows() []*Row {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make([]*Row, 0, len(c.entities))
	for _, e := range c.entities {
		rows = append(rows, NewRow(c.appID, e))
	}

	return rows
}

func (c *Controller) Notification() *Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.notification
}

func (c *Controller) DismissNotification() {
	c.mu.Lock()
	had := c.notification != nil
	c.notification = nil
	c.mu.Unlock()

	if had {
		c.changed()
	}
}

// ExpireNotification hides the notification once it has been visible for
// timeout.
func (c *Controller) ExpireNotification(now time.Time, timeout time.Duration) {
	c.mu.Lock()
	expired := c.notification != nil && c.notification.Expired(now, timeout)
	if expired {
		c.notification = nil
	}
	c.mu.Unlock()

	if expired {
		c.changed()
	}
}
