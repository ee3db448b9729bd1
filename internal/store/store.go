// Package store is the client-side cache of server-computed state: the
// aggregation overviews, the paginated invoice list, single invoices,
// and the invoice count.
//
// The store is the sole writer of its slices; screens read them through
// getters and subscribe to change notifications. Dispatching a load
// marks the slice Loading synchronously and resolves it from a
// goroutine. By default a response only lands while its dispatch
// generation is still current, so a fetch superseded by a filter change
// or a teardown is discarded instead of overwriting fresher data;
// WithLastResponseWins restores plain last-response-wins overwriting.
package store

import (
	"log/slog"
	"sync"
	"time"

	"invoicehero/internal/cache"
	"invoicehero/internal/core"
	"invoicehero/internal/log"
)

// Slice names, used as snapshot keys and in logs.
const (
	sliceBalance    = "balance_overview"
	sliceClients    = "clients_overview"
	sliceCategories = "category_overview"
	sliceDates      = "date_overview"
	sliceList       = "list_invoices"
	sliceSearch     = "search_invoices"
	sliceChart      = "chart_invoices"
	sliceSingle     = "single_invoice"
	sliceCount      = "invoice_count"
)

// listSlice adds the pagination bookkeeping the invoice list needs: the
// last fetched page and whether the backend reported another one.
type listSlice struct {
	slice[[]core.DateOverview]
	page int
	next bool
}

type Store struct {
	mu        sync.Mutex
	backend   Backend
	snapshots SnapshotStore
	payloads  *cache.LRU[[]byte]
	notifier  Notifier
	logger    *log.Logger
	lastWins  bool
	pageSize  int
	listeners []func()

	balance    slice[[]core.BalanceOverview]
	clients    slice[[]core.ClientOverview]
	categories slice[[]core.CategoryOverview]
	dates      slice[[]core.DateOverview]
	list       listSlice
	search     slice[core.Page[core.Invoice]]
	chart      slice[core.Page[core.Invoice]]
	single     slice[core.Invoice]
	count      slice[int]
}

type Option func(*Store)

// WithSnapshotStore persists overview payloads so they survive restarts.
func WithSnapshotStore(snapshots SnapshotStore) Option {
	return func(s *Store) { s.snapshots = snapshots }
}

// WithCache sizes the read-through payload cache.
func WithCache(size int, ttl time.Duration) Option {
	return func(s *Store) { s.payloads = cache.NewLRU[[]byte](size, ttl) }
}

// WithNotifier sets the toast sink for user-visible outcomes.
func WithNotifier(n Notifier) Option {
	return func(s *Store) { s.notifier = n }
}

// WithLogger sets the logger; the default logs to stderr at info level.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger.WithComponent(log.ComponentStore) }
}

// WithLastResponseWins disables generation checking: whichever response
// resolves last overwrites the slice, matching the historical behavior.
func WithLastResponseWins(lastWins bool) Option {
	return func(s *Store) { s.lastWins = lastWins }
}

// WithPageSize sets the page size for the paginated invoice list.
func WithPageSize(n int) Option {
	return func(s *Store) { s.pageSize = n }
}

func New(backend Backend, opts ...Option) *Store {
	s := &Store{
		backend:  backend,
		payloads: cache.NewLRU[[]byte](64, 5*time.Minute),
		notifier: LogNotifier{},
		logger:   log.New(log.ComponentStore, slog.LevelInfo),
		pageSize: 10,
	}
	s.list.next = true
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers a callback invoked after every state mutation.
// Callbacks run outside the store lock, on the mutating goroutine.
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify() {
	s.mu.Lock()
	listeners := append(([]func())(nil), s.listeners...)
	s.mu.Unlock()
	for _, fn := range listeners {
		fn()
	}
}

// ClearAll resets every slice, as on sign-out.
func (s *Store) ClearAll() {
	s.ClearOverviews()
	s.ClearInvoiceList()
	s.ClearSingleInvoice()
	s.ClearSearch()
	s.ClearChart()
	s.mu.Lock()
	s.count.reset()
	s.mu.Unlock()
	s.notify()
}

// Cleaner exposes the payload cache for periodic expiry sweeps.
func (s *Store) Cleaner() cache.Cleaner {
	return s.payloads
}

func closedChan() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}

// dispatch runs the lifecycle for one non-paginated slice: mark Loading
// under the lock, fetch, and land the response if still current.
func dispatch[T any](s *Store, sl *slice[T], name string, fetch func() (T, error)) <-chan struct{} {
	s.mu.Lock()
	gen := sl.begin()
	s.mu.Unlock()
	s.notify()

	done := make(chan struct{})
	go func() {
		defer close(done)
		result, err := fetch()

		s.mu.Lock()
		if !sl.current(gen, s.lastWins) {
			s.mu.Unlock()
			s.logger.Debug("Discarded stale response",
				log.FieldSlice, name, log.FieldGeneration, gen)
			return
		}
		if err != nil {
			sl.fail(err)
			s.mu.Unlock()
			s.logger.Warn("Fetch failed",
				log.FieldSlice, name,
				log.FieldGeneration, gen,
				log.FieldError, err)
		} else {
			sl.succeed(result)
			s.mu.Unlock()
		}
		s.notify()
	}()
	return done
}
