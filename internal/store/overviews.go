package store

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/errgroup"

	"invoicehero/internal/core"
	"invoicehero/internal/log"
)

// LoadBalanceOverview fetches invoice sums grouped by status. The
// returned channel closes once the response has landed or been
// discarded; a cache hit closes it immediately.
func (s *Store) LoadBalanceOverview(ctx context.Context, q core.OverviewQuery) <-chan struct{} {
	return loadOverview(s, &s.balance, sliceBalance, ctx, q, s.backend.BalanceOverview)
}

// LoadClientsOverview fetches invoice sums grouped by client.
func (s *Store) LoadClientsOverview(ctx context.Context, q core.OverviewQuery) <-chan struct{} {
	return loadOverview(s, &s.clients, sliceClients, ctx, q, s.backend.ClientOverview)
}

// LoadCategoriesOverview fetches invoice sums grouped by category.
func (s *Store) LoadCategoriesOverview(ctx context.Context, q core.OverviewQuery) <-chan struct{} {
	return loadOverview(s, &s.categories, sliceCategories, ctx, q, s.backend.CategoryOverview)
}

// LoadDateOverview fetches the first page of date-bucketed invoices for
// the overview screen. Unlike the invoice list it replaces wholesale.
func (s *Store) LoadDateOverview(ctx context.Context, q core.OverviewQuery) <-chan struct{} {
	return dispatch(s, &s.dates, sliceDates, func() ([]core.DateOverview, error) {
		page, err := s.backend.DateOverview(ctx, q)
		if err != nil {
			return nil, err
		}
		return page.Result, nil
	})
}

// LoadDashboard fetches all four overviews concurrently and waits for
// every slice to settle.
func (s *Store) LoadDashboard(ctx context.Context, q core.OverviewQuery) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, done := range []<-chan struct{}{
		s.LoadBalanceOverview(ctx, q),
		s.LoadClientsOverview(ctx, q),
		s.LoadCategoriesOverview(ctx, q),
		s.LoadDateOverview(ctx, q),
	} {
		done := done
		g.Go(func() error {
			select {
			case <-done:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
	}
	return g.Wait()
}

// BalanceOverview returns the balance slice as last resolved.
func (s *Store) BalanceOverview() Resource[[]core.BalanceOverview] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance.res
}

// ClientsOverview returns the per-client slice as last resolved.
func (s *Store) ClientsOverview() Resource[[]core.ClientOverview] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.clients.res
}

// CategoriesOverview returns the per-category slice as last resolved.
func (s *Store) CategoriesOverview() Resource[[]core.CategoryOverview] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.categories.res
}

// DateOverview returns the date-bucketed slice as last resolved.
func (s *Store) DateOverview() Resource[[]core.DateOverview] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dates.res
}

// ClearOverviews empties the four overview slices on screen teardown, so
// stale sums aren't shown on the next mount before fresh fetches
// resolve. In-flight responses for the cleared slices are invalidated.
func (s *Store) ClearOverviews() {
	s.mu.Lock()
	s.balance.reset()
	s.clients.reset()
	s.categories.reset()
	s.dates.reset()
	s.mu.Unlock()
	s.notify()
}

// loadOverview is the read-through path: serve a fresh cached payload if
// one exists (warming the cache from the snapshot db first), otherwise
// go remote and populate both layers.
func loadOverview[T any](s *Store, sl *slice[T], name string, ctx context.Context, q core.OverviewQuery, fetch func(context.Context, core.OverviewQuery) (T, error)) <-chan struct{} {
	fingerprint := q.Fingerprint()
	key := name + "|" + fingerprint

	if result, ok := cachedPayload[T](s, ctx, name, fingerprint, key); ok {
		s.mu.Lock()
		sl.gen++ // supersede any in-flight fetch
		sl.succeed(result)
		s.mu.Unlock()
		s.notify()
		s.logger.Debug("Served cached overview",
			log.FieldSlice, name, log.FieldFingerprint, fingerprint)
		return closedChan()
	}

	return dispatch(s, sl, name, func() (T, error) {
		result, err := fetch(ctx, q)
		if err != nil {
			return result, err
		}
		if payload, mErr := json.Marshal(result); mErr == nil {
			s.payloads.Set(key, payload)
			if s.snapshots != nil {
				if sErr := s.snapshots.SaveSnapshot(ctx, name, fingerprint, payload); sErr != nil {
					s.logger.Warn("Snapshot save failed",
						log.FieldSlice, name, log.FieldError, sErr)
				}
			}
		}
		return result, nil
	})
}

// cachedPayload checks the LRU, falling back to the snapshot db to
// re-warm it after a restart. Unusable payloads read as misses.
func cachedPayload[T any](s *Store, ctx context.Context, name, fingerprint, key string) (T, bool) {
	var result T
	payload, ok := s.payloads.Get(key)
	if !ok && s.snapshots != nil {
		stored, fetchedAt, err := s.snapshots.Snapshot(ctx, name, fingerprint)
		if err == nil {
			s.payloads.SetWithAge(key, stored, time.Since(fetchedAt))
			payload, ok = s.payloads.Get(key)
		}
	}
	if !ok {
		return result, false
	}
	if err := json.Unmarshal(payload, &result); err != nil {
		s.payloads.Delete(key)
		return result, false
	}
	return result, true
}
