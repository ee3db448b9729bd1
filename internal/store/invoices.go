package store

import (
	"context"

	"invoicehero/internal/api"
	"invoicehero/internal/core"
	"invoicehero/internal/log"
)

// LoadInvoice fetches a single invoice into the single-invoice slice.
func (s *Store) LoadInvoice(ctx context.Context, id string) <-chan struct{} {
	return dispatch(s, &s.single, sliceSingle, func() (core.Invoice, error) {
		return s.backend.Invoice(ctx, id)
	})
}

// SingleInvoice returns the single-invoice slice as last resolved.
func (s *Store) SingleInvoice() Resource[core.Invoice] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.single.res
}

// ClearSingleInvoice empties the single-invoice slice on teardown.
func (s *Store) ClearSingleInvoice() {
	s.mu.Lock()
	s.single.reset()
	s.mu.Unlock()
	s.notify()
}

// UpdateInvoice PUTs changed fields and, on success, replaces the cached
// single-invoice record in place. Both outcomes surface a notification.
func (s *Store) UpdateInvoice(ctx context.Context, id string, req core.InvoiceRequest) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		inv, err := s.backend.UpdateInvoice(ctx, id, req)
		if err != nil {
			s.logger.Warn("Invoice update failed",
				log.FieldInvoiceID, id, log.FieldError, err)
			s.notifier.Failure(api.UserMessage(err))
			return
		}

		s.mu.Lock()
		if s.single.res.Result.ID == id {
			s.single.gen++ // supersede any in-flight load
			s.single.succeed(inv)
		}
		s.mu.Unlock()
		s.notify()

		if inv.Status == core.StatusEstimate {
			s.notifier.Success("Estimate updated")
		} else {
			s.notifier.Success("Invoice updated")
		}
	}()
	return done
}

// LoadMoreInvoices fetches the next page of the invoice list and appends
// it. Pages are serialized: a call while a page is in flight, or after
// the backend reported no further pages, is a no-op.
func (s *Store) LoadMoreInvoices(ctx context.Context, q core.OverviewQuery) <-chan struct{} {
	s.mu.Lock()
	if s.list.res.Loading || !s.list.next {
		s.mu.Unlock()
		return closedChan()
	}
	page := s.list.page + 1
	gen := s.list.begin()
	s.mu.Unlock()
	s.notify()

	done := make(chan struct{})
	go func() {
		defer close(done)
		pq := q.WithPage(page)
		if pq.Limit == 0 {
			pq.Limit = s.pageSize
		}
		pg, err := s.backend.DateOverview(ctx, pq)

		s.mu.Lock()
		if !s.list.current(gen, s.lastWins) {
			s.mu.Unlock()
			s.logger.Debug("Discarded stale page",
				log.FieldSlice, sliceList, log.FieldPage, page)
			return
		}
		if err != nil {
			s.list.fail(err)
			s.mu.Unlock()
			s.logger.Warn("Page fetch failed",
				log.FieldSlice, sliceList,
				log.FieldPage, page,
				log.FieldError, err)
		} else {
			s.list.res = Resource[[]core.DateOverview]{
				Result: append(s.list.res.Result, pg.Result...),
			}
			s.list.page = page
			s.list.next = pg.Next
			s.mu.Unlock()
		}
		s.notify()
	}()
	return done
}

// InvoiceList returns the accumulated list slice.
func (s *Store) InvoiceList() Resource[[]core.DateOverview] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.res
}

// HasMoreInvoices reports whether another page exists.
func (s *Store) HasMoreInvoices() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.list.next
}

// ClearInvoiceList drops the accumulated pages and rewinds the page
// counter, as on teardown or a filter change.
func (s *Store) ClearInvoiceList() {
	s.mu.Lock()
	s.list.reset()
	s.list.page = 0
	s.list.next = true
	s.mu.Unlock()
	s.notify()
}

// LoadSearchInvoices fetches one page of full invoice records.
func (s *Store) LoadSearchInvoices(ctx context.Context, q core.OverviewQuery) <-chan struct{} {
	return dispatch(s, &s.search, sliceSearch, func() (core.Page[core.Invoice], error) {
		return s.backend.SearchInvoices(ctx, q)
	})
}

// SearchInvoices returns the search slice as last resolved.
func (s *Store) SearchInvoices() Resource[core.Page[core.Invoice]] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.search.res
}

// ClearSearch empties the search slice.
func (s *Store) ClearSearch() {
	s.mu.Lock()
	s.search.reset()
	s.mu.Unlock()
	s.notify()
}

// LoadChartInvoices fetches invoice records for the charts view; it is
// the search endpoint under a separate slice so the two screens don't
// clobber each other.
func (s *Store) LoadChartInvoices(ctx context.Context, q core.OverviewQuery) <-chan struct{} {
	return dispatch(s, &s.chart, sliceChart, func() (core.Page[core.Invoice], error) {
		return s.backend.SearchInvoices(ctx, q)
	})
}

// ChartInvoices returns the chart slice as last resolved.
func (s *Store) ChartInvoices() Resource[core.Page[core.Invoice]] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.chart.res
}

// ClearChart empties the chart slice.
func (s *Store) ClearChart() {
	s.mu.Lock()
	s.chart.reset()
	s.mu.Unlock()
	s.notify()
}

// LoadInvoiceCount fetches the total invoice count. Failures are
// swallowed: the count reads 0 until a fetch succeeds.
func (s *Store) LoadInvoiceCount(ctx context.Context) <-chan struct{} {
	return dispatch(s, &s.count, sliceCount, func() (int, error) {
		n, err := s.backend.InvoiceCount(ctx)
		if err != nil {
			s.logger.Warn("Count fetch failed", log.FieldError, err)
			return 0, nil
		}
		return n, nil
	})
}

// InvoiceCount returns the count slice as last resolved.
func (s *Store) InvoiceCount() Resource[int] {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.count.res
}
