package store

import (
	"context"
	"time"

	"invoicehero/internal/core"
)

// Ports to the backend API. The api.Client satisfies all of them; tests
// plug in fakes.
type (
	OverviewFetcher interface {
		BalanceOverview(ctx context.Context, q core.OverviewQuery) ([]core.BalanceOverview, error)
		ClientOverview(ctx context.Context, q core.OverviewQuery) ([]core.ClientOverview, error)
		CategoryOverview(ctx context.Context, q core.OverviewQuery) ([]core.CategoryOverview, error)
		DateOverview(ctx context.Context, q core.OverviewQuery) (core.Page[core.DateOverview], error)
	}

	InvoiceReader interface {
		Invoice(ctx context.Context, id string) (core.Invoice, error)
		SearchInvoices(ctx context.Context, q core.OverviewQuery) (core.Page[core.Invoice], error)
		InvoiceCount(ctx context.Context) (int, error)
	}

	InvoiceWriter interface {
		CreateInvoice(ctx context.Context, req core.InvoiceRequest) (core.Invoice, error)
		UpdateInvoice(ctx context.Context, id string, req core.InvoiceRequest) (core.Invoice, error)
	}

	Backend interface {
		OverviewFetcher
		InvoiceReader
		InvoiceWriter
	}

	// SnapshotStore persists fetched payloads across restarts. Optional.
	SnapshotStore interface {
		SaveSnapshot(ctx context.Context, slice, fingerprint string, payload []byte) error
		Snapshot(ctx context.Context, slice, fingerprint string) (payload []byte, fetchedAt time.Time, err error)
	}

	// Notifier surfaces transient user-visible messages (the toast layer).
	Notifier interface {
		Success(msg string)
		Failure(msg string)
	}
)
