package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"invoicehero/internal/api"
	"invoicehero/internal/core"
	"invoicehero/internal/log"
	"invoicehero/internal/storage"
)

// Submitter sends a finished invoice to the backend.
type Submitter interface {
	CreateInvoice(ctx context.Context, req core.InvoiceRequest) (core.Invoice, error)
}

// DraftStore persists form drafts locally so a half-filled invoice
// survives a restart. The SQLite repository satisfies it.
type DraftStore interface {
	SaveDraft(ctx context.Context, name string, draft *core.InvoiceDraft) error
	Draft(ctx context.Context, name string) (*core.InvoiceDraft, error)
	Drafts(ctx context.Context) ([]storage.DraftInfo, error)
	DeleteDraft(ctx context.Context, name string) error
}

// Notifier surfaces submission outcomes to the user.
type Notifier interface {
	Success(msg string)
	Failure(msg string)
}

// InvoiceService orchestrates the invoice form: drafts are saved locally
// first, validation gates submission, and only a valid draft reaches the
// backend.
type InvoiceService struct {
	backend  Submitter
	drafts   DraftStore
	notifier Notifier
	logger   *log.Logger
}

type InvoiceServiceOption func(*InvoiceService)

func WithNotifier(n Notifier) InvoiceServiceOption {
	return func(s *InvoiceService) { s.notifier = n }
}

func WithLogger(logger *log.Logger) InvoiceServiceOption {
	return func(s *InvoiceService) { s.logger = logger.WithComponent(log.ComponentInvoice) }
}

func NewInvoiceService(backend Submitter, drafts DraftStore, opts ...InvoiceServiceOption) *InvoiceService {
	s := &InvoiceService{
		backend: backend,
		drafts:  drafts,
		logger:  log.New(log.ComponentInvoice, slog.LevelInfo),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SaveDraft persists the draft under a name. Saving is local-only and
// never touches the backend.
func (s *InvoiceService) SaveDraft(ctx context.Context, name string, draft *core.InvoiceDraft) error {
	if s.drafts == nil {
		s.logger.Warn("Draft store not available, draft not persisted", "draft", name)
		return nil
	}
	if err := s.drafts.SaveDraft(ctx, name, draft); err != nil {
		return fmt.Errorf("save draft %q: %w", name, err)
	}
	return nil
}

// LoadDraft restores a persisted draft. A name that was never saved
// yields a fresh empty draft rather than an error.
func (s *InvoiceService) LoadDraft(ctx context.Context, name string) (*core.InvoiceDraft, error) {
	if s.drafts == nil {
		return core.NewDraft(), nil
	}
	draft, err := s.drafts.Draft(ctx, name)
	if errors.Is(err, storage.ErrNotFound) {
		return core.NewDraft(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load draft %q: %w", name, err)
	}
	return draft, nil
}

// ListDrafts returns the persisted drafts, newest first.
func (s *InvoiceService) ListDrafts(ctx context.Context) ([]storage.DraftInfo, error) {
	if s.drafts == nil {
		return nil, nil
	}
	return s.drafts.Drafts(ctx)
}

// DiscardDraft removes a persisted draft.
func (s *InvoiceService) DiscardDraft(ctx context.Context, name string) error {
	if s.drafts == nil {
		return nil
	}
	if err := s.drafts.DeleteDraft(ctx, name); err != nil {
		return fmt.Errorf("discard draft %q: %w", name, err)
	}
	return nil
}

// Submit validates the draft and, if it passes, creates the invoice on
// the backend. Validation failures block locally: the backend is never
// called, and the draft stays persisted for another attempt. On success
// the persisted draft is discarded.
func (s *InvoiceService) Submit(ctx context.Context, name string, draft *core.InvoiceDraft) (core.Invoice, error) {
	if err := draft.Validate(); err != nil {
		s.logger.Info("Draft failed validation",
			"draft", name, log.FieldError, err)
		s.fail(err.Error())
		return core.Invoice{}, err
	}

	req := draft.BuildRequest()
	inv, err := s.backend.CreateInvoice(ctx, req)
	if err != nil {
		s.logger.Warn("Invoice submission failed",
			"draft", name, log.FieldError, err)
		s.fail(api.UserMessage(err))
		return core.Invoice{}, fmt.Errorf("create invoice: %w", err)
	}

	// Best effort: the invoice exists on the backend either way.
	if s.drafts != nil {
		if dErr := s.drafts.DeleteDraft(ctx, name); dErr != nil && !errors.Is(dErr, storage.ErrNotFound) {
			s.logger.Warn("Failed to discard submitted draft",
				"draft", name, log.FieldError, dErr)
		}
	}

	s.logger.Info("Invoice created",
		log.FieldInvoiceID, inv.ID,
		log.FieldStatus, string(inv.Status),
		log.FieldTotal, inv.Total)
	if inv.Status == core.StatusEstimate {
		s.succeed("Estimate created")
	} else {
		s.succeed("Invoice created")
	}
	return inv, nil
}

func (s *InvoiceService) succeed(msg string) {
	if s.notifier != nil {
		s.notifier.Success(msg)
	}
}

func (s *InvoiceService) fail(msg string) {
	if s.notifier != nil {
		s.notifier.Failure(msg)
	}
}
