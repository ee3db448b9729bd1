package api

import (
	"context"
	"net/http"

	"invoicehero/internal/core"
)

// Endpoint paths under the /api/v1 base.
const (
	pathBalanceOverview    = "/invoices/balance-overview"
	pathClientOverview     = "/invoices/client-overview"
	pathCategoryOverview   = "/invoices/category-overview"
	pathDateOverview       = "/invoices/date-overview"
	pathInvoices           = "/invoices"
	pathInvoiceCount       = "/invoices/count"
	pathInvoiceSearch      = "/invoices/search"
	pathClients            = "/clients"
	pathClientSearch       = "/clients/search"
	pathClientByName       = "/clients/search-by-name"
	pathCategories         = "/categories"
	pathCategorySearch     = "/categories/search"
	pathBusinesses         = "/businesses"
	pathBusinessMe         = "/businesses/me"
	pathSubscriptions      = "/subscriptions"
	pathSubscriptionsApply = "/subscriptions/apply"
)

// BalanceOverview returns invoice sums grouped by status.
func (c *Client) BalanceOverview(ctx context.Context, q core.OverviewQuery) ([]core.BalanceOverview, error) {
	var out []core.BalanceOverview
	if err := c.do(ctx, http.MethodPost, pathBalanceOverview, nil, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClientOverview returns invoice sums grouped by client.
func (c *Client) ClientOverview(ctx context.Context, q core.OverviewQuery) ([]core.ClientOverview, error) {
	var out []core.ClientOverview
	if err := c.do(ctx, http.MethodPost, pathClientOverview, nil, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CategoryOverview returns invoice sums grouped by category.
func (c *Client) CategoryOverview(ctx context.Context, q core.OverviewQuery) ([]core.CategoryOverview, error) {
	var out []core.CategoryOverview
	if err := c.do(ctx, http.MethodPost, pathCategoryOverview, nil, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DateOverview returns one page of invoices bucketed by date.
func (c *Client) DateOverview(ctx context.Context, q core.OverviewQuery) (core.Page[core.DateOverview], error) {
	var out core.Page[core.DateOverview]
	if err := c.do(ctx, http.MethodPost, pathDateOverview, pageParams(q), q, &out); err != nil {
		return core.Page[core.DateOverview]{}, err
	}
	return out, nil
}

// Invoice fetches a single invoice by id.
func (c *Client) Invoice(ctx context.Context, id string) (core.Invoice, error) {
	var out core.Invoice
	if err := c.do(ctx, http.MethodGet, pathInvoices+"/"+id, nil, nil, &out); err != nil {
		return core.Invoice{}, err
	}
	return out, nil
}

// CreateInvoice submits a finalized invoice.
func (c *Client) CreateInvoice(ctx context.Context, req core.InvoiceRequest) (core.Invoice, error) {
	var out core.Invoice
	if err := c.do(ctx, http.MethodPost, pathInvoices, nil, req, &out); err != nil {
		return core.Invoice{}, err
	}
	return out, nil
}

// UpdateInvoice PUTs changed fields for an existing invoice and returns
// the updated record.
func (c *Client) UpdateInvoice(ctx context.Context, id string, req core.InvoiceRequest) (core.Invoice, error) {
	var out core.Invoice
	if err := c.do(ctx, http.MethodPut, pathInvoices+"/"+id, nil, req, &out); err != nil {
		return core.Invoice{}, err
	}
	return out, nil
}

// InvoiceCount returns the caller's total number of invoices.
func (c *Client) InvoiceCount(ctx context.Context) (int, error) {
	var out core.InvoicesCount
	if err := c.do(ctx, http.MethodPost, pathInvoiceCount, nil, nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

// SearchInvoices returns one page of full invoice records.
func (c *Client) SearchInvoices(ctx context.Context, q core.OverviewQuery) (core.Page[core.Invoice], error) {
	var out core.Page[core.Invoice]
	if err := c.do(ctx, http.MethodPost, pathInvoiceSearch, pageParams(q), q, &out); err != nil {
		return core.Page[core.Invoice]{}, err
	}
	return out, nil
}

// Clients lists the caller's clients.
func (c *Client) Clients(ctx context.Context) ([]core.Client, error) {
	var out []core.Client
	if err := c.do(ctx, http.MethodPost, pathClientSearch, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ClientsByName searches clients by name, each with its invoiced sum.
func (c *Client) ClientsByName(ctx context.Context, name string) ([]core.ClientWithSum, error) {
	var out []core.ClientWithSum
	body := map[string]string{"name": name}
	if err := c.do(ctx, http.MethodPost, pathClientByName, nil, body, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateClient registers a new client.
func (c *Client) CreateClient(ctx context.Context, client core.Client) (core.Client, error) {
	var out core.Client
	if err := c.do(ctx, http.MethodPost, pathClients, nil, client, &out); err != nil {
		return core.Client{}, err
	}
	return out, nil
}

// Categories lists the caller's categories.
func (c *Client) Categories(ctx context.Context) ([]core.Category, error) {
	var out []core.Category
	if err := c.do(ctx, http.MethodPost, pathCategorySearch, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateCategory registers a new category.
func (c *Client) CreateCategory(ctx context.Context, category core.Category) (core.Category, error) {
	var out core.Category
	if err := c.do(ctx, http.MethodPost, pathCategories, nil, category, &out); err != nil {
		return core.Category{}, err
	}
	return out, nil
}

// Business returns the caller's business profile.
func (c *Client) Business(ctx context.Context) (core.Business, error) {
	var out core.Business
	if err := c.do(ctx, http.MethodGet, pathBusinessMe, nil, nil, &out); err != nil {
		return core.Business{}, err
	}
	return out, nil
}

// CreateBusiness creates the business profile.
func (c *Client) CreateBusiness(ctx context.Context, b core.Business) (core.Business, error) {
	var out core.Business
	if err := c.do(ctx, http.MethodPost, pathBusinesses, nil, b, &out); err != nil {
		return core.Business{}, err
	}
	return out, nil
}

// UpdateBusiness updates the business profile.
func (c *Client) UpdateBusiness(ctx context.Context, id string, b core.Business) (core.Business, error) {
	var out core.Business
	if err := c.do(ctx, http.MethodPut, pathBusinesses+"/"+id, nil, b, &out); err != nil {
		return core.Business{}, err
	}
	return out, nil
}

// Subscriptions lists the available subscription plans.
func (c *Client) Subscriptions(ctx context.Context) ([]core.Subscription, error) {
	var out []core.Subscription
	if err := c.do(ctx, http.MethodGet, pathSubscriptions, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplySubscription attaches a purchased plan to the account.
func (c *Client) ApplySubscription(ctx context.Context, subscriptionID string) error {
	body := map[string]string{"subscription": subscriptionID}
	return c.do(ctx, http.MethodPost, pathSubscriptionsApply, nil, body, nil)
}
