package core

import (
	"errors"
	"fmt"
	"strings"
)

const (
	StatusEstimate InvoiceStatus = "Estimate"
	StatusUnpaid   InvoiceStatus = "Unpaid"
	StatusPaid     InvoiceStatus = "Paid"
)

type (
	InvoiceStatus string

	Client struct {
		ID      string `json:"_id,omitempty"`
		Name    string `json:"name"`
		Email   string `json:"email,omitempty"`
		Phone   string `json:"phone,omitempty"`
		Address string `json:"address,omitempty"`
	}

	Category struct {
		ID    string `json:"_id,omitempty"`
		Name  string `json:"name"`
		Color string `json:"color,omitempty"`
	}

	Payment struct {
		ID   string `json:"_id,omitempty"`
		Name string `json:"name"`
	}

	Business struct {
		ID      string `json:"_id,omitempty"`
		Name    string `json:"name"`
		Email   string `json:"email,omitempty"`
		Phone   string `json:"phone,omitempty"`
		Address string `json:"address,omitempty"`
		Logo    string `json:"logo,omitempty"`
	}

	Subscription struct {
		ID       string  `json:"_id"`
		Name     string  `json:"name"`
		Interval string  `json:"interval"`
		Price    float64 `json:"price"`
	}

	InvoiceItem struct {
		Description string  `json:"description"`
		Rate        float64 `json:"rate"`
		Hours       float64 `json:"hours"`
	}

	InvoiceDelivery struct {
		Email      string `json:"email"`
		Text       string `json:"text"`
		SharedLink string `json:"sharedLink"`
	}

	Invoice struct {
		ID              string          `json:"_id"`
		Number          string          `json:"number"`
		Reference       int             `json:"reference,omitempty"`
		Date            string          `json:"date"`
		DueDate         string          `json:"dueDate"`
		RecurringPeriod int             `json:"recurringPeriod"`
		Delivery        InvoiceDelivery `json:"delivery"`
		Items           []InvoiceItem   `json:"items"`
		BillTo          *Client         `json:"billTo,omitempty"`
		Payments        []Payment       `json:"payments"`
		Category        Category        `json:"category"`
		Tax             float64         `json:"tax"`
		TaxRate         float64         `json:"taxRate"`
		Discount        float64         `json:"discount"`
		DiscountRate    float64         `json:"discountRate"`
		SubTotal        float64         `json:"subTotal"`
		Total           float64         `json:"total"`
		Status          InvoiceStatus   `json:"status"`
	}

	// InvoiceRequest is the write shape: related records referenced by id.
	InvoiceRequest struct {
		Number          string          `json:"number"`
		Date            string          `json:"date"`
		DueDate         string          `json:"dueDate"`
		RecurringPeriod int             `json:"recurringPeriod"`
		Delivery        InvoiceDelivery `json:"delivery"`
		Items           []InvoiceItem   `json:"items"`
		BillTo          string          `json:"billTo,omitempty"`
		Payments        []string        `json:"payments"`
		Category        string          `json:"category"`
		Tax             float64         `json:"tax"`
		TaxRate         float64         `json:"taxRate"`
		Discount        float64         `json:"discount"`
		DiscountRate    float64         `json:"discountRate"`
		SubTotal        float64         `json:"subTotal"`
		Total           float64         `json:"total"`
		Status          InvoiceStatus   `json:"status"`
	}

	BalanceOverview struct {
		Status InvoiceStatus `json:"_id"`
		Sum    float64       `json:"sum"`
	}

	ClientOverview struct {
		ID     string  `json:"_id"`
		Client Client  `json:"client"`
		Sum    float64 `json:"sum"`
	}

	CategoryOverview struct {
		ID       string   `json:"_id"`
		Category Category `json:"category"`
		Sum      float64  `json:"sum"`
	}

	// DateOverview is a per-invoice row in the date-bucketed overview and
	// the paginated invoice list.
	DateOverview struct {
		ID      string        `json:"_id"`
		Client  ClientName    `json:"client"`
		Number  string        `json:"number"`
		Date    string        `json:"date"`
		DueDate string        `json:"dueDate"`
		Total   float64       `json:"total"`
		Status  InvoiceStatus `json:"status"`
	}

	ClientName struct {
		Name string `json:"name"`
	}

	// ClientWithSum is a client joined with its total invoiced amount,
	// returned by the search-by-name endpoint.
	ClientWithSum struct {
		Client
		Sum float64 `json:"sum"`
	}

	InvoicesCount struct {
		Count int `json:"count"`
	}

	// Page is a paginated backend response; Next reports whether another
	// page exists.
	Page[T any] struct {
		Result []T  `json:"result"`
		Next   bool `json:"next"`
	}
)

var (
	ErrNoItems       = errors.New("invoice needs at least one item")
	ErrNoCategory    = errors.New("invoice needs a category")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrEmptyName     = errors.New("empty name")
	ErrUnknownStatus = errors.New("unknown invoice status")
)

// Statuses lists every invoice status, in lifecycle order.
func Statuses() []InvoiceStatus {
	return []InvoiceStatus{StatusEstimate, StatusUnpaid, StatusPaid}
}

// ParseStatus maps user input to an InvoiceStatus, case-insensitively.
func ParseStatus(s string) (InvoiceStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "estimate":
		return StatusEstimate, nil
	case "unpaid":
		return StatusUnpaid, nil
	case "paid":
		return StatusPaid, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

func (c Client) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (c Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}
	return nil
}
