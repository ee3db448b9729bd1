package core

import (
	"math"
	"strings"
)

// ItemDraft is one editable line item. Rate and Hours hold the raw typed
// text; a line only contributes to the subtotal once both parse.
type ItemDraft struct {
	Description string
	Rate        string
	Hours       string
}

// InvoiceDraft is the editable aggregate behind the invoice form.
//
// Derived fields form a strict DAG: items feed SubTotal, SubTotal and the
// discount/tax amounts feed Total, and each rate/amount pair is kept
// consistent one direction at a time by the Set* methods. Mutations run
// the downstream recomputes themselves, so a draft is always consistent
// between calls.
type InvoiceDraft struct {
	Number          string
	Date            string
	DueDate         string
	RecurringPeriod int
	ClientID        string
	CategoryID      string
	Status          InvoiceStatus
	Delivery        InvoiceDelivery
	PaymentIDs      []string

	Items    []ItemDraft
	SubTotal float64
	Total    float64

	DiscountRate string
	Discount     string
	TaxRate      string
	Tax          string
}

// NewDraft returns an empty draft in Estimate status.
func NewDraft() *InvoiceDraft {
	return &InvoiceDraft{Status: StatusEstimate}
}

// SetItems replaces the item list and recomputes the derived fields.
func (d *InvoiceDraft) SetItems(items []ItemDraft) {
	d.Items = items
	d.RecomputeSubtotal()
}

// AddItem appends a line item and recomputes the derived fields.
func (d *InvoiceDraft) AddItem(item ItemDraft) {
	d.Items = append(d.Items, item)
	d.RecomputeSubtotal()
}

// UpdateItem replaces the item at i. Out-of-range indexes are ignored.
func (d *InvoiceDraft) UpdateItem(i int, item ItemDraft) {
	if i < 0 || i >= len(d.Items) {
		return
	}
	d.Items[i] = item
	d.RecomputeSubtotal()
}

// RemoveItem deletes the item at i. Out-of-range indexes are ignored.
func (d *InvoiceDraft) RemoveItem(i int) {
	if i < 0 || i >= len(d.Items) {
		return
	}
	d.Items = append(d.Items[:i], d.Items[i+1:]...)
	d.RecomputeSubtotal()
}

// RecomputeSubtotal rewrites SubTotal from the item list, then cascades
// into the total.
func (d *InvoiceDraft) RecomputeSubtotal() {
	d.SubTotal = Subtotal(d.Items)
	d.RecomputeTotal()
}

// RecomputeTotal rewrites Total from SubTotal and the discount/tax
// amounts. A zero subtotal forces the total to 0 no matter what the
// discount and tax fields hold.
func (d *InvoiceDraft) RecomputeTotal() {
	if d.SubTotal == 0 {
		d.Total = 0
		return
	}
	d.Total = d.SubTotal - AmountOrZero(d.Discount) + AmountOrZero(d.Tax)
}

// SetDiscountRate records a typed discount percentage and derives the
// discount amount from the subtotal. Blank input or a zero subtotal
// clears the amount.
func (d *InvoiceDraft) SetDiscountRate(val string) {
	d.DiscountRate = val
	if strings.TrimSpace(val) == "" || d.SubTotal == 0 {
		d.Discount = ""
		d.RecomputeTotal()
		return
	}
	rate := parseOrNaN(val)
	d.Discount = FormatAmount(Round2(d.SubTotal * rate / 100))
	d.RecomputeTotal()
}

// SetDiscount records a typed discount amount and derives the percentage
// it represents of the subtotal.
func (d *InvoiceDraft) SetDiscount(val string) {
	d.Discount = val
	if strings.TrimSpace(val) == "" || d.SubTotal == 0 {
		d.DiscountRate = ""
		d.RecomputeTotal()
		return
	}
	amount := parseOrNaN(val)
	d.DiscountRate = FormatAmount(Round2(amount / d.SubTotal * 100))
	d.RecomputeTotal()
}

// SetTaxRate records a typed tax percentage and derives the tax amount.
// Tax applies after discount: the base is subtotal minus the discount
// amount, not the raw subtotal.
func (d *InvoiceDraft) SetTaxRate(val string) {
	d.TaxRate = val
	if strings.TrimSpace(val) == "" || d.SubTotal == 0 {
		d.Tax = ""
		d.RecomputeTotal()
		return
	}
	base := d.SubTotal - AmountOrZero(d.Discount)
	rate := parseOrNaN(val)
	d.Tax = FormatAmount(Round2(base * rate / 100))
	d.RecomputeTotal()
}

// SetTax records a typed tax amount and derives the percentage it
// represents of the after-discount base.
func (d *InvoiceDraft) SetTax(val string) {
	d.Tax = val
	if strings.TrimSpace(val) == "" || d.SubTotal == 0 {
		d.TaxRate = ""
		d.RecomputeTotal()
		return
	}
	base := d.SubTotal - AmountOrZero(d.Discount)
	amount := parseOrNaN(val)
	d.TaxRate = FormatAmount(Round2(amount / base * 100))
	d.RecomputeTotal()
}

// Validate reports whether the draft can be submitted. Failures block
// submission locally; no request is sent for an invalid draft.
func (d *InvoiceDraft) Validate() error {
	if len(d.Items) == 0 {
		return ErrNoItems
	}
	if strings.TrimSpace(d.CategoryID) == "" {
		return ErrNoCategory
	}
	for _, field := range []string{d.DiscountRate, d.Discount, d.TaxRate, d.Tax} {
		if strings.TrimSpace(field) == "" {
			continue
		}
		if _, ok := ParseAmount(field); !ok {
			return ErrInvalidAmount
		}
	}
	return nil
}

// BuildRequest finalizes the draft into the write shape the backend
// accepts, parsing every string field into its numeric form.
func (d *InvoiceDraft) BuildRequest() InvoiceRequest {
	items := make([]InvoiceItem, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, InvoiceItem{
			Description: it.Description,
			Rate:        AmountOrZero(it.Rate),
			Hours:       AmountOrZero(it.Hours),
		})
	}
	status := d.Status
	if status == "" {
		status = StatusEstimate
	}
	return InvoiceRequest{
		Number:          d.Number,
		Date:            d.Date,
		DueDate:         d.DueDate,
		RecurringPeriod: d.RecurringPeriod,
		Delivery:        d.Delivery,
		Items:           items,
		BillTo:          d.ClientID,
		Payments:        d.PaymentIDs,
		Category:        d.CategoryID,
		Tax:             AmountOrZero(d.Tax),
		TaxRate:         AmountOrZero(d.TaxRate),
		Discount:        AmountOrZero(d.Discount),
		DiscountRate:    AmountOrZero(d.DiscountRate),
		SubTotal:        d.SubTotal,
		Total:           d.Total,
		Status:          status,
	}
}

// parseOrNaN parses like ParseAmount but yields NaN for malformed input,
// so a downstream FormatAmount lands on "0" instead of propagating junk.
func parseOrNaN(s string) float64 {
	v, ok := ParseAmount(s)
	if !ok {
		return math.NaN()
	}
	return v
}
