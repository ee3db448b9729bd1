package core

import (
	"fmt"
	"sort"
	"strings"
)

// OverviewQuery parameterizes the aggregation and search endpoints:
// which statuses to sum over, optional client/category filters, an
// optional [start, end] millisecond date range, and paging for the
// endpoints that page.
type OverviewQuery struct {
	Statuses   []InvoiceStatus `json:"statuses"`
	Clients    []string        `json:"clients,omitempty"`
	Categories []string        `json:"categories,omitempty"`
	Date       *[2]int64       `json:"date,omitempty"`

	// Paging travels as query params, not in the body.
	Limit int `json:"-"`
	Page  int `json:"-"`
}

// WithPage returns a copy of the query pointing at the given page.
func (q OverviewQuery) WithPage(page int) OverviewQuery {
	q.Page = page
	return q
}

// Fingerprint returns a stable key identifying the query shape, used to
// key cached results. Filter order does not matter; paging does.
func (q OverviewQuery) Fingerprint() string {
	statuses := make([]string, len(q.Statuses))
	for i, s := range q.Statuses {
		statuses[i] = string(s)
	}
	sort.Strings(statuses)

	clients := append([]string(nil), q.Clients...)
	sort.Strings(clients)
	categories := append([]string(nil), q.Categories...)
	sort.Strings(categories)

	date := ""
	if q.Date != nil {
		date = fmt.Sprintf("%d-%d", q.Date[0], q.Date[1])
	}

	return strings.Join([]string{
		strings.Join(statuses, ","),
		strings.Join(clients, ","),
		strings.Join(categories, ","),
		date,
		fmt.Sprintf("%d:%d", q.Limit, q.Page),
	}, "|")
}
