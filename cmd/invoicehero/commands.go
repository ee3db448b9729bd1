package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"invoicehero/internal/core"
)

func (a *app) commands() []*cli.Command {
	return []*cli.Command{
		a.overviewCommand(),
		a.dashboardCommand(),
		a.invoicesCommand(),
		a.draftsCommand(),
		a.clientsCommand(),
		a.categoriesCommand(),
		a.businessCommand(),
		a.subscriptionsCommand(),
	}
}

func (a *app) overviewCommand() *cli.Command {
	return &cli.Command{
		Name:  "overview",
		Usage: "aggregated invoice sums",
		Subcommands: []*cli.Command{
			{
				Name:  "balance",
				Usage: "sums grouped by status",
				Flags: queryFlags(),
				Action: func(c *cli.Context) error {
					q, err := buildQuery(c)
					if err != nil {
						return err
					}
					<-a.store.LoadBalanceOverview(c.Context, q)
					res := a.store.BalanceOverview()
					if res.Err != nil {
						return res.Err
					}
					return printJSON(res.Result)
				},
			},
			{
				Name:  "clients",
				Usage: "sums grouped by client",
				Flags: queryFlags(),
				Action: func(c *cli.Context) error {
					q, err := buildQuery(c)
					if err != nil {
						return err
					}
					<-a.store.LoadClientsOverview(c.Context, q)
					res := a.store.ClientsOverview()
					if res.Err != nil {
						return res.Err
					}
					return printJSON(res.Result)
				},
			},
			{
				Name:  "categories",
				Usage: "sums grouped by category",
				Flags: queryFlags(),
				Action: func(c *cli.Context) error {
					q, err := buildQuery(c)
					if err != nil {
						return err
					}
					<-a.store.LoadCategoriesOverview(c.Context, q)
					res := a.store.CategoriesOverview()
					if res.Err != nil {
						return res.Err
					}
					return printJSON(res.Result)
				},
			},
			{
				Name:  "dates",
				Usage: "invoices bucketed by date",
				Flags: queryFlags(),
				Action: func(c *cli.Context) error {
					q, err := buildQuery(c)
					if err != nil {
						return err
					}
					<-a.store.LoadDateOverview(c.Context, q)
					res := a.store.DateOverview()
					if res.Err != nil {
						return res.Err
					}
					return printJSON(res.Result)
				},
			},
		},
	}
}

func (a *app) dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:  "dashboard",
		Usage: "all four overviews in one fetch",
		Flags: queryFlags(),
		Action: func(c *cli.Context) error {
			q, err := buildQuery(c)
			if err != nil {
				return err
			}
			if err := a.store.LoadDashboard(c.Context, q); err != nil {
				return err
			}
			balance := a.store.BalanceOverview()
			clients := a.store.ClientsOverview()
			categories := a.store.CategoriesOverview()
			dates := a.store.DateOverview()
			for _, err := range []error{balance.Err, clients.Err, categories.Err, dates.Err} {
				if err != nil {
					return err
				}
			}
			return printJSON(map[string]any{
				"balance":    balance.Result,
				"clients":    clients.Result,
				"categories": categories.Result,
				"dates":      dates.Result,
			})
		},
	}
}

func (a *app) invoicesCommand() *cli.Command {
	return &cli.Command{
		Name:  "invoices",
		Usage: "list, inspect, and write invoices",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "page through the invoice list",
				Flags: append(queryFlags(), &cli.IntFlag{
					Name:  "pages",
					Usage: "number of pages to fetch (0 fetches all)",
					Value: 1,
				}),
				Action: func(c *cli.Context) error {
					q, err := buildQuery(c)
					if err != nil {
						return err
					}
					pages := c.Int("pages")
					for fetched := 0; a.store.HasMoreInvoices() && (pages == 0 || fetched < pages); fetched++ {
						<-a.store.LoadMoreInvoices(c.Context, q)
						if res := a.store.InvoiceList(); res.Err != nil {
							return res.Err
						}
					}
					return printJSON(a.store.InvoiceList().Result)
				},
			},
			{
				Name:      "get",
				Usage:     "fetch one invoice",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected exactly one invoice id")
					}
					<-a.store.LoadInvoice(c.Context, c.Args().First())
					res := a.store.SingleInvoice()
					if res.Err != nil {
						return res.Err
					}
					return printJSON(res.Result)
				},
			},
			{
				Name:  "count",
				Usage: "total number of invoices",
				Action: func(c *cli.Context) error {
					<-a.store.LoadInvoiceCount(c.Context)
					fmt.Println(a.store.InvoiceCount().Result)
					return nil
				},
			},
			{
				Name:  "search",
				Usage: "full invoice records matching the filters",
				Flags: queryFlags(),
				Action: func(c *cli.Context) error {
					q, err := buildQuery(c)
					if err != nil {
						return err
					}
					<-a.store.LoadSearchInvoices(c.Context, q)
					res := a.store.SearchInvoices()
					if res.Err != nil {
						return res.Err
					}
					return printJSON(res.Result)
				},
			},
			{
				Name:  "chart",
				Usage: "invoice records for the charts view",
				Flags: queryFlags(),
				Action: func(c *cli.Context) error {
					q, err := buildQuery(c)
					if err != nil {
						return err
					}
					<-a.store.LoadChartInvoices(c.Context, q)
					res := a.store.ChartInvoices()
					if res.Err != nil {
						return res.Err
					}
					return printJSON(res.Result)
				},
			},
			{
				Name:  "create",
				Usage: "submit a draft as a new invoice",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "draft",
						Usage: "name of a saved draft to submit",
						Value: "current",
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "read the draft from a JSON file instead (- for stdin)",
					},
				},
				Action: func(c *cli.Context) error {
					name := c.String("draft")
					var draft *core.InvoiceDraft
					var err error
					if file := c.String("file"); file != "" {
						draft, err = readDraftFile(file)
					} else {
						draft, err = a.invoices.LoadDraft(c.Context, name)
					}
					if err != nil {
						return err
					}
					inv, err := a.invoices.Submit(c.Context, name, draft)
					if err != nil {
						return err
					}
					return printJSON(inv)
				},
			},
			{
				Name:      "update-status",
				Usage:     "move an invoice to another status",
				ArgsUsage: "<id> <estimate|unpaid|paid>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("expected an invoice id and a status")
					}
					status, err := core.ParseStatus(c.Args().Get(1))
					if err != nil {
						return err
					}
					inv, err := a.client.UpdateInvoice(c.Context, c.Args().First(), core.InvoiceRequest{Status: status})
					if err != nil {
						return err
					}
					return printJSON(inv)
				},
			},
		},
	}
}

func (a *app) draftsCommand() *cli.Command {
	return &cli.Command{
		Name:  "drafts",
		Usage: "locally persisted invoice drafts",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "saved drafts, newest first",
				Action: func(c *cli.Context) error {
					infos, err := a.invoices.ListDrafts(c.Context)
					if err != nil {
						return err
					}
					return printJSON(infos)
				},
			},
			{
				Name:      "show",
				Usage:     "print one saved draft",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected a draft name")
					}
					draft, err := a.invoices.LoadDraft(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return printJSON(draft)
				},
			},
			{
				Name:      "save",
				Usage:     "import a JSON draft under a name",
				ArgsUsage: "<name> <file>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 2 {
						return fmt.Errorf("expected a draft name and a file")
					}
					draft, err := readDraftFile(c.Args().Get(1))
					if err != nil {
						return err
					}
					return a.invoices.SaveDraft(c.Context, c.Args().First(), draft)
				},
			},
			{
				Name:      "delete",
				Usage:     "discard a saved draft",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected a draft name")
					}
					return a.invoices.DiscardDraft(c.Context, c.Args().First())
				},
			},
		},
	}
}

func (a *app) clientsCommand() *cli.Command {
	return &cli.Command{
		Name:  "clients",
		Usage: "billing clients",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "all clients",
				Action: func(c *cli.Context) error {
					clients, err := a.client.Clients(c.Context)
					if err != nil {
						return err
					}
					return printJSON(clients)
				},
			},
			{
				Name:      "search",
				Usage:     "clients matching a name, with invoiced sums",
				ArgsUsage: "<name>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected a name to search for")
					}
					clients, err := a.client.ClientsByName(c.Context, c.Args().First())
					if err != nil {
						return err
					}
					return printJSON(clients)
				},
			},
			{
				Name:  "add",
				Usage: "create a client",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "address"},
				},
				Action: func(c *cli.Context) error {
					client := core.Client{
						Name:    c.String("name"),
						Email:   c.String("email"),
						Phone:   c.String("phone"),
						Address: c.String("address"),
					}
					if err := client.Validate(); err != nil {
						return err
					}
					created, err := a.client.CreateClient(c.Context, client)
					if err != nil {
						return err
					}
					return printJSON(created)
				},
			},
		},
	}
}

func (a *app) categoriesCommand() *cli.Command {
	return &cli.Command{
		Name:  "categories",
		Usage: "invoice categories",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "all categories",
				Action: func(c *cli.Context) error {
					categories, err := a.client.Categories(c.Context)
					if err != nil {
						return err
					}
					return printJSON(categories)
				},
			},
			{
				Name:  "add",
				Usage: "create a category",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "color"},
				},
				Action: func(c *cli.Context) error {
					category := core.Category{
						Name:  c.String("name"),
						Color: c.String("color"),
					}
					if err := category.Validate(); err != nil {
						return err
					}
					created, err := a.client.CreateCategory(c.Context, category)
					if err != nil {
						return err
					}
					return printJSON(created)
				},
			},
		},
	}
}

func (a *app) businessCommand() *cli.Command {
	return &cli.Command{
		Name:  "business",
		Usage: "the business profile invoices are issued under",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "current business profile",
				Action: func(c *cli.Context) error {
					b, err := a.client.Business(c.Context)
					if err != nil {
						return err
					}
					return printJSON(b)
				},
			},
		},
	}
}

func (a *app) subscriptionsCommand() *cli.Command {
	return &cli.Command{
		Name:  "subscriptions",
		Usage: "available plans",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "all plans",
				Action: func(c *cli.Context) error {
					subs, err := a.client.Subscriptions(c.Context)
					if err != nil {
						return err
					}
					return printJSON(subs)
				},
			},
			{
				Name:      "apply",
				Usage:     "subscribe to a plan",
				ArgsUsage: "<id>",
				Action: func(c *cli.Context) error {
					if c.NArg() != 1 {
						return fmt.Errorf("expected a subscription id")
					}
					return a.client.ApplySubscription(c.Context, c.Args().First())
				},
			},
		},
	}
}

func queryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:  "status",
			Usage: "filter by status (estimate, unpaid, paid); repeatable",
		},
		&cli.StringSliceFlag{Name: "client", Usage: "filter by client id; repeatable"},
		&cli.StringSliceFlag{Name: "category", Usage: "filter by category id; repeatable"},
		&cli.StringFlag{Name: "from", Usage: "start date, YYYY-MM-DD"},
		&cli.StringFlag{Name: "to", Usage: "end date, YYYY-MM-DD"},
		&cli.IntFlag{Name: "limit", Usage: "page size override"},
	}
}

func buildQuery(c *cli.Context) (core.OverviewQuery, error) {
	q := core.OverviewQuery{
		Clients:    c.StringSlice("client"),
		Categories: c.StringSlice("category"),
		Limit:      c.Int("limit"),
	}
	for _, raw := range c.StringSlice("status") {
		status, err := core.ParseStatus(raw)
		if err != nil {
			return q, err
		}
		q.Statuses = append(q.Statuses, status)
	}
	if len(q.Statuses) == 0 {
		q.Statuses = core.Statuses()
	}

	from, to := c.String("from"), c.String("to")
	if (from == "") != (to == "") {
		return q, fmt.Errorf("date filters need both --from and --to")
	}
	if from != "" {
		start, err := time.Parse("2006-01-02", from)
		if err != nil {
			return q, fmt.Errorf("parse --from: %w", err)
		}
		end, err := time.Parse("2006-01-02", to)
		if err != nil {
			return q, fmt.Errorf("parse --to: %w", err)
		}
		// End of day, so --to is inclusive.
		end = end.Add(24*time.Hour - time.Millisecond)
		q.Date = &[2]int64{start.UnixMilli(), end.UnixMilli()}
	}
	return q, nil
}

func readDraftFile(path string) (*core.InvoiceDraft, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read draft: %w", err)
	}
	draft := core.NewDraft()
	if err := json.Unmarshal(data, draft); err != nil {
		return nil, fmt.Errorf("parse draft: %w", err)
	}
	// Re-derive the computed fields so an edited file can't carry stale
	// totals into a request.
	draft.RecomputeSubtotal()
	return draft, nil
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}
