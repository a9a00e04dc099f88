package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/expensetracker/internal/adapter/http/dto"
)

const (
	dateLayout    = "2006-01-02"
	titleColWidth = 32
)

// entryCmd builds the command group for one collection (expense or income).
func entryCmd(client *apiClient, name, collection string, withCategory bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   name,
		Short: fmt.Sprintf("Manage %s", collection),
	}

	cmd.AddCommand(
		entryAddCmd(client, name, collection, withCategory),
		entryListCmd(client, collection, withCategory),
		entryDeleteCmd(client),
		entryClearCmd(client, collection),
	)

	return cmd
}

func entryAddCmd(client *apiClient, name, collection string, withCategory bool) *cobra.Command {
	var (
		title    string
		amount   string
		date     string
		category string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: fmt.Sprintf("Record a new %s", name),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreateEntryRequest{Title: title, Category: category}

			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q", amount)
			}
			req.Amount = amt

			if date != "" {
				d, err := time.ParseInLocation(dateLayout, date, time.UTC)
				if err != nil {
					return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", date)
				}
				req.Date = &d
			}

			var entry dto.EntryResponse
			raw, err := client.do(cmd.Context(), http.MethodPost, "/api/v1/"+collection, nil, req, &entry)
			if err != nil {
				return err
			}
			if client.raw {
				return printJSON(cmd.OutOrStdout(), raw)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s: %s %s\n", name, entry.ID, entry.Title, entry.Amount.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Title of the entry")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount, greater than zero")
	cmd.Flags().StringVar(&date, "date", "", "Date as YYYY-MM-DD (defaults to today)")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("amount")
	if withCategory {
		cmd.Flags().StringVar(&category, "category", "", "Spending category")
		_ = cmd.MarkFlagRequired("category")
	}

	return cmd
}

func entryListCmd(client *apiClient, collection string, withCategory bool) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: fmt.Sprintf("List all %s", collection),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var list dto.EntryListResponse
			raw, err := client.do(cmd.Context(), http.MethodGet, "/api/v1/"+collection, nil, nil, &list)
			if err != nil {
				return err
			}
			if client.raw {
				return printJSON(cmd.OutOrStdout(), raw)
			}

			if list.Count == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s recorded.\n", collection)
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			if withCategory {
				fmt.Fprintln(tw, "ID\tDATE\tTITLE\tCATEGORY\tAMOUNT")
			} else {
				fmt.Fprintln(tw, "ID\tDATE\tTITLE\tAMOUNT")
			}
			for _, e := range list.Entries {
				title := truncate(e.Title, titleColWidth)
				if withCategory {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date.Format(dateLayout), title, e.Category, e.Amount.StringFixed(2))
				} else {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.ID, e.Date.Format(dateLayout), title, e.Amount.StringFixed(2))
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "\n%d entries, total %s\n", list.Count, list.Total.StringFixed(2))
			return nil
		},
	}
}

func entryDeleteCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one entry by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := client.do(cmd.Context(), http.MethodDelete, "/api/v1/entries/"+url.PathEscape(args[0]), nil, nil, nil); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func entryClearCmd(client *apiClient, collection string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: fmt.Sprintf("Delete all %s", collection),
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}

			var resp dto.ClearResponse
			query := url.Values{"confirm": {"true"}}
			if _, err := client.do(cmd.Context(), http.MethodDelete, "/api/v1/"+collection, query, nil, &resp); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d %s\n", resp.Removed, collection)
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm removal of every entry")
	return cmd
}

func summaryCmd(client *apiClient) *cobra.Command {
	var currency string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show total income, spending and net savings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if currency != "" {
				query.Set("currency", currency)
			}

			var s dto.SummaryResponse
			raw, err := client.do(cmd.Context(), http.MethodGet, "/api/v1/summary", query, nil, &s)
			if err != nil {
				return err
			}
			if client.raw {
				return printJSON(cmd.OutOrStdout(), raw)
			}

			unit := s.Currency
			if unit == "" {
				unit = "base"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Total Income:   %s\n", s.TotalIncome.StringFixed(2))
			fmt.Fprintf(out, "Total Spending: %s\n", s.TotalSpending.StringFixed(2))
			fmt.Fprintf(out, "Net Savings:    %s\n", s.NetSavings.StringFixed(2))
			fmt.Fprintf(out, "Currency:       %s\n", unit)
			return nil
		},
	}

	cmd.Flags().StringVar(&currency, "currency", "", "Convert totals into this currency code")
	return cmd
}

func insightsCmd(client *apiClient) *cobra.Command {
	var top int

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Show the most expensive items and spending feedback",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if cmd.Flags().Changed("top") {
				query.Set("top", strconv.Itoa(top))
			}

			var insight dto.InsightResponse
			raw, err := client.do(cmd.Context(), http.MethodGet, "/api/v1/insights", query, nil, &insight)
			if err != nil {
				return err
			}
			if client.raw {
				return printJSON(cmd.OutOrStdout(), raw)
			}

			fmt.Fprintln(cmd.OutOrStdout(), insight.Report)
			return nil
		},
	}

	cmd.Flags().IntVar(&top, "top", 5, "Number of items in the ranking")
	return cmd
}

func ratesCmd(client *apiClient) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Exchange-rate operations",
	}

	show := func(cmd *cobra.Command, method, path string) error {
		var table dto.RateTableResponse
		raw, err := client.do(cmd.Context(), method, path, nil, nil, &table)
		if err != nil {
			return err
		}
		if client.raw {
			return printJSON(cmd.OutOrStdout(), raw)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Base %s, fetched %s, %d currencies\n", table.Base, table.FetchedAt.Format(time.RFC3339), len(table.Rates))
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		for _, r := range table.Rates {
			fmt.Fprintf(tw, "%s\t%s\n", r.Currency, r.Rate.String())
		}
		return tw.Flush()
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "refresh",
			Short: "Fetch the latest rates from the upstream source",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return show(cmd, http.MethodPost, "/api/v1/rates/refresh")
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the rate table in use",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return show(cmd, http.MethodGet, "/api/v1/rates")
			},
		},
	)

	return cmd
}

func convertCmd(client *apiClient) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <amount> <currency>",
		Short: "Convert an amount from the base currency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{"amount": {args[0]}, "currency": {args[1]}}

			var resp dto.ConvertResponse
			raw, err := client.do(cmd.Context(), http.MethodGet, "/api/v1/convert", query, nil, &resp)
			if err != nil {
				return err
			}
			if client.raw {
				return printJSON(cmd.OutOrStdout(), raw)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s = %s %s\n", resp.Amount.String(), resp.Converted.StringFixed(2), resp.Currency)
			return nil
		},
	}
}
