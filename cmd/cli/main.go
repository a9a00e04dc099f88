package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
		asJSON  bool
	)

	client := &apiClient{}

	rootCmd := &cobra.Command{
		Use:           "expensetracker-cli",
		Short:         "Expense tracker CLI tool",
		Long:          `A command line interface for recording expenses and incomes through the expense tracker API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			client.configure(baseURL, timeout)
			client.raw = asJSON
		},
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the expense tracker API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print raw JSON responses")

	rootCmd.AddCommand(
		entryCmd(client, "expense", "expenses", true),
		entryCmd(client, "income", "incomes", false),
		summaryCmd(client),
		insightsCmd(client),
		ratesCmd(client),
		convertCmd(client),
	)

	return rootCmd
}
