package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/AlHudnitskii/walletledger/internal/domain"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "walletctl",
		Short: "Wallet ledger CLI tool",
		Long:  `A command line interface for the wallet ledger API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the wallet ledger API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	userCmd := &cobra.Command{
		Use:   "user",
		Short: "User operations",
	}
	userCmd.AddCommand(userCreateCmd(), userGetCmd())

	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger integrity operations",
	}
	ledgerCmd.AddCommand(consistencyCmd(), reconcileCmd())

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Reporting",
	}
	reportCmd.AddCommand(weeklyReportCmd())

	rootCmd.AddCommand(userCmd, depositCmd(), withdrawCmd(), rollbackCmd(), ledgerCmd, reportCmd, seedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func userCreateCmd() *cobra.Command {
	var name string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a new user",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := doRequest(http.MethodPost, "/api/v1/users", map[string]any{"name": name}, nil)
			if err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "User display name")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func userGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := doRequest(http.MethodGet, "/api/v1/users/"+args[0], nil, nil)
			if err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}
}

func depositCmd() *cobra.Command {
	var (
		userID   string
		currency string
		amount   string
		key      string
	)
	cmd := &cobra.Command{
		Use:   "deposit",
		Short: "Credit funds to a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := doRequest(http.MethodPost, "/api/v1/transactions/deposit", map[string]any{
				"user_id":  userID,
				"currency": currency,
				"amount":   amount,
			}, idempotencyHeaders(key))
			if err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&currency, "currency", "USD", "Currency code")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in major units, e.g. 10.50")
	cmd.Flags().StringVar(&key, "key", "", "Idempotency key")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func withdrawCmd() *cobra.Command {
	var (
		userID   string
		currency string
		amount   string
		key      string
	)
	cmd := &cobra.Command{
		Use:   "withdraw",
		Short: "Debit funds from a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := doRequest(http.MethodPost, "/api/v1/transactions/withdraw", map[string]any{
				"user_id":  userID,
				"currency": currency,
				"amount":   amount,
			}, idempotencyHeaders(key))
			if err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", "", "User ID")
	cmd.Flags().StringVar(&currency, "currency", "USD", "Currency code")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount in major units, e.g. 10.50")
	cmd.Flags().StringVar(&key, "key", "", "Idempotency key")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("amount")
	return cmd
}

func rollbackCmd() *cobra.Command {
	var requestedBy string
	cmd := &cobra.Command{
		Use:   "rollback <transaction-id>",
		Short: "Reverse an applied transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := doRequest(http.MethodPost, "/api/v1/transactions/"+args[0]+"/rollback", map[string]any{
				"requested_by": requestedBy,
			}, nil)
			if err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}
	cmd.Flags().StringVar(&requestedBy, "requested-by", "", "ID of the user requesting the rollback")
	_ = cmd.MarkFlagRequired("requested-by")
	return cmd
}

func consistencyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := doRequest(http.MethodGet, "/api/v1/ledger/consistency", nil, nil)
			if err != nil {
				return err
			}
			printJSON(result)
			if report, ok := result.(map[string]any); ok {
				if consistent, ok := report["consistent"].(bool); ok && !consistent {
					return errors.New("ledger is inconsistent")
				}
			}
			return nil
		},
	}
}

func reconcileCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reconcile",
		Short: "Compare cached balances against replayed entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := doRequest(http.MethodGet, "/api/v1/ledger/reconciliation", nil, nil)
			if err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}
}

func weeklyReportCmd() *cobra.Command {
	var weeks int
	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Show the weekly activity report",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := doRequest(http.MethodGet, fmt.Sprintf("/api/v1/reports/weekly?weeks=%d", weeks), nil, nil)
			if err != nil {
				return err
			}
			printJSON(result)
			return nil
		},
	}
	cmd.Flags().IntVar(&weeks, "weeks", 4, "Number of weeks to cover")
	return cmd
}

func seedCmd() *cobra.Command {
	var (
		users   int
		perUser int
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the service with demo users and transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			currencies := domain.Currencies()
			applied, rolledBack, skipped := 0, 0, 0

			for i := 1; i <= users; i++ {
				user, err := doRequest(http.MethodPost, "/api/v1/users", map[string]any{
					"name": fmt.Sprintf("demo-user-%03d", i),
				}, nil)
				if err != nil {
					return fmt.Errorf("failed to create demo user %d: %w", i, err)
				}
				userID := stringField(user, "id")
				if userID == "" {
					return fmt.Errorf("user response for demo user %d has no id", i)
				}

				for j := 0; j < perUser; j++ {
					currency := currencies[rand.IntN(len(currencies))].String()

					// Mostly deposits; withdrawals only against a funded
					// balance, capped at 500 major units.
					path := "/api/v1/transactions/deposit"
					amount := randomAmount(10, 1000)
					if rand.Float64() >= 0.7 {
						if balance := fetchBalance(userID, currency); balance >= 1 {
							path = "/api/v1/transactions/withdraw"
							amount = randomAmount(1, math.Min(balance, 500))
						}
					}

					tx, err := doRequest(http.MethodPost, path, map[string]any{
						"user_id":  userID,
						"currency": currency,
						"amount":   amount,
					}, nil)
					if err != nil {
						skipped++
						continue
					}
					applied++

					if rand.Float64() < 0.1 {
						_, err := doRequest(http.MethodPost, "/api/v1/transactions/"+stringField(tx, "id")+"/rollback", map[string]any{
							"requested_by": userID,
						}, nil)
						if err == nil {
							rolledBack++
						}
					}
				}
			}

			fmt.Printf("seeded %d users, %d transactions (%d rolled back, %d skipped)\n",
				users, applied, rolledBack, skipped)
			return nil
		},
	}
	cmd.Flags().IntVar(&users, "users", 10, "Number of demo users to create")
	cmd.Flags().IntVar(&perUser, "transactions", 5, "Transactions per user")
	return cmd
}

func randomAmount(low, high float64) string {
	if high < low {
		high = low
	}
	return strconv.FormatFloat(low+rand.Float64()*(high-low), 'f', 2, 64)
}

func fetchBalance(userID, currency string) float64 {
	result, err := doRequest(http.MethodGet, "/api/v1/users/"+userID+"/balances/"+currency, nil, nil)
	if err != nil {
		return 0
	}
	m, ok := result.(map[string]any)
	if !ok {
		return 0
	}
	switch v := m["balance"].(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0
		}
		return f
	case float64:
		return v
	}
	return 0
}

func stringField(result any, key string) string {
	m, ok := result.(map[string]any)
	if !ok {
		return ""
	}
	s, _ := m[key].(string)
	return s
}

func idempotencyHeaders(key string) map[string]string {
	if key == "" {
		return nil
	}
	return map[string]string{"Idempotency-Key": key}
}

func doRequest(method, path string, body any, headers map[string]string) (any, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s %s failed (status %d): %s",
			method, path, resp.StatusCode, truncate(strings.TrimSpace(string(data)), 200))
	}

	var result any
	if len(data) > 0 {
		if err := json.Unmarshal(data, &result); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return result, nil
}

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Println(v)
		return
	}
	fmt.Println(string(data))
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
