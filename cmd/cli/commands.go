package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type cliOptions struct {
	baseURL string
	timeout time.Duration
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:           "memledger-cli",
		Short:         "MemLedger CLI tool",
		Long:          `A command line interface for interacting with the MemLedger API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the MemLedger API")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")

	rootCmd.AddCommand(
		accountCmd(opts),
		transferCmd(opts),
		ledgerCmd(opts),
	)

	return rootCmd
}

func accountCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var (
		id      string
		balance string
	)
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account with an opening balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := decimal.NewFromString(balance)
			if err != nil {
				return fmt.Errorf("invalid balance %q: %w", balance, err)
			}
			return opts.call(cmd.OutOrStdout(), http.MethodPost, "/api/v1/accounts/", map[string]any{
				"account_id": id,
				"balance":    amount,
			})
		},
	}
	createCmd.Flags().StringVar(&id, "id", "", "Account id")
	createCmd.Flags().StringVar(&balance, "balance", "0", "Opening balance")
	_ = createCmd.MarkFlagRequired("id")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd.OutOrStdout(), http.MethodGet, "/api/v1/accounts/"+url.PathEscape(args[0]), nil)
		},
	}

	var limit, offset int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd.OutOrStdout(), http.MethodGet, "/api/v1/accounts/"+pageQuery(limit, offset), nil)
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 20, "Page size")
	listCmd.Flags().IntVar(&offset, "offset", 0, "Page offset")

	historyCmd := &cobra.Command{
		Use:   "transfers <id>",
		Short: "List the transfers of an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd.OutOrStdout(), http.MethodGet, "/api/v1/accounts/"+url.PathEscape(args[0])+"/transfers", nil)
		},
	}

	cmd.AddCommand(createCmd, getCmd, listCmd, historyCmd)
	return cmd
}

func transferCmd(opts *cliOptions) *cobra.Command {
	var (
		from           string
		to             string
		amount         string
		idempotencyKey string
	)

	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Move money between two accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", amount, err)
			}
			return opts.callWithKey(cmd.OutOrStdout(), http.MethodPost, "/api/v1/transfers/", map[string]any{
				"account_from_id": from,
				"account_to_id":   to,
				"amount":          value,
			}, idempotencyKey)
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "Source account id")
	cmd.Flags().StringVar(&to, "to", "", "Destination account id")
	cmd.Flags().StringVar(&amount, "amount", "", "Amount to transfer")
	cmd.Flags().StringVar(&idempotencyKey, "idempotency-key", "", "Idempotency key for safe retries")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	_ = cmd.MarkFlagRequired("amount")

	getCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show a transfer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.call(cmd.OutOrStdout(), http.MethodGet, "/api/v1/transfers/"+url.PathEscape(args[0]), nil)
		},
	}
	cmd.AddCommand(getCmd)

	return cmd
}

func ledgerCmd(opts *cliOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.checkConsistency(cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(consistencyCmd)
	return cmd
}

func (o *cliOptions) checkConsistency(out io.Writer) error {
	status, body, err := o.do(http.MethodGet, "/api/v1/ledger/consistency", nil, "")
	if err != nil {
		return err
	}

	if status != http.StatusOK {
		return fmt.Errorf("consistency check FAILED (status: %d)\nresponse: %s", status, string(body))
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}

	fmt.Fprintf(out, "Consistency check PASSED\n")
	fmt.Fprintf(out, "Accounts: %v\n", result["accounts"])
	fmt.Fprintf(out, "Total balance: %v\n", result["total_balance"])
	return nil
}

func (o *cliOptions) call(out io.Writer, method, path string, payload any) error {
	return o.callWithKey(out, method, path, payload, "")
}

// callWithKey performs the request and pretty prints the JSON response.
// Non-2xx responses are returned as errors carrying the server message.
func (o *cliOptions) callWithKey(out io.Writer, method, path string, payload any, idempotencyKey string) error {
	status, body, err := o.do(method, path, payload, idempotencyKey)
	if err != nil {
		return err
	}

	if status < 200 || status >= 300 {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			if apiErr.Message != "" {
				return fmt.Errorf("%s (status %d): %s", apiErr.Error, status, apiErr.Message)
			}
			return fmt.Errorf("%s (status %d)", apiErr.Error, status)
		}
		return fmt.Errorf("request failed with status %d: %s", status, string(body))
	}

	return printJSON(out, body)
}

func (o *cliOptions) do(method, path string, payload any, idempotencyKey string) (int, []byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, o.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if idempotencyKey != "" {
		req.Header.Set("Idempotency-Key", idempotencyKey)
	}

	client := &http.Client{Timeout: o.timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("error making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to read response: %w", err)
	}

	return resp.StatusCode, body, nil
}

func printJSON(out io.Writer, body []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, bytes.TrimSpace(body), "", "  "); err != nil {
		_, err = out.Write(body)
		return err
	}
	buf.WriteByte('\n')
	_, err := out.Write(buf.Bytes())
	return err
}

func pageQuery(limit, offset int) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))
	return "?" + q.Encode()
}
