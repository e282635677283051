package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
)

var (
	baseURL string
	timeout time.Duration
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledgercore-cli",
		Short: "LedgerCore CLI tool",
		Long:  `A command line interface for interacting with the LedgerCore API.`,
	}

	rootCmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "Base URL of the LedgerCore API")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 10*time.Second, "Request timeout")

	// Account commands
	accountCmd := &cobra.Command{
		Use:   "account",
		Short: "Account operations",
	}

	var accountID, accountName, accountDirection string

	createAccountCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new account",
		Run: func(cmd *cobra.Command, args []string) {
			createAccount(accountID, accountName, accountDirection)
		},
	}
	createAccountCmd.Flags().StringVar(&accountID, "id", "", "Account id (generated when empty)")
	createAccountCmd.Flags().StringVar(&accountName, "name", "", "Account name")
	createAccountCmd.Flags().StringVar(&accountDirection, "direction", "", "Account direction: debit or credit")
	createAccountCmd.MarkFlagRequired("direction")

	getAccountCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get an account by id",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts/" + args[0])
		},
	}

	listAccountsCmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/accounts")
		},
	}

	accountCmd.AddCommand(createAccountCmd, getAccountCmd, listAccountsCmd)
	rootCmd.AddCommand(accountCmd)

	// Transaction commands
	txCmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction operations",
	}

	var txBody string

	postTxCmd := &cobra.Command{
		Use:   "post",
		Short: "Post a transaction from a JSON body",
		Long: `Post a transaction. The body is the full request JSON, e.g.:
  {"entries":[{"account_id":"a","direction":"debit","amount":"100"},{"account_id":"b","direction":"credit","amount":"100"}]}`,
		Run: func(cmd *cobra.Command, args []string) {
			postTransaction(txBody)
		},
	}
	postTxCmd.Flags().StringVar(&txBody, "body", "", "Transaction request JSON")
	postTxCmd.MarkFlagRequired("body")

	getTxCmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Get a transaction by id",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			getJSON("/api/v1/transactions/" + args[0])
		},
	}

	txCmd.AddCommand(postTxCmd, getTxCmd)
	rootCmd.AddCommand(txCmd)

	// Ledger commands
	ledgerCmd := &cobra.Command{
		Use:   "ledger",
		Short: "Ledger operations",
	}

	consistencyCmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check ledger consistency",
		Run: func(cmd *cobra.Command, args []string) {
			checkConsistency()
		},
	}

	ledgerCmd.AddCommand(consistencyCmd)
	rootCmd.AddCommand(ledgerCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createAccount(id, name, direction string) {
	payload := map[string]string{"direction": direction}
	if id != "" {
		payload["id"] = id
	}
	if name != "" {
		payload["name"] = name
	}

	body, _ := json.Marshal(payload)
	postJSON("/api/v1/accounts", body)
}

func postTransaction(body string) {
	postJSON("/api/v1/transactions", []byte(body))
}

func postJSON(path string, body []byte) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Post(baseURL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func getJSON(path string) {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + path)
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	printResponse(resp)
}

func printResponse(resp *http.Response) {
	body, _ := io.ReadAll(resp.Body)

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, body, "", "  "); err != nil {
		pretty.Write(body)
	}

	if resp.StatusCode >= 400 {
		fmt.Printf("Request failed (Status: %d)\n%s\n", resp.StatusCode, pretty.String())
		os.Exit(1)
	}

	fmt.Println(pretty.String())
}

func checkConsistency() {
	client := &http.Client{Timeout: timeout}
	resp, err := client.Get(baseURL + "/api/v1/ledger/consistency")
	if err != nil {
		fmt.Printf("Error making request: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		fmt.Printf("Consistency check FAILED (Status: %d)\nResponse: %s\n", resp.StatusCode, string(body))
		os.Exit(1)
	}

	var result map[string]any
	if err := json.Unmarshal(body, &result); err != nil {
		fmt.Printf("Failed to parse response: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Consistency check PASSED\n")
	if consistent, ok := result["consistent"].(bool); ok {
		fmt.Printf("Consistent: %v\n", consistent)
	}
}
