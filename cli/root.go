// Package cli implements the credctl command-line interface.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/credpanel/credpanel/internal/adapter/driven/api"
)

var (
	// rootFlags
	apiURL     string
	apiToken   string
	outputJSON bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "credctl",
	Short: "Credential controller CLI",
	Long: `credctl inspects and prunes credentials on a controller from the terminal.

Get started:
  credctl list                 List credentials
  credctl list --page 2        List the second page
  credctl delete <id> [id...]  Delete credentials by id`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "Controller base URL (default: $CREDPANEL_API_URL)")
	rootCmd.PersistentFlags().StringVar(&apiToken, "token", "", "Bearer token (default: $CREDPANEL_API_TOKEN)")
	rootCmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output in JSON format")

	// Register all subcommands
	rootCmd.AddCommand(
		listCmd,
		deleteCmd,
	)
}

const requestTimeout = 30 * time.Second

// newAPIClient builds the controller client from flags or environment.
func newAPIClient() (*api.Client, error) {
	baseURL := apiURL
	if baseURL == "" {
		baseURL = os.Getenv("CREDPANEL_API_URL")
	}
	if baseURL == "" {
		return nil, fmt.Errorf("no controller URL: pass --api-url or set CREDPANEL_API_URL")
	}

	token := apiToken
	if token == "" {
		token = os.Getenv("CREDPANEL_API_TOKEN")
	}

	return api.NewClient(baseURL, token, requestTimeout)
}

func printSuccess(msg string) {
	fmt.Printf("  \033[32m✔\033[0m %s\n", msg)
}

func printError(msg string) {
	fmt.Fprintf(os.Stderr, "  \033[31m✗\033[0m %s\n", msg)
}

func printHeader(msg string) {
	fmt.Printf("\n\033[1m%s\033[0m\n", msg)
}
