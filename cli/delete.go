package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/credpanel/credpanel/internal/application"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id> [id...]",
	Short: "Delete credentials by id",
	Long: `Delete one or more credentials. Deletes run concurrently; ids that
fail are reported individually and do not roll back the ones that
succeeded.

Examples:
  credctl delete 4f1c29aa
  credctl delete 4f1c29aa 77b0e315 0a9cd021`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDelete,
}

func runDelete(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	result, err := application.NewDeleteService(client).Delete(ctx, args)

	if outputJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(result); encErr != nil {
			return encErr
		}
		return err
	}

	for _, id := range result.Deleted {
		printSuccess(fmt.Sprintf("Deleted %s", id))
	}
	for _, f := range result.Failed {
		printError(fmt.Sprintf("Failed %s: %s", f.ID, f.Reason))
	}

	if !result.OK() {
		return fmt.Errorf("%d of %d deletions failed", len(result.Failed), len(args))
	}
	return nil
}
