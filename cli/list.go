package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/credpanel/credpanel/internal/application"
	"github.com/credpanel/credpanel/internal/domain/model"
)

var (
	listPage     int
	listPageSize int
	listOrderBy  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List credentials",
	Long: `List one page of credentials from the controller.

Examples:
  credctl list
  credctl list --page 2 --page-size 50
  credctl list --order-by modified_at --json`,
	RunE: runList,
}

func init() {
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page number (1-based)")
	listCmd.Flags().IntVar(&listPageSize, "page-size", 20, "Rows per page")
	listCmd.Flags().StringVar(&listOrderBy, "order-by", "name", "Sort field")
}

func runList(cmd *cobra.Command, args []string) error {
	client, err := newAPIClient()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()

	q := model.Query{Page: listPage, PageSize: listPageSize, OrderBy: listOrderBy}
	q = q.Normalize(20, "name")

	view, err := application.NewListService(client).Fetch(ctx, q)
	if err != nil {
		return fmt.Errorf("listing credentials: %w", err)
	}

	if outputJSON {
		return printListJSON(view, q)
	}

	if len(view.Credentials) == 0 {
		fmt.Println("No credentials.")
		return nil
	}

	printHeader(fmt.Sprintf("Credentials (page %d, %d total)", q.Page, view.Count))

	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "  ID\tNAME\tKIND\tDESCRIPTION")
	for _, c := range view.Credentials {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", c.ID, c.Name, c.Kind, c.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if view.Actions.CanCreate() {
		fmt.Println("\nController permits creating credentials.")
	}
	return nil
}

func printListJSON(view *model.CredentialView, q model.Query) error {
	type row struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		Kind        string `json:"kind"`
		Description string `json:"description"`
	}

	out := struct {
		Page        int   `json:"page"`
		Count       int   `json:"count"`
		CanCreate   bool  `json:"can_create"`
		Credentials []row `json:"credentials"`
	}{
		Page:        q.Page,
		Count:       view.Count,
		CanCreate:   view.Actions.CanCreate(),
		Credentials: []row{},
	}

	for _, c := range view.Credentials {
		out.Credentials = append(out.Credentials, row{
			ID: c.ID, Name: c.Name, Kind: c.Kind, Description: c.Description,
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
