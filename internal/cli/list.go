package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/me/jsonsettings/internal/admin"
	"github.com/me/jsonsettings/internal/client"
	"github.com/me/jsonsettings/pkg/model"
)

func newListCmd() *cobra.Command {
	var page, limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List settings, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 1 || limit > model.MaxPageSize {
				return fmt.Errorf("--limit must be between 1 and %d", model.MaxPageSize)
			}
			ctrl := newController(cmd, admin.WithPageSize(limit))
			if _, err := ctrl.Reload(cmd.Context(), page); err != nil {
				return fmt.Errorf("list settings: %w", err)
			}

			printList(cmd.OutOrStdout(), admin.NewListView(ctrl, nil).Render())
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", 1, "Page to show")
	cmd.Flags().IntVar(&limit, "limit", model.DefaultPageSize, "Settings per page")
	return cmd
}

func newGetCmd() *cobra.Command {
	var dataOnly bool

	cmd := &cobra.Command{
		Use:   "get ID",
		Short: "Show one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := api.Get(cmd.Context(), args[0])
			if client.IsNotFound(err) {
				return fmt.Errorf("setting %s not found", args[0])
			}
			if err != nil {
				return fmt.Errorf("get setting: %w", err)
			}

			w := cmd.OutOrStdout()
			if dataOnly {
				fmt.Fprintln(w, s.Data.Indent())
				return nil
			}
			view := admin.NewListView(nil, nil).Build([]model.Setting{*s}, 1, 1)
			printRow(w, view.Rows[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&dataOnly, "data-only", false, "Print only the JSON data")
	return cmd
}

func printList(w io.Writer, v admin.View) {
	if v.Empty {
		fmt.Fprintln(w, v.EmptyMessage)
		return
	}
	for i, row := range v.Rows {
		if i > 0 {
			fmt.Fprintln(w)
		}
		printRow(w, row)
	}
	if v.Pager.Show {
		fmt.Fprintf(w, "\n%s\n", v.Pager.Label)
	}
}

func printRow(w io.Writer, row admin.Row) {
	fmt.Fprintf(w, "ID:      %s\n", row.ID)
	fmt.Fprintf(w, "Created: %s (%s)\n", row.Created, row.CreatedAgo)
	fmt.Fprintf(w, "Updated: %s (%s)\n", row.Updated, row.UpdatedAgo)
	fmt.Fprintln(w, row.Data)
}
