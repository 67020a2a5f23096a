package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/jsonsettings/internal/admin"
)

func newDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			confirmer := admin.ConfirmFunc(func(_ context.Context, prompt string) (bool, error) {
				if yes {
					return true, nil
				}
				return promptConfirm(prompt)
			})
			view := admin.NewListView(newController(cmd), confirmer)

			attempted, err := view.RequestDelete(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("delete %s: %w", args[0], err)
			}
			if !attempted {
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Setting deleted.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Delete without asking for confirmation")
	return cmd
}
