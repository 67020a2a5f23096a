package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/me/jsonsettings/internal/admin"
)

func newCreateCmd() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a setting",
		Long:  "Create a setting from --data, --file, or an interactive editor.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := newController(cmd)
			ctrl.RequestCreate()
			return runEditor(cmd, ctrl, in, "Setting created.")
		},
	}

	in.register(cmd)
	return cmd
}

func newEditCmd() *cobra.Command {
	var in inputFlags

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Replace the data of a setting",
		Long:  "Replace the data of a setting from --data, --file, or an interactive editor seeded with the current data.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctrl := newController(cmd)
			if !ctrl.RequestEditByID(cmd.Context(), args[0]) {
				return fmt.Errorf("edit %s: %s", args[0], admin.MsgLoadOneFailed)
			}
			return runEditor(cmd, ctrl, in, "Setting updated.")
		},
	}

	in.register(cmd)
	return cmd
}

// runEditor drives the open dialog of ctrl. Flag input is submitted once;
// otherwise the interactive editor is shown until a submit succeeds or the
// user aborts.
func runEditor(cmd *cobra.Command, ctrl *admin.Controller, in inputFlags, done string) error {
	ctx := cmd.Context()
	ed := ctrl.Editor()
	out := cmd.OutOrStdout()

	buffer, ok, err := in.read(cmd.InOrStdin())
	if err != nil {
		ed.Cancel()
		return err
	}
	if ok {
		ed.SetBuffer(buffer)
		if err := ed.Submit(ctx); err != nil {
			return fmt.Errorf("%s: %w", ed.View().Error, err)
		}
		fmt.Fprintln(out, done)
		return nil
	}

	for {
		v := ed.View()
		text, err := promptBuffer(v.Title, v.Buffer, v.Error)
		if errors.Is(err, errAborted) {
			ed.Cancel()
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
		if err != nil {
			return fmt.Errorf("editor: %w", err)
		}

		ed.SetBuffer(text)
		err = ed.Submit(ctx)
		if err == nil {
			fmt.Fprintln(out, done)
			return nil
		}
		if !rejected(err) {
			return err
		}
		logger.Debug("editor rejected input", "error", err)
	}
}

// rejected reports whether err leaves the dialog open for another try.
func rejected(err error) bool {
	return errors.Is(err, admin.ErrInvalidJSON) ||
		errors.Is(err, admin.ErrNotObject) ||
		errors.Is(err, admin.ErrSaveFailed)
}
