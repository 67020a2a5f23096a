// Package cli implements settingsctl, the command-line settings
// administration tool.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/me/jsonsettings/internal/admin"
	"github.com/me/jsonsettings/internal/client"
	"github.com/me/jsonsettings/internal/config"
	"github.com/me/jsonsettings/internal/logging"
)

var (
	flagServer    string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string
	flagTimeout   time.Duration

	logger *slog.Logger
	api    *client.Client
)

// NewRootCmd creates the root cobra command for settingsctl.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "settingsctl",
		Short: "settingsctl manages JSON settings",
		Long:  "settingsctl lists, creates, edits and deletes JSON settings through the settings API.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.NewLogger(logging.ParseLevel(flagLogLevel), flagLogFormat)
			api = client.New(flagServer,
				client.WithLogger(logger),
				client.WithTimeout(flagTimeout),
			)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", config.APIURL(), "Settings API base URL (or SETTINGS_API_URL env)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")
	root.PersistentFlags().DurationVar(&flagTimeout, "timeout", 30*time.Second, "API request timeout")

	root.AddCommand(
		newListCmd(),
		newGetCmd(),
		newCreateCmd(),
		newEditCmd(),
		newDeleteCmd(),
	)

	return root
}

// newController returns a controller whose notifications go to stderr.
func newController(cmd *cobra.Command, opts ...admin.Option) *admin.Controller {
	opts = append([]admin.Option{admin.WithLogger(logger)}, opts...)
	return admin.NewController(api, stderrNotifier(cmd.ErrOrStderr()), opts...)
}

func stderrNotifier(w io.Writer) admin.Notifier {
	return admin.NotifyFunc(func(_ context.Context, message string) {
		fmt.Fprintln(w, "!", message)
	})
}
