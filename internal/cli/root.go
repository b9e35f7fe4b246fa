package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/law-makers/jobhub/internal/app"
	"github.com/law-makers/jobhub/internal/config"
	"github.com/law-makers/jobhub/internal/ui"
)

// shutdownTimeout bounds Application.Close after a command finishes
const shutdownTimeout = 5 * time.Second

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jobhub",
	Short: "Search several job boards from one command",
	Long: `JobHub scrapes LinkedIn, Indeed, RemoteOK, TimesJobs, Internshala and
WeWorkRemotely and prints their postings in one uniform shape.

Configuration is read from defaults, an optional YAML file (--config), a .env
file, JOBHUB_* environment variables and flags, in that order.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the root command with ctx, which is cancelled on interrupt.
// It returns the command error so main can choose the exit code.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	config.RegisterFlags(rootCmd)

	// Build the application lazily so -h and --version never touch config
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if off, _ := cmd.Flags().GetBool("no-color"); off {
			ui.SetEnabled(false)
		}
		if GetApp(cmd) != nil {
			return nil
		}

		cfg, err := config.Load(cmd)
		if err != nil {
			return err
		}

		a, err := app.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		SetApp(cmd, a)
		return nil
	}

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		a := GetApp(cmd)
		if a == nil {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = a.Close(ctx)
	}

	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.Flags().BoolP("help", "h", false, "Help for jobhub")
	rootCmd.Flags().Bool("version", false, "Version for jobhub")

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, _ []string) {
		renderHelp(cmd.OutOrStdout(), cmd, true)
	})
	rootCmd.SetUsageFunc(func(cmd *cobra.Command) error {
		renderHelp(cmd.ErrOrStderr(), cmd, false)
		return nil
	})
}
