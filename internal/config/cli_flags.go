package config

import "github.com/spf13/cobra"

// RegisterFlags registers common CLI flags on the provided root command
func RegisterFlags(cmd *cobra.Command) {
	if cmd == nil {
		return
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
	cmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress all output except errors")
	cmd.PersistentFlags().Bool("json", false, "Write logs as JSON")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output (also NO_COLOR)")
	cmd.PersistentFlags().String("config", "", "Path to a YAML configuration file (optional)")
	cmd.PersistentFlags().String("env-file", DefaultEnvFile, "Path to a .env file with JOBHUB_* variables")
	cmd.PersistentFlags().StringSlice("proxy", nil, "HTTP proxy to rotate through (repeatable)")
	cmd.PersistentFlags().String("timeout", "", "Timeout for static fetches (e.g. 15s)")
	cmd.PersistentFlags().String("render-timeout", "", "Timeout for browser-rendered fetches (e.g. 60s)")
	cmd.PersistentFlags().String("user-agent", "", "Custom user agent string")
	cmd.PersistentFlags().StringArrayP("header", "H", nil, "Extra request header for static fetches (e.g. -H \"Accept-Language: en-IN\")")
	cmd.PersistentFlags().String("chrome-path", "", "Path to the Chrome/Chromium binary")
	cmd.PersistentFlags().Bool("headless", DefaultHeadless, "Run the browser headless")
	cmd.PersistentFlags().Float64("rate-limit", 0, "Requests per second per host")
	cmd.PersistentFlags().Int("retries", 0, "Fetch attempts per page (1 disables retry)")
	cmd.PersistentFlags().String("linkedin-mode", "", "LinkedIn fetch mode: guest or rendered")
}
