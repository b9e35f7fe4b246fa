package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/law-makers/jobhub/internal/sites"
	"github.com/law-makers/jobhub/internal/ui"
)

// sitesCmd lists the registered adapters
var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "List the supported job boards",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a := GetApp(cmd)
		if a == nil {
			return errors.New("application not initialized")
		}
		for _, name := range a.Sites.Names() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", ui.Bold(fmt.Sprintf("%-15s", name)), describeSite(a.Sites, name))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sitesCmd)
}

func describeSite(reg *sites.Registry, name string) string {
	a, _ := reg.Get(name)
	switch ad := a.(type) {
	case *sites.LinkedIn:
		return ui.Info("HTML, " + ad.Mode() + " mode")
	case *sites.Indeed:
		return ui.Info("HTML, rendered in a browser")
	case *sites.RemoteOK:
		return ui.Info("JSON feed, filtered locally")
	default:
		return ui.Info("HTML")
	}
}
