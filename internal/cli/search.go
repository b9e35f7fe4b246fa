package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/law-makers/jobhub/internal/reqctx"
	"github.com/law-makers/jobhub/internal/sites"
	"github.com/law-makers/jobhub/internal/ui"
	"github.com/law-makers/jobhub/internal/utils/output"
	"github.com/law-makers/jobhub/pkg/models"
)

// allSites selects every registered adapter
const allSites = "all"

var (
	searchSite     string
	searchLocation string
	searchPage     int
	searchFormat   string
	searchOutput   string
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <query...>",
	Short: "Search one or more job boards",
	Long: `Fetches one page of results for the query from the selected board and
prints the postings in a uniform shape: title, company, location, posted date
and an absolute link, plus any board-specific fields.

A board that cannot be reached yields zero results and a warning in the log.`,
	Example: `  # Python internships on Internshala
  jobhub search --site internshala python developer

  # LinkedIn jobs near a city, second page
  jobhub search --site linkedin --location Austin --page 2 golang

  # Every board at once, saved as CSV
  jobhub search --site all --output jobs.csv data engineer`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().StringVarP(&searchSite, "site", "s", "linkedin", "Board to search, a comma-separated list, or \"all\"")
	searchCmd.Flags().StringVarP(&searchLocation, "location", "l", "", "Location filter (ignored by boards without one)")
	searchCmd.Flags().IntVarP(&searchPage, "page", "p", 1, "Result page, starting at 1")
	searchCmd.Flags().StringVarP(&searchFormat, "format", "f", "", "Output format: table, json, csv or md (default from --output extension, else table)")
	searchCmd.Flags().StringVarP(&searchOutput, "output", "o", "", "Write results to this file instead of stdout")
}

func runSearch(cmd *cobra.Command, args []string) error {
	a := GetApp(cmd)
	if a == nil {
		return errors.New("application not initialized")
	}

	req, err := models.SearchRequest{
		Query:    strings.Join(args, " "),
		Location: searchLocation,
		Site:     searchSite,
		Page:     searchPage,
	}.Validate()
	if err != nil {
		return err
	}

	format, err := resolveFormat(searchFormat, searchOutput)
	if err != nil {
		return err
	}

	names, err := resolveSites(req.Site, a.Sites)
	if err != nil {
		return err
	}

	ctx := reqctx.WithRequestContext(cmd.Context())
	log.Debug().
		Str("request_id", reqctx.GetRequestContext(ctx).RequestID).
		Str("query", req.Query).
		Strs("sites", names).
		Int("page", req.Page).
		Msg("Search started")

	var results []models.SiteResult
	if len(names) == 1 {
		req.Site = names[0]
		jobs, _ := a.Aggregator.SearchErr(ctx, req)
		results = []models.SiteResult{{Site: names[0], Jobs: jobs}}
	} else {
		bar := progressbar.NewOptions(len(names),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("Searching"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetVisibility(!a.Config.JSONLog && a.Config.LogLevel != "error"),
		)
		results = a.Aggregator.SearchAllNotify(ctx, req, names, func(site string, _ int, _ error) {
			_ = bar.Add(1)
		})
		_ = bar.Finish()
	}

	total := 0
	for _, r := range results {
		total += len(r.Jobs)
	}
	if total == 0 && a.Config.LogLevel != "error" {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.Warn(fmt.Sprintf("No jobs found for %q", req.Query)))
	}

	if searchOutput == "" {
		return output.Render(cmd.OutOrStdout(), format, results)
	}

	if err := output.Save(searchOutput, format, results); err != nil {
		return fmt.Errorf("save results: %w", err)
	}
	fmt.Fprintln(cmd.ErrOrStderr(), ui.Success(fmt.Sprintf("Saved %d jobs to %s", total, searchOutput)))
	return nil
}

// resolveFormat prefers an explicit --format, then the --output extension
func resolveFormat(format, path string) (output.Format, error) {
	if format == "" && path != "" {
		return output.ParseFormat(filepath.Ext(path))
	}
	return output.ParseFormat(format)
}

// resolveSites expands "all" and comma-separated lists into canonical site
// names, rejecting names no adapter is registered under.
func resolveSites(selection string, reg *sites.Registry) ([]string, error) {
	if strings.EqualFold(strings.TrimSpace(selection), allSites) {
		return reg.Names(), nil
	}

	var names []string
	seen := map[string]bool{}
	for _, part := range strings.Split(selection, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		a, ok := reg.Get(part)
		if !ok {
			return nil, fmt.Errorf("unknown site %q (available: %s)", strings.TrimSpace(part), strings.Join(reg.Names(), ", "))
		}
		if !seen[a.Name()] {
			seen[a.Name()] = true
			names = append(names, a.Name())
		}
	}
	if len(names) == 0 {
		return nil, errors.New("no site selected")
	}
	return names, nil
}
