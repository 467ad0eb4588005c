package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/saraHmercha/topsearch/internal/api"
	"github.com/saraHmercha/topsearch/internal/output"
	"github.com/saraHmercha/topsearch/internal/search"
)

var (
	flagYear       string
	flagStartYear  string
	flagEndYear    string
	flagJSON       bool
	flagTitleWidth int
)

// errReported marks a failure whose message was already printed.
var errReported = errors.New("search failed")

var articlesCmd = &cobra.Command{
	Use:   "articles <collection>",
	Short: "List a collection's articles, optionally filtered by year",
	Long: `List the articles of a collection.

--year selects a single publication year; --start-year and --end-year bound
a range. Filters are passed to the service as given.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		criteria := api.Criteria{Year: flagYear, StartYear: flagStartYear, EndYear: flagEndYear}
		if err := checkYears(criteria); err != nil {
			return err
		}
		return runSearch(cmd, args[0], func(ctx context.Context, svc *search.Service) search.Outcome {
			return svc.ByCriteria(ctx, args[0], criteria)
		})
	},
}

var similarCmd = &cobra.Command{
	Use:   "similar <collection> <query...>",
	Short: "Find articles similar to a free-text query",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args[1:], " ")
		return runSearch(cmd, args[0], func(ctx context.Context, svc *search.Service) search.Outcome {
			return svc.BySimilarity(ctx, args[0], query)
		})
	},
}

func init() {
	articlesCmd.Flags().StringVar(&flagYear, "year", "", "publication year (YYYY)")
	articlesCmd.Flags().StringVar(&flagStartYear, "start-year", "", "first publication year of the range (YYYY)")
	articlesCmd.Flags().StringVar(&flagEndYear, "end-year", "", "last publication year of the range (YYYY)")

	for _, c := range []*cobra.Command{articlesCmd, similarCmd} {
		c.Flags().BoolVar(&flagJSON, "json", false, "output articles as JSON")
		c.Flags().IntVar(&flagTitleWidth, "title-width", 80, "truncate titles in table output (0 = no limit)")
	}
}

// checkYears mirrors the form's numeric inputs: digits only, no range checks.
func checkYears(c api.Criteria) error {
	for name, v := range map[string]string{"--year": c.Year, "--start-year": c.StartYear, "--end-year": c.EndYear} {
		for _, r := range v {
			if !unicode.IsDigit(r) {
				return fmt.Errorf("%s must be a number, got %q", name, v)
			}
		}
	}
	return nil
}

func runSearch(cmd *cobra.Command, collection string, run func(context.Context, *search.Service) search.Outcome) error {
	e, err := openEnv()
	if err != nil {
		return err
	}
	defer e.Close()

	if collection != "" && !e.cfg.HasCollection(collection) {
		return fmt.Errorf("unknown collection %q (known: %s)", collection, strings.Join(e.cfg.CollectionNames(), ", "))
	}

	p := output.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr(), !flagNoColor)
	out := run(cmd.Context(), e.svc)

	return report(cmd, p, out)
}

func report(cmd *cobra.Command, p *output.Printer, out search.Outcome) error {
	if out.Found() {
		if flagJSON {
			enc := json.NewEncoder(p.Out())
			enc.SetIndent("", "  ")
			return enc.Encode(out.Articles)
		}
		if err := output.Articles(p.Out(), out.Articles, flagTitleWidth); err != nil {
			return err
		}
		p.Success("%d article(s)", len(out.Articles))
		return nil
	}

	if out.Err == nil {
		p.Notice("%s", out.Message)
		return nil
	}

	p.Error("%s", out.Message)
	cmd.SilenceErrors = true
	return errReported
}
