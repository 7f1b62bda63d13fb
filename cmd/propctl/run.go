package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mamadbah2/realty/internal/config"
	"github.com/mamadbah2/realty/internal/domain/models"
	"github.com/mamadbah2/realty/internal/engine/analytics"
	"github.com/mamadbah2/realty/internal/engine/filtering"
	"github.com/mamadbah2/realty/internal/engine/scoring"
	"github.com/mamadbah2/realty/internal/repository/file"
	"github.com/mamadbah2/realty/internal/repository/mongodb"
)

type globalOptions struct {
	tablePath string
	asJSON    bool
}

// filterFlags mirrors PropertyFilters; only flags set on the command line become predicates.
type filterFlags struct {
	minPrice      float64
	maxPrice      float64
	minScore      float64
	maxScore      float64
	minCapRate    float64
	maxCrime      float64
	minJobGrowth  float64
	zipCodes      []string
	propertyTypes []string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.Float64Var(&f.minPrice, "min-price", 0, "minimum price")
	fs.Float64Var(&f.maxPrice, "max-price", 0, "maximum price")
	fs.Float64Var(&f.minScore, "min-score", 0, "minimum AI score")
	fs.Float64Var(&f.maxScore, "max-score", 0, "maximum AI score")
	fs.Float64Var(&f.minCapRate, "min-cap-rate", 0, "minimum cap rate in percent")
	fs.Float64Var(&f.maxCrime, "max-crime", 0, "maximum crime index")
	fs.Float64Var(&f.minJobGrowth, "min-job-growth", 0, "minimum job growth in percentage points")
	fs.StringSliceVar(&f.zipCodes, "zip", nil, "zip codes to keep (repeatable or comma separated)")
	fs.StringSliceVar(&f.propertyTypes, "type", nil, "property types to keep (repeatable or comma separated)")
}

func (f *filterFlags) build(cmd *cobra.Command) models.PropertyFilters {
	set := func(name string, v float64) *float64 {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		return &v
	}
	return models.PropertyFilters{
		MinPrice:      set("min-price", f.minPrice),
		MaxPrice:      set("max-price", f.maxPrice),
		MinAIScore:    set("min-score", f.minScore),
		MaxAIScore:    set("max-score", f.maxScore),
		MinCapRate:    set("min-cap-rate", f.minCapRate),
		MaxCrimeIndex: set("max-crime", f.maxCrime),
		MinJobGrowth:  set("min-job-growth", f.minJobGrowth),
		ZipCodes:      f.zipCodes,
		PropertyTypes: f.propertyTypes,
	}
}

// loadRanked reads, scores and filters a listings file. Rejected listings are reported on errOut.
func loadRanked(errOut io.Writer, path string, opts globalOptions, filters models.PropertyFilters) ([]models.Property, error) {
	table, err := scoring.LoadTable(opts.tablePath)
	if err != nil {
		return nil, err
	}
	raw, err := file.NewSource(path).ListProperties(context.Background())
	if err != nil {
		return nil, err
	}

	ranked, rejected := scoring.NewEngine(table).ProcessAndRank(raw)
	for _, rejectErr := range rejected {
		fmt.Fprintf(errOut, "skipped: %v\n", rejectErr)
	}
	return filtering.Apply(ranked, filters), nil
}

func runRank(out, errOut io.Writer, path string, opts globalOptions, filters models.PropertyFilters, top int) error {
	ranked, err := loadRanked(errOut, path, opts, filters)
	if err != nil {
		return err
	}
	if top > 0 {
		ranked = filtering.TopDeals(ranked, top)
	}

	if opts.asJSON {
		return writeJSON(out, ranked)
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "RANK\tID\tADDRESS\tZIP\tPRICE\tAI\tTIER\tRISK\tCAP%\tCOC%\tCASHFLOW")
	for i, p := range ranked {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.0f\t%d\t%s\t%d\t%.2f\t%.2f\t%.0f\n",
			i+1, p.ID, p.Address, p.ZipCode, p.Price, p.AIScore, scoring.TierFor(p.AIScore), p.RiskScore, p.CapRate, p.CoCReturn, p.CashFlow)
	}
	return tw.Flush()
}

func runAnalytics(out, errOut io.Writer, path string, opts globalOptions, filters models.PropertyFilters, affordable float64) error {
	ranked, err := loadRanked(errOut, path, opts, filters)
	if err != nil {
		return err
	}

	agg := analytics.NewAggregator(models.MarketTrends{}, affordable)
	summary := agg.Compute(ranked)
	overview := agg.Overview(ranked)

	if opts.asJSON {
		return writeJSON(out, struct {
			Analytics models.MarketAnalytics `json:"analytics"`
			Overview  models.MarketOverview  `json:"overview"`
		}{summary, overview})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Properties\t%d\n", summary.TotalProperties)
	fmt.Fprintf(tw, "Average price\t%.0f\n", summary.AveragePrice)
	fmt.Fprintf(tw, "Average rent\t%.0f\n", summary.AverageRent)
	fmt.Fprintf(tw, "Average cap rate\t%.2f%%\n", summary.AverageCapRate)
	fmt.Fprintf(tw, "Average AI score\t%.1f\n", summary.AverageAIScore)
	fmt.Fprintf(tw, "Average CoC return\t%.2f%%\n", overview.AverageCoCReturn)
	fmt.Fprintf(tw, "Average cash flow\t%.0f\n", overview.AverageCashFlow)
	fmt.Fprintf(tw, "Average days on market\t%.1f\n", overview.AverageDaysOnMarket)
	fmt.Fprintf(tw, "Affordable share\t%.1f%%\n", overview.AffordableShare)
	fmt.Fprintf(tw, "Top zip codes\t%s\n", strings.Join(summary.TopPerformingZips, ", "))
	return tw.Flush()
}

func runOptions(out, errOut io.Writer, path string, opts globalOptions) error {
	ranked, err := loadRanked(errOut, path, opts, models.PropertyFilters{})
	if err != nil {
		return err
	}

	options := analytics.Options(ranked)
	if opts.asJSON {
		return writeJSON(out, options)
	}
	fmt.Fprintf(out, "zip codes: %s\n", strings.Join(options.ZipCodes, ", "))
	fmt.Fprintf(out, "property types: %s\n", strings.Join(options.PropertyTypes, ", "))
	return nil
}

func runSeed(ctx context.Context, out io.Writer, path, uri, db, collection string) error {
	if uri == "" {
		return errors.New("--mongo-uri or MONGODB_URI is required")
	}
	listings, err := file.NewSource(path).ListProperties(ctx)
	if err != nil {
		return err
	}

	repo, err := mongodb.NewRepository(ctx, config.MongoDBConfig{URI: uri, DBName: db, Collection: collection})
	if err != nil {
		return err
	}
	defer func() { _ = repo.Close(context.Background()) }()

	n, err := repo.UpsertProperties(ctx, listings)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "seeded %d of %d listings into %s.%s\n", n, len(listings), db, collection)
	return nil
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
